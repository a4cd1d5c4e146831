package metrics

import (
	"github.com/IBM/pgxpoolprometheus"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// SetupPrometheus returns the service registry with the runtime collectors and
// an activeweek_build_info gauge carrying the version and storage backend.
func SetupPrometheus(version, storageBackend string) *prometheus.Registry {
	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(
		collectors.NewBuildInfoCollector(),
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "activeweek",
			Name:      "build_info",
			Help:      "Always 1, labeled with the running version and storage backend.",
			ConstLabels: prometheus.Labels{
				"version": version,
				"storage": storageBackend,
			},
		}, func() float64 { return 1 }),
	)
	return promRegistry
}

// RegisterDBPool exposes the pgx pool stats (connections, acquire times).
func RegisterDBPool(reg prometheus.Registerer, pool *pgxpool.Pool, dbName string) error {
	collector := pgxpoolprometheus.NewCollector(pool, map[string]string{"db_name": dbName})
	return reg.Register(collector)
}
