// Package main is the maintenance CLI for the workout journal: export,
// import, clear, period reports and API token hashing.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/activeweek/internal"
	"github.com/2beens/activeweek/internal/config"
	"github.com/2beens/activeweek/internal/logging"
	"github.com/2beens/activeweek/internal/workouts/analytics"
	"github.com/2beens/activeweek/internal/workouts/dataexchange"
	"github.com/2beens/activeweek/internal/workouts/service"
	"github.com/2beens/activeweek/pkg"
)

func main() {
	cmd := flag.String("cmd", "", "command [export | import | clear | report | hash-token]")
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path to TOML config file")
	format := flag.String("format", "json", "export format [json | csv]")
	outDir := flag.String("out", ".", "export output directory")
	file := flag.String("file", "", "import file path")
	mode := flag.String("mode", "replace", "import mode [replace | merge]")
	confirm := flag.Bool("confirm", false, "apply import / clear (without it only a preview is shown)")
	period := flag.String("period", "week", "report period [week | month | year]")
	token := flag.String("token", "", "token to hash with hash-token")
	flag.Parse()

	if *cmd == "hash-token" {
		if err := hashToken(*token); err != nil {
			log.Fatal(err)
		}
		return
	}

	if err := config.LoadDotEnv(".env"); err != nil {
		log.Fatalf("load .env: %s", err)
	}
	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %s", err)
	}
	log.SetLevel(logging.GetLevel(cfg.LogLevel))

	ctx := context.Background()
	backend, err := internal.OpenKVBackend(ctx, cfg, internal.BackendSecrets{
		RedisPassword:    os.Getenv("ACTIVEWEEK_REDIS_PASS"),
		PostgresPassword: os.Getenv("ACTIVEWEEK_POSTGRES_PASS"),
	}, false)
	if err != nil {
		log.Fatalf("open backend: %s", err)
	}
	defer backend.Close()

	svc, err := service.New(ctx, service.Params{
		Persister: backend.Persister(cfg),
		// write once, at the end
		DebounceDelay: time.Hour,
	})
	if err != nil {
		log.Fatalf("workouts service: %s", err)
	}

	switch *cmd {
	case "export":
		err = export(ctx, svc, *format, *outDir)
	case "import":
		err = importFile(ctx, svc, *file, *mode, *confirm)
	case "clear":
		err = clearWorkouts(svc, *confirm)
	case "report":
		err = report(svc, *period)
	default:
		err = fmt.Errorf("unknown command: [%s]", *cmd)
	}

	if flushErr := svc.Flush(ctx); flushErr != nil {
		log.Errorf("flush workouts: %s", flushErr)
	}
	if err != nil {
		backend.Close()
		log.Fatal(err)
	}
}

func hashToken(token string) error {
	if token == "" {
		return fmt.Errorf("token not set, use -token")
	}
	hash, err := pkg.HashToken(token, pkg.DefaultTokenHashCost)
	if err != nil {
		return err
	}
	fmt.Println(hash)
	return nil
}

func export(ctx context.Context, svc *service.Service, formatName, outDir string) error {
	format, err := dataexchange.ParseFormat(formatName)
	if err != nil {
		return err
	}
	if err := pkg.EnsureDir(outDir); err != nil {
		return err
	}

	file, err := svc.Export(ctx, format)
	if err != nil {
		return err
	}

	path := filepath.Join(outDir, file.Name)
	if err := os.WriteFile(path, file.Payload, 0o644); err != nil {
		return err
	}
	log.Printf("exported %d workouts to %s", len(svc.List()), path)
	return nil
}

func importFile(ctx context.Context, svc *service.Service, path, modeName string, confirm bool) error {
	if path == "" {
		return fmt.Errorf("import file not set, use -file")
	}
	mode, err := dataexchange.ParseMode(modeName)
	if err != nil {
		return err
	}
	payload, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	outcome, err := svc.Import(ctx, payload, mode, confirm)
	if err != nil {
		return err
	}
	if !outcome.Applied {
		log.Printf("%s import preview: %d valid, %d skipped (use -confirm to apply)", outcome.Format, outcome.Accepted, outcome.Skipped)
		return nil
	}
	log.Printf("imported %d workouts (%s), %d skipped, %d total", outcome.Accepted, outcome.Mode, outcome.Skipped, outcome.Total)
	return nil
}

func clearWorkouts(svc *service.Service, confirm bool) error {
	if !confirm {
		log.Printf("would remove %d workouts (use -confirm to clear)", len(svc.List()))
		return nil
	}
	log.Printf("removed %d workouts", svc.Clear())
	return nil
}

func report(svc *service.Service, periodName string) error {
	period, err := analytics.ParsePeriod(periodName)
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(svc.PeriodReport(period, time.Now()), "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
