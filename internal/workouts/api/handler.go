package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/activeweek/internal/telemetry/tracing"
	"github.com/2beens/activeweek/internal/workouts"
	"github.com/2beens/activeweek/internal/workouts/analytics"
	"github.com/2beens/activeweek/internal/workouts/calendar"
	"github.com/2beens/activeweek/internal/workouts/dataexchange"
	"github.com/2beens/activeweek/internal/workouts/form"
	"github.com/2beens/activeweek/internal/workouts/service"
	"github.com/2beens/activeweek/pkg"
)

const (
	dateLayout         = "2006-01-02"
	defaultRecentCount = 5
	maxImportSize      = 10 << 20
)

//go:generate mockgen -source=$GOFILE -destination=api_mocks_test.go -package=api_test

type workoutsService interface {
	List() []workouts.Record
	Add(ctx context.Context, entry service.Entry) (workouts.Record, error)
	Update(ctx context.Context, id string, entry service.Entry) (workouts.Record, error)
	Delete(id string) bool
	Clear() int
	Recent(n int) []workouts.Record
	Analytics() service.Analytics
	AnalyticsForRange(from, to time.Time) service.Analytics
	Reports(anchor time.Time) analytics.Reports
	PeriodReport(period analytics.Period, anchor time.Time) analytics.PeriodReport
	Calendar(view calendar.View, date time.Time) (any, error)
	Export(ctx context.Context, format dataexchange.Format) (*service.ExportFile, error)
	Import(ctx context.Context, payload []byte, mode dataexchange.Mode, confirm bool) (*service.ImportOutcome, error)
}

type ListResponse struct {
	Workouts []workouts.Record `json:"workouts"`
	Total    int               `json:"total"`
}

type DeleteResponse struct {
	DeletedID string `json:"deletedId"`
	Deleted   bool   `json:"deleted"`
}

type ClearResponse struct {
	Cleared int `json:"cleared"`
}

type ErrorResponse struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields,omitempty"`
}

type Handler struct {
	service workoutsService
}

func NewHandler(service workoutsService) *Handler {
	return &Handler{
		service: service,
	}
}

// SetupRoutes registers every workout route. Mutating routes are wrapped with limit.
func (handler *Handler) SetupRoutes(router *mux.Router, limit mux.MiddlewareFunc) {
	if limit == nil {
		limit = func(next http.Handler) http.Handler { return next }
	}
	limited := func(f http.HandlerFunc) http.Handler {
		return limit(f)
	}

	router.HandleFunc("/activities", handler.HandleActivities).Methods("GET", "OPTIONS").Name("list-activities")
	router.HandleFunc("/workouts", handler.HandleList).Methods("GET", "OPTIONS").Name("list-workouts")
	router.Handle("/workouts", limited(handler.HandleAdd)).Methods("POST", "OPTIONS").Name("new-workout")
	router.Handle("/workouts", limited(handler.HandleClear)).Methods("DELETE", "OPTIONS").Name("clear-workouts")
	router.HandleFunc("/workouts/recent", handler.HandleRecent).Methods("GET", "OPTIONS").Name("recent-workouts")
	router.Handle("/workouts/{id}", limited(handler.HandleUpdate)).Methods("PUT", "OPTIONS").Name("update-workout")
	router.Handle("/workouts/{id}", limited(handler.HandleDelete)).Methods("DELETE", "OPTIONS").Name("delete-workout")
	router.HandleFunc("/analytics", handler.HandleAnalytics).Methods("GET", "OPTIONS").Name("analytics")
	router.HandleFunc("/reports", handler.HandleReports).Methods("GET", "OPTIONS").Name("reports")
	router.HandleFunc("/reports/{period}", handler.HandlePeriodReport).Methods("GET", "OPTIONS").Name("period-report")
	router.HandleFunc("/calendar/{view}", handler.HandleCalendar).Methods("GET", "OPTIONS").Name("calendar")
	router.HandleFunc("/data/export", handler.HandleExport).Methods("GET", "OPTIONS").Name("export-data")
	router.Handle("/data/import", limited(handler.HandleImport)).Methods("POST", "OPTIONS").Name("import-data")
}

func (handler *Handler) HandleActivities(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, workouts.Activities(), http.StatusOK)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.list")
	defer span.End()

	list := handler.service.List()
	writeJSON(w, ListResponse{
		Workouts: list,
		Total:    len(list),
	}, http.StatusOK)
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.new")
	defer span.End()

	entry, ok := decodeEntry(w, r)
	if !ok {
		return
	}

	added, err := handler.service.Add(ctx, entry)
	if err != nil {
		writeServiceError(w, "add workout", err)
		return
	}

	writeJSON(w, added, http.StatusCreated)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.update")
	defer span.End()

	id := mux.Vars(r)["id"]
	if id == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	entry, ok := decodeEntry(w, r)
	if !ok {
		return
	}

	updated, err := handler.service.Update(ctx, id, entry)
	if err != nil {
		writeServiceError(w, "update workout "+id, err)
		return
	}

	writeJSON(w, updated, http.StatusOK)
}

// HandleDelete answers 200 for unknown ids too: deleting is idempotent.
func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.delete")
	defer span.End()

	id := mux.Vars(r)["id"]
	if id == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	deleted := handler.service.Delete(id)
	if !deleted {
		log.Debugf("delete workout: %s not found, nothing to do", id)
	}
	writeJSON(w, DeleteResponse{DeletedID: id, Deleted: deleted}, http.StatusOK)
}

func (handler *Handler) HandleClear(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.clear")
	defer span.End()

	writeJSON(w, ClearResponse{Cleared: handler.service.Clear()}, http.StatusOK)
}

func (handler *Handler) HandleRecent(w http.ResponseWriter, r *http.Request) {
	n := defaultRecentCount
	if nStr := r.URL.Query().Get("n"); nStr != "" {
		parsed, err := strconv.Atoi(nStr)
		if err != nil || parsed < 1 {
			http.Error(w, "error, n must be a positive number", http.StatusBadRequest)
			return
		}
		n = parsed
	}

	writeJSON(w, handler.service.Recent(n), http.StatusOK)
}

// HandleAnalytics serves the dashboard, optionally limited to ?from=&to= (yyyy-MM-dd, inclusive).
func (handler *Handler) HandleAnalytics(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.analytics")
	defer span.End()

	fromStr, toStr := r.URL.Query().Get("from"), r.URL.Query().Get("to")
	if fromStr == "" && toStr == "" {
		writeJSON(w, handler.service.Analytics(), http.StatusOK)
		return
	}

	from, err := parseDateParam(fromStr)
	if err != nil || from.IsZero() {
		http.Error(w, "error, invalid from date, use yyyy-MM-dd", http.StatusBadRequest)
		return
	}
	to, err := parseDateParam(toStr)
	if err != nil || to.IsZero() {
		http.Error(w, "error, invalid to date, use yyyy-MM-dd", http.StatusBadRequest)
		return
	}
	if to.Before(from) {
		http.Error(w, "error, to date is before from date", http.StatusBadRequest)
		return
	}
	to = to.AddDate(0, 0, 1).Add(-time.Nanosecond)

	writeJSON(w, handler.service.AnalyticsForRange(from, to), http.StatusOK)
}

func (handler *Handler) HandleReports(w http.ResponseWriter, r *http.Request) {
	anchor, err := parseDateParam(r.URL.Query().Get("anchor"))
	if err != nil {
		http.Error(w, "error, invalid anchor date, use yyyy-MM-dd", http.StatusBadRequest)
		return
	}

	writeJSON(w, handler.service.Reports(anchor), http.StatusOK)
}

func (handler *Handler) HandlePeriodReport(w http.ResponseWriter, r *http.Request) {
	period, err := analytics.ParsePeriod(mux.Vars(r)["period"])
	if err != nil {
		http.Error(w, "error, period must be one of week, month, year", http.StatusBadRequest)
		return
	}
	anchor, err := parseDateParam(r.URL.Query().Get("anchor"))
	if err != nil {
		http.Error(w, "error, invalid anchor date, use yyyy-MM-dd", http.StatusBadRequest)
		return
	}

	writeJSON(w, handler.service.PeriodReport(period, anchor), http.StatusOK)
}

func (handler *Handler) HandleCalendar(w http.ResponseWriter, r *http.Request) {
	view, err := calendar.ParseView(mux.Vars(r)["view"])
	if err != nil {
		http.Error(w, "error, view must be one of month, week, list", http.StatusBadRequest)
		return
	}
	date, err := parseDateParam(r.URL.Query().Get("date"))
	if err != nil {
		http.Error(w, "error, invalid date, use yyyy-MM-dd", http.StatusBadRequest)
		return
	}

	layout, err := handler.service.Calendar(view, date)
	if err != nil {
		log.Errorf("calendar view %s: %s", view, err)
		http.Error(w, "failed to build calendar", http.StatusInternalServerError)
		return
	}
	writeJSON(w, layout, http.StatusOK)
}

func (handler *Handler) HandleExport(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.export")
	defer span.End()

	format, err := dataexchange.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		http.Error(w, "error, format must be json or csv", http.StatusBadRequest)
		return
	}

	file, err := handler.service.Export(ctx, format)
	if err != nil {
		log.Errorf("export workouts as %s: %s", format, err)
		http.Error(w, "failed to export workouts", http.StatusInternalServerError)
		return
	}

	pkg.WriteAttachment(w, file.ContentType, file.Name, file.Payload)
}

// HandleImport previews the uploaded payload, or applies it with ?confirm=true.
func (handler *Handler) HandleImport(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.import")
	defer span.End()

	mode, err := dataexchange.ParseMode(r.URL.Query().Get("mode"))
	if err != nil {
		http.Error(w, "error, mode must be replace or merge", http.StatusBadRequest)
		return
	}
	confirm := r.URL.Query().Get("confirm") == "true"

	payload, err := io.ReadAll(io.LimitReader(r.Body, maxImportSize+1))
	if err != nil {
		log.Errorf("import workouts, read body: %s", err)
		http.Error(w, "failed to read payload", http.StatusBadRequest)
		return
	}
	if len(payload) > maxImportSize {
		http.Error(w, "payload too large", http.StatusRequestEntityTooLarge)
		return
	}

	outcome, err := handler.service.Import(ctx, payload, mode, confirm)
	if service.IsImportRejected(err) {
		writeJSON(w, ErrorResponse{Error: err.Error()}, http.StatusBadRequest)
		return
	}
	if err != nil {
		log.Errorf("import workouts: %s", err)
		http.Error(w, "failed to import workouts", http.StatusInternalServerError)
		return
	}

	writeJSON(w, outcome, http.StatusOK)
}

func decodeEntry(w http.ResponseWriter, r *http.Request) (service.Entry, bool) {
	if r.Header.Get("Content-Type") != pkg.ContentType.JSON {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return service.Entry{}, false
	}

	var entry service.Entry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		log.Tracef("workout entry, unmarshal json params: %s", err)
		http.Error(w, "invalid workout payload", http.StatusBadRequest)
		return service.Entry{}, false
	}
	return entry, true
}

func writeServiceError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, service.ErrWorkoutNotFound) {
		http.Error(w, "workout not found", http.StatusNotFound)
		return
	}
	if service.IsInvalidInput(err) {
		resp := ErrorResponse{Error: err.Error()}
		var validationErr *form.ValidationError
		if errors.As(err, &validationErr) {
			resp.Fields = validationErr.Fields()
		}
		writeJSON(w, resp, http.StatusBadRequest)
		return
	}

	log.Errorf("failed to %s: %s", op, err)
	http.Error(w, "failed to "+op, http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, v any, statusCode int) {
	resp, err := json.Marshal(v)
	if err != nil {
		log.Errorf("failed to marshal response: %s", err)
		http.Error(w, "failed to marshal response", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, resp, statusCode)
}

// parseDateParam reads a yyyy-MM-dd query value in the server's zone; empty gives the zero time.
func parseDateParam(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.ParseInLocation(dateLayout, s, time.Local)
}
