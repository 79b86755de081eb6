package apiapp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/mmech/complyboard/internal/extract"
	"github.com/mmech/complyboard/internal/middleware"
	"github.com/mmech/complyboard/internal/report"
)

type Config struct {
	Addr        string
	ExtractPath string
}

func DefaultConfigFromEnv() Config {
	return Config{
		Addr:        envOrDefault("API_ADDR", ":8080"),
		ExtractPath: envOrDefault("EXTRACT_PATH", "sample_data/compliance_extract_example.csv"),
	}
}

func Run(ctx context.Context, cfg Config) error {
	if cfg.ExtractPath == "" {
		return errors.New("EXTRACT_PATH is required")
	}

	table, err := extract.NewCache(cfg.ExtractPath).Load()
	if err != nil {
		return fmt.Errorf("load extract: %w", err)
	}
	log.Printf("loaded extract %s: %d rows", cfg.ExtractPath, len(table.Rows))

	s := &server{table: table}

	csp := strings.Join([]string{
		"default-src 'self'",
		"frame-ancestors 'none'",
	}, "; ")

	handler := middleware.Chain(
		s.routes(),
		middleware.SecurityHeaders(middleware.SecurityHeadersConfig{ContentSecurityPolicy: csp}),
		middleware.RequestLog("api"),
	)

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("api listening on http://localhost%s", cfg.Addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

type server struct {
	table report.Table
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/api/health", http.HandlerFunc(s.health))
	mux.Handle("/api/supervisors/", http.HandlerFunc(s.supervisorRoutes))
	return mux
}

func (s *server) health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) supervisorRoutes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	trimmed := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/supervisors/"), "/")
	parts := strings.Split(trimmed, "/")
	if len(parts) != 2 || strings.TrimSpace(parts[0]) == "" {
		http.NotFound(w, r)
		return
	}
	supervisorID := strings.TrimSpace(parts[0])

	switch parts[1] {
	case "filters":
		s.supervisorFilters(w, r, supervisorID)
	case "report":
		s.supervisorReport(w, r, supervisorID)
	default:
		http.NotFound(w, r)
	}
}

func (s *server) supervisorFilters(w http.ResponseWriter, r *http.Request, supervisorID string) {
	rep, err := report.BuildReport(s.table, report.FilterState{SupervisorID: supervisorID}, "")
	if err != nil {
		if errors.Is(err, report.ErrUnknownSupervisor) {
			writeError(w, http.StatusNotFound, "no data found for this ID")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to build filters")
		return
	}
	writeJSON(w, http.StatusOK, filtersResponse{
		Supervisor:  rep.Supervisor,
		EmployeeIDs: rep.AvailableIDs,
		Units:       rep.AvailableUnits,
		Departments: rep.AvailableDepartments,
	})
}

func (s *server) supervisorReport(w http.ResponseWriter, r *http.Request, supervisorID string) {
	query := r.URL.Query()
	fs := report.FilterState{
		SupervisorID: supervisorID,
		EmployeeIDs:  listParam(query, "ids"),
		Units:        listParam(query, "units"),
		Departments:  listParam(query, "depts"),
	}
	pivotDimension := strings.TrimSpace(query.Get("pivot"))
	if pivotDimension != "" && !report.ValidPivotDimension(pivotDimension) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown pivot dimension %q", pivotDimension))
		return
	}

	rep, err := report.BuildReport(s.table, fs, pivotDimension)
	if err != nil {
		if errors.Is(err, report.ErrUnknownSupervisor) {
			writeError(w, http.StatusNotFound, "no data found for this ID")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to build report")
		return
	}
	writeJSON(w, http.StatusOK, buildReportResponse(rep))
}

// listParam distinguishes an absent parameter (nil, unrestricted) from a
// present-but-empty one (deliberate empty selection).
func listParam(query url.Values, key string) []string {
	if !query.Has(key) {
		return nil
	}
	raw := query.Get(key)
	if raw == "" {
		return []string{}
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

type filtersResponse struct {
	Supervisor  string   `json:"supervisor"`
	EmployeeIDs []string `json:"employeeIds"`
	Units       []string `json:"units"`
	Departments []string `json:"departments"`
}

type reportResponse struct {
	Supervisor     string          `json:"supervisor"`
	NoData         bool            `json:"noData"`
	PivotDimension string          `json:"pivotDimension"`
	View           tableResponse   `json:"view"`
	Sunburst       tableResponse   `json:"sunburst"`
	Todo           []todoResponse  `json:"todo"`
	Pivot          []pivotResponse `json:"pivot"`
	EmployeeIDs    []string        `json:"employeeIds"`
	Units          []string        `json:"units"`
	Departments    []string        `json:"departments"`
}

// tableResponse is a rectangular, column-ordered rendering of a table; null
// cells serialize as JSON null.
type tableResponse struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

type todoResponse struct {
	Employee string   `json:"employee"`
	Tasks    []string `json:"tasks"`
}

type pivotResponse struct {
	Dimension string `json:"dimension"`
	Category  string `json:"category"`
	Count     int    `json:"count"`
}

func buildReportResponse(rep *report.Report) reportResponse {
	out := reportResponse{
		Supervisor:     rep.Supervisor,
		NoData:         rep.NoData,
		PivotDimension: rep.PivotDimension,
		View:           tableToResponse(rep.View),
		Sunburst:       flatToResponse(rep.Sunburst),
		Todo:           []todoResponse{},
		Pivot:          []pivotResponse{},
		EmployeeIDs:    rep.AvailableIDs,
		Units:          rep.AvailableUnits,
		Departments:    rep.AvailableDepartments,
	}
	for _, todo := range rep.Todo {
		out.Todo = append(out.Todo, todoResponse{Employee: todo.Employee, Tasks: todo.Tasks})
	}
	for _, row := range rep.Pivot {
		out.Pivot = append(out.Pivot, pivotResponse(row))
	}
	return out
}

func tableToResponse(t report.Table) tableResponse {
	out := tableResponse{Columns: t.Columns, Rows: [][]any{}}
	for _, row := range t.Rows {
		cells := make([]any, len(t.Columns))
		for i, col := range t.Columns {
			if v := row.Get(col); v != nil {
				cells[i] = *v
			}
		}
		out.Rows = append(out.Rows, cells)
	}
	return out
}

func flatToResponse(flat report.FlatTable) tableResponse {
	out := tableResponse{Columns: flat.Columns, Rows: [][]any{}}
	hasDate := flat.HasDate()
	for _, row := range flat.Rows {
		cells := []any{row.Supervisor, row.Category, row.Employee, row.Item}
		if hasDate {
			if row.Date != nil {
				cells = append(cells, *row.Date)
			} else {
				cells = append(cells, nil)
			}
		}
		cells = append(cells, row.Count)
		out.Rows = append(out.Rows, cells)
	}
	return out
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func envOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
