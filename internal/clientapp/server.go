package clientapp

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/mmech/complyboard/internal/middleware"
	"github.com/mmech/complyboard/internal/report"
)

//go:embed templates/*.html assets/app.css
var contentFS embed.FS

type Config struct {
	Addr         string
	APIBaseURL   string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

func DefaultConfigFromEnv() Config {
	return Config{
		Addr:         envOrDefault("CLIENT_ADDR", ":3000"),
		APIBaseURL:   envOrDefault("API_BASE_URL", "http://localhost:8080"),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
}

func Run(ctx context.Context, cfg Config) error {
	s := &server{
		apiBaseURL:    strings.TrimRight(cfg.APIBaseURL, "/"),
		apiClient:     &http.Client{Timeout: 8 * time.Second},
		homeTmpl:      template.Must(template.ParseFS(contentFS, "templates/home.html")),
		dashboardTmpl: template.Must(template.ParseFS(contentFS, "templates/dashboard.html")),
	}

	mux := http.NewServeMux()
	mux.Handle("/", http.HandlerFunc(s.homePage))
	mux.Handle("/dashboard", http.HandlerFunc(s.dashboardPage))
	mux.Handle("/assets/app.css", http.HandlerFunc(s.appCSSFile))

	csp := strings.Join([]string{
		"default-src 'self'",
		"style-src 'self' 'unsafe-inline'",
		"img-src 'self' data:",
		"script-src 'self' 'unsafe-inline'",
		"connect-src 'self'",
		"frame-ancestors 'none'",
	}, "; ")

	handler := middleware.Chain(
		mux,
		middleware.SecurityHeaders(middleware.SecurityHeadersConfig{ContentSecurityPolicy: csp}),
		middleware.RequestLog("client"),
	)

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("client listening on http://localhost%s", cfg.Addr)
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
	apiBaseURL    string
	apiClient     *http.Client
	homeTmpl      *template.Template
	dashboardTmpl *template.Template
}

type homeData struct {
	Error string
}

type selectableValue struct {
	Value    string
	Selected bool
}

type dashboardData struct {
	UserID     string
	Supervisor string
	NoData     bool

	EmployeeIDs []selectableValue
	Units       []selectableValue
	Departments []selectableValue

	ViewColumns []string
	ViewRows    [][]*string

	Todo []todoView

	PivotDimensions []selectableValue
	Pivot           []pivotView

	// Chart-ready record sets, embedded as JSON for the browser-side
	// sunburst and stacked-bar renderers.
	SunburstJSON template.JS
	PivotJSON    template.JS
}

type todoView struct {
	Employee string   `json:"employee"`
	Tasks    []string `json:"tasks"`
}

type pivotView struct {
	Dimension string `json:"dimension"`
	Category  string `json:"category"`
	Count     int    `json:"count"`
}

func (s *server) homePage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.renderHome(w, http.StatusOK, homeData{})
}

func (s *server) appCSSFile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	css, err := contentFS.ReadFile("assets/app.css")
	if err != nil {
		http.Error(w, "stylesheet unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	_, _ = w.Write(css)
}

func (s *server) dashboardPage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID := strings.TrimSpace(r.URL.Query().Get("user"))
	if userID == "" {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	apiQuery := buildAPIQuery(r.URL.Query())
	var rep apiReport
	status, err := s.fetchJSON(r.Context(), fmt.Sprintf("/api/supervisors/%s/report?%s", url.PathEscape(userID), apiQuery.Encode()), &rep)
	if err != nil {
		log.Printf("client: fetch report: %v", err)
		s.renderHome(w, http.StatusBadGateway, homeData{Error: "The reporting service is unavailable. Please try again."})
		return
	}
	if status == http.StatusNotFound {
		s.renderHome(w, http.StatusOK, homeData{Error: "No data found for this ID. Please check and try again."})
		return
	}
	if status != http.StatusOK {
		s.renderHome(w, http.StatusOK, homeData{Error: "Could not build the compliance report for this ID."})
		return
	}

	data, err := buildDashboardData(userID, r.URL.Query(), rep)
	if err != nil {
		log.Printf("client: build dashboard: %v", err)
		http.Error(w, "failed to render dashboard", http.StatusInternalServerError)
		return
	}
	if err := s.dashboardTmpl.Execute(w, data); err != nil {
		log.Printf("client: render dashboard: %v", err)
	}
}

func (s *server) renderHome(w http.ResponseWriter, status int, data homeData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.homeTmpl.Execute(w, data); err != nil {
		log.Printf("client: render home: %v", err)
	}
}

// buildAPIQuery converts the browser form's repeated parameters into the
// API's comma-separated ones. The `applied` marker distinguishes the first
// visit (everything selected) from a submitted form with nothing checked.
func buildAPIQuery(query url.Values) url.Values {
	out := url.Values{}
	applied := query.Get("applied") != ""
	for browserKey, apiKey := range map[string]string{"ids": "ids", "units": "units", "depts": "depts"} {
		values := query[browserKey]
		if len(values) == 0 {
			if applied && browserKey == "ids" {
				out.Set(apiKey, "")
			}
			continue
		}
		out.Set(apiKey, strings.Join(values, ","))
	}
	if pivot := strings.TrimSpace(query.Get("pivot")); pivot != "" {
		out.Set("pivot", pivot)
	}
	return out
}

type apiReport struct {
	Supervisor     string      `json:"supervisor"`
	NoData         bool        `json:"noData"`
	PivotDimension string      `json:"pivotDimension"`
	View           apiTable    `json:"view"`
	Sunburst       apiTable    `json:"sunburst"`
	Todo           []todoView  `json:"todo"`
	Pivot          []pivotView `json:"pivot"`
	EmployeeIDs    []string    `json:"employeeIds"`
	Units          []string    `json:"units"`
	Departments    []string    `json:"departments"`
}

type apiTable struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

func (s *server) fetchJSON(ctx context.Context, path string, target any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.apiBaseURL+path, nil)
	if err != nil {
		return 0, err
	}
	resp, err := s.apiClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.StatusCode, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return resp.StatusCode, fmt.Errorf("decode %s: %w", path, err)
	}
	return resp.StatusCode, nil
}

func buildDashboardData(userID string, query url.Values, rep apiReport) (dashboardData, error) {
	applied := query.Get("applied") != ""

	data := dashboardData{
		UserID:      userID,
		Supervisor:  rep.Supervisor,
		NoData:      rep.NoData,
		EmployeeIDs: selectable(rep.EmployeeIDs, query["ids"], applied),
		Units:       selectable(rep.Units, query["units"], applied),
		Departments: selectable(rep.Departments, query["depts"], applied),
		ViewColumns: rep.View.Columns,
		Todo:        rep.Todo,
		Pivot:       rep.Pivot,
	}

	for _, row := range rep.View.Rows {
		cells := make([]*string, len(rep.View.Columns))
		for i := range rep.View.Columns {
			if i < len(row) && row[i] != nil {
				if text, ok := row[i].(string); ok {
					cells[i] = &text
				}
			}
		}
		data.ViewRows = append(data.ViewRows, cells)
	}

	selectedPivot := rep.PivotDimension
	for _, dim := range report.PivotDimensions() {
		data.PivotDimensions = append(data.PivotDimensions, selectableValue{
			Value:    dim,
			Selected: dim == selectedPivot,
		})
	}

	sunburstJSON, err := json.Marshal(rep.Sunburst)
	if err != nil {
		return dashboardData{}, err
	}
	pivotJSON, err := json.Marshal(rep.Pivot)
	if err != nil {
		return dashboardData{}, err
	}
	data.SunburstJSON = template.JS(sunburstJSON)
	data.PivotJSON = template.JS(pivotJSON)
	return data, nil
}

// selectable marks which of the available values are currently selected.
// Before the form is first applied everything is selected, matching the
// dashboard's select-all default.
func selectable(available, chosen []string, applied bool) []selectableValue {
	chosenSet := make(map[string]struct{}, len(chosen))
	for _, c := range chosen {
		chosenSet[c] = struct{}{}
	}
	out := make([]selectableValue, 0, len(available))
	for _, v := range available {
		selected := true
		if applied {
			_, selected = chosenSet[v]
		}
		out = append(out, selectableValue{Value: v, Selected: selected})
	}
	return out
}

func envOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
