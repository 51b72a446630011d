package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/zeebo/xxh3"
	"go.uber.org/zap"

	"salarydash/internal/engine"
	"salarydash/internal/models"
)

// datasetState is swapped in once the background load has finished.
type datasetState struct {
	store   *engine.ColumnStore
	options models.FilterOptions
	err     error
}

type Handler struct {
	state     atomic.Pointer[datasetState]
	validate  *validator.Validate
	telemetry *Telemetry
	logger    *zap.Logger
}

// NewHandler creates a handler; a nil store keeps the API answering 503
// until SetData or SetLoadError is called.
func NewHandler(store *engine.ColumnStore, telemetry *Telemetry, logger *zap.Logger) *Handler {
	if telemetry == nil {
		telemetry = NewTelemetry()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Handler{
		validate:  newValidator(),
		telemetry: telemetry,
		logger:    logger.With(zap.String("component", "api")),
	}
	if store != nil {
		h.SetData(store)
	}
	return h
}

// SetData publishes a loaded dataset. Filter options only depend on the
// dataset, so they are computed here once.
func (h *Handler) SetData(store *engine.ColumnStore) {
	h.state.Store(&datasetState{store: store, options: store.Options()})
	h.telemetry.setDatasetRows(store.Len())
}

// SetLoadError records a fatal load failure; data routes report it from now on.
func (h *Handler) SetLoadError(err error) {
	h.state.Store(&datasetState{err: err})
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api")
	api.GET("/health", h.GetHealth)
	api.GET("/filters", h.GetFilters)
	api.GET("/dashboard", h.GetDashboard)
	api.GET("/summary", h.GetSummary)
	api.GET("/charts/top-titles", h.GetTopTitles)
	api.GET("/charts/salary-distribution", h.GetSalaryDistribution)
	api.GET("/charts/remote-modes", h.GetRemoteModes)
	api.GET("/charts/country-salaries", h.GetCountrySalaries)
	api.GET("/records", h.GetRecords)
	api.GET("/records/export", h.ExportRecords)

	e.GET("/metrics", echo.WrapHandler(h.telemetry.Handler()))
}

// --- HELPERS ---

func (h *Handler) dataset() (*datasetState, error) {
	st := h.state.Load()
	if st == nil {
		return nil, ErrDatasetLoading
	}
	if st.err != nil {
		return nil, DatasetLoadFailed(st.err)
	}
	return st, nil
}

// entityTag identifies a derived response by dataset content, view and selection.
func entityTag(fingerprint uint64, view, variant string, sel engine.Selection) string {
	key := fmt.Sprintf("%016x\x00%s\x00%s\x00%s", fingerprint, view, variant, sel.Canonical())
	return fmt.Sprintf(`"%016x"`, xxh3.HashString(key))
}

// notModified sets the ETag header and reports whether the client copy is current.
func notModified(c echo.Context, etag string) bool {
	c.Response().Header().Set("ETag", etag)
	for _, candidate := range strings.Split(c.Request().Header.Get("If-None-Match"), ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == etag || candidate == "*" {
			return true
		}
	}
	return false
}

// serve runs the shared filter pipeline and renders compute's result as JSON.
func (h *Handler) serve(c echo.Context, view, variant string, compute func(context.Context, *engine.View) (interface{}, error)) error {
	st, err := h.dataset()
	if err != nil {
		return err
	}
	sel, err := parseSelection(c.QueryParams(), st.options)
	if err != nil {
		return err
	}
	if notModified(c, entityTag(st.store.Fingerprint, view, variant, sel)) {
		return c.NoContent(http.StatusNotModified)
	}

	start := time.Now()
	filtered := st.store.Apply(sel)
	result, err := compute(c.Request().Context(), filtered)
	h.telemetry.observe(view, filtered.Len(), time.Since(start))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// --- HANDLERS ---

type healthResponse struct {
	Status string `json:"status"`
	Rows   int    `json:"rows,omitempty"`
	Error  string `json:"error,omitempty"`
}

func (h *Handler) GetHealth(c echo.Context) error {
	st := h.state.Load()
	switch {
	case st == nil:
		return c.JSON(http.StatusServiceUnavailable, healthResponse{Status: "loading"})
	case st.err != nil:
		return c.JSON(http.StatusBadGateway, healthResponse{Status: "failed", Error: st.err.Error()})
	}
	return c.JSON(http.StatusOK, healthResponse{Status: "ok", Rows: st.store.Len()})
}

// returns the selectable values of every filter, from the full dataset
func (h *Handler) GetFilters(c echo.Context) error {
	st, err := h.dataset()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, st.options)
}

func (h *Handler) GetDashboard(c echo.Context) error {
	return h.serve(c, "dashboard", "", func(ctx context.Context, v *engine.View) (interface{}, error) {
		return engine.Aggregate(ctx, v)
	})
}

func (h *Handler) GetSummary(c echo.Context) error {
	return h.serve(c, "summary", "", func(_ context.Context, v *engine.View) (interface{}, error) {
		return engine.ComputeMetrics(v), nil
	})
}

// returns top 10 titles by mean salary, ascending
func (h *Handler) GetTopTitles(c echo.Context) error {
	return h.serve(c, "top_titles", "", func(_ context.Context, v *engine.View) (interface{}, error) {
		return engine.TopTitles(v), nil
	})
}

func (h *Handler) GetSalaryDistribution(c echo.Context) error {
	return h.serve(c, "salary_distribution", "", func(_ context.Context, v *engine.View) (interface{}, error) {
		return engine.SalaryDistribution(v), nil
	})
}

func (h *Handler) GetRemoteModes(c echo.Context) error {
	return h.serve(c, "remote_modes", "", func(_ context.Context, v *engine.View) (interface{}, error) {
		return engine.RemoteModes(v), nil
	})
}

// mean salary per country for the featured title
func (h *Handler) GetCountrySalaries(c echo.Context) error {
	return h.serve(c, "country_salaries", "", func(_ context.Context, v *engine.View) (interface{}, error) {
		return engine.CountrySalaries(v), nil
	})
}

// paged detail table of the filtered view
func (h *Handler) GetRecords(c echo.Context) error {
	page, err := h.parsePage(c)
	if err != nil {
		return err
	}
	variant := fmt.Sprintf("%d:%d", page.Offset, page.Limit)
	return h.serve(c, "records", variant, func(_ context.Context, v *engine.View) (interface{}, error) {
		return models.RecordPage{
			Data:   v.Records(page.Offset, page.Limit),
			Total:  v.Len(),
			Limit:  page.Limit,
			Offset: page.Offset,
		}, nil
	})
}
