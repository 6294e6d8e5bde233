package reports

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/meridian-pos/meridian-pos/internal/auth"
	"github.com/meridian-pos/meridian-pos/internal/platform/httpx"
	"github.com/meridian-pos/meridian-pos/internal/store"
)

// Handler exposes the report rollups over HTTP.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs a reports Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes attaches report routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireUser())
		r.Get("/valuation", h.valuation)
		r.Get("/low-stock", h.lowStock)
		r.Get("/daily", h.daily)
		r.Get("/trend", h.trend)
		r.Get("/categories", h.categories)
		r.Get("/top-products", h.topProducts)
		r.Get("/dashboard", h.dashboard)
	})
}

type valuationResponse struct {
	Valuation float64 `json:"valuation"`
}

type dailyResponse struct {
	Date  string  `json:"date"`
	Total float64 `json:"total"`
}

type dashboardResponse struct {
	Valuation   float64         `json:"valuation"`
	LowStock    []store.Product `json:"low_stock"`
	Trend       []DayTotal      `json:"trend"`
	Categories  []CategoryTotal `json:"categories"`
	TopProducts []ProductSales  `json:"top_products"`
}

func (h *Handler) valuation(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, valuationResponse{Valuation: h.service.InventoryValuation()})
}

func (h *Handler) lowStock(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.service.LowStock())
}

func (h *Handler) daily(w http.ResponseWriter, r *http.Request) {
	day := time.Now()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "date must be YYYY-MM-DD")
			return
		}
		day = parsed
	}
	httpx.JSON(w, http.StatusOK, dailyResponse{Date: day.Format("2006-01-02"), Total: h.service.DailySales(day)})
}

func (h *Handler) trend(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.service.SevenDayTrend())
}

func (h *Handler) categories(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.service.SalesByCategory())
}

func (h *Handler) topProducts(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	httpx.JSON(w, http.StatusOK, h.service.TopProducts(limit))
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	var resp dashboardResponse

	g, _ := errgroup.WithContext(r.Context())
	g.Go(func() error {
		resp.Valuation = h.service.InventoryValuation()
		return nil
	})
	g.Go(func() error {
		resp.LowStock = h.service.LowStock()
		return nil
	})
	g.Go(func() error {
		resp.Trend = h.service.SevenDayTrend()
		return nil
	})
	g.Go(func() error {
		resp.Categories = h.service.SalesByCategory()
		return nil
	})
	g.Go(func() error {
		resp.TopProducts = h.service.TopProducts(0)
		return nil
	})
	if err := g.Wait(); err != nil {
		h.logger.Error("dashboard rollup", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, resp)
}
