// Package handler exposes a read-only HTTP view of the dashboard state,
// plus a websocket feed that streams every state change.
package handler

import (
	"net/http"
	"strings"

	"botdeck/internal/domain"
	"botdeck/internal/store"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type Handler struct {
	tracer trace.Tracer
	store  *store.Store
	hub    *Hub
}

func New(tracer trace.Tracer, st *store.Store, hub *Hub) *Handler {
	return &Handler{
		tracer: tracer,
		store:  st,
		hub:    hub,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)
	r.GET("/api/state/dashboard", h.GetDashboard)
	r.GET("/api/state/signals", h.GetSignals)
	r.GET("/api/state/trades", h.GetTrades)
	r.GET("/api/state/accounts", h.GetAccounts)
	r.GET("/api/state/analytics", h.GetAnalytics)
	r.GET("/api/state/settings", h.GetSettings)
	r.GET("/api/state/theme", h.GetTheme)
	r.POST("/api/refresh/:category", h.Refresh)
	r.GET("/ws", h.hub.Serve)
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) GetDashboard(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "handler.get-dashboard")
	defer span.End()

	slice := store.SelectDashboard(h.store.State())
	c.JSON(http.StatusOK, gin.H{
		"loading": slice.Loading,
		"error":   slice.Err,
		"data":    slice.Data,
	})
}

func (h *Handler) GetSignals(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "handler.get-signals")
	defer span.End()

	slice := store.SelectSignals(h.store.State())
	c.JSON(http.StatusOK, gin.H{
		"loading": slice.Loading,
		"error":   slice.Err,
		"data":    slice.Signals,
	})
}

func (h *Handler) GetTrades(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "handler.get-trades")
	defer span.End()

	slice := store.SelectTrades(h.store.State())
	c.JSON(http.StatusOK, gin.H{
		"loading": slice.Loading,
		"error":   slice.Err,
		"data":    slice.Trades,
	})
}

func (h *Handler) GetAccounts(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "handler.get-accounts")
	defer span.End()

	slice := store.SelectAccounts(h.store.State())
	c.JSON(http.StatusOK, gin.H{
		"loading": slice.Loading,
		"error":   slice.Err,
		"data":    slice.Accounts,
	})
}

func (h *Handler) GetAnalytics(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "handler.get-analytics")
	defer span.End()

	slice := store.SelectAnalytics(h.store.State())
	c.JSON(http.StatusOK, gin.H{
		"loading":   slice.Loading,
		"error":     slice.Err,
		"timeRange": slice.TimeRange,
		"data":      slice.Data,
	})
}

func (h *Handler) GetSettings(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "handler.get-settings")
	defer span.End()

	slice := store.SelectSettings(h.store.State())
	c.JSON(http.StatusOK, gin.H{
		"loading": slice.Loading,
		"error":   slice.Err,
		"data":    slice.Settings,
	})
}

func (h *Handler) GetTheme(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"mode": store.SelectTheme(h.store.State())})
}

// Refresh dispatches the request event for a data category. The response is
// 202: the fetch runs asynchronously and its outcome lands in the state feed.
func (h *Handler) Refresh(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "handler.refresh")
	defer span.End()

	category := strings.ToLower(c.Param("category"))
	span.SetAttributes(attribute.String("category", category))

	switch category {
	case "dashboard":
		h.store.Dispatch(store.DashboardRequested{})
	case "signals":
		h.store.Dispatch(store.SignalsRequested{})
	case "trades":
		h.store.Dispatch(store.TradesRequested{})
	case "accounts":
		h.store.Dispatch(store.AccountsRequested{})
	case "analytics":
		tr := domain.TimeRange(c.DefaultQuery("range", string(domain.Range30D)))
		if !tr.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported time range: " + string(tr)})
			return
		}
		h.store.Dispatch(store.AnalyticsRequested{Range: tr})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown category: " + category})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"status": "refreshing", "category": category})
}
