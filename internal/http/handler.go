package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"callcenter-analytics/internal/model"
	"callcenter-analytics/internal/service"
)

type Handler struct {
	analytics *service.AnalyticsService
	log       zerolog.Logger
}

func NewHandler(analytics *service.AnalyticsService, log zerolog.Logger) *Handler {
	return &Handler{analytics: analytics, log: log}
}

func (h *Handler) Register(r *gin.Engine) {
	api := r.Group("/api")

	overview := api.Group("/overview")
	overview.GET("", h.getOverviewPage)
	overview.GET("/stats", h.getOverviewStats)
	overview.GET("/hourly", h.getCallsByHour)
	overview.GET("/response-trend", h.getResponseTimeTrend)
	overview.GET("/agents", h.getAgentStats)

	performance := api.Group("/performance")
	performance.GET("", h.getPerformancePage)
	performance.GET("/stats", h.getPerformanceStats)
	performance.GET("/daily-volume", h.getDailyVolume)
	performance.GET("/efficiency", h.getEfficiencyMetrics)
	performance.GET("/daily-breakdown", h.getDailyBreakdown)

	api.GET("/history", h.getCallHistory)
	api.GET("/history/export", h.exportCallHistory)

	analytics := api.Group("/analytics")
	analytics.GET("", h.getAnalyticsPage)
	analytics.GET("/weekly-trend", h.getWeeklyTrend)
	analytics.GET("/top-agents", h.getTopAgents)
	analytics.GET("/peak-hours", h.getPeakHours)
	analytics.GET("/response-time", h.getAverageResponseTime)

	api.GET("/agents", h.listAgents)
	api.GET("/dates", h.listDates)
}

func (h *Handler) getOverviewPage(c *gin.Context) {
	page, err := h.analytics.GetOverviewPage(c.Request.Context(), periodParam(c))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(page))
}

func (h *Handler) getOverviewStats(c *gin.Context) {
	stats, err := h.analytics.GetOverviewStats(c.Request.Context(), periodParam(c))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(stats))
}

func (h *Handler) getCallsByHour(c *gin.Context) {
	hourly, err := h.analytics.GetCallsByHour(c.Request.Context(), periodParam(c))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(hourly))
}

func (h *Handler) getResponseTimeTrend(c *gin.Context) {
	trend, err := h.analytics.GetResponseTimeTrend(c.Request.Context(), periodParam(c))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(trend))
}

func (h *Handler) getAgentStats(c *gin.Context) {
	agents, err := h.analytics.GetAgentStats(c.Request.Context(), periodParam(c))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(agents))
}

func (h *Handler) getPerformancePage(c *gin.Context) {
	page, err := h.analytics.GetPerformancePage(c.Request.Context(), periodParam(c), agentParam(c))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(page))
}

func (h *Handler) getPerformanceStats(c *gin.Context) {
	stats, err := h.analytics.GetPerformanceStats(c.Request.Context(), periodParam(c), agentParam(c))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(stats))
}

func (h *Handler) getDailyVolume(c *gin.Context) {
	volume, err := h.analytics.GetDailyVolume(c.Request.Context(), periodParam(c), agentParam(c))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(volume))
}

func (h *Handler) getEfficiencyMetrics(c *gin.Context) {
	metrics, err := h.analytics.GetEfficiencyMetrics(c.Request.Context(), periodParam(c), agentParam(c))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(metrics))
}

func (h *Handler) getDailyBreakdown(c *gin.Context) {
	breakdown, err := h.analytics.GetDailyBreakdown(c.Request.Context(), periodParam(c), agentParam(c))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(breakdown))
}

func (h *Handler) getCallHistory(c *gin.Context) {
	history, err := h.analytics.GetCallHistory(c.Request.Context(), parseHistoryFilter(c))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(history))
}

func (h *Handler) exportCallHistory(c *gin.Context) {
	export, err := h.analytics.ExportCallHistory(c.Request.Context(), parseHistoryFilter(c))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+export.Filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", export.Content)
}

func (h *Handler) getAnalyticsPage(c *gin.Context) {
	page, err := h.analytics.GetAnalyticsPage(c.Request.Context(), limitParam(c))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(page))
}

func (h *Handler) getWeeklyTrend(c *gin.Context) {
	trend, err := h.analytics.GetWeeklyTrend(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(trend))
}

func (h *Handler) getTopAgents(c *gin.Context) {
	agents, err := h.analytics.GetTopAgents(c.Request.Context(), limitParam(c))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(agents))
}

func (h *Handler) getPeakHours(c *gin.Context) {
	peaks, err := h.analytics.GetPeakHours(c.Request.Context(), limitParam(c))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(peaks))
}

func (h *Handler) getAverageResponseTime(c *gin.Context) {
	summary, err := h.analytics.GetAverageResponseTime(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(summary))
}

func (h *Handler) listAgents(c *gin.Context) {
	agents, err := h.analytics.ListAgents(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(agents))
}

func (h *Handler) listDates(c *gin.Context) {
	dates, err := h.analytics.ListDates(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(dates))
}

func periodParam(c *gin.Context) string {
	return strings.TrimSpace(c.Query("period"))
}

func agentParam(c *gin.Context) string {
	return strings.TrimSpace(c.Query("agent"))
}

func limitParam(c *gin.Context) int {
	limit, err := strconv.Atoi(strings.TrimSpace(c.Query("limit")))
	if err != nil || limit < 0 {
		return 0
	}
	return limit
}

func parseHistoryFilter(c *gin.Context) model.HistoryFilter {
	filter := model.HistoryFilter{
		Date:   strings.TrimSpace(c.Query("date")),
		Agent:  agentParam(c),
		Type:   strings.TrimSpace(c.Query("type")),
		Status: strings.TrimSpace(c.Query("status")),
	}
	if page, err := strconv.Atoi(strings.TrimSpace(c.Query("page"))); err == nil {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(strings.TrimSpace(c.Query("limit"))); err == nil {
		filter.Limit = limit
	}
	return filter
}

// handleError maps a failed datastore fetch to a generic 500; the real
// cause goes to the log only.
func (h *Handler) handleError(c *gin.Context, err error) {
	h.log.Error().Err(err).Str("path", c.FullPath()).Msg("handler error")
	c.JSON(http.StatusInternalServerError, errorResponse("internal error"))
}

func successResponse(data interface{}) gin.H {
	return gin.H{"data": data}
}

func errorResponse(message string) gin.H {
	return gin.H{"error": message}
}
