package handlers

import (
	"net/http"

	"github.com/bloxedu/blox_backend/internal/adapters/news"
	"github.com/bloxedu/blox_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// newsHandler proxies crypto headlines so the frontend never holds the
// upstream API key.
type newsHandler struct {
	client *news.Client
}

func newNewsHandler(client *news.Client) *newsHandler {
	return &newsHandler{client: client}
}

// registerNewsRoutes registers the news proxy route.
func registerNewsRoutes(rg *gin.RouterGroup, client *news.Client) {
	h := newNewsHandler(client)
	rg.GET("/news", h.getNews)
}

// getNews godoc
// @Summary Get crypto headlines
// @Description Proxies the upstream news API; the response body is passed through verbatim
// @Tags news
// @Produce json
// @Param q query string false "Search query" default(cryptocurrency)
// @Success 200 {object} object
// @Failure 502 {object} map[string]string "News upstream unavailable"
// @Security BearerAuth
// @Router /news [get]
func (h *newsHandler) getNews(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	payload, err := h.client.Headlines(c.Request.Context(), c.Query("q"))
	if err != nil {
		logger.Warn("News fetch failed", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "News is currently unavailable"})
		return
	}
	c.Data(http.StatusOK, "application/json", payload)
}
