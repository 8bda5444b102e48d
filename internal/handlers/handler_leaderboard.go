package handlers

import (
	"net/http"

	portssvc "github.com/bloxedu/blox_backend/internal/core/ports/services"
	"github.com/bloxedu/blox_backend/internal/dto"
	"github.com/bloxedu/blox_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// leaderboardHandler serves the cached standings.
type leaderboardHandler struct {
	leaderboardService portssvc.LeaderboardSvcFacade
}

func newLeaderboardHandler(ls portssvc.LeaderboardSvcFacade) *leaderboardHandler {
	return &leaderboardHandler{leaderboardService: ls}
}

// registerLeaderboardRoutes registers leaderboard routes.
func registerLeaderboardRoutes(rg *gin.RouterGroup, ls portssvc.LeaderboardSvcFacade) {
	h := newLeaderboardHandler(ls)

	leaderboard := rg.Group("/leaderboard")
	{
		leaderboard.GET("", h.getLeaderboard)
		leaderboard.POST("/refresh", h.refreshLeaderboard)
	}
}

// getLeaderboard godoc
// @Summary Get the leaderboard
// @Description Returns the cached snapshot with its refresh timestamp
// @Tags leaderboard
// @Produce json
// @Success 200 {object} dto.LeaderboardResponse
// @Failure 502 {object} map[string]string "Rate source unavailable"
// @Security BearerAuth
// @Router /leaderboard [get]
func (h *leaderboardHandler) getLeaderboard(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	snapshot, err := h.leaderboardService.Get(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to get leaderboard")
		return
	}
	c.JSON(http.StatusOK, dto.ToLeaderboardResponse(snapshot))
}

// refreshLeaderboard godoc
// @Summary Force a leaderboard refresh
// @Tags leaderboard
// @Produce json
// @Success 200 {object} dto.LeaderboardResponse
// @Failure 502 {object} map[string]string "Rate source unavailable"
// @Security BearerAuth
// @Router /leaderboard/refresh [post]
func (h *leaderboardHandler) refreshLeaderboard(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	snapshot, err := h.leaderboardService.Refresh(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to refresh leaderboard")
		return
	}
	c.JSON(http.StatusOK, dto.ToLeaderboardResponse(snapshot))
}
