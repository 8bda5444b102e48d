package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/bloxedu/blox_backend/internal/core/ports/services"
	"github.com/bloxedu/blox_backend/internal/dto"
	"github.com/bloxedu/blox_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// classroomHandler handles classroom and enrollment routes.
type classroomHandler struct {
	classroomService portssvc.ClassroomSvcFacade
}

func newClassroomHandler(cs portssvc.ClassroomSvcFacade) *classroomHandler {
	return &classroomHandler{classroomService: cs}
}

// registerClassroomRoutes registers routes related to classrooms.
func registerClassroomRoutes(rg *gin.RouterGroup, cs portssvc.ClassroomSvcFacade) {
	h := newClassroomHandler(cs)

	classrooms := rg.Group("/classrooms")
	{
		classrooms.POST("", h.createClassroom)
		classrooms.GET("", h.listMyClassrooms)
		classrooms.POST("/join", h.joinClassroom)
		classrooms.GET("/:id", h.getClassroom)
		classrooms.PATCH("/:id", h.renameClassroom)
		classrooms.POST("/:id/codes", h.generateJoinCode)
		classrooms.DELETE("/:id/students/:userID", h.removeStudent)
		classrooms.POST("/:id/admins/:userID", h.promoteAdmin)
		classrooms.DELETE("/:id/admins/:userID", h.demoteAdmin)
		classrooms.DELETE("/:id", h.deleteClassroom)
	}
}

// createClassroom godoc
// @Summary Create a classroom
// @Description Creates a classroom and its shared auto-wallet
// @Tags classrooms
// @Accept json
// @Produce json
// @Param classroom body dto.CreateClassroomRequest true "Classroom details"
// @Success 201 {object} dto.ClassroomResponse
// @Security BearerAuth
// @Router /classrooms [post]
func (h *classroomHandler) createClassroom(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateClassroomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createClassroom", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	classroom, err := h.classroomService.CreateClassroom(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create classroom")
		return
	}
	c.JSON(http.StatusCreated, dto.ToClassroomResponse(classroom, true))
}

// listMyClassrooms godoc
// @Summary List the caller's classrooms
// @Tags classrooms
// @Produce json
// @Success 200 {array} dto.ClassroomResponse
// @Security BearerAuth
// @Router /classrooms [get]
func (h *classroomHandler) listMyClassrooms(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	classrooms, err := h.classroomService.ListUserClassrooms(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list classrooms")
		return
	}

	resp := make([]dto.ClassroomResponse, len(classrooms))
	for i := range classrooms {
		resp[i] = dto.ToClassroomResponse(&classrooms[i], classrooms[i].IsAdmin(userID))
	}
	c.JSON(http.StatusOK, resp)
}

// joinClassroom godoc
// @Summary Join a classroom by code
// @Description Enrolls the caller as a student and adds them to the auto-wallet
// @Tags classrooms
// @Accept json
// @Produce json
// @Param code body dto.JoinClassroomRequest true "Join code"
// @Success 200 {object} dto.ClassroomResponse
// @Failure 404 {object} map[string]string "Unknown code"
// @Security BearerAuth
// @Router /classrooms/join [post]
func (h *classroomHandler) joinClassroom(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.JoinClassroomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for joinClassroom", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	classroom, err := h.classroomService.JoinByCode(c.Request.Context(), req.Code, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to join classroom")
		return
	}
	c.JSON(http.StatusOK, dto.ToClassroomResponse(classroom, classroom.IsAdmin(userID)))
}

// getClassroom godoc
// @Summary Get a classroom
// @Tags classrooms
// @Produce json
// @Param id path string true "Classroom ID"
// @Success 200 {object} dto.ClassroomResponse
// @Failure 403 {object} map[string]string "Not a member"
// @Failure 404 {object} map[string]string "Classroom not found"
// @Security BearerAuth
// @Router /classrooms/{id} [get]
func (h *classroomHandler) getClassroom(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	classroom, err := h.classroomService.GetClassroomByID(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to get classroom")
		return
	}
	c.JSON(http.StatusOK, dto.ToClassroomResponse(classroom, classroom.IsAdmin(userID)))
}

// renameClassroom godoc
// @Summary Rename a classroom
// @Tags classrooms
// @Accept json
// @Param id path string true "Classroom ID"
// @Param classroom body dto.UpdateClassroomRequest true "New name"
// @Success 204 "Renamed"
// @Failure 403 {object} map[string]string "Not a classroom admin"
// @Security BearerAuth
// @Router /classrooms/{id} [patch]
func (h *classroomHandler) renameClassroom(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateClassroomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for renameClassroom", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.classroomService.RenameClassroom(c.Request.Context(), c.Param("id"), req, userID); err != nil {
		respondServiceError(c, logger, err, "Failed to rename classroom")
		return
	}
	c.Status(http.StatusNoContent)
}

// generateJoinCode godoc
// @Summary Generate a join code
// @Tags classrooms
// @Produce json
// @Param id path string true "Classroom ID"
// @Success 201 {object} map[string]string "The new code"
// @Failure 403 {object} map[string]string "Not a classroom admin"
// @Security BearerAuth
// @Router /classrooms/{id}/codes [post]
func (h *classroomHandler) generateJoinCode(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	code, err := h.classroomService.GenerateJoinCode(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to generate join code")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"code": code})
}

// removeStudent godoc
// @Summary Remove a student from a classroom
// @Tags classrooms
// @Param id path string true "Classroom ID"
// @Param userID path string true "Student user ID"
// @Success 204 "Removed"
// @Failure 403 {object} map[string]string "Not a classroom admin"
// @Security BearerAuth
// @Router /classrooms/{id}/students/{userID} [delete]
func (h *classroomHandler) removeStudent(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.classroomService.RemoveStudent(c.Request.Context(), c.Param("id"), c.Param("userID"), userID); err != nil {
		respondServiceError(c, logger, err, "Failed to remove student")
		return
	}
	c.Status(http.StatusNoContent)
}

// promoteAdmin godoc
// @Summary Make a user a classroom admin
// @Description Grants admin on the classroom and its auto-wallet
// @Tags classrooms
// @Param id path string true "Classroom ID"
// @Param userID path string true "User ID"
// @Success 204 "Promoted"
// @Failure 403 {object} map[string]string "Not a classroom admin"
// @Failure 409 {object} map[string]string "Already an admin"
// @Security BearerAuth
// @Router /classrooms/{id}/admins/{userID} [post]
func (h *classroomHandler) promoteAdmin(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.classroomService.PromoteAdmin(c.Request.Context(), c.Param("id"), c.Param("userID"), userID); err != nil {
		respondServiceError(c, logger, err, "Failed to promote admin")
		return
	}
	c.Status(http.StatusNoContent)
}

// demoteAdmin godoc
// @Summary Strip classroom admin from a user
// @Description The last admin cannot be demoted
// @Tags classrooms
// @Param id path string true "Classroom ID"
// @Param userID path string true "User ID"
// @Success 204 "Demoted"
// @Failure 400 {object} map[string]string "Would leave no admins"
// @Failure 403 {object} map[string]string "Not a classroom admin"
// @Security BearerAuth
// @Router /classrooms/{id}/admins/{userID} [delete]
func (h *classroomHandler) demoteAdmin(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.classroomService.DemoteAdmin(c.Request.Context(), c.Param("id"), c.Param("userID"), userID); err != nil {
		respondServiceError(c, logger, err, "Failed to demote admin")
		return
	}
	c.Status(http.StatusNoContent)
}

// deleteClassroom godoc
// @Summary Delete a classroom
// @Description Removes the classroom; the auto-wallet and its balances survive
// @Tags classrooms
// @Param id path string true "Classroom ID"
// @Success 204 "Deleted"
// @Failure 403 {object} map[string]string "Not a classroom admin"
// @Security BearerAuth
// @Router /classrooms/{id} [delete]
func (h *classroomHandler) deleteClassroom(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.classroomService.DeleteClassroom(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondServiceError(c, logger, err, "Failed to delete classroom")
		return
	}
	c.Status(http.StatusNoContent)
}
