package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/edumind/elearn-backend/internal/middleware"
	"github.com/edumind/elearn-backend/internal/response"
	"github.com/edumind/elearn-backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

// ProgressHandler handles lecture-completion tracking endpoints.
type ProgressHandler struct {
	progressService *service.ProgressService
}

// NewProgressHandler creates a new ProgressHandler.
func NewProgressHandler(progressService *service.ProgressService) *ProgressHandler {
	return &ProgressHandler{progressService: progressService}
}

// AddProgress godoc
// POST /api/v1/user/progress?course=<id>&lecture=<id>
// Marks a lecture completed. Repeating a lecture is a success no-op.
func (h *ProgressHandler) AddProgress(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	courseID, err := strconv.Atoi(c.Query("course"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}
	lectureID, err := strconv.Atoi(c.Query("lecture"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	added, err := h.progressService.RecordCompletion(c.Request.Context(), claims.UserID, courseID, lectureID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if !added {
		response.Success(c, http.StatusOK, gin.H{"message": "Progress already recorded"})
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"message": "New progress added"})
}

// GetProgress godoc
// GET /api/v1/user/progress?course=<id>
// Returns the completion summary for a course.
func (h *ProgressHandler) GetProgress(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	courseID, err := strconv.Atoi(c.Query("course"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	report, err := h.progressService.Report(c.Request.Context(), claims.UserID, courseID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"progress": report})
}
