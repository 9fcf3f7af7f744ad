package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/edumind/elearn-backend/internal/middleware"
	"github.com/edumind/elearn-backend/internal/model"
	"github.com/edumind/elearn-backend/internal/response"
	"github.com/edumind/elearn-backend/internal/service"
	"github.com/edumind/elearn-backend/internal/validator"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

// AdminHandler handles course/lecture management, the dashboard, and the
// superadmin user-management endpoints.
type AdminHandler struct {
	courseService  *service.CourseService
	lectureService *service.LectureService
	mediaService   *service.MediaService
	userService    *service.UserService
	statsService   *service.StatsService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(
	courseService *service.CourseService,
	lectureService *service.LectureService,
	mediaService *service.MediaService,
	userService *service.UserService,
	statsService *service.StatsService,
) *AdminHandler {
	return &AdminHandler{
		courseService:  courseService,
		lectureService: lectureService,
		mediaService:   mediaService,
		userService:    userService,
		statsService:   statsService,
	}
}

// CreateCourse godoc
// POST /api/v1/admin/courses
// Multipart form: course fields plus the cover image as "file".
func (h *AdminHandler) CreateCourse(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.CreateCourseRequest
	if fields := validator.BindForm(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	image, ok := h.saveUpload(c, service.MediaKindImage)
	if !ok {
		return
	}

	course := &model.Course{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		Duration:    req.Duration,
		CreatedBy:   claims.UserID,
		Image:       image,
	}
	if err := h.courseService.Create(c.Request.Context(), course); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"course": course})
}

// AddLecture godoc
// POST /api/v1/admin/courses/:id/lectures
// Multipart form: lecture fields plus the video as "file".
func (h *AdminHandler) AddLecture(c *gin.Context) {
	courseID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.AddLectureRequest
	if fields := validator.BindForm(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	video, ok := h.saveUpload(c, service.MediaKindVideo)
	if !ok {
		return
	}

	lecture := &model.Lecture{
		Title:       req.Title,
		Description: req.Description,
		Video:       video,
		CourseID:    courseID,
	}
	if err := h.lectureService.Add(c.Request.Context(), lecture); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"lecture": lecture})
}

// DeleteLecture godoc
// DELETE /api/v1/admin/lectures/:id
func (h *AdminHandler) DeleteLecture(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.lectureService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Lecture deleted"})
}

// DeleteCourse godoc
// DELETE /api/v1/admin/courses/:id
// Cascades to lectures, enrollments and progress; files are removed
// best-effort after the delete commits.
func (h *AdminHandler) DeleteCourse(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.courseService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Course deleted"})
}

// GetStats godoc
// GET /api/v1/admin/stats
func (h *AdminHandler) GetStats(c *gin.Context) {
	stats, err := h.statsService.Totals(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"stats": stats})
}

// ListUsers godoc
// GET /api/v1/superadmin/users
// Returns every user except the caller.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	users, err := h.userService.ListExcept(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if users == nil {
		users = []model.User{}
	}

	response.Success(c, http.StatusOK, gin.H{"users": users})
}

// UpdateRole godoc
// PUT /api/v1/superadmin/users/:id/role
// Toggles a user between the user and admin roles.
func (h *AdminHandler) UpdateRole(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	role, err := h.userService.ToggleRole(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Role updated", "role": role})
}

// saveUpload pulls the "file" part out of the multipart form and stores
// it. Writes the failure response itself.
func (h *AdminHandler) saveUpload(c *gin.Context, kind service.MediaKind) (string, bool) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrFileRequired)
		return "", false
	}
	defer file.Close()

	url, err := h.mediaService.SaveUpload(file, header, kind)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnsupportedFileType):
			response.Fail(c, http.StatusBadRequest, response.ErrUnsupportedFile)
		case errors.Is(err, service.ErrFileTooLarge):
			response.Fail(c, http.StatusBadRequest, response.ErrFileTooLarge)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return "", false
	}

	return url, true
}
