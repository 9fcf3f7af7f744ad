package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/edumind/elearn-backend/internal/middleware"
	"github.com/edumind/elearn-backend/internal/model"
	"github.com/edumind/elearn-backend/internal/response"
	"github.com/edumind/elearn-backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

// CourseHandler handles public and subscriber-facing course endpoints.
type CourseHandler struct {
	courseService     *service.CourseService
	lectureService    *service.LectureService
	enrollmentService *service.EnrollmentService
}

// NewCourseHandler creates a new CourseHandler.
func NewCourseHandler(
	courseService *service.CourseService,
	lectureService *service.LectureService,
	enrollmentService *service.EnrollmentService,
) *CourseHandler {
	return &CourseHandler{
		courseService:     courseService,
		lectureService:    lectureService,
		enrollmentService: enrollmentService,
	}
}

// ListCourses godoc
// GET /api/v1/public/courses
func (h *CourseHandler) ListCourses(c *gin.Context) {
	courses, err := h.courseService.List(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if courses == nil {
		courses = []model.Course{}
	}

	response.Success(c, http.StatusOK, gin.H{"courses": courses})
}

// GetCourse godoc
// GET /api/v1/public/courses/:id
func (h *CourseHandler) GetCourse(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	course, err := h.courseService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"course": course})
}

// ListMyCourses godoc
// GET /api/v1/user/courses
// Returns the courses the authenticated user is enrolled in.
func (h *CourseHandler) ListMyCourses(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	courses, err := h.courseService.ListByUser(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if courses == nil {
		courses = []model.Course{}
	}

	response.Success(c, http.StatusOK, gin.H{"courses": courses})
}

// ListLectures godoc
// GET /api/v1/user/courses/:id/lectures
// Admins see every course; everyone else must be enrolled.
func (h *CourseHandler) ListLectures(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	courseID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if _, err := h.courseService.GetByID(c.Request.Context(), courseID); err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	if !h.canAccess(c, claims, courseID) {
		return
	}

	lectures, err := h.lectureService.ListByCourse(c.Request.Context(), courseID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if lectures == nil {
		lectures = []model.Lecture{}
	}

	response.Success(c, http.StatusOK, gin.H{"lectures": lectures})
}

// GetLecture godoc
// GET /api/v1/user/lectures/:id
func (h *CourseHandler) GetLecture(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	lecture, err := h.lectureService.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if !h.canAccess(c, claims, lecture.CourseID) {
		return
	}

	response.Success(c, http.StatusOK, gin.H{"lecture": lecture})
}

// canAccess allows admins through and requires enrollment for everyone
// else. Writes the failure response itself.
func (h *CourseHandler) canAccess(c *gin.Context, claims *service.Claims, courseID int) bool {
	if claims.Role == model.RoleAdmin || claims.Role == model.RoleSuperadmin {
		return true
	}

	enrolled, err := h.enrollmentService.IsEnrolled(c.Request.Context(), claims.UserID, courseID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return false
	}
	if !enrolled {
		response.Fail(c, http.StatusForbidden, response.ErrNotSubscribed)
		return false
	}
	return true
}
