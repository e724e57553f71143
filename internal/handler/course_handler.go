package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/jomadlcrz/class-schedule-backend/internal/middleware"
	"github.com/jomadlcrz/class-schedule-backend/internal/model"
	"github.com/jomadlcrz/class-schedule-backend/internal/response"
	"github.com/jomadlcrz/class-schedule-backend/internal/schedule"
	"github.com/jomadlcrz/class-schedule-backend/internal/service"
	"github.com/jomadlcrz/class-schedule-backend/internal/validator"
)

// CourseHandler exposes the per-user course CRUD surface.
type CourseHandler struct {
	courseService *service.CourseService
	log           zerolog.Logger
}

func NewCourseHandler(courseService *service.CourseService, log zerolog.Logger) *CourseHandler {
	return &CourseHandler{
		courseService: courseService,
		log:           log.With().Str("component", "course_handler").Logger(),
	}
}

// ListCourses godoc
// GET /api/courses
// Returns the caller's courses, most recent first. Optional ?sort= and
// ?dir= apply the display ordering server-side.
func (h *CourseHandler) ListCourses(c *gin.Context) {
	identity := middleware.GetIdentity(c)

	courses, err := h.courseService.List(c.Request.Context(), identity.Email)
	if err != nil {
		h.log.Error().Err(err).Msg("List courses failed")
		response.Error(c, http.StatusInternalServerError, response.MsgServerError)
		return
	}

	if sortKey := c.Query("sort"); sortKey != "" {
		if !schedule.IsSortKey(sortKey) {
			response.Error(c, http.StatusBadRequest, "Invalid sort key")
			return
		}
		dir := c.DefaultQuery("dir", "asc")
		if dir != "asc" && dir != "desc" {
			response.Error(c, http.StatusBadRequest, "Invalid sort direction")
			return
		}
		courses = schedule.Sort(courses, sortKey, dir)
	}

	c.JSON(http.StatusOK, courses)
}

// CreateCourse godoc
// POST /api/courses
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	identity := middleware.GetIdentity(c)

	var draft model.CourseDraft
	if msg := validator.Bind(c, &draft); msg != "" {
		response.Error(c, http.StatusBadRequest, msg)
		return
	}

	course, err := h.courseService.Create(c.Request.Context(), identity.Email, draft)
	if err != nil {
		h.respondCourseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, course)
}

// UpdateCourse godoc
// PUT /api/courses/:id
func (h *CourseHandler) UpdateCourse(c *gin.Context) {
	identity := middleware.GetIdentity(c)

	var draft model.CourseDraft
	if msg := validator.Bind(c, &draft); msg != "" {
		response.Error(c, http.StatusBadRequest, msg)
		return
	}

	course, err := h.courseService.Update(c.Request.Context(), identity.Email, c.Param("id"), draft)
	if err != nil {
		h.respondCourseError(c, err)
		return
	}

	c.JSON(http.StatusOK, course)
}

// DeleteCourse godoc
// DELETE /api/courses/:id
func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	identity := middleware.GetIdentity(c)

	if err := h.courseService.Delete(c.Request.Context(), identity.Email, c.Param("id")); err != nil {
		h.respondCourseError(c, err)
		return
	}

	response.Message(c, http.StatusOK, response.MsgCourseDeleted)
}

// Timeslots godoc
// GET /api/timeslots
// The discrete half-hour values the editor offers for both range endpoints.
func (h *CourseHandler) Timeslots(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"slots": schedule.Slots()})
}

// respondCourseError maps service errors onto the REST error surface.
func (h *CourseHandler) respondCourseError(c *gin.Context, err error) {
	var validationErr *service.ValidationError
	var conflictErr *service.ConflictError

	switch {
	case errors.As(err, &validationErr):
		response.Error(c, http.StatusBadRequest, validationErr.Message)
	case errors.As(err, &conflictErr):
		response.Error(c, http.StatusBadRequest, conflictErr.Message)
	case errors.Is(err, service.ErrCourseNotFound):
		response.Error(c, http.StatusNotFound, response.MsgCourseNotFound)
	case errors.Is(err, service.ErrNotOwner):
		response.Error(c, http.StatusForbidden, response.MsgUnauthorized)
	default:
		h.log.Error().Err(err).Msg("Course operation failed")
		response.Error(c, http.StatusInternalServerError, response.MsgServerError)
	}
}
