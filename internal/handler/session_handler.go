package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/jomadlcrz/class-schedule-backend/internal/middleware"
	"github.com/jomadlcrz/class-schedule-backend/internal/model"
	"github.com/jomadlcrz/class-schedule-backend/internal/response"
	"github.com/jomadlcrz/class-schedule-backend/internal/service"
	"github.com/jomadlcrz/class-schedule-backend/internal/validator"
)

// SessionHandler serves the authenticated session surface: the verified
// identity and the persisted display preference.
type SessionHandler struct {
	preferenceService *service.PreferenceService
	log               zerolog.Logger
}

func NewSessionHandler(preferenceService *service.PreferenceService, log zerolog.Logger) *SessionHandler {
	return &SessionHandler{
		preferenceService: preferenceService,
		log:               log.With().Str("component", "session_handler").Logger(),
	}
}

// Me godoc
// GET /api/me
// Returns the identity the credential verified to.
func (h *SessionHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, middleware.GetIdentity(c))
}

// GetPreference godoc
// GET /api/preferences
// Returns the caller's saved display preference, defaulting to time/asc.
func (h *SessionHandler) GetPreference(c *gin.Context) {
	identity := middleware.GetIdentity(c)

	pref, err := h.preferenceService.Get(c.Request.Context(), identity.Email)
	if err != nil {
		h.log.Error().Err(err).Msg("Load preference failed")
		response.Error(c, http.StatusInternalServerError, response.MsgServerError)
		return
	}

	c.JSON(http.StatusOK, pref)
}

// UpdatePreference godoc
// PUT /api/preferences
func (h *SessionHandler) UpdatePreference(c *gin.Context) {
	identity := middleware.GetIdentity(c)

	var req model.UpdatePreferenceRequest
	if msg := validator.Bind(c, &req); msg != "" {
		response.Error(c, http.StatusBadRequest, msg)
		return
	}

	pref, err := h.preferenceService.Save(c.Request.Context(), identity.Email, req.SortKey, req.Direction)
	if err != nil {
		h.log.Error().Err(err).Msg("Save preference failed")
		response.Error(c, http.StatusInternalServerError, response.MsgServerError)
		return
	}

	c.JSON(http.StatusOK, pref)
}
