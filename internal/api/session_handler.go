package api

import (
	"errors"
	"net/http"

	"fittrack/coach-app/internal/domain"
	"fittrack/coach-app/internal/service"
	"fittrack/coach-app/internal/session"

	"github.com/gin-gonic/gin"
)

// SessionHandler exposes the per-user console session: which student a
// professional is working on, the session lifecycle state, and logout.
type SessionHandler struct {
	authService service.AuthService
	sessions    *session.Manager
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(authService service.AuthService, sessions *session.Manager) *SessionHandler {
	return &SessionHandler{authService: authService, sessions: sessions}
}

// resolveGate returns the caller's session gate with a loaded profile,
// driving the gate through authentication on first use. A missing profile
// triggers the single provisioning attempt; if that fails too, the session
// parks in the no-profile state and every call answers 503.
func resolveGate(c *gin.Context, authService service.AuthService, sessions *session.Manager) (*session.Gate, *domain.User, bool) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Invalid session")
		return nil, nil, false
	}
	gate := sessions.Gate(userID.Hex())

	if profile, err := gate.Profile(); err == nil {
		return gate, profile, true
	}

	role, _ := getUserRoleFromContext(c)
	name, email := getUserIdentityFromContext(c)
	if gate.State() == session.StateUnauthenticated {
		_ = gate.BeginAuth()
	}

	profile, err := authService.EnsureProfile(c.Request.Context(), userID, name, email, role)
	if err != nil {
		if gate.State() == session.StateAuthenticating {
			_ = gate.MarkProfileMissing()
		}
		abortWithError(c, http.StatusServiceUnavailable, "Profile could not be loaded")
		return nil, nil, false
	}
	if err := gate.CompleteAuth(profile); err != nil {
		abortWithError(c, http.StatusInternalServerError, "Session state error")
		return nil, nil, false
	}
	return gate, profile, true
}

// respondServiceError maps service and session errors to HTTP statuses.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, session.ErrValidation),
		errors.Is(err, service.ErrInvalidInput):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, session.ErrNotAuthenticated):
		abortWithError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, session.ErrNotPermitted),
		errors.Is(err, session.ErrStudentNotLinked),
		errors.Is(err, service.ErrStudentNotLinked),
		errors.Is(err, service.ErrNotNoticeOwner),
		errors.Is(err, service.ErrNotAuthor):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrStudentNotFound),
		errors.Is(err, service.ErrPlanNotFound),
		errors.Is(err, service.ErrExerciseNotFound),
		errors.Is(err, service.ErrMealNotFound),
		errors.Is(err, service.ErrNoticeNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrNotAStudent),
		errors.Is(err, service.ErrStudentAlreadyLinked),
		errors.Is(err, service.ErrNotLinked):
		abortWithError(c, http.StatusConflict, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}

// --- Session endpoints ---

type SessionResponse struct {
	State           session.State `json:"state"`
	Role            domain.Role   `json:"role"`
	SelectedStudent *string       `json:"selectedStudent,omitempty"`
}

// Get reports the current session state and effective subject.
func (h *SessionHandler) Get(c *gin.Context) {
	gate, profile, ok := resolveGate(c, h.authService, h.sessions)
	if !ok {
		return
	}

	resp := SessionResponse{State: gate.State(), Role: profile.Role}
	if profile.IsProfessional() {
		if subject, selected := gate.EffectiveSubject(); selected {
			hex := subject.Hex()
			resp.SelectedStudent = &hex
		}
	}
	c.JSON(http.StatusOK, resp)
}

// SelectStudent makes a linked student the professional's working subject.
func (h *SessionHandler) SelectStudent(c *gin.Context) {
	gate, _, ok := resolveGate(c, h.authService, h.sessions)
	if !ok {
		return
	}
	studentID, ok := pathObjectID(c, "studentId")
	if !ok {
		return
	}

	if err := gate.SelectStudent(studentID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ClearStudent deselects the professional's working subject.
func (h *SessionHandler) ClearStudent(c *gin.Context) {
	gate, _, ok := resolveGate(c, h.authService, h.sessions)
	if !ok {
		return
	}
	gate.ClearStudent()
	c.Status(http.StatusNoContent)
}

// Logout ends the session and discards all cached collections.
func (h *SessionHandler) Logout(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Invalid session")
		return
	}
	h.sessions.Drop(userID.Hex())
	c.Status(http.StatusNoContent)
}
