package api

import (
	"context"
	"fmt"
	"net/http"

	"fittrack/coach-app/internal/domain"
	"fittrack/coach-app/internal/projection"
	"fittrack/coach-app/internal/service"
	"fittrack/coach-app/internal/session"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StudentHandler exposes a student's own dashboard: weight and load
// logging, the weekly training and diet views, and the notice board.
// Logging mutations run through the session coordinator so a student can
// only ever append to their own history.
type StudentHandler struct {
	studentService service.StudentService
	authService    service.AuthService
	sessions       *session.Manager
}

// NewStudentHandler creates a new StudentHandler.
func NewStudentHandler(studentService service.StudentService, authService service.AuthService, sessions *session.Manager) *StudentHandler {
	return &StudentHandler{
		studentService: studentService,
		authService:    authService,
		sessions:       sessions,
	}
}

// --- Request/Response structs ---

type LogWeightRequest struct {
	Weight float64 `json:"weight" binding:"required,gt=0"`
}

type LogLoadRequest struct {
	ExerciseID string  `json:"exerciseId" binding:"required"`
	Load       float64 `json:"load" binding:"required,gt=0"`
}

// StudentNoticeRequest carries no severity field: student notices are
// always posted at normal severity.
type StudentNoticeRequest struct {
	Message string `json:"message" binding:"required"`
}

type WeightHistoryResponse struct {
	Entries []WeightEntryResponse    `json:"entries"`
	Summary projection.WeightSummary `json:"summary"`
}

type NoticeBoardResponse struct {
	Notices []NoticeResponse        `json:"notices"`
	Counts  projection.NoticeCounts `json:"counts"`
}

func (h *StudentHandler) session(c *gin.Context) (*session.Gate, *domain.User, bool) {
	return resolveGate(c, h.authService, h.sessions)
}

// --- Weight ---

// LogWeight appends a weight entry to the student's own history.
func (h *StudentHandler) LogWeight(c *gin.Context) {
	gate, profile, ok := h.session(c)
	if !ok {
		return
	}
	var req LogWeightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	var created *domain.WeightEntry
	coord := session.NewCoordinator(gate)
	err := coord.Create(c.Request.Context(), session.Mutation{
		Kind:    session.KindWeightEntry,
		OwnerID: profile.ID,
		Remote: func(ctx context.Context) error {
			entry, err := h.studentService.LogWeight(ctx, profile.ID, req.Weight)
			if err != nil {
				return err
			}
			created = entry
			return nil
		},
		Apply: func(s *session.Snapshot) {
			s.AddWeight(*created)
		},
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapWeightEntryToResponse(created))
}

// GetWeightHistory returns the raw entries plus the derived summary.
func (h *StudentHandler) GetWeightHistory(c *gin.Context) {
	gate, profile, ok := h.session(c)
	if !ok {
		return
	}

	gen := gate.BeginFetch()
	history, err := h.studentService.GetWeightHistory(c.Request.Context(), profile.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	gate.ApplyFetch(gen, func(s *session.Snapshot) {
		s.Weights = history.Entries
	})

	resp := WeightHistoryResponse{Summary: history.Summary}
	resp.Entries = make([]WeightEntryResponse, len(history.Entries))
	for i := range history.Entries {
		resp.Entries[i] = MapWeightEntryToResponse(&history.Entries[i])
	}
	c.JSON(http.StatusOK, resp)
}

// --- Load ---

// LogLoad records a lift load against one of the student's exercises.
func (h *StudentHandler) LogLoad(c *gin.Context) {
	gate, profile, ok := h.session(c)
	if !ok {
		return
	}
	var req LogLoadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	var created *domain.LoadEntry
	coord := session.NewCoordinator(gate)
	err := coord.Create(c.Request.Context(), session.Mutation{
		Kind:    session.KindLoadEntry,
		OwnerID: profile.ID,
		Validate: func() error {
			if _, err := primitive.ObjectIDFromHex(req.ExerciseID); err != nil {
				return fmt.Errorf("invalid exercise id")
			}
			return nil
		},
		Remote: func(ctx context.Context) error {
			exerciseID, _ := primitive.ObjectIDFromHex(req.ExerciseID)
			entry, err := h.studentService.LogLoad(ctx, profile.ID, exerciseID, req.Load)
			if err != nil {
				return err
			}
			created = entry
			return nil
		},
		Apply: func(s *session.Snapshot) {
			s.AddLoad(*created)
		},
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"id":         created.ID.Hex(),
		"exerciseId": created.ExerciseID.Hex(),
		"load":       created.Load,
		"createdAt":  created.CreatedAt,
	})
}

// GetLoadHistory returns per-exercise load series, ascending in time.
func (h *StudentHandler) GetLoadHistory(c *gin.Context) {
	_, profile, ok := h.session(c)
	if !ok {
		return
	}

	series, err := h.studentService.GetLoadHistory(c.Request.Context(), profile.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, series)
}

// --- Weekly views ---

// GetTrainingWeek returns the weekday-grouped training view.
func (h *StudentHandler) GetTrainingWeek(c *gin.Context) {
	_, profile, ok := h.session(c)
	if !ok {
		return
	}

	week, err := h.studentService.GetTrainingWeek(c.Request.Context(), profile.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, week.Days)
}

// GetDietWeek returns the weekday-grouped diet view.
func (h *StudentHandler) GetDietWeek(c *gin.Context) {
	_, profile, ok := h.session(c)
	if !ok {
		return
	}

	week, err := h.studentService.GetDietWeek(c.Request.Context(), profile.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, week.Days)
}

// --- Notices ---

// GetNotices returns the student's notice board with unread counts.
func (h *StudentHandler) GetNotices(c *gin.Context) {
	gate, profile, ok := h.session(c)
	if !ok {
		return
	}

	gen := gate.BeginFetch()
	board, err := h.studentService.GetNotices(c.Request.Context(), profile.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	gate.ApplyFetch(gen, func(s *session.Snapshot) {
		s.Notices = board.Notices
	})

	resp := NoticeBoardResponse{Counts: board.Counts}
	resp.Notices = make([]NoticeResponse, len(board.Notices))
	for i := range board.Notices {
		resp.Notices[i] = MapNoticeToResponse(&board.Notices[i])
	}
	c.JSON(http.StatusOK, resp)
}

// MarkNoticeRead flips the read flag on one of the student's notices.
func (h *StudentHandler) MarkNoticeRead(c *gin.Context) {
	gate, profile, ok := h.session(c)
	if !ok {
		return
	}
	noticeID, ok := pathObjectID(c, "noticeId")
	if !ok {
		return
	}

	coord := session.NewCoordinator(gate)
	err := coord.Update(c.Request.Context(), session.Mutation{
		Kind:    session.KindNoticeReadState,
		OwnerID: profile.ID,
		Remote: func(ctx context.Context) error {
			return h.studentService.MarkNoticeRead(ctx, profile.ID, noticeID)
		},
		Apply: func(s *session.Snapshot) {
			s.MarkNoticeRead(noticeID)
		},
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SendNotice posts a student-authored notice to the shared board.
func (h *StudentHandler) SendNotice(c *gin.Context) {
	gate, profile, ok := h.session(c)
	if !ok {
		return
	}
	var req StudentNoticeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	var created *domain.Notice
	coord := session.NewCoordinator(gate)
	err := coord.Create(c.Request.Context(), session.Mutation{
		Kind:    session.KindNotice,
		OwnerID: profile.ID,
		Remote: func(ctx context.Context) error {
			notice, err := h.studentService.SendNotice(ctx, profile.ID, req.Message)
			if err != nil {
				return err
			}
			created = notice
			return nil
		},
		Apply: func(s *session.Snapshot) {
			s.AddNotice(*created)
		},
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapNoticeToResponse(created))
}

// DeleteNotice removes a notice the student authored.
func (h *StudentHandler) DeleteNotice(c *gin.Context) {
	gate, profile, ok := h.session(c)
	if !ok {
		return
	}
	noticeID, ok := pathObjectID(c, "noticeId")
	if !ok {
		return
	}

	coord := session.NewCoordinator(gate)
	err := coord.Delete(c.Request.Context(), session.Mutation{
		Kind:    session.KindNotice,
		OwnerID: profile.ID,
		Remote: func(ctx context.Context) error {
			return h.studentService.DeleteOwnNotice(ctx, profile.ID, noticeID)
		},
		Apply: func(s *session.Snapshot) {
			s.RemoveNotice(noticeID)
		},
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
