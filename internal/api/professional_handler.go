package api

import (
	"context"
	"fmt"
	"net/http"

	"fittrack/coach-app/internal/domain"
	"fittrack/coach-app/internal/projection"
	"fittrack/coach-app/internal/repository"
	"fittrack/coach-app/internal/service"
	"fittrack/coach-app/internal/session"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProfessionalHandler exposes the coaching console: roster management and
// all per-student editing. Entity edits go through the session coordinator,
// so ownership is checked before any store call and the session's cached
// snapshot stays equal to confirmed remote state.
type ProfessionalHandler struct {
	professionalService service.ProfessionalService
	studentService      service.StudentService
	reportService       service.ReportService
	authService         service.AuthService
	sessions            *session.Manager
}

// NewProfessionalHandler creates a new ProfessionalHandler.
func NewProfessionalHandler(
	professionalService service.ProfessionalService,
	studentService service.StudentService,
	reportService service.ReportService,
	authService service.AuthService,
	sessions *session.Manager,
) *ProfessionalHandler {
	return &ProfessionalHandler{
		professionalService: professionalService,
		studentService:      studentService,
		reportService:       reportService,
		authService:         authService,
		sessions:            sessions,
	}
}

// --- Request structs ---

type AddStudentRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type StudentSettingsRequest struct {
	Goal         *string               `json:"goal"`
	TargetWeight *float64              `json:"targetWeight"`
	Status       *domain.StudentStatus `json:"status"`
}

type CreatePlanRequest struct {
	Weekday     domain.Weekday `json:"weekday" binding:"required"`
	WorkoutType string         `json:"workoutType" binding:"required"`
}

type UpdatePlanRequest struct {
	WorkoutType string `json:"workoutType" binding:"required"`
}

type ExerciseRequest struct {
	Name string `json:"name" binding:"required"`
	Sets int    `json:"sets" binding:"required,min=1"`
	Reps string `json:"reps" binding:"required"`
}

type MealRequest struct {
	Weekday     domain.Weekday  `json:"weekday" binding:"required"`
	MealType    domain.MealType `json:"mealType" binding:"required"`
	Time        string          `json:"time" binding:"required"`
	Description string          `json:"description" binding:"required"`
}

type UpdateMealRequest struct {
	MealType    domain.MealType `json:"mealType" binding:"required"`
	Time        string          `json:"time" binding:"required"`
	Description string          `json:"description" binding:"required"`
}

type NoticeRequest struct {
	Message  string                `json:"message" binding:"required"`
	Severity domain.NoticeSeverity `json:"severity" binding:"required"`
}

type SeverityRequest struct {
	Severity domain.NoticeSeverity `json:"severity" binding:"required"`
}

// OverviewResponse is everything the console shows for the selected student.
type OverviewResponse struct {
	Student    UserResponse                      `json:"student"`
	Weight     projection.WeightSummary          `json:"weight"`
	WeightLog  []WeightEntryResponse             `json:"weightLog"`
	Training   []projection.WeekdayTraining      `json:"training"`
	Diet       []projection.WeekdayMeals         `json:"diet"`
	LoadSeries map[string][]projection.LoadPoint `json:"loadSeries"`
	Notices    []NoticeResponse                  `json:"notices"`
	Counts     projection.NoticeCounts           `json:"counts"`
}

// session resolves the caller's gate and profile.
func (h *ProfessionalHandler) session(c *gin.Context) (*session.Gate, *domain.User, bool) {
	return resolveGate(c, h.authService, h.sessions)
}

// subject returns the professional's selected student, or aborts.
func (h *ProfessionalHandler) subject(c *gin.Context, gate *session.Gate) (primitive.ObjectID, bool) {
	subject, ok := gate.EffectiveSubject()
	if !ok {
		abortWithError(c, http.StatusBadRequest, session.ErrNoSubjectSelected.Error())
		return primitive.NilObjectID, false
	}
	return subject, true
}

// --- Roster ---

// GetStudents lists the professional's linked students.
func (h *ProfessionalHandler) GetStudents(c *gin.Context) {
	_, profile, ok := h.session(c)
	if !ok {
		return
	}

	students, err := h.professionalService.GetStudents(c.Request.Context(), profile.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	resp := make([]UserResponse, len(students))
	for i := range students {
		resp[i] = MapUserToResponse(&students[i])
	}
	c.JSON(http.StatusOK, resp)
}

// AddStudent links an existing student account by email. The session is
// dropped afterwards so the next request reloads the enlarged roster.
func (h *ProfessionalHandler) AddStudent(c *gin.Context) {
	_, profile, ok := h.session(c)
	if !ok {
		return
	}
	var req AddStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	student, err := h.professionalService.AddStudentByEmail(c.Request.Context(), profile.ID, req.Email)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.sessions.Drop(profile.ID.Hex())
	c.JSON(http.StatusCreated, MapUserToResponse(student))
}

// RemoveStudent unlinks a student. The student account and its data survive;
// only the link is severed.
func (h *ProfessionalHandler) RemoveStudent(c *gin.Context) {
	_, profile, ok := h.session(c)
	if !ok {
		return
	}
	studentID, ok := pathObjectID(c, "studentId")
	if !ok {
		return
	}

	if err := h.professionalService.RemoveStudent(c.Request.Context(), profile.ID, studentID); err != nil {
		respondServiceError(c, err)
		return
	}

	h.sessions.Drop(profile.ID.Hex())
	c.Status(http.StatusNoContent)
}

// UpdateStudentSettings patches goal, target weight and/or status. Nil
// fields in the request leave the stored values untouched.
func (h *ProfessionalHandler) UpdateStudentSettings(c *gin.Context) {
	gate, profile, ok := h.session(c)
	if !ok {
		return
	}
	studentID, ok := pathObjectID(c, "studentId")
	if !ok {
		return
	}
	var req StudentSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	coord := session.NewCoordinator(gate)
	err := coord.Update(c.Request.Context(), session.Mutation{
		Kind:    session.KindStudentSettings,
		OwnerID: studentID,
		Remote: func(ctx context.Context) error {
			return h.professionalService.UpdateStudentSettings(ctx, profile.ID, studentID, repository.StudentSettings{
				Goal:         req.Goal,
				TargetWeight: req.TargetWeight,
				Status:       req.Status,
			})
		},
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Overview ---

// Overview aggregates everything the console shows for the selected
// student. The fetch is generation-fenced: results landing after a subject
// switch refresh nothing.
func (h *ProfessionalHandler) Overview(c *gin.Context) {
	gate, profile, ok := h.session(c)
	if !ok {
		return
	}
	subject, ok := h.subject(c, gate)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	gen := gate.BeginFetch()

	roster, err := h.professionalService.GetStudents(ctx, profile.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	var student *domain.User
	for i := range roster {
		if roster[i].ID == subject {
			student = &roster[i]
			break
		}
	}
	if student == nil {
		respondServiceError(c, service.ErrStudentNotLinked)
		return
	}

	history, err := h.studentService.GetWeightHistory(ctx, subject)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	training, err := h.studentService.GetTrainingWeek(ctx, subject)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	diet, err := h.studentService.GetDietWeek(ctx, subject)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	loads, err := h.studentService.GetLoadHistory(ctx, subject)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	notices, err := h.professionalService.GetNotices(ctx, profile.ID, subject)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	// Cache the raw collections for this subject; stale completions
	// (subject switched mid-fetch) are silently discarded.
	gate.ApplyFetch(gen, func(s *session.Snapshot) {
		s.Weights = history.Entries
		s.Notices = notices
		s.Plans = s.Plans[:0]
		s.Exercises = s.Exercises[:0]
		for _, day := range training.Days {
			if day.Plan != nil {
				s.Plans = append(s.Plans, *day.Plan)
			}
			s.Exercises = append(s.Exercises, day.Exercises...)
		}
		s.Meals = s.Meals[:0]
		for _, day := range diet.Days {
			s.Meals = append(s.Meals, day.Meals...)
		}
	})

	resp := OverviewResponse{
		Student:    MapUserToResponse(student),
		Weight:     history.Summary,
		Training:   training.Days,
		Diet:       diet.Days,
		LoadSeries: loads,
		Counts:     projection.DeriveNoticeCounts(notices, domain.RoleProfessional),
	}
	resp.WeightLog = make([]WeightEntryResponse, len(history.Entries))
	for i := range history.Entries {
		resp.WeightLog[i] = MapWeightEntryToResponse(&history.Entries[i])
	}
	resp.Notices = make([]NoticeResponse, len(notices))
	for i := range notices {
		resp.Notices[i] = MapNoticeToResponse(&notices[i])
	}
	c.JSON(http.StatusOK, resp)
}

// --- Workout plans ---

// CreatePlan assigns a weekday plan; an existing plan for the same weekday
// is replaced, exercises included.
func (h *ProfessionalHandler) CreatePlan(c *gin.Context) {
	gate, profile, ok := h.session(c)
	if !ok {
		return
	}
	studentID, ok := pathObjectID(c, "studentId")
	if !ok {
		return
	}
	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	var created *domain.WorkoutPlan
	coord := session.NewCoordinator(gate)
	err := coord.Create(c.Request.Context(), session.Mutation{
		Kind:    session.KindWorkoutPlan,
		OwnerID: studentID,
		Validate: func() error {
			if !domain.ValidWeekday(req.Weekday) {
				return fmt.Errorf("unknown weekday %q", req.Weekday)
			}
			return nil
		},
		Remote: func(ctx context.Context) error {
			plan, err := h.professionalService.CreatePlan(ctx, profile.ID, studentID, req.Weekday, req.WorkoutType)
			if err != nil {
				return err
			}
			created = plan
			return nil
		},
		Apply: func(s *session.Snapshot) {
			for i := range s.Plans {
				if s.Plans[i].Weekday == created.Weekday {
					s.RemovePlan(s.Plans[i].ID)
					break
				}
			}
			s.AddPlan(*created)
		},
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapPlanToResponse(created))
}

// UpdatePlan renames a plan's workout type.
func (h *ProfessionalHandler) UpdatePlan(c *gin.Context) {
	gate, profile, ok := h.session(c)
	if !ok {
		return
	}
	subject, ok := h.subject(c, gate)
	if !ok {
		return
	}
	planID, ok := pathObjectID(c, "planId")
	if !ok {
		return
	}
	var req UpdatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	var updated *domain.WorkoutPlan
	coord := session.NewCoordinator(gate)
	err := coord.Update(c.Request.Context(), session.Mutation{
		Kind:    session.KindWorkoutPlan,
		OwnerID: subject,
		Remote: func(ctx context.Context) error {
			plan, err := h.professionalService.UpdatePlan(ctx, profile.ID, planID, req.WorkoutType)
			if err != nil {
				return err
			}
			updated = plan
			return nil
		},
		Apply: func(s *session.Snapshot) {
			for i := range s.Plans {
				if s.Plans[i].ID == planID {
					s.Plans[i].WorkoutType = updated.WorkoutType
					return
				}
			}
		},
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapPlanToResponse(updated))
}

// DeletePlan removes a plan and cascades to its exercises.
func (h *ProfessionalHandler) DeletePlan(c *gin.Context) {
	gate, profile, ok := h.session(c)
	if !ok {
		return
	}
	subject, ok := h.subject(c, gate)
	if !ok {
		return
	}
	planID, ok := pathObjectID(c, "planId")
	if !ok {
		return
	}

	coord := session.NewCoordinator(gate)
	err := coord.Delete(c.Request.Context(), session.Mutation{
		Kind:    session.KindWorkoutPlan,
		OwnerID: subject,
		Remote: func(ctx context.Context) error {
			return h.professionalService.DeletePlan(ctx, profile.ID, planID)
		},
		Apply: func(s *session.Snapshot) {
			s.RemovePlan(planID)
		},
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Exercises ---

// AddExercise appends an exercise to a plan of the selected student.
func (h *ProfessionalHandler) AddExercise(c *gin.Context) {
	gate, profile, ok := h.session(c)
	if !ok {
		return
	}
	subject, ok := h.subject(c, gate)
	if !ok {
		return
	}
	planID, ok := pathObjectID(c, "planId")
	if !ok {
		return
	}
	var req ExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	var created *domain.Exercise
	coord := session.NewCoordinator(gate)
	err := coord.Create(c.Request.Context(), session.Mutation{
		Kind:    session.KindExercise,
		OwnerID: subject,
		Validate: func() error {
			if req.Sets <= 0 {
				return fmt.Errorf("sets must be positive")
			}
			return nil
		},
		Remote: func(ctx context.Context) error {
			exercise, err := h.professionalService.AddExercise(ctx, profile.ID, planID, req.Name, req.Sets, req.Reps)
			if err != nil {
				return err
			}
			created = exercise
			return nil
		},
		Apply: func(s *session.Snapshot) {
			if created.StudentID == s.SubjectID {
				s.AddExercise(*created)
			}
		},
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapExerciseToResponse(created))
}

// UpdateExercise patches an exercise's name, sets and reps.
func (h *ProfessionalHandler) UpdateExercise(c *gin.Context) {
	gate, profile, ok := h.session(c)
	if !ok {
		return
	}
	subject, ok := h.subject(c, gate)
	if !ok {
		return
	}
	exerciseID, ok := pathObjectID(c, "exerciseId")
	if !ok {
		return
	}
	var req ExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	var updated *domain.Exercise
	coord := session.NewCoordinator(gate)
	err := coord.Update(c.Request.Context(), session.Mutation{
		Kind:    session.KindExercise,
		OwnerID: subject,
		Remote: func(ctx context.Context) error {
			exercise, err := h.professionalService.UpdateExercise(ctx, profile.ID, exerciseID, req.Name, req.Sets, req.Reps)
			if err != nil {
				return err
			}
			updated = exercise
			return nil
		},
		Apply: func(s *session.Snapshot) {
			s.PatchExercise(exerciseID, func(e *domain.Exercise) {
				e.Name = updated.Name
				e.Sets = updated.Sets
				e.Reps = updated.Reps
			})
		},
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapExerciseToResponse(updated))
}

// DeleteExercise removes one exercise.
func (h *ProfessionalHandler) DeleteExercise(c *gin.Context) {
	gate, profile, ok := h.session(c)
	if !ok {
		return
	}
	subject, ok := h.subject(c, gate)
	if !ok {
		return
	}
	exerciseID, ok := pathObjectID(c, "exerciseId")
	if !ok {
		return
	}

	coord := session.NewCoordinator(gate)
	err := coord.Delete(c.Request.Context(), session.Mutation{
		Kind:    session.KindExercise,
		OwnerID: subject,
		Remote: func(ctx context.Context) error {
			return h.professionalService.DeleteExercise(ctx, profile.ID, exerciseID)
		},
		Apply: func(s *session.Snapshot) {
			s.RemoveExercise(exerciseID)
		},
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Diet plan ---

// AddMeal adds a meal to the student's diet plan.
func (h *ProfessionalHandler) AddMeal(c *gin.Context) {
	gate, profile, ok := h.session(c)
	if !ok {
		return
	}
	studentID, ok := pathObjectID(c, "studentId")
	if !ok {
		return
	}
	var req MealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	var created *domain.Meal
	coord := session.NewCoordinator(gate)
	err := coord.Create(c.Request.Context(), session.Mutation{
		Kind:    session.KindMeal,
		OwnerID: studentID,
		Remote: func(ctx context.Context) error {
			meal, err := h.professionalService.AddMeal(ctx, profile.ID, studentID, req.Weekday, req.MealType, req.Time, req.Description)
			if err != nil {
				return err
			}
			created = meal
			return nil
		},
		Apply: func(s *session.Snapshot) {
			s.AddMeal(*created)
		},
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapMealToResponse(created))
}

// UpdateMeal patches a meal's slot, time and description.
func (h *ProfessionalHandler) UpdateMeal(c *gin.Context) {
	gate, profile, ok := h.session(c)
	if !ok {
		return
	}
	subject, ok := h.subject(c, gate)
	if !ok {
		return
	}
	mealID, ok := pathObjectID(c, "mealId")
	if !ok {
		return
	}
	var req UpdateMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	var updated *domain.Meal
	coord := session.NewCoordinator(gate)
	err := coord.Update(c.Request.Context(), session.Mutation{
		Kind:    session.KindMeal,
		OwnerID: subject,
		Remote: func(ctx context.Context) error {
			meal, err := h.professionalService.UpdateMeal(ctx, profile.ID, mealID, req.MealType, req.Time, req.Description)
			if err != nil {
				return err
			}
			updated = meal
			return nil
		},
		Apply: func(s *session.Snapshot) {
			s.PatchMeal(mealID, func(m *domain.Meal) {
				m.MealType = updated.MealType
				m.Time = updated.Time
				m.Description = updated.Description
			})
		},
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapMealToResponse(updated))
}

// DeleteMeal removes a meal from the diet plan.
func (h *ProfessionalHandler) DeleteMeal(c *gin.Context) {
	gate, profile, ok := h.session(c)
	if !ok {
		return
	}
	subject, ok := h.subject(c, gate)
	if !ok {
		return
	}
	mealID, ok := pathObjectID(c, "mealId")
	if !ok {
		return
	}

	coord := session.NewCoordinator(gate)
	err := coord.Delete(c.Request.Context(), session.Mutation{
		Kind:    session.KindMeal,
		OwnerID: subject,
		Remote: func(ctx context.Context) error {
			return h.professionalService.DeleteMeal(ctx, profile.ID, mealID)
		},
		Apply: func(s *session.Snapshot) {
			s.RemoveMeal(mealID)
		},
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Notices ---

// SendNotice posts a notice on the student's board.
func (h *ProfessionalHandler) SendNotice(c *gin.Context) {
	gate, profile, ok := h.session(c)
	if !ok {
		return
	}
	studentID, ok := pathObjectID(c, "studentId")
	if !ok {
		return
	}
	var req NoticeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	var created *domain.Notice
	coord := session.NewCoordinator(gate)
	err := coord.Create(c.Request.Context(), session.Mutation{
		Kind:    session.KindNotice,
		OwnerID: studentID,
		Validate: func() error {
			if !domain.ValidNoticeSeverity(req.Severity) {
				return fmt.Errorf("unknown severity %q", req.Severity)
			}
			return nil
		},
		Remote: func(ctx context.Context) error {
			notice, err := h.professionalService.SendNotice(ctx, profile.ID, studentID, req.Message, req.Severity)
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

// ChangeNoticeSeverity reclassifies a notice.
func (h *ProfessionalHandler) ChangeNoticeSeverity(c *gin.Context) {
	gate, profile, ok := h.session(c)
	if !ok {
		return
	}
	subject, ok := h.subject(c, gate)
	if !ok {
		return
	}
	noticeID, ok := pathObjectID(c, "noticeId")
	if !ok {
		return
	}
	var req SeverityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	coord := session.NewCoordinator(gate)
	err := coord.Update(c.Request.Context(), session.Mutation{
		Kind:    session.KindNoticeSeverity,
		OwnerID: subject,
		Validate: func() error {
			if !domain.ValidNoticeSeverity(req.Severity) {
				return fmt.Errorf("unknown severity %q", req.Severity)
			}
			return nil
		},
		Remote: func(ctx context.Context) error {
			return h.professionalService.ChangeNoticeSeverity(ctx, profile.ID, noticeID, req.Severity)
		},
		Apply: func(s *session.Snapshot) {
			for i := range s.Notices {
				if s.Notices[i].ID == noticeID {
					s.Notices[i].Severity = req.Severity
					return
				}
			}
		},
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteNotice removes a notice from the student's board.
func (h *ProfessionalHandler) DeleteNotice(c *gin.Context) {
	gate, profile, ok := h.session(c)
	if !ok {
		return
	}
	subject, ok := h.subject(c, gate)
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
		OwnerID: subject,
		Remote: func(ctx context.Context) error {
			return h.professionalService.DeleteNotice(ctx, profile.ID, noticeID)
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

// --- Reports ---

// ExportReport builds a progress report for a linked student, stores it and
// returns a short-lived download URL.
func (h *ProfessionalHandler) ExportReport(c *gin.Context) {
	_, profile, ok := h.session(c)
	if !ok {
		return
	}
	studentID, ok := pathObjectID(c, "studentId")
	if !ok {
		return
	}

	export, err := h.reportService.ExportReport(c.Request.Context(), profile.ID, studentID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, export)
}
