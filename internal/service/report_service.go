package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fittrack/coach-app/internal/domain"
	"fittrack/coach-app/internal/projection"
	"fittrack/coach-app/internal/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StudentReport is the full progress snapshot a professional can export
// for one linked student.
type StudentReport struct {
	GeneratedAt  time.Time                         `json:"generatedAt"`
	Student      domain.User                       `json:"student"`
	Weight       projection.WeightSummary          `json:"weight"`
	WeightLog    []domain.WeightEntry              `json:"weightLog"`
	TrainingWeek []projection.WeekdayTraining      `json:"trainingWeek"`
	DietWeek     []projection.WeekdayMeals         `json:"dietWeek"`
	LoadSeries   map[string][]projection.LoadPoint `json:"loadSeries"`
	Notices      projection.NoticeCounts           `json:"notices"`
}

// ReportExport points at an exported report object.
type ReportExport struct {
	ObjectKey   string `json:"objectKey"`
	DownloadURL string `json:"downloadUrl"`
}

// ReportService builds and exports student progress reports. Exports are
// written as JSON objects to the configured bucket; the returned presigned
// URL is short-lived.
type ReportService interface {
	BuildReport(ctx context.Context, professionalID, studentID primitive.ObjectID) (*StudentReport, error)
	ExportReport(ctx context.Context, professionalID, studentID primitive.ObjectID) (*ReportExport, error)
	DeleteReport(ctx context.Context, objectKey string) error
}

type reportService struct {
	professionals ProfessionalService
	students      StudentService
	storage       storage.FileStorage
}

// NewReportService creates a new instance of reportService.
func NewReportService(professionals ProfessionalService, students StudentService, fileStorage storage.FileStorage) ReportService {
	return &reportService{
		professionals: professionals,
		students:      students,
		storage:       fileStorage,
	}
}

// BuildReport aggregates everything known about one linked student.
// The roster lookup doubles as the link check.
func (s *reportService) BuildReport(ctx context.Context, professionalID, studentID primitive.ObjectID) (*StudentReport, error) {
	roster, err := s.professionals.GetStudents(ctx, professionalID)
	if err != nil {
		return nil, err
	}
	var student *domain.User
	for i := range roster {
		if roster[i].ID == studentID {
			student = &roster[i]
			break
		}
	}
	if student == nil {
		return nil, ErrStudentNotLinked
	}

	weights, err := s.students.GetWeightHistory(ctx, studentID)
	if err != nil {
		return nil, err
	}
	training, err := s.students.GetTrainingWeek(ctx, studentID)
	if err != nil {
		return nil, err
	}
	diet, err := s.students.GetDietWeek(ctx, studentID)
	if err != nil {
		return nil, err
	}
	loads, err := s.students.GetLoadHistory(ctx, studentID)
	if err != nil {
		return nil, err
	}
	notices, err := s.professionals.GetNotices(ctx, professionalID, studentID)
	if err != nil {
		return nil, err
	}

	return &StudentReport{
		GeneratedAt:  time.Now().UTC(),
		Student:      *student,
		Weight:       weights.Summary,
		WeightLog:    weights.Entries,
		TrainingWeek: training.Days,
		DietWeek:     diet.Days,
		LoadSeries:   loads,
		Notices:      projection.DeriveNoticeCounts(notices, domain.RoleProfessional),
	}, nil
}

// ExportReport builds the report, stores it as a JSON object and returns a
// presigned download URL.
func (s *reportService) ExportReport(ctx context.Context, professionalID, studentID primitive.ObjectID) (*ReportExport, error) {
	report, err := s.BuildReport(ctx, professionalID, studentID)
	if err != nil {
		return nil, err
	}

	payload, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, err
	}

	objectKey := fmt.Sprintf("reports/%s/%s.json", studentID.Hex(), uuid.NewString())
	if err := s.storage.PutObject(ctx, objectKey, "application/json", bytes.NewReader(payload)); err != nil {
		return nil, err
	}

	url, err := s.storage.GeneratePresignedDownloadURL(ctx, objectKey, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, err
	}

	return &ReportExport{ObjectKey: objectKey, DownloadURL: url}, nil
}

// DeleteReport removes a previously exported report object.
func (s *reportService) DeleteReport(ctx context.Context, objectKey string) error {
	return s.storage.DeleteObject(ctx, objectKey)
}
