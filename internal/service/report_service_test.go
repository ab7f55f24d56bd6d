package service

import (
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"fittrack/coach-app/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// stubStorage records uploaded objects in memory.
type stubStorage struct {
	objects map[string][]byte
	deleted []string
}

func newStubStorage() *stubStorage {
	return &stubStorage{objects: make(map[string][]byte)}
}

func (s *stubStorage) PutObject(ctx context.Context, objectKey, contentType string, body io.Reader) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	s.objects[objectKey] = data
	return nil
}

func (s *stubStorage) GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error) {
	return "https://storage.test/" + objectKey, nil
}

func (s *stubStorage) DeleteObject(ctx context.Context, objectKey string) error {
	delete(s.objects, objectKey)
	s.deleted = append(s.deleted, objectKey)
	return nil
}

func TestExportReport(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.registerStudent(t, "Ana", "ana@example.com")
	ana := f.linkStudent(t, "ana@example.com")

	plan, err := f.professionals.CreatePlan(ctx, f.proID, ana, domain.Monday, "Upper Body")
	require.NoError(t, err)
	bench, err := f.professionals.AddExercise(ctx, f.proID, plan.ID, "Bench Press", 3, "10")
	require.NoError(t, err)
	_, err = f.students.LogLoad(ctx, ana, bench.ID, 40)
	require.NoError(t, err)
	_, err = f.students.LogWeight(ctx, ana, 70)
	require.NoError(t, err)

	store := newStubStorage()
	reports := NewReportService(f.professionals, f.students, store)

	export, err := reports.ExportReport(ctx, f.proID, ana)
	require.NoError(t, err)
	assert.Contains(t, export.ObjectKey, "reports/"+ana.Hex()+"/")
	assert.Contains(t, export.DownloadURL, export.ObjectKey)

	raw, ok := store.objects[export.ObjectKey]
	require.True(t, ok, "report object was uploaded")

	var report StudentReport
	require.NoError(t, json.Unmarshal(raw, &report))
	assert.Equal(t, "Ana", report.Student.Name)
	require.NotNil(t, report.Weight.Current)
	assert.Equal(t, 70.0, *report.Weight.Current)
	require.Contains(t, report.LoadSeries, "Bench Press")

	require.NoError(t, reports.DeleteReport(ctx, export.ObjectKey))
	assert.NotContains(t, store.objects, export.ObjectKey)
}

func TestExportReportRequiresLink(t *testing.T) {
	f := newFixture(t)
	store := newStubStorage()
	reports := NewReportService(f.professionals, f.students, store)

	_, err := reports.ExportReport(context.Background(), f.proID, primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrStudentNotLinked)
	assert.Empty(t, store.objects, "nothing uploaded for a refused export")
}
