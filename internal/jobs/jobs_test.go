package jobs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"easyrent-backend/internal/config"
	"easyrent-backend/internal/domain"
	"easyrent-backend/internal/metrics"
	repomocks "easyrent-backend/internal/repository/mocks"
	svcmocks "easyrent-backend/internal/service/mocks"
	"easyrent-backend/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 1, 5, 14, 30, 0, 0, time.UTC)

type fixture struct {
	runner  *JobRunner
	cars    *repomocks.MockCarRepo
	rentals *repomocks.MockRentalRepo
	email   *svcmocks.MockEmailService
	disk    *storage.DiskStorage
	dir     string
	metrics *metrics.Metrics
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	disk, err := storage.NewDiskStorage(dir, "/uploads")
	require.NoError(t, err)

	f := &fixture{
		cars:    new(repomocks.MockCarRepo),
		rentals: new(repomocks.MockRentalRepo),
		email:   new(svcmocks.MockEmailService),
		disk:    disk,
		dir:     dir,
		metrics: metrics.New(),
	}
	f.runner = NewJobRunner(Dependencies{
		Cars:    f.cars,
		Rentals: f.rentals,
		Uploads: disk,
		Email:   f.email,
		Metrics: f.metrics,
	}, &config.Config{})
	f.runner.now = func() time.Time { return fixedNow }
	return f
}

// writeUpload creates an uploaded file with the given age.
func (f *fixture) writeUpload(t *testing.T, key string, age time.Duration) {
	t.Helper()
	p := filepath.Join(f.dir, key)
	require.NoError(t, os.WriteFile(p, []byte("img"), 0o644))
	mtime := fixedNow.Add(-age)
	require.NoError(t, os.Chtimes(p, mtime, mtime))
}

// jobRuns reads the job run counter from the metrics registry.
func (f *fixture) jobRuns(t *testing.T, job, status string) float64 {
	t.Helper()
	families, err := f.metrics.Registry().Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != "easyrent_job_runs_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			labels := map[string]string{}
			for _, l := range m.GetLabel() {
				labels[l.GetName()] = l.GetValue()
			}
			if labels["job"] == job && labels["status"] == status {
				return m.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func strPtr(s string) *string { return &s }

func TestNormalizeCarImages(t *testing.T) {
	f := newFixture(t)
	f.writeUpload(t, "kept.jpg", time.Hour)

	dataURI := "data:image/png;base64,AAAA"
	f.cars.On("List", mock.Anything).Return([]domain.Car{
		{ID: "c1", Code: "INLINE", Image: &dataURI},
		{ID: "c2", Code: "STOCK", Image: strPtr("/images/civic.jpg")},
		{ID: "c3", Code: "CANON", Image: strPtr("/assets/golf.jpg")},
		{ID: "c4", Code: "UPLOAD", Image: strPtr("/uploads/kept.jpg")},
		{ID: "c5", Code: "GONE", Image: strPtr("/uploads/missing.jpg")},
		{ID: "c6", Code: "REMOTE", Image: strPtr("https://cdn.example.com/car.png")},
		{ID: "c7", Code: "NONE"},
	}, nil)
	f.cars.On("UpdateImage", mock.Anything, "c2", strPtr("/assets/civic.jpg")).Return(nil).Once()
	f.cars.On("UpdateImage", mock.Anything, "c5", (*string)(nil)).Return(nil).Once()
	f.cars.On("UpdateImage", mock.Anything, "c6", (*string)(nil)).Return(nil).Once()

	require.NoError(t, f.runner.NormalizeCarImages())

	f.cars.AssertExpectations(t)
	f.cars.AssertNumberOfCalls(t, "UpdateImage", 3)
}

func TestNormalizeCarImages_UpdateFails(t *testing.T) {
	f := newFixture(t)
	f.cars.On("List", mock.Anything).Return([]domain.Car{{ID: "c1", Code: "X", Image: strPtr("junk")}}, nil)
	f.cars.On("UpdateImage", mock.Anything, "c1", (*string)(nil)).Return(errors.New("db down"))

	err := f.runner.NormalizeCarImages()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db down")
	assert.Equal(t, 1.0, f.jobRuns(t, JobNormalizeCarImages, "error"))
}

func TestSweepOrphanUploads(t *testing.T) {
	f := newFixture(t)
	f.writeUpload(t, "referenced.jpg", 72*time.Hour)
	f.writeUpload(t, "orphan.jpg", 72*time.Hour)
	f.writeUpload(t, "fresh.jpg", time.Hour)

	f.cars.On("List", mock.Anything).Return([]domain.Car{
		{ID: "c1", Image: strPtr("/uploads/referenced.jpg")},
		{ID: "c2", Image: strPtr("/assets/civic.jpg")},
		{ID: "c3"},
	}, nil)

	require.NoError(t, f.runner.SweepOrphanUploads())

	files, err := f.disk.List(context.Background())
	require.NoError(t, err)
	var keys []string
	for _, file := range files {
		keys = append(keys, file.Key)
	}
	assert.Equal(t, []string{"fresh.jpg", "referenced.jpg"}, keys)
	assert.Equal(t, 1.0, f.jobRuns(t, JobSweepOrphanUploads, "ok"))
}

func TestSweepOrphanUploads_NoDiskStorage(t *testing.T) {
	f := newFixture(t)
	f.runner.deps.Uploads = nil

	require.NoError(t, f.runner.SweepOrphanUploads())
	f.cars.AssertNotCalled(t, "List", mock.Anything)
}

func TestSendPickupReminders(t *testing.T) {
	f := newFixture(t)
	from := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 7, 0, 0, 0, 0, time.UTC)

	ana := &domain.UserSummary{ID: "u1", Name: "Ana", Email: "ana@example.com"}
	bob := &domain.UserSummary{ID: "u2", Name: "Bob", Email: "bob@example.com"}
	f.rentals.On("ListByPickupRange", mock.Anything, from, to).Return([]domain.Rental{
		{ID: "r1", Code: "LOC0001", Requester: ana},
		{ID: "r2", Code: "LOC0002", Requester: bob},
		{ID: "r3", Code: "LOC0003"},
	}, nil)
	f.email.On("SendPickupReminder", mock.Anything, ana, mock.Anything).Return(nil).Once()
	f.email.On("SendPickupReminder", mock.Anything, bob, mock.Anything).Return(errors.New("sendgrid down")).Once()

	err := f.runner.SendPickupReminders()
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "LOC0002"))
	f.email.AssertNumberOfCalls(t, "SendPickupReminder", 2)
}

func TestRun(t *testing.T) {
	f := newFixture(t)
	assert.EqualError(t, f.runner.Run("bogus"), `unknown job "bogus"`)

	f.rentals.On("ListByPickupRange", mock.Anything, mock.Anything, mock.Anything).Return([]domain.Rental{}, nil)
	assert.NoError(t, f.runner.Run(JobSendPickupReminders))
}

func TestRunWithRecovery_Panic(t *testing.T) {
	f := newFixture(t)

	err := f.runner.runWithRecovery("explode", func(ctx context.Context) error {
		panic("boom")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "panicked")
	assert.Equal(t, 1.0, f.jobRuns(t, "explode", "error"))
}
