package service

import (
	"context"
	"testing"

	"github.com/edumind/elearn-backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProgressStore struct {
	// progress rows keyed by (userID, courseID), completed lectures by progress id
	rows      map[[2]int]*model.Progress
	completed map[int]map[int]bool
}

func newFakeProgressStore() *fakeProgressStore {
	return &fakeProgressStore{
		rows:      make(map[[2]int]*model.Progress),
		completed: make(map[int]map[int]bool),
	}
}

func (f *fakeProgressStore) addRow(id, userID, courseID int) {
	f.rows[[2]int{userID, courseID}] = &model.Progress{ID: id, UserID: userID, CourseID: courseID}
	f.completed[id] = make(map[int]bool)
}

func (f *fakeProgressStore) GetByUserCourse(_ context.Context, userID, courseID int) (*model.Progress, error) {
	p, ok := f.rows[[2]int{userID, courseID}]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return p, nil
}

func (f *fakeProgressStore) MarkCompleted(_ context.Context, progressID, lectureID int) (bool, error) {
	if f.completed[progressID][lectureID] {
		return false, nil
	}
	f.completed[progressID][lectureID] = true
	return true, nil
}

func (f *fakeProgressStore) CountCompleted(_ context.Context, progressID int) (int, error) {
	return len(f.completed[progressID]), nil
}

type fakeLectureCounter struct {
	counts map[int]int
}

func (f *fakeLectureCounter) CountByCourse(_ context.Context, courseID int) (int, error) {
	return f.counts[courseID], nil
}

func TestRecordCompletion(t *testing.T) {
	store := newFakeProgressStore()
	store.addRow(10, 1, 7)
	svc := NewProgressService(store, &fakeLectureCounter{}, zerolog.Nop())

	added, err := svc.RecordCompletion(context.Background(), 1, 7, 101)
	require.NoError(t, err)
	assert.True(t, added)

	// Repeating the same lecture is a success no-op.
	added, err = svc.RecordCompletion(context.Background(), 1, 7, 101)
	require.NoError(t, err)
	assert.False(t, added)
}

func TestRecordCompletionWithoutPurchase(t *testing.T) {
	svc := NewProgressService(newFakeProgressStore(), &fakeLectureCounter{}, zerolog.Nop())

	_, err := svc.RecordCompletion(context.Background(), 1, 7, 101)

	assert.ErrorIs(t, err, pgx.ErrNoRows)
}

func TestReport(t *testing.T) {
	store := newFakeProgressStore()
	store.addRow(10, 1, 7)
	counter := &fakeLectureCounter{counts: map[int]int{7: 4}}
	svc := NewProgressService(store, counter, zerolog.Nop())

	for _, lecture := range []int{101, 102, 103} {
		_, err := svc.RecordCompletion(context.Background(), 1, 7, lecture)
		require.NoError(t, err)
	}

	report, err := svc.Report(context.Background(), 1, 7)
	require.NoError(t, err)

	assert.Equal(t, 3, report.CompletedLectures)
	assert.Equal(t, 4, report.AllLectures)
	assert.Equal(t, 75, report.Percentage)
}

func TestReportEmptyCourse(t *testing.T) {
	store := newFakeProgressStore()
	store.addRow(10, 1, 7)
	svc := NewProgressService(store, &fakeLectureCounter{counts: map[int]int{}}, zerolog.Nop())

	report, err := svc.Report(context.Background(), 1, 7)
	require.NoError(t, err)

	assert.Equal(t, 0, report.Percentage, "course without lectures reports zero")
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 0, percentage(0, 0))
	assert.Equal(t, 0, percentage(0, 10))
	assert.Equal(t, 50, percentage(1, 2))
	assert.Equal(t, 33, percentage(1, 3))
	assert.Equal(t, 100, percentage(10, 10))
}
