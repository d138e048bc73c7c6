package service

import (
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stemsi/libretto-backend/internal/demo"
	"github.com/stemsi/libretto-backend/internal/model"
)

func newSeeded(t *testing.T) *TranscriptService {
	t.Helper()
	s := NewTranscriptService(zerolog.Nop())
	require.Equal(t, 3, s.Seed(demo.SampleRecords()))
	return s
}

func coursesOf(records []*model.GradeRecord) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Course())
	}
	return out
}

func TestTranscriptServiceAdd(t *testing.T) {
	s := newSeeded(t)
	d := model.Date(2021, time.January, 10)

	require.NoError(t, s.Add(model.NewGradeRecord("Fisica I", 22, d)))

	err := s.Add(model.NewGradeRecord("Economia", 24, d))
	assert.ErrorIs(t, err, ErrDuplicateRecord)

	err = s.Add(model.NewGradeRecord("Economia", 21, d))
	assert.ErrorIs(t, err, ErrConflictingRecord)

	records, err := s.List(OrderInsertion)
	require.NoError(t, err)
	assert.Len(t, records, 4)
}

func TestTranscriptServiceSeedSkipsRejected(t *testing.T) {
	s := newSeeded(t)
	added := s.Seed([]*model.GradeRecord{
		model.NewGradeRecord("Economia", 30, time.Time{}),
		model.NewGradeRecord("Chimica", 19, time.Time{}),
	})
	assert.Equal(t, 1, added)
}

func TestTranscriptServiceFind(t *testing.T) {
	s := newSeeded(t)

	r, err := s.Find("Analisi II")
	require.NoError(t, err)
	assert.Equal(t, 28, r.Grade())

	// Returned records are detached from the stored ones.
	r.SetGrade(18)
	again, err := s.Find("Analisi II")
	require.NoError(t, err)
	assert.Equal(t, 28, again.Grade())

	_, err = s.Find("Fisica I")
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestTranscriptServiceCheck(t *testing.T) {
	s := newSeeded(t)

	assert.Equal(t, model.CheckResult{Duplicate: true}, s.Check(model.NewGradeRecord("Economia", 24, time.Time{})))
	assert.Equal(t, model.CheckResult{Conflict: true}, s.Check(model.NewGradeRecord("Economia", 21, time.Time{})))
	assert.Equal(t, model.CheckResult{}, s.Check(model.NewGradeRecord("Fisica I", 21, time.Time{})))
}

func TestTranscriptServiceListOrders(t *testing.T) {
	s := newSeeded(t)

	byCourse, err := s.List(OrderCourse)
	require.NoError(t, err)
	assert.Equal(t, []string{"Analisi II", "Economia", "Tecniche di Programmazione"}, coursesOf(byCourse))

	byGrade, err := s.List(OrderGrade)
	require.NoError(t, err)
	assert.Equal(t, []string{"Tecniche di Programmazione", "Analisi II", "Economia"}, coursesOf(byGrade))

	stored, err := s.List("")
	require.NoError(t, err)
	assert.Equal(t, []string{"Tecniche di Programmazione", "Analisi II", "Economia"}, coursesOf(stored))

	_, err = s.List("date")
	assert.ErrorIs(t, err, ErrUnknownOrder)
}

func TestTranscriptServiceFilterByGrade(t *testing.T) {
	s := newSeeded(t)

	records, err := s.FilterByGrade(28, OrderInsertion)
	require.NoError(t, err)
	assert.Equal(t, []string{"Analisi II"}, coursesOf(records))

	records, err = s.FilterByGrade(19, OrderCourse)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestTranscriptServiceImproved(t *testing.T) {
	s := newSeeded(t)

	improved := s.Improved()
	require.Len(t, improved, 3)
	assert.Equal(t, 30, improved[0].Grade())
	assert.Equal(t, 30, improved[1].Grade())
	assert.Equal(t, 26, improved[2].Grade())

	r, err := s.Find("Economia")
	require.NoError(t, err)
	assert.Equal(t, 24, r.Grade())
}

func TestTranscriptServiceSortAndRemove(t *testing.T) {
	s := newSeeded(t)
	require.NoError(t, s.Add(model.NewGradeRecord("Chimica", 19, time.Time{})))

	require.NoError(t, s.Sort(OrderCourse))
	records, _ := s.List(OrderInsertion)
	assert.Equal(t, []string{"Analisi II", "Chimica", "Economia", "Tecniche di Programmazione"}, coursesOf(records))

	assert.Equal(t, 1, s.RemoveLowGrades())
	records, _ = s.List(OrderInsertion)
	assert.Equal(t, []string{"Analisi II", "Economia", "Tecniche di Programmazione"}, coursesOf(records))

	require.NoError(t, s.Sort(OrderGrade))
	records, _ = s.List(OrderInsertion)
	assert.Equal(t, []string{"Tecniche di Programmazione", "Analisi II", "Economia"}, coursesOf(records))

	assert.ErrorIs(t, s.Sort(OrderInsertion), ErrUnknownOrder)
}

func TestTranscriptServiceRender(t *testing.T) {
	s := newSeeded(t)

	grade := 24
	assert.Equal(t, "Economia: 24 2020-02-14\n", s.Render(&grade))
	assert.Contains(t, s.Render(nil), "Tecniche di Programmazione: 30 2020-06-15\n")
}

func TestTranscriptServiceConcurrentAdd(t *testing.T) {
	s := NewTranscriptService(zerolog.Nop())

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- s.Add(model.NewGradeRecord("Economia", 24, time.Time{}))
		}()
	}
	wg.Wait()
	close(errs)

	ok := 0
	for err := range errs {
		if err == nil {
			ok++
		}
	}
	assert.Equal(t, 1, ok)
}
