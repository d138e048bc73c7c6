package service

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/stemsi/libretto-backend/internal/model"
	"github.com/stemsi/libretto-backend/internal/transcript"
)

// Domain Errors
var (
	ErrDuplicateRecord   = errors.New("course already recorded with the same grade")
	ErrConflictingRecord = errors.New("course already recorded with a different grade")
	ErrRecordNotFound    = errors.New("course not found in transcript")
	ErrUnknownOrder      = errors.New("unknown transcript order")
)

// Order selects how a listing is arranged.
type Order string

const (
	OrderInsertion Order = "insertion"
	OrderCourse    Order = "course"
	OrderGrade     Order = "grade"
)

// TranscriptService owns the transcript served over HTTP. The transcript
// itself is not safe for concurrent use; every access goes through mu.
type TranscriptService struct {
	mu  sync.Mutex
	tr  *transcript.Transcript
	log zerolog.Logger
}

func NewTranscriptService(log zerolog.Logger) *TranscriptService {
	return &TranscriptService{
		tr:  transcript.New(),
		log: log.With().Str("component", "transcript_service").Logger(),
	}
}

// Seed adds records one by one, skipping rejected ones. It returns how many
// were inserted.
func (s *TranscriptService) Seed(records []*model.GradeRecord) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	added := 0
	for _, r := range records {
		if s.tr.Add(r) {
			added++
			continue
		}
		s.log.Warn().Str("course", r.Course()).Int("grade", r.Grade()).Msg("seed record rejected")
	}
	s.log.Info().Int("added", added).Int("total", s.tr.Len()).Msg("transcript seeded")
	return added
}

// Add inserts r. A rejection is reported as ErrDuplicateRecord or
// ErrConflictingRecord.
func (s *TranscriptService) Add(r *model.GradeRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.tr.IsDuplicate(r):
		s.log.Debug().Str("course", r.Course()).Msg("duplicate record rejected")
		return fmt.Errorf("add %q: %w", r.Course(), ErrDuplicateRecord)
	case s.tr.IsConflict(r):
		s.log.Warn().Str("course", r.Course()).Int("grade", r.Grade()).Msg("conflicting record rejected")
		return fmt.Errorf("add %q: %w", r.Course(), ErrConflictingRecord)
	}

	if !s.tr.Add(r) {
		return fmt.Errorf("add %q: %w", r.Course(), ErrConflictingRecord)
	}
	s.log.Info().Str("course", r.Course()).Int("grade", r.Grade()).Msg("record added")
	return nil
}

// Find returns a copy of the record for course.
func (s *TranscriptService) Find(course string) (*model.GradeRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.tr.FindByCourse(course)
	if !ok {
		return nil, fmt.Errorf("find %q: %w", course, ErrRecordNotFound)
	}
	return r.Clone(), nil
}

// Check reports whether r would be a duplicate or a conflict.
func (s *TranscriptService) Check(r *model.GradeRecord) model.CheckResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	return model.CheckResult{
		Duplicate: s.tr.IsDuplicate(r),
		Conflict:  s.tr.IsConflict(r),
	}
}

// List returns the records arranged by order. The stored order is left as is.
func (s *TranscriptService) List(order Order) ([]*model.GradeRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	view, err := s.view(order)
	if err != nil {
		return nil, err
	}
	return cloneAll(view.Records()), nil
}

// FilterByGrade returns the records with the given grade, arranged by order.
func (s *TranscriptService) FilterByGrade(grade int, order Order) ([]*model.GradeRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	view, err := s.view(order)
	if err != nil {
		return nil, err
	}
	return cloneAll(view.FilterByGrade(grade).Records()), nil
}

// Improved returns the boosted copy of the transcript.
func (s *TranscriptService) Improved() []*model.GradeRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.tr.DeriveImproved().Records()
}

// Sort reorders the stored transcript in place.
func (s *TranscriptService) Sort(order Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch order {
	case OrderCourse:
		s.tr.SortByCourse()
	case OrderGrade:
		s.tr.SortByGrade()
	default:
		return fmt.Errorf("sort by %q: %w", order, ErrUnknownOrder)
	}
	s.log.Info().Str("by", string(order)).Msg("transcript sorted")
	return nil
}

// RemoveLowGrades drops every record below the threshold and returns the
// number removed.
func (s *TranscriptService) RemoveLowGrades() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := s.tr.RemoveLowGrades()
	s.log.Info().
		Int("removed", removed).
		Int("threshold", transcript.LowGradeThreshold).
		Msg("low grades removed")
	return removed
}

// Render returns the text rendering of the transcript, limited to one grade
// when grade is non-nil.
func (s *TranscriptService) Render(grade *int) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var sb strings.Builder
	if grade != nil {
		_ = s.tr.RenderByGrade(&sb, *grade)
	} else {
		_ = s.tr.RenderAll(&sb)
	}
	return sb.String()
}

// view returns a transcript arranged by order. Sorted views are copies, so
// the stored sequence keeps its order.
func (s *TranscriptService) view(order Order) (*transcript.Transcript, error) {
	switch order {
	case "", OrderInsertion:
		return s.tr, nil
	case OrderCourse:
		v := transcript.NewCopy(s.tr)
		v.SortByCourse()
		return v, nil
	case OrderGrade:
		v := transcript.NewCopy(s.tr)
		v.SortByGrade()
		return v, nil
	default:
		return nil, fmt.Errorf("list by %q: %w", order, ErrUnknownOrder)
	}
}

// cloneAll detaches records from the stored transcript before they leave
// the lock.
func cloneAll(records []*model.GradeRecord) []*model.GradeRecord {
	out := make([]*model.GradeRecord, len(records))
	for i, r := range records {
		out[i] = r.Clone()
	}
	return out
}
