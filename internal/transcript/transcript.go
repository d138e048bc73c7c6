// Package transcript holds a student's passed exams and enforces that each
// course appears at most once.
package transcript

import (
	"io"
	"slices"
	"strings"

	"github.com/stemsi/libretto-backend/internal/model"
)

const (
	// MinPassingGrade is the lowest grade that earns a boost in DeriveImproved.
	MinPassingGrade = 18
	// LowGradeThreshold separates low grades (removed by RemoveLowGrades)
	// from good ones (boosted by two points in DeriveImproved).
	LowGradeThreshold = 24
	// MaxGrade caps improved grades.
	MaxGrade = 30
)

// Transcript is an ordered collection of grade records. Records are held by
// pointer: transcripts built with NewCopy or FilterByGrade share them with
// their source.
type Transcript struct {
	records []*model.GradeRecord
}

// New returns an empty transcript.
func New() *Transcript {
	return &Transcript{}
}

// NewCopy returns a transcript with its own sequence holding the same
// records as other, in the same order. Reordering the copy leaves other
// untouched, but the records themselves are shared.
func NewCopy(other *Transcript) *Transcript {
	return &Transcript{records: slices.Clone(other.records)}
}

// Len returns the number of records.
func (t *Transcript) Len() int { return len(t.records) }

// Records returns the records in their current order. The slice is a copy;
// the records are not.
func (t *Transcript) Records() []*model.GradeRecord {
	return slices.Clone(t.records)
}

// Add appends r unless a record for the same course is already present,
// whether as a duplicate or a conflict. It reports whether r was inserted.
// r must be non-nil.
func (t *Transcript) Add(r *model.GradeRecord) bool {
	if t.IsDuplicate(r) || t.IsConflict(r) {
		return false
	}
	t.records = append(t.records, r)
	return true
}

// FindByCourse returns the record for the named course, if any.
func (t *Transcript) FindByCourse(course string) (*model.GradeRecord, bool) {
	probe := model.NewGradeRecord(course, 0, model.Date(1, 1, 1))
	i := slices.IndexFunc(t.records, probe.Equal)
	if i < 0 {
		return nil, false
	}
	return t.records[i], true
}

// IsDuplicate reports whether the course of r is present with the same grade.
func (t *Transcript) IsDuplicate(r *model.GradeRecord) bool {
	existing, ok := t.FindByCourse(r.Course())
	return ok && existing.Grade() == r.Grade()
}

// IsConflict reports whether the course of r is present with another grade.
func (t *Transcript) IsConflict(r *model.GradeRecord) bool {
	existing, ok := t.FindByCourse(r.Course())
	return ok && existing.Grade() != r.Grade()
}

// FilterByGrade returns a new transcript with the records whose grade equals
// grade, in their current relative order. The records are shared.
func (t *Transcript) FilterByGrade(grade int) *Transcript {
	out := New()
	for _, r := range t.records {
		if r.Grade() == grade {
			out.Add(r)
		}
	}
	return out
}

// DeriveImproved returns a transcript of cloned records with boosted grades.
// t is never modified.
func (t *Transcript) DeriveImproved() *Transcript {
	out := New()
	for _, r := range t.records {
		c := r.Clone()
		c.SetGrade(Improve(c.Grade()))
		out.Add(c)
	}
	return out
}

// Improve applies the boost rule to a single grade: +2 (capped at MaxGrade)
// from LowGradeThreshold up, +1 from MinPassingGrade up, unchanged below.
func Improve(grade int) int {
	switch {
	case grade >= LowGradeThreshold:
		return min(grade+2, MaxGrade)
	case grade >= MinPassingGrade:
		return grade + 1
	default:
		return grade
	}
}

// SortBy stably reorders the records in place.
func (t *Transcript) SortBy(order Ordering) {
	slices.SortStableFunc(t.records, order)
}

// SortByCourse reorders records alphabetically by course.
func (t *Transcript) SortByCourse() { t.SortBy(ByCourse) }

// SortByGrade reorders records from the highest grade to the lowest.
// Records with equal grades keep their relative order.
func (t *Transcript) SortByGrade() { t.SortBy(ByGradeDesc) }

// RemoveLowGrades drops every record graded below LowGradeThreshold and
// returns how many were removed. Remaining records keep their order.
func (t *Transcript) RemoveLowGrades() int {
	kept := make([]*model.GradeRecord, 0, len(t.records))
	for _, r := range t.records {
		if r.Grade() >= LowGradeThreshold {
			kept = append(kept, r)
		}
	}
	removed := len(t.records) - len(kept)
	t.records = kept
	return removed
}

// RenderAll writes one line per record in the current order.
func (t *Transcript) RenderAll(w io.Writer) error {
	return t.render(w, func(*model.GradeRecord) bool { return true })
}

// RenderByGrade writes one line per record whose grade equals grade.
func (t *Transcript) RenderByGrade(w io.Writer, grade int) error {
	return t.render(w, func(r *model.GradeRecord) bool { return r.Grade() == grade })
}

// StringByGrade is RenderByGrade into a string.
func (t *Transcript) StringByGrade(grade int) string {
	var sb strings.Builder
	_ = t.RenderByGrade(&sb, grade)
	return sb.String()
}

func (t *Transcript) String() string {
	var sb strings.Builder
	_ = t.RenderAll(&sb)
	return sb.String()
}

func (t *Transcript) render(w io.Writer, keep func(*model.GradeRecord) bool) error {
	for _, r := range t.records {
		if !keep(r) {
			continue
		}
		if _, err := io.WriteString(w, r.String()+"\n"); err != nil {
			return err
		}
	}
	return nil
}
