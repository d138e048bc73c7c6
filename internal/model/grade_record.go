package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the calendar-date format used for grade records on the wire
// and in rendered output.
const DateLayout = "2006-01-02"

// GradeRecord represents one passed exam: a course, the grade obtained and
// the date it was passed. Identity is the course name alone.
type GradeRecord struct {
	course string
	grade  int
	date   time.Time
}

// NewGradeRecord builds a record. No validation is performed.
func NewGradeRecord(course string, grade int, date time.Time) *GradeRecord {
	return &GradeRecord{course: course, grade: grade, date: date}
}

func (r *GradeRecord) Course() string  { return r.course }
func (r *GradeRecord) Grade() int      { return r.grade }
func (r *GradeRecord) Date() time.Time { return r.date }

// SetGrade replaces the grade. Records may be shared between transcripts,
// so only call this on a record obtained from Clone.
func (r *GradeRecord) SetGrade(grade int) { r.grade = grade }

// Clone returns an independent copy of the record.
func (r *GradeRecord) Clone() *GradeRecord {
	return &GradeRecord{
		course: strings.Clone(r.course),
		grade:  r.grade,
		date:   r.date,
	}
}

// Equal reports whether both records refer to the same course.
// Grade and date are not compared.
func (r *GradeRecord) Equal(other *GradeRecord) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.course == other.course
}

// Compare orders records by course, byte-wise (code-point order for UTF-8).
func (r *GradeRecord) Compare(other *GradeRecord) int {
	return strings.Compare(r.course, other.course)
}

// Key is the identity key of the record, consistent with Equal.
func (r *GradeRecord) Key() string { return r.course }

func (r *GradeRecord) String() string {
	return r.course + ": " + strconv.Itoa(r.grade) + " " + formatDate(r.date)
}

func formatDate(d time.Time) string {
	if d.IsZero() {
		return "-"
	}
	return d.Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD date in UTC.
func ParseDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return d, nil
}

// Date builds a UTC calendar date.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// GradeRecordView is the JSON representation of a GradeRecord.
type GradeRecordView struct {
	Course string `json:"course"`
	Grade  int    `json:"grade"`
	Date   string `json:"date"`
}

// View converts the record for JSON output.
func (r *GradeRecord) View() GradeRecordView {
	return GradeRecordView{Course: r.course, Grade: r.grade, Date: formatDate(r.date)}
}

// AddGradeRecordRequest is the payload for inserting a record into the transcript.
type AddGradeRecordRequest struct {
	Course string `json:"course" binding:"required,course,max=200"`
	Grade  *int   `json:"grade" binding:"required"`
	Date   string `json:"date" binding:"required,datetime=2006-01-02"`
}

// CheckGradeRecordRequest is the payload for the duplicate/conflict probe.
// The date is optional since it plays no part in either check.
type CheckGradeRecordRequest struct {
	Course string `json:"course" binding:"required,course,max=200"`
	Grade  *int   `json:"grade" binding:"required"`
	Date   string `json:"date" binding:"omitempty,datetime=2006-01-02"`
}

// FindGradeRecordQuery looks a record up by exact course name.
type FindGradeRecordQuery struct {
	Course string `json:"course" form:"course" binding:"required,course"`
}

// SortTranscriptRequest reorders the stored transcript in place.
type SortTranscriptRequest struct {
	By string `json:"by" binding:"required,oneof=course grade"`
}

// CheckResult reports how a proposed record relates to the transcript.
type CheckResult struct {
	Duplicate bool `json:"duplicate"`
	Conflict  bool `json:"conflict"`
}
