package transcript

import (
	"cmp"

	"github.com/stemsi/libretto-backend/internal/model"
)

// Ordering compares two records the way slices.SortStableFunc expects.
type Ordering func(a, b *model.GradeRecord) int

// ByCourse is the natural ordering: alphabetical by course name.
func ByCourse(a, b *model.GradeRecord) int {
	return a.Compare(b)
}

// ByGradeDesc orders records from the highest grade to the lowest.
func ByGradeDesc(a, b *model.GradeRecord) int {
	return cmp.Compare(b.Grade(), a.Grade())
}

// ByGradeAsc orders records from the lowest grade to the highest.
func ByGradeAsc(a, b *model.GradeRecord) int {
	return cmp.Compare(a.Grade(), b.Grade())
}
