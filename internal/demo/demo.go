// Package demo walks a transcript through every operation and prints it at
// each stage.
package demo

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/libretto-backend/internal/model"
	"github.com/stemsi/libretto-backend/internal/transcript"
)

// SampleRecords returns the records the demo starts from.
func SampleRecords() []*model.GradeRecord {
	return []*model.GradeRecord{
		model.NewGradeRecord("Tecniche di Programmazione", 30, model.Date(2020, time.June, 15)),
		model.NewGradeRecord("Analisi II", 28, model.Date(2020, time.June, 28)),
		model.NewGradeRecord("Economia", 24, model.Date(2020, time.February, 14)),
	}
}

// Run executes the scenario against w. today stamps the probe records.
func Run(w io.Writer, log zerolog.Logger, today time.Time) (*transcript.Transcript, error) {
	p := &printer{w: w}
	lib := transcript.New()

	// 1. insert
	for _, r := range SampleRecords() {
		if !lib.Add(r) {
			log.Error().Str("course", r.Course()).Msg("record insertion failed")
		}
	}
	p.transcript(lib)

	// 2. same-grade subsets
	p.text(lib.StringByGrade(28))
	p.transcript(lib.FilterByGrade(28))

	// 3. lookup
	course := "Analisi II"
	if r, ok := lib.FindByCourse(course); ok {
		p.line("Grade for %s is %d", course, r.Grade())
	} else {
		p.line("%s not found", course)
	}

	// 4. duplicate / conflict probes
	for _, probe := range []*model.GradeRecord{
		model.NewGradeRecord("Economia", 24, today),
		model.NewGradeRecord("Economia", 21, today),
	} {
		p.line("%s with %d is duplicate: %t / conflict: %t",
			probe.Course(), probe.Grade(), lib.IsDuplicate(probe), lib.IsConflict(probe))
	}

	// 5. improved
	improved := lib.DeriveImproved()
	p.line("Improved transcript")
	p.transcript(lib)
	p.transcript(improved)

	// 6. sorted views
	alphabetical := transcript.NewCopy(lib)
	alphabetical.SortByCourse()
	p.transcript(alphabetical)

	byGrade := transcript.NewCopy(lib)
	byGrade.SortByGrade()
	p.transcript(byGrade)

	// 7. low grades
	lib.Add(model.NewGradeRecord("Chimica", 19, today))
	lib.SortByCourse()
	p.transcript(lib)
	removed := lib.RemoveLowGrades()
	log.Info().Int("removed", removed).Msg("low grades removed")
	p.transcript(lib)

	return lib, p.err
}

// printer keeps the first write error so the scenario reads top to bottom.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) text(s string) {
	if p.err != nil {
		return
	}
	_, p.err = io.WriteString(p.w, s+"\n")
}

func (p *printer) line(format string, args ...any) {
	p.text(fmt.Sprintf(format, args...))
}

func (p *printer) transcript(t *transcript.Transcript) {
	p.text(t.String())
}
