package demo

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	var out bytes.Buffer
	today := time.Date(2020, time.September, 1, 0, 0, 0, 0, time.UTC)

	lib, err := Run(&out, zerolog.Nop(), today)
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "Grade for Analisi II is 28\n")
	assert.Contains(t, text, "Economia with 24 is duplicate: true / conflict: false\n")
	assert.Contains(t, text, "Economia with 21 is duplicate: false / conflict: true\n")
	assert.Contains(t, text, "Economia: 26 2020-02-14\n", "improved transcript printed")
	assert.Contains(t, text, "Chimica: 19 2020-09-01\n", "low grade printed before removal")

	assert.Equal(t,
		"Analisi II: 28 2020-06-28\nEconomia: 24 2020-02-14\nTecniche di Programmazione: 30 2020-06-15\n",
		lib.String())
}

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestRunWriteError(t *testing.T) {
	_, err := Run(brokenWriter{}, zerolog.Nop(), time.Now())
	assert.EqualError(t, err, "broken pipe")
}
