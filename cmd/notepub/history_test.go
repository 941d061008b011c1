package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/notepub"
)

func TestPrintRunsEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printRuns(&buf, nil))
	assert.Equal(t, "No publish cycles recorded yet.\n", buf.String())
}

func TestPrintRuns(t *testing.T) {
	start := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	runs := []notepub.Run{
		{ID: 2, Started: start, Finished: start.Add(1500 * time.Millisecond), Scanned: 4, Published: 3, Err: "deploy failed"},
		{ID: 1, Started: start, Finished: start.Add(time.Second), Scanned: 4, Published: 3, Skipped: 1},
	}

	var buf bytes.Buffer
	require.NoError(t, printRuns(&buf, runs))
	out := buf.String()

	assert.Contains(t, out, "PUBLISHED")
	assert.Contains(t, out, "deploy failed")
	assert.Contains(t, out, "1.5s")
	assert.Contains(t, out, "ok")
}
