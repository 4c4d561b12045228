package progress

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTracker_Basic(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewTracker(&buf, "Refining places", "places", 100, 10)

	tracker.Start()
	assert.True(t, tracker.started, "should be started")

	tracker.Increment(25)
	tracker.Increment(25)
	tracker.Increment(50)

	time.Sleep(time.Millisecond)
	assert.Greater(t, tracker.Elapsed(), time.Duration(0), "elapsed time should be positive")

	output := buf.String()
	assert.Contains(t, output, "Refining places: 100/100", "should show completion")
	assert.Contains(t, output, "100.0%", "should show 100%")
	assert.Contains(t, output, "places/s")
}

func TestTracker_ReportInterval(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewTracker(&buf, "Fetching details", "places", 10, 5)

	tracker.Start()
	for i := 0; i < 4; i++ {
		tracker.Increment(1)
	}
	assert.Empty(t, buf.String(), "should not report before the interval")

	tracker.Increment(1)
	assert.Contains(t, buf.String(), "5/10")
}

func TestTracker_Finish(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewTracker(&buf, "Fetching details", "places", 100, 10)

	tracker.Start()
	tracker.Increment(75)
	tracker.Finish()

	output := buf.String()
	assert.Contains(t, output, "100/100", "finish should set to total")
	assert.True(t, strings.HasSuffix(output, "\n"), "finish should print newline")
}

func TestTracker_ZeroTotal(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewTracker(&buf, "Refining places", "places", 0, 0)

	tracker.Start()
	tracker.Finish()

	assert.Contains(t, buf.String(), "0/0", "should handle zero total")
}

func TestTracker_NotStarted(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewTracker(&buf, "Refining places", "places", 10, 1)

	tracker.Increment(5)
	tracker.Finish()

	assert.Empty(t, buf.String(), "should not report before Start")
	assert.Equal(t, time.Duration(0), tracker.Elapsed())
}
