package progress

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrackerTickAndFinish(t *testing.T) {
	tracker := NewTracker("Scanning...", 3)
	tracker.out = &bytes.Buffer{}

	tracker.Tick()
	tracker.Tick()
	tracker.Tick()
	tracker.FinishSuccess()

	assert.Empty(t, tracker.out.(*bytes.Buffer).String())
}

func TestTrackerFinishError(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewTracker("Detecting packages...", 2)
	tracker.out = &buf

	tracker.Tick()
	tracker.FinishError(errors.New("unreadable file"))

	assert.Contains(t, buf.String(), "Detecting packages... error: unreadable file")
}
