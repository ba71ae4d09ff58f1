package appointment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/barber-agenda/internal/httperr"
)

func TestCanTransitionFromScheduled(t *testing.T) {
	for _, to := range []Status{StatusCompleted, StatusCancelled, StatusNoShow} {
		assert.NoError(t, CanTransition(StatusScheduled, to))
	}
}

func TestTerminalStatesDoNotTransition(t *testing.T) {
	terminals := []Status{StatusCompleted, StatusCancelled, StatusNoShow}

	for _, from := range terminals {
		for _, to := range []Status{StatusScheduled, StatusCompleted, StatusCancelled, StatusNoShow} {
			err := CanTransition(from, to)
			assert.Error(t, err)
			assert.True(t, httperr.IsBusiness(err, "invalid_state"))
		}
	}
}

func TestScheduledCannotReschedule(t *testing.T) {
	err := CanTransition(StatusScheduled, StatusScheduled)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, IsTerminal(StatusScheduled))
	assert.True(t, IsTerminal(StatusCompleted))
	assert.True(t, IsTerminal(StatusCancelled))
	assert.True(t, IsTerminal(StatusNoShow))
}

func TestInitialStatus(t *testing.T) {
	assert.Equal(t, StatusScheduled, InitialStatus())
}
