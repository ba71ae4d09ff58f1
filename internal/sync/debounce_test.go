package sync

import (
	stdsync "sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type counter struct {
	mu stdsync.Mutex
	n  int
}

func (c *counter) inc() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.n++
}

func (c *counter) value() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n
}

func TestDebouncedCoalescesBurst(t *testing.T) {
	var c counter
	d := NewDebounced(c.inc)

	// Rajada de disparos: só a última agenda de fato
	for i := 0; i < 10; i++ {
		d.Trigger(50 * time.Millisecond)
		time.Sleep(5 * time.Millisecond)
	}

	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, 1, c.value())
}

func TestDebouncedFiresAgainAfterQuiescence(t *testing.T) {
	var c counter
	d := NewDebounced(c.inc)

	d.Trigger(20 * time.Millisecond)
	time.Sleep(100 * time.Millisecond)

	d.Trigger(20 * time.Millisecond)
	time.Sleep(100 * time.Millisecond)

	assert.Equal(t, 2, c.value())
}

func TestDebouncedStopCancelsPending(t *testing.T) {
	var c counter
	d := NewDebounced(c.inc)

	d.Trigger(50 * time.Millisecond)
	d.Stop()

	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, 0, c.value())
}
