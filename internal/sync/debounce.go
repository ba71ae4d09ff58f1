package sync

import (
	stdsync "sync"
	"time"
)

// Debounced coalesce rajadas de gatilhos em uma única execução: cada
// Trigger reinicia o timer (nunca empilha), e fn roda uma vez depois do
// período de quiescência.
type Debounced struct {
	mu    stdsync.Mutex
	timer *time.Timer
	fn    func()
}

func NewDebounced(fn func()) *Debounced {
	return &Debounced{fn: fn}
}

// Trigger agenda (ou reagenda) a execução para depois de delay.
func (d *Debounced) Trigger(delay time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(delay, d.fn)
}

func (d *Debounced) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
