package cli

import (
	"sync"
	"time"
)

// progress is the upload view's percentage. After an upload finishes it
// stays at 100 for a while and then drops back to 0.
type progress struct {
	mu      sync.Mutex
	percent int
	timer   *time.Timer
}

func (p *progress) set(percent int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	p.percent = min(max(percent, 0), 100)
}

func (p *progress) value() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.percent
}

// finish marks the upload complete and schedules the reset.
func (p *progress) finish(after time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.percent = 100
	if p.timer != nil {
		p.timer.Stop()
	}
	p.timer = time.AfterFunc(after, p.reset)
}

func (p *progress) reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.percent = 0
	p.timer = nil
}

func (p *progress) stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
}
