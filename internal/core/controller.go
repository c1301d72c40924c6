package core

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/lumipallolabs/mezdisk/internal/config"
	"github.com/lumipallolabs/mezdisk/internal/logging"
	"github.com/lumipallolabs/mezdisk/internal/model"
	"github.com/lumipallolabs/mezdisk/internal/scanner"
)

// ProgressInterval is the minimum time between two progress events
const ProgressInterval = 50 * time.Millisecond

// eventBuffer is the capacity of a scan's event channel
const eventBuffer = 100

// Controller runs scans and reports their progress without UI dependencies
type Controller struct {
	mu sync.RWMutex

	cfg      config.Config
	interval time.Duration
	scan     ScanState
	visited  atomic.Int64
}

// NewController creates a controller that scans with cfg
func NewController(cfg config.Config) *Controller {
	return &Controller{
		cfg:      cfg,
		interval: ProgressInterval,
	}
}

// State returns a snapshot of the current scan state
func (c *Controller) State() ScanState {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := c.scan
	if s.Phase == PhaseScanning {
		s.Visited = c.visited.Load()
	}
	return s
}

// StartScan scans path in a goroutine. The returned channel yields a
// ScanStartedEvent, throttled progress events and finally a
// ScanCompletedEvent, then closes.
func (c *Controller) StartScan(path string) <-chan Event {
	c.mu.Lock()
	c.scan = ScanState{
		Phase:     PhaseScanning,
		Path:      path,
		StartTime: time.Now(),
	}
	c.visited.Store(0)
	c.mu.Unlock()

	eventCh := make(chan Event, eventBuffer)
	eventCh <- ScanStartedEvent{Path: path}

	go c.runScan(path, eventCh)

	return eventCh
}

// runScan executes the scan and always finishes with the completion event
func (c *Controller) runScan(path string, eventCh chan Event) {
	defer close(eventCh)

	logging.Debug.Debug("starting scan", "path", path, "parallel", c.cfg.Parallel)

	s := c.newScanner(c.progress(eventCh))
	result := s.Scan(path)

	c.mu.Lock()
	c.scan.Phase = PhaseComplete
	c.scan.Visited = c.visited.Load()
	c.scan.Result = &result
	c.mu.Unlock()

	logging.Debug.Debug("scan complete",
		"path", path,
		"files", result.Stats.Files,
		"dirs", result.Stats.Dirs,
		"errors", result.Stats.Errors,
		"elapsed", result.Elapsed,
	)

	eventCh <- ScanCompletedEvent{Result: result}
}

// progress returns the OnVisit callback. Scanners serialize OnVisit, so the
// throttle state needs no lock of its own.
func (c *Controller) progress(eventCh chan<- Event) func(string) {
	var last time.Time
	return func(path string) {
		n := c.visited.Add(1)

		now := time.Now()
		if now.Sub(last) < c.interval {
			return
		}
		last = now

		select {
		case eventCh <- ScanProgressEvent{Path: path, Visited: n}:
		default:
			// Consumer is behind; the next event carries the newer count
		}
	}
}

func (c *Controller) newScanner(onVisit func(string)) scanner.Scanner {
	sc := c.cfg.ScannerConfig(onVisit)
	if c.cfg.Parallel {
		return scanner.NewWalker(sc, c.cfg.Workers)
	}
	return scanner.New(sc)
}

// Result returns the finished scan, or nil while none has completed
func (c *Controller) Result() *model.ScanResult {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.scan.Result
}
