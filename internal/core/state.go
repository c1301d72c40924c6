package core

import (
	"time"

	"github.com/lumipallolabs/mezdisk/internal/model"
)

// ScanPhase represents the current phase of scanning
type ScanPhase int

const (
	PhaseIdle ScanPhase = iota
	PhaseScanning
	PhaseComplete
)

// String returns a human-readable phase name
func (p ScanPhase) String() string {
	switch p {
	case PhaseScanning:
		return "Scanning files"
	case PhaseComplete:
		return "Complete"
	default:
		return ""
	}
}

// ScanState is a snapshot of the controller's scan
type ScanState struct {
	Phase     ScanPhase
	Path      string
	StartTime time.Time
	Visited   int64
	// Result is set once Phase is PhaseComplete
	Result *model.ScanResult
}

// IsScanning returns true while a scan is in progress
func (s ScanState) IsScanning() bool {
	return s.Phase == PhaseScanning
}

// Elapsed returns time since scan started
func (s ScanState) Elapsed() time.Duration {
	if s.StartTime.IsZero() {
		return 0
	}
	if s.Result != nil {
		return s.Result.Elapsed
	}
	return time.Since(s.StartTime)
}
