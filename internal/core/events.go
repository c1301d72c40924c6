package core

import "github.com/lumipallolabs/mezdisk/internal/model"

// Event represents a state change from the controller
type Event interface {
	isEvent()
}

// ScanStartedEvent is emitted when a scan begins
type ScanStartedEvent struct {
	Path string
}

func (ScanStartedEvent) isEvent() {}

// ScanProgressEvent is emitted during scanning, at most once per progress interval
type ScanProgressEvent struct {
	Path    string
	Visited int64
}

func (ScanProgressEvent) isEvent() {}

// ScanCompletedEvent is emitted when scan finishes. It is always the last
// event before the channel closes.
type ScanCompletedEvent struct {
	Result model.ScanResult
}

func (ScanCompletedEvent) isEvent() {}
