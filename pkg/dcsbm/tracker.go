package dcsbm

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// MoveEvent is one committed move as written by MoveTracker.
type MoveEvent struct {
	Trial         int     `json:"trial"`
	Phase         int     `json:"phase"`
	Step          int     `json:"step"`
	Node          int     `json:"node"`
	FromGroup     int     `json:"from_group"`
	ToGroup       int     `json:"to_group"`
	LogLikelihood float64 `json:"log_likelihood"`
	Timestamp     int64   `json:"timestamp"`
}

// MoveTracker writes every committed move as a JSON line. It is safe for
// concurrent use by several trials, and a nil *MoveTracker discards events.
type MoveTracker struct {
	mu      sync.Mutex
	closer  io.Closer
	encoder *json.Encoder
	err     error
}

// NewMoveTracker creates (or truncates) filename and tracks moves into it.
func NewMoveTracker(filename string) (*MoveTracker, error) {
	file, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create move tracking file %s: %w", filename, err)
	}

	mt := NewMoveTrackerWriter(file)
	mt.closer = file
	return mt, nil
}

// NewMoveTrackerWriter tracks moves into w. Close does not close w.
func NewMoveTrackerWriter(w io.Writer) *MoveTracker {
	return &MoveTracker{encoder: json.NewEncoder(w)}
}

// LogMove records a committed move. The first write error is kept and
// returned by Err; later events are dropped.
func (mt *MoveTracker) LogMove(trial, phase, step int, m Move) {
	if mt == nil {
		return
	}

	event := MoveEvent{
		Trial:         trial,
		Phase:         phase,
		Step:          step,
		Node:          m.Node,
		FromGroup:     m.From,
		ToGroup:       m.To,
		LogLikelihood: m.LogLikelihood,
		Timestamp:     time.Now().Unix(),
	}

	mt.mu.Lock()
	defer mt.mu.Unlock()
	if mt.err != nil {
		return
	}
	if err := mt.encoder.Encode(event); err != nil {
		mt.err = fmt.Errorf("failed to encode move: %w", err)
	}
}

// Err returns the first error hit while writing events.
func (mt *MoveTracker) Err() error {
	if mt == nil {
		return nil
	}
	mt.mu.Lock()
	defer mt.mu.Unlock()
	return mt.err
}

func (mt *MoveTracker) Close() error {
	if mt == nil || mt.closer == nil {
		return nil
	}
	mt.mu.Lock()
	defer mt.mu.Unlock()
	return mt.closer.Close()
}
