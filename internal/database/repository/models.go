package repository

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// Session represents an archived stopwatch run.
type Session struct {
	ID            string
	RecordedAt    time.Time
	ElapsedMillis int64
	LapCount      int
	Laps          []int64 // cumulative boundaries; only populated by Get
}
