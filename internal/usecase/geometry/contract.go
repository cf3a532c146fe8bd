package geometry

import "time"

// Recorder receives one observation per finished operation.
type Recorder interface {
	Operation(op, status string, points int, d time.Duration)
	Clusters(n int)
}

type nopRecorder struct{}

func (nopRecorder) Operation(string, string, int, time.Duration) {}
func (nopRecorder) Clusters(int) {}
