package metrics

import "time"

// EntryKind classifies a processed export entry.
type EntryKind string

const (
	EntryPage     EntryKind = "page"
	EntryResource EntryKind = "resource"
	EntrySection  EntryKind = "section"
	EntrySkipped  EntryKind = "skipped"
)

// Recorder receives conversion metrics. Implementations must tolerate being
// called for every entry of a run.
type Recorder interface {
	IncEntry(kind EntryKind)
	AddLinks(resolved, broken int)
	SetGraphSize(nodes, edges int)
	ObserveBuildDuration(d time.Duration)
	IncBuildOutcome(outcome string) // success|failed|canceled
}

// NoopRecorder is a Recorder that does nothing (default when metrics are off).
type NoopRecorder struct{}

func (NoopRecorder) IncEntry(EntryKind)                 {}
func (NoopRecorder) AddLinks(int, int)                  {}
func (NoopRecorder) SetGraphSize(int, int)              {}
func (NoopRecorder) ObserveBuildDuration(time.Duration) {}
func (NoopRecorder) IncBuildOutcome(string)             {}
