package site

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/vaultsite/internal/output"
)

// Outcome is the final state of a run.
type Outcome string

const (
	OutcomeSuccess  Outcome = "success"
	OutcomeFailed   Outcome = "failed"
	OutcomeCanceled Outcome = "canceled"
)

// Report summarizes one conversion run.
type Report struct {
	BuildID     string    `json:"build_id"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Outcome     Outcome   `json:"outcome"`
	Pages       int       `json:"pages"`
	Unchanged   int       `json:"unchanged"` // pages whose output already matched
	Skipped     int       `json:"skipped"`
	Resources   int       `json:"resources"`
	Sections    int       `json:"sections"`
	TagSections []string  `json:"tag_sections"`
	Links       int       `json:"links"`
	BrokenLinks int       `json:"broken_links"`
	Nodes       int       `json:"nodes"`
	Edges       int       `json:"edges"`
	Error       string    `json:"error,omitempty"`
}

func newReport(buildID string, start time.Time) *Report {
	return &Report{BuildID: buildID, Start: start, TagSections: []string{}}
}

func (r *Report) finish(end time.Time, outcome Outcome, err error) {
	r.End = end
	r.Outcome = outcome
	if err != nil {
		r.Error = err.Error()
	}
}

// Duration is the wall time of the run.
func (r *Report) Duration() time.Duration { return r.End.Sub(r.Start) }

// Summary returns a human-readable single-line summary.
func (r *Report) Summary() string {
	return fmt.Sprintf("outcome=%s pages=%d unchanged=%d skipped=%d resources=%d sections=%d links=%d broken=%d nodes=%d edges=%d duration=%s",
		r.Outcome, r.Pages, r.Unchanged, r.Skipped, r.Resources, r.Sections, r.Links, r.BrokenLinks, r.Nodes, r.Edges, r.Duration().Round(time.Millisecond))
}

// Persist writes build-report.json and build-report.txt into dir.
func (r *Report) Persist(dir string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report json: %w", err)
	}
	if err := output.WriteFileAtomic(filepath.Join(dir, "build-report.json"), data); err != nil {
		return fmt.Errorf("write report json: %w", err)
	}
	if err := output.WriteFileAtomic(filepath.Join(dir, "build-report.txt"), []byte(r.Summary()+"\n")); err != nil {
		return fmt.Errorf("write report summary: %w", err)
	}
	return nil
}
