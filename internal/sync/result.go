package sync

import (
	"fmt"
	"strings"

	"github.com/placesync/placesync/internal/codec"
	"github.com/placesync/placesync/internal/model"
)

// Status represents the outcome for a single target store.
type Status string

const (
	// StatusWritten indicates the target store was regenerated.
	StatusWritten Status = "written"

	// StatusSkipped indicates the target was not touched (it is the
	// source store, or the run was a dry run).
	StatusSkipped Status = "skipped"

	// StatusFailed indicates an error occurred writing the target.
	StatusFailed Status = "failed"
)

// TargetResult represents the outcome for a single backend store.
type TargetResult struct {
	// Backend is the store this result describes.
	Backend model.Backend

	// Path is the resolved store file path.
	Path string

	// Status is the outcome for this store.
	Status Status

	// Message provides additional context about the status.
	Message string

	// Err contains the error when Status is StatusFailed. Filesystem
	// problems are wrapped with ErrFilesystem.
	Err error
}

// Success returns true unless this target failed.
func (tr *TargetResult) Success() bool {
	return tr.Status != StatusFailed
}

// Result contains the complete outcome of a sync run.
type Result struct {
	// Source is the backend the bookmarks were read from.
	Source model.Backend

	// Count is the number of bookmarks in the decoded model.
	Count int

	// DryRun indicates no files were modified.
	DryRun bool

	// Warnings holds entry-level diagnostics from decoding the source.
	Warnings []codec.Warning

	// Targets holds one entry per backend store, source included.
	Targets []TargetResult
}

// Written returns targets that were regenerated.
func (r *Result) Written() []TargetResult {
	return r.filterByStatus(StatusWritten)
}

// Skipped returns targets that were not touched.
func (r *Result) Skipped() []TargetResult {
	return r.filterByStatus(StatusSkipped)
}

// Failed returns targets that could not be written.
func (r *Result) Failed() []TargetResult {
	return r.filterByStatus(StatusFailed)
}

func (r *Result) filterByStatus(status Status) []TargetResult {
	var filtered []TargetResult
	for _, tr := range r.Targets {
		if tr.Status == status {
			filtered = append(filtered, tr)
		}
	}
	return filtered
}

// Success returns true if every target was processed without failure.
func (r *Result) Success() bool {
	return len(r.Failed()) == 0
}

// Summary returns a human-readable summary of the sync run.
func (r *Result) Summary() string {
	var sb strings.Builder

	if r.DryRun {
		sb.WriteString("Dry run - no changes made\n")
	}

	sb.WriteString(fmt.Sprintf("Synced %d bookmark(s) from %s\n", r.Count, r.Source))

	for _, tr := range r.Targets {
		line := fmt.Sprintf("  %-7s %s (%s)", tr.Status, tr.Backend, tr.Path)
		if tr.Message != "" {
			line += ": " + tr.Message
		}
		if tr.Err != nil {
			line += fmt.Sprintf(": %v", tr.Err)
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	if len(r.Warnings) > 0 {
		sb.WriteString("\nWarnings:\n")
		for _, w := range r.Warnings {
			sb.WriteString(fmt.Sprintf("  - %s\n", w))
		}
	}

	return sb.String()
}
