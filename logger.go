package mealcart

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"
)

// BuildRecorder is the interface for shopping list build logging.
type BuildRecorder interface {
	RecordBuild(build BuildLog) error
}

// NewBuildLogFilePath returns a file path for a build log, keyed by time and run id.
func NewBuildLogFilePath(runID string) string {
	return fmt.Sprintf("./logs/%d.%s.json", time.Now().Unix(), runID)
}

// BuildLog represents a single shopping list build
type BuildLog struct {
	RunID      string     `json:"run_id"`
	Timestamp  time.Time  `json:"timestamp"`
	RecipeIDs  []string   `json:"recipe_ids"`
	Fetches    []FetchLog `json:"fetches,omitempty"`
	SkippedIDs []string   `json:"skipped_ids,omitempty"`
	Entries    int        `json:"entries"`
	Categories int        `json:"categories"`
	Duration   string     `json:"duration"`
	Error      string     `json:"error,omitempty"`
}

// FetchLog represents one recipe fetch within a build
type FetchLog struct {
	RecipeID string `json:"recipe_id"`
	Name     string `json:"name,omitempty"`
	Lines    int    `json:"lines"`
	Error    string `json:"error,omitempty"`
}

// FileBuildRecorder accumulates builds and writes them out on Flush
type FileBuildRecorder struct {
	builds []BuildLog
	writer io.Writer
}

// NewFileBuildRecorder creates a new file-based build recorder
func NewFileBuildRecorder(writer io.Writer) *FileBuildRecorder {
	return &FileBuildRecorder{
		builds: make([]BuildLog, 0),
		writer: writer,
	}
}

// RecordBuild buffers a build log (does not flush immediately)
func (r *FileBuildRecorder) RecordBuild(build BuildLog) error {
	r.builds = append(r.builds, build)
	return nil
}

// Flush writes all accumulated builds to the writer
func (r *FileBuildRecorder) Flush() error {
	if r.writer == nil {
		return nil
	}

	data, err := json.MarshalIndent(map[string]any{
		"shopping_session": map[string]any{
			"timestamp": time.Now(),
			"builds":    r.builds,
		},
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal build log: %w", err)
	}

	if _, err := r.writer.Write(data); err != nil {
		return fmt.Errorf("failed to write build log: %w", err)
	}

	r.builds = r.builds[:0]
	return nil
}

// Builds returns the buffered build logs.
func (r *FileBuildRecorder) Builds() []BuildLog {
	return r.builds
}

// NoOpBuildRecorder discards all build logs
type NoOpBuildRecorder struct{}

// NewNoOpBuildRecorder creates a new no-op build recorder
func NewNoOpBuildRecorder() *NoOpBuildRecorder {
	return &NoOpBuildRecorder{}
}

// RecordBuild discards the build log
func (nop *NoOpBuildRecorder) RecordBuild(build BuildLog) error {
	return nil
}

// StdoutBuildRecorder writes each build as a JSON line to stdout (for Lambda/CloudWatch)
type StdoutBuildRecorder struct {
	out io.Writer
}

// NewStdoutBuildRecorder creates a new stdout-based build recorder
func NewStdoutBuildRecorder() *StdoutBuildRecorder {
	return &StdoutBuildRecorder{out: os.Stdout}
}

// RecordBuild writes the build as a single JSON line
func (l *StdoutBuildRecorder) RecordBuild(build BuildLog) error {
	data, err := json.Marshal(build)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(l.out, string(data))
	return err
}
