package progress

import (
	"fmt"
	"strings"
	"time"
)

// ProgressInfo is a snapshot of a workflow run
type ProgressInfo struct {
	Workflow          string
	TotalTasks        int
	CompletedTasks    int
	FailedTasks       int
	CurrentTask       string
	NextTask          string
	ElapsedTime       time.Duration
	EstimatedTimeLeft time.Duration
}

// Reporter formats progress lines for a workflow run
type Reporter struct {
	startTime time.Time
}

// NewReporter creates a reporter whose clock starts now
func NewReporter() *Reporter {
	return &Reporter{startTime: time.Now()}
}

// Elapsed returns the time since the reporter was created
func (r *Reporter) Elapsed() time.Duration {
	return time.Since(r.startTime)
}

// Snapshot builds a ProgressInfo with elapsed time and ETA filled in
func (r *Reporter) Snapshot(workflow string, completed, total int, current, next string) ProgressInfo {
	elapsed := r.Elapsed()
	return ProgressInfo{
		Workflow:          workflow,
		TotalTasks:        total,
		CompletedTasks:    completed,
		CurrentTask:       current,
		NextTask:          next,
		ElapsedTime:       elapsed,
		EstimatedTimeLeft: CalculateETA(completed, total, elapsed),
	}
}

// Report generates a one-line progress report
func (r *Reporter) Report(info ProgressInfo) string {
	var sb strings.Builder

	percentage := 0.0
	if info.TotalTasks > 0 {
		percentage = float64(info.CompletedTasks) / float64(info.TotalTasks) * 100
	}

	sb.WriteString(fmt.Sprintf("Progress: %d/%d tasks completed (%.1f%%)",
		info.CompletedTasks, info.TotalTasks, percentage))

	if info.FailedTasks > 0 {
		sb.WriteString(fmt.Sprintf(", %d failed", info.FailedTasks))
	}
	if info.CurrentTask != "" {
		sb.WriteString(fmt.Sprintf(" | Current: %s", info.CurrentTask))
	}
	if info.NextTask != "" {
		sb.WriteString(fmt.Sprintf(" | Next: %s", info.NextTask))
	}

	sb.WriteString(fmt.Sprintf(" | Elapsed: %s", FormatDuration(info.ElapsedTime)))

	if info.EstimatedTimeLeft > 0 {
		sb.WriteString(fmt.Sprintf(" | ETA: %s", FormatDuration(info.EstimatedTimeLeft)))
	}

	return sb.String()
}

// ReportTaskComplete reports task completion
func (r *Reporter) ReportTaskComplete(taskID string, duration time.Duration, success bool) string {
	status := "COMPLETED"
	if !success {
		status = "FAILED"
	}
	return fmt.Sprintf("%s %s (took %s)", status, taskID, FormatDuration(duration))
}

// CalculateETA estimates time remaining based on current progress
func CalculateETA(completed, total int, elapsed time.Duration) time.Duration {
	if completed <= 0 || total <= 0 || completed >= total {
		return 0
	}

	averageTimePerTask := elapsed / time.Duration(completed)
	remainingTasks := total - completed
	return averageTimePerTask * time.Duration(remainingTasks)
}

// FormatDuration formats a duration in a user-friendly way
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	} else if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	} else if d < time.Hour {
		return fmt.Sprintf("%dm %ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%dh %dm", int(d.Hours()), int(d.Minutes())%60)
}
