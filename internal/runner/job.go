package runner

import (
	"github.com/maxkimambo/dispatch/internal/dispatcher"
	"github.com/maxkimambo/dispatch/internal/taskmanager"
)

// Job is the handle of one launched run.
type Job struct {
	io     *dispatcher.IO
	shared *taskmanager.SharedContext
	done   chan struct{}
	err    error
}

func newJob(io *dispatcher.IO) *Job {
	return &Job{
		io:     io,
		shared: taskmanager.NewSharedContext(),
		done:   make(chan struct{}),
	}
}

func (j *Job) wait() {
	j.err = j.io.Wait()
	close(j.done)
}

// Done is closed when the background scope has finished.
func (j *Job) Done() <-chan struct{} {
	return j.done
}

// Wait blocks until the run finishes and returns its error, if any.
func (j *Job) Wait() error {
	<-j.done
	return j.err
}

// Result returns a value the run stored, e.g. KeyResult1. Valid after Done.
func (j *Job) Result(key string) (string, bool) {
	v, err := j.shared.GetString(key)
	return v, err == nil
}
