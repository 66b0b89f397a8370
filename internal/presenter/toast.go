// Package presenter is the transient-message surface of the runner. Messages
// may only be shown from the Main dispatcher.
package presenter

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/maxkimambo/dispatch/internal/dispatcher"
	"github.com/maxkimambo/dispatch/internal/logger"
)

// ErrNotOnMain is returned when Show is called off the Main dispatcher.
var ErrNotOnMain = errors.New("presentation must happen on the main context")

// Duration is how long a toast stays visible.
type Duration time.Duration

const (
	LengthShort = Duration(2 * time.Second)
	LengthLong  = Duration(3500 * time.Millisecond)
)

func (d Duration) String() string {
	switch d {
	case LengthShort:
		return "short"
	case LengthLong:
		return "long"
	default:
		return time.Duration(d).String()
	}
}

// ParseDuration maps "short" and "long" to their lengths.
func ParseDuration(s string) (Duration, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "short":
		return LengthShort, nil
	case "long":
		return LengthLong, nil
	default:
		return 0, fmt.Errorf("unknown toast length %q", s)
	}
}

// Presenter displays a message to the user.
type Presenter interface {
	Show(ctx context.Context, message string, d Duration) error
}

// Event is one presentation, kept for inspection.
type Event struct {
	Message  string
	Duration Duration
	OnMain   bool
	At       time.Time
}

// Toaster writes toasts to the user log stream.
type Toaster struct {
	mu     sync.Mutex
	events []Event
}

func NewToaster() *Toaster {
	return &Toaster{}
}

// Show presents message. Called from any context other than Main it
// refuses, records nothing and returns ErrNotOnMain.
func (t *Toaster) Show(ctx context.Context, message string, d Duration) error {
	if !dispatcher.IsMain(ctx) {
		logger.Op.WithFields(map[string]interface{}{
			"context": dispatcher.Current(ctx),
			"message": message,
		}).Warn("Toast rejected off the main context")
		return fmt.Errorf("show %q from %s: %w", message, dispatcher.Current(ctx), ErrNotOnMain)
	}

	t.mu.Lock()
	t.events = append(t.events, Event{
		Message:  message,
		Duration: d,
		OnMain:   true,
		At:       time.Now(),
	})
	t.mu.Unlock()

	logger.User.Toast(message)
	logger.Op.WithFields(map[string]interface{}{"length": d.String()}).Debug("Toast shown")
	return nil
}

// Events returns the presentations so far, oldest first.
func (t *Toaster) Events() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]Event, len(t.events))
	copy(out, t.events)
	return out
}
