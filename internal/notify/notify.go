// Package notify sends best-effort admin notifications about account
// activity through a Web3Forms-style form relay.
//
// Notifications are advisory: Notify never returns an error. Transport and
// decoding failures are folded into Result{Success: false}, and callers are
// expected to log the result and move on.
package notify

import "context"

// Kind classifies a notification event.
type Kind string

const (
	KindSignUp Kind = "sign_up"
	KindLogin  Kind = "login"
)

// Event describes the account activity being reported.
type Event struct {
	Kind  Kind
	Name  string
	Email string
}

// Result is the outcome of a notification attempt.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Notifier delivers an Event. Implementations must not panic and must not
// signal failure other than through the returned Result.
type Notifier interface {
	Notify(ctx context.Context, ev Event) Result
}

// Noop discards every event, reporting success. Used in tests and when
// notifications are disabled by configuration.
type Noop struct{}

func (Noop) Notify(ctx context.Context, ev Event) Result {
	return Result{Success: true, Message: "notifications disabled"}
}
