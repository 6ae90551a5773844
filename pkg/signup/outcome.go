package signup

import "fmt"

// State is the externally observable phase of a sign-up flow.
type State int

const (
	StatePending State = iota
	StateAwaitingConfirmation
	StateConfirmed
	StateFailed
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateAwaitingConfirmation:
		return "awaiting_confirmation"
	case StateConfirmed:
		return "confirmed"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Outcome is the result of a coordinator transition.
type Outcome struct {
	State State

	// Reason is the human-readable cause of a failure.
	Reason string

	// Err is the typed cause of a failure: ErrValidation, ErrSequence,
	// ErrBusy, ErrClosed, ErrUnsupported or an *IdPError.
	Err error

	// Delivery describes where the verification code was sent. Set on
	// AwaitingConfirmation.
	Delivery CodeDelivery
}

// Failed reports whether the outcome is a failure.
func (o Outcome) Failed() bool { return o.State == StateFailed }

func (o Outcome) String() string {
	if o.State == StateFailed {
		return fmt.Sprintf("failed: %s", o.Reason)
	}
	return o.State.String()
}

func failed(err error) Outcome {
	reason := err.Error()
	if e, ok := AsIdPError(err); ok && e.Reason != "" {
		reason = e.Reason
	}
	return Outcome{State: StateFailed, Reason: reason, Err: err}
}

// CodeDelivery describes how a verification code was sent.
type CodeDelivery struct {
	Medium      string `json:"medium"`
	Destination string `json:"destination"`
}

// SignUpReceipt is the identity provider's answer to an account creation.
type SignUpReceipt struct {
	UserID   string
	Delivery CodeDelivery
}

// ConfirmationReceipt is the identity provider's answer to a confirmation.
// Complete is the only signal that moves a flow to Confirmed.
type ConfirmationReceipt struct {
	Complete bool
}
