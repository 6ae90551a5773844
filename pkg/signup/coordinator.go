package signup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// Coordinator sequences one sign-up flow: account creation followed by
// confirmation. It is safe for concurrent use.
type Coordinator struct {
	idp     IdentityProvider
	nav     Navigator
	log     *slog.Logger
	timeout time.Duration

	mu      sync.Mutex
	pending string // identifier awaiting confirmation
	busy    bool
	closed  bool
	cancel  context.CancelFunc
	last    Outcome

	// queue holds published outcomes not yet handed to the navigator, in
	// publication order. One goroutine at a time drains it.
	queue    []Outcome
	draining bool
	idle     *sync.Cond
}

// NewCoordinator returns a Coordinator calling idp and reporting to nav. A nil
// nav discards outcomes.
func NewCoordinator(idp IdentityProvider, nav Navigator, opts ...Option) *Coordinator {
	if nav == nil {
		nav = discardNavigator{}
	}
	c := &Coordinator{
		idp:     idp,
		nav:     nav,
		log:     slog.Default(),
		timeout: DefaultTimeout,
		last:    Outcome{State: StatePending},
	}
	c.idle = sync.NewCond(&c.mu)
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With(slog.String("component", "signup"))
	return c
}

// SubmitSignUp asks the identity provider to create an account for
// identifier. The identifier is also sent as the "email" attribute. On success
// the identifier becomes the one awaiting confirmation.
func (c *Coordinator) SubmitSignUp(ctx context.Context, identifier, secret string) <-chan Outcome {
	out := make(chan Outcome, 1)
	identifier = strings.TrimSpace(identifier)

	callCtx, err := c.begin(ctx, func() error {
		if identifier == "" || secret == "" {
			return fmt.Errorf("%w: identifier and secret are required", ErrValidation)
		}
		return nil
	})
	if err != nil {
		c.reject(out, err)
		return out
	}

	go func() {
		receipt, err := c.idp.CreateAccount(callCtx, identifier, secret, map[string]string{"email": identifier})
		c.end(out, "sign_up", func() Outcome {
			if err != nil {
				return failed(idpError(callCtx, err))
			}
			c.pending = identifier
			return Outcome{State: StateAwaitingConfirmation, Delivery: receipt.Delivery}
		})
	}()

	return out
}

// SubmitConfirmation sends code for the identifier awaiting confirmation. The
// flow reaches Confirmed only when the identity provider reports the
// confirmation complete.
func (c *Coordinator) SubmitConfirmation(ctx context.Context, code string) <-chan Outcome {
	out := make(chan Outcome, 1)
	code = strings.TrimSpace(code)

	var identifier string
	callCtx, err := c.begin(ctx, func() error {
		if c.pending == "" {
			return fmt.Errorf("%w: no sign-up awaiting confirmation", ErrSequence)
		}
		if code == "" {
			return fmt.Errorf("%w: verification code is required", ErrValidation)
		}
		identifier = c.pending
		return nil
	})
	if err != nil {
		c.reject(out, err)
		return out
	}

	go func() {
		receipt, err := c.idp.ConfirmAccount(callCtx, identifier, code)
		c.end(out, "confirm", func() Outcome {
			switch {
			case err != nil:
				return failed(idpError(callCtx, err))
			case !receipt.Complete:
				return failed(ErrIncomplete)
			}
			c.pending = ""
			return Outcome{State: StateConfirmed}
		})
	}()

	return out
}

// ResendCode asks the identity provider for a fresh verification code for the
// identifier awaiting confirmation.
func (c *Coordinator) ResendCode(ctx context.Context) <-chan Outcome {
	out := make(chan Outcome, 1)

	resender, ok := c.idp.(CodeResender)

	var identifier string
	callCtx, err := c.begin(ctx, func() error {
		if c.pending == "" {
			return fmt.Errorf("%w: no sign-up awaiting confirmation", ErrSequence)
		}
		if !ok {
			return ErrUnsupported
		}
		identifier = c.pending
		return nil
	})
	if err != nil {
		c.reject(out, err)
		return out
	}

	go func() {
		delivery, err := resender.ResendCode(callCtx, identifier)
		c.end(out, "resend", func() Outcome {
			if err != nil {
				return failed(idpError(callCtx, err))
			}
			return Outcome{State: StateAwaitingConfirmation, Delivery: delivery}
		})
	}()

	return out
}

// Outcome returns the last published outcome.
func (c *Coordinator) Outcome() Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

// PendingIdentifier returns the identifier awaiting confirmation, if any.
func (c *Coordinator) PendingIdentifier() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending, c.pending != ""
}

// Close cancels any outstanding call and stops all further navigator
// callbacks. It waits for a callback already running, so it must not be called
// from inside OnSignUpOutcome. It is safe to call more than once.
func (c *Coordinator) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.queue = nil
	if c.cancel != nil {
		c.cancel()
	}
	for c.draining {
		c.idle.Wait()
	}
	c.mu.Unlock()

	c.log.Debug("coordinator closed")
	return nil
}

// begin reserves the coordinator for one identity provider call. check runs
// with the state lock held.
func (c *Coordinator) begin(ctx context.Context, check func() error) (context.Context, error) {
	c.mu.Lock()

	if c.closed {
		c.mu.Unlock()
		return nil, ErrClosed
	}
	if c.busy {
		c.mu.Unlock()
		return nil, ErrBusy
	}
	if err := check(); err != nil {
		c.mu.Unlock()
		return nil, err
	}

	var (
		callCtx context.Context
		cancel  context.CancelFunc
	)
	if c.timeout > 0 {
		callCtx, cancel = context.WithTimeout(ctx, c.timeout)
	} else {
		callCtx, cancel = context.WithCancel(ctx)
	}
	c.busy = true
	c.cancel = cancel
	c.publish(Outcome{State: StatePending})
	c.mu.Unlock()

	c.drain()
	return callCtx, nil
}

// end releases the coordinator, applies commit with the state lock held and
// publishes its outcome. A call interrupted by Close gets ErrClosed instead.
func (c *Coordinator) end(out chan<- Outcome, op string, commit func() Outcome) {
	defer close(out)

	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	c.busy = false
	c.cancel = nil

	if c.closed {
		c.mu.Unlock()
		c.log.Debug("discarding result after close", slog.String("op", op))
		out <- failed(ErrClosed)
		return
	}

	o := commit()
	c.publish(o)
	c.mu.Unlock()

	if o.Failed() {
		c.log.Warn("sign-up step failed",
			slog.String("op", op),
			slog.String("reason", o.Reason),
		)
	} else {
		c.log.Debug("sign-up step finished",
			slog.String("op", op),
			slog.String("state", o.State.String()),
		)
	}

	c.drain()
	out <- o
}

// reject answers a call that never reached the identity provider. Busy and
// closed rejections leave the flow untouched; the rest are published.
func (c *Coordinator) reject(out chan<- Outcome, err error) {
	defer close(out)

	o := failed(err)
	if errors.Is(err, ErrBusy) || errors.Is(err, ErrClosed) {
		out <- o
		return
	}

	c.mu.Lock()
	c.publish(o)
	c.mu.Unlock()

	c.log.Debug("sign-up request rejected", slog.String("reason", o.Reason))
	c.drain()
	out <- o
}

// publish records o as the current outcome and queues it for the navigator.
// The caller holds c.mu.
func (c *Coordinator) publish(o Outcome) {
	c.last = o
	if !c.closed {
		c.queue = append(c.queue, o)
	}
}

// drain hands queued outcomes to the navigator in order. If another goroutine
// is already draining it returns at once and that goroutine delivers them, so
// a navigator may call back into the coordinator.
func (c *Coordinator) drain() {
	c.mu.Lock()
	if c.draining {
		c.mu.Unlock()
		return
	}
	c.draining = true

	for len(c.queue) > 0 && !c.closed {
		o := c.queue[0]
		c.queue = c.queue[1:]

		c.mu.Unlock()
		c.nav.OnSignUpOutcome(o)
		c.mu.Lock()
	}

	c.draining = false
	c.idle.Broadcast()
	c.mu.Unlock()
}

// idpError makes sure every identity provider failure is an *IdPError.
func idpError(ctx context.Context, err error) error {
	if _, ok := AsIdPError(err); ok {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return NewIdPError(CodeNetwork, "identity provider did not respond in time", err)
	}
	if errors.Is(err, context.Canceled) {
		return NewIdPError(CodeNetwork, "request cancelled", err)
	}
	return NewIdPError(CodeUnknown, err.Error(), err)
}
