/*
Package signup coordinates a client-side account sign-up flow against an
identity provider.

# Overview

A Coordinator drives one sign-up: the caller submits an identifier and a
secret, the identity provider creates the account and sends a verification
code, the caller submits the code, and the identity provider confirms the
account. Every transition is reported as an Outcome, both on the channel
returned by the call and to the Navigator supplied at construction.

	coord := signup.NewCoordinator(idp, signup.NavigatorFunc(func(o signup.Outcome) {
		if o.State == signup.StateConfirmed {
			showSignIn()
		}
	}))
	defer coord.Close()

	o := <-coord.SubmitSignUp(ctx, "a@example.com", "Secret1")
	if o.State != signup.StateAwaitingConfirmation {
		return o.Err
	}
	o = <-coord.SubmitConfirmation(ctx, code)

# Sequencing

The coordinator owns the identifier awaiting confirmation. A confirmation or
resend without an accepted sign-up fails with ErrSequence and never reaches the
identity provider. Only one identity provider call may be outstanding at a
time; overlapping calls fail with ErrBusy.

The coordinator reports Confirmed only when the identity provider says the
confirmation is complete. Nothing is retried.

# Navigation

The Navigator sees every published outcome exactly once, in the order the
coordinator published them, one call at a time. It may start the next step
from inside OnSignUpOutcome, for example by calling SubmitConfirmation and
waiting on its channel; the outcomes of that call are delivered after the
current callback returns.

# Teardown

Close cancels any outstanding call. Once Close returns the Navigator is never
invoked again and every channel still waiting receives a Failed outcome
carrying ErrClosed. Close must not be called from inside OnSignUpOutcome.
*/
package signup
