package signup_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/signup/pkg/signup"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	testIdentifier = "a@example.com"
	testSecret     = "Secret1"
	testCode       = "123456"
)

var testAttrs = map[string]string{"email": testIdentifier}

// ============================================================================
// Test doubles
// ============================================================================

type mockIdP struct {
	mock.Mock
}

func (m *mockIdP) CreateAccount(ctx context.Context, identifier, secret string, attributes map[string]string) (signup.SignUpReceipt, error) {
	args := m.Called(ctx, identifier, secret, attributes)
	return args.Get(0).(signup.SignUpReceipt), args.Error(1)
}

func (m *mockIdP) ConfirmAccount(ctx context.Context, identifier, code string) (signup.ConfirmationReceipt, error) {
	args := m.Called(ctx, identifier, code)
	return args.Get(0).(signup.ConfirmationReceipt), args.Error(1)
}

type mockResendingIdP struct {
	mockIdP
}

func (m *mockResendingIdP) ResendCode(ctx context.Context, identifier string) (signup.CodeDelivery, error) {
	args := m.Called(ctx, identifier)
	return args.Get(0).(signup.CodeDelivery), args.Error(1)
}

type recorder struct {
	mu       sync.Mutex
	outcomes []signup.Outcome
}

func (r *recorder) OnSignUpOutcome(o signup.Outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, o)
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.outcomes)
}

func (r *recorder) countState(s signup.State) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, o := range r.outcomes {
		if o.State == s {
			n++
		}
	}
	return n
}

func receive(t *testing.T, ch <-chan signup.Outcome) signup.Outcome {
	t.Helper()
	select {
	case o, ok := <-ch:
		require.True(t, ok, "channel closed without an outcome")
		_, open := <-ch
		require.False(t, open, "channel must close after the terminal outcome")
		return o
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for outcome")
		return signup.Outcome{}
	}
}

var delivery = signup.CodeDelivery{Medium: "email", Destination: "a***@example.com"}

func expectSignUp(m *mockIdP) *mock.Call {
	return m.On("CreateAccount", mock.Anything, testIdentifier, testSecret, testAttrs).
		Return(signup.SignUpReceipt{UserID: "01J", Delivery: delivery}, nil)
}

// signedUp returns a coordinator with a sign-up already accepted.
func signedUp(t *testing.T, idp signup.IdentityProvider, m *mockIdP, nav signup.Navigator) *signup.Coordinator {
	t.Helper()
	expectSignUp(m).Once()

	c := signup.NewCoordinator(idp, nav)
	t.Cleanup(func() { _ = c.Close() })

	o := receive(t, c.SubmitSignUp(context.Background(), testIdentifier, testSecret))
	require.Equal(t, signup.StateAwaitingConfirmation, o.State)
	return c
}

// ============================================================================
// Validation and sequencing
// ============================================================================

func TestSubmitSignUpRejectsEmptyInput(t *testing.T) {
	tests := []struct {
		name       string
		identifier string
		secret     string
	}{
		{"empty identifier", "", testSecret},
		{"blank identifier", "   ", testSecret},
		{"empty secret", testIdentifier, ""},
		{"both empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &mockIdP{}
			nav := &recorder{}
			c := signup.NewCoordinator(m, nav)
			defer c.Close()

			o := receive(t, c.SubmitSignUp(context.Background(), tt.identifier, tt.secret))

			require.Equal(t, signup.StateFailed, o.State)
			require.ErrorIs(t, o.Err, signup.ErrValidation)
			require.NotEmpty(t, o.Reason)
			m.AssertNotCalled(t, "CreateAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

			_, ok := c.PendingIdentifier()
			require.False(t, ok)
			require.Equal(t, 1, nav.countState(signup.StateFailed))
		})
	}
}

func TestSubmitConfirmationWithoutSignUp(t *testing.T) {
	m := &mockIdP{}
	c := signup.NewCoordinator(m, nil)
	defer c.Close()

	for _, code := range []string{testCode, "", "000000"} {
		o := receive(t, c.SubmitConfirmation(context.Background(), code))
		require.Equal(t, signup.StateFailed, o.State)
		require.ErrorIs(t, o.Err, signup.ErrSequence)
	}

	m.AssertNotCalled(t, "ConfirmAccount", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitConfirmationRejectsEmptyCode(t *testing.T) {
	m := &mockIdP{}
	c := signedUp(t, m, m, nil)

	o := receive(t, c.SubmitConfirmation(context.Background(), "  "))

	require.ErrorIs(t, o.Err, signup.ErrValidation)
	m.AssertNotCalled(t, "ConfirmAccount", mock.Anything, mock.Anything, mock.Anything)

	id, ok := c.PendingIdentifier()
	require.True(t, ok)
	require.Equal(t, testIdentifier, id)
}

// ============================================================================
// Happy path and IdP answers
// ============================================================================

func TestSignUpThenConfirmCompletes(t *testing.T) {
	m := &mockIdP{}
	nav := &recorder{}
	c := signedUp(t, m, m, nav)

	id, ok := c.PendingIdentifier()
	require.True(t, ok)
	require.Equal(t, testIdentifier, id)
	require.Equal(t, delivery, c.Outcome().Delivery)

	m.On("ConfirmAccount", mock.Anything, testIdentifier, testCode).
		Return(signup.ConfirmationReceipt{Complete: true}, nil).Once()

	o := receive(t, c.SubmitConfirmation(context.Background(), testCode))

	require.Equal(t, signup.StateConfirmed, o.State)
	require.NoError(t, o.Err)
	require.Equal(t, signup.StateConfirmed, c.Outcome().State)
	require.Equal(t, 1, nav.countState(signup.StateConfirmed))

	_, ok = c.PendingIdentifier()
	require.False(t, ok, "pending identifier is cleared once confirmed")

	// A second confirmation has nothing to confirm.
	o = receive(t, c.SubmitConfirmation(context.Background(), testCode))
	require.ErrorIs(t, o.Err, signup.ErrSequence)
	require.Equal(t, 1, nav.countState(signup.StateConfirmed))

	m.AssertExpectations(t)
}

func TestNavigatorSeesPendingBeforeResult(t *testing.T) {
	m := &mockIdP{}
	nav := &recorder{}
	signedUp(t, m, m, nav)

	nav.mu.Lock()
	defer nav.mu.Unlock()
	require.Len(t, nav.outcomes, 2)
	require.Equal(t, signup.StatePending, nav.outcomes[0].State)
	require.Equal(t, signup.StateAwaitingConfirmation, nav.outcomes[1].State)
}

func TestConfirmationIncomplete(t *testing.T) {
	m := &mockIdP{}
	nav := &recorder{}
	c := signedUp(t, m, m, nav)

	m.On("ConfirmAccount", mock.Anything, testIdentifier, testCode).
		Return(signup.ConfirmationReceipt{Complete: false}, nil)

	o := receive(t, c.SubmitConfirmation(context.Background(), testCode))

	require.Equal(t, signup.StateFailed, o.State)
	require.Equal(t, "confirmation incomplete", o.Reason)
	require.ErrorIs(t, o.Err, signup.ErrIncomplete)
	require.Zero(t, nav.countState(signup.StateConfirmed))

	// The account is still awaiting confirmation and may be retried.
	_, ok := c.PendingIdentifier()
	require.True(t, ok)
}

func TestDuplicateAccountLeavesNothingPending(t *testing.T) {
	m := &mockIdP{}
	m.On("CreateAccount", mock.Anything, testIdentifier, testSecret, testAttrs).
		Return(signup.SignUpReceipt{}, signup.NewIdPError(signup.CodeDuplicateAccount, "duplicate account", nil))

	c := signup.NewCoordinator(m, nil)
	defer c.Close()

	o := receive(t, c.SubmitSignUp(context.Background(), testIdentifier, testSecret))

	require.Equal(t, signup.StateFailed, o.State)
	require.Equal(t, "duplicate account", o.Reason)
	require.True(t, signup.IsIdPCode(o.Err, signup.CodeDuplicateAccount))

	_, ok := c.PendingIdentifier()
	require.False(t, ok)

	o = receive(t, c.SubmitConfirmation(context.Background(), testCode))
	require.ErrorIs(t, o.Err, signup.ErrSequence)
	m.AssertNotCalled(t, "ConfirmAccount", mock.Anything, mock.Anything, mock.Anything)
}

func TestConfirmationFailureKeepsPending(t *testing.T) {
	m := &mockIdP{}
	c := signedUp(t, m, m, nil)

	m.On("ConfirmAccount", mock.Anything, testIdentifier, "999999").
		Return(signup.ConfirmationReceipt{}, signup.NewIdPError(signup.CodeCodeMismatch, "verification code does not match", nil)).Once()
	m.On("ConfirmAccount", mock.Anything, testIdentifier, testCode).
		Return(signup.ConfirmationReceipt{Complete: true}, nil).Once()

	o := receive(t, c.SubmitConfirmation(context.Background(), "999999"))
	require.True(t, signup.IsIdPCode(o.Err, signup.CodeCodeMismatch))
	require.Equal(t, "verification code does not match", o.Reason)

	o = receive(t, c.SubmitConfirmation(context.Background(), testCode))
	require.Equal(t, signup.StateConfirmed, o.State)
	m.AssertExpectations(t)
}

func TestPlainProviderErrorsBecomeIdPErrors(t *testing.T) {
	m := &mockIdP{}
	m.On("CreateAccount", mock.Anything, testIdentifier, testSecret, testAttrs).
		Return(signup.SignUpReceipt{}, errors.New("boom"))

	c := signup.NewCoordinator(m, nil)
	defer c.Close()

	o := receive(t, c.SubmitSignUp(context.Background(), testIdentifier, testSecret))

	require.True(t, signup.IsIdPCode(o.Err, signup.CodeUnknown))
	require.Equal(t, "boom", o.Reason)
}

func TestIdentifierIsTrimmed(t *testing.T) {
	m := &mockIdP{}
	expectSignUp(m)

	c := signup.NewCoordinator(m, nil)
	defer c.Close()

	o := receive(t, c.SubmitSignUp(context.Background(), "  "+testIdentifier+"\n", testSecret))
	require.Equal(t, signup.StateAwaitingConfirmation, o.State)
	m.AssertExpectations(t)
}

func TestTimeoutSurfacesAsNetworkError(t *testing.T) {
	m := &mockIdP{}
	m.On("CreateAccount", mock.Anything, testIdentifier, testSecret, testAttrs).
		Run(func(args mock.Arguments) {
			<-args.Get(0).(context.Context).Done()
		}).
		Return(signup.SignUpReceipt{}, context.DeadlineExceeded)

	c := signup.NewCoordinator(m, nil, signup.WithTimeout(20*time.Millisecond))
	defer c.Close()

	o := receive(t, c.SubmitSignUp(context.Background(), testIdentifier, testSecret))

	require.True(t, signup.IsIdPCode(o.Err, signup.CodeNetwork))
	require.ErrorIs(t, o.Err, context.DeadlineExceeded)
}

// ============================================================================
// Resend
// ============================================================================

func TestResendCode(t *testing.T) {
	m := &mockResendingIdP{}
	c := signedUp(t, m, &m.mockIdP, nil)

	fresh := signup.CodeDelivery{Medium: "email", Destination: "a***@example.com"}
	m.On("ResendCode", mock.Anything, testIdentifier).Return(fresh, nil).Once()

	o := receive(t, c.ResendCode(context.Background()))

	require.Equal(t, signup.StateAwaitingConfirmation, o.State)
	require.Equal(t, fresh, o.Delivery)
	m.AssertExpectations(t)
}

func TestResendCodeWithoutSignUp(t *testing.T) {
	m := &mockResendingIdP{}
	c := signup.NewCoordinator(m, nil)
	defer c.Close()

	o := receive(t, c.ResendCode(context.Background()))

	require.ErrorIs(t, o.Err, signup.ErrSequence)
	m.AssertNotCalled(t, "ResendCode", mock.Anything, mock.Anything)
}

func TestResendCodeUnsupported(t *testing.T) {
	m := &mockIdP{}
	c := signedUp(t, m, m, nil)

	o := receive(t, c.ResendCode(context.Background()))

	require.ErrorIs(t, o.Err, signup.ErrUnsupported)
	_, ok := c.PendingIdentifier()
	require.True(t, ok)
}

// ============================================================================
// Concurrency and teardown
// ============================================================================

// blockingSignUp makes CreateAccount wait until release is closed or the call
// context ends. entered is closed once the call starts.
func blockingSignUp(m *mockIdP) (entered, release chan struct{}) {
	entered = make(chan struct{})
	release = make(chan struct{})
	m.On("CreateAccount", mock.Anything, testIdentifier, testSecret, testAttrs).
		Run(func(args mock.Arguments) {
			close(entered)
			select {
			case <-release:
			case <-args.Get(0).(context.Context).Done():
			}
		}).
		Return(signup.SignUpReceipt{UserID: "01J", Delivery: delivery}, nil).Once()
	return entered, release
}

func TestConcurrentCallsAreRejected(t *testing.T) {
	m := &mockIdP{}
	entered, release := blockingSignUp(m)

	c := signup.NewCoordinator(m, nil)
	defer c.Close()

	first := c.SubmitSignUp(context.Background(), testIdentifier, testSecret)
	<-entered

	o := receive(t, c.SubmitSignUp(context.Background(), testIdentifier, testSecret))
	require.ErrorIs(t, o.Err, signup.ErrBusy)
	require.ErrorIs(t, o.Err, signup.ErrSequence)
	require.Equal(t, signup.StatePending, c.Outcome().State, "busy rejection does not disturb the flow")

	close(release)
	o = receive(t, first)
	require.Equal(t, signup.StateAwaitingConfirmation, o.State)

	m.AssertNumberOfCalls(t, "CreateAccount", 1)
}

func TestCloseDuringSignUpSuppressesNavigation(t *testing.T) {
	m := &mockIdP{}
	entered, release := blockingSignUp(m)
	defer close(release)

	nav := &recorder{}
	c := signup.NewCoordinator(m, nav)

	out := c.SubmitSignUp(context.Background(), testIdentifier, testSecret)
	<-entered

	require.NoError(t, c.Close())
	seen := nav.count()

	o := receive(t, out)
	require.Equal(t, signup.StateFailed, o.State)
	require.ErrorIs(t, o.Err, signup.ErrClosed)

	require.Equal(t, seen, nav.count(), "navigator invoked after close")
	require.Zero(t, nav.countState(signup.StateAwaitingConfirmation))

	_, ok := c.PendingIdentifier()
	require.False(t, ok)
}

func TestCallsAfterClose(t *testing.T) {
	m := &mockIdP{}
	nav := &recorder{}
	c := signup.NewCoordinator(m, nav)

	require.NoError(t, c.Close())
	require.NoError(t, c.Close())

	for _, ch := range []<-chan signup.Outcome{
		c.SubmitSignUp(context.Background(), testIdentifier, testSecret),
		c.SubmitConfirmation(context.Background(), testCode),
		c.ResendCode(context.Background()),
	} {
		o := receive(t, ch)
		require.ErrorIs(t, o.Err, signup.ErrClosed)
	}

	require.Zero(t, nav.count())
	m.AssertNotCalled(t, "CreateAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (r *recorder) states() []signup.State {
	r.mu.Lock()
	defer r.mu.Unlock()
	states := make([]signup.State, 0, len(r.outcomes))
	for _, o := range r.outcomes {
		states = append(states, o.State)
	}
	return states
}

func TestNavigatorMayCallBackIntoCoordinator(t *testing.T) {
	m := &mockIdP{}
	expectSignUp(m).Once()
	m.On("ConfirmAccount", mock.Anything, testIdentifier, testCode).
		Return(signup.ConfirmationReceipt{Complete: true}, nil).Once()

	nav := &recorder{}
	var (
		c         *signup.Coordinator
		confirmed = make(chan signup.Outcome, 1)
	)
	c = signup.NewCoordinator(m, signup.NavigatorFunc(func(o signup.Outcome) {
		nav.OnSignUpOutcome(o)
		if o.State == signup.StateAwaitingConfirmation {
			confirmed <- <-c.SubmitConfirmation(context.Background(), testCode)
		}
	}))
	defer c.Close()

	o := receive(t, c.SubmitSignUp(context.Background(), testIdentifier, testSecret))
	require.Equal(t, signup.StateAwaitingConfirmation, o.State)

	select {
	case o = <-confirmed:
		require.Equal(t, signup.StateConfirmed, o.State)
	case <-time.After(5 * time.Second):
		t.Fatal("confirmation from inside the navigator never finished")
	}

	require.Equal(t, []signup.State{
		signup.StatePending,
		signup.StateAwaitingConfirmation,
		signup.StatePending,
		signup.StateConfirmed,
	}, nav.states())
	require.Equal(t, signup.StateConfirmed, c.Outcome().State)
	m.AssertExpectations(t)
}

func TestSlowNavigatorSeesOutcomesInOrder(t *testing.T) {
	m := &mockIdP{}
	expectSignUp(m).Once()
	m.On("ConfirmAccount", mock.Anything, testIdentifier, testCode).
		Return(signup.ConfirmationReceipt{Complete: true}, nil).Once()

	entered := make(chan struct{})
	release := make(chan struct{})
	nav := &recorder{}
	c := signup.NewCoordinator(m, signup.NavigatorFunc(func(o signup.Outcome) {
		nav.OnSignUpOutcome(o)
		if o.State == signup.StateAwaitingConfirmation {
			close(entered)
			<-release
		}
	}))
	defer c.Close()

	first := c.SubmitSignUp(context.Background(), testIdentifier, testSecret)
	<-entered

	// The sign-up result is committed, so the next call may start while the
	// navigator is still busy with it.
	o := receive(t, c.SubmitConfirmation(context.Background(), testCode))
	require.Equal(t, signup.StateConfirmed, o.State)

	close(release)
	o = receive(t, first)
	require.Equal(t, signup.StateAwaitingConfirmation, o.State)

	states := nav.states()
	require.Equal(t, []signup.State{
		signup.StatePending,
		signup.StateAwaitingConfirmation,
		signup.StatePending,
		signup.StateConfirmed,
	}, states)
	require.Equal(t, c.Outcome().State, states[len(states)-1])
}

func TestNavigatorFunc(t *testing.T) {
	var got []signup.State
	nav := signup.NavigatorFunc(func(o signup.Outcome) { got = append(got, o.State) })

	c := signup.NewCoordinator(&mockIdP{}, nav)
	defer c.Close()

	receive(t, c.SubmitSignUp(context.Background(), "", ""))
	require.Equal(t, []signup.State{signup.StateFailed}, got)
}

func TestOutcomeString(t *testing.T) {
	require.Equal(t, "confirmed", signup.Outcome{State: signup.StateConfirmed}.String())
	require.Equal(t, "failed: duplicate account",
		signup.Outcome{State: signup.StateFailed, Reason: "duplicate account"}.String())
	require.Equal(t, "state(42)", signup.State(42).String())
}
