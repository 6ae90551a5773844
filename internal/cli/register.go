package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/signup/pkg/signup"
)

const resendKeyword = "resend"

func newRegisterCmd(opts *options) *cobra.Command {
	var identifier, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register an account and confirm it",
		Long: `Register an account and confirm it with the verification code sent to its
email address. Enter "resend" at the code prompt to get a new code.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			idp, err := opts.identityProvider()
			if err != nil {
				return err
			}

			r := &registration{
				coordinator: signup.NewCoordinator(idp, opts.printer,
					signup.WithLogger(opts.logger),
					signup.WithTimeout(opts.timeout),
				),
				printer: opts.printer,
				in:      bufio.NewReader(cmd.InOrStdin()),
			}
			defer r.coordinator.Close()

			return r.run(cmd.Context(), identifier, password)
		},
	}

	cmd.Flags().StringVar(&identifier, "identifier", "", "email address to register (required)")
	cmd.Flags().StringVar(&password, "password", "", "account password (prompted when omitted)")
	_ = cmd.MarkFlagRequired("identifier")

	return cmd
}

// registration drives one coordinator from terminal input.
type registration struct {
	coordinator *signup.Coordinator
	printer     *Printer
	in          *bufio.Reader
}

func (r *registration) run(ctx context.Context, identifier, password string) error {
	if password == "" {
		var err error
		if password, err = r.prompt("Password: "); err != nil {
			return err
		}
	}

	o := <-r.coordinator.SubmitSignUp(ctx, identifier, password)
	if o.Failed() {
		return fmt.Errorf("sign-up failed: %s", o.Reason)
	}

	for {
		input, err := r.prompt(fmt.Sprintf("Verification code (or %q): ", resendKeyword))
		if err != nil {
			return err
		}

		if strings.EqualFold(input, resendKeyword) {
			o = <-r.coordinator.ResendCode(ctx)
		} else {
			o = <-r.coordinator.SubmitConfirmation(ctx, input)
		}

		switch {
		case o.State == signup.StateConfirmed:
			r.printer.Print("You can now sign in as %s.", identifier)
			return nil
		case errors.Is(o.Err, signup.ErrIncomplete):
			r.printer.Warning("The account is waiting for an operator to approve it.")
			return nil
		case o.Failed() && !retryable(o.Err):
			return fmt.Errorf("confirmation failed: %s", o.Reason)
		}
	}
}

// prompt reads one trimmed line.
func (r *registration) prompt(label string) (string, error) {
	r.printer.Prompt(label)

	line, err := r.in.ReadString('\n')
	line = strings.TrimSpace(line)
	if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
		if errors.Is(err, io.EOF) {
			return "", errors.New("input closed")
		}
		return "", err
	}
	return line, nil
}

// retryable reports whether the user can fix a failure by entering another
// code or asking for a new one.
func retryable(err error) bool {
	if errors.Is(err, signup.ErrValidation) {
		return true
	}
	for _, code := range []string{
		signup.CodeCodeMismatch,
		signup.CodeCodeExpired,
		signup.CodeTooManyAttempts,
		signup.CodeThrottled,
	} {
		if signup.IsIdPCode(err, code) {
			return true
		}
	}
	return false
}
