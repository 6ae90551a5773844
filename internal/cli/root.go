// Package cli implements the signup command line client.
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/signup/internal/provider/kratos"
	"github.com/aussiebroadwan/signup/pkg/authsdk"
	"github.com/aussiebroadwan/signup/pkg/signup"
	"github.com/aussiebroadwan/signup/pkg/slogx"
)

const (
	providerLocal  = "local"
	providerKratos = "kratos"
)

// BuildInfo is printed by the version command.
type BuildInfo struct {
	Version string
	Commit  string
	Built   string
}

// options holds the persistent flags.
type options struct {
	provider  string
	idpURL    string
	kratosURL string
	timeout   time.Duration
	noColor   bool
	verbose   bool

	printer *Printer
	logger  *slog.Logger
}

// NewRootCmd builds the signup command tree.
func NewRootCmd(info BuildInfo) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "signup",
		Short: "Create and confirm accounts from the terminal",
		Long: `signup registers an account with an identity provider and walks through
confirming it with the emailed verification code.

Example usage:
  signup register --identifier a@example.com          # register and confirm
  signup register --provider kratos --identifier ...  # use Ory Kratos
  signup admin token --secret $IDP_ADMIN_SECRET       # mint an admin token
  signup admin approve a@example.com --token $TOKEN   # approve an account`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.init(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.provider, "provider", envOr("SIGNUP_PROVIDER", providerLocal), "identity provider: local or kratos")
	flags.StringVar(&opts.idpURL, "idp-url", envOr("SIGNUP_IDP_URL", "http://localhost:8080"), "local identity provider URL")
	flags.StringVar(&opts.kratosURL, "kratos-url", envOr("SIGNUP_KRATOS_URL", "http://localhost:4433"), "Kratos public API URL")
	flags.DurationVar(&opts.timeout, "timeout", signup.DefaultTimeout, "deadline for each identity provider call")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output")

	root.AddCommand(
		newRegisterCmd(opts),
		newAdminCmd(opts),
		newVersionCmd(info),
	)
	return root
}

func (o *options) init(cmd *cobra.Command) error {
	o.printer = NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr(), ResolveColors(o.noColor))

	if o.verbose {
		o.logger = slogx.New(slogx.Config{
			Service: "signup-cli",
			Level:   "debug",
			Format:  "text",
			Output:  cmd.ErrOrStderr(),
		})
	} else {
		o.logger = slogx.Discard()
	}

	switch o.provider {
	case providerLocal, providerKratos:
		return nil
	default:
		return fmt.Errorf("unknown provider %q: must be %s or %s", o.provider, providerLocal, providerKratos)
	}
}

// identityProvider returns the provider selected by --provider.
func (o *options) identityProvider() (signup.IdentityProvider, error) {
	if o.provider == providerKratos {
		return kratos.NewProvider(o.kratosURL, nil, o.logger)
	}
	return authsdk.NewProvider(authsdk.NewSDKClient(o.idpURL)), nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
