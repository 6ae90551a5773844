package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/signup/pkg/authsdk"
	"github.com/aussiebroadwan/signup/pkg/jwtx"
)

func newAdminCmd(opts *options) *cobra.Command {
	var token string

	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Administer accounts on the local identity provider",
	}
	cmd.PersistentFlags().StringVar(&token, "token", envOr("SIGNUP_ADMIN_TOKEN", ""), "admin bearer token")

	session := func() (*authsdk.AdminSession, error) {
		if token == "" {
			return nil, errors.New("an admin token is required (--token or SIGNUP_ADMIN_TOKEN)")
		}
		return authsdk.NewSDKClient(opts.idpURL).NewAdminSession(token), nil
	}

	accountCmd := func(use, short string, call func(*cobra.Command, *authsdk.AdminSession, string) (*authsdk.AccountResponse, error)) *cobra.Command {
		return &cobra.Command{
			Use:   use + " USERNAME",
			Short: short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				s, err := session()
				if err != nil {
					return err
				}
				account, err := call(cmd, s, args[0])
				if err != nil {
					return err
				}
				return writeJSON(cmd, account)
			},
		}
	}

	deleteCmd := &cobra.Command{
		Use:   "delete USERNAME",
		Short: "Delete an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := session()
			if err != nil {
				return err
			}
			if err := s.DeleteAccount(cmd.Context(), args[0]); err != nil {
				return err
			}
			opts.printer.Success("Deleted %s", args[0])
			return nil
		},
	}

	cmd.AddCommand(
		newAdminTokenCmd(opts),
		accountCmd("get", "Show an account", func(cmd *cobra.Command, s *authsdk.AdminSession, username string) (*authsdk.AccountResponse, error) {
			return s.GetAccount(cmd.Context(), username)
		}),
		accountCmd("approve", "Approve an account awaiting approval", func(cmd *cobra.Command, s *authsdk.AdminSession, username string) (*authsdk.AccountResponse, error) {
			return s.ApproveAccount(cmd.Context(), username)
		}),
		accountCmd("disable", "Disable an account", func(cmd *cobra.Command, s *authsdk.AdminSession, username string) (*authsdk.AccountResponse, error) {
			return s.DisableAccount(cmd.Context(), username)
		}),
		deleteCmd,
	)
	return cmd
}

func newAdminTokenCmd(opts *options) *cobra.Command {
	var (
		secret  string
		issuer  string
		subject string
		scopes  []string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an admin bearer token",
		Long: `Mint an HS256 admin token signed with the identity provider's
IDP_ADMIN_SECRET. The token is printed on stdout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			signer, err := jwtx.NewHS256([]byte(secret), issuer)
			if err != nil {
				return fmt.Errorf("admin secret: %w", err)
			}

			token, err := signer.Sign(jwtx.NewAdminClaims(subject, issuer, scopes, ttl, time.Now()))
			if err != nil {
				return err
			}

			opts.logger.Debug("admin token minted", "subject", subject, "scopes", scopes, "ttl", ttl)
			opts.printer.Print("%s", token)
			return nil
		},
	}

	cmd.Flags().StringVar(&secret, "secret", envOr("SIGNUP_ADMIN_SECRET", ""), "shared admin secret, at least 32 bytes")
	cmd.Flags().StringVar(&issuer, "issuer", envOr("SIGNUP_ADMIN_ISSUER", "signup-idp"), "issuer expected by the identity provider")
	cmd.Flags().StringVar(&subject, "subject", "operator", "subject recorded as the acting operator")
	cmd.Flags().StringSliceVar(&scopes, "scopes", []string{jwtx.ScopeAccountsRead, jwtx.ScopeAccountsWrite}, "scopes to grant")
	cmd.Flags().DurationVar(&ttl, "ttl", jwtx.DefaultAdminTokenTTL, "token lifetime")

	return cmd
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
