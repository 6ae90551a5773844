package cli

import (
	"bytes"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	httpapi "github.com/aussiebroadwan/signup/internal/idp/http"
	"github.com/aussiebroadwan/signup/internal/idp/service"
	"github.com/aussiebroadwan/signup/internal/idp/store/drivers/sqlite"
	"github.com/aussiebroadwan/signup/pkg/cryptox"
	"github.com/aussiebroadwan/signup/pkg/jwtx"
	"github.com/aussiebroadwan/signup/pkg/slogx"
)

const (
	testSecret = "0123456789abcdef0123456789abcdef"
	testCode   = "123456"
)

// newIdP starts an identity provider whose codes are always testCode.
func newIdP(t *testing.T, requireApproval bool) string {
	t.Helper()

	st, err := sqlite.NewStore(filepath.Join(t.TempDir(), "idp.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	keys, err := jwtx.NewHS256([]byte(testSecret), "signup-idp")
	require.NoError(t, err)

	router := httpapi.NewRouter(keys, "test", st, slogx.Discard())
	router.SignUpService = &service.SignUpService{
		Store:           st,
		Hasher:          cryptox.NewHasher("test-pepper"),
		Sender:          service.NewMemoryCodeSender(),
		RequireApproval: requireApproval,
		Generate:        func() (string, error) { return testCode, nil },
	}
	router.AccountService = &service.AccountService{Store: st}
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv.URL
}

// run executes the CLI with stdin and returns stdout and stderr.
func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	root := NewRootCmd(BuildInfo{Version: "v1.2.3", Commit: "abc1234", Built: "2026-01-01T00:00:00Z"})
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--no-color"}, args...))

	err := root.Execute()
	return out.String(), errOut.String(), err
}

func TestRegister(t *testing.T) {
	url := newIdP(t, false)

	out, errOut, err := run(t, "Secret123\n000000\n"+testCode+"\n",
		"register", "--idp-url", url, "--identifier", "a@example.com")
	require.NoError(t, err)

	require.Contains(t, out, "Password: ")
	require.Contains(t, out, "Verification code sent to a***@example.com (email)")
	require.Contains(t, errOut, "[ERROR]")
	require.Contains(t, out, "[OK] Account confirmed")
	require.Contains(t, out, "You can now sign in as a@example.com.")
}

func TestRegisterResend(t *testing.T) {
	url := newIdP(t, false)

	// The resend cooldown has not passed, so the resend is throttled and the
	// prompt comes back.
	out, errOut, err := run(t, "resend\n"+testCode+"\n",
		"register", "--idp-url", url, "--identifier", "a@example.com", "--password", "Secret123")
	require.NoError(t, err)
	require.Contains(t, errOut, "[ERROR]")
	require.Contains(t, out, "[OK] Account confirmed")
}

func TestRegisterDuplicate(t *testing.T) {
	url := newIdP(t, false)

	_, _, err := run(t, "", "register", "--idp-url", url, "--identifier", "a@example.com", "--password", "Secret123")
	require.Error(t, err, "input closes before a code is entered")

	_, _, err = run(t, "", "register", "--idp-url", url, "--identifier", "a@example.com", "--password", "Secret123")
	require.Error(t, err)
	require.Contains(t, err.Error(), "sign-up failed: duplicate account")
}

func TestRegisterInputClosed(t *testing.T) {
	url := newIdP(t, false)

	_, _, err := run(t, "", "register", "--idp-url", url, "--identifier", "a@example.com", "--password", "Secret123")
	require.EqualError(t, err, "input closed")
}

func TestRegisterUnreachable(t *testing.T) {
	_, _, err := run(t, "", "register", "--idp-url", "http://127.0.0.1:1",
		"--identifier", "a@example.com", "--password", "Secret123")
	require.Error(t, err)
	require.Contains(t, err.Error(), "sign-up failed")
}

func TestRegisterAwaitingApprovalThenApprove(t *testing.T) {
	url := newIdP(t, true)

	_, errOut, err := run(t, testCode+"\n",
		"register", "--idp-url", url, "--identifier", "a@example.com", "--password", "Secret123")
	require.NoError(t, err)
	require.Contains(t, errOut, "waiting for an operator")

	token, _, err := run(t, "", "admin", "token", "--secret", testSecret)
	require.NoError(t, err)
	token = strings.TrimSpace(token)

	out, _, err := run(t, "", "admin", "get", "a@example.com", "--idp-url", url, "--token", token)
	require.NoError(t, err)
	require.Contains(t, out, `"status": "awaiting_approval"`)

	out, _, err = run(t, "", "admin", "approve", "a@example.com", "--idp-url", url, "--token", token)
	require.NoError(t, err)
	require.Contains(t, out, `"status": "confirmed"`)

	out, _, err = run(t, "", "admin", "delete", "a@example.com", "--idp-url", url, "--token", token)
	require.NoError(t, err)
	require.Contains(t, out, "[OK] Deleted a@example.com")
}

func TestAdminRequiresToken(t *testing.T) {
	t.Setenv("SIGNUP_ADMIN_TOKEN", "")

	_, _, err := run(t, "", "admin", "get", "a@example.com")
	require.ErrorContains(t, err, "admin token is required")
}

func TestAdminTokenRejectsShortSecret(t *testing.T) {
	_, _, err := run(t, "", "admin", "token", "--secret", "short")
	require.ErrorIs(t, err, jwtx.ErrWeakSecret)
}

func TestUnknownProvider(t *testing.T) {
	_, _, err := run(t, "", "--provider", "cognito", "version")
	require.ErrorContains(t, err, `unknown provider "cognito"`)
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "", "version", "--short")
	require.NoError(t, err)
	require.Equal(t, "v1.2.3\n", out)

	out, _, err = run(t, "", "version")
	require.NoError(t, err)
	require.Contains(t, out, "commit:     abc1234")

	out, _, err = run(t, "", "version", "--json")
	require.NoError(t, err)
	require.Contains(t, out, `"version": "v1.2.3"`)
}
