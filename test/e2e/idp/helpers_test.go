package idp_test

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/aussiebroadwan/signup/pkg/authsdk"
	"github.com/aussiebroadwan/signup/pkg/jwtx"
)

/*
 * Common constants and helper functions for identity provider end-to-end
 * tests: container setup, reading delivered codes and admin tokens.
 */

const (
	testImageName = "signup-idp-test:latest"

	adminSecret = "e2e-admin-secret-0123456789abcdef"
	issuer      = "signup-idp"
	password    = "Secret123"
)

// TestMain builds the Docker image once before all tests and removes it after.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building identity provider Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up identity provider Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	cmd := exec.CommandContext(context.Background(), "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/idp/Dockerfile",
		"../../../")
	cmd.Stdout = os.Stdout
	cmd.Stderr = nil

	return cmd.Run()
}

func cleanupDockerImage() {
	cmd := exec.CommandContext(context.Background(), "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // Ignore errors - image might not exist
}

// relaxedLimits lifts the strict and moderate limits; most tests make many
// rapid requests from one address.
var relaxedLimits = map[string]string{
	"RATELIMIT_STRICT_REQUESTS":   "1000",
	"RATELIMIT_STRICT_WINDOW_SEC": "60",
	"RATELIMIT_STRICT_BURST":      "1000",
	"RATELIMIT_MODERATE_REQUESTS": "1000",
	"RATELIMIT_MODERATE_BURST":    "1000",
}

// setupIdPContainer starts the identity provider and returns its base URL.
// extra overrides or adds environment variables.
func setupIdPContainer(t *testing.T, extra map[string]string) (string, testcontainers.Container) {
	t.Helper()
	ctx := context.Background()

	env := map[string]string{
		"IDP_ADMIN_SECRET":    adminSecret,
		"IDP_ISSUER":          issuer,
		"IDP_RESEND_COOLDOWN": "1s",
		"ENV":                 "test",
		"LOG_LEVEL":           "info",
		"LOG_FORMAT":          "json",
	}
	for k, v := range extra {
		env[k] = v
	}

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Env:          env,
		WaitingFor: wait.ForHTTP("/livez").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	return fmt.Sprintf("http://%s:%s", host, mappedPort.Port()), container
}

// lastCode returns the newest code the container logged for destination.
func lastCode(t *testing.T, container testcontainers.Container, destination string) string {
	t.Helper()

	var code string
	require.Eventually(t, func() bool {
		c, err := scanCodes(container, destination)
		if err != nil || c == "" {
			return false
		}
		code = c
		return true
	}, 10*time.Second, 100*time.Millisecond, "no code logged for %s", destination)

	return code
}

func scanCodes(container testcontainers.Container, destination string) (string, error) {
	logs, err := container.Logs(context.Background())
	if err != nil {
		return "", err
	}
	defer logs.Close()

	return findCode(logs, destination)
}

func findCode(r io.Reader, destination string) (string, error) {
	var code string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Bytes()
		// Docker multiplexed log frames carry an 8 byte header.
		if i := bytes.Index(line, []byte(`{"`)); i > 0 {
			line = line[i:]
		}

		var entry struct {
			Msg         string `json:"msg"`
			Destination string `json:"destination"`
			Code        string `json:"code"`
		}
		if json.Unmarshal(line, &entry) != nil {
			continue
		}
		if entry.Msg == "verification code issued" && entry.Destination == destination {
			code = entry.Code
		}
	}
	return code, sc.Err()
}

// adminSession returns a session carrying a token minted with adminSecret.
func adminSession(t *testing.T, client *authsdk.SDKClient, scopes ...string) *authsdk.AdminSession {
	t.Helper()

	signer, err := jwtx.NewHS256([]byte(adminSecret), issuer)
	require.NoError(t, err)

	token, err := signer.Sign(jwtx.NewAdminClaims("e2e", issuer, scopes, time.Minute, time.Now()))
	require.NoError(t, err)

	return client.NewAdminSession(token)
}
