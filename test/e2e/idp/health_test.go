package idp_test

import (
	"testing"

	"github.com/aussiebroadwan/signup/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

// TestLivezEndpoint verifies the liveness check endpoint.
func TestLivezEndpoint(t *testing.T) {
	baseURL, _ := setupIdPContainer(t, relaxedLimits)

	client := authsdk.NewSDKClient(baseURL)

	health, err := client.GetLiveness(t.Context())
	require.NoError(t, err)
	require.Equal(t, "ok", health.Status)
	require.NotEmpty(t, health.Version)
}

// TestReadyzEndpoint verifies readiness reports the database check.
func TestReadyzEndpoint(t *testing.T) {
	baseURL, _ := setupIdPContainer(t, relaxedLimits)

	client := authsdk.NewSDKClient(baseURL)

	health, err := client.GetReadiness(t.Context())
	require.NoError(t, err)
	require.Equal(t, "ok", health.Status)
	require.NotNil(t, health.Checks)
	require.Equal(t, "ok", health.Checks.Database)
	require.True(t, health.Ready())
}
