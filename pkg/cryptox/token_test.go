package cryptox_test

import (
	"testing"

	"github.com/aussiebroadwan/signup/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	tok, err := cryptox.GenerateToken(cryptox.TokenSize256)
	require.NoError(t, err)
	require.Len(t, tok, 43)

	other, err := cryptox.GenerateToken(cryptox.TokenSize256)
	require.NoError(t, err)
	require.NotEqual(t, tok, other)

	_, err = cryptox.GenerateToken(0)
	require.Error(t, err)
}

func TestGenerateSecret(t *testing.T) {
	s, err := cryptox.GenerateSecret(20)
	require.NoError(t, err)
	require.Len(t, s, 20)
}

func TestFingerprintToken(t *testing.T) {
	a := cryptox.FingerprintToken("123456")
	require.Len(t, a, 43)
	require.Equal(t, a, cryptox.FingerprintToken("123456"))
	require.NotEqual(t, a, cryptox.FingerprintToken("654321"))
}
