package kratos

import (
	"errors"
	"net/http"
	"testing"

	kratosclient "github.com/ory/kratos-client-go"
	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/signup/pkg/signup"
)

func TestParseErrorBody(t *testing.T) {
	cause := errors.New("400 Bad Request")

	tests := []struct {
		name string
		body string
		code string
	}{
		{
			name: "duplicate identifier",
			body: `{"ui":{"messages":[{"id":4000007,"text":"An account with the same identifier exists already.","type":"error"}]}}`,
			code: signup.CodeDuplicateAccount,
		},
		{
			name: "password node message",
			body: `{"ui":{"messages":[],"nodes":[{"messages":[{"id":4000034,"text":"The password has been found in data breaches.","type":"error"}]}]}}`,
			code: signup.CodeInvalidPassword,
		},
		{
			name: "email format",
			body: `{"ui":{"nodes":[{"messages":[{"id":4000001,"text":"\"x\" is not valid \"email\"","type":"error"}]}]}}`,
			code: signup.CodeInvalidParameter,
		},
		{
			name: "unknown id classified by text",
			body: `{"ui":{"messages":[{"id":4999999,"text":"the verification code is invalid or has already been used","type":"error"}]}}`,
			code: signup.CodeCodeMismatch,
		},
		{
			name: "generic gone error",
			body: `{"error":{"code":410,"status":"Gone","message":"self-service flow is gone"}}`,
			code: signup.CodeCodeExpired,
		},
		{
			name: "generic rate limit",
			body: `{"error":{"code":429,"message":"slow down"}}`,
			code: signup.CodeThrottled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := parseErrorBody([]byte(tt.body), cause)
			require.True(t, signup.IsIdPCode(err, tt.code), "got %v", err)
			require.ErrorIs(t, err, cause)
		})
	}
}

func TestParseErrorBodyUnhelpful(t *testing.T) {
	require.Nil(t, parseErrorBody([]byte("<html>bad gateway</html>"), nil))
	require.Nil(t, parseErrorBody([]byte(`{"ui":{"messages":[]}}`), nil))
}

func TestStatusError(t *testing.T) {
	require.Equal(t, signup.CodeInvalidParameter, statusError(http.StatusBadRequest, nil).Code)
	require.Equal(t, signup.CodeCodeExpired, statusError(http.StatusGone, nil).Code)
	require.Equal(t, signup.CodeThrottled, statusError(http.StatusTooManyRequests, nil).Code)
	require.Equal(t, signup.CodeNetwork, statusError(http.StatusBadGateway, nil).Code)
	require.Equal(t, signup.CodeUnknown, statusError(http.StatusTeapot, nil).Code)
}

func TestUIError(t *testing.T) {
	info := kratosclient.UiText{Id: 1080001, Text: "An email containing a verification code has been sent.", Type: "info"}
	require.NoError(t, uiError([]kratosclient.UiText{info}))

	mismatch := kratosclient.UiText{Id: 4070006, Text: "The verification code is invalid or has already been used.", Type: "error"}
	err := uiError([]kratosclient.UiText{info, mismatch})
	require.True(t, signup.IsIdPCode(err, signup.CodeCodeMismatch))

	odd := kratosclient.UiText{Id: 4123456, Text: "something else", Type: "error"}
	require.True(t, signup.IsIdPCode(uiError([]kratosclient.UiText{odd}), signup.CodeUnknown))
}
