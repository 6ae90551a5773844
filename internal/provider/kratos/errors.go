package kratos

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	kratosclient "github.com/ory/kratos-client-go"

	"github.com/aussiebroadwan/signup/pkg/signup"
)

// Kratos UI message ids, see https://www.ory.sh/docs/kratos/concepts/ui-messages
var messageCodes = map[int64]string{
	4000001: signup.CodeInvalidParameter, // generic validation
	4000002: signup.CodeInvalidParameter, // required property missing
	4000004: signup.CodeInvalidParameter, // format mismatch
	4000005: signup.CodeInvalidPassword,  // password policy
	4000007: signup.CodeDuplicateAccount,
	4000027: signup.CodeDuplicateAccount,
	4000028: signup.CodeDuplicateAccount,
	4000031: signup.CodeInvalidPassword, // too similar to identifier
	4000032: signup.CodeInvalidPassword, // too short
	4000033: signup.CodeInvalidPassword, // too long
	4000034: signup.CodeInvalidPassword, // found in data breaches
	4070001: signup.CodeCodeMismatch,
	4070005: signup.CodeCodeExpired,
	4070006: signup.CodeCodeMismatch,
}

type uiText struct {
	ID   int64  `json:"id"`
	Text string `json:"text"`
	Type string `json:"type"`
}

// errorBody covers the two shapes Kratos answers failures with: a flow whose
// UI carries the messages, or a generic error object.
type errorBody struct {
	UI *struct {
		Messages []uiText `json:"messages"`
		Nodes    []struct {
			Messages []uiText `json:"messages"`
		} `json:"nodes"`
	} `json:"ui"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Reason  string `json:"reason"`
	} `json:"error"`
}

// toIdPError translates a failed Kratos call into an *signup.IdPError.
func (p *Provider) toIdPError(err error, httpResp *http.Response, operation string) error {
	status := 0
	if httpResp != nil {
		status = httpResp.StatusCode
	}

	p.logger.Warn("kratos call failed",
		slog.String("operation", operation),
		slog.Int("http_status", status),
		slog.Any("error", err),
	)

	var apiErr *kratosclient.GenericOpenAPIError
	if errors.As(err, &apiErr) {
		if mapped := parseErrorBody(apiErr.Body(), err); mapped != nil {
			return mapped
		}
	}

	if status != 0 {
		return statusError(status, err)
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return signup.NewIdPError(signup.CodeNetwork, "identity provider did not respond in time", err)
	}
	return signup.NewIdPError(signup.CodeNetwork, "identity provider unreachable", err)
}

// parseErrorBody returns nil when body says nothing useful.
func parseErrorBody(body []byte, cause error) error {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return nil
	}

	if eb.UI != nil {
		msgs := eb.UI.Messages
		for _, n := range eb.UI.Nodes {
			msgs = append(msgs, n.Messages...)
		}
		for _, m := range msgs {
			if e := classify(m.ID, m.Text, cause); e != nil {
				return e
			}
		}
	}

	if eb.Error != nil {
		text := eb.Error.Reason
		if text == "" {
			text = eb.Error.Message
		}
		if e := classify(0, text, cause); e != nil {
			return e
		}
		if eb.Error.Code != 0 {
			e := statusError(eb.Error.Code, cause)
			if text != "" {
				e.Reason = text
			}
			return e
		}
	}
	return nil
}

// uiError returns the first error message of a flow that Kratos answered
// with 200, or nil.
func uiError(messages []kratosclient.UiText) error {
	for _, m := range messages {
		if !isErrorID(m.GetId()) {
			continue
		}
		if e := classify(m.GetId(), m.GetText(), nil); e != nil {
			return e
		}
		return signup.NewIdPError(signup.CodeUnknown, m.GetText(), nil)
	}
	return nil
}

// Kratos numbers error messages 4xxxxxx.
func isErrorID(id int64) bool {
	return id >= 4000000 && id < 5000000
}

func classify(id int64, text string, cause error) *signup.IdPError {
	if code, ok := messageCodes[id]; ok {
		return signup.NewIdPError(code, text, cause)
	}

	lower := strings.ToLower(text)
	switch {
	case containsAny(lower, "already exists", "already registered", "duplicate"):
		return signup.NewIdPError(signup.CodeDuplicateAccount, text, cause)
	case containsAny(lower, "password"):
		return signup.NewIdPError(signup.CodeInvalidPassword, text, cause)
	case containsAny(lower, "code is invalid", "already been used"):
		return signup.NewIdPError(signup.CodeCodeMismatch, text, cause)
	case containsAny(lower, "expired"):
		return signup.NewIdPError(signup.CodeCodeExpired, text, cause)
	case containsAny(lower, "is not valid", "missing properties", "does not match pattern"):
		return signup.NewIdPError(signup.CodeInvalidParameter, text, cause)
	}
	return nil
}

func statusError(status int, cause error) *signup.IdPError {
	var code, reason string
	switch {
	case status == http.StatusBadRequest, status == http.StatusUnprocessableEntity:
		code, reason = signup.CodeInvalidParameter, "invalid request data"
	case status == http.StatusNotFound:
		code, reason = signup.CodeNotFound, "flow not found"
	case status == http.StatusConflict:
		code, reason = signup.CodeDuplicateAccount, "account already exists"
	case status == http.StatusGone:
		code, reason = signup.CodeCodeExpired, "flow has expired"
	case status == http.StatusTooManyRequests:
		code, reason = signup.CodeThrottled, "too many requests"
	case status >= http.StatusInternalServerError:
		code, reason = signup.CodeNetwork, "identity provider unavailable"
	default:
		code, reason = signup.CodeUnknown, http.StatusText(status)
	}
	return signup.NewIdPError(code, reason, cause)
}

func containsAny(text string, subs ...string) bool {
	for _, s := range subs {
		if strings.Contains(text, s) {
			return true
		}
	}
	return false
}
