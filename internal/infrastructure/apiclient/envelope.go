package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/skillswap/skillswap-web/internal/core/domain"
)

// envelope is the wrapper every SkillSwap API response uses.
type envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
}

type envelopeError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// normalize turns a status and body into the call's data or a
// *domain.APIError. A body that is not an envelope is always a failure.
func normalize(status int, body []byte) (json.RawMessage, error) {
	ok := status >= 200 && status < 300

	trimmed := bytes.TrimSpace(body)
	if ok && len(trimmed) == 0 {
		return nil, nil
	}

	var env envelope
	if err := json.Unmarshal(trimmed, &env); err != nil || env.Success == nil {
		if err == nil {
			err = fmt.Errorf("missing success field")
		}
		return nil, &domain.APIError{
			Status:  status,
			Message: domain.FallbackMessage,
			Err:     fmt.Errorf("%w: %w", domain.ErrMalformedEnvelope, err),
		}
	}

	if ok && *env.Success {
		if isNull(env.Data) {
			return nil, nil
		}
		return env.Data, nil
	}

	apiErr := &domain.APIError{Status: status, Message: domain.FallbackMessage}
	var detail envelopeError
	if !isNull(env.Error) && json.Unmarshal(env.Error, &detail) == nil {
		apiErr.Code = detail.Code
		if strings.TrimSpace(detail.Message) != "" {
			apiErr.Message = detail.Message
		}
	}
	return nil, apiErr
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}

// decode unmarshals call data into T. Absent data yields the zero value.
func decode[T any](op string, status int, raw json.RawMessage) (T, error) {
	var out T
	if raw == nil {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, &domain.APIError{
			Status:  status,
			Message: domain.FallbackMessage,
			Err:     fmt.Errorf("%w: decode %s: %w", domain.ErrMalformedEnvelope, op, err),
		}
	}
	return out, nil
}
