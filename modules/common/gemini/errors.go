package gemini

import (
	"errors"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

// ErrEmptyResponse is returned when the model answers without any text part.
var ErrEmptyResponse = errors.New("gemini: empty response")

// IsRateLimitError - 429 Rate Limit 에러인지 확인
// Only classifies; callers degrade to their fallback instead of retrying.
func IsRateLimitError(err error) bool {
	if err == nil {
		return false
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusTooManyRequests {
		return true
	}

	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "429") ||
		strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "quota") ||
		strings.Contains(errStr, "resource_exhausted")
}

// Reason returns a short label for logs and fallback metadata.
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case IsRateLimitError(err):
		return "rate_limited"
	case errors.Is(err, ErrEmptyResponse):
		return "empty_response"
	default:
		return "api_error"
	}
}
