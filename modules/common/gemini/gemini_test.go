package gemini

import (
	"errors"
	"fmt"
	"testing"

	"google.golang.org/genai"
)

func TestIsRateLimitError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"status code in text", errors.New("Error 429, Message: Resource has been exhausted"), true},
		{"quota wording", errors.New("you exceeded your current quota"), true},
		{"rate limit wording", errors.New("Rate Limit reached"), true},
		{"grpc status", errors.New("RESOURCE_EXHAUSTED"), true},
		{"api error value", fmt.Errorf("wrapped: %w", genai.APIError{Code: 429}), true},
		{"other api error", genai.APIError{Code: 400, Message: "bad image"}, false},
		{"network", errors.New("dial tcp: connection refused"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRateLimitError(tt.err); got != tt.want {
				t.Fatalf("IsRateLimitError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestReason(t *testing.T) {
	if got := Reason(nil); got != "" {
		t.Errorf("Reason(nil) = %q", got)
	}
	if got := Reason(errors.New("429 too many")); got != "rate_limited" {
		t.Errorf("Reason(429) = %q", got)
	}
	if got := Reason(fmt.Errorf("call: %w", ErrEmptyResponse)); got != "empty_response" {
		t.Errorf("Reason(empty) = %q", got)
	}
	if got := Reason(errors.New("boom")); got != "api_error" {
		t.Errorf("Reason(boom) = %q", got)
	}
}

func TestCollectText(t *testing.T) {
	result := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: nil},
			{Content: &genai.Content{Parts: []*genai.Part{
				{Text: "thinking...", Thought: true},
				{Text: "CAPTION: hi "},
				{InlineData: &genai.Blob{Data: []byte{1}, MIMEType: "image/png"}},
				{Text: "HASHTAGS: #a"},
			}}},
			{Content: &genai.Content{Parts: []*genai.Part{{Text: "second candidate"}}}},
		},
	}

	if got := collectText(result); got != "CAPTION: hi HASHTAGS: #a" {
		t.Fatalf("collectText() = %q", got)
	}
	if got := collectText(nil); got != "" {
		t.Fatalf("collectText(nil) = %q", got)
	}
}
