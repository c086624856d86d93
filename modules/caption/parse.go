package caption

import (
	"regexp"
	"strings"
)

var (
	labeledPattern = regexp.MustCompile(`(?is)CAPTION:\s*(.*?)\s*HASHTAGS:\s*(.*)`)
	hashtagPattern = regexp.MustCompile(`#[\p{L}\p{N}_]+`)
	codeFence      = regexp.MustCompile("(?s)^```[a-zA-Z]*\\s*(.*?)\\s*```$")
)

// ParseLabeled - "CAPTION: ... HASHTAGS: ..." 형식 파싱
// 실패 시 전체 텍스트를 caption으로, #token을 hashtag로 사용 (ok=false)
func ParseLabeled(text string) (caption string, hashtags []string, ok bool) {
	trimmed := strings.TrimSpace(text)
	m := labeledPattern.FindStringSubmatch(trimmed)
	if m == nil {
		return trimmed, ExtractHashtags(trimmed), false
	}
	return strings.TrimSpace(m[1]), ExtractHashtags(m[2]), true
}

// ExtractHashtags returns every #token substring in order of appearance.
func ExtractHashtags(text string) []string {
	return hashtagPattern.FindAllString(text, -1)
}

// hashtagTokens - 공백으로 나눈 토큰 중 '#'로 시작하는 것만
func hashtagTokens(text string) []string {
	var tags []string
	for _, tok := range strings.Fields(text) {
		if strings.HasPrefix(tok, "#") && len(tok) > 1 {
			tags = append(tags, tok)
		}
	}
	return tags
}

// CapHashtags drops anything not starting with '#' and truncates to max.
func CapHashtags(tags []string, max int) []string {
	out := make([]string, 0, max)
	for _, tag := range tags {
		if len(out) == max {
			break
		}
		if strings.HasPrefix(tag, "#") && len(tag) > 1 {
			out = append(out, tag)
		}
	}
	return out
}

// stripCodeFence - ```json ... ``` 블록 제거
func stripCodeFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if m := codeFence.FindStringSubmatch(trimmed); m != nil {
		return m[1]
	}
	return trimmed
}
