package caption

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

var fallbackHashtags = []string{"#instagood", "#photooftheday", "#instadaily", "#explore", "#love"}

// LocalFallback - 모델 호출 실패 시 intent로 caption 생성 (네트워크 없음)
func LocalFallback(intent string, hashtagCap int) *Result {
	return &Result{
		Caption:  fallbackCaption(intent),
		Hashtags: CapHashtags(fallbackHashtags, hashtagCap),
		Fallback: true,
	}
}

func fallbackCaption(intent string) string {
	text := strings.Join(strings.Fields(intent), " ")
	if text == "" {
		return "Sharing a moment ✨"
	}

	first, size := utf8.DecodeRuneInString(text)
	text = string(unicode.ToUpper(first)) + text[size:]

	if last, _ := utf8.DecodeLastRuneInString(text); !strings.ContainsRune(".!?", last) {
		text += "."
	}
	return text + " ✨"
}
