package caption

import (
	"encoding/json"
	"strings"

	"github.com/jonreiter/govader"
)

var analyzer = govader.NewSentimentIntensityAnalyzer()

var (
	questionMarkers = []string{"?", "how", "what", "why", "who"}
	hookMoods       = []string{"happy", "excited", "fun"}
)

// DecideStrategy - question > story > hook > minimal 순서로 결정
func DecideStrategy(intent string, analysis Analysis) string {
	lower := strings.ToLower(intent)
	for _, marker := range questionMarkers {
		if strings.Contains(lower, marker) {
			return StrategyQuestion
		}
	}
	if strings.Contains(lower, "story") {
		return StrategyStory
	}
	mood := strings.ToLower(strings.TrimSpace(analysis.Mood))
	for _, m := range hookMoods {
		if mood == m {
			return StrategyHook
		}
	}
	return StrategyMinimal
}

// ParseAnalysis - 모델 응답에서 {subject, mood} JSON 추출
// 파싱 실패 시 subject "photo" + intent 감정 기반 mood
func ParseAnalysis(text, intent string) (Analysis, bool) {
	var analysis Analysis
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &analysis); err != nil {
		return Analysis{Subject: "photo", Mood: MoodFromSentiment(intent)}, false
	}
	if strings.TrimSpace(analysis.Subject) == "" {
		analysis.Subject = "photo"
	}
	if strings.TrimSpace(analysis.Mood) == "" {
		analysis.Mood = MoodFromSentiment(intent)
	}
	return analysis, true
}

// MoodFromSentiment maps the VADER compound score of text to happy/sad/neutral.
func MoodFromSentiment(text string) string {
	score := analyzer.PolarityScores(text).Compound
	switch {
	case score >= 0.20:
		return "happy"
	case score <= -0.20:
		return "sad"
	default:
		return "neutral"
	}
}
