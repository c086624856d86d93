package music

import "strings"

// DefaultMood is used when no keyword matches.
const DefaultMood = "upbeat"

const defaultGenre = "Pop"

type moodGenre struct {
	mood  string
	genre string
}

type moodKeywords struct {
	mood     string
	keywords []string
}

// 순서 유지 (GET /moods 응답 순서)
var moodGenres = []moodGenre{
	{"happy", "Pop"},
	{"energetic", "Dance"},
	{"calm", "Alternative"},
	{"romantic", "R&B/Soul"},
	{"upbeat", "Pop"},
	{"relaxing", "Alternative"},
	{"motivational", "Rock"},
	{"sad", "Alternative"},
	{"party", "Dance"},
	{"workout", "Electronic"},
	{"chill", "Indie"},
	{"inspiring", "Classical"},
}

// 동점이면 앞쪽 mood 우선
var moodKeywordTable = []moodKeywords{
	{"happy", []string{"happy", "joy", "fun", "cheerful", "excited", "amazing", "wonderful"}},
	{"energetic", []string{"energy", "dance", "party", "pump", "active", "dynamic", "vibrant"}},
	{"calm", []string{"calm", "peace", "relax", "tranquil", "serene", "quiet", "gentle"}},
	{"romantic", []string{"love", "romantic", "heart", "valentine", "couple", "together"}},
	{"motivational", []string{"motivate", "inspire", "achieve", "success", "goal", "hustle"}},
	{"sad", []string{"sad", "melancholy", "miss", "lonely", "heartbreak", "tears"}},
	{"party", []string{"party", "celebration", "club", "night out", "drinks"}},
	{"workout", []string{"workout", "fitness", "gym", "exercise", "training", "run"}},
	{"chill", []string{"chill", "vibe", "cozy", "lazy", "weekend"}},
	{"upbeat", []string{"upbeat", "positive", "optimistic", "bright", "sunny"}},
}

// Moods returns every known mood in table order.
func Moods() []string {
	out := make([]string, 0, len(moodGenres))
	for _, mg := range moodGenres {
		out = append(out, mg.mood)
	}
	return out
}

// GenreFor - mood에 대응하는 장르, 없으면 Pop
func GenreFor(mood string) string {
	if genre, ok := lookupGenre(mood); ok {
		return genre
	}
	return defaultGenre
}

func lookupGenre(mood string) (string, bool) {
	for _, mg := range moodGenres {
		if mg.mood == mood {
			return mg.genre, true
		}
	}
	return "", false
}

// DetectMood - 키워드 substring 개수로 점수 계산, 최고점 mood 반환
func DetectMood(description, caption string) string {
	text := strings.ToLower(description + " " + caption)

	best, bestScore := DefaultMood, 0
	for _, mk := range moodKeywordTable {
		score := 0
		for _, kw := range mk.keywords {
			if strings.Contains(text, kw) {
				score++
			}
		}
		if score > bestScore {
			best, bestScore = mk.mood, score
		}
	}
	return best
}

// ResolveMood - override가 알려진 mood면 그대로, 아니면 DetectMood
func ResolveMood(override, description, caption string) string {
	if o := strings.ToLower(strings.TrimSpace(override)); o != "" {
		if _, ok := lookupGenre(o); ok {
			return o
		}
	}
	return DetectMood(description, caption)
}
