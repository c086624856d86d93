package music

type fallbackTrack struct {
	title  string
	artist string
}

var fallbackTracks = map[string][]fallbackTrack{
	"happy": {
		{"Happy", "Pharrell Williams"},
		{"Good Vibes", "Feel Good Playlist"},
		{"Sunshine Day", "Summer Mix"},
	},
	"energetic": {
		{"Can't Stop", "Energy Mix"},
		{"Pumped Up", "Workout Beats"},
		{"High Energy", "Dance Mix"},
	},
	"calm": {
		{"Peaceful Mind", "Relaxation"},
		{"Serenity", "Calm Sounds"},
		{"Tranquil Moments", "Peaceful Mix"},
	},
}

var genericFallback = []fallbackTrack{
	{"Feel Good Music", "Playlist"},
	{"Mood Vibes", "Music Mix"},
	{"Perfect Sound", "Tracks"},
}

// FallbackSuggestions - 카탈로그 실패 시 고정 목록 (limit만큼)
func FallbackSuggestions(mood string, limit int) []Suggestion {
	tracks, ok := fallbackTracks[mood]
	if !ok {
		tracks = genericFallback
	}
	if limit < 0 {
		limit = 0
	}
	if limit < len(tracks) {
		tracks = tracks[:limit]
	}

	out := make([]Suggestion, 0, len(tracks))
	for _, t := range tracks {
		out = append(out, Suggestion{Title: t.title, Artist: t.artist, Mood: mood})
	}
	return out
}
