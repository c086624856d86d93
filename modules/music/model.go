package music

// Suggestion - 추천 곡 (카탈로그 결과 또는 fallback)
type Suggestion struct {
	Title       string `json:"title"`
	Artist      string `json:"artist"`
	Album       string `json:"album,omitempty"`
	Mood        string `json:"mood"`
	Genre       string `json:"genre,omitempty"`
	PreviewURL  string `json:"previewUrl,omitempty"`
	Artwork     string `json:"artwork,omitempty"`
	ReleaseDate string `json:"releaseDate,omitempty"`
	TrackTime   int    `json:"trackTime,omitempty"` // seconds
	ITunesURL   string `json:"iTunesUrl,omitempty"`
}

// SuggestRequest - POST /suggest-music 요청
type SuggestRequest struct {
	Description string      `json:"description"`
	Caption     string      `json:"caption,omitempty"`
	Mood        string      `json:"mood,omitempty"`
	Limit       interface{} `json:"limit,omitempty"`
}

// SuggestResponse - POST /suggest-music 응답
type SuggestResponse struct {
	Success      bool         `json:"success"`
	DetectedMood string       `json:"detectedMood"`
	Genre        string       `json:"genre"`
	Suggestions  []Suggestion `json:"suggestions"`
	Count        int          `json:"count"`
	Source       string       `json:"source,omitempty"` // "itunes" 또는 "fallback"
}

// MoodsResponse - GET /moods
type MoodsResponse struct {
	Success bool     `json:"success"`
	Moods   []string `json:"moods"`
}
