package music

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// ErrCatalogUnavailable wraps transport and status failures from the catalog.
var ErrCatalogUnavailable = errors.New("music catalog unavailable")

// Catalog searches tracks for a mood.
type Catalog interface {
	Search(ctx context.Context, mood, genre string, limit int) ([]Suggestion, error)
}

// ITunesClient - iTunes Search API 클라이언트
type ITunesClient struct {
	httpClient *http.Client
	baseURL    string
	country    string
}

var _ Catalog = (*ITunesClient)(nil)

// NewITunesClient builds a client with a fixed request timeout.
func NewITunesClient(baseURL, country string, timeout time.Duration) *ITunesClient {
	return &ITunesClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		country:    country,
	}
}

type itunesResponse struct {
	ResultCount int           `json:"resultCount"`
	Results     []itunesTrack `json:"results"`
}

type itunesTrack struct {
	TrackName         string `json:"trackName"`
	ArtistName        string `json:"artistName"`
	CollectionName    string `json:"collectionName"`
	PrimaryGenreName  string `json:"primaryGenreName"`
	PreviewURL        string `json:"previewUrl"`
	ArtworkURL100     string `json:"artworkUrl100"`
	ReleaseDate       string `json:"releaseDate"`
	TrackTimeMillis   int64  `json:"trackTimeMillis"`
	TrackViewURL      string `json:"trackViewUrl"`
	TrackExplicitness string `json:"trackExplicitness"`
}

// Search - "{mood} music {genre}" 검색, explicit 제외 후 limit개 반환
func (c *ITunesClient) Search(ctx context.Context, mood, genre string, limit int) ([]Suggestion, error) {
	searchURL, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("itunes: invalid base url: %w", err)
	}

	query := searchURL.Query()
	query.Set("term", fmt.Sprintf("%s music %s", mood, genre))
	query.Set("media", "music")
	query.Set("entity", "song")
	query.Set("limit", strconv.Itoa(limit*2)) // explicit 필터링 여유분
	query.Set("explicit", "No")
	query.Set("country", c.country)
	searchURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("itunes: failed to create request: %w", err)
	}

	log.Debug().Str("url", searchURL.String()).Msg("🎵 [Music] Searching iTunes")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrCatalogUnavailable, resp.StatusCode)
	}

	var body itunesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("itunes: failed to decode response: %w", err)
	}

	suggestions := make([]Suggestion, 0, limit)
	for _, track := range body.Results {
		if track.TrackExplicitness == "explicit" {
			continue
		}
		suggestions = append(suggestions, mapTrack(track, mood, genre))
		if len(suggestions) >= limit {
			break
		}
	}
	return suggestions, nil
}

func mapTrack(track itunesTrack, mood, genre string) Suggestion {
	s := Suggestion{
		Title:      orDefault(track.TrackName, "Unknown"),
		Artist:     orDefault(track.ArtistName, "Unknown"),
		Album:      orDefault(track.CollectionName, "Unknown"),
		Mood:       mood,
		Genre:      orDefault(track.PrimaryGenreName, genre),
		PreviewURL: track.PreviewURL,
		Artwork:    strings.ReplaceAll(track.ArtworkURL100, "100x100", "300x300"),
		TrackTime:  int(track.TrackTimeMillis / 1000),
		ITunesURL:  track.TrackViewURL,
	}
	if track.ReleaseDate != "" {
		s.ReleaseDate, _, _ = strings.Cut(track.ReleaseDate, "T")
	}
	return s
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
