package imagevariant

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultPlatform is used when a request names no platform or an unknown one.
const DefaultPlatform = "instagram_post"

// EnhancedVariant is the auto-enhanced original.
const EnhancedVariant = "enhanced"

// Platform - 플랫폼별 출력 크기
type Platform struct {
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// FilterConfig - 필터 preset (PIL enhancer 계수)
type FilterConfig struct {
	Color      float64 `json:"color"`
	Contrast   float64 `json:"contrast"`
	Brightness float64 `json:"brightness"`
	Sharpness  float64 `json:"sharpness"`
}

// Filter is a named preset.
type Filter struct {
	Name   string       `json:"name"`
	Config FilterConfig `json:"config"`
}

var platforms = []Platform{
	{Name: "instagram_post", Width: 1080, Height: 1080},
	{Name: "instagram_story", Width: 1080, Height: 1920},
	{Name: "instagram_reel", Width: 1080, Height: 1920},
	{Name: "linkedin", Width: 1200, Height: 627},
	{Name: "facebook", Width: 1200, Height: 630},
	{Name: "twitter", Width: 1200, Height: 675},
	{Name: "pinterest", Width: 1000, Height: 1500},
	{Name: "youtube_thumbnail", Width: 1280, Height: 720},
}

var filters = []Filter{
	{Name: "vibrant", Config: FilterConfig{Color: 1.5, Contrast: 1.2, Brightness: 1.05, Sharpness: 1.2}},
	{Name: "professional", Config: FilterConfig{Color: 0.9, Contrast: 1.3, Brightness: 1.0, Sharpness: 1.3}},
	{Name: "vintage", Config: FilterConfig{Color: 0.8, Contrast: 0.95, Brightness: 1.05, Sharpness: 0.9}},
	{Name: "bold", Config: FilterConfig{Color: 1.3, Contrast: 1.8, Brightness: 1.0, Sharpness: 1.4}},
	{Name: "soft", Config: FilterConfig{Color: 1.1, Contrast: 0.9, Brightness: 1.1, Sharpness: 0.8}},
	{Name: "dramatic", Config: FilterConfig{Color: 1.2, Contrast: 2.0, Brightness: 0.95, Sharpness: 1.5}},
	{Name: "natural", Config: FilterConfig{Color: 1.0, Contrast: 1.1, Brightness: 1.05, Sharpness: 1.1}},
	{Name: "bw_classic", Config: FilterConfig{Color: 0.0, Contrast: 1.4, Brightness: 1.0, Sharpness: 1.2}},
}

var defaultFilters = []string{EnhancedVariant, "vibrant", "professional"}

// Platforms returns the presets in display order.
func Platforms() []Platform {
	out := make([]Platform, len(platforms))
	copy(out, platforms)
	return out
}

// Filters returns the filter presets in display order.
func Filters() []Filter {
	out := make([]Filter, len(filters))
	copy(out, filters)
	return out
}

// LookupPlatform - 알 수 없는 이름은 instagram_post로 대체
func LookupPlatform(name string) Platform {
	for _, p := range platforms {
		if p.Name == name {
			return p
		}
	}
	return platforms[0]
}

// LookupFilter reports the preset for name.
func LookupFilter(name string) (FilterConfig, bool) {
	for _, f := range filters {
		if f.Name == name {
			return f.Config, true
		}
	}
	return FilterConfig{}, false
}

// DisplayName - "bw_classic" -> "Bw Classic"
func DisplayName(variant string) string {
	if variant == EnhancedVariant {
		return "Enhanced Original"
	}
	// Caser는 상태를 가지므로 호출마다 생성
	return cases.Title(language.English).String(strings.ReplaceAll(variant, "_", " "))
}
