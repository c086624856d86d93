package imagevariant

// ProcessRequest - POST /process-images 요청
type ProcessRequest struct {
	Images   []string `json:"images"`
	Platform string   `json:"platform,omitempty"`
	Filters  []string `json:"filters,omitempty"` // nil이면 기본 필터, 빈 배열이면 필터 없음
	Enhance  *bool    `json:"enhance,omitempty"`
	CropMode string   `json:"cropMode,omitempty"`
	Format   string   `json:"format,omitempty"` // "jpeg" (기본) 또는 "webp"
	Upload   bool     `json:"upload,omitempty"`
}

// Size - width/height 쌍
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Variant - 원본 이미지 하나의 처리 결과 하나
type Variant struct {
	Variant string `json:"variant"`
	Name    string `json:"name"`
	URL     string `json:"url"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
}

// ProcessedImage groups the variants of one source image.
type ProcessedImage struct {
	ID           int       `json:"id"`
	Platform     string    `json:"platform"`
	Dimensions   Size      `json:"dimensions"`
	Variants     []Variant `json:"variants"`
	VariantCount int       `json:"variantCount"`
}

// ProcessResponse - POST /process-images 응답
type ProcessResponse struct {
	Success         bool             `json:"success"`
	Platform        string           `json:"platform"`
	TargetSize      Size             `json:"targetSize"`
	ProcessedImages []ProcessedImage `json:"processedImages"`
	Count           int              `json:"count"`
}

// PlatformsResponse - GET /platforms
type PlatformsResponse struct {
	Success   bool       `json:"success"`
	Platforms []Platform `json:"platforms"`
}

// FiltersResponse - GET /filters
type FiltersResponse struct {
	Success bool     `json:"success"`
	Filters []Filter `json:"filters"`
}

// StreamEvent - websocket 진행 이벤트
type StreamEvent struct {
	Type  string          `json:"type"` // "image", "complete", "error"
	Image *ProcessedImage `json:"image,omitempty"`
	Count *int            `json:"count,omitempty"`
	Error string          `json:"error,omitempty"`
}
