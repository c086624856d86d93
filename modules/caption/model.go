package caption

// Generator variants
const (
	VariantOneShot  = "oneshot"
	VariantPipeline = "pipeline"
)

// Hashtag caps per variant
const (
	OneShotHashtagCap  = 8
	PipelineHashtagCap = 15
)

// Caption strategies chosen by the pipeline variant
const (
	StrategyQuestion = "question"
	StrategyStory    = "story"
	StrategyHook     = "hook"
	StrategyMinimal  = "minimal"
)

// Analysis - 이미지 분석 결과 (subject, mood)
type Analysis struct {
	Subject string `json:"subject"`
	Mood    string `json:"mood"`
}

// Result - caption 생성 결과
type Result struct {
	Caption  string
	Hashtags []string
	Strategy string
	Variant  string
	Fallback bool
	Reason   string // fallback 사유 (rate_limited, api_error, ...)
}

// OptimizeResponse - POST /api/instagram/optimize 응답
type OptimizeResponse struct {
	Success  bool     `json:"success"`
	Caption  string   `json:"caption"`
	Hashtags []string `json:"hashtags"`
	Strategy string   `json:"strategy,omitempty"`
	Variant  string   `json:"variant,omitempty"`
	Fallback bool     `json:"fallback,omitempty"`
	Reason   string   `json:"reason,omitempty"`
}
