package caption

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"social-agents-server/modules/common/gemini"
)

// fakeModel answers prompts in order and records them.
type fakeModel struct {
	replies []string
	err     error
	errAt   int // 0이면 항상 err, n이면 n번째 호출에서만
	prompts []string
	images  []*gemini.InlineImage
}

func (f *fakeModel) GenerateText(_ context.Context, prompt string, image *gemini.InlineImage) (string, error) {
	f.prompts = append(f.prompts, prompt)
	f.images = append(f.images, image)
	call := len(f.prompts)
	if f.err != nil && (f.errAt == 0 || f.errAt == call) {
		return "", f.err
	}
	if call > len(f.replies) {
		return "", errors.New("unexpected call")
	}
	return f.replies[call-1], nil
}

func TestParseLabeled(t *testing.T) {
	caption, tags, ok := ParseLabeled("caption: Golden hour hits different\nHashtags: #sunset #goldenhour, #travel")
	if !ok {
		t.Fatal("expected labeled parse")
	}
	if caption != "Golden hour hits different" {
		t.Errorf("caption = %q", caption)
	}
	if !reflect.DeepEqual(tags, []string{"#sunset", "#goldenhour", "#travel"}) {
		t.Errorf("hashtags = %v", tags)
	}
}

func TestParseLabeledFallsBackToWholeText(t *testing.T) {
	caption, tags, ok := ParseLabeled("  Coffee first, questions later #coffee #mondaymood  ")
	if ok {
		t.Fatal("expected unlabeled result")
	}
	if caption != "Coffee first, questions later #coffee #mondaymood" {
		t.Errorf("caption = %q", caption)
	}
	if !reflect.DeepEqual(tags, []string{"#coffee", "#mondaymood"}) {
		t.Errorf("hashtags = %v", tags)
	}
}

func TestCapHashtags(t *testing.T) {
	var tags []string
	for i := 0; i < 20; i++ {
		tags = append(tags, "#tag"+strings.Repeat("x", i))
	}
	tags = append([]string{"nohash", "#"}, tags...)

	for _, max := range []int{OneShotHashtagCap, PipelineHashtagCap} {
		got := CapHashtags(tags, max)
		if len(got) != max {
			t.Fatalf("cap %d: len = %d", max, len(got))
		}
		for _, tag := range got {
			if !strings.HasPrefix(tag, "#") || tag == "#" {
				t.Fatalf("bad tag %q", tag)
			}
		}
	}
}

func TestDecideStrategy(t *testing.T) {
	tests := []struct {
		intent string
		mood   string
		want   string
	}{
		{"Which one would you pick?", "happy", StrategyQuestion},
		{"what a day at the beach", "calm", StrategyQuestion},
		{"the story behind our bakery", "happy", StrategyStory},
		{"weekend at the lake", "Excited", StrategyHook},
		{"new product launch", "fun", StrategyHook},
		{"new product launch", "serene", StrategyMinimal},
	}
	for _, tt := range tests {
		if got := DecideStrategy(tt.intent, Analysis{Mood: tt.mood}); got != tt.want {
			t.Errorf("DecideStrategy(%q, %q) = %s, want %s", tt.intent, tt.mood, got, tt.want)
		}
	}
}

func TestParseAnalysis(t *testing.T) {
	analysis, ok := ParseAnalysis("```json\n{\"subject\": \"latte art\", \"mood\": \"cozy\"}\n```", "")
	if !ok || analysis.Subject != "latte art" || analysis.Mood != "cozy" {
		t.Fatalf("analysis = %+v ok=%v", analysis, ok)
	}

	analysis, ok = ParseAnalysis("A dog on a beach, very cheerful", "I love this amazing happy day")
	if ok || analysis.Subject != "photo" || analysis.Mood != "happy" {
		t.Fatalf("fallback analysis = %+v ok=%v", analysis, ok)
	}

	analysis, _ = ParseAnalysis("nope", "")
	if analysis.Mood != "neutral" {
		t.Fatalf("neutral fallback mood = %q", analysis.Mood)
	}
}

func TestMoodFromSentiment(t *testing.T) {
	if got := MoodFromSentiment("This is terrible, I hate rainy awful days"); got != "sad" {
		t.Errorf("negative text mood = %s", got)
	}
	if got := MoodFromSentiment("Great wonderful love it"); got != "happy" {
		t.Errorf("positive text mood = %s", got)
	}
}

func TestLocalFallback(t *testing.T) {
	result := LocalFallback("  sunday brunch with friends ", OneShotHashtagCap)
	if result.Caption != "Sunday brunch with friends. ✨" {
		t.Errorf("caption = %q", result.Caption)
	}
	want := []string{"#instagood", "#photooftheday", "#instadaily", "#explore", "#love"}
	if !reflect.DeepEqual(result.Hashtags, want) || !result.Fallback {
		t.Errorf("result = %+v", result)
	}

	if got := LocalFallback("Ready?", 3); got.Caption != "Ready? ✨" || len(got.Hashtags) != 3 {
		t.Errorf("result = %+v", got)
	}
}

func TestOneShotGenerate(t *testing.T) {
	model := &fakeModel{replies: []string{
		"CAPTION: Soft light, slow mornings.\nHASHTAGS: #a #b #c #d #e #f #g #h #i #j",
	}}
	image := &gemini.InlineImage{Data: []byte{1, 2}, MimeType: "image/png"}

	result, err := NewOneShot(model).Generate(context.Background(), image, "morning routine")
	if err != nil {
		t.Fatal(err)
	}
	if result.Caption != "Soft light, slow mornings." || len(result.Hashtags) != OneShotHashtagCap {
		t.Fatalf("result = %+v", result)
	}
	if len(model.prompts) != 1 || model.images[0] != image || !strings.Contains(model.prompts[0], "morning routine") {
		t.Fatalf("unexpected model calls: %v", model.prompts)
	}
}

func TestPipelineGenerate(t *testing.T) {
	var tags []string
	for i := 0; i < 20; i++ {
		tags = append(tags, "#t"+strings.Repeat("a", i+1))
	}
	model := &fakeModel{replies: []string{
		`{"subject": "puppy", "mood": "happy"}`,
		"Meet the newest member of the crew 🐶",
		"Here you go: " + strings.Join(tags, " ") + " enjoy",
	}}

	result, err := NewPipeline(model).Generate(context.Background(), &gemini.InlineImage{Data: []byte{1}}, "new family member")
	if err != nil {
		t.Fatal(err)
	}
	if result.Strategy != StrategyHook {
		t.Errorf("strategy = %s", result.Strategy)
	}
	if result.Caption != "Meet the newest member of the crew 🐶" {
		t.Errorf("caption = %q", result.Caption)
	}
	if len(result.Hashtags) != PipelineHashtagCap || result.Hashtags[0] != "#ta" {
		t.Errorf("hashtags = %v", result.Hashtags)
	}
	if len(model.prompts) != 3 {
		t.Fatalf("calls = %d", len(model.prompts))
	}
	if model.images[0] == nil || model.images[1] != nil || model.images[2] != nil {
		t.Error("only the analysis call should carry the image")
	}
	if !strings.Contains(model.prompts[1], "Strategy: hook") || !strings.Contains(model.prompts[1], "Subject: puppy") {
		t.Errorf("caption prompt = %q", model.prompts[1])
	}
}

func TestServiceFallsBackOnModelError(t *testing.T) {
	tests := []struct {
		name    string
		variant string
		errAt   int
		err     error
		cap     int
		reason  string
	}{
		{"oneshot rate limited", VariantOneShot, 0, errors.New("Error 429: quota exceeded"), OneShotHashtagCap, "rate_limited"},
		{"pipeline hashtag call", VariantPipeline, 3, errors.New("boom"), PipelineHashtagCap, "api_error"},
		{"pipeline analysis", VariantPipeline, 1, gemini.ErrEmptyResponse, PipelineHashtagCap, "empty_response"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := &fakeModel{
				replies: []string{`{"subject":"x","mood":"calm"}`, "caption", "#a"},
				err:     tt.err,
				errAt:   tt.errAt,
			}
			svc := NewService(model, VariantPipeline)

			result, err := svc.Optimize(context.Background(), []byte{1}, "image/png", "city lights", tt.variant)
			if err != nil {
				t.Fatal(err)
			}
			if !result.Fallback || result.Reason != tt.reason || result.Variant != tt.variant {
				t.Fatalf("result = %+v", result)
			}
			if result.Caption != "City lights. ✨" || len(result.Hashtags) > tt.cap {
				t.Fatalf("result = %+v", result)
			}
		})
	}
}

func TestServiceVariantSelection(t *testing.T) {
	model := &fakeModel{replies: []string{"CAPTION: hi\nHASHTAGS: #one"}}
	svc := NewService(model, VariantOneShot)

	result, err := svc.Optimize(context.Background(), nil, "image/png", "hello", "")
	if err != nil || result.Variant != VariantOneShot {
		t.Fatalf("result = %+v err = %v", result, err)
	}

	if _, err := svc.Optimize(context.Background(), nil, "image/png", "hello", "threeshot"); !errors.Is(err, ErrUnknownVariant) {
		t.Fatalf("err = %v", err)
	}
}
