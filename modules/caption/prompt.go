package caption

import (
	"fmt"
	"strings"
)

const analysisPrompt = "Describe the subject and mood of this image for Instagram content optimization. " +
	"Return only a JSON object with 'subject' and 'mood'."

func oneShotPrompt(intent string) string {
	var sb strings.Builder
	sb.WriteString("You are an Instagram caption writer. Look at the image and the creator's intent, ")
	sb.WriteString("then write one scroll-stopping caption that sounds human, not AI. ")
	sb.WriteString("No corporate tone, no explanations.\n")
	sb.WriteString(fmt.Sprintf("Also suggest up to %d relevant hashtags (broad + niche).\n\n", OneShotHashtagCap))
	sb.WriteString("Intent: " + intent + "\n\n")
	sb.WriteString("Respond exactly in this format:\n")
	sb.WriteString("CAPTION: <caption>\n")
	sb.WriteString("HASHTAGS: <#tag1 #tag2 ...>")
	return sb.String()
}

func captionPrompt(intent string, analysis Analysis, strategy string) string {
	return "You are an Instagram Caption Optimization Agent. " +
		"Your goal is to maximize reach, saves, comments, and shares. " +
		"Instagram only. Sound human, not AI. " +
		"No corporate or LinkedIn tone. No hashtag stuffing. " +
		"No explanations. Return only the caption.\n\n" +
		"Subject: " + analysis.Subject + "\n" +
		"Mood: " + analysis.Mood + "\n" +
		"Intent: " + intent + "\n" +
		"Strategy: " + strategy
}

func hashtagPrompt(intent string, analysis Analysis) string {
	return "Generate 8-15 Instagram hashtags (broad + niche). " +
		"Instagram only. No explanations. Return only hashtags.\n\n" +
		"Subject: " + analysis.Subject + "\n" +
		"Mood: " + analysis.Mood + "\n" +
		"Intent: " + intent
}
