package qa

import "strings"

// Weak models sometimes echo the instruction template back verbatim before
// getting to the point. PostProcess strips the echo when it can find where
// the real answer starts. Best effort, not a guarantee.

// triggerPhrases mark leaked instruction text. They mirror the wording of
// promptTemplate.
var triggerPhrases = []string{
	"use only the context below",
	"reply that you do not know",
	"you are answering a question about a private note collection",
	"question:",
	"context:",
}

// answerIndicators mark where generated text switches from echoed prompt to
// the actual answer.
var answerIndicators = []string{
	"answer:",
	"response:",
}

func PostProcess(raw string) string {
	lower := lowerASCII(raw)

	leaked := false
	for _, phrase := range triggerPhrases {
		if strings.Contains(lower, phrase) {
			leaked = true
			break
		}
	}
	if !leaked {
		return raw
	}

	cut := -1
	width := 0
	for _, indicator := range answerIndicators {
		if pos := strings.LastIndex(lower, indicator); pos > cut {
			cut = pos
			width = len(indicator)
		}
	}
	if cut < 0 {
		return raw
	}
	return strings.TrimSpace(raw[cut+width:])
}

// lowerASCII folds only ASCII letters so every byte offset in the folded
// string maps to the same offset in the input. strings.ToLower can change
// byte lengths for some non-ASCII case folds, which would shift the cut into
// the middle of a rune; the phrases searched for are all ASCII anyway.
func lowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
