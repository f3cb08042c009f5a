package search

import "strings"

// triggerKeywords are the recency/search intent markers. A message containing
// any of them (case-insensitive) triggers a lookup. This is a deliberately
// simple substring heuristic; false positives degrade to a harmless extra
// lookup, false negatives to an unaugmented prompt.
var triggerKeywords = []string{
	"son xəbərlər",
	"bugün",
	"indi",
	"cari",
	"yeni",
	"son",
	"güncel",
	"internet",
	"axtarış",
	"tap",
	"axtar",
}

// KeywordDetector implements IntentDetector with a static substring scan.
type KeywordDetector struct {
	keywords []string
}

// Interface guard.
var _ IntentDetector = (*KeywordDetector)(nil)

// NewKeywordDetector returns a detector using the stock trigger list.
func NewKeywordDetector() *KeywordDetector {
	return &KeywordDetector{keywords: triggerKeywords}
}

// NeedsSearch reports whether the message contains any trigger keyword.
func (d *KeywordDetector) NeedsSearch(message string) bool {
	lower := strings.ToLower(message)
	for _, kw := range d.keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
