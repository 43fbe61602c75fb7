package leadgen

import (
	"context"
	"math"
	"strings"
)

// Scorer rates how relevant a company is to a campaign's keywords.
// Scores are fractions in [0,1].
type Scorer interface {
	Score(ctx context.Context, companyText string, keywords []string) (float64, []string, error)
}

// KeywordScorer scores by keyword overlap: the share of campaign keywords
// that appear in the company's name, industry or description. No external
// calls, always available.
type KeywordScorer struct{}

func NewKeywordScorer() *KeywordScorer {
	return &KeywordScorer{}
}

// Score returns the overlap score and the keywords that matched.
func (s *KeywordScorer) Score(_ context.Context, companyText string, keywords []string) (float64, []string, error) {
	if len(keywords) == 0 {
		return 0, nil, nil
	}

	haystack := strings.ToLower(companyText)
	var matched []string
	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		if strings.Contains(haystack, strings.ToLower(kw)) {
			matched = append(matched, kw)
		}
	}

	score := float64(len(matched)) / float64(len(keywords))
	return math.Round(score*100) / 100, matched, nil
}
