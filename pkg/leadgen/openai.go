package leadgen

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// EmbeddingScorer scores relevance by cosine similarity between the campaign
// keywords and the company text, using OpenAI embeddings. Keyword matching
// still comes from the fallback scorer; only the numeric score is replaced.
type EmbeddingScorer struct {
	client   *openai.Client
	model    openai.EmbeddingModel
	fallback *KeywordScorer
}

func NewEmbeddingScorer(apiKey string) *EmbeddingScorer {
	return &EmbeddingScorer{
		client:   openai.NewClient(apiKey),
		model:    openai.SmallEmbedding3,
		fallback: NewKeywordScorer(),
	}
}

func (s *EmbeddingScorer) Score(ctx context.Context, companyText string, keywords []string) (float64, []string, error) {
	if len(keywords) == 0 {
		return 0, nil, nil
	}

	_, matched, _ := s.fallback.Score(ctx, companyText, keywords)

	resp, err := s.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Model: s.model,
		Input: []string{strings.Join(keywords, ", "), companyText},
	})
	if err != nil {
		return 0, nil, fmt.Errorf("embedding request failed: %w", err)
	}
	if len(resp.Data) != 2 {
		return 0, nil, fmt.Errorf("unexpected embedding response: %d vectors", len(resp.Data))
	}

	sim := cosine(resp.Data[0].Embedding, resp.Data[1].Embedding)
	score := math.Max(0, math.Min(1, sim))
	return math.Round(score*100) / 100, matched, nil
}

func cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
