package leadgen

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jordanlanch/leadcrm/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeywordScorer(t *testing.T) {
	s := NewKeywordScorer()

	score, matched, err := s.Score(context.Background(),
		"Apex Manufacturing, industrial manufacturing company", []string{"manufacturing", "logistics"})
	require.NoError(t, err)
	assert.Equal(t, 0.5, score)
	assert.Equal(t, []string{"manufacturing"}, matched)

	score, matched, err = s.Score(context.Background(), "whatever", nil)
	require.NoError(t, err)
	assert.Zero(t, score)
	assert.Empty(t, matched)
}

func TestKeywordScorerCaseInsensitive(t *testing.T) {
	s := NewKeywordScorer()

	score, matched, err := s.Score(context.Background(), "CLOUD Software Labs", []string{"software"})
	require.NoError(t, err)
	assert.Equal(t, 1.0, score)
	assert.Equal(t, []string{"software"}, matched)
}

func TestGenerate(t *testing.T) {
	g := New(nil, 42)

	campaign := &domain.Campaign{
		ID:       uuid.New(),
		Keywords: domain.StringList{"manufacturing", "software"},
	}
	region := &domain.Region{Name: "Bay Area", Country: "US", City: "San Jose"}

	leads, err := g.Generate(context.Background(), campaign, region, 5)
	require.NoError(t, err)
	require.Len(t, leads, 5)

	for _, l := range leads {
		assert.Equal(t, campaign.ID, l.CampaignID)
		assert.NotEmpty(t, l.CompanyName)
		assert.Equal(t, domain.LeadStatusGenerated, l.Status)
		assert.Equal(t, "mock_generator", l.Source)
		assert.GreaterOrEqual(t, l.RelevanceScore, 0.0)
		assert.LessOrEqual(t, l.RelevanceScore, 1.0)
		assert.Contains(t, l.Address, "San Jose")
	}
}

func TestGenerateZeroCount(t *testing.T) {
	g := New(nil, 1)

	leads, err := g.Generate(context.Background(), &domain.Campaign{ID: uuid.New()}, nil, 0)
	require.NoError(t, err)
	assert.Empty(t, leads)
}

func TestCosine(t *testing.T) {
	assert.InDelta(t, 1.0, cosine([]float32{1, 0}, []float32{1, 0}), 1e-9)
	assert.InDelta(t, 0.0, cosine([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.Zero(t, cosine([]float32{1}, []float32{1, 2}))
}
