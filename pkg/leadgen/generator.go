package leadgen

import (
	"context"
	"fmt"
	"strings"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/jordanlanch/leadcrm/pkg/domain"
	"github.com/jordanlanch/leadcrm/pkg/phone"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Industry-specific business name parts keyed by keyword. Unknown keywords
// fall back to a generic faker company name.
var businessNameParts = map[string]struct {
	Prefixes []string
	Suffixes []string
}{
	"manufacturing": {
		Prefixes: []string{"Precision", "Advanced", "Global", "United", "Apex", "Summit", "Prime", "Atlas"},
		Suffixes: []string{"Manufacturing", "Industries", "Fabrication", "Works", "Production Co"},
	},
	"logistics": {
		Prefixes: []string{"Express", "Rapid", "Continental", "Pacific", "Reliable", "Metro", "Swift"},
		Suffixes: []string{"Logistics", "Freight", "Shipping", "Transport", "Supply Chain"},
	},
	"software": {
		Prefixes: []string{"Bright", "Cloud", "Next", "Quantum", "Vertex", "Nova", "Core", "Pixel"},
		Suffixes: []string{"Software", "Systems", "Technologies", "Labs", "Solutions", "Digital"},
	},
	"healthcare": {
		Prefixes: []string{"Family", "Advanced", "Premier", "Complete", "Gentle", "Modern", "City"},
		Suffixes: []string{"Health", "Medical Group", "Clinic", "Care Center", "Wellness"},
	},
	"construction": {
		Prefixes: []string{"Solid", "Master", "Keystone", "Granite", "Summit", "Heritage", "Premier"},
		Suffixes: []string{"Construction", "Builders", "Contracting", "Development", "Structures"},
	},
	"retail": {
		Prefixes: []string{"Urban", "Central", "Classic", "Modern", "Local", "Premier", "Style"},
		Suffixes: []string{"Retail Group", "Stores", "Trading Co", "Merchants", "Outlet"},
	},
}

var employeeCounts = []string{"1-10", "11-50", "51-200", "201-500", "501-1000", "1000+"}

var revenueRanges = []string{"<$1M", "$1M-$10M", "$10M-$50M", "$50M-$100M", "$100M+"}

// Generator produces mock auto leads for a campaign. It stands in for a real
// enrichment provider; the surrounding pipeline (scoring, persistence,
// campaign counters) is identical either way.
type Generator struct {
	faker  *gofakeit.Faker
	scorer Scorer
	titler cases.Caser
}

// New creates a generator. seed 0 means non-deterministic output.
func New(scorer Scorer, seed int64) *Generator {
	if scorer == nil {
		scorer = NewKeywordScorer()
	}
	return &Generator{
		faker:  gofakeit.New(seed),
		scorer: scorer,
		titler: cases.Title(language.English),
	}
}

// Generate produces count leads for the campaign. Region shapes addresses,
// campaign keywords shape names and drive the relevance score. Leads are
// returned unsaved.
func (g *Generator) Generate(ctx context.Context, campaign *domain.Campaign, region *domain.Region, count int) ([]domain.AutoLead, error) {
	if count <= 0 {
		return nil, nil
	}

	leads := make([]domain.AutoLead, 0, count)
	for i := 0; i < count; i++ {
		companyName, industry := g.companyFor(campaign.Keywords)
		description := g.faker.Sentence(8)

		companyText := strings.Join([]string{companyName, industry, description}, " ")
		score, matched, err := g.scorer.Score(ctx, companyText, campaign.Keywords)
		if err != nil {
			return nil, fmt.Errorf("scoring lead: %w", err)
		}

		rawPhone := g.faker.Phone()
		normalized, perr := phone.Normalize(rawPhone, "US")
		if perr != nil {
			normalized = rawPhone
		}

		domainName := slugify(companyName) + ".com"

		lead := domain.AutoLead{
			CampaignID:      campaign.ID,
			CompanyName:     companyName,
			Website:         "https://www." + domainName,
			LinkedinURL:     "https://linkedin.com/company/" + slugify(companyName),
			Email:           "contact@" + domainName,
			Phone:           normalized,
			Address:         g.addressFor(region),
			Industry:        industry,
			EmployeeCount:   g.pick(employeeCounts),
			RevenueRange:    g.pick(revenueRanges),
			KeywordsMatched: matched,
			RelevanceScore:  score,
			Status:          domain.LeadStatusGenerated,
			Source:          "mock_generator",
			RawData: domain.JSONMap{
				"description": description,
				"generator":   "mock",
			},
		}
		leads = append(leads, lead)
	}
	return leads, nil
}

// companyFor builds a company name biased toward the campaign keywords so the
// scorer has something to match on.
func (g *Generator) companyFor(keywords []string) (name, industry string) {
	for _, kw := range g.shuffled(keywords) {
		if parts, ok := businessNameParts[strings.ToLower(kw)]; ok {
			name = g.pick(parts.Prefixes) + " " + g.pick(parts.Suffixes)
			return name, g.titler.String(kw)
		}
	}

	name = g.faker.Company()
	if len(keywords) > 0 {
		kw := g.pick(keywords)
		industry = g.titler.String(kw)
		// Fold a keyword into the name some of the time so overlap scoring
		// is not uniformly zero for unknown industries.
		if g.faker.Bool() {
			name = name + " " + industry
		}
	}
	return name, industry
}

func (g *Generator) addressFor(region *domain.Region) string {
	street := g.faker.Street()
	if region == nil {
		return street
	}
	parts := []string{street}
	for _, p := range []string{region.City, region.State, region.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

func (g *Generator) pick(options []string) string {
	if len(options) == 0 {
		return ""
	}
	return options[g.faker.Number(0, len(options)-1)]
}

func (g *Generator) shuffled(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	g.faker.ShuffleStrings(out)
	return out
}

func slugify(s string) string {
	s = strings.ToLower(s)
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteRune('-')
		}
	}
	return strings.Trim(b.String(), "-")
}
