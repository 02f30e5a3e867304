package matching

import (
	"testing"

	"recommendation-service/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f64(v float64) *float64 { return &v }

func testListing() domain.Listing {
	return domain.Listing{
		Area:   "Downtown Dubai",
		Type:   domain.PropertyTypeResidential,
		Price:  1500000,
		Status: domain.ListingStatusAvailable,
	}
}

func TestScore_NilMandate(t *testing.T) {
	fit := Score(testListing(), nil)

	assert.Equal(t, 0, fit.Score)
	require.NotNil(t, fit.Reasons)
	assert.Empty(t, fit.Reasons)
}

func TestScore_AllCriteriaMet(t *testing.T) {
	mandate := &domain.Mandate{
		PreferredAreas: []string{"Downtown"},
		PropertyTypes:  []string{"residential"},
		MinInvestment:  f64(1000000),
		MaxInvestment:  f64(2000000),
	}

	fit := Score(testListing(), mandate)

	assert.Equal(t, 100, fit.Score)
	require.Len(t, fit.Reasons, 3)
	for _, r := range fit.Reasons {
		assert.True(t, r.Met, "reason %q should be met", r.Label)
	}
}

func TestScore_PossibleValues(t *testing.T) {
	// 0, 1, 2 или 3 выполненных критерия дают ровно четыре возможных балла
	cases := []struct {
		name    string
		mandate *domain.Mandate
		want    int
	}{
		{
			name: "none met",
			mandate: &domain.Mandate{
				PreferredAreas: []string{"Marina"},
				PropertyTypes:  []string{"commercial"},
				MaxInvestment:  f64(1000000),
			},
			want: 0,
		},
		{
			name: "one met",
			mandate: &domain.Mandate{
				PreferredAreas: []string{"Downtown"},
				PropertyTypes:  []string{"commercial"},
				MaxInvestment:  f64(1000000),
			},
			want: 33,
		},
		{
			name: "two met",
			mandate: &domain.Mandate{
				PreferredAreas: []string{"Downtown"},
				PropertyTypes:  []string{"residential"},
				MaxInvestment:  f64(1000000),
			},
			want: 67,
		},
		{
			name: "all met",
			mandate: &domain.Mandate{
				PreferredAreas: []string{"Downtown"},
				PropertyTypes:  []string{"residential"},
			},
			want: 100,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fit := Score(testListing(), tc.mandate)
			assert.Equal(t, tc.want, fit.Score)
		})
	}
}

func TestScore_ReasonOrderAndLabels(t *testing.T) {
	mandate := &domain.Mandate{
		PreferredAreas: []string{"Marina"},
		PropertyTypes:  []string{"residential"},
		MaxInvestment:  f64(1000000),
	}

	fit := Score(testListing(), mandate)

	// Порядок причин фиксирован: район, тип, бюджет.
	// В метках - фактические значения объекта.
	require.Len(t, fit.Reasons, 3)
	assert.Equal(t, "Area: Downtown Dubai", fit.Reasons[0].Label)
	assert.False(t, fit.Reasons[0].Met)
	assert.Equal(t, "Type: residential", fit.Reasons[1].Label)
	assert.True(t, fit.Reasons[1].Met)
	assert.Equal(t, "Budget: 1500000", fit.Reasons[2].Label)
	assert.False(t, fit.Reasons[2].Met)
}

func TestScore_EmptyPreferencesActAsWildcard(t *testing.T) {
	mandate := &domain.Mandate{}

	fit := Score(testListing(), mandate)

	assert.Equal(t, 100, fit.Score)
}

func TestScore_BlankEntriesAreSkipped(t *testing.T) {
	// Одинокая "" не должна превращаться в совпадение со всем подряд.
	onlyBlanks := &domain.Mandate{PreferredAreas: []string{"", "  "}}
	fit := Score(testListing(), onlyBlanks)
	assert.True(t, fit.Reasons[0].Met, "list of blanks degenerates to wildcard")

	blankPlusMiss := &domain.Mandate{PreferredAreas: []string{"", "Marina"}}
	fit = Score(testListing(), blankPlusMiss)
	assert.False(t, fit.Reasons[0].Met, "blank entry must not match everything")

	blankPlusHit := &domain.Mandate{PreferredAreas: []string{"", "downtown"}}
	fit = Score(testListing(), blankPlusHit)
	assert.True(t, fit.Reasons[0].Met)
}

func TestScore_AreaMatchIsCaseInsensitiveSubstring(t *testing.T) {
	mandate := &domain.Mandate{PreferredAreas: []string{"dOwNtOwN"}}

	fit := Score(testListing(), mandate)

	assert.True(t, fit.Reasons[0].Met)
}

func TestScore_BudgetBoundsAreInclusive(t *testing.T) {
	listing := testListing()

	exactMin := &domain.Mandate{MinInvestment: f64(1500000)}
	assert.True(t, Score(listing, exactMin).Reasons[2].Met, "price equal to min is within budget")

	exactMax := &domain.Mandate{MaxInvestment: f64(1500000)}
	assert.True(t, Score(listing, exactMax).Reasons[2].Met, "price equal to max is within budget")

	belowMin := &domain.Mandate{MinInvestment: f64(1500001)}
	assert.False(t, Score(listing, belowMin).Reasons[2].Met)

	aboveMax := &domain.Mandate{MaxInvestment: f64(1499999)}
	assert.False(t, Score(listing, aboveMax).Reasons[2].Met)
}

func TestScore_IsDeterministic(t *testing.T) {
	mandate := &domain.Mandate{
		PreferredAreas: []string{"Downtown"},
		PropertyTypes:  []string{"residential", "commercial"},
		MinInvestment:  f64(500000),
		MaxInvestment:  f64(3000000),
	}
	listing := testListing()

	first := Score(listing, mandate)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Score(listing, mandate))
	}
}

func TestFailedLabels(t *testing.T) {
	fit := domain.FitResult{
		Score: 33,
		Reasons: []domain.FitReason{
			{Label: "Area: Downtown Dubai", Met: true},
			{Label: "Type: residential", Met: false},
			{Label: "Budget: 1500000", Met: false},
		},
	}

	assert.Equal(t, []string{"Type: residential", "Budget: 1500000"}, FailedLabels(fit))
}
