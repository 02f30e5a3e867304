package matching

import (
	"fmt"
	"testing"

	"recommendation-service/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listingWith(area string, price float64, status domain.ListingStatus) domain.Listing {
	return domain.Listing{
		ID:     uuid.New(),
		Area:   area,
		Type:   domain.PropertyTypeResidential,
		Price:  price,
		Status: status,
	}
}

func TestBuildBundle_EmptyCatalogue(t *testing.T) {
	bundle := BuildBundle(&domain.Mandate{}, nil, DefaultConfig(), domain.BundleSourceManual)

	require.NotNil(t, bundle.Recommended)
	require.NotNil(t, bundle.Counterfactuals)
	assert.Empty(t, bundle.Recommended)
	assert.Empty(t, bundle.Counterfactuals)
	assert.Equal(t, domain.BundleSourceManual, bundle.Source)
}

func TestBuildBundle_PartitionSizes(t *testing.T) {
	mandate := &domain.Mandate{PreferredAreas: []string{"Downtown"}}

	listings := make([]domain.Listing, 0, 12)
	for i := 0; i < 12; i++ {
		listings = append(listings, listingWith("Downtown Dubai", 1000000, domain.ListingStatusAvailable))
	}

	bundle := BuildBundle(mandate, listings, DefaultConfig(), domain.BundleSourceManual)

	assert.Len(t, bundle.Recommended, 3)
	assert.Len(t, bundle.Counterfactuals, 5)
}

func TestBuildBundle_FewerListingsThanRecommendedCount(t *testing.T) {
	listings := []domain.Listing{
		listingWith("Downtown Dubai", 1000000, domain.ListingStatusAvailable),
		listingWith("Dubai Marina", 2000000, domain.ListingStatusAvailable),
	}

	bundle := BuildBundle(&domain.Mandate{}, listings, DefaultConfig(), domain.BundleSourceManual)

	assert.Len(t, bundle.Recommended, 2)
	assert.Empty(t, bundle.Counterfactuals)
}

func TestBuildBundle_OnlyAvailableListingsConsidered(t *testing.T) {
	sold := listingWith("Downtown Dubai", 1000000, domain.ListingStatusSold)
	reserved := listingWith("Downtown Dubai", 1000000, domain.ListingStatusReserved)
	withdrawn := listingWith("Downtown Dubai", 1000000, domain.ListingStatusWithdrawn)
	available := listingWith("Downtown Dubai", 1000000, domain.ListingStatusAvailable)

	bundle := BuildBundle(&domain.Mandate{}, []domain.Listing{sold, reserved, withdrawn, available}, DefaultConfig(), domain.BundleSourceManual)

	require.Len(t, bundle.Recommended, 1)
	assert.Equal(t, available.ID, bundle.Recommended[0].ListingID)
	assert.Empty(t, bundle.Counterfactuals)
}

func TestBuildBundle_SortedByScoreDescending(t *testing.T) {
	mandate := &domain.Mandate{
		PreferredAreas: []string{"Downtown"},
		PropertyTypes:  []string{"residential"},
		MaxInvestment:  f64(1500000),
	}

	weak := listingWith("Dubai Marina", 9000000, domain.ListingStatusAvailable)   // 33: только тип
	strong := listingWith("Downtown Dubai", 1000000, domain.ListingStatusAvailable) // 100
	medium := listingWith("Dubai Marina", 1000000, domain.ListingStatusAvailable)   // 67: тип и бюджет

	bundle := BuildBundle(mandate, []domain.Listing{weak, strong, medium}, DefaultConfig(), domain.BundleSourceAIInsight)

	require.Len(t, bundle.Recommended, 3)
	assert.Equal(t, strong.ID, bundle.Recommended[0].ListingID)
	assert.Equal(t, 100, bundle.Recommended[0].Score)
	assert.Equal(t, medium.ID, bundle.Recommended[1].ListingID)
	assert.Equal(t, 67, bundle.Recommended[1].Score)
	assert.Equal(t, weak.ID, bundle.Recommended[2].ListingID)
	assert.Equal(t, 33, bundle.Recommended[2].Score)
}

func TestBuildBundle_TiesPreserveCatalogueOrder(t *testing.T) {
	// При равных баллах сохраняется порядок каталога: результат
	// воспроизводим от вызова к вызову.
	listings := make([]domain.Listing, 0, 8)
	for i := 0; i < 8; i++ {
		l := listingWith(fmt.Sprintf("Area %d", i), 1000000, domain.ListingStatusAvailable)
		listings = append(listings, l)
	}

	first := BuildBundle(&domain.Mandate{}, listings, DefaultConfig(), domain.BundleSourceManual)

	require.Len(t, first.Recommended, 3)
	for i := 0; i < 3; i++ {
		assert.Equal(t, listings[i].ID, first.Recommended[i].ListingID)
	}
	require.Len(t, first.Counterfactuals, 5)
	for i := 0; i < 5; i++ {
		assert.Equal(t, listings[3+i].ID, first.Counterfactuals[i].ListingID)
	}

	second := BuildBundle(&domain.Mandate{}, listings, DefaultConfig(), domain.BundleSourceManual)
	assert.Equal(t, first, second)
}

func TestBuildBundle_CounterfactualsCarryFailedLabels(t *testing.T) {
	mandate := &domain.Mandate{
		PreferredAreas: []string{"Downtown"},
		PropertyTypes:  []string{"residential"},
	}

	perfect1 := listingWith("Downtown Dubai", 1000000, domain.ListingStatusAvailable)
	perfect2 := listingWith("Downtown Dubai", 1100000, domain.ListingStatusAvailable)
	perfect3 := listingWith("Downtown Dubai", 1200000, domain.ListingStatusAvailable)
	offArea := listingWith("Dubai Marina", 1000000, domain.ListingStatusAvailable)

	bundle := BuildBundle(mandate, []domain.Listing{perfect1, perfect2, perfect3, offArea}, DefaultConfig(), domain.BundleSourceNLPQuery)

	require.Len(t, bundle.Counterfactuals, 1)
	cf := bundle.Counterfactuals[0]
	assert.Equal(t, offArea.ID, cf.ListingID)
	assert.Equal(t, []string{"Area: Dubai Marina"}, cf.ReasonLabels)
}

func TestBuildBundle_FullyMetCounterfactualHasNoLabels(t *testing.T) {
	// Объект с полным совпадением, вытесненный в counterfactuals
	// конкуренцией, не имеет проваленных критериев.
	listings := make([]domain.Listing, 0, 4)
	for i := 0; i < 4; i++ {
		listings = append(listings, listingWith("Downtown Dubai", 1000000, domain.ListingStatusAvailable))
	}

	bundle := BuildBundle(&domain.Mandate{PreferredAreas: []string{"Downtown"}}, listings, DefaultConfig(), domain.BundleSourceManual)

	require.Len(t, bundle.Counterfactuals, 1)
	assert.Empty(t, bundle.Counterfactuals[0].ReasonLabels)
}

func TestBuildBundle_ConfigNormalization(t *testing.T) {
	listings := make([]domain.Listing, 0, 10)
	for i := 0; i < 10; i++ {
		listings = append(listings, listingWith("Downtown Dubai", 1000000, domain.ListingStatusAvailable))
	}

	// Некорректные значения конфигурации заменяются значениями по умолчанию
	bundle := BuildBundle(&domain.Mandate{}, listings, Config{RecommendedCount: -1, CounterfactualCount: -1}, domain.BundleSourceManual)

	assert.Len(t, bundle.Recommended, 3)
	assert.Len(t, bundle.Counterfactuals, 5)
}

func TestBuildBundle_CustomCounts(t *testing.T) {
	listings := make([]domain.Listing, 0, 10)
	for i := 0; i < 10; i++ {
		listings = append(listings, listingWith("Downtown Dubai", 1000000, domain.ListingStatusAvailable))
	}

	bundle := BuildBundle(&domain.Mandate{}, listings, Config{RecommendedCount: 2, CounterfactualCount: 4}, domain.BundleSourceManual)

	assert.Len(t, bundle.Recommended, 2)
	assert.Len(t, bundle.Counterfactuals, 4)
}

func TestBuildBundle_NilMandateScoresZero(t *testing.T) {
	listings := []domain.Listing{
		listingWith("Downtown Dubai", 1000000, domain.ListingStatusAvailable),
	}

	bundle := BuildBundle(nil, listings, DefaultConfig(), domain.BundleSourceManual)

	require.Len(t, bundle.Recommended, 1)
	assert.Equal(t, 0, bundle.Recommended[0].Score)
}
