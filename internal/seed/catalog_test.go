package seed

import (
	"testing"

	"github.com/nugabest/estatedb/internal/models"
	"github.com/stretchr/testify/require"
)

func TestPropertiesCatalogShape(t *testing.T) {
	t.Parallel()

	props := Properties()
	require.Len(t, props, 65)

	seen := make(map[string]struct{}, len(props))
	counts := map[models.ListingType]int{}
	for _, p := range props {
		_, dup := seen[p.ID]
		require.Falsef(t, dup, "duplicate id %s", p.ID)
		seen[p.ID] = struct{}{}
		require.True(t, p.Type.Valid(), p.ID)
		require.True(t, p.Category.Valid(), p.ID)
		require.NotEmpty(t, p.ImageURL, p.ID)
		counts[p.Type]++
	}
	require.Equal(t, 23, counts[models.ForSale])
	require.Equal(t, 22, counts[models.ToRent])
	require.Equal(t, 20, counts[models.ShortLet])
}

func TestGeneratedSaleListingRules(t *testing.T) {
	t.Parallel()

	props := Properties()
	first := props[5]
	require.Equal(t, "sale-gen-0", first.ID)
	require.Equal(t, models.CategoryLand, first.Category)
	require.Nil(t, first.Beds)
	require.Equal(t, float64(55000000), first.Price)
	require.True(t, first.Featured)

	second := props[6]
	require.Equal(t, models.CategoryHouse, second.Category)
	require.Equal(t, 4, *second.Beds)
	require.Equal(t, 5, *second.Toilets)
	require.Equal(t, []string{"Walk-in Closets", "Chef's Kitchen", "Marble Flooring", "Home Cinema", "Elevator"}, second.InteriorFeatures)
}

func TestPropertiesReturnsFreshCopies(t *testing.T) {
	t.Parallel()

	a := Properties()
	a[0].Title = "mutated"
	a[5].InteriorFeatures[0] = "mutated"

	b := Properties()
	require.NotEqual(t, "mutated", b[0].Title)
	require.NotEqual(t, "mutated", b[5].InteriorFeatures[0])
}
