package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labstock/internal/models"
)

var today = time.Date(2026, 8, 29, 10, 30, 0, 0, time.UTC)

func dateFrom(days int) string {
	return today.AddDate(0, 0, days).Format("2006-01-02")
}

func TestLowStock_BoundaryInclusive(t *testing.T) {
	t.Parallel()

	items := []models.Item{
		{ItemID: "LAB001", Quantity: 5, ReorderLevel: 10},
		{ItemID: "LAB002", Quantity: 10, ReorderLevel: 10},
		{ItemID: "LAB003", Quantity: 11, ReorderLevel: 10},
	}
	low := LowStock(items)
	require.Len(t, low, 2)
	assert.Equal(t, "LAB001", low[0].ItemID)
	assert.Equal(t, "LAB002", low[1].ItemID)
}

func TestExpiryStatus_Buckets(t *testing.T) {
	t.Parallel()

	cases := []struct {
		days int
		want string
	}{
		{-5, "Expired"},
		{0, "Expired"},
		{1, "<30 days"},
		{30, "<30 days"},
		{31, "30-90 days"},
		{90, "30-90 days"},
		{91, "3-12 months"},
		{365, "3-12 months"},
		{366, ">1 year"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ExpiryStatus(c.days, true), "days=%d", c.days)
	}
	assert.Equal(t, UnknownLabel, ExpiryStatus(0, false))
}

func TestDaysToExpiry_Exactly90(t *testing.T) {
	t.Parallel()

	it := models.Item{ExpiryDate: dateFrom(90)}
	d, ok := DaysToExpiry(it, today)
	require.True(t, ok)
	assert.Equal(t, 90, d)
	assert.Equal(t, "30-90 days", ExpiryStatus(d, ok))
}

func TestDaysToExpiry_Unparsable(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"N/A", "n/a", "", "soon", "2026-13-45"} {
		_, ok := DaysToExpiry(models.Item{ExpiryDate: s}, today)
		assert.False(t, ok, "expiry %q", s)
	}
}

func TestExpiryListing_FiltersExcludeUnknown(t *testing.T) {
	t.Parallel()

	items := []models.Item{
		{ItemID: "LAB001", ExpiryDate: dateFrom(-10)},
		{ItemID: "LAB002", ExpiryDate: dateFrom(15)},
		{ItemID: "LAB003", ExpiryDate: dateFrom(60)},
		{ItemID: "LAB004", ExpiryDate: "N/A"},
	}

	expired := ExpiryListing(items, today, FilterExpired)
	require.Len(t, expired, 1)
	assert.Equal(t, "LAB001", expired[0].ItemID)

	within30 := ExpiryListing(items, today, FilterWithin30)
	require.Len(t, within30, 1)
	assert.Equal(t, "LAB002", within30[0].ItemID)

	within90 := ExpiryListing(items, today, FilterWithin90)
	require.Len(t, within90, 2)
	assert.Equal(t, "LAB002", within90[0].ItemID)
	assert.Equal(t, "LAB003", within90[1].ItemID)

	// The all view keeps the unknown-date row, null marker, listed last.
	all := ExpiryListing(items, today, FilterAll)
	require.Len(t, all, 4)
	assert.Equal(t, "LAB004", all[3].ItemID)
	assert.Nil(t, all[3].DaysToExpiry)
	require.NotNil(t, all[0].DaysToExpiry)
	assert.Equal(t, -10, *all[0].DaysToExpiry)
}

func TestExpiryBucketCounts(t *testing.T) {
	t.Parallel()

	items := []models.Item{
		{ExpiryDate: dateFrom(-1)},
		{ExpiryDate: dateFrom(10)},
		{ExpiryDate: dateFrom(90)},
		{ExpiryDate: dateFrom(400)},
		{ExpiryDate: "unknown"},
	}
	counts := ExpiryBucketCounts(items, today)
	require.Len(t, counts, len(ExpiryLabels))
	byLabel := map[string]int{}
	for _, c := range counts {
		byLabel[c.Name] = c.Count
	}
	assert.Equal(t, 1, byLabel["Expired"])
	assert.Equal(t, 1, byLabel["<30 days"])
	assert.Equal(t, 1, byLabel["30-90 days"])
	assert.Equal(t, 0, byLabel["3-12 months"])
	assert.Equal(t, 1, byLabel[">1 year"])
	assert.Equal(t, 1, byLabel[UnknownLabel])
}

func TestSupplierCounts_BlankIsUnknown(t *testing.T) {
	t.Parallel()

	items := []models.Item{
		{Supplier: "MedSupply"},
		{Supplier: "MedSupply"},
		{Supplier: "  "},
	}
	counts := SupplierCounts(items)
	require.Len(t, counts, 2)
	assert.Equal(t, NameCount{Name: "MedSupply", Count: 2}, counts[0])
	assert.Equal(t, NameCount{Name: UnknownLabel, Count: 1}, counts[1])
}

func TestCategorySums_Ordering(t *testing.T) {
	t.Parallel()

	items := []models.Item{
		{Category: "Reagents", Quantity: 5},
		{Category: "Consumables", Quantity: 40},
		{Category: "Reagents", Quantity: 10},
	}
	sums := CategorySums(items)
	require.Len(t, sums, 2)
	assert.Equal(t, CategoryQuantity{Category: "Consumables", Quantity: 40}, sums[0])
	assert.Equal(t, CategoryQuantity{Category: "Reagents", Quantity: 15}, sums[1])
}

func TestOverview_Cards(t *testing.T) {
	t.Parallel()

	items := []models.Item{
		{ItemID: "LAB001", Quantity: 5, ReorderLevel: 10, ExpiryDate: dateFrom(-3)},
		{ItemID: "LAB002", Quantity: 30, ReorderLevel: 10, ExpiryDate: dateFrom(45)},
		{ItemID: "LAB003", Quantity: 7, ReorderLevel: 2, ExpiryDate: dateFrom(200)},
		{ItemID: "LAB003", Quantity: 1, ReorderLevel: 2, ExpiryDate: "N/A"},
	}
	cards := Overview(items, today)
	assert.Equal(t, 3, cards.DistinctSKUs)
	assert.Equal(t, 43, cards.TotalQuantity)
	assert.Equal(t, 2, cards.LowStock)
	// Expiring soon counts parsed dates within 90 days, expired included.
	assert.Equal(t, 2, cards.ExpiringSoon)
}

func TestFilterCategoryAndCategories(t *testing.T) {
	t.Parallel()

	items := []models.Item{
		{ItemID: "LAB001", Category: "Reagents"},
		{ItemID: "LAB002", Category: "Consumables"},
		{ItemID: "LAB003", Category: ""},
	}
	assert.Equal(t, []string{"Consumables", "Reagents"}, Categories(items))
	assert.Len(t, FilterCategory(items, "All"), 3)
	assert.Len(t, FilterCategory(items, ""), 3)
	sel := FilterCategory(items, "Reagents")
	require.Len(t, sel, 1)
	assert.Equal(t, "LAB001", sel[0].ItemID)
}

func TestReorderComparisons(t *testing.T) {
	t.Parallel()

	items := []models.Item{
		{ItemID: "LAB001", Name: "Gloves", Quantity: 3, ReorderLevel: 5},
		{ItemID: "LAB001", Name: "Gloves", Quantity: 4, ReorderLevel: 2},
		{ItemID: "LAB002", Name: "Swabs", Quantity: 9, ReorderLevel: 1},
	}
	out := ReorderComparisons(items)
	require.Len(t, out, 2)
	assert.Equal(t, ReorderComparison{ItemID: "LAB001", Name: "Gloves", Quantity: 7, ReorderLevel: 5}, out[0])
}

func TestSortedSnapshot(t *testing.T) {
	t.Parallel()

	items := []models.Item{
		{ItemID: "LAB003", Category: "Reagents", Name: "X"},
		{ItemID: "LAB001", Category: "Consumables", Name: "B"},
		{ItemID: "LAB002", Category: "Consumables", Name: "A"},
	}
	snap := SortedSnapshot(items)
	assert.Equal(t, "LAB002", snap[0].ItemID)
	assert.Equal(t, "LAB001", snap[1].ItemID)
	assert.Equal(t, "LAB003", snap[2].ItemID)
	// Input order untouched.
	assert.Equal(t, "LAB003", items[0].ItemID)
}
