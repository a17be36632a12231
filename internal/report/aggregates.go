// Package report computes the derived views the dashboard renders: category
// and supplier breakdowns, low-stock detection, and expiry classification.
// Everything here is a pure function over a loaded inventory table.
package report

import (
	"sort"
	"strings"
	"time"

	"labstock/internal/models"
)

const dateFormat = "2006-01-02"

// UnknownLabel stands in for blank suppliers and storage locations.
const UnknownLabel = "Unknown"

type NameCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type CategoryQuantity struct {
	Category string `json:"category"`
	Quantity int    `json:"quantity"`
}

type QuantityByName struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type ReorderComparison struct {
	ItemID       string `json:"item_id"`
	Name         string `json:"item_name"`
	Quantity     int    `json:"quantity"`
	ReorderLevel int    `json:"reorder_level"`
}

type OverviewCards struct {
	DistinctSKUs  int `json:"distinct_skus"`
	TotalQuantity int `json:"total_quantity"`
	LowStock      int `json:"low_stock"`
	ExpiringSoon  int `json:"expiring_soon"`
}

// ExpiryRow is an inventory row annotated with its days-to-expiry. The
// pointer is nil when the expiry date could not be parsed.
type ExpiryRow struct {
	models.Item
	DaysToExpiry *int `json:"days_to_expiry"`
}

type ExpirySummary struct {
	WithExpiryDates int `json:"with_expiry_dates"`
	Expired         int `json:"expired"`
	Within30        int `json:"expiring_30"`
	Within90        int `json:"expiring_90"`
}

// CategorySums totals Quantity per category, largest first.
func CategorySums(items []models.Item) []CategoryQuantity {
	sums := map[string]int{}
	var order []string
	for _, it := range items {
		if _, ok := sums[it.Category]; !ok {
			order = append(order, it.Category)
		}
		sums[it.Category] += it.Quantity
	}
	out := make([]CategoryQuantity, 0, len(order))
	for _, c := range order {
		out = append(out, CategoryQuantity{Category: c, Quantity: sums[c]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Quantity > out[j].Quantity })
	return out
}

// CategoryCounts counts rows per category, largest first.
func CategoryCounts(items []models.Item) []NameCount {
	return countBy(items, func(it models.Item) string { return it.Category })
}

// SupplierCounts counts rows per supplier; a blank supplier is "Unknown".
func SupplierCounts(items []models.Item) []NameCount {
	return countBy(items, func(it models.Item) string {
		if strings.TrimSpace(it.Supplier) == "" {
			return UnknownLabel
		}
		return it.Supplier
	})
}

// LocationCounts counts rows per storage location; blank is "Unknown".
func LocationCounts(items []models.Item) []NameCount {
	return countBy(items, func(it models.Item) string {
		if strings.TrimSpace(it.StorageLocation) == "" {
			return UnknownLabel
		}
		return it.StorageLocation
	})
}

func countBy(items []models.Item, key func(models.Item) string) []NameCount {
	counts := map[string]int{}
	var order []string
	for _, it := range items {
		k := key(it)
		if _, ok := counts[k]; !ok {
			order = append(order, k)
		}
		counts[k]++
	}
	out := make([]NameCount, 0, len(order))
	for _, k := range order {
		out = append(out, NameCount{Name: k, Count: counts[k]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// ItemQuantities totals Quantity per item name within a selection.
func ItemQuantities(items []models.Item) []QuantityByName {
	sums := map[string]int{}
	var order []string
	for _, it := range items {
		if _, ok := sums[it.Name]; !ok {
			order = append(order, it.Name)
		}
		sums[it.Name] += it.Quantity
	}
	out := make([]QuantityByName, 0, len(order))
	for _, n := range order {
		out = append(out, QuantityByName{Name: n, Quantity: sums[n]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Quantity > out[j].Quantity })
	return out
}

// ReorderComparisons pairs summed quantity with the reorder level per item id.
func ReorderComparisons(items []models.Item) []ReorderComparison {
	byID := map[string]*ReorderComparison{}
	var order []string
	for _, it := range items {
		rc, ok := byID[it.ItemID]
		if !ok {
			rc = &ReorderComparison{ItemID: it.ItemID, Name: it.Name}
			byID[it.ItemID] = rc
			order = append(order, it.ItemID)
		}
		rc.Quantity += it.Quantity
		if it.ReorderLevel > rc.ReorderLevel {
			rc.ReorderLevel = it.ReorderLevel
		}
	}
	out := make([]ReorderComparison, 0, len(order))
	for _, id := range order {
		out = append(out, *byID[id])
	}
	return out
}

// LowStock returns rows at or below their reorder level (boundary inclusive).
func LowStock(items []models.Item) []models.Item {
	var out []models.Item
	for _, it := range items {
		if it.Quantity <= it.ReorderLevel {
			out = append(out, it)
		}
	}
	return out
}

// Categories lists the distinct non-blank category names, sorted.
func Categories(items []models.Item) []string {
	seen := map[string]bool{}
	var out []string
	for _, it := range items {
		c := strings.TrimSpace(it.Category)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// FilterCategory narrows the table to one category; "" or "All" keeps it all.
func FilterCategory(items []models.Item, category string) []models.Item {
	if category == "" || category == "All" {
		return items
	}
	var out []models.Item
	for _, it := range items {
		if it.Category == category {
			out = append(out, it)
		}
	}
	return out
}

// SortedSnapshot orders the table by category then item name for display.
func SortedSnapshot(items []models.Item) []models.Item {
	out := append([]models.Item(nil), items...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// DaysToExpiry returns the whole days between today and the item's expiry
// date. The second return is false for "N/A", blank, or unparsable dates.
func DaysToExpiry(it models.Item, today time.Time) (int, bool) {
	s := strings.TrimSpace(it.ExpiryDate)
	if s == "" || strings.EqualFold(s, "N/A") {
		return 0, false
	}
	exp, err := time.Parse(dateFormat, s)
	if err != nil {
		return 0, false
	}
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	return int(exp.Sub(day).Hours() / 24), true
}

// ExpiryLabels is the bucket order used for the status cards and chart.
// Unknown collects rows whose expiry date did not parse.
var ExpiryLabels = []string{"Expired", "<30 days", "30-90 days", "3-12 months", ">1 year", UnknownLabel}

// ExpiryStatus buckets a days-to-expiry value. Bucket edges are inclusive on
// the right: exactly 90 days out is "30-90 days", not "3-12 months".
func ExpiryStatus(days int, known bool) string {
	if !known {
		return UnknownLabel
	}
	switch {
	case days <= 0:
		return "Expired"
	case days <= 30:
		return "<30 days"
	case days <= 90:
		return "30-90 days"
	case days <= 365:
		return "3-12 months"
	default:
		return ">1 year"
	}
}

// ExpiryBucketCounts counts rows per bucket, in ExpiryLabels order.
func ExpiryBucketCounts(items []models.Item, today time.Time) []NameCount {
	counts := map[string]int{}
	for _, it := range items {
		d, ok := DaysToExpiry(it, today)
		counts[ExpiryStatus(d, ok)]++
	}
	out := make([]NameCount, 0, len(ExpiryLabels))
	for _, l := range ExpiryLabels {
		out = append(out, NameCount{Name: l, Count: counts[l]})
	}
	return out
}

// Expiry listing filters. Date-bounded filters exclude rows with unparsable
// dates; "all" keeps them, with a null days marker, listed last.
const (
	FilterAll      = "all"
	FilterExpired  = "expired"
	FilterWithin30 = "30"
	FilterWithin90 = "90"
)

// ExpiryListing applies a filter and sorts ascending by days to expiry.
func ExpiryListing(items []models.Item, today time.Time, filter string) []ExpiryRow {
	var out []ExpiryRow
	for _, it := range items {
		d, ok := DaysToExpiry(it, today)
		row := ExpiryRow{Item: it}
		if ok {
			days := d
			row.DaysToExpiry = &days
		}
		switch filter {
		case FilterExpired:
			if ok && d <= 0 {
				out = append(out, row)
			}
		case FilterWithin30:
			if ok && d > 0 && d <= 30 {
				out = append(out, row)
			}
		case FilterWithin90:
			if ok && d > 0 && d <= 90 {
				out = append(out, row)
			}
		default:
			out = append(out, row)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].DaysToExpiry, out[j].DaysToExpiry
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return *a < *b
		}
	})
	return out
}

// ExpirySummaryCounts computes the counters shown beside the status chart.
func ExpirySummaryCounts(items []models.Item, today time.Time) ExpirySummary {
	var s ExpirySummary
	for _, it := range items {
		d, ok := DaysToExpiry(it, today)
		if !ok {
			continue
		}
		s.WithExpiryDates++
		if d <= 0 {
			s.Expired++
		}
		if d > 0 && d <= 30 {
			s.Within30++
		}
		if d > 0 && d <= 90 {
			s.Within90++
		}
	}
	return s
}

// Overview computes the four headline cards. The expiring-soon card counts
// every parsed expiry date within 90 days of today, expired rows included.
func Overview(items []models.Item, today time.Time) OverviewCards {
	cards := OverviewCards{}
	ids := map[string]bool{}
	for _, it := range items {
		ids[it.ItemID] = true
		cards.TotalQuantity += it.Quantity
		if it.Quantity <= it.ReorderLevel {
			cards.LowStock++
		}
		if d, ok := DaysToExpiry(it, today); ok && d <= 90 {
			cards.ExpiringSoon++
		}
	}
	cards.DistinctSKUs = len(ids)
	return cards
}
