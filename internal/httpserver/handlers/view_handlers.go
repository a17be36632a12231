package handlers

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"labstock/internal/report"
	"labstock/internal/store"
)

// Overview serves the headline cards, the three overview charts, and the
// sorted inventory snapshot.
func Overview(inv *store.InventoryStore, cache *report.Cache, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := inv.Load()
		if err != nil {
			lg.Errorw("inventory load failed", "error", err)
			http.Error(w, "could not load inventory", http.StatusInternalServerError)
			return
		}
		payload, err := cache.Get("overview", func() (any, error) {
			today := time.Now()
			return map[string]any{
				"cards":           report.Overview(items, today),
				"category_sums":   report.CategorySums(items),
				"category_counts": report.CategoryCounts(items),
				"supplier_counts": report.SupplierCounts(items),
				"snapshot":        report.SortedSnapshot(items),
			}, nil
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		respondJSON(w, payload)
	}
}

// Categories lists the distinct category names for the insights selector.
func Categories(inv *store.InventoryStore, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := inv.Load()
		if err != nil {
			lg.Errorw("inventory load failed", "error", err)
			http.Error(w, "could not load inventory", http.StatusInternalServerError)
			return
		}
		respondJSON(w, map[string]any{"categories": report.Categories(items)})
	}
}

// Insights serves the per-category drill-down: supplier and storage
// breakdowns, low-stock rows, item quantities, and quantity vs reorder level.
func Insights(inv *store.InventoryStore, cache *report.Cache, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category := r.URL.Query().Get("category")
		items, err := inv.Load()
		if err != nil {
			lg.Errorw("inventory load failed", "error", err)
			http.Error(w, "could not load inventory", http.StatusInternalServerError)
			return
		}
		payload, err := cache.Get("insights:"+category, func() (any, error) {
			sel := report.FilterCategory(items, category)
			return map[string]any{
				"category":            category,
				"supplier_counts":     report.SupplierCounts(sel),
				"location_counts":     report.LocationCounts(sel),
				"low_stock":           report.LowStock(sel),
				"item_quantities":     report.ItemQuantities(sel),
				"reorder_comparisons": report.ReorderComparisons(sel),
				"items":               sel,
			}, nil
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		respondJSON(w, payload)
	}
}

// Expiry serves the expiry monitor: bucket counts, summary counters, and a
// filtered listing sorted by days to expiry.
func Expiry(inv *store.InventoryStore, cache *report.Cache, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := r.URL.Query().Get("filter")
		switch filter {
		case "", report.FilterAll:
			filter = report.FilterAll
		case report.FilterExpired, report.FilterWithin30, report.FilterWithin90:
		default:
			http.Error(w, "unknown filter", http.StatusBadRequest)
			return
		}
		items, err := inv.Load()
		if err != nil {
			lg.Errorw("inventory load failed", "error", err)
			http.Error(w, "could not load inventory", http.StatusInternalServerError)
			return
		}
		payload, err := cache.Get("expiry:"+filter, func() (any, error) {
			today := time.Now()
			return map[string]any{
				"filter":  filter,
				"buckets": report.ExpiryBucketCounts(items, today),
				"summary": report.ExpirySummaryCounts(items, today),
				"listing": report.ExpiryListing(items, today, filter),
			}, nil
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		respondJSON(w, payload)
	}
}
