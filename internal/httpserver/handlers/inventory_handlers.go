package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"labstock/internal/auth"
	"labstock/internal/metrics"
	"labstock/internal/models"
	"labstock/internal/report"
	"labstock/internal/store"
)

const dateFormat = "2006-01-02"

func ListItems(inv *store.InventoryStore, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := inv.Load()
		if err != nil {
			lg.Errorw("inventory load failed", "error", err)
			http.Error(w, "could not load inventory", http.StatusInternalServerError)
			return
		}
		respondJSON(w, items)
	}
}

type createItemReq struct {
	Name            string `json:"item_name"`
	Category        string `json:"category"`
	Quantity        int    `json:"quantity"`
	Unit            string `json:"unit"`
	ReorderLevel    int    `json:"reorder_level"`
	Supplier        string `json:"supplier"`
	LastRestocked   string `json:"last_restocked"`
	ExpiryDate      string `json:"expiry_date"`
	StorageLocation string `json:"storage_location"`
	Remarks         string `json:"remarks"`
}

// CreateItem adds one row. The server assigns the next LAB id.
func CreateItem(inv *store.InventoryStore, audit *store.AuditLog, cache *report.Cache, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createItemReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.Name) == "" {
			http.Error(w, "item_name required", http.StatusBadRequest)
			return
		}
		if req.Quantity < 0 || req.ReorderLevel < 0 {
			http.Error(w, "quantity and reorder_level must be non-negative", http.StatusBadRequest)
			return
		}
		if req.Unit == "" {
			req.Unit = "Pieces"
		}
		if req.LastRestocked == "" {
			req.LastRestocked = time.Now().Format(dateFormat)
		}
		if req.ExpiryDate == "" {
			req.ExpiryDate = "N/A"
		}
		var created models.Item
		err := inv.Mutate(func(items []models.Item) ([]models.Item, error) {
			created = models.Item{
				ItemID:          store.NextItemID(items),
				Name:            req.Name,
				Category:        req.Category,
				Quantity:        req.Quantity,
				Unit:            req.Unit,
				ReorderLevel:    req.ReorderLevel,
				Supplier:        req.Supplier,
				LastRestocked:   req.LastRestocked,
				ExpiryDate:      req.ExpiryDate,
				StorageLocation: req.StorageLocation,
				Remarks:         req.Remarks,
			}
			return append(items, created), nil
		})
		if err != nil {
			lg.Errorw("item add failed", "error", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		cache.Invalidate()
		metrics.RecordMutation("item_add")
		details := fmt.Sprintf("ItemID=%s; Name=%s; Qty=%d; Unit=%s; Reorder=%d; Category=%s; Supplier=%s",
			created.ItemID, created.Name, created.Quantity, created.Unit, created.ReorderLevel, created.Category, created.Supplier)
		if err := audit.Append(auth.Subject(r.Context()), fmt.Sprintf("Added new item: %s (%s)", created.ItemID, created.Name), details); err != nil {
			lg.Errorw("audit append failed", "error", err)
		}
		respondJSON(w, created)
	}
}

type updateItemReq struct {
	Quantity     *int    `json:"quantity"`
	ReorderLevel *int    `json:"reorder_level"`
	Remarks      *string `json:"remarks"`
}

// UpdateItem edits quantity, reorder level, and remarks as one submission.
func UpdateItem(inv *store.InventoryStore, audit *store.AuditLog, cache *report.Cache, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var req updateItemReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if (req.Quantity != nil && *req.Quantity < 0) || (req.ReorderLevel != nil && *req.ReorderLevel < 0) {
			http.Error(w, "quantity and reorder_level must be non-negative", http.StatusBadRequest)
			return
		}
		var (
			name    string
			changes []string
		)
		err := inv.Mutate(func(items []models.Item) ([]models.Item, error) {
			for i := range items {
				if items[i].ItemID != id {
					continue
				}
				name = items[i].Name
				if req.Quantity != nil && items[i].Quantity != *req.Quantity {
					changes = append(changes, fmt.Sprintf("Quantity: %d -> %d", items[i].Quantity, *req.Quantity))
					items[i].Quantity = *req.Quantity
				}
				if req.ReorderLevel != nil && items[i].ReorderLevel != *req.ReorderLevel {
					changes = append(changes, fmt.Sprintf("Reorder Level: %d -> %d", items[i].ReorderLevel, *req.ReorderLevel))
					items[i].ReorderLevel = *req.ReorderLevel
				}
				if req.Remarks != nil && items[i].Remarks != *req.Remarks {
					changes = append(changes, fmt.Sprintf("Remarks: '%s' -> '%s'", items[i].Remarks, *req.Remarks))
					items[i].Remarks = *req.Remarks
				}
				return items, nil
			}
			return nil, fmt.Errorf("item %q: %w", id, store.ErrNotFound)
		})
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		if err != nil {
			lg.Errorw("item edit failed", "error", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		cache.Invalidate()
		metrics.RecordMutation("item_edit")
		details := "No changes made"
		if len(changes) > 0 {
			details = strings.Join(changes, "; ")
		}
		if err := audit.Append(auth.Subject(r.Context()), fmt.Sprintf("Edited item %s (%s)", id, name), details); err != nil {
			lg.Errorw("audit append failed", "error", err)
		}
		respondJSON(w, map[string]any{"updated": true})
	}
}

func DeleteItem(inv *store.InventoryStore, audit *store.AuditLog, cache *report.Cache, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var removed models.Item
		err := inv.Mutate(func(items []models.Item) ([]models.Item, error) {
			kept := items[:0]
			found := false
			for _, it := range items {
				if it.ItemID == id {
					removed = it
					found = true
					continue
				}
				kept = append(kept, it)
			}
			if !found {
				return nil, fmt.Errorf("item %q: %w", id, store.ErrNotFound)
			}
			return kept, nil
		})
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		if err != nil {
			lg.Errorw("item delete failed", "error", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		cache.Invalidate()
		metrics.RecordMutation("item_delete")
		details := fmt.Sprintf("ItemID=%s; Name=%s; Qty=%d", removed.ItemID, removed.Name, removed.Quantity)
		if err := audit.Append(auth.Subject(r.Context()), "Deleted item: "+id, details); err != nil {
			lg.Errorw("audit append failed", "error", err)
		}
		respondJSON(w, map[string]any{"deleted": true})
	}
}

// ImportItems replaces the whole table from an uploaded spreadsheet. The
// upload is rejected before any write when it lacks an "Item ID" column.
func ImportItems(inv *store.InventoryStore, audit *store.AuditLog, cache *report.Cache, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		file, _, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "file upload required", http.StatusBadRequest)
			return
		}
		defer file.Close()
		items, err := store.ParseUpload(file)
		if err != nil {
			if errors.Is(err, store.ErrMissingItemID) {
				http.Error(w, store.ErrMissingItemID.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "could not read uploaded file: "+err.Error(), http.StatusBadRequest)
			return
		}
		if err := inv.Save(items); err != nil {
			lg.Errorw("bulk upload save failed", "error", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		cache.Invalidate()
		metrics.RecordMutation("bulk_upload")
		user := auth.Subject(r.Context())
		if err := audit.Append(user, "Bulk inventory upload by "+user, fmt.Sprintf("Rows=%d", len(items))); err != nil {
			lg.Errorw("audit append failed", "error", err)
		}
		respondJSON(w, map[string]any{"rows": len(items)})
	}
}

// ExportItems downloads the current table as a spreadsheet.
func ExportItems(inv *store.InventoryStore, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := inv.Load()
		if err != nil {
			lg.Errorw("inventory load failed", "error", err)
			http.Error(w, "could not load inventory", http.StatusInternalServerError)
			return
		}
		f := store.BuildSheet(items)
		defer f.Close()
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="biomedical_lab_inventory_current.xlsx"`)
		if err := f.Write(w); err != nil {
			lg.Errorw("inventory export failed", "error", err)
		}
	}
}
