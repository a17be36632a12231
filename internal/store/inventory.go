package store

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/xuri/excelize/v2"

	"labstock/internal/models"
)

// InventoryColumns is the fixed sheet schema, in column order.
var InventoryColumns = []string{
	"Item ID", "Item Name", "Category", "Quantity", "Unit", "Reorder Level",
	"Supplier", "Last Restocked", "Expiry Date", "Storage Location", "Remarks",
}

var itemIDPattern = regexp.MustCompile(`^LAB(\d+)$`)

// InventoryStore persists the inventory table to a spreadsheet file. The only
// write primitive is a wholesale overwrite, so a process-local writer lock
// serializes every load-mutate-save sequence; across processes the behavior
// stays last write wins.
type InventoryStore struct {
	path string
	ttl  time.Duration

	mu       sync.Mutex
	cached   []models.Item
	cachedAt time.Time
	now      func() time.Time
}

// NewInventoryStore opens a store over path. A fresh-enough cached copy
// (within ttl) short-circuits re-reading the file; ttl <= 0 disables caching.
func NewInventoryStore(path string, ttl time.Duration) *InventoryStore {
	return &InventoryStore{path: path, ttl: ttl, now: time.Now}
}

// Load returns the full table. A missing backing file yields an empty table.
func (s *InventoryStore) Load() ([]models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *InventoryStore) load() ([]models.Item, error) {
	if s.cached != nil && s.ttl > 0 && s.now().Sub(s.cachedAt) < s.ttl {
		return append([]models.Item(nil), s.cached...), nil
	}
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return []models.Item{}, nil
	}
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("open inventory file: %w", err)
	}
	defer f.Close()
	items, err := readSheet(f, false)
	if err != nil {
		return nil, err
	}
	s.cached = append([]models.Item(nil), items...)
	s.cachedAt = s.now()
	return items, nil
}

// Save overwrites the backing file wholesale and refreshes the cached copy.
func (s *InventoryStore) Save(items []models.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(items)
}

func (s *InventoryStore) save(items []models.Item) error {
	f := BuildSheet(items)
	defer f.Close()
	if err := f.SaveAs(s.path); err != nil {
		return fmt.Errorf("save inventory file: %w", err)
	}
	s.cached = append([]models.Item(nil), items...)
	s.cachedAt = s.now()
	return nil
}

// Mutate runs fn over the current table and persists its result, all under
// the writer lock.
func (s *InventoryStore) Mutate(fn func(items []models.Item) ([]models.Item, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, err := s.load()
	if err != nil {
		return err
	}
	next, err := fn(items)
	if err != nil {
		return err
	}
	return s.save(next)
}

// NextItemID scans ids of the form LAB<digits> and returns one past the
// highest, zero-padded to three digits. An empty table yields LAB001.
func NextItemID(items []models.Item) string {
	max := 0
	for _, it := range items {
		m := itemIDPattern.FindStringSubmatch(strings.ToUpper(strings.TrimSpace(it.ItemID)))
		if m == nil {
			continue
		}
		if n, err := strconv.Atoi(m[1]); err == nil && n > max {
			max = n
		}
	}
	return fmt.Sprintf("LAB%03d", max+1)
}

// ParseUpload reads an uploaded spreadsheet into a table. Unlike the store's
// own load it requires an "Item ID" column and rejects the sheet before
// anything is written.
func ParseUpload(r io.Reader) ([]models.Item, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("read uploaded file: %w", err)
	}
	defer f.Close()
	return readSheet(f, true)
}

// BuildSheet renders a table as a workbook with the fixed column set.
func BuildSheet(items []models.Item) *excelize.File {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	header := make([]interface{}, len(InventoryColumns))
	for i, c := range InventoryColumns {
		header[i] = c
	}
	_ = f.SetSheetRow(sheet, "A1", &header)
	for i, it := range items {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{
			it.ItemID, it.Name, it.Category, it.Quantity, it.Unit, it.ReorderLevel,
			it.Supplier, it.LastRestocked, it.ExpiryDate, it.StorageLocation, it.Remarks,
		}
		_ = f.SetSheetRow(sheet, cell, &row)
	}
	return f
}

func readSheet(f *excelize.File, requireItemID bool) ([]models.Item, error) {
	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet: %w", err)
	}
	if len(rows) == 0 {
		if requireItemID {
			return nil, ErrMissingItemID
		}
		return []models.Item{}, nil
	}

	idx := make(map[string]int)
	for i, name := range rows[0] {
		idx[strings.TrimSpace(name)] = i
	}
	if _, ok := idx["Item ID"]; !ok && requireItemID {
		return nil, ErrMissingItemID
	}

	cell := func(row []string, col string) string {
		i, ok := idx[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	items := make([]models.Item, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}
		items = append(items, models.Item{
			ItemID:          cell(row, "Item ID"),
			Name:            cell(row, "Item Name"),
			Category:        cell(row, "Category"),
			Quantity:        coerceInt(cell(row, "Quantity")),
			Unit:            cell(row, "Unit"),
			ReorderLevel:    coerceInt(cell(row, "Reorder Level")),
			Supplier:        cell(row, "Supplier"),
			LastRestocked:   cell(row, "Last Restocked"),
			ExpiryDate:      cell(row, "Expiry Date"),
			StorageLocation: cell(row, "Storage Location"),
			Remarks:         cell(row, "Remarks"),
		})
	}
	return items, nil
}

// coerceInt parses a numeric cell, defaulting to 0 on any failure or
// negative value. Sheets sometimes carry quantities as "12.0".
func coerceInt(s string) int {
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 {
			return 0
		}
		return n
	}
	if fl, err := strconv.ParseFloat(s, 64); err == nil {
		if fl < 0 {
			return 0
		}
		return int(fl)
	}
	return 0
}
