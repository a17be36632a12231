package store

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"labstock/internal/models"
)

func TestNextItemID(t *testing.T) {
	t.Parallel()

	items := []models.Item{{ItemID: "LAB001"}, {ItemID: "LAB003"}}
	assert.Equal(t, "LAB004", NextItemID(items))
	assert.Equal(t, "LAB001", NextItemID(nil))
	assert.Equal(t, "LAB001", NextItemID([]models.Item{{ItemID: "MISC-1"}, {ItemID: ""}}))
	// Case-insensitive prefix and wide ids.
	assert.Equal(t, "LAB1000", NextItemID([]models.Item{{ItemID: "lab999"}}))
}

func TestInventoryStore_MissingFileIsEmptyTable(t *testing.T) {
	t.Parallel()

	s := NewInventoryStore(filepath.Join(t.TempDir(), "inventory.xlsx"), 0)
	items, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Len(t, InventoryColumns, 11)
}

func TestInventoryStore_SaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	s := NewInventoryStore(filepath.Join(t.TempDir(), "inventory.xlsx"), 0)
	in := []models.Item{
		{
			ItemID: "LAB001", Name: "Gloves", Category: "Consumables", Quantity: 120,
			Unit: "Boxes", ReorderLevel: 20, Supplier: "MedSupply",
			LastRestocked: "2026-08-01", ExpiryDate: "2027-01-01",
			StorageLocation: "Shelf A1", Remarks: "nitrile, size M",
		},
		{ItemID: "LAB002", Name: "Reagent X", Category: "Reagents", ExpiryDate: "N/A"},
	}
	require.NoError(t, s.Save(in))

	out, err := s.Load()
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, in[0], out[0])
	assert.Equal(t, "N/A", out[1].ExpiryDate)
	assert.Equal(t, 0, out[1].Quantity)
}

func TestInventoryStore_NumericCoercion(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "inventory.xlsx")
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	header := []interface{}{"Item ID", "Item Name", "Quantity", "Reorder Level"}
	require.NoError(t, f.SetSheetRow(sheet, "A1", &header))
	row := []interface{}{"LAB001", "Beakers", "plenty", "-3"}
	require.NoError(t, f.SetSheetRow(sheet, "A2", &row))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	s := NewInventoryStore(path, 0)
	items, err := s.Load()
	require.NoError(t, err)
	require.Len(t, items, 1)
	// Non-numeric and negative values both coerce to zero; columns absent
	// from the sheet come back blank.
	assert.Equal(t, 0, items[0].Quantity)
	assert.Equal(t, 0, items[0].ReorderLevel)
	assert.Equal(t, "", items[0].Supplier)
}

func TestParseUpload_RequiresItemIDColumn(t *testing.T) {
	t.Parallel()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	header := []interface{}{"Item Name", "Quantity"}
	require.NoError(t, f.SetSheetRow(sheet, "A1", &header))
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	require.NoError(t, f.Close())

	_, err := ParseUpload(&buf)
	require.ErrorIs(t, err, ErrMissingItemID)
}

func TestParseUpload_CoercesNumerics(t *testing.T) {
	t.Parallel()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	header := []interface{}{"Item ID", "Item Name", "Quantity"}
	require.NoError(t, f.SetSheetRow(sheet, "A1", &header))
	row := []interface{}{"LAB007", "Pipettes", "12.0"}
	require.NoError(t, f.SetSheetRow(sheet, "A2", &row))
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	require.NoError(t, f.Close())

	items, err := ParseUpload(&buf)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "LAB007", items[0].ItemID)
	assert.Equal(t, 12, items[0].Quantity)
}

func TestInventoryStore_CachedLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "inventory.xlsx")
	s := NewInventoryStore(path, time.Hour)
	require.NoError(t, s.Save([]models.Item{{ItemID: "LAB001", Name: "Gloves"}}))

	// Overwrite the file behind the store's back; a fresh cache wins.
	other := NewInventoryStore(path, 0)
	require.NoError(t, other.Save([]models.Item{{ItemID: "LAB009", Name: "Swabs"}}))

	items, err := s.Load()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "LAB001", items[0].ItemID)

	// Expiring the cache picks up the file again.
	s.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	items, err = s.Load()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "LAB009", items[0].ItemID)
}

func TestInventoryStore_MutateNotFoundDoesNotWrite(t *testing.T) {
	t.Parallel()

	s := NewInventoryStore(filepath.Join(t.TempDir(), "inventory.xlsx"), 0)
	require.NoError(t, s.Save([]models.Item{{ItemID: "LAB001"}}))

	err := s.Mutate(func(items []models.Item) ([]models.Item, error) {
		return nil, ErrNotFound
	})
	require.ErrorIs(t, err, ErrNotFound)

	items, err := s.Load()
	require.NoError(t, err)
	assert.Len(t, items, 1)
}
