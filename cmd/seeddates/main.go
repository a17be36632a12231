// Command seeddates rewrites the restock and expiry dates of an inventory
// file with randomized values for demo and staging data. The expiry mix is
// roughly 20% expired, 30% expiring soon, 50% long shelf life.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"labstock/internal/store"
)

const dateFormat = "2006-01-02"

func main() {
	in := flag.String("in", "biomedical_lab_inventory.xlsx", "inventory file to read")
	out := flag.String("out", "biomedical_lab_inventory_updated.xlsx", "file to write")
	flag.Parse()

	if _, err := os.Stat(*in); err != nil {
		fmt.Fprintf(os.Stderr, "could not find %s: %v\n", *in, err)
		os.Exit(1)
	}

	inv := store.NewInventoryStore(*in, 0)
	items, err := inv.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "load inventory:", err)
		os.Exit(1)
	}

	today := time.Now()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	for i := range items {
		items[i].LastRestocked = today.AddDate(0, 0, rng.Intn(271)-90).Format(dateFormat)
		var expiry time.Time
		switch chance := rng.Float64(); {
		case chance < 0.2:
			expiry = today.AddDate(0, 0, -(1 + rng.Intn(90)))
		case chance < 0.5:
			expiry = today.AddDate(0, 0, 1+rng.Intn(90))
		default:
			expiry = today.AddDate(0, 0, 120+rng.Intn(601))
		}
		items[i].ExpiryDate = expiry.Format(dateFormat)
	}

	f := store.BuildSheet(items)
	defer f.Close()
	if err := f.SaveAs(*out); err != nil {
		fmt.Fprintln(os.Stderr, "save updated inventory:", err)
		os.Exit(1)
	}
	fmt.Printf("Updated inventory saved as %s (%d rows)\n", *out, len(items))
}
