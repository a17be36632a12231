package models

const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// User is one row of the credential file. Salt and Hash are hex encoded.
type User struct {
	Username   string `json:"username"`
	Salt       string `json:"-"`
	Hash       string `json:"-"`
	Iterations int    `json:"-"`
	Role       string `json:"role"`
}

func (u User) IsAdmin() bool { return u.Role == RoleAdmin }

// Item is one stock-keeping unit of the lab inventory sheet.
// Dates are kept as strings in YYYY-MM-DD form; ExpiryDate may be "N/A".
type Item struct {
	ItemID          string `json:"item_id"`
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

type AuditEntry struct {
	Timestamp string `json:"timestamp"`
	User      string `json:"user"`
	Action    string `json:"action"`
	Details   string `json:"details"`
}
