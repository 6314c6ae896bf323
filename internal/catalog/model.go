package catalog

import "time"

// Product is a physical offering owned by one entrepreneur
type Product struct {
	ID                string    `json:"id"`
	OwnerID           string    `json:"owner_id"`
	Name              string    `json:"name"`
	Description       string    `json:"description,omitempty"`
	Category          string    `json:"category,omitempty"`
	Price             float64   `json:"price"`
	ShippingAvailable bool      `json:"shipping_available"`
	CreatedAt         time.Time `json:"created_at"`
}

// Service is a bookable offering with a working-hours schedule
type Service struct {
	ID           string    `json:"id"`
	OwnerID      string    `json:"owner_id"`
	BusinessName string    `json:"business_name"`
	Category     string    `json:"category,omitempty"`
	WorkingDays  string    `json:"working_days"`
	StartTime    string    `json:"start_time"`
	EndTime      string    `json:"end_time"`
	SlotInterval int       `json:"slot_interval"`
	CreatedAt    time.Time `json:"created_at"`
}

const defaultCategoryIcon = "help-circle"

// categoryIcons maps a listing category to its display icon. Matching is
// case-sensitive; anything else falls back to the default.
var categoryIcons = map[string]string{
	"Health":           "heart",
	"Education":        "book",
	"Technology":       "laptop",
	"Hair":             "hair-dryer",
	"Nails":            "nail",
	"Barber":           "barber",
	"Food":             "food",
	"Videography":      "camera",
	"Photography":      "camera",
	"Personal Trainer": "run",
	"Fashion":          "clothing",
	"Tools":            "tools",
}

// CategoryIcon returns the icon name for a category, or the default when the
// category has no exact match.
func CategoryIcon(category string) string {
	if icon, ok := categoryIcons[category]; ok {
		return icon
	}
	return defaultCategoryIcon
}
