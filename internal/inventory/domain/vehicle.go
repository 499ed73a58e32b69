package domain

import "time"

// VehicleStatus represents the sales state of a unit
type VehicleStatus string

const (
	StatusAvailable VehicleStatus = "available"
	StatusSold      VehicleStatus = "sold"
)

// Vehicle is one unit of dealership inventory. StockNumber is the natural
// key: the same stock number always refers to the same physical vehicle, so
// scrapes update in place and nothing ever deletes a row (a unit missing
// from a scrape is not known to be gone).
type Vehicle struct {
	ID          uint          `json:"-" gorm:"primaryKey"`
	StockNumber string        `json:"stock_number" gorm:"uniqueIndex;not null"`
	VIN         string        `json:"vin,omitempty"`
	Year        *int          `json:"year,omitempty"`
	Make        string        `json:"make"`
	Model       string        `json:"model"`
	Trim        string        `json:"trim"`
	Status      VehicleStatus `json:"status" gorm:"default:available"`

	// Enrichment columns, not populated by the scraper yet
	BodyStyle     string   `json:"body_style,omitempty"`
	Engine        string   `json:"engine,omitempty"`
	Transmission  string   `json:"transmission,omitempty"`
	ExteriorColor string   `json:"exterior_color,omitempty"`
	InteriorColor string   `json:"interior_color,omitempty"`
	Mileage       *int     `json:"mileage,omitempty"`
	Location      string   `json:"location,omitempty"`
	PriceMSRP     *float64 `json:"price_msrp,omitempty"`
	PriceInternet *float64 `json:"price_internet,omitempty"`

	LastScrapedAt *time.Time `json:"last_scraped_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// TableName overrides the default table name for the gorm library
func (Vehicle) TableName() string {
	return "inventory"
}

// InventoryStats is the aggregate shape behind /api/inventory/stats
type InventoryStats struct {
	TotalVehicles int64      `json:"total_vehicles"`
	Available     int64      `json:"available"`
	Sold          int64      `json:"sold"`
	LastUpdated   *time.Time `json:"last_updated"`
}
