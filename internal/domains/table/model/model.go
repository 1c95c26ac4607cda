package model

import (
	"dinebook/shared/model"

	"github.com/lib/pq"
)

const (
	TableName  = "restaurant_tables"
	EntityName = "table"

	FieldID             = "id"
	FieldTableNumber    = "table_number"
	FieldCapacity       = "capacity"
	FieldLocation       = "location"
	FieldArea           = "area"
	FieldFeatures       = "features"
	FieldPricePerPerson = "price_per_person"
	FieldIsActive       = "is_active"
	FieldCurrentStatus  = "current_status"
)

const (
	StatusAvailable   = "available"
	StatusOccupied    = "occupied"
	StatusReserved    = "reserved"
	StatusMaintenance = "maintenance"
)

type Table struct {
	ID             string         `db:"id"`
	TableNumber    string         `db:"table_number"`
	Capacity       int            `db:"capacity"`
	Location       string         `db:"location"`
	Area           string         `db:"area"`
	Features       pq.StringArray `db:"features"`
	PricePerPerson float64        `db:"price_per_person"`
	IsActive       bool           `db:"is_active"`
	CurrentStatus  string         `db:"current_status"`
	model.Metadata
}

// Seats reports whether the table is bookable for a party of the given size.
func (t Table) Seats(partySize int) bool {
	return t.IsActive && t.Capacity >= partySize
}
