// Package slots persists appointment slots and their booking state.
package slots

import "time"

// Slot statuses. A slot moves from free to booked exactly once and is never
// released back.
const (
	StatusFree   = "free"
	StatusBooked = "booked"
)

// Slot is a bookable appointment joined with its doctor and owning clinic.
// Latitude/Longitude are pointers because clinic coordinates may be absent;
// the proximity filter treats missing coordinates as unreachable.
type Slot struct {
	ID         int64     `json:"id"`
	DateStart  time.Time `json:"date_start"`
	DateEnd    time.Time `json:"date_end"`
	Status     string    `json:"status"`
	DoctorName string    `json:"doctor_name"`
	ClinicID   int64     `json:"id_clinic"`
	ClinicName string    `json:"clinic_name"`
	Address    string    `json:"address"`
	City       string    `json:"city"`
	Latitude   *float64  `json:"lat"`
	Longitude  *float64  `json:"lng"`
}

// SlotDetail carries the denormalized fields needed for a confirmation
// notification.
type SlotDetail struct {
	DateStart time.Time `json:"date_start"`
	Clinic    string    `json:"clinic"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	Doctor    string    `json:"doctor"`
}
