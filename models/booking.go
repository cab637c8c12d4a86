package models

// Layouts for the timestamp strings stored in the bookings table. A booking
// is entered as one date plus two clock times; both timestamps share the date.
const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
	TimeLayout  = "2006-01-02 15:04"
)

// Booking представляет бронирование корта.
type Booking struct {
	ID          int    `json:"id"`
	Facility    string `json:"facility"`
	CourtNumber int    `json:"court_number"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	// LatestFile is reserved in the table schema and always empty.
	LatestFile string `json:"latest_file,omitempty"`

	// Опциональные связанные сущности (не мапятся напрямую)
	Participants []Participant `json:"participants,omitempty"`
}
