package models

// Participant — участник бронирования. There is no participant id: rows are
// addressed by the (booking_id, name) pair, and names may repeat.
type Participant struct {
	BookingID int    `json:"booking_id"`
	Name      string `json:"name"`
	// Contact is reserved in the table schema and always empty.
	Contact string `json:"contact,omitempty"`
}
