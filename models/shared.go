package models

// ReminderPayload is the body of a check-in reminder task.
type ReminderPayload struct {
	ReminderID  string `json:"reminderId"`
	BookingID   string `json:"bookingId"`
	DeviceToken string `json:"deviceToken"`
	Title       string `json:"title"`
	Body        string `json:"body"`
	FireDate    string `json:"fireDate"` // RFC3339
}
