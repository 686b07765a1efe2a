package appointment

// Appointment is a single scheduled visit. Records are only ever
// created; this system has no cancellation or reschedule.
type Appointment struct {
	ID        int64
	PatientID int64
	Doctor    string
	Date      string // ISO-8601 calendar date; fixed-width, so string order is date order
	TimeSlot  string // hour-aligned, e.g. "09:00"
}

// SlotKey identifies the tuple that must be unique across bookings.
func SlotKey(doctor, date, timeSlot string) string {
	return doctor + "|" + date + "|" + timeSlot
}
