package billing

type BillStatus string

const (
	StatusPending BillStatus = "PENDING"
	StatusPaid    BillStatus = "PAID"
)

// FlatAmount is charged on every generated bill; there is no line-item
// breakdown in this system.
const FlatAmount = 150.0

type Bill struct {
	ID            int64
	PatientID     int64
	Amount        float64
	Status        BillStatus
	DateGenerated string // ISO-8601 calendar date
}
