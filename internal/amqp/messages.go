package amqp

import (
	"encoding/json"
	"time"
)

// Report kinds carried on the export queue.
const (
	KindIndividualMonthly = "individual_monthly"
	KindIndividualYearly  = "individual_yearly"
	KindAllStaffMonthly   = "all_staff_monthly"
	KindAllStaffYearly    = "all_staff_yearly"
)

// ExportRequestMessage asks the worker to build one report and push it to the
// spreadsheet. It carries only the report coordinates; the worker fetches the
// entries from the database itself.
type ExportRequestMessage struct {
	Kind       string    `json:"kind"`
	OwnerEmail string    `json:"owner_email,omitempty"`
	Year       int       `json:"year"`
	Month      int       `json:"month,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// NewExportRequestMessage creates an export request stamped with the current time.
func NewExportRequestMessage(kind, ownerEmail string, year, month int) *ExportRequestMessage {
	return &ExportRequestMessage{
		Kind:       kind,
		OwnerEmail: ownerEmail,
		Year:       year,
		Month:      month,
		Timestamp:  time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *ExportRequestMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ExportRequestMessageFromJSON creates a message from JSON bytes
func ExportRequestMessageFromJSON(data []byte) (*ExportRequestMessage, error) {
	var msg ExportRequestMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
