package ds

import "time"

// 2. Resolution notes table - owned by the host ticketing system. The service
// only appends a price line to the latest note and checks for a marker
// substring, it never parses or restructures the content.
type TicketSolution struct {
	ID        uint      `gorm:"primaryKey"`
	TicketID  uint      `gorm:"column:tickets_id;not null;index"`
	Content   string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"column:date_creation"`
}

func (TicketSolution) TableName() string {
	return "glpi_itilsolutions"
}

// Ticket status values forwarded by the host in hook payloads. Only the
// resolved transition is of interest here.
const (
	TicketStatusResolved = "resolved"
)
