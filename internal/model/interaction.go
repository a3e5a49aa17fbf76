// internal/model/interaction.go
package model

import "time"

type Interaction struct {
	ID         int               `db:"id" json:"id"`
	CustomerID int               `db:"customer_id" json:"customer_id"`
	Type       string            `db:"type" json:"type"` // e.g. 'call', 'email', 'meeting'
	Subject    string            `db:"subject" json:"subject"`
	Date       time.Time         `db:"date" json:"date"`
	Status     InteractionStatus `db:"status" json:"status"`
	Notes      string            `db:"notes" json:"notes,omitempty"`
}
