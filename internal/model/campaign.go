// internal/model/campaign.go
package model

import "time"

// EmailCampaign is a system-owned marketing campaign, visible to every
// customer. Status stays a free-form string (draft/sent/scheduled).
type EmailCampaign struct {
	ID         int        `db:"id" json:"id"`
	Name       string     `db:"name" json:"name"`
	Subject    string     `db:"subject" json:"subject"`
	Status     string     `db:"status" json:"status"`
	Recipients int        `db:"recipients" json:"recipients"`
	OpenRate   int        `db:"open_rate" json:"open_rate"`
	ClickRate  int        `db:"click_rate" json:"click_rate"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	SentAt     *time.Time `db:"sent_at" json:"sent_at,omitempty"`
}

// CustomerCampaign is a campaign proposal submitted by a customer and
// reviewed by an admin.
type CustomerCampaign struct {
	ID         int            `db:"id" json:"id"`
	CustomerID int            `db:"customer_id" json:"customer_id"`
	Title      string         `db:"title" json:"title"`
	Status     CampaignStatus `db:"status" json:"status"`
	ReviewedAt *time.Time     `db:"reviewed_at" json:"reviewed_at,omitempty"`
}
