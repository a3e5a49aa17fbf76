package repository

import (
	"database/sql"
	"time"

	"github.com/unclebandit/crm-backend/internal/db"
	"github.com/unclebandit/crm-backend/internal/model"
)

type CampaignRepositoryInterface interface {
	ListCampaigns(offset, limit int) ([]*model.EmailCampaign, int, error)
	ListAll() ([]*model.EmailCampaign, error)
	GetByID(id int) (*model.EmailCampaign, error)
	Create(c *model.EmailCampaign) error
	Update(c *model.EmailCampaign) error
	Delete(id int) error
	Exists(id int) (bool, error)
}

type CampaignRepository struct {
	DB db.DBTX
}

const campaignColumns = `id, name, subject, status, recipients, open_rate, click_rate, created_at, sent_at`

func (r *CampaignRepository) Create(c *model.EmailCampaign) error {
	c.CreatedAt = time.Now()
	if c.Status == "" {
		c.Status = "draft"
	}
	query := `
        INSERT INTO email_campaigns (name, subject, status, recipients, open_rate, click_rate, created_at, sent_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id
    `
	return r.DB.QueryRow(query,
		c.Name, c.Subject, c.Status, c.Recipients, c.OpenRate, c.ClickRate, c.CreatedAt, c.SentAt,
	).Scan(&c.ID)
}

func (r *CampaignRepository) Update(c *model.EmailCampaign) error {
	query := `
        UPDATE email_campaigns
        SET name=$1, subject=$2, status=$3
        WHERE id=$4
    `
	_, err := r.DB.Exec(query, c.Name, c.Subject, c.Status, c.ID)
	return err
}

func (r *CampaignRepository) Delete(id int) error {
	_, err := r.DB.Exec(`DELETE FROM email_campaigns WHERE id=$1`, id)
	return err
}

func (r *CampaignRepository) Exists(id int) (bool, error) {
	var count int
	err := r.DB.QueryRow(`SELECT COUNT(*) FROM email_campaigns WHERE id=$1`, id).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *CampaignRepository) GetByID(id int) (*model.EmailCampaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM email_campaigns WHERE id=$1`
	var c model.EmailCampaign
	err := r.DB.QueryRow(query, id).Scan(
		&c.ID, &c.Name, &c.Subject, &c.Status, &c.Recipients, &c.OpenRate, &c.ClickRate, &c.CreatedAt, &c.SentAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *CampaignRepository) ListCampaigns(offset, limit int) ([]*model.EmailCampaign, int, error) {
	campaigns := []*model.EmailCampaign{}
	query := `SELECT ` + campaignColumns + ` FROM email_campaigns ORDER BY id DESC LIMIT $1 OFFSET $2`

	rows, err := r.DB.Query(query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	for rows.Next() {
		c := &model.EmailCampaign{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Subject, &c.Status, &c.Recipients, &c.OpenRate, &c.ClickRate, &c.CreatedAt, &c.SentAt); err != nil {
			return nil, 0, err
		}
		campaigns = append(campaigns, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.DB.QueryRow(`SELECT COUNT(*) FROM email_campaigns`).Scan(&total); err != nil {
		return nil, 0, err
	}
	return campaigns, total, nil
}

// ListAll fetches every email campaign; the customer dashboard shows
// them all without paging.
func (r *CampaignRepository) ListAll() ([]*model.EmailCampaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM email_campaigns ORDER BY id DESC`
	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	campaigns := []*model.EmailCampaign{}
	for rows.Next() {
		c := &model.EmailCampaign{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Subject, &c.Status, &c.Recipients, &c.OpenRate, &c.ClickRate, &c.CreatedAt, &c.SentAt); err != nil {
			return nil, err
		}
		campaigns = append(campaigns, c)
	}
	return campaigns, rows.Err()
}

var _ CampaignRepositoryInterface = (*CampaignRepository)(nil)
