package repository

import (
	"database/sql"
	"time"

	"github.com/unclebandit/crm-backend/internal/db"
	"github.com/unclebandit/crm-backend/internal/model"
)

type CustomerCampaignRepositoryInterface interface {
	GetByID(id int) (*model.CustomerCampaign, error)
	ListByCustomer(customerID int) ([]*model.CustomerCampaign, error)
	ListByStatus(status model.CampaignStatus) ([]*model.CustomerCampaign, error)
	Create(c *model.CustomerCampaign) error
	UpdateStatus(id int, status model.CampaignStatus, reviewedAt time.Time) error
	DeleteByCustomer(customerID int) error
	WithTx(tx *sql.Tx) CustomerCampaignRepositoryInterface
}

type CustomerCampaignRepository struct {
	DB db.DBTX
}

func (r *CustomerCampaignRepository) WithTx(tx *sql.Tx) CustomerCampaignRepositoryInterface {
	if tx == nil {
		return r
	}
	return &CustomerCampaignRepository{DB: tx}
}

func (r *CustomerCampaignRepository) GetByID(id int) (*model.CustomerCampaign, error) {
	query := `SELECT id, customer_id, title, status, reviewed_at FROM customer_campaigns WHERE id=$1`
	var c model.CustomerCampaign
	err := r.DB.QueryRow(query, id).Scan(&c.ID, &c.CustomerID, &c.Title, &c.Status, &c.ReviewedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *CustomerCampaignRepository) Create(c *model.CustomerCampaign) error {
	if c.Status == "" {
		c.Status = model.CampaignPending
	}
	query := `
        INSERT INTO customer_campaigns (customer_id, title, status)
        VALUES ($1, $2, $3)
        RETURNING id
    `
	return r.DB.QueryRow(query, c.CustomerID, c.Title, c.Status).Scan(&c.ID)
}

func (r *CustomerCampaignRepository) UpdateStatus(id int, status model.CampaignStatus, reviewedAt time.Time) error {
	query := `UPDATE customer_campaigns SET status=$1, reviewed_at=$2 WHERE id=$3`
	_, err := r.DB.Exec(query, status, reviewedAt, id)
	return err
}

func (r *CustomerCampaignRepository) ListByCustomer(customerID int) ([]*model.CustomerCampaign, error) {
	return r.list(`WHERE customer_id=$1`, customerID)
}

func (r *CustomerCampaignRepository) ListByStatus(status model.CampaignStatus) ([]*model.CustomerCampaign, error) {
	return r.list(`WHERE status=$1`, status)
}

func (r *CustomerCampaignRepository) list(where string, arg any) ([]*model.CustomerCampaign, error) {
	query := `SELECT id, customer_id, title, status, reviewed_at FROM customer_campaigns ` + where + ` ORDER BY id ASC`
	rows, err := r.DB.Query(query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	campaigns := []*model.CustomerCampaign{}
	for rows.Next() {
		c := &model.CustomerCampaign{}
		if err := rows.Scan(&c.ID, &c.CustomerID, &c.Title, &c.Status, &c.ReviewedAt); err != nil {
			return nil, err
		}
		campaigns = append(campaigns, c)
	}
	return campaigns, rows.Err()
}

func (r *CustomerCampaignRepository) DeleteByCustomer(customerID int) error {
	_, err := r.DB.Exec(`DELETE FROM customer_campaigns WHERE customer_id=$1`, customerID)
	return err
}

var _ CustomerCampaignRepositoryInterface = (*CustomerCampaignRepository)(nil)
