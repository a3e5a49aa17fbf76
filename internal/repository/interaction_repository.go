package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/unclebandit/crm-backend/internal/db"
	"github.com/unclebandit/crm-backend/internal/model"
)

// DailyCount is one day bucket of the interaction trend query.
type DailyCount struct {
	Day   time.Time
	Count int
}

type InteractionRepositoryInterface interface {
	GetByID(id int) (*model.Interaction, error)
	ListByCustomer(customerID int, interactionType, search string, offset, limit int) ([]*model.Interaction, int, error)
	ListByStatus(status model.InteractionStatus, offset, limit int) ([]*model.Interaction, int, error)
	CountByCustomer(customerID int) (int, error)
	CountAll() (int, error)
	CountByTypeForCustomer(customerID int) (map[string]int, error)
	CountPerDay(customerID int, since time.Time) ([]DailyCount, error)
	Create(i *model.Interaction) error
	UpdateStatus(id int, status model.InteractionStatus) error
	DeleteByCustomer(customerID int) error
	WithTx(tx *sql.Tx) InteractionRepositoryInterface
}

type InteractionRepository struct {
	DB db.DBTX
}

const interactionColumns = `id, customer_id, type, subject, date, status, notes`

func (r *InteractionRepository) WithTx(tx *sql.Tx) InteractionRepositoryInterface {
	if tx == nil {
		return r
	}
	return &InteractionRepository{DB: tx}
}

func (r *InteractionRepository) GetByID(id int) (*model.Interaction, error) {
	query := `SELECT ` + interactionColumns + ` FROM interactions WHERE id=$1`
	var i model.Interaction
	err := r.DB.QueryRow(query, id).Scan(
		&i.ID, &i.CustomerID, &i.Type, &i.Subject, &i.Date, &i.Status, &i.Notes,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &i, nil
}

func (r *InteractionRepository) Create(i *model.Interaction) error {
	if i.Date.IsZero() {
		i.Date = time.Now()
	}
	if i.Status == "" {
		i.Status = model.InteractionPending
	}
	query := `
        INSERT INTO interactions (customer_id, type, subject, date, status, notes)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id
    `
	return r.DB.QueryRow(query, i.CustomerID, i.Type, i.Subject, i.Date, i.Status, i.Notes).Scan(&i.ID)
}

func (r *InteractionRepository) UpdateStatus(id int, status model.InteractionStatus) error {
	query := `UPDATE interactions SET status=$1 WHERE id=$2`
	_, err := r.DB.Exec(query, status, id)
	return err
}

func (r *InteractionRepository) ListByCustomer(customerID int, interactionType, search string, offset, limit int) ([]*model.Interaction, int, error) {
	where := ` WHERE customer_id=$1`
	args := []any{customerID}
	argPos := 2

	if interactionType != "" && interactionType != "all" {
		where += fmt.Sprintf(` AND type=$%d`, argPos)
		args = append(args, interactionType)
		argPos++
	}
	if search != "" {
		where += fmt.Sprintf(` AND (subject ILIKE $%d OR notes ILIKE $%d)`, argPos, argPos)
		args = append(args, "%"+search+"%")
		argPos++
	}
	return r.list(where, args, argPos, offset, limit)
}

func (r *InteractionRepository) ListByStatus(status model.InteractionStatus, offset, limit int) ([]*model.Interaction, int, error) {
	return r.list(` WHERE status=$1`, []any{status}, 2, offset, limit)
}

func (r *InteractionRepository) list(where string, args []any, argPos, offset, limit int) ([]*model.Interaction, int, error) {
	interactions := []*model.Interaction{}
	query := `SELECT ` + interactionColumns + ` FROM interactions` + where +
		fmt.Sprintf(` ORDER BY date DESC LIMIT $%d OFFSET $%d`, argPos, argPos+1)

	rows, err := r.DB.Query(query, append(append([]any{}, args...), limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	for rows.Next() {
		i := &model.Interaction{}
		if err := rows.Scan(&i.ID, &i.CustomerID, &i.Type, &i.Subject, &i.Date, &i.Status, &i.Notes); err != nil {
			return nil, 0, err
		}
		interactions = append(interactions, i)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.DB.QueryRow(`SELECT COUNT(*) FROM interactions`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	return interactions, total, nil
}

func (r *InteractionRepository) CountByCustomer(customerID int) (int, error) {
	var count int
	err := r.DB.QueryRow(`SELECT COUNT(*) FROM interactions WHERE customer_id=$1`, customerID).Scan(&count)
	return count, err
}

func (r *InteractionRepository) CountAll() (int, error) {
	var count int
	err := r.DB.QueryRow(`SELECT COUNT(*) FROM interactions`).Scan(&count)
	return count, err
}

func (r *InteractionRepository) CountByTypeForCustomer(customerID int) (map[string]int, error) {
	query := `SELECT type, COUNT(*) FROM interactions WHERE customer_id=$1 GROUP BY type`
	rows, err := r.DB.Query(query, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byType := map[string]int{}
	for rows.Next() {
		var t string
		var count int
		if err := rows.Scan(&t, &count); err != nil {
			return nil, err
		}
		byType[t] = count
	}
	return byType, rows.Err()
}

// CountPerDay buckets a customer's interactions by calendar day since
// the given cutoff. Days with no interactions are simply absent.
func (r *InteractionRepository) CountPerDay(customerID int, since time.Time) ([]DailyCount, error) {
	query := `
        SELECT date_trunc('day', date)::date AS day, COUNT(*)
        FROM interactions
        WHERE customer_id=$1 AND date >= $2
        GROUP BY day
        ORDER BY day ASC
    `
	rows, err := r.DB.Query(query, customerID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := []DailyCount{}
	for rows.Next() {
		var d DailyCount
		if err := rows.Scan(&d.Day, &d.Count); err != nil {
			return nil, err
		}
		counts = append(counts, d)
	}
	return counts, rows.Err()
}

func (r *InteractionRepository) DeleteByCustomer(customerID int) error {
	_, err := r.DB.Exec(`DELETE FROM interactions WHERE customer_id=$1`, customerID)
	return err
}

var _ InteractionRepositoryInterface = (*InteractionRepository)(nil)
