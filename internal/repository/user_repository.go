package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/unclebandit/crm-backend/internal/db"
	"github.com/unclebandit/crm-backend/internal/model"
)

// MonthlyCount is one (year, month) bucket of the customer growth query.
type MonthlyCount struct {
	Year  int
	Month int
	Count int
}

type UserRepositoryInterface interface {
	GetByID(id int) (*model.User, error)
	GetByUsername(username string) (*model.User, error)
	ListByRole(role model.Role, offset, limit int) ([]*model.User, int, error)
	ListByRoleAndStatus(role model.Role, status model.UserStatus, offset, limit int) ([]*model.User, int, error)
	CountByRole(role model.Role) (int, error)
	CountByRoleAndStatus(role model.Role, status model.UserStatus) (int, error)
	CountCustomersByMonth() ([]MonthlyCount, error)
	Create(u *model.User) error
	Update(u *model.User) error
	UpdateStatus(id int, status model.UserStatus) error
	UpdatePassword(id int, passwordHash string) error
	Delete(id int) error
	WithTx(tx *sql.Tx) UserRepositoryInterface
}

type UserRepository struct {
	DB db.DBTX
}

const userColumns = `id, username, password_hash, email, role, status, join_date,
        age, address, phone, national_id, department, position, bio`

func scanUser(row interface{ Scan(dest ...any) error }) (*model.User, error) {
	var u model.User
	err := row.Scan(
		&u.ID, &u.Username, &u.PasswordHash, &u.Email, &u.Role, &u.Status, &u.JoinDate,
		&u.Age, &u.Address, &u.Phone, &u.NationalID, &u.Department, &u.Position, &u.Bio,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) WithTx(tx *sql.Tx) UserRepositoryInterface {
	if tx == nil {
		return r
	}
	return &UserRepository{DB: tx}
}

func (r *UserRepository) GetByID(id int) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id=$1`
	u, err := scanUser(r.DB.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // not found
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) GetByUsername(username string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username=$1`
	u, err := scanUser(r.DB.QueryRow(query, username))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) Create(u *model.User) error {
	if u.JoinDate.IsZero() {
		u.JoinDate = time.Now()
	}
	query := `
        INSERT INTO users (username, password_hash, email, role, status, join_date,
            age, address, phone, national_id, department, position, bio)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
        RETURNING id
    `
	return r.DB.QueryRow(query,
		u.Username, u.PasswordHash, u.Email, u.Role, u.Status, u.JoinDate,
		u.Age, u.Address, u.Phone, u.NationalID, u.Department, u.Position, u.Bio,
	).Scan(&u.ID)
}

func (r *UserRepository) Update(u *model.User) error {
	query := `
        UPDATE users
        SET username=$1, email=$2, status=$3, age=$4, address=$5, phone=$6,
            national_id=$7, department=$8, position=$9, bio=$10
        WHERE id=$11
    `
	_, err := r.DB.Exec(query,
		u.Username, u.Email, u.Status, u.Age, u.Address, u.Phone,
		u.NationalID, u.Department, u.Position, u.Bio, u.ID,
	)
	return err
}

func (r *UserRepository) UpdateStatus(id int, status model.UserStatus) error {
	query := `UPDATE users SET status=$1 WHERE id=$2`
	_, err := r.DB.Exec(query, status, id)
	return err
}

func (r *UserRepository) UpdatePassword(id int, passwordHash string) error {
	query := `UPDATE users SET password_hash=$1 WHERE id=$2`
	_, err := r.DB.Exec(query, passwordHash, id)
	return err
}

func (r *UserRepository) Delete(id int) error {
	_, err := r.DB.Exec(`DELETE FROM users WHERE id=$1`, id)
	return err
}

func (r *UserRepository) ListByRole(role model.Role, offset, limit int) ([]*model.User, int, error) {
	return r.list(` WHERE role=$1`, []any{role}, offset, limit)
}

func (r *UserRepository) ListByRoleAndStatus(role model.Role, status model.UserStatus, offset, limit int) ([]*model.User, int, error) {
	return r.list(` WHERE role=$1 AND status=$2`, []any{role, status}, offset, limit)
}

func (r *UserRepository) list(where string, args []any, offset, limit int) ([]*model.User, int, error) {
	users := []*model.User{}
	argPos := len(args) + 1
	query := `SELECT ` + userColumns + ` FROM users` + where +
		fmt.Sprintf(` ORDER BY id ASC LIMIT $%d OFFSET $%d`, argPos, argPos+1)

	rows, err := r.DB.Query(query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.DB.QueryRow(`SELECT COUNT(*) FROM users`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *UserRepository) CountByRole(role model.Role) (int, error) {
	var count int
	err := r.DB.QueryRow(`SELECT COUNT(*) FROM users WHERE role=$1`, role).Scan(&count)
	return count, err
}

func (r *UserRepository) CountByRoleAndStatus(role model.Role, status model.UserStatus) (int, error) {
	var count int
	err := r.DB.QueryRow(
		`SELECT COUNT(*) FROM users WHERE role=$1 AND status=$2`, role, status,
	).Scan(&count)
	return count, err
}

// CountCustomersByMonth groups customer join dates by (year, month),
// ordered ascending. The cumulative sum happens in the service.
func (r *UserRepository) CountCustomersByMonth() ([]MonthlyCount, error) {
	query := `
        SELECT EXTRACT(YEAR FROM join_date)::int AS year,
               EXTRACT(MONTH FROM join_date)::int AS month,
               COUNT(id)
        FROM users
        WHERE role=$1
        GROUP BY year, month
        ORDER BY year, month
    `
	rows, err := r.DB.Query(query, model.RoleCustomer)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := []MonthlyCount{}
	for rows.Next() {
		var m MonthlyCount
		if err := rows.Scan(&m.Year, &m.Month, &m.Count); err != nil {
			return nil, err
		}
		counts = append(counts, m)
	}
	return counts, rows.Err()
}

var _ UserRepositoryInterface = (*UserRepository)(nil)
