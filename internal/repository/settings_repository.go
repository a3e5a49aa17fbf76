package repository

import (
	"database/sql"

	"github.com/unclebandit/crm-backend/internal/db"
	"github.com/unclebandit/crm-backend/internal/model"
)

// settingsID pins the singleton row.
const settingsID = 1

type SettingsRepositoryInterface interface {
	Get() (*model.Settings, error)
	Update(s *model.Settings) error
}

type SettingsRepository struct {
	DB db.DBTX
}

// Get returns the singleton settings row, creating it with empty JSON
// blobs on first read.
func (r *SettingsRepository) Get() (*model.Settings, error) {
	query := `SELECT id, general_settings, email_settings, security_settings FROM system_settings WHERE id=$1`
	var s model.Settings
	err := r.DB.QueryRow(query, settingsID).Scan(&s.ID, &s.GeneralSettings, &s.EmailSettings, &s.SecuritySettings)
	if err == nil {
		return &s, nil
	}
	if err != sql.ErrNoRows {
		return nil, err
	}

	s = model.Settings{
		ID:               settingsID,
		GeneralSettings:  "{}",
		EmailSettings:    "{}",
		SecuritySettings: "{}",
	}
	insert := `
        INSERT INTO system_settings (id, general_settings, email_settings, security_settings)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (id) DO NOTHING
    `
	if _, err := r.DB.Exec(insert, s.ID, s.GeneralSettings, s.EmailSettings, s.SecuritySettings); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SettingsRepository) Update(s *model.Settings) error {
	s.ID = settingsID
	query := `
        INSERT INTO system_settings (id, general_settings, email_settings, security_settings)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (id) DO UPDATE
        SET general_settings=EXCLUDED.general_settings,
            email_settings=EXCLUDED.email_settings,
            security_settings=EXCLUDED.security_settings
    `
	_, err := r.DB.Exec(query, s.ID, s.GeneralSettings, s.EmailSettings, s.SecuritySettings)
	return err
}

var _ SettingsRepositoryInterface = (*SettingsRepository)(nil)
