// internal/model/settings.go
package model

// Settings is the singleton system settings row (id fixed at 1) holding
// three opaque JSON blobs. Created lazily on first read.
type Settings struct {
	ID               int    `db:"id" json:"id"`
	GeneralSettings  string `db:"general_settings" json:"general_settings"`
	EmailSettings    string `db:"email_settings" json:"email_settings"`
	SecuritySettings string `db:"security_settings" json:"security_settings"`
}
