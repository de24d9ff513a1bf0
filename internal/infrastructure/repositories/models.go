package repositories

import (
	"time"
)

// DBUser represents the database model for User (with GORM tags)
type DBUser struct {
	ID            string `gorm:"primaryKey;size:36"`
	Email         string `gorm:"uniqueIndex;size:255;not null"`
	PasswordHash  string `gorm:"column:password;not null"`
	FirstName     string `gorm:"size:50"`
	LastName      string `gorm:"size:50"`
	EmailVerified bool   `gorm:"not null;default:false"`
	LastLoginAt   *time.Time
	CreatedAt     time.Time `gorm:"index"`
	UpdatedAt     time.Time
}

// TableName returns the table name for GORM
func (DBUser) TableName() string {
	return "users"
}

// DBOneTimeCode is one row of the OTP ledger
type DBOneTimeCode struct {
	ID        string    `gorm:"primaryKey;size:36"`
	Email     string    `gorm:"index:idx_otp_lookup;size:255;not null"`
	Code      string    `gorm:"index:idx_otp_lookup;size:12;not null"`
	Purpose   string    `gorm:"index:idx_otp_lookup;size:32;not null"`
	ExpiresAt time.Time `gorm:"index;not null"`
	Used      bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"index"`
}

func (DBOneTimeCode) TableName() string {
	return "one_time_codes"
}

// DBRefreshSession is one row of the session ledger. TokenHash is the hex
// SHA-256 of the signed refresh token.
type DBRefreshSession struct {
	ID        string    `gorm:"primaryKey;size:36"`
	TokenHash string    `gorm:"uniqueIndex;size:64;not null"`
	UserID    string    `gorm:"index;size:36;not null"`
	ExpiresAt time.Time `gorm:"index;not null"`
	Revoked   bool      `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (DBRefreshSession) TableName() string {
	return "refresh_sessions"
}

// DBNote represents the database model for Note. Tags are stored as a JSON
// array in a text column.
type DBNote struct {
	ID        string    `gorm:"primaryKey;size:36"`
	UserID    string    `gorm:"index;size:36;not null"`
	Title     string    `gorm:"size:255;not null"`
	Content   string    `gorm:"type:text;not null"`
	Tags      []string  `gorm:"type:text;serializer:json"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

func (DBNote) TableName() string {
	return "notes"
}

// Models lists every table the service owns, in migration order.
func Models() []any {
	return []any{&DBUser{}, &DBOneTimeCode{}, &DBRefreshSession{}, &DBNote{}}
}
