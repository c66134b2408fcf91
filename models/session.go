package models

import (
	"time"

	"gorm.io/datatypes"
)

// SessionData is the payload stored alongside a session id.
type SessionData struct {
	Username string    `json:"username"`
	Role     string    `json:"role"`
	IssuedAt time.Time `json:"issuedAt"`
}

type Session struct {
	SID    string                           `json:"sid" db:"sid" gorm:"column:sid;type:varchar(255);primaryKey"`
	Sess   datatypes.JSONType[SessionData] `json:"sess" db:"sess" gorm:"not null"`
	Expire time.Time                        `json:"expire" db:"expire" gorm:"not null;index:idx_session_expire"`
}
