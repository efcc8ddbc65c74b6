package models

import "time"

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:60;not null" json:"name"`
	Email     string    `gorm:"size:50;uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"size:60;not null" json:"-"`
	Token     *string   `gorm:"size:6;index" json:"-"`
	Confirmed bool      `gorm:"default:false;not null" json:"-"`
	Budgets   []Budget  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// SetToken stores a pending one-time token.
func (u *User) SetToken(token string) {
	u.Token = &token
}

// ClearToken marks the pending confirmation or reset as consumed.
func (u *User) ClearToken() {
	u.Token = nil
}
