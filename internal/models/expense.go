package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Expense struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Name      string          `gorm:"size:100;not null" json:"name"`
	Amount    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	BudgetID  uint            `gorm:"not null;index" json:"budgetId"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}
