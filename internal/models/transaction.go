package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrMissingOwner = errors.New("transaction owner is required")
)

// TransactionSort selects the ordering of a user's transaction listing.
// Only two orderings exist: "amount" requests sort by amount descending,
// every other value (including an explicit "date") sorts by date ascending.
type TransactionSort string

const (
	SortByAmountDesc TransactionSort = "amount DESC, created_at ASC"
	SortByDateAsc    TransactionSort = "date ASC, created_at ASC"
)

// SortFromParam maps the sortBy query parameter to a listing order.
func SortFromParam(sortBy string) TransactionSort {
	if sortBy == "amount" {
		return SortByAmountDesc
	}
	return SortByDateAsc
}

// Transaction is a single user-owned financial record.
//
// Amount is a float64 rather than a fixed-point type: the update path applies
// no validation and stores the not-a-number sentinel for non-numeric input,
// which a decimal type cannot represent.
type Transaction struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Description string    `gorm:"type:text" json:"description"`
	Amount      float64   `json:"amount"`
	Category    string    `gorm:"type:varchar(100);index" json:"category"`
	Date        time.Time `gorm:"index" json:"date"`
	CreatedAt   time.Time `gorm:"not null;index" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`

	// Associations
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// BeforeCreate hook for Transaction
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}

	// Set timestamps if not already set (for tests)
	now := time.Now()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = now
	}

	if t.UserID == uuid.Nil {
		return ErrMissingOwner
	}

	return nil
}

// TableName returns the table name for Transaction
func (t *Transaction) TableName() string {
	return "transactions"
}
