package repositories

import (
	"fintrack/internal/models"

	"github.com/google/uuid"
)

// TransactionRepositoryInterface defines the contract for transaction
// repository operations. These six operations are the entire dependency
// surface on the store.
type TransactionRepositoryInterface interface {
	Create(transaction *models.Transaction) error
	GetByID(id uuid.UUID) (*models.Transaction, error)
	ListByUser(userID uuid.UUID, sort models.TransactionSort) ([]models.Transaction, error)
	DeleteOwned(userID, id uuid.UUID) error
	ReplaceFields(id uuid.UUID, fields map[string]interface{}) error
	CategoryTotals() ([]models.CategoryTotal, error)
}

// UserRepositoryInterface defines the contract for user repository operations
type UserRepositoryInterface interface {
	Create(user *models.User) error
	GetByID(id uuid.UUID) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
}
