package services

import (
	"time"

	"fintrack/internal/models"

	"github.com/google/uuid"
)

// TransactionServiceInterface owns all reads and writes against the
// transaction store: ownership scoping, input validation, sort selection,
// and category aggregation.
type TransactionServiceInterface interface {
	List(userID uuid.UUID, sortBy string) ([]models.Transaction, error)
	Create(userID uuid.UUID, input TransactionInput) (*models.Transaction, error)
	Delete(userID, transactionID uuid.UUID) error
	GetForEdit(transactionID uuid.UUID) (*models.Transaction, error)
	Update(transactionID uuid.UUID, input TransactionInput) error
	CategoryTotals() ([]models.CategoryTotal, error)
}

// ReportServiceInterface produces per-user spending reports
type ReportServiceInterface interface {
	MonthlySpending(userID uuid.UUID) ([]MonthlySpend, error)
}

// AuthServiceInterface handles registration and credential verification
type AuthServiceInterface interface {
	Register(email, name, password string) (*models.User, error)
	Login(email, password string) (*models.User, error)
}

// TokenServiceInterface issues and validates session tokens
type TokenServiceInterface interface {
	Generate(user *models.User) (string, time.Time, error)
	Validate(token string) (*SessionClaims, error)
}

// MetricsRecorderInterface records domain metrics
type MetricsRecorderInterface interface {
	RecordTransactionMutation(operation, status string)
	RecordTransactionList(sortBy string)
	RecordAggregation(status string)
	RecordAuthEvent(event, status string)
}
