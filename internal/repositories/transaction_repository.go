package repositories

import (
	"errors"
	"fmt"

	"fintrack/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
)

// transactionRepository implements TransactionRepositoryInterface
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) TransactionRepositoryInterface {
	return &transactionRepository{
		db: db,
	}
}

// Create persists a new transaction
func (r *transactionRepository) Create(transaction *models.Transaction) error {
	if err := r.db.Create(transaction).Error; err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// GetByID retrieves a transaction by ID. The lookup is by id alone, across
// all users; ownership is not checked here.
func (r *transactionRepository) GetByID(id uuid.UUID) (*models.Transaction, error) {
	transaction := &models.Transaction{}
	if err := r.db.First(transaction, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return transaction, nil
}

// ListByUser retrieves every transaction owned by userID in the given order.
// No pagination: the full matching set is returned.
func (r *transactionRepository) ListByUser(userID uuid.UUID, sort models.TransactionSort) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := r.db.Where("user_id = ?", userID).
		Order(string(sort)).
		Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return transactions, nil
}

// DeleteOwned deletes at most one transaction matching both id and owner.
// A zero-row result (wrong owner or nonexistent id) is a silent no-op, not
// an error; only an actual store fault is reported.
func (r *transactionRepository) DeleteOwned(userID, id uuid.UUID) error {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Transaction{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete transaction: %w", result.Error)
	}
	return nil
}

// ReplaceFields overwrites the given columns on the transaction identified
// by id alone, across all users. Returns ErrTransactionNotFound when no row
// matched.
func (r *transactionRepository) ReplaceFields(id uuid.UUID, fields map[string]interface{}) error {
	result := r.db.Model(&models.Transaction{}).
		Where("id = ?", id).
		Updates(fields)

	if result.Error != nil {
		return fmt.Errorf("failed to update transaction: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

// CategoryTotals aggregates amounts by category across all transactions in
// the store, ordered by total descending. The secondary category ordering
// keeps equal totals stable.
func (r *transactionRepository) CategoryTotals() ([]models.CategoryTotal, error) {
	var totals []models.CategoryTotal

	query := `
		SELECT
			category,
			COUNT(*) as transaction_count,
			SUM(amount) as total_amount
		FROM transactions
		GROUP BY category
		ORDER BY total_amount DESC, category ASC
	`

	if err := r.db.Raw(query).Scan(&totals).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate by category: %w", err)
	}

	return totals, nil
}
