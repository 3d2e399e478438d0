package services

import (
	"errors"
	"log/slog"
	"math"
	"strconv"
	"time"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/repositories"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// ValidationError is a recoverable input error carrying the message shown
// back to the user on the submission form.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsValidationError reports whether err is a ValidationError and returns it
func IsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// TransactionInput carries the raw form fields of a create or update
// submission. Amount and Date stay strings until the service decides how,
// and whether, to parse them.
type TransactionInput struct {
	Description string
	Amount      string
	Category    string
	Date        string
}

// transactionService implements TransactionServiceInterface
type transactionService struct {
	repo    repositories.TransactionRepositoryInterface
	metrics MetricsRecorderInterface
}

// NewTransactionService creates a new transaction service
func NewTransactionService(repo repositories.TransactionRepositoryInterface, metrics MetricsRecorderInterface) TransactionServiceInterface {
	return &transactionService{
		repo:    repo,
		metrics: metrics,
	}
}

// List returns every transaction owned by userID. sortBy == "amount" sorts
// by amount descending; any other value, including an explicit "date",
// falls back to date ascending.
func (s *transactionService) List(userID uuid.UUID, sortBy string) ([]models.Transaction, error) {
	s.metrics.RecordTransactionList(sortBy)
	return s.repo.ListByUser(userID, models.SortFromParam(sortBy))
}

// Create validates the submitted fields in order, short-circuiting on the
// first failure, and persists a new transaction owned by userID. The amount
// is stored as the parsed numeric value, not the original text.
func (s *transactionService) Create(userID uuid.UUID, input TransactionInput) (*models.Transaction, error) {
	if input.Description == "" || input.Amount == "" || input.Category == "" || input.Date == "" {
		s.metrics.RecordTransactionMutation("create", "rejected")
		return nil, &ValidationError{Message: apperrors.GetErrorMessage(apperrors.ValidationFieldsRequired)}
	}

	amount, err := strconv.ParseFloat(input.Amount, 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
		s.metrics.RecordTransactionMutation("create", "rejected")
		return nil, &ValidationError{Message: apperrors.GetErrorMessage(apperrors.ValidationAmountNotNumber)}
	}

	date, err := time.Parse(dateLayout, input.Date)
	if err != nil {
		s.metrics.RecordTransactionMutation("create", "rejected")
		return nil, &ValidationError{Message: apperrors.GetErrorMessage(apperrors.ValidationInvalidDate)}
	}

	transaction := &models.Transaction{
		UserID:      userID,
		Description: input.Description,
		Amount:      amount,
		Category:    input.Category,
		Date:        date,
	}

	if err := s.repo.Create(transaction); err != nil {
		s.metrics.RecordTransactionMutation("create", "error")
		return nil, err
	}

	s.metrics.RecordTransactionMutation("create", "ok")
	return transaction, nil
}

// Delete removes the transaction only when it both exists and belongs to
// userID. A miss on either condition is a silent no-op from the caller's
// perspective.
func (s *transactionService) Delete(userID, transactionID uuid.UUID) error {
	if err := s.repo.DeleteOwned(userID, transactionID); err != nil {
		s.metrics.RecordTransactionMutation("delete", "error")
		return err
	}
	s.metrics.RecordTransactionMutation("delete", "ok")
	return nil
}

// GetForEdit fetches the transaction by id alone. Ownership is not checked
// on the edit path.
func (s *transactionService) GetForEdit(transactionID uuid.UUID) (*models.Transaction, error) {
	return s.repo.GetByID(transactionID)
}

// Update replaces the mutable fields of the transaction identified by id
// alone; ownership is not checked on this path either. Unlike Create, no
// field validation is applied: empty strings are written as-is, a
// non-numeric amount is stored as NaN, and an unparseable date is stored as
// the zero time. Returns repositories.ErrTransactionNotFound when the id
// does not resolve.
func (s *transactionService) Update(transactionID uuid.UUID, input TransactionInput) error {
	amount, err := strconv.ParseFloat(input.Amount, 64)
	if err != nil {
		amount = math.NaN()
	}

	date, err := time.Parse(dateLayout, input.Date)
	if err != nil {
		date = time.Time{}
	}

	fields := map[string]interface{}{
		"description": input.Description,
		"amount":      amount,
		"category":    input.Category,
		"date":        date,
		"updated_at":  time.Now(),
	}

	if err := s.repo.ReplaceFields(transactionID, fields); err != nil {
		if errors.Is(err, repositories.ErrTransactionNotFound) {
			s.metrics.RecordTransactionMutation("update", "not_found")
		} else {
			s.metrics.RecordTransactionMutation("update", "error")
		}
		return err
	}

	s.metrics.RecordTransactionMutation("update", "ok")
	return nil
}

// CategoryTotals aggregates amounts by category across the whole store,
// not scoped to a single user, ordered by total descending.
func (s *transactionService) CategoryTotals() ([]models.CategoryTotal, error) {
	totals, err := s.repo.CategoryTotals()
	if err != nil {
		s.metrics.RecordAggregation("error")
		return nil, err
	}

	s.metrics.RecordAggregation("ok")
	slog.Debug("category aggregation computed", "categories", len(totals))
	return totals, nil
}
