package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/repositories"
	"fintrack/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// TransactionHandler handles the transaction CRUD and aggregation routes
type TransactionHandler struct {
	transactions services.TransactionServiceInterface
	reports      services.ReportServiceInterface
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(
	transactions services.TransactionServiceInterface,
	reports services.ReportServiceInterface,
) *TransactionHandler {
	return &TransactionHandler{
		transactions: transactions,
		reports:      reports,
	}
}

// List renders the caller's transactions. The optional sortBy query
// parameter selects amount-descending order when it equals "amount";
// any other value falls back to date ascending.
func (h *TransactionHandler) List(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return c.Redirect(http.StatusSeeOther, "/login")
	}

	sortBy := c.QueryParam("sortBy")

	items, err := h.transactions.List(userID, sortBy)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.Render(http.StatusOK, "transactions", map[string]interface{}{
		"Title":  "Transactions",
		"Items":  items,
		"SortBy": sortBy,
		"Form":   services.TransactionInput{},
	})
}

// Create validates and persists a submitted transaction. A validation
// failure re-renders the form with the message and the submitted values;
// success redirects to the list.
func (h *TransactionHandler) Create(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return c.Redirect(http.StatusSeeOther, "/login")
	}

	input := services.TransactionInput{
		Description: c.FormValue("description"),
		Amount:      c.FormValue("amount"),
		Category:    c.FormValue("category"),
		Date:        c.FormValue("date"),
	}

	if _, err := h.transactions.Create(userID, input); err != nil {
		if ve, ok := services.IsValidationError(err); ok {
			return c.Render(http.StatusOK, "transactForm", map[string]interface{}{
				"Title": "Add transaction",
				"Error": ve.Message,
				"Form":  input,
			})
		}
		return SendSystemError(c, err)
	}

	return c.Redirect(http.StatusSeeOther, "/transact")
}

// Delete removes the caller's transaction by id. A nonexistent id, or an id
// owned by someone else, deletes nothing; the caller is redirected to the
// list either way.
func (h *TransactionHandler) Delete(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return c.Redirect(http.StatusSeeOther, "/login")
	}

	transactionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, apperrors.TransactionDeleteFailed)
	}

	if err := h.transactions.Delete(userID, transactionID); err != nil {
		return SendError(c, apperrors.TransactionDeleteFailed)
	}

	return c.Redirect(http.StatusSeeOther, "/transact")
}

// Edit renders the edit form for a single transaction. The lookup is by id
// across all users. A missing or malformed id falls back to the list
// instead of an error page.
func (h *TransactionHandler) Edit(c echo.Context) error {
	if _, err := getUserIDFromContext(c); err != nil {
		return c.Redirect(http.StatusSeeOther, "/login")
	}

	transactionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		slog.Warn("edit requested with malformed id", "id", c.Param("id"))
		return c.Redirect(http.StatusSeeOther, "/transact")
	}

	item, err := h.transactions.GetForEdit(transactionID)
	if err != nil {
		slog.Warn("edit target not found", "transaction_id", transactionID, "error", err.Error())
		return c.Redirect(http.StatusSeeOther, "/transact")
	}

	return c.Render(http.StatusOK, "transactEdit", map[string]interface{}{
		"Title": "Edit transaction",
		"Item":  item,
	})
}

// Update replaces the mutable fields of the transaction identified by the
// body id, across all users and without validation. A missing record is a
// failure here, unlike Delete's silent no-op.
func (h *TransactionHandler) Update(c echo.Context) error {
	if _, err := getUserIDFromContext(c); err != nil {
		return c.Redirect(http.StatusSeeOther, "/login")
	}

	transactionID, err := uuid.Parse(c.FormValue("id"))
	if err != nil {
		return SendError(c, apperrors.TransactionUpdateFailed)
	}

	input := services.TransactionInput{
		Description: c.FormValue("description"),
		Amount:      c.FormValue("amount"),
		Category:    c.FormValue("category"),
		Date:        c.FormValue("date"),
	}

	if err := h.transactions.Update(transactionID, input); err != nil {
		if errors.Is(err, repositories.ErrTransactionNotFound) {
			return SendError(c, apperrors.TransactionUpdateFailed)
		}
		return SendSystemError(c, err)
	}

	return c.Redirect(http.StatusSeeOther, "/transact")
}

// ByCategory renders amounts grouped by category across all users in the
// store, ordered by total descending.
func (h *TransactionHandler) ByCategory(c echo.Context) error {
	if _, err := getUserIDFromContext(c); err != nil {
		return c.Redirect(http.StatusSeeOther, "/login")
	}

	results, err := h.transactions.CategoryTotals()
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.Render(http.StatusOK, "transGroupByCat", map[string]interface{}{
		"Title":   "By category",
		"Results": results,
	})
}

// Report renders the caller's monthly spending report
func (h *TransactionHandler) Report(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return c.Redirect(http.StatusSeeOther, "/login")
	}

	report, err := h.reports.MonthlySpending(userID)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.Render(http.StatusOK, "report", map[string]interface{}{
		"Title":  "Monthly report",
		"Report": report,
	})
}
