package handlers

import (
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"fintrack/internal/models"
	"fintrack/internal/render"
	"fintrack/internal/repositories"
	"fintrack/internal/services"
	"fintrack/internal/services/service_mocks"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

type TransactionHandlerTestSuite struct {
	suite.Suite
	echo         *echo.Echo
	ctrl         *gomock.Controller
	transactions *service_mocks.MockTransactionServiceInterface
	reports      *service_mocks.MockReportServiceInterface
	handler      *TransactionHandler
	userID       uuid.UUID
}

func TestTransactionHandlerSuite(t *testing.T) {
	suite.Run(t, new(TransactionHandlerTestSuite))
}

func (s *TransactionHandlerTestSuite) SetupTest() {
	s.echo = echo.New()

	renderer, err := render.New()
	s.Require().NoError(err)
	s.echo.Renderer = renderer

	s.ctrl = gomock.NewController(s.T())
	s.transactions = service_mocks.NewMockTransactionServiceInterface(s.ctrl)
	s.reports = service_mocks.NewMockReportServiceInterface(s.ctrl)
	s.handler = NewTransactionHandler(s.transactions, s.reports)
	s.userID = uuid.New()
}

func (s *TransactionHandlerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

// newContext builds an authenticated GET context
func (s *TransactionHandlerTestSuite) newContext(target string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	c.Set("user_id", s.userID)
	return c, rec
}

// newFormContext builds an authenticated POST context with form data
func (s *TransactionHandlerTestSuite) newFormContext(target string, form url.Values) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	c.Set("user_id", s.userID)
	return c, rec
}

// List

func (s *TransactionHandlerTestSuite) TestList_RendersItems() {
	description := gofakeit.Sentence(3)
	s.transactions.EXPECT().
		List(s.userID, "").
		Return([]models.Transaction{
			{ID: uuid.New(), UserID: s.userID, Description: description, Amount: 12.5, Category: "Food", Date: time.Now()},
		}, nil)

	c, rec := s.newContext("/transact")
	s.Require().NoError(s.handler.List(c))

	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), description)
	s.Contains(rec.Body.String(), "12.50")
}

func (s *TransactionHandlerTestSuite) TestList_PassesSortByThrough() {
	s.transactions.EXPECT().
		List(s.userID, "amount").
		Return([]models.Transaction{}, nil)

	c, rec := s.newContext("/transact?sortBy=amount")
	s.Require().NoError(s.handler.List(c))
	s.Equal(http.StatusOK, rec.Code)
}

func (s *TransactionHandlerTestSuite) TestList_RendersNaNAmount() {
	s.transactions.EXPECT().
		List(s.userID, "").
		Return([]models.Transaction{
			{ID: uuid.New(), UserID: s.userID, Description: "broken", Amount: math.NaN(), Category: "Food", Date: time.Now()},
		}, nil)

	c, rec := s.newContext("/transact")
	s.Require().NoError(s.handler.List(c))

	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "NaN")
}

func (s *TransactionHandlerTestSuite) TestList_ServiceFaultRendersErrorPage() {
	s.transactions.EXPECT().
		List(s.userID, "").
		Return(nil, errors.New("connection reset"))

	c, rec := s.newContext("/transact")
	s.Require().NoError(s.handler.List(c))
	s.Equal(http.StatusInternalServerError, rec.Code)
}

func (s *TransactionHandlerTestSuite) TestList_NoSessionRedirectsToLogin() {
	req := httptest.NewRequest(http.MethodGet, "/transact", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)

	s.Require().NoError(s.handler.List(c))
	s.Equal(http.StatusSeeOther, rec.Code)
	s.Equal("/login", rec.Header().Get(echo.HeaderLocation))
}

// Create

func (s *TransactionHandlerTestSuite) TestCreate_SuccessRedirectsToList() {
	s.transactions.EXPECT().
		Create(s.userID, services.TransactionInput{
			Description: "Lunch",
			Amount:      "9.95",
			Category:    "Food",
			Date:        "2026-05-01",
		}).
		Return(&models.Transaction{ID: uuid.New()}, nil)

	c, rec := s.newFormContext("/transact", url.Values{
		"description": {"Lunch"},
		"amount":      {"9.95"},
		"category":    {"Food"},
		"date":        {"2026-05-01"},
	})
	s.Require().NoError(s.handler.Create(c))

	s.Equal(http.StatusSeeOther, rec.Code)
	s.Equal("/transact", rec.Header().Get(echo.HeaderLocation))
}

func (s *TransactionHandlerTestSuite) TestCreate_ValidationFailureReRendersForm() {
	s.transactions.EXPECT().
		Create(s.userID, gomock.Any()).
		Return(nil, &services.ValidationError{Message: "All fields are required"})

	c, rec := s.newFormContext("/transact", url.Values{
		"description": {"Lunch"},
	})
	s.Require().NoError(s.handler.Create(c))

	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "All fields are required")
	// Submitted values come back into the form
	s.Contains(rec.Body.String(), "Lunch")
}

func (s *TransactionHandlerTestSuite) TestCreate_BadAmountMessage() {
	s.transactions.EXPECT().
		Create(s.userID, gomock.Any()).
		Return(nil, &services.ValidationError{Message: "Amount must be a number"})

	c, rec := s.newFormContext("/transact", url.Values{
		"description": {"Lunch"},
		"amount":      {"abc"},
		"category":    {"Food"},
		"date":        {"2026-05-01"},
	})
	s.Require().NoError(s.handler.Create(c))

	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "Amount must be a number")
}

func (s *TransactionHandlerTestSuite) TestCreate_StoreFaultRendersErrorPage() {
	s.transactions.EXPECT().
		Create(s.userID, gomock.Any()).
		Return(nil, errors.New("disk full"))

	c, rec := s.newFormContext("/transact", url.Values{
		"description": {"Lunch"},
		"amount":      {"9.95"},
		"category":    {"Food"},
		"date":        {"2026-05-01"},
	})
	s.Require().NoError(s.handler.Create(c))
	s.Equal(http.StatusInternalServerError, rec.Code)
}

// Delete

func (s *TransactionHandlerTestSuite) TestDelete_SuccessRedirects() {
	transactionID := uuid.New()
	s.transactions.EXPECT().Delete(s.userID, transactionID).Return(nil)

	c, rec := s.newContext("/transact/delete/" + transactionID.String())
	c.SetParamNames("id")
	c.SetParamValues(transactionID.String())

	s.Require().NoError(s.handler.Delete(c))
	s.Equal(http.StatusSeeOther, rec.Code)
	s.Equal("/transact", rec.Header().Get(echo.HeaderLocation))
}

func (s *TransactionHandlerTestSuite) TestDelete_MalformedID() {
	c, rec := s.newContext("/transact/delete/not-a-uuid")
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	s.Require().NoError(s.handler.Delete(c))
	s.Equal(http.StatusInternalServerError, rec.Code)
	s.Contains(rec.Body.String(), "Error deleting transaction")
}

func (s *TransactionHandlerTestSuite) TestDelete_StoreFault() {
	transactionID := uuid.New()
	s.transactions.EXPECT().Delete(s.userID, transactionID).Return(errors.New("connection reset"))

	c, rec := s.newContext("/transact/delete/" + transactionID.String())
	c.SetParamNames("id")
	c.SetParamValues(transactionID.String())

	s.Require().NoError(s.handler.Delete(c))
	s.Equal(http.StatusInternalServerError, rec.Code)
	s.Contains(rec.Body.String(), "Error deleting transaction")
}

// Edit

func (s *TransactionHandlerTestSuite) TestEdit_RendersForm() {
	transactionID := uuid.New()
	item := &models.Transaction{
		ID:          transactionID,
		UserID:      uuid.New(),
		Description: "Rent march",
		Amount:      1200,
		Category:    "Rent",
		Date:        time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	s.transactions.EXPECT().GetForEdit(transactionID).Return(item, nil)

	c, rec := s.newContext("/transact/edit/" + transactionID.String())
	c.SetParamNames("id")
	c.SetParamValues(transactionID.String())

	s.Require().NoError(s.handler.Edit(c))
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "Rent march")
	s.Contains(rec.Body.String(), transactionID.String())
}

func (s *TransactionHandlerTestSuite) TestEdit_MissingRecordRedirectsToList() {
	transactionID := uuid.New()
	s.transactions.EXPECT().GetForEdit(transactionID).Return(nil, repositories.ErrTransactionNotFound)

	c, rec := s.newContext("/transact/edit/" + transactionID.String())
	c.SetParamNames("id")
	c.SetParamValues(transactionID.String())

	s.Require().NoError(s.handler.Edit(c))
	s.Equal(http.StatusSeeOther, rec.Code)
	s.Equal("/transact", rec.Header().Get(echo.HeaderLocation))
}

func (s *TransactionHandlerTestSuite) TestEdit_MalformedIDRedirectsToList() {
	c, rec := s.newContext("/transact/edit/not-a-uuid")
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	s.Require().NoError(s.handler.Edit(c))
	s.Equal(http.StatusSeeOther, rec.Code)
	s.Equal("/transact", rec.Header().Get(echo.HeaderLocation))
}

// Update

func (s *TransactionHandlerTestSuite) TestUpdate_SuccessRedirects() {
	transactionID := uuid.New()
	s.transactions.EXPECT().
		Update(transactionID, services.TransactionInput{
			Description: "Rent april",
			Amount:      "1250",
			Category:    "Rent",
			Date:        "2026-04-01",
		}).
		Return(nil)

	c, rec := s.newFormContext("/transact/updateTransaction", url.Values{
		"id":          {transactionID.String()},
		"description": {"Rent april"},
		"amount":      {"1250"},
		"category":    {"Rent"},
		"date":        {"2026-04-01"},
	})
	s.Require().NoError(s.handler.Update(c))

	s.Equal(http.StatusSeeOther, rec.Code)
	s.Equal("/transact", rec.Header().Get(echo.HeaderLocation))
}

func (s *TransactionHandlerTestSuite) TestUpdate_MissingRecordIsAFailure() {
	// Asymmetric with Delete: a missing id here surfaces an error page
	transactionID := uuid.New()
	s.transactions.EXPECT().
		Update(transactionID, gomock.Any()).
		Return(repositories.ErrTransactionNotFound)

	c, rec := s.newFormContext("/transact/updateTransaction", url.Values{
		"id": {transactionID.String()},
	})
	s.Require().NoError(s.handler.Update(c))

	s.Equal(http.StatusInternalServerError, rec.Code)
	s.Contains(rec.Body.String(), "Error updating transaction")
}

func (s *TransactionHandlerTestSuite) TestUpdate_MalformedID() {
	c, rec := s.newFormContext("/transact/updateTransaction", url.Values{
		"id": {"not-a-uuid"},
	})
	s.Require().NoError(s.handler.Update(c))

	s.Equal(http.StatusInternalServerError, rec.Code)
	s.Contains(rec.Body.String(), "Error updating transaction")
}

// ByCategory

func (s *TransactionHandlerTestSuite) TestByCategory_RendersTotals() {
	s.transactions.EXPECT().
		CategoryTotals().
		Return([]models.CategoryTotal{
			{Category: "Rent", TransactionCount: 1, TotalAmount: 20},
			{Category: "Food", TransactionCount: 2, TotalAmount: 15},
		}, nil)

	c, rec := s.newContext("/transact/byCategory")
	s.Require().NoError(s.handler.ByCategory(c))

	s.Equal(http.StatusOK, rec.Code)
	body := rec.Body.String()
	s.Contains(body, "Rent")
	s.Contains(body, "Food")
	// Descending order: Rent's total appears first
	s.Less(strings.Index(body, "Rent"), strings.Index(body, "Food"))
}

func (s *TransactionHandlerTestSuite) TestByCategory_ServiceFault() {
	s.transactions.EXPECT().CategoryTotals().Return(nil, errors.New("connection reset"))

	c, rec := s.newContext("/transact/byCategory")
	s.Require().NoError(s.handler.ByCategory(c))
	s.Equal(http.StatusInternalServerError, rec.Code)
}

// Report

func (s *TransactionHandlerTestSuite) TestReport_RendersMonths() {
	s.reports.EXPECT().
		MonthlySpending(s.userID).
		Return([]services.MonthlySpend{
			{Month: "2026-01", Total: "30.00", TransactionCount: 2},
		}, nil)

	c, rec := s.newContext("/transact/report")
	s.Require().NoError(s.handler.Report(c))

	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "2026-01")
	s.Contains(rec.Body.String(), "30.00")
}
