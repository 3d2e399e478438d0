package services

import (
	"math"

	"fintrack/internal/models"
	"fintrack/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const monthLayout = "2006-01"

// MonthlySpend is one month bucket of a user's spending report. Total is
// pre-formatted to two decimal places for display.
type MonthlySpend struct {
	Month            string `json:"month"`
	Total            string `json:"total"`
	TransactionCount int    `json:"transaction_count"`
}

// reportService implements ReportServiceInterface
type reportService struct {
	repo repositories.TransactionRepositoryInterface
}

// NewReportService creates a new report service
func NewReportService(repo repositories.TransactionRepositoryInterface) ReportServiceInterface {
	return &reportService{
		repo: repo,
	}
}

// MonthlySpending buckets the user's transactions by calendar month in
// chronological order and sums amounts per bucket. Records carrying the NaN
// amount sentinel left by unvalidated updates are excluded from totals but
// still counted. Sums are rounded with decimals for display so float
// accumulation error never reaches the page.
func (s *reportService) MonthlySpending(userID uuid.UUID) ([]MonthlySpend, error) {
	transactions, err := s.repo.ListByUser(userID, models.SortByDateAsc)
	if err != nil {
		return nil, err
	}

	type bucket struct {
		total decimal.Decimal
		count int
	}

	var months []string
	buckets := make(map[string]*bucket)

	for i := range transactions {
		t := &transactions[i]
		month := t.Date.Format(monthLayout)

		b, ok := buckets[month]
		if !ok {
			b = &bucket{}
			buckets[month] = b
			months = append(months, month)
		}

		b.count++
		if !math.IsNaN(t.Amount) && !math.IsInf(t.Amount, 0) {
			b.total = b.total.Add(decimal.NewFromFloat(t.Amount))
		}
	}

	report := make([]MonthlySpend, 0, len(months))
	for _, month := range months {
		b := buckets[month]
		report = append(report, MonthlySpend{
			Month:            month,
			Total:            b.total.Round(2).StringFixed(2),
			TransactionCount: b.count,
		})
	}

	return report, nil
}
