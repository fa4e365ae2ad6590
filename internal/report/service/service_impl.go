package service

import (
	"context"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	reportdomain "github.com/JohnBartlett/bluejay-acct/internal/report/domain"
)

type Service struct {
	db  *gorm.DB
	log *zap.Logger
}

type ServiceParam struct {
	fx.In

	DB  *gorm.DB
	Log *zap.Logger
}

func NewService(p ServiceParam) reportdomain.Service {
	return &Service{
		db:  p.DB,
		log: p.Log.Named("report.service"),
	}
}

func (s *Service) Monthly(ctx context.Context, year int) ([]reportdomain.MonthlySummary, error) {
	if year < 1970 || year > 9999 {
		return nil, reportdomain.ErrInvalidYear
	}

	var rows []reportdomain.MonthlySummary
	err := s.db.WithContext(ctx).Raw(
		`SELECT strftime('%Y-%m', date) AS month,
		        COUNT(*) AS invoice_count,
		        COALESCE(SUM(subtotal_cents), 0) AS subtotal_cents,
		        COALESCE(SUM(tax_cents), 0) AS tax_cents,
		        COALESCE(SUM(fee_cents), 0) AS fee_cents,
		        COALESCE(SUM(total_cents), 0) AS total_cents
		 FROM invoices
		 WHERE strftime('%Y', date) = ?
		 GROUP BY strftime('%Y-%m', date)
		 ORDER BY month ASC`,
		fmt.Sprintf("%04d", year),
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Stats folds the whole invoices table into one summary row. Revenue counts
// paid invoices only; draft and sent totals are outstanding, not earned.
func (s *Service) Stats(ctx context.Context) (*reportdomain.StatusSummary, error) {
	var row reportdomain.StatusSummary
	err := s.db.WithContext(ctx).Raw(
		`SELECT COUNT(*) AS total_invoices,
		        COALESCE(SUM(CASE WHEN status = 'DRAFT' THEN 1 ELSE 0 END), 0) AS draft_invoices,
		        COALESCE(SUM(CASE WHEN status = 'SENT' THEN 1 ELSE 0 END), 0) AS sent_invoices,
		        COALESCE(SUM(CASE WHEN status = 'PAID' THEN 1 ELSE 0 END), 0) AS paid_invoices,
		        COALESCE(SUM(CASE WHEN status = 'OVERDUE' THEN 1 ELSE 0 END), 0) AS overdue_invoices,
		        COALESCE(SUM(CASE WHEN status = 'PAID' THEN total_cents ELSE 0 END), 0) AS paid_revenue_cents
		 FROM invoices`,
	).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *Service) ByCustomer(ctx context.Context) ([]reportdomain.CustomerSummary, error) {
	var rows []reportdomain.CustomerSummary
	err := s.db.WithContext(ctx).Raw(
		`SELECT i.customer_id AS customer_id,
		        c.name AS customer_name,
		        COUNT(*) AS invoice_count,
		        COALESCE(SUM(i.total_cents), 0) AS total_cents
		 FROM invoices i
		 JOIN customers c ON c.id = i.customer_id
		 GROUP BY i.customer_id, c.name
		 ORDER BY total_cents DESC`,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
