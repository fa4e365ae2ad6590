package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	customerdomain "github.com/JohnBartlett/bluejay-acct/internal/customer/domain"
	invoicedomain "github.com/JohnBartlett/bluejay-acct/internal/invoice/domain"
	reportdomain "github.com/JohnBartlett/bluejay-acct/internal/report/domain"
	"github.com/JohnBartlett/bluejay-acct/pkg/money"
)

func setupReportService(t *testing.T) (*Service, *gorm.DB, *snowflake.Node) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&customerdomain.Customer{}, &invoicedomain.Invoice{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake: %v", err)
	}
	return &Service{db: db, log: zap.NewNop()}, db, node
}

func insertInvoice(t *testing.T, db *gorm.DB, node *snowflake.Node, customerID snowflake.ID, number string, date time.Time, total money.Cents) {
	t.Helper()
	invoice := invoicedomain.Invoice{
		ID:            node.Generate(),
		Number:        number,
		CustomerID:    customerID,
		Date:          date,
		SubtotalCents: total,
		TotalCents:    total,
	}
	if err := db.Create(&invoice).Error; err != nil {
		t.Fatalf("insert invoice: %v", err)
	}
}

func TestMonthlyGroupsByMonth(t *testing.T) {
	svc, db, node := setupReportService(t)
	customer := customerdomain.Customer{ID: node.Generate(), Name: "Jane"}
	if err := db.Create(&customer).Error; err != nil {
		t.Fatalf("insert customer: %v", err)
	}

	jan := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	insertInvoice(t, db, node, customer.ID, "INV-1", jan, 10000)
	insertInvoice(t, db, node, customer.ID, "INV-2", jan.AddDate(0, 0, 5), 20000)
	insertInvoice(t, db, node, customer.ID, "INV-3", jan.AddDate(0, 2, 0), 5000)
	insertInvoice(t, db, node, customer.ID, "INV-4", jan.AddDate(1, 0, 0), 7000)

	rows, err := svc.Monthly(context.Background(), 2025)
	if err != nil {
		t.Fatalf("monthly: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 months, got %d", len(rows))
	}
	if rows[0].Month != "2025-01" || rows[0].InvoiceCount != 2 || rows[0].TotalCents != 30000 {
		t.Fatalf("january row: %+v", rows[0])
	}
	if rows[1].Month != "2025-03" || rows[1].TotalCents != 5000 {
		t.Fatalf("march row: %+v", rows[1])
	}
}

func TestMonthlyRejectsBadYear(t *testing.T) {
	svc, _, _ := setupReportService(t)
	if _, err := svc.Monthly(context.Background(), -3); !errors.Is(err, reportdomain.ErrInvalidYear) {
		t.Fatalf("expected ErrInvalidYear, got %v", err)
	}
}

func TestStatsCountsByStatus(t *testing.T) {
	svc, db, node := setupReportService(t)
	customer := customerdomain.Customer{ID: node.Generate(), Name: "Jane"}
	if err := db.Create(&customer).Error; err != nil {
		t.Fatalf("insert customer: %v", err)
	}

	date := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	statuses := map[string]struct {
		status invoicedomain.Status
		total  money.Cents
	}{
		"INV-20": {invoicedomain.StatusDraft, 10000},
		"INV-21": {invoicedomain.StatusSent, 20000},
		"INV-22": {invoicedomain.StatusPaid, 40000},
		"INV-23": {invoicedomain.StatusPaid, 5000},
		"INV-24": {invoicedomain.StatusOverdue, 8000},
	}
	for number, row := range statuses {
		insertInvoice(t, db, node, customer.ID, number, date, row.total)
		err := db.Model(&invoicedomain.Invoice{}).
			Where("number = ?", number).
			Update("status", row.status).Error
		if err != nil {
			t.Fatalf("set status: %v", err)
		}
	}

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalInvoices != 5 {
		t.Fatalf("total %d, want 5", stats.TotalInvoices)
	}
	if stats.DraftInvoices != 1 || stats.SentInvoices != 1 || stats.PaidInvoices != 2 || stats.OverdueInvoices != 1 {
		t.Fatalf("status counts: %+v", stats)
	}
	// Revenue counts paid invoices only.
	if stats.PaidRevenueCents != 45000 {
		t.Fatalf("paid revenue %d, want 45000", stats.PaidRevenueCents)
	}
}

func TestByCustomerOrdersByTotal(t *testing.T) {
	svc, db, node := setupReportService(t)
	small := customerdomain.Customer{ID: node.Generate(), Name: "Small"}
	big := customerdomain.Customer{ID: node.Generate(), Name: "Big"}
	for _, c := range []*customerdomain.Customer{&small, &big} {
		if err := db.Create(c).Error; err != nil {
			t.Fatalf("insert customer: %v", err)
		}
	}

	date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	insertInvoice(t, db, node, small.ID, "INV-10", date, 1000)
	insertInvoice(t, db, node, big.ID, "INV-11", date, 50000)
	insertInvoice(t, db, node, big.ID, "INV-12", date, 25000)

	rows, err := svc.ByCustomer(context.Background())
	if err != nil {
		t.Fatalf("by customer: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].CustomerName != "Big" || rows[0].InvoiceCount != 2 || rows[0].TotalCents != 75000 {
		t.Fatalf("first row: %+v", rows[0])
	}
	if rows[1].CustomerName != "Small" || rows[1].TotalCents != 1000 {
		t.Fatalf("second row: %+v", rows[1])
	}
}
