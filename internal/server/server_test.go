package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	companydomain "github.com/JohnBartlett/bluejay-acct/internal/company/domain"
	companyservice "github.com/JohnBartlett/bluejay-acct/internal/company/service"
	"github.com/JohnBartlett/bluejay-acct/internal/config"
	customerdomain "github.com/JohnBartlett/bluejay-acct/internal/customer/domain"
	customerservice "github.com/JohnBartlett/bluejay-acct/internal/customer/service"
	"github.com/JohnBartlett/bluejay-acct/internal/email"
	invoicedomain "github.com/JohnBartlett/bluejay-acct/internal/invoice/domain"
	"github.com/JohnBartlett/bluejay-acct/internal/invoice/render"
	invoiceservice "github.com/JohnBartlett/bluejay-acct/internal/invoice/service"
	configdomain "github.com/JohnBartlett/bluejay-acct/internal/invoiceconfig/domain"
	configservice "github.com/JohnBartlett/bluejay-acct/internal/invoiceconfig/service"
	reportservice "github.com/JohnBartlett/bluejay-acct/internal/report/service"
	templatedomain "github.com/JohnBartlett/bluejay-acct/internal/timetemplate/domain"
	templateservice "github.com/JohnBartlett/bluejay-acct/internal/timetemplate/service"
)

func setupTestServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&customerdomain.Customer{},
		&companydomain.Company{},
		&invoicedomain.Invoice{},
		&invoicedomain.InvoiceItem{},
		&configdomain.ConfigDocument{},
		&templatedomain.TimeTemplate{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake: %v", err)
	}

	log := zap.NewNop()
	cfg := config.Config{Environment: "test"}
	renderer := render.NewRenderer(log)
	configSvc := configservice.NewService(configservice.ServiceParam{DB: db, Log: log, GenID: node})

	srv := NewServer(ServerParam{
		Cfg:         cfg,
		Log:         log,
		DB:          db,
		CustomerSvc: customerservice.NewService(customerservice.ServiceParam{DB: db, Log: log, GenID: node}),
		CompanySvc:  companyservice.NewService(companyservice.ServiceParam{DB: db, Log: log, GenID: node}),
		InvoiceSvc: invoiceservice.NewService(invoiceservice.ServiceParam{
			DB: db, Log: log, GenID: node, ConfigSvc: configSvc, Renderer: renderer,
		}),
		ConfigSvc:   configSvc,
		ReportSvc:   reportservice.NewService(reportservice.ServiceParam{DB: db, Log: log}),
		TemplateSvc: templateservice.NewService(templateservice.ServiceParam{DB: db, Log: log, GenID: node}),
		EmailSender: email.NewLogSender(log),
	})

	engine := gin.New()
	srv.RegisterAPIRoutes(engine)
	return engine, db
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func createTestCustomer(t *testing.T, engine *gin.Engine) string {
	t.Helper()
	w := doJSON(t, engine, http.MethodPost, "/api/customers", map[string]any{
		"name":  "jane doe",
		"email": "jane@example.test",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("create customer status %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Data struct {
			ID snowflake.ID `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return resp.Data.ID.String()
}

func createTestInvoice(t *testing.T, engine *gin.Engine, customerID string) string {
	t.Helper()
	w := doJSON(t, engine, http.MethodPost, "/api/invoices", map[string]any{
		"customer_id": customerID,
		"number":      fmt.Sprintf("INV-%d", time.Now().UnixNano()),
		"date":        "2025-05-01T00:00:00Z",
		"taxes":       map[string]any{"general": "CA"},
		"items": []map[string]any{
			{"kind": "service", "description": "Consulting", "quantity": 1, "unit_price": 250},
		},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("create invoice status %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Data struct {
			ID snowflake.ID `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return resp.Data.ID.String()
}

func TestInvoiceLifecycleOverHTTP(t *testing.T) {
	engine, _ := setupTestServer(t)
	customerID := createTestCustomer(t, engine)
	invoiceID := createTestInvoice(t, engine, customerID)

	w := doJSON(t, engine, http.MethodGet, "/api/invoices/"+invoiceID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get invoice status %d", w.Code)
	}
	var got struct {
		Data struct {
			SubtotalCents int64 `json:"subtotal_cents"`
			TaxCents      int64 `json:"tax_cents"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Data.SubtotalCents != 25000 {
		t.Fatalf("subtotal %d", got.Data.SubtotalCents)
	}
	// CA 7.25% of 250.00 = 18.13 rounded.
	if got.Data.TaxCents != 1813 {
		t.Fatalf("tax %d", got.Data.TaxCents)
	}

	w = doJSON(t, engine, http.MethodDelete, "/api/invoices/"+invoiceID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete status %d", w.Code)
	}
	w = doJSON(t, engine, http.MethodGet, "/api/invoices/"+invoiceID, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", w.Code)
	}
}

func TestCreateInvoiceRejectsUnknownCustomer(t *testing.T) {
	engine, _ := setupTestServer(t)

	w := doJSON(t, engine, http.MethodPost, "/api/invoices", map[string]any{
		"customer_id": "12345",
		"number":      "INV-X",
		"date":        "2025-05-01T00:00:00Z",
		"items": []map[string]any{
			{"kind": "service", "description": "Consulting", "quantity": 1, "unit_price": 250},
		},
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestRenderInvoicePDFOverHTTP(t *testing.T) {
	engine, _ := setupTestServer(t)
	customerID := createTestCustomer(t, engine)
	invoiceID := createTestInvoice(t, engine, customerID)

	w := doJSON(t, engine, http.MethodPut, "/api/company", map[string]any{
		"name":  "Acme Studio",
		"email": "billing@acme.test",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("update company status %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, engine, http.MethodGet, "/api/invoices/"+invoiceID+"/pdf", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("render status %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("content type %q", ct)
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")) {
		t.Fatal("body is not a PDF")
	}
}

func TestInvoiceConfigEndpoints(t *testing.T) {
	engine, _ := setupTestServer(t)

	w := doJSON(t, engine, http.MethodPut, "/api/invoice-configs/display", map[string]any{
		"config": configdomain.Default(),
	})
	if w.Code != http.StatusOK {
		t.Fatalf("save config status %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, engine, http.MethodPatch, "/api/invoice-configs/display", map[string]any{
		"path":  "layout.margin",
		"value": 25,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("patch config status %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, engine, http.MethodPatch, "/api/invoice-configs/display", map[string]any{
		"path":  "layout.pageSize",
		"value": "tabloid",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid patch, got %d", w.Code)
	}

	w = doJSON(t, engine, http.MethodGet, "/api/invoice-configs/missing", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown config, got %d", w.Code)
	}
}

func TestEmailInvoiceMarksSent(t *testing.T) {
	engine, _ := setupTestServer(t)
	customerID := createTestCustomer(t, engine)
	invoiceID := createTestInvoice(t, engine, customerID)

	w := doJSON(t, engine, http.MethodPut, "/api/company", map[string]any{
		"name":  "Acme Studio",
		"email": "billing@acme.test",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("update company status %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, engine, http.MethodPost, "/api/invoices/"+invoiceID+"/email", map[string]any{
		"to": "jane@example.test",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("email status %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, engine, http.MethodGet, "/api/invoices/"+invoiceID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get invoice status %d", w.Code)
	}
	var got struct {
		Data struct {
			Status      string  `json:"status"`
			EmailSentAt *string `json:"email_sent_at"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Data.Status != "SENT" {
		t.Fatalf("status %q, want SENT", got.Data.Status)
	}
	if got.Data.EmailSentAt == nil {
		t.Fatal("email_sent_at not stamped")
	}

	// The sent invoice now shows up under the status filter.
	w = doJSON(t, engine, http.MethodGet, "/api/invoices?status=SENT", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list status %d", w.Code)
	}
	var list struct {
		Data []struct {
			ID snowflake.ID `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list.Data) != 1 || list.Data[0].ID.String() != invoiceID {
		t.Fatalf("expected just the emailed invoice, got %d rows", len(list.Data))
	}
}

func TestTimeTemplateEndpoints(t *testing.T) {
	engine, _ := setupTestServer(t)

	w := doJSON(t, engine, http.MethodPost, "/api/time-templates", map[string]any{
		"description": "Consulting",
		"hourly_rate": 150,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("create template status %d: %s", w.Code, w.Body.String())
	}
	var created struct {
		Data struct {
			ID snowflake.ID `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	templateID := created.Data.ID.String()

	w = doJSON(t, engine, http.MethodPost, "/api/time-templates", map[string]any{
		"description": "",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for blank description, got %d", w.Code)
	}

	w = doJSON(t, engine, http.MethodPut, "/api/time-templates/"+templateID, map[string]any{
		"description": "Consulting (remote)",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("update template status %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, engine, http.MethodGet, "/api/time-templates", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list templates status %d", w.Code)
	}
	var list struct {
		Data []struct {
			Description string   `json:"description"`
			HourlyRate  *float64 `json:"hourly_rate"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list.Data) != 1 || list.Data[0].Description != "Consulting (remote)" {
		t.Fatalf("list: %+v", list.Data)
	}
	if list.Data[0].HourlyRate != nil {
		t.Fatalf("rate should clear when omitted on update, got %v", *list.Data[0].HourlyRate)
	}

	w = doJSON(t, engine, http.MethodDelete, "/api/time-templates/"+templateID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete template status %d", w.Code)
	}
	w = doJSON(t, engine, http.MethodDelete, "/api/time-templates/"+templateID, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", w.Code)
	}
}

func TestDashboardStatsOverHTTP(t *testing.T) {
	engine, _ := setupTestServer(t)
	customerID := createTestCustomer(t, engine)
	invoiceID := createTestInvoice(t, engine, customerID)

	w := doJSON(t, engine, http.MethodPut, "/api/invoices/"+invoiceID, map[string]any{
		"status": "paid",
		"taxes":  map[string]any{},
		"items": []map[string]any{
			{"kind": "service", "description": "Consulting", "quantity": 1, "unit_price": 250},
		},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("update status %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, engine, http.MethodGet, "/api/reports/stats", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("stats status %d: %s", w.Code, w.Body.String())
	}
	var got struct {
		Data struct {
			TotalInvoices    int64 `json:"total_invoices"`
			PaidInvoices     int64 `json:"paid_invoices"`
			PaidRevenueCents int64 `json:"paid_revenue_cents"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Data.TotalInvoices != 1 || got.Data.PaidInvoices != 1 {
		t.Fatalf("counts: %+v", got.Data)
	}
	if got.Data.PaidRevenueCents != 25000 {
		t.Fatalf("paid revenue %d, want 25000", got.Data.PaidRevenueCents)
	}
}

func TestMonthlyReportOverHTTP(t *testing.T) {
	engine, _ := setupTestServer(t)
	customerID := createTestCustomer(t, engine)
	createTestInvoice(t, engine, customerID)

	w := doJSON(t, engine, http.MethodGet, "/api/reports/monthly?year=2025", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("report status %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Data []struct {
			Month        string `json:"month"`
			InvoiceCount int64  `json:"invoice_count"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Data) != 1 || resp.Data[0].Month != "2025-05" {
		t.Fatalf("report rows: %+v", resp.Data)
	}
}

func TestRateLimiter(t *testing.T) {
	limiter := newRateLimiter(2, time.Minute)
	if !limiter.Allow("a") || !limiter.Allow("a") {
		t.Fatal("first two requests should pass")
	}
	if limiter.Allow("a") {
		t.Fatal("third request should be limited")
	}
	if !limiter.Allow("b") {
		t.Fatal("other keys are independent")
	}
}
