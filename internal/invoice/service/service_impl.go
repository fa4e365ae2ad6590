package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	companydomain "github.com/JohnBartlett/bluejay-acct/internal/company/domain"
	customerdomain "github.com/JohnBartlett/bluejay-acct/internal/customer/domain"
	invoicedomain "github.com/JohnBartlett/bluejay-acct/internal/invoice/domain"
	"github.com/JohnBartlett/bluejay-acct/internal/invoice/render"
	configdomain "github.com/JohnBartlett/bluejay-acct/internal/invoiceconfig/domain"
)

type Service struct {
	db  *gorm.DB
	log *zap.Logger

	genID     *snowflake.Node
	configSvc configdomain.Service
	renderer  render.Renderer
}

type ServiceParam struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	GenID     *snowflake.Node
	ConfigSvc configdomain.Service
	Renderer  render.Renderer
}

func NewService(p ServiceParam) invoicedomain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("invoice.service"),
		genID:     p.GenID,
		configSvc: p.ConfigSvc,
		renderer:  p.Renderer,
	}
}

func (s *Service) Create(ctx context.Context, req invoicedomain.CreateRequest) (*invoicedomain.Invoice, error) {
	number := strings.TrimSpace(req.Number)
	if number == "" {
		return nil, invoicedomain.ErrInvalidNumber
	}
	if len(req.Items) == 0 {
		return nil, invoicedomain.ErrMissingItems
	}

	customerID, err := parseID(req.CustomerID)
	if err != nil {
		return nil, invoicedomain.ErrInvalidCustomer
	}
	exists, err := s.customerExists(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, invoicedomain.ErrInvalidCustomer
	}

	items, err := s.buildItems(req.Items)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	invoice := invoicedomain.Invoice{
		ID:             s.genID.Generate(),
		Number:         number,
		CustomerID:     customerID,
		Status:         invoicedomain.StatusDraft,
		Date:           req.Date,
		DueDate:        req.DueDate,
		TaxGeneral:     req.Taxes.General,
		TaxTime:        req.Taxes.Time,
		TaxService:     req.Taxes.Service,
		TaxProduct:     req.Taxes.Product,
		CardFeeEnabled: req.Fee.Enabled,
		CardFeePercent: req.Fee.Percent,
		Notes:          strings.TrimSpace(req.Notes),
		Items:          items,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	for i := range invoice.Items {
		invoice.Items[i].InvoiceID = invoice.ID
	}

	totals := invoicedomain.ComputeTotals(invoice.Items, invoice.TaxSelection(), invoice.FeePolicy())
	totals.Apply(&invoice)

	if err := s.db.WithContext(ctx).Create(&invoice).Error; err != nil {
		return nil, err
	}

	s.log.Info("invoice created",
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("number", invoice.Number),
		zap.Int64("total_cents", int64(invoice.TotalCents)),
	)
	return &invoice, nil
}

// Update replaces the invoice's mutable fields and always recomputes the
// totals from scratch. Items are replaced wholesale; there is no per-item
// patching.
func (s *Service) Update(ctx context.Context, req invoicedomain.UpdateRequest) (*invoicedomain.Invoice, error) {
	invoice, err := s.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if len(req.Items) == 0 {
		return nil, invoicedomain.ErrMissingItems
	}

	if req.Number != nil {
		number := strings.TrimSpace(*req.Number)
		if number == "" {
			return nil, invoicedomain.ErrInvalidNumber
		}
		invoice.Number = number
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, invoicedomain.ErrInvalidStatus
		}
		invoice.Status = *req.Status
	}
	if req.Date != nil {
		invoice.Date = *req.Date
	}
	if req.DueDate != nil {
		invoice.DueDate = req.DueDate
	}
	if req.Notes != nil {
		invoice.Notes = strings.TrimSpace(*req.Notes)
	}
	invoice.TaxGeneral = req.Taxes.General
	invoice.TaxTime = req.Taxes.Time
	invoice.TaxService = req.Taxes.Service
	invoice.TaxProduct = req.Taxes.Product
	invoice.CardFeeEnabled = req.Fee.Enabled
	invoice.CardFeePercent = req.Fee.Percent

	items, err := s.buildItems(req.Items)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].InvoiceID = invoice.ID
	}
	invoice.Items = items
	invoice.UpdatedAt = time.Now().UTC()

	totals := invoicedomain.ComputeTotals(invoice.Items, invoice.TaxSelection(), invoice.FeePolicy())
	totals.Apply(invoice)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_id = ?", invoice.ID).Delete(&invoicedomain.InvoiceItem{}).Error; err != nil {
			return err
		}
		return tx.Save(invoice).Error
	})
	if err != nil {
		return nil, err
	}
	return invoice, nil
}

func (s *Service) List(ctx context.Context, req invoicedomain.ListRequest) ([]invoicedomain.Invoice, error) {
	query := s.db.WithContext(ctx).Model(&invoicedomain.Invoice{}).Preload("Items")
	if raw := strings.TrimSpace(req.CustomerID); raw != "" {
		customerID, err := parseID(raw)
		if err != nil {
			return nil, invoicedomain.ErrInvalidCustomer
		}
		query = query.Where("customer_id = ?", customerID)
	}
	if raw := strings.ToUpper(strings.TrimSpace(req.Status)); raw != "" && raw != "ALL" {
		status := invoicedomain.Status(raw)
		if !status.Valid() {
			return nil, invoicedomain.ErrInvalidStatus
		}
		query = query.Where("status = ?", status)
	}

	var invoices []invoicedomain.Invoice
	if err := query.Order("date DESC, id DESC").Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

func (s *Service) GetByID(ctx context.Context, rawID string) (*invoicedomain.Invoice, error) {
	id, err := parseID(rawID)
	if err != nil {
		return nil, invoicedomain.ErrInvalidInvoiceID
	}

	var invoice invoicedomain.Invoice
	err = s.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		First(&invoice, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invoicedomain.ErrInvoiceNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

func (s *Service) Delete(ctx context.Context, rawID string) error {
	id, err := parseID(rawID)
	if err != nil {
		return invoicedomain.ErrInvalidInvoiceID
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_id = ?", id).Delete(&invoicedomain.InvoiceItem{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&invoicedomain.Invoice{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return invoicedomain.ErrInvoiceNotFound
		}
		return nil
	})
}

// MarkSent flips the invoice to SENT and stamps the delivery time. It runs
// after the email sender accepted the message, never before.
func (s *Service) MarkSent(ctx context.Context, rawID string) error {
	id, err := parseID(rawID)
	if err != nil {
		return invoicedomain.ErrInvalidInvoiceID
	}

	now := time.Now().UTC()
	result := s.db.WithContext(ctx).
		Model(&invoicedomain.Invoice{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":        invoicedomain.StatusSent,
			"email_sent_at": now,
			"updated_at":    now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return invoicedomain.ErrInvoiceNotFound
	}

	s.log.Info("invoice marked sent", zap.String("invoice_id", id.String()))
	return nil
}

// RenderPDF assembles the render input (invoice, customer, company profile)
// plus the named config document and hands off to the renderer.
func (s *Service) RenderPDF(ctx context.Context, rawID, configName string) ([]byte, error) {
	invoice, err := s.GetByID(ctx, rawID)
	if err != nil {
		return nil, err
	}

	var customer customerdomain.Customer
	if err := s.db.WithContext(ctx).First(&customer, "id = ?", invoice.CustomerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invoicedomain.ErrInvalidCustomer
		}
		return nil, err
	}

	var company companydomain.Company
	if err := s.db.WithContext(ctx).Order("id ASC").First(&company).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, companydomain.ErrCompanyNotFound
		}
		return nil, err
	}

	cfg, err := s.configSvc.Resolve(ctx, configName)
	if err != nil {
		return nil, err
	}

	pdf, doc, err := s.renderer.RenderPDF(renderInput(invoice, &customer, &company), cfg)
	if err != nil {
		return nil, err
	}

	s.log.Info("invoice rendered",
		zap.String("invoice_id", invoice.ID.String()),
		zap.Int("pages", doc.PageCount),
		zap.Int("bytes", len(pdf)),
	)
	return pdf, nil
}

func (s *Service) buildItems(inputs []invoicedomain.ItemInput) ([]invoicedomain.InvoiceItem, error) {
	items := make([]invoicedomain.InvoiceItem, 0, len(inputs))
	for i, in := range inputs {
		if !in.Kind.Valid() {
			return nil, invoicedomain.ErrInvalidItemKind
		}
		items = append(items, invoicedomain.InvoiceItem{
			ID:              s.genID.Generate(),
			Position:        i,
			Kind:            in.Kind,
			Description:     strings.TrimSpace(in.Description),
			LongDescription: strings.TrimSpace(in.LongDescription),
			Date:            in.Date,
			Hours:           in.Hours,
			HourlyRate:      in.HourlyRate,
			Quantity:        in.Quantity,
			UnitPrice:       in.UnitPrice,
			TaxRatePercent:  in.TaxRatePercent,
		})
	}
	return items, nil
}

func (s *Service) customerExists(ctx context.Context, id snowflake.ID) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&customerdomain.Customer{}).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func renderInput(invoice *invoicedomain.Invoice, customer *customerdomain.Customer, company *companydomain.Company) render.RenderInput {
	items := make([]render.ItemView, 0, len(invoice.Items))
	for _, item := range invoice.Items {
		items = append(items, render.ItemView{
			Kind:            item.Kind,
			Description:     item.Description,
			LongDescription: item.LongDescription,
			Date:            item.Date,
			Hours:           item.Hours,
			HourlyRate:      item.HourlyRate,
			Quantity:        item.Quantity,
			UnitPrice:       item.UnitPrice,
			Amount:          item.AmountCents,
		})
	}

	return render.RenderInput{
		Company: &render.CompanyView{
			Name:    company.Name,
			Address: company.Address,
			Email:   company.Email,
			Phone:   company.Phone,
		},
		Customer: &render.CustomerView{
			Name:    customer.Name,
			Address: customer.Address,
			Email:   customer.Email,
			Phone:   customer.Phone,
		},
		Invoice: render.InvoiceView{
			Number:   invoice.Number,
			Date:     invoice.Date,
			DueDate:  invoice.DueDate,
			Subtotal: invoice.SubtotalCents,
			Tax:      invoice.TaxCents,
			Fee:      invoice.FeeCents,
			Total:    invoice.TotalCents,
			Notes:    invoice.Notes,
		},
		Items: items,
	}
}

func parseID(value string) (snowflake.ID, error) {
	return snowflake.ParseString(strings.TrimSpace(value))
}
