package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/JohnBartlett/bluejay-acct/internal/email"
	invoicedomain "github.com/JohnBartlett/bluejay-acct/internal/invoice/domain"
)

type invoiceItemRequest struct {
	Kind            string     `json:"kind"`
	Description     string     `json:"description"`
	LongDescription string     `json:"long_description"`
	Date            *time.Time `json:"date"`
	Hours           float64    `json:"hours"`
	HourlyRate      float64    `json:"hourly_rate"`
	Quantity        float64    `json:"quantity"`
	UnitPrice       float64    `json:"unit_price"`
	TaxRatePercent  float64    `json:"tax_rate_percent"`
}

type createInvoiceRequest struct {
	CustomerID string                     `json:"customer_id"`
	Number     string                     `json:"number"`
	Date       time.Time                  `json:"date"`
	DueDate    *time.Time                 `json:"due_date"`
	Taxes      invoicedomain.TaxSelection `json:"taxes"`
	Fee        invoicedomain.FeePolicy    `json:"fee"`
	Items      []invoiceItemRequest       `json:"items"`
	Notes      string                     `json:"notes"`
}

type updateInvoiceRequest struct {
	Number  *string                    `json:"number"`
	Status  *string                    `json:"status"`
	Date    *time.Time                 `json:"date"`
	DueDate *time.Time                 `json:"due_date"`
	Taxes   invoicedomain.TaxSelection `json:"taxes"`
	Fee     invoicedomain.FeePolicy    `json:"fee"`
	Items   []invoiceItemRequest       `json:"items"`
	Notes   *string                    `json:"notes"`
}

func toItemInputs(items []invoiceItemRequest) []invoicedomain.ItemInput {
	inputs := make([]invoicedomain.ItemInput, 0, len(items))
	for _, item := range items {
		inputs = append(inputs, invoicedomain.ItemInput{
			Kind:            invoicedomain.ItemKind(strings.ToUpper(strings.TrimSpace(item.Kind))),
			Description:     item.Description,
			LongDescription: item.LongDescription,
			Date:            item.Date,
			Hours:           item.Hours,
			HourlyRate:      item.HourlyRate,
			Quantity:        item.Quantity,
			UnitPrice:       item.UnitPrice,
			TaxRatePercent:  item.TaxRatePercent,
		})
	}
	return inputs
}

// @Summary      Create Invoice
// @Description  Create an invoice; totals are computed server-side
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        request body createInvoiceRequest true "Create Invoice Request"
// @Success      200  {object}  invoicedomain.Invoice
// @Router       /invoices [post]
func (s *Server) CreateInvoice(c *gin.Context) {
	var req createInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.invoiceSvc.Create(c.Request.Context(), invoicedomain.CreateRequest{
		CustomerID: strings.TrimSpace(req.CustomerID),
		Number:     strings.TrimSpace(req.Number),
		Date:       req.Date,
		DueDate:    req.DueDate,
		Taxes:      req.Taxes,
		Fee:        req.Fee,
		Items:      toItemInputs(req.Items),
		Notes:      req.Notes,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      List Invoices
// @Description  List invoices, optionally filtered by customer and status
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        customer_id  query     string  false  "Customer ID"
// @Param        status       query     string  false  "Status (DRAFT, SENT, PAID, OVERDUE or all)"
// @Success      200  {object}  []invoicedomain.Invoice
// @Router       /invoices [get]
func (s *Server) ListInvoices(c *gin.Context) {
	var query invoicedomain.ListRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.invoiceSvc.List(c.Request.Context(), query)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Get Invoice
// @Description  Get invoice by ID with items
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Invoice ID"
// @Success      200  {object}  invoicedomain.Invoice
// @Router       /invoices/{id} [get]
func (s *Server) GetInvoiceByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.invoiceSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Update Invoice
// @Description  Replace invoice fields and items; totals are recomputed
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        id      path  string                true  "Invoice ID"
// @Param        request body  updateInvoiceRequest  true  "Update Invoice Request"
// @Success      200  {object}  invoicedomain.Invoice
// @Router       /invoices/{id} [put]
func (s *Server) UpdateInvoice(c *gin.Context) {
	var req updateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	var status *invoicedomain.Status
	if req.Status != nil {
		st := invoicedomain.Status(strings.ToUpper(strings.TrimSpace(*req.Status)))
		status = &st
	}

	resp, err := s.invoiceSvc.Update(c.Request.Context(), invoicedomain.UpdateRequest{
		ID:      strings.TrimSpace(c.Param("id")),
		Number:  req.Number,
		Status:  status,
		Date:    req.Date,
		DueDate: req.DueDate,
		Taxes:   req.Taxes,
		Fee:     req.Fee,
		Items:   toItemInputs(req.Items),
		Notes:   req.Notes,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Delete Invoice
// @Description  Delete invoice and its items
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Invoice ID"
// @Success      200  {object}  map[string]string
// @Router       /invoices/{id} [delete]
func (s *Server) DeleteInvoice(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if err := s.invoiceSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Summary      Render Invoice PDF
// @Description  Render the invoice as a PDF using the named config profile
// @Tags         invoices
// @Produce      application/pdf
// @Param        id      path   string  true   "Invoice ID"
// @Param        config  query  string  false  "Config profile name"
// @Success      200  {file}  binary
// @Router       /invoices/{id}/pdf [get]
func (s *Server) RenderInvoicePDF(c *gin.Context) {
	if !s.pdfLimiter.Allow(c.ClientIP()) {
		AbortWithError(c, ErrTooManyRequests)
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	configName := strings.TrimSpace(c.Query("config"))

	pdf, err := s.invoiceSvc.RenderPDF(c.Request.Context(), id, configName)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "invoice-"+id+".pdf"))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

type emailInvoiceRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	Config  string `json:"config"`
}

// @Summary      Email Invoice
// @Description  Render the invoice PDF and hand it to the email sender
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        id      path  string               true  "Invoice ID"
// @Param        request body  emailInvoiceRequest  true  "Email Invoice Request"
// @Success      200  {object}  map[string]string
// @Router       /invoices/{id}/email [post]
func (s *Server) EmailInvoice(c *gin.Context) {
	var req emailInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	to := strings.TrimSpace(req.To)
	if to == "" || !strings.Contains(to, "@") {
		AbortWithError(c, newValidationError("to", "invalid_recipient", "invalid recipient address"))
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	pdf, err := s.invoiceSvc.RenderPDF(c.Request.Context(), id, strings.TrimSpace(req.Config))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	subject := strings.TrimSpace(req.Subject)
	if subject == "" {
		subject = "Your invoice"
	}
	err = s.emailSender.Send(c.Request.Context(), email.Message{
		To:             to,
		Subject:        subject,
		Body:           req.Body,
		Attachment:     pdf,
		AttachmentName: "invoice-" + id + ".pdf",
		InvoiceID:      id,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if err := s.invoiceSvc.MarkSent(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
