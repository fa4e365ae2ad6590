package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	companydomain "github.com/JohnBartlett/bluejay-acct/internal/company/domain"
	customerdomain "github.com/JohnBartlett/bluejay-acct/internal/customer/domain"
	invoicedomain "github.com/JohnBartlett/bluejay-acct/internal/invoice/domain"
	"github.com/JohnBartlett/bluejay-acct/internal/invoice/render"
	configdomain "github.com/JohnBartlett/bluejay-acct/internal/invoiceconfig/domain"
	reportdomain "github.com/JohnBartlett/bluejay-acct/internal/report/domain"
	templatedomain "github.com/JohnBartlett/bluejay-acct/internal/timetemplate/domain"
)

var (
	ErrNotFound        = errors.New("not_found")
	ErrTooManyRequests = errors.New("too_many_requests")
)

// ValidationError is a request-level failure tied to one field.
type ValidationError struct {
	Field   string `json:"field,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return e.Code
}

func invalidRequestError() error {
	return ValidationError{Code: "invalid_request", Message: "invalid request body"}
}

func newValidationError(field, code, message string) error {
	return ValidationError{Field: field, Code: code, Message: message}
}

var badRequestErrors = []error{
	customerdomain.ErrInvalidID,
	customerdomain.ErrInvalidName,
	customerdomain.ErrInvalidEmail,
	companydomain.ErrInvalidCompanyName,
	invoicedomain.ErrInvalidInvoiceID,
	invoicedomain.ErrInvalidCustomer,
	invoicedomain.ErrInvalidNumber,
	invoicedomain.ErrInvalidStatus,
	invoicedomain.ErrMissingItems,
	invoicedomain.ErrInvalidItemKind,
	configdomain.ErrInvalidConfig,
	configdomain.ErrInvalidName,
	reportdomain.ErrInvalidYear,
	templatedomain.ErrInvalidTemplateID,
	templatedomain.ErrInvalidDescription,
	render.ErrInvalidInvoice,
}

var notFoundErrors = []error{
	ErrNotFound,
	customerdomain.ErrCustomerNotFound,
	companydomain.ErrCompanyNotFound,
	invoicedomain.ErrInvoiceNotFound,
	configdomain.ErrNotFound,
	templatedomain.ErrTemplateNotFound,
}

// AbortWithError maps domain errors onto HTTP statuses and writes the shared
// error envelope. Unrecognized errors become opaque 500s; the cause goes to
// the log, not the client.
func AbortWithError(c *gin.Context, err error) {
	var validation ValidationError
	if errors.As(err, &validation) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": validation})
		return
	}

	for _, candidate := range badRequestErrors {
		if errors.Is(err, candidate) {
			abortWithCode(c, http.StatusBadRequest, candidate.Error())
			return
		}
	}
	for _, candidate := range notFoundErrors {
		if errors.Is(err, candidate) {
			abortWithCode(c, http.StatusNotFound, candidate.Error())
			return
		}
	}
	if errors.Is(err, ErrTooManyRequests) {
		abortWithCode(c, http.StatusTooManyRequests, ErrTooManyRequests.Error())
		return
	}

	zap.L().Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	abortWithCode(c, http.StatusInternalServerError, "internal_error")
}

func abortWithCode(c *gin.Context, status int, code string) {
	c.AbortWithStatusJSON(status, gin.H{"error": gin.H{"code": code}})
}
