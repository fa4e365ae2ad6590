package server

import (
	"encoding/csv"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	reportdomain "github.com/JohnBartlett/bluejay-acct/internal/report/domain"
)

// @Summary      Monthly Report
// @Description  Aggregate invoice totals per month for one year
// @Tags         reports
// @Accept       json
// @Produce      json
// @Param        year    query  int     false  "Year (defaults to current)"
// @Param        format  query  string  false  "Set to csv for CSV export"
// @Success      200  {object}  []reportdomain.MonthlySummary
// @Router       /reports/monthly [get]
func (s *Server) GetMonthlyReport(c *gin.Context) {
	year := time.Now().UTC().Year()
	if raw := strings.TrimSpace(c.Query("year")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			AbortWithError(c, newValidationError("year", "invalid_year", "invalid year"))
			return
		}
		year = parsed
	}

	resp, err := s.reportSvc.Monthly(c.Request.Context(), year)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if c.Query("format") == "csv" {
		writeMonthlyCSV(c, resp)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Customer Report
// @Description  Aggregate invoice totals per customer
// @Tags         reports
// @Accept       json
// @Produce      json
// @Success      200  {object}  []reportdomain.CustomerSummary
// @Router       /reports/customers [get]
func (s *Server) GetCustomerReport(c *gin.Context) {
	resp, err := s.reportSvc.ByCustomer(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Dashboard Stats
// @Description  Invoice counts per status plus paid revenue
// @Tags         reports
// @Accept       json
// @Produce      json
// @Success      200  {object}  reportdomain.StatusSummary
// @Router       /reports/stats [get]
func (s *Server) GetDashboardStats(c *gin.Context) {
	resp, err := s.reportSvc.Stats(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func writeMonthlyCSV(c *gin.Context, rows []reportdomain.MonthlySummary) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="monthly.csv"`)

	w := csv.NewWriter(c.Writer)
	_ = w.Write([]string{"month", "invoice_count", "subtotal", "tax", "fee", "total"})
	for _, row := range rows {
		_ = w.Write([]string{
			row.Month,
			strconv.FormatInt(row.InvoiceCount, 10),
			row.SubtotalCents.String(),
			row.TaxCents.String(),
			row.FeeCents.String(),
			row.TotalCents.String(),
		})
	}
	w.Flush()
}
