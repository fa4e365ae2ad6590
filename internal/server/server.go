package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	companydomain "github.com/JohnBartlett/bluejay-acct/internal/company/domain"
	"github.com/JohnBartlett/bluejay-acct/internal/config"
	customerdomain "github.com/JohnBartlett/bluejay-acct/internal/customer/domain"
	"github.com/JohnBartlett/bluejay-acct/internal/email"
	invoicedomain "github.com/JohnBartlett/bluejay-acct/internal/invoice/domain"
	configdomain "github.com/JohnBartlett/bluejay-acct/internal/invoiceconfig/domain"
	"github.com/JohnBartlett/bluejay-acct/internal/observability/logger"
	reportdomain "github.com/JohnBartlett/bluejay-acct/internal/report/domain"
	templatedomain "github.com/JohnBartlett/bluejay-acct/internal/timetemplate/domain"
)

// Server carries the HTTP handler dependencies. Handlers live in sibling
// files, one per resource.
type Server struct {
	cfg config.Config
	log *zap.Logger
	db  *gorm.DB

	customerSvc customerdomain.Service
	companySvc  companydomain.Service
	invoiceSvc  invoicedomain.Service
	configSvc   configdomain.Service
	reportSvc   reportdomain.Service
	templateSvc templatedomain.Service
	emailSender email.Sender

	pdfLimiter *rateLimiter
}

type ServerParam struct {
	fx.In

	Cfg config.Config
	Log *zap.Logger
	DB  *gorm.DB

	CustomerSvc customerdomain.Service
	CompanySvc  companydomain.Service
	InvoiceSvc  invoicedomain.Service
	ConfigSvc   configdomain.Service
	ReportSvc   reportdomain.Service
	TemplateSvc templatedomain.Service
	EmailSender email.Sender
}

func NewServer(p ServerParam) *Server {
	return &Server{
		cfg:         p.Cfg,
		log:         p.Log.Named("server"),
		db:          p.DB,
		customerSvc: p.CustomerSvc,
		companySvc:  p.CompanySvc,
		invoiceSvc:  p.InvoiceSvc,
		configSvc:   p.ConfigSvc,
		reportSvc:   p.ReportSvc,
		templateSvc: p.TemplateSvc,
		emailSender: p.EmailSender,
		pdfLimiter:  newRateLimiter(30, time.Minute),
	}
}

func NewEngine(cfg config.Config, log *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(logger.GinMiddleware(logger.MiddlewareConfig{
		Logger:    log,
		SkipPaths: []string{"/healthz"},
	}))
	return engine
}

func (s *Server) RegisterAPIRoutes(engine *gin.Engine) {
	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api")

	api.POST("/customers", s.CreateCustomer)
	api.GET("/customers", s.ListCustomers)
	api.GET("/customers/:id", s.GetCustomerByID)
	api.PATCH("/customers/:id", s.UpdateCustomer)
	api.DELETE("/customers/:id", s.DeleteCustomer)

	api.GET("/company", s.GetCompany)
	api.PUT("/company", s.UpdateCompany)

	api.POST("/invoices", s.CreateInvoice)
	api.GET("/invoices", s.ListInvoices)
	api.GET("/invoices/:id", s.GetInvoiceByID)
	api.PUT("/invoices/:id", s.UpdateInvoice)
	api.DELETE("/invoices/:id", s.DeleteInvoice)
	api.GET("/invoices/:id/pdf", s.RenderInvoicePDF)
	api.POST("/invoices/:id/email", s.EmailInvoice)

	api.GET("/invoice-configs", s.ListInvoiceConfigs)
	api.GET("/invoice-configs/:name", s.GetInvoiceConfig)
	api.PUT("/invoice-configs/:name", s.SaveInvoiceConfig)
	api.PATCH("/invoice-configs/:name", s.PatchInvoiceConfig)

	api.POST("/time-templates", s.CreateTimeTemplate)
	api.GET("/time-templates", s.ListTimeTemplates)
	api.PUT("/time-templates/:id", s.UpdateTimeTemplate)
	api.DELETE("/time-templates/:id", s.DeleteTimeTemplate)

	api.GET("/reports/monthly", s.GetMonthlyReport)
	api.GET("/reports/customers", s.GetCustomerReport)
	api.GET("/reports/stats", s.GetDashboardStats)

	api.POST("/test/cleanup", s.TestCleanup)
}

// RunHTTP starts the HTTP listener under the fx lifecycle.
func RunHTTP(lc fx.Lifecycle, cfg config.Config, log *zap.Logger, engine *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTP.Addr,
		Handler: engine,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", cfg.HTTP.Addr))
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}

var Module = fx.Options(
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(func(s *Server, engine *gin.Engine) {
		s.RegisterAPIRoutes(engine)
	}),
	fx.Invoke(RunHTTP),
)
