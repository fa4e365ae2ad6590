package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/JohnBartlett/bluejay-acct/internal/company"
	companydomain "github.com/JohnBartlett/bluejay-acct/internal/company/domain"
	"github.com/JohnBartlett/bluejay-acct/internal/config"
	"github.com/JohnBartlett/bluejay-acct/internal/customer"
	customerdomain "github.com/JohnBartlett/bluejay-acct/internal/customer/domain"
	"github.com/JohnBartlett/bluejay-acct/internal/email"
	"github.com/JohnBartlett/bluejay-acct/internal/invoice"
	invoicedomain "github.com/JohnBartlett/bluejay-acct/internal/invoice/domain"
	"github.com/JohnBartlett/bluejay-acct/internal/invoiceconfig"
	configdomain "github.com/JohnBartlett/bluejay-acct/internal/invoiceconfig/domain"
	"github.com/JohnBartlett/bluejay-acct/internal/observability"
	"github.com/JohnBartlett/bluejay-acct/internal/report"
	"github.com/JohnBartlett/bluejay-acct/internal/seed"
	"github.com/JohnBartlett/bluejay-acct/internal/server"
	"github.com/JohnBartlett/bluejay-acct/internal/timetemplate"
	templatedomain "github.com/JohnBartlett/bluejay-acct/internal/timetemplate/domain"
	"github.com/JohnBartlett/bluejay-acct/pkg/db"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,

		fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
			err := conn.AutoMigrate(
				&customerdomain.Customer{},
				&companydomain.Company{},
				&invoicedomain.Invoice{},
				&invoicedomain.InvoiceItem{},
				&configdomain.ConfigDocument{},
				&templatedomain.TimeTemplate{},
			)
			if err != nil {
				return err
			}
			return seed.EnsureDefaults(conn, cfg)
		}),

		customer.Module,
		company.Module,
		invoiceconfig.Module,
		invoice.Module,
		report.Module,
		timetemplate.Module,
		email.Module,

		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
