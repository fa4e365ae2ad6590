package seed

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	companydomain "github.com/JohnBartlett/bluejay-acct/internal/company/domain"
	"github.com/JohnBartlett/bluejay-acct/internal/config"
	configdomain "github.com/JohnBartlett/bluejay-acct/internal/invoiceconfig/domain"
)

const (
	displayConfigName = "display"
	printConfigName   = "print"
)

// EnsureDefaults seeds the company profile and the two built-in render
// config documents on first startup. Existing rows are left untouched.
func EnsureDefaults(db *gorm.DB, cfg config.Config) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureCompanyTx(ctx, tx, node, cfg); err != nil {
			return err
		}
		if err := ensureConfigTx(ctx, tx, node, displayConfigName, configdomain.Default(), false); err != nil {
			return err
		}
		return ensureConfigTx(ctx, tx, node, printConfigName, configdomain.PrintDefault(), true)
	})
}

func ensureCompanyTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node, cfg config.Config) error {
	var company companydomain.Company
	err := tx.WithContext(ctx).Order("id ASC").First(&company).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	now := time.Now().UTC()
	company = companydomain.Company{
		ID:        node.Generate(),
		Name:      cfg.Seed.CompanyName,
		Email:     strings.ToLower(strings.TrimSpace(cfg.Seed.CompanyEmail)),
		CreatedAt: now,
		UpdatedAt: now,
	}
	return tx.WithContext(ctx).Create(&company).Error
}

func ensureConfigTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node, name string, value configdomain.Config, isDefault bool) error {
	var doc configdomain.ConfigDocument
	err := tx.WithContext(ctx).Where("name = ?", name).First(&doc).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	doc = configdomain.ConfigDocument{
		ID:        node.Generate(),
		Name:      name,
		IsDefault: isDefault,
		Document:  datatypes.JSON(raw),
		CreatedAt: now,
		UpdatedAt: now,
	}
	return tx.WithContext(ctx).Create(&doc).Error
}
