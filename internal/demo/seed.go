package demo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ayoolabs/storefront-backend/internal/accounts"
	"github.com/ayoolabs/storefront-backend/pkg/config"
	"github.com/ayoolabs/storefront-backend/pkg/db/models"
	"github.com/ayoolabs/storefront-backend/pkg/enums"
	"github.com/ayoolabs/storefront-backend/pkg/logger"
	"github.com/ayoolabs/storefront-backend/pkg/security"
)

// Demo credentials, printed at startup by the caller.
const (
	MerchantEmail    = "demo@storefront.local"
	MerchantPassword = "demo-password"
)

// schema mirrors the postgres migrations in sqlite dialect. Demo mode
// never runs goose.
const schema = `
CREATE TABLE IF NOT EXISTS merchants (
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  first_name TEXT NOT NULL,
  last_name TEXT NOT NULL DEFAULT '',
  contact_number TEXT,
  avatar_url TEXT,
  is_active INTEGER NOT NULL DEFAULT 1,
  last_login_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);
CREATE TABLE IF NOT EXISTS store_profiles (
  id TEXT PRIMARY KEY,
  merchant_id TEXT NOT NULL UNIQUE,
  store_name TEXT NOT NULL,
  description TEXT,
  address TEXT,
  contact_number TEXT,
  store_type TEXT,
  logo_url TEXT,
  store_open INTEGER NOT NULL DEFAULT 1,
  auto_schedule INTEGER NOT NULL DEFAULT 0,
  opening_time TEXT,
  closing_time TEXT,
  created_at DATETIME,
  updated_at DATETIME
);
CREATE TABLE IF NOT EXISTS categories (
  id TEXT PRIMARY KEY,
  store_id TEXT NOT NULL,
  name TEXT NOT NULL,
  description TEXT,
  image_url TEXT,
  product_count INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  store_id TEXT NOT NULL,
  category_id TEXT,
  name TEXT NOT NULL,
  description TEXT,
  price TEXT NOT NULL,
  image_url TEXT,
  is_available INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  store_id TEXT NOT NULL,
  customer_name TEXT NOT NULL,
  customer_email TEXT,
  status TEXT NOT NULL DEFAULT 'Pending',
  total_amount TEXT NOT NULL,
  notes TEXT,
  ordered_at DATETIME NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);
CREATE TABLE IF NOT EXISTS order_line_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  product_id TEXT,
  product_name TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  unit_price TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`

// Seed creates the sqlite schema and loads the demo fixtures once. A
// database that already holds the demo merchant is left alone.
func Seed(ctx context.Context, db *gorm.DB, passwordCfg config.PasswordConfig, logg *logger.Logger) error {
	for _, stmt := range strings.Split(schema, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if err := db.WithContext(ctx).Exec(stmt).Error; err != nil {
			return err
		}
	}

	merchantRepo := accounts.NewRepository(db)
	if _, err := merchantRepo.FindByEmail(ctx, MerchantEmail); err == nil {
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	passwordHash, err := security.HashPassword(MerchantPassword, passwordCfg)
	if err != nil {
		return err
	}

	merchant, err := merchantRepo.Create(ctx, accounts.CreateMerchantDTO{
		Email:        MerchantEmail,
		PasswordHash: passwordHash,
		FirstName:    "Demo",
		LastName:     "Merchant",
	})
	if err != nil {
		return err
	}

	description := "A neighborhood shop stocked with everyday essentials."
	storeType := "grocery"
	profile := &models.StoreProfile{
		ID:          uuid.New(),
		MerchantID:  merchant.ID,
		StoreName:   "Corner Shop",
		Description: &description,
		StoreType:   &storeType,
		StoreOpen:   true,
	}
	if err := db.WithContext(ctx).Create(profile).Error; err != nil {
		return err
	}

	drinks := &models.Category{ID: uuid.New(), StoreID: profile.ID, Name: "Drinks", ProductCount: 2}
	snacks := &models.Category{ID: uuid.New(), StoreID: profile.ID, Name: "Snacks", ProductCount: 1}
	if err := db.WithContext(ctx).Create([]*models.Category{drinks, snacks}).Error; err != nil {
		return err
	}

	cola := &models.Product{
		ID: uuid.New(), StoreID: profile.ID, CategoryID: &drinks.ID,
		Name: "Cola 50cl", Price: decimal.RequireFromString("1.50"), IsAvailable: true,
	}
	water := &models.Product{
		ID: uuid.New(), StoreID: profile.ID, CategoryID: &drinks.ID,
		Name: "Bottled Water", Price: decimal.RequireFromString("0.80"), IsAvailable: true,
	}
	chinchin := &models.Product{
		ID: uuid.New(), StoreID: profile.ID, CategoryID: &snacks.ID,
		Name: "Chin Chin", Price: decimal.RequireFromString("2.20"), IsAvailable: true,
	}
	if err := db.WithContext(ctx).Create([]*models.Product{cola, water, chinchin}).Error; err != nil {
		return err
	}

	order := &models.Order{
		ID:           uuid.New(),
		StoreID:      profile.ID,
		CustomerName: "Ngozi Eze",
		Status:       enums.OrderStatusPending,
		TotalAmount:  decimal.RequireFromString("3.80"),
		OrderedAt:    time.Now().UTC().Add(-2 * time.Hour),
		Items: []models.OrderLineItem{
			{ID: uuid.New(), ProductID: &cola.ID, ProductName: cola.Name, Quantity: 2, UnitPrice: cola.Price},
			{ID: uuid.New(), ProductID: &water.ID, ProductName: water.Name, Quantity: 1, UnitPrice: water.Price},
		},
	}
	if err := db.WithContext(ctx).Create(order).Error; err != nil {
		return err
	}

	if logg != nil {
		logg.Info(ctx, "demo fixtures seeded")
	}
	return nil
}
