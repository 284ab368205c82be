package main

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"bookshop/internal/auth"
	"bookshop/internal/config"
	"bookshop/internal/db"
	"bookshop/internal/model"
	"bookshop/internal/repository"
)

const (
	adminEmail    = "admin@bookshop.local"
	adminPassword = "admin123"
)

var seedCategories = []model.Category{
	{Name: "Fiction", Description: "Novels and short stories"},
	{Name: "Non-fiction", Description: "Essays, biographies, reference"},
	{Name: "Children", Description: "Books for young readers"},
}

var seedProducts = []model.Product{
	{
		Name:        "The Silent Library",
		Price:       12.50,
		Quantity:    40,
		Description: "A mystery set among the stacks.",
		Detail:      model.ProductDetail{Publisher: "Harbor Press", CoverForm: "paperback", Author: "M. Tran"},
		Status:      1,
	},
	{
		Name:        "Rivers of Glass",
		Price:       18.00,
		Quantity:    25,
		Description: "Collected essays on cities and water.",
		Detail:      model.ProductDetail{Publisher: "Northlight", CoverForm: "hardcover", Author: "A. Keller"},
		Status:      1,
	},
	{
		Name:        "Counting Stars at Noon",
		Price:       9.90,
		Quantity:    60,
		Description: "A picture book about impossible things.",
		Detail:      model.ProductDetail{Publisher: "Little Fern", CoverForm: "paperback", Author: "J. Okafor"},
		Status:      1,
	},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()
	ctx := context.Background()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Product{},
		&model.Invoice{},
		&model.InvoiceItem{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	users := repository.NewUserRepository(gormDB)
	if err := seedAdmin(ctx, users); err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}

	if err := seedCatalog(ctx, gormDB); err != nil {
		log.Fatalf("Failed to seed catalog: %v", err)
	}

	log.Println("Seed completed")
}

// seedAdmin creates the default admin account if it does not exist yet.
func seedAdmin(ctx context.Context, users repository.UserRepository) error {
	if _, err := users.FindByEmail(ctx, adminEmail); err == nil {
		log.Printf("Admin user %s already exists, skipping", adminEmail)
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := auth.HashPassword(adminPassword)
	if err != nil {
		return err
	}

	admin := &model.User{
		Username:     "admin",
		Email:        adminEmail,
		PasswordHash: hash,
		Role:         auth.RoleAdmin.String(),
	}
	if err := users.Create(ctx, admin); err != nil {
		return err
	}
	log.Printf("Created admin user %s (id=%d)", adminEmail, admin.ID)
	return nil
}

// seedCatalog inserts demo categories and products, skipping names that
// already exist so the script stays idempotent.
func seedCatalog(ctx context.Context, gormDB *gorm.DB) error {
	categoryIDs := make(map[string]uint, len(seedCategories))
	for _, category := range seedCategories {
		var existing model.Category
		err := gormDB.WithContext(ctx).Where("name = ?", category.Name).First(&existing).Error
		if err == nil {
			categoryIDs[existing.Name] = existing.ID
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		created := category
		if err := gormDB.WithContext(ctx).Create(&created).Error; err != nil {
			return err
		}
		categoryIDs[created.Name] = created.ID
		log.Printf("Created category %q (id=%d)", created.Name, created.ID)
	}

	fictionID := categoryIDs["Fiction"]
	for i, product := range seedProducts {
		var existing model.Product
		err := gormDB.WithContext(ctx).Where("name = ?", product.Name).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		created := product
		if i == 0 && fictionID != 0 {
			created.CategoryID = &fictionID
		}
		if err := gormDB.WithContext(ctx).Create(&created).Error; err != nil {
			return err
		}
		log.Printf("Created product %q (id=%d)", created.Name, created.ID)
	}
	return nil
}
