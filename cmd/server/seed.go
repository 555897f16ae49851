package main

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/standout/internal/models"
	"github.com/mmynk/standout/internal/storage"
)

const (
	seedAdminEmail    = "admin@demo.dev"
	seedAdminPassword = "admin123"
)

// seed populates an empty database with a demo admin account, one
// category, a handful of products with experiment variants, and the
// experiments flag. Existing records are left untouched.
func seed(ctx context.Context, store storage.Store) error {
	admin, err := store.GetUserByEmail(ctx, seedAdminEmail)
	if err != nil {
		return fmt.Errorf("failed to check admin user: %w", err)
	}
	if admin == nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(seedAdminPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash admin password: %w", err)
		}
		user := models.NewUser(seedAdminEmail, string(hashed))
		user.IsAdmin = true
		if err := store.CreateUser(ctx, user); err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}
		slog.Info("Seeded admin user", "email", seedAdminEmail)
	}

	products, err := store.ListProducts(ctx)
	if err != nil {
		return fmt.Errorf("failed to list products: %w", err)
	}
	if len(products) == 0 {
		category := &models.Category{Name: "Gadgets", Slug: "gadgets"}
		if err := store.CreateCategory(ctx, category); err != nil {
			return fmt.Errorf("failed to create category: %w", err)
		}

		demo := []models.Product{
			{
				Title:       "Pocket Drone",
				Description: "Mini foldable drone with HD camera and gesture control.",
				Price:       129.99,
				Stock:       12,
			},
			{
				Title:       "Smart Mug",
				Description: "Self-heating mug keeps your coffee at the perfect temperature.",
				Price:       89.00,
				Stock:       30,
			},
			{
				Title:       "Sleep Headband",
				Description: "Bluetooth sleep mask with ultra-thin speakers for side sleepers.",
				Price:       39.50,
				Stock:       50,
			},
			{
				Title:       "Air Quality Clip",
				Description: "Wearable sensor that tracks VOCs, PM2.5, and CO2 with alerts.",
				Price:       59.90,
				Stock:       22,
			},
		}
		for i := range demo {
			p := &demo[i]
			p.CategoryID = category.ID
			p.VariantATitle = "🔥 " + p.Title
			p.VariantBTitle = p.Title + " — Pro Edition"
			if err := store.CreateProduct(ctx, p); err != nil {
				return fmt.Errorf("failed to create product %q: %w", p.Title, err)
			}
		}
		slog.Info("Seeded demo catalog", "products", len(demo))
	}

	flag, err := store.GetFlag(ctx, "experiments")
	if err != nil {
		return fmt.Errorf("failed to check experiments flag: %w", err)
	}
	if flag == nil {
		if _, err := store.SetFlag(ctx, "experiments", true); err != nil {
			return fmt.Errorf("failed to set experiments flag: %w", err)
		}
	}

	return nil
}
