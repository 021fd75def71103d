// Package seed populates an empty database with a default administrator
// and the initial magazine catalog.
package seed

import (
	"context"
	"errors"
	"time"

	"github.com/sandeepk/magshop/internal/authz"
	"github.com/sandeepk/magshop/internal/hash"
	"github.com/sandeepk/magshop/internal/logging"
	"github.com/sandeepk/magshop/internal/models"
	"github.com/sandeepk/magshop/internal/repo"
	"github.com/sandeepk/magshop/internal/service"
)

type Seeder struct {
	Users    service.UserRepo
	Products service.ProductRepo
}

// Run is idempotent: it only writes when the relevant table is empty, so
// restarting the service never duplicates seed data.
func (s *Seeder) Run(ctx context.Context) error {
	l := logging.FromContext(ctx).With("component", "seed")

	admins, err := s.Users.CountUsersWithRole(ctx, string(authz.RoleAdmin))
	if err != nil {
		return err
	}
	if admins == 0 {
		if err := s.seedAdmin(ctx); err != nil {
			l.Error("admin seed failed", "error", err)
		} else {
			l.Info("seeded default admin user")
		}
	}

	products, err := s.Products.CountProducts(ctx)
	if err != nil {
		return err
	}
	if products == 0 {
		if err := s.seedMagazines(ctx); err != nil {
			l.Error("magazine seed failed", "error", err)
		} else {
			l.Info("seeded magazine catalog")
		}
	}

	return nil
}

func (s *Seeder) seedAdmin(ctx context.Context) error {
	pwHash, err := hash.HashPassword("Sandy123")
	if err != nil {
		return err
	}
	admin := models.User{
		Username:     "Sandeep",
		PasswordHash: pwHash,
		Email:        "sandeep@example.com",
		Age:          25,
		DOB:          "2000-01-01",
		Roles:        string(authz.RoleAdmin),
	}
	if err := s.Users.CreateUser(ctx, &admin); err != nil {
		if errors.Is(err, repo.ErrUserExists) {
			return nil
		}
		return err
	}
	return nil
}

func (s *Seeder) seedMagazines(ctx context.Context) error {
	for _, m := range magazines {
		mag := m
		if err := s.Products.CreateProduct(ctx, &mag); err != nil {
			return err
		}
	}
	return nil
}

func mag(name, desc string, price float64, stock uint, date string) models.Product {
	d, _ := time.Parse("2006-01-02", date)
	return models.Product{
		Name:        name,
		Description: desc,
		Price:       price,
		Stock:       stock,
		PublishDate: d,
	}
}

var magazines = []models.Product{
	mag("National Geographic", "Explore the world through world-class photojournalism and storytelling.", 12.99, 50, "2024-01-01"),
	mag("Time", "The global magazine of news, analysis, and ideas.", 9.99, 100, "2024-02-15"),
	mag("Vogue", "The world's most influential fashion magazine.", 14.50, 75, "2024-03-01"),
	mag("The New Yorker", "In-depth reporting, cultural commentary, fiction, and humor.", 8.99, 120, "2024-04-10"),
	mag("Forbes", "Business, investing, technology, entrepreneurship, leadership, and lifestyle.", 11.00, 60, "2024-01-20"),
	mag("Scientific American", "The most trustworthy source for news about science and technology.", 15.00, 40, "2023-12-05"),
	mag("Wired", "Where tomorrow is realized. Covering business, lifestyle, and innovation.", 7.99, 85, "2024-02-28"),
	mag("Rolling Stone", "The legendary magazine covering music, politics, and pop culture.", 10.50, 90, "2024-03-15"),
	mag("The Economist", "Authoritative insight and opinion on international news, politics, and business.", 18.00, 55, "2024-04-01"),
	mag("Cosmopolitan", "The ultimate guide for fashion, beauty, relationships, and health.", 6.99, 150, "2024-01-12"),
	mag("Fast Company", "Focusing on technology, business, and design.", 9.00, 70, "2024-03-22"),
	mag("Better Homes & Gardens", "Inspiration for your home and lifestyle.", 5.99, 200, "2023-11-30"),
	mag("People", "Celebrity news, human interest stories, and royal family updates.", 4.99, 300, "2024-04-05"),
	mag("Harvard Business Review", "Ideas and advice on strategy, leadership, and management.", 20.00, 30, "2024-01-05"),
	mag("Architectural Digest", "The international design authority, featuring luxury homes and design.", 13.99, 45, "2024-02-10"),
	mag("Men's Health", "The leading authority on men's fitness, health, and lifestyle.", 7.50, 110, "2024-03-05"),
	mag("Smithsonian Magazine", "Deep dives into history, science, art, and culture.", 11.99, 65, "2024-01-18"),
	mag("Esquire", "Style, fashion, politics, and culture for the modern man.", 8.50, 95, "2024-02-20"),
	mag("Food & Wine", "The definitive guide to culinary adventure and entertaining.", 6.25, 130, "2024-03-12"),
	mag("GQ", "Covering style, grooming, fitness, and more.", 7.99, 105, "2024-04-02"),
}
