package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sandeepk/magshop/internal/logging"
	"github.com/sandeepk/magshop/internal/models"
)

type ProductRepo interface {
	CreateProduct(ctx context.Context, p *models.Product) error
	SaveProduct(ctx context.Context, p *models.Product) error
	GetProduct(ctx context.Context, id uint) (*models.Product, error)
	ListProducts(ctx context.Context, offset, limit int) (int64, []models.Product, error)
	SearchProductsByName(ctx context.Context, name string) ([]models.Product, error)
	CountProducts(ctx context.Context) (int64, error)
	DeleteProduct(ctx context.Context, id uint) error
}

type ProductService struct {
	Products ProductRepo
	Events   EventPublisher
}

func NewProductService(products ProductRepo, events EventPublisher) *ProductService {
	return &ProductService{Products: products, Events: events}
}

func (s *ProductService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	return s.Products.GetProduct(ctx, id)
}

func (s *ProductService) GetProducts(ctx context.Context, offset, limit int) (int64, []models.Product, error) {
	return s.Products.ListProducts(ctx, offset, limit)
}

func (s *ProductService) SaveProduct(ctx context.Context, p *models.Product) error {
	if p.Price < 0 {
		return errors.New("price cannot be negative")
	}

	event := "product_created"
	var err error
	if p.ID == 0 {
		err = s.Products.CreateProduct(ctx, p)
	} else {
		event = "product_updated"
		err = s.Products.SaveProduct(ctx, p)
	}
	if err != nil {
		return err
	}

	s.publishProduct(ctx, event, p.ID, p.Name)
	return nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, id uint) error {
	if err := s.Products.DeleteProduct(ctx, id); err != nil {
		return err
	}
	s.publishProduct(ctx, "product_deleted", id, "")
	return nil
}

func (s *ProductService) SearchProducts(ctx context.Context, name string) ([]models.Product, error) {
	return s.Products.SearchProductsByName(ctx, name)
}

func (s *ProductService) GetProductCount(ctx context.Context) (int64, error) {
	return s.Products.CountProducts(ctx)
}

func (s *ProductService) publishProduct(ctx context.Context, typ string, id uint, name string) {
	if s.Events == nil {
		return
	}
	event := map[string]any{
		"type":      typ,
		"productID": id,
	}
	if name != "" {
		event["name"] = name
	}
	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.Events.PublishEvent(pubCtx, "product_events", fmt.Sprint(id), event); err != nil {
		logging.FromContext(ctx).Error("kafka publish error", "topic", "product_events", "error", err)
	}
}
