package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/google/uuid"

	"storeadmin/internal/caching"
	"storeadmin/internal/gateway"
	"storeadmin/internal/models"
	"storeadmin/internal/notify"
)

const categoryKind = "product-category"

type CategoryService interface {
	List(ctx context.Context) (*models.ProductCategoryList, error)
	Get(ctx context.Context, id uuid.UUID) (*models.ProductCategory, error)
	Create(ctx context.Context, payload *models.CreateProductCategory) (*models.ProductCategory, error)
	Update(ctx context.Context, id uuid.UUID, payload *models.UpdateProductCategory) (*models.ProductCategory, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type categoryService struct {
	gw       *gateway.Gateway
	cache    caching.CacheService
	notifier notify.Notifier
}

func NewCategoryService(gw *gateway.Gateway, cache caching.CacheService, notifier notify.Notifier) CategoryService {
	return &categoryService{gw: gw, cache: cache, notifier: notifier}
}

func (s *categoryService) List(ctx context.Context) (*models.ProductCategoryList, error) {
	key := listKey(categoryKind, nil)
	if data, err := s.cache.Get(ctx, key); err != nil {
		log.Printf("WARN: cache read failed for %s: %v", key, err)
	} else if data != nil {
		var list models.ProductCategoryList
		if err := json.Unmarshal(data, &list); err == nil {
			return &list, nil
		}
	}

	raw, err := s.gw.DoWithRetry(ctx, http.MethodGet, "/product-categories", nil, nil)
	if err != nil {
		return nil, err
	}

	var list models.ProductCategoryList
	if err := decodeList(raw, &list, &list.Data); err != nil {
		return nil, fmt.Errorf("failed to decode category list: %w", err)
	}

	cacheSet(ctx, s.cache, key, &list, listTTL)
	return &list, nil
}

func (s *categoryService) Get(ctx context.Context, id uuid.UUID) (*models.ProductCategory, error) {
	key := detailKey(categoryKind, id.String())
	if data, err := s.cache.Get(ctx, key); err != nil {
		log.Printf("WARN: cache read failed for %s: %v", key, err)
	} else if data != nil {
		var category models.ProductCategory
		if err := json.Unmarshal(data, &category); err == nil {
			return &category, nil
		}
	}

	raw, err := s.gw.Do(ctx, http.MethodGet, "/product-categories/"+id.String(), nil, nil)
	if err != nil {
		return nil, err
	}

	var category models.ProductCategory
	if err := json.Unmarshal(gateway.UnwrapData(raw), &category); err != nil {
		return nil, fmt.Errorf("failed to decode category: %w", err)
	}

	cacheSet(ctx, s.cache, key, &category, detailTTL)
	return &category, nil
}

func (s *categoryService) Create(ctx context.Context, payload *models.CreateProductCategory) (*models.ProductCategory, error) {
	raw, err := s.gw.Do(ctx, http.MethodPost, "/product-categories", payload, nil)
	if err != nil {
		s.notifier.Error(gateway.ErrorMessage(err, "Failed to create product category"))
		return nil, err
	}

	var category models.ProductCategory
	if err := json.Unmarshal(gateway.UnwrapData(raw), &category); err != nil {
		return nil, fmt.Errorf("failed to decode category: %w", err)
	}

	invalidateLists(ctx, s.cache, categoryKind)
	s.notifier.Success("Product category created successfully")
	return &category, nil
}

func (s *categoryService) Update(ctx context.Context, id uuid.UUID, payload *models.UpdateProductCategory) (*models.ProductCategory, error) {
	raw, err := s.gw.Do(ctx, http.MethodPut, "/product-categories/"+id.String(), payload, nil)
	if err != nil {
		s.notifier.Error(gateway.ErrorMessage(err, "Failed to update product category"))
		return nil, err
	}

	var category models.ProductCategory
	if err := json.Unmarshal(gateway.UnwrapData(raw), &category); err != nil {
		return nil, fmt.Errorf("failed to decode category: %w", err)
	}

	invalidateLists(ctx, s.cache, categoryKind)
	cacheDelete(ctx, s.cache, detailKey(categoryKind, id.String()))
	s.notifier.Success("Product category updated successfully")
	return &category, nil
}

func (s *categoryService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.gw.Do(ctx, http.MethodDelete, "/product-categories/"+id.String(), nil, nil); err != nil {
		s.notifier.Error(gateway.ErrorMessage(err, "Failed to delete product category"))
		return err
	}

	invalidateLists(ctx, s.cache, categoryKind)
	cacheDelete(ctx, s.cache, detailKey(categoryKind, id.String()))
	s.notifier.Success("Product category deleted successfully")
	return nil
}
