package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"storeadmin/internal/caching"
	"storeadmin/internal/gateway"
	"storeadmin/internal/imaging"
	"storeadmin/internal/models"
	"storeadmin/internal/notify"
)

const productKind = "product"

type ProductService interface {
	List(ctx context.Context, filter *models.ProductFilter) (*models.ProductList, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Create(ctx context.Context, payload *models.CreateProduct) (*models.Product, error)
	Update(ctx context.Context, id uuid.UUID, payload *models.UpdateProduct) (*models.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AddImage(ctx context.Context, productID, imageID uuid.UUID) error
	RemoveImage(ctx context.Context, productID, imageID uuid.UUID) error
}

type productService struct {
	gw       *gateway.Gateway
	cache    caching.CacheService
	notifier notify.Notifier
}

func NewProductService(gw *gateway.Gateway, cache caching.CacheService, notifier notify.Notifier) ProductService {
	return &productService{gw: gw, cache: cache, notifier: notifier}
}

func (s *productService) List(ctx context.Context, filter *models.ProductFilter) (*models.ProductList, error) {
	key := listKey(productKind, filter)
	if data, err := s.cache.Get(ctx, key); err != nil {
		log.Printf("WARN: cache read failed for %s: %v", key, err)
	} else if data != nil {
		var list models.ProductList
		if err := json.Unmarshal(data, &list); err == nil {
			return &list, nil
		}
	}

	// Reads are idempotent, so lists opt into the single retry.
	raw, err := s.gw.DoWithRetry(ctx, http.MethodGet, "/products", nil, productQuery(filter))
	if err != nil {
		return nil, err
	}

	var list models.ProductList
	if err := decodeList(raw, &list, &list.Data); err != nil {
		return nil, fmt.Errorf("failed to decode product list: %w", err)
	}

	cacheSet(ctx, s.cache, key, &list, listTTL)
	return &list, nil
}

func (s *productService) Get(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	key := detailKey(productKind, id.String())
	if data, err := s.cache.Get(ctx, key); err != nil {
		log.Printf("WARN: cache read failed for %s: %v", key, err)
	} else if data != nil {
		var product models.Product
		if err := json.Unmarshal(data, &product); err == nil {
			return &product, nil
		}
	}

	raw, err := s.gw.Do(ctx, http.MethodGet, "/products/"+id.String(), nil, nil)
	if err != nil {
		return nil, err
	}

	var product models.Product
	if err := json.Unmarshal(gateway.UnwrapData(raw), &product); err != nil {
		return nil, fmt.Errorf("failed to decode product: %w", err)
	}

	cacheSet(ctx, s.cache, key, &product, detailTTL)
	return &product, nil
}

func (s *productService) Create(ctx context.Context, payload *models.CreateProduct) (*models.Product, error) {
	raw, err := s.gw.Do(ctx, http.MethodPost, "/products", payload, nil)
	if err != nil {
		s.notifier.Error(gateway.ErrorMessage(err, "Failed to create product"))
		return nil, err
	}

	var product models.Product
	if err := json.Unmarshal(gateway.UnwrapData(raw), &product); err != nil {
		return nil, fmt.Errorf("failed to decode product: %w", err)
	}

	invalidateLists(ctx, s.cache, productKind)
	s.notifier.Success("Product created successfully")
	return &product, nil
}

func (s *productService) Update(ctx context.Context, id uuid.UUID, payload *models.UpdateProduct) (*models.Product, error) {
	raw, err := s.gw.Do(ctx, http.MethodPut, "/products/"+id.String(), payload, nil)
	if err != nil {
		s.notifier.Error(gateway.ErrorMessage(err, "Failed to update product"))
		return nil, err
	}

	var product models.Product
	if err := json.Unmarshal(gateway.UnwrapData(raw), &product); err != nil {
		return nil, fmt.Errorf("failed to decode product: %w", err)
	}

	invalidateLists(ctx, s.cache, productKind)
	cacheDelete(ctx, s.cache, detailKey(productKind, id.String()))
	s.notifier.Success("Product updated successfully")
	return &product, nil
}

func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.gw.Do(ctx, http.MethodDelete, "/products/"+id.String(), nil, nil); err != nil {
		s.notifier.Error(gateway.ErrorMessage(err, "Failed to delete product"))
		return err
	}

	invalidateLists(ctx, s.cache, productKind)
	// Evict, not just stale: a deleted record must never be served again.
	cacheDelete(ctx, s.cache, detailKey(productKind, id.String()))
	s.notifier.Success("Product deleted successfully")
	return nil
}

func (s *productService) AddImage(ctx context.Context, productID, imageID uuid.UUID) error {
	payload := models.AddProductImage{ImageID: imageID}
	if _, err := s.gw.Do(ctx, http.MethodPost, "/products/"+productID.String()+"/images", &payload, nil); err != nil {
		s.notifier.Error(gateway.ErrorMessage(err, "Failed to add image"))
		return err
	}

	cacheDelete(ctx, s.cache, detailKey(productKind, productID.String()))
	s.notifier.Success("Image added successfully")
	return nil
}

// RemoveImage deletes an image association. Removing the primary image of a
// product that still has images is blocked here, before any backend call:
// a persisted product must never be left without a designated primary.
func (s *productService) RemoveImage(ctx context.Context, productID, imageID uuid.UUID) error {
	if product, err := s.Get(ctx, productID); err == nil {
		g := imaging.PersistedGallery(product.Images)
		if err := g.CanRemoveImage(imageID); err != nil {
			s.notifier.Error("Cannot remove the primary image; set another image as primary first")
			return err
		}
	}

	if _, err := s.gw.Do(ctx, http.MethodDelete, "/products/images/"+imageID.String(), nil, nil); err != nil {
		s.notifier.Error(gateway.ErrorMessage(err, "Failed to remove image"))
		return err
	}

	cacheDelete(ctx, s.cache, detailKey(productKind, productID.String()))
	s.notifier.Success("Image removed successfully")
	return nil
}

func productQuery(filter *models.ProductFilter) url.Values {
	if filter == nil {
		return nil
	}
	query := url.Values{}
	if filter.CategoryID != nil {
		query.Set("category_id", filter.CategoryID.String())
	}
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}
	if filter.Offset > 0 {
		query.Set("offset", strconv.Itoa(filter.Offset))
	}
	if filter.Limit > 0 {
		query.Set("limit", strconv.Itoa(filter.Limit))
	}
	return query
}
