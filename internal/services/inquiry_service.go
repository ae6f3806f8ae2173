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
	"storeadmin/internal/models"
	"storeadmin/internal/notify"
)

const inquiryKind = "inquiry"

type InquiryService interface {
	List(ctx context.Context, filter *models.InquiryFilter) (*models.InquiryList, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Inquiry, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.InquiryStatus) (*models.Inquiry, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type inquiryService struct {
	gw       *gateway.Gateway
	cache    caching.CacheService
	notifier notify.Notifier
}

func NewInquiryService(gw *gateway.Gateway, cache caching.CacheService, notifier notify.Notifier) InquiryService {
	return &inquiryService{gw: gw, cache: cache, notifier: notifier}
}

func (s *inquiryService) List(ctx context.Context, filter *models.InquiryFilter) (*models.InquiryList, error) {
	key := listKey(inquiryKind, filter)
	if data, err := s.cache.Get(ctx, key); err != nil {
		log.Printf("WARN: cache read failed for %s: %v", key, err)
	} else if data != nil {
		var list models.InquiryList
		if err := json.Unmarshal(data, &list); err == nil {
			return &list, nil
		}
	}

	raw, err := s.gw.DoWithRetry(ctx, http.MethodGet, "/inquiry", nil, inquiryQuery(filter))
	if err != nil {
		return nil, err
	}

	var list models.InquiryList
	if err := decodeList(raw, &list, &list.Data); err != nil {
		return nil, fmt.Errorf("failed to decode inquiry list: %w", err)
	}

	cacheSet(ctx, s.cache, key, &list, listTTL)
	return &list, nil
}

func (s *inquiryService) Get(ctx context.Context, id uuid.UUID) (*models.Inquiry, error) {
	key := detailKey(inquiryKind, id.String())
	if data, err := s.cache.Get(ctx, key); err != nil {
		log.Printf("WARN: cache read failed for %s: %v", key, err)
	} else if data != nil {
		var inquiry models.Inquiry
		if err := json.Unmarshal(data, &inquiry); err == nil {
			return &inquiry, nil
		}
	}

	raw, err := s.gw.Do(ctx, http.MethodGet, "/inquiry/"+id.String(), nil, nil)
	if err != nil {
		return nil, err
	}

	var inquiry models.Inquiry
	if err := json.Unmarshal(gateway.UnwrapData(raw), &inquiry); err != nil {
		return nil, fmt.Errorf("failed to decode inquiry: %w", err)
	}

	cacheSet(ctx, s.cache, key, &inquiry, detailTTL)
	return &inquiry, nil
}

func (s *inquiryService) UpdateStatus(ctx context.Context, id uuid.UUID, status models.InquiryStatus) (*models.Inquiry, error) {
	payload := map[string]models.InquiryStatus{"status": status}
	raw, err := s.gw.Do(ctx, http.MethodPut, "/inquiry/"+id.String()+"/status", payload, nil)
	if err != nil {
		s.notifier.Error(gateway.ErrorMessage(err, "Failed to update inquiry status"))
		return nil, err
	}

	var inquiry models.Inquiry
	if err := json.Unmarshal(gateway.UnwrapData(raw), &inquiry); err != nil {
		return nil, fmt.Errorf("failed to decode inquiry: %w", err)
	}

	// The status response carries the fresh record; install it directly
	// instead of forcing a refetch of the detail.
	cacheSet(ctx, s.cache, detailKey(inquiryKind, id.String()), &inquiry, detailTTL)
	invalidateLists(ctx, s.cache, inquiryKind)
	s.notifier.Success("Inquiry status updated successfully")
	return &inquiry, nil
}

func (s *inquiryService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.gw.Do(ctx, http.MethodDelete, "/inquiry/"+id.String(), nil, nil); err != nil {
		s.notifier.Error(gateway.ErrorMessage(err, "Failed to delete inquiry"))
		return err
	}

	invalidateLists(ctx, s.cache, inquiryKind)
	cacheDelete(ctx, s.cache, detailKey(inquiryKind, id.String()))
	s.notifier.Success("Inquiry deleted successfully")
	return nil
}

func inquiryQuery(filter *models.InquiryFilter) url.Values {
	if filter == nil {
		return nil
	}
	query := url.Values{}
	if filter.Status != "" {
		query.Set("status", filter.Status)
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
