package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storeadmin/internal/gateway"
	"storeadmin/internal/models"
)

func sampleCategory(id uuid.UUID) *models.ProductCategory {
	return &models.ProductCategory{
		ID:        id,
		Name:      "Fruits",
		CreatedAt: time.Now().UTC(),
	}
}

func TestCategoryListIsCached(t *testing.T) {
	env := newServiceEnv()
	defer env.backend.close()
	env.backend.handle(http.MethodGet, "/product-categories", http.StatusOK,
		&models.ProductCategoryList{Data: []*models.ProductCategory{sampleCategory(uuid.New())}})

	svc := NewCategoryService(env.gw, env.cache, env.notifier)
	ctx := context.Background()

	_, err := svc.List(ctx)
	require.NoError(t, err)
	_, err = svc.List(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, env.backend.count(http.MethodGet, "/product-categories"))
}

func TestCategoryMutationsInvalidateLists(t *testing.T) {
	env := newServiceEnv()
	defer env.backend.close()
	id := uuid.New()
	category := sampleCategory(id)
	env.backend.handle(http.MethodGet, "/product-categories", http.StatusOK,
		&models.ProductCategoryList{Data: []*models.ProductCategory{category}})
	env.backend.handle(http.MethodPost, "/product-categories", http.StatusCreated, category)
	env.backend.handle(http.MethodPut, "/product-categories/"+id.String(), http.StatusOK, category)
	env.backend.handle(http.MethodDelete, "/product-categories/"+id.String(), http.StatusOK, nil)

	svc := NewCategoryService(env.gw, env.cache, env.notifier)
	ctx := context.Background()

	listAndExpect := func(expected int) {
		t.Helper()
		_, err := svc.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, expected, env.backend.count(http.MethodGet, "/product-categories"))
	}

	listAndExpect(1)

	_, err := svc.Create(ctx, &models.CreateProductCategory{Name: "Fruits", ImageID: uuid.New()})
	require.NoError(t, err)
	listAndExpect(2)

	_, err = svc.Update(ctx, id, &models.UpdateProductCategory{Name: "Dry Fruits", ImageID: uuid.New()})
	require.NoError(t, err)
	listAndExpect(3)

	require.NoError(t, svc.Delete(ctx, id))
	listAndExpect(4)

	assert.Contains(t, env.notifier.successes, "Product category created successfully")
	assert.Contains(t, env.notifier.successes, "Product category updated successfully")
	assert.Contains(t, env.notifier.successes, "Product category deleted successfully")
}

func TestCategoryNotFoundPassesThrough(t *testing.T) {
	env := newServiceEnv()
	defer env.backend.close()
	id := uuid.New()

	svc := NewCategoryService(env.gw, env.cache, env.notifier)
	_, err := svc.Get(context.Background(), id)

	require.Error(t, err)
	assert.True(t, gateway.IsNotFound(err))
}
