package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"storeadmin/internal/common"
	"storeadmin/internal/forms"
	"storeadmin/internal/models"
	"storeadmin/internal/services"
)

type CategoryHandlers struct {
	categoryService services.CategoryService
}

func NewCategoryHandlers(categoryService services.CategoryService) *CategoryHandlers {
	return &CategoryHandlers{categoryService: categoryService}
}

// ListCategories handles GET /product-categories.
func (h *CategoryHandlers) ListCategories(c echo.Context) error {
	list, err := h.categoryService.List(c.Request().Context())
	if err != nil {
		return respondError(c, err, "Category")
	}
	return c.JSON(http.StatusOK, list)
}

// GetCategory handles GET /product-categories/:id.
func (h *CategoryHandlers) GetCategory(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "category id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	category, err := h.categoryService.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err, "Category")
	}
	return c.JSON(http.StatusOK, category)
}

// CreateCategory handles POST /product-categories.
func (h *CategoryHandlers) CreateCategory(c echo.Context) error {
	payload, err := h.bindForm(c)
	if err != nil {
		return respondError(c, err, "Category")
	}

	category, err := h.categoryService.Create(c.Request().Context(), payload)
	if err != nil {
		return respondError(c, err, "Category")
	}
	return c.JSON(http.StatusCreated, category)
}

// UpdateCategory handles PUT /product-categories/:id.
func (h *CategoryHandlers) UpdateCategory(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "category id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	payload, err := h.bindForm(c)
	if err != nil {
		return respondError(c, err, "Category")
	}

	category, err := h.categoryService.Update(c.Request().Context(), id, payload)
	if err != nil {
		return respondError(c, err, "Category")
	}
	return c.JSON(http.StatusOK, category)
}

// DeleteCategory handles DELETE /product-categories/:id.
func (h *CategoryHandlers) DeleteCategory(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "category id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	if err := h.categoryService.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err, "Category")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Category deleted successfully"})
}

func (h *CategoryHandlers) bindForm(c echo.Context) (*models.CreateProductCategory, error) {
	var form forms.CategoryForm
	if err := c.Bind(&form); err != nil {
		return nil, forms.ValidationErrors{"body": "Invalid request format"}
	}
	if err := form.Validate(); err != nil {
		return nil, err
	}
	return form.Payload()
}
