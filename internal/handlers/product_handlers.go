package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"storeadmin/internal/common"
	"storeadmin/internal/forms"
	"storeadmin/internal/imaging"
	"storeadmin/internal/models"
	"storeadmin/internal/services"
)

type ProductHandlers struct {
	productService services.ProductService
}

func NewProductHandlers(productService services.ProductService) *ProductHandlers {
	return &ProductHandlers{productService: productService}
}

// ListProducts handles GET /products.
func (h *ProductHandlers) ListProducts(c echo.Context) error {
	filter := &models.ProductFilter{
		Search: c.QueryParam("search"),
		Offset: intQueryParam(c, "offset"),
		Limit:  intQueryParam(c, "limit"),
	}
	if raw := c.QueryParam("category_id"); raw != "" {
		categoryID, err := common.ValidateUUID(raw, "category_id")
		if err != nil {
			return common.SendClientError(c, err.Error())
		}
		filter.CategoryID = &categoryID
	}

	list, err := h.productService.List(c.Request().Context(), filter)
	if err != nil {
		return respondError(c, err, "Product")
	}
	return c.JSON(http.StatusOK, list)
}

// GetProduct handles GET /products/:id.
func (h *ProductHandlers) GetProduct(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "product id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	product, err := h.productService.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err, "Product")
	}
	return c.JSON(http.StatusOK, product)
}

// CreateProduct handles POST /products.
func (h *ProductHandlers) CreateProduct(c echo.Context) error {
	payload, err := h.bindForm(c)
	if err != nil {
		return respondError(c, err, "Product")
	}

	product, err := h.productService.Create(c.Request().Context(), payload)
	if err != nil {
		return respondError(c, err, "Product")
	}
	return c.JSON(http.StatusCreated, product)
}

// UpdateProduct handles PUT /products/:id.
func (h *ProductHandlers) UpdateProduct(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "product id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	payload, err := h.bindForm(c)
	if err != nil {
		return respondError(c, err, "Product")
	}

	product, err := h.productService.Update(c.Request().Context(), id, payload)
	if err != nil {
		return respondError(c, err, "Product")
	}
	return c.JSON(http.StatusOK, product)
}

// DeleteProduct handles DELETE /products/:id.
func (h *ProductHandlers) DeleteProduct(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "product id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	if err := h.productService.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err, "Product")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Product deleted successfully"})
}

// AddProductImage handles POST /products/:id/images.
func (h *ProductHandlers) AddProductImage(c echo.Context) error {
	productID, err := common.ValidateUUID(c.Param("id"), "product id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var req models.AddProductImage
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	if err := h.productService.AddImage(c.Request().Context(), productID, req.ImageID); err != nil {
		return respondError(c, err, "Product")
	}
	return c.JSON(http.StatusCreated, map[string]string{"message": "Image added successfully"})
}

// RemoveProductImage handles DELETE /products/images/:id. The owning
// product comes in as the product_id query parameter so the primary-image
// guard can run against it; removing the primary image of a persisted
// product is rejected with 409 before any backend call happens.
func (h *ProductHandlers) RemoveProductImage(c echo.Context) error {
	imageID, err := common.ValidateUUID(c.Param("id"), "image id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}
	productID, err := common.ValidateUUID(c.QueryParam("product_id"), "product_id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	if err := h.productService.RemoveImage(c.Request().Context(), productID, imageID); err != nil {
		if errors.Is(err, imaging.ErrPrimaryImageRequired) {
			return c.JSON(http.StatusConflict, common.CreateErrorResponse(
				"PRIMARY_IMAGE_REQUIRED",
				"Cannot remove the primary image; set another image as primary first",
				nil,
			))
		}
		return respondError(c, err, "Product image")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Image removed successfully"})
}

func (h *ProductHandlers) bindForm(c echo.Context) (*models.CreateProduct, error) {
	var form forms.ProductForm
	if err := c.Bind(&form); err != nil {
		return nil, forms.ValidationErrors{"body": "Invalid request format"}
	}
	if err := form.Validate(); err != nil {
		return nil, err
	}
	return form.Payload()
}

func intQueryParam(c echo.Context, name string) int {
	value, err := strconv.Atoi(c.QueryParam(name))
	if err != nil || value < 0 {
		return 0
	}
	return value
}
