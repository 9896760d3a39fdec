package http

import (
	"watchstore/internal/services"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	product, err := h.products.CreateProduct(c.Request.Context(), services.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		ImageURL:    req.ImageURL,
		Rating:      req.Rating,
		Reviews:     req.Reviews,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	created(c, "Product created successfully", product)
}

func (h *Handler) UpdateProduct(c *gin.Context) {
	id, okID := pathID(c, "id")
	if !okID {
		return
	}
	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	product, err := h.products.UpdateProduct(c.Request.Context(), id, services.UpdateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		ImageURL:    req.ImageURL,
		Rating:      req.Rating,
		Reviews:     req.Reviews,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, "Product updated successfully", product)
}

func (h *Handler) GetProduct(c *gin.Context) {
	id, okID := pathID(c, "id")
	if !okID {
		return
	}
	product, err := h.products.GetProductByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, "", product)
}

func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.products.ListProducts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, "", products)
}

func (h *Handler) ListProductsByCategory(c *gin.Context) {
	categoryID, okID := pathID(c, "categoryId")
	if !okID {
		return
	}
	products, err := h.products.ListProductsByCategory(c.Request.Context(), categoryID)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, "", products)
}

func (h *Handler) SearchProducts(c *gin.Context) {
	keyword := c.Query("keyword")
	if keyword == "" {
		badRequest(c, "keyword required")
		return
	}
	products, err := h.products.SearchProducts(c.Request.Context(), keyword)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, "", products)
}

func (h *Handler) DeleteProduct(c *gin.Context) {
	id, okID := pathID(c, "id")
	if !okID {
		return
	}
	if err := h.products.DeleteProduct(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	ok(c, "Product deleted successfully", nil)
}

func (h *Handler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	category, err := h.categories.CreateCategory(c.Request.Context(), services.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	created(c, "Category created successfully", category)
}

func (h *Handler) UpdateCategory(c *gin.Context) {
	id, okID := pathID(c, "id")
	if !okID {
		return
	}
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	category, err := h.categories.UpdateCategory(c.Request.Context(), id, services.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, "Category updated successfully", category)
}

func (h *Handler) GetCategory(c *gin.Context) {
	id, okID := pathID(c, "id")
	if !okID {
		return
	}
	category, err := h.categories.GetCategoryByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, "", category)
}

func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.categories.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, "", categories)
}

func (h *Handler) DeleteCategory(c *gin.Context) {
	id, okID := pathID(c, "id")
	if !okID {
		return
	}
	if err := h.categories.DeleteCategory(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	ok(c, "Category deleted successfully", nil)
}
