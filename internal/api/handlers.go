package api

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/looklab/catalog-service/internal/models"
)

// CatalogStore is the read-only surface the handlers need. *db.Database
// implements it; tests substitute a mock.
type CatalogStore interface {
	ListProducts(ctx context.Context, page, perPage int) ([]models.Product, error)
	GetProduct(ctx context.Context, id int) (*models.Product, error)
	ListDepartments(ctx context.Context) ([]models.Department, error)
	GetDepartment(ctx context.Context, id int) (*models.Department, error)
	ListDepartmentProducts(ctx context.Context, departmentID, page, perPage int) (*models.Department, []models.Product, models.Pagination, error)
	Health(ctx context.Context) error
}

// Handler holds the catalog store and provides HTTP handlers
type Handler struct {
	store CatalogStore
}

// NewHandler creates a new handler instance
func NewHandler(store CatalogStore) *Handler {
	return &Handler{store: store}
}

// DepartmentProductsResponse is the payload for GET /departments/:id/products.
type DepartmentProductsResponse struct {
	Department *models.Department `json:"department"`
	Products   []models.Product   `json:"products"`
	Pagination models.Pagination  `json:"pagination"`
}

const (
	defaultPage    = 1
	defaultPerPage = 20
)

// parsePagination reads page/per_page query parameters, applying defaults
// when absent. Anything that is not a positive integer is a validation
// error, never a server fault.
func parsePagination(c *gin.Context) (page, perPage int, err error) {
	page = defaultPage
	perPage = defaultPerPage

	if s := c.Query("page"); s != "" {
		page, err = strconv.Atoi(s)
		if err != nil || page < 1 {
			return 0, 0, fmt.Errorf("invalid page or per_page parameters: must be positive integers")
		}
	}
	if s := c.Query("per_page"); s != "" {
		perPage, err = strconv.Atoi(s)
		if err != nil || perPage < 1 {
			return 0, 0, fmt.Errorf("invalid page or per_page parameters: must be positive integers")
		}
	}
	return page, perPage, nil
}

// GetProducts handles GET /api/products
func (h *Handler) GetProducts(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	page, perPage, err := parsePagination(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	products, err := h.store.ListProducts(ctx, page, perPage)
	if err != nil {
		log.Printf("Failed to list products: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, products)
}

// GetProduct handles GET /api/products/:id
func (h *Handler) GetProduct(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID format"})
		return
	}

	product, err := h.store.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		log.Printf("Failed to get product %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, product)
}

// GetDepartments handles GET /api/departments
func (h *Handler) GetDepartments(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	departments, err := h.store.ListDepartments(ctx)
	if err != nil {
		log.Printf("Failed to list departments: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"departments": departments})
}

// GetDepartment handles GET /api/departments/:id
func (h *Handler) GetDepartment(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid department ID format"})
		return
	}

	department, err := h.store.GetDepartment(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrDepartmentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Department not found"})
			return
		}
		log.Printf("Failed to get department %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, department)
}

// GetDepartmentProducts handles GET /api/departments/:id/products
func (h *Handler) GetDepartmentProducts(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid department ID format"})
		return
	}

	page, perPage, err := parsePagination(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	department, products, pagination, err := h.store.ListDepartmentProducts(ctx, id, page, perPage)
	if err != nil {
		if errors.Is(err, models.ErrDepartmentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Department not found"})
			return
		}
		log.Printf("Failed to list products for department %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, DepartmentProductsResponse{
		Department: department,
		Products:   products,
		Pagination: pagination,
	})
}

// Health handles GET /health and /ready
func (h *Handler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.store.Health(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unhealthy",
			"database": "disconnected",
			"error":    err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"database": "connected",
	})
}
