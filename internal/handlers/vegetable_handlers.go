package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/01moynul/vegshop-golang/internal/models"
	"github.com/01moynul/vegshop-golang/internal/repository"
	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
)

//
// --- Vegetable (Catalog) Handlers ---
//

// CreateVegetableInput defines the JSON input for adding a vegetable.
// Pointers tell "missing" apart from a legitimate zero.
type CreateVegetableInput struct {
	ID        string        `json:"id"`
	Name      string        `json:"name" binding:"required"`
	Price     *int64        `json:"price" binding:"required,gte=0"`
	Stock     *models.Stock `json:"stock" binding:"required"`
	Available *bool         `json:"available" binding:"required"`
}

// UpdateVegetableInput is a full replacement of everything but the id.
type UpdateVegetableInput struct {
	Name      string        `json:"name" binding:"required"`
	Price     *int64        `json:"price" binding:"required,gte=0"`
	Stock     *models.Stock `json:"stock" binding:"required"`
	Available *bool         `json:"available" binding:"required"`
}

// ListVegetables is the handler for GET /api/vegetables
func (h *Handlers) ListVegetables(c *gin.Context) {
	vegetables, err := h.Vegetables.List(c.Request.Context())
	if err != nil {
		h.Log.Error().Err(err).Msg("list vegetables")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch vegetables"})
		return
	}
	c.JSON(http.StatusOK, vegetables)
}

// CreateVegetable is the handler for POST /api/vegetables
func (h *Handlers) CreateVegetable(c *gin.Context) {
	// 1. --- Bind & Validate JSON ---
	var input CreateVegetableInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	// 2. --- Build the Vegetable ---
	// No id means the caller is happy with one derived from the name.
	id := strings.TrimSpace(input.ID)
	if id == "" {
		id = slug.Make(input.Name)
	}
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id is required when name has no usable characters"})
		return
	}

	vegetable := &models.Vegetable{
		ID:        id,
		Name:      input.Name,
		Price:     *input.Price,
		Stock:     *input.Stock,
		Available: *input.Available,
	}

	// 3. --- Save to Database ---
	if err := h.Vegetables.Create(c.Request.Context(), vegetable); err != nil {
		if errors.Is(err, repository.ErrVegetableExists) {
			c.JSON(http.StatusConflict, gin.H{"error": "A vegetable with this id already exists"})
			return
		}
		h.Log.Error().Err(err).Str("vegetable_id", id).Msg("create vegetable")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add vegetable"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Vegetable added successfully",
		"vegetable": vegetable,
	})
}

// UpdateVegetable is the handler for PUT /api/vegetables/:id
// An unknown id is reported as success; nothing is changed.
func (h *Handlers) UpdateVegetable(c *gin.Context) {
	var input UpdateVegetableInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	vegetable := &models.Vegetable{
		ID:        c.Param("id"),
		Name:      input.Name,
		Price:     *input.Price,
		Stock:     *input.Stock,
		Available: *input.Available,
	}

	if err := h.Vegetables.Update(c.Request.Context(), vegetable); err != nil {
		h.Log.Error().Err(err).Str("vegetable_id", vegetable.ID).Msg("update vegetable")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update vegetable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Vegetable updated successfully"})
}

// DeleteVegetable is the handler for DELETE /api/vegetables/:id
// Deleting twice is fine.
func (h *Handlers) DeleteVegetable(c *gin.Context) {
	id := c.Param("id")

	if err := h.Vegetables.Delete(c.Request.Context(), id); err != nil {
		h.Log.Error().Err(err).Str("vegetable_id", id).Msg("delete vegetable")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete vegetable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Vegetable deleted successfully"})
}
