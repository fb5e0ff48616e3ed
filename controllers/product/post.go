package productcontroller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/zoro-store/zoro-api/models"
)

type CreateProductInput struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Gender      string   `json:"gender"`
	Collections []string `json:"collections"`
	Price       float64  `json:"price" binding:"required,gt=0"`
	Stock       int      `json:"stock" binding:"min=0"`
	Images      []string `json:"images"`
	Sizes       []string `json:"sizes"`
	Featured    bool     `json:"featured"`
	NewArrival  bool     `json:"new_arrival"`
}

// POST /admin/products
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CreateProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		slug := Slugify(input.Name)
		if slug == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name must contain at least one alphanumeric character"})
			return
		}

		var existing models.Product
		err := db.Unscoped().Where("slug = ?", slug).First(&existing).Error
		if err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "A product with this slug already exists"})
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate slug"})
			return
		}

		product := models.Product{
			Slug:        slug,
			Name:        input.Name,
			Description: input.Description,
			Category:    input.Category,
			Gender:      input.Gender,
			Collections: input.Collections,
			Price:       input.Price,
			Stock:       input.Stock,
			InStock:     input.Stock > 0,
			Images:      input.Images,
			Sizes:       input.Sizes,
			Featured:    input.Featured,
			NewArrival:  input.NewArrival,
		}

		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}

		c.JSON(http.StatusCreated, product)
	}
}
