package cartControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/zoro-store/zoro-api/models"
)

type CartItemInput struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
	Size      string `json:"size" binding:"required"`
	Color     string `json:"color"`
}

type QuantityInput struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// CartLine is a cart item joined with live product display fields.
type CartLine struct {
	ID        uint    `json:"id"`
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Size      string  `json:"size"`
	Color     string  `json:"color"`
	Image     string  `json:"image"`
	InStock   bool    `json:"in_stock"`
}

// cartView re-joins every line against the live catalog. Lines whose product
// has since been deleted are skipped rather than surfaced as empty rows.
func cartView(items []models.CartItem) gin.H {
	lines := make([]CartLine, 0, len(items))
	var total float64
	for _, item := range items {
		if item.Product.ID == 0 {
			continue
		}
		lines = append(lines, CartLine{
			ID:        item.ID,
			ProductID: item.ProductID,
			Name:      item.Product.Name,
			Price:     item.Product.Price,
			Quantity:  item.Quantity,
			Size:      item.Size,
			Color:     item.Color,
			Image:     item.Product.FirstImage(),
			InStock:   item.Product.InStock,
		})
		total += item.Product.Price * float64(item.Quantity)
	}
	return gin.H{"items": lines, "total": total}
}

func getOrCreateCart(db *gorm.DB, userID string) (models.Cart, error) {
	var cart models.Cart
	err := db.Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = models.Cart{UserID: userID}
		err = db.Create(&cart).Error
	}
	return cart, err
}

func loadCartItems(db *gorm.DB, cartID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	err := db.Preload("Product").Where("cart_id = ?", cartID).Order("added_at").Find(&items).Error
	return items, err
}

// GET /user/cart
func GetUserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		cart, err := getOrCreateCart(db, userIDVal.(string))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		items, err := loadCartItems(db, cart.CartID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		c.JSON(http.StatusOK, cartView(items))
	}
}

// POST /user/cart
//
// An existing (product, size, color) line accumulates quantity, capped at
// MaxLineQuantity; otherwise a new line is inserted.
func AddCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		var input CartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var product models.Product
		if err := db.First(&product, "id = ?", input.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate product"})
			return
		}

		cart, err := getOrCreateCart(db, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		var item models.CartItem
		err = db.Where(
			"cart_id = ? AND product_id = ? AND size = ? AND color = ?",
			cart.CartID, input.ProductID, input.Size, input.Color,
		).First(&item).Error

		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			item = models.CartItem{
				CartID:    cart.CartID,
				ProductID: product.ID,
				Size:      input.Size,
				Color:     input.Color,
				Quantity:  clampQuantity(input.Quantity),
				AddedAt:   time.Now(),
			}
			if err := db.Create(&item).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
				return
			}

		case err == nil:
			item.Quantity = clampQuantity(item.Quantity + input.Quantity)
			item.AddedAt = time.Now()
			if err := db.Save(&item).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart item"})
				return
			}

		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart item"})
			return
		}

		items, err := loadCartItems(db, cart.CartID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		c.JSON(http.StatusOK, cartView(items))
	}
}

// PATCH /user/cart/:item_id
//
// quantity 0 deletes the line, values above the cap are clamped, negative
// values are rejected. Items in someone else's cart are a permission failure.
func UpdateCartItemQuantity(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		var input QuantityInput
		if err := c.ShouldBindJSON(&input); err != nil || *input.Quantity < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quantity"})
			return
		}
		quantity := *input.Quantity

		item, status, err := ownedCartItem(db, userID, c.Param("item_id"))
		if err != nil {
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		if quantity == 0 {
			if err := db.Delete(&models.CartItem{}, item.ID).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete cart item"})
				return
			}
		} else {
			item.Quantity = clampQuantity(quantity)
			if err := db.Save(item).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart item"})
				return
			}
		}

		items, err := loadCartItems(db, item.CartID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		c.JSON(http.StatusOK, cartView(items))
	}
}

// DELETE /user/cart/:item_id
func RemoveCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		item, status, err := ownedCartItem(db, userID, c.Param("item_id"))
		if err != nil {
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		if err := db.Delete(&models.CartItem{}, item.ID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete cart item"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart item removed"})
	}
}

// DELETE /user/cart
func ClearUserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var cart models.Cart
		if err := db.Where("user_id = ?", userIDVal.(string)).First(&cart).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		if err := db.Where("cart_id = ?", cart.CartID).Delete(&models.CartItem{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}

// GET /admin/users/:user_id/cart
func GetAdminUserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("user_id")
		if userID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
			return
		}

		var cart models.Cart
		if err := db.Where("user_id = ?", userID).First(&cart).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusOK, cartView(nil))
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		items, err := loadCartItems(db, cart.CartID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		c.JSON(http.StatusOK, cartView(items))
	}
}

// ownedCartItem loads a cart item and enforces that its parent cart belongs
// to the caller: missing item → 404, foreign item → 403.
func ownedCartItem(db *gorm.DB, userID, itemID string) (*models.CartItem, int, error) {
	var item models.CartItem
	if err := db.First(&item, "id = ?", itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, http.StatusNotFound, errors.New("Cart item not found")
		}
		return nil, http.StatusInternalServerError, errors.New("Failed to fetch cart item")
	}

	var cart models.Cart
	if err := db.First(&cart, "cart_id = ?", item.CartID).Error; err != nil {
		return nil, http.StatusInternalServerError, errors.New("Failed to fetch cart")
	}
	if cart.UserID != userID {
		return nil, http.StatusForbidden, errors.New("Forbidden")
	}

	return &item, http.StatusOK, nil
}

func clampQuantity(q int) int {
	if q > models.MaxLineQuantity {
		return models.MaxLineQuantity
	}
	return q
}
