package cartControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/zoro-store/zoro-api/models"
)

// Guest carts mirror the authenticated cart endpoints, keyed by the guest_id
// issued at POST /guest.

func getOrCreateGuestCart(db *gorm.DB, guestID string) (models.GuestCart, error) {
	var cart models.GuestCart
	err := db.Where("guest_id = ?", guestID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = models.GuestCart{GuestID: guestID}
		err = db.Create(&cart).Error
	}
	return cart, err
}

func loadGuestCartItems(db *gorm.DB, cartID uint) ([]models.GuestCartItem, error) {
	var items []models.GuestCartItem
	err := db.Preload("Product").Where("cart_id = ?", cartID).Order("added_at").Find(&items).Error
	return items, err
}

func guestCartView(items []models.GuestCartItem) gin.H {
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

func requireGuestID(c *gin.Context) (string, bool) {
	guestID := c.Query("guest_id")
	if guestID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "guest_id is required"})
		return "", false
	}
	return guestID, true
}

// GET /guest/cart
func GetGuestCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		guestID, ok := requireGuestID(c)
		if !ok {
			return
		}

		var cart models.GuestCart
		if err := db.Where("guest_id = ?", guestID).First(&cart).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusOK, guestCartView(nil))
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch guest cart"})
			return
		}

		items, err := loadGuestCartItems(db, cart.CartID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch guest cart"})
			return
		}
		c.JSON(http.StatusOK, guestCartView(items))
	}
}

// POST /guest/cart
func AddGuestCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		guestID, ok := requireGuestID(c)
		if !ok {
			return
		}

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

		cart, err := getOrCreateGuestCart(db, guestID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch guest cart"})
			return
		}

		var item models.GuestCartItem
		err = db.Where(
			"cart_id = ? AND product_id = ? AND size = ? AND color = ?",
			cart.CartID, input.ProductID, input.Size, input.Color,
		).First(&item).Error

		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			item = models.GuestCartItem{
				CartID:    cart.CartID,
				ProductID: product.ID,
				Size:      input.Size,
				Color:     input.Color,
				Quantity:  clampQuantity(input.Quantity),
				AddedAt:   time.Now(),
			}
			if err := db.Create(&item).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to guest cart"})
				return
			}

		case err == nil:
			item.Quantity = clampQuantity(item.Quantity + input.Quantity)
			item.AddedAt = time.Now()
			if err := db.Save(&item).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update guest cart item"})
				return
			}

		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart item"})
			return
		}

		items, err := loadGuestCartItems(db, cart.CartID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch guest cart"})
			return
		}
		c.JSON(http.StatusOK, guestCartView(items))
	}
}

// PATCH /guest/cart/:item_id
func UpdateGuestCartItemQuantity(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		guestID, ok := requireGuestID(c)
		if !ok {
			return
		}

		var input QuantityInput
		if err := c.ShouldBindJSON(&input); err != nil || *input.Quantity < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quantity"})
			return
		}
		quantity := *input.Quantity

		item, status, err := ownedGuestCartItem(db, guestID, c.Param("item_id"))
		if err != nil {
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		if quantity == 0 {
			if err := db.Delete(&models.GuestCartItem{}, item.ID).Error; err != nil {
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

		items, err := loadGuestCartItems(db, item.CartID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch guest cart"})
			return
		}
		c.JSON(http.StatusOK, guestCartView(items))
	}
}

// DELETE /guest/cart/:item_id
func RemoveGuestCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		guestID, ok := requireGuestID(c)
		if !ok {
			return
		}

		item, status, err := ownedGuestCartItem(db, guestID, c.Param("item_id"))
		if err != nil {
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		if err := db.Delete(&models.GuestCartItem{}, item.ID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete cart item"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart item removed"})
	}
}

// DELETE /guest/cart
func ClearGuestCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		guestID, ok := requireGuestID(c)
		if !ok {
			return
		}

		var cart models.GuestCart
		if err := db.Where("guest_id = ?", guestID).First(&cart).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusOK, gin.H{"message": "Guest cart cleared"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch guest cart"})
			return
		}

		if err := db.Where("cart_id = ?", cart.CartID).Delete(&models.GuestCartItem{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear guest cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Guest cart cleared"})
	}
}

func ownedGuestCartItem(db *gorm.DB, guestID, itemID string) (*models.GuestCartItem, int, error) {
	var item models.GuestCartItem
	if err := db.First(&item, "id = ?", itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, http.StatusNotFound, errors.New("Cart item not found")
		}
		return nil, http.StatusInternalServerError, errors.New("Failed to fetch cart item")
	}

	var cart models.GuestCart
	if err := db.First(&cart, "cart_id = ?", item.CartID).Error; err != nil {
		return nil, http.StatusInternalServerError, errors.New("Failed to fetch cart")
	}
	if cart.GuestID != guestID {
		return nil, http.StatusForbidden, errors.New("Forbidden")
	}

	return &item, http.StatusOK, nil
}
