package auth

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/zoro-store/zoro-api/models"
)

// MergeGuestState folds a guest's cart and wishlist into the user's durable
// ones. The whole merge runs in ONE transaction so an interrupted login never
// leaves a half-migrated cart. Returns whether anything was merged.
//
// Duplicate cart lines collapse under the same (product, size, color) rule as
// add-to-cart, with the quantity capped at MaxLineQuantity. Wishlist
// membership is boolean, so existing entries are simply kept.
func MergeGuestState(db *gorm.DB, guestID, userID string) (bool, error) {
	merged := false

	err := db.Transaction(func(tx *gorm.DB) error {
		cartMerged, err := mergeGuestCart(tx, guestID, userID)
		if err != nil {
			return err
		}
		wishlistMerged, err := mergeGuestWishlist(tx, guestID, userID)
		if err != nil {
			return err
		}
		merged = cartMerged || wishlistMerged

		// The guest principal is single-use once claimed.
		return tx.Where("id = ?", guestID).Delete(&models.GuestUser{}).Error
	})
	if err != nil {
		return false, err
	}
	return merged, nil
}

func mergeGuestCart(tx *gorm.DB, guestID, userID string) (bool, error) {
	var guestCart models.GuestCart
	if err := tx.Preload("Items").Where("guest_id = ?", guestID).First(&guestCart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil // nothing to merge
		}
		return false, err
	}

	var userCart models.Cart
	err := tx.Where("user_id = ?", userID).First(&userCart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		userCart = models.Cart{UserID: userID}
		if err := tx.Create(&userCart).Error; err != nil {
			return false, err
		}
	} else if err != nil {
		return false, err
	}

	for _, guestItem := range guestCart.Items {
		var userItem models.CartItem
		lookupErr := tx.Where(
			"cart_id = ? AND product_id = ? AND size = ? AND color = ?",
			userCart.CartID, guestItem.ProductID, guestItem.Size, guestItem.Color,
		).First(&userItem).Error

		switch {
		case lookupErr == nil:
			userItem.Quantity += guestItem.Quantity
			if userItem.Quantity > models.MaxLineQuantity {
				userItem.Quantity = models.MaxLineQuantity
			}
			userItem.AddedAt = time.Now()
			if err := tx.Save(&userItem).Error; err != nil {
				return false, err
			}

		case errors.Is(lookupErr, gorm.ErrRecordNotFound):
			newItem := models.CartItem{
				CartID:    userCart.CartID,
				ProductID: guestItem.ProductID,
				Size:      guestItem.Size,
				Color:     guestItem.Color,
				Quantity:  guestItem.Quantity,
				AddedAt:   time.Now(),
			}
			if newItem.Quantity > models.MaxLineQuantity {
				newItem.Quantity = models.MaxLineQuantity
			}
			if err := tx.Create(&newItem).Error; err != nil {
				return false, err
			}

		default:
			return false, lookupErr
		}
	}

	if err := tx.Where("cart_id = ?", guestCart.CartID).Delete(&models.GuestCartItem{}).Error; err != nil {
		return false, err
	}
	if err := tx.Delete(&guestCart).Error; err != nil {
		return false, err
	}

	return len(guestCart.Items) > 0, nil
}

func mergeGuestWishlist(tx *gorm.DB, guestID, userID string) (bool, error) {
	var guestList models.GuestWishlist
	if err := tx.Preload("Items").Where("guest_id = ?", guestID).First(&guestList).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	var userList models.Wishlist
	err := tx.Where("user_id = ?", userID).First(&userList).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		userList = models.Wishlist{UserID: userID}
		if err := tx.Create(&userList).Error; err != nil {
			return false, err
		}
	} else if err != nil {
		return false, err
	}

	for _, guestItem := range guestList.Items {
		var existing models.WishlistItem
		lookupErr := tx.Where(
			"wishlist_id = ? AND product_id = ?",
			userList.ID, guestItem.ProductID,
		).First(&existing).Error

		if errors.Is(lookupErr, gorm.ErrRecordNotFound) {
			newItem := models.WishlistItem{
				WishlistID: userList.ID,
				ProductID:  guestItem.ProductID,
				AddedAt:    time.Now(),
			}
			if err := tx.Create(&newItem).Error; err != nil {
				return false, err
			}
		} else if lookupErr != nil {
			return false, lookupErr
		}
	}

	if err := tx.Where("wishlist_id = ?", guestList.ID).Delete(&models.GuestWishlistItem{}).Error; err != nil {
		return false, err
	}
	if err := tx.Delete(&guestList).Error; err != nil {
		return false, err
	}

	return len(guestList.Items) > 0, nil
}
