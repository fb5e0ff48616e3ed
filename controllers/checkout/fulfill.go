package checkoutControllers

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/zoro-store/zoro-api/models"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrAlreadyProcessed  = errors.New("checkout session already processed")
)

// Line is one validated checkout line with the unit price snapshotted at
// session-creation time.
type Line struct {
	ProductID uint    `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"price"`
	Name      string  `json:"name"`
	Image     string  `json:"image"`
}

// FulfillCheckout turns a completed payment session into an Order exactly
// once. The order, its items and every stock decrement land in a single
// transaction; the decrement is conditional on remaining stock so two
// concurrent fulfillments can never oversell — the second one rolls back.
//
// Returns ErrAlreadyProcessed (with the existing order) when the session id
// was fulfilled before, which callers treat as success.
func FulfillCheckout(db *gorm.DB, sessionID, userID, address string, lines []Line, total float64) (*models.Order, error) {
	var existing models.Order
	err := db.Where("checkout_session_id = ?", sessionID).First(&existing).Error
	if err == nil {
		return &existing, ErrAlreadyProcessed
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	order := models.Order{
		UserID:            userID,
		CheckoutSessionID: sessionID,
		Total:             total,
		Status:            models.OrderStatusPaid,
		Address:           address,
		CreatedAt:         time.Now(),
	}
	for _, line := range lines {
		order.Items = append(order.Items, models.OrderItem{
			ProductID:    line.ProductID,
			ProductName:  line.Name,
			ProductImage: line.Image,
			Price:        line.UnitPrice,
			Quantity:     line.Quantity,
		})
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		// Unique index on checkout_session_id catches the race where two
		// deliveries pass the lookup above; the loser fails here and rolls back.
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		for _, line := range lines {
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", line.ProductID, line.Quantity).
				UpdateColumns(map[string]interface{}{
					"stock":    gorm.Expr("stock - ?", line.Quantity),
					"in_stock": gorm.Expr("stock - ? > 0", line.Quantity),
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrInsufficientStock
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &order, nil
}
