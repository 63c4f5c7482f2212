package helper

import (
	"errors"
	"time"

	"cinema_tickets/constants"
	"cinema_tickets/model"
	"cinema_tickets/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrCartClosed = errors.New("cart is checked out")

// GetOrCreateCart returns the user's OPEN cart, creating one only if
// none exists. Idempotent per user: viewing a cart never spawns a second
// row. The partial unique index idx_user_open_cart backs this up at the
// storage level, so when two first views race the loser re-fetches the
// winner's cart instead of creating a duplicate.
func GetOrCreateCart(tx *gorm.DB, userId uint) (*model.Cart, error) {
	var cart model.Cart
	err := tx.Where("user_id = ? AND status = ?", userId, constants.CART_STATUS_OPEN).
		First(&cart).Error
	if err == nil {
		return &cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	cart = model.Cart{
		UserId:     userId,
		PublicCode: "CRT-" + uuid.New().String()[:8],
		Status:     constants.CART_STATUS_OPEN,
		Total:      0,
	}
	if err := tx.Create(&cart).Error; err != nil {
		if IsUniqueViolation(err) {
			var existing model.Cart
			if refetch := tx.Where("user_id = ? AND status = ?", userId, constants.CART_STATUS_OPEN).
				First(&existing).Error; refetch == nil {
				return &existing, nil
			}
		}
		return nil, err
	}
	return &cart, nil
}

// GetOpenCart fetches the user's OPEN cart without creating one.
func GetOpenCart(tx *gorm.DB, userId uint) (*model.Cart, error) {
	var cart model.Cart
	if err := tx.Where("user_id = ? AND status = ?", userId, constants.CART_STATUS_OPEN).
		First(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// EnsureOpen rejects mutations on a checked-out cart.
func EnsureOpen(cart *model.Cart) error {
	if cart.Status != constants.CART_STATUS_OPEN {
		return ErrCartClosed
	}
	return nil
}

// RecomputeCartTotal derives cart.total from its line subtotals and saves
// it. Must run inside the same transaction as the line mutation so total
// always equals the sum of subtotals at commit.
func RecomputeCartTotal(tx *gorm.DB, cartId uint) (float64, error) {
	var foodSum, sessionSum float64
	if err := tx.Model(&model.FoodLine{}).
		Where("cart_id = ?", cartId).
		Select("COALESCE(SUM(subtotal), 0)").
		Scan(&foodSum).Error; err != nil {
		return 0, err
	}
	if err := tx.Model(&model.SessionLine{}).
		Where("cart_id = ?", cartId).
		Select("COALESCE(SUM(subtotal), 0)").
		Scan(&sessionSum).Error; err != nil {
		return 0, err
	}

	total := utils.Round2(foodSum + sessionSum)
	if err := tx.Model(&model.Cart{}).
		Where("id = ?", cartId).
		Update("total", total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// FinalizeCart flips an OPEN cart to CHECKED_OUT, stamping a fresh
// receipt code and the checkout time. The status guard plus the
// RowsAffected check make the transition happen exactly once: a second
// finalize of the same cart gets ErrCartClosed instead of a receipt
// that was never persisted.
func FinalizeCart(tx *gorm.DB, cartId uint) (string, error) {
	receiptCode := "RCP-" + uuid.New().String()[:8]
	res := tx.Model(&model.Cart{}).
		Where("id = ? AND status = ?", cartId, constants.CART_STATUS_OPEN).
		Updates(map[string]interface{}{
			"public_code":    receiptCode,
			"status":         constants.CART_STATUS_CHECKED_OUT,
			"checked_out_at": time.Now(),
		})
	if res.Error != nil {
		return "", res.Error
	}
	if res.RowsAffected == 0 {
		return "", ErrCartClosed
	}
	return receiptCode, nil
}

// CountCartLines reports how many line items a cart holds.
func CountCartLines(tx *gorm.DB, cartId uint) (int64, error) {
	var foodCount, sessionCount int64
	if err := tx.Model(&model.FoodLine{}).Where("cart_id = ?", cartId).Count(&foodCount).Error; err != nil {
		return 0, err
	}
	if err := tx.Model(&model.SessionLine{}).Where("cart_id = ?", cartId).Count(&sessionCount).Error; err != nil {
		return 0, err
	}
	return foodCount + sessionCount, nil
}
