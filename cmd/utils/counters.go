package utils

import (
	"fmt"

	"gorm.io/gorm"
)

// BumpCounter adjusts a denormalized child counter on a parent row. It must
// run on the same transaction as the child insert or delete so the pair
// commits or rolls back together.
//
// Decrements are clamped at zero. If the parent row no longer exists the
// caller gets gorm.ErrRecordNotFound: a missing parent under a live child
// is a referential-integrity violation and must fail the request.
func BumpCounter(tx *gorm.DB, parent interface{}, parentID uint, column string, delta int) error {
	query := tx.Model(parent).Where("id = ?", parentID)
	if delta < 0 {
		query = query.Where(fmt.Sprintf("%s >= ?", column), -delta)
	}

	result := query.UpdateColumn(column, gorm.Expr(fmt.Sprintf("%s + ?", column), delta))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		// Either the parent vanished or a decrement hit the zero guard.
		var count int64
		if err := tx.Model(parent).Where("id = ?", parentID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
	}
	return nil
}
