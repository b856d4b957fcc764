package service

import (
	"errors"

	"github.com/kasuwa-shop/internal/models"

	"gorm.io/gorm"
)

// exclusiveFlagBinding 描述一类"归属内唯一标记"记录
type exclusiveFlagBinding struct {
	// lock 按 id 顺序锁住归属下全部记录，所有改动标记的事务都先调用它
	lock func(tx *gorm.DB, ownerID uint) ([]uint, error)
	// owner 返回记录归属 ID，记录不存在时 found 为 false
	owner    func(tx *gorm.DB, recordID uint) (ownerID uint, found bool, err error)
	set      func(tx *gorm.DB, ownerID, recordID uint) error
	notFound error
}

// setExclusiveFlag 在独立事务中把 recordID 设为 ownerID 下唯一带标记的记录
func setExclusiveFlag(binding exclusiveFlagBinding, ownerID, recordID uint) error {
	return models.DB.Transaction(func(tx *gorm.DB) error {
		return applyExclusiveFlag(tx, binding, ownerID, recordID)
	})
}

// applyExclusiveFlag 在调用方事务内执行 clear-then-set
func applyExclusiveFlag(tx *gorm.DB, binding exclusiveFlagBinding, ownerID, recordID uint) error {
	if recordID == 0 {
		return binding.notFound
	}
	if _, err := binding.lock(tx, ownerID); err != nil {
		return err
	}
	actualOwner, found, err := binding.owner(tx, recordID)
	if err != nil {
		return err
	}
	if !found {
		return binding.notFound
	}
	if actualOwner != ownerID {
		return ErrOwnershipMismatch
	}
	if err := binding.set(tx, ownerID, recordID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return binding.notFound
		}
		return err
	}
	return nil
}
