package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ExclusiveFlagScope 描述"同一归属下至多一条记录带标记"的表结构
type ExclusiveFlagScope struct {
	Table       string
	OwnerTable  string
	OwnerColumn string
	FlagColumn  string
}

var (
	// AddressDefaultScope 每个用户至多一个默认地址
	AddressDefaultScope = ExclusiveFlagScope{Table: "addresses", OwnerTable: "users", OwnerColumn: "user_id", FlagColumn: "is_default"}
	// ProductImagePrimaryScope 每个商品至多一张主图
	ProductImagePrimaryScope = ExclusiveFlagScope{Table: "product_images", OwnerTable: "products", OwnerColumn: "product_id", FlagColumn: "is_primary"}
)

// clearExclusiveFlag 清除归属下除 exceptID 外其余记录的标记
func clearExclusiveFlag(db *gorm.DB, scope ExclusiveFlagScope, ownerID, exceptID uint) error {
	query := db.Table(scope.Table).
		Where(scope.OwnerColumn+" = ? AND "+scope.FlagColumn+" = ?", ownerID, true)
	if exceptID != 0 {
		query = query.Where("id <> ?", exceptID)
	}
	return query.Update(scope.FlagColumn, false).Error
}

// lockExclusiveOwner 先锁归属行，再按 id 顺序锁住其下全部记录，返回记录 id（sqlite 忽略锁子句）。
// 归属下尚无记录时仍由归属行串行化；归属行用 NO KEY UPDATE，不阻塞引用它的外键插入。
func lockExclusiveOwner(db *gorm.DB, scope ExclusiveFlagScope, ownerID uint) ([]uint, error) {
	var owner []uint
	if err := db.Clauses(clause.Locking{Strength: "NO KEY UPDATE"}).
		Table(scope.OwnerTable).
		Where("id = ?", ownerID).
		Pluck("id", &owner).Error; err != nil {
		return nil, err
	}
	var ids []uint
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Table(scope.Table).
		Where(scope.OwnerColumn+" = ?", ownerID).
		Order("id").
		Pluck("id", &ids).Error
	return ids, err
}

// setExclusiveFlag 锁住归属后先清除兄弟记录标记，再标记目标记录；目标不属于该归属时返回 gorm.ErrRecordNotFound。
// 调用方负责将整个过程放在同一事务内。
func setExclusiveFlag(db *gorm.DB, scope ExclusiveFlagScope, ownerID, recordID uint) error {
	if _, err := lockExclusiveOwner(db, scope, ownerID); err != nil {
		return err
	}
	if err := clearExclusiveFlag(db, scope, ownerID, recordID); err != nil {
		return err
	}
	result := db.Table(scope.Table).
		Where("id = ? AND "+scope.OwnerColumn+" = ?", recordID, ownerID).
		Update(scope.FlagColumn, true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// 已带标记时部分驱动返回 0 行，需再确认记录存在
		var count int64
		if err := db.Table(scope.Table).
			Where("id = ? AND "+scope.OwnerColumn+" = ?", recordID, ownerID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
	}
	return nil
}

// countExclusiveFlag 统计归属下带标记的记录数
func countExclusiveFlag(db *gorm.DB, scope ExclusiveFlagScope, ownerID uint) (int64, error) {
	var count int64
	err := db.Table(scope.Table).
		Where(scope.OwnerColumn+" = ? AND "+scope.FlagColumn+" = ?", ownerID, true).
		Count(&count).Error
	return count, err
}
