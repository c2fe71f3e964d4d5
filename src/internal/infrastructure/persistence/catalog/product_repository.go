package catalog

import (
	"errors"
	"strings"
	"time"

	"github.com/gracekids/talent_ledger/src/internal/domain/catalog"
	"github.com/gracekids/talent_ledger/src/internal/domain/shared"
	"gorm.io/gorm"
)

// gormTransactionContext GORM 事務上下文（Infrastructure 內部協定）
type gormTransactionContext interface {
	shared.TransactionContext
	GetDB() *gorm.DB
}

// ===========================
// GORM ProductRepository 實作
// ===========================

// GORMProductRepository GORM 實作的獎品倉儲
type GORMProductRepository struct {
	db *gorm.DB
}

// NewProductRepository 創建 GORM Repository 實例
func NewProductRepository(db *gorm.DB) catalog.ProductRepository {
	return &GORMProductRepository{db: db}
}

// Save 保存新獎品
//
// 錯誤映射：UNIQUE constraint 違反 → ErrProductAlreadyExists
func (r *GORMProductRepository) Save(ctx shared.TransactionContext, p *catalog.Product) error {
	db := r.getDB(ctx)

	model := toModel(p)

	result := db.Create(model)
	if result.Error != nil {
		if isUniqueConstraintError(result.Error) {
			return catalog.ErrProductAlreadyExists.WithContext(
				"product_id", p.ProductID().String(),
			)
		}
		return result.Error
	}

	return nil
}

// FindByID 根據獎品 ID 查找獎品（含已下架）
//
// 錯誤映射：gorm.ErrRecordNotFound → catalog.ErrProductNotFound
func (r *GORMProductRepository) FindByID(ctx shared.TransactionContext, productID catalog.ProductID) (*catalog.Product, error) {
	db := r.getDB(ctx)

	var model ProductModel
	result := db.Where("product_id = ?", productID.String()).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrProductNotFound.WithContext(
				"product_id", productID.String(),
			)
		}
		return nil, result.Error
	}

	return model.toDomain()
}

// FindActive 列出全部上架中的獎品（按名稱排序）
func (r *GORMProductRepository) FindActive(ctx shared.TransactionContext) ([]*catalog.Product, error) {
	db := r.getDB(ctx)

	var models []ProductModel
	if result := db.Where("active = ?", true).Order("name").Find(&models); result.Error != nil {
		return nil, result.Error
	}

	products := make([]*catalog.Product, 0, len(models))
	for i := range models {
		p, err := models[i].toDomain()
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, nil
}

// Update 更新獎品（全量覆寫）
//
// 使用 Save 而非 Updates：庫存可能降為 0、active 可能為 false，
// 零值欄位也必須寫入。
func (r *GORMProductRepository) Update(ctx shared.TransactionContext, p *catalog.Product) error {
	db := r.getDB(ctx)

	model := toModel(p)

	result := db.Save(model)
	if result.Error != nil {
		return result.Error
	}

	return nil
}

// AdjustStock 原子地將庫存遞增 delta（可為負）
//
// 實作：守衛條件放進同一條 UPDATE 的 WHERE ——
//
//	UPDATE products SET stock = stock + ?
//	WHERE product_id = ? AND stock + ? >= 0
//
// 兩個併發兌換爭搶同一件稀缺庫存時至多一個通過守衛；
// RowsAffected == 0 時回查區分「獎品不存在」與「庫存不足」。
func (r *GORMProductRepository) AdjustStock(ctx shared.TransactionContext, productID catalog.ProductID, delta int) (*catalog.Product, error) {
	db := r.getDB(ctx)

	result := db.Model(&ProductModel{}).
		Where("product_id = ? AND stock + ? >= 0", productID.String(), delta).
		UpdateColumns(map[string]interface{}{
			"stock":      gorm.Expr("stock + ?", delta),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := db.Model(&ProductModel{}).
			Where("product_id = ?", productID.String()).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, catalog.ErrProductNotFound.WithContext(
				"product_id", productID.String(),
			)
		}
		return nil, catalog.ErrStockInsufficient.WithContext(
			"product_id", productID.String(),
			"delta", delta,
		)
	}

	return r.FindByID(ctx, productID)
}

// ===========================
// Helper Methods
// ===========================

// getDB 獲取 GORM DB 實例
// ctx != nil 時使用事務中的 DB，否則使用預設 DB（auto-commit 模式）。
func (r *GORMProductRepository) getDB(ctx shared.TransactionContext) *gorm.DB {
	if ctx != nil {
		if txCtx, ok := ctx.(gormTransactionContext); ok {
			return txCtx.GetDB()
		}
	}
	return r.db
}

// isUniqueConstraintError 判斷是否為唯一約束錯誤
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}

	errMsg := strings.ToLower(err.Error())

	if strings.Contains(errMsg, "duplicate key value violates unique constraint") {
		return true
	}
	if strings.Contains(errMsg, "unique constraint failed") {
		return true
	}
	if strings.Contains(errMsg, "duplicate entry") {
		return true
	}

	return false
}
