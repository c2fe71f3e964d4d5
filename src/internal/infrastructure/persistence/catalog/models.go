package catalog

import (
	"time"

	"github.com/gracekids/talent_ledger/src/internal/domain/catalog"
)

// ===========================
// GORM Models
// ===========================

// ProductModel 獎品資料表模型
//
// 資料庫約束：
// - product_id: 主鍵（UUID）
// - price: CHECK price > 0
// - stock: CHECK stock >= 0 —— 庫存不變條件的最後防線
// - active: 下架後保留記錄（歷史流水引用獎品名稱）
type ProductModel struct {
	ProductID string `gorm:"column:product_id;type:varchar(36);primaryKey"`
	Name      string `gorm:"column:name;type:varchar(100);not null"`
	Price     int    `gorm:"column:price;not null;check:price > 0"`
	Stock     int    `gorm:"column:stock;not null;default:0;check:stock >= 0"`
	Active    bool   `gorm:"column:active;not null;default:true"`

	CreatedAt time.Time `gorm:"column:created_at;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

// TableName 指定資料表名稱
func (ProductModel) TableName() string {
	return "products"
}

// ===========================
// Mapper Functions
// ===========================

// toDomain 將 GORM 模型轉換為 Domain 聚合
// ReconstructProduct 會重新驗證不變條件（價格 > 0、庫存 >= 0）。
func (m *ProductModel) toDomain() (*catalog.Product, error) {
	productID, err := catalog.ProductIDFromString(m.ProductID)
	if err != nil {
		return nil, err
	}

	return catalog.ReconstructProduct(
		productID,
		m.Name,
		m.Price,
		m.Stock,
		m.Active,
		m.CreatedAt,
		m.UpdatedAt,
	)
}

// toModel 將 Domain 聚合轉換為 GORM 模型
func toModel(p *catalog.Product) *ProductModel {
	return &ProductModel{
		ProductID: p.ProductID().String(),
		Name:      p.Name(),
		Price:     p.Price().Value(),
		Stock:     p.Stock().Value(),
		Active:    p.IsActive(),
		CreatedAt: p.CreatedAt(),
		UpdatedAt: p.UpdatedAt(),
	}
}
