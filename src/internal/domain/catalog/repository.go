package catalog

import "github.com/gracekids/talent_ledger/src/internal/domain/shared"

// ===========================
// Product Repository 介面
// ===========================

// ProductRepository 獎品倉儲介面
//
// 設計原則：
// 1. 依賴倒置原則（DIP）：Domain Layer 定義介面，Infrastructure Layer 實作
// 2. 庫存的原子遞增下推到存儲層（AdjustStock）——
//    兩個併發兌換不可能同時觀察到足夠庫存並雙雙成功
type ProductRepository interface {
	// Save 保存新獎品
	// 錯誤：ErrProductAlreadyExists（如果 ProductID 已存在）
	Save(ctx shared.TransactionContext, p *Product) error

	// FindByID 根據獎品 ID 查找獎品（含已下架）
	// 返回：找到的獎品，或 ErrProductNotFound
	FindByID(ctx shared.TransactionContext, productID ProductID) (*Product, error)

	// FindActive 列出全部上架中的獎品（按名稱排序）
	FindActive(ctx shared.TransactionContext) ([]*Product, error)

	// Update 更新獎品（全量覆寫）
	Update(ctx shared.TransactionContext, p *Product) error

	// AdjustStock 原子地將庫存遞增 delta（可為負）
	//
	// 存儲層保證：stock + delta >= 0 的約束在同一條 UPDATE 中檢查，
	// 併發調用不可能將庫存更新為負值。
	//
	// 返回：更新後的獎品聚合
	// 錯誤：
	// - ErrProductNotFound：獎品不存在
	// - ErrStockInsufficient：遞增後庫存將為負（狀態不變）
	AdjustStock(ctx shared.TransactionContext, productID ProductID, delta int) (*Product, error)
}
