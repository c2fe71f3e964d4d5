package persistence

import (
	"github.com/gracekids/talent_ledger/src/internal/domain/shared"
	"gorm.io/gorm"
)

// ===========================
// GORM TransactionManager 實作
// ===========================

// GORMTransactionManager GORM 事務管理器
//
// 事務保證（餘額／庫存不變條件的基石）：
// - fn 返回 nil → 提交
// - fn 返回 error → 回滾，錯誤原樣向上傳播
// - fn panic → 回滾後重新拋出（由 gorm.DB.Transaction 保證）
//
// 原子性下推到存儲：應用層不持有進程內鎖 —— 多個進程實例
// 可能同時運行，守衛條件與事務隔離由資料庫負責。
type GORMTransactionManager struct {
	db *gorm.DB
}

// NewGORMTransactionManager 創建事務管理器實例
func NewGORMTransactionManager(db *gorm.DB) shared.TransactionManager {
	return &GORMTransactionManager{db: db}
}

// InTransaction 在單一資料庫事務中執行 fn
func (m *GORMTransactionManager) InTransaction(fn func(ctx shared.TransactionContext) error) error {
	return m.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewGORMTransactionContext(tx))
	})
}
