package ledger

import (
	"github.com/gracekids/talent_ledger/src/internal/domain/ledger"
	"github.com/gracekids/talent_ledger/src/internal/domain/shared"
	"github.com/gracekids/talent_ledger/src/internal/domain/student"
	"gorm.io/gorm"
)

// gormTransactionContext GORM 事務上下文（Infrastructure 內部協定）
type gormTransactionContext interface {
	shared.TransactionContext
	GetDB() *gorm.DB
}

// ===========================
// GORM LedgerRepository 實作
// ===========================

// GORMLedgerRepository GORM 實作的流水倉儲
//
// 介面層面就是 append-only，實作自然也只有 INSERT 與查詢。
type GORMLedgerRepository struct {
	db *gorm.DB
}

// NewLedgerRepository 創建 GORM Repository 實例
func NewLedgerRepository(db *gorm.DB) ledger.LedgerRepository {
	return &GORMLedgerRepository{db: db}
}

// Append 寫入一筆新的流水記錄
func (r *GORMLedgerRepository) Append(ctx shared.TransactionContext, entry *ledger.LedgerEntry) error {
	db := r.getDB(ctx)

	model := toModel(entry)

	if result := db.Create(model); result.Error != nil {
		return result.Error
	}

	return nil
}

// ListByStudent 列出指定學生的全部流水（由新到舊）
func (r *GORMLedgerRepository) ListByStudent(ctx shared.TransactionContext, studentID student.StudentID) ([]*ledger.LedgerEntry, error) {
	db := r.getDB(ctx)

	var models []LedgerEntryModel
	result := db.Where("student_id = ?", studentID.String()).
		Order("created_at DESC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	entries := make([]*ledger.LedgerEntry, 0, len(models))
	for i := range models {
		e, err := models[i].toDomain()
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// SumByStudent 計算指定學生全部流水金額之和
func (r *GORMLedgerRepository) SumByStudent(ctx shared.TransactionContext, studentID student.StudentID) (int, error) {
	db := r.getDB(ctx)

	var sum int
	result := db.Model(&LedgerEntryModel{}).
		Where("student_id = ?", studentID.String()).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum)
	if result.Error != nil {
		return 0, result.Error
	}

	return sum, nil
}

// CountByStudent 計算指定學生的流水筆數
func (r *GORMLedgerRepository) CountByStudent(ctx shared.TransactionContext, studentID student.StudentID) (int64, error) {
	db := r.getDB(ctx)

	var count int64
	result := db.Model(&LedgerEntryModel{}).
		Where("student_id = ?", studentID.String()).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

// ===========================
// Helper Methods
// ===========================

// getDB 獲取 GORM DB 實例
// ctx != nil 時使用事務中的 DB，否則使用預設 DB（auto-commit 模式）。
func (r *GORMLedgerRepository) getDB(ctx shared.TransactionContext) *gorm.DB {
	if ctx != nil {
		if txCtx, ok := ctx.(gormTransactionContext); ok {
			return txCtx.GetDB()
		}
	}
	return r.db
}
