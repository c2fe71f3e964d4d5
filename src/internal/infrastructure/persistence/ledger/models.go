package ledger

import (
	"time"

	"github.com/gracekids/talent_ledger/src/internal/domain/ledger"
	"github.com/gracekids/talent_ledger/src/internal/domain/student"
)

// ===========================
// GORM Models
// ===========================

// LedgerEntryModel 達倫流水資料表模型
//
// Append-only：資料表沒有 updated_at —— 流水寫入後不再變更。
// student_id 建索引支撐對帳單查詢與審計求和。
type LedgerEntryModel struct {
	EntryID   string `gorm:"column:entry_id;type:varchar(36);primaryKey"`
	StudentID string `gorm:"column:student_id;type:varchar(36);not null;index"`
	Amount    int    `gorm:"column:amount;not null"`
	Reason    string `gorm:"column:reason;type:varchar(255);not null"`
	EntryType string `gorm:"column:entry_type;type:varchar(50);not null"`

	CreatedAt time.Time `gorm:"column:created_at;not null"`
}

// TableName 指定資料表名稱
func (LedgerEntryModel) TableName() string {
	return "ledger_entries"
}

// ===========================
// Mapper Functions
// ===========================

// toDomain 將 GORM 模型轉換為 Domain 實體
func (m *LedgerEntryModel) toDomain() (*ledger.LedgerEntry, error) {
	entryID, err := ledger.EntryIDFromString(m.EntryID)
	if err != nil {
		return nil, err
	}

	studentID, err := student.StudentIDFromString(m.StudentID)
	if err != nil {
		return nil, err
	}

	return ledger.ReconstructLedgerEntry(
		entryID,
		studentID,
		m.Amount,
		m.Reason,
		ledger.EntryType(m.EntryType),
		m.CreatedAt,
	)
}

// toModel 將 Domain 實體轉換為 GORM 模型
func toModel(e *ledger.LedgerEntry) *LedgerEntryModel {
	return &LedgerEntryModel{
		EntryID:   e.EntryID().String(),
		StudentID: e.StudentID().String(),
		Amount:    e.Amount(),
		Reason:    e.Reason(),
		EntryType: e.EntryType().String(),
		CreatedAt: e.CreatedAt(),
	}
}
