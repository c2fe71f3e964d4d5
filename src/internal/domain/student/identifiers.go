package student

import (
	"github.com/gracekids/talent_ledger/src/internal/domain/shared"
)

// StudentMarker 是 StudentID 的標記類型
// 用途：讓 StudentID 與其他實體 ID 成為不同的類型（編譯器強制檢查）
type StudentMarker struct{}

// StudentID 學生的唯一標識符
//
// 實現：EntityID[StudentMarker] 的類型別名
// 使用：id := NewStudentID() 或 StudentIDFromString(s)
type StudentID = shared.EntityID[StudentMarker]

// NewStudentID 生成新的學生 ID（UUID v4）
func NewStudentID() StudentID {
	return shared.NewEntityID[StudentMarker]()
}

// StudentIDFromString 從字串解析學生 ID
//
// 使用場景：
// - 從數據庫讀取 ID
// - 出缺席登錄、商店結帳等外部請求解析 ID
func StudentIDFromString(s string) (StudentID, error) {
	return shared.EntityIDFromString[StudentMarker](s, ErrInvalidStudentID)
}
