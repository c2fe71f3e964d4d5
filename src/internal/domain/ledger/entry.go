package ledger

import (
	"time"

	"github.com/gracekids/talent_ledger/src/internal/domain/shared"
	"github.com/gracekids/talent_ledger/src/internal/domain/student"
)

// ===========================
// EntryType 開放式類型標籤
// ===========================

// EntryType 流水類型標籤
//
// 設計決策：開放式字串標籤而非封閉枚舉 —— 新的調用方（遊戲、問答、
// 機器人指令）可以引入新類別而不需要修改核心。預定義常量只覆蓋
// 目前已知的調用方。
type EntryType string

// 預定義流水類型
const (
	EntryTypeAttendance EntryType = "attendance" // 主日出席獎勵
	EntryTypeBonus      EntryType = "bonus"      // 連續出席加給
	EntryTypePurchase   EntryType = "purchase"   // 商店兌換
	EntryTypeGame       EntryType = "game"       // 遊戲／問答獎勵
)

// String 轉換為字串表示
func (t EntryType) String() string {
	return string(t)
}

// IsEmpty 判斷是否為空標籤
func (t EntryType) IsEmpty() bool {
	return t == ""
}

// ===========================
// EntryID
// ===========================

// EntryMarker 是 EntryID 的標記類型
type EntryMarker struct{}

// EntryID 流水記錄的唯一標識符（創建時生成，永不重用）
type EntryID = shared.EntityID[EntryMarker]

// NewEntryID 生成新的流水記錄 ID（UUID v4）
func NewEntryID() EntryID {
	return shared.NewEntityID[EntryMarker]()
}

// EntryIDFromString 從字串解析流水記錄 ID
func EntryIDFromString(s string) (EntryID, error) {
	return shared.EntityIDFromString[EntryMarker](s, ErrInvalidEntryID)
}

// ===========================
// LedgerEntry 實體
// ===========================

// LedgerEntry 達倫流水記錄（append-only 審計實體）
//
// 生命週期：每次餘額變更創建恰好一筆，創建後永不更新、永不刪除。
// 因此所有欄位 unexported 且沒有任何命令方法 —— 不可變性由類型系統保證。
//
// 審計完整性：任一時點，學生餘額 == 該學生全部已提交流水 amount 之和
// （由 Application Layer 在同一事務中寫入餘額與流水保證）。
type LedgerEntry struct {
	entryID   EntryID
	studentID student.StudentID
	amount    int // 帶符號：正數入帳、負數扣帳，永不為零
	reason    string
	entryType EntryType
	createdAt time.Time
}

// NewLedgerEntry 創建新的流水記錄
//
// 業務規則：
// - amount 不能為零（ErrZeroAmount）
// - reason 不能為空（ErrEmptyReason）
// - entryType 不能為空（ErrEmptyEntryType）
// - EntryID 與 createdAt 在創建時生成，之後不可變
func NewLedgerEntry(
	studentID student.StudentID,
	amount int,
	reason string,
	entryType EntryType,
) (*LedgerEntry, error) {
	if studentID.IsEmpty() {
		return nil, student.ErrInvalidStudentID.WithContext(
			"reason", "ledger entry requires a student ID",
		)
	}

	if amount == 0 {
		return nil, ErrZeroAmount
	}

	if reason == "" {
		return nil, ErrEmptyReason
	}

	if entryType.IsEmpty() {
		return nil, ErrEmptyEntryType
	}

	return &LedgerEntry{
		entryID:   NewEntryID(),
		studentID: studentID,
		amount:    amount,
		reason:    reason,
		entryType: entryType,
		createdAt: time.Now(),
	}, nil
}

// EntryID 獲取流水記錄 ID
func (e *LedgerEntry) EntryID() EntryID {
	return e.entryID
}

// StudentID 獲取學生 ID
func (e *LedgerEntry) StudentID() student.StudentID {
	return e.studentID
}

// Amount 獲取帶符號金額
func (e *LedgerEntry) Amount() int {
	return e.amount
}

// Reason 獲取流水原因
func (e *LedgerEntry) Reason() string {
	return e.reason
}

// EntryType 獲取流水類型
func (e *LedgerEntry) EntryType() EntryType {
	return e.entryType
}

// CreatedAt 獲取創建時間
func (e *LedgerEntry) CreatedAt() time.Time {
	return e.createdAt
}

// IsCredit 判斷是否為入帳記錄
func (e *LedgerEntry) IsCredit() bool {
	return e.amount > 0
}

// ReconstructLedgerEntry 從持久化存儲重建流水記錄（僅供 Infrastructure Layer 使用）
//
// 與 NewLedgerEntry 的區別：Reconstruct 使用資料庫中既有的 EntryID 與
// createdAt，但仍驗證全部不變條件，防止損壞資料污染領域層。
func ReconstructLedgerEntry(
	entryID EntryID,
	studentID student.StudentID,
	amount int,
	reason string,
	entryType EntryType,
	createdAt time.Time,
) (*LedgerEntry, error) {
	if entryID.IsEmpty() {
		return nil, ErrInvalidEntryID.WithContext(
			"reason", "invalid entry ID in database",
		)
	}

	if studentID.IsEmpty() {
		return nil, student.ErrInvalidStudentID.WithContext(
			"reason", "invalid student ID in database",
		)
	}

	if amount == 0 {
		return nil, ErrZeroAmount.WithContext("entry_id", entryID.String())
	}

	if reason == "" {
		return nil, ErrEmptyReason.WithContext("entry_id", entryID.String())
	}

	if entryType.IsEmpty() {
		return nil, ErrEmptyEntryType.WithContext("entry_id", entryID.String())
	}

	return &LedgerEntry{
		entryID:   entryID,
		studentID: studentID,
		amount:    amount,
		reason:    reason,
		entryType: entryType,
		createdAt: createdAt,
	}, nil
}
