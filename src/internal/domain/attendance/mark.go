package attendance

import (
	"time"

	"github.com/gracekids/talent_ledger/src/internal/domain/shared"
	"github.com/gracekids/talent_ledger/src/internal/domain/student"
)

// ===========================
// MarkStatus 與 ServiceDate
// ===========================

// MarkStatus 出缺席狀態
type MarkStatus string

// 出缺席狀態常量
const (
	StatusPresent MarkStatus = "present" // 準時出席
	StatusLate    MarkStatus = "late"    // 遲到
	StatusAbsent  MarkStatus = "absent"  // 缺席
)

// NewMarkStatus 從字串解析出缺席狀態
func NewMarkStatus(s string) (MarkStatus, error) {
	switch MarkStatus(s) {
	case StatusPresent, StatusLate, StatusAbsent:
		return MarkStatus(s), nil
	default:
		return "", ErrInvalidMarkStatus.WithContext("input", s)
	}
}

// String 轉換為字串表示
func (s MarkStatus) String() string {
	return string(s)
}

// IsAttended 判斷是否計入出席（準時或遲到都算出席，只是獎勵不同）
func (s MarkStatus) IsAttended() bool {
	return s == StatusPresent || s == StatusLate
}

// serviceDateLayout 聚會日期的存儲格式
const serviceDateLayout = "2006-01-02"

// ServiceDate 聚會日期值對象（日粒度，無時區歧義）
type ServiceDate struct {
	value string
}

// NewServiceDate 從字串解析聚會日期（格式 YYYY-MM-DD）
func NewServiceDate(s string) (ServiceDate, error) {
	t, err := time.Parse(serviceDateLayout, s)
	if err != nil {
		return ServiceDate{}, ErrInvalidServiceDate.WithContext(
			"input", s,
			"parse_error", err.Error(),
		)
	}
	// 規範化，消除 2026-1-5 之類的寬鬆寫法
	return ServiceDate{value: t.Format(serviceDateLayout)}, nil
}

// ServiceDateOf 從 time.Time 取日粒度聚會日期
func ServiceDateOf(t time.Time) ServiceDate {
	return ServiceDate{value: t.Format(serviceDateLayout)}
}

// String 轉換為字串表示（YYYY-MM-DD）
func (d ServiceDate) String() string {
	return d.value
}

// Equals 比較兩個 ServiceDate 是否相等
func (d ServiceDate) Equals(other ServiceDate) bool {
	return d.value == other.value
}

// IsZero 判斷是否為零值
func (d ServiceDate) IsZero() bool {
	return d.value == ""
}

// ===========================
// AttendanceMark 實體
// ===========================

// MarkMarker 是 MarkID 的標記類型
type MarkMarker struct{}

// MarkID 出缺席記錄的唯一標識符
type MarkID = shared.EntityID[MarkMarker]

// NewMarkID 生成新的出缺席記錄 ID（UUID v4）
func NewMarkID() MarkID {
	return shared.NewEntityID[MarkMarker]()
}

// MarkIDFromString 從字串解析出缺席記錄 ID
func MarkIDFromString(s string) (MarkID, error) {
	return shared.EntityIDFromString[MarkMarker](s, ErrInvalidMarkID)
}

// AttendanceMark 出缺席記錄實體
//
// 基數：每個學生每個聚會日期至多一筆（由資料庫唯一索引保證）。
// 老師可以事後更正狀態（present ↔ absent），更正引起的達倫增減
// 由 Application Layer 通過流水沖正，記錄本身只保存最新狀態。
type AttendanceMark struct {
	markID    MarkID
	studentID student.StudentID
	date      ServiceDate
	status    MarkStatus

	createdAt time.Time
	updatedAt time.Time
}

// NewAttendanceMark 創建新的出缺席記錄
func NewAttendanceMark(
	studentID student.StudentID,
	date ServiceDate,
	status MarkStatus,
) (*AttendanceMark, error) {
	if studentID.IsEmpty() {
		return nil, student.ErrInvalidStudentID.WithContext(
			"reason", "attendance mark requires a student ID",
		)
	}
	if date.IsZero() {
		return nil, ErrInvalidServiceDate
	}
	if _, err := NewMarkStatus(status.String()); err != nil {
		return nil, err
	}

	now := time.Now()
	return &AttendanceMark{
		markID:    NewMarkID(),
		studentID: studentID,
		date:      date,
		status:    status,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// MarkID 獲取記錄 ID
func (m *AttendanceMark) MarkID() MarkID {
	return m.markID
}

// StudentID 獲取學生 ID
func (m *AttendanceMark) StudentID() student.StudentID {
	return m.studentID
}

// Date 獲取聚會日期
func (m *AttendanceMark) Date() ServiceDate {
	return m.date
}

// Status 獲取當前狀態
func (m *AttendanceMark) Status() MarkStatus {
	return m.status
}

// CreatedAt 獲取創建時間
func (m *AttendanceMark) CreatedAt() time.Time {
	return m.createdAt
}

// UpdatedAt 獲取最後更新時間
func (m *AttendanceMark) UpdatedAt() time.Time {
	return m.updatedAt
}

// ChangeStatus 更正出缺席狀態
func (m *AttendanceMark) ChangeStatus(status MarkStatus) error {
	if _, err := NewMarkStatus(status.String()); err != nil {
		return err
	}
	m.status = status
	m.updatedAt = time.Now()
	return nil
}

// ReconstructAttendanceMark 從持久化存儲重建記錄（僅供 Infrastructure Layer 使用）
func ReconstructAttendanceMark(
	markID MarkID,
	studentID student.StudentID,
	date ServiceDate,
	status MarkStatus,
	createdAt time.Time,
	updatedAt time.Time,
) (*AttendanceMark, error) {
	if markID.IsEmpty() {
		return nil, ErrInvalidMarkID.WithContext(
			"reason", "invalid mark ID in database",
		)
	}
	if studentID.IsEmpty() {
		return nil, student.ErrInvalidStudentID.WithContext(
			"reason", "invalid student ID in database",
		)
	}
	if _, err := NewMarkStatus(status.String()); err != nil {
		return nil, err
	}

	return &AttendanceMark{
		markID:    markID,
		studentID: studentID,
		date:      date,
		status:    status,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}
