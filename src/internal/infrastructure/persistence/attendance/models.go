package attendance

import (
	"time"

	"github.com/gracekids/talent_ledger/src/internal/domain/attendance"
	"github.com/gracekids/talent_ledger/src/internal/domain/student"
)

// ===========================
// GORM Models
// ===========================

// AttendanceMarkModel 出缺席記錄資料表模型
//
// 唯一索引 (student_id, date)：每個學生每個聚會日期至多一筆，
// 重複點名由資料庫拒絕。日期以 YYYY-MM-DD 字串存儲，排序即日期序。
type AttendanceMarkModel struct {
	MarkID    string `gorm:"column:mark_id;type:varchar(36);primaryKey"`
	StudentID string `gorm:"column:student_id;type:varchar(36);not null;uniqueIndex:idx_marks_student_date"`
	Date      string `gorm:"column:date;type:varchar(10);not null;uniqueIndex:idx_marks_student_date"`
	Status    string `gorm:"column:status;type:varchar(20);not null"`

	CreatedAt time.Time `gorm:"column:created_at;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

// TableName 指定資料表名稱
func (AttendanceMarkModel) TableName() string {
	return "attendance_marks"
}

// ===========================
// Mapper Functions
// ===========================

// toDomain 將 GORM 模型轉換為 Domain 實體
func (m *AttendanceMarkModel) toDomain() (*attendance.AttendanceMark, error) {
	markID, err := attendance.MarkIDFromString(m.MarkID)
	if err != nil {
		return nil, err
	}

	studentID, err := student.StudentIDFromString(m.StudentID)
	if err != nil {
		return nil, err
	}

	date, err := attendance.NewServiceDate(m.Date)
	if err != nil {
		return nil, err
	}

	return attendance.ReconstructAttendanceMark(
		markID,
		studentID,
		date,
		attendance.MarkStatus(m.Status),
		m.CreatedAt,
		m.UpdatedAt,
	)
}

// toModel 將 Domain 實體轉換為 GORM 模型
func toModel(mark *attendance.AttendanceMark) *AttendanceMarkModel {
	return &AttendanceMarkModel{
		MarkID:    mark.MarkID().String(),
		StudentID: mark.StudentID().String(),
		Date:      mark.Date().String(),
		Status:    mark.Status().String(),
		CreatedAt: mark.CreatedAt(),
		UpdatedAt: mark.UpdatedAt(),
	}
}
