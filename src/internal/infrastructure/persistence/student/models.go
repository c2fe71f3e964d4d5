package student

import (
	"time"

	"github.com/gracekids/talent_ledger/src/internal/domain/student"
)

// ===========================
// GORM Models
// ===========================

// StudentModel 學生資料表模型
//
// 設計原則：
// - 僅用於 Infrastructure Layer（不暴露給 Domain Layer）
// - 與 Domain Student 聚合分離（Mapper 轉換）
//
// 資料庫約束：
// - student_id: 主鍵（UUID）
// - balance: 達倫餘額，CHECK balance >= 0 —— 不變條件的最後防線，
//   即使應用層檢查被繞過，資料庫也拒絕負餘額
type StudentModel struct {
	StudentID string `gorm:"column:student_id;type:varchar(36);primaryKey"`
	Name      string `gorm:"column:name;type:varchar(100);not null"`
	Balance   int    `gorm:"column:balance;not null;default:0;check:balance >= 0"`

	CreatedAt time.Time `gorm:"column:created_at;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

// TableName 指定資料表名稱
func (StudentModel) TableName() string {
	return "students"
}

// ===========================
// Mapper Functions
// ===========================

// toDomain 將 GORM 模型轉換為 Domain 聚合
// ReconstructStudent 會重新驗證不變條件（餘額 >= 0）。
func (m *StudentModel) toDomain() (*student.Student, error) {
	studentID, err := student.StudentIDFromString(m.StudentID)
	if err != nil {
		return nil, err
	}

	return student.ReconstructStudent(
		studentID,
		m.Name,
		m.Balance,
		m.CreatedAt,
		m.UpdatedAt,
	)
}

// toModel 將 Domain 聚合轉換為 GORM 模型
func toModel(s *student.Student) *StudentModel {
	return &StudentModel{
		StudentID: s.StudentID().String(),
		Name:      s.Name(),
		Balance:   s.Balance().Value(),
		CreatedAt: s.CreatedAt(),
		UpdatedAt: s.UpdatedAt(),
	}
}
