package attendance

import (
	"github.com/gracekids/talent_ledger/src/internal/domain/shared"
	"github.com/gracekids/talent_ledger/src/internal/domain/student"
)

// ===========================
// AttendanceMark Repository 介面
// ===========================

// AttendanceRepository 出缺席記錄倉儲介面
type AttendanceRepository interface {
	// Save 保存新的出缺席記錄
	// 錯誤：ErrMarkAlreadyExists（同一學生同一日期已有記錄）
	Save(ctx shared.TransactionContext, mark *AttendanceMark) error

	// FindByStudentAndDate 查找指定學生指定日期的記錄
	// 返回：找到的記錄，或 ErrMarkNotFound
	FindByStudentAndDate(ctx shared.TransactionContext, studentID student.StudentID, date ServiceDate) (*AttendanceMark, error)

	// ListRecentByStudent 列出指定學生截至 upTo（含）的記錄，
	// 按聚會日期由新到舊，至多 limit 筆。用於連續出席計算。
	ListRecentByStudent(ctx shared.TransactionContext, studentID student.StudentID, upTo ServiceDate, limit int) ([]*AttendanceMark, error)

	// Update 更新出缺席記錄（狀態更正）
	Update(ctx shared.TransactionContext, mark *AttendanceMark) error
}
