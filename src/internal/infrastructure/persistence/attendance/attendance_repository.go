package attendance

import (
	"errors"
	"strings"

	"github.com/gracekids/talent_ledger/src/internal/domain/attendance"
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
// GORM AttendanceRepository 實作
// ===========================

// GORMAttendanceRepository GORM 實作的出缺席倉儲
type GORMAttendanceRepository struct {
	db *gorm.DB
}

// NewAttendanceRepository 創建 GORM Repository 實例
func NewAttendanceRepository(db *gorm.DB) attendance.AttendanceRepository {
	return &GORMAttendanceRepository{db: db}
}

// Save 保存新的出缺席記錄
//
// 錯誤映射：(student_id, date) 唯一索引違反 → ErrMarkAlreadyExists
func (r *GORMAttendanceRepository) Save(ctx shared.TransactionContext, mark *attendance.AttendanceMark) error {
	db := r.getDB(ctx)

	model := toModel(mark)

	result := db.Create(model)
	if result.Error != nil {
		if isUniqueConstraintError(result.Error) {
			return attendance.ErrMarkAlreadyExists.WithContext(
				"student_id", mark.StudentID().String(),
				"date", mark.Date().String(),
			)
		}
		return result.Error
	}

	return nil
}

// FindByStudentAndDate 查找指定學生指定日期的記錄
//
// 錯誤映射：gorm.ErrRecordNotFound → attendance.ErrMarkNotFound
func (r *GORMAttendanceRepository) FindByStudentAndDate(ctx shared.TransactionContext, studentID student.StudentID, date attendance.ServiceDate) (*attendance.AttendanceMark, error) {
	db := r.getDB(ctx)

	var model AttendanceMarkModel
	result := db.Where("student_id = ? AND date = ?", studentID.String(), date.String()).
		First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, attendance.ErrMarkNotFound.WithContext(
				"student_id", studentID.String(),
				"date", date.String(),
			)
		}
		return nil, result.Error
	}

	return model.toDomain()
}

// ListRecentByStudent 列出指定學生截至 upTo（含）的記錄，由新到舊
// date 以 YYYY-MM-DD 存儲，字串比較即日期比較。
func (r *GORMAttendanceRepository) ListRecentByStudent(ctx shared.TransactionContext, studentID student.StudentID, upTo attendance.ServiceDate, limit int) ([]*attendance.AttendanceMark, error) {
	db := r.getDB(ctx)

	var models []AttendanceMarkModel
	result := db.Where("student_id = ? AND date <= ?", studentID.String(), upTo.String()).
		Order("date DESC").
		Limit(limit).
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	marks := make([]*attendance.AttendanceMark, 0, len(models))
	for i := range models {
		m, err := models[i].toDomain()
		if err != nil {
			return nil, err
		}
		marks = append(marks, m)
	}
	return marks, nil
}

// Update 更新出缺席記錄（狀態更正）
func (r *GORMAttendanceRepository) Update(ctx shared.TransactionContext, mark *attendance.AttendanceMark) error {
	db := r.getDB(ctx)

	model := toModel(mark)

	result := db.Save(model)
	if result.Error != nil {
		return result.Error
	}

	return nil
}

// ===========================
// Helper Methods
// ===========================

// getDB 獲取 GORM DB 實例
// ctx != nil 時使用事務中的 DB，否則使用預設 DB（auto-commit 模式）。
func (r *GORMAttendanceRepository) getDB(ctx shared.TransactionContext) *gorm.DB {
	if ctx != nil {
		if txCtx, ok := ctx.(gormTransactionContext); ok {
			return txCtx.GetDB()
		}
	}
	return r.db
}

// isUniqueConstraintError 判斷是否為唯一約束錯誤
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}

	errMsg := strings.ToLower(err.Error())

	if strings.Contains(errMsg, "duplicate key value violates unique constraint") {
		return true
	}
	if strings.Contains(errMsg, "unique constraint failed") {
		return true
	}
	if strings.Contains(errMsg, "duplicate entry") {
		return true
	}

	return false
}
