package student

import (
	"errors"
	"strings"
	"time"

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
// GORM StudentRepository 實作
// ===========================

// GORMStudentRepository GORM 實作的學生倉儲
//
// 職責：
// - Domain ↔ GORM 模型轉換與錯誤映射
// - 不包含業務邏輯（業務邏輯在 Domain Layer）
// - AdjustBalance 把餘額守衛下推到單條 UPDATE，
//   供兌換／調整流程在事務中原子遞增
type GORMStudentRepository struct {
	db *gorm.DB
}

// NewStudentRepository 創建 GORM Repository 實例
func NewStudentRepository(db *gorm.DB) student.StudentRepository {
	return &GORMStudentRepository{db: db}
}

// Save 保存新學生
//
// 錯誤映射：
// - UNIQUE constraint 違反 → ErrStudentAlreadyExists
// - 其他資料庫錯誤 → 原始錯誤
func (r *GORMStudentRepository) Save(ctx shared.TransactionContext, s *student.Student) error {
	db := r.getDB(ctx)

	model := toModel(s)

	result := db.Create(model)
	if result.Error != nil {
		if isUniqueConstraintError(result.Error) {
			return student.ErrStudentAlreadyExists.WithContext(
				"student_id", s.StudentID().String(),
			)
		}
		return result.Error
	}

	return nil
}

// FindByID 根據學生 ID 查找學生
//
// 錯誤映射：gorm.ErrRecordNotFound → student.ErrStudentNotFound
func (r *GORMStudentRepository) FindByID(ctx shared.TransactionContext, studentID student.StudentID) (*student.Student, error) {
	db := r.getDB(ctx)

	var model StudentModel
	result := db.Where("student_id = ?", studentID.String()).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, student.ErrStudentNotFound.WithContext(
				"student_id", studentID.String(),
			)
		}
		return nil, result.Error
	}

	return model.toDomain()
}

// FindAll 列出全部學生（按姓名排序）
func (r *GORMStudentRepository) FindAll(ctx shared.TransactionContext) ([]*student.Student, error) {
	db := r.getDB(ctx)

	var models []StudentModel
	if result := db.Order("name").Find(&models); result.Error != nil {
		return nil, result.Error
	}

	students := make([]*student.Student, 0, len(models))
	for i := range models {
		s, err := models[i].toDomain()
		if err != nil {
			return nil, err
		}
		students = append(students, s)
	}
	return students, nil
}

// Update 更新學生（全量覆寫）
//
// 使用 Save 而非 Updates：餘額可能降為 0，零值欄位也必須寫入。
func (r *GORMStudentRepository) Update(ctx shared.TransactionContext, s *student.Student) error {
	db := r.getDB(ctx)

	model := toModel(s)

	result := db.Save(model)
	if result.Error != nil {
		return result.Error
	}

	return nil
}

// AdjustBalance 原子地將餘額遞增 delta（可為負）
//
// 實作：守衛條件放進同一條 UPDATE 的 WHERE ——
//
//	UPDATE students SET balance = balance + ?
//	WHERE student_id = ? AND balance + ? >= 0
//
// 兩個併發扣帳不可能都通過守衛；RowsAffected == 0 時回查區分
// 「學生不存在」與「餘額不足」。
func (r *GORMStudentRepository) AdjustBalance(ctx shared.TransactionContext, studentID student.StudentID, delta int) (*student.Student, error) {
	db := r.getDB(ctx)

	result := db.Model(&StudentModel{}).
		Where("student_id = ? AND balance + ? >= 0", studentID.String(), delta).
		UpdateColumns(map[string]interface{}{
			"balance":    gorm.Expr("balance + ?", delta),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := db.Model(&StudentModel{}).
			Where("student_id = ?", studentID.String()).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, student.ErrStudentNotFound.WithContext(
				"student_id", studentID.String(),
			)
		}
		return nil, student.ErrBalanceInsufficient.WithContext(
			"student_id", studentID.String(),
			"delta", delta,
		)
	}

	return r.FindByID(ctx, studentID)
}

// ===========================
// Helper Methods
// ===========================

// getDB 獲取 GORM DB 實例
// ctx != nil 時使用事務中的 DB，否則使用預設 DB（auto-commit 模式）。
func (r *GORMStudentRepository) getDB(ctx shared.TransactionContext) *gorm.DB {
	if ctx != nil {
		if txCtx, ok := ctx.(gormTransactionContext); ok {
			return txCtx.GetDB()
		}
	}
	return r.db
}

// isUniqueConstraintError 判斷是否為唯一約束錯誤
// 支持 PostgreSQL / SQLite / MySQL 的錯誤訊息格式。
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
