package student

import (
	"time"

	"github.com/gracekids/talent_ledger/src/internal/domain/shared"
	"github.com/gracekids/talent_ledger/src/internal/domain/student"
)

// ===========================
// EnrollStudent Use Case
// ===========================

// EnrollStudentCommand 學生註冊指令（Input DTO）
type EnrollStudentCommand struct {
	Name string // 學生姓名（非空）
}

// EnrollStudentResult 學生註冊結果（Output DTO）
type EnrollStudentResult struct {
	StudentID string
	Name      string
	Balance   int // 永遠為 0（初始餘額；之後的變更只走達倫調整）
	CreatedAt time.Time
}

// EnrollStudentUseCase 學生註冊 Use Case
//
// 學生由招生（註冊）流程創建，之後餘額只通過達倫流水操作變更。
type EnrollStudentUseCase struct {
	studentRepo student.StudentRepository
	txManager   shared.TransactionManager
}

// NewEnrollStudentUseCase 創建 Use Case 實例
func NewEnrollStudentUseCase(
	studentRepo student.StudentRepository,
	txManager shared.TransactionManager,
) *EnrollStudentUseCase {
	return &EnrollStudentUseCase{
		studentRepo: studentRepo,
		txManager:   txManager,
	}
}

// Execute 執行學生註冊
func (uc *EnrollStudentUseCase) Execute(cmd EnrollStudentCommand) (*EnrollStudentResult, error) {
	s, err := student.NewStudent(cmd.Name)
	if err != nil {
		return nil, err
	}

	err = uc.txManager.InTransaction(func(ctx shared.TransactionContext) error {
		return uc.studentRepo.Save(ctx, s)
	})
	if err != nil {
		return nil, err
	}

	return &EnrollStudentResult{
		StudentID: s.StudentID().String(),
		Name:      s.Name(),
		Balance:   s.Balance().Value(),
		CreatedAt: s.CreatedAt(),
	}, nil
}
