package ledger

import (
	"fmt"
	"time"

	"github.com/gracekids/talent_ledger/src/internal/domain/ledger"
	"github.com/gracekids/talent_ledger/src/internal/domain/shared"
	"github.com/gracekids/talent_ledger/src/internal/domain/student"
)

// GetStatementQuery 查詢達倫對帳單的查詢
type GetStatementQuery struct {
	StudentID string
}

// StatementEntry 對帳單中的單筆流水
type StatementEntry struct {
	EntryID   string
	Amount    int
	Reason    string
	EntryType string
	CreatedAt time.Time
}

// GetStatementResult 查詢達倫對帳單的結果
//
// 審計完整性：EntrySum 應等於 Balance（學生初始餘額為 0，
// 之後的每次變更都有流水）。
type GetStatementResult struct {
	StudentID string
	Name      string
	Balance   int
	Entries   []StatementEntry
	EntrySum  int
}

// GetStatementUseCase 查詢達倫對帳單 Use Case
type GetStatementUseCase struct {
	studentRepo student.StudentRepository
	ledgerRepo  ledger.LedgerRepository
}

// NewGetStatementUseCase 創建 Use Case 實例
func NewGetStatementUseCase(
	studentRepo student.StudentRepository,
	ledgerRepo ledger.LedgerRepository,
) *GetStatementUseCase {
	return &GetStatementUseCase{
		studentRepo: studentRepo,
		ledgerRepo:  ledgerRepo,
	}
}

// Execute 執行查詢（獨立讀操作，auto-commit 模式）
func (uc *GetStatementUseCase) Execute(query GetStatementQuery) (*GetStatementResult, error) {
	return uc.ExecuteWithContext(nil, query)
}

// ExecuteWithContext 在事務上下文中執行查詢
//
// 使用場景：在已有事務中讀取（保證與其他操作的一致性視圖）；
// 獨立查詢時可傳入 nil。
func (uc *GetStatementUseCase) ExecuteWithContext(
	ctx shared.TransactionContext,
	query GetStatementQuery,
) (*GetStatementResult, error) {
	studentID, err := student.StudentIDFromString(query.StudentID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse student ID: %w", err)
	}

	s, err := uc.studentRepo.FindByID(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to find student: %w", err)
	}

	entries, err := uc.ledgerRepo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}

	statementEntries := make([]StatementEntry, 0, len(entries))
	sum := 0
	for _, e := range entries {
		sum += e.Amount()
		statementEntries = append(statementEntries, StatementEntry{
			EntryID:   e.EntryID().String(),
			Amount:    e.Amount(),
			Reason:    e.Reason(),
			EntryType: e.EntryType().String(),
			CreatedAt: e.CreatedAt(),
		})
	}

	return &GetStatementResult{
		StudentID: studentID.String(),
		Name:      s.Name(),
		Balance:   s.Balance().Value(),
		Entries:   statementEntries,
		EntrySum:  sum,
	}, nil
}
