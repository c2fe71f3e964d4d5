package ledger

import (
	"fmt"
	"time"

	"github.com/gracekids/talent_ledger/src/internal/domain/ledger"
	"github.com/gracekids/talent_ledger/src/internal/domain/shared"
	"github.com/gracekids/talent_ledger/src/internal/domain/student"
)

// ===========================
// AdjustTalent Use Case
// ===========================

// AdjustTalentCommand 達倫調整指令（Input DTO）
//
// Amount 帶符號：正數入帳、負數扣帳，不能為零。
// 調用方：出缺席登錄、老師手動加減點、問答與遊戲獎勵。
type AdjustTalentCommand struct {
	StudentID string // 學生 ID（UUID 字串）
	Amount    int    // 帶符號調整量（非零）
	Reason    string // 人類可讀的調整原因（非空）
	EntryType string // 流水類型標籤（attendance / bonus / game / ...）
}

// AdjustTalentResult 達倫調整結果（Output DTO）
type AdjustTalentResult struct {
	EntryID   string    // 新建流水記錄 ID
	StudentID string    // 學生 ID
	Amount    int       // 實際調整量（與指令相同）
	Reason    string    // 調整原因
	EntryType string    // 流水類型
	Balance   int       // 調整後餘額
	CreatedAt time.Time // 流水創建時間
}

// AdjustTalentUseCase 達倫調整 Use Case
//
// 核心契約（所有調用方依賴）：
// 1. 原子性：餘額變更與流水寫入同一事務提交，或全部回滾 ——
//    後續讀取永遠看不到部分狀態
// 2. 成功後 balance_after = balance_before + amount，且恰好多出
//    一筆該 amount 的流水
// 3. 硬性不變條件：調整後餘額永不為負；會違反的扣帳在任何變更前
//    被拒絕（ErrBalanceInsufficient）
// 4. 無去重：同一指令調用兩次產生兩筆流水與兩次餘額變更；
//    需要冪等性的調用方必須自備去重鍵
//
// 同一學生同一天允許多次調整（出缺席更正、多種獎勵並存）。
type AdjustTalentUseCase struct {
	studentRepo student.StudentRepository
	ledgerRepo  ledger.LedgerRepository
	txManager   shared.TransactionManager
}

// NewAdjustTalentUseCase 創建 Use Case 實例
func NewAdjustTalentUseCase(
	studentRepo student.StudentRepository,
	ledgerRepo ledger.LedgerRepository,
	txManager shared.TransactionManager,
) *AdjustTalentUseCase {
	return &AdjustTalentUseCase{
		studentRepo: studentRepo,
		ledgerRepo:  ledgerRepo,
		txManager:   txManager,
	}
}

// Execute 執行達倫調整（自管事務）
//
// 錯誤處理：
// - student.ErrInvalidStudentID: StudentID 格式無效
// - student.ErrStudentNotFound: 學生不存在
// - ledger.ErrZeroAmount: 調整量為零
// - ledger.ErrEmptyReason / ErrEmptyEntryType: 原因或類型為空
// - student.ErrBalanceInsufficient: 扣帳後餘額將為負
// - 其他錯誤：存儲故障，事務整體回滾後原樣返回
func (uc *AdjustTalentUseCase) Execute(cmd AdjustTalentCommand) (*AdjustTalentResult, error) {
	var result *AdjustTalentResult
	err := uc.txManager.InTransaction(func(ctx shared.TransactionContext) error {
		r, err := uc.ExecuteWithContext(ctx, cmd)
		if err != nil {
			return err
		}
		result = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ExecuteWithContext 在已有事務上下文中執行達倫調整
//
// 使用場景：出缺席登錄等調用方需要把調整與自己的狀態變更放進
// 同一個事務（事務由調用者的 TransactionManager 管理，錯誤時
// 由調用者整體回滾）。
func (uc *AdjustTalentUseCase) ExecuteWithContext(
	ctx shared.TransactionContext,
	cmd AdjustTalentCommand,
) (*AdjustTalentResult, error) {
	// 1. 驗證並轉換輸入
	studentID, err := student.StudentIDFromString(cmd.StudentID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse student ID: %w", err)
	}

	entryType := ledger.EntryType(cmd.EntryType)

	// 流水記錄先行建構：零金額、空原因、空類型在觸碰任何狀態前被拒絕
	entry, err := ledger.NewLedgerEntry(studentID, cmd.Amount, cmd.Reason, entryType)
	if err != nil {
		return nil, err
	}

	// 2. 載入學生並在聚合上驗證調整（扣帳的餘額檢查在這裡發生）
	s, err := uc.studentRepo.FindByID(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to find student: %w", err)
	}

	if cmd.Amount > 0 {
		amount, err := student.NewTalentAmount(cmd.Amount)
		if err != nil {
			return nil, err
		}
		s.Credit(amount, cmd.Reason)
	} else {
		amount, err := student.NewTalentAmount(-cmd.Amount)
		if err != nil {
			return nil, err
		}
		if err := s.Debit(amount, cmd.Reason); err != nil {
			return nil, err
		}
	}

	// 3. 存儲層原子遞增（守衛條件在 UPDATE 中再次檢查，
	//    併發調整不可能把餘額寫成負值）
	updated, err := uc.studentRepo.AdjustBalance(ctx, studentID, cmd.Amount)
	if err != nil {
		return nil, fmt.Errorf("failed to adjust balance: %w", err)
	}

	// 4. 在同一事務中寫入流水
	if err := uc.ledgerRepo.Append(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to append ledger entry: %w", err)
	}

	return &AdjustTalentResult{
		EntryID:   entry.EntryID().String(),
		StudentID: studentID.String(),
		Amount:    cmd.Amount,
		Reason:    cmd.Reason,
		EntryType: entryType.String(),
		Balance:   updated.Balance().Value(),
		CreatedAt: entry.CreatedAt(),
	}, nil
}
