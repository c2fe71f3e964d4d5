package ledger

import (
	"fmt"

	"github.com/gracekids/talent_ledger/src/internal/domain/catalog"
	"github.com/gracekids/talent_ledger/src/internal/domain/ledger"
	"github.com/gracekids/talent_ledger/src/internal/domain/shared"
	"github.com/gracekids/talent_ledger/src/internal/domain/student"
)

// ===========================
// Purchase Use Case
// ===========================

// PurchaseCommand 商店兌換指令（Input DTO）
type PurchaseCommand struct {
	ProductID string // 獎品 ID（UUID 字串）
	StudentID string // 學生 ID（UUID 字串）
	Quantity  int    // 兌換數量（>= 1）
}

// PurchaseResult 商店兌換結果（Output DTO）
type PurchaseResult struct {
	EntryID          string // 兌換流水記錄 ID
	ProductID        string // 獎品 ID
	StudentID        string // 學生 ID
	Quantity         int    // 兌換數量
	Cost             int    // 本次扣除的達倫總數（price * quantity）
	RemainingBalance int    // 兌換後學生餘額
	RemainingStock   int    // 兌換後獎品庫存
}

// PurchaseUseCase 商店兌換 Use Case
//
// 核心契約：整個兌換是單一原子事務 ——
// 庫存遞減、餘額扣帳、流水寫入同時提交或同時回滾。
// 兩個併發兌換爭搶同一件稀缺庫存時，至多一個成功；
// 庫存與餘額在任何交錯下都不可能變成負值。
//
// 檢查順序：先庫存、後餘額（售罄是更具體的失敗，優先回報）。
// 兩項檢查都發生在任何變更之前。
//
// 失敗語義：四種業務失敗（獎品不存在、學生不存在、庫存不足、
// 餘額不足）都讓全部狀態保持原樣；核心不自動重試，由人工操作
// 的外層決定是否重新提交。
type PurchaseUseCase struct {
	productRepo catalog.ProductRepository
	studentRepo student.StudentRepository
	ledgerRepo  ledger.LedgerRepository
	txManager   shared.TransactionManager
}

// NewPurchaseUseCase 創建 Use Case 實例
func NewPurchaseUseCase(
	productRepo catalog.ProductRepository,
	studentRepo student.StudentRepository,
	ledgerRepo ledger.LedgerRepository,
	txManager shared.TransactionManager,
) *PurchaseUseCase {
	return &PurchaseUseCase{
		productRepo: productRepo,
		studentRepo: studentRepo,
		ledgerRepo:  ledgerRepo,
		txManager:   txManager,
	}
}

// Execute 執行商店兌換（自管事務）
//
// 錯誤處理：
// - catalog.ErrInvalidQuantity: 數量 < 1
// - catalog.ErrProductNotFound: 獎品不存在或已下架
// - student.ErrStudentNotFound: 學生不存在
// - catalog.ErrStockInsufficient: 庫存不足（外層映射「已售完」提示）
// - student.ErrBalanceInsufficient: 餘額不足
// - 其他錯誤：存儲故障，事務整體回滾後原樣返回
func (uc *PurchaseUseCase) Execute(cmd PurchaseCommand) (*PurchaseResult, error) {
	var result *PurchaseResult
	err := uc.txManager.InTransaction(func(ctx shared.TransactionContext) error {
		r, err := uc.executeInTransaction(ctx, cmd)
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

// executeInTransaction 兌換流程本體（必須在事務中執行）
func (uc *PurchaseUseCase) executeInTransaction(
	ctx shared.TransactionContext,
	cmd PurchaseCommand,
) (*PurchaseResult, error) {
	// 1. 驗證並轉換輸入
	quantity, err := catalog.NewQuantity(cmd.Quantity)
	if err != nil {
		return nil, err
	}

	productID, err := catalog.ProductIDFromString(cmd.ProductID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse product ID: %w", err)
	}

	studentID, err := student.StudentIDFromString(cmd.StudentID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse student ID: %w", err)
	}

	// 2. 載入獎品；已下架的獎品對兌換流程視同不存在
	p, err := uc.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	if !p.IsActive() {
		return nil, catalog.ErrProductNotFound.WithContext(
			"product_id", productID.String(),
			"reason", "product deactivated",
		)
	}

	// 3. 載入學生
	s, err := uc.studentRepo.FindByID(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to find student: %w", err)
	}

	// 4. 庫存檢查（先於餘額檢查；兩者都在任何變更之前）
	cost, err := p.CostOf(quantity)
	if err != nil {
		return nil, err
	}

	reason := fmt.Sprintf("商店兌換：%s x%d", p.Name(), quantity.Value())

	if err := p.ReserveStock(quantity); err != nil {
		return nil, err
	}

	// 5. 餘額檢查
	if err := s.Debit(cost, reason); err != nil {
		return nil, err
	}

	// 6. 存儲層原子遞減（守衛條件防止併發兌換把庫存／餘額寫成負值；
	//    守衛失敗時整個事務回滾，步驟 4-5 的聚合變更不會落庫）
	updatedProduct, err := uc.productRepo.AdjustStock(ctx, productID, -quantity.Value())
	if err != nil {
		return nil, fmt.Errorf("failed to adjust stock: %w", err)
	}

	updatedStudent, err := uc.studentRepo.AdjustBalance(ctx, studentID, -cost.Value())
	if err != nil {
		return nil, fmt.Errorf("failed to adjust balance: %w", err)
	}

	// 7. 寫入兌換流水（amount 為負的扣帳記錄）
	entry, err := ledger.NewLedgerEntry(studentID, -cost.Value(), reason, ledger.EntryTypePurchase)
	if err != nil {
		return nil, err
	}
	if err := uc.ledgerRepo.Append(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to append ledger entry: %w", err)
	}

	return &PurchaseResult{
		EntryID:          entry.EntryID().String(),
		ProductID:        productID.String(),
		StudentID:        studentID.String(),
		Quantity:         quantity.Value(),
		Cost:             cost.Value(),
		RemainingBalance: updatedStudent.Balance().Value(),
		RemainingStock:   updatedProduct.Stock().Value(),
	}, nil
}
