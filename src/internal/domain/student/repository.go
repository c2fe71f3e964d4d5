package student

import "github.com/gracekids/talent_ledger/src/internal/domain/shared"

// ===========================
// Student Repository 介面
// ===========================

// StudentRepository 學生倉儲介面
//
// 設計原則：
// 1. 依賴倒置原則（DIP）：Domain Layer 定義介面，Infrastructure Layer 實作
// 2. 事務支持：使用 TransactionContext 封裝事務，避免基礎設施洩漏
// 3. 餘額的原子遞增下推到存儲層（AdjustBalance），而非應用層鎖 ——
//    多個進程實例可能同時運行，應用層互斥鎖無法保護共享餘額
//
// 事務使用範例：
//
//	txManager.InTransaction(func(ctx shared.TransactionContext) error {
//	    s, _ := repo.FindByID(ctx, studentID)
//	    if err := s.Debit(cost, reason); err != nil {
//	        return err
//	    }
//	    _, err := repo.AdjustBalance(ctx, studentID, -cost.Value())
//	    return err
//	})
type StudentRepository interface {
	// Save 保存新學生
	// 錯誤：ErrStudentAlreadyExists（如果 StudentID 已存在）
	Save(ctx shared.TransactionContext, s *Student) error

	// FindByID 根據學生 ID 查找學生
	// 返回：找到的學生，或 ErrStudentNotFound
	FindByID(ctx shared.TransactionContext, studentID StudentID) (*Student, error)

	// FindAll 列出全部學生（按姓名排序）
	FindAll(ctx shared.TransactionContext) ([]*Student, error)

	// Update 更新學生（全量覆寫）
	Update(ctx shared.TransactionContext, s *Student) error

	// AdjustBalance 原子地將餘額遞增 delta（可為負）
	//
	// 存儲層保證：balance + delta >= 0 的約束在同一條 UPDATE 中檢查，
	// 併發調用不可能將餘額更新為負值。
	//
	// 返回：更新後的學生聚合
	// 錯誤：
	// - ErrStudentNotFound：學生不存在
	// - ErrBalanceInsufficient：遞增後餘額將為負（狀態不變）
	AdjustBalance(ctx shared.TransactionContext, studentID StudentID, delta int) (*Student, error)
}
