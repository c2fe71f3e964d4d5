package ledger

import (
	"github.com/gracekids/talent_ledger/src/internal/domain/shared"
	"github.com/gracekids/talent_ledger/src/internal/domain/student"
)

// ===========================
// LedgerEntry Repository 介面
// ===========================

// LedgerRepository 達倫流水倉儲介面
//
// 設計原則：
// 1. Append-only：介面刻意不提供 Update / Delete —— 流水是審計記錄，
//    寫入後不可變
// 2. Append 必須與對應的餘額／庫存變更在同一事務中執行（ctx 不可為 nil）
type LedgerRepository interface {
	// Append 寫入一筆新的流水記錄
	// 前置條件：在事務中執行（與餘額變更同一事務）
	Append(ctx shared.TransactionContext, entry *LedgerEntry) error

	// ListByStudent 列出指定學生的全部流水（按創建時間由新到舊）
	ListByStudent(ctx shared.TransactionContext, studentID student.StudentID) ([]*LedgerEntry, error)

	// SumByStudent 計算指定學生全部流水金額之和
	// 審計用途：任一時點此值應等於學生當前餘額減去初始餘額
	SumByStudent(ctx shared.TransactionContext, studentID student.StudentID) (int, error)

	// CountByStudent 計算指定學生的流水筆數
	CountByStudent(ctx shared.TransactionContext, studentID student.StudentID) (int64, error)
}
