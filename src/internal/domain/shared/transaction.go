package shared

// TransactionContext 事務上下文介面
//
// 行為約定：
// - ctx != nil: 在調用者的事務中執行（事務傳播）
// - ctx == nil: 使用 auto-commit 模式（適用於單一讀操作）
//
// Repository 方法約束：
// - 寫操作（Save / Update / Append / AdjustBalance / AdjustStock）必須在
//   事務中執行，ctx 不可為 nil —— 餘額與庫存的不變條件依賴事務原子性。
// - 讀操作（FindByID / ListByStudent 等）可傳 nil 獨立查詢，或傳入調用者
//   的 ctx 以保證同一事務內的一致讀。
//
// 架構原則：
// - 標記介面（Marker Interface），不暴露任何方法
// - Infrastructure Layer 負責實作具體的事務封裝（GORM）
// - Domain / Application Layer 只依賴此介面，保持依賴方向正確
type TransactionContext interface {
	// 標記介面：僅用於傳遞上下文，不暴露方法
}

// TransactionManager 事務管理器介面
//
// fn 返回 error 時整個事務回滾；返回 nil 時提交。
// 餘額扣減、庫存遞減與流水寫入必須包在同一個 InTransaction 中，
// 任一步失敗不得留下部分狀態。
type TransactionManager interface {
	InTransaction(fn func(ctx TransactionContext) error) error
}
