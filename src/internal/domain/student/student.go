package student

import (
	"time"

	"github.com/gracekids/talent_ledger/src/internal/domain/shared"
)

// ===========================
// Student 聚合根
// ===========================

// Student 學生聚合根
//
// 聚合邊界：
// - 學生基本信息（ID, 姓名）
// - 達倫餘額（TalentBalance）
//
// 業務不變條件：
// - Balance >= 0（餘額永不為負；會違反的操作在任何變更前被拒絕）
// - 餘額只能通過 Credit / Debit 變更，且每次變更對應恰好一筆
//   流水記錄（由 Application Layer 在同一事務中保證）
//
// 設計原則：
// - Tell, Don't Ask：封裝業務邏輯，不暴露內部狀態供外部判斷
// - 所有欄位 unexported，狀態變更只通過命令方法
// - 事件驅動：狀態變更發布領域事件（pull 模式）
type Student struct {
	// 聚合根識別符
	studentID StudentID

	// 基本信息
	name string

	// 達倫餘額
	balance TalentBalance

	// 審計字段
	createdAt time.Time
	updatedAt time.Time

	// 待發布的領域事件
	events []shared.DomainEvent
}

// NewStudent 創建新學生（註冊）
//
// 業務規則：
// - 姓名不能為空
// - 新學生初始餘額為 0
// - 自動生成唯一的 StudentID
// - 發布 StudentEnrolled 事件
func NewStudent(name string) (*Student, error) {
	if name == "" {
		return nil, ErrEmptyStudentName
	}

	now := time.Now()
	s := &Student{
		studentID: NewStudentID(),
		name:      name,
		balance:   ZeroBalance(),
		createdAt: now,
		updatedAt: now,
		events:    make([]shared.DomainEvent, 0),
	}

	s.addEvent(NewStudentEnrolledEvent(s.studentID, name))

	return s, nil
}

// ===========================
// 查詢方法（Getters）
// ===========================
//
// 供 Repository 持久化與 Application Layer 構建 DTO 使用。
// 不應在業務邏輯中使用這些 getter 做判斷（正確做法：CanAfford 等業務方法）。

// StudentID 獲取學生 ID
func (s *Student) StudentID() StudentID {
	return s.studentID
}

// Name 獲取學生姓名
func (s *Student) Name() string {
	return s.name
}

// Balance 獲取當前達倫餘額
func (s *Student) Balance() TalentBalance {
	return s.balance
}

// CreatedAt 獲取創建時間
func (s *Student) CreatedAt() time.Time {
	return s.createdAt
}

// UpdatedAt 獲取最後更新時間
func (s *Student) UpdatedAt() time.Time {
	return s.updatedAt
}

// CanAfford 判斷餘額是否足以支付指定數量
func (s *Student) CanAfford(amount TalentAmount) bool {
	return s.balance.CanCover(amount)
}

// ===========================
// 事件管理
// ===========================

// addEvent 添加領域事件到待發布列表（私有方法）
func (s *Student) addEvent(event shared.DomainEvent) {
	s.events = append(s.events, event)
}

// PullEvents 獲取所有待發布事件並清空列表
//
// 使用場景：Repository 持久化成功後，調用此方法獲取事件並發布。
// Pull 模式：聚合根不依賴 EventPublisher；只讀取一次，避免重複發布。
func (s *Student) PullEvents() []shared.DomainEvent {
	events := s.events
	s.events = make([]shared.DomainEvent, 0)
	return events
}

// ===========================
// 命令方法（狀態變更）
// ===========================

// Credit 入帳（核心業務邏輯）
//
// 參數：
//   amount - 入帳數量（TalentAmount 已保證 >= 0）
//   reason - 入帳原因（出席獎勵、連續出席加給、遊戲獎勵等）
//
// 副作用：
// - 更新 balance（累加）
// - 更新 updatedAt
// - 發布 TalentCreditedEvent
//
// 不變條件維護：此方法只增加餘額，永遠不會違反 Balance >= 0
func (s *Student) Credit(amount TalentAmount, reason string) {
	s.balance = s.balance.Credit(amount)
	s.updatedAt = time.Now()

	s.addEvent(NewTalentCreditedEvent(s.studentID, amount, reason))
}

// Debit 扣帳（核心業務邏輯）
//
// 參數：
//   amount - 扣帳數量（TalentAmount 已保證 >= 0）
//   reason - 扣帳原因（商店兌換、出席更正等）
//
// 返回：
//   error - 餘額不足時返回 ErrBalanceInsufficient，狀態不變
//
// 業務規則：
// - 扣帳前必須檢查餘額是否足夠（由 TalentBalance.Debit 保證）
// - 失敗時聚合狀態完全不變（無部分變更）
func (s *Student) Debit(amount TalentAmount, reason string) error {
	newBalance, err := s.balance.Debit(amount)
	if err != nil {
		return err
	}

	s.balance = newBalance
	s.updatedAt = time.Now()

	s.addEvent(NewTalentDebitedEvent(s.studentID, amount, reason))

	return nil
}

// ===========================
// 聚合重建方法（僅供 Infrastructure Layer 使用）
// ===========================

// ReconstructStudent 從持久化存儲重建聚合根
//
// 與 NewStudent 的區別：
//   - New: 創建新聚合，發布 StudentEnrolled 事件
//   - Reconstruct: 重建已存在的聚合，不發布事件（事件已發生過）
//
// 重要：即使是從資料庫重建，也必須驗證不變條件，防止損壞資料污染領域層。
func ReconstructStudent(
	studentID StudentID,
	name string,
	balance int,
	createdAt time.Time,
	updatedAt time.Time,
) (*Student, error) {
	if studentID.IsEmpty() {
		return nil, ErrInvalidStudentID.WithContext(
			"reason", "invalid student ID in database",
		)
	}

	if name == "" {
		return nil, ErrEmptyStudentName.WithContext(
			"reason", "empty student name in database",
		)
	}

	// 驗證餘額不變條件（防止負值）
	balanceVO, err := NewTalentBalance(balance)
	if err != nil {
		return nil, err
	}

	return &Student{
		studentID: studentID,
		name:      name,
		balance:   balanceVO,
		createdAt: createdAt,
		updatedAt: updatedAt,
		events:    make([]shared.DomainEvent, 0),
	}, nil
}
