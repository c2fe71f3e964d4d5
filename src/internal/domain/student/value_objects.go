package student

import "fmt"

// ===========================
// TalentAmount 值對象
// ===========================

// TalentAmount 達倫數量值對象（無符號的量值）
//
// 設計原則：值對象不可變、自我驗證。
// 建構約束：達倫數量必須 >= 0（方向由操作語義決定：Credit / Debit）。
type TalentAmount struct {
	value int
}

// NewTalentAmount 建構函數（checked 版本）
func NewTalentAmount(value int) (TalentAmount, error) {
	if value < 0 {
		return TalentAmount{}, fmt.Errorf(
			"%w: attempted to create TalentAmount with value %d",
			ErrNegativeTalentAmount,
			value,
		)
	}
	return TalentAmount{value: value}, nil
}

// newTalentAmountUnchecked 內部建構函數（unchecked 版本）
// 僅供內部使用，當我們確定值有效時使用。
// 前提條件：調用者必須保證 value >= 0
func newTalentAmountUnchecked(value int) TalentAmount {
	return TalentAmount{value: value}
}

// Value 獲取達倫數量
func (t TalentAmount) Value() int {
	return t.value
}

// IsZero 判斷是否為零
func (t TalentAmount) IsZero() bool {
	return t.value == 0
}

// Equals 比較兩個 TalentAmount 是否相等
func (t TalentAmount) Equals(other TalentAmount) bool {
	return t.value == other.value
}

// GreaterThan 判斷是否大於另一個 TalentAmount
func (t TalentAmount) GreaterThan(other TalentAmount) bool {
	return t.value > other.value
}

// ===========================
// TalentBalance 值對象
// ===========================

// TalentBalance 學生當前達倫餘額
//
// 不變條件：餘額永遠 >= 0。
// 所有修改都返回新的 TalentBalance（不可變），違反不變條件的操作
// 返回錯誤且不產生新值。
type TalentBalance struct {
	value int
}

// NewTalentBalance 建構函數（checked 版本）
// 用於從持久化存儲重建；負值表示資料損壞。
func NewTalentBalance(value int) (TalentBalance, error) {
	if value < 0 {
		return TalentBalance{}, ErrCorruptedBalance.WithContext("value", value)
	}
	return TalentBalance{value: value}, nil
}

// ZeroBalance 初始餘額（新學生註冊時為 0）
func ZeroBalance() TalentBalance {
	return TalentBalance{value: 0}
}

// Value 獲取餘額
func (b TalentBalance) Value() int {
	return b.value
}

// Credit 入帳（返回新的 TalentBalance）
func (b TalentBalance) Credit(amount TalentAmount) TalentBalance {
	return TalentBalance{value: b.value + amount.value}
}

// Debit 扣帳（返回新的 TalentBalance）
// 業務規則：不能扣除超過當前餘額的達倫
func (b TalentBalance) Debit(amount TalentAmount) (TalentBalance, error) {
	if b.value < amount.value {
		return TalentBalance{}, ErrBalanceInsufficient.WithContext(
			"requested", amount.value,
			"available", b.value,
		)
	}
	return TalentBalance{value: b.value - amount.value}, nil
}

// CanCover 判斷餘額是否足以支付指定數量
func (b TalentBalance) CanCover(amount TalentAmount) bool {
	return b.value >= amount.value
}
