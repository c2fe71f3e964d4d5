package student_test

import (
	"testing"

	"github.com/gracekids/talent_ledger/src/internal/domain/student"
	"github.com/stretchr/testify/assert"
)

// ===== TalentAmount 測試 =====

// 建構有效的 TalentAmount
func TestNewTalentAmount_ValidValue_ReturnsTalentAmount(t *testing.T) {
	// Arrange
	value := 10

	// Act
	amount, err := student.NewTalentAmount(value)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, 10, amount.Value())
}

// 建構負數 TalentAmount 失敗（建構約束違反）
func TestNewTalentAmount_NegativeValue_ReturnsError(t *testing.T) {
	// Arrange
	value := -5

	// Act
	amount, err := student.NewTalentAmount(value)

	// Assert
	assert.Error(t, err)
	assert.ErrorIs(t, err, student.ErrNegativeTalentAmount)
	assert.Equal(t, 0, amount.Value())
	// 驗證錯誤訊息包含嘗試的值
	assert.Contains(t, err.Error(), "value -5")
}

// 建構零值 TalentAmount（合法：方向由操作語義決定）
func TestNewTalentAmount_ZeroValue_ReturnsTalentAmount(t *testing.T) {
	// Act
	amount, err := student.NewTalentAmount(0)

	// Assert
	assert.NoError(t, err)
	assert.True(t, amount.IsZero())
}

// TalentAmount 比較
func TestTalentAmount_Comparisons(t *testing.T) {
	// Arrange
	amount1, _ := student.NewTalentAmount(10)
	amount2, _ := student.NewTalentAmount(10)
	amount3, _ := student.NewTalentAmount(3)

	// Act & Assert
	assert.True(t, amount1.Equals(amount2))
	assert.False(t, amount1.Equals(amount3))
	assert.True(t, amount1.GreaterThan(amount3))
	assert.False(t, amount3.GreaterThan(amount1))
}

// ===== TalentBalance 測試 =====

// 新學生的初始餘額為零
func TestZeroBalance_ReturnsZero(t *testing.T) {
	// Act
	balance := student.ZeroBalance()

	// Assert
	assert.Equal(t, 0, balance.Value())
}

// 從負值重建餘額失敗（資料損壞防線）
func TestNewTalentBalance_NegativeValue_ReturnsError(t *testing.T) {
	// Act
	_, err := student.NewTalentBalance(-1)

	// Assert
	assert.Error(t, err)
	assert.ErrorIs(t, err, student.ErrCorruptedBalance)
}

// Credit 返回新餘額（不可變）
func TestTalentBalance_Credit_ReturnsNewBalance(t *testing.T) {
	// Arrange
	balance, _ := student.NewTalentBalance(20)
	amount, _ := student.NewTalentAmount(5)

	// Act
	newBalance := balance.Credit(amount)

	// Assert
	assert.Equal(t, 25, newBalance.Value())
	// 驗證不變性：原始值不變
	assert.Equal(t, 20, balance.Value())
}

// Debit 成功扣帳
func TestTalentBalance_Debit_SufficientBalance_ReturnsNewBalance(t *testing.T) {
	// Arrange
	balance, _ := student.NewTalentBalance(20)
	amount, _ := student.NewTalentAmount(20)

	// Act
	newBalance, err := balance.Debit(amount)

	// Assert: 扣到恰好歸零是合法的
	assert.NoError(t, err)
	assert.Equal(t, 0, newBalance.Value())
}

// Debit 超過餘額失敗（業務規則違反：餘額不足）
func TestTalentBalance_Debit_InsufficientBalance_ReturnsError(t *testing.T) {
	// Arrange
	balance, _ := student.NewTalentBalance(3)
	amount, _ := student.NewTalentAmount(10)

	// Act
	_, err := balance.Debit(amount)

	// Assert
	assert.Error(t, err)
	assert.ErrorIs(t, err, student.ErrBalanceInsufficient)
	// 驗證不變性：原始值不變
	assert.Equal(t, 3, balance.Value())
}

// CanCover 邊界判斷
func TestTalentBalance_CanCover(t *testing.T) {
	// Arrange
	balance, _ := student.NewTalentBalance(10)
	exact, _ := student.NewTalentAmount(10)
	over, _ := student.NewTalentAmount(11)

	// Act & Assert
	assert.True(t, balance.CanCover(exact))
	assert.False(t, balance.CanCover(over))
}
