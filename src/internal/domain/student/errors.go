package student

import "fmt"

// ===========================
// 錯誤代碼定義
// ===========================

// ErrorCode 錯誤代碼類型
type ErrorCode string

// 錯誤代碼常量
const (
	// 達倫（點數）相關
	ErrCodeNegativeTalentAmount ErrorCode = "TALENT_NEGATIVE"
	ErrCodeBalanceInsufficient  ErrorCode = "BALANCE_INSUFFICIENT"

	// 學生相關
	ErrCodeInvalidStudentID ErrorCode = "STUDENT_ID_INVALID"
	ErrCodeEmptyStudentName ErrorCode = "STUDENT_NAME_EMPTY"

	// Repository 相關
	ErrCodeStudentNotFound      ErrorCode = "STUDENT_NOT_FOUND"
	ErrCodeStudentAlreadyExists ErrorCode = "STUDENT_ALREADY_EXISTS"
	ErrCodeCorruptedBalance     ErrorCode = "STUDENT_BALANCE_CORRUPTED"
)

// ===========================
// DomainError 結構
// ===========================

// DomainError 領域錯誤
// 設計原則：
// 1. 包含結構化的錯誤代碼（供外層映射使用者訊息，如商店的「品切れ/품절」提示）
// 2. 支持上下文信息（用於調試和日誌）
// 3. 不可變性（創建後不可修改）
type DomainError struct {
	Code    ErrorCode
	Message string
	Context map[string]interface{}
}

// Error 實現 error 接口
func (e *DomainError) Error() string {
	if len(e.Context) == 0 {
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	return fmt.Sprintf("[%s] %s (context: %+v)", e.Code, e.Message, e.Context)
}

// WithContext 添加上下文信息（返回新的錯誤實例，保持不可變性）
func (e *DomainError) WithContext(keyValues ...interface{}) error {
	if len(keyValues)%2 != 0 {
		panic("WithContext requires even number of arguments (key-value pairs)")
	}

	ctx := make(map[string]interface{}, len(e.Context)+len(keyValues)/2)
	for k, v := range e.Context {
		ctx[k] = v
	}
	for i := 0; i < len(keyValues); i += 2 {
		key, ok := keyValues[i].(string)
		if !ok {
			panic(fmt.Sprintf("context key must be string, got %T", keyValues[i]))
		}
		ctx[key] = keyValues[i+1]
	}

	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Context: ctx,
	}
}

// Is 實現 errors.Is 接口（以錯誤代碼判斷同類錯誤）
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// ===========================
// 預定義錯誤
// ===========================

var (
	// ErrNegativeTalentAmount 達倫數量不能為負數
	ErrNegativeTalentAmount = &DomainError{
		Code:    ErrCodeNegativeTalentAmount,
		Message: "達倫數量不能為負數",
	}

	// ErrBalanceInsufficient 達倫餘額不足
	// 餘額永不為負是本系統的硬性不變條件：任何會使餘額變負的操作
	// 在變更任何狀態之前就被拒絕。
	ErrBalanceInsufficient = &DomainError{
		Code:    ErrCodeBalanceInsufficient,
		Message: "達倫餘額不足",
	}

	// ErrInvalidStudentID 無效的學生 ID
	ErrInvalidStudentID = &DomainError{
		Code:    ErrCodeInvalidStudentID,
		Message: "無效的學生 ID",
	}

	// ErrEmptyStudentName 學生姓名不能為空
	ErrEmptyStudentName = &DomainError{
		Code:    ErrCodeEmptyStudentName,
		Message: "學生姓名不能為空",
	}
)

// Repository 錯誤實例
var (
	// ErrStudentNotFound 學生不存在
	ErrStudentNotFound = &DomainError{
		Code:    ErrCodeStudentNotFound,
		Message: "學生不存在",
	}

	// ErrStudentAlreadyExists 學生已存在
	ErrStudentAlreadyExists = &DomainError{
		Code:    ErrCodeStudentAlreadyExists,
		Message: "學生已存在",
	}

	// ErrCorruptedBalance 資料庫中的餘額數據已損壞（負值）
	ErrCorruptedBalance = &DomainError{
		Code:    ErrCodeCorruptedBalance,
		Message: "學生餘額數據已損壞",
	}
)
