package ledger

import "fmt"

// ErrorCode 錯誤代碼類型
type ErrorCode string

// 錯誤代碼常量
const (
	ErrCodeInvalidEntryID ErrorCode = "LEDGER_ENTRY_ID_INVALID"
	ErrCodeZeroAmount     ErrorCode = "LEDGER_AMOUNT_ZERO"
	ErrCodeEmptyReason    ErrorCode = "LEDGER_REASON_EMPTY"
	ErrCodeEmptyEntryType ErrorCode = "LEDGER_TYPE_EMPTY"
	ErrCodeEntryNotFound  ErrorCode = "LEDGER_ENTRY_NOT_FOUND"
)

// DomainError 領域錯誤
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

// Is 實現 errors.Is 接口
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// 預定義錯誤
var (
	// ErrInvalidEntryID 無效的流水記錄 ID
	ErrInvalidEntryID = &DomainError{
		Code:    ErrCodeInvalidEntryID,
		Message: "無效的流水記錄 ID",
	}

	// ErrZeroAmount 流水金額不能為零
	// 金額帶符號：正數為入帳、負數為扣帳；零沒有審計意義。
	ErrZeroAmount = &DomainError{
		Code:    ErrCodeZeroAmount,
		Message: "流水金額不能為零",
	}

	// ErrEmptyReason 流水原因不能為空
	ErrEmptyReason = &DomainError{
		Code:    ErrCodeEmptyReason,
		Message: "流水原因不能為空",
	}

	// ErrEmptyEntryType 流水類型不能為空
	ErrEmptyEntryType = &DomainError{
		Code:    ErrCodeEmptyEntryType,
		Message: "流水類型不能為空",
	}

	// ErrEntryNotFound 流水記錄不存在
	ErrEntryNotFound = &DomainError{
		Code:    ErrCodeEntryNotFound,
		Message: "流水記錄不存在",
	}
)
