package attendance

import "fmt"

// ErrorCode 錯誤代碼類型
type ErrorCode string

// 錯誤代碼常量
const (
	ErrCodeInvalidMarkID      ErrorCode = "ATTENDANCE_MARK_ID_INVALID"
	ErrCodeInvalidServiceDate ErrorCode = "ATTENDANCE_DATE_INVALID"
	ErrCodeInvalidMarkStatus  ErrorCode = "ATTENDANCE_STATUS_INVALID"
	ErrCodeInvalidAwardPolicy ErrorCode = "ATTENDANCE_POLICY_INVALID"
	ErrCodeMarkNotFound       ErrorCode = "ATTENDANCE_MARK_NOT_FOUND"
	ErrCodeMarkAlreadyExists  ErrorCode = "ATTENDANCE_MARK_ALREADY_EXISTS"
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
	// ErrInvalidMarkID 無效的出缺席記錄 ID
	ErrInvalidMarkID = &DomainError{
		Code:    ErrCodeInvalidMarkID,
		Message: "無效的出缺席記錄 ID",
	}

	// ErrInvalidServiceDate 無效的聚會日期（格式必須為 YYYY-MM-DD）
	ErrInvalidServiceDate = &DomainError{
		Code:    ErrCodeInvalidServiceDate,
		Message: "無效的聚會日期",
	}

	// ErrInvalidMarkStatus 無效的出缺席狀態
	ErrInvalidMarkStatus = &DomainError{
		Code:    ErrCodeInvalidMarkStatus,
		Message: "無效的出缺席狀態",
	}

	// ErrInvalidAwardPolicy 無效的獎勵規則
	ErrInvalidAwardPolicy = &DomainError{
		Code:    ErrCodeInvalidAwardPolicy,
		Message: "無效的出席獎勵規則",
	}

	// ErrMarkNotFound 出缺席記錄不存在
	ErrMarkNotFound = &DomainError{
		Code:    ErrCodeMarkNotFound,
		Message: "出缺席記錄不存在",
	}

	// ErrMarkAlreadyExists 同一學生同一日期的出缺席記錄已存在
	ErrMarkAlreadyExists = &DomainError{
		Code:    ErrCodeMarkAlreadyExists,
		Message: "出缺席記錄已存在",
	}
)
