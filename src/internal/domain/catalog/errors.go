package catalog

import "fmt"

// ErrorCode 錯誤代碼類型
type ErrorCode string

// 錯誤代碼常量
const (
	ErrCodeInvalidProductID  ErrorCode = "PRODUCT_ID_INVALID"
	ErrCodeEmptyProductName  ErrorCode = "PRODUCT_NAME_EMPTY"
	ErrCodeInvalidPrice      ErrorCode = "PRODUCT_PRICE_INVALID"
	ErrCodeNegativeStock     ErrorCode = "PRODUCT_STOCK_NEGATIVE"
	ErrCodeInvalidQuantity   ErrorCode = "PURCHASE_QUANTITY_INVALID"
	ErrCodeStockInsufficient ErrorCode = "STOCK_INSUFFICIENT"
	ErrCodeProductInactive   ErrorCode = "PRODUCT_INACTIVE"

	ErrCodeProductNotFound      ErrorCode = "PRODUCT_NOT_FOUND"
	ErrCodeProductAlreadyExists ErrorCode = "PRODUCT_ALREADY_EXISTS"
)

// DomainError 領域錯誤（結構與 student.DomainError 一致，定義在各自的
// bounded context 中以保持上下文獨立）
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
	// ErrInvalidProductID 無效的獎品 ID
	ErrInvalidProductID = &DomainError{
		Code:    ErrCodeInvalidProductID,
		Message: "無效的獎品 ID",
	}

	// ErrEmptyProductName 獎品名稱不能為空
	ErrEmptyProductName = &DomainError{
		Code:    ErrCodeEmptyProductName,
		Message: "獎品名稱不能為空",
	}

	// ErrInvalidPrice 獎品價格必須為正整數
	ErrInvalidPrice = &DomainError{
		Code:    ErrCodeInvalidPrice,
		Message: "獎品價格必須為正整數",
	}

	// ErrNegativeStock 庫存不能為負數
	ErrNegativeStock = &DomainError{
		Code:    ErrCodeNegativeStock,
		Message: "庫存不能為負數",
	}

	// ErrInvalidQuantity 兌換數量必須為正整數
	ErrInvalidQuantity = &DomainError{
		Code:    ErrCodeInvalidQuantity,
		Message: "兌換數量必須為正整數",
	}

	// ErrStockInsufficient 庫存不足
	// 庫存永不為負是硬性不變條件；會違反的兌換在任何變更前被拒絕。
	// 外層以此代碼映射「品切れ/품절」等使用者提示。
	ErrStockInsufficient = &DomainError{
		Code:    ErrCodeStockInsufficient,
		Message: "獎品庫存不足",
	}

	// ErrProductInactive 獎品已下架
	ErrProductInactive = &DomainError{
		Code:    ErrCodeProductInactive,
		Message: "獎品已下架",
	}

	// ErrProductNotFound 獎品不存在
	ErrProductNotFound = &DomainError{
		Code:    ErrCodeProductNotFound,
		Message: "獎品不存在",
	}

	// ErrProductAlreadyExists 獎品已存在
	ErrProductAlreadyExists = &DomainError{
		Code:    ErrCodeProductAlreadyExists,
		Message: "獎品已存在",
	}
)
