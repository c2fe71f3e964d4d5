package catalog

// ===========================
// Price 值對象
// ===========================

// Price 獎品單價（以達倫計）
//
// 建構約束：價格必須 > 0（免費獎品不經過商店，直接用手動加點發放）
type Price struct {
	value int
}

// NewPrice 建構函數（checked 版本）
func NewPrice(value int) (Price, error) {
	if value <= 0 {
		return Price{}, ErrInvalidPrice.WithContext("value", value)
	}
	return Price{value: value}, nil
}

// Value 獲取價格
func (p Price) Value() int {
	return p.value
}

// CostOf 計算指定數量的總價（price * quantity）
// 前提條件：quantity >= 1（由 Quantity 值對象保證）
func (p Price) CostOf(q Quantity) int {
	return p.value * q.Value()
}

// Equals 比較兩個 Price 是否相等
func (p Price) Equals(other Price) bool {
	return p.value == other.value
}

// ===========================
// Quantity 值對象
// ===========================

// Quantity 兌換數量
//
// 建構約束：數量必須 >= 1
type Quantity struct {
	value int
}

// NewQuantity 建構函數（checked 版本）
func NewQuantity(value int) (Quantity, error) {
	if value < 1 {
		return Quantity{}, ErrInvalidQuantity.WithContext("value", value)
	}
	return Quantity{value: value}, nil
}

// Value 獲取數量
func (q Quantity) Value() int {
	return q.value
}

// ===========================
// StockLevel 值對象
// ===========================

// StockLevel 獎品庫存量
//
// 不變條件：庫存永遠 >= 0。所有修改返回新的 StockLevel（不可變）。
type StockLevel struct {
	value int
}

// NewStockLevel 建構函數（checked 版本）
func NewStockLevel(value int) (StockLevel, error) {
	if value < 0 {
		return StockLevel{}, ErrNegativeStock.WithContext("value", value)
	}
	return StockLevel{value: value}, nil
}

// Value 獲取庫存量
func (s StockLevel) Value() int {
	return s.value
}

// CanFulfill 判斷庫存是否足以出貨指定數量
func (s StockLevel) CanFulfill(q Quantity) bool {
	return s.value >= q.Value()
}

// Reserve 出貨（返回新的 StockLevel）
// 業務規則：不能出貨超過當前庫存的數量
func (s StockLevel) Reserve(q Quantity) (StockLevel, error) {
	if !s.CanFulfill(q) {
		return StockLevel{}, ErrStockInsufficient.WithContext(
			"requested", q.Value(),
			"available", s.value,
		)
	}
	return StockLevel{value: s.value - q.Value()}, nil
}

// Replenish 補貨（返回新的 StockLevel）
func (s StockLevel) Replenish(q Quantity) StockLevel {
	return StockLevel{value: s.value + q.Value()}
}
