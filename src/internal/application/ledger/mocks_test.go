package ledger

import (
	"time"

	"github.com/gracekids/talent_ledger/src/internal/domain/catalog"
	"github.com/gracekids/talent_ledger/src/internal/domain/ledger"
	"github.com/gracekids/talent_ledger/src/internal/domain/shared"
	"github.com/gracekids/talent_ledger/src/internal/domain/student"
	"github.com/stretchr/testify/mock"
)

// ===========================
// Mocks
// ===========================

// MockStudentRepository mock implementation of StudentRepository
type MockStudentRepository struct {
	mock.Mock
}

func (m *MockStudentRepository) Save(ctx shared.TransactionContext, s *student.Student) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockStudentRepository) FindByID(ctx shared.TransactionContext, id student.StudentID) (*student.Student, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*student.Student), args.Error(1)
}

func (m *MockStudentRepository) FindAll(ctx shared.TransactionContext) ([]*student.Student, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*student.Student), args.Error(1)
}

func (m *MockStudentRepository) Update(ctx shared.TransactionContext, s *student.Student) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockStudentRepository) AdjustBalance(ctx shared.TransactionContext, id student.StudentID, delta int) (*student.Student, error) {
	args := m.Called(ctx, id, delta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*student.Student), args.Error(1)
}

// MockProductRepository mock implementation of ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Save(ctx shared.TransactionContext, p *catalog.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductRepository) FindByID(ctx shared.TransactionContext, id catalog.ProductID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindActive(ctx shared.TransactionContext) ([]*catalog.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Update(ctx shared.TransactionContext, p *catalog.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductRepository) AdjustStock(ctx shared.TransactionContext, id catalog.ProductID, delta int) (*catalog.Product, error) {
	args := m.Called(ctx, id, delta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

// MockLedgerRepository mock implementation of LedgerRepository
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) Append(ctx shared.TransactionContext, entry *ledger.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLedgerRepository) ListByStudent(ctx shared.TransactionContext, id student.StudentID) ([]*ledger.LedgerEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ledger.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) SumByStudent(ctx shared.TransactionContext, id student.StudentID) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

func (m *MockLedgerRepository) CountByStudent(ctx shared.TransactionContext, id student.StudentID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

// MockTransactionManager mock implementation of TransactionManager
type MockTransactionManager struct {
	mock.Mock
}

func (m *MockTransactionManager) InTransaction(fn func(ctx shared.TransactionContext) error) error {
	// Directly execute the function with nil context (for unit tests)
	return fn(nil)
}

// ===========================
// Test Fixtures
// ===========================

// reconstructStudent 以指定餘額重建學生（測試數據）
func reconstructStudent(id student.StudentID, name string, balance int) *student.Student {
	now := time.Now()
	s, err := student.ReconstructStudent(id, name, balance, now, now)
	if err != nil {
		panic(err)
	}
	return s
}

// reconstructProduct 以指定庫存重建獎品（測試數據）
func reconstructProduct(id catalog.ProductID, name string, price, stock int, active bool) *catalog.Product {
	now := time.Now()
	p, err := catalog.ReconstructProduct(id, name, price, stock, active, now, now)
	if err != nil {
		panic(err)
	}
	return p
}
