package attendance

import (
	"testing"
	"time"

	appledger "github.com/gracekids/talent_ledger/src/internal/application/ledger"
	"github.com/gracekids/talent_ledger/src/internal/domain/attendance"
	"github.com/gracekids/talent_ledger/src/internal/domain/ledger"
	"github.com/gracekids/talent_ledger/src/internal/domain/shared"
	"github.com/gracekids/talent_ledger/src/internal/domain/student"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// ===========================
// Mocks
// ===========================

// MockAttendanceRepository mock implementation of AttendanceRepository
type MockAttendanceRepository struct {
	mock.Mock
}

func (m *MockAttendanceRepository) Save(ctx shared.TransactionContext, mark *attendance.AttendanceMark) error {
	args := m.Called(ctx, mark)
	return args.Error(0)
}

func (m *MockAttendanceRepository) FindByStudentAndDate(ctx shared.TransactionContext, id student.StudentID, date attendance.ServiceDate) (*attendance.AttendanceMark, error) {
	args := m.Called(ctx, id, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*attendance.AttendanceMark), args.Error(1)
}

func (m *MockAttendanceRepository) ListRecentByStudent(ctx shared.TransactionContext, id student.StudentID, upTo attendance.ServiceDate, limit int) ([]*attendance.AttendanceMark, error) {
	args := m.Called(ctx, id, upTo, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*attendance.AttendanceMark), args.Error(1)
}

func (m *MockAttendanceRepository) Update(ctx shared.TransactionContext, mark *attendance.AttendanceMark) error {
	args := m.Called(ctx, mark)
	return args.Error(0)
}

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

// testPolicy 測試規則：準時 +5、遲到 0.5（+2）、連續 4 次加給 +10
func testPolicy(t *testing.T) attendance.AwardPolicy {
	t.Helper()

	policy, err := attendance.NewAwardPolicy(5, decimal.NewFromFloat(0.5), 4, 10)
	require.NoError(t, err)
	return policy
}

type recordFixture struct {
	attendanceRepo *MockAttendanceRepository
	studentRepo    *MockStudentRepository
	ledgerRepo     *MockLedgerRepository
	useCase        *RecordAttendanceUseCase
}

func newRecordFixture(t *testing.T) *recordFixture {
	t.Helper()

	attendanceRepo := new(MockAttendanceRepository)
	studentRepo := new(MockStudentRepository)
	ledgerRepo := new(MockLedgerRepository)
	txManager := new(MockTransactionManager)

	adjust := appledger.NewAdjustTalentUseCase(studentRepo, ledgerRepo, txManager)

	return &recordFixture{
		attendanceRepo: attendanceRepo,
		studentRepo:    studentRepo,
		ledgerRepo:     ledgerRepo,
		useCase: NewRecordAttendanceUseCase(
			attendanceRepo, studentRepo, adjust, testPolicy(t), txManager,
		),
	}
}

func reconstructStudent(id student.StudentID, balance int) *student.Student {
	now := time.Now()
	s, err := student.ReconstructStudent(id, "測試學生", balance, now, now)
	if err != nil {
		panic(err)
	}
	return s
}

func mustMark(t *testing.T, id student.StudentID, date string, status attendance.MarkStatus) *attendance.AttendanceMark {
	t.Helper()

	serviceDate, err := attendance.NewServiceDate(date)
	require.NoError(t, err)
	mark, err := attendance.NewAttendanceMark(id, serviceDate, status)
	require.NoError(t, err)
	return mark
}

// ===========================
// RecordAttendanceUseCase Tests
// ===========================

// 首次登錄出席：記錄 + 獎勵流水
func TestRecordAttendanceUseCase_FirstPresent_AwardsBase(t *testing.T) {
	// Arrange
	f := newRecordFixture(t)
	studentID := student.NewStudentID()

	// FindByID 返回同一聚合指針：Credit 調整後重讀拿到更新後餘額
	f.studentRepo.On("FindByID", mock.Anything, studentID).
		Return(reconstructStudent(studentID, 0), nil)
	f.attendanceRepo.On("FindByStudentAndDate", mock.Anything, studentID, mock.Anything).
		Return(nil, attendance.ErrMarkNotFound)
	f.attendanceRepo.On("Save", mock.Anything, mock.Anything).Return(nil)
	f.studentRepo.On("AdjustBalance", mock.Anything, studentID, 5).
		Return(reconstructStudent(studentID, 5), nil)
	f.ledgerRepo.On("Append", mock.Anything, mock.MatchedBy(func(e *ledger.LedgerEntry) bool {
		return e.Amount() == 5 && e.EntryType() == ledger.EntryTypeAttendance
	})).Return(nil)
	f.attendanceRepo.On("ListRecentByStudent", mock.Anything, studentID, mock.Anything, 52).
		Return([]*attendance.AttendanceMark{
			mustMark(t, studentID, "2026-08-23", attendance.StatusPresent),
		}, nil)

	// Act
	result, err := f.useCase.Execute(RecordAttendanceCommand{
		StudentID: studentID.String(),
		Date:      "2026-08-23",
		Status:    "present",
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 5, result.AwardDelta)
	assert.Equal(t, 1, result.Streak)
	assert.Equal(t, 0, result.StreakBonus)
	assert.Equal(t, 5, result.Balance)

	f.attendanceRepo.AssertExpectations(t)
	f.ledgerRepo.AssertExpectations(t)
}

// 首次登錄遲到：獎勵按比例向下取整
func TestRecordAttendanceUseCase_FirstLate_AwardsFlooredRatio(t *testing.T) {
	// Arrange
	f := newRecordFixture(t)
	studentID := student.NewStudentID()

	f.studentRepo.On("FindByID", mock.Anything, studentID).
		Return(reconstructStudent(studentID, 0), nil)
	f.attendanceRepo.On("FindByStudentAndDate", mock.Anything, studentID, mock.Anything).
		Return(nil, attendance.ErrMarkNotFound)
	f.attendanceRepo.On("Save", mock.Anything, mock.Anything).Return(nil)
	f.studentRepo.On("AdjustBalance", mock.Anything, studentID, 2).
		Return(reconstructStudent(studentID, 2), nil)
	f.ledgerRepo.On("Append", mock.Anything, mock.Anything).Return(nil)
	f.attendanceRepo.On("ListRecentByStudent", mock.Anything, studentID, mock.Anything, 52).
		Return([]*attendance.AttendanceMark{
			mustMark(t, studentID, "2026-08-23", attendance.StatusLate),
		}, nil)

	// Act
	result, err := f.useCase.Execute(RecordAttendanceCommand{
		StudentID: studentID.String(),
		Date:      "2026-08-23",
		Status:    "late",
	})

	// Assert: 5 * 0.5 = 2.5 → 2
	require.NoError(t, err)
	assert.Equal(t, 2, result.AwardDelta)
}

// 同一狀態重複登錄：no-op，不產生流水
func TestRecordAttendanceUseCase_SameStatusTwice_NoOp(t *testing.T) {
	// Arrange
	f := newRecordFixture(t)
	studentID := student.NewStudentID()
	existing := mustMark(t, studentID, "2026-08-23", attendance.StatusPresent)

	f.studentRepo.On("FindByID", mock.Anything, studentID).
		Return(reconstructStudent(studentID, 5), nil)
	f.attendanceRepo.On("FindByStudentAndDate", mock.Anything, studentID, mock.Anything).
		Return(existing, nil)
	f.attendanceRepo.On("ListRecentByStudent", mock.Anything, studentID, mock.Anything, 52).
		Return([]*attendance.AttendanceMark{existing}, nil)

	// Act
	result, err := f.useCase.Execute(RecordAttendanceCommand{
		StudentID: studentID.String(),
		Date:      "2026-08-23",
		Status:    "present",
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 0, result.AwardDelta)
	assert.Equal(t, 5, result.Balance)

	f.attendanceRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	f.attendanceRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	f.ledgerRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

// 更正 present → absent：負向沖正流水
func TestRecordAttendanceUseCase_CorrectionToAbsent_ReversesAward(t *testing.T) {
	// Arrange
	f := newRecordFixture(t)
	studentID := student.NewStudentID()
	existing := mustMark(t, studentID, "2026-08-23", attendance.StatusPresent)

	f.studentRepo.On("FindByID", mock.Anything, studentID).
		Return(reconstructStudent(studentID, 5), nil)
	f.attendanceRepo.On("FindByStudentAndDate", mock.Anything, studentID, mock.Anything).
		Return(existing, nil)
	f.attendanceRepo.On("Update", mock.Anything, existing).Return(nil)
	f.studentRepo.On("AdjustBalance", mock.Anything, studentID, -5).
		Return(reconstructStudent(studentID, 0), nil)
	f.ledgerRepo.On("Append", mock.Anything, mock.MatchedBy(func(e *ledger.LedgerEntry) bool {
		return e.Amount() == -5 && e.EntryType() == ledger.EntryTypeAttendance
	})).Return(nil)

	// Act
	result, err := f.useCase.Execute(RecordAttendanceCommand{
		StudentID: studentID.String(),
		Date:      "2026-08-23",
		Status:    "absent",
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, -5, result.AwardDelta)
	assert.Equal(t, 0, result.Balance)
	assert.Equal(t, attendance.StatusAbsent, existing.Status())

	f.attendanceRepo.AssertExpectations(t)
	f.ledgerRepo.AssertExpectations(t)
}

// 沖正遇到餘額不足：錯誤向上傳播（事務由外層整體回滾）
func TestRecordAttendanceUseCase_CorrectionInsufficientBalance_ReturnsError(t *testing.T) {
	// Arrange
	f := newRecordFixture(t)
	studentID := student.NewStudentID()
	existing := mustMark(t, studentID, "2026-08-23", attendance.StatusPresent)

	// 學生已把獎勵花掉，餘額只剩 1
	f.studentRepo.On("FindByID", mock.Anything, studentID).
		Return(reconstructStudent(studentID, 1), nil)
	f.attendanceRepo.On("FindByStudentAndDate", mock.Anything, studentID, mock.Anything).
		Return(existing, nil)
	f.attendanceRepo.On("Update", mock.Anything, existing).Return(nil)

	// Act
	result, err := f.useCase.Execute(RecordAttendanceCommand{
		StudentID: studentID.String(),
		Date:      "2026-08-23",
		Status:    "absent",
	})

	// Assert
	assert.Error(t, err)
	assert.ErrorIs(t, err, student.ErrBalanceInsufficient)
	assert.Nil(t, result)

	f.studentRepo.AssertNotCalled(t, "AdjustBalance", mock.Anything, mock.Anything, mock.Anything)
	f.ledgerRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

// 連續出席跨越週期倍數：追加 bonus 流水
func TestRecordAttendanceUseCase_StreakBonus_AwardedAtInterval(t *testing.T) {
	// Arrange
	f := newRecordFixture(t)
	studentID := student.NewStudentID()

	f.studentRepo.On("FindByID", mock.Anything, studentID).
		Return(reconstructStudent(studentID, 15), nil)
	f.attendanceRepo.On("FindByStudentAndDate", mock.Anything, studentID, mock.Anything).
		Return(nil, attendance.ErrMarkNotFound)
	f.attendanceRepo.On("Save", mock.Anything, mock.Anything).Return(nil)
	f.studentRepo.On("AdjustBalance", mock.Anything, studentID, 5).
		Return(reconstructStudent(studentID, 20), nil)
	f.studentRepo.On("AdjustBalance", mock.Anything, studentID, 10).
		Return(reconstructStudent(studentID, 30), nil)
	f.ledgerRepo.On("Append", mock.Anything, mock.Anything).Return(nil)

	// 連續 4 次出席（含本次，由新到舊）
	f.attendanceRepo.On("ListRecentByStudent", mock.Anything, studentID, mock.Anything, 52).
		Return([]*attendance.AttendanceMark{
			mustMark(t, studentID, "2026-08-23", attendance.StatusPresent),
			mustMark(t, studentID, "2026-08-16", attendance.StatusPresent),
			mustMark(t, studentID, "2026-08-09", attendance.StatusLate),
			mustMark(t, studentID, "2026-08-02", attendance.StatusPresent),
		}, nil)

	// Act
	result, err := f.useCase.Execute(RecordAttendanceCommand{
		StudentID: studentID.String(),
		Date:      "2026-08-23",
		Status:    "present",
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 4, result.Streak)
	assert.Equal(t, 10, result.StreakBonus)
	assert.Equal(t, 30, result.Balance)

	// 兩筆流水：出席獎勵 + 連續加給
	f.ledgerRepo.AssertNumberOfCalls(t, "Append", 2)
}

// 遲到改準時（仍是出席）不重複發放連續加給
func TestRecordAttendanceUseCase_LateToPresent_NoDuplicateStreakBonus(t *testing.T) {
	// Arrange
	f := newRecordFixture(t)
	studentID := student.NewStudentID()
	existing := mustMark(t, studentID, "2026-08-23", attendance.StatusLate)

	f.studentRepo.On("FindByID", mock.Anything, studentID).
		Return(reconstructStudent(studentID, 12), nil)
	f.attendanceRepo.On("FindByStudentAndDate", mock.Anything, studentID, mock.Anything).
		Return(existing, nil)
	f.attendanceRepo.On("Update", mock.Anything, existing).Return(nil)
	f.studentRepo.On("AdjustBalance", mock.Anything, studentID, 3).
		Return(reconstructStudent(studentID, 15), nil)
	f.ledgerRepo.On("Append", mock.Anything, mock.Anything).Return(nil)

	// 連續 4 次：加給本應觸發，但這是遲到→準時的更正
	f.attendanceRepo.On("ListRecentByStudent", mock.Anything, studentID, mock.Anything, 52).
		Return([]*attendance.AttendanceMark{
			mustMark(t, studentID, "2026-08-23", attendance.StatusPresent),
			mustMark(t, studentID, "2026-08-16", attendance.StatusPresent),
			mustMark(t, studentID, "2026-08-09", attendance.StatusPresent),
			mustMark(t, studentID, "2026-08-02", attendance.StatusPresent),
		}, nil)

	// Act
	result, err := f.useCase.Execute(RecordAttendanceCommand{
		StudentID: studentID.String(),
		Date:      "2026-08-23",
		Status:    "present",
	})

	// Assert: 差額 +3（5 - 2），無加給
	require.NoError(t, err)
	assert.Equal(t, 3, result.AwardDelta)
	assert.Equal(t, 0, result.StreakBonus)

	// 只有差額一筆流水
	f.ledgerRepo.AssertNumberOfCalls(t, "Append", 1)
}

// 非法日期被拒絕，不觸碰任何存儲
func TestRecordAttendanceUseCase_InvalidDate_ReturnsError(t *testing.T) {
	// Arrange
	f := newRecordFixture(t)

	// Act
	_, err := f.useCase.Execute(RecordAttendanceCommand{
		StudentID: student.NewStudentID().String(),
		Date:      "23/08/2026",
		Status:    "present",
	})

	// Assert
	assert.Error(t, err)
	assert.ErrorIs(t, err, attendance.ErrInvalidServiceDate)
	f.studentRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

// 未知狀態被拒絕
func TestRecordAttendanceUseCase_UnknownStatus_ReturnsError(t *testing.T) {
	// Arrange
	f := newRecordFixture(t)

	// Act
	_, err := f.useCase.Execute(RecordAttendanceCommand{
		StudentID: student.NewStudentID().String(),
		Date:      "2026-08-23",
		Status:    "excused",
	})

	// Assert
	assert.Error(t, err)
	assert.ErrorIs(t, err, attendance.ErrInvalidMarkStatus)
}

// 學生不存在
func TestRecordAttendanceUseCase_StudentNotFound_ReturnsError(t *testing.T) {
	// Arrange
	f := newRecordFixture(t)
	studentID := student.NewStudentID()

	f.studentRepo.On("FindByID", mock.Anything, studentID).
		Return(nil, student.ErrStudentNotFound)

	// Act
	_, err := f.useCase.Execute(RecordAttendanceCommand{
		StudentID: studentID.String(),
		Date:      "2026-08-23",
		Status:    "present",
	})

	// Assert
	assert.Error(t, err)
	assert.ErrorIs(t, err, student.ErrStudentNotFound)
	f.attendanceRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}
