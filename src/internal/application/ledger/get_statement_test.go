package ledger

import (
	"errors"
	"testing"
	"time"

	"github.com/gracekids/talent_ledger/src/internal/domain/ledger"
	"github.com/gracekids/talent_ledger/src/internal/domain/student"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// reconstructEntry 以指定金額重建流水記錄（測試數據）
func reconstructEntry(studentID student.StudentID, amount int, reason string, entryType ledger.EntryType, createdAt time.Time) *ledger.LedgerEntry {
	e, err := ledger.ReconstructLedgerEntry(
		ledger.NewEntryID(), studentID, amount, reason, entryType, createdAt,
	)
	if err != nil {
		panic(err)
	}
	return e
}

// ===========================
// GetStatementUseCase Tests
// ===========================

// 對帳單包含全部流水，且流水總和等於餘額
func TestGetStatementUseCase_Execute_EntrySumEqualsBalance(t *testing.T) {
	// Arrange
	mockStudentRepo := new(MockStudentRepository)
	mockLedgerRepo := new(MockLedgerRepository)
	useCase := NewGetStatementUseCase(mockStudentRepo, mockLedgerRepo)

	studentID := student.NewStudentID()
	now := time.Now()
	entries := []*ledger.LedgerEntry{
		reconstructEntry(studentID, -10, "商店兌換：足球 x1", ledger.EntryTypePurchase, now),
		reconstructEntry(studentID, 10, "背誦金句", ledger.EntryTypeBonus, now.Add(-time.Hour)),
		reconstructEntry(studentID, 5, "主日出席獎勵（2026-08-23）", ledger.EntryTypeAttendance, now.Add(-2*time.Hour)),
	}

	mockStudentRepo.On("FindByID", mock.Anything, studentID).
		Return(reconstructStudent(studentID, "小明", 5), nil)
	mockLedgerRepo.On("ListByStudent", mock.Anything, studentID).Return(entries, nil)

	// Act
	result, err := useCase.Execute(GetStatementQuery{StudentID: studentID.String()})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "小明", result.Name)
	assert.Equal(t, 5, result.Balance)
	require.Len(t, result.Entries, 3)
	assert.Equal(t, result.Balance, result.EntrySum)

	// 保持存儲層返回的時間倒序
	assert.Equal(t, -10, result.Entries[0].Amount)
	assert.Equal(t, "purchase", result.Entries[0].EntryType)
	assert.Equal(t, "主日出席獎勵（2026-08-23）", result.Entries[2].Reason)
}

// 沒有任何流水的新學生：空對帳單，總和為零
func TestGetStatementUseCase_Execute_NoEntries_EmptyStatement(t *testing.T) {
	// Arrange
	mockStudentRepo := new(MockStudentRepository)
	mockLedgerRepo := new(MockLedgerRepository)
	useCase := NewGetStatementUseCase(mockStudentRepo, mockLedgerRepo)

	studentID := student.NewStudentID()
	mockStudentRepo.On("FindByID", mock.Anything, studentID).
		Return(reconstructStudent(studentID, "小美", 0), nil)
	mockLedgerRepo.On("ListByStudent", mock.Anything, studentID).
		Return([]*ledger.LedgerEntry{}, nil)

	// Act
	result, err := useCase.Execute(GetStatementQuery{StudentID: studentID.String()})

	// Assert
	require.NoError(t, err)
	assert.Empty(t, result.Entries)
	assert.Equal(t, 0, result.EntrySum)
	assert.Equal(t, 0, result.Balance)
}

// 非法學生 ID 被拒絕，不觸碰存儲
func TestGetStatementUseCase_Execute_InvalidStudentID_ReturnsError(t *testing.T) {
	// Arrange
	mockStudentRepo := new(MockStudentRepository)
	mockLedgerRepo := new(MockLedgerRepository)
	useCase := NewGetStatementUseCase(mockStudentRepo, mockLedgerRepo)

	// Act
	result, err := useCase.Execute(GetStatementQuery{StudentID: "not-a-uuid"})

	// Assert
	assert.Error(t, err)
	assert.ErrorIs(t, err, student.ErrInvalidStudentID)
	assert.Nil(t, result)
	mockStudentRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

// 不存在的學生
func TestGetStatementUseCase_Execute_StudentNotFound_ReturnsError(t *testing.T) {
	// Arrange
	mockStudentRepo := new(MockStudentRepository)
	mockLedgerRepo := new(MockLedgerRepository)
	useCase := NewGetStatementUseCase(mockStudentRepo, mockLedgerRepo)

	studentID := student.NewStudentID()
	mockStudentRepo.On("FindByID", mock.Anything, studentID).
		Return(nil, student.ErrStudentNotFound)

	// Act
	result, err := useCase.Execute(GetStatementQuery{StudentID: studentID.String()})

	// Assert
	assert.Error(t, err)
	assert.ErrorIs(t, err, student.ErrStudentNotFound)
	assert.Nil(t, result)
	mockLedgerRepo.AssertNotCalled(t, "ListByStudent", mock.Anything, mock.Anything)
}

// 流水讀取失敗向上傳播
func TestGetStatementUseCase_Execute_ListFails_PropagatesError(t *testing.T) {
	// Arrange
	mockStudentRepo := new(MockStudentRepository)
	mockLedgerRepo := new(MockLedgerRepository)
	useCase := NewGetStatementUseCase(mockStudentRepo, mockLedgerRepo)

	studentID := student.NewStudentID()
	storageErr := errors.New("disk full")
	mockStudentRepo.On("FindByID", mock.Anything, studentID).
		Return(reconstructStudent(studentID, "小華", 3), nil)
	mockLedgerRepo.On("ListByStudent", mock.Anything, studentID).
		Return(nil, storageErr)

	// Act
	result, err := useCase.Execute(GetStatementQuery{StudentID: studentID.String()})

	// Assert
	assert.Error(t, err)
	assert.ErrorIs(t, err, storageErr)
	assert.Nil(t, result)
}
