package attendance

import (
	"errors"
	"fmt"

	appledger "github.com/gracekids/talent_ledger/src/internal/application/ledger"
	"github.com/gracekids/talent_ledger/src/internal/domain/attendance"
	"github.com/gracekids/talent_ledger/src/internal/domain/shared"
	"github.com/gracekids/talent_ledger/src/internal/domain/student"
)

// ===========================
// RecordAttendance Use Case
// ===========================

// streakLookback 連續出席計算回溯的記錄筆數上限
// 每週一次聚會，52 筆約為一年，遠超任何合理的加給週期。
const streakLookback = 52

// RecordAttendanceCommand 出缺席登錄指令（Input DTO）
type RecordAttendanceCommand struct {
	StudentID string // 學生 ID（UUID 字串）
	Date      string // 聚會日期（YYYY-MM-DD）
	Status    string // present | late | absent
}

// RecordAttendanceResult 出缺席登錄結果（Output DTO）
type RecordAttendanceResult struct {
	StudentID   string // 學生 ID
	Date        string // 聚會日期
	Status      string // 登錄後狀態
	AwardDelta  int    // 本次登錄引起的達倫增減（0 表示無流水）
	StreakBonus int    // 觸發的連續出席加給（0 表示未觸發）
	Streak      int    // 登錄後的連續出席次數
	Balance     int    // 登錄後學生餘額
}

// RecordAttendanceUseCase 出缺席登錄 Use Case
//
// 職責：
// 1. 維護每個學生每個聚會日期至多一筆的出缺席記錄
// 2. 按獎勵規則把出席獎勵記入達倫帳（通過 AdjustTalentUseCase，
//    與記錄變更同一事務）
// 3. 更正時沖正：present/late 改回 absent 時以負向調整抵銷已發的獎勵
// 4. 連續出席次數跨越規則週期的倍數時追加 bonus 流水
//
// 基數約定：達倫帳不假設「每天一次」—— 同一學生同一天可能產生
// 出席獎勵、沖正、加給等多筆流水。
//
// 沖正的邊界情況：學生已把獎勵花掉時，沖正扣帳會因餘額不足失敗，
// 此時整個更正（含記錄狀態變更）回滾 —— 餘額永不為負的硬性不變
// 條件優先於更正操作。
type RecordAttendanceUseCase struct {
	attendanceRepo attendance.AttendanceRepository
	studentRepo    student.StudentRepository
	adjustTalent   *appledger.AdjustTalentUseCase
	policy         attendance.AwardPolicy
	txManager      shared.TransactionManager
}

// NewRecordAttendanceUseCase 創建 Use Case 實例
func NewRecordAttendanceUseCase(
	attendanceRepo attendance.AttendanceRepository,
	studentRepo student.StudentRepository,
	adjustTalent *appledger.AdjustTalentUseCase,
	policy attendance.AwardPolicy,
	txManager shared.TransactionManager,
) *RecordAttendanceUseCase {
	return &RecordAttendanceUseCase{
		attendanceRepo: attendanceRepo,
		studentRepo:    studentRepo,
		adjustTalent:   adjustTalent,
		policy:         policy,
		txManager:      txManager,
	}
}

// Execute 執行出缺席登錄
//
// 冪等性：以相同狀態重複登錄同一（學生, 日期）是 no-op，
// 不產生額外流水。
func (uc *RecordAttendanceUseCase) Execute(cmd RecordAttendanceCommand) (*RecordAttendanceResult, error) {
	// 1. 驗證並轉換輸入
	studentID, err := student.StudentIDFromString(cmd.StudentID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse student ID: %w", err)
	}

	date, err := attendance.NewServiceDate(cmd.Date)
	if err != nil {
		return nil, err
	}

	status, err := attendance.NewMarkStatus(cmd.Status)
	if err != nil {
		return nil, err
	}

	var result *RecordAttendanceResult
	err = uc.txManager.InTransaction(func(ctx shared.TransactionContext) error {
		r, err := uc.recordInTransaction(ctx, studentID, date, status)
		if err != nil {
			return err
		}
		result = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// recordInTransaction 登錄流程本體（必須在事務中執行）
func (uc *RecordAttendanceUseCase) recordInTransaction(
	ctx shared.TransactionContext,
	studentID student.StudentID,
	date attendance.ServiceDate,
	status attendance.MarkStatus,
) (*RecordAttendanceResult, error) {
	// 學生必須存在（即使本次登錄不產生流水）
	if _, err := uc.studentRepo.FindByID(ctx, studentID); err != nil {
		return nil, fmt.Errorf("failed to find student: %w", err)
	}

	// 2. 查找既有記錄，計算獎勵差額
	prevAward := 0
	wasAttended := false

	existing, err := uc.attendanceRepo.FindByStudentAndDate(ctx, studentID, date)
	switch {
	case err == nil:
		prevAward = uc.policy.AwardFor(existing.Status())
		wasAttended = existing.Status().IsAttended()
	case isMarkNotFound(err):
		existing = nil
	default:
		return nil, fmt.Errorf("failed to find attendance mark: %w", err)
	}

	newAward := uc.policy.AwardFor(status)
	delta := newAward - prevAward

	// 3. 寫入或更正記錄
	if existing == nil {
		mark, err := attendance.NewAttendanceMark(studentID, date, status)
		if err != nil {
			return nil, err
		}
		if err := uc.attendanceRepo.Save(ctx, mark); err != nil {
			return nil, fmt.Errorf("failed to save attendance mark: %w", err)
		}
	} else if existing.Status() != status {
		if err := existing.ChangeStatus(status); err != nil {
			return nil, err
		}
		if err := uc.attendanceRepo.Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("failed to update attendance mark: %w", err)
		}
	}

	// 4. 按差額記帳（同一事務；沖正失敗時整個更正回滾）
	if delta != 0 {
		reason := fmt.Sprintf("主日出席獎勵（%s）", date.String())
		if delta < 0 {
			reason = fmt.Sprintf("出席更正沖正（%s）", date.String())
		}
		if _, err := uc.adjustTalent.ExecuteWithContext(ctx, appledger.AdjustTalentCommand{
			StudentID: studentID.String(),
			Amount:    delta,
			Reason:    reason,
			EntryType: attendanceEntryType,
		}); err != nil {
			return nil, err
		}
	}

	// 5. 連續出席加給：只在「從未出席變為出席」的轉換上評估，
	//    避免重複登錄或遲到/準時互改重複發放
	streak := 0
	bonus := 0
	if status.IsAttended() {
		marks, err := uc.attendanceRepo.ListRecentByStudent(ctx, studentID, date, streakLookback)
		if err != nil {
			return nil, fmt.Errorf("failed to list attendance marks: %w", err)
		}
		streak = attendance.ConsecutiveStreak(marks)

		if !wasAttended && uc.policy.StreakBonusDue(streak) {
			bonus = uc.policy.StreakBonus()
			if _, err := uc.adjustTalent.ExecuteWithContext(ctx, appledger.AdjustTalentCommand{
				StudentID: studentID.String(),
				Amount:    bonus,
				Reason:    fmt.Sprintf("連續出席 %d 次加給", streak),
				EntryType: bonusEntryType,
			}); err != nil {
				return nil, err
			}
		}
	}

	// 6. 回讀最終餘額（不做任何進程內快取，每次讀都走存儲）
	s, err := uc.studentRepo.FindByID(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload student: %w", err)
	}

	return &RecordAttendanceResult{
		StudentID:   studentID.String(),
		Date:        date.String(),
		Status:      status.String(),
		AwardDelta:  delta,
		StreakBonus: bonus,
		Streak:      streak,
		Balance:     s.Balance().Value(),
	}, nil
}

// 流水類型標籤（開放式字串，與 ledger.EntryTypeAttendance / EntryTypeBonus 對應）
const (
	attendanceEntryType = "attendance"
	bonusEntryType      = "bonus"
)

// isMarkNotFound 判斷是否為記錄不存在錯誤
func isMarkNotFound(err error) bool {
	return errors.Is(err, attendance.ErrMarkNotFound)
}
