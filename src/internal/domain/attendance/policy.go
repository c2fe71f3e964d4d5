package attendance

import (
	"github.com/shopspring/decimal"
)

// ===========================
// AwardPolicy 值對象
// ===========================

// AwardPolicy 出席獎勵規則
//
// 設計原則：
// 1. 值對象不可變、自我驗證；規則由外層配置注入，核心不讀配置
// 2. 遲到獎勵使用 decimal 比例精確計算後向下取整 ——
//    孩子不會因為 0.5 的比例拿到半個達倫
//
// 規則組成：
// - baseAward: 準時出席的達倫獎勵（> 0）
// - lateRatio: 遲到獎勵比例（0 < ratio <= 1），遲到獎勵 = floor(base * ratio)
// - streakInterval: 連續出席加給的門檻週期 N（> 0）
// - streakBonus: 連續出席次數跨越 N 的倍數時的加給（>= 0，0 表示停用）
type AwardPolicy struct {
	baseAward      int
	lateRatio      decimal.Decimal
	streakInterval int
	streakBonus    int
}

// NewAwardPolicy 建構函數（checked 版本）
func NewAwardPolicy(baseAward int, lateRatio decimal.Decimal, streakInterval, streakBonus int) (AwardPolicy, error) {
	if baseAward <= 0 {
		return AwardPolicy{}, ErrInvalidAwardPolicy.WithContext(
			"field", "baseAward",
			"value", baseAward,
		)
	}
	if lateRatio.LessThanOrEqual(decimal.Zero) || lateRatio.GreaterThan(decimal.NewFromInt(1)) {
		return AwardPolicy{}, ErrInvalidAwardPolicy.WithContext(
			"field", "lateRatio",
			"value", lateRatio.String(),
		)
	}
	if streakInterval <= 0 {
		return AwardPolicy{}, ErrInvalidAwardPolicy.WithContext(
			"field", "streakInterval",
			"value", streakInterval,
		)
	}
	if streakBonus < 0 {
		return AwardPolicy{}, ErrInvalidAwardPolicy.WithContext(
			"field", "streakBonus",
			"value", streakBonus,
		)
	}

	return AwardPolicy{
		baseAward:      baseAward,
		lateRatio:      lateRatio,
		streakInterval: streakInterval,
		streakBonus:    streakBonus,
	}, nil
}

// BaseAward 獲取準時出席獎勵
func (p AwardPolicy) BaseAward() int {
	return p.baseAward
}

// StreakInterval 獲取連續出席加給週期
func (p AwardPolicy) StreakInterval() int {
	return p.streakInterval
}

// StreakBonus 獲取連續出席加給數量
func (p AwardPolicy) StreakBonus() int {
	return p.streakBonus
}

// AwardFor 計算指定出缺席狀態的達倫獎勵
//
// 業務規則：
// - present → baseAward
// - late    → floor(baseAward * lateRatio)
// - absent  → 0
func (p AwardPolicy) AwardFor(status MarkStatus) int {
	switch status {
	case StatusPresent:
		return p.baseAward
	case StatusLate:
		return int(decimal.NewFromInt(int64(p.baseAward)).Mul(p.lateRatio).Floor().IntPart())
	default:
		return 0
	}
}

// StreakBonusDue 判斷連續出席次數是否觸發加給
//
// 業務規則：連續出席次數為 streakInterval 的正倍數時觸發。
// streakBonus 為 0 時規則停用，永不觸發。
func (p AwardPolicy) StreakBonusDue(streak int) bool {
	if p.streakBonus == 0 || streak <= 0 {
		return false
	}
	return streak%p.streakInterval == 0
}

// ===========================
// 連續出席計算
// ===========================

// ConsecutiveStreak 由新到舊的出缺席記錄計算連續出席次數
//
// 輸入約定：marks 按聚會日期由新到舊排序（Repository 保證）。
// 缺席記錄中斷連續；連續只以有記錄的聚會日計算，聚會之間的
// 平日不影響（兒童主日學每週一次聚會）。
func ConsecutiveStreak(marks []*AttendanceMark) int {
	streak := 0
	for _, m := range marks {
		if !m.Status().IsAttended() {
			break
		}
		streak++
	}
	return streak
}
