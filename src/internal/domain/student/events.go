package student

import (
	"time"

	"github.com/google/uuid"
)

// ===========================
// Student 領域事件
// ===========================

// StudentEnrolledEvent 學生註冊事件
type StudentEnrolledEvent struct {
	eventID    string
	studentID  StudentID
	name       string
	occurredAt time.Time
}

// NewStudentEnrolledEvent 創建學生註冊事件
func NewStudentEnrolledEvent(studentID StudentID, name string) *StudentEnrolledEvent {
	return &StudentEnrolledEvent{
		eventID:    uuid.New().String(),
		studentID:  studentID,
		name:       name,
		occurredAt: time.Now(),
	}
}

func (e *StudentEnrolledEvent) EventID() string       { return e.eventID }
func (e *StudentEnrolledEvent) EventType() string     { return "student.enrolled" }
func (e *StudentEnrolledEvent) OccurredAt() time.Time { return e.occurredAt }
func (e *StudentEnrolledEvent) AggregateID() string   { return e.studentID.String() }

// StudentID 獲取學生 ID
func (e *StudentEnrolledEvent) StudentID() StudentID { return e.studentID }

// Name 獲取學生姓名
func (e *StudentEnrolledEvent) Name() string { return e.name }

// ===========================
// TalentCredited 領域事件
// ===========================

// TalentCreditedEvent 達倫已入帳事件
type TalentCreditedEvent struct {
	eventID    string
	studentID  StudentID
	amount     TalentAmount
	reason     string
	occurredAt time.Time
}

// NewTalentCreditedEvent 創建達倫已入帳事件
func NewTalentCreditedEvent(studentID StudentID, amount TalentAmount, reason string) *TalentCreditedEvent {
	return &TalentCreditedEvent{
		eventID:    uuid.New().String(),
		studentID:  studentID,
		amount:     amount,
		reason:     reason,
		occurredAt: time.Now(),
	}
}

func (e *TalentCreditedEvent) EventID() string       { return e.eventID }
func (e *TalentCreditedEvent) EventType() string     { return "student.talent_credited" }
func (e *TalentCreditedEvent) OccurredAt() time.Time { return e.occurredAt }
func (e *TalentCreditedEvent) AggregateID() string   { return e.studentID.String() }

// StudentID 獲取學生 ID
func (e *TalentCreditedEvent) StudentID() StudentID { return e.studentID }

// Amount 獲取入帳數量
func (e *TalentCreditedEvent) Amount() TalentAmount { return e.amount }

// Reason 獲取入帳原因
func (e *TalentCreditedEvent) Reason() string { return e.reason }

// ===========================
// TalentDebited 領域事件
// ===========================

// TalentDebitedEvent 達倫已扣帳事件
type TalentDebitedEvent struct {
	eventID    string
	studentID  StudentID
	amount     TalentAmount
	reason     string
	occurredAt time.Time
}

// NewTalentDebitedEvent 創建達倫已扣帳事件
func NewTalentDebitedEvent(studentID StudentID, amount TalentAmount, reason string) *TalentDebitedEvent {
	return &TalentDebitedEvent{
		eventID:    uuid.New().String(),
		studentID:  studentID,
		amount:     amount,
		reason:     reason,
		occurredAt: time.Now(),
	}
}

func (e *TalentDebitedEvent) EventID() string       { return e.eventID }
func (e *TalentDebitedEvent) EventType() string     { return "student.talent_debited" }
func (e *TalentDebitedEvent) OccurredAt() time.Time { return e.occurredAt }
func (e *TalentDebitedEvent) AggregateID() string   { return e.studentID.String() }

// StudentID 獲取學生 ID
func (e *TalentDebitedEvent) StudentID() StudentID { return e.studentID }

// Amount 獲取扣帳數量
func (e *TalentDebitedEvent) Amount() TalentAmount { return e.amount }

// Reason 獲取扣帳原因
func (e *TalentDebitedEvent) Reason() string { return e.reason }
