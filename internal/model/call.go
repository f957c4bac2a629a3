package model

import (
	"time"

	"github.com/google/uuid"
)

type CallType string

const (
	CallTypeInbound  CallType = "Inbound"
	CallTypeOutbound CallType = "Outbound"
	CallTypeInternal CallType = "Internal"
)

type CallStatus string

const (
	StatusAnswered CallStatus = "ANSWERED"
	StatusNoAnswer CallStatus = "NO ANSWER"
	StatusBusy     CallStatus = "BUSY"
	StatusFailed   CallStatus = "FAILED"
)

// CallRecord is one logged call attempt (CDR row). The service only ever
// reads these; ingestion happens upstream.
type CallRecord struct {
	ID           uuid.UUID  `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	TimeStart    time.Time  `gorm:"column:time_start;index" json:"time_start"`
	CallerNumber string     `gorm:"column:caller_number" json:"caller_number"`
	CalleeNumber string     `gorm:"column:callee_number" json:"callee_number"`
	Extension    string     `gorm:"column:extension;index" json:"extension"`
	CallType     CallType   `gorm:"column:call_type" json:"call_type"`
	CallStatus   CallStatus `gorm:"column:call_status" json:"call_status"`
	CallDuration int        `gorm:"column:call_duration" json:"call_duration"`
	TalkDuration int        `gorm:"column:talk_duration" json:"talk_duration"`
}

func (CallRecord) TableName() string {
	return "cdr_records"
}

func (r CallRecord) Answered() bool {
	return r.CallStatus == StatusAnswered
}

// RingTime is the elapsed seconds between initiation and connection (or
// abandonment). Never negative: talk_duration <= call_duration by contract,
// but malformed rows are floored rather than propagated.
func (r CallRecord) RingTime() int {
	ring := r.CallDuration - r.TalkDuration
	if ring < 0 {
		return 0
	}
	return ring
}

// missedLabel is the generic display label for any status outside the
// translation table.
const missedLabel = "ZAMUJEN"

var callTypeLabels = map[CallType]string{
	CallTypeInbound:  "Dohodni",
	CallTypeOutbound: "Odhodni",
	CallTypeInternal: "Interni",
}

var callTypeFromLabel = map[string]CallType{
	"Dohodni": CallTypeInbound,
	"Odhodni": CallTypeOutbound,
	"Interni": CallTypeInternal,
}

var statusLabels = map[CallStatus]string{
	StatusAnswered: "ODGOVORJEN",
	StatusNoAnswer: "NI ODGOVORA",
	StatusBusy:     "ZASEDEN",
	StatusFailed:   "NEUSPEŠEN",
}

var statusFromLabel = map[string]CallStatus{
	"ODGOVORJEN":  StatusAnswered,
	"NI ODGOVORA": StatusNoAnswer,
	missedLabel:   StatusNoAnswer,
}

// TranslateCallType maps an internal call type to its display label.
// Unknown types pass through unchanged.
func TranslateCallType(t CallType) string {
	if label, ok := callTypeLabels[t]; ok {
		return label
	}
	return string(t)
}

// TranslateStatus maps an internal call status to its display label.
// Unknown statuses collapse to the generic missed label, unlike call types.
func TranslateStatus(s CallStatus) string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return missedLabel
}

// CallTypeFromLabel resolves a display label back to the internal call
// type for filtering; unmapped labels pass through as-is.
func CallTypeFromLabel(label string) CallType {
	if t, ok := callTypeFromLabel[label]; ok {
		return t
	}
	return CallType(label)
}

// StatusFromLabel resolves a display label back to the internal call
// status for filtering; unmapped labels pass through as-is.
func StatusFromLabel(label string) CallStatus {
	if s, ok := statusFromLabel[label]; ok {
		return s
	}
	return CallStatus(label)
}
