package models

import "fmt"

// RequestStatus is the six-state lifecycle shown on the senior dashboard.
// It is a different enumeration from HelpStage even though both contain a
// TICKET_PROPOSED value; the two must never be assigned across.
type RequestStatus string

const (
	StatusWaitingForHelper RequestStatus = "WAITING_FOR_HELPER"
	StatusHelperMatched    RequestStatus = "HELPER_MATCHED"
	StatusTicketProposed   RequestStatus = "TICKET_PROPOSED"
	StatusSeatConfirmed    RequestStatus = "SEAT_CONFIRMED"
	StatusCompleted        RequestStatus = "COMPLETED"
	StatusCancelled        RequestStatus = "CANCELLED"
)

// ParseRequestStatus validates a status string coming from the backend.
func ParseRequestStatus(s string) (RequestStatus, error) {
	switch st := RequestStatus(s); st {
	case StatusWaitingForHelper, StatusHelperMatched, StatusTicketProposed,
		StatusSeatConfirmed, StatusCompleted, StatusCancelled:
		return st, nil
	}
	return "", fmt.Errorf("unknown request status %q", s)
}

func (s RequestStatus) IsValid() bool {
	_, err := ParseRequestStatus(string(s))
	return err == nil
}

// Closed reports whether the request belongs to the history partition.
// Active requests are exactly the non-closed ones.
func (s RequestStatus) Closed() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Label is the reader-facing status text on the senior dashboard.
func (s RequestStatus) Label() string {
	switch s {
	case StatusWaitingForHelper:
		return "헬퍼를 기다리는 중"
	case StatusHelperMatched:
		return "헬퍼 매칭 완료"
	case StatusTicketProposed:
		return "티켓 정보 도착"
	case StatusSeatConfirmed:
		return "좌석 확정 완료"
	case StatusCompleted:
		return "도움 완료"
	case StatusCancelled:
		return "요청 취소됨"
	}
	return ""
}

// TextClass is the urgency text color for the status caption.
func (s RequestStatus) TextClass() string {
	switch s {
	case StatusTicketProposed:
		return "text-orange-600"
	case StatusWaitingForHelper:
		return "text-yellow-700"
	case StatusHelperMatched:
		return "text-blue-700"
	case StatusSeatConfirmed:
		return "text-green-700"
	case StatusCompleted:
		return "text-green-700"
	case StatusCancelled:
		return "text-red-700"
	}
	return ""
}

// HeaderClass is the card header background on the senior dashboard.
func (s RequestStatus) HeaderClass() string {
	switch s {
	case StatusTicketProposed:
		return "bg-orange-50"
	case StatusSeatConfirmed:
		return "bg-green-50"
	default:
		return "bg-slate-50"
	}
}

// RequestAction is the conditional call-to-action attached to an active
// dashboard card.
type RequestAction struct {
	Link string `json:"link"`
	Text string `json:"text"`
}

// Action returns the call-to-action for the given request, or nil when the
// status needs no user action. Only a proposed ticket asks the senior to do
// something: review and confirm the seat.
func (s RequestStatus) Action(requestID string) *RequestAction {
	if s != StatusTicketProposed {
		return nil
	}
	return &RequestAction{
		Link: "/senior/confirmation?requestId=" + requestID,
		Text: "티켓 정보 확인하기",
	}
}

// HelpStage is the four-step lifecycle shown on the helper request detail
// page. Steps are fixed and strictly ordered; the progress bar is step/4.
type HelpStage string

const (
	StageRequested      HelpStage = "REQUESTED"
	StageInProgress     HelpStage = "IN_PROGRESS"
	StageTicketProposed HelpStage = "TICKET_PROPOSED"
	StageCompleted      HelpStage = "COMPLETED"
)

// TotalStages is the number of steps on the helper progress bar.
const TotalStages = 4

// ParseHelpStage validates a stage string coming from the backend.
func ParseHelpStage(s string) (HelpStage, error) {
	switch st := HelpStage(s); st {
	case StageRequested, StageInProgress, StageTicketProposed, StageCompleted:
		return st, nil
	}
	return "", fmt.Errorf("unknown help stage %q", s)
}

func (s HelpStage) IsValid() bool {
	_, err := ParseHelpStage(string(s))
	return err == nil
}

// Step returns the 1-based progress step, or 0 for an invalid stage.
func (s HelpStage) Step() int {
	switch s {
	case StageRequested:
		return 1
	case StageInProgress:
		return 2
	case StageTicketProposed:
		return 3
	case StageCompleted:
		return 4
	}
	return 0
}

// Progress is the progress bar ratio in [0,1].
func (s HelpStage) Progress() float64 {
	return float64(s.Step()) / float64(TotalStages)
}

func (s HelpStage) Label() string {
	switch s {
	case StageRequested:
		return "요청 접수"
	case StageInProgress:
		return "도움 진행 중"
	case StageTicketProposed:
		return "티켓 정보 전달 완료"
	case StageCompleted:
		return "도움 완료"
	}
	return ""
}

// Color is the badge/progress bar color class for the stage.
func (s HelpStage) Color() string {
	switch s {
	case StageRequested:
		return "bg-gray-500"
	case StageInProgress:
		return "bg-blue-500"
	case StageTicketProposed:
		return "bg-orange-500"
	case StageCompleted:
		return "bg-green-500"
	}
	return ""
}

// Done reports whether the helper has already delivered ticket info, which
// disables the mark-helped action.
func (s HelpStage) Done() bool {
	return s == StageTicketProposed || s == StageCompleted
}
