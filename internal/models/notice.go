package models

import (
	"strings"
	"time"
)

type AudienceType string

const (
	AudienceAll        AudienceType = "all"
	AudienceEmployee   AudienceType = "employee"
	AudienceIntern     AudienceType = "intern"
	AudienceIndividual AudienceType = "individual"
)

type Audience struct {
	Type AudienceType `json:"type"`
	// Target is set only for individual notices.
	Target Person `json:"target,omitempty"`
}

type Notice struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Content  string    `json:"content"`
	Date     time.Time `json:"date"`
	Audience Audience  `json:"audience"`
}

type NoticeRequest struct {
	Title        string       `json:"title" validate:"required"`
	Content      string       `json:"content" validate:"required"`
	Date         string       `json:"date,omitempty"`
	AudienceType AudienceType `json:"audienceType,omitempty" validate:"omitempty,oneof=all employee intern individual"`
	TargetID     string       `json:"targetId,omitempty" validate:"required_if=AudienceType individual"`
	TargetModel  PersonKind   `json:"targetModel,omitempty" validate:"required_if=AudienceType individual"`
}

type Resolution string

const (
	ResolutionResolved Resolution = "resolved"
	ResolutionPending  Resolution = "pending"
)

// NoReplySentinel is what the API stores in adminReply before an admin answers.
const NoReplySentinel = "No reply yet"

// ResolutionFor derives a communication's status from its reply.
func ResolutionFor(reply string) Resolution {
	reply = strings.TrimSpace(reply)
	if reply == "" || reply == NoReplySentinel {
		return ResolutionPending
	}
	return ResolutionResolved
}

type Communication struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	AdminReply  string     `json:"adminReply"`
	Resolution  Resolution `json:"resolution"`
	Author      string     `json:"author"`
	CreatedAt   time.Time  `json:"createdAt"`
}

type CommunicationRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
}

type ReplyRequest struct {
	Reply  string `json:"reply" validate:"required"`
	Status string `json:"status"`
}

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceLeave   AttendanceStatus = "leave"
	AttendanceHalfDay AttendanceStatus = "half-day"
)

type Attendance struct {
	ID       string           `json:"id"`
	UserID   string           `json:"userId"`
	UserName string           `json:"userName"`
	UserKind PersonKind       `json:"userKind"`
	Date     time.Time        `json:"date"`
	Status   AttendanceStatus `json:"status"`
	TimeIn   time.Time        `json:"timeIn"`
}

type AttendanceRequest struct {
	Date   string           `json:"date" validate:"required"`
	Status AttendanceStatus `json:"status" validate:"required,oneof=present absent leave half-day"`
	TimeIn string           `json:"timeIn"`
}
