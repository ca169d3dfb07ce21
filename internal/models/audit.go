package models

import "time"

// Audit actions recorded by the console.
const (
	AuditActionLogin          = "LOGIN"
	AuditActionLogout         = "LOGOUT"
	AuditActionTrainerCreate  = "TRAINER_CREATE"
	AuditActionTrainerDelete  = "TRAINER_DELETE"
	AuditActionStudentDelete  = "STUDENT_DELETE"
	AuditActionCourseDelete   = "COURSE_DELETE"
	AuditActionOfferCreate    = "OFFER_CREATE"
	AuditActionSignalSend     = "SIGNAL_SEND"
	AuditActionPasswordChange = "PASSWORD_CHANGE"
)

// AuditLog is one recorded admin action.
type AuditLog struct {
	ID         string    `db:"id" json:"id"`
	ActorID    *string   `db:"actor_id" json:"actor_id,omitempty"`
	ActorName  string    `db:"actor_name" json:"actor_name"`
	Action     string    `db:"action" json:"action"`
	Resource   string    `db:"resource" json:"resource"`
	ResourceID *string   `db:"resource_id" json:"resource_id,omitempty"`
	Detail     []byte    `db:"detail" json:"detail,omitempty"`
	IPAddress  string    `db:"ip_address" json:"ip_address"`
	UserAgent  string    `db:"user_agent" json:"user_agent"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
