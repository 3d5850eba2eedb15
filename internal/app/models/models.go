package models

// RoleType defines the role of an admin-area account
type RoleType string

const (
	RoleAdmin  RoleType = "ADMIN"
	RoleEditor RoleType = "EDITOR"
)

// IsValid reports whether r is a known role.
func (r RoleType) IsValid() bool {
	return r == RoleAdmin || r == RoleEditor
}

// MemberStatus is the approval state of a membership application
type MemberStatus string

const (
	MemberStatusPending  MemberStatus = "PENDING"
	MemberStatusApproved MemberStatus = "APPROVED"
	MemberStatusDenied   MemberStatus = "DENIED"
)

func (s MemberStatus) IsValid() bool {
	switch s {
	case MemberStatusPending, MemberStatusApproved, MemberStatusDenied:
		return true
	}
	return false
}

// EventType classifies an event/news item
type EventType string

const (
	EventTypeEvent       EventType = "EVENT"
	EventTypeRecognition EventType = "RECOGNITION"
	EventTypeTeam        EventType = "TEAM"
)

func (t EventType) IsValid() bool {
	switch t {
	case EventTypeEvent, EventTypeRecognition, EventTypeTeam:
		return true
	}
	return false
}

// NominationStatus is the review state of a nomination
type NominationStatus string

const (
	NominationStatusPending  NominationStatus = "PENDING"
	NominationStatusApproved NominationStatus = "APPROVED"
	NominationStatusRejected NominationStatus = "REJECTED"
)

func (s NominationStatus) IsValid() bool {
	switch s {
	case NominationStatusPending, NominationStatusApproved, NominationStatusRejected:
		return true
	}
	return false
}

// AllModels lists every persisted model in dependency order.
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&Member{},
		&Event{},
		&NonMember{},
		&EventUser{},
		&Nomination{},
		&Document{},
		&Luminance{},
	}
}
