package models

import "time"

// NonMember is a lightweight registration record for attendees without a membership
type NonMember struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	FirstName string    `json:"firstName" gorm:"size:100;not null"`
	LastName  string    `json:"lastName" gorm:"size:100;not null"`
	Email     string    `json:"email" gorm:"size:255;not null;index"`
	Phone     string    `json:"phone,omitempty" gorm:"size:50"`
	Workplace string    `json:"workplace,omitempty" gorm:"size:255"`
	CreatedAt time.Time `json:"createdAt"`

	Registrations []EventUser `json:"registrations,omitempty" gorm:"foreignKey:NonMemberID;constraint:OnDelete:CASCADE"`
}

func (NonMember) TableName() string {
	return "non_members"
}

// EventUser links either a Member or a NonMember to an Event.
// Exactly one of MemberID and NonMemberID is set.
type EventUser struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	EventID     int64     `json:"eventId" gorm:"not null;index;uniqueIndex:idx_event_users_event_member"`
	MemberID    *int64    `json:"memberId,omitempty" gorm:"index;uniqueIndex:idx_event_users_event_member"`
	NonMemberID *int64    `json:"nonMemberId,omitempty" gorm:"index"`
	IsPending   bool      `json:"isPending" gorm:"not null"`
	CreatedAt   time.Time `json:"createdAt"`

	Event     *Event     `json:"event,omitempty"`
	Member    *Member    `json:"member,omitempty"`
	NonMember *NonMember `json:"nonMember,omitempty"`
}

func (EventUser) TableName() string {
	return "event_users"
}
