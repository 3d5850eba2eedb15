package dto

// NonMemberRequest carries the attendee details of a non-member registration
type NonMemberRequest struct {
	FirstName string `json:"firstName" form:"firstName" binding:"required,max=100"`
	LastName  string `json:"lastName" form:"lastName" binding:"required,max=100"`
	Email     string `json:"email" form:"email" binding:"required,email"`
	Phone     string `json:"phone" form:"phone" binding:"omitempty,max=50,phone"`
	Workplace string `json:"workplace" form:"workplace" binding:"omitempty,max=255"`
}

// EventRegistrationRequest registers either an existing member (by email)
// or a non-member. Exactly one of the two must be present.
type EventRegistrationRequest struct {
	MemberEmail string            `json:"memberEmail" binding:"omitempty,email"`
	NonMember   *NonMemberRequest `json:"nonMember"`
}
