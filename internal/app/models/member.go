package models

import "time"

// Member is a registered user of the association with an approval workflow
type Member struct {
	ID            int64        `json:"id" gorm:"primaryKey"`
	FirstName     string       `json:"firstName" gorm:"size:100;not null"`
	LastName      string       `json:"lastName" gorm:"size:100;not null"`
	Email         string       `json:"email" gorm:"size:255;not null;uniqueIndex"`
	Phone         string       `json:"phone,omitempty" gorm:"size:50"`
	Workplace     string       `json:"workplace,omitempty" gorm:"size:255"`
	Position      string       `json:"position,omitempty" gorm:"size:255"`
	LicenseNumber string       `json:"licenseNumber,omitempty" gorm:"size:100"`
	Status        MemberStatus `json:"status" gorm:"size:20;not null;default:PENDING;index"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`

	Registrations []EventUser `json:"registrations,omitempty" gorm:"foreignKey:MemberID;constraint:OnDelete:CASCADE"`
}

func (Member) TableName() string {
	return "members"
}

// FullName joins first and last name
func (m *Member) FullName() string {
	return m.FirstName + " " + m.LastName
}
