package repositories

import (
	"gorm.io/gorm"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository       *UserRepository
	MemberRepository     *MemberRepository
	EventRepository      *EventRepository
	NonMemberRepository  *NonMemberRepository
	EventUserRepository  *EventUserRepository
	NominationRepository *NominationRepository
	DocumentRepository   *DocumentRepository
	LuminanceRepository  *LuminanceRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		UserRepository:       NewUserRepository(db),
		MemberRepository:     NewMemberRepository(db),
		EventRepository:      NewEventRepository(db),
		NonMemberRepository:  NewNonMemberRepository(db),
		EventUserRepository:  NewEventUserRepository(db),
		NominationRepository: NewNominationRepository(db),
		DocumentRepository:   NewDocumentRepository(db),
		LuminanceRepository:  NewLuminanceRepository(db),
	}
}
