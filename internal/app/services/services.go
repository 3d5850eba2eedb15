package services

import (
	"github.com/nursingassoc/website/internal/app/repositories"
	"github.com/nursingassoc/website/internal/pkg/auth"
	"github.com/nursingassoc/website/internal/pkg/email"
	"github.com/nursingassoc/website/internal/pkg/filestorage"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Services groups every application service
type Services struct {
	Auth         AuthService
	Member       MemberService
	Event        EventService
	Registration RegistrationService
	Nomination   NominationService
	Document     DocumentService
	Luminance    LuminanceService
	Upload       UploadService
}

// Deps are the collaborators shared by the services
type Deps struct {
	DB            *gorm.DB
	Repos         *repositories.Repositories
	JWT           *auth.JWTService
	Storage       filestorage.FileStorage
	Notifier      email.Notifier
	MaxUploadSize int64
	Logger        zerolog.Logger
}

// NewServices wires all services from deps
func NewServices(deps Deps) *Services {
	component := func(name string) zerolog.Logger {
		return deps.Logger.With().Str("component", name).Logger()
	}

	uploads := NewUploadService(deps.Storage, deps.MaxUploadSize, component("uploads"))
	return &Services{
		Auth:         NewAuthService(deps.Repos.UserRepository, deps.JWT, component("auth")),
		Member:       NewMemberService(deps.Repos.MemberRepository, deps.Notifier, component("members")),
		Event:        NewEventService(deps.Repos.EventRepository, component("events")),
		Registration: NewRegistrationService(deps.DB, deps.Repos, component("registrations")),
		Nomination:   NewNominationService(deps.Repos.NominationRepository, component("nominations")),
		Document:     NewDocumentService(deps.Repos.DocumentRepository, uploads, component("documents")),
		Luminance:    NewLuminanceService(deps.Repos.LuminanceRepository, component("luminance")),
		Upload:       uploads,
	}
}
