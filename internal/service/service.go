package service

import (
	"errors"

	"github.com/clubhub-dev/clubhub-backend/internal/config"
	"github.com/clubhub-dev/clubhub-backend/internal/db"
	"github.com/clubhub-dev/clubhub-backend/internal/duty"
	"github.com/clubhub-dev/clubhub-backend/internal/notification"
	"github.com/clubhub-dev/clubhub-backend/internal/repository"
	"github.com/clubhub-dev/clubhub-backend/internal/socket"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidToken       = errors.New("invalid token")
	ErrNotFound           = errors.New("resource not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrConflict           = errors.New("resource already exists")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidFolderID    = errors.New("invalid folder id")
	ErrInvalidFolderName  = errors.New("invalid subfolder name")
	ErrDutyNotAssignable  = errors.New("duty role is not defined on this event")
	ErrDutyCompleted      = errors.New("duty already marked completed")
	ErrDutyApproved       = errors.New("duty already approved")
)

// ============================================
// Services Container
// ============================================

type Services struct {
	Auth         AuthService
	User         UserService
	Club         ClubService
	Team         TeamService
	Member       MemberService
	Child        ChildService
	Event        EventService
	Vault        VaultService
	Duty         DutyService
	Permission   PermissionService
	Notification NotificationService
	Broadcaster  *socket.Broadcaster
}

// ServiceDeps contains all dependencies needed to create services
type ServiceDeps struct {
	Config      *config.Config
	Repos       *repository.Repositories
	DutyStore   duty.Store
	Redis       *db.RedisDB
	NotifSvc    *notification.Service
	Broadcaster *socket.Broadcaster
}

func NewServices(deps *ServiceDeps) *Services {
	// Permission checks are shared by most services, create them first
	permissionService := NewPermissionService(
		deps.Repos.ClubRepo,
		deps.Repos.TeamRepo,
	)

	// The aggregated member view feeds the leaderboard and vault services
	memberService := NewMemberService(
		deps.Repos.ClubRepo,
		deps.Repos.TeamRepo,
		deps.Repos.ChildRepo,
		deps.Repos.UserRepo,
		deps.Redis,
	)

	return &Services{
		Auth: NewAuthService(deps.Config, deps.Repos.UserRepo),
		User: NewUserService(deps.Repos.UserRepo),
		Club: NewClubService(
			deps.Repos.ClubRepo,
			deps.Repos.UserRepo,
			permissionService,
			memberService,
			deps.NotifSvc,
			deps.Broadcaster,
		),
		Team: NewTeamService(
			deps.Repos.TeamRepo,
			deps.Repos.ClubRepo,
			deps.Repos.UserRepo,
			permissionService,
			memberService,
			deps.NotifSvc,
			deps.Broadcaster,
		),
		Member: memberService,
		Child: NewChildService(
			deps.Repos.ChildRepo,
			deps.Repos.TeamRepo,
			memberService,
			deps.Broadcaster,
		),
		Event: NewEventService(
			deps.Repos.EventRepo,
			deps.Repos.ClubRepo,
			permissionService,
		),
		Vault: NewVaultService(
			deps.Config,
			deps.Repos.VaultRepo,
			deps.Repos.ClubRepo,
			deps.Repos.TeamRepo,
			permissionService,
			deps.Broadcaster,
		),
		Duty: NewDutyService(
			deps.DutyStore,
			deps.Repos.EventRepo,
			deps.Repos.ClubRepo,
			permissionService,
			memberService,
			deps.NotifSvc,
			deps.Broadcaster,
		),
		Permission:   permissionService,
		Notification: NewNotificationService(deps.Repos.NotificationRepo),
		Broadcaster:  deps.Broadcaster,
	}
}
