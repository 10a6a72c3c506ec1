package repository

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all repository instances
type Repositories struct {
	UserRepo         UserRepository
	ClubRepo         ClubRepository
	TeamRepo         TeamRepository
	ChildRepo        ChildRepository
	EventRepo        EventRepository
	VaultRepo        VaultRepository
	NotificationRepo NotificationRepository
}

// NewRepositories creates all repositories backed by the given pool
func NewRepositories(pool *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepo:         NewUserRepository(pool),
		ClubRepo:         NewClubRepository(pool),
		TeamRepo:         NewTeamRepository(pool),
		ChildRepo:        NewChildRepository(pool),
		EventRepo:        NewEventRepository(pool),
		VaultRepo:        NewVaultRepository(pool),
		NotificationRepo: NewNotificationRepository(pool),
	}
}
