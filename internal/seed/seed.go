// internal/seed/seed.go
package seed

import (
	"context"
	"log"
	"time"

	"github.com/clubhub-dev/clubhub-backend/internal/repository"
	"github.com/clubhub-dev/clubhub-backend/internal/types"
	"golang.org/x/crypto/bcrypt"
)

func SeedData(repos *repository.Repositories) {
	ctx := context.Background()

	// Idempotent: the admin account doubles as the seed marker
	if existing, _ := repos.UserRepo.FindByEmail(ctx, "anna.berg@clubhub.dev"); existing != nil {
		log.Println("[Seed] Data already exists, skipping...")
		return
	}

	log.Println("[Seed] 🌱 Creating initial data with real scenarios...")

	// ============================================
	// CREATE USERS
	// ============================================
	password, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)

	// 1. ANNA - founds the club, never gets a membership record
	anna := &repository.User{
		Email:    "anna.berg@clubhub.dev",
		Password: string(password),
		Name:     "Anna Berg",
		Status:   "online",
	}
	repos.UserRepo.Create(ctx, anna)

	// 2. JONAS - club member and coach of the youth team
	jonas := &repository.User{
		Email:    "jonas.lie@clubhub.dev",
		Password: string(password),
		Name:     "Jonas Lie",
		Status:   "online",
	}
	repos.UserRepo.Create(ctx, jonas)

	// 3. MARI - parent, only connected through her child's team
	mari := &repository.User{
		Email:    "mari.holm@clubhub.dev",
		Password: string(password),
		Name:     "Mari Holm",
		Status:   "away",
	}
	repos.UserRepo.Create(ctx, mari)

	// 4. PER - plays on the senior team, no club membership of his own
	per := &repository.User{
		Email:    "per.vik@clubhub.dev",
		Password: string(password),
		Name:     "Per Vik",
		Status:   "online",
	}
	repos.UserRepo.Create(ctx, per)

	log.Printf("✅ Created 4 users: Anna (founder), Jonas (coach), Mari (parent), Per (player)")

	// ============================================
	// SCENARIO 1: CREATE CLUB
	// Anna founds the club. No membership row is written for her, the
	// member view synthesizes her admin entry.
	// ============================================
	club := &repository.Club{
		Name:        "Fjellvik Sports Club",
		Description: stringPtr("Community sports club for all ages"),
		CreatedBy:   anna.ID,
	}
	repos.ClubRepo.Create(ctx, club)
	log.Printf("✅ Created club %q", club.Name)

	// Jonas joins the club directly
	repos.ClubRepo.AddMember(ctx, &repository.ClubMembership{
		ClubID: club.ID,
		UserID: jonas.ID,
		Roles:  []string{types.RoleMember},
	})

	// ============================================
	// SCENARIO 2: TEAMS
	// ============================================
	youth := &repository.Team{
		ClubID:      club.ID,
		Name:        "Youth Team",
		Description: stringPtr("Under 12"),
		CreatedBy:   anna.ID,
	}
	repos.TeamRepo.Create(ctx, youth)

	senior := &repository.Team{
		ClubID:      club.ID,
		Name:        "Senior Team",
		CreatedBy:   anna.ID,
	}
	repos.TeamRepo.Create(ctx, senior)

	// Jonas coaches the youth team, appears once in the member view
	repos.TeamRepo.AddMember(ctx, &repository.TeamMembership{
		TeamID: youth.ID,
		UserID: jonas.ID,
		Roles:  []string{types.RoleCoach},
	})

	// Per only exists through his senior team membership
	repos.TeamRepo.AddMember(ctx, &repository.TeamMembership{
		TeamID: senior.ID,
		UserID: per.ID,
		Roles:  []string{types.RolePlayer},
	})

	log.Printf("✅ Created teams %q and %q", youth.Name, senior.Name)

	// ============================================
	// SCENARIO 3: CHILD RECORD
	// Mari's child plays on the youth team and shows up in the club's
	// member view as a child_<id> principal.
	// ============================================
	child := &repository.Child{
		GuardianID: mari.ID,
		Name:       "Ida Holm",
		TeamID:     &youth.ID,
	}
	repos.ChildRepo.Create(ctx, child)
	log.Printf("✅ Created child record %q on %q", child.Name, youth.Name)

	// ============================================
	// SCENARIO 4: EVENT WITH DUTY ROLES
	// ============================================
	event := &repository.Event{
		ClubID:    club.ID,
		TeamID:    &youth.ID,
		Title:     "Season Opening Match",
		StartsAt:  time.Now().AddDate(0, 0, 7),
		DutyRoles: []string{"grill", "kiosk", "cleanup"},
		CreatedBy: anna.ID,
	}
	repos.EventRepo.Create(ctx, event)
	log.Printf("✅ Created event %q with duty roles %v", event.Title, event.DutyRoles)

	// ============================================
	// SCENARIO 5: VAULT SUBFOLDER
	// ============================================
	subfolder := &repository.Subfolder{
		Name:       "Match Photos 2026",
		ParentKind: types.OrgClub,
		ParentID:   club.ID,
		CreatedBy:  anna.ID,
	}
	repos.VaultRepo.CreateSubfolder(ctx, subfolder)
	log.Printf("✅ Created vault subfolder %q", subfolder.Name)

	log.Println("[Seed] 🌱 Done")
}

func stringPtr(s string) *string {
	return &s
}
