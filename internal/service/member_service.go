package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/clubhub-dev/clubhub-backend/internal/db"
	"github.com/clubhub-dev/clubhub-backend/internal/repository"
	"github.com/clubhub-dev/clubhub-backend/internal/types"
)

// ============================================
// Member Service (club membership aggregation)
// ============================================

// ChildPrincipalPrefix marks synthetic principals derived from child
// records, which have no user account of their own.
const ChildPrincipalPrefix = "child_"

const memberCacheTTL = 5 * time.Minute

// Member is one row of the aggregated club member view. Principal is a
// user ID for account holders and "child_<id>" for child records.
type Member struct {
	Principal    string   `json:"principal"`
	DisplayName  string   `json:"displayName"`
	Roles        []string `json:"roles"`
	IsCreator    bool     `json:"isCreator"`
	IsTeamMember bool     `json:"isTeamMember"`
	IsChild      bool     `json:"isChild"`
	TeamNames    []string `json:"teamNames"`
}

// MemberService builds the deduplicated member view of a club from its
// direct memberships, its teams' memberships and its child records.
type MemberService interface {
	AggregateClubMembers(ctx context.Context, clubID string) ([]*Member, error)
	InvalidateClubMembers(ctx context.Context, clubID string)
}

type memberService struct {
	clubRepo  repository.ClubRepository
	teamRepo  repository.TeamRepository
	childRepo repository.ChildRepository
	userRepo  repository.UserRepository
	cache     *db.RedisDB
}

func NewMemberService(
	clubRepo repository.ClubRepository,
	teamRepo repository.TeamRepository,
	childRepo repository.ChildRepository,
	userRepo repository.UserRepository,
	cache *db.RedisDB,
) MemberService {
	return &memberService{
		clubRepo:  clubRepo,
		teamRepo:  teamRepo,
		childRepo: childRepo,
		userRepo:  userRepo,
		cache:     cache,
	}
}

func memberCacheKey(clubID string) string {
	return fmt.Sprintf("club_members:%s", clubID)
}

// AggregateClubMembers merges four sources into one list keyed by
// principal: direct club memberships, a synthesized creator entry, team
// memberships of every team under the club, and child records. Only a
// failure of the direct membership fetch is fatal; every enrichment
// source degrades to a warning so one broken team cannot blank the whole
// member list.
func (s *memberService) AggregateClubMembers(ctx context.Context, clubID string) ([]*Member, error) {
	if s.cache != nil {
		var cached []*Member
		if err := s.cache.GetCache(ctx, memberCacheKey(clubID), &cached); err == nil {
			return cached, nil
		}
	}

	club, err := s.clubRepo.FindByID(ctx, clubID)
	if err != nil {
		return nil, fmt.Errorf("failed to load club: %w", err)
	}
	if club == nil {
		return nil, ErrNotFound
	}

	memberships, err := s.clubRepo.FindMemberships(ctx, clubID)
	if err != nil {
		return nil, fmt.Errorf("failed to load club memberships: %w", err)
	}

	byPrincipal := make(map[string]*Member)
	var order []string

	add := func(m *Member) *Member {
		if existing, ok := byPrincipal[m.Principal]; ok {
			return existing
		}
		byPrincipal[m.Principal] = m
		order = append(order, m.Principal)
		return m
	}

	for _, ms := range memberships {
		roles := append([]string(nil), ms.Roles...)
		add(&Member{
			Principal:   ms.UserID,
			DisplayName: s.resolveDisplayName(ctx, ms.UserID),
			Roles:       roles,
			IsCreator:   ms.UserID == club.CreatedBy,
		})
	}

	// The creator may have no membership record at all, synthesize one
	if _, ok := byPrincipal[club.CreatedBy]; !ok {
		add(&Member{
			Principal:   club.CreatedBy,
			DisplayName: s.resolveDisplayName(ctx, club.CreatedBy),
			Roles:       []string{types.RoleClubAdmin},
			IsCreator:   true,
		})
	}

	teamNames := make(map[string]string)
	teams, err := s.teamRepo.FindByClubID(ctx, clubID)
	if err != nil {
		log.Printf("[Member] ⚠️ Failed to list teams for club %s: %v", clubID, err)
		teams = nil
	}
	for _, team := range teams {
		teamNames[team.ID] = team.Name

		tms, err := s.teamRepo.FindMemberships(ctx, team.ID)
		if err != nil {
			log.Printf("[Member] ⚠️ Failed to load members of team %s: %v", team.ID, err)
			continue
		}
		for _, tm := range tms {
			entry, ok := byPrincipal[tm.UserID]
			if !ok {
				entry = add(&Member{
					Principal:   tm.UserID,
					DisplayName: s.resolveDisplayName(ctx, tm.UserID),
					Roles:       []string{},
				})
			}
			entry.IsTeamMember = true
			if !containsName(entry.TeamNames, team.Name) {
				entry.TeamNames = append(entry.TeamNames, team.Name)
			}
		}
	}

	children, err := s.childRepo.FindByClub(ctx, clubID)
	if err != nil {
		log.Printf("[Member] ⚠️ Failed to load children for club %s: %v", clubID, err)
		children = nil
	}
	for _, child := range children {
		entry := add(&Member{
			Principal:   ChildPrincipalPrefix + child.ID,
			DisplayName: child.Name,
			Roles:       []string{},
			IsChild:     true,
		})
		if child.TeamID != nil {
			if name, ok := teamNames[*child.TeamID]; ok && !containsName(entry.TeamNames, name) {
				entry.TeamNames = append(entry.TeamNames, name)
			}
		}
	}

	members := make([]*Member, 0, len(order))
	for _, principal := range order {
		members = append(members, byPrincipal[principal])
	}

	if s.cache != nil {
		if err := s.cache.SetCache(ctx, memberCacheKey(clubID), members, memberCacheTTL); err != nil {
			log.Printf("[Member] ⚠️ Failed to cache members for club %s: %v", clubID, err)
		}
	}

	return members, nil
}

// InvalidateClubMembers drops the cached member view after a mutation
func (s *memberService) InvalidateClubMembers(ctx context.Context, clubID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteCache(ctx, memberCacheKey(clubID)); err != nil {
		log.Printf("[Member] ⚠️ Failed to invalidate member cache for club %s: %v", clubID, err)
	}
}

// resolveDisplayName falls back to the principal itself when the profile
// is missing or unreadable, so a bad profile row never hides a member
func (s *memberService) resolveDisplayName(ctx context.Context, userID string) string {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		log.Printf("[Member] ⚠️ Failed to load profile for user %s: %v", userID, err)
		return userID
	}
	if user == nil || user.Name == "" {
		return userID
	}
	return user.Name
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
