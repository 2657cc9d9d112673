// Package teams manages the device's followed teams and team search
// history on top of local storage and the team provider.
package teams

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	domainteams "github.com/statiq/gridiron-sync/internal/domain/teams"
	"github.com/statiq/gridiron-sync/internal/logging"
	"github.com/statiq/gridiron-sync/internal/providers"
)

// FollowStore is the persistence surface the service needs.
type FollowStore interface {
	FollowTeam(teamID string) error
	UnfollowTeam(teamID string) error
	FollowedTeams() ([]string, error)
	AddRecentSearch(query string, at time.Time) error
	RecentSearches() ([]string, error)
}

// Service owns follow state and search history.
type Service struct {
	store    FollowStore
	provider providers.TeamProvider
	logger   *slog.Logger
	now      func() time.Time
}

// NewService wires a team service.
func NewService(store FollowStore, provider providers.TeamProvider, logger *slog.Logger) *Service {
	return &Service{store: store, provider: provider, logger: logger, now: time.Now}
}

// Follow validates the team against the backend and persists the
// follow. Following an unknown team is an error, not a silent row.
func (s *Service) Follow(ctx context.Context, teamID string) (domainteams.Team, error) {
	team, err := s.provider.FetchTeam(ctx, teamID)
	if err != nil {
		return domainteams.Team{}, fmt.Errorf("failed to resolve team %s: %w", teamID, err)
	}
	if err := s.store.FollowTeam(teamID); err != nil {
		return domainteams.Team{}, err
	}
	logging.Info(s.logger, "team followed", logging.FieldTeamID, teamID)
	return team, nil
}

// Unfollow removes the follow. Idempotent.
func (s *Service) Unfollow(teamID string) error {
	if err := s.store.UnfollowTeam(teamID); err != nil {
		return err
	}
	logging.Info(s.logger, "team unfollowed", logging.FieldTeamID, teamID)
	return nil
}

// Followed resolves the followed teams to full profiles, oldest follow
// first. A team the provider can no longer resolve is skipped rather
// than failing the whole list.
func (s *Service) Followed(ctx context.Context) ([]domainteams.Team, error) {
	ids, err := s.store.FollowedTeams()
	if err != nil {
		return nil, err
	}

	out := make([]domainteams.Team, 0, len(ids))
	for _, id := range ids {
		team, err := s.provider.FetchTeam(ctx, id)
		if err != nil {
			logging.Warn(s.logger, "followed team unresolvable",
				logging.FieldTeamID, id, logging.FieldError, err)
			continue
		}
		out = append(out, team)
	}
	return out, nil
}

// RecordSearch adds a query to the search history.
func (s *Service) RecordSearch(query string) error {
	if query == "" {
		return nil
	}
	return s.store.AddRecentSearch(query, s.now())
}

// RecentSearches returns the search history, newest first.
func (s *Service) RecentSearches() ([]string, error) {
	return s.store.RecentSearches()
}
