package collection

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"pokecatcher/internal/catalog"
	"pokecatcher/internal/entity"
)

type Service struct {
	store  Store
	logger *zap.Logger
	locks  *trainerLocks
	now    func() time.Time
}

func NewService(store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:  store,
		logger: logger,
		locks:  newTrainerLocks(),
		now:    time.Now,
	}
}

// Lock serializes membership changes for one trainer within this process.
// The returned func releases the lock.
func (s *Service) Lock(trainerID string) (unlock func()) {
	return s.locks.lock(trainerID)
}

// Load fetches the owned set and the teams concurrently. Team members are
// replaced with the current owned records; members whose record no longer
// exists are left out.
func (s *Service) Load(ctx context.Context, trainerID string) (State, error) {
	var state State

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		owned, err := s.store.ListPokemons(gctx, trainerID)
		if err != nil {
			return fmt.Errorf("list pokemons: %w", err)
		}
		state.Owned = owned
		return nil
	})
	g.Go(func() error {
		teams, err := s.store.ListTeams(gctx, trainerID)
		if err != nil {
			return fmt.Errorf("list teams: %w", err)
		}
		state.Teams = teams
		return nil
	})
	if err := g.Wait(); err != nil {
		return State{}, err
	}

	if state.Owned == nil {
		state.Owned = []entity.OwnedPokemon{}
	}
	if state.Teams == nil {
		state.Teams = []entity.Team{}
	}
	s.reconcile(trainerID, &state)
	return state, nil
}

func (s *Service) reconcile(trainerID string, state *State) {
	byID := make(map[string]entity.OwnedPokemon, len(state.Owned))
	for _, p := range state.Owned {
		byID[p.RecordID] = p
	}
	for i, t := range state.Teams {
		members := make([]entity.OwnedPokemon, 0, len(t.Members))
		for _, m := range t.Members {
			current, ok := byID[m.RecordID]
			if !ok {
				s.logger.Warn("team references a released pokemon",
					zap.String("trainer_id", trainerID),
					zap.String("team_id", t.ID),
					zap.String("record_id", m.RecordID))
				continue
			}
			members = append(members, current)
		}
		state.Teams[i] = t.WithMembers(members)
	}
}

// Catch records a newly caught Pokemon. Nothing is stored locally; the
// returned record is the one the store confirmed.
func (s *Service) Catch(ctx context.Context, trainerID string, entry catalog.Entry, nickname string) (entity.OwnedPokemon, error) {
	if strings.TrimSpace(nickname) == "" {
		return entity.OwnedPokemon{}, ErrInvalidNickname
	}

	rec := FromCatalogEntry(entry, trainerID, nickname, s.now())
	created, err := s.store.CreatePokemon(ctx, rec)
	if err != nil {
		return entity.OwnedPokemon{}, remoteWriteError("create pokemon", err)
	}

	s.logger.Info("pokemon caught",
		zap.String("trainer_id", trainerID),
		zap.String("record_id", created.RecordID),
		zap.Int("species_id", created.SpeciesID))
	return created, nil
}

// Release deletes an owned record and removes it from every team that holds
// it. Team updates run concurrently; failures are collected and reported
// together as ErrPartialCascade without undoing the delete.
func (s *Service) Release(ctx context.Context, trainerID, recordID string) error {
	unlock := s.Lock(trainerID)
	defer unlock()

	state, err := s.Load(ctx, trainerID)
	if err != nil {
		return err
	}
	if _, ok := state.FindOwned(recordID); !ok {
		return ErrPokemonNotFound
	}

	if err := s.store.DeletePokemon(ctx, recordID); err != nil {
		return remoteWriteError("delete pokemon", err)
	}

	var (
		mu     sync.Mutex
		result *multierror.Error
		g      errgroup.Group
	)
	for _, t := range state.Teams {
		if !t.Contains(recordID) {
			continue
		}
		g.Go(func() error {
			updated := t.WithMembers(WithoutMember(t.Members, recordID))
			if _, err := s.store.UpdateTeam(ctx, updated); err != nil {
				mu.Lock()
				result = multierror.Append(result, fmt.Errorf("team %s: %w", t.ID, err))
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	if err := result.ErrorOrNil(); err != nil {
		s.logger.Error("release cascade incomplete",
			zap.String("trainer_id", trainerID),
			zap.String("record_id", recordID),
			zap.Error(err))
		return fmt.Errorf("%w: %w", ErrPartialCascade, err)
	}

	s.logger.Info("pokemon released",
		zap.String("trainer_id", trainerID),
		zap.String("record_id", recordID))
	return nil
}

// Edit applies patch to an owned record and returns the stored result.
func (s *Service) Edit(ctx context.Context, trainerID, recordID string, patch Patch) (entity.OwnedPokemon, error) {
	if err := patch.Validate(); err != nil {
		return entity.OwnedPokemon{}, err
	}

	owned, err := s.store.ListPokemons(ctx, trainerID)
	if err != nil {
		return entity.OwnedPokemon{}, fmt.Errorf("list pokemons: %w", err)
	}
	state := State{Owned: owned}
	rec, ok := state.FindOwned(recordID)
	if !ok {
		return entity.OwnedPokemon{}, ErrPokemonNotFound
	}

	updated, err := s.store.UpdatePokemon(ctx, patch.ApplyTo(rec))
	if err != nil {
		return entity.OwnedPokemon{}, remoteWriteError("update pokemon", err)
	}
	return updated, nil
}

// EnsureDefaultTeam loads the trainer's state, creating DefaultTeamName
// first when the trainer has no team at all.
func (s *Service) EnsureDefaultTeam(ctx context.Context, trainerID string) (State, error) {
	unlock := s.Lock(trainerID)
	defer unlock()

	state, err := s.Load(ctx, trainerID)
	if err != nil {
		return State{}, err
	}
	if len(state.Teams) > 0 {
		return state, nil
	}

	team, err := s.store.CreateTeam(ctx, entity.Team{
		OwnerID: trainerID,
		Name:    DefaultTeamName,
		Members: []entity.OwnedPokemon{},
	})
	if err != nil {
		return State{}, remoteWriteError("create default team", err)
	}
	if team.Members == nil {
		team.Members = []entity.OwnedPokemon{}
	}
	state.Teams = []entity.Team{team}
	return state, nil
}

// CreateTeam adds an empty team. A blank name becomes "Team N", N being the
// trainer's team count after the insert.
func (s *Service) CreateTeam(ctx context.Context, trainerID, name string) (entity.Team, error) {
	unlock := s.Lock(trainerID)
	defer unlock()

	name = strings.TrimSpace(name)
	if name == "" {
		teams, err := s.store.ListTeams(ctx, trainerID)
		if err != nil {
			return entity.Team{}, fmt.Errorf("list teams: %w", err)
		}
		name = fmt.Sprintf("Team %d", len(teams)+1)
	}

	team, err := s.store.CreateTeam(ctx, entity.Team{
		OwnerID: trainerID,
		Name:    name,
		Members: []entity.OwnedPokemon{},
	})
	if err != nil {
		return entity.Team{}, remoteWriteError("create team", err)
	}
	return team, nil
}

func (s *Service) RenameTeam(ctx context.Context, trainerID, teamID, name string) (entity.Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return entity.Team{}, ErrInvalidTeamName
	}

	unlock := s.Lock(trainerID)
	defer unlock()

	state, err := s.Load(ctx, trainerID)
	if err != nil {
		return entity.Team{}, err
	}
	team, ok := state.FindTeam(teamID)
	if !ok {
		return entity.Team{}, ErrTeamNotFound
	}

	team.Name = name
	updated, err := s.store.UpdateTeam(ctx, team)
	if err != nil {
		return entity.Team{}, remoteWriteError("rename team", err)
	}
	return updated, nil
}

// DeleteTeam removes a team. Its members return to the unassigned pool. The
// trainer's only team cannot be deleted.
func (s *Service) DeleteTeam(ctx context.Context, trainerID, teamID string) error {
	unlock := s.Lock(trainerID)
	defer unlock()

	teams, err := s.store.ListTeams(ctx, trainerID)
	if err != nil {
		return fmt.Errorf("list teams: %w", err)
	}
	if _, ok := (State{Teams: teams}).FindTeam(teamID); !ok {
		return ErrTeamNotFound
	}
	if len(teams) == 1 {
		return ErrLastTeam
	}

	if err := s.store.DeleteTeam(ctx, teamID); err != nil {
		return remoteWriteError("delete team", err)
	}
	return nil
}

// remoteWriteError keeps not-found results distinguishable from failed
// writes.
func remoteWriteError(op string, err error) error {
	if errors.Is(err, entity.ErrNotFound) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %w", op, entity.ErrRemoteWrite, err)
}
