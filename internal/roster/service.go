package roster

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"pokecatcher/internal/collection"
	"pokecatcher/internal/entity"
)

// StateSource loads a trainer's collection and serializes writers.
// *collection.Service implements it.
type StateSource interface {
	Lock(trainerID string) (unlock func())
	Load(ctx context.Context, trainerID string) (collection.State, error)
}

type TeamWriter interface {
	UpdateTeam(ctx context.Context, t entity.Team) (entity.Team, error)
}

type Service struct {
	states StateSource
	teams  TeamWriter
	logger *zap.Logger
}

func NewService(states StateSource, teams TeamWriter, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{states: states, teams: teams, logger: logger}
}

// Pool returns the trainer's unassigned Pokemon.
func (s *Service) Pool(ctx context.Context, trainerID string) ([]entity.OwnedPokemon, error) {
	state, err := s.states.Load(ctx, trainerID)
	if err != nil {
		return nil, err
	}
	return Unassigned(state.Owned, state.Teams), nil
}

// Move applies m against freshly loaded state and writes the changed team
// back in full. Moves for one trainer run one at a time in this process.
func (s *Service) Move(ctx context.Context, trainerID string, m Move) (entity.Team, error) {
	unlock := s.states.Lock(trainerID)
	defer unlock()

	state, err := s.states.Load(ctx, trainerID)
	if err != nil {
		return entity.Team{}, err
	}

	team, err := Apply(state, m)
	if err != nil {
		return entity.Team{}, err
	}

	updated, err := s.teams.UpdateTeam(ctx, team)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return entity.Team{}, fmt.Errorf("update team %s: %w", team.ID, err)
		}
		return entity.Team{}, fmt.Errorf("update team %s: %w: %w", team.ID, entity.ErrRemoteWrite, err)
	}

	s.logger.Debug("roster move applied",
		zap.String("trainer_id", trainerID),
		zap.String("record_id", m.RecordID),
		zap.Stringer("from", m.From),
		zap.Stringer("to", m.To))
	return updated, nil
}
