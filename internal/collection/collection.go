package collection

import (
	"context"
	"fmt"
	"strings"
	"time"

	"pokecatcher/internal/catalog"
	"pokecatcher/internal/entity"
)

var (
	ErrInvalidNickname = fmt.Errorf("%w: nickname must not be empty", entity.ErrValidation)
	ErrInvalidDate     = fmt.Errorf("%w: date caught must be YYYY-MM-DD", entity.ErrValidation)
	ErrInvalidTeamName = fmt.Errorf("%w: team name must not be empty", entity.ErrValidation)
	ErrEmptyPatch      = fmt.Errorf("%w: nothing to update", entity.ErrValidation)
	ErrPokemonNotFound = fmt.Errorf("pokemon %w", entity.ErrNotFound)
	ErrTeamNotFound    = fmt.Errorf("team %w", entity.ErrNotFound)
	ErrLastTeam        = fmt.Errorf("%w: cannot delete the only team", entity.ErrValidation)
	ErrPartialCascade  = fmt.Errorf("%w: some teams still reference the released pokemon", entity.ErrRemoteWrite)
)

// DefaultTeamName is the name given to a trainer's first team.
const DefaultTeamName = "Team 1"

//go:generate mockgen -source=collection.go -destination=mock_store_test.go -package=collection

// Store is the remote record store holding owned Pokemon and teams.
type Store interface {
	CreatePokemon(ctx context.Context, p entity.OwnedPokemon) (entity.OwnedPokemon, error)
	ListPokemons(ctx context.Context, ownerID string) ([]entity.OwnedPokemon, error)
	UpdatePokemon(ctx context.Context, p entity.OwnedPokemon) (entity.OwnedPokemon, error)
	DeletePokemon(ctx context.Context, recordID string) error

	ListTeams(ctx context.Context, ownerID string) ([]entity.Team, error)
	CreateTeam(ctx context.Context, t entity.Team) (entity.Team, error)
	UpdateTeam(ctx context.Context, t entity.Team) (entity.Team, error)
	DeleteTeam(ctx context.Context, teamID string) error
}

// State is one trainer's collection as read from the store.
type State struct {
	Owned []entity.OwnedPokemon `json:"pokemons"`
	Teams []entity.Team         `json:"teams"`
}

// FindOwned returns the owned record with recordID.
func (s State) FindOwned(recordID string) (entity.OwnedPokemon, bool) {
	for _, p := range s.Owned {
		if p.RecordID == recordID {
			return p, true
		}
	}
	return entity.OwnedPokemon{}, false
}

// FindTeam returns the team with teamID.
func (s State) FindTeam(teamID string) (entity.Team, bool) {
	for _, t := range s.Teams {
		if t.ID == teamID {
			return t, true
		}
	}
	return entity.Team{}, false
}

// FromCatalogEntry builds the record for a fresh catch. The record id is
// left for the store to assign.
func FromCatalogEntry(e catalog.Entry, ownerID, nickname string, caughtAt time.Time) entity.OwnedPokemon {
	return entity.OwnedPokemon{
		OwnerID:          ownerID,
		SpeciesID:        e.ID,
		Name:             e.Name,
		Nickname:         strings.TrimSpace(nickname),
		Image:            e.ImageURL,
		Types:            append([]string(nil), e.Types...),
		HeightDecimetres: e.HeightDecimetres,
		WeightHectograms: e.WeightHectograms,
		BaseStats:        e.BaseStats.Stats(),
		DateCaught:       caughtAt.Format(time.DateOnly),
	}
}

// Patch holds the user-editable fields of an owned record. Nil fields are
// left unchanged.
type Patch struct {
	Nickname     *string `json:"nickname,omitempty"`
	DateCaught   *string `json:"datecaught,omitempty"`
	FavoriteFood *string `json:"favfood,omitempty"`
}

func (p Patch) Validate() error {
	if p.Nickname == nil && p.DateCaught == nil && p.FavoriteFood == nil {
		return ErrEmptyPatch
	}
	if p.Nickname != nil && strings.TrimSpace(*p.Nickname) == "" {
		return ErrInvalidNickname
	}
	if p.DateCaught != nil {
		if _, err := time.Parse(time.DateOnly, *p.DateCaught); err != nil {
			return ErrInvalidDate
		}
	}
	return nil
}

// ApplyTo returns rec with the patch merged in.
func (p Patch) ApplyTo(rec entity.OwnedPokemon) entity.OwnedPokemon {
	if p.Nickname != nil {
		rec.Nickname = strings.TrimSpace(*p.Nickname)
	}
	if p.DateCaught != nil {
		rec.DateCaught = *p.DateCaught
	}
	if p.FavoriteFood != nil {
		rec.FavoriteFood = *p.FavoriteFood
	}
	return rec
}

// WithoutMember returns a copy of members with recordID removed.
func WithoutMember(members []entity.OwnedPokemon, recordID string) []entity.OwnedPokemon {
	out := make([]entity.OwnedPokemon, 0, len(members))
	for _, m := range members {
		if m.RecordID != recordID {
			out = append(out, m)
		}
	}
	return out
}
