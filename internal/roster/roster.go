// Package roster assigns owned Pokemon to teams. A Pokemon that no team
// holds is in the pool; the pool is always derived, never stored.
package roster

import (
	"errors"
	"fmt"
	"strings"

	"pokecatcher/internal/collection"
	"pokecatcher/internal/entity"
)

var (
	ErrTeamFull      = fmt.Errorf("team already has %d members", entity.MaxTeamSize)
	ErrCrossTeamMove = fmt.Errorf("%w: move to the pool before joining another team", entity.ErrValidation)
	ErrNotInSource   = fmt.Errorf("%w: pokemon is not at the move's source", entity.ErrValidation)
	ErrInvalidTarget = fmt.Errorf("%w: drop target is not a member of the team", entity.ErrValidation)
	ErrNoop          = fmt.Errorf("%w: move changes nothing", entity.ErrValidation)
	ErrBadLocation   = errors.New("location must be \"pool\" or \"team:<id>\"")
)

const (
	poolText   = "pool"
	teamPrefix = "team:"
)

// Location is where a Pokemon sits: the pool (zero value) or a team.
type Location struct {
	TeamID string
}

var Pool = Location{}

func Team(id string) Location {
	return Location{TeamID: id}
}

func (l Location) IsPool() bool {
	return l.TeamID == ""
}

func (l Location) String() string {
	if l.IsPool() {
		return poolText
	}
	return teamPrefix + l.TeamID
}

func (l Location) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

func (l *Location) UnmarshalText(b []byte) error {
	s := string(b)
	switch {
	case s == poolText:
		*l = Pool
	case strings.HasPrefix(s, teamPrefix) && len(s) > len(teamPrefix):
		*l = Team(strings.TrimPrefix(s, teamPrefix))
	default:
		return ErrBadLocation
	}
	return nil
}

// Move is one drag-and-drop gesture. OverRecordID names the member the item
// was dropped on and is only used for reordering within a team.
type Move struct {
	RecordID     string   `json:"recordId"`
	From         Location `json:"from"`
	To           Location `json:"to"`
	OverRecordID string   `json:"overRecordId,omitempty"`
}

// Apply computes the team that results from m. state is not modified; the
// caller persists the returned team as a whole.
func Apply(state collection.State, m Move) (entity.Team, error) {
	switch {
	case m.From.IsPool() && m.To.IsPool():
		return entity.Team{}, ErrNoop

	case m.From.IsPool():
		team, ok := state.FindTeam(m.To.TeamID)
		if !ok {
			return entity.Team{}, collection.ErrTeamNotFound
		}
		if team.IsFull() {
			return entity.Team{}, ErrTeamFull
		}
		rec, ok := findRecord(Unassigned(state.Owned, state.Teams), m.RecordID)
		if !ok {
			return entity.Team{}, ErrNotInSource
		}
		members := make([]entity.OwnedPokemon, 0, len(team.Members)+1)
		members = append(members, team.Members...)
		return team.WithMembers(append(members, rec)), nil

	case m.From.TeamID != m.To.TeamID && !m.To.IsPool():
		return entity.Team{}, ErrCrossTeamMove
	}

	team, ok := state.FindTeam(m.From.TeamID)
	if !ok {
		return entity.Team{}, collection.ErrTeamNotFound
	}
	from := team.IndexOf(m.RecordID)
	if from < 0 {
		return entity.Team{}, ErrNotInSource
	}

	if m.To.IsPool() {
		return team.WithMembers(collection.WithoutMember(team.Members, m.RecordID)), nil
	}

	if m.OverRecordID == m.RecordID {
		return entity.Team{}, ErrNoop
	}
	to := team.IndexOf(m.OverRecordID)
	if to < 0 {
		return entity.Team{}, ErrInvalidTarget
	}
	return team.WithMembers(MoveWithin(team.Members, from, to)), nil
}

// Unassigned returns the owned records no team holds, in owned order.
func Unassigned(owned []entity.OwnedPokemon, teams []entity.Team) []entity.OwnedPokemon {
	assigned := make(map[string]struct{})
	for _, t := range teams {
		for _, m := range t.Members {
			assigned[m.RecordID] = struct{}{}
		}
	}
	pool := make([]entity.OwnedPokemon, 0, len(owned))
	for _, p := range owned {
		if _, ok := assigned[p.RecordID]; !ok {
			pool = append(pool, p)
		}
	}
	return pool
}

// MoveWithin returns a copy of members with the element at from moved to
// index to; the elements in between shift by one.
func MoveWithin(members []entity.OwnedPokemon, from, to int) []entity.OwnedPokemon {
	out := make([]entity.OwnedPokemon, 0, len(members))
	out = append(out, members[:from]...)
	out = append(out, members[from+1:]...)

	moved := members[from]
	out = append(out, entity.OwnedPokemon{})
	copy(out[to+1:], out[to:])
	out[to] = moved
	return out
}

func findRecord(records []entity.OwnedPokemon, recordID string) (entity.OwnedPokemon, bool) {
	for _, r := range records {
		if r.RecordID == recordID {
			return r, true
		}
	}
	return entity.OwnedPokemon{}, false
}
