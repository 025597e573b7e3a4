package entity

// MaxTeamSize is the upper bound on a team's members.
const MaxTeamSize = 6

// Team is a named, ordered subset of a trainer's owned collection.
type Team struct {
	ID      string         `json:"id"`
	OwnerID string         `json:"firebaseId"`
	Name    string         `json:"name"`
	Members []OwnedPokemon `json:"pokemons"`
}

// IsFull reports whether no more members can be added.
func (t Team) IsFull() bool {
	return len(t.Members) >= MaxTeamSize
}

// IndexOf returns the position of recordID in the team, or -1.
func (t Team) IndexOf(recordID string) int {
	for i, m := range t.Members {
		if m.RecordID == recordID {
			return i
		}
	}
	return -1
}

// Contains reports whether recordID is a member of the team.
func (t Team) Contains(recordID string) bool {
	return t.IndexOf(recordID) >= 0
}

// WithMembers returns a copy of the team holding members.
func (t Team) WithMembers(members []OwnedPokemon) Team {
	t.Members = members
	return t
}
