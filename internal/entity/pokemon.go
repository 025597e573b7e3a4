package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Stat is a single named base stat as stored on an owned Pokemon.
type Stat struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// OwnedPokemon is one caught instance in a trainer's collection.
// RecordID is assigned by the remote store and is the identity used by teams.
type OwnedPokemon struct {
	RecordID         string   `json:"id"`
	OwnerID          string   `json:"firebaseId"`
	SpeciesID        int      `json:"pokemonId"`
	Name             string   `json:"name"`
	Nickname         string   `json:"nickname"`
	Image            string   `json:"image"`
	Types            []string `json:"types"`
	HeightDecimetres int      `json:"height"`
	WeightHectograms int      `json:"weight"`
	BaseStats        []Stat   `json:"baseStats"`
	DateCaught       string   `json:"datecaught"`
	FavoriteFood     string   `json:"favfood"`
}

// UnmarshalJSON accepts pokemonId as a number or a quoted number; both
// shapes exist in the store.
func (p *OwnedPokemon) UnmarshalJSON(b []byte) error {
	type wire OwnedPokemon
	aux := struct {
		*wire
		SpeciesID json.RawMessage `json:"pokemonId"`
	}{wire: (*wire)(p)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}

	raw := bytes.Trim(bytes.TrimSpace(aux.SpeciesID), `"`)
	if len(raw) == 0 || string(raw) == "null" {
		p.SpeciesID = 0
		return nil
	}
	id, err := strconv.Atoi(string(raw))
	if err != nil {
		return fmt.Errorf("pokemonId %s is not an integer", aux.SpeciesID)
	}
	p.SpeciesID = id
	return nil
}

// StatValue returns the value of the named stat and whether it is present.
func (p OwnedPokemon) StatValue(name string) (int, bool) {
	for _, s := range p.BaseStats {
		if s.Name == name {
			return s.Value, true
		}
	}
	return 0, false
}
