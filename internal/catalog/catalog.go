package catalog

import (
	"errors"
	"fmt"

	"pokecatcher/internal/entity"
)

var (
	ErrLoadInProgress = errors.New("catalog page load already in progress")
	ErrNotFound       = fmt.Errorf("catalog entry %w", entity.ErrNotFound)
)

// Stat keys accepted for sorting, in display order.
const (
	StatHP             = "hp"
	StatAttack         = "attack"
	StatDefense        = "defense"
	StatSpecialAttack  = "specialAttack"
	StatSpecialDefense = "specialDefense"
	StatSpeed          = "speed"
)

var StatKeys = []string{StatHP, StatAttack, StatDefense, StatSpecialAttack, StatSpecialDefense, StatSpeed}

// GenerationUnknown labels ids past the last known breakpoint.
const GenerationUnknown = "unknown"

var generationBreakpoints = []struct {
	maxID int
	label string
}{
	{151, "I"},
	{251, "II"},
	{386, "III"},
	{493, "IV"},
	{649, "V"},
	{721, "VI"},
	{809, "VII"},
	{898, "VIII"},
}

// Generations lists every label Generation can return, unknown last.
var Generations = []string{"I", "II", "III", "IV", "V", "VI", "VII", "VIII", GenerationUnknown}

// Generation maps a species id to its generation label.
func Generation(id int) string {
	for _, bp := range generationBreakpoints {
		if id <= bp.maxID {
			return bp.label
		}
	}
	return GenerationUnknown
}

type BaseStats struct {
	HP             int `json:"hp"`
	Attack         int `json:"attack"`
	Defense        int `json:"defense"`
	SpecialAttack  int `json:"specialAttack"`
	SpecialDefense int `json:"specialDefense"`
	Speed          int `json:"speed"`
}

// Get returns the stat for key; ok is false for unknown keys.
func (b BaseStats) Get(key string) (value int, ok bool) {
	switch key {
	case StatHP:
		return b.HP, true
	case StatAttack:
		return b.Attack, true
	case StatDefense:
		return b.Defense, true
	case StatSpecialAttack:
		return b.SpecialAttack, true
	case StatSpecialDefense:
		return b.SpecialDefense, true
	case StatSpeed:
		return b.Speed, true
	}
	return 0, false
}

// Stats flattens the mapping into the ordered list shape used by owned records.
func (b BaseStats) Stats() []entity.Stat {
	stats := make([]entity.Stat, 0, len(StatKeys))
	for _, key := range StatKeys {
		v, _ := b.Get(key)
		stats = append(stats, entity.Stat{Name: key, Value: v})
	}
	return stats
}

// IsStatKey reports whether key names one of the six base stats.
func IsStatKey(key string) bool {
	_, ok := BaseStats{}.Get(key)
	return ok
}

// Entry is one discovered species. Entries are never mutated after the
// loader builds them.
type Entry struct {
	ID               int       `json:"id"`
	Name             string    `json:"name"`
	ImageURL         string    `json:"image"`
	HeightDecimetres int       `json:"height"`
	WeightHectograms int       `json:"weight"`
	Types            []string  `json:"types"`
	BaseStats        BaseStats `json:"baseStats"`
	IsLegendary      bool      `json:"isLegendary"`
	Generation       string    `json:"generation"`
}

// PrimaryType is the first listed type, or "" for an untyped entry.
func (e Entry) PrimaryType() string {
	if len(e.Types) == 0 {
		return ""
	}
	return e.Types[0]
}

// PageResult reports what one LoadNextPage call added.
type PageResult struct {
	Appended   []Entry `json:"appended"`
	NextOffset int     `json:"next_offset"`
	Exhausted  bool    `json:"exhausted"`
	Total      int     `json:"total"`
	Dropped    int     `json:"dropped"`
}

// EvolutionStage is one species in a flattened evolution chain.
type EvolutionStage struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type SpeciesDetail struct {
	ID          int              `json:"id"`
	IsLegendary bool             `json:"isLegendary"`
	FlavorText  string           `json:"flavorText"`
	Evolution   []EvolutionStage `json:"evolution"`
}
