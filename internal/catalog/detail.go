package catalog

import (
	"strings"

	"pokecatcher/internal/platform/pokeapi"
)

// FlavorText returns the first flavor text in the given language with the
// line breaks and form feeds of the game text collapsed to single spaces.
func FlavorText(s *pokeapi.Species, lang string) string {
	for _, entry := range s.FlavorTextEntries {
		if entry.Language.Name == lang {
			return strings.Join(strings.Fields(entry.FlavorText), " ")
		}
	}
	return ""
}

// FlattenChain walks the evolution tree depth-first, parents before
// children, branches in source order. A node whose species URL carries no id
// is skipped but its descendants are still visited.
func FlattenChain(root pokeapi.ChainLink) []EvolutionStage {
	var stages []EvolutionStage
	var walk func(node pokeapi.ChainLink)
	walk = func(node pokeapi.ChainLink) {
		if id, err := pokeapi.IDFromURL(node.Species.URL); err == nil {
			stages = append(stages, EvolutionStage{ID: id, Name: node.Species.Name})
		}
		for _, next := range node.EvolvesTo {
			walk(next)
		}
	}
	walk(root)
	return stages
}
