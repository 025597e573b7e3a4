package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"

	"pokecatcher/internal/catalog"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

type entryRow struct {
	ID         int            `json:"id" yaml:"id"`
	Name       string         `json:"name" yaml:"name"`
	Types      []string       `json:"types" yaml:"types"`
	Generation string         `json:"generation" yaml:"generation"`
	Legendary  bool           `json:"legendary" yaml:"legendary"`
	HeightM    float64        `json:"heightMetres" yaml:"height_metres"`
	WeightKg   float64        `json:"weightKg" yaml:"weight_kg"`
	Stats      map[string]int `json:"stats" yaml:"stats"`
}

func toRow(e catalog.Entry) entryRow {
	stats := make(map[string]int, len(catalog.StatKeys))
	for _, s := range e.BaseStats.Stats() {
		stats[s.Name] = s.Value
	}
	return entryRow{
		ID:         e.ID,
		Name:       e.Name,
		Types:      e.Types,
		Generation: e.Generation,
		Legendary:  e.IsLegendary,
		HeightM:    float64(e.HeightDecimetres) / 10,
		WeightKg:   float64(e.WeightHectograms) / 10,
		Stats:      stats,
	}
}

func writeEntries(w io.Writer, format string, entries []catalog.Entry) error {
	rows := make([]entryRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, toRow(e))
	}

	switch format {
	case formatJSON:
		return writeJSON(w, rows)
	case formatYAML:
		return writeYAML(w, rows)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tTYPES\tGEN\tHEIGHT\tWEIGHT\tHP\tATK\tDEF\tSPA\tSPD\tSPE")
	for _, e := range entries {
		b := e.BaseStats
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%d\t%d\t%d\t%d\t%d\t%d\n",
			e.ID, displayName(e), strings.Join(e.Types, "/"), e.Generation,
			humanize.SIWithDigits(float64(e.HeightDecimetres)/10, 1, "m"),
			humanize.SIWithDigits(float64(e.WeightHectograms)*100, 1, "g"),
			b.HP, b.Attack, b.Defense, b.SpecialAttack, b.SpecialDefense, b.Speed)
	}
	return tw.Flush()
}

func displayName(e catalog.Entry) string {
	if e.IsLegendary {
		return e.Name + " *"
	}
	return e.Name
}

type speciesOut struct {
	ID         int        `json:"id" yaml:"id"`
	Legendary  bool       `json:"legendary" yaml:"legendary"`
	FlavorText string     `json:"flavorText" yaml:"flavor_text"`
	Evolution  []stageOut `json:"evolution" yaml:"evolution"`
}

type stageOut struct {
	ID   int    `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

func writeSpecies(w io.Writer, format string, d catalog.SpeciesDetail) error {
	out := speciesOut{ID: d.ID, Legendary: d.IsLegendary, FlavorText: d.FlavorText, Evolution: []stageOut{}}
	for _, s := range d.Evolution {
		out.Evolution = append(out.Evolution, stageOut{ID: s.ID, Name: s.Name})
	}

	switch format {
	case formatJSON:
		return writeJSON(w, out)
	case formatYAML:
		return writeYAML(w, out)
	}

	fmt.Fprintf(w, "#%d\n%s\n\n", d.ID, d.FlavorText)
	names := make([]string, 0, len(d.Evolution))
	for _, s := range d.Evolution {
		names = append(names, fmt.Sprintf("%s (#%d)", s.Name, s.ID))
	}
	if len(names) > 0 {
		fmt.Fprintf(w, "Evolution: %s\n", strings.Join(names, " -> "))
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
