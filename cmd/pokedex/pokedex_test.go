package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type fakeMon struct {
	id        int
	name      string
	typ       string
	hp, speed int
	legendary bool
}

var fakeDex = []fakeMon{
	{1, "bulbasaur", "grass", 45, 45, false},
	{4, "charmander", "fire", 39, 65, false},
	{150, "mewtwo", "psychic", 106, 130, true},
}

func newFakePokeAPI(t *testing.T) *httptest.Server {
	t.Helper()
	var srv *httptest.Server

	mux := http.NewServeMux()
	mux.HandleFunc("GET /pokemon", func(w http.ResponseWriter, r *http.Request) {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		results := []map[string]string{}
		for i := offset; i < offset+limit && i < len(fakeDex); i++ {
			m := fakeDex[i]
			results = append(results, map[string]string{
				"name": m.name,
				"url":  fmt.Sprintf("%s/pokemon/%d/", srv.URL, m.id),
			})
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"count": len(fakeDex), "results": results})
	})
	mux.HandleFunc("GET /pokemon/{id}", func(w http.ResponseWriter, r *http.Request) {
		m, ok := lookupFake(r.PathValue("id"))
		if !ok {
			http.NotFound(w, r)
			return
		}
		fmt.Fprintf(w, `{"id":%d,"name":%q,"height":7,"weight":69,
			"sprites":{"front_default":"front.png"},
			"types":[{"slot":1,"type":{"name":%q}}],
			"stats":[{"base_stat":%d,"stat":{"name":"hp"}},{"base_stat":49,"stat":{"name":"attack"}},
				{"base_stat":49,"stat":{"name":"defense"}},{"base_stat":65,"stat":{"name":"special-attack"}},
				{"base_stat":65,"stat":{"name":"special-defense"}},{"base_stat":%d,"stat":{"name":"speed"}}],
			"species":{"name":%q,"url":"%s/pokemon-species/%d/"}}`,
			m.id, m.name, m.typ, m.hp, m.speed, m.name, srv.URL, m.id)
	})
	mux.HandleFunc("GET /pokemon-species/{id}", func(w http.ResponseWriter, r *http.Request) {
		m, ok := lookupFake(r.PathValue("id"))
		if !ok {
			http.NotFound(w, r)
			return
		}
		fmt.Fprintf(w, `{"id":%d,"is_legendary":%t,
			"flavor_text_entries":[
				{"flavor_text":"Une graine.","language":{"name":"fr"}},
				{"flavor_text":"A strange seed was\nplanted on its\fback.","language":{"name":"en"}}],
			"evolution_chain":{"url":"%s/evolution-chain/1/"}}`, m.id, m.legendary, srv.URL)
	})
	mux.HandleFunc("GET /evolution-chain/1/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"id":1,"chain":{"species":{"name":"bulbasaur","url":"%[1]s/pokemon-species/1/"},
			"evolves_to":[{"species":{"name":"ivysaur","url":"%[1]s/pokemon-species/2/"},
				"evolves_to":[{"species":{"name":"venusaur","url":"%[1]s/pokemon-species/3/"},"evolves_to":[]}]}]}}`, srv.URL)
	})

	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func lookupFake(raw string) (fakeMon, bool) {
	id, err := strconv.Atoi(strings.Trim(raw, "/"))
	if err != nil {
		return fakeMon{}, false
	}
	for _, m := range fakeDex {
		if m.id == id {
			return m, true
		}
	}
	return fakeMon{}, false
}

func runCLI(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestList_WholeCatalogAsJSON(t *testing.T) {
	srv := newFakePokeAPI(t)

	out, _, err := runCLI(t, "list", "--base-url", srv.URL, "--page-size", "2", "--pages", "0",
		"--sort", "speed", "--desc", "-o", "json")
	require.NoError(t, err)

	var rows []entryRow
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"mewtwo", "charmander", "bulbasaur"}, []string{rows[0].Name, rows[1].Name, rows[2].Name})
	assert.Equal(t, 130, rows[0].Stats["speed"])
	assert.Equal(t, "I", generationOf(rows, 150))
	assert.InDelta(t, 6.9, rows[0].WeightKg, 0.001)
}

func generationOf(rows []entryRow, id int) string {
	for _, r := range rows {
		if r.ID == id {
			return r.Generation
		}
	}
	return ""
}

func TestList_OnePageFilteredTable(t *testing.T) {
	srv := newFakePokeAPI(t)

	out, errOut, err := runCLI(t, "list", "--base-url", srv.URL, "--page-size", "2", "--type", "fire")
	require.NoError(t, err)

	assert.Contains(t, out, "charmander")
	assert.NotContains(t, out, "bulbasaur")
	assert.NotContains(t, out, "mewtwo")
	assert.Contains(t, errOut, "1 of 2 loaded Pokemon shown")
}

func TestList_LegendaryAsYAML(t *testing.T) {
	srv := newFakePokeAPI(t)

	out, _, err := runCLI(t, "list", "--base-url", srv.URL, "--pages", "0", "--legendary", "-o", "yaml")
	require.NoError(t, err)

	var rows []map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "mewtwo", rows[0]["name"])
	assert.Equal(t, true, rows[0]["legendary"])
}

func TestList_RejectsUnknownSortKey(t *testing.T) {
	_, _, err := runCLI(t, "list", "--sort", "luck")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown --sort")
}

func TestRoot_RejectsUnknownFormat(t *testing.T) {
	_, _, err := runCLI(t, "list", "-o", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown --format")
}

func TestSpecies_Table(t *testing.T) {
	srv := newFakePokeAPI(t)

	out, _, err := runCLI(t, "species", "1", "--base-url", srv.URL)
	require.NoError(t, err)

	assert.Contains(t, out, "A strange seed was planted on its back.")
	assert.Contains(t, out, "bulbasaur (#1) -> ivysaur (#2) -> venusaur (#3)")
}

func TestSpecies_JSON(t *testing.T) {
	srv := newFakePokeAPI(t)

	out, _, err := runCLI(t, "species", "150", "--base-url", srv.URL, "-o", "json")
	require.NoError(t, err)

	var got speciesOut
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 150, got.ID)
	assert.True(t, got.Legendary)
	assert.Len(t, got.Evolution, 3)
}

func TestSpecies_Errors(t *testing.T) {
	srv := newFakePokeAPI(t)

	_, _, err := runCLI(t, "species", "pikachu")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "positive integer")

	_, _, err = runCLI(t, "species", "9999", "--base-url", srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestWarm_RequiresDSN(t *testing.T) {
	t.Setenv("DB_DSN", "")
	_, _, err := runCLI(t, "warm")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_DSN")
}
