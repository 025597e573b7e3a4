package collection

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pokecatcher/internal/catalog"
	"pokecatcher/internal/entity"
	"pokecatcher/internal/httpx"
	"pokecatcher/internal/testutil"
)

type stubSpecies map[int]catalog.Entry

func (s stubSpecies) Get(_ context.Context, id int) (catalog.Entry, error) {
	e, ok := s[id]
	if !ok {
		return catalog.Entry{}, fmt.Errorf("pokemon %d: %w", id, catalog.ErrNotFound)
	}
	return e, nil
}

func newTestMux(t *testing.T) (*http.ServeMux, *MockStore) {
	svc, store := newTestService(t)
	h := NewHTTPHandler(svc, stubSpecies{4: {ID: 4, Name: "charmander", Types: []string{"fire"}}})

	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/me/pokemons", h.ListPokemons)
	mux.HandleFunc("POST /v1/me/pokemons", h.Catch)
	mux.HandleFunc("PATCH /v1/me/pokemons/{id}", h.Edit)
	mux.HandleFunc("DELETE /v1/me/pokemons/{id}", h.Release)
	mux.HandleFunc("GET /v1/me/teams", h.ListTeams)
	mux.HandleFunc("POST /v1/me/teams", h.CreateTeam)
	mux.HandleFunc("PATCH /v1/me/teams/{id}", h.RenameTeam)
	mux.HandleFunc("DELETE /v1/me/teams/{id}", h.DeleteTeam)
	return mux, store
}

func serve(mux http.Handler, r *http.Request) testutil.RecordResponse {
	r = r.WithContext(httpx.ContextWithTrainer(r.Context(), entity.Trainer{ID: trainerID}))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, r)
	return testutil.RecordHTTPResponse(w)
}

func TestHTTPHandler_RequiresTrainer(t *testing.T) {
	mux, _ := newTestMux(t)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.NewRequest(http.MethodGet, "/v1/me/pokemons", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHTTPHandler_Catch(t *testing.T) {
	t.Run("blank nickname", func(t *testing.T) {
		mux, _ := newTestMux(t)
		resp := serve(mux, testutil.NewRequest(http.MethodPost, "/v1/me/pokemons", map[string]any{"speciesId": 4, "nickname": " "}))
		assert.Equal(t, http.StatusBadRequest, resp.Code)
		assert.Equal(t, "VALIDATION_FAILED", resp.ErrorCode())
	})

	t.Run("unknown species", func(t *testing.T) {
		mux, _ := newTestMux(t)
		resp := serve(mux, testutil.NewRequest(http.MethodPost, "/v1/me/pokemons", map[string]any{"speciesId": 99, "nickname": "X"}))
		assert.Equal(t, http.StatusNotFound, resp.Code)
	})

	t.Run("created", func(t *testing.T) {
		mux, store := newTestMux(t)
		store.EXPECT().CreatePokemon(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, p entity.OwnedPokemon) (entity.OwnedPokemon, error) {
				p.RecordID = "r1"
				return p, nil
			})

		resp := serve(mux, testutil.NewRequest(http.MethodPost, "/v1/me/pokemons", map[string]any{"speciesId": 4, "nickname": "Flame"}))
		require.Equal(t, http.StatusCreated, resp.Code)
		data := resp.Data().(map[string]interface{})
		assert.Equal(t, "r1", data["id"])
		assert.Equal(t, float64(4), data["pokemonId"])
		assert.Equal(t, "Flame", data["nickname"])
	})

	t.Run("store down", func(t *testing.T) {
		mux, store := newTestMux(t)
		store.EXPECT().CreatePokemon(gomock.Any(), gomock.Any()).Return(entity.OwnedPokemon{}, errors.New("503"))

		resp := serve(mux, testutil.NewRequest(http.MethodPost, "/v1/me/pokemons", map[string]any{"speciesId": 4, "nickname": "Flame"}))
		assert.Equal(t, http.StatusBadGateway, resp.Code)
		assert.Equal(t, "REMOTE_WRITE_FAILED", resp.ErrorCode())
	})
}

func TestHTTPHandler_Edit(t *testing.T) {
	mux, _ := newTestMux(t)
	resp := serve(mux, testutil.NewRequest(http.MethodPatch, "/v1/me/pokemons/a", map[string]any{"datecaught": "not-a-date"}))
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = serve(mux, testutil.NewRequest(http.MethodPatch, "/v1/me/pokemons/a", map[string]any{}))
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}

func TestHTTPHandler_ReleasePartialCascade(t *testing.T) {
	mux, store := newTestMux(t)
	store.EXPECT().ListPokemons(gomock.Any(), trainerID).Return(owned("a"), nil)
	store.EXPECT().ListTeams(gomock.Any(), trainerID).Return([]entity.Team{team("t1", "a")}, nil)
	store.EXPECT().DeletePokemon(gomock.Any(), "a").Return(nil)
	store.EXPECT().UpdateTeam(gomock.Any(), gomock.Any()).Return(entity.Team{}, errors.New("timeout"))

	resp := serve(mux, testutil.NewRequest(http.MethodDelete, "/v1/me/pokemons/a", nil))
	assert.Equal(t, http.StatusBadGateway, resp.Code)
	assert.Equal(t, "PARTIAL_CASCADE", resp.ErrorCode())
}

func TestHTTPHandler_Teams(t *testing.T) {
	t.Run("list creates default team", func(t *testing.T) {
		mux, store := newTestMux(t)
		store.EXPECT().ListPokemons(gomock.Any(), trainerID).Return(nil, nil)
		store.EXPECT().ListTeams(gomock.Any(), trainerID).Return(nil, nil)
		store.EXPECT().CreateTeam(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, tm entity.Team) (entity.Team, error) {
				tm.ID = "t1"
				return tm, nil
			})

		resp := serve(mux, testutil.NewRequest(http.MethodGet, "/v1/me/teams", nil))
		require.Equal(t, http.StatusOK, resp.Code)
		assert.Len(t, resp.Data(), 1)
	})

	t.Run("create without body", func(t *testing.T) {
		mux, store := newTestMux(t)
		store.EXPECT().ListTeams(gomock.Any(), trainerID).Return([]entity.Team{team("t1")}, nil)
		store.EXPECT().CreateTeam(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, tm entity.Team) (entity.Team, error) {
				return tm, nil
			})

		resp := serve(mux, testutil.NewRequest(http.MethodPost, "/v1/me/teams", nil))
		require.Equal(t, http.StatusCreated, resp.Code)
		assert.Equal(t, "Team 2", resp.Data().(map[string]interface{})["name"])
	})

	t.Run("delete last team", func(t *testing.T) {
		mux, store := newTestMux(t)
		store.EXPECT().ListTeams(gomock.Any(), trainerID).Return([]entity.Team{team("t1")}, nil)

		resp := serve(mux, testutil.NewRequest(http.MethodDelete, "/v1/me/teams/t1", nil))
		assert.Equal(t, http.StatusConflict, resp.Code)
		assert.Equal(t, "LAST_TEAM", resp.ErrorCode())
	})

	t.Run("rename unknown team", func(t *testing.T) {
		mux, store := newTestMux(t)
		store.EXPECT().ListPokemons(gomock.Any(), trainerID).Return(nil, nil)
		store.EXPECT().ListTeams(gomock.Any(), trainerID).Return([]entity.Team{team("t1")}, nil)

		resp := serve(mux, testutil.NewRequest(http.MethodPatch, "/v1/me/teams/t9", map[string]any{"name": "X"}))
		assert.Equal(t, http.StatusNotFound, resp.Code)
	})
}

func TestDomainErrorsClassifyWithoutSpecialCases(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{ErrLastTeam, http.StatusUnprocessableEntity},
		{ErrInvalidNickname, http.StatusUnprocessableEntity},
		{ErrTeamNotFound, http.StatusNotFound},
		{ErrPartialCascade, http.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			w := httptest.NewRecorder()
			httpx.JSONDomainError(w, testutil.NewRequest(http.MethodGet, "/", nil), tt.err)
			assert.Equal(t, tt.code, w.Code)
		})
	}
}
