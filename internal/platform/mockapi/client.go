// Package mockapi talks to the hosted REST mock-store that holds every
// trainer's caught Pokemon and teams. The store is the system of record and
// resolves conflicting writes by last writer wins.
package mockapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"pokecatcher/internal/entity"
)

const (
	pokemonsPath = "/CaughtPokemons"
	teamsPath    = "/teams"
)

type Client struct {
	httpClient *http.Client
	baseURL    string
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// StatusError is returned for any non-2xx answer other than 404.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status code: %d", e.Method, e.Path, e.StatusCode)
}

func (c *Client) CreatePokemon(ctx context.Context, p entity.OwnedPokemon) (entity.OwnedPokemon, error) {
	var created entity.OwnedPokemon
	err := c.send(ctx, http.MethodPost, pokemonsPath, p, &created)
	return created, err
}

// ListPokemons returns the owner's caught Pokemon in store order.
func (c *Client) ListPokemons(ctx context.Context, ownerID string) ([]entity.OwnedPokemon, error) {
	var all []entity.OwnedPokemon
	if err := c.list(ctx, pokemonsPath, ownerID, &all); err != nil {
		return nil, err
	}
	// The store filters by substring; keep exact owner matches only.
	owned := make([]entity.OwnedPokemon, 0, len(all))
	for _, p := range all {
		if p.OwnerID == ownerID {
			owned = append(owned, p)
		}
	}
	return owned, nil
}

func (c *Client) UpdatePokemon(ctx context.Context, p entity.OwnedPokemon) (entity.OwnedPokemon, error) {
	var updated entity.OwnedPokemon
	err := c.send(ctx, http.MethodPut, pokemonsPath+"/"+url.PathEscape(p.RecordID), p, &updated)
	return updated, err
}

func (c *Client) DeletePokemon(ctx context.Context, recordID string) error {
	return c.send(ctx, http.MethodDelete, pokemonsPath+"/"+url.PathEscape(recordID), nil, nil)
}

func (c *Client) ListTeams(ctx context.Context, ownerID string) ([]entity.Team, error) {
	var all []entity.Team
	if err := c.list(ctx, teamsPath, ownerID, &all); err != nil {
		return nil, err
	}
	teams := make([]entity.Team, 0, len(all))
	for _, t := range all {
		if t.OwnerID == ownerID {
			if t.Members == nil {
				t.Members = []entity.OwnedPokemon{}
			}
			teams = append(teams, t)
		}
	}
	return teams, nil
}

func (c *Client) CreateTeam(ctx context.Context, t entity.Team) (entity.Team, error) {
	var created entity.Team
	err := c.send(ctx, http.MethodPost, teamsPath, t, &created)
	return created, err
}

// UpdateTeam writes the full team record; the store has no partial updates
// for membership.
func (c *Client) UpdateTeam(ctx context.Context, t entity.Team) (entity.Team, error) {
	var updated entity.Team
	err := c.send(ctx, http.MethodPut, teamsPath+"/"+url.PathEscape(t.ID), t, &updated)
	return updated, err
}

func (c *Client) DeleteTeam(ctx context.Context, teamID string) error {
	return c.send(ctx, http.MethodDelete, teamsPath+"/"+url.PathEscape(teamID), nil, nil)
}

func (c *Client) list(ctx context.Context, path, ownerID string, target interface{}) error {
	q := url.Values{}
	q.Set("firebaseId", ownerID)
	err := c.send(ctx, http.MethodGet, path+"?"+q.Encode(), nil, target)
	// The store answers 404 when a filter matches nothing.
	if errors.Is(err, entity.ErrNotFound) {
		return nil
	}
	return err
}

func (c *Client) send(ctx context.Context, method, path string, body, target interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%s %s: %w", method, path, entity.ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{Method: method, Path: path, StatusCode: resp.StatusCode, Body: string(msg)}
	}

	if target == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
