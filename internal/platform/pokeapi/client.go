package pokeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const DefaultBaseURL = "https://pokeapi.co/api/v2"

type Client struct {
	httpClient *http.Client
	userAgent  string
	baseURL    string
	limiter    *rate.Limiter
	maxRetries int
}

type Options struct {
	BaseURL    string
	UserAgent  string
	RPS        int
	MaxRetries int
	Timeout    time.Duration
}

func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.RPS <= 0 {
		opts.RPS = 20
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
		userAgent:  opts.UserAgent,
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		limiter:    rate.NewLimiter(rate.Every(time.Second/time.Duration(opts.RPS)), opts.RPS),
		maxRetries: opts.MaxRetries,
	}
}

// NamedResource is the {name, url} pair PokeAPI uses for every reference.
type NamedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ListResponse matches /pokemon?limit&offset
type ListResponse struct {
	Count   int             `json:"count"`
	Next    string          `json:"next"`
	Results []NamedResource `json:"results"`
}

// Pokemon matches /pokemon/{id}
type Pokemon struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Height  int    `json:"height"`
	Weight  int    `json:"weight"`
	Sprites struct {
		FrontDefault string `json:"front_default"`
		Other        struct {
			OfficialArtwork struct {
				FrontDefault string `json:"front_default"`
			} `json:"official-artwork"`
		} `json:"other"`
	} `json:"sprites"`
	Types []struct {
		Slot int           `json:"slot"`
		Type NamedResource `json:"type"`
	} `json:"types"`
	Stats []struct {
		BaseStat int           `json:"base_stat"`
		Stat     NamedResource `json:"stat"`
	} `json:"stats"`
	Species NamedResource `json:"species"`
}

// Species matches /pokemon-species/{id}
type Species struct {
	ID                int  `json:"id"`
	IsLegendary       bool `json:"is_legendary"`
	FlavorTextEntries []struct {
		FlavorText string        `json:"flavor_text"`
		Language   NamedResource `json:"language"`
	} `json:"flavor_text_entries"`
	EvolutionChain struct {
		URL string `json:"url"`
	} `json:"evolution_chain"`
}

// ChainLink is one node of the recursive evolution tree.
type ChainLink struct {
	Species   NamedResource `json:"species"`
	EvolvesTo []ChainLink   `json:"evolves_to"`
}

// EvolutionChain matches the document behind species.evolution_chain.url
type EvolutionChain struct {
	ID    int       `json:"id"`
	Chain ChainLink `json:"chain"`
}

func (c *Client) ListPokemon(ctx context.Context, limit, offset int) (*ListResponse, error) {
	u := fmt.Sprintf("%s/pokemon?limit=%d&offset=%d", c.baseURL, limit, offset)

	var res ListResponse
	if err := c.get(ctx, u, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) GetPokemon(ctx context.Context, id int) (*Pokemon, error) {
	u := fmt.Sprintf("%s/pokemon/%d", c.baseURL, id)

	var res Pokemon
	if err := c.get(ctx, u, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) GetSpecies(ctx context.Context, id int) (*Species, error) {
	u := fmt.Sprintf("%s/pokemon-species/%d", c.baseURL, id)

	var res Species
	if err := c.get(ctx, u, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// GetEvolutionChain follows the absolute URL handed out by a species document.
func (c *Client) GetEvolutionChain(ctx context.Context, chainURL string) (*EvolutionChain, error) {
	if _, err := url.ParseRequestURI(chainURL); err != nil {
		return nil, fmt.Errorf("invalid evolution chain url %q: %w", chainURL, err)
	}

	var res EvolutionChain
	if err := c.get(ctx, chainURL, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// IDFromURL extracts the trailing numeric id from resource URLs such as
// https://pokeapi.co/api/v2/pokemon-species/25/
func IDFromURL(resourceURL string) (int, error) {
	parts := strings.Split(strings.Trim(resourceURL, "/"), "/")
	last := parts[len(parts)-1]
	id, err := strconv.Atoi(last)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("no resource id in %q", resourceURL)
	}
	return id, nil
}

// StatusError is returned for non-2xx responses that are not retried.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status code: %d", e.URL, e.StatusCode)
}

func (c *Client) get(ctx context.Context, url string, target interface{}) error {
	var lastErr error
	for i := 0; i <= c.maxRetries; i++ {
		if i > 0 {
			// Backoff: 1s, 2s, 4s...
			backoff := time.Duration(1<<uint(i-1)) * time.Second
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}

		retry, err := c.do(ctx, url, target)
		if err == nil {
			return nil
		}
		if !retry {
			return err
		}
		lastErr = err
	}
	return fmt.Errorf("after %d retries: %w", c.maxRetries, lastErr)
}

func (c *Client) do(ctx context.Context, url string, target interface{}) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ctx.Err() == nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		statusErr := &StatusError{URL: url, StatusCode: resp.StatusCode}
		retry := resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
		return retry, statusErr
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return false, fmt.Errorf("decode %s: %w", url, err)
	}
	return false, nil
}
