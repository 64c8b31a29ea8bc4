package adwatch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"idlegrow/internal/models"

	"github.com/gojek/heimdall/v7"
	"github.com/gojek/heimdall/v7/httpclient"
)

// Client is a thin API client for the balance snapshot endpoint. It is
// what the watcher polls; retries are left to heimdall so a transient
// network blip does not burn a poll attempt budget on its own.
type Client struct {
	http    *httpclient.Client
	baseURL string
	token   string
}

func NewClient(baseURL string, token string) *Client {
	backoff := heimdall.NewConstantBackoff(200*time.Millisecond, 50*time.Millisecond)
	client := httpclient.NewClient(
		httpclient.WithHTTPTimeout(10*time.Second),
		httpclient.WithRetrier(heimdall.NewRetrier(backoff)),
		httpclient.WithRetryCount(2),
	)

	return &Client{client, baseURL, token}
}

type gardenSnapshot struct {
	Coins       int64              `json:"coins"`
	Gems        int64              `json:"gems"`
	Level       int                `json:"level"`
	XP          int64              `json:"xp"`
	Plots       []models.Plot      `json:"plots"`
	Multipliers models.Multipliers `json:"multipliers"`
}

type gardenMeResponse struct {
	Data gardenSnapshot `json:"data"`
}

func (c *Client) GardenMe(ctx context.Context) (*gardenSnapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v1/garden/me", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("garden/me: unexpected status %d", res.StatusCode)
	}

	var body gardenMeResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, err
	}

	return &body.Data, nil
}

// Balances adapts GardenMe to the poller's FetchFunc.
func (c *Client) Balances(ctx context.Context) (models.Balances, error) {
	snapshot, err := c.GardenMe(ctx)
	if err != nil {
		return models.Balances{}, err
	}

	return models.Balances{Coins: snapshot.Coins, Gems: snapshot.Gems}, nil
}
