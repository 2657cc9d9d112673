package statiq

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	domainchat "github.com/statiq/gridiron-sync/internal/domain/chat"
	domaingames "github.com/statiq/gridiron-sync/internal/domain/games"
	"github.com/statiq/gridiron-sync/internal/domain/predict"
	"github.com/statiq/gridiron-sync/internal/domain/teams"
	"github.com/statiq/gridiron-sync/internal/providers"
)

const (
	defaultTimeout       = 15 * time.Second
	defaultMessageWindow = 100
)

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config controls how the client reaches the scores backend.
type Config struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// Client talks to the scores backend and maps its payloads onto the
// domain model. It implements providers.DataProvider.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient httpDoer
}

// NewClient constructs a backend client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		apiKey:     cfg.APIKey,
		httpClient: resolveHTTPClient(cfg.HTTPClient),
	}
}

// FetchGames retrieves the full scoreboard, optionally filtered by
// classification.
func (c *Client) FetchGames(ctx context.Context, classification string) ([]domaingames.Game, error) {
	endpoint := c.baseURL + "/scores"
	if classification != "" {
		endpoint += "?classification=" + url.QueryEscape(classification)
	}

	var payload scoresResponse
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return nil, err
	}
	return mapScores(payload), nil
}

// FetchTeam retrieves one team profile.
func (c *Client) FetchTeam(ctx context.Context, teamID string) (teams.Team, error) {
	var payload teamResponse
	if err := c.getJSON(ctx, c.baseURL+"/teams/"+url.PathEscape(teamID), &payload); err != nil {
		return teams.Team{}, err
	}
	return mapTeam(payload), nil
}

// SubmitVote records a device's prediction. The endpoint is keyed by
// (game, device, winner) and safe to retry.
func (c *Client) SubmitVote(ctx context.Context, gameID, deviceID string, winner predict.Side) error {
	body := voteRequest{DeviceID: deviceID, PredictedWinner: string(winner)}
	endpoint := c.baseURL + "/games/" + url.PathEscape(gameID) + "/vote"
	return c.postJSON(ctx, endpoint, body, nil)
}

// FetchConsensus retrieves the fan vote aggregate for a game.
func (c *Client) FetchConsensus(ctx context.Context, gameID string) (predict.FanConsensus, error) {
	var payload consensusResponse
	endpoint := c.baseURL + "/games/" + url.PathEscape(gameID) + "/votes"
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return predict.FanConsensus{}, err
	}
	return predict.FanConsensus{
		GameID:         gameID,
		HomePercentage: payload.HomePercentage,
		AwayPercentage: payload.AwayPercentage,
		SampleSize:     payload.TotalVotes,
	}, nil
}

// FetchGameRoom resolves the chat room for a game. A 403 means the room
// was closed after the game reached finality, reported as ErrChatClosed.
func (c *Client) FetchGameRoom(ctx context.Context, gameID string) (domainchat.Room, error) {
	var payload roomResponse
	err := c.getJSON(ctx, c.baseURL+"/chat/game/"+url.PathEscape(gameID), &payload)
	if err != nil {
		var se *providers.StatusError
		if errors.As(err, &se) && se.Status == http.StatusForbidden {
			return domainchat.Room{}, providers.ErrChatClosed
		}
		return domainchat.Room{}, err
	}
	return mapRoom(payload), nil
}

// FetchMessages returns the recent message window for a room, ordered by
// id ascending. limit <= 0 uses the default window.
func (c *Client) FetchMessages(ctx context.Context, roomID int64, limit int) ([]domainchat.Message, error) {
	if limit <= 0 {
		limit = defaultMessageWindow
	}
	endpoint := fmt.Sprintf("%s/chat/rooms/%d/messages?limit=%s", c.baseURL, roomID, strconv.Itoa(limit))

	var payload []messageResponse
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return nil, err
	}
	return mapMessages(payload), nil
}

// SendMessage posts a message to a room and returns the stored message.
func (c *Client) SendMessage(ctx context.Context, roomID int64, userID, text string) (domainchat.Message, error) {
	body := sendMessageRequest{UserID: userID, MessageText: text}
	endpoint := fmt.Sprintf("%s/chat/rooms/%d/messages", c.baseURL, roomID)

	var payload sendMessageResponse
	if err := c.postJSON(ctx, endpoint, body, &payload); err != nil {
		return domainchat.Message{}, err
	}
	return domainchat.Message{
		ID:          payload.MessageID,
		RoomID:      roomID,
		UserID:      userID,
		Text:        text,
		WasCensored: payload.WasCensored,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// ReportMessage attaches a moderation reason to a message.
func (c *Client) ReportMessage(ctx context.Context, messageID int64, reason string) error {
	body := reportRequest{Reason: reason}
	endpoint := fmt.Sprintf("%s/chat/messages/%d/report", c.baseURL, messageID)
	return c.postJSON(ctx, endpoint, body, nil)
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) postJSON(ctx context.Context, endpoint string, in, out any) error {
	raw, err := json.Marshal(in)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 512))
		return &providers.StatusError{Endpoint: req.URL.Path, Status: resp.StatusCode}
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 512))
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func normalizeBaseURL(base string) string {
	return strings.TrimRight(strings.TrimSpace(base), "/")
}

func resolveHTTPClient(client *http.Client) httpDoer {
	if client != nil {
		return client
	}
	return &http.Client{Timeout: defaultTimeout}
}

