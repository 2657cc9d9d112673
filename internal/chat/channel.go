// Package chat keeps a game chat room synchronized with the backend:
// a polled message window, membership-derived participants, moderation
// reporting, and the @-mention helpers the composer uses.
package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	domainchat "github.com/statiq/gridiron-sync/internal/domain/chat"
	"github.com/statiq/gridiron-sync/internal/logging"
	"github.com/statiq/gridiron-sync/internal/providers"
)

// ReportReasons are the moderation categories a message can be flagged
// with. The backend rejects anything else.
var ReportReasons = []string{
	"Inappropriate Content",
	"Spam",
	"Harassment",
	"Hate Speech",
}

// ErrInvalidReportReason is returned by Report for an unknown reason.
var ErrInvalidReportReason = errors.New("chat: invalid report reason")

// defaultWindow is how many trailing messages each refresh requests.
const defaultWindow = 100

// Channel is one device's view of a game chat room. Refresh is meant
// to be driven by a poll subscription; Alive reports false once the
// room closes so the subscription tears itself down.
type Channel struct {
	service providers.ChatService
	gameID  string
	selfID  string
	logger  *slog.Logger

	mu       sync.RWMutex
	room     domainchat.Room
	joined   bool
	closed   bool
	messages []domainchat.Message
	lastErr  error

	grew chan struct{}
}

// NewChannel creates a channel for a game room. selfID is the device's
// own user id, used to keep the device out of its participant list.
func NewChannel(service providers.ChatService, gameID, selfID string, logger *slog.Logger) *Channel {
	return &Channel{
		service: service,
		gameID:  gameID,
		selfID:  selfID,
		logger:  logger,
		grew:    make(chan struct{}, 1),
	}
}

// Join resolves the room for the game. A closed room is not an error
// to the caller: the channel enters its terminal closed state and
// Alive reports false.
func (c *Channel) Join(ctx context.Context) error {
	room, err := c.service.FetchGameRoom(ctx, c.gameID)
	if errors.Is(err, providers.ErrChatClosed) {
		c.mu.Lock()
		c.closed = true
		c.mu.Unlock()
		logging.Info(c.logger, "chat room closed", logging.FieldGameID, c.gameID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to join chat for game %s: %w", c.gameID, err)
	}

	c.mu.Lock()
	c.room = room
	c.joined = true
	c.closed = !room.IsAccessible
	c.mu.Unlock()
	return nil
}

// Refresh replaces the message window with the backend's view. Message
// history is wholesale-replaced, never merged: deletions and censor
// edits on the server win. A transient fetch error keeps the previous
// window on screen.
func (c *Channel) Refresh(ctx context.Context) error {
	c.mu.RLock()
	roomID, joined, closed := c.room.ID, c.joined, c.closed
	c.mu.RUnlock()
	if closed {
		return nil
	}
	if !joined {
		if err := c.Join(ctx); err != nil {
			c.setErr(err)
			return err
		}
		c.mu.RLock()
		roomID, joined, closed = c.room.ID, c.joined, c.closed
		c.mu.RUnlock()
		if closed || !joined {
			return nil
		}
	}

	msgs, err := c.service.FetchMessages(ctx, roomID, defaultWindow)
	if errors.Is(err, providers.ErrChatClosed) {
		c.mu.Lock()
		c.closed = true
		c.mu.Unlock()
		return nil
	}
	if err != nil {
		c.setErr(err)
		return err
	}

	sort.Slice(msgs, func(i, j int) bool { return msgs[i].ID < msgs[j].ID })

	c.mu.Lock()
	prev := len(c.messages)
	c.messages = msgs
	c.lastErr = nil
	c.mu.Unlock()

	if len(msgs) > prev {
		select {
		case c.grew <- struct{}{}:
		default:
		}
	}
	return nil
}

// Alive reports whether the room is still worth polling.
func (c *Channel) Alive() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return !c.closed
}

// Closed reports whether the room has reached its terminal closed state.
func (c *Channel) Closed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

// LastErr returns the most recent transient refresh error, cleared by
// the next successful refresh. A closed room is not an error.
func (c *Channel) LastErr() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastErr
}

// Grew signals whenever a refresh grows the message window, so a UI
// can scroll to the newest message. Signals coalesce.
func (c *Channel) Grew() <-chan struct{} {
	return c.grew
}

// Messages returns a copy of the current window, oldest first.
func (c *Channel) Messages() []domainchat.Message {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domainchat.Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Send posts a message as this device and folds the stored copy into
// the window immediately, without waiting for the next poll.
func (c *Channel) Send(ctx context.Context, text string) (domainchat.Message, error) {
	c.mu.RLock()
	roomID, closed := c.room.ID, c.closed
	c.mu.RUnlock()
	if closed {
		return domainchat.Message{}, providers.ErrChatClosed
	}

	msg, err := c.service.SendMessage(ctx, roomID, c.selfID, text)
	if err != nil {
		return domainchat.Message{}, fmt.Errorf("failed to send message: %w", err)
	}

	c.mu.Lock()
	c.messages = append(c.messages, msg)
	sort.Slice(c.messages, func(i, j int) bool { return c.messages[i].ID < c.messages[j].ID })
	c.mu.Unlock()
	return msg, nil
}

// Report flags a message for moderation. The reason must be one of
// ReportReasons.
func (c *Channel) Report(ctx context.Context, messageID int64, reason string) error {
	if !validReason(reason) {
		return ErrInvalidReportReason
	}
	c.mu.RLock()
	roomID := c.room.ID
	c.mu.RUnlock()
	if err := c.service.ReportMessage(ctx, messageID, reason); err != nil {
		logging.Warn(c.logger, "message report failed",
			logging.FieldRoomID, roomID, logging.FieldError, err)
		return fmt.Errorf("failed to report message: %w", err)
	}
	return nil
}

// Participants returns the distinct display names seen in the window,
// excluding this device, in first-seen order. This is the candidate
// pool for @-mention autocomplete.
func (c *Channel) Participants() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	seen := make(map[string]bool)
	var out []string
	for _, m := range c.messages {
		if m.UserID == c.selfID || m.UserName == "" {
			continue
		}
		if !seen[m.UserName] {
			seen[m.UserName] = true
			out = append(out, m.UserName)
		}
	}
	return out
}

func (c *Channel) setErr(err error) {
	c.mu.Lock()
	c.lastErr = err
	c.mu.Unlock()
}

func validReason(reason string) bool {
	for _, r := range ReportReasons {
		if r == reason {
			return true
		}
	}
	return false
}
