package conversation

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/poiesic/folhabot/core"
)

// DefaultMaxTurns is the default history bound.
const DefaultMaxTurns = 10

// Context is the bounded conversation history of one session. When the
// bound is reached the oldest turn is evicted first. A Context has a
// single writer; it is not safe for concurrent use.
type Context struct {
	sessionID string
	turns     []core.Turn
	maxTurns  int
	total     int
	logger    *slog.Logger
}

// Export is a point-in-time snapshot of a session, including turns
// already evicted from the bounded history only as a count.
type Export struct {
	SessionID  string      `json:"session_id"`
	ExportedAt time.Time   `json:"exported_at"`
	TotalTurns int         `json:"total_turns"`
	Turns      []core.Turn `json:"turns"`
}

// Option configures a Context.
type Option func(*Context) error

// WithMaxTurns sets the history bound.
// Default is DefaultMaxTurns.
func WithMaxTurns(maxTurns int) Option {
	return func(c *Context) error {
		if maxTurns < 1 {
			return ErrInvalidMaxTurns
		}
		c.maxTurns = maxTurns
		return nil
	}
}

// WithSessionID sets an explicit session ID instead of a generated one.
func WithSessionID(id string) Option {
	return func(c *Context) error {
		if id == "" {
			return ErrEmptySessionID
		}
		c.sessionID = id
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Context) error {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
		return nil
	}
}

// NewContext creates an empty conversation context with a fresh session ID.
func NewContext(opts ...Option) (*Context, error) {
	c := &Context{
		sessionID: uuid.NewString(),
		maxTurns:  DefaultMaxTurns,
		logger:    slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	c.logger = c.logger.With("component", "conversation", "session", c.sessionID)

	return c, nil
}

// SessionID returns the session identifier.
func (c *Context) SessionID() string {
	return c.sessionID
}

// Len returns the number of turns currently held.
func (c *Context) Len() int {
	return len(c.turns)
}

// TotalTurns returns the number of turns appended over the session
// lifetime, including evicted ones.
func (c *Context) TotalTurns() int {
	return c.total
}

// Append records a completed turn, evicting the oldest one when the
// history is full.
func (c *Context) Append(turn core.Turn) error {
	if err := core.ValidateTurn(&turn); err != nil {
		return err
	}
	if turn.Metadata.Timestamp.IsZero() {
		turn.Metadata.Timestamp = time.Now()
	}

	if len(c.turns) == c.maxTurns {
		copy(c.turns, c.turns[1:])
		c.turns[len(c.turns)-1] = turn
	} else {
		c.turns = append(c.turns, turn)
	}
	c.total++

	c.logger.Debug("turn recorded",
		"intent", turn.Metadata.Intent,
		"mode", turn.Metadata.Mode,
		"held", len(c.turns))
	return nil
}

// History returns the held turns, oldest first.
// The returned slice is a copy.
func (c *Context) History() []core.Turn {
	history := make([]core.Turn, len(c.turns))
	copy(history, c.turns)
	return history
}

// Clear discards all held turns. The session ID and lifetime turn count
// are kept.
func (c *Context) Clear() {
	c.turns = c.turns[:0]
}

// Export snapshots the session for archival.
func (c *Context) Export() Export {
	return Export{
		SessionID:  c.sessionID,
		ExportedAt: time.Now(),
		TotalTurns: c.total,
		Turns:      c.History(),
	}
}
