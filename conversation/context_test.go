package conversation

import (
	"fmt"
	"testing"

	"github.com/poiesic/folhabot/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTurn(i int) core.Turn {
	return core.Turn{
		UserText:     fmt.Sprintf("pergunta %d", i),
		ResponseText: fmt.Sprintf("resposta %d", i),
		Metadata: core.TurnMetadata{
			Intent:     core.IntentPayroll,
			Confidence: 0.5,
			Mode:       core.RetrievalFiltered,
			Sources:    []int{i},
		},
	}
}

func TestNewContext(t *testing.T) {
	t.Run("generates a session ID", func(t *testing.T) {
		a, err := NewContext()
		require.NoError(t, err)
		b, err := NewContext()
		require.NoError(t, err)
		assert.NotEmpty(t, a.SessionID())
		assert.NotEqual(t, a.SessionID(), b.SessionID())
	})

	t.Run("explicit session ID", func(t *testing.T) {
		c, err := NewContext(WithSessionID("sessao-teste"))
		require.NoError(t, err)
		assert.Equal(t, "sessao-teste", c.SessionID())
	})

	t.Run("rejects empty session ID", func(t *testing.T) {
		_, err := NewContext(WithSessionID(""))
		assert.ErrorIs(t, err, ErrEmptySessionID)
	})

	t.Run("rejects invalid max turns", func(t *testing.T) {
		_, err := NewContext(WithMaxTurns(0))
		assert.ErrorIs(t, err, ErrInvalidMaxTurns)
	})
}

func TestAppendAndHistory(t *testing.T) {
	c, err := NewContext()
	require.NoError(t, err)

	require.NoError(t, c.Append(testTurn(0)))
	require.NoError(t, c.Append(testTurn(1)))

	history := c.History()
	require.Len(t, history, 2)
	assert.Equal(t, "pergunta 0", history[0].UserText)
	assert.Equal(t, "pergunta 1", history[1].UserText)
	assert.False(t, history[0].Metadata.Timestamp.IsZero())
}

func TestAppendValidation(t *testing.T) {
	c, err := NewContext()
	require.NoError(t, err)

	err = c.Append(core.Turn{ResponseText: "resposta sem pergunta"})
	assert.ErrorIs(t, err, core.ErrInvalidTurn)
	assert.Equal(t, 0, c.Len())
}

func TestFIFOEviction(t *testing.T) {
	const bound = 3
	c, err := NewContext(WithMaxTurns(bound))
	require.NoError(t, err)

	// One past the bound: the oldest turn must be the one evicted.
	for i := 0; i <= bound; i++ {
		require.NoError(t, c.Append(testTurn(i)))
	}

	history := c.History()
	require.Len(t, history, bound)
	assert.Equal(t, "pergunta 1", history[0].UserText)
	assert.Equal(t, "pergunta 3", history[bound-1].UserText)
	assert.Equal(t, bound+1, c.TotalTurns())
}

func TestClear(t *testing.T) {
	c, err := NewContext(WithSessionID("sessao-teste"))
	require.NoError(t, err)

	require.NoError(t, c.Append(testTurn(0)))
	c.Clear()

	assert.Equal(t, 0, c.Len())
	assert.Empty(t, c.History())
	assert.Equal(t, "sessao-teste", c.SessionID())
	assert.Equal(t, 1, c.TotalTurns())
}

func TestExport(t *testing.T) {
	c, err := NewContext(WithMaxTurns(2))
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		require.NoError(t, c.Append(testTurn(i)))
	}

	export := c.Export()
	assert.Equal(t, c.SessionID(), export.SessionID)
	assert.False(t, export.ExportedAt.IsZero())
	assert.Equal(t, 3, export.TotalTurns)
	require.Len(t, export.Turns, 2)
	assert.Equal(t, "pergunta 1", export.Turns[0].UserText)

	// Snapshot is detached from the live history.
	require.NoError(t, c.Append(testTurn(3)))
	assert.Equal(t, "pergunta 1", export.Turns[0].UserText)
	assert.Len(t, export.Turns, 2)
}
