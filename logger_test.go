package fresco

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) { return 0, errors.New("disk full") }

func TestFileEventLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewFileEventLogger(&buf)

	ts := time.Date(2024, 8, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, logger.LogEvent(Event{Action: "add_selected_recipe", Timestamp: ts, RecipeID: "1", Servings: 2}))
	require.NoError(t, logger.LogEvent(Event{Action: "remove_selected_recipe", Timestamp: ts, RecipeID: "1"}))
	assert.Zero(t, buf.Len(), "events should be buffered until Flush")

	require.NoError(t, logger.Flush())

	var doc struct {
		Session struct {
			Events []Event `json:"events"`
		} `json:"session"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	require.Len(t, doc.Session.Events, 2)
	assert.Equal(t, "add_selected_recipe", doc.Session.Events[0].Action)
	assert.Equal(t, 2, doc.Session.Events[0].Servings)

	t.Run("flush with nothing buffered writes nothing", func(t *testing.T) {
		buf.Reset()
		require.NoError(t, logger.Flush())
		assert.Zero(t, buf.Len())
	})

	t.Run("write failure", func(t *testing.T) {
		l := NewFileEventLogger(failingWriter{})
		require.NoError(t, l.LogEvent(Event{Action: "x"}))
		err := l.Flush()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to write event log")
	})
}

func TestFileEventLoggerConcurrent(t *testing.T) {
	var buf bytes.Buffer
	logger := NewFileEventLogger(&buf)

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, logger.LogEvent(Event{Action: "adjust_servings", Servings: i + 1}))
		}()
	}
	wg.Wait()
	require.NoError(t, logger.Flush())

	var doc struct {
		Session struct {
			Events []Event `json:"events"`
		} `json:"session"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Len(t, doc.Session.Events, 50)
}

func TestStdoutEventLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := &StdoutEventLogger{out: &buf}

	require.NoError(t, logger.LogEvent(Event{Action: "toggle_shopped", IngredientID: "7"}))
	require.NoError(t, logger.LogEvent(Event{Action: "persist_cart", Error: "boom"}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"ingredient_id":"7"`)
	assert.Contains(t, lines[1], `"error":"boom"`)
}

func TestNoOpEventLogger(t *testing.T) {
	assert.NoError(t, NewNoOpEventLogger().LogEvent(Event{Action: "anything"}))
}
