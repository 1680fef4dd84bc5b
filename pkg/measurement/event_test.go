package measurement

import (
	"encoding/json"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/collector-sdk/pkg/errors"
)

func validEvent() *Event {
	return NewEvent().SetSeverity("major").SetSource("web-01").SetCheck("disk").SetDescription("/var is full")
}

func TestEvent_SetSeverity(t *testing.T) {
	e := NewEvent().SetSeverity("CRITICAL")
	assert.Equal(t, SeverityCritical, e.Severity)

	e.SetSeverityLevel(2)
	assert.Equal(t, SeverityLevel(2), e.Severity)
}

func TestEvent_SetSeverityConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				e := NewEvent().SetSeverity("WARNING")
				assert.Equal(t, SeverityWarning, e.Severity)
			}
		}()
	}
	wg.Wait()
}

func TestEvent_Validate(t *testing.T) {
	tests := []struct {
		name      string
		event     *Event
		wantField string
		wantMsg   string
	}{
		{name: "valid", event: validEvent()},
		{name: "mixed case severity", event: validEvent().SetSeverity("Warning")},
		{name: "numeric severity", event: validEvent().SetSeverityLevel(0)},
		{name: "max numeric severity", event: validEvent().SetSeverityLevel(5)},
		{
			name: "all fields",
			event: validEvent().SetTime(1).SetUTCOffset("Z").SetDedupeKey("k").SetManager("m").
				SetService("api", "db").SetAlias("a").SetClass("c").SetTag("team", "sre"),
		},
		{
			name:      "severity unset",
			event:     NewEvent().SetSource("s").SetCheck("c").SetDescription("d"),
			wantField: "severity",
			wantMsg:   "`severity` must be set to one of [clear,unknown,minor,warning,major,critical] or 0-5",
		},
		{
			name:      "unknown severity name",
			event:     validEvent().SetSeverity("fatal"),
			wantField: "severity",
			wantMsg:   "string `severity` must be set to one of [clear,unknown,minor,warning,major,critical]",
		},
		{
			name:      "severity out of range",
			event:     validEvent().SetSeverityLevel(6),
			wantField: "severity",
			wantMsg:   "numeric `severity` must be an integer between 0 and 5",
		},
		{
			name:      "fractional severity",
			event:     validEvent().SetSeverityLevel(2.5),
			wantField: "severity",
			wantMsg:   "numeric `severity` must be an integer between 0 and 5",
		},
		{
			name:      "NaN severity",
			event:     validEvent().SetSeverityLevel(math.NaN()),
			wantField: "severity",
			wantMsg:   "numeric `severity` must be an integer between 0 and 5",
		},
		{
			name:      "missing source",
			event:     NewEvent().SetSeverity("minor").SetCheck("c").SetDescription("d"),
			wantField: "source",
			wantMsg:   "`source` must be set to a non-empty string",
		},
		{
			name:      "empty check",
			event:     validEvent().SetCheck(""),
			wantField: "check",
			wantMsg:   "`check` must be set to a non-empty string",
		},
		{
			name:      "missing description",
			event:     NewEvent().SetSeverity("minor").SetSource("s").SetCheck("c"),
			wantField: "description",
			wantMsg:   "`description` must be set to a non-empty string",
		},
		{
			name:      "infinite tag",
			event:     validEvent().SetTag("ratio", math.Inf(1)),
			wantField: "tags",
			wantMsg:   "Field `tags` must be encodable as JSON",
		},
		{
			name:      "empty service list",
			event:     validEvent().SetService(),
			wantField: "service",
			wantMsg:   "Field `service` must be a non-empty array of strings",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.event.Validate()
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantField, errors.Field(err))
			assert.Equal(t, tt.wantMsg, errors.Message(err))
		})
	}
}

func TestEvent_JSON(t *testing.T) {
	e := validEvent().SetTime(1700000000).SetService("api").SetClass("storage")
	data, err := json.Marshal(e)
	require.NoError(t, err)
	assert.Equal(t,
		`{"severity":"major","source":"web-01","check":"disk","description":"/var is full","time":1700000000,"service":["api"],"class":"storage"}`,
		string(data))

	data, err = json.Marshal(validEvent().SetSeverityLevel(3))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"severity":3,`)
}

func TestEventFrom(t *testing.T) {
	t.Run("round trip with legacy dedup key", func(t *testing.T) {
		e := EventFrom(map[string]any{
			"severity":    "Major",
			"source":      "s",
			"check":       "c",
			"description": "d",
			"dedup_key":   "k1",
		})
		require.NoError(t, e.Validate())

		data, err := json.Marshal(e)
		require.NoError(t, err)
		assert.Equal(t, `{"severity":"major","source":"s","check":"c","description":"d","dedupe_key":"k1"}`, string(data))
	})

	t.Run("legacy key wins", func(t *testing.T) {
		e := EventFrom(map[string]any{"dedupe_key": "new", "dedup_key": "old"})
		require.NotNil(t, e.DedupeKey)
		assert.Equal(t, "old", *e.DedupeKey)
	})

	t.Run("unmarshal", func(t *testing.T) {
		src := `{"severity":4,"source":"s","check":"c","description":"d","service":["a","b"],"tags":{"x":{"y":1}}}`
		var e Event
		require.NoError(t, json.Unmarshal([]byte(src), &e))
		require.NoError(t, e.Validate())
		assert.Equal(t, SeverityLevel(4), e.Severity)
		assert.Equal(t, []string{"a", "b"}, e.Service)

		out, err := json.Marshal(&e)
		require.NoError(t, err)
		assert.JSONEq(t, src, string(out))
	})

	mistyped := []struct {
		name      string
		key       string
		value     any
		wantField string
		wantMsg   string
	}{
		{"severity null", "severity", nil, "severity", "`severity` must be set to one of [clear,unknown,minor,warning,major,critical] or 0-5"},
		{"severity object", "severity", map[string]any{}, "severity", "`severity` must be a string or a number"},
		{"source number", "source", 1, "source", "`source` must be set to a non-empty string"},
		{"time string", "time", "soon", "time", "Field `time` must be a number"},
		{"manager bool", "manager", true, "manager", "Field `manager` must be a string"},
		{"service mixed", "service", []any{"a", false}, "service", "Field `service` must be a non-empty array of strings"},
		{"service empty", "service", []any{}, "service", "Field `service` must be a non-empty array of strings"},
		{"service scalar", "service", 77, "service", "Field `service` must be a non-empty array of strings"},
		{"legacy dedup key number", "dedup_key", 1, "dedupe_key", "Field `dedupe_key` must be a string"},
		{"class number", "class", 2, "class", "Field `class` must be a string"},
		{"tags array", "tags", []any{}, "tags", "Field `tags` must be a plain object"},
	}
	for _, tt := range mistyped {
		t.Run(tt.name, func(t *testing.T) {
			src := map[string]any{"severity": "minor", "source": "s", "check": "c", "description": "d"}
			src[tt.key] = tt.value
			err := EventFrom(src).Validate()
			require.Error(t, err)
			assert.Equal(t, tt.wantField, errors.Field(err))
			assert.Equal(t, tt.wantMsg, errors.Message(err))
		})
	}
}

func TestDedupeKey(t *testing.T) {
	a := DedupeKey("web-01", "disk")
	assert.Equal(t, a, DedupeKey("web-01", "disk"))
	assert.NotEqual(t, a, DedupeKey("web-01", "cpu"))
	assert.NotEqual(t, a, DedupeKey("web-01disk"))

	e := validEvent().DeriveDedupeKey("web-01", "disk")
	require.NotNil(t, e.DedupeKey)
	assert.Equal(t, a, *e.DedupeKey)
}
