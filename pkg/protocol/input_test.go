package protocol

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigAndCredentials(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantConf  map[string]any
		wantCreds map[string]any
		wantWarn  bool
	}{
		{
			name:      "both present",
			input:     `{"config":{"host":"db1","port":5432},"credentials":{"user":"u"}}`,
			wantConf:  map[string]any{"host": "db1", "port": float64(5432)},
			wantCreds: map[string]any{"user": "u"},
		},
		{
			name:      "config only",
			input:     `{"config":{"a":true}}`,
			wantConf:  map[string]any{"a": true},
			wantCreds: map[string]any{},
		},
		{
			name:      "non object members",
			input:     `{"config":"x","credentials":null}`,
			wantConf:  map[string]any{},
			wantCreds: map[string]any{},
		},
		{
			name:      "malformed",
			input:     `{"config":`,
			wantConf:  map[string]any{},
			wantCreds: map[string]any{},
			wantWarn:  true,
		},
		{
			name:      "empty",
			input:     "",
			wantConf:  map[string]any{},
			wantCreds: map[string]any{},
			wantWarn:  true,
		},
		{
			name:      "top level array",
			input:     `[1]`,
			wantConf:  map[string]any{},
			wantCreds: map[string]any{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, buf := newTestTransport(tt.input)
			assert.Equal(t, tt.wantConf, tr.Config())
			assert.Equal(t, tt.wantCreds, tr.Credentials())

			if tt.wantWarn {
				assert.Equal(t, []string{`{"type":"log","level":"warn","msg":"Unable to parse collector config via stdin"}`}, lines(buf))
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}

type countingReader struct {
	r     *strings.Reader
	reads atomic.Int32
}

func (c *countingReader) Read(p []byte) (int, error) {
	c.reads.Add(1)
	return c.r.Read(p)
}

func TestInputReadOnce(t *testing.T) {
	src := &countingReader{r: strings.NewReader(`{"config":{"a":1}}`)}
	tr := New(WithOutput(&strings.Builder{}), WithInput(src))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, float64(1), tr.Config()["a"])
			_ = tr.Credentials()
		}()
	}
	wg.Wait()

	reads := src.reads.Load()
	_ = tr.Config()
	assert.Equal(t, reads, src.reads.Load())
}

func TestConfigReturnsCopy(t *testing.T) {
	tr, _ := newTestTransport(`{"config":{"host":"db1"},"credentials":{"user":"u"}}`)

	conf := tr.Config()
	conf["host"] = "changed"
	delete(tr.Credentials(), "user")

	assert.Equal(t, map[string]any{"host": "db1"}, tr.Config())
	assert.Equal(t, map[string]any{"user": "u"}, tr.Credentials())
}

func TestDecodeConfig(t *testing.T) {
	tr, _ := newTestTransport(`{"config":{"host":"db1","port":5432,"tls":true},"credentials":{"user":"u","password":"p"}}`)

	var conf struct {
		Host string `json:"host"`
		Port int    `json:"port"`
		TLS  bool   `json:"tls"`
	}
	require.NoError(t, tr.DecodeConfig(&conf))
	assert.Equal(t, "db1", conf.Host)
	assert.Equal(t, 5432, conf.Port)
	assert.True(t, conf.TLS)

	var creds struct {
		User     string `json:"user"`
		Password string `json:"password"`
	}
	require.NoError(t, tr.DecodeCredentials(&creds))
	assert.Equal(t, "u", creds.User)

	var wrong struct {
		Host int `json:"host"`
	}
	assert.Error(t, tr.DecodeConfig(&wrong))
}

func TestWithInputFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.yaml")
	content := "config:\n  units:\n    - ssh.service\n  interval: 30\ncredentials:\n  token: abc\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	tr := New(WithOutput(&strings.Builder{}), WithInputFile(path))
	assert.Equal(t, []any{"ssh.service"}, tr.Config()["units"])
	assert.Equal(t, 30, tr.Config()["interval"])
	assert.Equal(t, "abc", tr.Credentials()["token"])
}

func TestWithInputFile_Missing(t *testing.T) {
	var out strings.Builder
	tr := New(WithOutput(&out), WithInputFile(filepath.Join(t.TempDir(), "nope.yaml")))
	assert.Empty(t, tr.Config())
	assert.Contains(t, out.String(), parseWarning)
}
