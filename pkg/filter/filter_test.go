package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchesAny(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		patterns []string
		want     bool
	}{
		{"literal", "sda", []string{"sdb", "sda"}, true},
		{"literal mismatch", "sda1", []string{"sda"}, false},
		{"regex", "nvme0n1", []string{"/^nvme/"}, true},
		{"regex mismatch", "sda", []string{"/^nvme/"}, false},
		{"negated regex", "sda", []string{"!/^loop/"}, true},
		{"negated regex excludes", "loop0", []string{"!/^loop/"}, false},
		{"invalid regex skipped", "x", []string{"/(/", "x"}, true},
		{"only invalid regex", "x", []string{"/(/"}, false},
		{"empty patterns", "x", nil, false},
		{"slash literal", "/", []string{"/"}, true},
		{"empty regex matches all", "anything", []string{"//"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchesAny(tt.value, tt.patterns))
		})
	}
}

func TestCompile(t *testing.T) {
	p, err := Compile("!/^tmp/")
	assert.NoError(t, err)
	assert.Equal(t, "!/^tmp/", p.String())
	assert.True(t, p.Match("/var"))
	assert.False(t, p.Match("tmpfs"))

	_, err = Compile("/[/")
	assert.Error(t, err)
}

func TestStrings(t *testing.T) {
	got := Strings([]string{"eth0", "lo", "docker0", "eth1"}, []string{"/^eth/", "lo"})
	assert.Equal(t, []string{"eth0", "lo", "eth1"}, got)
	assert.Empty(t, Strings([]string{"a"}, nil))
}

func TestPass(t *testing.T) {
	tests := []struct {
		name       string
		value      string
		exclusions []string
		want       bool
	}{
		{"no exclusions", "kube-system", nil, true},
		{"excluded", "kube-system", []string{"^kube-", "^openshift-"}, false},
		{"kept", "default", []string{"^kube-", "^openshift-"}, true},
		{"invalid expression", "x", []string{"("}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Pass(tt.value, tt.exclusions))
		})
	}
}
