package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "flag with separate value",
			args:    []string{"-c", "conf.json", "-u", "http://x"},
			allowed: []string{"-c"},
			want:    []string{"-c", "conf.json"},
		},
		{
			name:    "flag with equals",
			args:    []string{"-config=alt.json", "-u", "http://x"},
			allowed: []string{"-config"},
			want:    []string{"-config=alt.json"},
		},
		{
			name:    "order preserved",
			args:    []string{"-u=a", "-x", "1", "-d", "b"},
			allowed: []string{"-u", "-d"},
			want:    []string{"-u=a", "-d", "b"},
		},
		{
			name:    "unknown flags ignored",
			args:    []string{"-x", "1", "--y=2", "positional"},
			allowed: []string{"-c"},
			want:    []string{},
		},
		{
			name:    "flag at end without value",
			args:    []string{"-c"},
			allowed: []string{"-c"},
			want:    []string{"-c"},
		},
		{
			name:    "flag followed by another flag",
			args:    []string{"-c", "-u"},
			allowed: []string{"-c"},
			want:    []string{"-c"},
		},
		{
			name:    "nil args",
			args:    nil,
			allowed: []string{"-c"},
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterArgs(tt.args, tt.allowed)
			assert.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfigPath(t *testing.T) {
	assert.Equal(t, "a.json", ConfigPath([]string{"-c", "a.json"}))
	assert.Equal(t, "b.json", ConfigPath([]string{"-u", "x", "-config=b.json"}))
	assert.Equal(t, "c.json", ConfigPath([]string{"--config", "c.json"}))
	assert.Equal(t, "", ConfigPath([]string{"-u", "x"}))
	assert.Equal(t, "", ConfigPath(nil))
}
