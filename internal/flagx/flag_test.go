package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		allowedFlags []string
		want         []string
	}{
		{
			name:         "separate value",
			args:         []string{"-c", "client.json", "-a", "http://localhost:8000"},
			allowedFlags: []string{"-c", "-config"},
			want:         []string{"-c", "client.json"},
		},
		{
			name:         "equals form",
			args:         []string{"-config=alt.json", "-d", "session.db"},
			allowedFlags: []string{"-c", "-config"},
			want:         []string{"-config=alt.json"},
		},
		{
			name:         "unknown flags and positionals ignored",
			args:         []string{"-x", "1", "-y=2", "positional"},
			allowedFlags: []string{"-c"},
			want:         []string{},
		},
		{
			name:         "trailing flag without value",
			args:         []string{"-c"},
			allowedFlags: []string{"-c"},
			want:         []string{"-c"},
		},
		{
			name:         "next dash token is not a value",
			args:         []string{"-c", "-config=alt.json"},
			allowedFlags: []string{"-c", "-config"},
			want:         []string{"-c", "-config=alt.json"},
		},
		{
			name:         "several allowed flags keep order",
			args:         []string{"-a", "http://api:8000", "-l", "debug", "-d", "s.db"},
			allowedFlags: []string{"-a", "-d"},
			want:         []string{"-a", "http://api:8000", "-d", "s.db"},
		},
		{
			name:         "empty args",
			args:         []string{},
			allowedFlags: []string{"-c"},
			want:         []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowedFlags))
		})
	}
}

func TestJsonConfigFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("short", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", "/etc/gynecare/client.json"}
		assert.Equal(t, "/etc/gynecare/client.json", JsonConfigFlags())
	})

	t.Run("long", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", "/tmp/long.json"}
		assert.Equal(t, "/tmp/long.json", JsonConfigFlags())
	})

	t.Run("absent", func(t *testing.T) {
		os.Args = []string{"testbin", "-a", "http://localhost:8000"}
		assert.Empty(t, JsonConfigFlags())
	})

	t.Run("last wins", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", "/1.json", "-config", "/2.json"}
		assert.Equal(t, "/2.json", JsonConfigFlags())
	})
}

func TestEnvFileFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"testbin", "-c", "client.json", "-env", ".env.local"}
	assert.Equal(t, ".env.local", EnvFileFlags())

	os.Args = []string{"testbin", "-e=prod.env"}
	assert.Equal(t, "prod.env", EnvFileFlags())

	os.Args = []string{"testbin"}
	assert.Empty(t, EnvFileFlags())
}
