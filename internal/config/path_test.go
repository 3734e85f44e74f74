package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory available")
	}
	t.Setenv("BNB_TEST_DIR", "/var/data")

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"~", home},
		{"~/bnb.db", filepath.Join(home, "bnb.db")},
		{"$BNB_TEST_DIR/bnb.db", "/var/data/bnb.db"},
		{"/absolute/path", "/absolute/path"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExpandPath(tt.in), tt.in)
	}
}
