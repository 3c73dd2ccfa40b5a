// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) string
		want  Store
	}{
		{
			name: "reads key files and trims whitespace",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, APIToken, "  tok_abc123  \n")
				writeFile(t, dir, ServerToken, "srv_xyz")
				return dir
			},
			want: Store{APIToken: "tok_abc123", ServerToken: "srv_xyz"},
		},
		{
			name: "returns empty store for nonexistent directory",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "does-not-exist")
			},
			want: Store{},
		},
		{
			name: "skips empty, hidden and directory entries",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, APIToken, "valid")
				writeFile(t, dir, "empty", "")
				writeFile(t, dir, ".hidden", "secret")
				require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))
				return dir
			},
			want: Store{APIToken: "valid"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var warn bytes.Buffer
			got, err := Load(tt.setup(t), &warn)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Empty(t, warn.String())
		})
	}
}

func TestStore_Lookup(t *testing.T) {
	s := Store{APIToken: "from-file"}
	assert.Equal(t, "from-file", s.Lookup(APIToken, ""))
	assert.Equal(t, "from-flag", s.Lookup(APIToken, "from-flag"))
	assert.Empty(t, s.Lookup(ServerToken, ""))
}

func TestStore_Keys(t *testing.T) {
	s := Store{ServerToken: "b", APIToken: "a"}
	assert.Equal(t, []string{APIToken, ServerToken}, s.Keys())
}
