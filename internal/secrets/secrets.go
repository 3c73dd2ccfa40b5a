// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads credentials from a directory of plain-text files.
// Each file is one secret: the filename is the key and the trimmed file
// contents are the value.
//
// Known keys: api-token (bearer token for the project REST services) and
// server-token (token the development server requires from clients).
package secrets

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	APIToken    = "api-token"
	ServerToken = "server-token"
)

// Store holds loaded secrets by key.
type Store map[string]string

// Load reads all files in dir. A missing directory is not an error; Load
// returns an empty Store. Unreadable files produce a warning on warn but
// do not abort. Hidden files and subdirectories are skipped.
func Load(dir string, warn io.Writer) (Store, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return Store{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	s := make(Store)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(warn, "warning: could not read secret %s: %v\n", name, err)
			continue
		}
		if value := strings.TrimSpace(string(data)); value != "" {
			s[name] = value
		}
	}
	return s, nil
}

// Lookup returns the secret for key, or fallback when fallback is non-empty.
// An explicitly configured value always wins over the secrets directory.
func (s Store) Lookup(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	return s[key]
}

// Keys returns the loaded key names in sorted order, never their values.
func (s Store) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
