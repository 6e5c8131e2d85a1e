package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// storeFactories builds each Store implementation against fresh backing
// storage so the contract tests run over both.
func storeFactories(t *testing.T) map[string]func(t *testing.T) Store {
	t.Helper()
	return map[string]func(t *testing.T) Store{
		"memory": func(t *testing.T) Store {
			return NewMemory()
		},
		"sqlite": func(t *testing.T) Store {
			s, err := OpenSQLite(filepath.Join(t.TempDir(), "store.db"))
			require.NoError(t, err)
			return s
		},
	}
}

func TestStore_Contract(t *testing.T) {
	for name, factory := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			s := factory(t)
			defer func() { require.NoError(t, s.Close()) }()

			_, ok, err := s.Get("missing")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, s.Set("k", "v1"))
			v, ok, err := s.Get("k")
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, "v1", v)

			// Overwrite
			require.NoError(t, s.Set("k", "v2"))
			v, _, err = s.Get("k")
			require.NoError(t, err)
			assert.Equal(t, "v2", v)

			// Empty values are stored, not treated as absent
			require.NoError(t, s.Set("empty", ""))
			v, ok, err = s.Get("empty")
			require.NoError(t, err)
			require.True(t, ok)
			assert.Empty(t, v)

			require.NoError(t, s.Delete("k"))
			_, ok, err = s.Get("k")
			require.NoError(t, err)
			assert.False(t, ok)

			// Deleting an absent key is a no-op
			require.NoError(t, s.Delete("k"))
		})
	}
}

func TestSQLite_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.db")

	s, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(KeyState, `{"userRole":"business"}`))
	require.NoError(t, s.Close())

	s, err = OpenSQLite(path)
	require.NoError(t, err)
	defer func() { require.NoError(t, s.Close()) }()

	v, ok, err := s.Get(KeyState)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"userRole":"business"}`, v)
}
