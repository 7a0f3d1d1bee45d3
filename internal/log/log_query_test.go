package log

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuery(t *testing.T) {
	useTempDB(t)
	ctx := context.Background()

	_, err := Query(ctx, Filter{})
	require.ErrorIs(t, err, ErrNotOpen)

	require.NoError(t, Open())
	old := time.Now().Add(-48 * time.Hour).Unix()

	SetProject("/work/a")
	Log(Entry{Source: "nav:show", Action: "show", Start: old, End: old, Success: true})
	Log(Entry{Source: "nav:sidebar", Action: "resolve", Path: "/components/forms", Target: "/components/", Start: time.Now().Unix(), Success: true})
	SetProject("/work/b")
	Log(Entry{Source: "publish:build", Action: "build", Count: 3, Start: time.Now().Unix(), Error: "boom", Detail: map[string]any{"workers": 4}})
	Log(Entry{Source: "nav_x", Action: "literal underscore", Start: time.Now().Unix(), Success: true})

	t.Run("newest first", func(t *testing.T) {
		got, err := Query(ctx, Filter{})
		require.NoError(t, err)
		require.Len(t, got, 4)
		assert.Equal(t, "nav_x", got[0].Source)
		assert.Equal(t, "nav:show", got[3].Source)
	})

	t.Run("project", func(t *testing.T) {
		got, err := Query(ctx, Filter{Project: "/work/b"})
		require.NoError(t, err)
		require.Len(t, got, 2)

		build := got[1]
		assert.Equal(t, "publish:build", build.Source)
		assert.Equal(t, 3, build.Count)
		assert.False(t, build.Success)
		assert.Equal(t, "boom", build.Error)
		assert.Equal(t, map[string]any{"workers": float64(4)}, build.Detail)
	})

	t.Run("source prefix", func(t *testing.T) {
		got, err := Query(ctx, Filter{Source: "nav:"})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "/components/", got[0].Target)

		// Underscore is matched literally.
		got, err = Query(ctx, Filter{Source: "nav_"})
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("since and limit", func(t *testing.T) {
		got, err := Query(ctx, Filter{Since: 24 * time.Hour})
		require.NoError(t, err)
		assert.Len(t, got, 3)

		got, err = Query(ctx, Filter{Limit: 1})
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})
}

func TestPrune(t *testing.T) {
	useTempDB(t)
	ctx := context.Background()
	require.NoError(t, Open())

	old := time.Now().Add(-40 * 24 * time.Hour).Unix()
	Log(Entry{Source: "nav:show", Action: "show", Start: old, End: old, Success: true})
	Log(Entry{Source: "nav:show", Action: "show", Start: time.Now().Unix(), Success: true})

	n, err := Prune(ctx, 30*24*time.Hour, true)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, err := Query(ctx, Filter{})
	require.NoError(t, err)
	assert.Len(t, got, 2, "dry run deletes nothing")

	n, err = Prune(ctx, 30*24*time.Hour, false)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, err = Query(ctx, Filter{})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
