package links

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/jpl-au/sitenav/internal/route"
	"github.com/jpl-au/sitenav/internal/site"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// completeDocs returns a docs tree with a page for every descriptor link.
func completeDocs(s *site.Site) fstest.MapFS {
	fsys := fstest.MapFS{}
	for _, ref := range s.Links() {
		if ref.External() {
			continue
		}
		fsys[route.ToFile(ref.Link)] = &fstest.MapFile{Data: []byte("# " + ref.Text + "\n")}
	}
	return fsys
}

func TestCheck_IgnoreDeadLinks(t *testing.T) {
	s := site.Default()
	require.True(t, s.IgnoreDeadLinks)

	r, err := Check(context.Background(), s, fstest.MapFS{}, Options{})
	require.NoError(t, err)
	assert.True(t, r.Skipped)
	assert.Zero(t, r.Checked)
	assert.NoError(t, r.Err())
}

func TestCheck_Descriptor(t *testing.T) {
	s := site.Default()

	t.Run("all present", func(t *testing.T) {
		r, err := Check(context.Background(), s, completeDocs(s), Options{Force: true})
		require.NoError(t, err)
		assert.False(t, r.Skipped)
		// 4 nav + 22 sidebar items; the social link is external.
		assert.Equal(t, 26, r.Checked)
		assert.Empty(t, r.Dead)
		assert.NoError(t, r.Err())
	})

	t.Run("missing page", func(t *testing.T) {
		docs := completeDocs(s)
		delete(docs, "api/odoo-integration.md")

		r, err := Check(context.Background(), s, docs, Options{Force: true})
		require.NoError(t, err)
		require.Len(t, r.Dead, 1)
		assert.Equal(t, DeadLink{
			Source:   SourceDescriptor,
			Location: `themeConfig.sidebar["/api/"][0].items[2]`,
			Link:     "/api/odoo-integration",
			Target:   "/api/odoo-integration",
		}, r.Dead[0])
		assert.ErrorIs(t, r.Err(), ErrDeadLinks)
	})

	t.Run("checked when not ignored", func(t *testing.T) {
		strict := site.Default()
		strict.IgnoreDeadLinks = false

		r, err := Check(context.Background(), strict, fstest.MapFS{}, Options{})
		require.NoError(t, err)
		assert.Len(t, r.Dead, 26)
	})
}

func TestCheck_Pages(t *testing.T) {
	s := site.Default()
	docs := completeDocs(s)
	docs["api/endpoints.md"] = &fstest.MapFile{Data: []byte(strings.Join([]string{
		"# Endpoints",
		"",
		"See [Odoo](odoo-integration) and [build](../deployment/build.md).",
		"Jump to [auth](#auth) or the [repo](https://github.com/example/repo).",
		"Broken: [stores](/architecture/store) and [diagram](./flow.svg).",
	}, "\n"))}

	r, err := Check(context.Background(), s, docs, Options{Force: true, Pages: true})
	require.NoError(t, err)

	var dead []string
	for _, d := range r.Dead {
		dead = append(dead, d.Source+" "+d.Link+" -> "+d.Target)
	}
	assert.Equal(t, []string{
		"api/endpoints.md /architecture/store -> /architecture/store",
		"api/endpoints.md ./flow.svg -> /api/flow.svg",
	}, dead)
}

func TestCheck_Cancelled(t *testing.T) {
	s := site.Default()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Check(ctx, s, completeDocs(s), Options{Force: true, Pages: true})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExtract(t *testing.T) {
	hrefs, err := Extract(strings.NewReader(`<p><a href="/a">A</a> <a>none</a> <a href="">empty</a><img src="/x.png"><a class="c" href="b#frag">B</a></p>`))
	require.NoError(t, err)
	assert.Equal(t, []string{"/a", "b#frag"}, hrefs)
}
