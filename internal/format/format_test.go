package format

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/jpl-au/sitenav/internal/links"
	"github.com/jpl-au/sitenav/internal/log"
	"github.com/jpl-au/sitenav/internal/site"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTree(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, Tree(&b, site.Default()))
	out := b.String()

	assert.True(t, strings.HasPrefix(out, "EcoDev Configurator\n├── nav\n│   ├── Home  /\n"))
	assert.Contains(t, out, "│   ├── /components/\n│   │   └── Components\n│   │       ├── Overview  /components/\n")
	assert.Contains(t, out, "└── social\n    └── github  https://github.com/yourusername/ecodev-configurator\n")
}

func TestRoutes(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, Routes(&b, []string{"/", "/api/endpoints", "/components/", "/components/forms"}))

	want := `/
├── api/
│   └── endpoints
└── components/
    └── forms
`
	assert.Equal(t, want, b.String())
}

func TestProblems(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, Problems(&b, nil))
	assert.Equal(t, "descriptor is valid\n", b.String())

	b.Reset()
	s := site.Default()
	s.ThemeConfig.Nav[0].Text = ""
	require.NoError(t, Problems(&b, s.Problems()))
	assert.Contains(t, b.String(), "themeConfig.nav[0]: missing text\n")
	assert.Contains(t, b.String(), "1 problem(s)")
}

func TestDeadLinks(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, DeadLinks(&b, links.Report{Skipped: true}))
	assert.Contains(t, b.String(), "skipped")

	b.Reset()
	require.NoError(t, DeadLinks(&b, links.Report{Checked: 12}))
	assert.Equal(t, "12 links checked, none dead\n", b.String())

	b.Reset()
	require.NoError(t, DeadLinks(&b, links.Report{
		Checked: 3,
		Dead: []links.DeadLink{
			{Source: links.SourceDescriptor, Location: "themeConfig.nav[3]", Link: "/api/"},
			{Source: "components/forms.md", Location: "/components/forms", Link: "missing"},
		},
	}))
	want := `SOURCE               LOCATION            LINK
descriptor           themeConfig.nav[3]  /api/
components/forms.md  /components/forms   missing

2 of 3 links dead
`
	assert.Equal(t, want, b.String())
}

func TestMarkdown_NotTerminal(t *testing.T) {
	// Test binaries never have a terminal on stdout, so content is raw.
	var b bytes.Buffer
	require.NoError(t, Markdown(&b, "# Title\n\n**bold**\n", "dark"))
	assert.Equal(t, "# Title\n\n**bold**\n", b.String())
}

func TestLogEntries(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, LogEntries(&b, nil))
	assert.Equal(t, "No log entries\n", b.String())

	b.Reset()
	start := time.Date(2026, 3, 1, 9, 30, 0, 0, time.Local).Unix()
	require.NoError(t, LogEntries(&b, []log.Entry{
		{Source: "nav:sidebar", Action: "resolve", Path: "/components/forms", Target: "/components/", Start: start, Success: true},
		{Source: "publish:build", Action: "build", Target: "dist", Error: "dead links", Start: start},
	}))
	want := `TIME              SOURCE         ACTION   RESULT  DETAIL
2026-03-01 09:30  nav:sidebar    resolve  ok      /components/forms -> /components/
2026-03-01 09:30  publish:build  build    failed  dist: dead links
`
	assert.Equal(t, want, b.String())
}
