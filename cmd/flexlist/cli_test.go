package main_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	main "github.com/fwojciec/flexlist/cmd/flexlist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCLI_HelpShowsAllCommands(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	parser, err := kong.New(cli,
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Configuration(main.LoadYAMLConfig),
	)
	require.NoError(t, err)

	_, _ = parser.Parse([]string{"--help"})

	helpOutput := stdout.String()
	for _, cmd := range []string{"render", "query", "export", "browse", "import", "pages", "delete", "build"} {
		assert.Contains(t, helpOutput, cmd, "Help should mention %s command", cmd)
	}
}

func TestCLI_ParsesViewFlags(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	parser, err := kong.New(cli, kong.Exit(func(int) {}), kong.Configuration(main.LoadYAMLConfig))
	require.NoError(t, err)

	_, err = parser.Parse([]string{"query", "inventory",
		"-s", "lamp",
		"-f", "state=used", "-f", "state=a,b",
		"--sort", "item:desc",
		"-g", "state",
		"--page-size", "All",
	})
	require.NoError(t, err)

	q := cli.Query
	assert.Equal(t, "inventory", q.Name)
	assert.Equal(t, "lamp", q.Search)
	assert.Equal(t, []string{"state=used", "state=a,b"}, q.Filter)
	assert.Equal(t, []string{"item:desc"}, q.Sort)
	assert.Equal(t, "state", q.Group)
	assert.Equal(t, "All", q.PageSize)
	assert.Equal(t, 1, q.Page)
}

func TestLoadYAMLConfig(t *testing.T) {
	t.Parallel()

	t.Run("supplies flag defaults", func(t *testing.T) {
		t.Parallel()

		resolver, err := main.LoadYAMLConfig(strings.NewReader("locale: en\nsource_dir: /srv/pages\nno_cache: true\n"))
		require.NoError(t, err)

		cli := &main.CLI{}
		parser, err := kong.New(cli, kong.Exit(func(int) {}), kong.Configuration(main.LoadYAMLConfig), kong.Resolvers(resolver))
		require.NoError(t, err)

		_, err = parser.Parse([]string{"pages"})
		require.NoError(t, err)

		assert.Equal(t, "en", cli.Locale)
		assert.Equal(t, "/srv/pages", cli.SourceDir)
		assert.True(t, cli.NoCache)
	})

	t.Run("command line flags take precedence", func(t *testing.T) {
		t.Parallel()

		resolver, err := main.LoadYAMLConfig(strings.NewReader("locale: en\n"))
		require.NoError(t, err)

		cli := &main.CLI{}
		parser, err := kong.New(cli, kong.Exit(func(int) {}), kong.Configuration(main.LoadYAMLConfig), kong.Resolvers(resolver))
		require.NoError(t, err)

		_, err = parser.Parse([]string{"--locale", "ja", "pages"})
		require.NoError(t, err)

		assert.Equal(t, "ja", cli.Locale)
	})

	t.Run("accepts an empty file", func(t *testing.T) {
		t.Parallel()

		_, err := main.LoadYAMLConfig(strings.NewReader(""))
		require.NoError(t, err)
	})

	t.Run("rejects malformed yaml", func(t *testing.T) {
		t.Parallel()

		_, err := main.LoadYAMLConfig(strings.NewReader("locale: [en"))
		require.Error(t, err)
	})
}
