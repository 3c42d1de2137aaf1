package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func findStringFlag(flags []cli.Flag, name string) *cli.StringFlag {
	for _, flag := range flags {
		if f, ok := flag.(*cli.StringFlag); ok && f.Name == name {
			return f
		}
	}
	return nil
}

func TestCorpusFlags(t *testing.T) {
	flags := corpusFlags()

	t.Run("data is required", func(t *testing.T) {
		dataFlag := findStringFlag(flags, "data")
		require.NotNil(t, dataFlag)
		assert.True(t, dataFlag.Required)
		assert.Contains(t, dataFlag.Aliases, "d")
	})

	t.Run("cache has default value", func(t *testing.T) {
		cacheFlag := findStringFlag(flags, "cache")
		require.NotNil(t, cacheFlag)
		assert.Equal(t, "./embedding_cache", cacheFlag.Value)
	})

	t.Run("flat-index defaults off", func(t *testing.T) {
		var flatFlag *cli.BoolFlag
		for _, flag := range flags {
			if f, ok := flag.(*cli.BoolFlag); ok && f.Name == "flat-index" {
				flatFlag = f
				break
			}
		}
		require.NotNil(t, flatFlag)
		assert.False(t, flatFlag.Value)
	})
}

func TestEmbeddingFlags(t *testing.T) {
	flags := embeddingFlags()

	t.Run("embedding-host has default value", func(t *testing.T) {
		hostFlag := findStringFlag(flags, "embedding-host")
		require.NotNil(t, hostFlag)
		assert.Equal(t, "http://localhost:11434/v1", hostFlag.Value)
	})

	t.Run("embedding-model has default value", func(t *testing.T) {
		modelFlag := findStringFlag(flags, "embedding-model")
		require.NotNil(t, modelFlag)
		assert.Equal(t, "embeddinggemma", modelFlag.Value)
	})
}

func TestBuildCommandValidation(t *testing.T) {
	app := &cli.App{
		Name: "searchit",
		Commands: []*cli.Command{
			{
				Name:   "build",
				Action: buildCommand,
				Flags:  append(corpusFlags(), embeddingFlags()...),
			},
		},
	}

	t.Run("missing data flag fails", func(t *testing.T) {
		err := app.Run([]string{"searchit", "build"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "data")
	})
}

func TestSearchCommandValidation(t *testing.T) {
	app := &cli.App{
		Name: "searchit",
		Commands: []*cli.Command{
			{
				Name:   "search",
				Action: searchCommand,
				Flags:  append(corpusFlags(), embeddingFlags()...),
			},
		},
	}

	t.Run("missing query fails", func(t *testing.T) {
		err := app.Run([]string{"searchit", "search", "--data", t.TempDir()})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "query is required")
	})
}

func TestSetupLogger(t *testing.T) {
	newApp := func() *cli.App {
		return &cli.App{
			Name: "test",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "log-level",
					Value: "info",
				},
			},
			Before: setupLogger,
			Action: func(c *cli.Context) error {
				return nil
			},
		}
	}

	t.Run("valid log levels", func(t *testing.T) {
		for _, level := range []string{"debug", "info", "warn", "error"} {
			t.Run(level, func(t *testing.T) {
				err := newApp().Run([]string{"test", "--log-level", level})
				require.NoError(t, err)
			})
		}
	})

	t.Run("case insensitive log levels", func(t *testing.T) {
		for _, level := range []string{"DEBUG", "Info", "WaRn", "ERROR"} {
			t.Run(level, func(t *testing.T) {
				err := newApp().Run([]string{"test", "--log-level", level})
				require.NoError(t, err)
			})
		}
	})

	t.Run("invalid log level returns error", func(t *testing.T) {
		err := newApp().Run([]string{"test", "--log-level", "invalid"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})
}
