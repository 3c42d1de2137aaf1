// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/poiesic/searchit"
	"github.com/poiesic/searchit/ai"
	"github.com/poiesic/searchit/core"
	"github.com/poiesic/searchit/search"
)

func main() {
	app := &cli.App{
		Name:  "searchit",
		Usage: "Semantic search over a directory of text documents",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before:   setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "build",
				Usage:  "Embed a document corpus and populate the embedding cache",
				Action: buildCommand,
				Flags:  append(corpusFlags(), embeddingFlags()...),
			},
			{
				Name:      "search",
				Usage:     "Search the corpus for documents similar to the query",
				ArgsUsage: "QUERY...",
				Action:    searchCommand,
				Flags: append(append(corpusFlags(), embeddingFlags()...),
					&cli.IntFlag{
						Name:    "top-k",
						Aliases: []string{"k"},
						Usage:   "Maximum number of results to return",
						Value:   5,
					},
					&cli.BoolFlag{
						Name:  "explain",
						Usage: "Attach keyword-overlap explanations to each result",
					},
				),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func corpusFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "data",
			Aliases:  []string{"d"},
			Usage:    "Path to the document directory",
			Required: true,
		},
		&cli.StringFlag{
			Name:    "cache",
			Aliases: []string{"c"},
			Usage:   "Path to the embedding cache",
			Value:   "./embedding_cache",
		},
		&cli.BoolFlag{
			Name:  "file-cache",
			Usage: "Store cached embeddings as JSON files instead of BadgerDB",
		},
		&cli.BoolFlag{
			Name:  "flat-index",
			Usage: "Use the flat inner-product index instead of exact scan",
		},
	}
}

func embeddingFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "embedding-host",
			Usage: "Embedding service host URL",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
			Value: "embeddinggemma",
		},
	}
}

func newService(c *cli.Context, opts ...searchit.ServiceOption) (*searchit.Service, error) {
	aiConfig := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
	)
	if err := aiConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}

	opts = append(opts, searchit.WithAIConfig(aiConfig))
	if c.Bool("file-cache") {
		opts = append(opts, searchit.WithFileCache())
	}
	if c.Bool("flat-index") {
		opts = append(opts, searchit.WithFlatIndex())
	}

	svc, err := searchit.NewService(c.String("cache"), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
	}
	return svc, nil
}

func buildCommand(c *cli.Context) error {
	ctx := context.Background()

	monitor := &search.CountingBuildMonitor{}
	svc, err := newService(c, searchit.WithBuildMonitor(monitor))
	if err != nil {
		return err
	}
	defer svc.Close()

	fmt.Fprintf(os.Stderr, "Data: %s\n", c.String("data"))
	fmt.Fprintf(os.Stderr, "Cache: %s\n", c.String("cache"))
	fmt.Fprintf(os.Stderr, "Embedding host: %s\n", c.String("embedding-host"))
	fmt.Fprintf(os.Stderr, "Embedding model: %s\n", c.String("embedding-model"))
	fmt.Fprintln(os.Stderr)

	if err := svc.Build(ctx, c.String("data")); err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	fmt.Printf("Indexed %d documents: %d cached, %d embedded, %d invalidated\n",
		monitor.Docs, monitor.Hits, monitor.NewVectors, monitor.Invalidated)
	return nil
}

func searchCommand(c *cli.Context) error {
	ctx := context.Background()

	query := strings.Join(c.Args().Slice(), " ")
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("query is required")
	}

	svc, err := newService(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	if err := svc.Build(ctx, c.String("data")); err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	topK := c.Int("top-k")
	var results []*core.SearchResult
	if c.Bool("explain") {
		results, err = svc.SearchWithExplanation(ctx, query, topK)
	} else {
		results, err = svc.Search(ctx, query, topK)
	}
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	fmt.Printf("Found %d hits\n", len(results))
	for i, hit := range results {
		fmt.Printf("%d: %s [%0.3f] %s\n", i+1, hit.DocId, hit.Score, hit.Preview)
		if hit.Explanation != nil {
			fmt.Printf("   keywords: %s (overlap %0.2f, length norm %0.2f)\n",
				strings.Join(hit.Explanation.MatchedKeywords, ", "),
				hit.Explanation.OverlapRatio,
				hit.Explanation.LengthNorm)
		}
	}
	return nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
