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
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/poiesic/folhabot"
	"github.com/poiesic/folhabot/ai"
	"github.com/poiesic/folhabot/ai/mock"
	"github.com/poiesic/folhabot/ai/openai"
	"github.com/poiesic/folhabot/corpus"
	"github.com/poiesic/folhabot/search"
)

func main() {
	app := &cli.App{
		Name:  "folhabot",
		Usage: "Payroll query assistant over a CSV dataset",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setup,
		Commands: []*cli.Command{
			{
				Name:   "chat",
				Usage:  "Interactive chat session over the dataset",
				Action: chatCommand,
				Flags: append(engineFlags(),
					&cli.StringFlag{
						Name:  "export",
						Usage: "Write the conversation export to this file on exit",
					},
				),
			},
			{
				Name:      "ask",
				Usage:     "Answer a single question and exit",
				ArgsUsage: "<question>",
				Action:    askCommand,
				Flags:     engineFlags(),
			},
			{
				Name:   "stats",
				Usage:  "Print dataset statistics",
				Action: statsCommand,
				Flags: []cli.Flag{
					dataFlag(),
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func dataFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "data",
		Aliases:  []string{"d"},
		Usage:    "Path to the payroll CSV dataset",
		Required: true,
		EnvVars:  []string{"FOLHABOT_DATA"},
	}
}

func engineFlags() []cli.Flag {
	return []cli.Flag{
		dataFlag(),
		&cli.BoolFlag{
			Name:  "mock",
			Usage: "Use the offline mock AI backend instead of a model server",
		},
		&cli.StringFlag{
			Name:    "embedding-host",
			Usage:   "Embedding service host URL",
			Value:   "http://localhost:11434/v1",
			EnvVars: []string{"FOLHABOT_EMBEDDING_HOST"},
		},
		&cli.StringFlag{
			Name:    "generator-host",
			Usage:   "Generator service host URL (defaults to embedding-host)",
			EnvVars: []string{"FOLHABOT_GENERATOR_HOST"},
		},
		&cli.StringFlag{
			Name:    "embedding-model",
			Usage:   "Embedding model name",
			Value:   "paraphrase-multilingual",
			EnvVars: []string{"FOLHABOT_EMBEDDING_MODEL"},
		},
		&cli.StringFlag{
			Name:    "generator-model",
			Usage:   "Generator model name",
			Value:   "qwen2.5:3b",
			EnvVars: []string{"FOLHABOT_GENERATOR_MODEL"},
		},
		&cli.Float64Flag{
			Name:  "temperature",
			Usage: "Generator sampling temperature",
			Value: 0.7,
		},
		&cli.IntFlag{
			Name:  "max-hits",
			Usage: "Maximum records cited per answer",
			Value: search.DefaultMaxHits,
		},
		&cli.Float64Flag{
			Name:  "threshold",
			Usage: "Minimum similarity for a record to be cited",
			Value: float64(search.DefaultThreshold),
		},
	}
}

func buildProvider(c *cli.Context) (ai.Provider, error) {
	if c.Bool("mock") {
		return mock.NewMockProvider(), nil
	}

	generatorHost := c.String("generator-host")
	if generatorHost == "" {
		generatorHost = c.String("embedding-host")
	}
	config := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithGeneratorHost(generatorHost),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithGeneratorModel(c.String("generator-model")),
		ai.WithTemperature(c.Float64("temperature")),
	)
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}
	return openai.NewProvider(config)
}

func buildEngine(ctx context.Context, c *cli.Context) (*folhabot.Engine, error) {
	dataPath := c.String("data")
	payroll, err := corpus.LoadFile(dataPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}

	provider, err := buildProvider(c)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(os.Stderr, "Dataset: %s (%d records)\n", dataPath, payroll.Len())
	engine, err := folhabot.NewEngine(ctx, payroll, provider,
		folhabot.WithMaxHits(c.Int("max-hits")),
		folhabot.WithThreshold(float32(c.Float64("threshold"))),
	)
	if err != nil {
		provider.Close()
		return nil, err
	}
	return engine, nil
}

func chatCommand(c *cli.Context) error {
	ctx := context.Background()

	engine, err := buildEngine(ctx, c)
	if err != nil {
		return err
	}
	defer engine.Close()

	fmt.Println("Assistente de folha de pagamento. Digite /sair para encerrar, /limpar para esquecer a conversa.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		switch input {
		case "/sair", "/exit":
			return finishChat(c, engine)
		case "/limpar":
			engine.Conversation().Clear()
			fmt.Println("Conversa esquecida.")
			continue
		}

		answer, err := respond(ctx, engine, input)
		if err != nil {
			fmt.Fprintf(os.Stderr, "erro: %v\n", err)
			continue
		}
		fmt.Println(answer)
		fmt.Println()
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	return finishChat(c, engine)
}

// respond routes one line of input: adjustment commands mutate the corpus,
// everything else goes through the query pipeline.
func respond(ctx context.Context, engine *folhabot.Engine, input string) (string, error) {
	if strings.HasPrefix(strings.ToLower(input), "reajuste") {
		return engine.ApplyAdjustment(ctx, input)
	}
	response, err := engine.ProcessQuery(ctx, input)
	if err != nil {
		return "", err
	}
	return response.Text, nil
}

func finishChat(c *cli.Context, engine *folhabot.Engine) error {
	exportPath := c.String("export")
	if exportPath == "" {
		return nil
	}

	export := engine.Conversation().Export()
	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode conversation export: %w", err)
	}
	if err := os.WriteFile(exportPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write conversation export: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Conversation exported to %s (%d turns)\n", exportPath, export.TotalTurns)
	return nil
}

func askCommand(c *cli.Context) error {
	question := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if question == "" {
		return fmt.Errorf("a question is required")
	}

	ctx := context.Background()
	engine, err := buildEngine(ctx, c)
	if err != nil {
		return err
	}
	defer engine.Close()

	answer, err := respond(ctx, engine, question)
	if err != nil {
		return err
	}
	fmt.Println(answer)
	return nil
}

func statsCommand(c *cli.Context) error {
	payroll, err := corpus.LoadFile(c.String("data"))
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}
	fmt.Println(payroll.Statistics().Format())
	return nil
}

func setup(c *cli.Context) error {
	// .env is optional; flags and real env vars win.
	_ = godotenv.Load()

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
