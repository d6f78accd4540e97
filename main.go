package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/lithammer/dedent"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/boataniq/boataniq/config"
	"github.com/boataniq/boataniq/internal/catalog"
	"github.com/boataniq/boataniq/internal/history"
	"github.com/boataniq/boataniq/internal/llm"
	"github.com/boataniq/boataniq/internal/pipeline"
	"github.com/boataniq/boataniq/internal/vision"
)

const defaultHistoryPath = "analysis_history.json"

var usage = strings.TrimSpace(dedent.Dedent(`
	usage: boataniq <command> [args]

	commands:
	  analyze <image>       analyze a boat image with the AI backend
	  lookup <boat-id>      synthesize an analysis from a catalog record
	  search <query>        find a catalog boat by brand or model and analyze it
	  history               list stored analysis history
	  history <id>          show one history entry
	  history delete <id>   delete a history entry
	  status                report component availability
`))

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	config.LoadEnvFile()

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	ctx := context.Background()
	app := buildApp(ctx)
	defer func() {
		if app.Catalog != nil {
			app.Catalog.Close()
		}
	}()

	if err := run(ctx, app, os.Args[1], os.Args[2:]); err != nil {
		log.Fatal().Err(err).Msg("Command failed")
	}
}

// buildApp assembles the application context from the environment. Every
// component is optional; commands report the one they are missing.
func buildApp(ctx context.Context) *pipeline.App {
	app := &pipeline.App{}

	analyzer, err := llm.Select(ctx)
	if err != nil {
		if errors.Is(err, llm.ErrNoAnalyzer) {
			log.Warn().Msg("No AI backend configured, image analysis disabled")
		} else {
			log.Warn().Err(err).Msg("Failed to initialize AI backend")
		}
	} else {
		info := analyzer.ModelInfo()
		log.Info().Str("model", info.ModelName).Str("provider", info.Provider).Msg("AI backend ready")
		app.Analyzer = analyzer
	}

	if dbPath := os.Getenv("BOAT_DB_PATH"); dbPath != "" {
		store, err := catalog.NewSQLiteStore(dbPath)
		if err != nil {
			log.Warn().Err(err).Str("path", dbPath).Msg("Failed to open boat catalog")
		} else {
			app.Catalog = store
			if app.Analyzer != nil {
				app.Analyzer = llm.NewCachedAnalyzer(app.Analyzer, store)
			}
		}
	}

	if serviceURL := os.Getenv("VISION_SERVICE_URL"); serviceURL != "" {
		app.Preprocessor = vision.NewClient(vision.ClientOpts{BaseURL: serviceURL})
	}

	historyPath := os.Getenv("HISTORY_PATH")
	if historyPath == "" {
		historyPath = defaultHistoryPath
	}
	app.History = history.NewStore(historyPath)

	return app
}

func run(ctx context.Context, app *pipeline.App, command string, args []string) error {
	switch command {
	case "analyze":
		if len(args) != 1 {
			return fmt.Errorf("usage: boataniq analyze <image>")
		}
		imageData, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read image: %w", err)
		}
		resp, err := app.AnalyzeImage(ctx, imageData, args[0])
		if err != nil {
			return err
		}
		return printJSON(resp)

	case "lookup":
		if len(args) != 1 {
			return fmt.Errorf("usage: boataniq lookup <boat-id>")
		}
		resp, err := app.AnalyzeText(ctx, args[0], false)
		if err != nil {
			return err
		}
		return printJSON(resp)

	case "search":
		if len(args) != 1 {
			return fmt.Errorf("usage: boataniq search <query>")
		}
		resp, err := app.AnalyzeText(ctx, args[0], true)
		if err != nil {
			return err
		}
		return printJSON(resp)

	case "history":
		return runHistory(app, args)

	case "status":
		return printJSON(app.Status(ctx))

	default:
		fmt.Fprintln(os.Stderr, usage)
		return fmt.Errorf("unknown command: %s", command)
	}
}

func runHistory(app *pipeline.App, args []string) error {
	switch {
	case len(args) == 0:
		return printJSON(app.History.List())
	case args[0] == "delete":
		if len(args) != 2 {
			return fmt.Errorf("usage: boataniq history delete <id>")
		}
		app.History.Delete(args[1])
		log.Info().Str("id", args[1]).Msg("History entry deleted")
		return nil
	case len(args) == 1:
		entry, err := app.History.Get(args[0])
		if err != nil {
			return err
		}
		return printJSON(entry)
	default:
		return fmt.Errorf("usage: boataniq history [delete] [id]")
	}
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
