package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/ymatsuda/deck-ledger/internal/charts"
	"github.com/ymatsuda/deck-ledger/internal/config"
	"github.com/ymatsuda/deck-ledger/internal/export"
	"github.com/ymatsuda/deck-ledger/internal/normalize"
	"github.com/ymatsuda/deck-ledger/internal/stats"
	"github.com/ymatsuda/deck-ledger/internal/storage"
	"github.com/ymatsuda/deck-ledger/internal/storage/models"
	"github.com/ymatsuda/deck-ledger/internal/watch"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "record":
		runRecordCommand(os.Args[2:])
	case "list":
		runListCommand(os.Args[2:])
	case "summary":
		runSummaryCommand(os.Args[2:])
	case "focus":
		runFocusCommand(os.Args[2:])
	case "import":
		runImportCommand(os.Args[2:])
	case "export":
		runExportCommand(os.Args[2:])
	case "chart":
		runChartCommand(os.Args[2:])
	case "watch":
		runWatchCommand(os.Args[2:])
	case "migrate":
		runMigrationCommand(os.Args[2:])
	case "backup":
		runBackupCommand(os.Args[2:])
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Deck Ledger - match record tracker")
	fmt.Println("==================================")
	fmt.Println()
	fmt.Println("Usage: deck-ledger <command> [options]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  record     - Record a played match")
	fmt.Println("  list       - List stored match records")
	fmt.Println("  summary    - Show the cross-archetype summary")
	fmt.Println("  focus      - Show one archetype's overview and matchups")
	fmt.Println("  import     - Import records from a CSV file")
	fmt.Println("  export     - Export records or statistics to CSV/JSON")
	fmt.Println("  chart      - Render statistics as an HTML chart")
	fmt.Println("  watch      - Re-render the summary whenever the store changes")
	fmt.Println("  migrate    - Run database migrations")
	fmt.Println("  backup     - Create, list, verify or restore store backups")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  deck-ledger record -my-deck Zoo -my-type burn -opp-deck Control -opp-type draw-go -seat first -result win")
	fmt.Println("  deck-ledger summary -season 2025-spring")
	fmt.Println("  deck-ledger focus -deck Zoo -env store,tournament")
	fmt.Println("  deck-ledger import -file legacy.csv")
	fmt.Println("  deck-ledger export -type summary -format csv -out summary.csv")
	fmt.Println()
}

// dbPath resolves the database path: environment variable first, then the
// config file, then the default location.
func dbPath(cfg *config.Config) string {
	if p := os.Getenv("DECK_LEDGER_DB_PATH"); p != "" {
		return p
	}
	path, err := cfg.DatabasePath()
	if err != nil {
		log.Fatalf("Error resolving database path: %v", err)
	}
	return path
}

func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config, using defaults: %v\n", err)
		return config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: invalid config, using defaults: %v\n", err)
		return config.DefaultConfig()
	}
	return cfg
}

// openService opens the record store read-write. Fatal on failure: commands
// that mutate the store must not run against a broken one.
func openService(cfg *config.Config) *storage.Service {
	svc, err := storage.NewService(dbPath(cfg))
	if err != nil {
		log.Fatalf("Error opening record store: %v", err)
	}
	return svc
}

// loadRecords loads every record for a read-only view. A store that cannot
// be opened or read degrades to an empty table with a warning, so the views
// still render.
func loadRecords(cfg *config.Config) []*models.MatchRecord {
	svc, err := storage.NewService(dbPath(cfg))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: record store unavailable, showing empty table: %v\n", err)
		return nil
	}
	defer func() { _ = svc.Close() }()

	records, err := svc.LoadAll(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to read records, showing empty table: %v\n", err)
		return nil
	}
	return records
}

// filterFlags registers the shared -season and -env filter flags.
func filterFlags(fs *flag.FlagSet) (season, envs *string) {
	season = fs.String("season", "", "Only include records from this season")
	envs = fs.String("env", "", "Comma-separated environments to include (empty = all)")
	return season, envs
}

func buildFilter(season, envs string) models.RecordFilter {
	var filter models.RecordFilter
	if season != "" {
		filter.Season = &season
	}
	if envs != "" {
		for _, env := range strings.Split(envs, ",") {
			if env = strings.TrimSpace(env); env != "" {
				filter.Environments = append(filter.Environments, env)
			}
		}
	}
	return filter
}

func runRecordCommand(args []string) {
	fs := flag.NewFlagSet("record", flag.ExitOnError)
	season := fs.String("season", "", "Season (defaults to the configured season)")
	env := fs.String("env", "", "Environment (defaults to the configured environment)")
	date := fs.String("date", "", "Match date, YYYY-MM-DD (defaults to today)")
	myDeck := fs.String("my-deck", "", "Your deck archetype (required)")
	myType := fs.String("my-type", "", "Your deck build/type (required)")
	oppDeck := fs.String("opp-deck", "", "Opponent deck archetype (required)")
	oppType := fs.String("opp-type", "", "Opponent deck build/type (required)")
	seat := fs.String("seat", "", "Turn order: first or second (required)")
	result := fs.String("result", "", "Match result: win or loss (required)")
	turn := fs.Int("turn", 0, "Turn the game finished on (optional)")
	memo := fs.String("memo", "", "Free-form note (optional)")
	_ = fs.Parse(args)

	cfg := loadConfig()
	if *season == "" {
		*season = cfg.Entry.DefaultSeason
	}
	if *env == "" {
		*env = cfg.Entry.DefaultEnvironment
	}

	rec := &models.MatchRecord{
		Season:           *season,
		Environment:      *env,
		MyDeck:           *myDeck,
		MyDeckType:       *myType,
		OpponentDeck:     *oppDeck,
		OpponentDeckType: *oppType,
	}

	if *date == "" {
		now := time.Now()
		d := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		rec.Date = &d
	} else if d := normalize.ParseDate(*date); d != nil {
		rec.Date = d
	} else {
		log.Fatalf("Unrecognized date: %q", *date)
	}

	var ok bool
	if rec.Result, ok = normalize.ParseResult(*result); !ok {
		log.Fatalf("Result must be %q or %q, got %q", models.ResultWin, models.ResultLoss, *result)
	}
	if rec.FirstSecond, ok = normalize.ParseInitiative(*seat); !ok {
		log.Fatalf("Seat must be %q or %q, got %q", models.WentFirst, models.WentSecond, *seat)
	}
	if *turn > 0 {
		rec.FinishTurn = turn
	}
	rec.Memo = *memo

	svc := openService(cfg)
	defer func() { _ = svc.Close() }()

	if err := svc.Append(context.Background(), rec); err != nil {
		log.Fatalf("Error recording match: %v", err)
	}
	fmt.Printf("Recorded match #%d: %s vs %s (%s)\n", rec.ID, rec.MyDeck, rec.OpponentDeck, rec.Result)
}

func runListCommand(args []string) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	season, envs := filterFlags(fs)
	limit := fs.Int("limit", 0, "Show at most this many records, newest last (0 = all)")
	_ = fs.Parse(args)

	cfg := loadConfig()
	records := stats.ApplyFilter(loadRecords(cfg), buildFilter(*season, *envs))
	if *limit > 0 && len(records) > *limit {
		records = records[len(records)-*limit:]
	}
	displayRecords(records)
}

func runSummaryCommand(args []string) {
	fs := flag.NewFlagSet("summary", flag.ExitOnError)
	season, envs := filterFlags(fs)
	_ = fs.Parse(args)

	cfg := loadConfig()
	records := stats.ApplyFilter(loadRecords(cfg), buildFilter(*season, *envs))
	displaySummary(stats.Summary(records), *season)
}

func runFocusCommand(args []string) {
	fs := flag.NewFlagSet("focus", flag.ExitOnError)
	season, envs := filterFlags(fs)
	deck := fs.String("deck", "", "Focus archetype (required)")
	deckType := fs.String("type", "", "Narrow the focus to one build of the archetype")
	memos := fs.Bool("memos", false, "Also list the archetype's memo records")
	_ = fs.Parse(args)

	if *deck == "" {
		log.Fatal("Flag -deck is required")
	}
	var typeFilter *string
	if *deckType != "" {
		typeFilter = deckType
	}

	cfg := loadConfig()
	records := stats.ApplyFilter(loadRecords(cfg), buildFilter(*season, *envs))

	displayOverview(stats.Overview(records, *deck, typeFilter))
	fmt.Println()
	displayMatchups(stats.Matchups(records, *deck, typeFilter))
	if *memos {
		fmt.Println()
		displayMemos(stats.MemoRecords(records, *deck, typeFilter))
	}
}

func runImportCommand(args []string) {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	file := fs.String("file", "", "CSV file to import (required)")
	dryRun := fs.Bool("dry-run", false, "Parse and report without writing anything")
	_ = fs.Parse(args)

	if *file == "" {
		log.Fatal("Flag -file is required")
	}

	res, err := export.ReadRecordsCSV(*file)
	if err != nil {
		log.Fatalf("Error reading %s: %v", *file, err)
	}
	for _, warning := range res.Warnings {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", warning)
	}
	fmt.Printf("Parsed %d records from %s\n", len(res.Records), *file)

	if *dryRun || len(res.Records) == 0 {
		return
	}

	cfg := loadConfig()
	svc := openService(cfg)
	defer func() { _ = svc.Close() }()

	appended, importWarnings, err := svc.ImportAll(context.Background(), res.Records)
	for _, warning := range importWarnings {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", warning)
	}
	if err != nil {
		log.Fatalf("Error importing records: %v", err)
	}
	if skipped := len(res.Records) - appended; skipped > 0 {
		fmt.Printf("Imported %d records (%d skipped)\n", appended, skipped)
	} else {
		fmt.Printf("Imported %d records\n", appended)
	}
}

func runExportCommand(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	season, envs := filterFlags(fs)
	exportType := fs.String("type", "records", "What to export: records, summary or matchups")
	format := fs.String("format", "csv", "Output format: csv or json")
	out := fs.String("out", "", "Output file (defaults to a timestamped name)")
	deck := fs.String("deck", "", "Focus archetype (required for -type matchups)")
	overwrite := fs.Bool("overwrite", false, "Overwrite the output file if it exists")
	pretty := fs.Bool("pretty", false, "Indent JSON output")
	_ = fs.Parse(args)

	exportFormat := export.Format(*format)
	if exportFormat != export.FormatCSV && exportFormat != export.FormatJSON {
		log.Fatalf("Unsupported format: %s", *format)
	}
	if *out == "" {
		*out = export.GenerateFilename(*exportType, exportFormat)
	}

	cfg := loadConfig()
	if cfg.Export.Dir != "" && !filepath.IsAbs(*out) {
		*out = filepath.Join(cfg.Export.Dir, *out)
	}

	records := stats.ApplyFilter(loadRecords(cfg), buildFilter(*season, *envs))
	opts := export.Options{Format: exportFormat, FilePath: *out, PrettyJSON: *pretty, Overwrite: *overwrite}

	var err error
	switch *exportType {
	case "records":
		err = export.ExportRecords(records, opts)
	case "summary":
		err = export.ExportSummary(stats.Summary(records), opts)
	case "matchups":
		if *deck == "" {
			log.Fatal("Flag -deck is required for -type matchups")
		}
		err = export.ExportMatchups(*deck, stats.Matchups(records, *deck, nil), opts)
	default:
		log.Fatalf("Unsupported export type: %s", *exportType)
	}
	if err != nil {
		log.Fatalf("Error exporting %s: %v", *exportType, err)
	}
	fmt.Printf("Exported %s to %s\n", *exportType, *out)
}

func runChartCommand(args []string) {
	fs := flag.NewFlagSet("chart", flag.ExitOnError)
	season, envs := filterFlags(fs)
	chartType := fs.String("type", "summary", "What to chart: summary or matchups")
	deck := fs.String("deck", "", "Focus archetype (required for -type matchups)")
	out := fs.String("out", "", "Output HTML file (defaults to a timestamped name)")
	open := fs.Bool("open", false, "Open the chart in the default browser")
	_ = fs.Parse(args)

	if *out == "" {
		*out = fmt.Sprintf("chart_%s_%s.html", *chartType, time.Now().Format("20060102_150405"))
	}

	cfg := loadConfig()
	records := stats.ApplyFilter(loadRecords(cfg), buildFilter(*season, *envs))

	var err error
	switch *chartType {
	case "summary":
		err = charts.RenderSummaryChart(stats.Summary(records), *out)
	case "matchups":
		if *deck == "" {
			log.Fatal("Flag -deck is required for -type matchups")
		}
		err = charts.RenderMatchupChart(*deck, stats.Matchups(records, *deck, nil), *out)
	default:
		log.Fatalf("Unsupported chart type: %s", *chartType)
	}
	if err != nil {
		log.Fatalf("Error rendering chart: %v", err)
	}
	fmt.Printf("Chart written to %s\n", *out)

	if *open {
		if err := charts.OpenInBrowser(*out); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to open browser: %v\n", err)
		}
	}
}

func runWatchCommand(args []string) {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	season, envs := filterFlags(fs)
	_ = fs.Parse(args)

	cfg := loadConfig()
	interval, err := cfg.GetPollInterval()
	if err != nil {
		interval = 2 * time.Second
	}
	filter := buildFilter(*season, *envs)

	watcher, err := watch.New(watch.Config{
		Path:         dbPath(cfg),
		PollInterval: interval,
		UseFsnotify:  cfg.Watch.UseFsnotify,
		OnChange: func() error {
			records := stats.ApplyFilter(loadRecords(cfg), filter)
			fmt.Print("\033[H\033[2J") // clear screen
			displaySummary(stats.Summary(records), *season)
			fmt.Printf("\nWatching for changes (Ctrl+C to stop), updated %s\n", time.Now().Format("15:04:05"))
			return nil
		},
	})
	if err != nil {
		log.Fatalf("Error creating watcher: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		watcher.Stop()
	}()

	if err := watcher.Start(ctx); err != nil && err != context.Canceled {
		log.Fatalf("Watch failed: %v", err)
	}
}
