package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alexanderramin/daylist/internal/archive"
	"github.com/alexanderramin/daylist/internal/db"
	"github.com/alexanderramin/daylist/internal/domain"
	"github.com/alexanderramin/daylist/internal/gate"
	"github.com/alexanderramin/daylist/internal/httpapi"
	"github.com/alexanderramin/daylist/internal/llm"
	"github.com/alexanderramin/daylist/internal/repository"
	"github.com/alexanderramin/daylist/internal/service"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "daylist",
		Short:         "Personal todo tracker with date-folder archival and weekly reports",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var addr, dbPath string

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the daylist web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(addr, dbPath)
		},
	}
	serve.Flags().StringVar(&addr, "addr", "", "listen address (overrides DAYLIST_ADDR)")
	serve.Flags().StringVar(&dbPath, "db", "", "database path (overrides DAYLIST_DB)")

	root.AddCommand(serve)
	return root
}

func runServe(addr, dbPath string) error {
	if addr == "" {
		addr = os.Getenv("DAYLIST_ADDR")
	}
	if addr == "" {
		addr = ":8080"
	}

	// Determine DB path: flag, env var, or default ~/.daylist/daylist.db
	if dbPath == "" {
		dbPath = os.Getenv("DAYLIST_DB")
	}
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".daylist", "daylist.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	todoRepo := repository.NewSQLiteTodoRepo(database)
	todoSvc := service.NewTodoService(todoRepo,
		service.WithDropHandler(logDroppedTodo),
	)

	accessGate := gate.New(os.Getenv("DAYLIST_ACCESS_CODE"))

	// Report generation only runs when a bearer token is configured.
	var completion llm.CompletionClient
	llmCfg := llm.LoadConfig()
	if llmCfg.Enabled() {
		var observer llm.Observer = llm.NoopObserver{}
		if llmCfg.LogCalls {
			observer = llm.NewLogObserver(os.Stderr)
		}
		completion = llm.NewDifyClient(llmCfg, observer)
	}

	server := httpapi.NewServer(todoSvc, accessGate, completion)
	return server.Start(addr)
}

// logDroppedTodo surfaces completed todos excluded from archival
// grouping instead of losing them silently.
var logDroppedTodo archive.DropHandler = func(t *domain.Todo) {
	fmt.Fprintf(os.Stderr, "archive: dropping todo %s (%q): completed without a valid completion timestamp\n", t.ID, t.Title)
}
