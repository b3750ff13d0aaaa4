package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/akyairhashvil/crewboard/internal/config"
	"github.com/akyairhashvil/crewboard/internal/database"
	"github.com/akyairhashvil/crewboard/internal/models"
	"github.com/akyairhashvil/crewboard/internal/report"
	"github.com/akyairhashvil/crewboard/internal/restapi"
	"github.com/akyairhashvil/crewboard/internal/syncer"
	"github.com/akyairhashvil/crewboard/internal/timeline"
	"github.com/akyairhashvil/crewboard/internal/tui"
	"github.com/akyairhashvil/crewboard/internal/util"
	tea "github.com/charmbracelet/bubbletea"
)

// Size of the board printed when stdout is not a terminal.
const (
	plainWidth  = 120
	plainHeight = 1000
)

var rootCmd = &cobra.Command{
	Use:   config.AppName,
	Short: "Schedule employee tasks on a timeline",
	Long: `crewboard shows employees as rows and their tasks as bars on a calendar.
Drag a bar to move it, drag its edges to resize it, click an empty cell to add
a task. Changes are saved to the backend in the background.

Backends: the local SQLite database in the data directory, or a REST backend
when --api-url is set.`,
	SilenceUsage: true,
	RunE:         runBoard,
}

func main() {
	cobra.OnInitialize(initConfig)
	addPersistentFlags()
	registerCommands()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Println("error:", err)
		stop()
		os.Exit(1)
	}
}

func initConfig() {
	viper.SetEnvPrefix(config.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if file := viper.GetString("config"); file != "" {
		viper.SetConfigFile(file)
	} else {
		viper.SetConfigName(config.AppName)
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath(util.DataDir(config.AppName))
	}
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			fmt.Fprintln(os.Stderr, "config:", err)
		}
	}
}

func addPersistentFlags() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default ./crewboard.yaml or the data dir)")
	flags.String("data-dir", util.DataDir(config.AppName), "directory for the database, log and exports")
	flags.String("db", "", "SQLite database path (default <data-dir>/"+config.DBFileName+")")
	flags.String("api-url", "", "REST backend base URL; the local database is used when empty")
	flags.String("token", "", "bearer token for the REST backend")
	flags.Int64("department", 0, "only show this department")
	flags.String("project", "", "only show tasks of this project")
	flags.String("view", config.DefaultViewMode, "view mode: day, week, month or year")
	flags.String("date", "", "reference date YYYY-MM-DD (default today)")
	flags.String("log-level", "info", "log level")
	flags.String("theme", "default", "color theme: default or dracula")
	flags.Bool("json", false, "output JSON")
	for _, name := range []string{"config", "data-dir", "db", "api-url", "token", "department", "project", "view", "date", "log-level", "theme", "json"} {
		_ = viper.BindPFlag(name, flags.Lookup(name))
	}
}

func registerCommands() {
	rootCmd.AddCommand(tasksCmd())
	rootCmd.AddCommand(seedCmd())
	rootCmd.AddCommand(exportCmd())
}

// settings are the resolved runtime knobs.
type settings struct {
	DataDir  string
	DBPath   string
	APIURL   string
	Token    string
	LogLevel string
	Theme    string
	Scope    models.Scope
	Mode     timeline.ViewMode
	Ref      time.Time
}

func loadSettings(now time.Time) (settings, error) {
	s := settings{
		DataDir:  viper.GetString("data-dir"),
		DBPath:   viper.GetString("db"),
		APIURL:   strings.TrimSpace(viper.GetString("api-url")),
		Token:    viper.GetString("token"),
		LogLevel: viper.GetString("log-level"),
		Theme:    viper.GetString("theme"),
		Scope: models.Scope{
			DepartmentID: viper.GetInt64("department"),
			ProjectRef:   strings.TrimSpace(viper.GetString("project")),
		},
		Ref: now,
	}
	if s.DataDir == "" {
		s.DataDir = util.DataDir(config.AppName)
	}
	if s.DBPath == "" {
		s.DBPath = filepath.Join(s.DataDir, config.DBFileName)
	}
	mode, err := timeline.ParseViewMode(viper.GetString("view"))
	if err != nil {
		return s, err
	}
	s.Mode = mode
	if raw := strings.TrimSpace(viper.GetString("date")); raw != "" {
		ref, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			return s, fmt.Errorf("invalid --date %q: %w", raw, err)
		}
		s.Ref = ref
	}
	return s, nil
}

// openBackend picks the REST client when an API URL is configured and the
// local database otherwise. The returned func releases it.
func openBackend(ctx context.Context, s settings) (syncer.Backend, func(), error) {
	if s.APIURL != "" {
		return restapi.New(s.APIURL, s.Token), func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(s.DBPath), 0o755); err != nil {
		return nil, nil, err
	}
	db, err := database.Open(ctx, s.DBPath)
	if err != nil {
		return nil, nil, err
	}
	return db, func() { util.LogError("close database", db.Close()) }, nil
}

func setupLogging(s settings) (io.Closer, error) {
	return util.SetupLogging(filepath.Join(s.DataDir, config.LogFileName), s.LogLevel)
}

func runBoard(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	s, err := loadSettings(time.Now())
	if err != nil {
		return err
	}
	logs, err := setupLogging(s)
	if err != nil {
		return err
	}
	defer logs.Close()

	backend, closeBackend, err := openBackend(ctx, s)
	if err != nil {
		return err
	}
	defer closeBackend()

	opts := tui.Options{
		Source:    backend,
		Scope:     s.Scope,
		Mode:      s.Mode,
		Ref:       s.Ref,
		ExportDir: filepath.Join(s.DataDir, "exports"),
		Theme:     s.Theme,
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return printBoard(cmd.OutOrStdout(), tui.NewBoardModel(ctx, opts))
	}

	adapter := syncer.New(backend, syncer.WithLogger(logrus.StandardLogger()))
	defer adapter.Close()
	opts.Sync = adapter
	logrus.WithFields(logrus.Fields{"view": s.Mode, "api": s.APIURL != ""}).Info("board started")

	p := tea.NewProgram(tui.NewBoardModel(ctx, opts), tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}

// printBoard writes one static frame of the board.
func printBoard(w io.Writer, m tui.BoardModel) error {
	if err := m.Load(); err != nil {
		return err
	}
	m.SetSize(plainWidth, plainHeight)
	_, err := fmt.Fprintln(w, m.View())
	return err
}

func tasksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tasks",
		Short: "List scheduled tasks per employee",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(time.Now())
			if err != nil {
				return err
			}
			backend, closeBackend, err := openBackend(cmd.Context(), s)
			if err != nil {
				return err
			}
			defer closeBackend()
			return listTasks(cmd.Context(), backend, s.Scope, cmd.OutOrStdout(), viper.GetBool("json"))
		},
	}
}

func listTasks(ctx context.Context, src syncer.Source, scope models.Scope, w io.Writer, asJSON bool) error {
	snap, err := syncer.Fetch(ctx, src, scope)
	if err != nil {
		return err
	}
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(snap.Tasks)
	}
	rows := timeline.BuildRows(snap.Tasks, snap.Employees)
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.AppendHeader(table.Row{"Employee", "Task", "Project", "Start", "End", "Days", "Lane", "Status"})
	for _, r := range rows {
		for _, t := range r.Tasks {
			tw.AppendRow(table.Row{r.Name, t.Title, t.ProjectRef, t.Start.Format("2006-01-02"), t.End.Format("2006-01-02"), t.LengthDays(), t.Lane + 1, t.Status})
		}
	}
	tw.Render()
	return nil
}

func seedCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load departments, employees and tasks from a YAML file into the local database",
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				return fmt.Errorf("--file required")
			}
			s, err := loadSettings(time.Now())
			if err != nil {
				return err
			}
			if s.APIURL != "" {
				return fmt.Errorf("seed writes to the local database; unset --api-url")
			}
			f, err := os.Open(file)
			if err != nil {
				return err
			}
			defer f.Close()
			res, err := seedDatabase(cmd.Context(), s.DBPath, f)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d departments, %d employees, %d tasks into %s\n", res.Departments, res.Employees, res.Tasks, s.DBPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "YAML fixture to load")
	return cmd
}

func seedDatabase(ctx context.Context, dbPath string, r io.Reader) (database.SeedResult, error) {
	fx, err := database.ParseFixture(r)
	if err != nil {
		return database.SeedResult{}, err
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return database.SeedResult{}, err
	}
	db, err := database.Open(ctx, dbPath)
	if err != nil {
		return database.SeedResult{}, err
	}
	defer db.Close()
	return db.Seed(ctx, fx)
}

func exportCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render the board window to a PDF",
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			s, err := loadSettings(now)
			if err != nil {
				return err
			}
			backend, closeBackend, err := openBackend(cmd.Context(), s)
			if err != nil {
				return err
			}
			defer closeBackend()

			if out == "" {
				dir := filepath.Join(s.DataDir, "exports")
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return err
				}
				window := timeline.ComputeViewWindow(s.Ref, s.Mode)
				out = util.ExportPath(dir, s.Mode.String(), window.Start.Format("2006-01-02"), "pdf")
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			if err := exportBoard(cmd.Context(), backend, s, f, now); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "exported", out)
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "pdf", "", "output PDF path")
	return cmd
}

func exportBoard(ctx context.Context, src syncer.Source, s settings, w io.Writer, today time.Time) error {
	snap, err := syncer.Fetch(ctx, src, s.Scope)
	if err != nil {
		return err
	}
	board := timeline.NewBoard(nil)
	board.Reconcile(snap.Tasks, snap.Employees)
	layout := board.Render(s.Ref, s.Mode, timeline.Midnight(today))
	title := fmt.Sprintf("%s from %s", s.Mode, layout.Window.Start.Format("Jan 2 2006"))
	return report.WritePDF(w, layout, board.Rows(), title)
}
