// Package main provides the CLI entrypoint for codetype.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/codetype/internal/catalog"
	"github.com/verte-zerg/codetype/internal/config"
	"github.com/verte-zerg/codetype/internal/model"
	"github.com/verte-zerg/codetype/internal/render"
	"github.com/verte-zerg/codetype/internal/store"
	"github.com/verte-zerg/codetype/internal/tui"
)

const (
	defaultLang      = string(model.LanguagePython)
	defaultTimeLimit = 0
	defaultReport    = true
	defaultTabWidth  = 4
)

var (
	practiceLang      string
	practiceTimeLimit int
	practiceReport    bool
	practiceTabWidth  int
)

// configFlags maps model.Config fields to the flags that set them.
var configFlags = map[string]string{
	"Lang":      "lang",
	"TimeLimit": "time-limit",
	"TabWidth":  "tab-width",
}

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "codetype",
		Short:         "TUI code typing trainer",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE:          runPracticeCmd,
	}

	rootCmd.Flags().StringVar(&practiceLang, "lang", defaultLang, "snippet language")
	rootCmd.Flags().IntVar(&practiceTimeLimit, "time-limit", defaultTimeLimit, "seconds before the attempt is submitted (0 disables)")
	rootCmd.Flags().BoolVar(&practiceReport, "report", defaultReport, "show the line diff after each attempt")
	rootCmd.Flags().IntVar(&practiceTabWidth, "tab-width", defaultTabWidth, "spaces inserted for a tab")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newLangsCmd())
	rootCmd.AddCommand(newScoreCmd())
	rootCmd.AddCommand(newSnippetCmd())

	return rootCmd
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg := practiceConfig(cmd, fileCfg)
	if err := validateConfig(cfg); err != nil {
		return err
	}

	cat := loadCatalog(cmd.Context(), config.DefaultDBPath())
	m, err := tui.NewModel(cfg, cat)
	if err != nil {
		return err
	}
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// practiceConfig merges file values into the practice flags. Flags set on the
// command line win.
func practiceConfig(cmd *cobra.Command, fileCfg config.FileConfig) model.Config {
	applyStringConfig(cmd, "lang", &practiceLang, fileCfg.Practice.Lang)
	applyIntConfig(cmd, "time-limit", &practiceTimeLimit, fileCfg.Practice.TimeLimit)
	applyBoolConfig(cmd, "report", &practiceReport, fileCfg.Practice.ShowReport)
	applyIntConfig(cmd, "tab-width", &practiceTabWidth, fileCfg.Practice.TabWidth)

	return model.Config{
		Lang:       strings.TrimSpace(practiceLang),
		TimeLimit:  practiceTimeLimit,
		ShowReport: practiceReport,
		TabWidth:   practiceTabWidth,
	}
}

// loadCatalog returns the builtin catalog merged with stored user snippets.
// Store failures are logged and the builtin catalog is used.
func loadCatalog(ctx context.Context, dbPath string) *catalog.Catalog {
	base := catalog.Default()
	st, err := store.Open(dbPath)
	if err != nil {
		logErrf("failed to open db: %v\n", err)
		return base
	}
	defer closeStore(st)

	extra, err := st.Snippets(ctx)
	if err != nil {
		logErrf("failed to load stored snippets: %v\n", err)
		return base
	}
	if len(extra) == 0 {
		return base
	}
	return base.Merge(extra)
}

func openStore() (*store.Store, error) {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	return st, nil
}

func closeStore(st *store.Store) {
	if cerr := st.Close(); cerr != nil {
		logErrf("failed to close db: %v\n", cerr)
	}
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := writeDefaultConfig(path); err != nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// writeDefaultConfig creates the config file from the template unless it
// already exists.
func writeDefaultConfig(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}
	return nil
}

func newLangsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "langs",
		Short: "List snippet languages",
		Args:  cobra.NoArgs,
		RunE:  runLangsCmd,
	}
}

func runLangsCmd(cmd *cobra.Command, _ []string) error {
	cat := loadCatalog(cmd.Context(), config.DefaultDBPath())
	langs := cat.Languages()
	counts := make(map[model.Language]int, len(langs))
	for _, lang := range langs {
		snippets, err := cat.Snippets(string(lang))
		if err != nil {
			return err
		}
		counts[lang] = len(snippets)
	}
	if err := render.RenderLanguages(cmd.OutOrStdout(), langs, counts); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# codetype configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# lang = %q          # Snippet language (see: codetype langs)
# time-limit = %d          # Seconds before the attempt is submitted (0 disables)
# report = %t           # Show the line diff after each attempt
# tab-width = %d           # Spaces inserted for a tab
`,
		defaultLang,
		defaultTimeLimit,
		defaultReport,
		defaultTabWidth,
	)
}

// validateConfig reports the first invalid setting in terms of its flag.
func validateConfig(cfg model.Config) error {
	err := cfg.Validate()
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	flag, ok := configFlags[fe.Field()]
	if !ok {
		return err
	}
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("--%s must not be empty", flag)
	case "gte":
		return fmt.Errorf("--%s must be >= %s", flag, fe.Param())
	case "lte":
		return fmt.Errorf("--%s must be <= %s", flag, fe.Param())
	default:
		return fmt.Errorf("--%s is invalid", flag)
	}
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
