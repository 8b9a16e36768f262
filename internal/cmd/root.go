package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/Iron-Ham/skim/internal/buffer"
	"github.com/Iron-Ham/skim/internal/config"
	"github.com/Iron-Ham/skim/internal/errors"
	"github.com/Iron-Ham/skim/internal/keymap"
	"github.com/Iron-Ham/skim/internal/logging"
	"github.com/Iron-Ham/skim/internal/pager"
	"github.com/Iron-Ham/skim/internal/tui"
	"github.com/Iron-Ham/skim/internal/tui/styles"
)

// defaultHeight is used when the terminal size cannot be read. The first
// window size event replaces it.
const defaultHeight = 24

var rootCmd = newRootCmd()

// configReadErr is set by initConfig when an explicitly named config file
// could not be read.
var configReadErr error

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "skim [file]",
		Short: "Terminal pager with incremental search",
		Long: `skim shows a file, or standard input, one screen at a time.

Press / to search; matches are highlighted as you type and Enter commits
the query. n and N jump between matches, q quits, ? lists every key.

When standard output is not a terminal the input is copied through
unchanged.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runPager,
	}

	root.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/skim/config.yaml)")
	root.Flags().String("log-level", "", "log level: debug, info, warn, error")
	root.Flags().String("log-file", "", "write debug logs to this file")
	root.Flags().Int("tab-width", 0, "columns per tab stop")

	_ = viper.BindPFlag("config", root.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("logging.level", root.Flags().Lookup("log-level"))
	_ = viper.BindPFlag("logging.file", root.Flags().Lookup("log-file"))
	_ = viper.BindPFlag("pager.tab_width", root.Flags().Lookup("tab-width"))

	root.AddCommand(newConfigCmd())
	return root
}

// ExecuteContext runs the root command with ctx, which cancels the session.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// ErrorMessage formats err for standard error. Fatal errors that are not
// meant for users, such as a line index past the buffer, are reported as
// internal errors.
func ErrorMessage(err error) string {
	if errors.IsFatal(err) && !errors.IsUserFacing(err) {
		return "internal error: " + err.Error()
	}
	return err.Error()
}

func init() {
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	configReadErr = nil

	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	cfgFile := viper.GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("SKIM")
	// e.g. SKIM_PAGER_TAB_WIDTH for pager.tab_width
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil && cfgFile != "" {
		configReadErr = errors.Wrapf(err, "read config %s", cfgFile)
	}
}

func runPager(cmd *cobra.Command, args []string) error {
	if configReadErr != nil {
		return configReadErr
	}

	// --log-file alone is enough to turn logging on.
	if cmd.Flags().Changed("log-file") {
		viper.Set("logging.enabled", true)
	}

	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "load config")
	}

	logger, err := logging.NewLogger(cfg.Logging.Path(), cfg.Logging.Level, cfg.Logging.Rotation())
	if err != nil {
		return errors.Wrap(err, "open log")
	}
	defer func() { _ = logger.Close() }()
	logger = logger.WithComponent("cmd")

	in, name, closeInput, err := openInput(cmd, args)
	if err != nil {
		return err
	}
	defer closeInput()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	data, err := buffer.ReadAll(ctx, in)
	if err != nil {
		return err
	}
	// Both output paths require valid UTF-8.
	buf, err := buffer.Parse(data)
	if err != nil {
		logger.Error("invalid input", "input", name, "error", err)
		return err
	}

	out := cmd.OutOrStdout()
	if !isTerminal(out) {
		logger.Debug("output is not a terminal, copying input", "input", name, "bytes", len(data))
		if _, err := out.Write(data); err != nil {
			return errors.Wrap(err, "write output")
		}
		return nil
	}
	logger.Info("input loaded", "input", name, "lines", buf.LineCount())

	km := keymap.DefaultKeymap()
	if err := km.Apply(cfg.Keys); err != nil {
		return errors.Wrap(err, "apply key bindings")
	}

	d := pager.New(buf, terminalHeight(out),
		pager.WithKeymap(km),
		pager.WithLogger(logger),
	)

	return tui.Run(ctx, d,
		tui.WithTheme(styles.NewTheme(cfg.Theme)),
		tui.WithTabWidth(cfg.Pager.TabWidth),
		tui.WithShowPosition(cfg.Pager.ShowPosition),
		tui.WithLogger(logger),
	)
}

// openInput returns the content source: the named file, or standard input
// for no argument or "-".
func openInput(cmd *cobra.Command, args []string) (io.Reader, string, func(), error) {
	if len(args) == 0 || args[0] == "-" {
		in := cmd.InOrStdin()
		if len(args) == 0 && isTerminal(in) {
			return nil, "", nil, fmt.Errorf("missing filename (%q for help)", cmd.Root().Name()+" --help")
		}
		return in, "stdin", func() {}, nil
	}

	f, err := os.Open(args[0])
	if err != nil {
		return nil, "", nil, err
	}
	return f, args[0], func() { _ = f.Close() }, nil
}

type fdFile interface {
	Fd() uintptr
}

func isTerminal(v any) bool {
	f, ok := v.(fdFile)
	return ok && term.IsTerminal(int(f.Fd()))
}

func terminalHeight(out io.Writer) int {
	f, ok := out.(fdFile)
	if !ok {
		return defaultHeight
	}
	_, h, err := term.GetSize(int(f.Fd()))
	if err != nil || h <= 0 {
		return defaultHeight
	}
	return h
}
