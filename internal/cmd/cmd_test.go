package cmd

import (
	"bytes"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"

	"github.com/Iron-Ham/skim/internal/config"
	"github.com/Iron-Ham/skim/internal/errors"
)

// executeCommand runs a fresh root command with args and stdin, returning
// captured stdout.
func executeCommand(t *testing.T, stdin io.Reader, args ...string) (string, error) {
	t.Helper()

	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	root := newRootCmd()
	out := new(bytes.Buffer)
	root.SetOut(out)
	root.SetErr(io.Discard)
	if stdin != nil {
		root.SetIn(stdin)
	}
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestRootCommand(t *testing.T) {
	root := newRootCmd()
	if root.Name() != "skim" {
		t.Errorf("Name() = %q, want %q", root.Name(), "skim")
	}
	for _, flag := range []string{"config", "log-level", "log-file", "tab-width"} {
		if root.Flag(flag) == nil {
			t.Errorf("missing --%s flag", flag)
		}
	}
	if root.PersistentFlags().ShorthandLookup("c") == nil {
		t.Error("missing -c shorthand")
	}
	if sub, _, err := root.Find([]string{"config", "show"}); err != nil || sub.Flag("config") == nil {
		t.Error("--config should be inherited by subcommands")
	}
}

func TestRoot_PassThrough(t *testing.T) {
	content := "first\r\nsecond\n\tcafé\nno newline"
	path := writeFile(t, "input.txt", content)

	tests := []struct {
		name  string
		stdin io.Reader
		args  []string
	}{
		{"file argument", nil, []string{path}},
		{"stdin", strings.NewReader(content), nil},
		{"dash is stdin", strings.NewReader(content), []string{"-"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := executeCommand(t, tt.stdin, tt.args...)
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			if out != content {
				t.Errorf("output = %q, want input unchanged %q", out, content)
			}
		})
	}
}

func TestRoot_Errors(t *testing.T) {
	badConfig := writeFile(t, "config.yaml", "keys:\n  normal:\n    fly: [x]\n")

	tests := []struct {
		name    string
		env     map[string]string
		args    []string
		stdin   string
		wantMsg string
		wantIs  error
	}{
		{
			name:   "missing file",
			args:   []string{filepath.Join(t.TempDir(), "nope.txt")},
			wantIs: fs.ErrNotExist,
		},
		{
			name:    "too many arguments",
			args:    []string{"a", "b"},
			wantMsg: "accepts at most 1 arg",
		},
		{
			name:    "tab width flag",
			args:    []string{"--tab-width", "0", "-"},
			wantMsg: "pager.tab_width",
			wantIs:  errors.ErrInvalidInput,
		},
		{
			name:    "log level flag",
			args:    []string{"--log-level", "loud", "-"},
			wantMsg: "logging.level",
			wantIs:  errors.ErrInvalidInput,
		},
		{
			name:    "environment",
			env:     map[string]string{"SKIM_PAGER_TAB_WIDTH": "99"},
			args:    []string{"-"},
			wantMsg: "pager.tab_width",
			wantIs:  errors.ErrInvalidInput,
		},
		{
			name:    "invalid key binding in config file",
			args:    []string{"--config", badConfig, "-"},
			wantMsg: "keys.normal.fly",
			wantIs:  errors.ErrInvalidInput,
		},
		{
			name:    "invalid utf-8 while piping",
			args:    []string{writeFile(t, "bad.txt", "ok\n\xfe not utf-8\n")},
			wantMsg: "offset=3, line=2",
			wantIs:  errors.ErrInvalidEncoding,
		},
		{
			name:    "invalid utf-8 on stdin",
			args:    []string{"-"},
			stdin:   "\xff",
			wantMsg: "encoding error",
			wantIs:  errors.ErrInvalidEncoding,
		},
		{
			name:    "unreadable config file",
			args:    []string{"-c", filepath.Join(t.TempDir(), "missing.yaml"), "-"},
			wantMsg: "read config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			stdin := tt.stdin
			if stdin == "" {
				stdin = "text"
			}
			out, err := executeCommand(t, strings.NewReader(stdin), tt.args...)
			if err == nil {
				t.Fatal("Execute() error = nil")
			}
			if out != "" {
				t.Errorf("output = %q, want nothing written on error", out)
			}
			if tt.wantMsg != "" && !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %q, want it to mention %q", err, tt.wantMsg)
			}
			if tt.wantIs != nil && !errors.Is(err, tt.wantIs) {
				t.Errorf("errors.Is(%v, %v) = false", err, tt.wantIs)
			}
		})
	}
}

func TestRoot_ConfigFileApplies(t *testing.T) {
	path := writeFile(t, "config.yaml", "pager:\n  tab_width: 4\nkeys:\n  normal:\n    quit: [x]\n")

	if _, err := executeCommand(t, strings.NewReader(""), "--config", path, "-"); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if got := viper.GetInt("pager.tab_width"); got != 4 {
		t.Errorf("pager.tab_width = %d, want 4 from the config file", got)
	}
}

func TestRoot_LogFileEnablesLogging(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "skim.log")

	out, err := executeCommand(t, strings.NewReader("hello\n"), "--log-file", logPath, "--log-level", "debug")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if out != "hello\n" {
		t.Errorf("output = %q", out)
	}

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("log file not created: %v", err)
	}
	if !strings.Contains(string(data), `"component":"cmd"`) {
		t.Errorf("log file does not contain a cmd entry:\n%s", data)
	}
}

func TestConfigCommands(t *testing.T) {
	base := t.TempDir()
	run := func(args ...string) (string, error) {
		t.Helper()
		viper.Reset()
		t.Setenv("XDG_CONFIG_HOME", base)
		root := newRootCmd()
		out := new(bytes.Buffer)
		root.SetOut(out)
		root.SetErr(io.Discard)
		root.SetArgs(args)
		err := root.Execute()
		return out.String(), err
	}
	t.Cleanup(viper.Reset)

	out, err := run("config", "path")
	if err != nil {
		t.Fatalf("config path error = %v", err)
	}
	want := filepath.Join(base, "skim", "config.yaml")
	if !strings.Contains(out, "Default path: "+want) {
		t.Errorf("config path output = %q, want default path %s", out, want)
	}

	if _, err := run("config", "init"); err != nil {
		t.Fatalf("config init error = %v", err)
	}
	if _, err := os.Stat(want); err != nil {
		t.Fatalf("config init did not create %s: %v", want, err)
	}
	if _, err := run("config", "init"); err == nil {
		t.Error("second config init should fail")
	}

	out, err = run("config", "show")
	if err != nil {
		t.Fatalf("config show error = %v", err)
	}
	if !strings.Contains(out, "# Config file: "+want) {
		t.Errorf("config show does not name the file:\n%s", out)
	}
	if !strings.Contains(out, "tab_width: 8") {
		t.Errorf("config show missing pager.tab_width:\n%s", out)
	}
}

func TestDefaultConfigContent(t *testing.T) {
	v := viper.New()
	config.SetDefaultsFor(v)
	v.SetConfigType("yaml")
	if err := v.ReadConfig(strings.NewReader(defaultConfigContent)); err != nil {
		t.Fatalf("ReadConfig() error = %v", err)
	}

	cfg, err := config.LoadFrom(v)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	def := config.Default()
	if cfg.Pager != def.Pager || cfg.Theme != def.Theme || cfg.Logging != def.Logging {
		t.Errorf("generated config differs from defaults:\n got  %+v\n want %+v", cfg, def)
	}
}

func TestIsTerminal(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	tests := []struct {
		name string
		v    any
	}{
		{"buffer", new(bytes.Buffer)},
		{"regular file", f},
		{"reader", strings.NewReader("")},
	}
	for _, tt := range tests {
		if isTerminal(tt.v) {
			t.Errorf("isTerminal(%s) = true, want false", tt.name)
		}
	}

	if got := terminalHeight(new(bytes.Buffer)); got != defaultHeight {
		t.Errorf("terminalHeight() = %d, want %d", got, defaultHeight)
	}
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"plain", errors.New("missing filename"), "missing filename"},
		{"encoding", errors.NewEncodingError(3, 2), errors.NewEncodingError(3, 2).Error()},
		{"validation", errors.NewValidationError("bad key"), "validation error: bad key"},
		{"index", errors.Wrap(errors.NewIndexError(7, 5), "render"), "internal error: render: " + errors.NewIndexError(7, 5).Error()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorMessage(tt.err); got != tt.want {
				t.Errorf("ErrorMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}
