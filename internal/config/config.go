package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"tasklist/internal/todo"
)

const (
	AppName               = "tasklist"
	DefaultConfigFileName = "config.toml"
	DefaultLogName        = "tasklist.log"
	DefaultHistorySize    = 8

	envConfigPath = "TASKLIST_CONFIG"
)

var ErrInvalidFilter = errors.New("invalid filter")

type Keymap struct {
	Quit       string `toml:"quit"`
	Focus      string `toml:"focus"`
	Up         string `toml:"up"`
	Down       string `toml:"down"`
	Toggle     string `toml:"toggle"`
	Delete     string `toml:"delete"`
	Edit       string `toml:"edit"`
	Save       string `toml:"save"`
	Cancel     string `toml:"cancel"`
	FilterAll  string `toml:"filter_all"`
	FilterNot  string `toml:"filter_not"`
	FilterDone string `toml:"filter_done"`
	History    string `toml:"history"`
	Help       string `toml:"help"`
}

type SeedTask struct {
	Description string `toml:"description"`
	Done        bool   `toml:"done"`
}

type Config struct {
	Heading       string     `toml:"heading"`
	DefaultFilter string     `toml:"default_filter"`
	JournalPath   string     `toml:"journal_path"`
	LogPath       string     `toml:"log_path"`
	HistorySize   int        `toml:"history_size"`
	Keys          Keymap     `toml:"keys"`
	Seed          []SeedTask `toml:"seed"`
}

// ResolveConfigPath picks the config file location: $TASKLIST_CONFIG, then
// $XDG_CONFIG_HOME/tasklist, then ~/.config/tasklist.
func ResolveConfigPath() string {
	if p := strings.TrimSpace(os.Getenv(envConfigPath)); p != "" {
		return p
	}
	return filepath.Join(defaultConfigDir(), DefaultConfigFileName)
}

func defaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", AppName)
}

// LoadOrCreate reads the config at path, writing the defaults there first if
// the file does not exist. Values missing from the file keep their defaults.
func LoadOrCreate(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, fmt.Errorf("writing default config: %w", err)
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config file: %w", err)
	}
	cfg, err = Parse(data)
	if err != nil {
		return cfg, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	// Decode seeds separately so a file without [[seed]] keeps the samples.
	cfg.Seed = nil
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), err
	}
	var probe struct {
		Seed *[]SeedTask `toml:"seed"`
	}
	if err := toml.Unmarshal(data, &probe); err == nil && probe.Seed == nil {
		cfg.Seed = defaultSeed()
	}
	cfg.Keys = cfg.Keys.withDefaults(Default().Keys)
	if strings.TrimSpace(cfg.Heading) == "" {
		cfg.Heading = Default().Heading
	}
	if cfg.HistorySize <= 0 {
		cfg.HistorySize = DefaultHistorySize
	}
	if _, err := cfg.Filter(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Filter returns the validated default filter.
func (c Config) Filter() (todo.Filter, error) {
	f, err := todo.ParseFilter(c.DefaultFilter)
	if err != nil {
		return todo.FilterAll, fmt.Errorf("%w: default_filter %q (want all, not or done)", ErrInvalidFilter, c.DefaultFilter)
	}
	return f, nil
}

// SeedTasks converts the configured seed entries into store tasks.
func (c Config) SeedTasks() []todo.Task {
	tasks := make([]todo.Task, 0, len(c.Seed))
	for _, s := range c.Seed {
		tasks = append(tasks, todo.Task{Description: s.Description, Done: s.Done})
	}
	return tasks
}

// Marshal renders cfg as TOML.
func Marshal(cfg Config) ([]byte, error) {
	return toml.Marshal(cfg)
}

func write(path string, cfg Config) error {
	data, err := Marshal(cfg)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

func (k Keymap) withDefaults(d Keymap) Keymap {
	pick := func(v, def string) string {
		if v == "" {
			return def
		}
		return v
	}
	return Keymap{
		Quit:       pick(k.Quit, d.Quit),
		Focus:      pick(k.Focus, d.Focus),
		Up:         pick(k.Up, d.Up),
		Down:       pick(k.Down, d.Down),
		Toggle:     pick(k.Toggle, d.Toggle),
		Delete:     pick(k.Delete, d.Delete),
		Edit:       pick(k.Edit, d.Edit),
		Save:       pick(k.Save, d.Save),
		Cancel:     pick(k.Cancel, d.Cancel),
		FilterAll:  pick(k.FilterAll, d.FilterAll),
		FilterNot:  pick(k.FilterNot, d.FilterNot),
		FilterDone: pick(k.FilterDone, d.FilterDone),
		History:    pick(k.History, d.History),
		Help:       pick(k.Help, d.Help),
	}
}

func Default() Config {
	return Config{
		Heading:       "ToDo App",
		DefaultFilter: string(todo.FilterAll),
		LogPath:       filepath.Join(os.TempDir(), DefaultLogName),
		HistorySize:   DefaultHistorySize,
		Keys: Keymap{
			Quit:       "q",
			Focus:      "tab",
			Up:         "k,up",
			Down:       "j,down",
			Toggle:     " ",
			Delete:     "d",
			Edit:       "e",
			Save:       "enter",
			Cancel:     "esc",
			FilterAll:  "1",
			FilterNot:  "2",
			FilterDone: "3",
			History:    "h",
			Help:       "?",
		},
		Seed: defaultSeed(),
	}
}

func defaultSeed() []SeedTask {
	return []SeedTask{
		{Description: "Learn Bubble Tea"},
		{Description: "Do the shopping", Done: true},
	}
}
