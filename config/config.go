// Package config loads groqkit client settings from a file and the
// environment, and watches the file for changes.
package config

import (
	"net/http"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/lgc202/groqkit/groq"
)

// envPrefix binds keys to GROQ_* variables, e.g. api_key to GROQ_API_KEY.
const envPrefix = "GROQ"

// Settings holds everything needed to build a client and its requests.
type Settings struct {
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// Loader reads Settings and keeps them current while the file changes.
type Loader struct {
	v        *viper.Viper
	mu       sync.RWMutex
	settings Settings
	watchers []func(old, new Settings)
}

// Load reads path, applies GROQ_* environment overrides, and starts watching
// the file for changes.
func Load(path string) (*Loader, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("base_url", "https://api.groq.com/openai")
	v.SetDefault("timeout", time.Minute)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	l := &Loader{v: v}
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, err
	}
	l.settings = s

	l.watch()
	return l, nil
}

// Settings returns the current settings. Safe for concurrent use.
func (l *Loader) Settings() Settings {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.settings
}

// OnChange registers a callback invoked after the config file changes and the
// new settings differ from the old ones.
func (l *Loader) OnChange(callback func(old, new Settings)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.watchers = append(l.watchers, callback)
}

// NewClient builds a groq.Client from the current settings; extra options
// apply after the settings-derived ones.
func (l *Loader) NewClient(extra ...groq.Option) (*groq.Client, error) {
	s := l.Settings()

	var opts []groq.Option
	if s.BaseURL != "" {
		opts = append(opts, groq.WithBaseURL(s.BaseURL))
	}
	if s.Timeout > 0 {
		opts = append(opts, groq.WithHTTPClient(&http.Client{Timeout: s.Timeout}))
	}
	opts = append(opts, extra...)

	return groq.New(s.APIKey, opts...)
}

func (l *Loader) watch() {
	var (
		debounceTimer *time.Timer
		debounceMu    sync.Mutex
	)

	// Editors fire several fsnotify events per save; debounce them.
	l.v.OnConfigChange(func(_ fsnotify.Event) {
		debounceMu.Lock()
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
		debounceTimer = time.AfterFunc(100*time.Millisecond, l.handleChange)
		debounceMu.Unlock()
	})

	l.v.WatchConfig()
}

func (l *Loader) handleChange() {
	old := l.Settings()

	l.mu.Lock()
	if err := l.v.ReadInConfig(); err != nil {
		l.mu.Unlock()
		return
	}
	var s Settings
	if err := l.v.Unmarshal(&s); err != nil {
		l.mu.Unlock()
		return
	}
	l.settings = s
	watchers := make([]func(old, new Settings), len(l.watchers))
	copy(watchers, l.watchers)
	l.mu.Unlock()

	if reflect.DeepEqual(old, s) {
		return
	}
	for _, cb := range watchers {
		func() {
			defer func() { _ = recover() }()
			cb(old, s)
		}()
	}
}
