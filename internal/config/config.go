// Package config loads pentu settings from flags, PENTU_* environment
// variables, an optional YAML file and an optional .env file.
package config

import (
    "errors"
    "fmt"
    "io/fs"
    "os"
    "strings"
    "time"

    "github.com/joho/godotenv"
    "github.com/spf13/viper"
)

const EnvPrefix = "PENTU"

const (
    DefaultUserList     = "/usr/share/wordlists/metasploit/unix_users.txt"
    DefaultPasswordList = "/usr/share/wordlists/rockyou.txt.gz"
    DefaultWebWordlist  = "/usr/share/wordlists/dirb/common.txt"
)

type Timeouts struct {
    Default int `mapstructure:"default" json:"default" yaml:"default"`
    SQLi    int `mapstructure:"sqli" json:"sqli" yaml:"sqli"`
    Brute   int `mapstructure:"brute" json:"brute" yaml:"brute"`
}

type Wordlists struct {
    Web       string `mapstructure:"web" json:"web" yaml:"web"`
    Users     string `mapstructure:"users" json:"users" yaml:"users"`
    Passwords string `mapstructure:"passwords" json:"passwords" yaml:"passwords"`
}

type Log struct {
    Level string `mapstructure:"level" json:"level" yaml:"level"`
    File  string `mapstructure:"file" json:"file,omitempty" yaml:"file,omitempty"`
}

type Serve struct {
    Addr string `mapstructure:"addr" json:"addr" yaml:"addr"`
}

// Config is the resolved configuration of one pentu invocation.
type Config struct {
    ResultsDir string    `mapstructure:"results_dir" json:"results_dir" yaml:"results_dir"`
    Shell      string    `mapstructure:"shell" json:"shell" yaml:"shell"`
    Timeouts   Timeouts  `mapstructure:"timeouts" json:"timeouts" yaml:"timeouts"`
    Wordlists  Wordlists `mapstructure:"wordlists" json:"wordlists" yaml:"wordlists"`
    Log        Log       `mapstructure:"log" json:"log" yaml:"log"`
    Serve      Serve     `mapstructure:"serve" json:"serve" yaml:"serve"`

    // File is the config file that was read, if any.
    File string `mapstructure:"-" json:"-" yaml:"-"`
}

func seconds(n int) time.Duration { return time.Duration(n) * time.Second }

func (c Config) DefaultTimeout() time.Duration { return seconds(c.Timeouts.Default) }
func (c Config) SQLiTimeout() time.Duration    { return seconds(c.Timeouts.SQLi) }
func (c Config) BruteTimeout() time.Duration   { return seconds(c.Timeouts.Brute) }

// New returns a viper instance with defaults and environment binding set up.
// Callers may bind command-line flags onto it before calling Load.
func New() *viper.Viper {
    v := viper.New()
    v.SetDefault("results_dir", "./pentu-results")
    v.SetDefault("shell", "/bin/sh")
    v.SetDefault("timeouts.default", 300)
    v.SetDefault("timeouts.sqli", 600)
    v.SetDefault("timeouts.brute", 1800)
    v.SetDefault("wordlists.web", DefaultWebWordlist)
    v.SetDefault("wordlists.users", DefaultUserList)
    v.SetDefault("wordlists.passwords", DefaultPasswordList)
    v.SetDefault("log.level", "info")
    v.SetDefault("log.file", "")
    v.SetDefault("serve.addr", "127.0.0.1:8787")

    v.SetEnvPrefix(EnvPrefix)
    v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
    v.AutomaticEnv()
    return v
}

// Load reads file (or the first existing candidate when file is empty)
// into v and decodes the result. A missing explicit file is an error;
// missing candidates are not.
func Load(v *viper.Viper, file string) (Config, error) {
    if file != "" {
        v.SetConfigFile(file)
        if err := v.ReadInConfig(); err != nil {
            return Config{}, fmt.Errorf("read config %s: %w", file, err)
        }
    } else {
        for _, p := range candidateFiles() {
            if _, err := os.Stat(p); err != nil {
                continue
            }
            v.SetConfigFile(p)
            if err := v.ReadInConfig(); err != nil {
                return Config{}, fmt.Errorf("read config %s: %w", p, err)
            }
            break
        }
    }

    var c Config
    if err := v.Unmarshal(&c); err != nil {
        return Config{}, fmt.Errorf("decode config: %w", err)
    }
    c.File = v.ConfigFileUsed()
    if err := c.validate(); err != nil {
        return Config{}, err
    }
    return c, nil
}

func (c Config) validate() error {
    if strings.TrimSpace(c.ResultsDir) == "" {
        return errors.New("config: results_dir must not be empty")
    }
    if strings.TrimSpace(c.Shell) == "" {
        return errors.New("config: shell must not be empty")
    }
    for name, n := range map[string]int{"default": c.Timeouts.Default, "sqli": c.Timeouts.SQLi, "brute": c.Timeouts.Brute} {
        if n <= 0 {
            return fmt.Errorf("config: timeouts.%s must be positive, got %d", name, n)
        }
    }
    return nil
}

// LoadDotEnv loads KEY=VALUE pairs from the given files into the process
// environment without overriding variables that are already set. Missing
// files are skipped.
func LoadDotEnv(paths ...string) error {
    for _, p := range paths {
        if _, err := os.Stat(p); errors.Is(err, fs.ErrNotExist) {
            continue
        }
        if err := godotenv.Load(p); err != nil {
            return fmt.Errorf("load %s: %w", p, err)
        }
    }
    return nil
}
