package rules

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"gopkg.in/yaml.v3"
)

const defaultKey = "$default"

var (
	ErrInvalidProfile = errors.New("invalid profile name")

	profileName = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
)

// ValidProfile reports whether name can be used as a profile file name.
// The empty name selects the default file only.
func ValidProfile(name string) bool {
	return name == "" || profileName.MatchString(name)
}

// Paths helper for default/profile files.
type Paths struct {
	BaseDir string // base directory, e.g., /opt/app/config
}

func (p Paths) DefaultPath() string {
	return filepath.Join(p.BaseDir, "breeding", "default.yaml")
}

func (p Paths) ProfilePath(profile string) string {
	return filepath.Join(p.BaseDir, "breeding", "profiles", profile+".yaml")
}

// Files lists the files that make up profile, default first.
func (p Paths) Files(profile string) []string {
	files := []string{p.DefaultPath()}
	if profile != "" {
		files = append(files, p.ProfilePath(profile))
	}
	return files
}

// Loader reads YAML configs and merges default → profile.
type Loader struct {
	paths Paths

	mu    sync.RWMutex
	cache map[string]RawConfig // key: profile name or "$default"
}

// NewLoader creates a config loader with the given base directory.
func NewLoader(baseDir string) *Loader {
	return &Loader{
		paths: Paths{BaseDir: baseDir},
		cache: make(map[string]RawConfig),
	}
}

func (l *Loader) Paths() Paths { return l.paths }

// LoadMerged loads and merges default → profile (profile optional).
// It returns the merged RawConfig without defaults filled in.
func (l *Loader) LoadMerged(profile string) (RawConfig, error) {
	if !ValidProfile(profile) {
		return RawConfig{}, fmt.Errorf("%w: %q", ErrInvalidProfile, profile)
	}
	key := profile
	if key == "" {
		key = defaultKey
	}
	l.mu.RLock()
	if cfg, ok := l.cache[key]; ok {
		l.mu.RUnlock()
		return cfg, nil
	}
	l.mu.RUnlock()

	defCfg, err := readYAML(l.paths.DefaultPath())
	if err != nil {
		return RawConfig{}, fmt.Errorf("read default: %w", err)
	}
	merged := defCfg
	if profile != "" {
		profCfg, err := readYAML(l.paths.ProfilePath(profile))
		if err != nil {
			return RawConfig{}, fmt.Errorf("read profile %s: %w", profile, err)
		}
		merged = mergeRaw(defCfg, profCfg)
	}

	l.mu.Lock()
	l.cache[defaultKey] = defCfg
	l.cache[key] = merged
	l.mu.Unlock()

	return merged, nil
}

// Invalidate clears loader's cache. Call after hot-reload detects changes.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache = make(map[string]RawConfig)
}

// readYAML loads a YAML file into RawConfig. Missing files return zero cfg, no error.
func readYAML(path string) (RawConfig, error) {
	var cfg RawConfig
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return RawConfig{}, nil
		}
		return RawConfig{}, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return RawConfig{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// mergeRaw overlays b on a: every value set in b wins.
func mergeRaw(a, b RawConfig) RawConfig {
	out := a
	if b.Version != "" {
		out.Version = b.Version
	}
	if b.Notes != "" {
		out.Notes = b.Notes
	}
	if b.Probabilities.SameTierUpgradeChance != nil {
		v := *b.Probabilities.SameTierUpgradeChance
		out.Probabilities.SameTierUpgradeChance = &v
	}
	if b.Probabilities.CrossTierBreakthroughChance != nil {
		v := *b.Probabilities.CrossTierBreakthroughChance
		out.Probabilities.CrossTierBreakthroughChance = &v
	}
	return out
}
