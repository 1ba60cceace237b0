package driver

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// ManifestFileName is the project file FindManifest looks for.
const ManifestFileName = "delta.yml"

var (
	ErrManifestNotFound = errors.New("delta.yml not found")
	ErrNoTargets        = errors.New("manifest: no targets defined")
)

// Manifest represents the parsed contents of delta.yml.
type Manifest struct {
	Path        string
	Name        string
	Version     string
	Authors     []string
	Targets     map[string]*TargetSpec
	TargetOrder []string
	LogLevel    string
}

// TargetSpec names a script the CLI can run by target name.
type TargetSpec struct {
	Name string
	Main string
}

// ValidationError aggregates manifest validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "manifest: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("manifest validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// LoadManifest parses delta.yml from disk, returning a validated manifest.
func LoadManifest(path string) (*Manifest, error) {
	if path == "" {
		return nil, errors.New("manifest: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, "manifest: resolve %s", path)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, errors.Wrapf(err, "manifest: open %s", absPath)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var raw manifestFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.Errorf("manifest: %s is empty", absPath)
		}
		return nil, errors.Wrapf(err, "manifest: parse %s", absPath)
	}

	manifest := raw.toManifest(absPath)
	if err := manifest.validate(raw.Targets); err != nil {
		return nil, err
	}
	return manifest, nil
}

// FindManifest walks from start up to the filesystem root looking for
// delta.yml. start may be a file, in which case its directory is used.
func FindManifest(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", errors.Wrapf(err, "resolve start directory %q", start)
	}
	if info, statErr := os.Stat(dir); statErr == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	origin := dir
	for {
		candidate := filepath.Join(dir, ManifestFileName)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.Wrapf(ErrManifestNotFound, "searched from %s upwards", origin)
		}
		dir = parent
	}
}

func (m *Manifest) validate(targets targetMap) error {
	var errs ValidationError
	if m.Name == "" {
		errs.Issues = append(errs.Issues, "name must be provided")
	}
	if m.LogLevel != "" {
		if _, err := logrus.ParseLevel(m.LogLevel); err != nil {
			errs.Issues = append(errs.Issues, fmt.Sprintf("log_level %q is not a valid level", m.LogLevel))
		}
	}

	seen := make(map[string]struct{}, len(targets.items))
	for _, item := range targets.items {
		if _, exists := seen[item.name]; exists {
			errs.Issues = append(errs.Issues, fmt.Sprintf("target %q is defined more than once", item.name))
			continue
		}
		seen[item.name] = struct{}{}
		if strings.TrimSpace(item.spec.Main) == "" {
			errs.Issues = append(errs.Issues, fmt.Sprintf("target %q requires a main entrypoint", item.name))
		}
	}

	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

// DefaultTarget returns the first target in manifest order.
func (m *Manifest) DefaultTarget() (*TargetSpec, error) {
	if m == nil || len(m.TargetOrder) == 0 {
		return nil, ErrNoTargets
	}
	return m.Targets[m.TargetOrder[0]], nil
}

// FindTarget looks up a target by name, ignoring case.
func (m *Manifest) FindTarget(name string) (*TargetSpec, bool) {
	if m == nil {
		return nil, false
	}
	name = strings.TrimSpace(name)
	if target, ok := m.Targets[name]; ok {
		return target, true
	}
	for _, key := range m.TargetOrder {
		if strings.EqualFold(key, name) {
			return m.Targets[key], true
		}
	}
	return nil, false
}

// ResolveMain returns the absolute path of target's entry script. Relative
// paths are resolved against the manifest's directory.
func (m *Manifest) ResolveMain(target *TargetSpec) (string, error) {
	if m == nil || target == nil {
		return "", errors.New("missing manifest or target")
	}
	mainPath := strings.TrimSpace(target.Main)
	if mainPath == "" {
		return "", errors.Errorf("target %q missing main entrypoint", target.Name)
	}
	if filepath.IsAbs(mainPath) {
		return filepath.Clean(mainPath), nil
	}
	return filepath.Join(filepath.Dir(m.Path), filepath.FromSlash(mainPath)), nil
}

type manifestFile struct {
	Name     string     `yaml:"name"`
	Version  string     `yaml:"version"`
	Authors  stringList `yaml:"authors"`
	Targets  targetMap  `yaml:"targets"`
	LogLevel string     `yaml:"log_level"`
}

type targetYAML struct {
	Main string `yaml:"main"`
}

// targetMap keeps targets in document order, which decides the default.
type targetMap struct {
	items []targetMapEntry
}

type targetMapEntry struct {
	name string
	spec *targetYAML
}

func (tm *targetMap) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == 0 || (value.Kind == yaml.ScalarNode && value.Tag == "!!null") {
		tm.items = nil
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return errors.New("manifest: targets must be a mapping")
	}
	items := make([]targetMapEntry, 0, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		keyNode := value.Content[i]
		valueNode := value.Content[i+1]

		var key string
		if err := keyNode.Decode(&key); err != nil {
			return err
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return errors.New("manifest: targets must not use empty keys")
		}
		entry := new(targetYAML)
		switch valueNode.Kind {
		case yaml.ScalarNode:
			// Shorthand: `name: path/to/main.delta`.
			if valueNode.Tag != "!!null" {
				entry.Main = strings.TrimSpace(valueNode.Value)
			}
		default:
			if err := valueNode.Decode(entry); err != nil {
				return errors.Wrapf(err, "manifest: target %q", key)
			}
		}
		items = append(items, targetMapEntry{name: key, spec: entry})
	}
	tm.items = items
	return nil
}

type stringList []string

func (l *stringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag == "!!null" || strings.TrimSpace(value.Value) == "" {
			*l = nil
			return nil
		}
		*l = stringList{strings.TrimSpace(value.Value)}
		return nil
	case yaml.SequenceNode:
		items := make([]string, 0, len(value.Content))
		for _, node := range value.Content {
			var str string
			if err := node.Decode(&str); err != nil {
				return err
			}
			if str = strings.TrimSpace(str); str != "" {
				items = append(items, str)
			}
		}
		*l = stringList(items)
		return nil
	case yaml.AliasNode:
		return l.UnmarshalYAML(value.Alias)
	case 0:
		*l = nil
		return nil
	default:
		return errors.Errorf("manifest: expected string or sequence for list but found %s", value.ShortTag())
	}
}

func (mf manifestFile) toManifest(path string) *Manifest {
	result := &Manifest{
		Path:        path,
		Name:        strings.TrimSpace(mf.Name),
		Version:     strings.TrimSpace(mf.Version),
		Authors:     []string(mf.Authors),
		Targets:     make(map[string]*TargetSpec, len(mf.Targets.items)),
		TargetOrder: make([]string, 0, len(mf.Targets.items)),
		LogLevel:    strings.TrimSpace(mf.LogLevel),
	}
	for _, item := range mf.Targets.items {
		if _, exists := result.Targets[item.name]; exists {
			continue
		}
		result.Targets[item.name] = &TargetSpec{
			Name: item.name,
			Main: strings.TrimSpace(item.spec.Main),
		}
		result.TargetOrder = append(result.TargetOrder, item.name)
	}
	return result
}
