package suite

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/hamed0406/synccheck/internal/config"
	"github.com/hamed0406/synccheck/internal/domain"
	"github.com/hamed0406/synccheck/internal/probe"
)

// File is the optional YAML suite file.
type File struct {
	Overrides map[string]Override `yaml:"overrides"`
	Extra     []Extra             `yaml:"extra"`
}

// Override changes a default probe, matched by name.
type Override struct {
	Accept   []int  `yaml:"accept"`
	Severity string `yaml:"severity"`
	Timeout  string `yaml:"timeout"`
}

// Extra is an additional probe appended after the defaults.
type Extra struct {
	Name     string         `yaml:"name"`
	Target   string         `yaml:"target"` // api | frontend
	Method   string         `yaml:"method"`
	Path     string         `yaml:"path"`
	Auth     bool           `yaml:"auth"`
	Accept   []int          `yaml:"accept"`
	Severity string         `yaml:"severity"`
	Timeout  string         `yaml:"timeout"`
	Body     map[string]any `yaml:"body"`
	Expect   *probe.Expect  `yaml:"expect"`
}

// LoadFile reads a suite file. Unknown keys are rejected.
func LoadFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open suite file: %w", err)
	}
	defer f.Close()

	var sf File
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&sf); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse suite file %s: %w", path, err)
	}
	return &sf, nil
}

// Apply returns probes with the overrides applied and the extras appended.
// All problems are reported together.
func (f *File) Apply(cfg config.Config, probes []probe.Probe) ([]probe.Probe, error) {
	if f == nil {
		return probes, nil
	}
	out := make([]probe.Probe, len(probes), len(probes)+len(f.Extra))
	copy(out, probes)

	var errs error
	index := make(map[string]int, len(out))
	for i, p := range out {
		index[p.Name] = i
	}

	for name, ov := range f.Overrides {
		i, ok := index[name]
		if !ok {
			errs = multierr.Append(errs, fmt.Errorf("override %q: no such probe", name))
			continue
		}
		p := &out[i]
		if len(ov.Accept) > 0 {
			p.Accept = ov.Accept
		}
		if ov.Severity != "" {
			sev, err := severity(name, ov.Severity)
			errs = multierr.Append(errs, err)
			p.Severity = sev
		}
		if ov.Timeout != "" {
			d, err := timeout(name, ov.Timeout)
			errs = multierr.Append(errs, err)
			p.Timeout = d
		}
	}

	for _, x := range f.Extra {
		p, err := x.probe(cfg)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		if _, dup := index[p.Name]; dup {
			errs = multierr.Append(errs, fmt.Errorf("extra %q: duplicate probe name", p.Name))
			continue
		}
		index[p.Name] = len(out)
		out = append(out, p)
	}

	if errs != nil {
		return nil, errs
	}
	return out, nil
}

func (x Extra) probe(cfg config.Config) (probe.Probe, error) {
	if strings.TrimSpace(x.Name) == "" {
		return probe.Probe{}, errors.New("extra probe without a name")
	}
	if !strings.HasPrefix(x.Path, "/") {
		return probe.Probe{}, fmt.Errorf("extra %q: path must start with /", x.Name)
	}

	p := probe.Probe{
		Name:         x.Name,
		Method:       strings.ToUpper(x.Method),
		RequiresAuth: x.Auth,
		Accept:       x.Accept,
		Expect:       x.Expect,
	}
	if p.Method == "" {
		p.Method = http.MethodGet
	}
	if len(p.Accept) == 0 {
		p.Accept = []int{http.StatusOK}
	}
	if len(x.Body) > 0 {
		p.JSON = x.Body
	}

	switch strings.ToLower(x.Target) {
	case "", "api":
		p.Kind = probe.KindAPI
		p.URL = cfg.APIBaseURL + x.Path
		p.Timeout = cfg.APITimeout
	case "frontend":
		p.Kind = probe.KindPage
		p.URL = cfg.FrontendBaseURL + x.Path
		p.Timeout = cfg.PageTimeout
	default:
		return probe.Probe{}, fmt.Errorf("extra %q: unknown target %q", x.Name, x.Target)
	}

	var err error
	if p.Severity, err = severity(x.Name, x.Severity); err != nil {
		return probe.Probe{}, err
	}
	if x.Timeout != "" {
		if p.Timeout, err = timeout(x.Name, x.Timeout); err != nil {
			return probe.Probe{}, err
		}
	}
	return p, nil
}

func severity(name, raw string) (domain.Severity, error) {
	sev, ok := domain.ParseSeverity(raw)
	if !ok {
		return domain.SeverityError, fmt.Errorf("%q: unknown severity %q", name, raw)
	}
	return sev, nil
}

func timeout(name, raw string) (time.Duration, error) {
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%q: bad timeout %q", name, raw)
	}
	return d, nil
}
