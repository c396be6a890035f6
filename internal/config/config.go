package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/derekprior/roundrobin/internal/fixture"
)

const (
	DefaultRoundsPerPage = 9
	DefaultColumns       = 3
)

// Team is a roster entry. In YAML it may be a plain name or a mapping with
// name and id.
type Team struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

func (t *Team) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		t.Name = value.Value
		return nil
	case yaml.MappingNode:
		type plain Team
		var p plain
		if err := value.Decode(&p); err != nil {
			return err
		}
		*t = Team(p)
		return nil
	default:
		return fmt.Errorf("line %d: team must be a name or a mapping with name and id", value.Line)
	}
}

type Export struct {
	RoundsPerPage int `yaml:"rounds_per_page"`
	Columns       int `yaml:"columns"`
}

type Config struct {
	League    string `yaml:"league"`
	Seed      *int64 `yaml:"seed"`
	Uppercase bool   `yaml:"uppercase"`
	Teams     []Team `yaml:"teams"`
	Export    Export `yaml:"export"`
}

// FixtureTeams returns the roster in the form the generator takes.
func (c *Config) FixtureTeams() []fixture.Team {
	teams := make([]fixture.Team, len(c.Teams))
	for i, t := range c.Teams {
		teams[i] = fixture.Team{ID: t.ID, Name: t.Name}
	}
	return teams
}

// TeamNames returns all team names in roster order.
func (c *Config) TeamNames() []string {
	names := make([]string, len(c.Teams))
	for i, t := range c.Teams {
		names[i] = t.Name
	}
	return names
}

// LoadFromBytes parses YAML bytes into a Config, fills defaults and
// validates it.
func LoadFromBytes(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.normalize()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromFile reads and parses a YAML config file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return LoadFromBytes(data)
}

func (c *Config) normalize() {
	c.League = strings.TrimSpace(c.League)
	if c.Uppercase {
		c.League = strings.ToUpper(c.League)
	}
	for i := range c.Teams {
		t := &c.Teams[i]
		t.Name = strings.TrimSpace(t.Name)
		if c.Uppercase {
			t.Name = strings.ToUpper(t.Name)
		}
		if t.ID == "" {
			t.ID = uuid.NewString()
		}
	}
	if c.Export.RoundsPerPage == 0 {
		c.Export.RoundsPerPage = DefaultRoundsPerPage
	}
	if c.Export.Columns == 0 {
		c.Export.Columns = DefaultColumns
	}
}

// validate checks what the generator cannot: roster uniqueness and export
// layout. Empty league and team names are left to fixture.Generate.
func (c *Config) validate() error {
	names := make(map[string]int)
	ids := make(map[string]int)
	for i, t := range c.Teams {
		if t.Name == fixture.ByeName {
			return fmt.Errorf("team %d: %q is reserved for byes", i+1, fixture.ByeName)
		}
		if t.Name != "" {
			if prev, ok := names[t.Name]; ok {
				return fmt.Errorf("team %q is listed twice (entries %d and %d)", t.Name, prev+1, i+1)
			}
			names[t.Name] = i
		}
		if prev, ok := ids[t.ID]; ok {
			return fmt.Errorf("team id %q is used by entries %d and %d", t.ID, prev+1, i+1)
		}
		ids[t.ID] = i
	}

	if c.Export.RoundsPerPage < 1 {
		return fmt.Errorf("export rounds_per_page must be positive, got %d", c.Export.RoundsPerPage)
	}
	if c.Export.Columns < 1 {
		return fmt.Errorf("export columns must be positive, got %d", c.Export.Columns)
	}
	return nil
}
