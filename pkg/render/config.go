package render

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the YAML-backed render configuration (C11): canvas
// defaults, validator allow-list, and placement-solver tuning. Every
// Solver default matches spec.md §4.5 exactly.
type Config struct {
	Seed uint64 `yaml:"seed"`

	Canvas CanvasCfg `yaml:"canvas"`
	Solver SolverCfg `yaml:"solver"`

	// ListAttributes names attribute tags treated as list heads by the
	// evaluator (e.g. "d_list").
	ListAttributes []string `yaml:"listAttributes"`

	// AllowedInvalid names attributes the element materialiser (C4)
	// may strip without a WarnAndContinue log line: known-expected
	// failures of the default attribute validator, not a correctness
	// claim about them.
	AllowedInvalid []string `yaml:"allowedInvalid"`

	// ParallelGroups is parsed from the config file, but the scene
	// assembler (C6) does not read it: sibling groups' placement
	// problems are always solved sequentially.
	ParallelGroups bool `yaml:"parallelGroups"`
}

// CanvasCfg holds the output document's viewBox and physical size. The
// viewBox always comes from these fields; the x/y/width/height
// attributes of the graph's svg-tagged node are not read.
type CanvasCfg struct {
	DefaultX      float64 `yaml:"defaultX"`
	DefaultY      float64 `yaml:"defaultY"`
	DefaultWidth  float64 `yaml:"defaultWidth"`
	DefaultHeight float64 `yaml:"defaultHeight"`

	PhysicalWidthIn  float64 `yaml:"physicalWidthIn"`
	PhysicalHeightIn float64 `yaml:"physicalHeightIn"`
}

// SolverCfg tunes the simulated-annealing placement solver (C5).
// Defaults (see DefaultConfig) match spec.md §4.5 verbatim.
type SolverCfg struct {
	PrimaryWeight   float64 `yaml:"primaryWeight"`
	SecondaryWeight float64 `yaml:"secondaryWeight"`

	CoolingRate                  float64 `yaml:"coolingRate"`
	MinTemperature               float64 `yaml:"minTemperature"`
	FallbackInitialTemp          float64 `yaml:"fallbackInitialTemp"`
	MaxAcceptancesPerTemperature int     `yaml:"maxAcceptancesPerTemperature"`
}

// DefaultConfig returns the configuration spec.md §4.5 and §6 specify:
// canvas viewBox (0,0,200,200), 8in×8in physical size, PRIMARY=10,
// SECONDARY=1, cooling 0.95, min temperature 0.1, fallback initial
// temperature 1000, 100 acceptances per temperature.
func DefaultConfig() *Config {
	return &Config{
		Canvas: CanvasCfg{
			DefaultX: 0, DefaultY: 0, DefaultWidth: 200, DefaultHeight: 200,
			PhysicalWidthIn: 8, PhysicalHeightIn: 8,
		},
		Solver: SolverCfg{
			PrimaryWeight:                 10,
			SecondaryWeight:               1,
			CoolingRate:                   0.95,
			MinTemperature:                0.1,
			FallbackInitialTemp:           1000,
			MaxAcceptancesPerTemperature:  100,
		},
		AllowedInvalid: []string{},
		ListAttributes: []string{},
	}
}

// LoadConfig reads and validates a YAML configuration file, filling in
// spec.md defaults for any zero-valued field the file omits.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return LoadConfigFromBytes(data)
}

// LoadConfigFromBytes parses YAML configuration from a byte slice.
func LoadConfigFromBytes(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	return cfg, nil
}

// Validate range-checks every tunable field.
func (c *Config) Validate() error {
	if c.Canvas.DefaultWidth <= 0 || c.Canvas.DefaultHeight <= 0 {
		return fmt.Errorf("canvas: defaultWidth/defaultHeight must be positive, got %f/%f",
			c.Canvas.DefaultWidth, c.Canvas.DefaultHeight)
	}
	if c.Canvas.PhysicalWidthIn <= 0 || c.Canvas.PhysicalHeightIn <= 0 {
		return fmt.Errorf("canvas: physicalWidthIn/physicalHeightIn must be positive, got %f/%f",
			c.Canvas.PhysicalWidthIn, c.Canvas.PhysicalHeightIn)
	}

	if c.Solver.PrimaryWeight <= 0 {
		return fmt.Errorf("solver: primaryWeight must be positive, got %f", c.Solver.PrimaryWeight)
	}
	if c.Solver.SecondaryWeight <= 0 {
		return fmt.Errorf("solver: secondaryWeight must be positive, got %f", c.Solver.SecondaryWeight)
	}
	if c.Solver.CoolingRate <= 0 || c.Solver.CoolingRate >= 1 {
		return fmt.Errorf("solver: coolingRate must be in range (0,1), got %f", c.Solver.CoolingRate)
	}
	if c.Solver.MinTemperature <= 0 {
		return fmt.Errorf("solver: minTemperature must be positive, got %f", c.Solver.MinTemperature)
	}
	if c.Solver.FallbackInitialTemp <= 0 {
		return fmt.Errorf("solver: fallbackInitialTemp must be positive, got %f", c.Solver.FallbackInitialTemp)
	}
	if c.Solver.MaxAcceptancesPerTemperature <= 0 {
		return fmt.Errorf("solver: maxAcceptancesPerTemperature must be positive, got %d",
			c.Solver.MaxAcceptancesPerTemperature)
	}

	return nil
}

// ToYAML serializes the config to YAML bytes.
func (c *Config) ToYAML() ([]byte, error) {
	return yaml.Marshal(c)
}

// Hash computes a deterministic hash of the configuration, used to
// derive per-group placement-solver seeds (§4.9) together with the
// master seed in Config.Seed.
func (c *Config) Hash() []byte {
	data, err := c.ToYAML()
	if err != nil {
		h := sha256.New()
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], c.Seed)
		h.Write(buf[:])
		return h.Sum(nil)
	}

	h := sha256.New()
	h.Write(data)
	return h.Sum(nil)
}

// IsAllowedInvalid reports whether attr is in the configured
// expected-invalid allow-list (materialize (C4) suppresses its
// WarnAndContinue log line for these).
func (c *Config) IsAllowedInvalid(attr string) bool {
	for _, a := range c.AllowedInvalid {
		if a == attr {
			return true
		}
	}
	return false
}
