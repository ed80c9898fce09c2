package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

const (
	DefaultSlotCount     = 16
	DefaultFirstSlotHour = 8
	DefaultBlankMarker   = "——"
	DefaultWeekRule      = "FREQ=DAILY;COUNT=7"
)

// RoleConfig defines a role's pool and its sticky anchor preferences
type RoleConfig struct {
	Pool           []string `yaml:"pool" validate:"required,min=1,unique,dive,required"`
	MorningAnchors []string `yaml:"morningAnchors,omitempty" validate:"dive,required"`
	EveningAnchors []string `yaml:"eveningAnchors,omitempty" validate:"dive,required"`
	NeverEvening   []string `yaml:"neverEvening,omitempty" validate:"dive,required"`
	ShuffleAnchors bool     `yaml:"shuffleAnchors,omitempty"`
}

// Roles holds the two role pools
type Roles struct {
	Presenters RoleConfig `yaml:"presenters"`
	Operators  RoleConfig `yaml:"operators"`
}

// RecurringDayOff marks people as off on every date matching the rrule
type RecurringDayOff struct {
	RRule  string   `yaml:"rrule" validate:"required"`
	Role   string   `yaml:"role" validate:"required,oneof=presenters operators"`
	People []string `yaml:"people" validate:"required,min=1,dive,required"`
}

// Config represents the application configuration
type Config struct {
	Roles            Roles             `yaml:"roles"`
	SlotCount        int               `yaml:"slotCount,omitempty" validate:"min=0,max=24"`
	FirstSlotHour    *int              `yaml:"firstSlotHour,omitempty" validate:"omitempty,min=0,max=23"`
	BlankMarker      string            `yaml:"blankMarker,omitempty"`
	WeekRule         string            `yaml:"weekRule,omitempty"`
	DaysOffFile      string            `yaml:"daysOffFile,omitempty"`
	RecurringDaysOff []RecurringDayOff `yaml:"recurringDaysOff,omitempty" validate:"dive"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from rota_config.yaml
// It looks for the config file in the current directory first, then in the user's home directory
func Load() (*Config, error) {
	return LoadWithEnv("")
}

// LoadWithEnv loads the configuration for an environment
// For example, env="test" will look for "rota_config.test.yaml"
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findConfigFile(env)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()

	return &cfg, nil
}

// Validate validates the configuration struct, the role pools and rrule syntax
func Validate(cfg *Config) error {
	// Run struct validation
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if err := validateRoles(&cfg.Roles); err != nil {
		return err
	}

	if cfg.WeekRule != "" {
		if _, err := rrule.StrToRRule(cfg.WeekRule); err != nil {
			return fmt.Errorf("invalid rrule in weekRule: %w", err)
		}
	}

	// Validate rrule syntax and membership for each recurring day off
	for i, dayOff := range cfg.RecurringDaysOff {
		if _, err := rrule.StrToRRule(dayOff.RRule); err != nil {
			return fmt.Errorf("invalid rrule in recurringDaysOff[%d]: %w", i, err)
		}
		if err := CheckRecurringRule(dayOff.RRule); err != nil {
			return fmt.Errorf("recurringDaysOff[%d]: %w", i, err)
		}

		pool := cfg.Roles.Pool(dayOff.Role)
		for _, person := range dayOff.People {
			if !slices.Contains(pool, person) {
				return fmt.Errorf("recurringDaysOff[%d]: %s is not in the %s pool", i, person, dayOff.Role)
			}
		}
	}

	return nil
}

// CheckRecurringRule rejects rules whose occurrences depend on where they start but have no DTSTART.
// A rule without DTSTART is evaluated from the week being planned, so INTERVAL and COUNT would
// be counted from a different day every week.
func CheckRecurringRule(value string) error {
	opt, err := rrule.StrToROption(value)
	if err != nil {
		return fmt.Errorf("invalid rrule: %w", err)
	}
	if !opt.Dtstart.IsZero() {
		return nil
	}
	if opt.Interval > 1 || opt.Count > 0 {
		return fmt.Errorf("rrule %q uses INTERVAL or COUNT and needs a DTSTART to anchor it", value)
	}
	return nil
}

// validateRoles checks the pools are disjoint and preferences only name pool members
func validateRoles(roles *Roles) error {
	for _, name := range roles.Presenters.Pool {
		if slices.Contains(roles.Operators.Pool, name) {
			return fmt.Errorf("%s is in both the presenters and operators pools", name)
		}
	}

	for _, roleName := range []string{"presenters", "operators"} {
		role := roles.Role(roleName)
		sets := []struct {
			name    string
			members []string
		}{
			{"morningAnchors", role.MorningAnchors},
			{"eveningAnchors", role.EveningAnchors},
			{"neverEvening", role.NeverEvening},
		}
		for _, set := range sets {
			for _, name := range set.members {
				if !slices.Contains(role.Pool, name) {
					return fmt.Errorf("roles.%s.%s: %s is not in the %s pool", roleName, set.name, name, roleName)
				}
			}
		}
	}

	return nil
}

// Role returns the configuration for a role name ("presenters" or "operators")
func (r *Roles) Role(role string) RoleConfig {
	switch role {
	case "presenters":
		return r.Presenters
	case "operators":
		return r.Operators
	}
	return RoleConfig{}
}

// Pool returns the pool for a role name
func (r *Roles) Pool(role string) []string {
	return r.Role(role).Pool
}

func (cfg *Config) applyDefaults() {
	if cfg.SlotCount == 0 {
		cfg.SlotCount = DefaultSlotCount
	}
	if cfg.FirstSlotHour == nil {
		hour := DefaultFirstSlotHour
		cfg.FirstSlotHour = &hour
	}
	if cfg.BlankMarker == "" {
		cfg.BlankMarker = DefaultBlankMarker
	}
	if cfg.WeekRule == "" {
		cfg.WeekRule = DefaultWeekRule
	}
}

// findConfigFile searches for rota_config.yaml in current directory and home directory
// If env is provided, it adds it as an extension (e.g., "rota_config.test.yaml")
func findConfigFile(env string) (string, error) {
	configFileName := "rota_config.yaml"
	if env != "" {
		configFileName = "rota_config." + env + ".yaml"
	}

	// Check current directory
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file %s not found in current directory or home directory", configFileName)
}
