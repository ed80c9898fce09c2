package daysoffclient

import (
	"context"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Entry is one day's form response: who asked for the day off in each role
type Entry struct {
	// Day is an ISO date (2006-01-02) or a weekday name ("Mon", "Monday")
	Day        string   `yaml:"day" validate:"required"`
	Presenters []string `yaml:"presenters,omitempty" validate:"dive,required"`
	Operators  []string `yaml:"operators,omitempty" validate:"dive,required"`
}

// responsesFile is the layout of the exported form responses
type responsesFile struct {
	DaysOff []Entry `yaml:"daysOff" validate:"dive"`
}

// Client reads day-off selections exported from the availability form
type Client struct {
	path     string
	validate *validator.Validate
}

// NewClient creates a client reading from path. An empty path means nobody is off.
func NewClient(path string) *Client {
	return &Client{
		path:     path,
		validate: validator.New(),
	}
}

// Path returns the file the client reads from
func (c *Client) Path() string {
	return c.path
}

// GetDaysOff loads and validates the day-off entries
func (c *Client) GetDaysOff(ctx context.Context) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if c.path == "" {
		return []Entry{}, nil
	}

	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read days off file: %w", err)
	}

	var file responsesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse days off file: %w", err)
	}

	if err := c.validate.Struct(&file); err != nil {
		return nil, fmt.Errorf("days off validation failed: %w", err)
	}

	if file.DaysOff == nil {
		return []Entry{}, nil
	}

	return file.DaysOff, nil
}
