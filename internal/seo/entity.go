package seo

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidService is returned when a service record is missing a
	// required field.
	ErrInvalidService = errors.New("invalid service")
	// ErrInvalidLocation is returned when a location record is missing a
	// required field.
	ErrInvalidLocation = errors.New("invalid location")
)

// Service is an offering a page is generated for. Records are owned by the
// content files; the engine never modifies them.
type Service struct {
	Slug        string `yaml:"slug" json:"slug"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// Location is a town a page is generated for.
type Location struct {
	Slug      string   `yaml:"slug" json:"slug"`
	Town      string   `yaml:"town" json:"town"`
	County    string   `yaml:"county,omitempty" json:"county,omitempty"`
	Latitude  *float64 `yaml:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude *float64 `yaml:"longitude,omitempty" json:"longitude,omitempty"`
}

// Validate checks the fields the engine reads.
func (s Service) Validate() error {
	if strings.TrimSpace(s.Slug) == "" {
		return fmt.Errorf("%w: slug is required", ErrInvalidService)
	}
	if strings.TrimSpace(s.Title) == "" {
		return fmt.Errorf("%w %q: title is required", ErrInvalidService, s.Slug)
	}
	return nil
}

// Validate checks the fields the engine reads.
func (l Location) Validate() error {
	if strings.TrimSpace(l.Slug) == "" {
		return fmt.Errorf("%w: slug is required", ErrInvalidLocation)
	}
	if strings.TrimSpace(l.Town) == "" {
		return fmt.Errorf("%w %q: town is required", ErrInvalidLocation, l.Slug)
	}
	return nil
}

func validatePair(svc Service, loc Location) error {
	if err := svc.Validate(); err != nil {
		return err
	}
	return loc.Validate()
}

// seed builds the selection seed for one category of one page.
func seed(svc Service, loc Location, category string) string {
	return loc.Slug + "-" + svc.Slug + "-" + category
}
