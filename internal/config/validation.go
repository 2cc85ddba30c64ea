package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/yoanbernabeu/localpages/internal/constants"
	"github.com/yoanbernabeu/localpages/internal/security"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors holds multiple validation errors
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// HasErrors returns true if there are validation errors
func (e ValidationErrors) HasErrors() bool {
	return len(e) > 0
}

// ValidateProjectConfig validates the project configuration
func ValidateProjectConfig(config *ProjectConfig) ValidationErrors {
	var errors ValidationErrors

	if config.Name == "" {
		errors = append(errors, ValidationError{
			Field:   "name",
			Message: "project name is required",
		})
	} else if err := security.ValidateProjectName(config.Name); err != nil {
		errors = append(errors, ValidationError{
			Field:   "name",
			Message: err.Error(),
		})
	}

	if config.Site.BaseURL != "" && !isValidBaseURL(config.Site.BaseURL) {
		errors = append(errors, ValidationError{
			Field:   "site.base_url",
			Message: "base URL must be an absolute http(s) URL without query or fragment",
		})
	}

	if config.Content.Services == "" {
		errors = append(errors, ValidationError{
			Field:   "content.services",
			Message: "services file is required",
		})
	}

	if config.Content.Locations == "" {
		errors = append(errors, ValidationError{
			Field:   "content.locations",
			Message: "locations file is required",
		})
	}

	if err := security.ValidateRelativePath(config.Output.Dir); err != nil {
		errors = append(errors, ValidationError{
			Field:   "output.dir",
			Message: err.Error(),
		})
	}

	if !isValidFormat(config.Output.Format) {
		errors = append(errors, ValidationError{
			Field:   "output.format",
			Message: "unsupported output format (use astro, markdown, or json)",
		})
	}

	if config.Build.Workers < 1 || config.Build.Workers > constants.MaxWorkers {
		errors = append(errors, ValidationError{
			Field:   "build.workers",
			Message: fmt.Sprintf("workers must be between 1 and %d", constants.MaxWorkers),
		})
	}

	if config.Build.Sitemap && config.Site.BaseURL == "" {
		errors = append(errors, ValidationError{
			Field:   "site.base_url",
			Message: "base URL is required when sitemap generation is enabled",
		})
	}

	if config.Preview.Addr != "" {
		if err := security.ValidateListenAddr(config.Preview.Addr); err != nil {
			errors = append(errors, ValidationError{
				Field:   "preview.addr",
				Message: err.Error(),
			})
		}
	}

	if s := config.Audit.MaxVariantShare; s < 0 || s > 1 {
		errors = append(errors, ValidationError{
			Field:   "audit.max_variant_share",
			Message: "share must be between 0 and 1",
		})
	}

	if s := config.Audit.DuplicateSimilarity; s < 0 || s > 1 {
		errors = append(errors, ValidationError{
			Field:   "audit.duplicate_similarity",
			Message: "similarity must be between 0 and 1",
		})
	}

	return errors
}

func isValidBaseURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Host != "" && u.RawQuery == "" && u.Fragment == ""
}

func isValidFormat(format string) bool {
	validFormats := []string{FormatAstro, FormatMarkdown, FormatJSON}
	for _, f := range validFormats {
		if format == f {
			return true
		}
	}
	return false
}
