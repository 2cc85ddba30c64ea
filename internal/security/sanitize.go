package security

import (
	"fmt"
	"net"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	// projectNameRegex validates project names
	// Allows: lowercase letters, numbers, hyphens (not at start/end)
	// Length: 1-63 characters
	projectNameRegex = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?$`)

	// slugRegex validates service and location slugs
	// Allows: lowercase letters and numbers in hyphen-separated groups
	slugRegex = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

	// relativePathRegex validates output paths
	// Allows: alphanumeric, underscores, hyphens, dots, forward slashes (no ..)
	relativePathRegex = regexp.MustCompile(`^[a-zA-Z0-9_.-]+(/[a-zA-Z0-9_.-]+)*$`)

	// strictPolicy strips every HTML element, keeping text content
	strictPolicy     *bluemonday.Policy
	strictPolicyOnce sync.Once
)

// MaxSlugLength is the longest slug accepted in a page path
const MaxSlugLength = 96

// ValidateProjectName validates a project name
func ValidateProjectName(name string) error {
	if name == "" {
		return fmt.Errorf("project name cannot be empty")
	}
	if len(name) > 63 {
		return fmt.Errorf("project name too long (max 63 characters)")
	}
	if !projectNameRegex.MatchString(name) {
		return fmt.Errorf("project name must contain only lowercase letters, numbers, and hyphens (not at start/end)")
	}
	return nil
}

// ValidateSlug validates a service or location slug.
// Slugs become path segments, so they must be URL and filesystem safe.
func ValidateSlug(slug string) error {
	if slug == "" {
		return fmt.Errorf("slug cannot be empty")
	}
	if len(slug) > MaxSlugLength {
		return fmt.Errorf("slug too long (max %d characters)", MaxSlugLength)
	}
	if !slugRegex.MatchString(slug) {
		return fmt.Errorf("slug %q must contain only lowercase letters and numbers separated by single hyphens", slug)
	}
	return nil
}

// ValidateRelativePath validates a project-relative output path.
// Paths must be relative and must not escape the project root.
func ValidateRelativePath(p string) error {
	if p == "" {
		return fmt.Errorf("path cannot be empty")
	}

	// Must be relative (no leading /)
	if strings.HasPrefix(p, "/") {
		return fmt.Errorf("path must be relative, got: %s", p)
	}

	// No parent traversal
	if strings.Contains(p, "..") {
		return fmt.Errorf("path cannot contain traversal (..): %s", p)
	}

	// Only safe characters
	if !relativePathRegex.MatchString(strings.TrimSuffix(p, "/")) {
		return fmt.Errorf("path contains invalid characters: %s", p)
	}

	return nil
}

// ValidateListenAddr validates a host:port listen address
func ValidateListenAddr(addr string) error {
	if addr == "" {
		return fmt.Errorf("listen address cannot be empty")
	}
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("listen address must be host:port: %w", err)
	}
	n, err := strconv.Atoi(port)
	if err != nil {
		return fmt.Errorf("invalid port %q", port)
	}
	if n < 1 || n > 65535 {
		return fmt.Errorf("port must be between 1 and 65535")
	}
	return nil
}

// stripPasses bounds how many layers of entity encoding StripHTML unwraps
const stripPasses = 8

// StripHTML removes markup from content-author text, keeping the text.
// Entities produced by the sanitizer are decoded back so the result is plain
// text, and decoding is repeated until no markup reappears, so an encoded tag
// such as "&lt;img&gt;" is removed rather than revived.
func StripHTML(s string) string {
	strictPolicyOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
	})

	out := s
	for i := 0; i < stripPasses; i++ {
		next := htmlUnescaper.Replace(strictPolicy.Sanitize(out))
		if next == out {
			return strings.TrimSpace(out)
		}
		out = next
	}
	return strings.TrimSpace(strings.NewReplacer("<", "", ">", "").Replace(out))
}

var htmlUnescaper = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&#34;", `"`,
	"&#39;", "'",
	"&quot;", `"`,
)
