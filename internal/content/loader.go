package content

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"github.com/titanous/json5"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/yoanbernabeu/localpages/internal/constants"
	"github.com/yoanbernabeu/localpages/internal/security"
	"github.com/yoanbernabeu/localpages/internal/seo"
)

// Set is the content a build runs over.
type Set struct {
	Services  []seo.Service
	Locations []seo.Location
	// Rejected lists records that failed validation and were left out
	Rejected RecordErrors
}

// Load reads the service and location files, each merged with its
// <name>.local.<ext> override when one exists.
func Load(servicesPath, locationsPath string, logger *zap.Logger) (*Set, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	services, rejectedServices, err := LoadServices(servicesPath, logger)
	if err != nil {
		return nil, err
	}
	locations, rejectedLocations, err := LoadLocations(locationsPath, logger)
	if err != nil {
		return nil, err
	}

	set := &Set{
		Services:  services,
		Locations: locations,
		Rejected:  append(rejectedServices, rejectedLocations...),
	}
	logger.Debug("content loaded",
		zap.Int("services", len(services)),
		zap.Int("locations", len(locations)),
		zap.Int("rejected", len(set.Rejected)),
	)
	return set, nil
}

// LoadServices reads a service file. Invalid records are returned as
// RecordErrors; duplicate slugs fail the whole file.
func LoadServices(path string, logger *zap.Logger) ([]seo.Service, RecordErrors, error) {
	records, err := loadMerged(path, logger, normalizeService, func(s *seo.Service) string { return s.Slug })
	if err != nil {
		return nil, nil, err
	}

	var (
		valid    []seo.Service
		rejected RecordErrors
		seen     = make(map[string]bool, len(records))
	)
	for i, s := range records {
		if err := validateService(s); err != nil {
			rejected = append(rejected, RecordError{Service: recordName(s.Slug, i), Err: err})
			continue
		}
		if seen[s.Slug] {
			return nil, nil, fmt.Errorf("%s: %w %q", path, ErrDuplicateSlug, s.Slug)
		}
		seen[s.Slug] = true
		valid = append(valid, s)
	}
	return valid, rejected, nil
}

// LoadLocations reads a location file. Invalid records are returned as
// RecordErrors; duplicate slugs fail the whole file.
func LoadLocations(path string, logger *zap.Logger) ([]seo.Location, RecordErrors, error) {
	records, err := loadMerged(path, logger, normalizeLocation, func(l *seo.Location) string { return l.Slug })
	if err != nil {
		return nil, nil, err
	}

	var (
		valid    []seo.Location
		rejected RecordErrors
		seen     = make(map[string]bool, len(records))
	)
	for i, l := range records {
		if err := validateLocation(l); err != nil {
			rejected = append(rejected, RecordError{Location: recordName(l.Slug, i), Err: err})
			continue
		}
		if seen[l.Slug] {
			return nil, nil, fmt.Errorf("%s: %w %q", path, ErrDuplicateSlug, l.Slug)
		}
		seen[l.Slug] = true
		valid = append(valid, l)
	}
	return valid, rejected, nil
}

// loadMerged decodes path and merges its local override over it, matching
// records by slug. Override records with an unknown slug are appended.
func loadMerged[T any](path string, logger *zap.Logger, normalize func(*T), slug func(*T) string) ([]T, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	base, err := decodeFile[T](path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("content file not found: %s", path)
		}
		return nil, err
	}
	for i := range base {
		normalize(&base[i])
	}

	localPath := constants.LocalOverride(path)
	local, err := decodeFile[T](localPath)
	if err != nil {
		if os.IsNotExist(err) {
			return base, nil
		}
		return nil, err
	}

	index := make(map[string]int, len(base))
	for i := range base {
		if s := slug(&base[i]); s != "" {
			index[s] = i
		}
	}
	for i := range local {
		normalize(&local[i])
		if j, ok := index[slug(&local[i])]; ok {
			if err := mergo.Merge(&base[j], local[i], mergo.WithOverride); err != nil {
				return nil, fmt.Errorf("failed to merge %s: %w", localPath, err)
			}
			continue
		}
		base = append(base, local[i])
	}

	logger.Info("merging content with local overrides", zap.String("local", localPath))
	return base, nil
}

func decodeFile[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var out []T
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &out)
	case ".json", ".json5":
		err = json5.Unmarshal(data, &out)
	default:
		return nil, fmt.Errorf("unsupported content file %s (use .yaml, .json or .json5)", path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return out, nil
}

func normalizeService(s *seo.Service) {
	s.Slug = strings.TrimSpace(s.Slug)
	s.Title = security.StripHTML(s.Title)
	s.Description = security.StripHTML(s.Description)
	if s.Slug == "" {
		s.Slug = Slugify(s.Title)
	}
}

func normalizeLocation(l *seo.Location) {
	l.Slug = strings.TrimSpace(l.Slug)
	l.Town = security.StripHTML(l.Town)
	l.County = security.StripHTML(l.County)
	if l.Slug == "" {
		l.Slug = Slugify(l.Town)
	}
}

func validateService(s seo.Service) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if err := security.ValidateSlug(s.Slug); err != nil {
		return fmt.Errorf("%w: %v", seo.ErrInvalidService, err)
	}
	return nil
}

func validateLocation(l seo.Location) error {
	if err := l.Validate(); err != nil {
		return err
	}
	if err := security.ValidateSlug(l.Slug); err != nil {
		return fmt.Errorf("%w: %v", seo.ErrInvalidLocation, err)
	}
	if (l.Latitude == nil) != (l.Longitude == nil) {
		return fmt.Errorf("%w %q: latitude and longitude must be set together", seo.ErrInvalidLocation, l.Slug)
	}
	return nil
}

func recordName(slug string, index int) string {
	if slug != "" {
		return slug
	}
	return fmt.Sprintf("#%d", index+1)
}
