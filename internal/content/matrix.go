package content

import "github.com/yoanbernabeu/localpages/internal/seo"

// Pair is one page: a service offered in a location.
type Pair struct {
	Location seo.Location
	Service  seo.Service
}

// Matrix returns every location/service pair, locations outer and services
// inner, in input order.
func Matrix(services []seo.Service, locations []seo.Location) []Pair {
	pairs := make([]Pair, 0, len(services)*len(locations))
	for _, loc := range locations {
		for _, svc := range services {
			pairs = append(pairs, Pair{Location: loc, Service: svc})
		}
	}
	return pairs
}

// Pairs returns the full page matrix of the set.
func (s *Set) Pairs() []Pair {
	return Matrix(s.Services, s.Locations)
}

// Find returns the page for a location and service slug.
func (s *Set) Find(locationSlug, serviceSlug string) (Pair, bool) {
	var p Pair
	found := 0
	for _, loc := range s.Locations {
		if loc.Slug == locationSlug {
			p.Location = loc
			found++
			break
		}
	}
	for _, svc := range s.Services {
		if svc.Slug == serviceSlug {
			p.Service = svc
			found++
			break
		}
	}
	return p, found == 2
}
