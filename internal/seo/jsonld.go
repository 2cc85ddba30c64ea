package seo

import (
	"encoding/json"
	"strings"
)

// JSON marshals v to a compact JSON string. It returns an empty string on error.
func JSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// BreadcrumbJSONLD builds a schema.org BreadcrumbList. Relative URLs are
// resolved against baseURL.
func BreadcrumbJSONLD(baseURL string, crumbs []Breadcrumb) map[string]any {
	el := make([]map[string]any, 0, len(crumbs))
	for i, c := range crumbs {
		el = append(el, map[string]any{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     c.Name,
			"item":     absoluteURL(baseURL, c.URL),
		})
	}
	return map[string]any{
		"@context":        "https://schema.org",
		"@type":           "BreadcrumbList",
		"itemListElement": el,
	}
}

// FAQPageJSONLD builds a schema.org FAQPage.
func FAQPageJSONLD(faqs []FAQ) map[string]any {
	el := make([]map[string]any, 0, len(faqs))
	for _, f := range faqs {
		el = append(el, map[string]any{
			"@type": "Question",
			"name":  f.Question,
			"acceptedAnswer": map[string]any{
				"@type": "Answer",
				"text":  f.Answer,
			},
		})
	}
	return map[string]any{
		"@context":   "https://schema.org",
		"@type":      "FAQPage",
		"mainEntity": el,
	}
}

// ServiceJSONLD builds a schema.org Service offered by siteName in the town
// of loc.
func ServiceJSONLD(baseURL, siteName string, svc Service, loc Location, b Bundle) map[string]any {
	area := map[string]any{
		"@type": "City",
		"name":  loc.Town,
	}
	if loc.Latitude != nil && loc.Longitude != nil {
		area["geo"] = map[string]any{
			"@type":     "GeoCoordinates",
			"latitude":  *loc.Latitude,
			"longitude": *loc.Longitude,
		}
	}
	m := map[string]any{
		"@context":    "https://schema.org",
		"@type":       "Service",
		"name":        b.H1,
		"serviceType": svc.Title,
		"description": b.Description,
		"areaServed":  area,
		"url":         absoluteURL(baseURL, PageURL(loc.Slug, svc.Slug)),
	}
	if siteName != "" {
		m["provider"] = map[string]any{"@type": "LocalBusiness", "name": siteName}
	}
	return m
}

func absoluteURL(baseURL, path string) string {
	if baseURL == "" {
		return path
	}
	return strings.TrimRight(baseURL, "/") + path
}
