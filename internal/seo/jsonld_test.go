package seo

import (
	"strings"
	"testing"
)

func TestBreadcrumbJSONLD(t *testing.T) {
	crumbs := []Breadcrumb{{Name: "Home", URL: "/"}, {Name: "Avalon", URL: "/locations/avalon"}}
	m := BreadcrumbJSONLD("https://example.com/", crumbs)

	items, ok := m["itemListElement"].([]map[string]any)
	if !ok || len(items) != 2 {
		t.Fatalf("itemListElement = %#v", m["itemListElement"])
	}
	if items[1]["item"] != "https://example.com/locations/avalon" {
		t.Errorf("item = %v", items[1]["item"])
	}
	if items[1]["position"] != 2 {
		t.Errorf("position = %v, want 2", items[1]["position"])
	}
}

func TestServiceJSONLD(t *testing.T) {
	lat, lng := 39.1012, -74.7177
	loc := Location{Slug: "avalon", Town: "Avalon", Latitude: &lat, Longitude: &lng}
	b := Bundle{H1: "Local Lawn Care in Avalon", Description: "desc"}

	out := JSON(ServiceJSONLD("https://example.com", "Cape Lawn Co", lawnCare, loc, b))
	for _, want := range []string{
		`"@type":"Service"`,
		`"url":"https://example.com/locations/avalon/lawn-care"`,
		`"@type":"GeoCoordinates"`,
		`"name":"Cape Lawn Co"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("ServiceJSONLD() JSON missing %s\n%s", want, out)
		}
	}
}

func TestFAQPageJSONLD(t *testing.T) {
	out := JSON(FAQPageJSONLD([]FAQ{{Question: "Q?", Answer: "A."}}))
	if !strings.Contains(out, `"acceptedAnswer":{"@type":"Answer","text":"A."}`) {
		t.Errorf("FAQPageJSONLD() = %s", out)
	}
}
