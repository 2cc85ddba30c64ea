package seo

import "testing"

var testServices = []Service{
	{Slug: "lawn-care", Title: "Lawn Care"},
	{Slug: "landscaping", Title: "Landscaping"},
	{Slug: "hardscaping", Title: "Hardscaping"},
	{Slug: "irrigation", Title: "Irrigation"},
	{Slug: "tree-service", Title: "Tree Service"},
	{Slug: "power-washing", Title: "Power Washing"},
	{Slug: "snow-removal", Title: "Snow Removal"},
	{Slug: "mulching", Title: "Mulching"},
	{Slug: "sod-installation", Title: "Sod Installation"},
	{Slug: "leaf-removal", Title: "Leaf Removal"},
	{Slug: "hedge-trimming", Title: "Hedge Trimming"},
	{Slug: "aeration", Title: "Core Aeration"},
	{Slug: "fertilization", Title: "Lawn Fertilization"},
	{Slug: "paver-patios", Title: "Paver Patio Installation"},
	{Slug: "outdoor-lighting", Title: "Outdoor Landscape Lighting"},
	{Slug: "gutter-cleaning", Title: "Gutter Cleaning"},
	{Slug: "pest-control", Title: "Pest Control"},
	{Slug: "fence-installation", Title: "Fence Installation"},
	{Slug: "drainage", Title: "Yard Drainage Solutions"},
	{Slug: "spring-cleanup", Title: "Spring and Fall Cleanup"},
}

var testLocations = []Location{
	{Slug: "avalon", Town: "Avalon"},
	{Slug: "stone-harbor", Town: "Stone Harbor"},
	{Slug: "sea-isle-city", Town: "Sea Isle City"},
	{Slug: "ocean-city", Town: "Ocean City"},
	{Slug: "cape-may", Town: "Cape May"},
	{Slug: "wildwood", Town: "Wildwood"},
	{Slug: "north-wildwood", Town: "North Wildwood"},
	{Slug: "wildwood-crest", Town: "Wildwood Crest"},
	{Slug: "cape-may-court-house", Town: "Cape May Court House"},
	{Slug: "ocean-view", Town: "Ocean View"},
	{Slug: "marmora", Town: "Marmora"},
	{Slug: "strathmere", Town: "Strathmere"},
	{Slug: "west-cape-may", Town: "West Cape May"},
	{Slug: "rio-grande", Town: "Rio Grande"},
	{Slug: "villas", Town: "Villas"},
	{Slug: "erma", Town: "Erma"},
	{Slug: "tuckahoe", Town: "Tuckahoe"},
	{Slug: "woodbine", Town: "Woodbine"},
	{Slug: "dennisville", Town: "Dennisville"},
	{Slug: "del-haven", Town: "Del Haven"},
}

var (
	lawnCare = Service{Slug: "lawn-care", Title: "Lawn Care"}
	avalon   = Location{Slug: "avalon", Town: "Avalon"}
)

func newTestEngine(t testing.TB) *Engine {
	t.Helper()
	catalog, err := DefaultCatalog()
	if err != nil {
		t.Fatalf("DefaultCatalog() error = %v", err)
	}
	return NewEngine(catalog)
}
