package meli

import "sort"

// Categories maps curated English category names to MercadoLibre Chile
// category ids. Some names intentionally share an id (the upstream
// taxonomy groups them under one node).
var Categories = map[string]string{
	"Technology":                 "MLC1648",
	"Home & Appliances":          "MLC1574",
	"Sports & Fitness":           "MLC1276",
	"Beauty & Personal Care":     "MLC1246",
	"Toys & Games":               "MLC1132",
	"Books, Movies & Music":      "MLC3025",
	"Vehicles":                   "MLC1743",
	"Fashion":                    "MLC1430",
	"Electronics":                "MLC1000",
	"Computers":                  "MLC1648",
	"Cellphones & Smartphones":   "MLC1051",
	"Cameras & Photography":      "MLC1039",
	"Video Games & Consoles":     "MLC1144",
	"Home & Garden":              "MLC1574",
	"Tools & Construction":       "MLC1500",
	"Industrial Equipment":       "MLC1499",
	"Services":                   "MLC1540",
	"Real Estate":                "MLC1459",
	"Food & Drinks":              "MLC1403",
	"Office Supplies":            "MLC1499",
	"Health & Medical Equipment": "MLC1246",
}

// CategoryNames returns the known category names sorted alphabetically.
func CategoryNames() []string {
	names := make([]string, 0, len(Categories))
	for name := range Categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CategoryID resolves a category name to its id. The match is exact.
func CategoryID(name string) (string, bool) {
	id, ok := Categories[name]
	return id, ok
}
