// Package stats implements the personal analytics engine: a pure
// transformation from an angler's catch and outing collections plus a filter
// selection into an aggregated report. The package performs no I/O, holds no
// state between calls, and allocates fresh accumulators per invocation, so
// concurrent calls with different inputs are safe without locking.
package stats

import "strings"

// speciesLabels is the controlled vocabulary for species codes.
var speciesLabels = map[string]string{
	"carp":         "Carp",
	"mirror_carp":  "Mirror Carp",
	"common_carp":  "Common Carp",
	"grass_carp":   "Grass Carp",
	"pike":         "Pike",
	"roach":        "Roach",
	"perch":        "Perch",
	"bream":        "Bream",
	"tench":        "Tench",
	"rudd":         "Rudd",
	"chub":         "Chub",
	"barbel":       "Barbel",
	"zander":       "Zander",
	"catfish":      "Catfish",
	"eel":          "Eel",
	"gudgeon":      "Gudgeon",
	"grayling":     "Grayling",
	"brown_trout":  "Brown Trout",
	"rainbow_trout": "Rainbow Trout",
	"salmon":       "Salmon",
	"sea_bass":     "Sea Bass",
	"mackerel":     "Mackerel",
	"cod":          "Cod",
	"flounder":     "Flounder",
}

// techniqueLabels is the controlled vocabulary for technique codes.
var techniqueLabels = map[string]string{
	"float":          "Float Fishing",
	"feeder":         "Feeder",
	"method_feeder":  "Method Feeder",
	"ledger":         "Ledgering",
	"pole":           "Pole Fishing",
	"whip":           "Whip",
	"spinning":       "Spinning",
	"jigging":        "Jigging",
	"drop_shot":      "Drop Shot",
	"deadbait":       "Deadbaiting",
	"livebait":       "Livebaiting",
	"fly":            "Fly Fishing",
	"trolling":       "Trolling",
	"surface":        "Surface Fishing",
	"stalking":       "Stalking",
}

// baitLabels is the controlled vocabulary for bait codes.
var baitLabels = map[string]string{
	"maggot":     "Maggot",
	"caster":     "Caster",
	"worm":       "Worm",
	"lobworm":    "Lobworm",
	"boilie":     "Boilie",
	"pop_up":     "Pop-up",
	"pellet":     "Pellet",
	"sweetcorn":  "Sweetcorn",
	"bread":      "Bread",
	"luncheon_meat": "Luncheon Meat",
	"paste":      "Paste",
	"lure":       "Lure",
	"spinner":    "Spinner",
	"soft_lure":  "Soft Lure",
	"dry_fly":    "Dry Fly",
	"nymph":      "Nymph",
}

// Humanize converts a vocabulary-style code ("method_feeder",
// "partly-cloudy") into a display label ("Method Feeder", "Partly Cloudy").
func Humanize(code string) string {
	replaced := strings.NewReplacer("_", " ", "-", " ").Replace(code)
	words := strings.Fields(replaced)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
