// Package lexicon holds the static lookup tables the detector works from:
// country terms, disease terms (full phrases and context-gated short codes),
// and per-country region tables. Tables are built once and never mutated.
package lexicon

// Canonical disease labels, as they appear in outgoing reports.
const (
	DiseasePPR = "طاعون المجترات الصغيرة (PPR)"
	DiseaseRVF = "حمّى الوادي المتصدع (RVF)"
	DiseaseFMD = "الحمّى القلاعية (FMD)"
	DiseaseAI  = "إنفلونزا الطيور"
	DiseaseLSD = "مرض الجلد العقدي"
)

// RegionUnspecified is the region label for events that resolved a country
// and disease but no recognizable sub-national region.
const RegionUnspecified = "unspecified"

// Lexicon is an immutable set of lookup tables. Build one with Default and
// pass it explicitly into the detector; there is no ambient global table.
type Lexicon struct {
	// CountryTerms maps lowercased phrases to canonical country labels.
	CountryTerms map[string]string

	// DiseaseFull maps lowercased full phrases (multi-word or unambiguous
	// terms) to canonical disease labels. Matched by substring containment.
	DiseaseFull map[string]string

	// DiseaseAbbrev maps short codes (FMD, RVF, ...) to canonical disease
	// labels. These collide with ordinary words and proper nouns, so the
	// detector only accepts them as whole tokens and only when a context
	// word is also present.
	DiseaseAbbrev map[string]string

	// ContextWords license an abbreviation match when present as whole
	// words in the same text.
	ContextWords []string

	// RegionTerms maps canonical country label -> lowercased region phrase
	// -> canonical region label.
	RegionTerms map[string]map[string]string

	// RegionFallback is the country-agnostic region table, consulted when
	// the country's own table has no match.
	RegionFallback map[string]string
}

// Default returns the built-in lexicon covering the priority diseases and
// the watched countries plus their neighbors.
func Default() *Lexicon {
	return &Lexicon{
		CountryTerms:   countryTerms,
		DiseaseFull:    diseaseFull,
		DiseaseAbbrev:  diseaseAbbrev,
		ContextWords:   contextWords,
		RegionTerms:    regionTerms,
		RegionFallback: regionFallback,
	}
}

var countryTerms = map[string]string{
	"saudi arabia":                  "Saudi Arabia",
	"kingdom of saudi arabia":       "Saudi Arabia",
	"saudi":                         "Saudi Arabia",
	"السعودية":                      "Saudi Arabia",
	"المملكة العربية السعودية":      "Saudi Arabia",
	"sudan":                         "Sudan",
	"السودان":                       "Sudan",
	"south sudan":                   "South Sudan",
	"جنوب السودان":                  "South Sudan",
	"somalia":                       "Somalia",
	"الصومال":                       "Somalia",
	"ethiopia":                      "Ethiopia",
	"إثيوبيا":                       "Ethiopia",
	"اثيوبيا":                       "Ethiopia",
	"djibouti":                      "Djibouti",
	"جيبوتي":                        "Djibouti",
	"jordan":                        "Jordan",
	"الأردن":                        "Jordan",
	"الاردن":                        "Jordan",
	"yemen":                         "Yemen",
	"اليمن":                         "Yemen",
	"eritrea":                       "Eritrea",
	"إريتريا":                       "Eritrea",
	"egypt":                         "Egypt",
	"مصر":                           "Egypt",
	"kenya":                         "Kenya",
	"كينيا":                         "Kenya",
}

var diseaseFull = map[string]string{
	"peste des petits ruminants":           DiseasePPR,
	"sheep and goat plague":                DiseasePPR,
	"goat plague":                          DiseasePPR,
	"طاعون المجترات الصغيرة":               DiseasePPR,
	"طاعون المجترات":                       DiseasePPR,
	"rift valley fever":                    DiseaseRVF,
	"حمى الوادي المتصدع":                   DiseaseRVF,
	"حمّى الوادي المتصدع":                  DiseaseRVF,
	"foot-and-mouth disease":               DiseaseFMD,
	"foot and mouth disease":               DiseaseFMD,
	"foot-and-mouth":                       DiseaseFMD,
	"foot and mouth":                       DiseaseFMD,
	"الحمى القلاعية":                       DiseaseFMD,
	"الحمّى القلاعية":                      DiseaseFMD,
	"avian influenza":                      DiseaseAI,
	"highly pathogenic avian influenza":    DiseaseAI,
	"bird flu":                             DiseaseAI,
	"avian flu":                            DiseaseAI,
	"إنفلونزا الطيور":                      DiseaseAI,
	"انفلونزا الطيور":                      DiseaseAI,
	"lumpy skin disease":                   DiseaseLSD,
	"مرض الجلد العقدي":                     DiseaseLSD,
	"الجلد العقدي":                         DiseaseLSD,
}

var diseaseAbbrev = map[string]string{
	"ppr":  DiseasePPR,
	"rvf":  DiseaseRVF,
	"fmd":  DiseaseFMD,
	"lsd":  DiseaseLSD,
	"hpai": DiseaseAI,
	"h5n1": DiseaseAI,
	"h5n8": DiseaseAI,
}

var contextWords = []string{
	"outbreak", "outbreaks", "confirmed", "case", "cases", "infection",
	"infected", "epidemic", "virus", "disease", "livestock", "cattle",
	"sheep", "goat", "goats", "herd", "herds", "poultry", "culled",
	"culling", "quarantine", "vaccination", "veterinary", "slaughter",
	"تفشي", "إصابة", "اصابة", "حالة", "حالات", "وباء", "فيروس", "مرض",
	"ماشية", "أغنام", "اغنام", "ماعز", "دواجن", "حجر", "بيطري", "نفوق",
}

var regionTerms = map[string]map[string]string{
	"Saudi Arabia": {
		"jazan":            "Jazan",
		"jizan":            "Jazan",
		"جازان":            "Jazan",
		"najran":           "Najran",
		"نجران":            "Najran",
		"asir":             "Asir",
		"عسير":             "Asir",
		"riyadh":           "Riyadh",
		"الرياض":           "Riyadh",
		"eastern province": "Eastern Province",
		"المنطقة الشرقية":  "Eastern Province",
		"makkah":           "Makkah",
		"mecca":            "Makkah",
		"مكة":              "Makkah",
		"madinah":          "Madinah",
		"medina":           "Madinah",
		"المدينة":          "Madinah",
		"tabuk":            "Tabuk",
		"تبوك":             "Tabuk",
		"qassim":           "Al-Qassim",
		"القصيم":           "Al-Qassim",
		"hail":             "Hail",
		"حائل":             "Hail",
		"al-jawf":          "Al-Jawf",
		"al jawf":          "Al-Jawf",
		"الجوف":            "Al-Jawf",
		"northern borders": "Northern Borders",
		"al-baha":          "Al-Baha",
		"الباحة":           "Al-Baha",
	},
	"Sudan": {
		"khartoum":      "Khartoum",
		"الخرطوم":       "Khartoum",
		"north darfur":  "North Darfur",
		"south darfur":  "South Darfur",
		"west darfur":   "West Darfur",
		"darfur":        "Darfur",
		"دارفور":        "Darfur",
		"kassala":       "Kassala",
		"كسلا":          "Kassala",
		"gedaref":       "Gedaref",
		"القضارف":       "Gedaref",
		"river nile":    "River Nile",
		"red sea state": "Red Sea State",
		"red sea":       "Red Sea State",
		"white nile":    "White Nile",
		"blue nile":     "Blue Nile",
		"sennar":        "Sennar",
		"north kordofan": "North Kordofan",
		"south kordofan": "South Kordofan",
		"kordofan":      "Kordofan",
		"كردفان":        "Kordofan",
	},
	"Ethiopia": {
		"afar":              "Afar",
		"عفر":               "Afar",
		"amhara":            "Amhara",
		"oromia":            "Oromia",
		"tigray":            "Tigray",
		"somali region":     "Somali Region",
		"gambela":           "Gambela",
		"benishangul-gumuz": "Benishangul-Gumuz",
		"benishangul":       "Benishangul-Gumuz",
		"addis ababa":       "Addis Ababa",
		"أديس أبابا":        "Addis Ababa",
	},
	"Somalia": {
		"puntland":    "Puntland",
		"somaliland":  "Somaliland",
		"banaadir":    "Banaadir",
		"mogadishu":   "Banaadir",
		"مقديشو":      "Banaadir",
		"jubaland":    "Jubaland",
		"galmudug":    "Galmudug",
		"hirshabelle": "Hirshabelle",
	},
	"Djibouti": {
		"djibouti city": "Djibouti City",
		"tadjourah":     "Tadjourah",
		"obock":         "Obock",
		"dikhil":        "Dikhil",
		"ali sabieh":    "Ali Sabieh",
		"arta":          "Arta",
	},
	"Jordan": {
		"amman":  "Amman",
		"عمان":   "Amman",
		"irbid":  "Irbid",
		"إربد":   "Irbid",
		"mafraq": "Mafraq",
		"المفرق": "Mafraq",
		"zarqa":  "Zarqa",
		"الزرقاء": "Zarqa",
		"aqaba":  "Aqaba",
		"العقبة": "Aqaba",
		"karak":  "Karak",
		"madaba": "Madaba",
		"balqa":  "Balqa",
	},
}

var regionFallback = map[string]string{
	"nile delta":     "Nile Delta",
	"upper egypt":    "Upper Egypt",
	"horn of africa": "Horn of Africa",
	"جازان":          "Jazan",
	"دارفور":         "Darfur",
}
