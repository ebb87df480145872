// Package detect turns raw free text into a candidate (country, disease,
// region) attribution using the lexicon tables.
package detect

import (
	"regexp"
	"strings"

	"github.com/damiri/vetwatch/internal/lexicon"
)

// Detection is the result of classifying one piece of text. Any field may be
// empty; an empty Country or Disease means the text is out of scope for the
// monitor, which is not an error condition.
type Detection struct {
	Country string
	Disease string
	Region  string
}

// Detector resolves countries, diseases and regions against a lexicon. It is
// stateless apart from the immutable tables and a cache of compiled
// abbreviation patterns, so Detect is a pure function of its inputs.
type Detector struct {
	lex      *lexicon.Lexicon
	abbrevRe map[string]*regexp.Regexp

	// Context words split by script: ASCII words carry word-boundary
	// patterns, non-ASCII words fall back to substring search since \b
	// only understands ASCII word characters.
	ctxRe     []*regexp.Regexp
	ctxSubstr []string
}

var parenRe = regexp.MustCompile(`\(([^)]+)\)`)

// New builds a detector over the given lexicon.
func New(lex *lexicon.Lexicon) *Detector {
	// Abbreviations must match as whole tokens, never inside an unrelated
	// word ("FMD" in "FMD Motors" is a token; "ppr" in "copper" is not).
	res := make(map[string]*regexp.Regexp, len(lex.DiseaseAbbrev))
	for code := range lex.DiseaseAbbrev {
		res[code] = regexp.MustCompile(`\b` + regexp.QuoteMeta(code) + `\b`)
	}

	// Context words get the same whole-token treatment, otherwise "case"
	// hiding inside "showcase" would license a bare acronym.
	d := &Detector{lex: lex, abbrevRe: res}
	for _, w := range lex.ContextWords {
		if isASCII(w) {
			d.ctxRe = append(d.ctxRe, regexp.MustCompile(`\b`+regexp.QuoteMeta(w)+`\b`))
		} else {
			d.ctxSubstr = append(d.ctxSubstr, w)
		}
	}
	return d
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}

// Detect classifies text. countryHint, when non-empty, is resolved through
// the country table first and wins over anything found in the text; source
// adapters that already know the country (structured outbreak records) pass
// it here.
func (d *Detector) Detect(text, countryHint string) Detection {
	lower := strings.ToLower(text)

	country := d.resolveHint(countryHint)
	if country == "" {
		country = longestMatch(lower, d.lex.CountryTerms)
	}

	disease := d.detectDisease(lower)

	var region string
	if country != "" {
		region = d.detectRegion(text, lower, country)
	}

	return Detection{Country: country, Disease: disease, Region: region}
}

func (d *Detector) resolveHint(hint string) string {
	hint = strings.ToLower(strings.TrimSpace(hint))
	if hint == "" {
		return ""
	}
	if c, ok := d.lex.CountryTerms[hint]; ok {
		return c
	}
	return longestMatch(hint, d.lex.CountryTerms)
}

// detectDisease applies the two-tier policy: full phrases match
// unconditionally; short codes only as whole tokens and only when a disease
// context word appears in the same text. The gate exists to keep acronyms
// that collide with company names and common words from producing events.
func (d *Detector) detectDisease(lower string) string {
	if disease := longestMatch(lower, d.lex.DiseaseFull); disease != "" {
		return disease
	}

	if !d.hasContextWord(lower) {
		return ""
	}

	best := ""
	bestCode := ""
	for code, disease := range d.lex.DiseaseAbbrev {
		if !d.abbrevRe[code].MatchString(lower) {
			continue
		}
		if better(code, bestCode) {
			bestCode = code
			best = disease
		}
	}
	return best
}

func (d *Detector) hasContextWord(lower string) bool {
	for _, re := range d.ctxRe {
		if re.MatchString(lower) {
			return true
		}
	}
	for _, w := range d.ctxSubstr {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

// detectRegion tries the country's own table, then the country-agnostic
// fallback, then romanizes a parenthesized title segment, and finally gives
// up with the "unspecified" label. Giving up is normal: most items never
// name a sub-national region.
func (d *Detector) detectRegion(text, lower, country string) string {
	if table, ok := d.lex.RegionTerms[country]; ok {
		if r := longestMatch(lower, table); r != "" {
			return r
		}
	}
	if r := longestMatch(lower, d.lex.RegionFallback); r != "" {
		return r
	}

	for _, m := range parenRe.FindAllStringSubmatch(text, -1) {
		seg := strings.TrimSpace(m[1])
		segLower := strings.ToLower(seg)
		// Parenthesized disease codes and country names are not regions.
		if _, ok := d.lex.DiseaseAbbrev[segLower]; ok {
			continue
		}
		if longestMatch(segLower, d.lex.CountryTerms) != "" {
			continue
		}
		if longestMatch(segLower, d.lex.DiseaseFull) != "" {
			continue
		}
		if r := lexicon.Romanize(seg); r != "" {
			return r
		}
	}

	return lexicon.RegionUnspecified
}

// longestMatch scans a term table by substring containment and returns the
// canonical label of the longest matching term. Length, then lexicographic
// order, breaks ties, so the result never depends on map iteration order.
func longestMatch(lower string, terms map[string]string) string {
	best := ""
	bestTerm := ""
	for term, label := range terms {
		if !strings.Contains(lower, term) {
			continue
		}
		if better(term, bestTerm) {
			bestTerm = term
			best = label
		}
	}
	return best
}

func better(term, current string) bool {
	if current == "" {
		return true
	}
	if len(term) != len(current) {
		return len(term) > len(current)
	}
	return term < current
}
