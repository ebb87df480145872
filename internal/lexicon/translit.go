package lexicon

import (
	"strings"
	"unicode"
)

// arabicLatin maps Arabic letters to rough Latin approximations. This is an
// approximate rendering for report readability, not a transliteration
// standard; region names that matter are carried in the region tables.
var arabicLatin = map[rune]string{
	'ا': "a", 'أ': "a", 'إ': "i", 'آ': "a", 'ء': "'", 'ؤ': "u", 'ئ': "i",
	'ب': "b", 'ت': "t", 'ث': "th", 'ج': "j", 'ح': "h", 'خ': "kh",
	'د': "d", 'ذ': "dh", 'ر': "r", 'ز': "z", 'س': "s", 'ش': "sh",
	'ص': "s", 'ض': "d", 'ط': "t", 'ظ': "z", 'ع': "a", 'غ': "gh",
	'ف': "f", 'ق': "q", 'ك': "k", 'ل': "l", 'م': "m", 'ن': "n",
	'ه': "h", 'ة': "a", 'و': "w", 'ي': "y", 'ى': "a",
}

// Romanize renders an unmapped region string as best-effort Latin text.
// Arabic script is transliterated letter by letter, diacritics are dropped,
// and the result is title-cased. Latin input passes through title-cased.
// Empty input yields an empty string.
func Romanize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	var b strings.Builder
	for _, r := range s {
		if lat, ok := arabicLatin[r]; ok {
			b.WriteString(lat)
			continue
		}
		// Arabic diacritics and tatweel carry no letter value.
		if unicode.In(r, unicode.Mn) || r == 'ـ' {
			continue
		}
		b.WriteRune(r)
	}

	words := strings.Fields(b.String())
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
