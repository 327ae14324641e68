package export

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Filename derives the output name from the author's name: diacritics
// folded, whitespace runs collapsed to "_", path-hostile characters dropped.
// An empty name gives "Resume.<ext>".
func Filename(name string, f Format) string {
	ext := ".pdf"
	if f == FormatPNG {
		ext = ".png"
	}

	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(fold, name)
	if err != nil {
		folded = name
	}
	folded = strings.Map(func(r rune) rune {
		if strings.ContainsRune(`/\:*?"<>|`, r) || unicode.IsControl(r) && !unicode.IsSpace(r) {
			return -1
		}
		return r
	}, folded)

	fields := strings.Fields(folded)
	if len(fields) == 0 {
		return "Resume" + ext
	}
	return strings.Join(fields, "_") + "_Resume" + ext
}
