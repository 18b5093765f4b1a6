// Package charset provides DICOM character-set decoding capability lookup.
//
// A Specific Character Set element (0008,0005) carries one or more DICOM
// "defined terms" naming the text encoding used by every character-string
// element in the rest of the dataset. This package maps those defined
// terms to a concrete decoder, built on golang.org/x/text and
// golang.org/x/net's charset registry.
//
// This is one of the opaque lookups the core parsing engine treats as an
// external collaborator: the parser only needs to resolve a name to a
// CharacterSet and hold onto it as a per-element snapshot.
//
// See http://dicom.nema.org/medical/dicom/current/output/chtml/part02/sect_D.6.2.html
package charset

import (
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// CharacterSet pairs a DICOM defined term with the decoder it resolves to.
type CharacterSet struct {
	// Term is the DICOM defined term as it appears in a SpecificCharacterSet
	// value, e.g. "ISO_IR 100" or "ISO_IR 192".
	Term string

	// Encoding is the golang.org/x/text encoding that decodes byte strings
	// under this character set into UTF-8.
	Encoding encoding.Encoding

	// Name is the canonical label golang.org/x/net/html/charset resolved,
	// e.g. "windows-1252" or "utf-8".
	Name string
}

// defaultCharacterSet is in effect until a SpecificCharacterSet element is
// parsed, per the DICOM default character repertoire (ISO-IR 6), which
// golang's charset registry resolves to windows-1252 as a practical
// superset of the 7-bit default repertoire.
var defaultCharacterSet = &CharacterSet{
	Term:     "",
	Encoding: charmap.Windows1252,
	Name:     "windows-1252",
}

// termToLabel maps DICOM SpecificCharacterSet defined terms to the charset
// labels golang.org/x/net/html/charset understands.
//
// Non-exhaustive by design: covers the single-byte and common multi-byte
// terms likely to appear on modalities/PACS a consumer will realistically
// encounter; ISO 2022 escape-sequence extensions are mapped to their
// closest non-escaped equivalent rather than fully implementing ISO 2022
// code-switching, matching the teacher pack's own documented TODO on this
// point.
var termToLabel = map[string]string{
	"ISO_IR 6":        "us-ascii",
	"ISO_IR 100":      "iso-ir-100",
	"ISO_IR 101":      "iso-ir-101",
	"ISO_IR 109":      "iso-ir-109",
	"ISO_IR 110":      "iso-ir-110",
	"ISO_IR 144":      "iso-ir-144",
	"ISO_IR 127":      "iso-ir-127",
	"ISO_IR 126":      "iso-ir-126",
	"ISO_IR 138":      "iso-ir-138",
	"ISO_IR 148":      "iso-ir-148",
	"ISO_IR 13":       "shift-jis",
	"ISO_IR 166":      "tis-620",
	"ISO_IR 192":      "utf-8",
	"GB18030":         "gb18030",
	"GBK":             "gbk",
	"ISO 2022 IR 6":   "us-ascii",
	"ISO 2022 IR 100": "iso-ir-100",
	"ISO 2022 IR 101": "iso-ir-101",
	"ISO 2022 IR 109": "iso-ir-109",
	"ISO 2022 IR 110": "iso-ir-110",
	"ISO 2022 IR 144": "iso-ir-144",
	"ISO 2022 IR 127": "iso-ir-127",
	"ISO 2022 IR 126": "iso-ir-126",
	"ISO 2022 IR 138": "iso-ir-138",
	"ISO 2022 IR 148": "iso-ir-148",
	"ISO 2022 IR 13":  "shift-jis",
	"ISO 2022 IR 166": "tis-620",
	"ISO 2022 IR 87":  "iso-2022-jp",
	"ISO 2022 IR 159": "iso-2022-jp",
	"ISO 2022 IR 149": "euc-kr",
}

// dict memoizes resolved CharacterSet descriptors by term, built lazily the
// first time Lookup is called for a given term (golang.org/x/net/html/charset
// lookups allocate, so this avoids repeating the work for a repeated term).
//
// Deliberately has no entry for the empty-string term: Default() is the
// only sanctioned way to get defaultCharacterSet. Lookup("") must return
// (nil, false) so a genuinely empty SpecificCharacterSet name is reported
// as ErrNoCharacterSetName rather than silently resolved.
var dict = map[string]*CharacterSet{}

// Default returns the character set in effect before any SpecificCharacterSet
// element has been parsed.
func Default() *CharacterSet {
	return defaultCharacterSet
}

// Lookup resolves a DICOM defined term to a CharacterSet descriptor.
// Returns (nil, false) if the term is not recognised; the parser's
// recovery rule on a genuinely empty/unusable name is to fail fast
// (ErrNoCharacterSetName) rather than to substitute a fallback, since an
// unreadable dataset is worse than a loud error — unlike the VR/TS
// recovery rules, which favour permissive forward compatibility.
func Lookup(term string) (*CharacterSet, bool) {
	if cs, ok := dict[term]; ok {
		return cs, true
	}

	label, ok := termToLabel[term]
	if !ok {
		return nil, false
	}

	enc, canonicalName := charset.Lookup(label)
	if enc == nil {
		return nil, false
	}

	cs := &CharacterSet{Term: term, Encoding: enc, Name: canonicalName}
	dict[term] = cs
	return cs, true
}
