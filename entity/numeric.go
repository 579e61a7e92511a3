package entity

// numericReplacements maps the legacy Windows-1252 code points HTML5
// numeric character references must remap instead of passing through.
// Reconstructed from the WHATWG fixed remap table (the source data file
// this was ported from was not present in the retrieval pack — only its
// test file survived filtering — so this is rebuilt from the publicly
// stable remap table rather than guessed).
var numericReplacements = map[int]rune{
	0x80: '€', // EURO SIGN
	0x82: '‚', // SINGLE LOW-9 QUOTATION MARK
	0x83: 'ƒ', // LATIN SMALL LETTER F WITH HOOK
	0x84: '„', // DOUBLE LOW-9 QUOTATION MARK
	0x85: '…', // HORIZONTAL ELLIPSIS
	0x86: '†', // DAGGER
	0x87: '‡', // DOUBLE DAGGER
	0x88: 'ˆ', // MODIFIER LETTER CIRCUMFLEX ACCENT
	0x89: '‰', // PER MILLE SIGN
	0x8A: 'Š', // LATIN CAPITAL LETTER S WITH CARON
	0x8B: '‹', // SINGLE LEFT-POINTING ANGLE QUOTATION MARK
	0x8C: 'Œ', // LATIN CAPITAL LIGATURE OE
	0x8E: 'Ž', // LATIN CAPITAL LETTER Z WITH CARON
	0x91: '‘', // LEFT SINGLE QUOTATION MARK
	0x92: '’', // RIGHT SINGLE QUOTATION MARK
	0x93: '“', // LEFT DOUBLE QUOTATION MARK
	0x94: '”', // RIGHT DOUBLE QUOTATION MARK
	0x95: '•', // BULLET
	0x96: '–', // EN DASH
	0x97: '—', // EM DASH
	0x98: '˜', // SMALL TILDE
	0x99: '™', // TRADE MARK SIGN
	0x9A: 'š', // LATIN SMALL LETTER S WITH CARON
	0x9B: '›', // SINGLE RIGHT-POINTING ANGLE QUOTATION MARK
	0x9C: 'œ', // LATIN SMALL LIGATURE OE
	0x9E: 'ž', // LATIN SMALL LETTER Z WITH CARON
	0x9F: 'Ÿ', // LATIN CAPITAL LETTER Y WITH DIAERESIS
}

// disallowedControl is the fixed HTML5 control-character set
// (0x00..0x08 | 0x0B | 0x0E..0x1F | 0x7F..0x9F) that must be replaced with
// U+FFFD (after applying numericReplacements) when not otherwise remapped.
func disallowedControl(cp int) bool {
	switch {
	case cp >= 0x00 && cp <= 0x08:
		return true
	case cp == 0x0B:
		return true
	case cp >= 0x0E && cp <= 0x1F:
		return true
	case cp >= 0x7F && cp <= 0x9F:
		return true
	default:
		return false
	}
}

// ResolveNumeric maps a raw numeric-character-reference code point to its
// replacement rune and a warning code (empty if none). Code points outside
// the Unicode scalar range or in the surrogate range always produce
// U+FFFD with InvalidCharRef.
func ResolveNumeric(cp int) (r rune, warn string) {
	if cp == 0 {
		return '�', "null-character-reference"
	}
	if cp > 0x10FFFF {
		return '�', "character-reference-outside-unicode-range"
	}
	if cp >= 0xD800 && cp <= 0xDFFF {
		return '�', "surrogate-character-reference"
	}
	if repl, ok := numericReplacements[cp]; ok {
		return repl, "control-character-reference"
	}
	if disallowedControl(cp) {
		return '�', "control-character-reference"
	}
	return rune(cp), ""
}
