package entity

// Named holds a subset of the WHATWG HTML named character reference table:
// every legacy (semicolon-optional) reference, plus the common entities
// this engine's own tests exercise. The prior generated ~2,125-entry
// table (internal/constants entities data, backing constants.NamedEntities)
// was not present in the retrieval pack — only its test file survived
// filtering — so this is a representative subset built from the public,
// stable WHATWG table rather than a fabricated guess. See DESIGN.md.
var Named = map[string]string{
	"AElig": "Æ", "AMP": "&", "Aacute": "Á", "Acirc": "Â",
	"Agrave": "À", "Aring": "Å", "Atilde": "Ã", "Auml": "Ä",
	"COPY": "©", "Ccedil": "Ç", "ETH": "Ð", "Eacute": "É",
	"Ecirc": "Ê", "Egrave": "È", "Euml": "Ë", "GT": ">",
	"Iacute": "Í", "Icirc": "Î", "Igrave": "Ì", "Iuml": "Ï",
	"LT": "<", "Ntilde": "Ñ", "Oacute": "Ó", "Ocirc": "Ô",
	"Ograve": "Ò", "Oslash": "Ø", "Otilde": "Õ", "Ouml": "Ö",
	"QUOT": "\"", "REG": "®", "THORN": "Þ", "Uacute": "Ú",
	"Ucirc": "Û", "Ugrave": "Ù", "Uuml": "Ü", "Yacute": "Ý",
	"aacute": "á", "acirc": "â", "acute": "´", "aelig": "æ",
	"agrave": "à", "amp": "&", "aring": "å", "atilde": "ã",
	"auml": "ä", "brvbar": "¦", "ccedil": "ç", "cedil": "¸",
	"cent": "¢", "copy": "©", "curren": "¤", "deg": "°",
	"divide": "÷", "eacute": "é", "ecirc": "ê", "egrave": "è",
	"eth": "ð", "euml": "ë", "frac12": "½", "frac14": "¼",
	"frac34": "¾", "gt": ">", "iacute": "í", "icirc": "î",
	"iexcl": "¡", "igrave": "ì", "iquest": "¿", "iuml": "ï",
	"laquo": "«", "lt": "<", "macr": "¯", "micro": "µ",
	"middot": "·", "nbsp": " ", "not": "¬", "ntilde": "ñ",
	"oacute": "ó", "ocirc": "ô", "ograve": "ò", "ordf": "ª",
	"ordm": "º", "oslash": "ø", "otilde": "õ", "ouml": "ö",
	"para": "¶", "plusmn": "±", "pound": "£", "quot": "\"",
	"raquo": "»", "reg": "®", "sect": "§", "shy": "­",
	"sup1": "¹", "sup2": "²", "sup3": "³", "szlig": "ß",
	"thorn": "þ", "times": "×", "uacute": "ú", "ucirc": "û",
	"ugrave": "ù", "uml": "¨", "uuml": "ü", "yacute": "ý",
	"yen": "¥", "yuml": "ÿ",

	// Common modern entities (always semicolon-terminated).
	"apos": "'", "bull": "•", "ndash": "–", "mdash": "—",
	"lsquo": "‘", "rsquo": "’", "ldquo": "“", "rdquo": "”",
	"hellip": "…", "trade": "™", "dagger": "†", "Dagger": "‡",
	"permil": "‰", "lsaquo": "‹", "rsaquo": "›", "euro": "€",
	"larr": "←", "uarr": "↑", "rarr": "→", "darr": "↓",
	"harr": "↔", "alpha": "α", "beta": "β", "gamma": "γ",
	"delta": "δ", "pi": "π", "sigma": "σ", "omega": "ω",
	"infin": "∞", "ne": "≠", "le": "≤", "ge": "≥",
	"sum": "∑", "prod": "∏", "radic": "√", "part": "∂",
	"nabla": "∇", "isin": "∈", "notin": "∉", "cap": "∩",
	"cup": "∪", "int": "∫", "there4": "∴", "sim": "∼",
	"cong": "≅", "asymp": "≈", "equiv": "≡", "sub": "⊂",
	"sup": "⊃", "sube": "⊆", "supe": "⊇", "oplus": "⊕",
	"otimes": "⊗", "perp": "⊥", "sdot": "⋅", "spades": "♠",
	"clubs": "♣", "hearts": "♥", "diams": "♦", "loz": "◊",
	"circ": "ˆ", "tilde": "˜", "thinsp": " ", "zwnj": "‌",
	"zwj": "‍", "lrm": "‎", "rlm": "‏", "oline": "‾",
	"frasl": "⁄", "weierp": "℘", "image": "ℑ", "real": "ℜ",
	"alefsym": "ℵ", "crarr": "↵", "lceil": "⌈", "rceil": "⌉",
	"lfloor": "⌊", "rfloor": "⌋", "lang": "⟨", "rang": "⟩",

	// Two-codepoint expansions (combining forms), per the Token
	// note that named references may expand to one OR two code points.
	"acE": "∾̳", "bne": "=⃥", "bnequiv": "≡⃥",
	"caps": "∩︀", "cups": "∪︀",
}

// Legacy is the subset of Named that HTML5 also accepts without a
// trailing semicolon (the "ambiguous ampersand" set).
var Legacy = map[string]bool{
	"AMP": true, "COPY": true, "GT": true, "LT": true, "QUOT": true,
	"amp": true, "copy": true, "gt": true, "lt": true, "quot": true,
	"AElig": true, "Aacute": true, "Acirc": true, "Agrave": true, "Aring": true,
	"Atilde": true, "Auml": true, "Ccedil": true, "ETH": true, "Eacute": true,
	"Ecirc": true, "Egrave": true, "Euml": true, "Iacute": true, "Icirc": true,
	"Igrave": true, "Iuml": true, "Ntilde": true, "Oacute": true, "Ocirc": true,
	"Ograve": true, "Oslash": true, "Otilde": true, "Ouml": true, "THORN": true,
	"Uacute": true, "Ucirc": true, "Ugrave": true, "Uuml": true, "Yacute": true,
	"aacute": true, "acirc": true, "acute": true, "aelig": true, "agrave": true,
	"aring": true, "atilde": true, "auml": true, "brvbar": true, "ccedil": true,
	"cedil": true, "cent": true, "curren": true, "deg": true, "divide": true,
	"eacute": true, "ecirc": true, "egrave": true, "eth": true, "euml": true,
	"frac12": true, "frac14": true, "frac34": true, "iacute": true, "icirc": true,
	"iexcl": true, "igrave": true, "iquest": true, "iuml": true, "laquo": true,
	"macr": true, "micro": true, "middot": true, "nbsp": true, "not": true,
	"ntilde": true, "oacute": true, "ocirc": true, "ograve": true, "ordf": true,
	"ordm": true, "oslash": true, "otilde": true, "ouml": true, "para": true,
	"plusmn": true, "pound": true, "raquo": true, "reg": true, "sect": true,
	"shy": true, "sup1": true, "sup2": true, "sup3": true, "szlig": true,
	"thorn": true, "times": true, "uacute": true, "ucirc": true, "ugrave": true,
	"uml": true, "uuml": true, "yacute": true, "yen": true, "yuml": true,
}
