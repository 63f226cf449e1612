package wordfreq

import "strings"

// stopwords covers English plus Spanish, matching the spa+eng OCR
// configuration, plus screenshot UI noise (menu labels, buttons).
var stopwords = map[string]struct{}{
	// English
	"a": {}, "about": {}, "after": {}, "again": {}, "all": {}, "also": {},
	"am": {}, "an": {}, "and": {}, "any": {}, "are": {}, "as": {}, "at": {},
	"be": {}, "because": {}, "been": {}, "before": {}, "being": {},
	"between": {}, "both": {}, "but": {}, "by": {},
	"can": {}, "cannot": {}, "could": {},
	"did": {}, "do": {}, "does": {}, "doing": {}, "down": {}, "during": {},
	"each": {}, "else": {}, "even": {}, "ever": {}, "every": {},
	"few": {}, "for": {}, "from": {}, "further": {},
	"had": {}, "has": {}, "have": {}, "having": {}, "he": {}, "her": {},
	"here": {}, "hers": {}, "him": {}, "his": {}, "how": {},
	"i": {}, "if": {}, "in": {}, "into": {}, "is": {}, "it": {}, "its": {},
	"just": {},
	"like": {}, "likely": {},
	"made": {}, "make": {}, "many": {}, "may": {}, "me": {}, "more": {},
	"most": {}, "much": {}, "must": {}, "my": {},
	"new": {}, "no": {}, "nor": {}, "not": {}, "now": {},
	"of": {}, "off": {}, "on": {}, "once": {}, "one": {}, "only": {},
	"or": {}, "other": {}, "our": {}, "out": {}, "over": {}, "own": {},
	"same": {}, "she": {}, "should": {}, "so": {}, "some": {}, "such": {},
	"than": {}, "that": {}, "the": {}, "their": {}, "them": {}, "then": {},
	"there": {}, "these": {}, "they": {}, "this": {}, "those": {},
	"through": {}, "to": {}, "too": {},
	"under": {}, "until": {}, "up": {}, "upon": {}, "us": {}, "use": {},
	"very": {}, "via": {},
	"was": {}, "we": {}, "were": {}, "what": {}, "when": {}, "where": {},
	"which": {}, "while": {}, "who": {}, "whose": {}, "why": {},
	"will": {}, "with": {}, "would": {},
	"yet": {}, "you": {}, "your": {}, "yours": {},

	// Spanish
	"al": {}, "algo": {}, "ante": {}, "antes": {}, "aqui": {},
	"como": {}, "con": {}, "contra": {}, "cual": {}, "cuando": {},
	"de": {}, "del": {}, "desde": {}, "donde": {}, "dos": {},
	"el": {}, "ella": {}, "ellas": {}, "ellos": {}, "en": {}, "entre": {},
	"era": {}, "es": {}, "esa": {}, "ese": {}, "eso": {}, "esta": {},
	"estas": {}, "este": {}, "esto": {}, "estos": {},
	"fue": {}, "ha": {}, "hay": {}, "la": {}, "las": {}, "le": {},
	"les": {}, "lo": {}, "los": {},
	"mas": {}, "mi": {}, "mis": {}, "muy": {},
	"nada": {}, "ni": {}, "nos": {}, "nuestra": {}, "nuestro": {},
	"o": {}, "otra": {}, "otro": {},
	"para": {}, "pero": {}, "poco": {}, "por": {}, "porque": {},
	"que": {}, "quien": {},
	"se": {}, "ser": {}, "si": {}, "sin": {}, "sobre": {}, "son": {},
	"su": {}, "sus": {},
	"tambien": {}, "te": {}, "tiene": {}, "todo": {}, "todos": {},
	"tu": {}, "tus": {},
	"un": {}, "una": {}, "uno": {}, "unos": {},
	"y": {}, "ya": {}, "yo": {},

	// Screenshot UI noise
	"click": {}, "button": {}, "menu": {}, "link": {},
	"page": {}, "pages": {}, "website": {}, "site": {},
	"home": {}, "homepage": {}, "login": {}, "sign": {},
	"search": {}, "loading": {}, "load": {},
	"inicio": {}, "buscar": {}, "cerrar": {}, "abrir": {},
}

// IsStopword reports whether word should be excluded from frequency
// analysis.
func IsStopword(word string) bool {
	_, ok := stopwords[strings.ToLower(word)]
	return ok
}
