package mensa

import "strings"

// Ingredient code vocabularies per location tag. Different providers
// annotate dishes with different code alphabets, so resolution is keyed by
// the location the codes came from. Codes that resolve to no label are
// ignored: ingredient resolution is best-effort annotation, not a
// validation gate.
var ingredientCodes = map[string]map[string]string{
	// Studentenwerk data-essen markers (additionals, allergens, types).
	"studentenwerk": {
		"1":   "Farbstoff",
		"2":   "Konservierungsstoff",
		"3":   "Antioxidationsmittel",
		"4":   "Geschmacksverstärker",
		"5":   "geschwefelt",
		"6":   "geschwärzt",
		"7":   "gewachst",
		"8":   "Phosphat",
		"9":   "Süßungsmittel",
		"10":  "phenylalaninhaltig",
		"11":  "koffeinhaltig",
		"Ei":  "Ei",
		"En":  "Erdnüsse",
		"Fi":  "Fisch",
		"Gl":  "Gluten",
		"Kr":  "Krebstiere",
		"Lu":  "Lupinen",
		"Mi":  "Milch",
		"Nu":  "Schalenfrüchte",
		"Se":  "Sesam",
		"Sf":  "Senf",
		"Sl":  "Sellerie",
		"So":  "Soja",
		"Sw":  "Schwefeldioxid",
		"Wt":  "Weichtiere",
		"f":   "fleischlos",
		"v":   "vegan",
		"S":   "Schwein",
		"R":   "Rind",
		"K":   "Kalb",
		"GQB": "Geprüfte Qualität Bayern",
		"MSC": "MSC-zertifizierter Fisch",
	},
	// The FMI Bistro flyer writes allergens as full words.
	"fmi-bistro": {
		"Gluten":      "Gluten",
		"Laktose":     "Laktose",
		"Milcheiweiß": "Milcheiweiß",
		"Hühnerei":    "Ei",
		"Soja":        "Soja",
		"Nüsse":       "Schalenfrüchte",
		"Erdnuss":     "Erdnüsse",
		"Sellerie":    "Sellerie",
		"Fisch":       "Fisch",
		"Krebstiere":  "Krebstiere",
		"Weichtiere":  "Weichtiere",
		"Sesam":       "Sesam",
		"Senf":        "Senf",
		"Milch":       "Milch",
		"Ei":          "Ei",
	},
	// IPP uses the common two-letter allergen codes plus additive digits.
	"ipp-bistro": {
		"1":  "Farbstoff",
		"2":  "Konservierungsstoff",
		"3":  "Antioxidationsmittel",
		"4":  "Geschmacksverstärker",
		"Ei": "Ei",
		"En": "Erdnüsse",
		"Fi": "Fisch",
		"Gl": "Gluten",
		"Kr": "Krebstiere",
		"Lu": "Lupinen",
		"Mi": "Milch",
		"Nu": "Schalenfrüchte",
		"Se": "Sesam",
		"Sf": "Senf",
		"Sl": "Sellerie",
		"So": "Soja",
		"Sw": "Schwefeldioxid",
		"Wt": "Weichtiere",
	},
	// The Mediziner Mensa marks dishes with single letters and digits.
	"mediziner-mensa": {
		"1": "Farbstoff",
		"2": "Konservierungsstoff",
		"3": "Antioxidationsmittel",
		"4": "Geschmacksverstärker",
		"5": "geschwefelt",
		"6": "geschwärzt",
		"7": "gewachst",
		"8": "Phosphat",
		"9": "Süßungsmittel",
		"A": "Gluten",
		"B": "Krebstiere",
		"C": "Ei",
		"E": "Fisch",
		"F": "Erdnüsse",
		"G": "Soja",
		"H": "Milch",
		"K": "Schalenfrüchte",
		"L": "Sellerie",
		"M": "Senf",
		"N": "Sesam",
		"O": "Sulfite",
		"P": "Lupinen",
		"R": "Weichtiere",
		"S": "Schwein",
		"T": "Rind",
		"U": "Wild",
		"V": "fleischlos",
		"W": "vegan",
		"X": "Alkohol",
		"Y": "Gelatine",
		"Z": "Knoblauch",
	},
}

// Ingredients accumulates the resolved ingredient labels of one dish for
// one location. Repeated parsing of the same raw string is idempotent.
type Ingredients struct {
	Location string
	Set      IngredientSet
}

// NewIngredients creates an empty accumulator for the given location tag.
// Studentenwerk locations ("mensa-garching", "stubistro-arcisstr", ...)
// share one vocabulary; the text providers each carry their own.
func NewIngredients(location string) *Ingredients {
	return &Ingredients{Location: location, Set: IngredientSet{}}
}

// vocabulary returns the code table for the accumulator's location,
// defaulting to the shared Studentenwerk alphabet for location tags without
// a dedicated one.
func (i *Ingredients) vocabulary() map[string]string {
	if codes, ok := ingredientCodes[i.Location]; ok {
		return codes
	}
	return ingredientCodes["studentenwerk"]
}

// ParseIngredients splits a raw marker string on commas, canonicalizes each
// code and adds the resolved labels to the set. Unknown codes are silently
// ignored.
func (i *Ingredients) ParseIngredients(raw string) {
	codes := i.vocabulary()
	for _, code := range strings.Split(raw, ",") {
		code = strings.TrimSpace(code)
		if code == "" {
			continue
		}
		if label, ok := codes[code]; ok {
			i.Set.Add(label)
		}
	}
}
