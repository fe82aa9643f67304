package match

// Calibration tables for the decision pipeline. All values were tuned
// empirically against the phrase catalog; treat them as load-bearing
// constants, not defaults to retune.

// matchThresholds is the minimum boosted similarity for accepting a group
// during re-ranking. Group C is stricter because it tends to attract typos.
var matchThresholds = map[string]float64{
	"A": 0.60,
	"B": 0.63,
	"C": 0.78,
}

// defaultMatchThreshold applies to groups without an explicit entry.
const defaultMatchThreshold = 0.70

// spellThresholds is the minimum similarity below which spelling-out is
// provisionally triggered. Always stricter than the match threshold.
var spellThresholds = map[string]float64{
	"A": 0.75,
	"B": 0.80,
	"C": 0.85,
}

// defaultSpellThreshold applies to groups without an explicit entry.
const defaultSpellThreshold = 0.60

// Boost and penalty constants.
const (
	longPhraseBoost   = 0.15 // phrases of 3+ words
	mediumPhraseBoost = 0.08 // exactly 2 words
	topGroupBonus     = 0.05 // candidate is the top centroid-ranked group
	lengthPenaltyStep = 0.05 // per character of single-word length mismatch

	// Similarity band in which an unknown lone short word is treated as a
	// probable proper name.
	nameBandLow  = 0.50
	nameBandHigh = 0.85

	// Character-length band of typical Spanish first names.
	nameMinLen = 3
	nameMaxLen = 8

	// A Title-Case query below this similarity is treated as a proper
	// noun; at or above it, it is a near-exact catalog hit.
	capitalizedCutoff = 0.98
)

// synonyms expands common query words so weak single-word signals still
// land near the right centroid. Variants are capped at 5 per query.
var synonyms = map[string][]string{
	"ayuda":    {"asistencia", "soporte", "apoyo"},
	"problema": {"error", "fallo", "inconveniente", "issue"},
	"quiero":   {"deseo", "necesito", "requiero"},
	"cambiar":  {"modificar", "actualizar", "editar"},
	"cancelar": {"eliminar", "borrar", "anular"},
	"hola":     {"saludos", "buenos días", "buenas"},
	"gracias":  {"agradecimiento", "muchas gracias", "te agradezco"},
}

// maxSynonymVariants caps the expansion, original query included.
const maxSynonymVariants = 5

// commonSpanishNames are frequent first names; a query matching one of
// them exactly is spelled out rather than matched.
var commonSpanishNames = map[string]struct{}{
	"juan": {}, "jose": {}, "antonio": {}, "manuel": {}, "francisco": {},
	"david": {}, "carlos": {}, "miguel": {}, "pedro": {}, "luis": {},
	"jesus": {}, "pablo": {}, "javier": {}, "sergio": {}, "rafael": {},
	"daniel": {}, "jorge": {}, "alberto": {}, "fernando": {}, "ricardo": {},
	"alejandro": {}, "adrian": {}, "andres": {}, "raul": {}, "enrique": {},
	"ivan":  {},
	"maria": {}, "carmen": {}, "ana": {}, "isabel": {}, "pilar": {},
	"teresa": {}, "rosa": {}, "laura": {}, "marta": {}, "elena": {},
	"sara": {}, "lucia": {}, "paula": {}, "sofia": {}, "cristina": {},
	"andrea": {}, "julia": {}, "raquel": {}, "beatriz": {}, "patricia": {},
}

// extraKnownWords extends the dataset vocabulary with common
// interjections and typo variants so they are not mistaken for names.
var extraKnownWords = []string{
	"ayuda", "hola", "gracias", "bien", "mal", "si", "no",
	"vale", "ok", "perdon", "espera", "entiendo", "auxilio",
	"socorro", "doctor", "hospital", "salida", "fuego", "urgente",
	"alto", "ayda", "ola", "hla", "grcias",
}

func matchThreshold(groupID string) float64 {
	if t, ok := matchThresholds[groupID]; ok {
		return t
	}
	return defaultMatchThreshold
}

func spellThreshold(groupID string) float64 {
	if t, ok := spellThresholds[groupID]; ok {
		return t
	}
	return defaultSpellThreshold
}
