package compliance

// SafeVocabulary are hedging words. Their use is recorded, never a violation.
var SafeVocabulary = []string{
	"typically", "usually", "generally", "often", "commonly",
	"may", "might", "could", "subject to", "depends on",
	"approximately", "roughly", "about", "estimated", "projected",
}

// BannedVocabulary are absolute words. Each one found is a violation.
var BannedVocabulary = []string{
	"best", "cheapest", "guaranteed", "exact", "final",
	"will", "always", "never", "perfect", "ideal",
}

type forbiddenPhrase struct {
	phrase  string
	message string
}

// forbiddenPhrases are assertions generated content must not make.
var forbiddenPhrases = []forbiddenPhrase{
	{"guaranteed", "Contains guarantee language"},
	{"will receive", "Promises specific outcomes"},
	{"final cost", "Presents costs as final"},
	{"exact price", "Gives exact prices without ranges"},
}

const (
	VocabularySafe   = "safe"
	VocabularyBanned = "banned"
)
