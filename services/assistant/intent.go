package assistant

import (
	"strings"
	"unicode"
)

// MatterKind classifies a question for prompt assembly.
type MatterKind string

const (
	// MatterOffense covers questions about a possible crime, where police
	// reporting guidance applies.
	MatterOffense MatterKind = "offense"
	// MatterCivil covers contracts, tenancy, employment, family and other
	// non-criminal questions.
	MatterCivil MatterKind = "civil"
)

// offenseStems match any word starting with them.
var offenseStems = []string{
	"accident", "theft", "thief", "thieves", "steal", "stole", "robb", "burglar",
	"harass", "assault", "attack", "murder", "rape", "molest", "stalk",
	"kidnap", "abduct", "extort", "blackmail", "bribe", "fraud", "cheat",
	"scam", "forger", "threat", "dowry", "violen", "abus", "crime", "criminal",
	"cybercrime", "police", "arrest", "hit-and-run", "drunk", "snatch", "pickpocket",
	"trespass", "defam", "acid", "lynch", "smuggl", "counterfeit",
}

// offenseWords must match a whole word.
var offenseWords = map[string]bool{
	"fir": true, "ipc": true, "bns": true, "beat": true, "beaten": true,
	"hit": true, "killed": true, "kill": true, "stabbed": true, "robbed": true,
	"mugged": true, "crpc": true, "bail": true,
}

// DetectMatter classifies a question by its vocabulary. Anything without an
// offense term is treated as civil.
func DetectMatter(question string) MatterKind {
	words := strings.FieldsFunc(strings.ToLower(question), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-'
	})
	for _, w := range words {
		if offenseWords[w] {
			return MatterOffense
		}
		for _, stem := range offenseStems {
			if strings.HasPrefix(w, stem) {
				return MatterOffense
			}
		}
	}
	return MatterCivil
}
