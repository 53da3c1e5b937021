package classify

import "strings"

// categoryOrder fixes the iteration order of the keyword classifier.
// health_query must be checked before medical_records: the first matching
// category wins, there is no scoring.
var categoryOrder = []Category{
	CategoryHealthQuery,
	CategoryMedicalRecords,
}

// keywordTable maps language code -> category -> keywords. Built once at
// process start and never mutated; matching is substring-based on the
// lowercased input, not tokenized.
var keywordTable = map[string]map[Category][]string{
	"en": {
		CategoryHealthQuery: {
			"fever", "cold", "cough", "headache", "pain", "ache",
			"vomit", "nausea", "dizzy", "rash", "sore", "injury",
			"symptom", "remedy", "medicine", "sick",
		},
		CategoryMedicalRecords: {
			"record", "report", "prescription", "history",
			"document", "lab result", "scan",
		},
	},
	"hi": {
		CategoryHealthQuery: {
			"बुखार", "दर्द", "खांसी", "सिरदर्द", "उल्टी",
			"चक्कर", "बीमार", "दवा", "इलाज",
		},
		CategoryMedicalRecords: {
			"रिकॉर्ड", "रिपोर्ट", "पर्चा", "दस्तावेज़",
		},
	},
}

// KeywordClassifier assigns a coarse category by literal keyword lookup.
type KeywordClassifier struct {
	table map[string]map[Category][]string
}

func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{table: keywordTable}
}

// Classify returns the first category in categoryOrder with a keyword that is
// a substring of the lowercased text, or CategoryUnknown when the language
// has no registered keywords or nothing matches.
func (c *KeywordClassifier) Classify(text, language string) Category {
	byCategory, ok := c.table[language]
	if !ok {
		return CategoryUnknown
	}
	lowered := strings.ToLower(text)
	for _, category := range categoryOrder {
		for _, keyword := range byCategory[category] {
			if strings.Contains(lowered, keyword) {
				return category
			}
		}
	}
	return CategoryUnknown
}
