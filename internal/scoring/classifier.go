package scoring

import (
	"strings"
	"unicode"
)

// KeywordRule forces Category when any keyword occurs in a normalized description.
type KeywordRule struct {
	Category Category `yaml:"category"`
	Keywords []string `yaml:"keywords"`
}

// DefaultKeywordRules is evaluated top to bottom; the first matching rule wins.
var DefaultKeywordRules = []KeywordRule{
	{
		Category: CategoryIncome,
		Keywords: []string{"salary", "ltd", "limited", "corp", "bvp", "refund", "interest", "inward"},
	},
	{
		Category: CategoryInvestment,
		Keywords: []string{"fund", "sip", "stock", "lic", "insurance", "zerodha", "groww"},
	},
}

const (
	keywordConfidence  = 1.0
	degradedConfidence = 1.0
	degradedCategory   = CategoryEssential
)

// NormalizeDescription lowercases s and drops every non-alphanumeric rune.
func NormalizeDescription(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Classifier labels transactions using keyword rules first and the category
// model second. Without a model every transaction is Essential.
type Classifier struct {
	model CategoryModel
	rules []KeywordRule
}

// NewClassifier builds a Classifier. A nil model selects degraded mode.
func NewClassifier(model CategoryModel, rules []KeywordRule) *Classifier {
	normalized := make([]KeywordRule, 0, len(rules))
	for _, rule := range rules {
		keywords := make([]string, 0, len(rule.Keywords))
		for _, kw := range rule.Keywords {
			if kw = NormalizeDescription(kw); kw != "" {
				keywords = append(keywords, kw)
			}
		}
		normalized = append(normalized, KeywordRule{Category: rule.Category, Keywords: keywords})
	}

	return &Classifier{model: model, rules: normalized}
}

// Degraded reports whether the classifier runs without a category model.
func (c *Classifier) Degraded() bool {
	return c.model == nil
}

// Classify returns one ClassifiedTransaction per input, in input order.
func (c *Classifier) Classify(txns []ParsedTransaction) []ClassifiedTransaction {
	out := make([]ClassifiedTransaction, len(txns))

	if c.Degraded() {
		for i, txn := range txns {
			out[i] = ClassifiedTransaction{
				ParsedTransaction: txn,
				Category:          degradedCategory,
				Confidence:        degradedConfidence,
			}
		}
		return out
	}

	frequency := make(map[string]int, len(txns))
	for _, txn := range txns {
		frequency[txn.Description]++
	}

	for i, txn := range txns {
		text := NormalizeDescription(txn.Description)

		category, matched := c.matchKeyword(text)
		confidence := keywordConfidence
		if !matched {
			amount, _ := txn.Amount.Float64()
			category, confidence = c.model.PredictCategory(txn.Description, amount, frequency[txn.Description])
		}

		out[i] = ClassifiedTransaction{
			ParsedTransaction: txn,
			Category:          category,
			Confidence:        clampUnit(confidence),
		}
	}
	return out
}

func (c *Classifier) matchKeyword(text string) (Category, bool) {
	for _, rule := range c.rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(text, kw) {
				return rule.Category, true
			}
		}
	}
	return "", false
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
