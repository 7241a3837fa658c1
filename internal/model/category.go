package model

import (
	"encoding/json"
	"math"
	"os"
	"strings"
	"unicode"

	"github.com/pkg/errors"

	"github.com/carson-networks/creditwise/internal/scoring"
)

// Scaler standardizes a numeric feature as (x - Mean) / Scale.
type Scaler struct {
	Mean  float64 `json:"mean"`
	Scale float64 `json:"scale"`
}

func (s Scaler) apply(x float64) float64 {
	if s.Scale == 0 {
		return x - s.Mean
	}
	return (x - s.Mean) / s.Scale
}

// ClassWeights are the linear coefficients of one category.
type ClassWeights struct {
	Bias      float64            `json:"bias"`
	Amount    float64            `json:"amount"`
	Frequency float64            `json:"frequency"`
	Terms     map[string]float64 `json:"terms"`
}

// CategoryArtifact is the exported form of a trained category classifier.
type CategoryArtifact struct {
	Classes   []string                `json:"classes"`
	IDF       map[string]float64      `json:"idf"`
	NgramMax  int                     `json:"ngram_max"`
	Amount    Scaler                  `json:"amount"`
	Frequency Scaler                  `json:"frequency"`
	Weights   map[string]ClassWeights `json:"weights"`
}

// CategoryModel is a TF-IDF text classifier with standardized amount and
// frequency features and a softmax over linear class scores.
type CategoryModel struct {
	classes   []scoring.Category
	weights   []ClassWeights
	idf       map[string]float64
	ngramMax  int
	amount    Scaler
	frequency Scaler
}

// NewCategoryModel validates an artifact and builds the model from it.
func NewCategoryModel(a CategoryArtifact) (*CategoryModel, error) {
	if len(a.Classes) == 0 {
		return nil, errors.New("category model has no classes")
	}

	m := &CategoryModel{
		classes:   make([]scoring.Category, len(a.Classes)),
		weights:   make([]ClassWeights, len(a.Classes)),
		idf:       a.IDF,
		ngramMax:  a.NgramMax,
		amount:    a.Amount,
		frequency: a.Frequency,
	}
	if m.ngramMax < 1 {
		m.ngramMax = 1
	}

	for i, name := range a.Classes {
		category, err := scoring.ParseCategory(name)
		if err != nil {
			return nil, errors.Wrap(err, "category model")
		}
		w, ok := a.Weights[name]
		if !ok {
			return nil, errors.Errorf("category model has no weights for class %q", name)
		}
		m.classes[i] = category
		m.weights[i] = w
	}

	return m, nil
}

// LoadCategoryModel reads a JSON category artifact from path.
func LoadCategoryModel(path string) (*CategoryModel, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading category model %s", path)
	}

	var a CategoryArtifact
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, errors.Wrapf(err, "decoding category model %s", path)
	}

	return NewCategoryModel(a)
}

// PredictCategory returns the most probable category and its probability.
// Ties go to the class listed first in the artifact.
func (m *CategoryModel) PredictCategory(text string, amount float64, frequency int) (scoring.Category, float64) {
	probs := m.probabilities(text, amount, frequency)

	best := 0
	for i := 1; i < len(probs); i++ {
		if probs[i] > probs[best] {
			best = i
		}
	}
	return m.classes[best], probs[best]
}

func (m *CategoryModel) probabilities(text string, amount float64, frequency int) []float64 {
	tfidf := m.vectorize(text)
	scaledAmount := m.amount.apply(amount)
	scaledFrequency := m.frequency.apply(float64(frequency))

	logits := make([]float64, len(m.weights))
	for i, w := range m.weights {
		z := w.Bias + w.Amount*scaledAmount + w.Frequency*scaledFrequency
		for _, tw := range tfidf {
			z += w.Terms[tw.term] * tw.value
		}
		logits[i] = z
	}
	return softmax(logits)
}

type termWeight struct {
	term  string
	value float64
}

// vectorize builds an L2-normalized TF-IDF vector over the known vocabulary,
// ordered by first occurrence so that sums are reproducible.
func (m *CategoryModel) vectorize(text string) []termWeight {
	var vec []termWeight
	index := make(map[string]int)
	for _, term := range ngrams(tokenize(text), m.ngramMax) {
		if _, known := m.idf[term]; !known {
			continue
		}
		if i, seen := index[term]; seen {
			vec[i].value++
			continue
		}
		index[term] = len(vec)
		vec = append(vec, termWeight{term: term, value: 1})
	}

	var norm float64
	for i := range vec {
		vec[i].value *= m.idf[vec[i].term]
		norm += vec[i].value * vec[i].value
	}
	if norm == 0 {
		return vec
	}

	norm = math.Sqrt(norm)
	for i := range vec {
		vec[i].value /= norm
	}
	return vec
}

// tokenize splits text into lowercase alphanumeric runs of at least two runes.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	tokens := fields[:0]
	for _, f := range fields {
		if len([]rune(f)) >= 2 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

func ngrams(tokens []string, maxN int) []string {
	out := make([]string, 0, len(tokens)*maxN)
	for n := 1; n <= maxN; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			out = append(out, strings.Join(tokens[i:i+n], " "))
		}
	}
	return out
}

func softmax(logits []float64) []float64 {
	maxLogit := math.Inf(-1)
	for _, z := range logits {
		maxLogit = math.Max(maxLogit, z)
	}

	var sum float64
	probs := make([]float64, len(logits))
	for i, z := range logits {
		probs[i] = math.Exp(z - maxLogit)
		sum += probs[i]
	}
	for i := range probs {
		probs[i] /= sum
	}
	return probs
}
