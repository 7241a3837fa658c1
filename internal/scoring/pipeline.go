package scoring

import (
	"github.com/sirupsen/logrus"
)

// Report is the complete result of scoring one batch.
type Report struct {
	CreditScore  int                     `json:"credit_score"`
	Transactions []ClassifiedTransaction `json:"transactions"`
	Features     FeatureVector           `json:"features"`
	Risk         RiskAssessment          `json:"risk"`
	Score        ScoreBreakdown          `json:"score"`
	Insights     Insights                `json:"insights"`
	Degraded     DegradedState           `json:"degraded"`
}

// DegradedState tells which models were missing when the batch was scored.
type DegradedState struct {
	CategoryModel bool `json:"category_model" yaml:"category_model"`
	DefaultModel  bool `json:"default_model" yaml:"default_model"`
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithKeywordRules replaces the default keyword table. Rules are evaluated in the given order.
func WithKeywordRules(rules []KeywordRule) Option {
	return func(p *Pipeline) {
		p.rules = rules
	}
}

// WithLogger sets the logger used for per-batch debug output.
func WithLogger(logger *logrus.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// Pipeline runs the scoring stages in order. It holds no mutable state after
// construction and is safe for concurrent use.
type Pipeline struct {
	classifier   *Classifier
	defaultModel DefaultModel
	rules        []KeywordRule
	logger       *logrus.Logger
}

// NewPipeline wires the models into a Pipeline. Either model may be nil, in
// which case that stage falls back to its fixed default.
func NewPipeline(categoryModel CategoryModel, defaultModel DefaultModel, opts ...Option) *Pipeline {
	p := &Pipeline{
		defaultModel: defaultModel,
		rules:        DefaultKeywordRules,
		logger:       logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.classifier = NewClassifier(categoryModel, p.rules)

	return p
}

// Score runs every stage over txns.
func (p *Pipeline) Score(txns []Transaction) *Report {
	parsed := ParseTransactions(txns)
	classified := p.classifier.Classify(parsed)
	features := ExtractFeatures(classified)
	risk := Blend(features, p.defaultModel)
	score := Normalize(risk.ProbDefault, features)
	insights := GenerateInsights(features, risk, score, classified)

	p.logger.WithFields(logrus.Fields{
		"transactionCount": len(txns),
		"validMonthCount":  features.ValidMonthCount,
		"probDefault":      risk.ProbDefault,
		"creditScore":      score.FinalScore,
	}).Debug("Pipeline.Score.complete")

	return &Report{
		CreditScore:  score.FinalScore,
		Transactions: classified,
		Features:     features,
		Risk:         risk,
		Score:        score,
		Insights:     insights,
		Degraded: DegradedState{
			CategoryModel: p.classifier.Degraded(),
			DefaultModel:  risk.Degraded,
		},
	}
}
