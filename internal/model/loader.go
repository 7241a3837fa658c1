package model

import (
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/creditwise/internal/scoring"
)

// Paths locates the model artifacts. An empty path skips that artifact.
type Paths struct {
	CategoryModel string
	DefaultModel  string
	KeywordRules  string
}

// Models is what the scoring pipeline is built from. A nil model means the
// pipeline runs that stage in degraded mode.
type Models struct {
	Category scoring.CategoryModel
	Default  scoring.DefaultModel
	Rules    []scoring.KeywordRule
}

// Load reads every configured artifact. Failures are logged as warnings and
// never returned: a missing model leaves its slot nil.
func Load(paths Paths, logger *logrus.Logger) Models {
	models := Models{Rules: scoring.DefaultKeywordRules}

	if paths.CategoryModel == "" {
		logger.Warn("Model.Load.categoryModel not configured, classifier degraded")
	} else if m, err := LoadCategoryModel(paths.CategoryModel); err != nil {
		logger.WithError(err).Warn("Model.Load.categoryModel unavailable, classifier degraded")
	} else {
		models.Category = m
	}

	if paths.DefaultModel == "" {
		logger.Warn("Model.Load.defaultModel not configured, default probability fixed at 0.5")
	} else if m, err := LoadLogisticModel(paths.DefaultModel); err != nil {
		logger.WithError(err).Warn("Model.Load.defaultModel unavailable, default probability fixed at 0.5")
	} else {
		models.Default = m
	}

	if paths.KeywordRules != "" {
		rules, err := LoadKeywordRules(paths.KeywordRules)
		if err != nil {
			logger.WithError(err).Warn("Model.Load.keywordRules unavailable, using built-in rules")
		} else {
			models.Rules = rules
		}
	}

	logger.WithFields(logrus.Fields{
		"categoryModel": models.Category != nil,
		"defaultModel":  models.Default != nil,
		"keywordRules":  len(models.Rules),
	}).Info("Model.Load.complete")

	return models
}

// Pipeline builds a scoring pipeline from the loaded models.
func (m Models) Pipeline(logger *logrus.Logger) *scoring.Pipeline {
	return scoring.NewPipeline(m.Category, m.Default,
		scoring.WithKeywordRules(m.Rules),
		scoring.WithLogger(logger),
	)
}
