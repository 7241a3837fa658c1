package model

import (
	"encoding/json"
	"math"
	"os"

	"github.com/pkg/errors"
)

// LogisticArtifact is the exported form of the probability-of-default model.
type LogisticArtifact struct {
	Intercept    float64 `json:"intercept"`
	Coefficients struct {
		SavingsRate float64 `json:"savings_rate"`
		RiskyRatio  float64 `json:"risky_ratio"`
	} `json:"coefficients"`
}

// LogisticModel is a two-feature logistic regression.
type LogisticModel struct {
	intercept   float64
	savingsCoef float64
	riskyCoef   float64
}

func NewLogisticModel(a LogisticArtifact) *LogisticModel {
	return &LogisticModel{
		intercept:   a.Intercept,
		savingsCoef: a.Coefficients.SavingsRate,
		riskyCoef:   a.Coefficients.RiskyRatio,
	}
}

// LoadLogisticModel reads a JSON logistic artifact from path.
func LoadLogisticModel(path string) (*LogisticModel, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading default model %s", path)
	}

	var a LogisticArtifact
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, errors.Wrapf(err, "decoding default model %s", path)
	}

	return NewLogisticModel(a), nil
}

// PredictDefault returns the probability of the positive (default) class.
func (m *LogisticModel) PredictDefault(savingsRate, riskyRatio float64) float64 {
	z := m.intercept + m.savingsCoef*savingsRate + m.riskyCoef*riskyRatio
	return 1 / (1 + math.Exp(-z))
}
