package service

import (
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/creditwise/internal/scoring"
	"github.com/carson-networks/creditwise/internal/storage/report"
)

// Service holds all business logic services.
type Service struct {
	Score *ScoreService
}

// Dependencies are the collaborators of the service layer. Reports and
// Operator may be nil when report storage is disabled.
type Dependencies struct {
	Pipeline       *scoring.Pipeline
	Reports        report.IReader
	Operator       reportProcessor
	Narrator       summarizer
	ReportsEnabled bool
	Logger         *logrus.Logger
}

// NewService creates a new Service from its dependencies.
func NewService(deps Dependencies) *Service {
	return &Service{
		Score: NewScoreService(deps),
	}
}
