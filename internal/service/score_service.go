package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/creditwise/internal/logging"
	"github.com/carson-networks/creditwise/internal/narrator"
	"github.com/carson-networks/creditwise/internal/operator/actions"
	"github.com/carson-networks/creditwise/internal/scoring"
	"github.com/carson-networks/creditwise/internal/storage/report"
)

type reportProcessor interface {
	Process(ctx context.Context, action actions.IAction) error
}

type summarizer interface {
	Enabled() bool
	Summarize(ctx context.Context, r *scoring.Report) (*narrator.Summary, error)
}

// ScoreService scores transaction batches and keeps per-user report history.
type ScoreService struct {
	pipeline       *scoring.Pipeline
	reports        report.IReader
	operator       reportProcessor
	narrator       summarizer
	reportsEnabled bool
	logger         *logrus.Logger
	now            func() time.Time
}

// NewScoreService creates a new ScoreService.
func NewScoreService(deps Dependencies) *ScoreService {
	logger := deps.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &ScoreService{
		pipeline:       deps.Pipeline,
		reports:        deps.Reports,
		operator:       deps.Operator,
		narrator:       deps.Narrator,
		reportsEnabled: deps.ReportsEnabled && deps.Reports != nil && deps.Operator != nil,
		logger:         logger,
		now:            time.Now,
	}
}

// ScoreTransactions runs the scoring pipeline over one batch. Summary and
// storage failures are logged and leave the report without them.
func (s *ScoreService) ScoreTransactions(ctx context.Context, req ScoreRequest) (*CreditReport, error) {
	if len(req.Transactions) == 0 {
		return nil, ErrNoTransactions
	}

	logData := logging.GetLogData(ctx)

	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("scoreMs")
	}
	result := s.pipeline.Score(req.Transactions)
	if stopTimer != nil {
		stopTimer()
	}

	credit := &CreditReport{
		ID:        id,
		UserID:    req.UserID,
		CreatedAt: s.now().UTC(),
		Result:    result,
	}

	if s.narrator != nil && s.narrator.Enabled() {
		if logData != nil {
			stopTimer = logData.AddTiming("summaryMs")
		}
		credit.Summary, err = s.narrator.Summarize(ctx, result)
		if logData != nil {
			stopTimer()
		}
		if err != nil {
			s.logger.WithError(err).Warn("ScoreService.ScoreTransactions.summary failed")
		}
	}

	if req.UserID != "" && s.reportsEnabled {
		credit.Persisted = s.save(ctx, credit)
	}

	if logData != nil {
		logData.AddData("reportID", credit.ID.String())
		logData.AddData("creditScore", result.CreditScore)
		logData.AddData("persisted", credit.Persisted)
	}

	return credit, nil
}

func (s *ScoreService) save(ctx context.Context, credit *CreditReport) bool {
	payload, err := json.Marshal(reportDocument{Result: credit.Result, Summary: credit.Summary})
	if err != nil {
		s.logger.WithError(err).Error("ScoreService.save.marshal")
		return false
	}

	err = s.operator.Process(ctx, &actions.SaveCreditReport{
		ID:           credit.ID,
		UserID:       credit.UserID,
		CreditScore:  credit.Result.CreditScore,
		MarketStatus: credit.Result.Insights.MarketStatus,
		Payload:      payload,
		CreatedAt:    credit.CreatedAt,
	})
	if err != nil {
		s.logger.WithError(err).WithField("userID", credit.UserID).Warn("ScoreService.save.failed")
		return false
	}
	return true
}
