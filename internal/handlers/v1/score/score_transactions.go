package score

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/creditwise/internal/logging"
	"github.com/carson-networks/creditwise/internal/scoring"
	"github.com/carson-networks/creditwise/internal/service"
)

// TransactionBody is one transaction in a scoring request.
type TransactionBody struct {
	Description string `json:"description" required:"true" doc:"Free text transaction description"`
	Amount      string `json:"amount" required:"true" doc:"Decimal amount, positive for inflows"`
	Date        string `json:"date,omitempty" doc:"Transaction date in any common layout"`
}

// ScoreTransactionsBody is the request body for scoring a batch.
type ScoreTransactionsBody struct {
	Transactions []TransactionBody `json:"transactions" minItems:"1" doc:"Transactions to score"`
}

// ScoreTransactionsInput is the Huma input for scoring a batch.
type ScoreTransactionsInput struct {
	UserID string `header:"X-User-ID" doc:"Optional user ID; when set the report is kept in the user's history"`
	Body   ScoreTransactionsBody
}

// ScoreTransactionsOutput is the Huma output for scoring a batch.
type ScoreTransactionsOutput struct {
	Body CreditReport
}

// scoreTransactioner is the interface for scoring a batch.
type scoreTransactioner interface {
	ScoreTransactions(ctx context.Context, req service.ScoreRequest) (*service.CreditReport, error)
}

// ScoreTransactionsHandler handles POST /v1/score.
type ScoreTransactionsHandler struct {
	ScoreService scoreTransactioner
}

// NewScoreTransactionsHandler creates a new ScoreTransactionsHandler.
func NewScoreTransactionsHandler(svc scoreTransactioner) *ScoreTransactionsHandler {
	return &ScoreTransactionsHandler{ScoreService: svc}
}

// Register registers the scoring endpoint with the Huma API.
func (h *ScoreTransactionsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "score-transactions",
		Method:      http.MethodPost,
		Path:        "/v1/score",
		Summary:     "Score transactions",
		Description: "Classifies a batch of transactions and returns a credit score with behavioral insights.",
		Tags:        []string{"Scoring"},
	}, h.handle)
}

// parseScoreTransactionsInput converts the request body to scoring transactions.
// Dates are passed through untouched; unparseable dates are tolerated downstream.
func parseScoreTransactionsInput(input *ScoreTransactionsInput) ([]scoring.Transaction, error) {
	if len(input.Body.Transactions) == 0 {
		return nil, huma.NewError(http.StatusBadRequest, "at least one transaction is required")
	}

	txns := make([]scoring.Transaction, len(input.Body.Transactions))
	for i, body := range input.Body.Transactions {
		if strings.TrimSpace(body.Description) == "" {
			return nil, huma.NewError(http.StatusBadRequest, fmt.Sprintf("transactions[%d]: description is required", i))
		}
		amount, err := decimal.NewFromString(strings.TrimSpace(body.Amount))
		if err != nil {
			return nil, huma.NewError(http.StatusBadRequest, fmt.Sprintf("transactions[%d]: invalid amount", i), err)
		}
		txns[i] = scoring.Transaction{
			Description: body.Description,
			Amount:      amount,
			Date:        body.Date,
		}
	}
	return txns, nil
}

func (h *ScoreTransactionsHandler) handle(ctx context.Context, input *ScoreTransactionsInput) (*ScoreTransactionsOutput, error) {
	txns, err := parseScoreTransactionsInput(input)
	if err != nil {
		return nil, err
	}

	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("transactionCount", len(txns))
	}

	report, err := h.ScoreService.ScoreTransactions(ctx, service.ScoreRequest{
		UserID:       strings.TrimSpace(input.UserID),
		Transactions: txns,
	})
	if err != nil {
		if errors.Is(err, service.ErrNoTransactions) {
			return nil, huma.NewError(http.StatusUnprocessableEntity, err.Error())
		}
		return nil, huma.NewError(http.StatusInternalServerError, "failed to score transactions", err)
	}

	return &ScoreTransactionsOutput{Body: toCreditReport(*report)}, nil
}
