package score

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/creditwise/internal/logging"
	"github.com/carson-networks/creditwise/internal/service"
)

// ListReportsCursor is the pagination cursor returned with a page of reports.
type ListReportsCursor struct {
	Position int `json:"position" minimum:"0" doc:"Numeric offset position for the next page"`
	Limit    int `json:"limit" minimum:"1" maximum:"100" doc:"Page size used for this cursor"`
}

// ListReportsInput is the Huma input for listing a user's reports.
type ListReportsInput struct {
	UserID   string `path:"userID" minLength:"1" doc:"User whose reports to list"`
	Position int    `query:"position" minimum:"0" doc:"Offset of the first report to return"`
	Limit    int    `query:"limit" minimum:"0" maximum:"100" doc:"Page size, defaults to 20"`
}

// ListReportsResponseBody is the response body for listing reports.
type ListReportsResponseBody struct {
	Reports    []CreditReport     `json:"reports" doc:"Page of reports, newest first"`
	NextCursor *ListReportsCursor `json:"nextCursor,omitempty" doc:"Cursor to fetch the next page, absent on the last page"`
}

// ListReportsOutput is the Huma output for listing reports.
type ListReportsOutput struct {
	Body ListReportsResponseBody
}

// reportLister is the interface for listing stored reports.
type reportLister interface {
	ListReports(ctx context.Context, userID string, cursor *service.ReportCursor) ([]service.CreditReport, *service.ReportCursor, error)
}

// ListReportsHandler handles GET /v1/reports/{userID}.
type ListReportsHandler struct {
	ReportService reportLister
}

// NewListReportsHandler creates a new ListReportsHandler.
func NewListReportsHandler(svc reportLister) *ListReportsHandler {
	return &ListReportsHandler{ReportService: svc}
}

// Register registers the list reports endpoint with the Huma API.
func (h *ListReportsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-reports",
		Method:      http.MethodGet,
		Path:        "/v1/reports/{userID}",
		Summary:     "List reports",
		Description: "Returns a user's stored credit reports using offset pagination.",
		Tags:        []string{"Scoring"},
	}, h.handle)
}

func parseListReportsInput(input *ListReportsInput) *service.ReportCursor {
	if input.Position == 0 && input.Limit == 0 {
		return nil
	}
	return &service.ReportCursor{
		Position: input.Position,
		Limit:    input.Limit,
	}
}

func (h *ListReportsHandler) handle(ctx context.Context, input *ListReportsInput) (*ListReportsOutput, error) {
	logData := logging.GetLogData(ctx)

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("listReportsMs")
	}
	reports, nextCursor, err := h.ReportService.ListReports(ctx, input.UserID, parseListReportsInput(input))
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		if errors.Is(err, service.ErrReportsDisabled) {
			return nil, huma.NewError(http.StatusServiceUnavailable, err.Error())
		}
		return nil, huma.NewError(http.StatusInternalServerError, "failed to list reports", err)
	}

	if logData != nil {
		logData.AddData("reportCount", len(reports))
	}

	resp := ListReportsResponseBody{
		Reports: make([]CreditReport, 0, len(reports)),
	}
	for _, r := range reports {
		if r.Result == nil {
			continue
		}
		resp.Reports = append(resp.Reports, toCreditReport(r))
	}

	if nextCursor != nil {
		resp.NextCursor = &ListReportsCursor{
			Position: nextCursor.Position,
			Limit:    nextCursor.Limit,
		}
	}

	return &ListReportsOutput{Body: resp}, nil
}
