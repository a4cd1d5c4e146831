package mcp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/2beens/activeweek/internal/workouts"
	"github.com/2beens/activeweek/internal/workouts/analytics"
	"github.com/2beens/activeweek/internal/workouts/service"
)

const dateLayout = "2006-01-02"

// journal is the read side of the workout service the tools need.
type journal interface {
	ForRange(from, to time.Time) []workouts.Record
	AnalyticsForRange(from, to time.Time) service.Analytics
	PeriodReport(period analytics.Period, anchor time.Time) analytics.PeriodReport
}

// Handler parses tool input, queries the journal and formats the MCP result.
type Handler struct {
	journal journal
}

func NewHandler(journal journal) *Handler {
	return &Handler{
		journal: journal,
	}
}

// RangeInput is the input for get_workouts_for_range and get_activity_distribution.
type RangeInput struct {
	FromDate string `json:"from_date" jsonschema:"Start date (YYYY-MM-DD)"`
	ToDate   string `json:"to_date" jsonschema:"End date (YYYY-MM-DD), inclusive"`
}

// WorkoutsForRangeOutput wraps the records so the result is a JSON object.
type WorkoutsForRangeOutput struct {
	From     string            `json:"from"`
	To       string            `json:"to"`
	Total    int               `json:"total"`
	Workouts []workouts.Record `json:"workouts"`
}

// GetWorkoutsForRangeTool returns the MCP tool handler for get_workouts_for_range.
func (h *Handler) GetWorkoutsForRangeTool() func(context.Context, *mcp.CallToolRequest, RangeInput) (*mcp.CallToolResult, any, error) {
	return func(_ context.Context, _ *mcp.CallToolRequest, in RangeInput) (*mcp.CallToolResult, any, error) {
		from, to, errResult := parseRange(in)
		if errResult != nil {
			return errResult, nil, nil
		}

		list := h.journal.ForRange(from, to)
		return jsonResult(WorkoutsForRangeOutput{
			From:     in.FromDate,
			To:       in.ToDate,
			Total:    len(list),
			Workouts: list,
		}), nil, nil
	}
}

// GetActivityDistributionTool returns the MCP tool handler for get_activity_distribution.
func (h *Handler) GetActivityDistributionTool() func(context.Context, *mcp.CallToolRequest, RangeInput) (*mcp.CallToolResult, any, error) {
	return func(_ context.Context, _ *mcp.CallToolRequest, in RangeInput) (*mcp.CallToolResult, any, error) {
		from, to, errResult := parseRange(in)
		if errResult != nil {
			return errResult, nil, nil
		}
		return jsonResult(h.journal.AnalyticsForRange(from, to)), nil, nil
	}
}

// PeriodReportInput is the input for get_period_report.
type PeriodReportInput struct {
	Period string `json:"period" jsonschema:"One of week, month, year"`
	Anchor string `json:"anchor,omitempty" jsonschema:"Any date inside the period (YYYY-MM-DD); defaults to today"`
}

// GetPeriodReportTool returns the MCP tool handler for get_period_report.
func (h *Handler) GetPeriodReportTool() func(context.Context, *mcp.CallToolRequest, PeriodReportInput) (*mcp.CallToolResult, any, error) {
	return func(_ context.Context, _ *mcp.CallToolRequest, in PeriodReportInput) (*mcp.CallToolResult, any, error) {
		period, err := analytics.ParsePeriod(in.Period)
		if err != nil {
			return errorResult("Invalid period: use week, month or year"), nil, nil
		}

		var anchor time.Time
		if in.Anchor != "" {
			anchor, err = time.ParseInLocation(dateLayout, in.Anchor, time.Local)
			if err != nil {
				return errorResult("Invalid anchor: use YYYY-MM-DD"), nil, nil
			}
		}

		return jsonResult(h.journal.PeriodReport(period, anchor)), nil, nil
	}
}

func parseRange(in RangeInput) (from, to time.Time, errResult *mcp.CallToolResult) {
	from, err := time.ParseInLocation(dateLayout, in.FromDate, time.Local)
	if err != nil {
		return from, to, errorResult("Invalid from_date: use YYYY-MM-DD")
	}
	to, err = time.ParseInLocation(dateLayout, in.ToDate, time.Local)
	if err != nil {
		return from, to, errorResult("Invalid to_date: use YYYY-MM-DD")
	}
	if to.Before(from) {
		return from, to, errorResult("Invalid range: to_date is before from_date")
	}
	to = to.AddDate(0, 0, 1).Add(-time.Nanosecond)
	return from, to, nil
}

func jsonResult(v any) *mcp.CallToolResult {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult("Error encoding response: " + err.Error())
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(raw)}},
	}
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}
}
