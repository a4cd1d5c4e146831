package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewServer builds the MCP server exposing read-only workout tools. The same
// server runs over stdio (cmd/workouts_mcp) and over HTTP at /mcp.
func NewServer(journal journal, version string) *mcp.Server {
	if version == "" {
		version = "dev"
	}
	h := NewHandler(journal)
	s := mcp.NewServer(&mcp.Implementation{
		Name:    "activeweek",
		Version: version,
	}, nil)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_workouts_for_range",
		Description: "Returns the logged workouts dated within the given range, oldest first. Args: from_date, to_date (YYYY-MM-DD, inclusive).",
	}, h.GetWorkoutsForRangeTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_activity_distribution",
		Description: "Returns the summary, per-activity minutes and time distribution (secondary activities weighted at 30%) for a date range. Args: from_date, to_date (YYYY-MM-DD, inclusive).",
	}, h.GetActivityDistributionTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_period_report",
		Description: "Returns the weekly (Monday to Sunday), monthly or yearly report containing the anchor date: totals, average duration and per-activity breakdown. Args: period (week|month|year); optional anchor (YYYY-MM-DD), defaults to today.",
	}, h.GetPeriodReportTool())

	return s
}
