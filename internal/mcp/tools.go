package mcp

import "github.com/mark3labs/mcp-go/mcp"

// answerOptions are the questionnaire parameters shared by diagnosis_analyze and session_start.
var answerOptions = []mcp.ToolOption{
	mcp.WithString("tenure",
		mcp.Description(`How long the business has been running, free text ("6 meses", "2 años", "3 semanas", or a bare number of days). Either tenure or days_active is required.`),
	),
	mcp.WithNumber("days_active",
		mcp.Description("Tenure as a day count. Takes precedence over tenure."),
		mcp.Min(1),
	),
	mcp.WithString("activity_level",
		mcp.Required(),
		mcp.Description("ACTIVE_WEEKLY, ACTIVE_SOMETIMES or PAUSED (questionnaire labels also accepted)"),
	),
	mcp.WithNumber("sales_90d",
		mcp.Description("Sales in the last 90 days"),
		mcp.Min(0),
	),
	mcp.WithNumber("visits_30d",
		mcp.Description("Visits in the last 30 days"),
		mcp.Min(0),
	),
	mcp.WithNumber("conversations_30d",
		mcp.Description("Sales conversations in the last 30 days"),
		mcp.Min(0),
	),
	mcp.WithNumber("offers_30d",
		mcp.Description("Offers or quotes sent in the last 30 days"),
		mcp.Min(0),
	),
	mcp.WithString("business_type",
		mcp.Required(),
		mcp.Description("PHYSICAL_PRODUCT, SERVICE, DIGITAL_PRODUCT or SAAS"),
	),
	mcp.WithString("sale_flow",
		mcp.Required(),
		mcp.Description("DIRECT_WEB_PURCHASE, TALK_BEFORE_CLOSE or DEPENDS"),
	),
	mcp.WithString("outbound_level",
		mcp.Required(),
		mcp.Description("Weekly proactive outreach: NONE, LOW (1-5), MEDIUM (6-15) or HIGH (more than 15)"),
	),
}

func withAnswers(opts ...mcp.ToolOption) []mcp.ToolOption {
	all := make([]mcp.ToolOption, 0, len(opts)+len(answerOptions))
	all = append(all, opts...)
	return append(all, answerOptions...)
}

var analyzeToolDef = mcp.NewTool("diagnosis_analyze",
	withAnswers(
		mcp.WithDescription("Classify a business snapshot and return the preview and the full diagnosis (headline, explanation, plan, avoid list, decision). Nothing is stored."),
		mcp.WithReadOnlyHintAnnotation(true),
	)...,
)

var tenureToolDef = mcp.NewTool("diagnosis_tenure",
	mcp.WithDescription("Convert a free-text tenure expression into days and months active."),
	mcp.WithReadOnlyHintAnnotation(true),
	mcp.WithString("text",
		mcp.Required(),
		mcp.Description(`Tenure such as "6 meses", "2 años", "3 semanas" or "45"`),
	),
)

var planToolDef = mcp.NewTool("diagnosis_plan",
	mcp.WithDescription("Return the action plan and the avoid list for a business type."),
	mcp.WithReadOnlyHintAnnotation(true),
	mcp.WithString("business_type",
		mcp.Required(),
		mcp.Description("PHYSICAL_PRODUCT, SERVICE, DIGITAL_PRODUCT or SAAS"),
	),
)

var sessionStartToolDef = mcp.NewTool("session_start",
	withAnswers(
		mcp.WithDescription("Analyze a snapshot and store it as a new locked session. Returns the session id and the preview only."),
	)...,
)

var sessionViewToolDef = mcp.NewTool("session_view",
	mcp.WithDescription("Show a session: always the preview, plus the full diagnosis once unlocked."),
	mcp.WithReadOnlyHintAnnotation(true),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Session id"),
	),
)

var sessionUnlockToolDef = mcp.NewTool("session_unlock",
	mcp.WithDescription("Unlock a session and return its full diagnosis."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Session id"),
	),
)

var sessionReportToolDef = mcp.NewTool("session_report",
	mcp.WithDescription("Render the full diagnosis of an unlocked session as markdown."),
	mcp.WithReadOnlyHintAnnotation(true),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Session id"),
	),
)

var sessionPurgeToolDef = mcp.NewTool("session_purge",
	mcp.WithDescription("Permanently delete sessions older than the given number of hours (default: the session TTL)."),
	mcp.WithDestructiveHintAnnotation(true),
	mcp.WithNumber("older_than_hours",
		mcp.Description("Only purge sessions created more than N hours ago"),
		mcp.Min(0),
	),
)
