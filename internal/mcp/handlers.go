package mcp

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/hpungsan/nexascope/internal/config"
	"github.com/hpungsan/nexascope/internal/errors"
	"github.com/hpungsan/nexascope/internal/ops"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	db     *sql.DB
	cfg    *config.Config
	logger *zap.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(db *sql.DB, cfg *config.Config, logger *zap.Logger) *Handlers {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{db: db, cfg: cfg, logger: logger}
}

// Request types for each tool

// TenureRequest represents the arguments for diagnosis_tenure.
type TenureRequest struct {
	Text string `json:"text"`
}

// PlanRequest represents the arguments for diagnosis_plan.
type PlanRequest struct {
	BusinessType string `json:"business_type"`
}

// SessionRequest represents the arguments for session_view, session_unlock and session_report.
type SessionRequest struct {
	ID string `json:"id"`
}

// PurgeRequest represents the arguments for session_purge.
type PurgeRequest struct {
	OlderThanHours *int `json:"older_than_hours,omitempty"`
}

// Handler implementations

// HandleAnalyze handles the diagnosis_analyze tool call.
func (h *Handlers) HandleAnalyze(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := decodeAnswers(req)
	if err != nil {
		return h.errorResult(err), nil
	}

	result, err := ops.Analyze(ctx, ops.AnalyzeInput{Raw: raw})
	if err != nil {
		return h.errorResult(err), nil
	}

	return successResult(result)
}

// HandleTenure handles the diagnosis_tenure tool call.
func (h *Handlers) HandleTenure(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[TenureRequest](req)
	if err != nil {
		return h.errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.NormalizeTenure(ctx, ops.NormalizeTenureInput{Text: input.Text})
	if err != nil {
		return h.errorResult(err), nil
	}

	return successResult(result)
}

// HandlePlan handles the diagnosis_plan tool call.
func (h *Handlers) HandlePlan(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[PlanRequest](req)
	if err != nil {
		return h.errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Plan(ctx, ops.PlanInput{BusinessType: input.BusinessType})
	if err != nil {
		return h.errorResult(err), nil
	}

	return successResult(result)
}

// HandleSessionStart handles the session_start tool call.
func (h *Handlers) HandleSessionStart(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := decodeAnswers(req)
	if err != nil {
		return h.errorResult(err), nil
	}

	result, err := ops.StartSession(ctx, h.db, h.cfg, ops.StartSessionInput{Raw: raw})
	if err != nil {
		return h.errorResult(err), nil
	}

	h.logger.Info("session started", zap.String("session_id", result.SessionID))
	return successResult(result)
}

// HandleSessionView handles the session_view tool call.
func (h *Handlers) HandleSessionView(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[SessionRequest](req)
	if err != nil {
		return h.errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.ViewSession(ctx, h.db, h.cfg, ops.SessionRef{ID: input.ID})
	if err != nil {
		return h.errorResult(err), nil
	}

	return successResult(result)
}

// HandleSessionUnlock handles the session_unlock tool call.
func (h *Handlers) HandleSessionUnlock(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[SessionRequest](req)
	if err != nil {
		return h.errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.UnlockSession(ctx, h.db, h.cfg, ops.SessionRef{ID: input.ID})
	if err != nil {
		return h.errorResult(err), nil
	}

	h.logger.Info("session unlocked", zap.String("session_id", result.SessionID))
	return successResult(result)
}

// HandleSessionReport handles the session_report tool call.
func (h *Handlers) HandleSessionReport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[SessionRequest](req)
	if err != nil {
		return h.errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.SessionReport(ctx, h.db, h.cfg, ops.SessionRef{ID: input.ID})
	if err != nil {
		return h.errorResult(err), nil
	}

	return successResult(result)
}

// HandleSessionPurge handles the session_purge tool call.
func (h *Handlers) HandleSessionPurge(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[PurgeRequest](req)
	if err != nil {
		return h.errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.PurgeSessions(ctx, h.db, h.cfg, ops.PurgeInput{OlderThanHours: input.OlderThanHours})
	if err != nil {
		return h.errorResult(err), nil
	}

	h.logger.Info("sessions purged", zap.Int("purged", result.Purged))
	return successResult(result)
}

// Result helpers

// errorResult logs internal failures before converting them.
func (h *Handlers) errorResult(err error) *mcp.CallToolResult {
	var sErr *errors.ScopeError
	if !stderrors.As(err, &sErr) || sErr.Code == errors.ErrInternal {
		h.logger.Error("tool call failed", zap.Error(err))
	}
	return errorResult(err)
}

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
// Note: Internal error details are not exposed to prevent leaking sensitive info.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	var sErr *errors.ScopeError
	if stderrors.As(err, &sErr) {
		message := sErr.Message
		// Keep wrapper context ("items[2]: ...") when the error was wrapped.
		if err != error(sErr) {
			message = strings.Replace(err.Error(), sErr.Error(), sErr.Message, 1)
		}
		errorObj := map[string]any{
			"code":    sErr.Code,
			"message": message,
			"status":  sErr.Status,
		}
		// Only include details for non-internal errors to avoid leaking
		// sensitive info like file paths or SQL errors
		if sErr.Code != errors.ErrInternal && sErr.Details != nil {
			errorObj["details"] = sErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
