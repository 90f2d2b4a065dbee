package web

import (
	"database/sql"
	stderrors "errors"
	"html/template"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/hpungsan/nexascope/internal/config"
	"github.com/hpungsan/nexascope/internal/errors"
	"github.com/hpungsan/nexascope/internal/intake"
	"github.com/hpungsan/nexascope/internal/ops"
	"github.com/hpungsan/nexascope/internal/report"
)

// Handlers contains HTTP route handlers for the web UI.
type Handlers struct {
	db       *sql.DB
	cfg      *config.Config
	renderer *Renderer
	logger   *zap.Logger
}

// HandleForm handles GET / and shows the questionnaire.
func (h *Handlers) HandleForm(w http.ResponseWriter, r *http.Request) {
	h.renderer.renderPage(w, r, "form", h.formPage(FormValues{}, nil))
}

// HandleAnalyze handles POST /analyze: validates the answers and starts a
// new locked session. Every submission gets a fresh session.
func (h *Handlers) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	raw, values, err := readAnswers(w, r)
	if err != nil {
		h.renderFormError(w, r, values, err)
		return
	}

	result, err := ops.StartSession(r.Context(), h.db, h.cfg, ops.StartSessionInput{Raw: raw})
	if err != nil {
		h.renderFormError(w, r, values, err)
		return
	}

	h.logger.Info("session started", zap.String("session_id", result.SessionID))

	if wantsJSON(r) {
		renderJSON(w, http.StatusCreated, result)
		return
	}
	http.Redirect(w, r, "/sessions/"+result.SessionID, http.StatusSeeOther)
}

// HandleSession handles GET /sessions/{id}: preview, plus the full report once unlocked.
func (h *Handlers) HandleSession(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("session ID is required"))
		return
	}

	result, err := ops.ViewSession(r.Context(), h.db, h.cfg, ops.SessionRef{ID: id})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, result)
		return
	}

	h.renderer.renderPage(w, r, "session", h.sessionPage(result))
}

// HandleUnlock handles POST /sessions/{id}/unlock.
func (h *Handlers) HandleUnlock(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("session ID is required"))
		return
	}

	result, err := ops.UnlockSession(r.Context(), h.db, h.cfg, ops.SessionRef{ID: id})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	h.logger.Info("session unlocked", zap.String("session_id", result.SessionID))

	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, result)
		return
	}

	// HTMX request: swap in the unlocked page content
	if r.Header.Get("HX-Request") == "true" {
		h.renderer.renderPage(w, r, "session", h.sessionPage(result))
		return
	}

	http.Redirect(w, r, "/sessions/"+result.SessionID, http.StatusSeeOther)
}

// HandlePurge handles POST /sessions/purge: permanently deletes old sessions.
func (h *Handlers) HandlePurge(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("invalid form data"))
		return
	}

	if r.FormValue("confirm") != "true" {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("confirm parameter must be \"true\""))
		return
	}

	var input ops.PurgeInput
	if hours := r.FormValue("older_than_hours"); hours != "" {
		n, err := strconv.Atoi(hours)
		if err != nil {
			h.renderer.renderError(w, r, errors.NewInvalidRequest("older_than_hours must be an integer"))
			return
		}
		input.OlderThanHours = &n
	}

	result, err := ops.PurgeSessions(r.Context(), h.db, h.cfg, input)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	h.logger.Info("sessions purged", zap.Int("purged", result.Purged))

	// HTMX request: return HTML fragment
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`<div class="purge-result">` + template.HTMLEscapeString(result.Message) + `</div>`))
		return
	}

	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, result)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// readAnswers reads the questionnaire from a JSON body or from form fields.
// The typed values are returned even on error so the form can be refilled.
func readAnswers(w http.ResponseWriter, r *http.Request) (intake.RawInput, FormValues, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		body, err := io.ReadAll(io.LimitReader(r.Body, intake.MaxDocumentBytes+1))
		if err != nil {
			return intake.RawInput{}, FormValues{}, errors.NewInvalidRequest("cannot read request body")
		}
		raw, err := intake.Decode(body, intake.FormatJSON)
		return raw, FormValues{}, err
	}

	r.Body = http.MaxBytesReader(w, r.Body, intake.MaxDocumentBytes)
	if err := r.ParseForm(); err != nil {
		return intake.RawInput{}, FormValues{}, errors.NewInvalidRequest("invalid form data")
	}

	values := FormValues{
		Tenure:           strings.TrimSpace(r.FormValue("tenure")),
		ActivityLevel:    r.FormValue("activity_level"),
		Sales90d:         strings.TrimSpace(r.FormValue("sales_90d")),
		Visits30d:        strings.TrimSpace(r.FormValue("visits_30d")),
		Conversations30d: strings.TrimSpace(r.FormValue("conversations_30d")),
		Offers30d:        strings.TrimSpace(r.FormValue("offers_30d")),
		BusinessType:     r.FormValue("business_type"),
		SaleFlow:         r.FormValue("sale_flow"),
		OutboundLevel:    r.FormValue("outbound_level"),
	}

	raw := intake.RawInput{
		Tenure:        values.Tenure,
		ActivityLevel: values.ActivityLevel,
		BusinessType:  values.BusinessType,
		SaleFlow:      values.SaleFlow,
		OutboundLevel: values.OutboundLevel,
	}

	counters := []struct {
		field string
		text  string
		dst   *int
	}{
		{"sales_90d", values.Sales90d, &raw.Sales90d},
		{"visits_30d", values.Visits30d, &raw.Visits30d},
		{"conversations_30d", values.Conversations30d, &raw.Conversations30d},
		{"offers_30d", values.Offers30d, &raw.Offers30d},
	}
	for _, c := range counters {
		n, err := parseCount(c.field, c.text)
		if err != nil {
			return intake.RawInput{}, values, err
		}
		*c.dst = n
	}

	return raw, values, nil
}

// renderFormError answers a rejected submission: JSON clients get the error
// object, browsers get the questionnaire again with the message.
func (h *Handlers) renderFormError(w http.ResponseWriter, r *http.Request, values FormValues, err error) {
	var sErr *errors.ScopeError
	if wantsJSON(r) || !stderrors.As(err, &sErr) || sErr.Code == errors.ErrInternal {
		h.renderer.renderError(w, r, err)
		return
	}

	h.renderer.renderPageStatus(w, r, sErr.Status, "form", h.formPage(values, sErr))
}

func (h *Handlers) formPage(values FormValues, sErr *errors.ScopeError) FormPageData {
	data := FormPageData{
		PageData: PageData{
			Title:   "Diagnóstico",
			Version: h.renderer.version,
			Nav:     "analyze",
		},
		Values:          values,
		ActivityChoices: intake.ActivityChoices(),
		BusinessChoices: intake.BusinessChoices(),
		SaleFlowChoices: intake.SaleFlowChoices(),
		OutboundChoices: intake.OutboundChoices(),
	}
	if sErr != nil {
		data.Error = sErr.Message
		if sErr.Code == errors.ErrInvalidDuration {
			data.ErrorField = "tenure"
		} else if field, ok := sErr.Details["field"].(string); ok {
			data.ErrorField = field
		}
	}
	return data
}

func (h *Handlers) sessionPage(result *ops.SessionOutput) SessionPageData {
	data := SessionPageData{
		PageData: PageData{
			Title:   result.Preview.Title,
			Version: h.renderer.version,
			Nav:     "session",
		},
		Session:     result,
		PreviewHTML: renderMarkdown(report.Preview(result.Preview)),
	}
	if result.Full != nil {
		data.ReportHTML = renderMarkdown(report.Full(*result.Full))
	}
	return data
}

// parseCount parses a non-negative counter field; empty means zero.
func parseCount(field, s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.NewInvalidField(field, s, "must be a whole number")
	}
	return n, nil
}
