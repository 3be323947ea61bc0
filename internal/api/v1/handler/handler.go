package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"seoanalyzer/internal/log"
	"seoanalyzer/internal/model"
	"seoanalyzer/pkg/response"
)

const (
	// PageURLHeader lets a plugin front end send the URL of the page it runs on.
	PageURLHeader = "X-Page-URL"

	maxRequestBody = 1 << 20
)

type PageAnalyzer interface {
	Analyze(ctx context.Context, url, keyphrase string) (*model.Report, error)
}

type Handler struct {
	analyzer PageAnalyzer
}

func New(a PageAnalyzer) *Handler {
	return &Handler{analyzer: a}
}

func HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	response.Success(w, map[string]string{"status": "ok"}, "")
}

// AnalyzePageHandler accepts {"url", "keyphrase"} as JSON. When the body has
// no url, the X-Page-URL header and then the url query parameter are used.
// A successful analysis is written as the bare report so clients read
// checks, passedChecks and failedChecks at the top level.
func (h *Handler) AnalyzePageHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	req, err := decodeRequest(r)
	if err != nil {
		response.ErrorWithCode(w, http.StatusBadRequest, model.ErrCodeValidation, err.Error())
		return
	}
	if req.URL == "" {
		req.URL = strings.TrimSpace(r.Header.Get(PageURLHeader))
	}
	if req.URL == "" {
		req.URL = strings.TrimSpace(r.URL.Query().Get("url"))
	}

	report, err := h.analyzer.Analyze(r.Context(), req.URL, req.Keyphrase)
	if err != nil {
		writeAnalysisError(w, err)
		return
	}

	response.Raw(w, http.StatusOK, report)
}

func decodeRequest(r *http.Request) (model.AnalyzeRequest, error) {
	var req model.AnalyzeRequest

	dec := json.NewDecoder(io.LimitReader(r.Body, maxRequestBody))
	if err := dec.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		return req, errors.New("invalid JSON request body")
	}

	req.URL = strings.TrimSpace(req.URL)
	req.Keyphrase = strings.TrimSpace(req.Keyphrase)
	return req, nil
}

// statusFor maps an error code to its status. Only bad input is the
// caller's fault; fetch and parse failures are reported as 500 with the
// code telling them apart.
func statusFor(code string) int {
	if code == model.ErrCodeValidation {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeAnalysisError(w http.ResponseWriter, err error) {
	ae, ok := model.AsAnalysisError(err)
	if !ok {
		log.Logger.Error("unexpected analysis failure", zap.Error(err))
		response.ErrorWithCode(w, http.StatusInternalServerError, model.ErrCodeInternal, "failed to analyze page")
		return
	}

	message := ae.Message
	if ae.Code == model.ErrCodeFetch || ae.Code == model.ErrCodeParse {
		message = "failed to analyze page: " + ae.Message
	}
	response.ErrorWithCode(w, statusFor(ae.Code), ae.Code, message)
}

func methodNotAllowed(w http.ResponseWriter, allowed string) {
	w.Header().Set("Allow", allowed)
	response.Error(w, http.StatusMethodNotAllowed, "method not allowed")
}
