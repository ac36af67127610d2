package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/sant0-9/mindppt/internal/apierr"
	"github.com/sant0-9/mindppt/internal/document"
	"github.com/sant0-9/mindppt/internal/outline"
	"github.com/sant0-9/mindppt/internal/pipeline"
	"github.com/sant0-9/mindppt/internal/style"
)

const (
	maxBodyBytes = 4 << 20
	msgBadBody   = "请求格式错误，请提供有效的JSON"
)

// envelope is the shape of every API response.
type envelope struct {
	Success bool   `json:"success"`
	Result  any    `json:"result,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
}

type analyzeRequest struct {
	Text  string `json:"text" validate:"required,min=50,max=5000"`
	Style string `json:"style" validate:"omitempty,style"`
}

type outlineRequest struct {
	Text           string                   `json:"text" validate:"required"`
	Style          string                   `json:"style" validate:"omitempty,style"`
	AnalysisResult *pipeline.AnalysisResult `json:"analysisResult"`
}

type pptRequest struct {
	Outline *outline.Outline `json:"outline" validate:"required"`
	Style   string           `json:"style" validate:"omitempty,style"`
}

type pptPayload struct {
	Filename    string `json:"filename"`
	Base64      string `json:"base64"`
	ContentType string `json:"contentType"`
	SlideCount  int    `json:"slideCount"`
}

func (s *Server) analyzeText(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := s.bind(w, r, &req, func(fe validator.FieldError) string {
		if fe.Tag() == "max" {
			return pipeline.MsgTextTooLong
		}
		return pipeline.MsgTextTooShort
	}); err != nil {
		s.writeError(w, err, pipeline.FallbackAnalyze)
		return
	}

	res, err := s.pipeline.Analyze(r.Context(), pipeline.AnalyzeRequest{Text: req.Text, Style: req.Style})
	if err != nil {
		s.writeError(w, err, pipeline.FallbackAnalyze)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Result: res})
}

func (s *Server) generateOutline(w http.ResponseWriter, r *http.Request) {
	var req outlineRequest
	if err := s.bind(w, r, &req, func(validator.FieldError) string {
		return pipeline.MsgTextEmpty
	}); err != nil {
		s.writeError(w, err, pipeline.FallbackOutline)
		return
	}

	out, err := s.pipeline.GenerateOutline(r.Context(), pipeline.OutlineRequest{
		Text:     req.Text,
		Style:    req.Style,
		Analysis: req.AnalysisResult,
	})
	if err != nil {
		s.writeError(w, err, pipeline.FallbackOutline)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: out})
}

func (s *Server) generatePPT(w http.ResponseWriter, r *http.Request) {
	var req pptRequest
	if err := s.bind(w, r, &req, func(validator.FieldError) string {
		return pipeline.MsgOutlineAbsent
	}); err != nil {
		s.writeError(w, err, pipeline.FallbackDocument)
		return
	}

	art, err := s.pipeline.GenerateDocument(r.Context(), pipeline.DocumentRequest{
		Outline: req.Outline,
		Style:   req.Style,
	})
	if err != nil {
		s.writeError(w, err, pipeline.FallbackDocument)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: payload(art)})
}

func payload(a *document.Artifact) pptPayload {
	return pptPayload{
		Filename:    a.Filename,
		Base64:      a.Base64(),
		ContentType: a.ContentType,
		SlideCount:  a.SlideCount,
	}
}

type styleGroup struct {
	style.Category
	Styles []style.Config `json:"styles"`
}

func (s *Server) listStyles(w http.ResponseWriter, r *http.Request) {
	var groups []styleGroup
	for _, c := range style.Categories() {
		groups = append(groups, styleGroup{Category: c, Styles: style.ByCategory(c.ID)})
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: map[string]any{
		"default":    style.Default,
		"categories": groups,
	}})
}

func (s *Server) testEnv(w http.ResponseWriter, r *http.Request) {
	prefix := s.cfg.MaskedCredential()
	if prefix == "" {
		prefix = "NOT_SET"
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: map[string]any{
		"status":  "ok",
		"message": "API 路由正常工作",
		"environment": map[string]any{
			"provider":     s.cfg.Provider,
			"model":        s.cfg.Model,
			"hasApiKey":    s.cfg.Credential() != "",
			"apiKeyPrefix": prefix,
			"mode":         s.cfg.LogMode,
		},
		"timestamp": s.now().UTC().Format(time.RFC3339),
	}})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"breaker": s.guard.State(),
	})
}

// bind decodes and validates the request body. A failed rule is reported
// with the message chosen by msg for the first failing field.
func (s *Server) bind(w http.ResponseWriter, r *http.Request, dst any, msg func(validator.FieldError) string) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apierr.New(apierr.KindValidation, msgBadBody, err)
	}

	err := s.validate.Struct(dst)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apierr.New(apierr.KindValidation, msgBadBody, err)
	}
	fe := verrs[0]
	if fe.Tag() == "style" {
		return apierr.New(apierr.KindValidation, fmt.Sprintf("不支持的演示风格: %v", fe.Value()), err)
	}
	return apierr.New(apierr.KindValidation, msg(fe), err)
}

func (s *Server) writeError(w http.ResponseWriter, err error, fallback string) {
	ae := apierr.Classify(err, fallback)
	if ae.Kind == apierr.KindValidation {
		s.log.Debug("request rejected", "reason", ae.Message, "error", err)
	}
	writeJSON(w, ae.Status(), envelope{Success: false, Error: ae.Message, Code: ae.Code()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
