package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gaurav-prasanna/seoprobe/core"
	"github.com/gaurav-prasanna/seoprobe/core/output"
	"github.com/gaurav-prasanna/seoprobe/core/pipeline"
	"github.com/gaurav-prasanna/seoprobe/core/render"
	"github.com/gaurav-prasanna/seoprobe/core/report"
	"github.com/gin-gonic/gin"
)

// Runner performs one analysis.
type Runner interface {
	Run(ctx context.Context, pageURL string) (*pipeline.Analysis, error)
}

// ErrorDetail is the error body of JSON responses.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// AnalyzeResponse is the body of GET /api/v1/analyze.
type AnalyzeResponse struct {
	Success   bool           `json:"success"`
	URL       string         `json:"url,omitempty"`
	ElapsedMs int64          `json:"elapsed_ms"`
	Report    *report.Report `json:"report,omitempty"`
	Error     *ErrorDetail   `json:"error,omitempty"`
}

// reportPage is the data behind report.html.
type reportPage struct {
	URL      string
	Error    string
	Elapsed  string
	Analysis *pipeline.Analysis
}

// index serves the URL form.
func index() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, "index.html", nil)
	}
}

// analyzePage runs an analysis for the posted url and renders the report view.
func analyzePage(runner Runner) gin.HandlerFunc {
	return func(c *gin.Context) {
		pageURL := c.PostForm("url")
		res, err := runner.Run(c.Request.Context(), pageURL)

		page := reportPage{
			URL:      pageURL,
			Elapsed:  formatElapsed(res),
			Analysis: res,
		}
		status := http.StatusOK
		if err != nil {
			_ = c.Error(err)
			status = statusFor(err)
			page.Error = errorMessage(err)
			page.Analysis = nil
		}
		c.HTML(status, "report.html", page)
	}
}

// reportPDF runs an analysis for the posted url and returns seo_report.pdf.
func reportPDF(runner Runner) gin.HandlerFunc {
	renderer := render.NewPDFRenderer()
	return func(c *gin.Context) {
		res, err := runner.Run(c.Request.Context(), c.PostForm("url"))
		if err != nil {
			_ = c.Error(err)
			c.String(statusFor(err), errorMessage(err))
			return
		}

		data, err := renderer.Render(res.Report())
		if err != nil {
			_ = c.Error(err)
			c.String(http.StatusInternalServerError, "rendering PDF failed")
			return
		}

		filename := output.ReportBaseName + renderer.Extension()
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))
		c.Data(http.StatusOK, renderer.ContentType(), data)
	}
}

// apiAnalyze returns the report as JSON.
func apiAnalyze(runner Runner) gin.HandlerFunc {
	return func(c *gin.Context) {
		pageURL := c.Query("url")
		res, err := runner.Run(c.Request.Context(), pageURL)

		resp := AnalyzeResponse{URL: pageURL}
		if res != nil {
			resp.ElapsedMs = res.Elapsed.Milliseconds()
		}
		if err != nil {
			_ = c.Error(err)
			resp.Error = toDetail(err)
			c.JSON(statusFor(err), resp)
			return
		}

		resp.Success = true
		resp.Report = res.Report()
		c.JSON(http.StatusOK, resp)
	}
}

// healthz reports liveness.
func healthz(started time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"uptime": time.Since(started).Round(time.Second).String(),
		})
	}
}

func toDetail(err error) *ErrorDetail {
	var coded *core.Error
	if errors.As(err, &coded) {
		return &ErrorDetail{Code: coded.Code, Message: coded.Error()}
	}
	return &ErrorDetail{Code: core.ErrCodeInternal, Message: err.Error()}
}

// statusFor maps error codes to HTTP status codes.
func statusFor(err error) int {
	switch {
	case core.HasCode(err, core.ErrCodeInvalidInput):
		return http.StatusBadRequest
	case core.HasCode(err, core.ErrCodeTimeout):
		return http.StatusGatewayTimeout
	case core.HasCode(err, core.ErrCodeNetwork):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func errorMessage(err error) string {
	if core.HasCode(err, core.ErrCodeInvalidInput) {
		return "Please enter a valid URL."
	}
	return "Error analyzing the URL: " + err.Error()
}

func formatElapsed(res *pipeline.Analysis) string {
	if res == nil {
		return ""
	}
	return fmt.Sprintf("%.2f", res.Elapsed.Seconds())
}
