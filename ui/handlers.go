package ui

import (
	"fmt"
	"html/template"
	"net/http"
	"unicode/utf8"

	"legumedash/app"
	"legumedash/domain/core"
	"legumedash/internal/errors"

	"github.com/gin-gonic/gin"
)

// maxCategoryLen bounds the category query parameter in bytes
const maxCategoryLen = 128

// pageData is what dashboard.html renders
type pageData struct {
	*app.ViewModel
	CaptionHTML template.HTML
}

// unavailableData is what unavailable.html renders
type unavailableData struct {
	Title       string
	CaptionHTML template.HTML
	Heading     string
	Message     string
	Code        string
}

func (s *Server) handleIndex(c *gin.Context) {
	if s.dashboard == nil {
		s.renderUnavailable(c)
		return
	}

	category, err := categoryParam(c)
	if err != nil {
		s.renderError(c, err)
		return
	}

	vm, err := s.dashboard.Render(c.Request.Context(), category)
	if err != nil {
		s.renderError(c, err)
		return
	}

	c.Header("X-Render-ID", vm.RenderID.String())
	c.Header("X-Dataset-Fingerprint", vm.Fingerprint.Short())
	s.renderTemplate(c, http.StatusOK, "dashboard.html", pageData{ViewModel: vm, CaptionHTML: s.caption})
}

func (s *Server) handleViewJSON(c *gin.Context) {
	if s.dashboard == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": s.loadErr.Error(),
			"code":  errors.GetCode(s.loadErr),
		})
		return
	}

	category, err := categoryParam(c)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error(), "code": errors.GetCode(err)})
		return
	}

	vm, err := s.dashboard.Render(c.Request.Context(), category)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error(), "code": errors.GetCode(err)})
		return
	}
	c.JSON(http.StatusOK, newViewResponse(vm))
}

func (s *Server) handleHealth(c *gin.Context) {
	if s.dashboard == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unavailable",
			"error":  s.loadErr.Error(),
		})
		return
	}

	table := s.dashboard.Table()
	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"source":      table.Source(),
		"rows":        table.RowCount(),
		"categories":  len(s.dashboard.Categories()),
		"fingerprint": table.Fingerprint().String(),
		"loaded_at":   table.LoadedAt(),
	})
}

func (s *Server) renderUnavailable(c *gin.Context) {
	s.renderTemplate(c, http.StatusServiceUnavailable, "unavailable.html", unavailableData{
		Title:       app.PageTitle,
		CaptionHTML: s.caption,
		Heading:     "Dataset unavailable.",
		Message:     s.loadErr.Error(),
		Code:        errors.GetCode(s.loadErr),
	})
}

func (s *Server) renderError(c *gin.Context, err error) {
	status := statusFor(err)
	heading := "Dataset unavailable."
	if status == http.StatusBadRequest {
		heading = "Invalid request."
	}
	s.renderTemplate(c, status, "unavailable.html", unavailableData{
		Title:       app.PageTitle,
		CaptionHTML: s.caption,
		Heading:     heading,
		Message:     err.Error(),
		Code:        errors.GetCode(err),
	})
}

// categoryParam reads the optional category selection. Absent means the
// first catalog entry; oversized or non-UTF-8 values are rejected.
func categoryParam(c *gin.Context) (string, error) {
	category := c.Query("category")
	if len(category) > maxCategoryLen {
		return "", errors.InvalidInput(fmt.Sprintf("category exceeds %d bytes", maxCategoryLen))
	}
	if !utf8.ValidString(category) {
		return "", errors.InvalidInput("category is not valid UTF-8")
	}
	return category, nil
}

func statusFor(err error) int {
	switch {
	case core.IsDataUnavailable(err):
		return http.StatusServiceUnavailable
	case errors.GetCode(err) == errors.CodeInvalidInput:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
