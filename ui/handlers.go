package ui

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"catview/adapters/tabular"
	"catview/domain/catalog"
	"catview/domain/core"
	"catview/internal/profile"
)

var validExtensions = []string{".xlsx", ".xls", ".csv"}

var validMimeTypes = []string{
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", // .xlsx
	"application/vnd.ms-excel", // .xls
	"text/csv",
	"application/csv",
	"text/plain", // Some CSV files might be detected as plain text
}

// handleIndex renders the HTML shell over the JSON API
func (s *Server) handleIndex(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Roles":     catalog.AllRoles,
		"Hierarchy": catalog.HierarchyRoles,
	})
}

// handleDatasetUpload accepts a spreadsheet upload and registers it
func (s *Server) handleDatasetUpload(c *gin.Context) {
	file, header, err := c.Request.FormFile("dataset")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file uploaded"})
		return
	}
	defer file.Close()

	if header.Size > s.config.Data.MaxUploadSize {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("file size (%.1f MB) exceeds the %d MB limit",
				float64(header.Size)/(1024*1024), s.config.Data.MaxUploadSize/(1024*1024)),
		})
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !containsString(validExtensions, ext) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "only Excel (.xlsx, .xls) and CSV (.csv) files are allowed"})
		return
	}

	contentType := header.Header.Get("Content-Type")
	if !containsString(validMimeTypes, contentType) &&
		!strings.Contains(contentType, "excel") && !strings.Contains(contentType, "csv") {
		// Some clients misreport spreadsheet MIME types, so log rather than reject.
		s.logger.Warn("unexpected MIME type %s for upload %s", contentType, header.Filename)
	}

	id := core.DatasetID(core.NewID())
	if err := os.MkdirAll(s.config.Data.UploadDir, 0o755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to prepare upload directory"})
		return
	}
	destPath := filepath.Join(s.config.Data.UploadDir, id.String()+ext)
	if err := c.SaveUploadedFile(header, destPath); err != nil {
		s.logger.Error("failed to store upload %s: %v", header.Filename, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store uploaded file"})
		return
	}

	sheets, err := tabular.NewDataReader(destPath).SheetNames()
	if err != nil {
		os.Remove(destPath)
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("failed to read workbook: %v", err)})
		return
	}

	dataset := &catalog.Dataset{
		ID:               id,
		OriginalFilename: header.Filename,
		FilePath:         destPath,
		FileSize:         header.Size,
		MimeType:         header.Header.Get("Content-Type"),
		Sheets:           sheets,
		CreatedAt:        core.Now(),
	}
	if err := s.datasets.Create(c.Request.Context(), dataset); err != nil {
		s.logger.Error("failed to persist dataset %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register dataset"})
		return
	}

	s.logger.Info("registered dataset %s (%s, %d sheets)", id, header.Filename, len(sheets))
	c.JSON(http.StatusOK, gin.H{
		"dataset_id": dataset.ID,
		"filename":   dataset.OriginalFilename,
		"sheets":     dataset.Sheets,
	})
}

// handleDatasetList returns registered datasets, newest first
func (s *Server) handleDatasetList(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	offset := 0
	if raw := c.Query("offset"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed >= 0 {
			offset = parsed
		}
	}

	datasets, err := s.datasets.List(c.Request.Context(), limit, offset)
	if err != nil {
		s.renderError(c, err)
		return
	}

	items := make([]gin.H, 0, len(datasets))
	for _, ds := range datasets {
		items = append(items, gin.H{
			"dataset_id": ds.ID,
			"filename":   ds.OriginalFilename,
			"sheets":     ds.Sheets,
			"created_at": ds.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"datasets": items})
}

// handleDatasetDelete removes a dataset, its cached tables, and its stored
// upload. Preloaded catalog files live outside the upload dir and are kept.
func (s *Server) handleDatasetDelete(c *gin.Context) {
	id, err := core.ParseDatasetID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dataset, err := s.datasets.GetByID(c.Request.Context(), id)
	if err != nil {
		s.renderError(c, err)
		return
	}
	if err := s.datasets.Delete(c.Request.Context(), id); err != nil {
		s.renderError(c, err)
		return
	}

	s.tables.Drop(id)
	if filepath.Dir(dataset.FilePath) == filepath.Clean(s.config.Data.UploadDir) {
		if err := os.Remove(dataset.FilePath); err != nil {
			s.logger.Warn("failed to remove upload %s: %v", dataset.FilePath, err)
		}
	}

	s.logger.Info("deleted dataset %s (%s)", id, dataset.OriginalFilename)
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

// handleSessionDelete discards a viewer session
func (s *Server) handleSessionDelete(c *gin.Context) {
	id, err := core.ParseSessionID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.sessions.Delete(c.Request.Context(), id); err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

// handleDatasetSheets lists the sheets of a registered dataset
func (s *Server) handleDatasetSheets(c *gin.Context) {
	id, err := core.ParseDatasetID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dataset, err := s.datasets.GetByID(c.Request.Context(), id)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"dataset_id": dataset.ID, "sheets": dataset.Sheets})
}

// handleSessionCreate loads a sheet, auto-maps its columns, and opens a
// viewer session
func (s *Server) handleSessionCreate(c *gin.Context) {
	var req struct {
		DatasetID string `json:"dataset_id" binding:"required"`
		Sheet     string `json:"sheet"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	datasetID, err := core.ParseDatasetID(req.DatasetID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	dataset, err := s.datasets.GetByID(c.Request.Context(), datasetID)
	if err != nil {
		s.renderError(c, err)
		return
	}

	table, err := s.loadTable(dataset, req.Sheet)
	if err != nil {
		s.renderError(c, err)
		return
	}

	mapping := catalog.SuggestMapping(table.Headers)
	session := &catalog.Session{
		ID:        core.SessionID(core.NewID()),
		DatasetID: dataset.ID,
		Sheet:     req.Sheet,
		Mapping:   mapping,
		CreatedAt: core.Now(),
		UpdatedAt: core.Now(),
	}
	if err := s.sessions.Create(c.Request.Context(), session); err != nil {
		s.logger.Error("failed to persist session %s: %v", session.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session_id":    session.ID,
		"headers":       table.Headers,
		"row_count":     len(table.Rows),
		"mapping":       session.Mapping,
		"missing_roles": mapping.MissingRequired(table.Headers),
		"profile":       profile.Profile(table),
	})
}

// handleMappingUpdate applies explicit role → column overrides. A mapping
// change invalidates every selection, so selections are reset.
func (s *Server) handleMappingUpdate(c *gin.Context) {
	session, table, ok := s.loadSession(c)
	if !ok {
		return
	}

	var req struct {
		Overrides map[string]string `json:"overrides" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	for roleName, column := range req.Overrides {
		if err := session.Mapping.Override(catalog.Role(roleName), column, table.Headers); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("%s: %v", roleName, err)})
			return
		}
	}
	session.Selections = nil
	session.UpdatedAt = core.Now()

	if err := s.sessions.Update(c.Request.Context(), session); err != nil {
		s.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"mapping":       session.Mapping,
		"missing_roles": session.Mapping.MissingRequired(table.Headers),
	})
}

// handleCascade recomputes the full cascade for the session
func (s *Server) handleCascade(c *gin.Context) {
	session, table, ok := s.loadSession(c)
	if !ok {
		return
	}
	s.renderCascade(c, session, table)
}

// handleSelectionUpdate records one choice and recomputes the cascade.
// Downstream selections are cleared so every choice stays a member of the
// option set computed from its upstream subset.
func (s *Server) handleSelectionUpdate(c *gin.Context) {
	session, table, ok := s.loadSession(c)
	if !ok {
		return
	}

	var req struct {
		Role  string `json:"role" binding:"required"`
		Value string `json:"value" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	role := catalog.Role(req.Role)
	if !role.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown role: %s", req.Role)})
		return
	}

	updated := session.Selections.Set(role, req.Value)

	// Validate against the pure filter before persisting anything.
	if _, err := catalog.Cascade(table, session.Mapping, updated); err != nil {
		s.renderError(c, err)
		return
	}

	session.Selections = updated
	session.UpdatedAt = core.Now()
	if err := s.sessions.Update(c.Request.Context(), session); err != nil {
		s.renderError(c, err)
		return
	}

	s.renderCascade(c, session, table)
}

// handleResults returns the Result Set rows. Presentation policy: all rows
// when the most specific mapped role has a concrete choice, otherwise a
// bounded preview (first 5 by default).
func (s *Server) handleResults(c *gin.Context) {
	session, table, ok := s.loadSession(c)
	if !ok {
		return
	}

	result, err := catalog.Cascade(table, session.Mapping, session.Selections)
	if err != nil {
		s.renderError(c, err)
		return
	}

	limit := 5
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	rows := result.Rows
	preview := false
	if !s.specificProductSelected(session, table) && len(rows) > limit {
		rows = rows[:limit]
		preview = true
	}

	c.JSON(http.StatusOK, gin.H{
		"headers":     table.Headers,
		"rows":        rows,
		"match_count": len(result.Rows),
		"preview":     preview,
		"no_match":    len(result.Rows) == 0,
	})
}

// renderCascade writes the steps + match count response shared by the
// cascade and selection endpoints
func (s *Server) renderCascade(c *gin.Context, session *catalog.Session, table *catalog.Table) {
	result, err := catalog.Cascade(table, session.Mapping, session.Selections)
	if err != nil {
		s.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"steps":       result.Steps,
		"selections":  session.Selections,
		"match_count": len(result.Rows),
		"no_match":    len(result.Rows) == 0,
	})
}

// specificProductSelected reports whether the most specific mapped
// hierarchy role carries a concrete (non-All) choice
func (s *Server) specificProductSelected(session *catalog.Session, table *catalog.Table) bool {
	for i := len(catalog.HierarchyRoles) - 1; i >= 0; i-- {
		role := catalog.HierarchyRoles[i]
		column, ok := session.Mapping.Column(role)
		if !ok || !table.HasColumn(column) {
			continue
		}
		return session.Selections.Value(role) != catalog.AllValue
	}
	return false
}

// loadSession resolves the session and its table snapshot, writing the
// error response itself on failure
func (s *Server) loadSession(c *gin.Context) (*catalog.Session, *catalog.Table, bool) {
	id, err := core.ParseSessionID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, nil, false
	}

	session, err := s.sessions.GetByID(c.Request.Context(), id)
	if err != nil {
		s.renderError(c, err)
		return nil, nil, false
	}

	dataset, err := s.datasets.GetByID(c.Request.Context(), session.DatasetID)
	if err != nil {
		s.renderError(c, err)
		return nil, nil, false
	}

	table, err := s.loadTable(dataset, session.Sheet)
	if err != nil {
		s.renderError(c, err)
		return nil, nil, false
	}

	return session, table, true
}

// loadTable returns the cached snapshot for a dataset sheet, reading the
// file on first access
func (s *Server) loadTable(dataset *catalog.Dataset, sheet string) (*catalog.Table, error) {
	if table, ok := s.tables.Get(dataset.ID, sheet); ok {
		return table, nil
	}

	table, err := tabular.NewDataReader(dataset.FilePath).ReadSheet(sheet)
	if err != nil {
		return nil, err
	}
	s.tables.Put(dataset.ID, sheet, table)
	return table, nil
}

// renderError maps domain errors onto HTTP statuses
func (s *Server) renderError(c *gin.Context, err error) {
	switch {
	case core.IsNotFoundError(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, core.ErrMissingRoles):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, core.ErrInvalidChoice), core.IsMappingError(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, core.ErrEmptyTable), errors.Is(err, core.ErrUnsupportedFormat):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		s.logger.Error("request failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
