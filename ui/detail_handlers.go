package ui

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"catview/domain/catalog"
	"catview/domain/core"
)

// resultRow resolves the :index path segment against the session's current
// Result Set, writing the error response itself on failure
func (s *Server) resultRow(c *gin.Context, session *catalog.Session, table *catalog.Table) (catalog.Row, int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid result index"})
		return nil, 0, false
	}

	result, err := catalog.Cascade(table, session.Mapping, session.Selections)
	if err != nil {
		s.renderError(c, err)
		return nil, 0, false
	}
	if index >= len(result.Rows) {
		s.renderError(c, core.ErrRowNotFound)
		return nil, 0, false
	}
	return result.Rows[index], index, true
}

// handleResultDetail returns the detail card for one matched record
func (s *Server) handleResultDetail(c *gin.Context) {
	session, table, ok := s.loadSession(c)
	if !ok {
		return
	}
	row, index, ok := s.resultRow(c, session, table)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, buildProductCard(session.ID.String(), index, row, session.Mapping))
}

// handleResultImage proxies the record's image bytes. Any fetch or decode
// failure degrades to 404 rather than surfacing an error to the view.
func (s *Server) handleResultImage(c *gin.Context) {
	session, table, ok := s.loadSession(c)
	if !ok {
		return
	}
	row, _, ok := s.resultRow(c, session, table)
	if !ok {
		return
	}

	ref, ok := catalog.FieldValue(row, session.Mapping, catalog.RoleImage)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": catalog.PlaceholderNoImage})
		return
	}

	img, ok := s.fetcher.Resolve(ref)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": catalog.PlaceholderNoImage})
		return
	}

	c.Data(http.StatusOK, img.ContentType(), img.Data)
}
