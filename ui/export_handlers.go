package ui

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"catview/adapters/tabular"
	"catview/domain/catalog"
)

// handleExport serializes the current Result Set as CSV or XLSX. The export
// is byte-for-byte derived from the Result Set: same rows, same column
// order, no value reformatting.
func (s *Server) handleExport(c *gin.Context) {
	session, table, ok := s.loadSession(c)
	if !ok {
		return
	}

	result, err := catalog.Cascade(table, session.Mapping, session.Selections)
	if err != nil {
		s.renderError(c, err)
		return
	}

	resultSet := &catalog.Table{Headers: table.Headers, Rows: result.Rows}

	format := c.DefaultQuery("format", "csv")
	switch format {
	case "csv":
		var buf bytes.Buffer
		if err := tabular.WriteCSV(&buf, resultSet); err != nil {
			s.logger.Error("CSV export failed for session %s: %v", session.ID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
			return
		}
		c.Header("Content-Disposition", `attachment; filename="filtered_results.csv"`)
		c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())

	case "xlsx":
		var buf bytes.Buffer
		if err := tabular.WriteXLSX(&buf, resultSet); err != nil {
			s.logger.Error("XLSX export failed for session %s: %v", session.ID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
			return
		}
		c.Header("Content-Disposition", `attachment; filename="filtered_results.xlsx"`)
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())

	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unsupported export format: %s", format)})
	}
}
