package httpserver

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tinytelemetry/sshmon/internal/dataset"
	"github.com/tinytelemetry/sshmon/internal/filter"
	"github.com/tinytelemetry/sshmon/internal/model"
	"github.com/tinytelemetry/sshmon/internal/report"
)

const (
	defaultPageLimit = 100
	maxPageLimit     = 1000
)

// selectionFromQuery maps the UI filter contract onto an engine selection:
// event_id is sentinel-or-text (absent means no constraint), source_ip may
// repeat and an empty list means no constraint.
func selectionFromQuery(c *gin.Context) filter.Selection {
	return filter.Selection{
		EventID:   c.Query("event_id"),
		SourceIPs: filter.NewValueSet(c.QueryArray("source_ip")...),
	}
}

func pageFromQuery(c *gin.Context) (limit, offset int) {
	limit = defaultPageLimit
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 {
		limit = v
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	if v, err := strconv.Atoi(c.Query("offset")); err == nil && v > 0 {
		offset = v
	}
	return limit, offset
}

func (s *Server) handleHealth(c *gin.Context) {
	count := s.ds.Set.Len()
	if s.ds.Mode == dataset.ModeUnstructured {
		count = len(s.ds.Lines)
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"uptime":      time.Since(s.startTime).String(),
		"mode":        s.ds.Mode,
		"event_count": count,
	})
}

func (s *Server) handleDataset(c *gin.Context) {
	if s.ds.Mode == dataset.ModeUnstructured {
		c.JSON(http.StatusOK, gin.H{
			"mode":       s.ds.Mode,
			"source":     s.ds.Source,
			"line_count": len(s.ds.Lines),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"mode":       s.ds.Mode,
		"source":     s.ds.Source,
		"row_count":  s.ds.Set.Len(),
		"columns":    s.ds.Set.Columns(),
		"event_ids":  dataset.DistinctValues(s.ds.Set, model.ColEventID),
		"source_ips": dataset.DistinctValues(s.ds.Set, model.ColSourceIP),
	})
}

func (s *Server) handleSummary(c *gin.Context) {
	if !s.requireStructured(c) {
		return
	}

	snapshot := report.Build(s.ds, selectionFromQuery(c), s.parser)
	c.JSON(http.StatusOK, snapshot)
}

func (s *Server) handleEvents(c *gin.Context) {
	if !s.requireStructured(c) {
		return
	}

	view := report.View(s.ds, selectionFromQuery(c))
	limit, offset := pageFromQuery(c)

	rows := view.Rows()
	total := len(rows)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}

	c.JSON(http.StatusOK, gin.H{
		"row_count":  total,
		"offset":     offset,
		"rows":       rows[offset:end],
		"columns":    view.Columns(),
		"no_results": total == 0,
	})
}

func (s *Server) handleLines(c *gin.Context) {
	if s.ds.Mode != dataset.ModeUnstructured {
		c.JSON(http.StatusBadRequest, gin.H{"error": "line listing is only available for unstructured sources"})
		return
	}

	limit, offset := pageFromQuery(c)
	total := len(s.ds.Lines)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}

	c.JSON(http.StatusOK, gin.H{
		"line_count": total,
		"offset":     offset,
		"lines":      s.ds.Lines[offset:end],
	})
}

func (s *Server) handleSchema(c *gin.Context) {
	if !s.requireMirror(c) {
		return
	}

	counts, err := s.store.TableRowCounts()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read table row counts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"description": s.store.GetSchemaDescription(),
		"row_counts":  counts,
	})
}

func (s *Server) handleQuery(c *gin.Context) {
	if !s.requireMirror(c) {
		return
	}

	var req struct {
		SQL string `json:"sql" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body or missing sql field"})
		return
	}

	results, err := s.store.ExecuteQuery(req.SQL)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var columns []string
	if len(results) > 0 {
		for col := range results[0] {
			columns = append(columns, col)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"columns":   columns,
		"rows":      results,
		"row_count": len(results),
	})
}

// requireStructured rejects analytic requests in unstructured mode; the
// reduced feature set there is the verbatim line listing.
func (s *Server) requireStructured(c *gin.Context) bool {
	if s.ds.Mode != dataset.ModeStructured {
		c.JSON(http.StatusBadRequest, gin.H{"error": "structured analytics are not available for unstructured sources"})
		return false
	}
	return true
}

func (s *Server) requireMirror(c *gin.Context) bool {
	if s.store == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "SQL mirror is not available for this dataset"})
		return false
	}
	return true
}
