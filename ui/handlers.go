package ui

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"lsparrow/domain/table"
	"lsparrow/internal/errors"
	"lsparrow/internal/logging"
)

// handleHealth reports liveness.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleAnalysis processes an uploaded survey CSV and returns overall plus
// group-partitioned statistics. Grouping columns come as repeated
// "grouping_columns" form values, in caller order.
func (s *Server) handleAnalysis(c *gin.Context) {
	tbl, ok := s.readUploadedTable(c)
	if !ok {
		return
	}

	groupingColumns := c.PostFormArray("grouping_columns")
	result := s.analyzer.Analyze(tbl, groupingColumns)
	logging.DefaultLogger.Info("analysis complete: %d questions, %d groupings",
		len(result.Overall), len(result.Groupings))

	if !result.HasData() {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   "NO_LIKERT_DATA",
			"message": "no questions with 1-5 scale answers found in the CSV file",
		})
		return
	}

	c.JSON(http.StatusOK, result)
}

// handleColumns runs column-discovery mode: it returns the columns of the
// uploaded CSV that are usable for grouping, without computing statistics.
func (s *Server) handleColumns(c *gin.Context) {
	tbl, ok := s.readUploadedTable(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"columns": s.analyzer.DetectGroupableColumns(tbl),
	})
}

// readUploadedTable validates the multipart upload and loads it into a
// table. On failure it writes the error response and returns ok=false.
func (s *Server) readUploadedTable(c *gin.Context) (*table.Table, bool) {
	file, header, err := c.Request.FormFile("csv_file")
	if err != nil {
		s.abortInvalid(c, "no file uploaded")
		return nil, false
	}
	defer file.Close()

	if header.Filename == "" {
		s.abortInvalid(c, "no file selected")
		return nil, false
	}
	if !strings.HasSuffix(strings.ToLower(header.Filename), ".csv") {
		s.abortInvalid(c, "please upload a CSV file")
		return nil, false
	}
	if header.Size > s.cfg.Upload.MaxFileSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"error":   errors.CodeValidationError,
			"message": "uploaded file exceeds the size limit",
		})
		return nil, false
	}

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   errors.CodeInternalError,
			"message": "failed to read uploaded file",
		})
		return nil, false
	}

	tbl, err := s.reader.Read(data)
	if err != nil {
		if errors.HasCode(err, errors.CodeUnsupportedEncoding) {
			logging.DefaultLogger.Warn("rejected upload %q: %v", header.Filename, err)
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   errors.CodeUnsupportedEncoding,
				"message": err.Error(),
			})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   errors.CodeInternalError,
			"message": "failed to process uploaded file",
		})
		return nil, false
	}

	return tbl, true
}

func (s *Server) abortInvalid(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   errors.CodeInvalidInput,
		"message": message,
	})
}
