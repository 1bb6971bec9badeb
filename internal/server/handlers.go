package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ginjaninja78/weighing-report/internal/export"
	"github.com/ginjaninja78/weighing-report/internal/exporter"
	"github.com/ginjaninja78/weighing-report/internal/format"
	"github.com/ginjaninja78/weighing-report/internal/report"
	"github.com/ginjaninja78/weighing-report/internal/source"
	"github.com/ginjaninja78/weighing-report/internal/types"
)

// Handler serves the report view and downloads.
type Handler struct {
	svc             *exporter.Service
	formatter       *format.Formatter
	defaultPageSize int
	logger          *zap.Logger
}

// NewHandler builds a handler. A nil logger is replaced with a no-op logger.
func NewHandler(svc *exporter.Service, defaultPageSize int, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !report.ValidPageSize(defaultPageSize) {
		defaultPageSize = report.DefaultPageSize
	}
	f := svc.Options().Formatter
	if f == nil {
		f = format.Default()
	}
	return &Handler{svc: svc, formatter: f, defaultPageSize: defaultPageSize, logger: logger}
}

// =============================================================================
// RESPONSE SHAPES
// =============================================================================

// Row is one record in the JSON view. Field names follow the upstream API.
type Row struct {
	No           int     `json:"no"`
	ID           int64   `json:"id"`
	ProductName  string  `json:"nama_produk"`
	Weight       float64 `json:"berat"`
	UnitPrice    float64 `json:"harga_per_kg"`
	TotalValue   float64 `json:"total_harga"`
	Timestamp    string  `json:"waktu"`
	WaktuDisplay string  `json:"waktu_display"`
}

// ViewResponse is the body of GET /api/laporan.
type ViewResponse struct {
	Rows   []Row                 `json:"rows"`
	Meta   types.PageMeta        `json:"meta"`
	Totals types.AggregateTotals `json:"totals"`
	Pages  []report.PageButton   `json:"pages"`
	Page   int                   `json:"page"`
	Size   int                   `json:"size"`
	Sort   string                `json:"sort"`
}

// =============================================================================
// HANDLERS
// =============================================================================

// View returns one page of the filtered, sorted report.
func (h *Handler) View(c *gin.Context) {
	req, err := h.parseRequest(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	size := h.defaultPageSize
	if s := c.Query("size"); s != "" {
		if size, err = strconv.Atoi(s); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "size must be a number"})
			return
		}
	}
	page := 1
	if p := c.Query("page"); p != "" {
		if page, err = strconv.Atoi(p); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "page must be a number"})
			return
		}
	}

	v, err := h.svc.View(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := v.SetPageSize(size); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	v.SetPage(page)

	meta := v.Meta()
	visible := v.Visible()
	rows := make([]Row, len(visible))
	for i, r := range visible {
		rows[i] = Row{
			No:           meta.DisplayStart + i,
			ID:           r.ID,
			ProductName:  r.ProductName,
			Weight:       r.Weight,
			UnitPrice:    r.UnitPrice,
			TotalValue:   r.TotalValue,
			Timestamp:    r.Timestamp.In(h.formatter.Location()).Format(time.RFC3339),
			WaktuDisplay: h.formatter.Timestamp(r.Timestamp),
		}
	}

	c.JSON(http.StatusOK, ViewResponse{
		Rows:   rows,
		Meta:   meta,
		Totals: v.Totals(),
		Pages:  v.Buttons(),
		Page:   v.Window().Index,
		Size:   v.Window().Size,
		Sort:   v.SortSpec().String(),
	})
}

// ExportSpreadsheet streams the spreadsheet of the filtered set.
func (h *Handler) ExportSpreadsheet(c *gin.Context) { h.export(c, exporter.FormatXLSX) }

// ExportDocument streams the PDF of the filtered set.
func (h *Handler) ExportDocument(c *gin.Context) { h.export(c, exporter.FormatPDF) }

func (h *Handler) export(c *gin.Context, f exporter.Format) {
	req, err := h.parseRequest(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snap, err := h.svc.Snapshot(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}

	docs, err := h.svc.Render(c.Request.Context(), snap, f)
	switch {
	case errors.Is(err, export.ErrEmptyReport):
		c.Status(http.StatusNoContent)
		return
	case err != nil:
		h.fail(c, err)
		return
	}

	doc := docs[0]
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, doc.Name))
	c.Data(http.StatusOK, doc.ContentType, doc.Bytes)
}

// =============================================================================
// HELPERS
// =============================================================================

// parseRequest reads search, from, to and sort.
func (h *Handler) parseRequest(c *gin.Context) (exporter.Request, error) {
	var req exporter.Request
	req.Criteria.Search = c.Query("search")

	from, to := c.Query("from"), c.Query("to")
	if from != "" || to != "" {
		if from == "" {
			from = to
		}
		if to == "" {
			to = from
		}
		start, err := h.formatter.ParseDate(from)
		if err != nil {
			return req, err
		}
		end, err := h.formatter.ParseDate(to)
		if err != nil {
			return req, err
		}
		if end.Before(start) {
			return req, fmt.Errorf("from must not be after to")
		}
		req.Criteria.Range = &types.DateRange{Start: start, End: end}
	}

	spec, err := types.ParseSortSpec(c.Query("sort"))
	if err != nil {
		return req, err
	}
	req.Sort = spec
	return req, nil
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, source.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case len(source.Violations(err)) > 0:
		h.logger.Warn("upstream sent invalid records", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream sent invalid records"})
	default:
		h.logger.Error("request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
