// =============================================================================
// Weighing Report - Export Service
// =============================================================================
//
// Service ties the pipeline together for every entry point (CLI, HTTP,
// scheduler):
//
//   STEP 1: Load the record store snapshot      (source.Loader)
//   STEP 2: Filter + sort + aggregate           (report)
//   STEP 3: Render the requested formats        (export, concurrently)
//   STEP 4: Save the documents                  (utils.FileManager)
//
// Rendering works on an immutable snapshot, so the formats are rendered in
// parallel. A failure in one renderer fails the run without touching the
// loaded records.
//
// =============================================================================

package exporter

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ginjaninja78/weighing-report/internal/export"
	"github.com/ginjaninja78/weighing-report/internal/report"
	"github.com/ginjaninja78/weighing-report/internal/source"
	"github.com/ginjaninja78/weighing-report/internal/types"
	"github.com/ginjaninja78/weighing-report/pkg/utils"
)

// =============================================================================
// FORMATS
// =============================================================================

// Format is an export document type.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

// AllFormats lists every format in render order.
var AllFormats = []Format{FormatXLSX, FormatPDF}

// ParseFormats parses "xlsx", "pdf" or "all" (also comma separated).
func ParseFormats(s string) ([]Format, error) {
	var out []Format
	seen := map[Format]bool{}
	for _, part := range strings.Split(strings.ToLower(s), ",") {
		part = strings.TrimSpace(part)
		var fs []Format
		switch part {
		case "", "all":
			fs = AllFormats
		case "xlsx", "excel":
			fs = []Format{FormatXLSX}
		case "pdf":
			fs = []Format{FormatPDF}
		default:
			return nil, fmt.Errorf("unknown export format %q (want xlsx, pdf or all)", part)
		}
		for _, f := range fs {
			if !seen[f] {
				seen[f] = true
				out = append(out, f)
			}
		}
	}
	return out, nil
}

// Ext is the file extension of the format, with the dot.
func (f Format) Ext() string { return "." + string(f) }

// =============================================================================
// REQUEST
// =============================================================================

// Request selects the records of one view or export.
type Request struct {
	Criteria types.FilterCriteria
	Sort     types.SortSpec
}

// query narrows the upstream fetch to the requested days.
func (r Request) query() source.Query {
	var q source.Query
	if r.Criteria.Range != nil {
		from, to := r.Criteria.Range.Start, r.Criteria.Range.End
		q.From, q.To = &from, &to
	}
	return q
}

// =============================================================================
// SERVICE
// =============================================================================

// Service loads, renders and saves reports.
type Service struct {
	loader source.Loader
	opts   export.Options
	files  *utils.FileManager
	logger *zap.Logger

	// Now is the clock used for generation timestamps.
	Now func() time.Time
}

// NewService wires a service. A nil logger is replaced with a no-op logger.
func NewService(loader source.Loader, opts export.Options, files *utils.FileManager, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		loader: loader,
		opts:   opts,
		files:  files,
		logger: logger,
		Now:    time.Now,
	}
}

// Options returns the document options in use.
func (s *Service) Options() export.Options { return s.opts }

// Load fetches the records for req. Filtering happens later; the request
// only narrows what upstream sends.
func (s *Service) Load(ctx context.Context, req Request) ([]types.Record, error) {
	records, err := s.loader.Load(ctx, req.query())
	if err != nil {
		return nil, err
	}
	s.logger.Debug("records loaded", zap.Int("count", len(records)))
	return records, nil
}

// View loads records and returns a view with req applied, on page 1.
func (s *Service) View(ctx context.Context, req Request) (*report.View, error) {
	records, err := s.Load(ctx, req)
	if err != nil {
		return nil, err
	}
	v := report.NewView(records)
	v.SetCriteria(req.Criteria)
	v.SetSort(req.Sort)
	return v, nil
}

// Snapshot loads records and freezes the filtered, sorted set.
func (s *Service) Snapshot(ctx context.Context, req Request) (types.Snapshot, error) {
	records, err := s.Load(ctx, req)
	if err != nil {
		return types.Snapshot{}, err
	}
	return report.BuildSnapshot(records, req.Criteria, req.Sort, s.Now()), nil
}

// Render renders snap in every requested format. An empty snapshot returns
// export.ErrEmptyReport.
func (s *Service) Render(ctx context.Context, snap types.Snapshot, formats ...Format) ([]*export.Document, error) {
	if len(snap.Records) == 0 {
		return nil, export.ErrEmptyReport
	}

	docs := make([]*export.Document, len(formats))
	g, _ := errgroup.WithContext(ctx)
	for i, f := range formats {
		g.Go(func() error {
			doc, err := s.render(snap, f)
			if err != nil {
				return fmt.Errorf("failed to render %s: %w", f, err)
			}
			docs[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}

func (s *Service) render(snap types.Snapshot, f Format) (*export.Document, error) {
	switch f {
	case FormatXLSX:
		return export.Spreadsheet(snap, s.opts)
	case FormatPDF:
		return export.PDF(snap, s.opts)
	}
	return nil, fmt.Errorf("unknown export format %q", f)
}

// NameFunc picks the saved file name of a document.
type NameFunc func(doc *export.Document, f Format) string

// FixedNames keeps each document's own fixed name.
func FixedNames(doc *export.Document, _ Format) string { return doc.Name }

// Run loads, renders and saves. An empty result is reported as skipped,
// not as an error.
func (s *Service) Run(ctx context.Context, req Request, formats []Format, name NameFunc) (*utils.ExportSummary, error) {
	summary := utils.NewExportSummary(s.Now())
	logger := s.logger.With(zap.String("run_id", summary.RunID))
	if name == nil {
		name = FixedNames
	}

	// ==========================================================================
	// STEP 1-2: Load and build the snapshot
	// ==========================================================================
	snap, err := s.Snapshot(ctx, req)
	if err != nil {
		return nil, err
	}
	summary.Records = len(snap.Records)

	// ==========================================================================
	// STEP 3: Render
	// ==========================================================================
	docs, err := s.Render(ctx, snap, formats...)
	switch {
	case errors.Is(err, export.ErrEmptyReport):
		logger.Info("nothing to export")
		summary.Skipped = true
		summary.EndTime = s.Now()
		return summary, nil
	case err != nil:
		return nil, err
	}

	// ==========================================================================
	// STEP 4: Save
	// ==========================================================================
	for i, doc := range docs {
		path, err := s.files.Save(name(doc, formats[i]), doc.Bytes)
		if err != nil {
			return nil, err
		}
		logger.Info("document saved",
			zap.String("path", path),
			zap.Int("bytes", len(doc.Bytes)),
			zap.Int("rows", doc.Rows),
			zap.Int("pages", doc.Pages),
		)
		summary.Saved = append(summary.Saved, utils.SavedFile{Path: path, Bytes: len(doc.Bytes), Pages: doc.Pages})
	}

	summary.EndTime = s.Now()
	return summary, nil
}
