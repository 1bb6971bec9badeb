// =============================================================================
// Weighing Report - Daily Export Scheduler
// =============================================================================
//
// The scheduler exports the previous calendar day (in the display zone) on a
// cron schedule. Each run writes both documents, sorted oldest first, named
// from the configured name format:
//
//   "{name}_{date}" -> Laporan_Penimbangan_2024-01-01.xlsx
//                      Laporan_Penimbangan_2024-01-01.pdf
//
// Days without records are skipped. Failures are logged and never stop the
// schedule.
//
// =============================================================================

package scheduler

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/ginjaninja78/weighing-report/internal/export"
	"github.com/ginjaninja78/weighing-report/internal/exporter"
	"github.com/ginjaninja78/weighing-report/internal/report"
	"github.com/ginjaninja78/weighing-report/internal/types"
	"github.com/ginjaninja78/weighing-report/pkg/utils"
)

// DefaultNameFormat names scheduled exports when none is configured.
const DefaultNameFormat = "{name}_{date}"

// Options configures a Scheduler.
type Options struct {
	// Schedule is a standard five-field cron expression, e.g. "5 0 * * *".
	Schedule string

	// NameFormat for the saved files. See utils.GenerateOutputFileName.
	NameFormat string

	// Location the schedule and the "previous day" are evaluated in.
	Location *time.Location
}

// Scheduler runs the daily export.
type Scheduler struct {
	cron       *cron.Cron
	svc        *exporter.Service
	loc        *time.Location
	nameFormat string
	logger     *zap.Logger
}

// New validates the schedule and registers the job. Call Start to run it.
func New(svc *exporter.Service, opts Options, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.NameFormat == "" {
		opts.NameFormat = DefaultNameFormat
	}

	s := &Scheduler{
		cron:       cron.New(cron.WithLocation(opts.Location)),
		svc:        svc,
		loc:        opts.Location,
		nameFormat: opts.NameFormat,
		logger:     logger,
	}

	if _, err := s.cron.AddFunc(opts.Schedule, s.tick); err != nil {
		return nil, fmt.Errorf("invalid export schedule %q: %w", opts.Schedule, err)
	}
	return s, nil
}

// Start runs the schedule in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
	for _, e := range s.cron.Entries() {
		s.logger.Info("export scheduled", zap.Time("next_run", e.Next))
	}
}

// Stop stops the schedule and waits for a running export to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) tick() {
	summary, err := s.RunOnce(context.Background(), time.Now())
	if err != nil {
		s.logger.Error("scheduled export failed", zap.Error(err))
		return
	}
	if summary.Skipped {
		s.logger.Info("scheduled export skipped, no records")
	}
}

// RunOnce exports the calendar day before now.
func (s *Scheduler) RunOnce(ctx context.Context, now time.Time) (*utils.ExportSummary, error) {
	day := PreviousDay(now, s.loc)
	req := exporter.Request{
		Criteria: types.FilterCriteria{Range: &types.DateRange{Start: day, End: day}},
		Sort:     types.SortTimeAsc,
	}

	s.logger.Info("running scheduled export", zap.String("day", day.Format("2006-01-02")))
	return s.svc.Run(ctx, req, exporter.AllFormats, s.names(day))
}

// names derives dated file names from each document's fixed name.
func (s *Scheduler) names(day time.Time) exporter.NameFunc {
	return func(doc *export.Document, f exporter.Format) string {
		base := strings.TrimSuffix(doc.Name, filepath.Ext(doc.Name))
		return utils.GenerateOutputFileName(s.nameFormat, f.Ext(), day, map[string]string{"name": base})
	}
}

// PreviousDay is the start of the day before now, in loc.
func PreviousDay(now time.Time, loc *time.Location) time.Time {
	return report.StartOfDay(now.In(loc)).AddDate(0, 0, -1)
}
