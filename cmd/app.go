package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/weighing-report/internal/export"
	"github.com/ginjaninja78/weighing-report/internal/exporter"
	"github.com/ginjaninja78/weighing-report/internal/format"
	"github.com/ginjaninja78/weighing-report/internal/session"
	"github.com/ginjaninja78/weighing-report/internal/source"
	"github.com/ginjaninja78/weighing-report/internal/types"
	"github.com/ginjaninja78/weighing-report/pkg/logger"
	"github.com/ginjaninja78/weighing-report/pkg/utils"
)

// =============================================================================
// SHARED WIRING
// =============================================================================

func newFormatter() (*format.Formatter, error) {
	return format.New(cfg.Report.Timezone, cfg.Report.TimezoneLabel)
}

func newSession() (*session.Store, error) {
	return session.New(cfg.Session.Token, cfg.Session.TokenFile)
}

// newLoader picks the record source. A file (from --file or source.file)
// wins over the upstream service.
func newLoader(file string, f *format.Formatter) (source.Loader, error) {
	if file == "" {
		file = cfg.Source.File
	}
	if file != "" {
		log.Debug("reading records from file")
		return &source.FileLoader{Path: file, Formatter: f}, nil
	}

	if cfg.Source.BaseURL == "" {
		return nil, fmt.Errorf("no record source: set source.base_url, source.file or --file")
	}
	sess, err := newSession()
	if err != nil {
		return nil, err
	}
	return source.NewClient(source.ClientConfig{
		BaseURL: cfg.Source.BaseURL,
		Path:    cfg.Source.Path,
		Timeout: cfg.Source.Timeout,
	}, sess, f, logger.Named(log, "source")), nil
}

func newExportOptions(f *format.Formatter) (export.Options, error) {
	org := export.Organization{
		Name:         cfg.Organization.Name,
		AddressLines: cfg.Organization.AddressLines,
		Title:        cfg.Organization.Title,
	}
	if cfg.Organization.LogoFile != "" {
		logo, err := os.ReadFile(cfg.Organization.LogoFile)
		if err != nil {
			return export.Options{}, fmt.Errorf("failed to read logo: %w", err)
		}
		org.Logo = logo
	}

	return export.Options{
		Formatter:       f,
		Organization:    org,
		SpreadsheetName: cfg.Export.SpreadsheetName,
		DocumentName:    cfg.Export.DocumentName,
		SheetName:       cfg.Export.SheetName,
		Page:            export.A4(),
	}, nil
}

// newService wires the export service for file (may be empty).
func newService(file string) (*exporter.Service, error) {
	f, err := newFormatter()
	if err != nil {
		return nil, err
	}
	loader, err := newLoader(file, f)
	if err != nil {
		return nil, err
	}
	opts, err := newExportOptions(f)
	if err != nil {
		return nil, err
	}
	files := utils.NewFileManager(cfg.Export.OutputDir)
	return exporter.NewService(loader, opts, files, logger.Named(log, "exporter")), nil
}

// =============================================================================
// FILTER FLAGS
// =============================================================================

// filterFlags are shared by export and show.
type filterFlags struct {
	search string
	from   string
	to     string
	sort   string
	file   string
}

func (ff *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&ff.search, "search", "", "Only products whose name contains this text (case-insensitive)")
	cmd.Flags().StringVar(&ff.from, "from", "", "First day to include (YYYY-MM-DD)")
	cmd.Flags().StringVar(&ff.to, "to", "", "Last day to include (YYYY-MM-DD)")
	cmd.Flags().StringVar(&ff.sort, "sort", "", "Sort: waktu-asc, waktu-desc, nama-asc, nama-desc")
	cmd.Flags().StringVar(&ff.file, "file", "", "Read records from a .json or .csv file instead of the upstream")
}

// request turns the flags into a pipeline request. A single bound selects
// that one day.
func (ff *filterFlags) request(f *format.Formatter) (exporter.Request, error) {
	req := exporter.Request{Criteria: types.FilterCriteria{Search: ff.search}}

	from, to := ff.from, ff.to
	if from == "" {
		from = to
	}
	if to == "" {
		to = from
	}
	if from != "" {
		start, err := f.ParseDate(from)
		if err != nil {
			return req, fmt.Errorf("invalid --from: %w", err)
		}
		end, err := f.ParseDate(to)
		if err != nil {
			return req, fmt.Errorf("invalid --to: %w", err)
		}
		if end.Before(start) {
			return req, fmt.Errorf("--from must not be after --to")
		}
		req.Criteria.Range = &types.DateRange{Start: start, End: end}
	}

	spec, err := types.ParseSortSpec(ff.sort)
	if err != nil {
		return req, err
	}
	req.Sort = spec
	return req, nil
}
