package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/ginjaninja78/weighing-report/internal/format"
	"github.com/ginjaninja78/weighing-report/internal/session"
	"github.com/ginjaninja78/weighing-report/internal/types"
)

// ErrUnauthorized means the upstream rejected the session, or there is none.
var ErrUnauthorized = errors.New("session is not valid, please log in again")

// DefaultRecordsPath is the upstream history endpoint.
const DefaultRecordsPath = "/api/riwayat"

// Query narrows what the upstream returns. From and To are calendar days;
// Order is "asc" or "desc" (upstream default).
type Query struct {
	From  *time.Time
	To    *time.Time
	Order string
}

// Loader supplies the record store snapshot.
type Loader interface {
	Load(ctx context.Context, q Query) ([]types.Record, error)
}

// ClientConfig configures the upstream client.
type ClientConfig struct {
	BaseURL string
	Path    string
	Timeout time.Duration
}

// Client fetches records from the upstream weighing service.
type Client struct {
	http      *resty.Client
	path      string
	session   *session.Store
	formatter *format.Formatter
	logger    *zap.Logger
}

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// NewClient builds a client. A nil logger is replaced with a no-op logger.
func NewClient(cfg ClientConfig, sess *session.Store, f *format.Formatter, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if f == nil {
		f = format.Default()
	}
	if cfg.Path == "" {
		cfg.Path = DefaultRecordsPath
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetHeader("Accept", "application/json").
		SetTimeout(cfg.Timeout)

	return &Client{
		http:      httpClient,
		path:      cfg.Path,
		session:   sess,
		formatter: f,
		logger:    logger,
	}
}

// Load implements Loader.
func (c *Client) Load(ctx context.Context, q Query) ([]types.Record, error) {
	if c.session == nil || !c.session.Valid() {
		return nil, ErrUnauthorized
	}

	req := c.http.R().
		SetContext(ctx).
		SetAuthToken(c.session.Token()).
		SetError(&apiError{})

	if tanggal := dateParam(q); tanggal != "" {
		req.SetQueryParam("tanggal", tanggal)
	}
	if q.Order != "" {
		req.SetQueryParam("sort", q.Order)
	}

	resp, err := req.Get(c.path)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch records: %w", err)
	}

	switch code := resp.StatusCode(); {
	case code == http.StatusUnauthorized:
		c.logger.Warn("upstream rejected session, clearing token")
		if err := c.session.Clear(); err != nil {
			c.logger.Error("failed to clear session", zap.Error(err))
		}
		return nil, ErrUnauthorized
	case code >= 400:
		msg := resp.Status()
		if e, ok := resp.Error().(*apiError); ok {
			if e.Error != "" {
				msg = e.Error
			} else if e.Message != "" {
				msg = e.Message
			}
		}
		return nil, fmt.Errorf("upstream returned %d: %s", code, msg)
	}

	records, err := Decode(bytes.NewReader(resp.Body()), c.formatter)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("fetched records",
		zap.Int("count", len(records)),
		zap.Duration("took", resp.Time()),
	)
	return records, nil
}

// dateParam renders the upstream "tanggal" parameter: "from:to" or a single
// day.
func dateParam(q Query) string {
	const layout = "2006-01-02"
	switch {
	case q.From != nil && q.To != nil:
		if q.From.Format(layout) == q.To.Format(layout) {
			return q.From.Format(layout)
		}
		return q.From.Format(layout) + ":" + q.To.Format(layout)
	case q.From != nil:
		return q.From.Format(layout)
	case q.To != nil:
		return q.To.Format(layout)
	}
	return ""
}
