// Package recommend talks to the external course recommendation service.
//
// The service is optional. Every failure, including a timeout, degrades to an empty ranking so
// that callers fall back to catalog order.
package recommend

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/degreeplan/internal/app/models"
	"github.com/yigit/degreeplan/internal/pkg/logger"
)

// DefaultTimeout bounds one recommendation call when no timeout is configured
const DefaultTimeout = 3 * time.Second

// Request asks for a ranking of candidate courses given the courses a student has passed
type Request struct {
	Passed     []string `json:"passed_courses"`
	Candidates []string `json:"candidate_courses"`
}

// Source fetches a ranking; errors are reported to the caller
type Source interface {
	Fetch(ctx context.Context, req Request) ([]models.Recommendation, error)
}

// Client is the planner-facing recommendation client
type Client struct {
	source  Source
	timeout time.Duration
	logger  zerolog.Logger
}

// NewClient wraps a source with a time bound. A nil source yields a client that never recommends.
func NewClient(source Source, timeout time.Duration, lgr zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{source: source, timeout: timeout, logger: lgr}
}

// Disabled returns a client that always returns an empty ranking
func Disabled() *Client {
	return NewClient(nil, 0, logger.Nop())
}

// Recommend returns candidates ranked by the service, best first. Only codes from
// candidates are returned. Any failure yields an empty slice.
func (c *Client) Recommend(ctx context.Context, passed, candidates []string) []models.Recommendation {
	if c == nil || c.source == nil || len(candidates) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	recs, err := c.source.Fetch(ctx, Request{Passed: passed, Candidates: candidates})
	if err != nil {
		c.logger.Warn().
			Err(err).
			Int("candidates", len(candidates)).
			Dur("elapsed", time.Since(start)).
			Msg("Recommendation service unavailable, using catalog order")
		return nil
	}

	allowed := models.NewCourseSet(candidates...)
	seen := make(models.CourseSet, len(recs))
	out := make([]models.Recommendation, 0, len(recs))
	for _, r := range recs {
		if !allowed.Has(r.CourseCode) || seen.Has(r.CourseCode) {
			continue
		}
		seen.Add(r.CourseCode)
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })

	c.logger.Debug().
		Int("candidates", len(candidates)).
		Int("ranked", len(out)).
		Dur("elapsed", time.Since(start)).
		Msg("Recommendations received")
	return out
}
