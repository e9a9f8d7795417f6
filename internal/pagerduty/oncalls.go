package pagerduty

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/jdcasey/myshift/internal/domain"
)

// APIObject is the reference stub PagerDuty embeds inside larger payloads.
type APIObject struct {
	ID      string `json:"id"`
	Type    string `json:"type,omitempty"`
	Summary string `json:"summary,omitempty"`
}

// Oncall is one raw on-call record from GET /oncalls. The same interval
// can appear on multiple pages and across rotation layers; the oncall
// package owns deduplication.
type Oncall struct {
	Start    string    `json:"start"`
	End      string    `json:"end"`
	User     APIObject `json:"user"`
	Schedule APIObject `json:"schedule"`
}

// OncallsParams are the query parameters for one page of GET /oncalls.
type OncallsParams struct {
	Since       time.Time
	Until       time.Time
	ScheduleIDs []string
	UserIDs     []string
	Overflow    bool
	Limit       int
	Offset      int
}

// OncallsPage is one page of the /oncalls envelope.
type OncallsPage struct {
	Oncalls []Oncall `json:"oncalls"`
	Limit   int      `json:"limit"`
	Offset  int      `json:"offset"`
	More    bool     `json:"more"`
}

// OncallsPage fetches a single page; callers drive pagination via
// Offset until More is false.
func (c *Client) OncallsPage(ctx context.Context, p OncallsParams) (OncallsPage, error) {
	q := url.Values{}
	q.Set("since", domain.FormatWireTime(p.Since))
	q.Set("until", domain.FormatWireTime(p.Until))
	for _, id := range p.ScheduleIDs {
		q.Add("schedule_ids[]", id)
	}
	for _, id := range p.UserIDs {
		q.Add("user_ids[]", id)
	}
	if p.Overflow {
		q.Set("overflow", "true")
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Offset > 0 {
		q.Set("offset", strconv.Itoa(p.Offset))
	}

	var page OncallsPage
	if err := c.get(ctx, "/oncalls", q, &page); err != nil {
		return OncallsPage{}, err
	}
	return page, nil
}
