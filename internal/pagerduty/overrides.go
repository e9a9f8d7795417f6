package pagerduty

import (
	"context"
	"net/url"
)

// Override is the creation payload for one schedule override.
type Override struct {
	Start string    `json:"start"`
	End   string    `json:"end"`
	User  APIObject `json:"user"`
}

// CreatedOverride is the upstream's record of an accepted override.
type CreatedOverride struct {
	ID    string    `json:"id"`
	Start string    `json:"start"`
	End   string    `json:"end"`
	User  APIObject `json:"user"`
}

// CreateOverride posts a single override to a schedule. One request per
// override keeps submissions independent of each other.
func (c *Client) CreateOverride(ctx context.Context, scheduleID string, ov Override) (CreatedOverride, error) {
	body := struct {
		Override Override `json:"override"`
	}{Override: ov}

	var envelope struct {
		Override CreatedOverride `json:"override"`
	}
	path := "/schedules/" + url.PathEscape(scheduleID) + "/overrides"
	if err := c.post(ctx, path, body, &envelope); err != nil {
		return CreatedOverride{}, err
	}
	return envelope.Override, nil
}
