package pagerduty

import (
	"context"
	"net/url"
	"strconv"
)

// User is the wire shape of a PagerDuty user, reduced to what this
// tool displays.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UsersParams are the query parameters for one page of GET /users.
// Query and IDs are alternative filters; both empty lists everyone.
type UsersParams struct {
	Query  string
	IDs    []string
	Limit  int
	Offset int
}

// UsersPage is one page of the /users envelope.
type UsersPage struct {
	Users  []User `json:"users"`
	Limit  int    `json:"limit"`
	Offset int    `json:"offset"`
	More   bool   `json:"more"`
}

// UsersPage fetches a single page of the user directory.
func (c *Client) UsersPage(ctx context.Context, p UsersParams) (UsersPage, error) {
	q := url.Values{}
	if p.Query != "" {
		q.Set("query", p.Query)
	}
	for _, id := range p.IDs {
		q.Add("ids[]", id)
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Offset > 0 {
		q.Set("offset", strconv.Itoa(p.Offset))
	}

	var page UsersPage
	if err := c.get(ctx, "/users", q, &page); err != nil {
		return UsersPage{}, err
	}
	return page, nil
}

// GetUser fetches one user by id. A missing user surfaces as an
// *APIError unwrapping to domain.ErrNotFound.
func (c *Client) GetUser(ctx context.Context, id string) (User, error) {
	var envelope struct {
		User User `json:"user"`
	}
	if err := c.get(ctx, "/users/"+url.PathEscape(id), nil, &envelope); err != nil {
		return User{}, err
	}
	return envelope.User, nil
}
