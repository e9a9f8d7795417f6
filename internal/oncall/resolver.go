package oncall

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jdcasey/myshift/internal/domain"
	"github.com/jdcasey/myshift/internal/pagerduty"
)

// UserDirectory is the slice of the API the resolver needs.
type UserDirectory interface {
	GetUser(ctx context.Context, id string) (pagerduty.User, error)
	UsersPage(ctx context.Context, p pagerduty.UsersParams) (pagerduty.UsersPage, error)
}

// Resolver maps user identifiers (email or opaque id) to canonical
// user records, caching hits for the lifetime of one command
// invocation. Single-threaded by construction; no locking.
type Resolver struct {
	api   UserDirectory
	log   *zap.Logger
	cache map[string]domain.User // by id
}

// NewResolver creates a Resolver with an empty per-invocation cache.
func NewResolver(api UserDirectory, log *zap.Logger) *Resolver {
	return &Resolver{api: api, log: log, cache: make(map[string]domain.User)}
}

// ByEmail resolves a user by case-insensitive exact email match among
// the directory's search results for that email. No match across all
// result pages is ErrUserNotFound.
func (r *Resolver) ByEmail(ctx context.Context, email string) (domain.User, error) {
	params := pagerduty.UsersParams{Query: email, Limit: defaultPageLimit}
	for offset := 0; ; {
		params.Offset = offset
		page, err := r.api.UsersPage(ctx, params)
		if err != nil {
			return domain.User{}, err
		}
		for _, u := range page.Users {
			if strings.EqualFold(u.Email, email) {
				rec := domain.User{ID: u.ID, Name: u.Name, Email: u.Email}
				r.cache[rec.ID] = rec
				return rec, nil
			}
		}
		if !page.More {
			break
		}
		step := page.Limit
		if step == 0 {
			step = len(page.Users)
		}
		if step == 0 {
			break
		}
		offset += step
	}
	return domain.User{}, fmt.Errorf("%w: email %s", domain.ErrUserNotFound, email)
}

// ByID resolves a user by id. A 404-equivalent upstream response is
// ErrUserNotFound; transport failures propagate unchanged.
func (r *Resolver) ByID(ctx context.Context, id string) (domain.User, error) {
	if rec, ok := r.cache[id]; ok {
		return rec, nil
	}
	u, err := r.api.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.User{}, fmt.Errorf("%w: id %s", domain.ErrUserNotFound, id)
		}
		return domain.User{}, err
	}
	rec := domain.User{ID: u.ID, Name: u.Name, Email: u.Email}
	r.cache[id] = rec
	return rec, nil
}

// Batch resolves a set of ids with one bulk query, falling back to
// individual lookups for any id the bulk result missed. An id that is
// not found even individually is omitted from the result — callers
// treat a missing key as "unknown user" and degrade display. The
// returned map's keys are always a subset of ids.
func (r *Resolver) Batch(ctx context.Context, ids []string) (map[string]domain.User, error) {
	out := make(map[string]domain.User, len(ids))
	wanted := make(map[string]struct{}, len(ids))
	var missing []string
	for _, id := range ids {
		if _, dup := wanted[id]; dup {
			continue
		}
		wanted[id] = struct{}{}
		if rec, ok := r.cache[id]; ok {
			out[id] = rec
		} else {
			missing = append(missing, id)
		}
	}
	if len(missing) == 0 {
		return out, nil
	}

	params := pagerduty.UsersParams{IDs: missing, Limit: defaultPageLimit}
	for offset := 0; ; {
		params.Offset = offset
		page, err := r.api.UsersPage(ctx, params)
		if err != nil {
			return nil, err
		}
		for _, u := range page.Users {
			if _, ok := wanted[u.ID]; !ok {
				continue
			}
			rec := domain.User{ID: u.ID, Name: u.Name, Email: u.Email}
			r.cache[u.ID] = rec
			out[u.ID] = rec
		}
		if !page.More {
			break
		}
		step := page.Limit
		if step == 0 {
			step = len(page.Users)
		}
		if step == 0 {
			break
		}
		offset += step
	}

	for _, id := range missing {
		if _, ok := out[id]; ok {
			continue
		}
		rec, err := r.ByID(ctx, id)
		if errors.Is(err, domain.ErrUserNotFound) {
			r.log.Warn("user not found, omitting", zap.String("user_id", id))
			continue
		}
		if err != nil {
			return nil, err
		}
		out[id] = rec
	}
	return out, nil
}
