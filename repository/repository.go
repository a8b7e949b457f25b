// Package repository persists record types on top of a store.Store, one key per
// record under "<resource>:<id>".
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dcode-github/luxury_realty/backend/models"
	"github.com/dcode-github/luxury_realty/backend/store"
	"github.com/dcode-github/luxury_realty/backend/utils"
)

// ErrInvalidPatch is returned by Update when the merged record no longer decodes
// into the record type (e.g. a string written to a numeric field).
var ErrInvalidPatch = errors.New("patch does not fit record shape")

// Entity is satisfied by a pointer to any record type embedding models.Base.
type Entity[T any] interface {
	*T
	Meta() *models.Base
}

// Optional capabilities a record type may implement.
type (
	Sluggable interface {
		SlugSource() string
		SetSlug(string)
		SlugValue() string
	}
	Featurable interface {
		IsFeatured() bool
	}
	Categorized interface {
		CategoryName() string
	}
	Ordered interface {
		Order() int
	}
)

// immutable fields are never taken from an update payload
var immutable = map[string]bool{"id": true, "createdAt": true, "updatedAt": true}

type options struct {
	now   func() time.Time
	newID func() string
}

type Option func(*options)

// WithClock replaces time.Now for timestamping.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithIDGenerator replaces the random UUID generator.
func WithIDGenerator(newID func() string) Option {
	return func(o *options) { o.newID = newID }
}

type Repository[T any, PT Entity[T]] struct {
	store    store.Store
	resource string
	prefix   string
	now      func() time.Time
	newID    func() string
}

func New[T any, PT Entity[T]](s store.Store, resource string, opts ...Option) *Repository[T, PT] {
	o := options{
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Repository[T, PT]{
		store:    s,
		resource: resource,
		prefix:   resource + ":",
		now:      o.now,
		newID:    o.newID,
	}
}

func (r *Repository[T, PT]) Resource() string { return r.resource }

func (r *Repository[T, PT]) key(id string) string { return r.prefix + id }

// GetAll returns every record, newest first.
func (r *Repository[T, PT]) GetAll(ctx context.Context) ([]PT, error) {
	entries, err := r.store.ScanPrefix(ctx, r.prefix)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", r.resource, err)
	}

	records := make([]PT, 0, len(entries))
	for _, e := range entries {
		rec, err := r.decode(e.Value)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", e.Key, err)
		}
		records = append(records, rec)
	}

	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i].Meta(), records[j].Meta()
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID < b.ID
	})
	return records, nil
}

// GetByID returns nil, nil when no record has that id.
func (r *Repository[T, PT]) GetByID(ctx context.Context, id string) (PT, error) {
	raw, err := r.store.Get(ctx, r.key(id))
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %s %s: %w", r.resource, id, err)
	}
	return r.decode(raw)
}

// GetBySlug returns the newest record carrying slug, or nil when none does or the
// record type has no slug.
func (r *Repository[T, PT]) GetBySlug(ctx context.Context, slug string) (PT, error) {
	if !r.sluggable() || slug == "" {
		return nil, nil
	}
	all, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, rec := range all {
		if any(rec).(Sluggable).SlugValue() == slug {
			return rec, nil
		}
	}
	return nil, nil
}

// Create assigns a new id, derives the slug and stamps both timestamps with the
// same instant. The payload is stored as given otherwise.
func (r *Repository[T, PT]) Create(ctx context.Context, rec PT) (PT, error) {
	now := r.now().UTC()
	meta := rec.Meta()
	meta.ID = r.newID()
	meta.CreatedAt = now
	meta.UpdatedAt = now

	if s, ok := any(rec).(Sluggable); ok {
		s.SetSlug(recordSlug(s.SlugSource()))
	}

	if err := r.put(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Update shallow-merges partial over the stored record. It returns nil, nil when the
// record does not exist. The slug is re-derived only when the title changed.
func (r *Repository[T, PT]) Update(ctx context.Context, id string, partial map[string]any) (PT, error) {
	existing, err := r.GetByID(ctx, id)
	if err != nil || existing == nil {
		return nil, err
	}

	current, err := json.Marshal(existing)
	if err != nil {
		return nil, fmt.Errorf("encode %s %s: %w", r.resource, id, err)
	}
	merged := map[string]any{}
	if err := json.Unmarshal(current, &merged); err != nil {
		return nil, fmt.Errorf("decode %s %s: %w", r.resource, id, err)
	}
	for k, v := range partial {
		if immutable[k] {
			continue
		}
		merged[k] = v
	}

	body, err := json.Marshal(merged)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPatch, err)
	}
	next, err := r.decode(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPatch, err)
	}

	old := existing.Meta()
	meta := next.Meta()
	meta.ID = old.ID
	meta.CreatedAt = old.CreatedAt
	meta.UpdatedAt = r.now().UTC()

	if s, ok := any(next).(Sluggable); ok {
		if s.SlugSource() != any(existing).(Sluggable).SlugSource() {
			s.SetSlug(recordSlug(s.SlugSource()))
		}
	}

	if err := r.put(ctx, next); err != nil {
		return nil, err
	}
	return next, nil
}

// Delete reports false when there was nothing to delete.
func (r *Repository[T, PT]) Delete(ctx context.Context, id string) (bool, error) {
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, nil
	}
	if err := r.store.Delete(ctx, r.key(id)); err != nil {
		return false, fmt.Errorf("delete %s %s: %w", r.resource, id, err)
	}
	return true, nil
}

// SeedInitial inserts samples only when no record of this type exists yet. It
// returns the number of records inserted.
func (r *Repository[T, PT]) SeedInitial(ctx context.Context, samples []T) (int, error) {
	entries, err := r.store.ScanPrefix(ctx, r.prefix)
	if err != nil {
		return 0, fmt.Errorf("check existing %s: %w", r.resource, err)
	}
	if len(entries) > 0 {
		utils.Logger.Infof("%s already has %d records; skipping seed.", r.resource, len(entries))
		return 0, nil
	}

	for i := range samples {
		rec := samples[i]
		if _, err := r.Create(ctx, &rec); err != nil {
			return i, fmt.Errorf("seed %s #%d: %w", r.resource, i, err)
		}
	}
	utils.Logger.Infof("Seeded %d %s records.", len(samples), r.resource)
	return len(samples), nil
}

// Query narrows a listing. Zero values mean "no constraint".
type Query struct {
	PublishedOnly bool
	Featured      *bool
	Category      string
	Limit         int
}

// List applies q to GetAll. Record types with a display order are sorted by it,
// keeping newest-first among equal orders.
func (r *Repository[T, PT]) List(ctx context.Context, q Query) ([]PT, error) {
	all, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]PT, 0, len(all))
	for _, rec := range all {
		if q.PublishedOnly && !rec.Meta().Published {
			continue
		}
		if q.Featured != nil {
			f, ok := any(rec).(Featurable)
			if !ok || f.IsFeatured() != *q.Featured {
				continue
			}
		}
		if q.Category != "" {
			c, ok := any(rec).(Categorized)
			if !ok || !strings.EqualFold(c.CategoryName(), q.Category) {
				continue
			}
		}
		out = append(out, rec)
	}

	if _, ok := any(PT(new(T))).(Ordered); ok {
		sort.SliceStable(out, func(i, j int) bool {
			return any(out[i]).(Ordered).Order() < any(out[j]).(Ordered).Order()
		})
	}

	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (r *Repository[T, PT]) sluggable() bool {
	_, ok := any(PT(new(T))).(Sluggable)
	return ok
}

func (r *Repository[T, PT]) decode(raw []byte) (PT, error) {
	rec := PT(new(T))
	if err := json.Unmarshal(raw, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *Repository[T, PT]) put(ctx context.Context, rec PT) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode %s: %w", r.resource, err)
	}
	id := rec.Meta().ID
	if err := r.store.Set(ctx, r.key(id), raw); err != nil {
		return fmt.Errorf("write %s %s: %w", r.resource, id, err)
	}
	return nil
}
