package client

import (
	"context"
	"net/url"

	"github.com/dcode-github/luxury_realty/backend/models"
	"github.com/dcode-github/luxury_realty/backend/seed"
	"github.com/dcode-github/luxury_realty/backend/utils"
)

// Content is a list as shown to a visitor. Fallback is set when Items are the
// built-in defaults rather than what the API returned.
type Content[T any] struct {
	Items    []T
	Fallback bool
}

// Defaults are shown whenever a list cannot be fetched or comes back empty, so a
// page is never blank.
type Defaults struct {
	Properties   []models.Property
	Testimonials []models.Testimonial
	Recognitions []models.Recognition
	Partnerships []models.Partnership
	Posts        []models.BlogPost
}

// SeedDefaults uses the same sample set the server seeds an empty store with.
func SeedDefaults() (Defaults, error) {
	var d Defaults
	var err error
	if d.Properties, err = seed.Properties(); err != nil {
		return d, err
	}
	if d.Testimonials, err = seed.Testimonials(); err != nil {
		return d, err
	}
	if d.Recognitions, err = seed.Recognitions(); err != nil {
		return d, err
	}
	if d.Partnerships, err = seed.Partnerships(); err != nil {
		return d, err
	}
	if d.Posts, err = seed.BlogPosts(); err != nil {
		return d, err
	}
	return d, nil
}

// Catalog reads public content and applies the default-content policy.
type Catalog struct {
	client   *Client
	defaults Defaults
}

func NewCatalog(c *Client, defaults Defaults) *Catalog {
	return &Catalog{client: c, defaults: defaults}
}

func (c *Catalog) Properties(ctx context.Context, q url.Values) Content[models.Property] {
	items, err := c.client.Properties.List(ctx, q)
	return orDefault("properties", items, err, c.defaults.Properties)
}

func (c *Catalog) Testimonials(ctx context.Context, q url.Values) Content[models.Testimonial] {
	items, err := c.client.Testimonials.List(ctx, q)
	return orDefault("testimonials", items, err, c.defaults.Testimonials)
}

func (c *Catalog) Recognitions(ctx context.Context, q url.Values) Content[models.Recognition] {
	items, err := c.client.Recognitions.List(ctx, q)
	return orDefault("recognitions", items, err, c.defaults.Recognitions)
}

func (c *Catalog) Partnerships(ctx context.Context, q url.Values) Content[models.Partnership] {
	items, err := c.client.Partnerships.List(ctx, q)
	return orDefault("partnerships", items, err, c.defaults.Partnerships)
}

func (c *Catalog) Posts(ctx context.Context, q url.Values) Content[models.BlogPost] {
	items, err := c.client.Posts.List(ctx, q)
	return orDefault("posts", items, err, c.defaults.Posts)
}

func orDefault[T any](what string, items []T, err error, defaults []T) Content[T] {
	if err != nil {
		utils.Logger.WithError(err).Warnf("Fetching %s failed; showing defaults", what)
		return Content[T]{Items: defaults, Fallback: true}
	}
	if len(items) == 0 {
		utils.Logger.Debugf("No %s returned; showing defaults", what)
		return Content[T]{Items: defaults, Fallback: true}
	}
	return Content[T]{Items: items}
}
