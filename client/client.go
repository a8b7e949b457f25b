// Package client is the Go side of the public API: a typed HTTP client, the
// default-content policy used when the API is unreachable, and the sign-in session.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dcode-github/luxury_realty/backend/models"
)

// APIError is any non-2xx answer from the API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// SignInResult mirrors the body of POST /login.
type SignInResult struct {
	AccessToken string      `json:"accessToken"`
	ExpiresIn   int         `json:"expiresIn"`
	User        models.User `json:"user"`
}

// Recommendation is one entry of the caller's recommendation inbox.
type Recommendation struct {
	models.Recommendation
	Property *models.Property `json:"property"`
}

type Client struct {
	baseURL string
	anonKey string
	http    *http.Client

	mu    sync.RWMutex
	token string

	Properties   *Resource[models.Property]
	Testimonials *Resource[models.Testimonial]
	Recognitions *Resource[models.Recognition]
	Partnerships *Resource[models.Partnership]
	Posts        *Resource[models.BlogPost]
}

// New builds a client for baseURL, which includes the API prefix. Requests carry
// the session token when one is set and anonKey otherwise.
func New(baseURL, anonKey string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		anonKey: anonKey,
		http:    httpClient,
	}
	c.Properties = &Resource[models.Property]{c: c, path: "/properties", singular: "property", plural: "properties"}
	c.Testimonials = &Resource[models.Testimonial]{c: c, path: "/testimonials", singular: "testimonial", plural: "testimonials"}
	c.Recognitions = &Resource[models.Recognition]{c: c, path: "/recognitions", singular: "recognition", plural: "recognitions"}
	c.Partnerships = &Resource[models.Partnership]{c: c, path: "/partnerships", singular: "partnership", plural: "partnerships"}
	c.Posts = &Resource[models.BlogPost]{c: c, path: "/blog", singular: "post", plural: "posts"}
	return c
}

func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Resource is one content type's routes: public reads and the admin writes,
// which need a session token.
type Resource[T any] struct {
	c        *Client
	path     string
	singular string
	plural   string
}

// List returns published records. q may carry featured, category and limit.
func (r *Resource[T]) List(ctx context.Context, q url.Values) ([]T, error) {
	return list[T](ctx, r.c, r.path, r.plural, q)
}

// Get looks a record up by id or slug.
func (r *Resource[T]) Get(ctx context.Context, idOrSlug string) (*T, error) {
	return get[T](ctx, r.c, http.MethodGet, r.path+"/"+url.PathEscape(idOrSlug), r.singular, nil)
}

// AdminList returns every record, published or not.
func (r *Resource[T]) AdminList(ctx context.Context) ([]T, error) {
	return list[T](ctx, r.c, r.path+"/admin", r.plural, nil)
}

func (r *Resource[T]) Create(ctx context.Context, rec *T) (*T, error) {
	return get[T](ctx, r.c, http.MethodPost, r.path+"/admin", r.singular, rec)
}

// Update sends a partial record; fields absent from patch keep their values.
func (r *Resource[T]) Update(ctx context.Context, id string, patch map[string]any) (*T, error) {
	return get[T](ctx, r.c, http.MethodPut, r.path+"/admin/"+url.PathEscape(id), r.singular, patch)
}

func (r *Resource[T]) Delete(ctx context.Context, id string) error {
	return r.c.do(ctx, http.MethodDelete, r.path+"/admin/"+url.PathEscape(id), nil, nil)
}

// SeedAll asks the server to seed every empty resource and returns how many
// records each received.
func (c *Client) SeedAll(ctx context.Context) (map[string]int, error) {
	var out struct {
		Seeded map[string]int `json:"seeded"`
	}
	if err := c.do(ctx, http.MethodGet, "/seed-all", nil, &out); err != nil {
		return nil, err
	}
	return out.Seeded, nil
}

func (c *Client) SignUp(ctx context.Context, email, password, fullName string) (*models.User, error) {
	body := map[string]string{"email": email, "password": password, "fullName": fullName}
	var out struct {
		User models.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/signup", body, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

func (c *Client) SignIn(ctx context.Context, email, password string) (*SignInResult, error) {
	body := map[string]string{"email": email, "password": password}
	var out SignInResult
	if err := c.do(ctx, http.MethodPost, "/login", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Profile(ctx context.Context) (*models.User, error) {
	var out struct {
		User models.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/profile", nil, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// UpdateProfile sends only the non-nil fields.
func (c *Client) UpdateProfile(ctx context.Context, fullName, phone *string) (*models.User, error) {
	body := map[string]*string{}
	if fullName != nil {
		body["fullName"] = fullName
	}
	if phone != nil {
		body["phone"] = phone
	}
	var out struct {
		User models.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodPut, "/profile", body, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

func (c *Client) Favorites(ctx context.Context) ([]models.Property, error) {
	return list[models.Property](ctx, c, "/favorites", "favorites", nil)
}

func (c *Client) AddFavorite(ctx context.Context, propertyID string) error {
	return c.do(ctx, http.MethodPost, "/favorites/"+url.PathEscape(propertyID), nil, nil)
}

func (c *Client) RemoveFavorite(ctx context.Context, propertyID string) error {
	return c.do(ctx, http.MethodDelete, "/favorites/"+url.PathEscape(propertyID), nil, nil)
}

func (c *Client) Recommend(ctx context.Context, propertyID, toEmail, message string) (*models.Recommendation, error) {
	body := map[string]string{"propertyId": propertyID, "toEmail": toEmail, "message": message}
	return get[models.Recommendation](ctx, c, http.MethodPost, "/recommendations", "recommendation", body)
}

func (c *Client) Recommendations(ctx context.Context) ([]Recommendation, error) {
	return list[Recommendation](ctx, c, "/recommendations", "recommendations", nil)
}

func list[T any](ctx context.Context, c *Client, path, key string, q url.Values) ([]T, error) {
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var out map[string][]T
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out[key], nil
}

// get sends body (if any) and unwraps the single record under key.
func get[T any](ctx context.Context, c *Client, method, path, key string, body any) (*T, error) {
	var out map[string]*T
	if err := c.do(ctx, method, path, body, &out); err != nil {
		return nil, err
	}
	rec, ok := out[key]
	if !ok || rec == nil {
		return nil, &APIError{Status: http.StatusNotFound, Message: key + " missing from response"}
	}
	return rec, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	bearer := c.Token()
	if bearer == "" {
		bearer = c.anonKey
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		if e.Error == "" {
			e.Error = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: e.Error}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
