// Package client is a thin HTTP client over the showcase API, used by the
// server-rendered pages and the CLI.
package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/princinho/stonevitrine/dto"
	"github.com/princinho/stonevitrine/models"
)

// APIError is a non-2xx answer from the API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

type Client struct {
	http *resty.Client
}

// New targets baseURL, the API root including the /api prefix.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	r := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	return &Client{http: r}
}

// SetToken authenticates later calls with a session token.
func (c *Client) SetToken(token string) { c.http.SetAuthToken(token) }

type errorBody struct {
	Message string `json:"message"`
}

type forwardedForKey struct{}

// WithForwardedFor tags ctx with the end user's address. Calls made with it
// carry X-Forwarded-For so the API rate limits the visitor, not this process.
func WithForwardedFor(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, forwardedForKey{}, ip)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var apiErr errorBody
	req := c.http.R().SetContext(ctx).SetError(&apiErr)
	if ip, ok := ctx.Value(forwardedForKey{}).(string); ok && ip != "" {
		req.SetHeader("X-Forwarded-For", ip)
	}
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}
	if out != nil {
		req.SetResult(out)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	if resp.IsError() {
		msg := apiErr.Message
		if msg == "" {
			msg = http.StatusText(resp.StatusCode())
		}
		return &APIError{Status: resp.StatusCode(), Message: msg}
	}
	return nil
}

func get[T any](ctx context.Context, c *Client, path string) (T, error) {
	var out T
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

type session struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Token    string `json:"token"`
}

// Login opens a session and keeps its token for the following calls.
func (c *Client) Login(ctx context.Context, username, password string) error {
	var s session
	if err := c.do(ctx, http.MethodPost, "/auth/login", dto.LoginDTO{Username: username, Password: password}, &s); err != nil {
		return err
	}
	c.SetToken(s.Token)
	return nil
}

// Collections lists every collection, inactive ones included. Requires a session.
func (c *Client) Collections(ctx context.Context) ([]models.Collection, error) {
	return get[[]models.Collection](ctx, c, "/collections")
}

func (c *Client) ActiveCollections(ctx context.Context) ([]models.Collection, error) {
	return get[[]models.Collection](ctx, c, "/collections/active")
}

func (c *Client) Collection(ctx context.Context, id string) (*models.Collection, error) {
	return get[*models.Collection](ctx, c, "/collections/"+id)
}

func (c *Client) Projects(ctx context.Context) ([]models.Project, error) {
	return get[[]models.Project](ctx, c, "/projects")
}

func (c *Client) Project(ctx context.Context, id string) (*models.Project, error) {
	return get[*models.Project](ctx, c, "/projects/"+id)
}

func (c *Client) LikeProject(ctx context.Context, id string) (int, error) {
	var out struct {
		Likes int `json:"likes"`
	}
	err := c.do(ctx, http.MethodPatch, "/projects/"+id+"/like", nil, &out)
	return out.Likes, err
}

func (c *Client) Team(ctx context.Context) ([]models.TeamMember, error) {
	return get[[]models.TeamMember](ctx, c, "/team")
}

func (c *Client) Expertise(ctx context.Context) ([]models.Expertise, error) {
	return get[[]models.Expertise](ctx, c, "/expertise")
}

func (c *Client) ActiveExpertise(ctx context.Context) ([]models.Expertise, error) {
	return get[[]models.Expertise](ctx, c, "/expertise/active")
}

func (c *Client) FeaturedTestimonials(ctx context.Context) ([]models.Testimonial, error) {
	return get[[]models.Testimonial](ctx, c, "/testimonials/featured")
}

func (c *Client) ApprovedTestimonials(ctx context.Context) ([]models.Testimonial, error) {
	return get[[]models.Testimonial](ctx, c, "/testimonials/approved")
}

// Testimonials lists the moderation queue. Requires a session.
func (c *Client) Testimonials(ctx context.Context) ([]models.Testimonial, error) {
	return get[[]models.Testimonial](ctx, c, "/testimonials")
}

// Messages lists the inbox. Requires a session.
func (c *Client) Messages(ctx context.Context, unreadOnly bool) ([]models.Message, error) {
	path := "/messages"
	if unreadOnly {
		path += "?unread=true"
	}
	return get[[]models.Message](ctx, c, path)
}

func (c *Client) Settings(ctx context.Context) (*models.Settings, error) {
	return get[*models.Settings](ctx, c, "/settings")
}

func (c *Client) SendMessage(ctx context.Context, m dto.CreateMessageDTO) (*models.Message, error) {
	var out models.Message
	if err := c.do(ctx, http.MethodPost, "/messages", m, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SubmitTestimonial(ctx context.Context, t dto.CreateTestimonialDTO) (*models.Testimonial, error) {
	var out models.Testimonial
	if err := c.do(ctx, http.MethodPost, "/testimonials", t, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ServerDashboard fetches the aggregation computed by the API. Requires a session.
func (c *Client) ServerDashboard(ctx context.Context) (*models.Dashboard, error) {
	return get[*models.Dashboard](ctx, c, "/admin/dashboard")
}
