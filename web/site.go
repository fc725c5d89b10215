// Package web renders the public showcase pages from the API.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	"github.com/princinho/stonevitrine/client"
	"github.com/princinho/stonevitrine/dto"
	"github.com/princinho/stonevitrine/logger"
	"github.com/princinho/stonevitrine/models"
	"github.com/princinho/stonevitrine/utils"
	"golang.org/x/sync/errgroup"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{"home", "collections", "collection", "portfolio", "project", "contact", "about", "error"}

// API is the part of the client the pages read from.
type API interface {
	Settings(ctx context.Context) (*models.Settings, error)
	ActiveCollections(ctx context.Context) ([]models.Collection, error)
	Collection(ctx context.Context, id string) (*models.Collection, error)
	Projects(ctx context.Context) ([]models.Project, error)
	Project(ctx context.Context, id string) (*models.Project, error)
	LikeProject(ctx context.Context, id string) (int, error)
	Team(ctx context.Context) ([]models.TeamMember, error)
	ActiveExpertise(ctx context.Context) ([]models.Expertise, error)
	FeaturedTestimonials(ctx context.Context) ([]models.Testimonial, error)
	SendMessage(ctx context.Context, m dto.CreateMessageDTO) (*models.Message, error)
}

type Site struct {
	api    API
	prefix string
	pages  map[string]*template.Template
}

func NewSite(api API) (*Site, error) {
	funcs := template.FuncMap{
		"year": func() int { return time.Now().Year() },
		"slug": utils.GenerateSlug,
		"price": func(v float64) string {
			return strings.Replace(fmt.Sprintf("%.2f €", v), ".", ",", 1)
		},
	}
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s page: %w", name, err)
		}
		pages[name] = t
	}
	return &Site{api: api, pages: pages}, nil
}

func (s *Site) Register(g *gin.RouterGroup) {
	s.prefix = strings.TrimRight(g.BasePath(), "/")

	g.GET("", s.home)
	g.GET("/collections", s.collections)
	g.GET("/collections/:id", s.collection)
	g.GET("/portfolio", s.portfolio)
	g.GET("/portfolio/:id", s.project)
	g.POST("/portfolio/:id/like", s.like)
	g.GET("/about", s.about)
	g.GET("/contact", s.contactForm)
	g.POST("/contact", s.contactSubmit)
}

type page struct {
	Prefix   string
	Title    string
	Settings *models.Settings
	Data     any
}

func (s *Site) render(c *gin.Context, status int, name, title string, settings *models.Settings, data any) {
	if settings == nil {
		settings = &models.Settings{}
	}
	c.Render(status, render.HTML{
		Template: s.pages[name],
		Name:     "layout",
		Data:     page{Prefix: s.prefix, Title: title, Settings: settings, Data: data},
	})
}

// fail renders the error page. A 404 from the API becomes a 404 page,
// anything else means the API could not serve us.
func (s *Site) fail(c *gin.Context, err error) {
	status, msg := http.StatusBadGateway, "Le service est momentanément indisponible."
	if client.IsNotFound(err) {
		status, msg = http.StatusNotFound, "Cette page n'existe pas."
	} else {
		logger.App().WithError(err).WithField("path", c.Request.URL.Path).Error("web page failed")
	}
	s.render(c, status, "error", "Erreur", nil, msg)
}

func (s *Site) home(c *gin.Context) {
	var (
		settings     *models.Settings
		collections  []models.Collection
		expertise    []models.Expertise
		testimonials []models.Testimonial
		team         []models.TeamMember
	)
	g, ctx := errgroup.WithContext(visitor(c))
	g.Go(func() (err error) { settings, err = s.api.Settings(ctx); return })
	g.Go(func() (err error) { collections, err = s.api.ActiveCollections(ctx); return })
	g.Go(func() (err error) { expertise, err = s.api.ActiveExpertise(ctx); return })
	g.Go(func() (err error) { testimonials, err = s.api.FeaturedTestimonials(ctx); return })
	g.Go(func() (err error) { team, err = s.api.Team(ctx); return })
	if err := g.Wait(); err != nil {
		s.fail(c, err)
		return
	}

	s.render(c, http.StatusOK, "home", settings.SiteName, settings, gin.H{
		"Collections":  collections,
		"Expertise":    expertise,
		"Testimonials": testimonials,
		"Team":         team,
	})
}

func (s *Site) collections(c *gin.Context) {
	ctx := visitor(c)
	list, err := s.api.ActiveCollections(ctx)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.render(c, http.StatusOK, "collections", "Nos collections", s.settings(ctx), list)
}

func (s *Site) collection(c *gin.Context) {
	ctx := visitor(c)
	col, err := s.api.Collection(ctx, c.Param("id"))
	if err != nil {
		s.fail(c, notFoundOnBadID(err))
		return
	}
	if !col.IsActive {
		s.fail(c, &client.APIError{Status: http.StatusNotFound})
		return
	}
	s.render(c, http.StatusOK, "collection", col.Name, s.settings(ctx), col)
}

// portfolio lists projects, optionally narrowed to one ?category.
func (s *Site) portfolio(c *gin.Context) {
	ctx := visitor(c)
	projects, err := s.api.Projects(ctx)
	if err != nil {
		s.fail(c, err)
		return
	}

	categories := []string{}
	seen := map[string]bool{}
	for _, p := range projects {
		if !seen[p.Category] {
			seen[p.Category] = true
			categories = append(categories, p.Category)
		}
	}

	selected := c.Query("category")
	if selected != "" {
		filtered := projects[:0:0]
		for _, p := range projects {
			if p.Category == selected {
				filtered = append(filtered, p)
			}
		}
		projects = filtered
	}

	s.render(c, http.StatusOK, "portfolio", "Réalisations", s.settings(ctx), gin.H{
		"Projects":   projects,
		"Categories": categories,
		"Selected":   selected,
	})
}

func (s *Site) project(c *gin.Context) {
	ctx := visitor(c)
	p, err := s.api.Project(ctx, c.Param("id"))
	if err != nil {
		s.fail(c, notFoundOnBadID(err))
		return
	}
	s.render(c, http.StatusOK, "project", p.Title, s.settings(ctx), p)
}

func (s *Site) like(c *gin.Context) {
	id := c.Param("id")
	if _, err := s.api.LikeProject(visitor(c), id); err != nil {
		s.fail(c, notFoundOnBadID(err))
		return
	}
	c.Redirect(http.StatusSeeOther, s.prefix+"/portfolio/"+id)
}

func (s *Site) about(c *gin.Context) {
	var (
		settings *models.Settings
		team     []models.TeamMember
	)
	g, ctx := errgroup.WithContext(visitor(c))
	g.Go(func() (err error) { settings, err = s.api.Settings(ctx); return })
	g.Go(func() (err error) { team, err = s.api.Team(ctx); return })
	if err := g.Wait(); err != nil {
		s.fail(c, err)
		return
	}
	s.render(c, http.StatusOK, "about", "À propos", settings, team)
}

type contactPage struct {
	Form    dto.CreateMessageDTO
	Error   string
	Success bool
}

func (s *Site) contactForm(c *gin.Context) {
	s.render(c, http.StatusOK, "contact", "Contact", s.settings(visitor(c)), contactPage{})
}

func (s *Site) contactSubmit(c *gin.Context) {
	ctx := visitor(c)
	form := dto.CreateMessageDTO{
		Name:    c.PostForm("name"),
		Email:   c.PostForm("email"),
		Subject: c.PostForm("subject"),
		Message: c.PostForm("message"),
	}

	_, err := s.api.SendMessage(ctx, form)
	var apiErr *client.APIError
	switch {
	case err == nil:
		s.render(c, http.StatusOK, "contact", "Contact", s.settings(ctx), contactPage{Success: true})
	case errors.As(err, &apiErr) && apiErr.Status < http.StatusInternalServerError:
		s.render(c, apiErr.Status, "contact", "Contact", s.settings(ctx), contactPage{Form: form, Error: apiErr.Message})
	default:
		s.fail(c, err)
	}
}

// settings is best effort: pages still render with empty site details.
func (s *Site) settings(ctx context.Context) *models.Settings {
	st, err := s.api.Settings(ctx)
	if err != nil {
		logger.App().WithError(err).Warn("settings unavailable for web page")
		return nil
	}
	return st
}

// visitor carries the end user's address to the API, which rate limits by it.
func visitor(c *gin.Context) context.Context {
	return client.WithForwardedFor(c.Request.Context(), c.ClientIP())
}

func notFoundOnBadID(err error) error {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusBadRequest {
		return &client.APIError{Status: http.StatusNotFound, Message: apiErr.Message}
	}
	return err
}
