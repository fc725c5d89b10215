package dto

import (
	"strings"
	"time"

	"github.com/princinho/stonevitrine/models"
	"github.com/princinho/stonevitrine/utils"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type CreateProjectDTO struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description" binding:"required"`
	ImageUrl    string   `json:"imageUrl" binding:"required"`
	Category    string   `json:"category"`
	Materials   []string `json:"materials"`
	TotalPrice  float64  `json:"totalPrice" binding:"gte=0"`
	Dimensions  string   `json:"dimensions"`
}

func (d CreateProjectDTO) Model(now time.Time) (*models.Project, error) {
	title := strings.TrimSpace(d.Title)
	desc := strings.TrimSpace(d.Description)
	img := strings.TrimSpace(d.ImageUrl)
	if title == "" || desc == "" || img == "" {
		return nil, utils.NewValidationError("title, description and imageUrl are required")
	}
	category := strings.TrimSpace(d.Category)
	if category == "" {
		category = models.DefaultProjectCategory
	}
	return &models.Project{
		Id:          bson.NewObjectID(),
		Title:       title,
		Description: desc,
		ImageUrl:    img,
		Category:    category,
		Materials:   orEmpty(d.Materials),
		TotalPrice:  d.TotalPrice,
		Dimensions:  strings.TrimSpace(d.Dimensions),
		CreatedAt:   now,
	}, nil
}

// UpdateProjectDTO has no likes field: likes only move through the like endpoint.
type UpdateProjectDTO struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	ImageUrl    *string   `json:"imageUrl"`
	Category    *string   `json:"category"`
	Materials   *[]string `json:"materials"`
	TotalPrice  *float64  `json:"totalPrice" binding:"omitempty,gte=0"`
	Dimensions  *string   `json:"dimensions"`
}

func (d UpdateProjectDTO) Set() (bson.M, error) {
	p := newPatch().
		text("title", d.Title, true).
		text("description", d.Description, true).
		text("imageUrl", d.ImageUrl, true).
		text("category", d.Category, true).
		text("dimensions", d.Dimensions, false).
		list("materials", d.Materials)
	value(p, "totalPrice", d.TotalPrice)
	return p.done()
}
