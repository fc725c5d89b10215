package dto

import (
	"strings"
	"time"

	"github.com/princinho/stonevitrine/models"
	"github.com/princinho/stonevitrine/utils"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type CreateExpertiseDTO struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	Icon        string `json:"icon"`
	Order       int    `json:"order"`
	IsActive    *bool  `json:"isActive"`
}

func (d CreateExpertiseDTO) Model(now time.Time) (*models.Expertise, error) {
	title := strings.TrimSpace(d.Title)
	desc := strings.TrimSpace(d.Description)
	if title == "" || desc == "" {
		return nil, utils.NewValidationError("title and description are required")
	}
	return &models.Expertise{
		Id:          bson.NewObjectID(),
		Title:       title,
		Description: desc,
		Icon:        strings.TrimSpace(d.Icon),
		Order:       d.Order,
		IsActive:    orDefault(d.IsActive, true),
		CreatedAt:   now,
	}, nil
}

type UpdateExpertiseDTO struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Icon        *string `json:"icon"`
	Order       *int    `json:"order"`
	IsActive    *bool   `json:"isActive"`
}

func (d UpdateExpertiseDTO) Set() (bson.M, error) {
	p := newPatch().
		text("title", d.Title, true).
		text("description", d.Description, true).
		text("icon", d.Icon, false)
	value(p, "order", d.Order)
	value(p, "isActive", d.IsActive)
	return p.done()
}
