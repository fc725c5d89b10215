package dto

import (
	"strings"
	"time"

	"github.com/princinho/stonevitrine/models"
	"github.com/princinho/stonevitrine/utils"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type CreateCollectionDTO struct {
	Name              string   `json:"name" binding:"required"`
	Description       string   `json:"description" binding:"required"`
	ExpertDescription string   `json:"expertDescription"`
	Features          []string `json:"features"`
	ImageUrl          string   `json:"imageUrl" binding:"required"`
	Order             int      `json:"order"`
	IsActive          *bool    `json:"isActive"`
	IsAvailable       *bool    `json:"isAvailable"`
	PricePerM2        float64  `json:"pricePerM2" binding:"gte=0"`
}

func (d CreateCollectionDTO) Model(now time.Time) (*models.Collection, error) {
	name := strings.TrimSpace(d.Name)
	desc := strings.TrimSpace(d.Description)
	img := strings.TrimSpace(d.ImageUrl)
	if name == "" || desc == "" || img == "" {
		return nil, utils.NewValidationError("name, description and imageUrl are required")
	}
	return &models.Collection{
		Id:                bson.NewObjectID(),
		Name:              name,
		Description:       desc,
		ExpertDescription: strings.TrimSpace(d.ExpertDescription),
		Features:          orEmpty(d.Features),
		ImageUrl:          img,
		Order:             d.Order,
		IsActive:          orDefault(d.IsActive, true),
		IsAvailable:       orDefault(d.IsAvailable, true),
		PricePerM2:        d.PricePerM2,
		CreatedAt:         now,
	}, nil
}

type UpdateCollectionDTO struct {
	Name              *string   `json:"name"`
	Description       *string   `json:"description"`
	ExpertDescription *string   `json:"expertDescription"`
	Features          *[]string `json:"features"`
	ImageUrl          *string   `json:"imageUrl"`
	Order             *int      `json:"order"`
	IsActive          *bool     `json:"isActive"`
	IsAvailable       *bool     `json:"isAvailable"`
	PricePerM2        *float64  `json:"pricePerM2" binding:"omitempty,gte=0"`
}

func (d UpdateCollectionDTO) Set() (bson.M, error) {
	p := newPatch().
		text("name", d.Name, true).
		text("description", d.Description, true).
		text("expertDescription", d.ExpertDescription, false).
		text("imageUrl", d.ImageUrl, true).
		list("features", d.Features)
	value(p, "order", d.Order)
	value(p, "isActive", d.IsActive)
	value(p, "isAvailable", d.IsAvailable)
	value(p, "pricePerM2", d.PricePerM2)
	return p.done()
}
