package dto

import (
	"strings"
	"time"

	"github.com/princinho/stonevitrine/models"
	"github.com/princinho/stonevitrine/utils"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type CreateTeamMemberDTO struct {
	Name     string `json:"name" binding:"required"`
	Role     string `json:"role" binding:"required"`
	ImageUrl string `json:"imageUrl"`
	Bio      string `json:"bio"`
	Order    int    `json:"order"`
}

func (d CreateTeamMemberDTO) Model(now time.Time) (*models.TeamMember, error) {
	name := strings.TrimSpace(d.Name)
	role := strings.TrimSpace(d.Role)
	if name == "" || role == "" {
		return nil, utils.NewValidationError("name and role are required")
	}
	return &models.TeamMember{
		Id:        bson.NewObjectID(),
		Name:      name,
		Role:      role,
		ImageUrl:  strings.TrimSpace(d.ImageUrl),
		Bio:       strings.TrimSpace(d.Bio),
		Order:     d.Order,
		CreatedAt: now,
	}, nil
}

type UpdateTeamMemberDTO struct {
	Name     *string `json:"name"`
	Role     *string `json:"role"`
	ImageUrl *string `json:"imageUrl"`
	Bio      *string `json:"bio"`
	Order    *int    `json:"order"`
}

func (d UpdateTeamMemberDTO) Set() (bson.M, error) {
	p := newPatch().
		text("name", d.Name, true).
		text("role", d.Role, true).
		text("imageUrl", d.ImageUrl, false).
		text("bio", d.Bio, false)
	value(p, "order", d.Order)
	return p.done()
}
