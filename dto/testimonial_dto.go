package dto

import (
	"strings"
	"time"

	"github.com/princinho/stonevitrine/models"
	"github.com/princinho/stonevitrine/utils"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// CreateTestimonialDTO is the public submission form. Moderation flags are not
// accepted from the public and always start false.
type CreateTestimonialDTO struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Company  string `json:"company"`
	Job      string `json:"job"`
	Rating   int    `json:"rating" binding:"required,min=1,max=5"`
	Message  string `json:"message" binding:"required"`
	ImageUrl string `json:"imageUrl"`
}

func (d CreateTestimonialDTO) Model(now time.Time) (*models.Testimonial, error) {
	name := strings.TrimSpace(d.Name)
	msg := strings.TrimSpace(d.Message)
	if name == "" || msg == "" {
		return nil, utils.NewValidationError("name and message are required")
	}
	email, err := normalizeEmail(d.Email)
	if err != nil {
		return nil, err
	}
	return &models.Testimonial{
		Id:        bson.NewObjectID(),
		Name:      name,
		Email:     email,
		Company:   strings.TrimSpace(d.Company),
		Job:       strings.TrimSpace(d.Job),
		Rating:    d.Rating,
		Message:   msg,
		ImageUrl:  strings.TrimSpace(d.ImageUrl),
		CreatedAt: now,
	}, nil
}

type UpdateTestimonialDTO struct {
	Name       *string `json:"name"`
	Email      *string `json:"email"`
	Company    *string `json:"company"`
	Job        *string `json:"job"`
	Rating     *int    `json:"rating" binding:"omitempty,min=1,max=5"`
	Message    *string `json:"message"`
	ImageUrl   *string `json:"imageUrl"`
	IsApproved *bool   `json:"isApproved"`
	IsFeatured *bool   `json:"isFeatured"`
}

// Set builds the update. Featuring a testimonial approves it in the same write.
func (d UpdateTestimonialDTO) Set() (bson.M, error) {
	if d.Email != nil {
		email, err := normalizeEmail(*d.Email)
		if err != nil {
			return nil, err
		}
		d.Email = &email
	}
	if d.Rating != nil && (*d.Rating < 1 || *d.Rating > 5) {
		return nil, utils.NewValidationError("rating must be between 1 and 5")
	}
	p := newPatch().
		text("name", d.Name, true).
		text("email", d.Email, true).
		text("company", d.Company, false).
		text("job", d.Job, false).
		text("message", d.Message, true).
		text("imageUrl", d.ImageUrl, false)
	value(p, "rating", d.Rating)
	value(p, "isApproved", d.IsApproved)
	value(p, "isFeatured", d.IsFeatured)
	if d.IsFeatured != nil && *d.IsFeatured {
		p.set["isApproved"] = true
	}
	return p.done()
}
