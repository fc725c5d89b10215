package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/princinho/stonevitrine/database"
	"github.com/princinho/stonevitrine/dto"
	"github.com/princinho/stonevitrine/models"
	"github.com/princinho/stonevitrine/utils"
	"go.mongodb.org/mongo-driver/v2/bson"
)

const testimonialResource = "testimonial"

// GetTestimonials is the moderation queue: every testimonial, newest first.
func GetTestimonials(repo database.Repository[models.Testimonial]) gin.HandlerFunc {
	return listHandler(repo, nil, sortNewest)
}

func GetApprovedTestimonials(repo database.Repository[models.Testimonial]) gin.HandlerFunc {
	return listHandler(repo, bson.M{"isApproved": true}, sortNewest)
}

func GetFeaturedTestimonials(repo database.Repository[models.Testimonial]) gin.HandlerFunc {
	return listHandler(repo, bson.M{"isApproved": true, "isFeatured": true}, sortNewest)
}

func GetTestimonial(repo database.Repository[models.Testimonial]) gin.HandlerFunc {
	return getHandler(repo, testimonialResource)
}

// SubmitTestimonial is the public form. Submissions wait for moderation.
func SubmitTestimonial(repo database.Repository[models.Testimonial]) gin.HandlerFunc {
	return createHandler[models.Testimonial, dto.CreateTestimonialDTO](repo)
}

func UpdateTestimonial(repo database.Repository[models.Testimonial]) gin.HandlerFunc {
	return updateHandler[models.Testimonial, dto.UpdateTestimonialDTO](repo, testimonialResource)
}

func ToggleTestimonialApproval(repo database.Repository[models.Testimonial]) gin.HandlerFunc {
	return toggleTestimonial(repo, "isApproved")
}

// ToggleTestimonialFeatured flips isFeatured and approves the testimonial
// when it becomes featured.
func ToggleTestimonialFeatured(repo database.Repository[models.Testimonial]) gin.HandlerFunc {
	return toggleTestimonial(repo, "isFeatured", "isApproved")
}

func toggleTestimonial(repo database.Repository[models.Testimonial], field string, implied ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}
		t, err := repo.Toggle(c.Request.Context(), id, field, implied...)
		if err != nil {
			utils.RespondError(c, utils.OrNotFound(err, testimonialResource))
			return
		}
		c.JSON(http.StatusOK, t)
	}
}

func DeleteTestimonial(repo database.Repository[models.Testimonial]) gin.HandlerFunc {
	return deleteHandler(repo, testimonialResource)
}
