package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/princinho/stonevitrine/database"
	"github.com/princinho/stonevitrine/models"
	"github.com/princinho/stonevitrine/utils"
	"go.mongodb.org/mongo-driver/v2/bson"
)

const recentMessages = 5

func GetDashboard(stores *database.Stores) gin.HandlerFunc {
	return func(c *gin.Context) {
		d, err := BuildDashboard(c.Request.Context(), stores)
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, d)
	}
}

// BuildDashboard counts every resource and picks the latest messages.
func BuildDashboard(ctx context.Context, stores *database.Stores) (*models.Dashboard, error) {
	d := &models.Dashboard{}
	counts := []struct {
		dst   *int64
		count func() (int64, error)
	}{
		{&d.Projects, func() (int64, error) { return stores.Projects.Count(ctx, nil) }},
		{&d.Collections, func() (int64, error) { return stores.Collections.Count(ctx, nil) }},
		{&d.Expertise, func() (int64, error) { return stores.Expertise.Count(ctx, nil) }},
		{&d.Team, func() (int64, error) { return stores.Team.Count(ctx, nil) }},
		{&d.Testimonials, func() (int64, error) { return stores.Testimonials.Count(ctx, nil) }},
		{&d.PendingTestimonials, func() (int64, error) { return stores.Testimonials.Count(ctx, bson.M{"isApproved": false}) }},
		{&d.Messages, func() (int64, error) { return stores.Messages.Count(ctx, nil) }},
		{&d.UnreadMessages, func() (int64, error) { return stores.Messages.Count(ctx, bson.M{"read": false}) }},
	}
	for _, cnt := range counts {
		n, err := cnt.count()
		if err != nil {
			return nil, err
		}
		*cnt.dst = n
	}

	recent, err := stores.Messages.Find(ctx, database.Query{Sort: sortNewest, Limit: recentMessages})
	if err != nil {
		return nil, err
	}
	if recent == nil {
		recent = []models.Message{}
	}
	d.RecentMessages = recent
	return d, nil
}
