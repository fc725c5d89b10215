package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/princinho/stonevitrine/database"
	"github.com/princinho/stonevitrine/dto"
	"github.com/princinho/stonevitrine/logger"
	"github.com/princinho/stonevitrine/models"
	"github.com/princinho/stonevitrine/notify"
	"github.com/princinho/stonevitrine/utils"
	"go.mongodb.org/mongo-driver/v2/bson"
)

const messageResource = "message"

// CreateMessage stores a contact form submission and then notifies the site
// owner in the background. A failed notification never fails the request.
func CreateMessage(messages database.Repository[models.Message], settings database.Repository[models.Settings], dispatcher *notify.Dispatcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.CreateMessageDTO
		if !utils.BindJSON(c, &body) {
			return
		}
		msg, err := body.Model(now())
		if err != nil {
			utils.RespondError(c, err)
			return
		}

		ctx := c.Request.Context()
		if err := messages.Insert(ctx, msg); err != nil {
			utils.RespondError(c, err)
			return
		}

		s, err := database.GetOrCreateSettings(ctx, settings)
		if err != nil {
			logger.App().WithError(err).WithField("messageId", msg.Id.Hex()).
				Warn("settings unavailable, skipping new message notification")
		} else if dispatcher != nil {
			dispatcher.NewMessage(*s, *msg)
		}

		c.JSON(http.StatusCreated, msg)
	}
}

// GetMessages lists the inbox, newest first. ?unread=true narrows it to unread messages.
func GetMessages(repo database.Repository[models.Message]) gin.HandlerFunc {
	return func(c *gin.Context) {
		var filter bson.M
		if c.Query("unread") == "true" {
			filter = bson.M{"read": false}
		}
		respondList(c, repo, filter, sortNewest)
	}
}

// GetMessage returns one message and marks it read.
func GetMessage(repo database.Repository[models.Message]) gin.HandlerFunc {
	return markMessageRead(repo)
}

func MarkMessageRead(repo database.Repository[models.Message]) gin.HandlerFunc {
	return markMessageRead(repo)
}

func markMessageRead(repo database.Repository[models.Message]) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}
		msg, err := repo.UpdateByID(c.Request.Context(), id, bson.M{"read": true})
		if err != nil {
			utils.RespondError(c, utils.OrNotFound(err, messageResource))
			return
		}
		c.JSON(http.StatusOK, msg)
	}
}

func DeleteMessage(repo database.Repository[models.Message]) gin.HandlerFunc {
	return deleteHandler(repo, messageResource)
}
