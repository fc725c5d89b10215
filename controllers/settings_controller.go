package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/princinho/stonevitrine/database"
	"github.com/princinho/stonevitrine/dto"
	"github.com/princinho/stonevitrine/models"
	"github.com/princinho/stonevitrine/utils"
)

func GetSettings(repo database.Repository[models.Settings]) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, err := database.GetOrCreateSettings(c.Request.Context(), repo)
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, s)
	}
}

func UpdateSettings(repo database.Repository[models.Settings]) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.UpdateSettingsDTO
		if !utils.BindJSON(c, &body) {
			return
		}

		ctx := c.Request.Context()
		current, err := database.GetOrCreateSettings(ctx, repo)
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		set, err := body.Set(*current, now())
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		updated, err := repo.UpdateByID(ctx, current.Id, set)
		if err != nil {
			utils.RespondError(c, utils.OrNotFound(err, "settings"))
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}
