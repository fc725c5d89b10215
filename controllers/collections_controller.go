package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/princinho/stonevitrine/database"
	"github.com/princinho/stonevitrine/dto"
	"github.com/princinho/stonevitrine/middleware"
	"github.com/princinho/stonevitrine/models"
	"github.com/princinho/stonevitrine/utils"
	"go.mongodb.org/mongo-driver/v2/bson"
)

const collectionResource = "collection"

// GetCollections is the back office list, inactive lines included.
func GetCollections(repo database.Repository[models.Collection]) gin.HandlerFunc {
	return listHandler(repo, nil, sortByOrderNewest)
}

// GetActiveCollections is the public catalog: inactive lines are never listed.
func GetActiveCollections(repo database.Repository[models.Collection]) gin.HandlerFunc {
	return listHandler(repo, bson.M{"isActive": true}, sortByOrderNewest)
}

// GetCollection hides inactive lines from anonymous callers; a session sees them all.
func GetCollection(repo database.Repository[models.Collection]) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}
		col, err := repo.FindByID(c.Request.Context(), id)
		if err == nil && !col.IsActive && !middleware.Authenticated(c) {
			err = database.ErrNotFound
		}
		if err != nil {
			utils.RespondError(c, utils.OrNotFound(err, collectionResource))
			return
		}
		c.JSON(http.StatusOK, col)
	}
}

func AddCollection(repo database.Repository[models.Collection]) gin.HandlerFunc {
	return createHandler[models.Collection, dto.CreateCollectionDTO](repo)
}

func UpdateCollection(repo database.Repository[models.Collection]) gin.HandlerFunc {
	return updateHandler[models.Collection, dto.UpdateCollectionDTO](repo, collectionResource)
}

func DeleteCollection(repo database.Repository[models.Collection]) gin.HandlerFunc {
	return deleteHandler(repo, collectionResource)
}
