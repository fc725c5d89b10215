package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/princinho/stonevitrine/database"
	"github.com/princinho/stonevitrine/utils"
	"go.mongodb.org/mongo-driver/v2/bson"
)

var (
	sortByOrderNewest = bson.D{{Key: "order", Value: 1}, {Key: "createdAt", Value: -1}}
	sortByOrderOldest = bson.D{{Key: "order", Value: 1}, {Key: "createdAt", Value: 1}}
	sortNewest        = bson.D{{Key: "createdAt", Value: -1}}
)

// creator is a create body that knows how to build its document.
type creator[T any] interface {
	Model(now time.Time) (*T, error)
}

// setter is an update body that produces a $set of the keys it carries.
type setter interface {
	Set() (bson.M, error)
}

func now() time.Time { return time.Now().UTC() }

// parseID reads :id and answers 400 when it is not an ObjectID.
func parseID(c *gin.Context) (bson.ObjectID, bool) {
	id, err := bson.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.RespondError(c, utils.NewValidationError("invalid id"))
		return bson.ObjectID{}, false
	}
	return id, true
}

// respondList writes the matching documents as a plain array, or as a page
// when the caller asked for one with ?page or ?limit.
func respondList[T any](c *gin.Context, repo database.Repository[T], filter bson.M, sort bson.D) {
	ctx := c.Request.Context()
	p := utils.ParsePagination(c)

	q := database.Query{Filter: filter, Sort: sort}
	if p.Enabled {
		q.Skip = p.Skip()
		q.Limit = int64(p.Limit)
	}

	items, err := repo.Find(ctx, q)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if items == nil {
		items = []T{}
	}
	if !p.Enabled {
		c.JSON(http.StatusOK, items)
		return
	}

	total, err := repo.Count(ctx, filter)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewPage(items, p, total))
}

func listHandler[T any](repo database.Repository[T], filter bson.M, sort bson.D) gin.HandlerFunc {
	return func(c *gin.Context) {
		respondList(c, repo, filter, sort)
	}
}

func getHandler[T any](repo database.Repository[T], resource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}
		doc, err := repo.FindByID(c.Request.Context(), id)
		if err != nil {
			utils.RespondError(c, utils.OrNotFound(err, resource))
			return
		}
		c.JSON(http.StatusOK, doc)
	}
}

func createHandler[T any, D creator[T]](repo database.Repository[T]) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body D
		if !utils.BindJSON(c, &body) {
			return
		}
		doc, err := body.Model(now())
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		if err := repo.Insert(c.Request.Context(), doc); err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, doc)
	}
}

func updateHandler[T any, D setter](repo database.Repository[T], resource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}
		var body D
		if !utils.BindJSON(c, &body) {
			return
		}
		set, err := body.Set()
		if err != nil {
			utils.RespondError(c, err)
			return
		}

		ctx := c.Request.Context()
		var doc *T
		if len(set) == 0 {
			doc, err = repo.FindByID(ctx, id)
		} else {
			doc, err = repo.UpdateByID(ctx, id, set)
		}
		if err != nil {
			utils.RespondError(c, utils.OrNotFound(err, resource))
			return
		}
		c.JSON(http.StatusOK, doc)
	}
}

func deleteHandler[T any](repo database.Repository[T], resource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}
		if err := repo.DeleteByID(c.Request.Context(), id); err != nil {
			utils.RespondError(c, utils.OrNotFound(err, resource))
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": resource + " deleted"})
	}
}
