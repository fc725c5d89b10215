package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/princinho/stonevitrine/database"
	"github.com/princinho/stonevitrine/dto"
	"github.com/princinho/stonevitrine/models"
	"github.com/princinho/stonevitrine/utils"
)

const projectResource = "project"

func GetProjects(repo database.Repository[models.Project]) gin.HandlerFunc {
	return listHandler(repo, nil, sortNewest)
}

func GetProject(repo database.Repository[models.Project]) gin.HandlerFunc {
	return getHandler(repo, projectResource)
}

func AddProject(repo database.Repository[models.Project]) gin.HandlerFunc {
	return createHandler[models.Project, dto.CreateProjectDTO](repo)
}

func UpdateProject(repo database.Repository[models.Project]) gin.HandlerFunc {
	return updateHandler[models.Project, dto.UpdateProjectDTO](repo, projectResource)
}

func DeleteProject(repo database.Repository[models.Project]) gin.HandlerFunc {
	return deleteHandler(repo, projectResource)
}

// LikeProject bumps the like counter. There is no visitor identity, so every
// call counts.
func LikeProject(repo database.Repository[models.Project]) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}
		p, err := repo.Increment(c.Request.Context(), id, "likes", 1)
		if err != nil {
			utils.RespondError(c, utils.OrNotFound(err, projectResource))
			return
		}
		c.JSON(http.StatusOK, gin.H{"likes": p.Likes})
	}
}
