package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/princinho/stonevitrine/database"
	"github.com/princinho/stonevitrine/dto"
	"github.com/princinho/stonevitrine/models"
	"go.mongodb.org/mongo-driver/v2/bson"
)

const expertiseResource = "expertise"

func GetExpertises(repo database.Repository[models.Expertise]) gin.HandlerFunc {
	return listHandler(repo, nil, sortByOrderOldest)
}

func GetActiveExpertises(repo database.Repository[models.Expertise]) gin.HandlerFunc {
	return listHandler(repo, bson.M{"isActive": true}, sortByOrderOldest)
}

func GetExpertise(repo database.Repository[models.Expertise]) gin.HandlerFunc {
	return getHandler(repo, expertiseResource)
}

func AddExpertise(repo database.Repository[models.Expertise]) gin.HandlerFunc {
	return createHandler[models.Expertise, dto.CreateExpertiseDTO](repo)
}

func UpdateExpertise(repo database.Repository[models.Expertise]) gin.HandlerFunc {
	return updateHandler[models.Expertise, dto.UpdateExpertiseDTO](repo, expertiseResource)
}

func DeleteExpertise(repo database.Repository[models.Expertise]) gin.HandlerFunc {
	return deleteHandler(repo, expertiseResource)
}
