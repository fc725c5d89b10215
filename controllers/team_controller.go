package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/princinho/stonevitrine/database"
	"github.com/princinho/stonevitrine/dto"
	"github.com/princinho/stonevitrine/models"
)

const teamResource = "team member"

func GetTeam(repo database.Repository[models.TeamMember]) gin.HandlerFunc {
	return listHandler(repo, nil, sortByOrderOldest)
}

func GetTeamMember(repo database.Repository[models.TeamMember]) gin.HandlerFunc {
	return getHandler(repo, teamResource)
}

func AddTeamMember(repo database.Repository[models.TeamMember]) gin.HandlerFunc {
	return createHandler[models.TeamMember, dto.CreateTeamMemberDTO](repo)
}

func UpdateTeamMember(repo database.Repository[models.TeamMember]) gin.HandlerFunc {
	return updateHandler[models.TeamMember, dto.UpdateTeamMemberDTO](repo, teamResource)
}

func DeleteTeamMember(repo database.Repository[models.TeamMember]) gin.HandlerFunc {
	return deleteHandler(repo, teamResource)
}
