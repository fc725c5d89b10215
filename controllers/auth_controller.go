package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/princinho/stonevitrine/database"
	"github.com/princinho/stonevitrine/dto"
	"github.com/princinho/stonevitrine/logger"
	"github.com/princinho/stonevitrine/middleware"
	"github.com/princinho/stonevitrine/models"
	"github.com/princinho/stonevitrine/utils"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// AuthConfig carries what the session handlers need to mint and expire cookies.
type AuthConfig struct {
	Secret string
	Cookie utils.CookieOptions
}

type sessionResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Token    string `json:"token,omitempty"`
}

func Login(users database.Repository[models.User], cfg AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.LoginDTO
		if !utils.BindJSON(c, &body) {
			return
		}

		user, err := users.FindOne(c.Request.Context(), bson.M{"username": strings.TrimSpace(body.Username)})
		if err != nil {
			if !errors.Is(err, database.ErrNotFound) {
				utils.RespondError(c, err)
				return
			}
			logger.App().WithField("ip", c.ClientIP()).Warn("login with unknown username")
			utils.RespondError(c, utils.ErrInvalidCredentials)
			return
		}
		if err := utils.CheckPassword(user.PasswordHash, body.Password); err != nil {
			logger.App().WithField("ip", c.ClientIP()).Warn("login with wrong password")
			utils.RespondError(c, utils.ErrInvalidCredentials)
			return
		}

		issueSession(c, user, cfg)
	}
}

func issueSession(c *gin.Context, user *models.User, cfg AuthConfig) {
	token, err := utils.GenerateSessionToken(user.ID.Hex(), user.Username, cfg.Secret, cfg.Cookie.TTL)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.SetSessionCookie(c, token, cfg.Cookie)
	c.JSON(http.StatusOK, sessionResponse{ID: user.ID.Hex(), Username: user.Username, Token: token})
}

func Logout(cfg AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		utils.ClearSessionCookie(c, cfg.Cookie)
		c.JSON(http.StatusOK, gin.H{"message": "logged out"})
	}
}

// currentUser loads the account behind the session. A token that outlived
// its account is treated as unauthenticated.
func currentUser(c *gin.Context, users database.Repository[models.User]) (*models.User, bool) {
	id, err := bson.ObjectIDFromHex(c.GetString(middleware.ContextUserID))
	if err != nil {
		utils.RespondError(c, utils.ErrInvalidToken)
		return nil, false
	}
	user, err := users.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			utils.RespondError(c, utils.ErrInvalidToken)
		} else {
			utils.RespondError(c, err)
		}
		return nil, false
	}
	return user, true
}

func GetProfile(users database.Repository[models.User]) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c, users)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, sessionResponse{ID: user.ID.Hex(), Username: user.Username})
	}
}

// UpdateProfile renames the admin and reissues the session cookie.
func UpdateProfile(users database.Repository[models.User], cfg AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.UpdateProfileDTO
		if !utils.BindJSON(c, &body) {
			return
		}
		username := strings.TrimSpace(body.Username)
		if username == "" {
			utils.RespondError(c, utils.NewValidationError("username cannot be empty"))
			return
		}

		user, ok := currentUser(c, users)
		if !ok {
			return
		}
		if username != user.Username {
			updated, err := users.UpdateByID(c.Request.Context(), user.ID, bson.M{"username": username, "updatedAt": time.Now().UTC()})
			if err != nil {
				if utils.IsDuplicateKey(err) {
					c.AbortWithStatusJSON(http.StatusConflict, gin.H{"message": "username already taken"})
					return
				}
				utils.RespondError(c, err)
				return
			}
			user = updated
		}
		issueSession(c, user, cfg)
	}
}

func ChangeMyPassword(users database.Repository[models.User]) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.ChangeMyPasswordDTO
		if !utils.BindJSON(c, &body) {
			return
		}

		user, ok := currentUser(c, users)
		if !ok {
			return
		}
		if err := utils.CheckPassword(user.PasswordHash, body.CurrentPassword); err != nil {
			utils.RespondError(c, &utils.AuthError{Status: http.StatusUnauthorized, Message: "current password is incorrect"})
			return
		}

		hash, err := utils.HashPassword(body.NewPassword)
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		if _, err := users.UpdateByID(c.Request.Context(), user.ID, bson.M{"passwordHash": hash, "updatedAt": time.Now().UTC()}); err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "password updated"})
	}
}
