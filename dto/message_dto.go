package dto

import (
	"strings"
	"time"

	"github.com/princinho/stonevitrine/models"
	"github.com/princinho/stonevitrine/utils"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type CreateMessageDTO struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required"`
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}

func (d CreateMessageDTO) Model(now time.Time) (*models.Message, error) {
	m := &models.Message{
		Id:        bson.NewObjectID(),
		Name:      strings.TrimSpace(d.Name),
		Subject:   strings.TrimSpace(d.Subject),
		Message:   strings.TrimSpace(d.Message),
		CreatedAt: now,
	}
	if m.Name == "" || m.Subject == "" || m.Message == "" {
		return nil, utils.NewValidationError("name, subject and message are required")
	}
	email, err := normalizeEmail(d.Email)
	if err != nil {
		return nil, err
	}
	m.Email = email
	return m, nil
}
