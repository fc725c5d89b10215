package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type NotificationSettings struct {
	Email        bool `bson:"email" json:"email"`
	NewMessage   bool `bson:"newMessage" json:"newMessage"`
	WeeklyReport bool `bson:"weeklyReport" json:"weeklyReport"`
}

type AppearanceSettings struct {
	DarkMode    bool `bson:"darkMode" json:"darkMode"`
	CompactMode bool `bson:"compactMode" json:"compactMode"`
}

// Settings is the site-wide singleton document.
type Settings struct {
	Id              bson.ObjectID        `bson:"_id,omitempty" json:"id"`
	SiteName        string               `bson:"siteName" json:"siteName"`
	SiteDescription string               `bson:"siteDescription" json:"siteDescription"`
	ContactEmail    string               `bson:"contactEmail" json:"contactEmail"`
	Phone           string               `bson:"phone" json:"phone"`
	Address         string               `bson:"address" json:"address"`
	WorkingHours    string               `bson:"workingHours" json:"workingHours"`
	WhatsappNumber  string               `bson:"whatsappNumber" json:"whatsappNumber"`
	FacebookUrl     string               `bson:"facebookUrl" json:"facebookUrl"`
	InstagramUrl    string               `bson:"instagramUrl" json:"instagramUrl"`
	TiktokUrl       string               `bson:"tiktokUrl" json:"tiktokUrl"`
	TelegramUrl     string               `bson:"telegramUrl" json:"telegramUrl"`
	AboutImageUrl   string               `bson:"aboutImageUrl" json:"aboutImageUrl"`
	AboutText       string               `bson:"aboutText" json:"aboutText"`
	Notifications   NotificationSettings `bson:"notifications" json:"notifications"`
	Appearance      AppearanceSettings   `bson:"appearance" json:"appearance"`
	CreatedAt       time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// DefaultSettings is what a fresh deployment starts with.
func DefaultSettings(now time.Time) Settings {
	return Settings{
		SiteName:        "Liteos",
		SiteDescription: "Entreprise de vente et promotion de pierres naturelles",
		ContactEmail:    "contact@liteos.fr",
		Phone:           "+33 1 23 45 67 89",
		Address:         "123 Rue de la Pierre, 75001 Paris",
		WorkingHours:    "Lun - Ven: 9h00 - 18h00 | Sam: 10h00 - 16h00",
		WhatsappNumber:  "+237698943052",
		Notifications: NotificationSettings{
			Email:      true,
			NewMessage: true,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}
