package dto

import (
	"time"

	"github.com/princinho/stonevitrine/models"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type NotificationsPatch struct {
	Email        *bool `json:"email"`
	NewMessage   *bool `json:"newMessage"`
	WeeklyReport *bool `json:"weeklyReport"`
}

type AppearancePatch struct {
	DarkMode    *bool `json:"darkMode"`
	CompactMode *bool `json:"compactMode"`
}

type UpdateSettingsDTO struct {
	SiteName        *string             `json:"siteName"`
	SiteDescription *string             `json:"siteDescription"`
	ContactEmail    *string             `json:"contactEmail" binding:"omitempty,email"`
	Phone           *string             `json:"phone"`
	Address         *string             `json:"address"`
	WorkingHours    *string             `json:"workingHours"`
	WhatsappNumber  *string             `json:"whatsappNumber"`
	FacebookUrl     *string             `json:"facebookUrl"`
	InstagramUrl    *string             `json:"instagramUrl"`
	TiktokUrl       *string             `json:"tiktokUrl"`
	TelegramUrl     *string             `json:"telegramUrl"`
	AboutImageUrl   *string             `json:"aboutImageUrl"`
	AboutText       *string             `json:"aboutText"`
	Notifications   *NotificationsPatch `json:"notifications"`
	Appearance      *AppearancePatch    `json:"appearance"`
}

// Set merges the patch into current. Nested groups are merged field by field,
// so sending {"notifications":{"email":false}} leaves the other flags alone.
func (d UpdateSettingsDTO) Set(current models.Settings, now time.Time) (bson.M, error) {
	p := newPatch().
		text("siteName", d.SiteName, true).
		text("siteDescription", d.SiteDescription, false).
		text("contactEmail", d.ContactEmail, false).
		text("phone", d.Phone, false).
		text("address", d.Address, false).
		text("workingHours", d.WorkingHours, false).
		text("whatsappNumber", d.WhatsappNumber, false).
		text("facebookUrl", d.FacebookUrl, false).
		text("instagramUrl", d.InstagramUrl, false).
		text("tiktokUrl", d.TiktokUrl, false).
		text("telegramUrl", d.TelegramUrl, false).
		text("aboutImageUrl", d.AboutImageUrl, false).
		text("aboutText", d.AboutText, false)

	if n := d.Notifications; n != nil {
		merged := current.Notifications
		merged.Email = orDefault(n.Email, merged.Email)
		merged.NewMessage = orDefault(n.NewMessage, merged.NewMessage)
		merged.WeeklyReport = orDefault(n.WeeklyReport, merged.WeeklyReport)
		p.set["notifications"] = merged
	}
	if a := d.Appearance; a != nil {
		merged := current.Appearance
		merged.DarkMode = orDefault(a.DarkMode, merged.DarkMode)
		merged.CompactMode = orDefault(a.CompactMode, merged.CompactMode)
		p.set["appearance"] = merged
	}
	p.set["updatedAt"] = now
	return p.done()
}
