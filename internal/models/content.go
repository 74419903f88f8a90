package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

type FAQ struct {
	BaseModel

	Question string `gorm:"uniqueIndex;not null" json:"question"`
	Answer   string `gorm:"not null" json:"answer"`
	Order    int    `gorm:"column:sort_order;not null;default:0" json:"order"`
}

// Result - запись галереи результатов учеников
type Result struct {
	BaseModel

	ImageURL string `gorm:"not null" json:"image_url"`
	Caption  string `gorm:"uniqueIndex;not null" json:"caption"`
	Order    int    `gorm:"column:sort_order;not null;default:0" json:"order"`
}

const SiteSettingsKey = "site"

// SiteSettings - единственная запись с настройками сайта (Key = "site")
type SiteSettings struct {
	Key              string                                `gorm:"primaryKey;type:varchar(32)" json:"-"`
	SiteName         string                                `json:"site_name"`
	HeroVideoURL     string                                `json:"hero_video_url"`
	HeroHeadline     string                                `json:"hero_headline"`
	HeroSubheadline  string                                `json:"hero_subheadline"`
	DiscordInviteURL string                                `json:"discord_invite_url"`
	Theme            string                                `json:"theme"`
	SocialLinks      datatypes.JSONType[map[string]string] `gorm:"type:jsonb" json:"social_links"`
	ContactEmail     string                                `json:"contact_email"`
	AvailableThemes  pq.StringArray                        `gorm:"type:text[]" json:"available_themes"`
	UpdatedAt        time.Time                             `json:"updated_at"`
}

func (SiteSettings) TableName() string {
	return "site_settings"
}

// DefaultSiteSettings - значения, которые создаются при первом чтении настроек
func DefaultSiteSettings() *SiteSettings {
	return &SiteSettings{
		Key:              SiteSettingsKey,
		SiteName:         "Continental Academy",
		HeroHeadline:     "Monetizuj svoj sadržaj. Pretvori znanje u prihod.",
		HeroSubheadline:  "Nauči kako da zaradiš na TikTok, YouTube i Facebook platformama sa našim ekspertnim vodičima.",
		DiscordInviteURL: "https://discord.gg/placeholder",
		Theme:            "dark-luxury",
		SocialLinks:      datatypes.NewJSONType(map[string]string{}),
		ContactEmail:     "info@continentalacademy.com",
		AvailableThemes:  pq.StringArray{"dark-luxury", "clean-light", "midnight-purple", "education-classic"},
	}
}
