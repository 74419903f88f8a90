package dto

type FAQRequest struct {
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer" validate:"required"`
	Order    int    `json:"order"`
}

type ResultRequest struct {
	ImageURL string `json:"image_url" validate:"required,url"`
	Caption  string `json:"caption" validate:"required"`
	Order    int    `json:"order"`
}

// SettingsUpdateRequest - частичное обновление, nil поля не меняются
type SettingsUpdateRequest struct {
	SiteName         *string           `json:"site_name"`
	HeroVideoURL     *string           `json:"hero_video_url"`
	HeroHeadline     *string           `json:"hero_headline"`
	HeroSubheadline  *string           `json:"hero_subheadline"`
	DiscordInviteURL *string           `json:"discord_invite_url"`
	Theme            *string           `json:"theme"`
	SocialLinks      map[string]string `json:"social_links"`
	ContactEmail     *string           `json:"contact_email" validate:"omitempty,email"`
}
