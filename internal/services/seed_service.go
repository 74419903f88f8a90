package services

import (
	"context"

	"academy_backend/internal/logger"
	"academy_backend/internal/models"
	"academy_backend/internal/repositories"
	"academy_backend/internal/services/dto"
	"academy_backend/pkg/apperrors"

	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const seedSuccessMessage = "Podaci uspješno dodani"

// SeedService заполняет демо-каталог, FAQ, результаты и настройки.
// Повторный вызов обновляет строки по естественному ключу и не меняет их id.
type SeedService interface {
	Seed(ctx context.Context, db *gorm.DB) (*dto.SuccessResponse, error)
}

type seedService struct {
	programRepo repositories.ProgramRepository
	contentRepo repositories.ContentRepository
	txManager   repositories.TxManager
}

func NewSeedService(
	programRepo repositories.ProgramRepository,
	contentRepo repositories.ContentRepository,
	txManager repositories.TxManager,
) SeedService {
	return &seedService{
		programRepo: programRepo,
		contentRepo: contentRepo,
		txManager:   txManager,
	}
}

func (s *seedService) Seed(ctx context.Context, db *gorm.DB) (*dto.SuccessResponse, error) {
	err := s.txManager.WithinTransaction(ctx, db, func(tx *gorm.DB) error {
		for _, p := range seedPrograms() {
			if err := s.programRepo.UpsertByName(tx, p); err != nil {
				return err
			}
		}
		for _, f := range seedFAQs() {
			if err := s.contentRepo.UpsertFAQ(tx, f); err != nil {
				return err
			}
		}
		for _, r := range seedResults() {
			if err := s.contentRepo.UpsertResult(tx, r); err != nil {
				return err
			}
		}

		settings := models.DefaultSiteSettings()
		settings.SocialLinks = datatypes.NewJSONType(map[string]string{
			"instagram": "",
			"youtube":   "",
			"tiktok":    "",
		})
		return s.contentRepo.SaveSettings(tx, settings)
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "Seed data applied")
	return &dto.SuccessResponse{Success: true, Message: seedSuccessMessage}, nil
}

func seedPrograms() []*models.Program {
	program := func(name, description string, price float64, features ...string) *models.Program {
		return &models.Program{
			Name:        name,
			Description: description,
			Price:       price,
			Currency:    defaultCurrency,
			Features:    pq.StringArray(features),
			IsActive:    true,
		}
	}
	return []*models.Program{
		program("TikTok Monetizacija", "Naučite kako monetizirati TikTok sadržaj", 29.99,
			"Video lekcije", "Live sesije", "Discord pristup", "Certifikat"),
		program("YouTube Monetizacija", "Kompletni vodič za YouTube zaradu", 39.99,
			"50+ video lekcija", "Analitika", "SEO strategije", "Discord pristup"),
		program("Facebook Monetizacija", "Facebook stranice i grupe za profit", 34.99,
			"Reels strategije", "Stranice setup", "Oglašavanje", "Discord pristup"),
		program("YouTube + TikTok Bundle", "Kompletni paket za obje platforme", 59.99,
			"Svi YouTube i TikTok kursevi", "Prioritetna podrška", "1-on-1 sesija", "Doživotni pristup"),
	}
}

func seedFAQs() []*models.FAQ {
	return []*models.FAQ{
		{Question: "Kako mogu pristupiti kursevima?", Answer: "Nakon kupovine, pristup kursevima dobijate odmah putem vašeg dashboard-a.", Order: 1},
		{Question: "Da li mogu otkazati pretplatu?", Answer: "Da, otkazivanje je moguće putem naše support službe na Discord-u.", Order: 2},
		{Question: "Koje platforme za plaćanje prihvatate?", Answer: "Prihvatamo kartice (Visa, Mastercard) putem sigurnog Stripe sistema.", Order: 3},
		{Question: "Da li dobijam certifikat?", Answer: "Da, po završetku svakog programa dobijate digitalni certifikat.", Order: 4},
	}
}

func seedResults() []*models.Result {
	return []*models.Result{
		{ImageURL: "https://images.unsplash.com/photo-1611162617474-5b21e879e113?w=400", Caption: "+50K pratilaca za 30 dana", Order: 1},
		{ImageURL: "https://images.unsplash.com/photo-1611162616305-c69b3fa7fbe0?w=400", Caption: "€5,000 mjesečno sa YouTube", Order: 2},
		{ImageURL: "https://images.unsplash.com/photo-1611162618071-b39a2ec055fb?w=400", Caption: "TikTok Creator Fund aktiviran", Order: 3},
	}
}
