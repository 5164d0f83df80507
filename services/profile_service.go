package services

import (
	"crm_legal_go/models"

	"github.com/patrickmn/go-cache"
	"gorm.io/gorm"
)

// GetProfile returns the attorney profile row. Reads are served from cache
// until the next SaveProfile.
func (s *Store) GetProfile() (*models.UserProfile, error) {
	if cached, ok := s.cache.Get(profileCacheKey); ok {
		profile := cached.(models.UserProfile)
		return &profile, nil
	}

	var profile models.UserProfile
	found, err := takeOne(s.db.Where("id = ?", models.ProfileID), &profile)
	if err != nil {
		return nil, s.fail("GetProfile", err)
	}
	if !found {
		return nil, nil
	}
	s.cache.Set(profileCacheKey, profile, cache.DefaultExpiration)
	return &profile, nil
}

// SaveProfile writes the supplied profile fields. An empty update writes
// nothing and returns false.
func (s *Store) SaveProfile(update models.ProfileUpdate) (bool, error) {
	cols := update.Columns()
	if len(cols) == 0 {
		s.log.Warn("no profile fields supplied")
		return false, nil
	}

	err := s.transaction("SaveProfile", func(tx *gorm.DB) error {
		// Recreate the singleton row if it was removed by hand
		if err := tx.Exec("INSERT OR IGNORE INTO datos_usuario (id) VALUES (?)", models.ProfileID).Error; err != nil {
			return err
		}
		return tx.Model(&models.UserProfile{}).Where("id = ?", models.ProfileID).Updates(cols).Error
	})
	s.cache.Delete(profileCacheKey)
	if err != nil {
		return false, err
	}
	s.log.Info("profile saved", "fields", len(cols))
	return true, nil
}
