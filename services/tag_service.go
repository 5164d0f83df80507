package services

import (
	"strings"

	"crm_legal_go/models"

	"gorm.io/gorm"
)

// NormalizeTagName trims and lower-cases a tag name
func NormalizeTagName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func findTagID(tx *gorm.DB, name string) (uint, bool, error) {
	var tag models.Tag
	found, err := takeOne(tx.Where("nombre_etiqueta = ?", name), &tag)
	return tag.ID, found, err
}

// AddTag returns the id of the tag with this name, creating it when needed
func (s *Store) AddTag(name string) (uint, error) {
	normalized := NormalizeTagName(name)
	if normalized == "" {
		return 0, s.fail("AddTag", validationError("tag name cannot be empty"))
	}

	var id uint
	err := s.transaction("AddTag", func(tx *gorm.DB) error {
		existing, found, err := findTagID(tx, normalized)
		if err != nil {
			return err
		}
		if found {
			id = existing
			return nil
		}
		tag := models.Tag{Name: normalized}
		if err := tx.Create(&tag).Error; err != nil {
			if !isIntegrityConflict(err) {
				return err
			}
			// Inserted under another spelling since the lookup; read it back once
			existing, found, lookupErr := findTagID(tx, normalized)
			if lookupErr != nil {
				return lookupErr
			}
			if !found {
				return err
			}
			s.log.Debug("tag already existed", "tag", normalized)
			tag.ID = existing
		}
		id = tag.ID
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// GetTag returns the tag or nil when it does not exist
func (s *Store) GetTag(id uint) (*models.Tag, error) {
	var tag models.Tag
	found, err := takeOne(s.db.Where("id_etiqueta = ?", id), &tag)
	if err != nil {
		return nil, s.fail("GetTag", err)
	}
	if !found {
		return nil, nil
	}
	return &tag, nil
}

// ListTags returns every tag ordered by name
func (s *Store) ListTags() ([]models.Tag, error) {
	var tags []models.Tag
	if err := s.db.Order("nombre_etiqueta ASC").Find(&tags).Error; err != nil {
		return nil, s.fail("ListTags", err)
	}
	return tags, nil
}

// DeleteTag removes a tag and all of its client and case links
func (s *Store) DeleteTag(id uint) (bool, error) {
	return s.deleteRow("DeleteTag", &models.Tag{}, "id_etiqueta", id)
}

// AssignTagToClient links a tag to a client. Assigning twice is a no-op.
func (s *Store) AssignTagToClient(clientID, tagID uint) error {
	return s.transaction("AssignTagToClient", func(tx *gorm.DB) error {
		return tx.Exec("INSERT OR IGNORE INTO cliente_etiquetas (cliente_id, etiqueta_id) VALUES (?, ?)", clientID, tagID).Error
	})
}

// RemoveTagFromClient unlinks a tag from a client. A missing link is not an error.
func (s *Store) RemoveTagFromClient(clientID, tagID uint) error {
	return s.transaction("RemoveTagFromClient", func(tx *gorm.DB) error {
		return tx.Where("cliente_id = ? AND etiqueta_id = ?", clientID, tagID).Delete(&models.ClientTag{}).Error
	})
}

// ListClientTags returns a client's tags ordered by name
func (s *Store) ListClientTags(clientID uint) ([]models.Tag, error) {
	var tags []models.Tag
	err := s.db.Model(&models.Tag{}).
		Joins("JOIN cliente_etiquetas ON etiquetas.id_etiqueta = cliente_etiquetas.etiqueta_id").
		Where("cliente_etiquetas.cliente_id = ?", clientID).
		Order("etiquetas.nombre_etiqueta ASC").
		Find(&tags).Error
	if err != nil {
		return nil, s.fail("ListClientTags", err)
	}
	return tags, nil
}

// AssignTagToCase links a tag to a case. Assigning twice is a no-op. Tagging
// is bookkeeping and does not count as case activity.
func (s *Store) AssignTagToCase(caseID, tagID uint) error {
	return s.transaction("AssignTagToCase", func(tx *gorm.DB) error {
		return tx.Exec("INSERT OR IGNORE INTO caso_etiquetas (caso_id, etiqueta_id) VALUES (?, ?)", caseID, tagID).Error
	})
}

// RemoveTagFromCase unlinks a tag from a case. A missing link is not an error.
func (s *Store) RemoveTagFromCase(caseID, tagID uint) error {
	return s.transaction("RemoveTagFromCase", func(tx *gorm.DB) error {
		return tx.Where("caso_id = ? AND etiqueta_id = ?", caseID, tagID).Delete(&models.CaseTag{}).Error
	})
}

// ListCaseTags returns a case's tags ordered by name
func (s *Store) ListCaseTags(caseID uint) ([]models.Tag, error) {
	var tags []models.Tag
	err := s.db.Model(&models.Tag{}).
		Joins("JOIN caso_etiquetas ON etiquetas.id_etiqueta = caso_etiquetas.etiqueta_id").
		Where("caso_etiquetas.caso_id = ?", caseID).
		Order("etiquetas.nombre_etiqueta ASC").
		Find(&tags).Error
	if err != nil {
		return nil, s.fail("ListCaseTags", err)
	}
	return tags, nil
}

// NormalizeTagNames rewrites tags stored before names were normalized.
// Tags that normalize to the same name are merged into one, keeping every
// client and case link. It returns how many tags were renamed and merged.
func (s *Store) NormalizeTagNames() (renamed int, merged int, err error) {
	err = s.transaction("NormalizeTagNames", func(tx *gorm.DB) error {
		var tags []models.Tag
		if err := tx.Order("id_etiqueta ASC").Find(&tags).Error; err != nil {
			return err
		}

		groups := map[string][]models.Tag{}
		var names []string
		for _, tag := range tags {
			name := NormalizeTagName(tag.Name)
			if name == "" {
				continue
			}
			if _, ok := groups[name]; !ok {
				names = append(names, name)
			}
			groups[name] = append(groups[name], tag)
		}

		for _, name := range names {
			group := groups[name]
			// Prefer a tag already stored under the normalized name
			survivor := group[0]
			for _, tag := range group {
				if tag.Name == name {
					survivor = tag
					break
				}
			}

			for _, tag := range group {
				if tag.ID == survivor.ID {
					continue
				}
				if err := tx.Exec("INSERT OR IGNORE INTO cliente_etiquetas (cliente_id, etiqueta_id) SELECT cliente_id, ? FROM cliente_etiquetas WHERE etiqueta_id = ?", survivor.ID, tag.ID).Error; err != nil {
					return err
				}
				if err := tx.Exec("INSERT OR IGNORE INTO caso_etiquetas (caso_id, etiqueta_id) SELECT caso_id, ? FROM caso_etiquetas WHERE etiqueta_id = ?", survivor.ID, tag.ID).Error; err != nil {
					return err
				}
				// Old links go with the tag
				if err := tx.Where("id_etiqueta = ?", tag.ID).Delete(&models.Tag{}).Error; err != nil {
					return err
				}
				merged++
			}

			if survivor.Name != name {
				if err := tx.Model(&models.Tag{}).Where("id_etiqueta = ?", survivor.ID).Update("nombre_etiqueta", name).Error; err != nil {
					return err
				}
				renamed++
			}
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	if renamed > 0 || merged > 0 {
		s.log.Info("tag names normalized", "renamed", renamed, "merged", merged)
	}
	return renamed, merged, nil
}
