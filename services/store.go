package services

import (
	"errors"
	"fmt"
	"time"

	"crm_legal_go/logger"
	"crm_legal_go/models"

	"github.com/patrickmn/go-cache"
	"gorm.io/gorm"
)

const profileCacheKey = "profile"

// Store is the data access layer over the practice database. Each method is
// one unit of work: it runs in its own transaction and returns plain records.
type Store struct {
	db    *gorm.DB
	log   *logger.Logger
	now   func() time.Time
	cache *cache.Cache
}

// NewStore creates a Store using the wall clock
func NewStore(database *gorm.DB, log *logger.Logger) *Store {
	if log == nil {
		log = logger.NewNop()
	}
	return &Store{
		db:    database,
		log:   log,
		now:   time.Now,
		cache: cache.New(10*time.Minute, 30*time.Minute),
	}
}

// WithClock replaces the time source used for timestamps and reminder queries
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// Now returns the current time according to the store's clock
func (s *Store) Now() time.Time {
	return s.now()
}

// DB exposes the underlying connection for maintenance tasks such as backups
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Logger returns the logger the store reports through
func (s *Store) Logger() *logger.Logger {
	return s.log
}

// transaction runs fn as one unit of work and normalizes its error
func (s *Store) transaction(op string, fn func(tx *gorm.DB) error) error {
	if err := s.db.Transaction(fn); err != nil {
		return s.fail(op, err)
	}
	return nil
}

// fail logs err and wraps it with ErrStore; validation errors pass through
func (s *Store) fail(op string, err error) error {
	if errors.Is(err, ErrValidation) {
		s.log.Warn("rejected input", "op", op, "error", err)
		return err
	}
	s.log.Error("store operation failed", "op", op, "error", err)
	return fmt.Errorf("%s: %w: %w", op, ErrStore, err)
}

func (s *Store) unixNow() int64 {
	return s.now().Unix()
}

func (s *Store) today() string {
	return s.now().Format(DateLayout)
}

// touchCase records activity on a case
func (s *Store) touchCase(tx *gorm.DB, caseID uint) error {
	return tx.Model(&models.Case{}).
		Where("id = ?", caseID).
		Update("last_activity_timestamp", s.unixNow()).Error
}

// takeOne loads a single row into dest, reporting whether it was found
func takeOne(query *gorm.DB, dest interface{}) (bool, error) {
	res := query.Limit(1).Find(dest)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// parentCaseID returns the caso_id of a child row, or found=false
func parentCaseID(tx *gorm.DB, model interface{}, id uint) (caseID *uint, found bool, err error) {
	var row struct {
		CaseID *uint `gorm:"column:caso_id"`
	}
	res := tx.Model(model).Select("caso_id").Where("id = ?", id).Limit(1).Scan(&row)
	if res.Error != nil {
		return nil, false, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, false, nil
	}
	return row.CaseID, true, nil
}

// updateRow applies cols to the row with the given id. A missing row returns
// false; an empty update of an existing row returns true without writing.
func updateRow(tx *gorm.DB, model interface{}, id uint, cols map[string]interface{}) (found bool, changed bool, err error) {
	if len(cols) == 0 {
		var count int64
		if err := tx.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
			return false, false, err
		}
		return count > 0, false, nil
	}
	res := tx.Model(model).Where("id = ?", id).Updates(cols)
	if res.Error != nil {
		return false, false, res.Error
	}
	return res.RowsAffected > 0, res.RowsAffected > 0, nil
}

// updateChild updates a case child row and touches its case when rows changed
func (s *Store) updateChild(op string, model interface{}, id uint, cols map[string]interface{}) (bool, error) {
	var found bool
	err := s.transaction(op, func(tx *gorm.DB) error {
		caseID, exists, err := parentCaseID(tx, model, id)
		if err != nil || !exists {
			return err
		}
		found = true
		if len(cols) == 0 {
			s.log.Debug("nothing to update", "op", op, "id", id)
			return nil
		}
		_, changed, err := updateRow(tx, model, id, cols)
		if err != nil {
			return err
		}
		if changed && caseID != nil {
			return s.touchCase(tx, *caseID)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return found, nil
}

// deleteChild deletes a case child row and touches its case when it existed
func (s *Store) deleteChild(op string, model interface{}, id uint) (bool, error) {
	var deleted bool
	err := s.transaction(op, func(tx *gorm.DB) error {
		caseID, exists, err := parentCaseID(tx, model, id)
		if err != nil || !exists {
			return err
		}
		res := tx.Where("id = ?", id).Delete(model)
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected > 0
		if deleted && caseID != nil {
			return s.touchCase(tx, *caseID)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}

// deleteRow deletes a row that has no parent case
func (s *Store) deleteRow(op string, model interface{}, column string, id uint) (bool, error) {
	var deleted bool
	err := s.transaction(op, func(tx *gorm.DB) error {
		res := tx.Where(column+" = ?", id).Delete(model)
		deleted = res.RowsAffected > 0
		return res.Error
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}
