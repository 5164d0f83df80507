package middleware

import (
	"crm_legal_go/config"
	"crm_legal_go/services"

	"github.com/labstack/echo/v4"
)

const (
	ContextKeyStore   = "store"
	ContextKeyConfig  = "config"
	ContextKeyBackups = "backups"
)

// Inject makes the shared dependencies available to every handler
func Inject(store *services.Store, cfg *config.Config, backups *services.BackupService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(ContextKeyStore, store)
			c.Set(ContextKeyConfig, cfg)
			if backups != nil {
				c.Set(ContextKeyBackups, backups)
			}
			return next(c)
		}
	}
}

// GetStore retrieves the store from context
func GetStore(c echo.Context) *services.Store {
	if store, ok := c.Get(ContextKeyStore).(*services.Store); ok {
		return store
	}
	return nil
}

// GetConfig retrieves the configuration from context, falling back to an
// empty config so callers never dereference nil
func GetConfig(c echo.Context) *config.Config {
	if cfg, ok := c.Get(ContextKeyConfig).(*config.Config); ok {
		return cfg
	}
	return &config.Config{}
}

// GetBackupService retrieves the backup service, nil when backups are disabled
func GetBackupService(c echo.Context) *services.BackupService {
	if backups, ok := c.Get(ContextKeyBackups).(*services.BackupService); ok {
		return backups
	}
	return nil
}
