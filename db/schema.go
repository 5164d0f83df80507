package db

import (
	"fmt"

	"gorm.io/gorm"
)

// schemaStatements is the on-disk contract shared with existing database
// files and external tooling (backups, migrations). Table and column names
// must not change.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS clientes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		nombre TEXT NOT NULL,
		direccion TEXT,
		email TEXT,
		whatsapp TEXT,
		created_at INTEGER
	)`,
	`CREATE TABLE IF NOT EXISTS casos (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		cliente_id INTEGER NOT NULL,
		numero_expediente TEXT,
		anio_caratula TEXT,
		caratula TEXT NOT NULL,
		juzgado TEXT,
		jurisdiccion TEXT,
		etapa_procesal TEXT,
		notas TEXT,
		ruta_carpeta TEXT,
		inactivity_threshold_days INTEGER DEFAULT 30,
		inactivity_enabled INTEGER DEFAULT 1,
		created_at INTEGER,
		last_activity_timestamp INTEGER,
		last_inactivity_notification_timestamp INTEGER,
		FOREIGN KEY (cliente_id) REFERENCES clientes(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS audiencias (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		caso_id INTEGER NOT NULL,
		fecha TEXT NOT NULL,
		hora TEXT,
		descripcion TEXT NOT NULL,
		link TEXT,
		recordatorio_activo INTEGER DEFAULT 0,
		recordatorio_minutos INTEGER DEFAULT 15,
		created_at INTEGER,
		FOREIGN KEY (caso_id) REFERENCES casos(id) ON DELETE CASCADE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_audiencias_fecha ON audiencias (fecha)`,
	`CREATE INDEX IF NOT EXISTS idx_audiencias_caso_id ON audiencias (caso_id)`,
	`CREATE INDEX IF NOT EXISTS idx_audiencias_recordatorio ON audiencias (recordatorio_activo)`,
	`CREATE TABLE IF NOT EXISTS actividades_caso (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		caso_id INTEGER NOT NULL,
		fecha_hora TEXT NOT NULL,
		tipo_actividad TEXT NOT NULL,
		descripcion TEXT NOT NULL,
		creado_por TEXT,
		referencia_documento TEXT,
		FOREIGN KEY (caso_id) REFERENCES casos(id) ON DELETE CASCADE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_actividades_caso_id_fecha ON actividades_caso (caso_id, fecha_hora DESC)`,
	`CREATE TABLE IF NOT EXISTS partes_intervinientes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		caso_id INTEGER NOT NULL,
		nombre TEXT NOT NULL,
		tipo TEXT,
		direccion TEXT,
		contacto TEXT,
		notas TEXT,
		created_at INTEGER,
		FOREIGN KEY (caso_id) REFERENCES casos(id) ON DELETE CASCADE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_partes_caso_id ON partes_intervinientes (caso_id)`,
	`CREATE TABLE IF NOT EXISTS datos_usuario (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		nombre_abogado TEXT,
		matricula_nacion TEXT,
		matricula_pba TEXT,
		matricula_federal TEXT,
		domicilio_procesal_caba TEXT,
		zona_notificacion TEXT,
		domicilio_procesal_pba TEXT,
		telefono_estudio TEXT,
		email_estudio TEXT,
		cuit TEXT,
		legajo_prev TEXT,
		domicilio_electrónico_pba TEXT,
		otros_datos TEXT
	)`,
	// COLLATE NOCASE makes "Urgente" and "urgente" the same tag
	`CREATE TABLE IF NOT EXISTS etiquetas (
		id_etiqueta INTEGER PRIMARY KEY AUTOINCREMENT,
		nombre_etiqueta TEXT NOT NULL UNIQUE COLLATE NOCASE
	)`,
	`CREATE TABLE IF NOT EXISTS cliente_etiquetas (
		cliente_id INTEGER NOT NULL,
		etiqueta_id INTEGER NOT NULL,
		FOREIGN KEY (cliente_id) REFERENCES clientes(id) ON DELETE CASCADE,
		FOREIGN KEY (etiqueta_id) REFERENCES etiquetas(id_etiqueta) ON DELETE CASCADE,
		PRIMARY KEY (cliente_id, etiqueta_id)
	)`,
	`CREATE TABLE IF NOT EXISTS caso_etiquetas (
		caso_id INTEGER NOT NULL,
		etiqueta_id INTEGER NOT NULL,
		FOREIGN KEY (caso_id) REFERENCES casos(id) ON DELETE CASCADE,
		FOREIGN KEY (etiqueta_id) REFERENCES etiquetas(id_etiqueta) ON DELETE CASCADE,
		PRIMARY KEY (caso_id, etiqueta_id)
	)`,
	`INSERT OR IGNORE INTO datos_usuario (id) VALUES (1)`,
	// Tasks outlive their case: caso_id is nulled, not cascaded
	`CREATE TABLE IF NOT EXISTS tareas (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		caso_id INTEGER,
		descripcion TEXT NOT NULL,
		fecha_creacion TEXT NOT NULL,
		fecha_vencimiento TEXT,
		prioridad TEXT DEFAULT 'Media',
		estado TEXT NOT NULL DEFAULT 'Pendiente',
		notas TEXT,
		es_plazo_procesal INTEGER DEFAULT 0,
		recordatorio_activo INTEGER DEFAULT 0,
		recordatorio_dias_antes INTEGER DEFAULT 1,
		fecha_ultima_notificacion TEXT,
		FOREIGN KEY (caso_id) REFERENCES casos(id) ON DELETE SET NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tareas_caso_id ON tareas (caso_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tareas_fecha_vencimiento ON tareas (fecha_vencimiento)`,
	`CREATE INDEX IF NOT EXISTS idx_tareas_estado ON tareas (estado)`,
	`CREATE INDEX IF NOT EXISTS idx_tareas_recordatorio_activo ON tareas (recordatorio_activo, fecha_vencimiento)`,
}

// Migrate creates every table and index that does not exist yet
func Migrate(database *gorm.DB) error {
	if database == nil {
		return fmt.Errorf("database not initialized")
	}

	err := database.Transaction(func(tx *gorm.DB) error {
		for _, stmt := range schemaStatements {
			if err := tx.Exec(stmt).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// TableNames lists the tables Migrate manages, in creation order
func TableNames() []string {
	return []string{
		"clientes", "casos", "audiencias", "actividades_caso", "partes_intervinientes",
		"datos_usuario", "etiquetas", "cliente_etiquetas", "caso_etiquetas", "tareas",
	}
}
