package migration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_extension_uuid_ossp",
		SQL:  `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	},
	{
		Name: "create_table_stores",
		SQL: `CREATE TABLE IF NOT EXISTS stores (
  id                  UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  name                TEXT        NOT NULL,
  owner               TEXT        NOT NULL,
  category            TEXT        NOT NULL DEFAULT '',
  verification_status TEXT        NOT NULL DEFAULT 'pending'
    CHECK (verification_status IN ('pending', 'under_review', 'approved', 'rejected')),
  rejection_reason    TEXT,
  created_at          TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at          TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_store_documents",
		SQL: `CREATE TABLE IF NOT EXISTS store_documents (
  id             UUID        PRIMARY KEY,
  store_id       UUID        NOT NULL REFERENCES stores (id) ON DELETE CASCADE,
  kind           TEXT        NOT NULL,
  storage_path   TEXT        NOT NULL,
  size           BIGINT      NOT NULL CHECK (size >= 0),
  content_type   TEXT        NOT NULL,
  status         TEXT        NOT NULL DEFAULT 'pending'
    CHECK (status IN ('pending', 'approved', 'rejected')),
  rejection_note TEXT,
  uploaded_by    TEXT        NOT NULL,
  uploaded_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		// One live record per (store, kind) for required kinds; the guarded
		// upsert in the repository relies on this partial index.
		Name: "create_unique_index_store_documents_store_kind",
		SQL: `CREATE UNIQUE INDEX IF NOT EXISTS uq_store_documents_store_kind
  ON store_documents (store_id, kind) WHERE kind <> 'other';`,
	},
	{
		Name: "create_index_store_documents_store_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_store_documents_store_id ON store_documents (store_id);`,
	},
	{
		Name: "create_table_audit_log",
		SQL: `CREATE TABLE IF NOT EXISTS audit_log (
  id         BIGSERIAL   PRIMARY KEY,
  store_id   UUID        NOT NULL REFERENCES stores (id) ON DELETE CASCADE,
  action     TEXT        NOT NULL,
  actor      TEXT,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_audit_log_store_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_audit_log_store_id ON audit_log (store_id, id DESC);`,
	},
	{
		Name: "create_table_products",
		SQL: `CREATE TABLE IF NOT EXISTS products (
  id          UUID        PRIMARY KEY,
  store_id    UUID        NOT NULL REFERENCES stores (id) ON DELETE CASCADE,
  name        TEXT        NOT NULL,
  sku         TEXT,
  price_cents BIGINT      NOT NULL DEFAULT 0 CHECK (price_cents >= 0),
  quantity    INTEGER     NOT NULL DEFAULT 0 CHECK (quantity >= 0),
  in_stock    BOOLEAN     NOT NULL DEFAULT true,
  created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_products_store_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_products_store_id ON products (store_id);`,
	},
}

// EnsureMigrated checks if the 'stores' table exists and runs migrations if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, loc *time.Location, dbHost string) error {
	start := time.Now()

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_check",
		"status":    "starting",
		"db_host":   dbHost,
	})

	var exists bool
	query := "SELECT to_regclass('public.stores') IS NOT NULL"
	err := db.QueryRowContext(ctx, query).Scan(&exists)
	if err != nil {
		logJSON(loc, map[string]any{
			"component":     "database",
			"event":         "db_migration_failed",
			"status":        "error",
			"error_message": fmt.Sprintf("failed to check sentinel table: %v", err),
			"db_host":       dbHost,
			"duration_ms":   time.Since(start).Milliseconds(),
		})
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		logJSON(loc, map[string]any{
			"component":   "database",
			"event":       "db_migration_skip",
			"status":      "success",
			"msg":         "schema already exists, skipping migration",
			"db_host":     dbHost,
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return nil
	}

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_start",
		"status":    "in_progress",
		"db_host":   dbHost,
	})

	for _, step := range steps {
		stepStart := time.Now()
		_, err := db.ExecContext(ctx, step.SQL)
		if err != nil {
			logJSON(loc, map[string]any{
				"component":        "database",
				"event":            "db_migration_failed",
				"status":           "error",
				"migration_step":   step.Name,
				"error_message":    err.Error(),
				"db_host":          dbHost,
				"duration_ms":      time.Since(start).Milliseconds(),
				"step_duration_ms": time.Since(stepStart).Milliseconds(),
			})
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		logJSON(loc, map[string]any{
			"component":        "database",
			"event":            "db_migration_step",
			"status":           "success",
			"migration_step":   step.Name,
			"db_host":          dbHost,
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		})
	}

	logJSON(loc, map[string]any{
		"component":   "database",
		"event":       "db_migration_success",
		"status":      "success",
		"db_host":     dbHost,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return nil
}

func logJSON(loc *time.Location, data map[string]any) {
	data["ts"] = time.Now().In(loc).Format(time.RFC3339Nano)
	if _, ok := data["level"]; !ok {
		if data["status"] == "error" {
			data["level"] = "error"
		} else {
			data["level"] = "info"
		}
	}

	b, err := json.Marshal(data)
	if err != nil {
		log.Printf("failed to marshal migration log: %v", err)
		return
	}
	log.SetFlags(0)
	log.Println(string(b))
}
