package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_table_route_configs",
		SQL: `CREATE TABLE IF NOT EXISTS route_configs (
  seq         BIGSERIAL   PRIMARY KEY,
  id          BIGINT      NOT NULL CHECK (id >= 0),
  path        TEXT        NOT NULL,
  method      TEXT        NOT NULL,
  description TEXT        NULL,
  created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_route_configs_method_path",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_route_configs_method_path ON route_configs (upper(method), path);`,
	},
	{
		Name: "create_table_request_logs",
		SQL: `CREATE TABLE IF NOT EXISTS request_logs (
  seq    BIGSERIAL PRIMARY KEY,
  ts     TEXT      NOT NULL,
  method TEXT      NOT NULL,
  path   TEXT      NOT NULL,
  status INTEGER   NOT NULL
);`,
	},
}

// EnsureMigrated applies every step on each start. Steps are idempotent, so a run
// interrupted halfway is completed by the next one.
func EnsureMigrated(ctx context.Context, db *sql.DB, log logrus.FieldLogger, dbHost string) error {
	start := time.Now()
	log = log.WithFields(logrus.Fields{
		"component": "database",
		"db_host":   dbHost,
	})

	log.WithFields(logrus.Fields{"event": "db_migration_start", "status": "in_progress"}).Info("migrating")

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.WithFields(logrus.Fields{
				"event":            "db_migration_failed",
				"status":           "error",
				"migration_step":   step.Name,
				"duration_ms":      time.Since(start).Milliseconds(),
				"step_duration_ms": time.Since(stepStart).Milliseconds(),
			}).WithError(err).Error("migration step failed")
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.WithFields(logrus.Fields{
			"event":            "db_migration_step",
			"status":           "success",
			"migration_step":   step.Name,
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		}).Info("migration step applied")
	}

	log.WithFields(logrus.Fields{
		"event":       "db_migration_success",
		"status":      "success",
		"duration_ms": time.Since(start).Milliseconds(),
	}).Info("schema migrated")

	return nil
}
