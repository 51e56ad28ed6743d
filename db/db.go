package db

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xxxsen/common/database"
	"github.com/xxxsen/common/database/sqlite"
)

var (
	dbClient database.IDatabase
)

var sqllist = []struct {
	name string
	sql  string
}{
	{
		name: "init_backup_history_tab",
		sql: `
CREATE TABLE IF NOT EXISTS backup_history_tab (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    backup_id   TEXT NOT NULL,
    local_path  TEXT NOT NULL,
    remote_path TEXT NOT NULL,
    file_size   INTEGER NOT NULL,
    checksum    TEXT NOT NULL,
    snapshot    INTEGER NOT NULL,
    cost_ms     INTEGER NOT NULL,
    ctime       INTEGER NOT NULL,
    UNIQUE (backup_id)
);
		`,
	},
	{
		name: "init_backup_history_ctime_idx",
		sql:  `CREATE INDEX IF NOT EXISTS backup_history_ctime_idx ON backup_history_tab (ctime);`,
	},
}

func InitDB(file string) error {
	ctx := context.Background()
	if err := os.MkdirAll(filepath.Dir(file), 0755); err != nil {
		return fmt.Errorf("create db dir failed, err:%w", err)
	}
	db, err := sqlite.New(file, func(db database.IDatabase) error {
		for _, item := range sqllist {
			if _, err := db.ExecContext(ctx, item.sql); err != nil {
				return fmt.Errorf("init sql failed, sql:%s, err:%w", item.name, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	dbClient = db
	return nil
}

func GetClient() database.IDatabase {
	return dbClient
}
