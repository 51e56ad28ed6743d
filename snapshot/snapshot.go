package snapshot

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	_ "github.com/glebarez/go-sqlite"
	"github.com/google/uuid"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
)

const (
	defaultDriverName = "sqlite"
	sqliteMimeType    = "application/vnd.sqlite3"
)

// IsSQLite reports whether the file content looks like a SQLite database.
func IsSQLite(file string) (bool, error) {
	mt, err := mimetype.DetectFile(file)
	if err != nil {
		return false, fmt.Errorf("detect file type failed, err:%w", err)
	}
	return mt.Is(sqliteMimeType), nil
}

// Create writes a consistent copy of the src database into dir and returns its path.
// The caller owns the returned file.
func Create(ctx context.Context, src string, dir string) (string, error) {
	if _, err := os.Stat(src); err != nil {
		return "", err
	}
	if len(dir) == 0 {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir failed, err:%w", err)
	}
	ext := filepath.Ext(src)
	base := strings.TrimSuffix(filepath.Base(src), ext)
	dst := filepath.Join(dir, base+"."+uuid.NewString()+".snapshot"+ext)

	db, err := sql.Open(defaultDriverName, src)
	if err != nil {
		return "", fmt.Errorf("open source db failed, err:%w", err)
	}
	defer db.Close()
	if _, err := db.ExecContext(ctx, "VACUUM INTO ?", dst); err != nil {
		_ = os.Remove(dst)
		return "", fmt.Errorf("vacuum into snapshot failed, err:%w", err)
	}
	if err := quickCheck(ctx, dst); err != nil {
		_ = os.Remove(dst)
		return "", err
	}
	logutil.GetLogger(ctx).Debug("create db snapshot succ", zap.String("src", src), zap.String("dst", dst))
	return dst, nil
}

func quickCheck(ctx context.Context, file string) error {
	db, err := sql.Open(defaultDriverName, file)
	if err != nil {
		return fmt.Errorf("open snapshot failed, err:%w", err)
	}
	defer db.Close()
	var res string
	if err := db.QueryRowContext(ctx, "PRAGMA quick_check").Scan(&res); err != nil {
		return fmt.Errorf("quick check snapshot failed, err:%w", err)
	}
	if res != "ok" {
		return fmt.Errorf("snapshot integrity check not ok, result:%s", res)
	}
	return nil
}
