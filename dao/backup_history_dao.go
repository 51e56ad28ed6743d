package dao

import (
	"context"
	"time"

	"github.com/didi/gendry/builder"
	"github.com/google/uuid"
	"github.com/xxxsen/common/database"
	"github.com/xxxsen/common/database/dbkit"
	"github.com/xxxsen/ncbackup/entity"
)

const (
	defaultListLimit = 20
)

type IBackupHistoryDao interface {
	CreateBackupRecord(ctx context.Context, req *entity.CreateBackupRecordRequest) (*entity.CreateBackupRecordResponse, error)
	ListBackupRecords(ctx context.Context, req *entity.ListBackupRecordsRequest) (*entity.ListBackupRecordsResponse, error)
}

type backupHistoryDaoImpl struct {
	dbc database.IDatabase
}

func NewBackupHistoryDao(dbc database.IDatabase) IBackupHistoryDao {
	return &backupHistoryDaoImpl{
		dbc: dbc,
	}
}

func (b *backupHistoryDaoImpl) table() string {
	return "backup_history_tab"
}

func (b *backupHistoryDaoImpl) CreateBackupRecord(ctx context.Context, req *entity.CreateBackupRecordRequest) (*entity.CreateBackupRecordResponse, error) {
	backupId := uuid.NewString()
	var snapshot int32
	if req.Snapshot {
		snapshot = 1
	}
	data := []map[string]interface{}{
		{
			"backup_id":   backupId,
			"local_path":  req.LocalPath,
			"remote_path": req.RemotePath,
			"file_size":   req.FileSize,
			"checksum":    req.Checksum,
			"snapshot":    snapshot,
			"cost_ms":     req.CostMs,
			"ctime":       time.Now().UnixMilli(),
		},
	}
	sql, args, err := builder.BuildInsert(b.table(), data)
	if err != nil {
		return nil, err
	}
	if _, err := b.dbc.ExecContext(ctx, sql, args...); err != nil {
		return nil, err
	}
	return &entity.CreateBackupRecordResponse{BackupId: backupId}, nil
}

func (b *backupHistoryDaoImpl) ListBackupRecords(ctx context.Context, req *entity.ListBackupRecordsRequest) (*entity.ListBackupRecordsResponse, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	where := map[string]interface{}{
		"_orderby": "id desc",
		"_limit":   []uint{0, uint(limit)},
	}
	if len(req.LocalPath) != 0 {
		where["local_path"] = req.LocalPath
	}
	rs := make([]*entity.BackupRecordItem, 0, limit)
	if err := dbkit.SimpleQuery(ctx, b.dbc, b.table(), where, &rs, dbkit.ScanWithTagName("json")); err != nil {
		return nil, err
	}
	return &entity.ListBackupRecordsResponse{List: rs}, nil
}
