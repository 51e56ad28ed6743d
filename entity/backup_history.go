package entity

type BackupRecordItem struct {
	Id         uint64 `json:"id"`
	BackupId   string `json:"backup_id"`
	LocalPath  string `json:"local_path"`
	RemotePath string `json:"remote_path"`
	FileSize   int64  `json:"file_size"`
	Checksum   string `json:"checksum"`
	Snapshot   int32  `json:"snapshot"`
	CostMs     int64  `json:"cost_ms"`
	Ctime      int64  `json:"ctime"`
}

type CreateBackupRecordRequest struct {
	LocalPath  string
	RemotePath string
	FileSize   int64
	Checksum   string
	Snapshot   bool
	CostMs     int64
}

type CreateBackupRecordResponse struct {
	BackupId string
}

type ListBackupRecordsRequest struct {
	LocalPath string //为空时不过滤
	Limit     int64
}

type ListBackupRecordsResponse struct {
	List []*BackupRecordItem
}
