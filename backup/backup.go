package backup

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/common/retry"
	"github.com/xxxsen/ncbackup/cacheapi"
	cachewrap "github.com/xxxsen/ncbackup/cacheapi/adaptor"
	"github.com/xxxsen/ncbackup/davclient"
	"github.com/xxxsen/ncbackup/entity"
	"github.com/xxxsen/ncbackup/snapshot"
	"github.com/xxxsen/ncbackup/utils"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	defaultDirCacheSize = 64
)

type Result struct {
	LocalPath  string        `json:"local_path"`
	RemotePath string        `json:"remote_path"`
	Size       int64         `json:"size"`
	Checksum   string        `json:"checksum"`
	Snapshot   bool          `json:"snapshot"`
	Cost       time.Duration `json:"cost"`
}

type Uploader struct {
	c        *config
	dirCache cacheapi.ICache[string, bool]
}

func New(opts ...Option) (*Uploader, error) {
	c := &config{
		Folder:        "/",
		Thread:        4,
		Retry:         3,
		RetryInterval: 2 * time.Second,
		Now:           time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.Client == nil {
		return nil, fmt.Errorf("no client found")
	}
	if c.Thread <= 0 {
		c.Thread = 1
	}
	if c.Retry <= 0 {
		c.Retry = 1
	}
	c.Folder = davclient.CleanPath(c.Folder)
	dc, err := cachewrap.NewLruCache[string, bool](defaultDirCacheSize)
	if err != nil {
		return nil, err
	}
	return &Uploader{c: c, dirCache: dc}, nil
}

func (u *Uploader) checkFiles(files []string) error {
	if len(files) == 0 {
		return fmt.Errorf("no backup file found")
	}
	for _, f := range files {
		info, err := os.Stat(f)
		if err != nil {
			return fmt.Errorf("file not found, file:%s, err:%w", f, err)
		}
		if !info.Mode().IsRegular() {
			return fmt.Errorf("not a regular file, file:%s", f)
		}
	}
	return nil
}

// EnsureFolder creates dir and its parents on the remote side. Existing folders are fine.
func (u *Uploader) EnsureFolder(ctx context.Context, dir string) error {
	dir = davclient.CleanPath(dir)
	_, err := cacheapi.Load(ctx, u.dirCache, dir, func(ctx context.Context, dir string) (bool, error) {
		if err := u.c.Client.MakeDirAll(ctx, dir); err != nil {
			return false, err
		}
		return true, nil
	})
	return err
}

// Backup uploads every file into the configured folder under a timestamped name.
// All files are checked before any request is sent.
func (u *Uploader) Backup(ctx context.Context, files ...string) ([]*Result, error) {
	if err := u.checkFiles(files); err != nil {
		return nil, err
	}
	if err := u.EnsureFolder(ctx, u.c.Folder); err != nil {
		logutil.GetLogger(ctx).Error("ensure backup folder failed", zap.Error(err), zap.String("folder", u.c.Folder))
		return nil, fmt.Errorf("ensure backup folder failed, err:%w", err)
	}
	names := BuildBackupNames(files, u.c.Now())
	rs := make([]*Result, len(files))
	eg, subctx := errgroup.WithContext(ctx)
	eg.SetLimit(u.c.Thread)
	for i, f := range files {
		idx := i
		src := f
		remote := davclient.JoinPath(u.c.Folder, names[i])
		eg.Go(func() error {
			res, err := u.backupFile(subctx, src, remote)
			if err != nil {
				return fmt.Errorf("backup file failed, file:%s, err:%w", src, err)
			}
			rs[idx] = res
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		logutil.GetLogger(ctx).Error("backup failed", zap.Error(err))
		return nil, err
	}
	return rs, nil
}

func (u *Uploader) prepareUploadFile(ctx context.Context, src string) (string, bool, error) {
	if !u.c.Snapshot {
		return src, false, nil
	}
	ok, err := snapshot.IsSQLite(src)
	if err != nil {
		return "", false, err
	}
	if !ok {
		logutil.GetLogger(ctx).Warn("file is not sqlite db, upload without snapshot", zap.String("file", src))
		return src, false, nil
	}
	snap, err := snapshot.Create(ctx, src, u.c.SnapshotDir)
	if err != nil {
		return "", false, fmt.Errorf("create snapshot failed, err:%w", err)
	}
	return snap, true, nil
}

func (u *Uploader) backupFile(ctx context.Context, src string, remote string) (*Result, error) {
	start := time.Now()
	if err := u.EnsureFolder(ctx, path.Dir(remote)); err != nil {
		return nil, fmt.Errorf("ensure remote folder failed, err:%w", err)
	}
	file, isSnapshot, err := u.prepareUploadFile(ctx, src)
	if err != nil {
		return nil, err
	}
	if isSnapshot {
		defer os.Remove(file)
	}
	info, err := os.Stat(file)
	if err != nil {
		return nil, err
	}
	logutil.GetLogger(ctx).Debug("start upload file", zap.String("file", src), zap.String("remote", remote),
		zap.String("size", utils.FormatBytes(info.Size())), zap.Bool("snapshot", isSnapshot))
	var checksum string
	//RetryDo 的 repeat 是额外重试次数, Retry 为总尝试次数
	if err := retry.RetryDo(ctx, uint32(u.c.Retry-1), u.c.RetryInterval, func(ctx context.Context) error {
		sum, err := u.uploadOnce(ctx, file, remote, info.Size())
		if err != nil {
			logutil.GetLogger(ctx).Error("upload file failed, wait retry", zap.Error(err), zap.String("remote", remote))
			return err
		}
		checksum = sum
		return nil
	}); err != nil {
		return nil, err
	}
	if u.c.Verify {
		if err := u.verify(ctx, remote, info.Size()); err != nil {
			return nil, err
		}
	}
	local, err := filepath.Abs(src)
	if err != nil {
		local = src
	}
	res := &Result{
		LocalPath:  local,
		RemotePath: remote,
		Size:       info.Size(),
		Checksum:   checksum,
		Snapshot:   isSnapshot,
		Cost:       time.Since(start),
	}
	u.saveHistory(ctx, res)
	logutil.GetLogger(ctx).Info("upload file succ", zap.String("file", src), zap.String("remote", remote),
		zap.Duration("cost", res.Cost), zap.String("speed", utils.FormatSpeed(res.Size, res.Cost)))
	return res, nil
}

func (u *Uploader) uploadOnce(ctx context.Context, file string, remote string, size int64) (string, error) {
	f, err := os.Open(file)
	if err != nil {
		return "", err
	}
	defer f.Close()
	hr := utils.NewHashReader(f)
	if err := u.c.Client.Upload(ctx, remote, hr, size); err != nil {
		return "", err
	}
	if hr.Size() != size {
		return "", fmt.Errorf("file size changed during upload, expect:%d, read:%d", size, hr.Size())
	}
	return hr.Sum(), nil
}

func (u *Uploader) verify(ctx context.Context, remote string, size int64) error {
	ent, err := u.c.Client.Stat(ctx, remote)
	if err != nil {
		return fmt.Errorf("stat remote file failed, err:%w", err)
	}
	if ent.Size != size {
		return fmt.Errorf("remote size not match, local:%d, remote:%d", size, ent.Size)
	}
	return nil
}

func (u *Uploader) saveHistory(ctx context.Context, res *Result) {
	if u.c.History == nil {
		return
	}
	if _, err := u.c.History.CreateBackupRecord(ctx, &entity.CreateBackupRecordRequest{
		LocalPath:  res.LocalPath,
		RemotePath: res.RemotePath,
		FileSize:   res.Size,
		Checksum:   res.Checksum,
		Snapshot:   res.Snapshot,
		CostMs:     res.Cost.Milliseconds(),
	}); err != nil {
		logutil.GetLogger(ctx).Error("save backup history failed", zap.Error(err), zap.String("remote", res.RemotePath))
	}
}
