package backup

import (
	"time"

	"github.com/xxxsen/ncbackup/dao"
	"github.com/xxxsen/ncbackup/davclient"
)

type config struct {
	Client        davclient.IClient
	Folder        string
	Thread        int
	Retry         int
	RetryInterval time.Duration
	Snapshot      bool
	SnapshotDir   string
	Verify        bool
	History       dao.IBackupHistoryDao
	Now           func() time.Time
}

type Option func(*config)

func WithClient(cli davclient.IClient) Option {
	return func(c *config) {
		c.Client = cli
	}
}

func WithFolder(f string) Option {
	return func(c *config) {
		c.Folder = f
	}
}

func WithThread(t int) Option {
	return func(c *config) {
		c.Thread = t
	}
}

func WithRetry(times int, interval time.Duration) Option {
	return func(c *config) {
		c.Retry = times
		c.RetryInterval = interval
	}
}

// WithSnapshot uploads a VACUUM INTO copy of SQLite files instead of the live file.
func WithSnapshot(enable bool, dir string) Option {
	return func(c *config) {
		c.Snapshot = enable
		c.SnapshotDir = dir
	}
}

func WithVerify(v bool) Option {
	return func(c *config) {
		c.Verify = v
	}
}

func WithHistory(h dao.IBackupHistoryDao) Option {
	return func(c *config) {
		c.History = h
	}
}

func WithClock(fn func() time.Time) Option {
	return func(c *config) {
		c.Now = fn
	}
}
