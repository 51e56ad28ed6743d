package davclient

import (
	"context"
	"io"

	"github.com/xxxsen/ncbackup/davxml"
)

type IClient interface {
	MakeDir(ctx context.Context, dir string) (bool, error)
	MakeDirAll(ctx context.Context, dir string) error
	Upload(ctx context.Context, remote string, r io.Reader, size int64) error
	List(ctx context.Context, dir string) ([]*davxml.Entry, error)
	Stat(ctx context.Context, remote string) (*davxml.Entry, error)
}
