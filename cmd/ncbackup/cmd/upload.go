package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/ncbackup/backup"
	"github.com/xxxsen/ncbackup/utils"
	"go.uber.org/zap"
)

type uploadArgs struct {
	folder     string
	noSnapshot bool
	noVerify   bool
}

func NewUploadCmd(c *Context) *cobra.Command {
	args := &uploadArgs{}
	subc := &cobra.Command{
		Use:   "upload <file> [file...]",
		Short: "Upload database files into the backup folder",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, files []string) error {
			return onRunUpload(cmd.Context(), cmd.OutOrStdout(), c, args, files)
		},
	}
	subc.Flags().StringVarP(&args.folder, "folder", "d", "", "remote folder, overrides the configured one")
	subc.Flags().BoolVar(&args.noSnapshot, "no-snapshot", false, "upload the live file instead of a sqlite snapshot")
	subc.Flags().BoolVar(&args.noVerify, "no-verify", false, "skip the remote size check")
	return subc
}

func onRunUpload(ctx context.Context, w io.Writer, c *Context, args *uploadArgs, files []string) error {
	cfg := c.Config
	folder := cfg.Folder
	if len(args.folder) != 0 {
		folder = args.folder
	}
	opts := []backup.Option{
		backup.WithClient(c.Client),
		backup.WithFolder(folder),
		backup.WithThread(cfg.Thread),
		backup.WithRetry(cfg.Retry, time.Duration(cfg.RetryInterval)*time.Second),
		backup.WithSnapshot(cfg.Snapshot && !args.noSnapshot, cfg.SnapshotDir),
		backup.WithVerify(cfg.Verify && !args.noVerify),
	}
	if len(cfg.HistoryDB) != 0 {
		hd, err := openHistory(cfg.HistoryDB)
		if err != nil {
			return err
		}
		opts = append(opts, backup.WithHistory(hd))
	}
	uploader, err := backup.New(opts...)
	if err != nil {
		return fmt.Errorf("init uploader failed, err:%w", err)
	}
	start := time.Now()
	rs, err := uploader.Backup(ctx, files...)
	if err != nil {
		return fmt.Errorf("backup failed, err:%w", err)
	}
	for _, res := range rs {
		fmt.Fprintf(w, "✓ Backup uploaded: %s\n", res.LocalPath)
		fmt.Fprintf(w, "   Remote path: %s\n", res.RemotePath)
		fmt.Fprintf(w, "   File size: %s\n", utils.FormatBytes(res.Size))
	}
	logutil.GetLogger(ctx).Info("backup finish", zap.Int("count", len(rs)), zap.Duration("cost", time.Since(start)))
	return nil
}

func init() {
	register(NewUploadCmd)
}
