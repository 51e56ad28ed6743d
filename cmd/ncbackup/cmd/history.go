package cmd

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/xxxsen/ncbackup/dao"
	"github.com/xxxsen/ncbackup/db"
	"github.com/xxxsen/ncbackup/entity"
	"github.com/xxxsen/ncbackup/utils"
)

type historyArgs struct {
	limit int64
	file  string
}

func openHistory(file string) (dao.IBackupHistoryDao, error) {
	if err := db.InitDB(file); err != nil {
		return nil, fmt.Errorf("init history db failed, file:%s, err:%w", file, err)
	}
	return dao.NewBackupHistoryDao(db.GetClient()), nil
}

func NewHistoryCmd(c *Context) *cobra.Command {
	args := &historyArgs{}
	subc := &cobra.Command{
		Use:   "history",
		Short: "Show backups recorded in the local history db",
		Args:  cobra.NoArgs,
		//只读本地历史库, 不需要 nextcloud 配置
		Annotations: map[string]string{annotationLocalOnly: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return onRunHistory(cmd.Context(), cmd.OutOrStdout(), c, args)
		},
	}
	subc.Flags().Int64VarP(&args.limit, "limit", "n", 20, "max records to show")
	subc.Flags().StringVarP(&args.file, "file", "f", "", "only show backups of this local file")
	return subc
}

func onRunHistory(ctx context.Context, w io.Writer, c *Context, args *historyArgs) error {
	if len(c.Config.HistoryDB) == 0 {
		return fmt.Errorf("no history_db configured")
	}
	hd, err := openHistory(c.Config.HistoryDB)
	if err != nil {
		return err
	}
	local := args.file
	if len(local) != 0 {
		if abs, err := filepath.Abs(local); err == nil {
			local = abs
		}
	}
	rsp, err := hd.ListBackupRecords(ctx, &entity.ListBackupRecordsRequest{
		LocalPath: local,
		Limit:     args.limit,
	})
	if err != nil {
		return fmt.Errorf("list history failed, err:%w", err)
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TIME\tLOCAL\tREMOTE\tSIZE\tCHECKSUM")
	for _, item := range rsp.List {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			time.UnixMilli(item.Ctime).Format(time.DateTime), item.LocalPath, item.RemotePath, utils.FormatBytes(item.FileSize), item.Checksum)
	}
	return tw.Flush()
}

func init() {
	register(NewHistoryCmd)
}
