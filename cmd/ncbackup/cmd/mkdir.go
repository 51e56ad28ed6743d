package cmd

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/spf13/cobra"
	"github.com/xxxsen/ncbackup/davclient"
)

func NewMkdirCmd(c *Context) *cobra.Command {
	subc := &cobra.Command{
		Use:   "mkdir <path>",
		Short: "Create a remote folder, parents included",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, params []string) error {
			return onRunMkdir(cmd.Context(), cmd.OutOrStdout(), c, params[0])
		},
	}
	return subc
}

func onRunMkdir(ctx context.Context, w io.Writer, c *Context, dir string) error {
	dir = davclient.CleanPath(dir)
	if dir == "/" {
		fmt.Fprintln(w, "✓ Folder already exists: /")
		return nil
	}
	if err := c.Client.MakeDirAll(ctx, path.Dir(dir)); err != nil {
		return fmt.Errorf("create parent folder failed, err:%w", err)
	}
	created, err := c.Client.MakeDir(ctx, dir)
	if err != nil {
		return fmt.Errorf("create folder failed, dir:%s, err:%w", dir, err)
	}
	if created {
		fmt.Fprintf(w, "✓ Created folder: %s\n", dir)
		return nil
	}
	fmt.Fprintf(w, "✓ Folder already exists: %s\n", dir)
	return nil
}

func init() {
	register(NewMkdirCmd)
}
