package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/xxxsen/ncbackup/davclient"
	"github.com/xxxsen/ncbackup/davxml"
	"github.com/xxxsen/ncbackup/utils"
)

type listArgs struct {
	dirsOnly bool
	json     bool
}

func NewListCmd(c *Context) *cobra.Command {
	args := &listArgs{}
	subc := &cobra.Command{
		Use:   "list [path]",
		Short: "List files and folders of a remote folder",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, params []string) error {
			dir := "/"
			if len(params) > 0 {
				dir = params[0]
			}
			return onRunList(cmd.Context(), cmd.OutOrStdout(), c, args, dir)
		},
	}
	subc.Flags().BoolVar(&args.dirsOnly, "dirs-only", false, "list folders only")
	subc.Flags().BoolVar(&args.json, "json", false, "print entries as json")
	return subc
}

func onRunList(ctx context.Context, w io.Writer, c *Context, args *listArgs, dir string) error {
	ents, err := c.Client.List(ctx, dir)
	if davclient.IsNotFound(err) {
		return fmt.Errorf("folder not found, dir:%s", dir)
	}
	if err != nil {
		return fmt.Errorf("list folder failed, dir:%s, err:%w", dir, err)
	}
	if args.dirsOnly {
		ents = davxml.Dirs(ents)
	}
	if args.json {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(ents)
	}
	for _, ent := range ents {
		fmt.Fprintln(w, formatEntry(ent))
	}
	return nil
}

func formatEntry(ent *davxml.Entry) string {
	if ent.IsDir {
		return "📁 " + ent.Name
	}
	return fmt.Sprintf("📄 %s (%s)", ent.Name, utils.FormatBytes(ent.Size))
}

func init() {
	register(NewListCmd)
}
