package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/ncbackup/cmd/ncbackup/config"
	"github.com/xxxsen/ncbackup/davclient"
)

const (
	defaultConfigFileEnv = "NCBACKUP_CONFIG"
	defaultConfigFile    = "/etc/ncbackup/config.json"
)

const (
	annotationLocalOnly = "local_only"
)

var cmds []CreateFunc

type Context struct {
	Config *config.Config
	Client davclient.IClient
}

type CreateFunc func(ctx *Context) *cobra.Command

func register(cr CreateFunc) {
	cmds = append(cmds, cr)
}

func isLocalOnly(cmd *cobra.Command) bool {
	return cmd.Annotations[annotationLocalOnly] == "true"
}

func initContext(ctx *Context, explicit string, cfgs []string, withClient bool) error {
	c, err := config.Load(explicit, cfgs...)
	if err != nil {
		return err
	}
	ctx.Config = c
	logitem := c.LogInfo
	logger.Init(logitem.File, logitem.Level, int(logitem.FileCount), int(logitem.FileSize), int(logitem.KeepDays), logitem.Console)
	if !withClient {
		return nil
	}
	if err := c.ValidateRemote(); err != nil {
		return err
	}
	cli, err := davclient.New(
		davclient.WithEndpoint(c.URL),
		davclient.WithAuth(c.Username, c.Password),
		davclient.WithTimeout(time.Duration(c.Timeout)*time.Second),
	)
	if err != nil {
		return fmt.Errorf("init webdav client failed, err:%w", err)
	}
	ctx.Client = cli
	return nil
}

func NewRoot() *cobra.Command {
	var configFile string
	ctx := &Context{}
	var rootCmd = &cobra.Command{
		Use:           "ncbackup",
		Short:         "Back up sqlite databases to nextcloud over webdav",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	for _, cr := range cmds {
		rootCmd.AddCommand(cr(ctx))
	}
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		envConfigFile, _ := os.LookupEnv(defaultConfigFileEnv)
		return initContext(ctx, configFile, []string{envConfigFile, defaultConfigFile}, !isLocalOnly(cmd))
	}
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (json/toml/yaml)")
	return rootCmd
}
