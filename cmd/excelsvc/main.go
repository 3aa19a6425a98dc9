package main

import (
	"context"
	"net"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/opdss/excelsvc/api"
	"github.com/opdss/excelsvc/logger"
	"github.com/opdss/excelsvc/process"
	httpserver "github.com/opdss/excelsvc/server/http"
	"github.com/opdss/excelsvc/version"
)

// Config 服务配置
type Config struct {
	Log    logger.Config
	Server httpserver.Config
	Api    api.Config
}

var (
	rootCmd = &cobra.Command{
		Use:   "excelsvc",
		Short: "JSON记录转Excel的导出服务",
	}
	runCmd = &cobra.Command{
		Use:   "run",
		Short: "启动HTTP服务",
		RunE:  cmdRun,
	}
	runCfg Config
)

func init() {
	rootCmd.PersistentFlags().String("config-dir", "", "配置文件目录")
	rootCmd.AddCommand(runCmd)
	process.Bind(runCmd, &runCfg)
}

func main() {
	process.Exec(rootCmd)
}

func cmdRun(cmd *cobra.Command, args []string) error {
	ctx, cancel := process.Ctx(cmd)
	defer cancel()

	log, err := logger.NewLogger(runCfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	zap.ReplaceGlobals(log)

	//PORT环境变量优先于监听地址配置
	if port := os.Getenv("PORT"); port != "" {
		runCfg.Server.Address = net.JoinHostPort("0.0.0.0", port)
	}

	engine := httpserver.NewEngine(log.Named("http"))
	api.New(log.Named("api"), runCfg.Api).Register(engine)
	srv := httpserver.NewServer(engine, log.Named("http"), runCfg.Server)

	log.Sugar().Infof("excelsvc %s starting", version.Build.Version)
	go func() {
		<-ctx.Done()
		_ = srv.Stop(context.Background())
	}()
	return srv.Start(ctx)
}
