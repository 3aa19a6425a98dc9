package logger

import (
	"os"

	"github.com/zeebo/errs"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Config struct {
	Level      string `help:"日志级别,可选[debug|info|warn|error]" default:"info"`
	Encoding   string `help:"日志编码,可选[json|console]" default:"console"`
	File       string `help:"日志文件路径,为空输出到stderr" default:""`
	MaxSize    int    `help:"单个日志文件最大体积,MB" default:"100"`
	MaxBackups int    `help:"日志文件保留个数" default:"10"`
	MaxAge     int    `help:"日志文件保留天数" default:"30"`
}

// NewLogger 构造zap日志实例，配置了文件路径时用lumberjack滚动切割
func NewLogger(conf Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(conf.Level)
	if err != nil {
		return nil, errs.Wrap(err)
	}
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	var enc zapcore.Encoder
	switch conf.Encoding {
	case "console":
		enc = zapcore.NewConsoleEncoder(encCfg)
	case "json":
		enc = zapcore.NewJSONEncoder(encCfg)
	default:
		return nil, errs.New("unknown log encoding: %q", conf.Encoding)
	}
	var ws zapcore.WriteSyncer = zapcore.Lock(os.Stderr)
	if conf.File != "" {
		ws = zapcore.AddSync(&lumberjack.Logger{
			Filename:   conf.File,
			MaxSize:    conf.MaxSize,
			MaxBackups: conf.MaxBackups,
			MaxAge:     conf.MaxAge,
		})
	}
	return zap.New(zapcore.NewCore(enc, ws, level)), nil
}
