package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is a no-op logger until InitLogger runs.
var Log = zap.NewNop()

func InitLogger(mode string) {
	var config zap.Config

	if mode == "release" {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	// stdout is left to the local API access log
	config.OutputPaths = []string{"stderr"}
	l, err := config.Build()
	if err != nil {
		os.Exit(1)
	}
	Log = l.With(zap.String("component", "sleuth-client"))
	zap.ReplaceGlobals(Log)
}
