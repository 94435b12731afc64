package main

import (
	"github.com/urfave/cli/v2"

	"github.com/axiomhq/huffman/internal/config"
	"github.com/axiomhq/huffman/internal/logging"
)

const (
	bufferCategory  = "BUFFERS"
	loggingCategory = "LOGGING"
)

var (
	configFileFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "TOML configuration file",
	}
	inputBufferFlag = &cli.IntFlag{
		Name:     "buffer.input",
		Usage:    "Read buffer size in bytes (must hold a full symbol table)",
		Category: bufferCategory,
	}
	outputBufferFlag = &cli.IntFlag{
		Name:     "buffer.output",
		Usage:    "Bit packer buffer size in bytes",
		Category: bufferCategory,
	}
	verbosityFlag = &cli.IntFlag{
		Name:     "verbosity",
		Usage:    "Logging verbosity: 0=crit, 1=error, 2=warn, 3=info, 4=debug, 5=trace",
		Value:    logging.DefaultConfig.Verbosity,
		Category: loggingCategory,
	}
	logFileFlag = &cli.StringFlag{
		Name:     "log.file",
		Usage:    "Write JSON logs to a rotating file instead of the terminal",
		Category: loggingCategory,
	}
	logMaxSizeFlag = &cli.IntFlag{
		Name:     "log.maxsize",
		Usage:    "Maximum size in megabytes of a log file before rotation",
		Value:    logging.DefaultConfig.MaxSize,
		Category: loggingCategory,
	}
	logMaxBackupsFlag = &cli.IntFlag{
		Name:     "log.maxbackups",
		Usage:    "Maximum number of rotated log files to keep",
		Value:    logging.DefaultConfig.MaxBackups,
		Category: loggingCategory,
	}
	logCompressFlag = &cli.BoolFlag{
		Name:     "log.compress",
		Usage:    "Compress rotated log files",
		Category: loggingCategory,
	}
)

var globalFlags = []cli.Flag{
	configFileFlag,
	inputBufferFlag,
	outputBufferFlag,
	verbosityFlag,
	logFileFlag,
	logMaxSizeFlag,
	logMaxBackupsFlag,
	logCompressFlag,
}

// loadConfig builds the effective configuration: defaults, then the config
// file, then flags explicitly set on the command line.
func loadConfig(ctx *cli.Context) (config.Config, error) {
	cfg := config.Default()
	if file := ctx.String(configFileFlag.Name); file != "" {
		if err := config.LoadFile(file, &cfg); err != nil {
			return cfg, err
		}
	}
	if ctx.IsSet(inputBufferFlag.Name) {
		cfg.Buffer.InputSize = ctx.Int(inputBufferFlag.Name)
	}
	if ctx.IsSet(outputBufferFlag.Name) {
		cfg.Buffer.OutputSize = ctx.Int(outputBufferFlag.Name)
	}
	if ctx.IsSet(verbosityFlag.Name) {
		cfg.Log.Verbosity = ctx.Int(verbosityFlag.Name)
	}
	if ctx.IsSet(logFileFlag.Name) {
		cfg.Log.File = ctx.String(logFileFlag.Name)
	}
	if ctx.IsSet(logMaxSizeFlag.Name) {
		cfg.Log.MaxSize = ctx.Int(logMaxSizeFlag.Name)
	}
	if ctx.IsSet(logMaxBackupsFlag.Name) {
		cfg.Log.MaxBackups = ctx.Int(logMaxBackupsFlag.Name)
	}
	if ctx.IsSet(logCompressFlag.Name) {
		cfg.Log.Compress = ctx.Bool(logCompressFlag.Name)
	}
	return cfg, cfg.Validate()
}
