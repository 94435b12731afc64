// Command huff compresses and decompresses files with a static Huffman code.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/gofrs/flock"
	"github.com/urfave/cli/v2"

	"github.com/axiomhq/huffman"
	"github.com/axiomhq/huffman/internal/config"
	"github.com/axiomhq/huffman/internal/logging"
)

const (
	exitFail  = 1
	exitUsage = 2
)

var errUsage = errors.New("usage")

// failLabel is red on a terminal and plain otherwise.
var failLabel = color.New(color.FgRed, color.Bold)

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:  "huff",
		Usage: "static Huffman file compressor",
		Description: "A failed command prints \"Fail: <message>\" on stdout and exits with status 1.\n" +
			"A wrong number of arguments prints the command usage and exits with status 2.",
		Flags:     globalFlags,
		Writer:    stdout,
		ErrWriter: stderr,
		Commands: []*cli.Command{
			{
				Name:      "encode",
				Usage:     "Compress a file",
				ArgsUsage: "<input> <output>",
				Action:    encode,
			},
			{
				Name:      "decode",
				Usage:     "Decompress a file",
				ArgsUsage: "<input> <output>",
				Action:    decode,
			},
			{
				Name:      "inspect",
				Usage:     "Print the header and symbol table of a compressed file",
				ArgsUsage: "<input>",
				Action:    inspect,
			},
			{
				Name:   "dumpconfig",
				Usage:  "Print the effective configuration as TOML",
				Action: dumpConfig,
			},
		},
		// Exit codes are mapped by run.
		ExitErrHandler: func(*cli.Context, error) {},
	}
}

func run(args []string, stdout, stderr io.Writer) int {
	err := newApp(stdout, stderr).Run(args)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errUsage):
		return exitUsage
	default:
		failLabel.Fprint(stdout, "Fail:")
		fmt.Fprintf(stdout, " %v\n", err)
		return exitFail
	}
}

// checkArgs prints the command help when the positional argument count is
// wrong.
func checkArgs(ctx *cli.Context, n int) error {
	if ctx.NArg() == n {
		return nil
	}
	// Help for a command is looked up among its parent's subcommands.
	parent := ctx
	if lineage := ctx.Lineage(); len(lineage) > 1 {
		parent = lineage[1]
	}
	if err := cli.ShowCommandHelp(parent, ctx.Command.Name); err != nil {
		return err
	}
	return errUsage
}

// session is the state shared by the commands that touch files.
type session struct {
	cfg      config.Config
	codec    *huffman.Codec
	log      *slog.Logger
	closeLog func() error
}

func setup(ctx *cli.Context) (*session, error) {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return nil, err
	}
	log, closeLog, err := logging.Setup(cfg.Log)
	if err != nil {
		return nil, err
	}
	return &session{cfg: cfg, codec: huffman.New(cfg.Codec(log)), log: log, closeLog: closeLog}, nil
}

func encode(ctx *cli.Context) error {
	return process(ctx, "Encoded", (*huffman.Codec).Encode)
}

func decode(ctx *cli.Context) error {
	return process(ctx, "Decoded", (*huffman.Codec).Decode)
}

func process(ctx *cli.Context, verb string, fn func(*huffman.Codec, huffman.Input, huffman.Output) error) error {
	if err := checkArgs(ctx, 2); err != nil {
		return err
	}
	sess, err := setup(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := sess.closeLog(); err != nil {
			fmt.Fprintf(ctx.App.ErrWriter, "close log: %v\n", err)
		}
	}()
	log := sess.log

	inPath, outPath := ctx.Args().Get(0), ctx.Args().Get(1)

	lock := flock.New(outPath + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("lock %s: %w", outPath, err)
	}
	if !locked {
		return fmt.Errorf("output %s is in use by another process", outPath)
	}
	defer releaseLock(lock, log)

	start := time.Now()
	src, err := os.Open(inPath)
	if err != nil {
		return err
	}
	defer src.Close()
	dst, err := os.Create(outPath)
	if err != nil {
		return err
	}

	err = fn(sess.codec, huffman.NewInput(src, sess.cfg.Buffer.InputSize), huffman.NewOutput(dst))
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		log.Debug("Removing partial output", "path", outPath)
		if rerr := os.Remove(outPath); rerr != nil && !os.IsNotExist(rerr) {
			log.Debug("Failed to remove partial output", "path", outPath, "err", rerr)
		}
		return err
	}

	var inSize, outSize int64
	if fi, err := src.Stat(); err == nil {
		inSize = fi.Size()
	}
	if fi, err := os.Stat(outPath); err == nil {
		outSize = fi.Size()
	}
	log.Info(verb, "input", inPath, "output", outPath, "in", inSize, "out", outSize, "elapsed", time.Since(start))
	return nil
}

// releaseLock unlocks and deletes the output lock file.
func releaseLock(lock *flock.Flock, log *slog.Logger) {
	if err := lock.Unlock(); err != nil {
		log.Debug("Failed to release output lock", "path", lock.Path(), "err", err)
	}
	if err := os.Remove(lock.Path()); err != nil && !os.IsNotExist(err) {
		log.Debug("Failed to remove output lock", "path", lock.Path(), "err", err)
	}
}

func dumpConfig(ctx *cli.Context) error {
	if err := checkArgs(ctx, 0); err != nil {
		return err
	}
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	return cfg.Dump(ctx.App.Writer)
}
