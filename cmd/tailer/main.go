package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/JackKCWong/recordio"
	"github.com/dustin/go-humanize"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
)

type options struct {
	prof    string
	start   string
	bufSize string
	backoff time.Duration
	lines   int
	verbose bool
}

func parseStart(start string) (int, int64, error) {
	starts := strings.Split(start, ",")
	if len(starts) != 2 {
		return 0, 0, fmt.Errorf("invalid start %q, want recordno,offset", start)
	}

	recno, err := strconv.Atoi(starts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid record number: %w", err)
	}

	offset, err := strconv.ParseInt(starts[1], 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid offset: %w", err)
	}

	return recno, offset, nil
}

func run(ctx context.Context, opts options, path string) error {
	switch opts.prof {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.Quiet).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.Quiet).Stop()
	case "none":
	default:
		return fmt.Errorf("unknown profile: %s, want cpu|mem|none", opts.prof)
	}

	splitter, err := recordio.NewSplitter(opts.lines)
	if err != nil {
		return err
	}

	recno, offset, err := parseStart(opts.start)
	if err != nil {
		return err
	}

	bufSize, err := recordio.ParseBufSize(opts.bufSize)
	if err != nil {
		return err
	}

	fd, err := os.Open(path)
	if err != nil {
		return err
	}
	defer fd.Close()

	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	tailer := recordio.NewTailer(fd, bufSize,
		recordio.WithTailSplitter(splitter),
		recordio.WithLogger(logger))
	tailer.StartingByte = offset
	tailer.StartingRecord = recno

	var total uint64
	return tailer.Tail(ctx, opts.backoff, func(records []recordio.Record) error {
		for i := range records {
			fmt.Printf("%d:%d\t\t%s", records[i].No, records[i].Start, records[i].Raw)
			total += uint64(len(records[i].Raw))
		}

		fmt.Printf("######################### %s consumed\n", humanize.IBytes(total))
		return nil
	})
}

func main() {
	var opts options

	ctx, cancel := context.WithCancel(context.Background())

	sigKill := make(chan os.Signal, 1)
	signal.Notify(sigKill, os.Interrupt)
	go func() {
		<-sigKill
		cancel()
	}()

	cmd := &cobra.Command{
		Use:           "tailer FILE",
		Short:         "Follow a growing file and print its records",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.prof, "prof", "none", "cpu|mem|none")
	cmd.Flags().StringVar(&opts.start, "start", "1,0", "recordno,offset")
	cmd.Flags().StringVar(&opts.bufSize, "buf", "4KiB", "buffer size")
	cmd.Flags().DurationVar(&opts.backoff, "backoff", 500*time.Millisecond, "backoff time at end of file")
	cmd.Flags().IntVarP(&opts.lines, "lines", "n", 1, "lines per record")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "log debug events")

	if err := cmd.ExecuteContext(ctx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "error: %q\n", err)
		os.Exit(1)
	}
}
