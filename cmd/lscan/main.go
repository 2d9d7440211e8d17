package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/JackKCWong/recordio"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

type App struct {
	Lines   int
	BufSize string
}

func (a *App) Run(ctx context.Context, args []string) error {
	splitter, err := recordio.NewSplitter(a.Lines)
	if err != nil {
		return err
	}

	bufSize, err := recordio.ParseBufSize(a.BufSize)
	if err != nil {
		return err
	}

	infile, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer infile.Close()

	buf := make([]byte, bufSize)
	scanner := recordio.NewScanner(infile, buf, recordio.WithSplitter(splitter))

	for scanner.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		rec := scanner.Record()
		fmt.Printf("%d:%d-%d\t\t%s", rec.No, rec.Start, rec.End, rec.Raw)
	}

	if scanner.Err() == io.EOF {
		if pending := scanner.Pending(); len(pending) > 0 {
			log.Printf("skipped %s at the end of %s without a trailing newline", humanize.IBytes(uint64(len(pending))), args[0])
		}
		return nil
	}

	return scanner.Err()
}

func main() {
	var app App
	ctx, cancel := context.WithCancel(context.Background())

	sigKill := make(chan os.Signal, 1)
	signal.Notify(sigKill, os.Interrupt)

	go func() {
		<-sigKill
		cancel()
	}()

	cmd := &cobra.Command{
		Use:           "lscan FILE",
		Short:         "Print the records of a file with their offsets",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), args)
		},
	}

	cmd.Flags().IntVarP(&app.Lines, "lines", "n", 1, "lines per record")
	cmd.Flags().StringVar(&app.BufSize, "buf", "4KiB", "buffer size")

	if err := cmd.ExecuteContext(ctx); err != nil {
		log.Printf("exited with error: %q", err)
		os.Exit(1)
	}
}
