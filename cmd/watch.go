package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/zjrosen/rainbow/internal/document"
	"github.com/zjrosen/rainbow/internal/log"
	"github.com/zjrosen/rainbow/internal/render"
	"github.com/zjrosen/rainbow/internal/watcher"
)

var watchVerbose bool

var watchCmd = &cobra.Command{
	Use:   "watch FILE",
	Short: "Re-color a file every time it is saved",
	Long: `Print a file with its brackets colored, then print it again every time it
changes on disk. Only the lines an edit can affect are scanned again.

Example:
  rainbow watch main.go
  rainbow watch -v main.go   # also echo log entries to stderr`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runWatch(ctx, cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().BoolVarP(&watchVerbose, "verbose", "v", false, "echo log entries to stderr")
}

func runWatch(ctx context.Context, cmd *cobra.Command, path string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	r, err := newRenderer(out)
	if err != nil {
		return err
	}

	text, err := readSource(cmd, path)
	if err != nil {
		return err
	}

	if watchVerbose {
		go echoLog(logListener(ctx), cmd.ErrOrStderr())
	}

	doc := document.New(s, newLexer(s), text)
	defer doc.Close()

	wcfg := watcher.DefaultConfig(path)
	if cfg.Watch.Debounce > 0 {
		wcfg.DebounceDur = cfg.Watch.Debounce
	}
	w, err := watcher.New(wcfg)
	if err != nil {
		return err
	}
	defer func() { _ = w.Stop() }()

	onChange, err := w.Start()
	if err != nil {
		return err
	}
	changes := doc.Subscribe(ctx)

	printDocument(out, r, doc)

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-onChange:
			text, err := readSource(cmd, path)
			if err != nil {
				// The file may be mid-save; the next event retries.
				log.ErrorErr(log.CatWatcher, "Failed to reload file", err, "path", path)
				continue
			}
			log.Debug(log.CatWatcher, "reloaded", "path", path, "bytes", len(text))
			doc.Update(text)

		case ev, ok := <-changes:
			if !ok {
				return nil
			}
			c := ev.Payload
			_, _ = fmt.Fprintln(out, r.Faint(fmt.Sprintf("── %s: rescanned lines %d-%d, reused %d of %d",
				path, c.FirstLine+1, c.LastLine+1, c.Reused, c.LineCount)))
			printDocument(out, r, doc)
		}
	}
}

func printDocument(out io.Writer, r *render.Renderer, doc *document.Document) {
	rendered := r.Document(doc)
	if !strings.HasSuffix(rendered, "\n") {
		rendered += "\n"
	}
	_, _ = fmt.Fprint(out, rendered)
}

// logListener subscribes to log entries, turning logging on (to nowhere)
// when --debug did not.
func logListener(ctx context.Context) <-chan log.LogEvent {
	events := log.NewListener(ctx)
	if events == nil {
		log.InitWriter(io.Discard)
		events = log.NewListener(ctx)
	}
	return events
}

func echoLog(events <-chan log.LogEvent, w io.Writer) {
	for ev := range events {
		_, _ = fmt.Fprint(w, ev.Payload)
	}
}
