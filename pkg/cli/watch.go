package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/getmockd/fixtures/pkg/fixture"
	"github.com/spf13/cobra"
)

type watchEvent struct {
	Op   string `json:"op"`
	Path string `json:"path"`
}

func (a *app) watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Print fixture changes until interrupted",
		Long: `Watch the data root recursively and print one line per change
(create, write, remove, rename). New subdirectories are picked up
automatically. Stop with Ctrl-C.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			w, err := a.loader().Watch()
			if err != nil {
				return err
			}

			var mu sync.Mutex
			out := cmd.OutOrStdout()
			w.OnChange(func(ev fixture.Event) {
				mu.Lock()
				defer mu.Unlock()
				if a.cfg.JSON {
					_ = json.NewEncoder(out).Encode(watchEvent{Op: ev.Op.String(), Path: ev.Path})
					return
				}
				fmt.Fprintf(out, "%-7s %s\n", ev.Op, ev.Path)
			})

			if err := w.Start(); err != nil {
				_ = w.Stop()
				return err
			}
			a.logger.Info("watching fixtures", "root", a.cfg.DataDir)

			<-ctx.Done()
			return w.Stop()
		},
	}
}
