// Command routeview mounts a route configuration view against a backend and
// prints what a host would render before and after the fetch settles.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"

	"bffmvp/internal/client"
	"bffmvp/internal/config"
	"bffmvp/internal/logging"
	"bffmvp/internal/routeview"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(config.Load()).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type options struct {
	backendURL string
	timeout    time.Duration
	wait       time.Duration
	page       bool
}

func newRootCmd(cfg *config.AppConfig) *cobra.Command {
	opts := options{
		backendURL: cfg.View.BackendURL,
		timeout:    cfg.View.FetchTimeout,
		wait:       cfg.View.FetchTimeout + time.Second,
	}

	cmd := &cobra.Command{
		Use:           "routeview",
		Short:         "Render the configured routes of a BFF backend.",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			log, err := logging.New(cfg.Log, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			fetcher := client.New(opts.backendURL, opts.timeout)
			return run(cmd.Context(), cmd.OutOrStdout(), fetcher, opts,
				routeview.WithLogger(log), routeview.WithTimeout(opts.timeout))
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.backendURL, "backend", opts.backendURL, "base URL of the backend serving GET /api/routes")
	f.DurationVar(&opts.timeout, "timeout", opts.timeout, "fetch timeout")
	f.DurationVar(&opts.wait, "wait", opts.wait, "how long to wait for the fetch before giving up")
	f.BoolVar(&opts.page, "page", false, "render a full HTML page instead of a fragment")
	return cmd
}

// run renders the initial state, mounts the view and renders again once the
// view reports a change. If nothing settles within opts.wait the view is
// unmounted and the last render stands.
func run(ctx context.Context, out io.Writer, f routeview.Fetcher, opts options, viewOpts ...routeview.Option) error {
	v := routeview.New(f, viewOpts...)
	defer v.Unmount()

	render := v.Render
	if opts.page {
		render = v.RenderPage
	}

	if err := render(out); err != nil {
		return fmt.Errorf("render initial state: %w", err)
	}

	v.Mount(ctx)

	timer := time.NewTimer(opts.wait)
	defer timer.Stop()
	select {
	case <-v.Done():
	case <-timer.C:
		return fmt.Errorf("no response from %s within %s", opts.backendURL, opts.wait)
	case <-ctx.Done():
		return ctx.Err()
	}

	fmt.Fprintln(out)
	if err := render(out); err != nil {
		return fmt.Errorf("render settled state: %w", err)
	}
	if st := v.State(); st.Phase == routeview.PhaseFailed {
		return fmt.Errorf("load routes from %s: %w", opts.backendURL, st.Err)
	}
	return nil
}
