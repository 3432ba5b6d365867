package main

import (
	"os"
	"os/signal"
	"syscall"

	"moviedb/internal/console"
	"moviedb/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// runInteractive runs the menu loop against the configured database.
func runInteractive(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	boot := logging.For(logger, logging.CategoryBoot)

	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	// Release the store on Ctrl-C as well; the menu blocks on stdin.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case sig := <-sigCh:
			boot.Info("signal received, closing store", zap.Stringer("signal", sig))
			_ = st.Close()
			_ = logger.Sync()
			os.Exit(130)
		case <-done:
		}
	}()

	boot.Info("interactive session started", zap.String("database", st.Path()))

	out := cmd.OutOrStdout()
	ctl := console.New(st, cmd.InOrStdin(), out, console.Options{
		ImportPath: cfg.ImportPath,
		ExportPath: cfg.ExportPath,
		Styles:     stylesFor(out),
		Logger:     logging.For(logger, logging.CategoryConsole),
	})
	if err := ctl.Run(ctx); err != nil {
		return err
	}

	boot.Info("interactive session ended")
	return nil
}
