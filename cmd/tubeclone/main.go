package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/five82/tubeclone/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override config path (optional)")
	apiBase := flag.String("api", "", "API base URL, e.g. http://127.0.0.1:5328 (optional)")
	uploadBase := flag.String("upload", "", "upload API base URL, defaults to -api (optional)")
	theme := flag.String("theme", "", "color theme: Nightfox, Kanagawa or Slate (optional)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath: *configPath,
		APIBase:    *apiBase,
		UploadBase: *uploadBase,
		Theme:      *theme,
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "tubeclone: %v\n", err)
		return 1
	}
	return 0
}
