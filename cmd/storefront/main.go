package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/chamberedinseams/storefront/config"
	"github.com/chamberedinseams/storefront/internal/adminapi"
	"github.com/chamberedinseams/storefront/internal/app"
	"github.com/chamberedinseams/storefront/internal/shopapi"
	"github.com/chamberedinseams/storefront/internal/webserver"
)

var (
	buildVersion = "dev"

	cfile    = flag.String("c", "storefront.yml", "config file")
	initdb   = flag.Bool("initdb", false, "drop and recreate the database schema")
	showVer  = flag.Bool("v", false, "print version and exit")
	portFlag = flag.Int("p", 0, "override web listen port")
)

func main() {
	flag.Parse()

	if *showVer {
		fmt.Printf("storefront %s\n", buildVersion)
		os.Exit(0)
	}

	cfg := config.LoadConfig(*cfile)
	if *portFlag > 0 {
		cfg.Web.Port = *portFlag
	}
	cfg.InitDirs()

	application := app.NewApplication(cfg)
	application.Init(cfg)
	defer application.Release()

	if *initdb {
		application.InitDb()
		zap.S().Info("database schema recreated")
		os.Exit(0)
	}

	webserver.Init(application)
	adminapi.InitRouter()
	shopapi.InitRouter()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application.StartBackgroundJobs(ctx)

	go func() {
		<-ctx.Done()
		webserver.Shutdown()
	}()

	if err := webserver.Listen(); err != nil {
		zap.S().Errorf("web server stopped: %v", err)
	}
}
