package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"

	"github.com/harshit0019/portfolio/internal/config"
	"github.com/harshit0019/portfolio/internal/content"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	rootCmd := &cobra.Command{
		Use:          "portfolio",
		Short:        "portfolio site with animated backdrops",
		SilenceUsage: true,
		RunE:         serve,
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "run the web site",
		Args:  cobra.NoArgs,
		RunE:  serve,
	}

	rootCmd.AddCommand(serveCmd, backdropCommand())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serve(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	site, err := content.Load(cfg.ContentFile)
	if err != nil {
		return err
	}
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}
	if err := cfg.SMTP.Check(); err != nil {
		log.Printf("Warning: %v, contact messages will not be delivered", err)
	}

	srv := newServer(cfg, site, newSMTPMailer(cfg.SMTP))
	stop := make(chan struct{})
	defer close(stop)
	go srv.throttle.run(stop)

	log.Printf("Serving %s on :%s", site.Profile.Name, cfg.Port)
	return srv.router().Run(":" + cfg.Port)
}
