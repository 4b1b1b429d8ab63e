package cmd

import (
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rohancyriac029/reviewcord/bleve"
	"github.com/rohancyriac029/reviewcord/bolt"
	"github.com/rohancyriac029/reviewcord/extract"
	"github.com/rohancyriac029/reviewcord/gin"
	"github.com/rohancyriac029/reviewcord/log"
	"github.com/rohancyriac029/reviewcord/oracle"
	"github.com/rohancyriac029/reviewcord/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the review tracker web server",
	Run: func(cmd *cobra.Command, args []string) {
		logger := log.New(env)

		// Stores
		driver := &bolt.Driver{}
		if err := driver.Open(viper.GetString("bolt")); err != nil {
			logger.Fatal("could not open db:", err)
		}
		defer driver.Close()
		repository := &bolt.PaperRepository{Driver: driver}

		index := &bleve.PaperIndex{}
		if err := index.Open(viper.GetString("bleve")); err != nil {
			logger.Fatal("could not open search index:", err)
		}
		defer index.Close()

		// Ingestion pipeline
		gemini := &oracle.Gemini{
			APIKey: viper.GetString("gemini_key"),
			Model:  viper.GetString("gemini_model"),
			Client: &http.Client{Timeout: 60 * time.Second},
		}
		if gemini.APIKey == "" {
			logger.Print("no REVIEWCORD_GEMINI_KEY set, duplicate checks and summaries are disabled")
		}

		extractor := extract.New(&http.Client{Timeout: 15 * time.Second}, logger)
		resolver := oracle.NewResolver(gemini, logger)
		summarizer := oracle.NewSummarizer(gemini, logger)

		service := services.NewPaperService(repository, index, extractor, resolver, summarizer, logger)

		handler, err := gin.New(service, extractor, resolver, summarizer)
		if err != nil {
			logger.Fatal("could not create server:", err)
		}

		addr := viper.GetString("addr")
		logger.Print("server started, listening on ", addr)
		logger.Fatal(http.ListenAndServe(addr, handler))
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
