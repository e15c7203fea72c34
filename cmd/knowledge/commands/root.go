package commands

import (
	"fmt"
	"os"

	"knowledge-base/config"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	// Global flags
	driverOverride string
	jsonOutput     bool

	settings *config.Settings
	logFile  *os.File
	log      *zap.Logger
	db       *gorm.DB
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "knowledge",
	Short: "Operate the research knowledge base schema",
	Long: `knowledge manages the relational store behind the research knowledge base:
authors, affiliations, publications, projects, keywords and subject areas
reconciled from Scopus and Ciência Vitae.

Connection settings come from the environment (or a .env file):
  DB_DRIVER, DB_HOST, DB_PORT, DB_DATABASE, DB_USERNAME, DB_PASSWORD, DB_PATH`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
}

// Execute runs the root command
func Execute() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// execute runs the command tree and releases the database and log file
// whether or not the command failed.
func execute() error {
	defer teardown()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&driverOverride, "driver", "", "Override DB_DRIVER (mysql, postgres, sqlite)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
}

func setup() error {
	var err error
	settings, err = config.Load(config.WithDriver(driverOverride))
	if err != nil {
		return err
	}

	logFile, log = config.InitLogging(settings)
	if !settings.DotenvLoaded {
		log.Debug("no .env file found, using environment variables")
	}

	db, err = config.InitDB(settings, log)
	return err
}

func teardown() {
	if db != nil {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
		db = nil
	}
	if log != nil {
		_ = log.Sync()
	}
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
}
