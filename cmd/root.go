package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	config "task-manager.com/task-manager/internal/configs"
	"task-manager.com/task-manager/internal/session"
)

var rootCmd = &cobra.Command{
	Use:           "task-manager",
	Short:         "Interactive task tracker",
	Long:          "Starts an interactive, menu-driven session over the tasks table",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		repo, err := openRepository(cfg)
		if err != nil {
			return err
		}

		controller := session.NewController(
			repo,
			os.Stdin,
			os.Stdout,
			log.New(os.Stderr, "task-manager: ", log.LstdFlags),
			session.Options{
				NotifyUnrecognized: cfg.UnrecognizedInput == config.UnrecognizedNotify,
				PauseAfterAction:   cfg.PauseAfterAction,
			},
		)

		return controller.Run(cmd.Context())
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func loadConfig() (config.Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println(".env file not found, using environment variables")
	}
	return config.Load()
}
