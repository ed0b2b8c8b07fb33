package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/patrickprogramme/capgrab/internal/yt"
)

// renseigné au build via -ldflags "-X main.version=..."
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Affiche la version de capgrab et de yt-dlp",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("capgrab %s\n", version)

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		_, v, err := yt.InitYtDlp(cmd.Context(), cfg)
		if err != nil {
			fmt.Printf("yt-dlp  indisponible : %v\n", err)
			return nil
		}
		fmt.Printf("yt-dlp  %s\n", v)
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
