package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/patrickprogramme/capgrab/internal/app"
	"github.com/patrickprogramme/capgrab/internal/config"
	"github.com/patrickprogramme/capgrab/internal/ui"
)

var opts = &app.CLIOptions{}

var rootCmd = &cobra.Command{
	Use:   "capgrab [url]",
	Short: "Extraction et reconstruction de sous-titres Youtube",
	Long: `capgrab télécharge la piste de sous-titres d'une vidéo Youtube via yt-dlp,
reconstruit les énoncés des pistes automatiques (fragments ASR incrémentaux)
et exporte le résultat en txt, srt, vtt ou json.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			opts.URL = args[0]
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		a := app.New(cfg, ui.NewTerminal(), opts)
		if err := a.Run(cmd.Context()); err != nil {
			log.Printf("capgrab: %v", err)
			return err
		}
		return nil
	},
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&opts.ConfigPath, "config", "", "chemin du fichier de configuration (défaut: capgrab.yaml à côté du binaire)")
	pf.StringVar(&opts.YtDlpPath, "yt-dlp-path", "", "chemin vers l'exécutable yt-dlp")

	f := rootCmd.Flags()
	f.StringVarP(&opts.Language, "lang", "l", "", `langue des sous-titres ("auto" = première disponible)`)
	f.StringSliceVarP(&opts.Formats, "format", "f", nil, "formats de sortie (txt, srt, vtt, json)")
	f.StringVarP(&opts.OutputDir, "output", "o", "", "dossier de sortie")
	f.BoolVar(&opts.Copy, "copy", false, "copier la transcription dans le presse-papier")
	f.BoolVar(&opts.KeepRaw, "keep-raw", false, "conserver la piste brute téléchargée")
}

// loadConfig résout l'emplacement du fichier de configuration puis le charge.
// Par défaut : capgrab.yaml dans le dossier du binaire.
func loadConfig() (*config.Config, error) {
	path := opts.ConfigPath
	if path == "" {
		binDir := "."
		if exePath, err := os.Executable(); err == nil {
			binDir = filepath.Dir(exePath)
		}
		path = filepath.Join(binDir, "capgrab.yaml")
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("config load: %w", err)
	}
	fmt.Printf("Configuration : %s\n", cfg.FilePath())

	if warnings, err := cfg.ValidateYtDlpPresence(); err != nil {
		return nil, err
	} else {
		for _, w := range warnings {
			fmt.Fprintf(os.Stderr, "warning: %s\n", w)
		}
	}
	return cfg, nil
}

// Execute lance la commande racine avec le contexte fourni.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
