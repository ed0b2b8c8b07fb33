package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/patrickprogramme/capgrab/internal/yt"
	"github.com/patrickprogramme/capgrab/pkg/model"
)

var languagesCmd = &cobra.Command{
	Use:   "languages <url>",
	Short: "Liste les langues de sous-titres disponibles pour une vidéo",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		url := args[0]
		if !yt.IsYouTubeURL(url) {
			return fmt.Errorf("URL Youtube invalide : %s", url)
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		dl, _, err := yt.InitYtDlp(cmd.Context(), cfg)
		if err != nil {
			return fmt.Errorf("yt init: %w", err)
		}

		raw, err := dl.ExtractRaw(cmd.Context(), url)
		if err != nil {
			return fmt.Errorf("extract raw: %w", err)
		}
		meta, err := yt.ParseYTDLP(raw.JSON)
		if err != nil {
			return fmt.Errorf("parse ytdlp: %w", err)
		}

		renderLanguagesTable(meta)
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(languagesCmd)
}

// renderLanguagesTable affiche un tableau langue / formats manuels / formats auto.
func renderLanguagesTable(meta *model.Meta) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Langue", "Manuels", "Automatiques"})

	for _, lang := range meta.AvailableLanguages() {
		t.AppendRow(table.Row{
			lang,
			variantExts(meta.Subtitles[lang]),
			variantExts(meta.AutoCaptions[lang]),
		})
	}

	t.SetStyle(table.StyleLight)
	t.Render()
}

func variantExts(variants []model.TrackVariant) string {
	if len(variants) == 0 {
		return "-"
	}
	exts := make([]string, 0, len(variants))
	for _, v := range variants {
		exts = append(exts, v.Ext)
	}
	return strings.Join(exts, ", ")
}
