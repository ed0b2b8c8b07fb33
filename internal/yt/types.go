package yt

import (
	"encoding/json"
	"fmt"
)

type subtitleItem struct {
	Ext string `json:"ext"`
	URL string `json:"url"`
}

// ytdlpOutput représente la sortie JSON brute retournée par yt-dlp pour une vidéo.
//
// Subtitles et AutomaticCaptions sont des maps où :
//   - la clé (string) correspond au code langue IETF de la piste (ex. "fr", "en-US").
//   - la valeur ([]subtitleItem) liste toutes les pistes disponibles pour cette
//     langue, chaque élément portant au minimum l'extension (Ext) et l'URL.
type ytdlpOutput struct {
	ID                string                    `json:"id"`
	Title             string                    `json:"title"`
	Uploader          string                    `json:"uploader"`
	UploadDate        string                    `json:"upload_date"`
	Timestamp         int64                     `json:"timestamp"` // en Unix epoch
	Duration          float64                   `json:"duration"`  // en secondes
	Subtitles         map[string][]subtitleItem `json:"subtitles"`
	AutomaticCaptions map[string][]subtitleItem `json:"automatic_captions"`
}

// ExtractedRaw contient le JSON raw, une liste de lignes d'avertissements
type ExtractedRaw struct {
	JSON     []byte
	Warnings []string
}

// PrettyJSON retourne un json indenté
func (r *ExtractedRaw) PrettyJSON() ([]byte, error) {
	var obj any
	if err := json.Unmarshal(r.JSON, &obj); err != nil {
		return nil, err
	}
	return json.MarshalIndent(obj, "", "  ")
}

// PrintWarnings affiche les avertissements de yt-dlp
func (r *ExtractedRaw) PrintWarnings() {
	if len(r.Warnings) == 0 {
		return
	}
	fmt.Println("⚠️  Avertissements yt-dlp :")
	for _, w := range r.Warnings {
		fmt.Printf("  - %s\n", w)
	}
}

// YtDlp représente la commande yt-dlp à exécuter (nom de binaire ou chemin) + args.
type YtDlp struct {
	Name   string
	Path   string // chemin vers l'exe
	Config YtDlpConfig
}
