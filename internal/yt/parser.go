package yt

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/patrickprogramme/capgrab/pkg/model"
)

// ParseYTDLP transforme le JSON brut en struct Meta.
// Contrairement aux anciens outils qui filtraient sur un format unique, on
// conserve ici TOUTES les pistes de chaque langue : la résolution choisit
// ensuite l'encodage parseable (voir resolve.go).
func ParseYTDLP(raw []byte) (*model.Meta, error) {
	var y ytdlpOutput
	if err := json.Unmarshal(raw, &y); err != nil {
		return nil, fmt.Errorf("unmarshal ytdlp output: %w", err)
	}

	meta := &model.Meta{
		ID:       y.ID,
		Title:    y.Title,
		Uploader: y.Uploader,
		Duration: model.Seconds(int64(math.Round(y.Duration))),
	}

	// upload_date: try YYYYMMDD puis timestamp (fallback)
	if y.UploadDate != "" {
		if t, err := time.Parse("20060102", y.UploadDate); err == nil {
			meta.UploadDate = t
		}
	}
	if meta.UploadDate.IsZero() && y.Timestamp != 0 {
		meta.UploadDate = time.Unix(y.Timestamp, 0).UTC()
	}

	meta.Subtitles = trackMap(y.Subtitles)
	meta.AutoCaptions = trackMap(y.AutomaticCaptions)

	return meta, nil
}

// trackMap recopie une map yt-dlp en ignorant les pistes sans URL.
func trackMap(in map[string][]subtitleItem) map[string][]model.TrackVariant {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string][]model.TrackVariant, len(in))
	for lang, items := range in {
		var variants []model.TrackVariant
		for _, it := range items {
			if it.URL == "" {
				continue
			}
			variants = append(variants, model.TrackVariant{Ext: it.Ext, URL: it.URL})
		}
		if len(variants) > 0 {
			out[lang] = variants
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
