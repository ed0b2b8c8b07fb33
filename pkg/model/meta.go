package model

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Meta regroupe les métadonnées extraites d'une vidéo YouTube.
// Subtitles et AutoCaptions conservent la forme native de yt-dlp :
// code langue IETF -> liste des encodages disponibles pour cette langue.
type Meta struct {
	ID           string                    `json:"id"`
	Title        string                    `json:"title"`
	Uploader     string                    `json:"uploader,omitempty"`
	UploadDate   time.Time                 `json:"upload_date,omitempty"`
	Duration     Seconds                   `json:"duration,omitempty"`
	Subtitles    map[string][]TrackVariant `json:"subtitles,omitempty"`
	AutoCaptions map[string][]TrackVariant `json:"automatic_captions,omitempty"`
}

func (m Meta) HasManualSubs() bool {
	return len(m.Subtitles) != 0
}

func (m Meta) HasAutoCaptions() bool {
	return len(m.AutoCaptions) != 0
}

// AvailableLanguages retourne l'union triée des langues présentes dans les
// pistes manuelles et automatiques. C'est cette liste qui est présentée à
// l'utilisateur quand la langue demandée est absente.
func (m Meta) AvailableLanguages() []string {
	seen := make(map[string]struct{}, len(m.Subtitles)+len(m.AutoCaptions))
	for lang := range m.Subtitles {
		seen[lang] = struct{}{}
	}
	for lang := range m.AutoCaptions {
		seen[lang] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for lang := range seen {
		out = append(out, lang)
	}
	sort.Strings(out)
	return out
}

func (m Meta) String() string {
	return fmt.Sprintf("Meta[ID=%s, Title=%q, Uploader=%s, Date=%s, Langs=%d]",
		m.ID, m.Title, m.Uploader, m.UploadDate.Format("2006-01-02"),
		len(m.AvailableLanguages()))
}

// Pretty retourne une fiche multi-lignes simple avec les langues disponibles
// par source, telles qu'elles apparaissent dans les maps yt-dlp.
func (m Meta) Pretty() string {
	dateStr := "<unknown>"
	if !m.UploadDate.IsZero() {
		dateStr = m.UploadDate.Format("2006-01-02")
	}

	langsFrom := func(tracks map[string][]TrackVariant) string {
		if len(tracks) == 0 {
			return "(aucun)"
		}
		langs := make([]string, 0, len(tracks))
		for lang := range tracks {
			langs = append(langs, lang)
		}
		sort.Strings(langs)
		return strings.Join(langs, ", ")
	}

	return fmt.Sprintf(
		"Meta:\n"+
			"  ID           : %s\n"+
			"  Title        : %q\n"+
			"  Uploader     : %s\n"+
			"  Date         : %s\n"+
			"  Duration     : %s\n"+
			"  ManualSubs   : %s\n"+
			"  AutoCaptions : %s\n",
		m.ID,
		m.Title,
		m.Uploader,
		dateStr,
		m.Duration.TimestampHHMMSS(),
		langsFrom(m.Subtitles),
		langsFrom(m.AutoCaptions),
	)
}
