package model

import "fmt"

// SubSource représente la provenance d'une piste de sous-titres.
// automatic = généré automatiquement par Youtube (ASR)
// manual = fourni par l'auteur de la vidéo
type SubSource string

const (
	SubSourceUnknown   SubSource = "unknown"
	SubSourceAutomatic SubSource = "auto"
	SubSourceManual    SubSource = "manual"
)

func (s SubSource) String() string {
	switch s {
	case SubSourceAutomatic:
		return "auto captions"
	case SubSourceManual:
		return "manual subtitles"
	default:
		return "unknown subtitles"
	}
}

// Caption est un enregistrement horodaté : un bloc de texte entre deux
// timestamps canoniques "HH:MM:SS.mmm" (séparateur millisecondes : point,
// quel que soit le format source). Un Caption valide porte toujours ses
// trois champs ; la validation se fait à la frontière du parseur.
type Caption struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Text  string `json:"text"`
}

// TrackVariant est un encodage disponible d'une piste pour une langue donnée,
// tel que listé par yt-dlp (une langue expose souvent plusieurs formats :
// vtt, srt, json3, srv1...).
type TrackVariant struct {
	Ext string `json:"ext"`
	URL string `json:"url"`
}

// CaptionTrack décrit la piste retenue pour un téléchargement : résolue une
// fois par requête, jamais conservée au-delà.
type CaptionTrack struct {
	Lang   string    `json:"lang"`
	Format Format    `json:"format,omitempty"`
	URL    string    `json:"url,omitempty"`
	Source SubSource `json:"source,omitempty"`
}

func (t CaptionTrack) String() string {
	return fmt.Sprintf("CaptionTrack(lang=%s, format=%s, source=%s)", t.Lang, t.Format, t.Source)
}

// Document est le résultat d'un téléchargement : la séquence d'énoncés
// reconstruits plus les métadonnées de provenance. Immuable une fois produit ;
// base de tous les exports.
type Document struct {
	Source             SubSource
	Language           string
	Captions           []Caption
	AvailableLanguages []string
}
