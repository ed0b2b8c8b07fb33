package model

import "fmt"

// Seconds est un alias explicite pour représenter une durée en secondes.
type Seconds int64

// TimestampHHMMSS formate Seconds en "HH:MM:SS" (toujours 2 chiffres par composant).
// Exemple : 65 -> "00:01:05", 3661 -> "01:01:01".
func (s Seconds) TimestampHHMMSS() string {
	total := int64(s)
	h := total / 3600
	m := (total % 3600) / 60
	sec := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, sec)
}

// constantes pour les formats d'export
type Format string

const (
	FormatVTT  Format = "vtt"
	FormatSRT  Format = "srt"
	FormatTXT  Format = "txt"
	FormatJSON Format = "json"
)

// du format en chaine à la constante de type Format, return une erreur si format inconnu
func ParseFormat(s string) (Format, error) {
	switch s {
	case "vtt":
		return FormatVTT, nil
	case "srt":
		return FormatSRT, nil
	case "txt":
		return FormatTXT, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("format demandé inconnu: %s", s)
	}
}

// IsCaptionMarkup indique si le format est un format horodaté que le parseur
// sait lire (par opposition aux formats dérivés txt/json).
func (f Format) IsCaptionMarkup() bool {
	return f == FormatVTT || f == FormatSRT
}

func (f Format) Extension() string {
	return "." + string(f)
}

func (f Format) String() string {
	return string(f)
}
