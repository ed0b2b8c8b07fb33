package captions

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/patrickprogramme/capgrab/pkg/model"
)

// emit.go : rendu d'une séquence d'énoncés vers les formats d'export.
// Contrat d'aller-retour : parse(ToVTT(captions)) redonne les mêmes triplets
// (start, end, text), modulo la normalisation du séparateur ","/".".

// ToSRT rend le document au format SubRip : numéro de séquence 1-based,
// horodatage avec virgule, texte, ligne vide.
func ToSRT(captions []model.Caption) string {
	var lines []string
	for i, c := range captions {
		lines = append(lines,
			strconv.Itoa(i+1),
			fmt.Sprintf("%s --> %s", ToSRTTimestamp(c.Start), ToSRTTimestamp(c.End)),
			c.Text,
			"",
		)
	}
	return strings.Join(lines, "\n")
}

// ToVTT rend le document au format WebVTT standard.
func ToVTT(captions []model.Caption) string {
	lines := []string{"WEBVTT", ""}
	for _, c := range captions {
		lines = append(lines,
			fmt.Sprintf("%s --> %s", ToVTTTimestamp(c.Start), ToVTTTimestamp(c.End)),
			c.Text,
			"",
		)
	}
	return strings.Join(lines, "\n")
}

// ToPlainText : uniquement les textes, un énoncé par ligne.
func ToPlainText(captions []model.Caption) string {
	texts := make([]string, 0, len(captions))
	for _, c := range captions {
		texts = append(texts, c.Text)
	}
	return strings.Join(texts, "\n")
}

// ToDisplayText : forme lisible pour le terminal, un bloc par énoncé :
//
//	[00:00:00.000 --> 00:00:05.000]
//	Caption text here
func ToDisplayText(captions []model.Caption) string {
	var lines []string
	for _, c := range captions {
		lines = append(lines,
			fmt.Sprintf("[%s --> %s]", c.Start, c.End),
			c.Text,
			"",
		)
	}
	return strings.Join(lines, "\n")
}

// jsonDocument fixe l'ordre des clés de l'export JSON.
type jsonDocument struct {
	Source       model.SubSource `json:"source"`
	Language     string          `json:"language"`
	CaptionCount int             `json:"caption_count"`
	Captions     []model.Caption `json:"captions"`
}

// ToJSON sérialise le document avec caption_count == len(captions).
// SetEscapeHTML(false) : les caractères non-ASCII et les chevrons restent
// littéraux, pas d'échappement numérique.
func ToJSON(doc model.Document) (string, error) {
	captions := doc.Captions
	if captions == nil {
		captions = []model.Caption{}
	}
	payload := jsonDocument{
		Source:       doc.Source,
		Language:     doc.Language,
		CaptionCount: len(captions),
		Captions:     captions,
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		return "", fmt.Errorf("encode captions json: %w", err)
	}
	return buf.String(), nil
}

// Emit rend le document dans le format demandé.
func Emit(doc model.Document, format model.Format) (string, error) {
	switch format {
	case model.FormatSRT:
		return ToSRT(doc.Captions), nil
	case model.FormatVTT:
		return ToVTT(doc.Captions), nil
	case model.FormatTXT:
		return ToPlainText(doc.Captions), nil
	case model.FormatJSON:
		return ToJSON(doc)
	default:
		return "", fmt.Errorf("format d'export inconnu: %s", format)
	}
}
