package captions

import (
	"errors"
	"html"
	"regexp"
	"strings"

	"github.com/patrickprogramme/capgrab/pkg/model"
)

// ErrEmptyFile : aucun bloc exploitable dans le fichier téléchargé.
var ErrEmptyFile = errors.New("caption file is empty or could not be parsed")

var (
	// ligne d'horodatage : 00:00:00.000 --> 00:00:05.000 (virgule acceptée, SRT)
	timestampLine = regexp.MustCompile(`^(\d{2}:\d{2}:\d{2}[.,]\d{3})\s*-->\s*(\d{2}:\d{2}:\d{2}[.,]\d{3})`)
	// identifiant de cue WebVTT : ligne composée uniquement de 1 à 6 chiffres
	cueIdentifier = regexp.MustCompile(`^\d{1,6}$`)
	// numéro de séquence SRT pour le sniffing : purement numérique, sans
	// limite de longueur (les gros fichiers dépassent 6 chiffres)
	sequenceNumber = regexp.MustCompile(`^\d+$`)
	// balises inline (<c>, <00:00:01.000>, <i>...) à retirer du texte
	inlineTag = regexp.MustCompile(`<[^>]+>`)
)

// DetectFormat classe un contenu brut en VTT ou SRT.
// - en-tête "webvtt" -> vtt
// - première ligne purement numérique (numéro de séquence) -> srt
// - sinon vtt par défaut (format le plus courant côté Youtube)
func DetectFormat(content string) model.Format {
	trimmed := strings.TrimSpace(content)
	if strings.HasPrefix(strings.ToLower(trimmed), "webvtt") {
		return model.FormatVTT
	}
	firstLine := strings.TrimSpace(strings.SplitN(content, "\n", 2)[0])
	if firstLine != "" && sequenceNumber.MatchString(firstLine) {
		return model.FormatSRT
	}
	return model.FormatVTT
}

// Parse aiguille vers le parseur correspondant au format.
func Parse(content string, format model.Format) []model.Caption {
	if format == model.FormatSRT {
		return ParseSRT(content)
	}
	return ParseVTT(content)
}

// cleanCueText décode les entités HTML puis retire les balises inline.
// C'est la frontière de validation du texte : après ce point un Caption ne
// contient plus ni balise ni entité.
func cleanCueText(text string) string {
	text = html.UnescapeString(text)
	text = inlineTag.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// ParseVTT parcourt le contenu WebVTT ligne à ligne et retourne les
// enregistrements bruts dans l'ordre du fichier.
//
// Structure WebVTT :
//   - identifiant de cue optionnel (ligne seule, sans '-->')
//   - ligne d'horodatage (obligatoire)
//   - lignes de texte
//   - ligne vide de séparation
//
// Les identifiants de cue (souvent de simples numéros) peuvent apparaître
// entre le texte d'une cue et l'horodatage suivant : ils ne doivent jamais
// finir dans le texte.
func ParseVTT(content string) []model.Caption {
	var out []model.Caption
	var current *model.Caption

	finalize := func() {
		if current == nil {
			return
		}
		if text := cleanCueText(current.Text); text != "" {
			current.Text = text
			out = append(out, *current)
		}
		current = nil
	}

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)

		// lignes vides, en-tête et commentaires
		if line == "" || strings.HasPrefix(line, "WEBVTT") || strings.HasPrefix(line, "NOTE") {
			continue
		}

		if m := timestampLine.FindStringSubmatch(line); m != nil {
			finalize()
			current = &model.Caption{
				Start: ToVTTTimestamp(m[1]),
				End:   ToVTTTimestamp(m[2]),
			}
			continue
		}

		if current == nil {
			// hors cue : identifiant de cue ou ligne orpheline, on ignore
			continue
		}
		if cueIdentifier.MatchString(line) {
			// identifiant de la cue suivante, pas du texte
			continue
		}
		if current.Text != "" {
			current.Text += " "
		}
		current.Text += line
	}

	finalize()
	return out
}

// ParseSRT découpe le contenu en blocs séparés par une ligne vide.
// Dans chaque bloc : ligne 0 = numéro de séquence (ignoré), ligne 1 =
// horodatage (bloc entier sauté si elle ne matche pas), lignes 2+ = texte.
func ParseSRT(content string) []model.Caption {
	var out []model.Caption

	content = strings.ReplaceAll(content, "\r\n", "\n")
	for _, block := range strings.Split(strings.TrimSpace(content), "\n\n") {
		lines := strings.Split(strings.TrimSpace(block), "\n")
		if len(lines) < 2 {
			continue
		}
		m := timestampLine.FindStringSubmatch(strings.TrimSpace(lines[1]))
		if m == nil {
			continue
		}
		var text string
		if len(lines) > 2 {
			text = strings.Join(lines[2:], " ")
		}
		text = cleanCueText(text)
		if text == "" {
			continue
		}
		out = append(out, model.Caption{
			Start: ToVTTTimestamp(m[1]),
			End:   ToVTTTimestamp(m[2]),
			Text:  text,
		})
	}

	return out
}
