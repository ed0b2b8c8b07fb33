package captions

import (
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/patrickprogramme/capgrab/pkg/model"
)

// reconstruct.go : réconciliation des captions automatiques.
//
// L'ASR de Youtube n'émet pas des cues disjointes : le même énoncé est
// renvoyé plusieurs fois, d'abord comme hypothèse partielle puis enrichi de
// nouveaux mots, et la fenêtre de transcription glisse (les premiers mots
// disparaissent pendant que d'autres arrivent en queue). On réduit ce flux en
// une séquence d'énoncés complets, non redondants, avec des bornes correctes.

// Reconstructor réduit une séquence brute d'enregistrements en énoncés
// finalisés. Interface à but unique : la stratégie est substituable sans
// toucher au parseur.
type Reconstructor interface {
	Reconstruct(records []model.Caption) ([]model.Caption, error)
}

// minWindowOverlap : nombre minimal de mots communs pour considérer deux
// textes comme une continuation par fenêtre glissante. En dessous, des mots
// courants ("the", "a") provoqueraient de fausses fusions.
const minWindowOverlap = 3

// marqueurs de locuteur ">>" répétés, éventuellement suivis d'espaces
var speakerMarker = regexp.MustCompile(`(?:>>\s*)+`)

// SlidingWindowReconstructor est la stratégie canonique : un unique buffer
// porté de gauche à droite, fusionnant hypothèses incrémentales et fenêtres
// glissantes.
type SlidingWindowReconstructor struct{}

// Normalize prépare les enregistrements bruts : marqueurs de locuteur
// retirés, espaces internes réduits, enregistrements vides ou aux timestamps
// illisibles abandonnés. C'est aussi la séquence de repli quand la
// reconstruction échoue.
func Normalize(records []model.Caption) []model.Caption {
	out := make([]model.Caption, 0, len(records))
	for _, rec := range records {
		text := speakerMarker.ReplaceAllString(rec.Text, "")
		text = strings.Join(strings.Fields(text), " ")
		if text == "" {
			continue
		}
		// valider les deux bornes ; un enregistrement illisible est abandonné,
		// pas propagé
		if _, err := ParseTimestamp(rec.Start); err != nil {
			continue
		}
		if _, err := ParseTimestamp(rec.End); err != nil {
			continue
		}
		out = append(out, model.Caption{Start: rec.Start, End: rec.End, Text: text})
	}
	return out
}

// Reconstruct applique la fusion séquentielle. Toute panique interne est
// convertie en erreur : la reconstruction est un nettoyage best-effort,
// jamais un chemin critique.
func (SlidingWindowReconstructor) Reconstruct(records []model.Caption) (out []model.Caption, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = fmt.Errorf("reconstruct captions: %v", r)
		}
	}()

	norm := Normalize(records)
	if len(norm) == 0 {
		return nil, nil
	}

	buffer := norm[0]
	for _, next := range norm[1:] {
		if refines(&buffer, next) {
			continue
		}
		// l'énoncé du buffer est complet ; next ouvre le suivant
		out = append(out, buffer)
		buffer = next
	}
	out = append(out, buffer)
	return out, nil
}

// refines teste si next raffine l'énoncé du buffer (continuation par fenêtre
// glissante ou croissance par préfixe). Si oui, le buffer adopte le texte de
// next et étend sa borne de fin, et refines retourne true.
func refines(buffer *model.Caption, next model.Caption) bool {
	prevWords := strings.Fields(buffer.Text)
	currWords := strings.Fields(next.Text)

	// fenêtre glissante : les i derniers mots du buffer == les i premiers de
	// next. On essaie d'abord le recouvrement le plus long.
	longest := len(prevWords)
	if len(currWords) < longest {
		longest = len(currWords)
	}
	for i := longest; i >= minWindowOverlap; i-- {
		if wordsEqual(prevWords[len(prevWords)-i:], currWords[:i]) {
			buffer.Text = next.Text
			buffer.End = next.End
			return true
		}
	}

	// croissance par préfixe : hypothèse incrémentale qui ajoute des mots
	if len(next.Text) > len(buffer.Text) && strings.HasPrefix(next.Text, buffer.Text) {
		buffer.Text = next.Text
		buffer.End = next.End
		return true
	}

	return false
}

func wordsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// ReconstructOrRaw applique r et, si la reconstruction échoue, retombe sur la
// séquence normalisée pré-reconstruction en journalisant un diagnostic.
func ReconstructOrRaw(records []model.Caption, r Reconstructor) []model.Caption {
	out, err := r.Reconstruct(records)
	if err != nil {
		log.Printf("warning: reconstruction des captions échouée, séquence brute conservée: %v", err)
		return Normalize(records)
	}
	return out
}
