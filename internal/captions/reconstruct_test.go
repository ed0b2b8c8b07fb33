package captions

import (
	"errors"
	"testing"

	"github.com/patrickprogramme/capgrab/pkg/model"
)

func cap3(start, end, text string) model.Caption {
	return model.Caption{Start: start, End: end, Text: text}
}

func reconstruct(t *testing.T, records []model.Caption) []model.Caption {
	t.Helper()
	out, err := SlidingWindowReconstructor{}.Reconstruct(records)
	if err != nil {
		t.Fatalf("Reconstruct error: %v", err)
	}
	return out
}

func TestReconstructPrefixGrowth(t *testing.T) {
	// hypothèse incrémentale : "Hello" puis "Hello world" -> un seul énoncé
	// qui couvre les deux intervalles
	in := []model.Caption{
		cap3("00:00:00.000", "00:00:01.000", "Hello"),
		cap3("00:00:01.000", "00:00:02.000", "Hello world"),
	}
	got := reconstruct(t, in)
	if len(got) != 1 {
		t.Fatalf("got %d utterances, want 1: %#v", len(got), got)
	}
	want := cap3("00:00:00.000", "00:00:02.000", "Hello world")
	if got[0] != want {
		t.Fatalf("utterance = %#v; want %#v", got[0], want)
	}
}

func TestReconstructSlidingWindow(t *testing.T) {
	// fenêtre glissante : recouvrement de 3 mots ("B C D"), le texte le plus
	// récent supplante le buffer et la fin est étendue
	in := []model.Caption{
		cap3("00:00:00.000", "00:00:02.000", "A B C D"),
		cap3("00:00:01.500", "00:00:03.500", "B C D E"),
	}
	got := reconstruct(t, in)
	if len(got) != 1 {
		t.Fatalf("got %d utterances, want 1: %#v", len(got), got)
	}
	want := cap3("00:00:00.000", "00:00:03.500", "B C D E")
	if got[0] != want {
		t.Fatalf("utterance = %#v; want %#v", got[0], want)
	}
}

func TestReconstructNoFalseMergeBelowThreshold(t *testing.T) {
	// un seul mot commun ("the") : sous le seuil de 3, pas de fusion
	in := []model.Caption{
		cap3("00:00:00.000", "00:00:01.000", "the cat"),
		cap3("00:00:01.000", "00:00:02.000", "the dog"),
	}
	got := reconstruct(t, in)
	if len(got) != 2 {
		t.Fatalf("got %d utterances, want 2: %#v", len(got), got)
	}
	if got[0].Text != "the cat" || got[1].Text != "the dog" {
		t.Fatalf("unexpected merge: %#v", got)
	}
}

func TestReconstructExactDuplicate(t *testing.T) {
	// duplicata exact (recouvrement = longueur totale, >= 3 mots) : un seul
	// énoncé, fin étendue au second intervalle
	in := []model.Caption{
		cap3("00:00:00.000", "00:00:01.000", "never gonna give"),
		cap3("00:00:01.000", "00:00:02.000", "never gonna give"),
	}
	got := reconstruct(t, in)
	if len(got) != 1 {
		t.Fatalf("got %d utterances, want 1: %#v", len(got), got)
	}
	if got[0].End != "00:00:02.000" {
		t.Fatalf("end not extended: %#v", got[0])
	}
}

func TestReconstructLongestOverlapFirst(t *testing.T) {
	// le recouvrement le plus long doit gagner : ici le texte entier (4 mots)
	// recouvre, pas seulement une sous-fenêtre de 3
	in := []model.Caption{
		cap3("00:00:00.000", "00:00:02.000", "a b c d"),
		cap3("00:00:01.000", "00:00:04.000", "a b c d e f"),
	}
	got := reconstruct(t, in)
	if len(got) != 1 {
		t.Fatalf("got %d utterances, want 1: %#v", len(got), got)
	}
	if got[0].Text != "a b c d e f" {
		t.Fatalf("text = %q; want %q", got[0].Text, "a b c d e f")
	}
}

func TestReconstructUnrelatedSequence(t *testing.T) {
	in := []model.Caption{
		cap3("00:00:00.000", "00:00:01.000", "first complete utterance"),
		cap3("00:00:01.000", "00:00:02.000", "a totally different one"),
		cap3("00:00:02.000", "00:00:03.000", "and a third"),
	}
	got := reconstruct(t, in)
	if len(got) != 3 {
		t.Fatalf("got %d utterances, want 3: %#v", len(got), got)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   model.Caption
		want string // "" = enregistrement abandonné
	}{
		{"speaker markers stripped", cap3("00:00:00.000", "00:00:01.000", ">> >> Hello there"), "Hello there"},
		{"whitespace collapsed", cap3("00:00:00.000", "00:00:01.000", "  too   many\tspaces "), "too many spaces"},
		{"empty after strip dropped", cap3("00:00:00.000", "00:00:01.000", ">> >>"), ""},
		{"malformed start dropped", cap3("1:2", "00:00:01.000", "text"), ""},
		{"malformed end dropped", cap3("00:00:00.000", "bad", "text"), ""},
		{"missing text dropped", cap3("00:00:00.000", "00:00:01.000", ""), ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize([]model.Caption{tc.in})
			if tc.want == "" {
				if len(got) != 0 {
					t.Fatalf("expected record dropped, got %#v", got)
				}
				return
			}
			if len(got) != 1 || got[0].Text != tc.want {
				t.Fatalf("Normalize = %#v; want text %q", got, tc.want)
			}
		})
	}
}

// failingReconstructor simule une stratégie défaillante pour vérifier la
// frontière de repli.
type failingReconstructor struct{}

func (failingReconstructor) Reconstruct([]model.Caption) ([]model.Caption, error) {
	return nil, errors.New("boom")
}

func TestReconstructOrRawFallsBack(t *testing.T) {
	in := []model.Caption{
		cap3("00:00:00.000", "00:00:01.000", ">> Hello"),
		cap3("00:00:01.000", "00:00:02.000", "Hello world"),
	}

	got := ReconstructOrRaw(in, failingReconstructor{})
	// en cas d'échec on doit retrouver la séquence normalisée, non fusionnée
	if len(got) != 2 {
		t.Fatalf("fallback should keep normalized records, got %#v", got)
	}
	if got[0].Text != "Hello" {
		t.Fatalf("fallback records not normalized: %#v", got[0])
	}
}

func TestReconstructOrRawNominal(t *testing.T) {
	in := []model.Caption{
		cap3("00:00:00.000", "00:00:01.000", "Hello"),
		cap3("00:00:01.000", "00:00:02.000", "Hello world"),
	}
	got := ReconstructOrRaw(in, SlidingWindowReconstructor{})
	if len(got) != 1 || got[0].Text != "Hello world" {
		t.Fatalf("nominal path should reconstruct, got %#v", got)
	}
}

func TestReconstructEmpty(t *testing.T) {
	if got := reconstruct(t, nil); len(got) != 0 {
		t.Fatalf("expected empty output, got %#v", got)
	}
}
