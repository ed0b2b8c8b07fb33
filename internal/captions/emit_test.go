package captions

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/patrickprogramme/capgrab/pkg/model"
)

var sample = []model.Caption{
	{Start: "00:00:00.000", End: "00:00:02.500", Text: "Hello world"},
	{Start: "00:00:02.500", End: "00:00:05.000", Text: "Second utterance"},
}

func TestToSRT(t *testing.T) {
	want := "1\n" +
		"00:00:00,000 --> 00:00:02,500\n" +
		"Hello world\n" +
		"\n" +
		"2\n" +
		"00:00:02,500 --> 00:00:05,000\n" +
		"Second utterance\n"
	if got := ToSRT(sample); got != want {
		t.Fatalf("ToSRT =\n%q\nwant\n%q", got, want)
	}
}

func TestToVTT(t *testing.T) {
	want := "WEBVTT\n" +
		"\n" +
		"00:00:00.000 --> 00:00:02.500\n" +
		"Hello world\n" +
		"\n" +
		"00:00:02.500 --> 00:00:05.000\n" +
		"Second utterance\n"
	if got := ToVTT(sample); got != want {
		t.Fatalf("ToVTT =\n%q\nwant\n%q", got, want)
	}
}

func TestToPlainText(t *testing.T) {
	want := "Hello world\nSecond utterance"
	if got := ToPlainText(sample); got != want {
		t.Fatalf("ToPlainText = %q; want %q", got, want)
	}
}

func TestToDisplayText(t *testing.T) {
	got := ToDisplayText(sample)
	if !strings.Contains(got, "[00:00:00.000 --> 00:00:02.500]\nHello world\n") {
		t.Fatalf("display text missing block:\n%s", got)
	}
}

func TestToJSON(t *testing.T) {
	doc := model.Document{
		Source:   model.SubSourceAutomatic,
		Language: "fr",
		Captions: []model.Caption{
			{Start: "00:00:00.000", End: "00:00:01.000", Text: "café & <thé>"},
		},
	}

	out, err := ToJSON(doc)
	if err != nil {
		t.Fatalf("ToJSON error: %v", err)
	}

	// non-ASCII et chevrons doivent rester littéraux
	if !strings.Contains(out, "café") {
		t.Errorf("non-ASCII escaped in output:\n%s", out)
	}
	if !strings.Contains(out, "<thé>") || strings.Contains(out, `\u003c`) {
		t.Errorf("angle brackets escaped in output:\n%s", out)
	}

	// clés dans un ordre stable
	var decoded struct {
		Source       string          `json:"source"`
		Language     string          `json:"language"`
		CaptionCount int             `json:"caption_count"`
		Captions     []model.Caption `json:"captions"`
	}
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, out)
	}
	if decoded.CaptionCount != len(decoded.Captions) {
		t.Errorf("caption_count = %d; want %d", decoded.CaptionCount, len(decoded.Captions))
	}
	if decoded.Source != "auto" || decoded.Language != "fr" {
		t.Errorf("metadata lost: %#v", decoded)
	}
}

func TestToJSONEmptyCaptions(t *testing.T) {
	out, err := ToJSON(model.Document{Source: model.SubSourceManual, Language: "en"})
	if err != nil {
		t.Fatalf("ToJSON error: %v", err)
	}
	if !strings.Contains(out, `"caption_count": 0`) {
		t.Errorf("caption_count should be 0:\n%s", out)
	}
	if !strings.Contains(out, `"captions": []`) {
		t.Errorf("captions should be an empty array, not null:\n%s", out)
	}
}

func TestFormatRoundTrip(t *testing.T) {
	// ToVTT puis ParseVTT (entrée déjà propre, reconstruction inutile) doit
	// redonner exactement les mêmes triplets
	got := ParseVTT(ToVTT(sample))
	if len(got) != len(sample) {
		t.Fatalf("round trip changed count: got %d, want %d", len(got), len(sample))
	}
	for i := range sample {
		if got[i] != sample[i] {
			t.Errorf("round trip %d = %#v; want %#v", i, got[i], sample[i])
		}
	}
}

func TestSRTRoundTrip(t *testing.T) {
	// ToSRT puis ParseSRT : mêmes triplets modulo normalisation ","/"."
	got := ParseSRT(ToSRT(sample))
	if len(got) != len(sample) {
		t.Fatalf("round trip changed count: got %d, want %d", len(got), len(sample))
	}
	for i := range sample {
		if got[i] != sample[i] {
			t.Errorf("round trip %d = %#v; want %#v", i, got[i], sample[i])
		}
	}
}

func TestEmitDispatch(t *testing.T) {
	doc := model.Document{Source: model.SubSourceManual, Language: "en", Captions: sample}
	for _, f := range []model.Format{model.FormatSRT, model.FormatVTT, model.FormatTXT, model.FormatJSON} {
		out, err := Emit(doc, f)
		if err != nil {
			t.Fatalf("Emit(%s) error: %v", f, err)
		}
		if out == "" {
			t.Fatalf("Emit(%s) returned empty output", f)
		}
	}
	if _, err := Emit(doc, model.Format("bogus")); err == nil {
		t.Fatal("Emit with unknown format should fail")
	}
}
