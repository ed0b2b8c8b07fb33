package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/patrickprogramme/capgrab/internal/captions"
	"github.com/patrickprogramme/capgrab/internal/yt"
	"github.com/patrickprogramme/capgrab/pkg/model"
)

const autoVTT = `WEBVTT

00:00:00.000 --> 00:00:01.000
Hello

00:00:01.000 --> 00:00:02.000
Hello world
`

func serveContent(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestBuildDocumentAutoTrackReconstructs(t *testing.T) {
	srv := serveContent(t, autoVTT)

	track := &model.CaptionTrack{
		Lang:   "en",
		Format: model.FormatVTT,
		URL:    srv.URL,
		Source: model.SubSourceAutomatic,
	}
	meta := &model.Meta{AutoCaptions: map[string][]model.TrackVariant{
		"en": {{Ext: "vtt", URL: srv.URL}},
	}}

	doc, raw, err := BuildDocument(context.Background(), track, meta)
	if err != nil {
		t.Fatalf("BuildDocument error: %v", err)
	}
	// "Hello" puis "Hello world" doivent fusionner en un seul énoncé
	if len(doc.Captions) != 1 || doc.Captions[0].Text != "Hello world" {
		t.Fatalf("reconstruction attendue, got %#v", doc.Captions)
	}
	if doc.Source != model.SubSourceAutomatic || doc.Language != "en" {
		t.Errorf("provenance perdue: %#v", doc)
	}
	if string(raw) != autoVTT {
		t.Error("les octets bruts doivent être retournés tels quels")
	}
	if len(doc.AvailableLanguages) != 1 || doc.AvailableLanguages[0] != "en" {
		t.Errorf("AvailableLanguages = %v", doc.AvailableLanguages)
	}
}

func TestBuildDocumentManualTrackAlsoReconstructed(t *testing.T) {
	// les pistes manuelles passent aussi par la reconstruction : des cues
	// dupliquées/incrémentales (paroles répétées) doivent fusionner pareil
	srv := serveContent(t, autoVTT)

	track := &model.CaptionTrack{
		Lang:   "en",
		Format: model.FormatVTT,
		URL:    srv.URL,
		Source: model.SubSourceManual,
	}

	doc, _, err := BuildDocument(context.Background(), track, &model.Meta{})
	if err != nil {
		t.Fatalf("BuildDocument error: %v", err)
	}
	if len(doc.Captions) != 1 || doc.Captions[0].Text != "Hello world" {
		t.Fatalf("fusion attendue sur piste manuelle, got %#v", doc.Captions)
	}
	if doc.Captions[0].Start != "00:00:00.000" || doc.Captions[0].End != "00:00:02.000" {
		t.Fatalf("bornes non étendues: %#v", doc.Captions[0])
	}
	if doc.Source != model.SubSourceManual {
		t.Errorf("provenance perdue: %#v", doc)
	}
}

func TestBuildDocumentSniffsUnknownFormat(t *testing.T) {
	srt := "1\n00:00:00,000 --> 00:00:01,000\nHello\n"
	srv := serveContent(t, srt)

	track := &model.CaptionTrack{
		Lang:   "en",
		Format: model.Format("json3"), // extension annoncée non parseable
		URL:    srv.URL,
		Source: model.SubSourceManual,
	}

	doc, _, err := BuildDocument(context.Background(), track, &model.Meta{})
	if err != nil {
		t.Fatalf("BuildDocument error: %v", err)
	}
	if len(doc.Captions) != 1 || doc.Captions[0].Text != "Hello" {
		t.Fatalf("sniff SRT attendu, got %#v", doc.Captions)
	}
}

func TestBuildDocumentEmptyTrack(t *testing.T) {
	srv := serveContent(t, "WEBVTT\n\n")

	track := &model.CaptionTrack{
		Lang:   "en",
		Format: model.FormatVTT,
		URL:    srv.URL,
		Source: model.SubSourceAutomatic,
	}

	_, _, err := BuildDocument(context.Background(), track, &model.Meta{})
	if !errors.Is(err, captions.ErrEmptyFile) {
		t.Fatalf("expected ErrEmptyFile, got %v", err)
	}
}

func TestSaveDocument(t *testing.T) {
	dir := t.TempDir()
	doc := model.Document{
		Source:   model.SubSourceManual,
		Language: "fr",
		Captions: []model.Caption{
			{Start: "00:00:00.000", End: "00:00:01.000", Text: "Bonjour"},
		},
	}

	written, err := SaveDocument(doc, []string{"txt", "json"}, dir)
	if err != nil {
		t.Fatalf("SaveDocument error: %v", err)
	}
	if len(written) != 2 {
		t.Fatalf("written = %v", written)
	}

	txtPath := filepath.Join(dir, "captions_fr.txt")
	data, err := os.ReadFile(txtPath)
	if err != nil {
		t.Fatalf("read %s: %v", txtPath, err)
	}
	if !strings.Contains(string(data), "Bonjour") {
		t.Errorf("txt output = %q", data)
	}
	if _, err := os.Stat(filepath.Join(dir, "captions_fr.json")); err != nil {
		t.Errorf("json output missing: %v", err)
	}
}

func TestSaveRawMetadata(t *testing.T) {
	dir := t.TempDir()
	raw := &yt.ExtractedRaw{JSON: []byte(`{"id":"abc","title":"Demo"}`)}

	if err := SaveRawMetadata(raw, dir); err != nil {
		t.Fatalf("SaveRawMetadata error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "metadata.json"))
	if err != nil {
		t.Fatalf("metadata.json missing: %v", err)
	}
	// JSON indenté, contenu préservé
	if !strings.Contains(string(data), "\n  \"id\": \"abc\"") {
		t.Errorf("metadata not pretty-printed:\n%s", data)
	}
}

func TestSaveRawMetadataInvalidJSON(t *testing.T) {
	raw := &yt.ExtractedRaw{JSON: []byte("not json")}
	if err := SaveRawMetadata(raw, t.TempDir()); err == nil {
		t.Fatal("expected error for invalid metadata JSON")
	}
}

func TestSaveDocumentUnknownFormat(t *testing.T) {
	doc := model.Document{
		Language: "fr",
		Captions: []model.Caption{{Start: "00:00:00.000", End: "00:00:01.000", Text: "x"}},
	}
	if _, err := SaveDocument(doc, []string{"bogus"}, t.TempDir()); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestSaveDocumentEmpty(t *testing.T) {
	if _, err := SaveDocument(model.Document{}, []string{"txt"}, t.TempDir()); err == nil {
		t.Fatal("expected error for empty document")
	}
}
