package app

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"time"

	"github.com/patrickprogramme/capgrab/internal/captions"
	"github.com/patrickprogramme/capgrab/internal/fetch"
	"github.com/patrickprogramme/capgrab/internal/fsutil"
	"github.com/patrickprogramme/capgrab/internal/updater"
	"github.com/patrickprogramme/capgrab/internal/yt"
	"github.com/patrickprogramme/capgrab/pkg/model"
)

const (
	downloadTimeout  = 15 * time.Second
	downloadMaxBytes = int64(10_000_000)
)

// DownloadTrack télécharge la piste de sous-titres résolue et retourne les octets bruts.
func DownloadTrack(ctx context.Context, track *model.CaptionTrack) ([]byte, error) {
	data, err := fetch.FetchBytesWithTimeout(ctx, track.URL, downloadTimeout, downloadMaxBytes)
	if err != nil {
		return nil, fmt.Errorf("download caption track: %w", err)
	}
	return data, nil
}

// BuildDocument télécharge la piste puis produit le document final :
// parse du balisage puis reconstruction des énoncés.
// Retourne aussi les octets bruts téléchargés pour l'option keep_raw.
func BuildDocument(ctx context.Context, track *model.CaptionTrack, meta *model.Meta) (model.Document, []byte, error) {
	var empty model.Document

	data, err := DownloadTrack(ctx, track)
	if err != nil {
		return empty, nil, err
	}
	content := string(data)

	// si l'extension annoncée n'est pas un balisage connu, on sniffe le contenu
	format := track.Format
	if !format.IsCaptionMarkup() {
		format = captions.DetectFormat(content)
	}

	records := captions.Parse(content, format)
	if len(records) == 0 {
		return empty, nil, fmt.Errorf("piste %s: %w", track.Lang, captions.ErrEmptyFile)
	}

	// fusion des fragments incrémentaux/dupliqués, repli sur la séquence
	// normalisée en cas de défaillance de la stratégie. Les pistes manuelles
	// passent aussi par la reconstruction : certaines contiennent des cues
	// répétées (paroles de chanson) qui fusionnent de la même façon.
	result := captions.ReconstructOrRaw(records, captions.SlidingWindowReconstructor{})

	doc := model.Document{
		Source:             track.Source,
		Language:           track.Lang,
		Captions:           result,
		AvailableLanguages: meta.AvailableLanguages(),
	}
	return doc, data, nil
}

// SaveDocument écrit le document dans chaque format demandé sous outDir.
// Nommage : captions_<lang>.<ext>. Retourne les chemins écrits.
func SaveDocument(doc model.Document, formats []string, outDir string) ([]string, error) {
	if len(doc.Captions) == 0 {
		return nil, fmt.Errorf("SaveDocument: aucun énoncé à sauvegarder")
	}

	var written []string
	for _, f := range formats {
		format, err := model.ParseFormat(f)
		if err != nil {
			return written, fmt.Errorf("SaveDocument: %w", err)
		}
		out, err := captions.Emit(doc, format)
		if err != nil {
			return written, fmt.Errorf("SaveDocument: %w", err)
		}
		path := filepath.Join(outDir, "captions_"+doc.Language+format.Extension())
		if werr := fsutil.WriteFileAtomic(path, []byte(out), filePerm); werr != nil {
			return written, fmt.Errorf("write %s: %w", path, werr)
		}
		written = append(written, path)
	}
	return written, nil
}

// SaveRawMetadata écrit le JSON yt-dlp indenté dans outDir sous metadata.json.
func SaveRawMetadata(raw *yt.ExtractedRaw, outDir string) error {
	pretty, err := raw.PrettyJSON()
	if err != nil {
		return fmt.Errorf("pretty metadata json: %w", err)
	}
	path := filepath.Join(outDir, "metadata.json")
	if werr := fsutil.WriteFileAtomic(path, pretty, filePerm); werr != nil {
		return fmt.Errorf("write %s: %w", path, werr)
	}
	return nil
}

// PlainText retourne la transcription texte brut du document.
func PlainText(doc model.Document) string {
	return captions.ToPlainText(doc.Captions)
}

// DisplayText retourne la forme lisible horodatée pour le terminal.
func DisplayText(doc model.Document) string {
	return captions.ToDisplayText(doc.Captions)
}

func (a *App) YtDlpUpdateCheck(ctx context.Context, timeout time.Duration, version string) error {
	uc, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	check, err := updater.CheckYtDlpUpdate(uc, version)
	if err != nil {
		return fmt.Errorf("vérification de mise à jour a échoué : %v", err)
	}

	if check.IsUpToDate {
		a.ui.PrintInfo(ctx, fmt.Sprintf("✅ yt-dlp est à jour (%s)", check.CurrentVersion))
		return nil
	}

	a.ui.PrintInfo(ctx, "⚠️ Nouvelle version de Yt-dlp disponible :")
	a.ui.PrintInfo(ctx, fmt.Sprintf("  Installée : %s", check.CurrentVersion))
	a.ui.PrintInfo(ctx, fmt.Sprintf("  Dernière  : %s", check.LatestRelease.TagName))
	a.ui.PrintInfo(ctx, "Téléchargez-la ici:")
	a.ui.PrintInfo(ctx, check.GetUpdateLink(runtime.GOOS))

	return nil
}
