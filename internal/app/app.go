package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/patrickprogramme/capgrab/internal/clipboard"
	"github.com/patrickprogramme/capgrab/internal/config"
	"github.com/patrickprogramme/capgrab/internal/fsutil"
	"github.com/patrickprogramme/capgrab/internal/ui"
	"github.com/patrickprogramme/capgrab/internal/yt"
)

const (
	defaultUpdateTimeout  = 15 * time.Second
	defaultExtractTimeout = 2 * time.Minute
	dirPerm               = 0o755
	filePerm              = 0o644
)

// CLIOptions contient les informations venant des flags de la ligne de commande
type CLIOptions struct {
	ConfigPath string
	URL        string
	Language   string
	Formats    []string
	OutputDir  string
	Copy       bool
	KeepRaw    bool
	YtDlpPath  string
}

// App orchestre les différentes dépendances (UI, YtDlp, FS...)
type App struct {
	cfg      *config.Config
	ui       ui.Interface
	opts     *CLIOptions
	ytClient yt.Interface // client yt-dlp initialisé dans Run
}

// New construit l'application en initialisant les dépendances par défaut.
// Pour les tests, on préférera construire App en injectant des implémentations mock.
func New(cfg *config.Config, uiClient ui.Interface, opts *CLIOptions) *App {
	return &App{
		cfg:  cfg,
		ui:   uiClient,
		opts: opts,
	}
}

// Run exécute le flux principal : URL -> métadonnées -> résolution de la piste
// -> téléchargement -> parse + reconstruction -> exports.
func (a *App) Run(ctx context.Context) error {
	a.applyOptions()

	// Récupération de l'URL : priorité flag > clipboard > prompt
	url := a.opts.URL
	if url == "" {
		u, err := a.ui.GetYtURL(ctx)
		if err != nil {
			return fmt.Errorf("get url: %w", err)
		}
		url = u
	}
	if !yt.IsYouTubeURL(url) {
		return fmt.Errorf("URL Youtube invalide : %s", url)
	}

	// Init yt-dlp (CheckBinary + version)
	dl, version, err := yt.InitYtDlp(ctx, a.cfg)
	if err != nil {
		return fmt.Errorf("yt init: %w", err)
	}
	a.ytClient = dl

	// Update check (optionnel)
	if a.cfg.YtDlp.AutoUpdateCheck {
		if err := a.YtDlpUpdateCheck(ctx, defaultUpdateTimeout, version); err != nil {
			// non fatal, on continue sans la vérification
			a.ui.PrintError(ctx, err.Error())
		}
	}

	// Extraction des métadonnées
	exCtx, exCancel := context.WithTimeout(ctx, defaultExtractTimeout)
	defer exCancel()

	raw, err := a.ytClient.ExtractRaw(exCtx, url)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return fmt.Errorf("opération annulée")
		}
		return fmt.Errorf("extract raw: %w", err)
	}
	raw.PrintWarnings()

	// parse métadonnées
	meta, err := yt.ParseYTDLP(raw.JSON)
	if err != nil {
		return fmt.Errorf("parse ytdlp: %w", err)
	}
	a.ui.PrintInfo(ctx, meta.Pretty())

	// résolution de la piste ; si la langue demandée n'existe pas on propose
	// la liste des langues disponibles
	track, err := yt.ResolveTrack(meta, a.cfg.Language, a.cfg.PreferManualSubs)
	if err != nil {
		var lerr *yt.LanguageNotAvailableError
		if !errors.As(err, &lerr) {
			return err
		}
		a.ui.PrintError(ctx, lerr.Error())
		lang, cerr := a.ui.ChooseLanguage(ctx, lerr.Available)
		if cerr != nil {
			return fmt.Errorf("choose language: %w", cerr)
		}
		track, err = yt.ResolveTrack(meta, lang, a.cfg.PreferManualSubs)
		if err != nil {
			return err
		}
	}
	a.ui.PrintInfo(ctx, fmt.Sprintf("Piste retenue : %s", track))

	// préparation dossier de sortie
	outDir := a.cfg.OutputDir
	if a.cfg.SaveInSubdir {
		outDir = filepath.Join(outDir, fsutil.SanitizeFilename(meta.Title))
	}
	if err := os.MkdirAll(outDir, dirPerm); err != nil {
		return fmt.Errorf("create out dir: %w", err)
	}

	// téléchargement + parse + reconstruction
	doc, rawTrack, err := BuildDocument(ctx, track, meta)
	if err != nil {
		return err
	}

	if a.cfg.KeepRaw {
		rawPath := filepath.Join(outDir, "raw_"+track.Lang+track.Format.Extension())
		if err := fsutil.WriteFileAtomic(rawPath, rawTrack, filePerm); err != nil {
			return fmt.Errorf("write raw track: %w", err)
		}
		// conserver aussi les métadonnées yt-dlp telles qu'extraites
		if err := SaveRawMetadata(raw, outDir); err != nil {
			return err
		}
	}

	// exports dans chaque format configuré
	written, err := SaveDocument(doc, a.cfg.Formats, outDir)
	if err != nil {
		return err
	}
	for _, p := range written {
		a.ui.PrintInfo(ctx, fmt.Sprintf("Écrit : %s", p))
	}

	// affichage de la transcription dans le terminal
	a.ui.PrintInfo(ctx, DisplayText(doc))

	// copie presse-papier (texte brut)
	if a.cfg.CopyToClipboard {
		if err := clipboard.WriteAll(PlainText(doc)); err != nil {
			a.ui.PrintError(ctx, fmt.Sprintf("warning: copie presse-papier impossible: %v", err))
		} else {
			a.ui.PrintInfo(ctx, "Transcription copiée dans le presse-papier.")
		}
	}

	a.ui.PrintInfo(ctx, fmt.Sprintf("Terminé : %d énoncés (%s, %s).",
		len(doc.Captions), doc.Language, doc.Source))
	return nil
}

// applyOptions applique les flags CLI par-dessus la configuration chargée.
func (a *App) applyOptions() {
	if a.opts == nil {
		a.opts = &CLIOptions{}
	}
	if a.opts.Language != "" {
		a.cfg.Language = a.opts.Language
	}
	if len(a.opts.Formats) > 0 {
		a.cfg.Formats = a.opts.Formats
	}
	if a.opts.OutputDir != "" {
		a.cfg.OutputDir = a.opts.OutputDir
	}
	if a.opts.Copy {
		a.cfg.CopyToClipboard = true
	}
	if a.opts.KeepRaw {
		a.cfg.KeepRaw = true
	}
	if a.opts.YtDlpPath != "" {
		a.cfg.YtDlp.Path = a.opts.YtDlpPath
	}
	// re-normaliser après les overrides (formats, chemin yt-dlp)
	a.cfg.ResolveYtDlpPath()
}
