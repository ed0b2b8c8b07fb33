package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/patrickprogramme/capgrab/internal/assets"
	"github.com/patrickprogramme/capgrab/internal/bootstrap"
	"github.com/patrickprogramme/capgrab/pkg/model"
)

const CurrentConfigVersion = 1

// struct pour les paramètres de configuration
type Config struct {
	// Chemins
	OutputDir string `yaml:"output_dir"`

	// Organisation
	SaveInSubdir bool `yaml:"save_in_subdir"`

	// Sous-titres
	Language         string   `yaml:"language"`
	Formats          []string `yaml:"formats"`
	PreferManualSubs bool     `yaml:"prefer_manual_subs"`
	KeepRaw          bool     `yaml:"keep_raw"`

	// Sortie
	CopyToClipboard bool `yaml:"copy_to_clipboard"`

	// yt-dlp
	YtDlp struct {
		Name            string `yaml:"name"`
		Path            string `yaml:"path"`
		ShowWarnings    bool   `yaml:"show_warnings"`
		AutoUpdateCheck bool   `yaml:"auto_update_check"`

		// ResolvedPath contient le chemin effectif vers l'exécutable
		ResolvedPath string `yaml:"-"`
	} `yaml:"yt_dlp"`

	ConfigVersion int `yaml:"config_version"`

	configFilePath string
}

// Configuration par défaut (fallback si l'asset embarqué est manquant)
func defaultConfig() *Config {
	c := &Config{}

	// Chemins
	c.OutputDir = "."

	// Organisation
	c.SaveInSubdir = true

	// Sous-titres
	c.Language = "auto"
	c.Formats = []string{"txt", "json"}
	c.PreferManualSubs = true
	c.KeepRaw = false

	// Sortie
	c.CopyToClipboard = false

	// yt-dlp
	c.YtDlp.Name = "yt-dlp"
	c.YtDlp.Path = ""
	c.YtDlp.ShowWarnings = false
	c.YtDlp.AutoUpdateCheck = false

	c.ConfigVersion = CurrentConfigVersion

	return c
}

// Load lit la config; si le fichier n'existe pas, on copie l'exemple embarqué depuis internal/assets
func Load(path string) (*Config, error) {
	if path == "" {
		path = "capgrab.yaml"
	}

	// si le fichier n'existe pas -> essayer de créer à partir de l'asset embarqué
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := bootstrap.EnsureConfigPresent(path, assets.Embedded, assets.DefaultConfigAsset); err != nil {
			return nil, fmt.Errorf("échec de création du fichier de configuration par défaut : %w", err)
		}
	}

	cfg := defaultConfig()

	// lire le YAML brut et déserialiser dans cfg (les champs présents écraseront les defaults)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("lecture du fichier de configuration %s impossible : %w", path, err)
	}

	// corriger les chemins Windows avec des backslashes
	data = bytes.ReplaceAll(data, []byte(`\`), []byte(`/`))

	// On déserialise dans cfg initialisé : les champs absents conservent les valeurs par défaut.
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("analyse du fichier de configuration %s impossible : %w", path, err)
	}
	cfg.configFilePath = path

	// variables d'environnement (CAPGRAB_*) par-dessus le yaml
	cfg.applyEnvOverrides()

	cfg.normalizeConfig()

	// fichier plus ancien : les champs manquants ont pris les defaults,
	// on aligne juste le numéro de version
	if cfg.ConfigVersion < CurrentConfigVersion {
		cfg.ConfigVersion = CurrentConfigVersion
	}

	return cfg, nil
}

// FilePath retourne le chemin du fichier de configuration chargé.
func (c *Config) FilePath() string {
	return c.configFilePath
}

func (c *Config) normalizeConfig() {
	// Nettoyage des chemins
	c.OutputDir = filepath.Clean(c.OutputDir)

	// Langue : trim, défaut "auto"
	c.Language = strings.TrimSpace(c.Language)
	if c.Language == "" {
		c.Language = "auto"
	}

	// Formats : minuscules, doublons et valeurs inconnues écartés
	seen := make(map[string]bool, len(c.Formats))
	var formats []string
	for _, f := range c.Formats {
		f = strings.TrimSpace(strings.ToLower(f))
		if f == "" || seen[f] {
			continue
		}
		if _, err := model.ParseFormat(f); err != nil {
			fmt.Printf("avertissement : format inconnu %q ignoré\n", f)
			continue
		}
		seen[f] = true
		formats = append(formats, f)
	}
	if len(formats) == 0 {
		formats = []string{"txt"}
	}
	c.Formats = formats

	// centraliser la résolution/normalisation de yt-dlp
	c.ResolveYtDlpPath()
}

// ResolveYtDlpPath normalise le nom et résout le chemin complet vers l'exécutable.
// Appeler après avoir modifié cfg.YtDlp.Name ou cfg.YtDlp.Path.
func (c *Config) ResolveYtDlpPath() {
	if c == nil {
		return
	}

	// Normaliser le nom et ajouter .exe sur Windows si nécessaire
	c.YtDlp.Name = strings.TrimSpace(c.YtDlp.Name)
	if c.YtDlp.Name == "" {
		c.YtDlp.Name = "yt-dlp"
	}

	// ajoute .exe si nécessaire
	if runtime.GOOS == "windows" && !strings.HasSuffix(strings.ToLower(c.YtDlp.Name), ".exe") {
		c.YtDlp.Name = c.YtDlp.Name + ".exe"
	}

	// Résolution du chemin
	// si cfg.Path est vide -> "./<exe>"
	exeName := c.YtDlp.Name
	cfgPath := strings.TrimSpace(c.YtDlp.Path)
	if cfgPath == "" {
		relativePath := "./" + exeName
		c.YtDlp.ResolvedPath = relativePath
		return
	}
	cleanPath := filepath.Clean(cfgPath)

	// si le chemin fourni finit déjà par l'exécutable -> on l'utilise
	if filepath.Base(cleanPath) == exeName {
		c.YtDlp.ResolvedPath = cleanPath
	} else {
		// sinon on considère cfgPath comme un répertoire et on y joint l'exe
		c.YtDlp.ResolvedPath = filepath.Join(cleanPath, exeName)
	}
}
