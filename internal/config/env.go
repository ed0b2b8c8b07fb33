package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// LoadDotEnv charge un éventuel fichier .env dans l'environnement du process.
// Absence de fichier = cas nominal, on ignore l'erreur.
func LoadDotEnv() {
	_ = godotenv.Load()
}

// applyEnvOverrides applique les variables CAPGRAB_* par-dessus les valeurs yaml.
// Utile en CI ou pour tester une config sans toucher au fichier.
func (c *Config) applyEnvOverrides() {
	if v, ok := os.LookupEnv("CAPGRAB_OUTPUT_DIR"); ok && v != "" {
		c.OutputDir = v
	}
	if v, ok := os.LookupEnv("CAPGRAB_LANGUAGE"); ok && v != "" {
		c.Language = v
	}
	if v, ok := os.LookupEnv("CAPGRAB_FORMATS"); ok && v != "" {
		c.Formats = strings.Split(v, ",")
	}
	if v, ok := os.LookupEnv("CAPGRAB_YTDLP_PATH"); ok && v != "" {
		c.YtDlp.Path = v
	}
	if v, ok := os.LookupEnv("CAPGRAB_YTDLP_NAME"); ok && v != "" {
		c.YtDlp.Name = v
	}
}
