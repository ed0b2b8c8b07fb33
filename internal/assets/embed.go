package assets

import "embed"

//go:embed capgrab.example.yaml
var Embedded embed.FS

// Nom de l'asset de config par défaut (chemin DANS Embedded)
const DefaultConfigAsset = "capgrab.example.yaml"
