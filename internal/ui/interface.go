package ui

import "context"

type Interface interface {
	// GetYtURL doit renvoyer une URL valide.
	// Implémentation terminale : priorité clipboard -> prompt
	GetYtURL(ctx context.Context) (string, error)

	// ChooseLanguage demande à l'utilisateur de choisir une langue parmi
	// celles disponibles. Utilisé quand la langue configurée n'existe pas.
	ChooseLanguage(ctx context.Context, available []string) (string, error)

	PrintInfo(ctx context.Context, s string)
	PrintError(ctx context.Context, s string)
}
