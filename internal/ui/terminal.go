package ui

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/patrickprogramme/capgrab/internal/clipboard"
	"github.com/patrickprogramme/capgrab/internal/yt"
)

type terminalUI struct {
	reader *bufio.Reader
}

func NewTerminal() Interface {
	return &terminalUI{reader: bufio.NewReader(os.Stdin)}
}

func (t *terminalUI) GetYtURL(ctx context.Context) (string, error) {
	// 1) clipboard
	if clip, err := clipboard.ReadAll(); err == nil {
		if yt.IsYouTubeURL(clip) {
			t.PrintInfo(ctx, fmt.Sprintf("Utilisation de l'URL depuis le presse-papier: %s", clip))
			return clip, nil
		}
	}
	// 2) prompt
	for {
		fmt.Print("Entrez l'URL d'une vidéo Youtube: ")
		input, err := t.reader.ReadString('\n')
		if err != nil {
			return "", fmt.Errorf("lecture stdin: %w", err)
		}
		url := strings.TrimSpace(input)
		if yt.IsYouTubeURL(url) {
			return url, nil
		}
		fmt.Println("❌ URL invalide. Essayez à nouveau.")
	}
}

// ChooseLanguage affiche la liste numérotée des langues et lit le choix.
// Entrée vide -> première langue de la liste.
func (t *terminalUI) ChooseLanguage(ctx context.Context, available []string) (string, error) {
	if len(available) == 0 {
		return "", fmt.Errorf("aucune langue disponible")
	}

	fmt.Println("Langues disponibles :")
	for i, lang := range available {
		fmt.Printf("  %d) %s\n", i+1, lang)
	}

	for {
		fmt.Printf("Choisissez une langue [1-%d, Entrée = %s] : ", len(available), available[0])
		input, err := t.reader.ReadString('\n')
		if err != nil {
			return "", fmt.Errorf("lecture stdin: %w", err)
		}
		input = strings.TrimSpace(input)
		if input == "" {
			return available[0], nil
		}
		// accepter aussi le code langue tapé directement
		for _, lang := range available {
			if strings.EqualFold(input, lang) {
				return lang, nil
			}
		}
		if n, err := strconv.Atoi(input); err == nil && n >= 1 && n <= len(available) {
			return available[n-1], nil
		}
		fmt.Println("❌ Choix invalide. Essayez à nouveau.")
	}
}

func (t *terminalUI) PrintInfo(ctx context.Context, s string) {
	fmt.Println(s)
}

func (t *terminalUI) PrintError(ctx context.Context, s string) {
	fmt.Fprintln(os.Stderr, s)
}
