package captions

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedTimestamp signale un timestamp illisible. Selon le contexte,
// l'appelant saute le bloc fautif (parseur) ou abandonne l'enregistrement
// (reconstruction) ; jamais fatal.
var ErrMalformedTimestamp = errors.New("malformed timestamp")

// ParseTimestamp convertit un timestamp "HH:MM:SS.mmm" en secondes (float).
// Le séparateur des millisecondes peut être "." (VTT) ou "," (SRT) ; les
// millisecondes absentes valent 0. Exactement 3 composants séparés par ":"
// sont attendus, sinon ErrMalformedTimestamp.
func ParseTimestamp(ts string) (float64, error) {
	parts := strings.Split(ts, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("%w: %q (attendu HH:MM:SS.mmm)", ErrMalformedTimestamp, ts)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %q: heures non numériques", ErrMalformedTimestamp, ts)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q: minutes non numériques", ErrMalformedTimestamp, ts)
	}

	// normaliser le séparateur SRT avant de découper secondes/millisecondes
	secPart := strings.ReplaceAll(parts[2], ",", ".")
	secFields := strings.SplitN(secPart, ".", 2)
	if secFields[0] == "" {
		return 0, fmt.Errorf("%w: %q: secondes manquantes", ErrMalformedTimestamp, ts)
	}
	seconds, err := strconv.Atoi(secFields[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %q: secondes non numériques", ErrMalformedTimestamp, ts)
	}
	millis := 0
	if len(secFields) == 2 {
		millis, err = strconv.Atoi(secFields[1])
		if err != nil {
			return 0, fmt.Errorf("%w: %q: millisecondes non numériques", ErrMalformedTimestamp, ts)
		}
	}

	return float64(hours)*3600 + float64(minutes)*60 + float64(seconds) + float64(millis)/1000.0, nil
}

// ToVTTTimestamp canonicalise un timestamp vers la forme interne/VTT
// (séparateur "."). Conversion purement textuelle, sans perte.
func ToVTTTimestamp(ts string) string {
	return strings.ReplaceAll(ts, ",", ".")
}

// ToSRTTimestamp rend la forme SRT (séparateur ",").
func ToSRTTimestamp(ts string) string {
	return strings.ReplaceAll(ts, ".", ",")
}
