package yt

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/language"

	"github.com/patrickprogramme/capgrab/pkg/model"
)

// ErrNoCaptions : la vidéo n'expose aucune piste de sous-titres, ni manuelle ni auto.
var ErrNoCaptions = errors.New("aucune piste de sous-titres disponible pour cette vidéo")

// LanguageNotAvailableError signale que la langue demandée n'existe pas,
// en joignant la liste des langues disponibles pour guider l'utilisateur.
type LanguageNotAvailableError struct {
	Requested string
	Available []string
}

func (e *LanguageNotAvailableError) Error() string {
	return fmt.Sprintf("langue %q non disponible (disponibles : %s)",
		e.Requested, strings.Join(e.Available, ", "))
}

// ResolveTrack choisit la piste de sous-titres à télécharger.
//
// Règles de résolution :
//   - requested vide ou "auto" : prendre la première langue disponible
//     (ordre lexicographique, les maps Go n'étant pas ordonnées).
//   - sinon : correspondance exacte sur le tag IETF d'abord, puis sur le
//     sous-tag de base ("en" matche "en-US", "en-GB"...).
//   - preferManual : les sous-titres manuels priment sur les automatiques ;
//     repli sur l'autre source si la langue n'y existe pas.
//
// Parmi les variantes d'une langue on préfère vtt, puis srt, sinon la première.
func ResolveTrack(meta *model.Meta, requested string, preferManual bool) (*model.CaptionTrack, error) {
	if meta == nil || (!meta.HasManualSubs() && !meta.HasAutoCaptions()) {
		return nil, ErrNoCaptions
	}

	// ordre d'exploration des deux sources selon la préférence
	type pool struct {
		tracks map[string][]model.TrackVariant
		source model.SubSource
	}
	pools := []pool{
		{meta.Subtitles, model.SubSourceManual},
		{meta.AutoCaptions, model.SubSourceAutomatic},
	}
	if !preferManual {
		pools[0], pools[1] = pools[1], pools[0]
	}

	if requested == "" || strings.EqualFold(requested, "auto") {
		for _, p := range pools {
			if lang, ok := firstLanguage(p.tracks); ok {
				return pickTrack(p.tracks, lang, p.source)
			}
		}
		return nil, ErrNoCaptions
	}

	// la correspondance (exacte puis sous-tag de base) se joue SOURCE PAR
	// SOURCE : un match par sous-tag dans la source préférée l'emporte sur un
	// match exact dans l'autre source
	for _, p := range pools {
		if lang, ok := matchLanguage(p.tracks, requested); ok {
			return pickTrack(p.tracks, lang, p.source)
		}
	}

	return nil, &LanguageNotAvailableError{
		Requested: requested,
		Available: meta.AvailableLanguages(),
	}
}

// matchLanguage cherche requested parmi les langues d'une source :
// correspondance exacte d'abord (insensible à la casse), puis sur le
// sous-tag de base ("en" matche "en-US", "en-GB"...).
func matchLanguage(tracks map[string][]model.TrackVariant, requested string) (string, bool) {
	keys := sortedKeys(tracks)
	for _, lang := range keys {
		if strings.EqualFold(lang, requested) {
			return lang, true
		}
	}
	want := baseSubtag(requested)
	for _, lang := range keys {
		if baseSubtag(lang) == want {
			return lang, true
		}
	}
	return "", false
}

// pickTrack sélectionne la meilleure variante d'une langue donnée.
func pickTrack(tracks map[string][]model.TrackVariant, lang string, source model.SubSource) (*model.CaptionTrack, error) {
	variants := tracks[lang]
	if len(variants) == 0 {
		return nil, ErrNoCaptions
	}
	v := bestVariant(variants)
	return &model.CaptionTrack{
		Lang:   lang,
		Format: model.Format(v.Ext),
		URL:    v.URL,
		Source: source,
	}, nil
}

// bestVariant préfère vtt, puis srt, sinon la première variante listée.
func bestVariant(variants []model.TrackVariant) model.TrackVariant {
	for _, v := range variants {
		if v.Ext == string(model.FormatVTT) {
			return v
		}
	}
	for _, v := range variants {
		if v.Ext == string(model.FormatSRT) {
			return v
		}
	}
	return variants[0]
}

// baseSubtag extrait le sous-tag de base d'un code IETF ("en-US" -> "en").
// On passe par x/text/language pour normaliser la casse et les alias ;
// si le tag ne parse pas, on coupe simplement sur le premier tiret.
func baseSubtag(tag string) string {
	if t, err := language.Parse(tag); err == nil {
		if base, conf := t.Base(); conf != language.No {
			return base.String()
		}
	}
	if i := strings.IndexAny(tag, "-_"); i > 0 {
		return strings.ToLower(tag[:i])
	}
	return strings.ToLower(tag)
}

// firstLanguage retourne la plus petite clé lexicographique de la map.
func firstLanguage(tracks map[string][]model.TrackVariant) (string, bool) {
	keys := sortedKeys(tracks)
	if len(keys) == 0 {
		return "", false
	}
	return keys[0], true
}

func sortedKeys(tracks map[string][]model.TrackVariant) []string {
	keys := make([]string, 0, len(tracks))
	for k := range tracks {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
