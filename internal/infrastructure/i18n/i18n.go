// Package i18n provides typed message catalogs for user-facing strings.
package i18n

import (
	"golang.org/x/text/language"
)

// Messages holds every user-facing string for one locale
type Messages struct {
	Locale            string
	DegradedNotice    string
	AIUnavailable     string
	ReceiptFallback   string
	RecipeFallback    string
	WatchlistHeadline string
	InvalidRequest    string
	NotFound          string
	Forbidden         string
	PlanRequired      string
	AccountSuspended  string
	InternalError     string
}

var french = Messages{
	Locale:            "fr",
	DegradedNotice:    "Données de secours affichées, le stockage est momentanément indisponible.",
	AIUnavailable:     "L'assistant est momentanément indisponible, réessayez plus tard.",
	ReceiptFallback:   "Le ticket n'a pas pu être lu, un modèle vide a été créé.",
	RecipeFallback:    "Recette proposée à partir de votre stock, l'assistant était indisponible.",
	WatchlistHeadline: "Produits à surveiller",
	InvalidRequest:    "Requête invalide.",
	NotFound:          "Ressource introuvable.",
	Forbidden:         "Accès refusé.",
	PlanRequired:      "Cette fonctionnalité nécessite un abonnement supérieur.",
	AccountSuspended:  "Ce compte est suspendu.",
	InternalError:     "Une erreur interne est survenue.",
}

var english = Messages{
	Locale:            "en",
	DegradedNotice:    "Showing fallback data, storage is temporarily unavailable.",
	AIUnavailable:     "The assistant is temporarily unavailable, try again later.",
	ReceiptFallback:   "The receipt could not be read, an empty template was created.",
	RecipeFallback:    "Recipe suggested from your stock, the assistant was unavailable.",
	WatchlistHeadline: "Products to watch",
	InvalidRequest:    "Invalid request.",
	NotFound:          "Resource not found.",
	Forbidden:         "Access denied.",
	PlanRequired:      "This feature requires a higher subscription tier.",
	AccountSuspended:  "This account is suspended.",
	InternalError:     "An internal error occurred.",
}

var catalogs = map[language.Tag]Messages{
	language.French:  french,
	language.English: english,
}

var matcher = language.NewMatcher([]language.Tag{
	language.French,
	language.English,
})

// ForAcceptLanguage picks the catalog best matching an Accept-Language
// header. Unknown or empty headers resolve to the fallback catalog.
func ForAcceptLanguage(header string, fallback Messages) Messages {
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return fallback
	}
	_, index, conf := matcher.Match(tags...)
	if conf == language.No {
		return fallback
	}
	if index == 1 {
		return english
	}
	return french
}

// ForLocale picks the catalog for an explicit locale code
func ForLocale(locale string) Messages {
	tag, err := language.Parse(locale)
	if err != nil {
		return french
	}
	if msgs, ok := catalogs[tag]; ok {
		return msgs
	}
	_, index, _ := matcher.Match(tag)
	if index == 1 {
		return english
	}
	return french
}
