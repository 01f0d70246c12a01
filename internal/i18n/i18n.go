// Package i18n holds locale negotiation and the localized date formatting
// used for donation-post display dates. The service ships with Bengali and
// English; Bengali is the language of the deployment this serves.
package i18n

import (
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
)

const (
	LocaleBengali = "bn"
	LocaleEnglish = "en"
)

var supported = []language.Tag{
	language.English, // first tag is the matcher fallback
	language.Bengali,
}

var matcher = language.NewMatcher(supported)

// Negotiate picks a locale. Precedence: explicit X-Locale header, then
// Accept-Language, then the visitor's country (Bangladesh reads Bengali),
// then the configured default.
func Negotiate(xLocale, acceptLanguage, country, fallback string) string {
	if l := normalize(xLocale); l != "" {
		return l
	}
	if tags, _, err := language.ParseAcceptLanguage(acceptLanguage); err == nil && len(tags) > 0 {
		tag, _, conf := matcher.Match(tags...)
		if conf > language.No {
			base, _ := tag.Base()
			if l := normalize(base.String()); l != "" {
				return l
			}
		}
	}
	if strings.EqualFold(country, "BD") {
		return LocaleBengali
	}
	if l := normalize(fallback); l != "" {
		return l
	}
	return LocaleEnglish
}

func normalize(locale string) string {
	locale = strings.ToLower(strings.TrimSpace(locale))
	switch {
	case strings.HasPrefix(locale, "bn"):
		return LocaleBengali
	case strings.HasPrefix(locale, "en"):
		return LocaleEnglish
	}
	return ""
}

var bengaliMonths = [...]string{
	"জানুয়ারি", "ফেব্রুয়ারি", "মার্চ", "এপ্রিল", "মে", "জুন",
	"জুলাই", "আগস্ট", "সেপ্টেম্বর", "অক্টোবর", "নভেম্বর", "ডিসেম্বর",
}

var bengaliDigits = [...]rune{'০', '১', '২', '৩', '৪', '৫', '৬', '৭', '৮', '৯'}

// FormatLongDate renders t as a long calendar date in the given locale,
// e.g. "১০ জানুয়ারি ২০২৪" for bn and "10 January 2024" otherwise.
func FormatLongDate(t time.Time, locale string) string {
	if normalize(locale) == LocaleBengali {
		day := toBengaliDigits(t.Day())
		year := toBengaliDigits(t.Year())
		return day + " " + bengaliMonths[t.Month()-1] + " " + year
	}
	return t.Format("2 January 2006")
}

func toBengaliDigits(n int) string {
	var b strings.Builder
	for _, r := range strconv.Itoa(n) {
		b.WriteRune(bengaliDigits[r-'0'])
	}
	return b.String()
}
