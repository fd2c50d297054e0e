package issueform

// languageCodes maps the display names offered by the submission form's
// language dropdown to store locale codes. The table is closed and
// hand-maintained; there is no fuzzy matching.
var languageCodes = map[string]string{
	"English":                            "en",
	"Chinese (中文)":                       "zh",
	"Traditional Chinese (繁體中文)":         "zh-TW",
	"Japanese (日本語)":                     "ja-JP",
	"Korean (한국어)":                       "ko-KR",
	"Thai (ไทย)":                         "th-TH",
	"Vietnamese (Tiếng Việt)":            "vi-VN",
	"Hindi (हिन्दी)":                     "hi-IN",
	"Spanish (Español)":                  "es-ES",
	"Latin American Spanish (Español Latinoamérica)": "es-419",
	"German (Deutsch)":                   "de-DE",
	"French (Français)":                  "fr-FR",
	"Italian (Italiano)":                 "it-IT",
	"Brazilian Portuguese (Português do Brasil)": "pt-BR",
	"European Portuguese (Português)":    "pt-PT",
	"Turkish (Türkçe)":                   "tr-TR",
}

// ParseLanguage resolves a display language name to its locale code by
// exact match. Anything unrecognized falls back to "en".
func ParseLanguage(name string) string {
	if code, ok := languageCodes[name]; ok {
		return code
	}
	return "en"
}
