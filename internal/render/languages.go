package render

// Language is one localized README target: the store locale to fetch with,
// a display name, and the output filename for that locale.
type Language struct {
	Code       string
	Name       string
	ReadmeFile string
}

// SupportedLanguages lists every README that the generate pipeline renders,
// in output order. The English file keeps the bare README.md name so it
// stays the repository landing page.
var SupportedLanguages = []Language{
	{Code: "en-US", Name: "English", ReadmeFile: "README.md"},
	{Code: "zh", Name: "简体中文", ReadmeFile: "README_zh.md"},
	{Code: "zh-TW", Name: "繁體中文", ReadmeFile: "README_zh-TW.md"},
	{Code: "ja-JP", Name: "日本語", ReadmeFile: "README_ja.md"},
	{Code: "ko-KR", Name: "한국어", ReadmeFile: "README_ko.md"},
	{Code: "es-ES", Name: "Español", ReadmeFile: "README_es.md"},
	{Code: "fr-FR", Name: "Français", ReadmeFile: "README_fr.md"},
	{Code: "de-DE", Name: "Deutsch", ReadmeFile: "README_de.md"},
	{Code: "pt-BR", Name: "Português do Brasil", ReadmeFile: "README_pt-BR.md"},
}

// LanguageByCode returns the language config for a locale code, or false
// when the locale is not a README target.
func LanguageByCode(code string) (Language, bool) {
	for _, lang := range SupportedLanguages {
		if lang.Code == code {
			return lang, true
		}
	}
	return Language{}, false
}
