// Package lang normalizes target-language input to DeepL target codes.
// It accepts recognized codes ("HU", "EN-GB"), friendly aliases ("german",
// "brazilian") and underscore variants ("pt_br"), and validates the final
// shape before any remote call is attempted.
package lang

import (
	"strings"

	apperrors "csvlate/cli/internal/errors"
)

// aliases maps friendly language names and code variants to DeepL target codes.
var aliases = map[string]string{
	"bg": "BG", "bulgarian": "BG",
	"cs": "CS", "czech": "CS",
	"da": "DA", "danish": "DA",
	"de": "DE", "german": "DE", "deutsch": "DE",
	"el": "EL", "greek": "EL",
	"en": "EN", "english": "EN",
	"en-us": "EN-US", "english-us": "EN-US",
	"en-gb": "EN-GB", "english-gb": "EN-GB", "british": "EN-GB",
	"es": "ES", "spanish": "ES", "espanol": "ES", "español": "ES",
	"et": "ET", "estonian": "ET",
	"fi": "FI", "finnish": "FI",
	"fr": "FR", "french": "FR", "français": "FR", "francais": "FR",
	"hu": "HU", "hungarian": "HU", "magyar": "HU",
	"id": "ID", "indonesian": "ID",
	"it": "IT", "italian": "IT",
	"ja": "JA", "japanese": "JA", "ja-jp": "JA",
	"ko": "KO", "korean": "KO", "ko-kr": "KO",
	"lt": "LT", "lithuanian": "LT",
	"lv": "LV", "latvian": "LV",
	"nb": "NB", "norwegian": "NB", "bokmal": "NB", "bokmål": "NB",
	"nl": "NL", "dutch": "NL",
	"pl": "PL", "polish": "PL",
	"pt": "PT-PT", "portuguese": "PT-PT", "pt-pt": "PT-PT",
	"pt-br": "PT-BR", "brazilian": "PT-BR",
	"ro": "RO", "romanian": "RO",
	"ru": "RU", "russian": "RU",
	"sk": "SK", "slovak": "SK",
	"sl": "SL", "slovenian": "SL", "slovene": "SL",
	"sv": "SV", "swedish": "SV",
	"tr": "TR", "turkish": "TR",
	"uk": "UK", "ukrainian": "UK",
	"zh": "ZH", "chinese": "ZH", "zh-cn": "ZH",
}

// Normalize maps a user-supplied language string to a DeepL target code.
// Unrecognized input is upper-cased and passed through; Validate decides
// whether the result is usable.
func Normalize(s string) string {
	code := strings.ToLower(strings.TrimSpace(s))
	code = strings.ReplaceAll(code, " ", "")
	code = strings.ReplaceAll(code, "_", "-")
	if target, ok := aliases[code]; ok {
		return target
	}
	return strings.ToUpper(strings.TrimSpace(s))
}

// Validate checks that code has a usable target-code shape: two upper-case
// letters, or five characters with a hyphen in the middle (EN-GB, PT-BR).
func Validate(code string) error {
	if isCodeShaped(code) {
		return nil
	}
	return apperrors.New(apperrors.ConfigInvalid,
		"unrecognized target language format: "+code+" (try 'HU', 'DE', 'EN-GB', 'PT-BR')")
}

func isCodeShaped(code string) bool {
	switch len(code) {
	case 2:
		return isUpperAlpha(code)
	case 5:
		return code[2] == '-' && isUpperAlpha(code[:2]) && isUpperAlpha(code[3:])
	default:
		return false
	}
}

func isUpperAlpha(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return len(s) > 0
}
