package kat

import "sort"

// platformCodes maps platform slugs to the numeric platform_id used by the index.
var platformCodes = map[string]int{
	"android":        4,
	"blackberry":     7,
	"gamecube":       15,
	"ipad":           18,
	"iphone":         19,
	"ipod":           20,
	"java":           22,
	"linux":          24,
	"mac":            25,
	"nintendo3-ds":   31,
	"nintendo-ds":    33,
	"dvd":            35,
	"other":          65,
	"palm-os":        37,
	"pc":             38,
	"ps2":            43,
	"ps3":            44,
	"ps4":            66,
	"psp":            45,
	"symbian":        52,
	"wii":            56,
	"wiiu":           68,
	"windows-ce":     57,
	"windows-mobile": 58,
	"windows-phone":  59,
	"xbox":           61,
	"xbox-360":       62,
	"xbox-one":       67,
}

// languageCodes maps language and locale codes to the numeric lang_id used by the index.
var languageCodes = map[string]int{
	"en":    2,
	"sq":    42,
	"ar":    7,
	"eu":    44,
	"bn":    46,
	"pt-br": 39,
	"bg":    37,
	"yue":   45,
	"ca":    47,
	"zh":    10,
	"hr":    34,
	"cs":    32,
	"da":    26,
	"nl":    8,
	"tl":    11,
	"fi":    31,
	"fr":    5,
	"de":    4,
	"el":    30,
	"he":    25,
	"hi":    6,
	"hu":    27,
	"it":    3,
	"ja":    15,
	"kn":    49,
	"ko":    16,
	"lt":    43,
	"ml":    21,
	"cmn":   23,
	"ne":    48,
	"no":    19,
	"fa":    33,
	"pl":    9,
	"pt":    17,
	"pa":    35,
	"ro":    18,
	"ru":    12,
	"sr":    28,
	"sl":    36,
	"es":    14,
	"sv":    20,
	"ta":    13,
	"te":    22,
	"th":    24,
	"tr":    29,
	"uk":    40,
	"vi":    38,
}

// LanguageCode returns the lang_id for a language code.
func LanguageCode(lang string) (int, bool) {
	code, ok := languageCodes[lang]
	return code, ok
}

// PlatformCode returns the platform_id for a platform slug.
func PlatformCode(platform string) (int, bool) {
	code, ok := platformCodes[platform]
	return code, ok
}

// Languages returns the known language codes, sorted.
func Languages() []string {
	return sortedKeys(languageCodes)
}

// Platforms returns the known platform slugs, sorted.
func Platforms() []string {
	return sortedKeys(platformCodes)
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
