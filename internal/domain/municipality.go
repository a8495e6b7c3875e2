package domain

import (
	"strings"
	"unicode/utf8"
)

// codeWidth is the fixed width of municipality codes in filenames and forms.
const codeWidth = 3

// Municipality identifies one form target.
type Municipality struct {
	// Code is the value stored in the database, used as the query parameter.
	Code string
	// Padded is Code zero-padded to three characters.
	Padded string
	// Display is the human-readable name shown in the forms.
	Display string
}

// NewMunicipality resolves the padded code and display name for a database code.
func NewMunicipality(code string, names map[string]string) Municipality {
	padded := PadCode(code)
	return Municipality{
		Code:    code,
		Padded:  padded,
		Display: DisplayName(padded, names),
	}
}

// PadCode left-pads code with zeros to three characters. Longer codes are
// returned unchanged. A leading sign is kept in front of the padding.
func PadCode(code string) string {
	n := utf8.RuneCountInString(code)
	if n >= codeWidth {
		return code
	}
	if code != "" && (code[0] == '-' || code[0] == '+') {
		return code[:1] + strings.Repeat("0", codeWidth-n) + code[1:]
	}
	return strings.Repeat("0", codeWidth-n) + code
}

// DisplayName returns the mapped name for a padded code, or the code itself.
func DisplayName(padded string, names map[string]string) string {
	if name, ok := names[padded]; ok {
		return name
	}
	return padded
}

// WaterFile is the output filename of the water deposits form.
func (m Municipality) WaterFile() string {
	return "agua_" + m.Padded + ".html"
}

// WorksFile is the output filename of the public works form.
func (m Municipality) WorksFile() string {
	return "obras_" + m.Padded + ".html"
}
