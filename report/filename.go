package report

import (
	"regexp"
	"strings"
)

// whitespaceRun covers Unicode spaces and the BOM as well as ASCII whitespace.
var whitespaceRun = regexp.MustCompile(`[\s\v\p{Zs}\x{FEFF}\x{2028}\x{2029}]+`)

// BuildFilename derives the download name: the title lowercased with each
// whitespace run replaced by "_", then "_", the generation date with "/"
// replaced by "-", and the extension.
func BuildFilename(title, generatedOn, ext string) string {
	base := strings.ToLower(whitespaceRun.ReplaceAllString(title, "_"))
	date := strings.ReplaceAll(generatedOn, "/", "-")
	ext = strings.TrimPrefix(ext, ".")
	if ext == "" {
		ext = string(FormatPDF)
	}
	return base + "_" + date + "." + ext
}
