package snippetfile

import (
	"path/filepath"
	"strings"

	"github.com/verte-zerg/codetype/internal/model"
)

var extLangs = map[string]model.Language{
	".py":   model.LanguagePython,
	".js":   model.LanguageJavaScript,
	".mjs":  model.LanguageJavaScript,
	".cjs":  model.LanguageJavaScript,
	".cpp":  model.LanguageCpp,
	".cc":   model.LanguageCpp,
	".cxx":  model.LanguageCpp,
	".hpp":  model.LanguageCpp,
	".h":    model.LanguageCpp,
	".go":   model.LanguageGo,
	".rs":   "Rust",
	".java": "Java",
	".rb":   "Ruby",
	".ts":   "TypeScript",
	".c":    "C",
	".cs":   "C#",
	".php":  "PHP",
	".sh":   "Shell",
}

// LangFromPath guesses the language of a file from its extension.
func LangFromPath(path string) (model.Language, bool) {
	lang, ok := extLangs[strings.ToLower(filepath.Ext(path))]
	return lang, ok
}
