package chunk

import (
	"path/filepath"
	"strings"
)

// extensionLanguage maps a lower-cased file extension (without the leading
// dot) to its language tag. Extensions not present here carry no language.
var extensionLanguage = map[string]string{
	"rs": "rust",

	"py":  "python",
	"pyi": "python",
	"pyw": "python",

	"js":  "javascript",
	"mjs": "javascript",
	"cjs": "javascript",
	"jsx": "javascriptreact",

	"ts":  "typescript",
	"tsx": "typescriptreact",

	"go": "go",

	"java": "java",
	"kt":   "kotlin",
	"kts":  "kotlin",

	"c": "c",
	"h": "c",

	"cpp": "cpp",
	"hpp": "cpp",
	"cc":  "cpp",
	"cxx": "cpp",
	"hxx": "cpp",

	"cs": "csharp",

	"rb":   "ruby",
	"rake": "ruby",

	"php": "php",

	"swift": "swift",

	"scala": "scala",
	"sc":    "scala",

	"sh":   "shell",
	"bash": "shell",
	"zsh":  "shell",
	"fish": "shell",

	"sql": "sql",

	"html": "html",
	"htm":  "html",

	"css":  "css",
	"scss": "scss",
	"sass": "scss",
	"less": "less",

	"vue":    "vue",
	"svelte": "svelte",

	"json": "json",
	"yaml": "yaml",
	"yml":  "yaml",
	"toml": "toml",
	"ini":  "ini",
	"cfg":  "ini",
	"conf": "ini",

	"md":  "markdown",
	"mdx": "markdown",
	"rst": "rst",
	"txt": "text",

	"tf":  "terraform",
	"hcl": "terraform",

	"xml": "xml",
	"csv": "csv",
}

// DetectLanguage derives a language tag from filePath's extension.
// Unknown or missing extensions return "".
func DetectLanguage(filePath string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filePath)), ".")
	if ext == "" {
		return ""
	}
	return extensionLanguage[ext]
}

// CodeExtensions is the fixed allow-list of indexable extensions (spec §6),
// lower-cased, without the leading dot.
var CodeExtensions = func() []string {
	exts := make([]string, 0, len(extensionLanguage))
	for ext := range extensionLanguage {
		exts = append(exts, ext)
	}
	return exts
}()

// IsIndexableExtension reports whether filePath's extension is in the fixed
// allow-list.
func IsIndexableExtension(filePath string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filePath)), ".")
	if ext == "" {
		return false
	}
	_, ok := extensionLanguage[ext]
	return ok
}
