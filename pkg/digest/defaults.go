package digest

// Built-in default exclusions. These are immutable configuration tables
// consumed identically by every run; user include patterns and ignore-file
// negations can override them.

// defaultIgnoredDirs are directory names pruned at any depth.
var defaultIgnoredDirs = map[string]bool{
	".git":         true,
	".github":      true,
	".vscode":      true,
	".idea":        true,
	"venv":         true,
	".env":         true,
	"node_modules": true,
	".next":        true,
	"out":          true,
	"__pycache__":  true,
	"target":       true,
	"pkg":          true,
	"build":        true,
	"dist":         true,
	"coverage":     true,
}

// defaultIgnoredFiles are file names excluded at any depth, mostly lock
// files and tool metadata that add no signal to a digest.
var defaultIgnoredFiles = map[string]bool{
	"pnpm-lock.yaml":    true,
	"package-lock.json": true,
	"yarn.lock":         true,
	"Cargo.lock":        true,
	".tsbuildinfo":      true,
	".DS_Store":         true,
	"components.json":   true,
	"biome.json":        true,
	"next-env.d.ts":     true,
	".gitignore":        true,
	".prettierrc.json":  true,
	"LICENSE":           true,
	".nvmrc":            true,
	".npmrc":            true,
	".eslintrc.json":    true,
	".prettierignore":   true,
	"vercel.json":       true,
}

// contentExcludedExtensions are lowercased extensions whose files stay in
// the tree listing but never embed content. They are rejected before any
// read happens, so the binary sniff is skipped for them entirely.
var contentExcludedExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".bmp": true,
	".ico": true, ".webp": true, ".svg": true,
	".woff": true, ".woff2": true, ".ttf": true, ".eot": true, ".otf": true,
	".zip": true, ".gz": true, ".tar": true, ".rar": true, ".7z": true, ".pack": true,
	".wasm": true, ".dll": true, ".exe": true, ".so": true, ".a": true,
	".lib": true, ".bin": true, ".o": true, ".pdf": true,
}
