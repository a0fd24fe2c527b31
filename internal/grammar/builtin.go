package grammar

// C-family delimiters shared by many built-in grammars.
const (
	cLine  = "//"
	cStart = "/*"
	cEnd   = "*/"
	star   = " * "
)

// Builtins returns the grammars a default registry starts with.
func Builtins() []Grammar {
	return []Grammar{
		cFamily("c", nil, ".c", ".h"),
		cFamily("cpp", []string{"c++"}, ".cpp", ".cc", ".cxx", ".hpp", ".hh"),
		cFamily("csharp", []string{"cs", "c#"}, ".cs"),
		cFamily("go", []string{"golang"}, ".go"),
		cFamily("java", nil, ".java"),
		cFamily("javascript", []string{"js", "jsx"}, ".js", ".mjs", ".cjs", ".jsx"),
		cFamily("typescript", []string{"ts", "tsx"}, ".ts", ".tsx"),
		cFamily("php", nil, ".php"),
		cFamily("dart", nil, ".dart"),
		cFamily("protobuf", []string{"proto"}, ".proto"),
		nesting(cFamily("rust", []string{"rs"}, ".rs")),
		nesting(cFamily("swift", nil, ".swift")),
		nesting(cFamily("kotlin", []string{"kt"}, ".kt", ".kts")),
		nesting(cFamily("scala", nil, ".scala")),
		{Language: "zig", LineMarker: "//", Extensions: []string{".zig"}},
		{Language: "css", BlockStart: cStart, BlockEnd: cEnd, BlockContinuation: star, Extensions: []string{".css"}},
		cFamily("scss", []string{"less"}, ".scss", ".less"),
		hash("python", []string{"py"}, ".py", ".pyi"),
		hash("ruby", []string{"rb"}, ".rb", "gemfile", "rakefile"),
		hash("shell", []string{"sh", "bash", "zsh"}, ".sh", ".bash", ".zsh"),
		hash("yaml", []string{"yml"}, ".yaml", ".yml"),
		hash("toml", nil, ".toml"),
		hash("perl", []string{"pl"}, ".pl", ".pm"),
		hash("r", nil, ".r"),
		hash("elixir", []string{"ex"}, ".ex", ".exs"),
		hash("make", []string{"makefile"}, "makefile", ".mk"),
		hash("dockerfile", []string{"docker"}, "dockerfile"),
		{
			Language: "lua", LineMarker: "--",
			BlockStart: "--[[", BlockEnd: "]]",
			Extensions: []string{".lua"},
		},
		{
			Language: "sql", LineMarker: "--",
			BlockStart: cStart, BlockEnd: cEnd, BlockContinuation: star,
			Extensions: []string{".sql"},
		},
		{
			Language: "haskell", Aliases: []string{"hs"}, LineMarker: "--",
			BlockStart: "{-", BlockEnd: "-}", AllowsNesting: true,
			Extensions: []string{".hs"},
		},
		{
			Language: "ocaml", Aliases: []string{"ml"},
			BlockStart: "(*", BlockEnd: "*)", BlockContinuation: star, AllowsNesting: true,
			Extensions: []string{".ml", ".mli"},
		},
		markup("html", nil, ".html", ".htm"),
		markup("xml", []string{"svg"}, ".xml", ".svg"),
		markup("markdown", []string{"md"}, ".md", ".markdown"),
		{Language: "lisp", Aliases: []string{"clojure", "scheme", "elisp"}, LineMarker: ";",
			Extensions: []string{".lisp", ".el", ".clj", ".scm"}},
		{Language: "erlang", LineMarker: "%", Extensions: []string{".erl"}},
		{Language: "tex", Aliases: []string{"latex"}, LineMarker: "%", Extensions: []string{".tex"}},
		{Language: "vim", LineMarker: "\"", Extensions: []string{".vim", "vimrc"}},
	}
}

func cFamily(lang string, aliases []string, exts ...string) Grammar {
	return Grammar{
		Language:          lang,
		LineMarker:        cLine,
		BlockStart:        cStart,
		BlockEnd:          cEnd,
		BlockContinuation: star,
		Aliases:           aliases,
		Extensions:        exts,
	}
}

func nesting(g Grammar) Grammar {
	g.AllowsNesting = true
	return g
}

func hash(lang string, aliases []string, exts ...string) Grammar {
	return Grammar{Language: lang, LineMarker: "#", Aliases: aliases, Extensions: exts}
}

func markup(lang string, aliases []string, exts ...string) Grammar {
	return Grammar{
		Language:   lang,
		BlockStart: "<!--",
		BlockEnd:   "-->",
		Aliases:    aliases,
		Extensions: exts,
	}
}
