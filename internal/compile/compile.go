// Package compile drives the three-pass pipeline over a shared file list:
// lex + skim-parse, symbol-table construction, then late-parse + type
// check. A driver (cmd/tcomp, or a test) builds a FileList and an
// Options, then calls Pipeline.Run once.
package compile

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hassan/tcompiler/internal/check"
	"github.com/hassan/tcompiler/internal/diag"
	"github.com/hassan/tcompiler/internal/lexer"
	"github.com/hassan/tcompiler/internal/parser"
	"github.com/hassan/tcompiler/internal/parser/ast"
	"github.com/hassan/tcompiler/internal/stab"
)

// FileEntry is one input file: its path and whether it is a code (.tc) or
// declaration (.td) file.
type FileEntry struct {
	Path   string
	IsCode bool
}

// FileList is the ordered set of translation units a Pipeline run
// compiles together, the unit stage C's whole-program enum solver and
// stage E's collision check both need to see as a whole.
type FileList []FileEntry

// DumpMode selects what Pipeline.Run writes to its debug-dump writer
// after each pass, mirroring §6's four-way selector.
type DumpMode int

const (
	DumpNone DumpMode = iota
	DumpLex
	DumpParseStructure
	DumpParsePretty
)

// Options configures one Pipeline run: the warning-class policy and the
// debug-dump selector. No configuration file format is in scope (the
// front end takes no persisted configuration surface), so this is a
// plain caller-constructed struct rather than something a config-file
// library would parse.
type Options struct {
	Policy    diag.Policy
	DebugDump DumpMode
}

// Pipeline runs the three passes over a FileList, accumulating
// diagnostics into a single Bag shared across every stage.
type Pipeline struct {
	opts Options
	bag  *diag.Bag
}

// NewPipeline creates a Pipeline under the given options.
func NewPipeline(opts Options) *Pipeline {
	return &Pipeline{opts: opts, bag: diag.NewBag(opts.Policy)}
}

// Bag returns the diagnostic bag accumulated across every pass run so
// far.
func (p *Pipeline) Bag() *diag.Bag { return p.bag }

// Run executes all three passes over files in order, returning 0 on a
// clean compile or -1 if any file's sticky errored flag became true in
// any stage, matching §6's per-stage exit-status contract.
func (p *Pipeline) Run(files FileList, dump func(string)) int {
	asts, ok := p.passOneParse(files, dump)
	if !ok {
		return -1
	}

	modules := p.passTwoBuildSymbols(asts)
	if p.bag.HasErrors() {
		return -1
	}

	p.passThreeCheck(modules, dump)
	if p.bag.HasErrors() {
		return -1
	}
	return 0
}

// passOneParse lexes and skim-parses every file in order, returning false
// immediately if a file cannot even be memory-mapped (the one fatal,
// non-accumulating failure mode in this pipeline, matching §7's "fatal
// outcomes abort" rule).
func (p *Pipeline) passOneParse(files FileList, dump func(string)) ([]*ast.File, bool) {
	asts := make([]*ast.File, 0, len(files))
	for _, fe := range files {
		fm, err := lexer.OpenFileMap(fe.Path)
		if err != nil {
			p.bag.Errorf(lexer.Position{Filename: fe.Path}, "cannot open '%s': %s", fe.Path, err)
			return nil, false
		}

		lex := lexer.New(fm)
		if p.opts.DebugDump == DumpLex && dump != nil {
			dump(dumpTokens(fe.Path, fm))
		}

		pr := parser.New(lex, p.bag)
		file := pr.ParseFile(fe.Path, fe.IsCode)
		fm.Close()

		if p.opts.DebugDump == DumpParseStructure && dump != nil {
			dump(dumpStructure(file))
		}
		if p.opts.DebugDump == DumpParsePretty && dump != nil {
			dump(dumpPretty(file))
		}

		asts = append(asts, file)
	}
	return asts, true
}

// passTwoBuildSymbols runs stab.Builder.Build over every parsed file as a
// unit, returning the whole-program module map pass 3 resolves against.
func (p *Pipeline) passTwoBuildSymbols(files []*ast.File) map[string]*stab.Module {
	b := stab.NewBuilder(p.bag)
	return b.Build(files)
}

// passThreeCheck late-parses every function body still carrying an
// Unparsed token vector, then type-checks it, one module at a time so
// each Checker only needs its own module's TypeResolverFor closure
// installed on the late parser.
func (p *Pipeline) passThreeCheck(modules map[string]*stab.Module, dump func(string)) {
	res := &check.Resolver{Modules: modules}

	names := make([]string, 0, len(modules))
	for name := range modules {
		names = append(names, name)
	}
	sort.Strings(names)

	b := stab.NewBuilder(p.bag)
	b.Modules = modules

	for _, name := range names {
		mod := modules[name]
		resolver := b.TypeResolverFor(mod)
		checker := check.NewChecker(p.bag, res, mod)

		for _, decl := range mod.AllDecls() {
			fd, ok := decl.(*ast.FuncDecl)
			if !ok || fd.Unparsed == nil {
				continue
			}
			parser.ParseFunctionBody(fd, p.bag, resolver)
			fnSym := mod.Scope.LookupLocal(fd.Name)
			if fnSym == nil {
				continue
			}
			checker.CheckFunction(fd, fnSym)
		}
	}
}

func dumpTokens(path string, fm *lexer.FileMap) string {
	lex := lexer.New(fm)
	var sb strings.Builder
	fmt.Fprintf(&sb, "-- tokens: %s --\n", path)
	for {
		tok := lex.Next()
		fmt.Fprintln(&sb, tok.String())
		if tok.Kind == lexer.EOF {
			break
		}
	}
	return sb.String()
}

func dumpStructure(f *ast.File) string {
	var sb strings.Builder
	name := ""
	if f.ModuleDecl != nil {
		name = ast.StringifyID(f.ModuleDecl.ScopedName)
	}
	fmt.Fprintf(&sb, "-- structure: %s (module %s) --\n", f.Filename, name)
	for _, d := range f.Decls {
		fmt.Fprintf(&sb, "%T\n", d)
	}
	return sb.String()
}

func dumpPretty(f *ast.File) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "-- pretty: %s --\n", f.Filename)
	for _, d := range f.Decls {
		if fd, ok := d.(*ast.FuncDecl); ok {
			fmt.Fprintf(&sb, "func %s(", fd.Name)
			for i, prm := range fd.Params {
				if i > 0 {
					sb.WriteString(", ")
				}
				sb.WriteString(prm.Name)
			}
			sb.WriteString(")\n")
		}
	}
	return sb.String()
}
