package classdoc

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"

	"git.home.luguber.info/inful/featuredoc/internal/logfields"
)

var (
	// ErrSourceNotFound indicates the source directory does not exist.
	ErrSourceNotFound = errors.New("source directory not found")
	// ErrParseFailed indicates a Go file in the source tree could not be parsed.
	ErrParseFailed = errors.New("source file parse failed")
)

// ParseDir walks dir recursively and collects every named type declaration.
// Import paths are derived from the nearest enclosing go.mod; without one,
// paths relative to dir are used.
func ParseDir(dir string) (*Root, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSourceNotFound, dir, err)
	}
	if info, err := os.Stat(abs); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, dir)
	}

	modRoot, modPath := findModule(abs)
	if modRoot == "" {
		modRoot = abs
	}

	p := &dirParser{fset: token.NewFileSet(), modRoot: modRoot, modPath: modPath}
	err = filepath.WalkDir(abs, func(file string, de os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if de.IsDir() {
			if file != abs && skipDir(de.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(file, ".go") || strings.HasSuffix(file, "_test.go") {
			return nil
		}
		return p.parseFile(file)
	})
	if err != nil {
		return nil, err
	}

	slog.Debug("Parsed source tree", logfields.Path(abs), logfields.Units(len(p.classes)))
	return NewRoot(p.classes), nil
}

func skipDir(name string) bool {
	return name == "vendor" || name == "testdata" ||
		strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")
}

// findModule returns the directory holding the nearest go.mod at or above dir
// and its module path.
func findModule(dir string) (string, string) {
	for d := dir; ; d = filepath.Dir(d) {
		// #nosec G304 -- walking up from the operator-chosen source directory
		data, err := os.ReadFile(filepath.Join(d, "go.mod"))
		if err == nil {
			if mp := modfile.ModulePath(data); mp != "" {
				return d, mp
			}
		}
		if parent := filepath.Dir(d); parent == d {
			return "", ""
		}
	}
}

type dirParser struct {
	fset    *token.FileSet
	modRoot string
	modPath string
	classes []ClassDoc
}

func (p *dirParser) importPath(file string) string {
	rel, err := filepath.Rel(p.modRoot, filepath.Dir(file))
	if err != nil || rel == "." {
		return p.modPath
	}
	rel = filepath.ToSlash(rel)
	if p.modPath == "" {
		return rel
	}
	return path.Join(p.modPath, rel)
}

func (p *dirParser) parseFile(file string) error {
	f, err := parser.ParseFile(p.fset, file, nil, parser.ParseComments)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrParseFailed, file, err)
	}

	importPath := p.importPath(file)
	if f.Name.Name == "main" {
		// reflect reports "main" as the package path of main packages.
		importPath = "main"
	}

	for _, decl := range f.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.TYPE {
			continue
		}
		for _, spec := range gd.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok || ts.TypeParams != nil {
				continue
			}
			docGroup := ts.Doc
			if docGroup == nil && len(gd.Specs) == 1 {
				docGroup = gd.Doc
			}
			p.classes = append(p.classes, ClassDoc{
				Name:       ts.Name.Name,
				Package:    f.Name.Name,
				ImportPath: importPath,
				Doc:        strings.TrimSpace(docGroup.Text()),
				Kind:       kindOf(ts.Type),
				Fields:     fieldsOf(ts.Type),
				Directives: directives(docGroup),
				File:       file,
				Line:       p.fset.Position(ts.Name.Pos()).Line,
			})
		}
	}
	return nil
}

func kindOf(expr ast.Expr) Kind {
	switch expr.(type) {
	case *ast.StructType:
		return KindStruct
	case *ast.InterfaceType:
		return KindInterface
	case *ast.FuncType:
		return KindFunc
	default:
		return KindOther
	}
}

func fieldsOf(expr ast.Expr) []FieldDoc {
	st, ok := expr.(*ast.StructType)
	if !ok || st.Fields == nil {
		return nil
	}
	var fields []FieldDoc
	for _, fld := range st.Fields.List {
		var tag string
		if fld.Tag != nil {
			tag = strings.Trim(fld.Tag.Value, "`")
		}
		desc := strings.TrimSpace(fld.Doc.Text())
		if desc == "" {
			desc = strings.TrimSpace(fld.Comment.Text())
		}
		typ := types.ExprString(fld.Type)

		if len(fld.Names) == 0 {
			name := strings.TrimPrefix(typ, "*")
			if i := strings.LastIndex(name, "."); i >= 0 {
				name = name[i+1:]
			}
			fields = append(fields, FieldDoc{Name: name, Type: typ, Doc: desc, Tag: tag, Embedded: true})
			continue
		}
		for _, ident := range fld.Names {
			fields = append(fields, FieldDoc{Name: ident.Name, Type: typ, Doc: desc, Tag: tag})
		}
	}
	return fields
}

// directives collects //featuredoc: lines. CommentGroup.Text drops them, so
// the raw comment list is scanned.
func directives(cg *ast.CommentGroup) map[string]string {
	if cg == nil {
		return nil
	}
	var out map[string]string
	for _, c := range cg.List {
		if !strings.HasPrefix(c.Text, DirectivePrefix) {
			continue
		}
		body := strings.TrimSpace(strings.TrimPrefix(c.Text, DirectivePrefix))
		if body == "" {
			continue
		}
		name, value, _ := strings.Cut(body, " ")
		if out == nil {
			out = make(map[string]string)
		}
		out[name] = strings.TrimSpace(value)
	}
	return out
}
