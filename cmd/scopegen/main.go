// cmd/scopegen/main.go
package main

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"flag"
	"fmt"
	"go/format"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/template"

	"github.com/sghaida/scopewire/fields"
	"github.com/sghaida/scopewire/model"
)

// This binary is a code-generation tool.
//
// It reads a JSON tree spec describing nested components and their
// requirements, resolves every requirement through the fields engine, and
// generates one Go implementation per component.
//
// Key behaviors:
// - Reads the tree spec, validates it (model.LoadTree), builds the tree
// - Resolves owned requirements top-down so members materialize on owners
// - Renders structs, builders, constructors and ancestor accessors
// - Formats with go/format; malformed output is a generator bug, not input
// - Writes output atomically (temp file + rename) to avoid partial writes
// - The output header carries the spec path and its sha256

// run executes the generator logic and returns an exit code.
// It exists separately from main to allow unit testing without os.Exit.
func run(args []string, stderr io.Writer) int {
	flags := flag.NewFlagSet("scopegen", flag.ContinueOnError)
	flags.SetOutput(stderr)

	specPath := flags.String("spec", "", "path to tree spec JSON")
	outPath := flags.String("out", "", "output .gen.go file path")

	if err := flags.Parse(args); err != nil {
		return 2
	}

	if strings.TrimSpace(*specPath) == "" || strings.TrimSpace(*outPath) == "" {
		_, _ = fmt.Fprintln(stderr, "usage: scopegen -spec <tree.json> -out <file.gen.go>")
		return 2
	}

	raw, err := os.ReadFile(*specPath)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, "scopegen:", err)
		return 1
	}

	spec, err := model.LoadTree(raw)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, "scopegen:", err)
		return 1
	}

	tree, err := model.Build(spec)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, "scopegen:", err)
		return 1
	}

	src, err := generate(tree, *specPath, raw)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, "scopegen:", err)
		return 1
	}

	if err := writeFileAtomic(filepath.Clean(*outPath), src, 0o644); err != nil {
		_, _ = fmt.Fprintln(stderr, "scopegen:", err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

// generate resolves the tree and renders formatted Go source.
func generate(tree *model.Tree, specPath string, rawSpec []byte) ([]byte, error) {
	comps, err := resolveTree(tree)
	if err != nil {
		return nil, err
	}

	data := map[string]any{
		"Package":    tree.Package,
		"SpecPath":   filepath.ToSlash(specPath),
		"SpecHash":   sha256Hex(rawSpec),
		"Components": comps,
	}

	var buf bytes.Buffer
	if err := genTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}

	src, err := format.Source(buf.Bytes())
	if err != nil {
		// Formatting failures mean the template produced invalid Go;
		// that is a generator bug, never a spec problem.
		return nil, fmt.Errorf("scopegen: generated code does not parse: %w", err)
	}
	return src, nil
}

//
// -----------------------------------------------------------------------------
// Resolution pass
// -----------------------------------------------------------------------------

type memberData struct {
	Name string
	Type string
}

type accessorData struct {
	Method string
	ID     string
	Owner  string
	Type   string
	Expr   string
}

type componentData struct {
	Name       string
	ParentType string
	CtorParams string
	Members    []memberData
	Builder    []memberData
	Params     []memberData
	Inits      []string
	Accessors  []accessorData
}

// resolveTree drives the fields engine over the whole tree, then snapshots
// the per-component render data.
//
// Two passes: materialization first (top-down, so members land on owners
// before any descendant reads them), then rendering snapshots. A second
// Expression call in the snapshot pass is a cache hit by construction.
func resolveTree(tree *model.Tree) ([]componentData, error) {
	err := tree.Walk(func(c *model.Component) error {
		if c.Parent() != nil {
			// Reserve the parent pointer's name before members materialize.
			_ = c.UniqueMemberName("parent")
		}
		for _, req := range c.Requirements() {
			if _, err := c.Resolver().Expression(req, c.Name()); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var comps []componentData
	err = tree.Walk(func(c *model.Component) error {
		cd := componentData{Name: string(c.Name())}
		if p := c.Parent(); p != nil {
			cd.ParentType = string(p.Name())
		}

		for _, m := range c.Members() {
			cd.Members = append(cd.Members, memberData{Name: m.Name, Type: m.Type})
		}
		for _, m := range c.BuilderMembers() {
			cd.Builder = append(cd.Builder, memberData{Name: m.Name, Type: m.Type})
		}
		for _, p := range c.FactoryParams() {
			cd.Params = append(cd.Params, memberData{Name: p.Name, Type: p.Type})
		}

		for _, s := range c.Initializations() {
			stmt, rerr := renderStmt(c, s, tree.Package)
			if rerr != nil {
				return rerr
			}
			cd.Inits = append(cd.Inits, stmt)
		}

		methods := map[string]bool{}
		for _, req := range c.Uses() {
			expr, rerr := c.Resolver().Expression(req, c.Name())
			if rerr != nil {
				return rerr
			}
			rendered, rerr := renderExpr(c, expr)
			if rerr != nil {
				return rerr
			}
			cd.Accessors = append(cd.Accessors, accessorData{
				Method: uniqueMethod(methods, exported(req.VarName)),
				ID:     req.ID,
				Owner:  string(expr.Owner),
				Type:   req.Type,
				Expr:   rendered,
			})
		}

		cd.CtorParams = ctorParams(cd)
		comps = append(comps, cd)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return comps, nil
}

// ctorParams builds the constructor parameter list: parent pointer first,
// builder second, factory parameters in declaration order.
func ctorParams(cd componentData) string {
	var parts []string
	if cd.ParentType != "" {
		parts = append(parts, "parent *"+cd.ParentType)
	}
	if len(cd.Builder) > 0 {
		parts = append(parts, "b *"+cd.Name+"Builder")
	}
	for _, p := range cd.Params {
		parts = append(parts, p.Name+" "+p.Type)
	}
	return strings.Join(parts, ", ")
}

//
// -----------------------------------------------------------------------------
// Structural value rendering (the emission layer)
// -----------------------------------------------------------------------------

// renderStmt renders one initialization statement into the constructor body.
func renderStmt(c *model.Component, s fields.Stmt, pkg string) (string, error) {
	target := "c." + s.Member.Name

	switch s.Value.Kind {
	case fields.ExprBuilderMember:
		return target + " = b." + s.Value.Name, nil

	case fields.ExprNew:
		return target + " = " + constructed(s.Value.Type), nil

	case fields.ExprNonNilParam:
		if !nilable(s.Value.Type) {
			return target + " = " + s.Value.Name, nil
		}
		msg := pkg + ": nil " + s.Value.Name + " passed to new" + string(c.Name())
		return "if " + s.Value.Name + " == nil {\n" +
			"panic(" + strconv.Quote(msg) + ")\n" +
			"}\n" +
			target + " = " + s.Value.Name, nil

	case fields.ExprMember:
		expr, err := renderExpr(c, s.Value)
		if err != nil {
			return "", err
		}
		return target + " = " + expr, nil

	default:
		return "", fmt.Errorf("scopegen: unknown statement expression kind %d", s.Value.Kind)
	}
}

// renderExpr renders a general access expression as seen from component c.
func renderExpr(c *model.Component, e fields.Expr) (string, error) {
	switch e.Kind {
	case fields.ExprMember:
		if e.Owner == "" || e.Owner == c.Name() {
			return "c." + e.Name, nil
		}
		path, err := accessPath(c, e.Owner)
		if err != nil {
			return "", err
		}
		return path + "." + e.Name, nil

	case fields.ExprBuilderMember:
		return "b." + e.Name, nil

	case fields.ExprNew:
		return constructed(e.Type), nil

	case fields.ExprNonNilParam:
		return e.Name, nil

	default:
		return "", fmt.Errorf("scopegen: unknown expression kind %d", e.Kind)
	}
}

// accessPath walks the parent chain from c to the owning scope:
// c, c.parent, c.parent.parent, ...
func accessPath(c *model.Component, owner fields.ScopeName) (string, error) {
	path := "c"
	for cur := c; cur != nil; cur = cur.Parent() {
		if cur.Name() == owner {
			return path, nil
		}
		path += ".parent"
	}
	return "", fmt.Errorf("scopegen: scope %q is not an ancestor of %q", owner, c.Name())
}

// constructed renders a default construction of the given type.
func constructed(typeName string) string {
	if strings.HasPrefix(typeName, "*") {
		return "&" + strings.TrimPrefix(typeName, "*") + "{}"
	}
	return typeName + "{}"
}

// nilable reports whether a nil check compiles for the type, judged from
// its spelling: pointers, slices, maps, channels and funcs. Interface types
// spell like named value types, so they cannot be recognized here and are
// not guarded.
func nilable(typeName string) bool {
	switch {
	case strings.HasPrefix(typeName, "*"),
		strings.HasPrefix(typeName, "[]"),
		strings.HasPrefix(typeName, "map["),
		strings.HasPrefix(typeName, "chan "),
		strings.HasPrefix(typeName, "<-chan "),
		strings.HasPrefix(typeName, "chan<- "),
		strings.HasPrefix(typeName, "func("):
		return true
	}
	return false
}

// uniqueMethod allocates collision-free accessor method names within one
// component: the name itself when free, otherwise the first free suffixed
// form. Two "uses" entries whose requirements share a var name would
// otherwise generate duplicate methods.
func uniqueMethod(taken map[string]bool, name string) string {
	if !taken[name] {
		taken[name] = true
		return name
	}
	for n := 2; ; n++ {
		cand := name + strconv.Itoa(n)
		if !taken[cand] {
			taken[cand] = true
			return cand
		}
	}
}

// exported upper-cases the first byte for accessor method names.
func exported(name string) string {
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

// sha256Hex returns the hex sha256 of the raw spec, for the output header.
func sha256Hex(raw []byte) string {
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

// genTemplate is the Go source template for the generated wiring file.
var genTemplate = template.Must(
	template.New("scopegen").Parse(`// Code generated by scopegen; DO NOT EDIT.
//
// Source: {{.SpecPath}}
// Spec sha256: {{.SpecHash}}

package {{.Package}}
{{range .Components}}{{$c := .}}
// {{$c.Name}} is the generated implementation of the {{$c.Name}} scope.
type {{$c.Name}} struct {
{{- if $c.ParentType}}
	parent *{{$c.ParentType}}
{{- end}}
{{- range $c.Members}}
	{{.Name}} {{.Type}}
{{- end}}
}
{{if $c.Builder}}
// {{$c.Name}}Builder carries the values supplied to {{$c.Name}} before construction.
type {{$c.Name}}Builder struct {
{{- range $c.Builder}}
	{{.Name}} {{.Type}}
{{- end}}
}
{{end}}
// new{{$c.Name}} constructs {{$c.Name}} and runs its initialization sequence.
func new{{$c.Name}}({{$c.CtorParams}}) *{{$c.Name}} {
	c := &{{$c.Name}}{}
{{- if $c.ParentType}}
	c.parent = parent
{{- end}}
{{- range $c.Inits}}
	{{.}}
{{- end}}
	return c
}
{{range $c.Accessors}}
// {{.Method}} returns the {{.Owner}}-owned value for requirement {{.ID}}.
func (c *{{$c.Name}}) {{.Method}}() {{.Type}} {
	return {{.Expr}}
}
{{end}}{{end}}`),
)

// tempFile abstracts an os.File for testability.
type tempFile interface {
	Name() string
	Write([]byte) (int, error)
	Close() error
}

// File operation hooks, overridden in tests.
var (
	createTempFile = func(dir, pattern string) (tempFile, error) { return os.CreateTemp(dir, pattern) }
	chmodFile      = os.Chmod
	renameFile     = os.Rename
	removeFile     = os.Remove
)

// writeFileAtomic writes a file atomically.
//
// It writes to a temporary file in the same directory and then renames it
// over the target path, ensuring readers never observe partial writes.
func writeFileAtomic(targetPath string, data []byte, perm os.FileMode) (err error) {
	targetDir := filepath.Dir(targetPath)

	tmpFile, err := createTempFile(targetDir, filepath.Base(targetPath)+".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmpFile.Name()

	defer func() {
		if err != nil {
			_ = removeFile(tmpPath)
		}
	}()

	if _, err = tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return err
	}
	if err = tmpFile.Close(); err != nil {
		return err
	}
	if err = chmodFile(tmpPath, perm); err != nil {
		return err
	}
	if err = renameFile(tmpPath, targetPath); err != nil {
		return err
	}
	return nil
}
