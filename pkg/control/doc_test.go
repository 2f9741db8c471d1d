package control

import (
	"go/ast"
	"go/parser"
	"go/token"
	"testing"
)

func TestExportedDispatcherMethodsAreDocumented(t *testing.T) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "dispatcher.go", nil, parser.ParseComments)
	if err != nil {
		t.Fatalf("parse dispatcher.go: %v", err)
	}

	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Recv == nil || !fn.Name.IsExported() {
			continue
		}
		if fn.Doc == nil || fn.Doc.Text() == "" {
			t.Errorf("%s: exported method %s has no doc comment", fset.Position(fn.Pos()), fn.Name.Name)
		}
	}
}
