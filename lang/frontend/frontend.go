// Package frontend is the peripheral collaborator that hands the compile
// pipeline an *ast.Block (spec.md §6: "parsing ... is a peripheral
// collaborator; the compile pipeline's input contract is the parsed AST").
//
// original_source/ ships no lexer or parser (the reference implementation's
// text grammar was filtered out of the retrieval pack along with every
// other file not needed to reproduce the compile semantics), and a
// hand-written recursive-descent parser is out of scope per spec.md §1's
// framing of parsing as a collaborator rather than core. Instead, this
// package accepts a YAML description of the syntax tree — the same
// generic-map decode-and-switch idiom used elsewhere in the retrieval pack
// for loading a nested document into a typed structure (e.g.
// funvibe-funxy's evaluator/builtins_yaml.go) — and builds the lang/ast
// tree directly from it, one map per node with a `kind` discriminator.
package frontend

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/somire-lang/somire/lang/ast"
)

// ParseProgram decodes data as a YAML-encoded syntax tree and builds the
// corresponding *ast.Block, ready to hand to compiler.CompileProgram. The
// top-level document must be a "block" node (or a bare list of statements,
// treated as an implicit block).
func ParseProgram(data []byte) (*ast.Block, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("frontend: parsing YAML program: %w", err)
	}
	switch v := doc.(type) {
	case map[string]any:
		return buildBlock(v)
	case []any:
		return buildBlockFromStmtList(v)
	case nil:
		return &ast.Block{}, nil
	default:
		return nil, fmt.Errorf("frontend: program document must be a mapping or sequence, got %T", doc)
	}
}

func buildBlock(n map[string]any) (*ast.Block, error) {
	if kind, _ := n["kind"].(string); kind != "" && kind != "block" {
		return nil, fmt.Errorf("frontend: expected block node, got kind %q", kind)
	}
	rawStmts, ok := n["stmts"].([]any)
	if !ok {
		if n["stmts"] == nil {
			return &ast.Block{}, nil
		}
		return nil, fmt.Errorf("frontend: block's stmts must be a sequence")
	}
	return buildBlockFromStmtList(rawStmts)
}

func buildBlockFromStmtList(rawStmts []any) (*ast.Block, error) {
	stmts := make([]ast.Stmt, len(rawStmts))
	for i, rs := range rawStmts {
		m, err := asMap(rs)
		if err != nil {
			return nil, fmt.Errorf("frontend: statement %d: %w", i, err)
		}
		s, err := buildStmt(m)
		if err != nil {
			return nil, fmt.Errorf("frontend: statement %d: %w", i, err)
		}
		stmts[i] = s
	}
	return &ast.Block{Stmts: stmts}, nil
}

func buildStmt(n map[string]any) (ast.Stmt, error) {
	kind, _ := n["kind"].(string)
	switch kind {
	case "let":
		name, err := asString(n, "name")
		if err != nil {
			return nil, err
		}
		init, err := buildExprField(n, "init")
		if err != nil {
			return nil, err
		}
		return &ast.Let{Name: name, Init: init}, nil

	case "set":
		name, err := asString(n, "name")
		if err != nil {
			return nil, err
		}
		val, err := buildExprField(n, "value")
		if err != nil {
			return nil, err
		}
		return &ast.Set{Name: name, Value: val}, nil

	case "expr":
		x, err := buildExprField(n, "x")
		if err != nil {
			return nil, err
		}
		return &ast.ExprStmt{X: x}, nil

	case "if":
		cond, err := buildExprField(n, "cond")
		if err != nil {
			return nil, err
		}
		thenBlock, err := buildBlockField(n, "then")
		if err != nil {
			return nil, err
		}
		var elseBlock *ast.Block
		if raw, ok := n["else"]; ok && raw != nil {
			elseBlock, err = buildBlockField(n, "else")
			if err != nil {
				return nil, err
			}
		}
		return &ast.If{Cond: cond, Then: thenBlock, Else: elseBlock}, nil

	case "while":
		cond, err := buildExprField(n, "cond")
		if err != nil {
			return nil, err
		}
		body, err := buildBlockField(n, "body")
		if err != nil {
			return nil, err
		}
		return &ast.While{Cond: cond, Body: body}, nil

	case "return":
		x, err := buildExprField(n, "x")
		if err != nil {
			return nil, err
		}
		return &ast.Return{X: x}, nil

	default:
		return nil, fmt.Errorf("frontend: unknown statement kind %q", kind)
	}
}

func buildBlockField(n map[string]any, field string) (*ast.Block, error) {
	m, err := asMapField(n, field)
	if err != nil {
		return nil, err
	}
	return buildBlock(m)
}

func buildExprField(n map[string]any, field string) (ast.Expr, error) {
	m, err := asMapField(n, field)
	if err != nil {
		return nil, err
	}
	return buildExpr(m)
}

func buildExpr(n map[string]any) (ast.Expr, error) {
	kind, _ := n["kind"].(string)
	switch kind {
	case "int":
		v, err := asInt(n, "value")
		if err != nil {
			return nil, err
		}
		return ast.NewIntLit(int32(v)), nil

	case "real":
		v, err := asFloat(n, "value")
		if err != nil {
			return nil, err
		}
		return ast.NewRealLit(v), nil

	case "string":
		v, err := asString(n, "value")
		if err != nil {
			return nil, err
		}
		return ast.NewStringLit(v), nil

	case "symbol":
		// An unquoted true/false decodes as a YAML boolean, not a string.
		if b, ok := n["name"].(bool); ok {
			return ast.NewSymbolLit(fmt.Sprint(b)), nil
		}
		v, err := asString(n, "name")
		if err != nil {
			return nil, err
		}
		return ast.NewSymbolLit(v), nil

	case "id":
		v, err := asString(n, "name")
		if err != nil {
			return nil, err
		}
		return ast.NewIdentifier(v), nil

	case "unary":
		op, err := asString(n, "op")
		if err != nil {
			return nil, err
		}
		x, err := buildExprField(n, "x")
		if err != nil {
			return nil, err
		}
		return ast.NewUnaryOp(op, x), nil

	case "binop":
		op, err := asString(n, "op")
		if err != nil {
			return nil, err
		}
		left, err := buildExprField(n, "left")
		if err != nil {
			return nil, err
		}
		right, err := buildExprField(n, "right")
		if err != nil {
			return nil, err
		}
		return ast.NewBinaryOp(op, left, right), nil

	case "func":
		return buildFuncLit(n)

	case "list":
		rawElems, _ := n["elems"].([]any)
		elems := make([]ast.Expr, len(rawElems))
		for i, re := range rawElems {
			m, err := asMap(re)
			if err != nil {
				return nil, fmt.Errorf("list element %d: %w", i, err)
			}
			x, err := buildExpr(m)
			if err != nil {
				return nil, fmt.Errorf("list element %d: %w", i, err)
			}
			elems[i] = x
		}
		return ast.NewListLit(elems), nil

	case "call":
		callee, err := buildExprField(n, "callee")
		if err != nil {
			return nil, err
		}
		rawArgs, _ := n["args"].([]any)
		args := make([]ast.Expr, len(rawArgs))
		for i, ra := range rawArgs {
			m, err := asMap(ra)
			if err != nil {
				return nil, fmt.Errorf("call argument %d: %w", i, err)
			}
			x, err := buildExpr(m)
			if err != nil {
				return nil, fmt.Errorf("call argument %d: %w", i, err)
			}
			args[i] = x
		}
		return ast.NewCall(callee, args), nil

	case "prop":
		x, err := buildExprField(n, "x")
		if err != nil {
			return nil, err
		}
		name, err := asString(n, "name")
		if err != nil {
			return nil, err
		}
		return ast.NewPropAccess(x, name), nil

	default:
		return nil, fmt.Errorf("frontend: unknown expression kind %q", kind)
	}
}

func buildFuncLit(n map[string]any) (ast.Expr, error) {
	rawParams, _ := n["params"].([]any)
	params := make([]ast.Param, len(rawParams))
	for i, rp := range rawParams {
		pm, err := asMap(rp)
		if err != nil {
			return nil, fmt.Errorf("param %d: %w", i, err)
		}
		name, err := asString(pm, "name")
		if err != nil {
			return nil, fmt.Errorf("param %d: %w", i, err)
		}
		typeName, err := asString(pm, "type")
		if err != nil {
			return nil, fmt.Errorf("param %d: %w", i, err)
		}
		params[i] = ast.Param{Name: name, Type: &ast.SimpleType{Name: typeName}}
	}

	resultTypeName, err := asString(n, "result")
	if err != nil {
		return nil, err
	}
	body, err := buildBlockField(n, "body")
	if err != nil {
		return nil, err
	}
	return ast.NewFuncLit(params, &ast.SimpleType{Name: resultTypeName}, body), nil
}

func asMap(v any) (map[string]any, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected a mapping, got %T", v)
	}
	return m, nil
}

func asMapField(n map[string]any, field string) (map[string]any, error) {
	v, ok := n[field]
	if !ok {
		return nil, fmt.Errorf("missing field %q", field)
	}
	return asMap(v)
}

func asString(n map[string]any, field string) (string, error) {
	v, ok := n[field]
	if !ok {
		return "", fmt.Errorf("missing field %q", field)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("field %q must be a string, got %T", field, v)
	}
	return s, nil
}

func asInt(n map[string]any, field string) (int, error) {
	v, ok := n[field]
	if !ok {
		return 0, fmt.Errorf("missing field %q", field)
	}
	switch i := v.(type) {
	case int:
		return i, nil
	case int64:
		return int(i), nil
	default:
		return 0, fmt.Errorf("field %q must be an integer, got %T", field, v)
	}
}

func asFloat(n map[string]any, field string) (float64, error) {
	v, ok := n[field]
	if !ok {
		return 0, fmt.Errorf("missing field %q", field)
	}
	switch f := v.(type) {
	case float64:
		return f, nil
	case int:
		return float64(f), nil
	case int64:
		return float64(f), nil
	default:
		return 0, fmt.Errorf("field %q must be a number, got %T", field, v)
	}
}
