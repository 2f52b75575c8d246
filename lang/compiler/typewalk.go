package compiler

import (
	"github.com/somire-lang/somire/lang/ast"
	"github.com/somire-lang/somire/lang/context"
	"github.com/somire-lang/somire/lang/typesys"
)

var numericOps = map[string]bool{"+": true, "-": true, "*": true, "%": true}
var comparisonOps = map[string]bool{"<": true, ">": true, "<=": true, ">=": true}

// typeExpression computes and attaches the resolved type of expr (spec.md
// §4.3), recursing into subexpressions. It performs no emission.
func (c *Compiler) typeExpression(expr ast.Expr, ctx *context.Context) (*typesys.Type, error) {
	switch e := expr.(type) {
	case *ast.IntLit:
		e.SetResolvedType(c.intType)
	case *ast.RealLit:
		e.SetResolvedType(c.realType)
	case *ast.StringLit:
		e.SetResolvedType(c.stringType)
	case *ast.SymbolLit:
		switch e.Name {
		case "nil":
			e.SetResolvedType(c.nilType)
		case "true", "false":
			e.SetResolvedType(c.boolType)
		default:
			return nil, errorf("unexpected keyword in expression: %s", e.Name)
		}
	case *ast.Identifier:
		if b, ok := ctx.GetVariable(e.Name); ok {
			e.SetResolvedType(b.Type)
		} else if t, ok := c.globals.Lookup(e.Name); ok {
			e.SetResolvedType(t)
		} else {
			return nil, errorf("trying to access unknown variable: %s", e.Name)
		}
	case *ast.UnaryOp:
		valType, err := c.typeExpression(e.X, ctx)
		if err != nil {
			return nil, err
		}
		switch e.Op {
		case "-":
			e.SetResolvedType(valType)
		case "not":
			e.SetResolvedType(c.boolType)
		default:
			return nil, errorf("unknown unary operator: %s", e.Op)
		}
	case *ast.BinaryOp:
		if err := c.typeBinaryOp(e, ctx); err != nil {
			return nil, err
		}
	case *ast.Call:
		if err := c.typeCall(e, ctx); err != nil {
			return nil, err
		}
	case *ast.FuncLit:
		if err := c.typeFuncLit(e); err != nil {
			return nil, err
		}
	case *ast.ListLit:
		if err := c.typeListLit(e, ctx); err != nil {
			return nil, err
		}
	case *ast.PropAccess:
		valType, err := c.typeExpression(e.X, ctx)
		if err != nil {
			return nil, err
		}
		methodType, ok := valType.Method(e.Name)
		if !ok {
			return nil, errorf("type %s does not have a method named %s", valType.Desc(), e.Name)
		}
		e.SetResolvedType(methodType)
	default:
		return nil, errorf("expression type not implemented: %T", expr)
	}
	return expr.ResolvedType(), nil
}

func (c *Compiler) typeBinaryOp(e *ast.BinaryOp, ctx *context.Context) error {
	type1, err := c.typeExpression(e.Left, ctx)
	if err != nil {
		return err
	}
	type2, err := c.typeExpression(e.Right, ctx)
	if err != nil {
		return err
	}
	i1, i2 := type1.CanBeAssignedTo(c.intType), type2.CanBeAssignedTo(c.intType)
	r1, r2 := type1.CanBeAssignedTo(c.realType), type2.CanBeAssignedTo(c.realType)

	switch {
	case numericOps[e.Op]:
		switch {
		case i1 && i2:
			e.SetResolvedType(c.intType)
		case r1 && r2:
			e.SetResolvedType(c.realType)
		default:
			return errorf("trying to perform arithmetic on %s and %s", type1.Desc(), type2.Desc())
		}
	case comparisonOps[e.Op]:
		if r1 && r2 {
			e.SetResolvedType(c.boolType)
		} else {
			return errorf("trying to compare %s and %s", type1.Desc(), type2.Desc())
		}
	case e.Op == "==" || e.Op == "!=":
		e.SetResolvedType(c.boolType)
	case e.Op == "/" || e.Op == "^":
		if r1 && r2 {
			e.SetResolvedType(c.realType)
		} else {
			return errorf("trying to perform real operations on %s and %s", type1.Desc(), type2.Desc())
		}
	case e.Op == "and" || e.Op == "or":
		if type1.CanBeAssignedTo(c.boolType) && type2.CanBeAssignedTo(c.boolType) {
			e.SetResolvedType(c.boolType)
		} else {
			return errorf("trying to perform boolean operations on %s and %s", type1.Desc(), type2.Desc())
		}
	case e.Op == "index":
		if type1.Kind() == typesys.KindList && type1.Elem != nil && type2.CanBeAssignedTo(c.intType) {
			e.SetResolvedType(type1.Elem)
		} else {
			return errorf("trying to index %s with %s", type1.Desc(), type2.Desc())
		}
	default:
		return errorf("type deduction not implemented for operator %s", e.Op)
	}
	return nil
}

func (c *Compiler) typeCall(e *ast.Call, ctx *context.Context) error {
	argTypes := make([]*typesys.Type, len(e.Args))
	for i, arg := range e.Args {
		t, err := c.typeExpression(arg, ctx)
		if err != nil {
			return err
		}
		argTypes[i] = t
	}
	funcType, err := c.typeExpression(e.Callee, ctx)
	if err != nil {
		return err
	}

	switch {
	case funcType.CanBeAssignedTo(c.macroType):
		e.SetResolvedType(c.anyType)
	case funcType.Kind() == typesys.KindFunction:
		expected := len(funcType.Args)
		got := len(argTypes)
		if got != expected {
			return errorf("expected %d arguments in function call, got %d", expected, got)
		}
		for i := 0; i < got; i++ {
			if !argTypes[i].CanBeAssignedTo(funcType.Args[i]) {
				return errorf("cannot assign %s to %s argument", argTypes[i].Desc(), funcType.Args[i].Desc())
			}
		}
		e.SetResolvedType(funcType.Result)
	default:
		return errorf("trying to call %s", funcType.Desc())
	}
	return nil
}

// typeFuncLit reserves the function's prototype index before resolving its
// argument/result type expressions, per SPEC_FULL.md's supplemented
// "protoIdx reservation order" feature (grounded on
// original_source/src/compiler/compiler.cpp's
// `exp2.protoIdx = curChunk->functions.size()` assignment, which happens
// before the loop that resolves `exp2.argTypes`).
func (c *Compiler) typeFuncLit(e *ast.FuncLit) error {
	protoIdx, err := c.chunk.ReserveProto()
	if err != nil {
		return err
	}
	e.ProtoIndex = protoIdx

	argTypes := make([]*typesys.Type, len(e.Params))
	for i, p := range e.Params {
		t, err := c.resolveType(p.Type)
		if err != nil {
			return err
		}
		argTypes[i] = t
	}
	resultType, err := c.resolveType(e.ResultType)
	if err != nil {
		return err
	}
	e.SetResolvedType(typesys.NewFunction(argTypes, resultType))
	return nil
}

func (c *Compiler) typeListLit(e *ast.ListLit, ctx *context.Context) error {
	var elemType *typesys.Type
	for _, val := range e.Elems {
		t, err := c.typeExpression(val, ctx)
		if err != nil {
			return err
		}
		switch {
		case elemType == nil:
			elemType = t
		case t.CanBeAssignedTo(elemType):
			// keep the running type
		case elemType.CanBeAssignedTo(t):
			elemType = t
		default:
			return errorf("cannot mix %s and %s in list literal", elemType.Desc(), t.Desc())
		}
	}
	e.SetResolvedType(typesys.NewList(elemType))
	return nil
}
