package compiler

import (
	"github.com/somire-lang/somire/lang/ast"
	"github.com/somire-lang/somire/lang/chunk"
	"github.com/somire-lang/somire/lang/context"
	"github.com/somire-lang/somire/lang/typesys"
	"github.com/somire-lang/somire/lang/value"
)

var binaryOpcodes = map[string]chunk.Opcode{
	"+":     chunk.BIN_PLUS,
	"-":     chunk.BIN_MINUS,
	"*":     chunk.MULTIPLY,
	"/":     chunk.DIVIDE,
	"%":     chunk.MODULO,
	"^":     chunk.POWER,
	"and":   chunk.AND,
	"or":    chunk.OR,
	"==":    chunk.EQUALS,
	"<":     chunk.LESS,
	"<=":    chunk.LESS_OR_EQ,
	"index": chunk.INDEX,
}

// compileBlock emits every statement of block in order (spec.md §4.5:
// "Block emission: emit each statement, OR-ing its always-returns bit").
// For a non-outermost block, it emits a trailing POP for the block's own
// locals once every statement has been emitted; the function's outermost
// block's locals are instead implicitly discarded by RETURN, so mainBlock
// suppresses that POP.
func (c *Compiler) compileBlock(proto *chunk.FunctionProto, block *ast.Block, ctx *context.Context, resultType *typesys.Type, mainBlock bool) (bool, error) {
	alwaysReturns := false
	for _, stmt := range block.Stmts {
		returns, err := c.compileStatement(proto, stmt, ctx, resultType)
		if err != nil {
			return false, err
		}
		alwaysReturns = alwaysReturns || returns
	}
	if !mainBlock && ctx.LocalCount() > 0 {
		if err := proto.EmitPop(ctx.LocalCount()); err != nil {
			return false, err
		}
	}
	return alwaysReturns, nil
}

// compileStatement type-walks and emits one statement, per spec.md §4.5.
// It returns whether this statement always returns (only Return and a
// fully-covering If do).
func (c *Compiler) compileStatement(proto *chunk.FunctionProto, stmt ast.Stmt, ctx *context.Context, resultType *typesys.Type) (bool, error) {
	switch s := stmt.(type) {
	case *ast.Let:
		valType, err := c.typeExpression(s.Init, ctx)
		if err != nil {
			return false, err
		}
		_, isFuncLit := s.Init.(*ast.FuncLit)
		if isFuncLit {
			// Define in advance to allow for recursion.
			ctx.DefineLocal(s.Name, valType)
		}
		if err := c.compileExpression(proto, s.Init, ctx); err != nil {
			return false, err
		}
		proto.EmitLet()
		if !isFuncLit {
			ctx.DefineLocal(s.Name, valType)
		}
		return false, nil

	case *ast.Set:
		binding, ok := ctx.GetVariable(s.Name)
		if !ok {
			return false, errorf("trying to set global or undefined variable %s", s.Name)
		}
		valType, err := c.typeExpression(s.Value, ctx)
		if err != nil {
			return false, err
		}
		if !valType.CanBeAssignedTo(binding.Type) {
			return false, errorf("trying to set variable of type %s to value of type %s", binding.Type.Desc(), valType.Desc())
		}
		if err := c.compileExpression(proto, s.Value, ctx); err != nil {
			return false, err
		}
		proto.EmitSetLocal(binding.Slot)
		return false, nil

	case *ast.ExprStmt:
		if _, err := c.typeExpression(s.X, ctx); err != nil {
			return false, err
		}
		if err := c.compileExpression(proto, s.X, ctx); err != nil {
			return false, err
		}
		proto.EmitIgnore()
		return false, nil

	case *ast.If:
		return c.compileIf(proto, s, ctx, resultType)

	case *ast.While:
		return false, c.compileWhile(proto, s, ctx, resultType)

	case *ast.Return:
		gotType, err := c.typeExpression(s.X, ctx)
		if err != nil {
			return false, err
		}
		if err := c.compileExpression(proto, s.X, ctx); err != nil {
			return false, err
		}
		proto.EmitSimple(chunk.RETURN)
		if !gotType.CanBeAssignedTo(resultType) {
			return false, errorf("returning %s in function with return type %s", gotType.Desc(), resultType.Desc())
		}
		return true, nil

	default:
		return false, errorf("statement type not implemented: %T", stmt)
	}
}

func (c *Compiler) compileIf(proto *chunk.FunctionProto, s *ast.If, ctx *context.Context, resultType *typesys.Type) (bool, error) {
	condType, err := c.typeExpression(s.Cond, ctx)
	if err != nil {
		return false, err
	}
	if !condType.CanBeAssignedTo(c.boolType) {
		return false, errorf("expecting boolean in condition, got value of type %s", condType.Desc())
	}
	if err := c.compileExpression(proto, s.Cond, ctx); err != nil {
		return false, err
	}

	elsePlaceholder := proto.EmitJumpPlaceholder(chunk.JUMP_IF_NOT)

	thenCtx := context.NewBlock(ctx)
	thenReturns, err := c.compileBlock(proto, s.Then, thenCtx, resultType, false)
	if err != nil {
		return false, err
	}

	var endPlaceholder int
	if s.Else != nil {
		endPlaceholder = proto.EmitJumpPlaceholder(chunk.JUMP)
	}
	if err := proto.PatchJump(elsePlaceholder); err != nil {
		return false, err
	}

	if s.Else != nil {
		elseCtx := context.NewBlock(ctx)
		elseReturns, err := c.compileBlock(proto, s.Else, elseCtx, resultType, false)
		if err != nil {
			return false, err
		}
		if err := proto.PatchJump(endPlaceholder); err != nil {
			return false, err
		}
		return thenReturns && elseReturns, nil
	}
	return false, nil
}

func (c *Compiler) compileWhile(proto *chunk.FunctionProto, s *ast.While, ctx *context.Context, resultType *typesys.Type) error {
	loopHead := proto.Offset()
	condType, err := c.typeExpression(s.Cond, ctx)
	if err != nil {
		return err
	}
	if err := c.compileExpression(proto, s.Cond, ctx); err != nil {
		return err
	}
	if !condType.CanBeAssignedTo(c.boolType) {
		return errorf("expecting boolean in while loop, got value of type %s", condType.Desc())
	}

	endPlaceholder := proto.EmitJumpPlaceholder(chunk.JUMP_IF_NOT)

	innerCtx := context.NewBlock(ctx)
	if _, err := c.compileBlock(proto, s.Body, innerCtx, resultType, false); err != nil {
		return err
	}
	if err := proto.EmitJumpBack(loopHead); err != nil {
		return err
	}
	return proto.PatchJump(endPlaceholder)
}

// compileExpression emits expr's bytecode; it assumes typeExpression has
// already been called on expr (and every subexpression), since it reads
// expr.ResolvedType() rather than recomputing it (spec.md §4.5: "Expression
// forms map 1:1 to the opcode categories of §4.2").
func (c *Compiler) compileExpression(proto *chunk.FunctionProto, expr ast.Expr, ctx *context.Context) error {
	switch e := expr.(type) {
	case *ast.IntLit:
		return c.compileConstant(proto, value.Int(e.Value))
	case *ast.RealLit:
		return c.compileConstant(proto, value.Real(e.Value))
	case *ast.StringLit:
		s := value.NewString(c.heap, e.Value)
		return c.compileConstant(proto, value.Ref(s))
	case *ast.SymbolLit:
		switch e.Name {
		case "nil":
			return c.compileConstant(proto, value.Nil)
		case "true":
			return c.compileConstant(proto, value.Bool(true))
		case "false":
			return c.compileConstant(proto, value.Bool(false))
		}
		return errorf("unexpected keyword in expression: %s", e.Name)

	case *ast.Identifier:
		if b, ok := ctx.GetVariable(e.Name); ok {
			proto.EmitLocal(b.Slot)
			return nil
		}
		if _, ok := c.globals.Lookup(e.Name); ok {
			k, err := c.addStringConstant(e.Name)
			if err != nil {
				return err
			}
			return proto.EmitGlobal(k)
		}
		return errorf("trying to access unknown variable: %s", e.Name)

	case *ast.UnaryOp:
		if err := c.compileExpression(proto, e.X, ctx); err != nil {
			return err
		}
		switch e.Op {
		case "-":
			proto.EmitSimple(chunk.UNI_MINUS)
		case "not":
			proto.EmitSimple(chunk.NOT)
		}
		return nil

	case *ast.BinaryOp:
		return c.compileBinaryOp(proto, e, ctx)

	case *ast.Call:
		for _, arg := range e.Args {
			if err := c.compileExpression(proto, arg, ctx); err != nil {
				return err
			}
		}
		if err := c.compileExpression(proto, e.Callee, ctx); err != nil {
			return err
		}
		return proto.EmitCall(len(e.Args))

	case *ast.FuncLit:
		return c.compileFuncLit(proto, e, ctx)

	case *ast.ListLit:
		for _, elem := range e.Elems {
			if err := c.compileExpression(proto, elem, ctx); err != nil {
				return err
			}
		}
		return proto.EmitMakeList(len(e.Elems))

	case *ast.PropAccess:
		receiverType, err := c.typeOf(e.X, ctx)
		if err != nil {
			return err
		}
		if err := c.compileExpression(proto, e.X, ctx); err != nil {
			return err
		}
		nsConst, err := c.addStringConstant(receiverType.Namespace())
		if err != nil {
			return err
		}
		nameConst, err := c.addStringConstant(e.Name)
		if err != nil {
			return err
		}
		return proto.EmitMakeMethod(nsConst, nameConst)

	default:
		return errorf("expression type not implemented: %T", expr)
	}
}

// typeOf returns an already-type-walked expression's resolved type; used
// where emission needs a type fact (e.g. the method-namespace tag) without
// redoing the type walk.
func (c *Compiler) typeOf(expr ast.Expr, ctx *context.Context) (*typesys.Type, error) {
	if t := expr.ResolvedType(); t != nil {
		return t, nil
	}
	return c.typeExpression(expr, ctx)
}

func (c *Compiler) compileBinaryOp(proto *chunk.FunctionProto, e *ast.BinaryOp, ctx *context.Context) error {
	if err := c.compileExpression(proto, e.Left, ctx); err != nil {
		return err
	}
	if err := c.compileExpression(proto, e.Right, ctx); err != nil {
		return err
	}
	if op, ok := binaryOpcodes[e.Op]; ok {
		proto.EmitSimple(op)
		return nil
	}
	switch e.Op {
	case "!=":
		proto.EmitSimple(chunk.EQUALS)
		proto.EmitSimple(chunk.NOT)
	case ">":
		proto.EmitSimple(chunk.LESS_OR_EQ)
		proto.EmitSimple(chunk.NOT)
	case ">=":
		proto.EmitSimple(chunk.LESS)
		proto.EmitSimple(chunk.NOT)
	default:
		return errorf("unsupported operator: %s", e.Op)
	}
	return nil
}

// compileFuncLit emits `MAKE_FUNC proto n_args n_upvalues [upvalues...]`
// and compiles the function's body into the prototype slot reserved for it
// at type-walk time (spec.md §4.5's "Function literal" emission rule).
func (c *Compiler) compileFuncLit(proto *chunk.FunctionProto, e *ast.FuncLit, ctx *context.Context) error {
	ft := e.ResolvedType()
	argNames := make([]string, len(e.Params))
	for i, p := range e.Params {
		argNames[i] = p.Name
	}
	upvalues, err := c.compileFunction(e.ProtoIndex, e.Body, argNames, ft.Args, ft.Result, ctx)
	if err != nil {
		return err
	}
	return proto.EmitMakeFunc(e.ProtoIndex, len(argNames), upvalues)
}

func (c *Compiler) compileConstant(proto *chunk.FunctionProto, v value.Value) error {
	k, err := c.chunk.AddConstant(v)
	if err != nil {
		return err
	}
	return proto.EmitConstant(k)
}

func (c *Compiler) addStringConstant(s string) (int, error) {
	str := value.NewString(c.heap, s)
	return c.chunk.AddConstant(value.Ref(str))
}
