// Package astutil holds small helpers that operate on internal/ast
// trees without belonging to the parser, resolver, or interpreter
// themselves — the same role the teacher's internal/interp/astutil
// package plays for its own AST. Dump is this repo's one concrete need:
// a JSON-friendly projection of the tree for the `ast` CLI subcommand
// (and its gjson --query) and the `run --dump-ast` flag, a feature spec.md's distillation
// dropped in favor of leaving the CLI "sketched for completeness".
package astutil

import "github.com/golox/lox/internal/ast"

// Dump converts statements into a JSON-marshalable tree: every node
// becomes a map with a "type" discriminator (the Go type name, without
// package or pointer) plus its fields, since ast.Stmt/ast.Expr are bare
// interfaces and encoding/json has no way to recover which concrete
// node produced a given struct on its own.
func Dump(statements []ast.Stmt) interface{} {
	out := make([]interface{}, len(statements))
	for i, stmt := range statements {
		out[i] = DumpStmt(stmt)
	}
	return out
}

// DumpStmt projects a single statement node.
func DumpStmt(stmt ast.Stmt) interface{} {
	if stmt == nil {
		return nil
	}
	switch s := stmt.(type) {
	case *ast.Block:
		return node("Block", map[string]interface{}{
			"statements": dumpStmts(s.Statements),
		})
	case *ast.Class:
		methods := make([]interface{}, len(s.Methods))
		for i, m := range s.Methods {
			methods[i] = DumpStmt(m)
		}
		var superclass interface{}
		if s.Superclass != nil {
			superclass = s.Superclass.Name.Lexeme
		}
		return node("Class", map[string]interface{}{
			"name":       s.Name.Lexeme,
			"superclass": superclass,
			"methods":    methods,
		})
	case *ast.Expression:
		return node("Expression", map[string]interface{}{
			"expr": DumpExpr(s.Expr),
		})
	case *ast.Function:
		params := make([]string, len(s.Params))
		for i, p := range s.Params {
			params[i] = p.Lexeme
		}
		return node("Function", map[string]interface{}{
			"name":   s.Name.Lexeme,
			"params": params,
			"body":   dumpStmts(s.Body),
		})
	case *ast.If:
		return node("If", map[string]interface{}{
			"condition":  DumpExpr(s.Condition),
			"thenBranch": DumpStmt(s.ThenBranch),
			"elseBranch": DumpStmt(s.ElseBranch),
		})
	case *ast.Print:
		return node("Print", map[string]interface{}{
			"expr": DumpExpr(s.Expr),
		})
	case *ast.Return:
		return node("Return", map[string]interface{}{
			"value": DumpExpr(s.Value),
		})
	case *ast.Var:
		return node("Var", map[string]interface{}{
			"name":        s.Name.Lexeme,
			"initializer": DumpExpr(s.Initializer),
		})
	case *ast.While:
		return node("While", map[string]interface{}{
			"condition": DumpExpr(s.Condition),
			"body":      DumpStmt(s.Body),
		})
	default:
		return node("Unknown", nil)
	}
}

// DumpExpr projects a single expression node.
func DumpExpr(expr ast.Expr) interface{} {
	if expr == nil {
		return nil
	}
	switch e := expr.(type) {
	case *ast.Assign:
		return node("Assign", map[string]interface{}{
			"name":  e.Name.Lexeme,
			"value": DumpExpr(e.Value),
		})
	case *ast.Binary:
		return node("Binary", map[string]interface{}{
			"left":     DumpExpr(e.Left),
			"operator": string(e.Operator.Kind),
			"right":    DumpExpr(e.Right),
		})
	case *ast.Call:
		args := make([]interface{}, len(e.Arguments))
		for i, a := range e.Arguments {
			args[i] = DumpExpr(a)
		}
		return node("Call", map[string]interface{}{
			"callee":    DumpExpr(e.Callee),
			"arguments": args,
		})
	case *ast.Get:
		return node("Get", map[string]interface{}{
			"object": DumpExpr(e.Object),
			"name":   e.Name.Lexeme,
		})
	case *ast.Set:
		return node("Set", map[string]interface{}{
			"object": DumpExpr(e.Object),
			"name":   e.Name.Lexeme,
			"value":  DumpExpr(e.Value),
		})
	case *ast.Grouping:
		return node("Grouping", map[string]interface{}{
			"expression": DumpExpr(e.Expression),
		})
	case *ast.Literal:
		return node("Literal", map[string]interface{}{
			"value": e.Value,
		})
	case *ast.Logical:
		return node("Logical", map[string]interface{}{
			"left":     DumpExpr(e.Left),
			"operator": string(e.Operator.Kind),
			"right":    DumpExpr(e.Right),
		})
	case *ast.Super:
		return node("Super", map[string]interface{}{
			"method": e.Method.Lexeme,
		})
	case *ast.This:
		return node("This", nil)
	case *ast.Unary:
		return node("Unary", map[string]interface{}{
			"operator": string(e.Operator.Kind),
			"right":    DumpExpr(e.Right),
		})
	case *ast.Variable:
		return node("Variable", map[string]interface{}{
			"name": e.Name.Lexeme,
		})
	default:
		return node("Unknown", nil)
	}
}

func dumpStmts(statements []ast.Stmt) []interface{} {
	out := make([]interface{}, len(statements))
	for i, s := range statements {
		out[i] = DumpStmt(s)
	}
	return out
}

func node(kind string, fields map[string]interface{}) map[string]interface{} {
	out := map[string]interface{}{"type": kind}
	for k, v := range fields {
		out[k] = v
	}
	return out
}
