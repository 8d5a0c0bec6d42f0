package prettyprinter

import (
	"bytes"
	"strconv"

	"github.com/funvibe/ollang/internal/ast"
)

// --- Code Printer (Output looks like source code) ---

// Operator precedence (higher = binds tighter), mirroring the parser.
var operatorPrecedence = map[string]int{
	"=":  1,
	"&&": 2,
	"||": 2,
	"&":  2,
	"|":  2,
	"^":  2,
	"<":  3,
	">":  3,
	"<=": 3,
	">=": 3,
	"==": 3,
	"!=": 3,
	"+":  4,
	"-":  4,
	"<<": 4,
	">>": 4,
	"*":  5,
	"/":  5,
	"%":  5,
	"**": 6, // Power (right-assoc)
}

func getPrecedence(op string) int {
	if p, ok := operatorPrecedence[op]; ok {
		return p
	}
	return 10 // Default high precedence for unknown ops
}

// Right-associative operators
var rightAssoc = map[string]bool{
	"**": true,
	"=":  true,
}

type CodePrinter struct {
	buf    bytes.Buffer
	indent int
}

func NewCodePrinter() *CodePrinter {
	return &CodePrinter{}
}

// Print renders node as source text.
func Print(node ast.Node) string {
	p := NewCodePrinter()
	node.Accept(p)
	return p.String()
}

func (p *CodePrinter) String() string {
	return p.buf.String()
}

func (p *CodePrinter) write(s string) {
	p.buf.WriteString(s)
}

func (p *CodePrinter) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.buf.WriteString("    ")
	}
}

// printExpr prints an expression, adding parentheses only if needed
func (p *CodePrinter) printExpr(expr ast.Expression, parentPrec int, isRight bool) {
	if expr == nil {
		p.write("<???>")
		return
	}
	var op string
	var left, right ast.Expression
	switch e := expr.(type) {
	case *ast.InfixExpression:
		op, left, right = e.Operator, e.Left, e.Right
	case *ast.AssignExpression:
		op, left, right = "=", e.Target, e.Value
	default:
		// For non-infix expressions, just use visitor
		expr.Accept(p)
		return
	}

	prec := getPrecedence(op)
	needParens := prec < parentPrec
	// For same precedence, check associativity
	if prec == parentPrec {
		if isRight && !rightAssoc[op] {
			needParens = true
		} else if !isRight && rightAssoc[op] {
			needParens = true
		}
	}
	if needParens {
		p.write("(")
	}
	p.printExpr(left, prec, false)
	p.write(" " + op + " ")
	p.printExpr(right, prec, true)
	if needParens {
		p.write(")")
	}
}

func (p *CodePrinter) printList(exprs []ast.Expression) {
	for i, e := range exprs {
		if i > 0 {
			p.write(", ")
		}
		p.printExpr(e, 0, false)
	}
}

func (p *CodePrinter) printBlock(b *ast.BlockStatement) {
	if b == nil {
		p.write("{}")
		return
	}
	p.write("{\n")
	p.indent++
	for _, stmt := range b.Statements {
		p.writeIndent()
		stmt.Accept(p)
		p.write("\n")
	}
	p.indent--
	p.writeIndent()
	p.write("}")
}

func (p *CodePrinter) VisitProgram(n *ast.Program) {
	for _, stmt := range n.Statements {
		if stmt != nil {
			stmt.Accept(p)
		} else {
			p.write("<???>")
		}
		p.write("\n")
	}
}

func (p *CodePrinter) VisitExpressionStatement(n *ast.ExpressionStatement) {
	p.printExpr(n.Expression, 0, false)
}

func (p *CodePrinter) VisitBlockStatement(n *ast.BlockStatement) {
	p.printBlock(n)
}

func (p *CodePrinter) VisitFunctionStatement(n *ast.FunctionStatement) {
	if n.Async {
		p.write("async ")
	}
	p.write("func " + n.Name.Value + "(")
	for i, param := range n.Parameters {
		if i > 0 {
			p.write(", ")
		}
		p.write(param.Value)
	}
	p.write(") ")
	p.printBlock(n.Body)
}

func (p *CodePrinter) VisitIfStatement(n *ast.IfStatement) {
	p.write("if ")
	p.printExpr(n.Condition, 0, false)
	p.write(" ")
	p.printBlock(n.Consequence)
	if n.Alternative == nil {
		return
	}
	p.write(" else ")
	// else-if chains are stored as a block holding a single if
	if len(n.Alternative.Statements) == 1 {
		if nested, ok := n.Alternative.Statements[0].(*ast.IfStatement); ok {
			nested.Accept(p)
			return
		}
	}
	p.printBlock(n.Alternative)
}

func (p *CodePrinter) VisitWhileStatement(n *ast.WhileStatement) {
	p.write("while ")
	p.printExpr(n.Condition, 0, false)
	p.write(" ")
	p.printBlock(n.Body)
}

func (p *CodePrinter) VisitForStatement(n *ast.ForStatement) {
	p.write("for " + n.Variable.Value + " in ")
	p.printExpr(n.Iterable, 0, false)
	p.write(" ")
	p.printBlock(n.Body)
}

func (p *CodePrinter) VisitReturnStatement(n *ast.ReturnStatement) {
	p.write("return")
	if n.Value != nil {
		p.write(" ")
		p.printExpr(n.Value, 0, false)
	}
}

func (p *CodePrinter) VisitThrowStatement(n *ast.ThrowStatement) {
	p.write("throw ")
	p.printExpr(n.Value, 0, false)
}

func (p *CodePrinter) VisitTryStatement(n *ast.TryStatement) {
	p.write("try ")
	p.printBlock(n.Body)
	p.write(" catch (" + n.CatchVar.Value + ") ")
	p.printBlock(n.Handler)
}

func (p *CodePrinter) VisitImportStatement(n *ast.ImportStatement) {
	p.write("import " + strconv.Quote(n.Path.Value))
}

func (p *CodePrinter) VisitImportDLLStatement(n *ast.ImportDLLStatement) {
	p.write("ImportDLL(")
	args := []ast.Expression{n.Path, n.Symbol}
	if n.Alias != nil {
		args = append(args, n.Alias)
	}
	p.printList(args)
	p.write(")")
}

func (p *CodePrinter) VisitNamespaceStatement(n *ast.NamespaceStatement) {
	p.write("namespace " + n.Name.Value + " ")
	p.printBlock(n.Body)
}

func (p *CodePrinter) VisitIdentifier(n *ast.Identifier) {
	p.write(n.Value)
}

func (p *CodePrinter) VisitNumberLiteral(n *ast.NumberLiteral) {
	p.write(n.Token.Lexeme)
}

func (p *CodePrinter) VisitStringLiteral(n *ast.StringLiteral) {
	p.write(strconv.Quote(n.Value))
}

func (p *CodePrinter) VisitBooleanLiteral(n *ast.BooleanLiteral) {
	p.write(strconv.FormatBool(n.Value))
}

func (p *CodePrinter) VisitNullLiteral(n *ast.NullLiteral) {
	p.write("null")
}

func (p *CodePrinter) VisitArrayLiteral(n *ast.ArrayLiteral) {
	p.write("[")
	p.printList(n.Elements)
	p.write("]")
}

func (p *CodePrinter) VisitListComprehension(n *ast.ListComprehension) {
	p.write("[")
	p.printExpr(n.Output, 0, false)
	p.write(" for " + n.Variable.Value + " in ")
	p.printExpr(n.Iterable, 0, false)
	if n.Condition != nil {
		p.write(" if ")
		p.printExpr(n.Condition, 0, false)
	}
	p.write("]")
}

func (p *CodePrinter) VisitDictLiteral(n *ast.DictLiteral) {
	p.write("{")
	for i, pair := range n.Pairs {
		if i > 0 {
			p.write(", ")
		}
		p.write(strconv.Quote(pair.Key.Value) + ": ")
		p.printExpr(pair.Value, 0, false)
	}
	p.write("}")
}

func (p *CodePrinter) VisitPrefixExpression(n *ast.PrefixExpression) {
	p.write(n.Operator)
	// Prefix has high precedence
	p.printExpr(n.Right, 100, false)
}

func (p *CodePrinter) VisitInfixExpression(n *ast.InfixExpression) {
	// When called directly (not via printExpr), use lowest precedence context
	p.printExpr(n, 0, false)
}

func (p *CodePrinter) VisitAssignExpression(n *ast.AssignExpression) {
	p.printExpr(n, 0, false)
}

func (p *CodePrinter) VisitCallExpression(n *ast.CallExpression) {
	p.printExpr(n.Function, 100, false)
	p.write("(")
	p.printList(n.Arguments)
	p.write(")")
}

func (p *CodePrinter) VisitIndexExpression(n *ast.IndexExpression) {
	p.printExpr(n.Left, 100, false)
	p.write("[")
	p.printExpr(n.Index, 0, false)
	p.write("]")
}

func (p *CodePrinter) VisitMemberExpression(n *ast.MemberExpression) {
	p.printExpr(n.Left, 100, false)
	p.write("." + n.Member.Value)
}

func (p *CodePrinter) VisitAwaitExpression(n *ast.AwaitExpression) {
	p.write("await ")
	p.printExpr(n.Value, 100, false)
}

func (p *CodePrinter) VisitAllocExpression(n *ast.AllocExpression) {
	p.write("alloc(")
	p.printExpr(n.Size, 0, false)
	p.write(")")
}

func (p *CodePrinter) VisitFreeExpression(n *ast.FreeExpression) {
	p.write("free(")
	p.printExpr(n.Pointer, 0, false)
	p.write(")")
}

func (p *CodePrinter) VisitReadExpression(n *ast.ReadExpression) {
	p.write("read(")
	p.printList([]ast.Expression{n.Pointer, n.Offset})
	p.write(", " + strconv.Quote(n.TypeName) + ")")
}

func (p *CodePrinter) VisitWriteExpression(n *ast.WriteExpression) {
	p.write("write(")
	p.printList([]ast.Expression{n.Pointer, n.Offset, n.Value})
	p.write(", " + strconv.Quote(n.TypeName) + ")")
}

func (p *CodePrinter) VisitSyscallExpression(n *ast.SyscallExpression) {
	p.write("syscall(")
	p.printList(append([]ast.Expression{n.Code}, n.Arguments...))
	p.write(")")
}
