package prettyprinter

import (
	"strconv"
	"strings"

	"github.com/funvibe/ollang/internal/ast"
)

// --- Tree Printer (Output is an s-expression per statement) ---

// TreePrinter renders the exact tree shape, with every operator
// application parenthesized. Parser tests compare against it.
type TreePrinter struct {
	buf strings.Builder
}

func NewTreePrinter() *TreePrinter {
	return &TreePrinter{}
}

// Tree renders node as s-expressions, one line per top-level statement.
func Tree(node ast.Node) string {
	p := NewTreePrinter()
	node.Accept(p)
	return p.String()
}

func (p *TreePrinter) String() string {
	return p.buf.String()
}

func (p *TreePrinter) write(s string) {
	p.buf.WriteString(s)
}

func (p *TreePrinter) node(n ast.Node) {
	if n == nil {
		p.write("nil")
		return
	}
	n.Accept(p)
}

// form writes (head child child ...).
func (p *TreePrinter) form(head string, children ...ast.Node) {
	p.write("(" + head)
	for _, c := range children {
		p.write(" ")
		p.node(c)
	}
	p.write(")")
}

func exprNodes(exprs []ast.Expression) []ast.Node {
	nodes := make([]ast.Node, 0, len(exprs))
	for _, e := range exprs {
		nodes = append(nodes, e)
	}
	return nodes
}

func (p *TreePrinter) VisitProgram(n *ast.Program) {
	for i, stmt := range n.Statements {
		if i > 0 {
			p.write("\n")
		}
		p.node(stmt)
	}
}

func (p *TreePrinter) VisitExpressionStatement(n *ast.ExpressionStatement) {
	p.node(n.Expression)
}

func (p *TreePrinter) VisitBlockStatement(n *ast.BlockStatement) {
	nodes := make([]ast.Node, 0, len(n.Statements))
	for _, s := range n.Statements {
		nodes = append(nodes, s)
	}
	p.form("block", nodes...)
}

func (p *TreePrinter) VisitFunctionStatement(n *ast.FunctionStatement) {
	head := "func"
	if n.Async {
		head = "async-func"
	}
	params := make([]string, 0, len(n.Parameters))
	for _, param := range n.Parameters {
		params = append(params, param.Value)
	}
	p.write("(" + head + " " + n.Name.Value + " (" + strings.Join(params, " ") + ") ")
	p.node(n.Body)
	p.write(")")
}

func (p *TreePrinter) VisitIfStatement(n *ast.IfStatement) {
	if n.Alternative == nil {
		p.form("if", n.Condition, n.Consequence)
		return
	}
	p.form("if", n.Condition, n.Consequence, n.Alternative)
}

func (p *TreePrinter) VisitWhileStatement(n *ast.WhileStatement) {
	p.form("while", n.Condition, n.Body)
}

func (p *TreePrinter) VisitForStatement(n *ast.ForStatement) {
	p.form("for", n.Variable, n.Iterable, n.Body)
}

func (p *TreePrinter) VisitReturnStatement(n *ast.ReturnStatement) {
	if n.Value == nil {
		p.write("(return)")
		return
	}
	p.form("return", n.Value)
}

func (p *TreePrinter) VisitThrowStatement(n *ast.ThrowStatement) {
	p.form("throw", n.Value)
}

func (p *TreePrinter) VisitTryStatement(n *ast.TryStatement) {
	p.form("try", n.Body, n.CatchVar, n.Handler)
}

func (p *TreePrinter) VisitImportStatement(n *ast.ImportStatement) {
	p.form("import", n.Path)
}

func (p *TreePrinter) VisitImportDLLStatement(n *ast.ImportDLLStatement) {
	if n.Alias == nil {
		p.form("importdll", n.Path, n.Symbol)
		return
	}
	p.form("importdll", n.Path, n.Symbol, n.Alias)
}

func (p *TreePrinter) VisitNamespaceStatement(n *ast.NamespaceStatement) {
	p.form("namespace", n.Name, n.Body)
}

func (p *TreePrinter) VisitIdentifier(n *ast.Identifier) {
	p.write(n.Value)
}

func (p *TreePrinter) VisitNumberLiteral(n *ast.NumberLiteral) {
	p.write(strconv.FormatFloat(n.Value, 'g', -1, 64))
}

func (p *TreePrinter) VisitStringLiteral(n *ast.StringLiteral) {
	p.write(strconv.Quote(n.Value))
}

func (p *TreePrinter) VisitBooleanLiteral(n *ast.BooleanLiteral) {
	p.write(strconv.FormatBool(n.Value))
}

func (p *TreePrinter) VisitNullLiteral(n *ast.NullLiteral) {
	p.write("null")
}

func (p *TreePrinter) VisitArrayLiteral(n *ast.ArrayLiteral) {
	p.form("array", exprNodes(n.Elements)...)
}

func (p *TreePrinter) VisitListComprehension(n *ast.ListComprehension) {
	if n.Condition == nil {
		p.form("comp", n.Output, n.Variable, n.Iterable)
		return
	}
	p.form("comp", n.Output, n.Variable, n.Iterable, n.Condition)
}

func (p *TreePrinter) VisitDictLiteral(n *ast.DictLiteral) {
	p.write("(dict")
	for _, pair := range n.Pairs {
		p.write(" (")
		p.node(pair.Key)
		p.write(" ")
		p.node(pair.Value)
		p.write(")")
	}
	p.write(")")
}

func (p *TreePrinter) VisitPrefixExpression(n *ast.PrefixExpression) {
	p.form(n.Operator, n.Right)
}

func (p *TreePrinter) VisitInfixExpression(n *ast.InfixExpression) {
	p.form(n.Operator, n.Left, n.Right)
}

func (p *TreePrinter) VisitAssignExpression(n *ast.AssignExpression) {
	p.form("=", n.Target, n.Value)
}

func (p *TreePrinter) VisitCallExpression(n *ast.CallExpression) {
	p.form("call", append([]ast.Node{n.Function}, exprNodes(n.Arguments)...)...)
}

func (p *TreePrinter) VisitIndexExpression(n *ast.IndexExpression) {
	p.form("index", n.Left, n.Index)
}

func (p *TreePrinter) VisitMemberExpression(n *ast.MemberExpression) {
	p.form(".", n.Left, n.Member)
}

func (p *TreePrinter) VisitAwaitExpression(n *ast.AwaitExpression) {
	p.form("await", n.Value)
}

func (p *TreePrinter) VisitAllocExpression(n *ast.AllocExpression) {
	p.form("alloc", n.Size)
}

func (p *TreePrinter) VisitFreeExpression(n *ast.FreeExpression) {
	p.form("free", n.Pointer)
}

func (p *TreePrinter) VisitReadExpression(n *ast.ReadExpression) {
	p.write("(read ")
	p.node(n.Pointer)
	p.write(" ")
	p.node(n.Offset)
	p.write(" " + n.TypeName + ")")
}

func (p *TreePrinter) VisitWriteExpression(n *ast.WriteExpression) {
	p.write("(write ")
	p.node(n.Pointer)
	p.write(" ")
	p.node(n.Offset)
	p.write(" ")
	p.node(n.Value)
	p.write(" " + n.TypeName + ")")
}

func (p *TreePrinter) VisitSyscallExpression(n *ast.SyscallExpression) {
	p.form("syscall", append([]ast.Node{n.Code}, exprNodes(n.Arguments)...)...)
}
