// Package cfg implements component E: for one function body, it emits
// typed basic blocks and typed edges (including back edges), tracking
// nesting depth, decision points, and cyclomatic complexity. The recursive
// descent here follows §9's re-architecture guidance: an explicit builder
// value carries the block/edge lists and nesting depth, and recursive
// descent passes and returns the predecessor frontier rather than relying
// on hidden state, the same shape the teacher uses for its scope stack in
// analyzer/golang_analyzer.go's buildScopeHierarchy/processBlockScopes.
package cfg

import (
	"fmt"
	"strings"

	"github.com/astgraph/codescope/model"
	"github.com/astgraph/codescope/parsetree"
)

type edgeLinker struct {
	edgeType model.CFGEdgeType
	cond     *string
	used     bool
}

func unconditionalLinker() *edgeLinker {
	return &edgeLinker{edgeType: model.EdgeUnconditional}
}

func (l *edgeLinker) next() (model.CFGEdgeType, *string) {
	if !l.used {
		l.used = true
		return l.edgeType, l.cond
	}
	return model.EdgeUnconditional, nil
}

type loopFrame struct {
	headerID      int
	breakTargets  *[]int
}

// terminal is a return/throw block awaiting a link into the function's
// single synthesized exit block, keyed by the edge type that should carry
// it there.
type terminal struct {
	id       int
	edgeType model.CFGEdgeType
}

type state struct {
	blocks         []model.CFGBlock
	edges          []model.CFGEdge
	nextID         int
	maxNesting     int
	nesting        int
	decisionPoints int
	terminals      []terminal
	loopStack      []loopFrame
	breakStack     []*[]int
}

func (s *state) newBlockID() int {
	id := s.nextID
	s.nextID++
	return id
}

func (s *state) addBlock(b model.CFGBlock) int {
	b.ID = s.newBlockID()
	s.blocks = append(s.blocks, b)
	return b.ID
}

func (s *state) addEdge(from, to int, t model.CFGEdgeType, cond *string) {
	s.edges = append(s.edges, model.CFGEdge{From: from, To: to, Type: t, Condition: cond, IsBackEdge: t == model.EdgeBackEdge})
}

func (s *state) link(preds []int, to int, linker *edgeLinker) {
	if linker == nil {
		linker = unconditionalLinker()
	}
	t, cond := linker.next()
	for _, p := range preds {
		s.addEdge(p, to, t, cond)
	}
}

func (s *state) enterNesting() {
	s.nesting++
	if s.nesting > s.maxNesting {
		s.maxNesting = s.nesting
	}
}

func (s *state) leaveNesting() { s.nesting-- }

// pendingBlock accumulates consecutive sequential statements into one
// maximal straight-line body block, per §4.5's "sequential statement: one
// body block" rule.
type pendingBlock struct {
	statements []string
	lines      []int
	defines    []string
	uses       []string
	calls      []string
	startLine  int
	endLine    int
	span       model.Span
	started    bool
}

func (p *pendingBlock) add(stmt parsetree.Node) {
	sp := stmt.Span()
	if !p.started {
		p.startLine = sp.StartLine
		p.span = sp
		p.started = true
	}
	p.endLine = sp.EndLine
	p.span.EndLine = sp.EndLine
	p.span.EndColumn = sp.EndColumn
	p.statements = append(p.statements, strings.TrimSpace(stmt.Text()))
	p.lines = append(p.lines, sp.StartLine)
	d, u, c := collectRefs(stmt)
	p.defines = append(p.defines, d...)
	p.uses = append(p.uses, u...)
	p.calls = append(p.calls, c...)
}

func (p *pendingBlock) empty() bool { return !p.started }

func flush(s *state, p *pendingBlock, frontier []int, linker *edgeLinker) ([]int, int) {
	if p.empty() {
		return frontier, -1
	}
	id := s.addBlock(model.CFGBlock{
		Type:           model.BlockBody,
		StartLine:      p.startLine,
		EndLine:        p.endLine,
		Span:           p.span,
		Statements:     p.statements,
		StatementLines: p.lines,
		Calls:          model.SortSet(p.calls),
		Defines:        model.SortSet(p.defines),
		Uses:           model.SortSet(p.uses),
	})
	s.link(frontier, id, linker)
	*p = pendingBlock{}
	return []int{id}, id
}

func bodyStatements(body parsetree.Node) []parsetree.Node {
	if body == nil {
		return nil
	}
	if body.Kind() != parsetree.KindStatementBlock {
		return []parsetree.Node{body}
	}
	var out []parsetree.Node
	for _, c := range body.Children() {
		switch c.Kind() {
		case "{", "}", parsetree.KindComment:
			continue
		default:
			out = append(out, c)
		}
	}
	return out
}

// Build runs the CFG builder over a function's body node, producing its
// CFGInfo. functionName/filePath are carried through for reporting.
func Build(functionName, filePath string, body parsetree.Node) *model.CFGInfo {
	s := &state{}
	entryID := s.addBlock(model.CFGBlock{Type: model.BlockEntry})

	frontier, _ := processStatements(s, []int{entryID}, bodyStatements(body), unconditionalLinker())

	// Every function gets exactly one synthesized exit block: every
	// return/throw terminal and any statements falling off the end of the
	// body link into it, so the McCabe formula (E-N+2) sees the decision
	// points fanning into a shared sink rather than a tree of disconnected
	// leaves.
	exitID := s.addBlock(model.CFGBlock{Type: model.BlockExit})
	for _, t := range s.terminals {
		s.addEdge(t.id, exitID, t.edgeType, nil)
	}
	if len(frontier) > 0 {
		s.link(frontier, exitID, unconditionalLinker())
	}

	info := &model.CFGInfo{
		FunctionName:    functionName,
		FilePath:        filePath,
		Blocks:          s.blocks,
		Edges:           s.edges,
		EntryBlock:      entryID,
		ExitBlocks:      []int{exitID},
		MaxNestingDepth: s.maxNesting,
		DecisionPoints:  s.decisionPoints,
		NestedFunctions: map[string]*model.CFGInfo{},
	}
	info.CyclomaticComplexity = complexity(len(s.edges), len(s.blocks))
	info.NestedFunctions = nestedCFGs(functionName, filePath, body)
	return info
}

// nestedCFGs recurses into function-like nodes found directly within body
// (stopping descent at each one so its own nested functions are attributed
// to it, not hoisted to this level), building a CFGInfo for each.
func nestedCFGs(functionName, filePath string, body parsetree.Node) map[string]*model.CFGInfo {
	if body == nil {
		return map[string]*model.CFGInfo{}
	}
	var nodes []parsetree.Node
	collectNestedFunctionNodes(body, &nodes)
	out := map[string]*model.CFGInfo{}
	anonCount := 0
	for _, fn := range nodes {
		name := nestedFunctionName(fn)
		if name == "" {
			anonCount++
			name = fmt.Sprintf("%s.<anonymous:%d>", functionName, anonCount)
		}
		out[name] = Build(name, filePath, fn.ChildByFieldName("body"))
	}
	return out
}

func collectNestedFunctionNodes(n parsetree.Node, out *[]parsetree.Node) {
	for _, c := range n.Children() {
		if isFunctionLike(c) {
			*out = append(*out, c)
			continue
		}
		collectNestedFunctionNodes(c, out)
	}
}

func isFunctionLike(n parsetree.Node) bool {
	switch n.Kind() {
	case parsetree.KindFunctionDeclaration, parsetree.KindGeneratorFunctionDecl,
		parsetree.KindArrowFunction, parsetree.KindFunctionExpression:
		return true
	}
	return false
}

func nestedFunctionName(n parsetree.Node) string {
	if name := n.ChildByFieldName("name"); name != nil {
		return name.Text()
	}
	return ""
}

// complexity implements §3's cyclomaticComplexity = max(1, E − N + 2).
func complexity(edges, blocks int) int {
	v := edges - blocks + 2
	if v < 1 {
		return 1
	}
	return v
}

// processStatements walks stmts sequentially, merging straight-line runs
// into single body blocks and dispatching control-flow statements to their
// dedicated handlers per §4.5's decision table. It returns the resulting
// predecessor frontier and the ID of the first block it created (-1 if
// stmts produced none, used by switch-case fallthrough wiring).
func processStatements(s *state, frontier []int, stmts []parsetree.Node, linker *edgeLinker) ([]int, int) {
	pending := &pendingBlock{}
	firstID := -1
	noteFirst := func(id int) {
		if firstID == -1 {
			firstID = id
		}
	}
	flushNow := func() {
		var id int
		frontier, id = flush(s, pending, frontier, linker)
		if id != -1 {
			noteFirst(id)
		}
	}
	for _, stmt := range stmts {
		switch stmt.Kind() {
		case parsetree.KindIfStatement:
			flushNow()
			var id int
			frontier, id = processIf(s, frontier, stmt, linker)
			noteFirst(id)
			linker = unconditionalLinker()
		case parsetree.KindForStatement, parsetree.KindForInStatement, parsetree.KindForOfStatement, parsetree.KindWhileStatement:
			flushNow()
			var id int
			frontier, id = processLoop(s, frontier, stmt, linker)
			noteFirst(id)
			linker = unconditionalLinker()
		case parsetree.KindDoStatement:
			flushNow()
			var id int
			frontier, id = processDoWhile(s, frontier, stmt, linker)
			noteFirst(id)
			linker = unconditionalLinker()
		case parsetree.KindSwitchStatement:
			flushNow()
			var id int
			frontier, id = processSwitch(s, frontier, stmt, linker)
			noteFirst(id)
			linker = unconditionalLinker()
		case parsetree.KindTryStatement:
			flushNow()
			var id int
			frontier, id = processTry(s, frontier, stmt, linker)
			noteFirst(id)
			linker = unconditionalLinker()
		case parsetree.KindReturnStatement:
			flushNow()
			id := s.addBlock(blockFromStatement(model.BlockReturn, stmt))
			s.link(frontier, id, linker)
			noteFirst(id)
			s.terminals = append(s.terminals, terminal{id: id, edgeType: model.EdgeReturn})
			frontier = nil
			linker = unconditionalLinker()
		case parsetree.KindThrowStatement:
			flushNow()
			id := s.addBlock(blockFromStatement(model.BlockThrow, stmt))
			s.link(frontier, id, linker)
			noteFirst(id)
			s.terminals = append(s.terminals, terminal{id: id, edgeType: model.EdgeThrow})
			frontier = nil
			linker = unconditionalLinker()
		case parsetree.KindBreakStatement:
			flushNow()
			id := s.addBlock(blockFromStatement(model.BlockBody, stmt))
			s.link(frontier, id, linker)
			noteFirst(id)
			if len(s.breakStack) > 0 {
				target := s.breakStack[len(s.breakStack)-1]
				*target = append(*target, id)
			}
			frontier = nil
			linker = unconditionalLinker()
		case parsetree.KindContinueStatement:
			flushNow()
			id := s.addBlock(blockFromStatement(model.BlockBody, stmt))
			s.link(frontier, id, linker)
			noteFirst(id)
			if len(s.loopStack) > 0 {
				header := s.loopStack[len(s.loopStack)-1].headerID
				s.addEdge(id, header, model.EdgeContinue, nil)
			}
			frontier = nil
			linker = unconditionalLinker()
		default:
			pending.add(stmt)
		}
	}
	flushNow()
	return frontier, firstID
}

func blockFromStatement(t model.BlockType, stmt parsetree.Node) model.CFGBlock {
	d, u, c := collectRefs(stmt)
	sp := stmt.Span()
	return model.CFGBlock{
		Type:       t,
		StartLine:  sp.StartLine,
		EndLine:    sp.EndLine,
		Span:       sp,
		Statements: []string{strings.TrimSpace(stmt.Text())},
		Defines:    model.SortSet(d),
		Uses:       model.SortSet(u),
		Calls:      model.SortSet(c),
	}
}
