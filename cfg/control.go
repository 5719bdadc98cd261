package cfg

import (
	"strings"

	"github.com/astgraph/codescope/model"
	"github.com/astgraph/codescope/parsetree"
)

// headerBlock builds a one-line block for a branch/loop-header/catch
// construct from its header node (condition, loop test, or catch
// parameter) rather than the whole statement, so a multi-line if/for/catch
// body is not duplicated into its own header block's text and refs.
func headerBlock(t model.BlockType, stmt, header parsetree.Node) model.CFGBlock {
	if header == nil {
		sp := stmt.Span()
		return model.CFGBlock{Type: t, StartLine: sp.StartLine, EndLine: sp.StartLine, Span: sp}
	}
	_, uses, calls := collectRefs(header)
	sp := header.Span()
	return model.CFGBlock{
		Type:      t,
		StartLine: sp.StartLine,
		EndLine:   sp.EndLine,
		Span:      sp,
		Statements: []string{strings.TrimSpace(header.Text())},
		Uses:      model.SortSet(uses),
		Calls:     model.SortSet(calls),
	}
}

// processIf implements §4.5's if/else-if/else chain handling: one branch
// block per if, a "true" edge into the consequence, a "false" edge into an
// else/else-if chain (or, when there is no else, an untyped fall-through
// left for the caller's next block to pick up — there is no source text to
// label that implicit path with, so it is not given a condition).
func processIf(s *state, frontier []int, stmt parsetree.Node, linker *edgeLinker) ([]int, int) {
	condNode := stmt.ChildByFieldName("condition")
	branchID := s.addBlock(headerBlock(model.BlockBranch, stmt, condNode))
	s.link(frontier, branchID, linker)
	s.decisionPoints++
	s.enterNesting()
	defer s.leaveNesting()

	condStr := condText(condNode)

	consequence := stmt.ChildByFieldName("consequence")
	trueLinker := &edgeLinker{edgeType: model.EdgeTrue, cond: condStr}
	consFrontier, _ := processStatements(s, []int{branchID}, bodyStatements(consequence), trueLinker)

	var altFrontier []int
	if alt := stmt.ChildByFieldName("alternative"); alt != nil {
		inner := unwrapElse(alt)
		falseLinker := &edgeLinker{edgeType: model.EdgeFalse, cond: condStr}
		if inner.Kind() == parsetree.KindIfStatement {
			altFrontier, _ = processIf(s, []int{branchID}, inner, falseLinker)
		} else {
			altFrontier, _ = processStatements(s, []int{branchID}, bodyStatements(inner), falseLinker)
		}
	} else {
		altFrontier = []int{branchID}
	}
	return append(consFrontier, altFrontier...), branchID
}

func unwrapElse(alt parsetree.Node) parsetree.Node {
	if alt.Kind() != parsetree.KindElseClause {
		return alt
	}
	named := alt.NamedChildren()
	if len(named) == 0 {
		return alt
	}
	return named[0]
}

// processLoop implements §4.5's for/for-in/for-of/while handling: a loop
// header block carrying the test, a back edge from the body's end to the
// header, and break targets collected from the body merged into the exit
// frontier alongside the header's own (implicit, untyped) false exit.
func processLoop(s *state, frontier []int, stmt parsetree.Node, linker *edgeLinker) ([]int, int) {
	loopCond := loopCondition(stmt)
	headerID := s.addBlock(headerBlock(model.BlockLoopHeader, stmt, loopCond))
	s.link(frontier, headerID, linker)
	s.decisionPoints++
	s.enterNesting()
	defer s.leaveNesting()

	condStr := condText(loopCond)
	breakTargets := &[]int{}
	s.loopStack = append(s.loopStack, loopFrame{headerID: headerID, breakTargets: breakTargets})
	s.breakStack = append(s.breakStack, breakTargets)

	body := stmt.ChildByFieldName("body")
	trueLinker := &edgeLinker{edgeType: model.EdgeTrue, cond: condStr}
	bodyFrontier, _ := processStatements(s, []int{headerID}, bodyStatements(body), trueLinker)
	for _, p := range bodyFrontier {
		s.addEdge(p, headerID, model.EdgeBackEdge, nil)
	}

	s.loopStack = s.loopStack[:len(s.loopStack)-1]
	s.breakStack = s.breakStack[:len(s.breakStack)-1]

	exit := append([]int{headerID}, *breakTargets...)
	return exit, headerID
}

// loopCondition picks the field carrying the loop's test expression across
// for/for-in/for-of/while's differing grammars.
func loopCondition(stmt parsetree.Node) parsetree.Node {
	if c := stmt.ChildByFieldName("condition"); c != nil {
		return c
	}
	if c := stmt.ChildByFieldName("right"); c != nil {
		return c
	}
	return nil
}

// processDoWhile implements §4.5's do-while handling: the body runs before
// the condition is ever tested, so the condition block is reserved up front
// (to give continue a target) and back-filled once the body has been
// walked.
func processDoWhile(s *state, frontier []int, stmt parsetree.Node, linker *edgeLinker) ([]int, int) {
	s.enterNesting()
	defer s.leaveNesting()

	condID := s.addBlock(model.CFGBlock{Type: model.BlockLoopHeader})
	breakTargets := &[]int{}
	s.loopStack = append(s.loopStack, loopFrame{headerID: condID, breakTargets: breakTargets})
	s.breakStack = append(s.breakStack, breakTargets)

	body := stmt.ChildByFieldName("body")
	bodyFrontier, firstID := processStatements(s, frontier, bodyStatements(body), linker)

	condNode := stmt.ChildByFieldName("condition")
	condStr := condText(condNode)
	block := headerBlock(model.BlockLoopHeader, stmt, condNode)
	block.ID = condID
	s.blocks[blockIndex(s, condID)] = block
	s.decisionPoints++

	s.link(bodyFrontier, condID, unconditionalLinker())
	if firstID != -1 {
		s.addEdge(condID, firstID, model.EdgeBackEdge, condStr)
	}

	s.loopStack = s.loopStack[:len(s.loopStack)-1]
	s.breakStack = s.breakStack[:len(s.breakStack)-1]

	exit := append([]int{condID}, *breakTargets...)
	return exit, firstID
}

func blockIndex(s *state, id int) int {
	for i := range s.blocks {
		if s.blocks[i].ID == id {
			return i
		}
	}
	return -1
}

// processSwitch implements §4.5's switch handling: one block per case,
// case/default edges from the scrutinee branch, fallthrough edges chained
// between cases lacking a break, and break targets plus (when there is no
// default) the branch's own implicit no-match path merged into the exit
// frontier.
func processSwitch(s *state, frontier []int, stmt parsetree.Node, linker *edgeLinker) ([]int, int) {
	branchID := s.addBlock(headerBlock(model.BlockBranch, stmt, stmt.ChildByFieldName("value")))
	s.link(frontier, branchID, linker)
	s.decisionPoints++
	s.enterNesting()
	defer s.leaveNesting()

	breakTargets := &[]int{}
	s.breakStack = append(s.breakStack, breakTargets)

	var cases []parsetree.Node
	if body := stmt.ChildByFieldName("body"); body != nil {
		for _, c := range body.Children() {
			if c.Kind() == parsetree.KindSwitchCase || c.Kind() == parsetree.KindSwitchDefault {
				cases = append(cases, c)
			}
		}
	}

	hasDefault := false
	var fallthroughFrom []int
	for _, c := range cases {
		isDefault := c.Kind() == parsetree.KindSwitchDefault
		var caseCond *string
		if isDefault {
			hasDefault = true
		} else if v := c.ChildByFieldName("value"); v != nil {
			caseCond = condText(v)
		}
		edgeType := model.EdgeCase
		if isDefault {
			edgeType = model.EdgeDefault
		}
		caseLinker := &edgeLinker{edgeType: edgeType, cond: caseCond}
		caseFrontier, firstID := processStatements(s, []int{branchID}, caseBodyStatements(c), caseLinker)
		if firstID == -1 {
			empty := s.addBlock(model.CFGBlock{Type: model.BlockBody})
			s.link([]int{branchID}, empty, caseLinker)
			firstID = empty
			caseFrontier = []int{empty}
		}
		for _, p := range fallthroughFrom {
			s.addEdge(p, firstID, model.EdgeFallthrough, nil)
		}
		fallthroughFrom = caseFrontier
	}

	s.breakStack = s.breakStack[:len(s.breakStack)-1]

	exit := append([]int{}, *breakTargets...)
	exit = append(exit, fallthroughFrom...)
	if !hasDefault {
		exit = append(exit, branchID)
	}
	return exit, branchID
}

func caseBodyStatements(c parsetree.Node) []parsetree.Node {
	value := c.ChildByFieldName("value")
	hasSkip := value != nil
	var skipStart, skipEnd uint32
	if hasSkip {
		skipStart, skipEnd = value.StartByte(), value.EndByte()
	}
	var out []parsetree.Node
	for _, ch := range c.NamedChildren() {
		if hasSkip && ch.StartByte() == skipStart && ch.EndByte() == skipEnd {
			continue
		}
		out = append(out, ch)
	}
	return out
}

// processTry implements §4.5's try/catch/finally handling: the catch block
// is reached by a single throw edge from the try body's first block (the
// whole try body is treated as one exception source), and the catch's and
// try's frontiers both feed finally when present.
func processTry(s *state, frontier []int, stmt parsetree.Node, linker *edgeLinker) ([]int, int) {
	s.enterNesting()
	defer s.leaveNesting()

	tryBody := stmt.ChildByFieldName("body")
	tryFrontier, firstID := processStatements(s, frontier, bodyStatements(tryBody), linker)

	merged := append([]int{}, tryFrontier...)

	if catch := findChild(stmt, parsetree.KindCatchClause); catch != nil {
		catchID := s.addBlock(headerBlock(model.BlockCatch, catch, catch.ChildByFieldName("parameter")))
		// The catch block is reachable from anywhere inside the try body; it
		// is attached by one edge from the try body's first block (or, when
		// the body produced no blocks, from the head of the incoming
		// frontier). The try body's own frontier does not link to it.
		s.addEdge(firstOr(firstID, frontierHead(frontier)), catchID, model.EdgeThrow, nil)
		catchFrontier, _ := processStatements(s, []int{catchID}, bodyStatements(catch.ChildByFieldName("body")), unconditionalLinker())
		merged = append(merged, catchFrontier...)
	}

	if finallyNode := findChild(stmt, parsetree.KindFinallyClause); finallyNode != nil {
		finallyBody := finallyNode.ChildByFieldName("body")
		finallyFrontier, _ := processStatements(s, merged, bodyStatements(finallyBody), unconditionalLinker())
		return finallyFrontier, firstID
	}

	return merged, firstID
}

func findChild(n parsetree.Node, kind string) parsetree.Node {
	for _, c := range n.Children() {
		if c.Kind() == kind {
			return c
		}
	}
	return nil
}

func firstOr(id, fallback int) int {
	if id != -1 {
		return id
	}
	return fallback
}

func frontierHead(frontier []int) int {
	if len(frontier) == 0 {
		return -1
	}
	return frontier[0]
}
