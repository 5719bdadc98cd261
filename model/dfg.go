package model

// VarRefType classifies one occurrence of a variable.
type VarRefType string

const (
	RefDef     VarRefType = "def"
	RefUse     VarRefType = "use"
	RefUpdate  VarRefType = "update"
	RefParam   VarRefType = "param"
	RefCapture VarRefType = "capture"
)

// VarRef is one occurrence of a variable name in a function body.
type VarRef struct {
	Name        string     `json:"name" yaml:"name"`
	Type        VarRefType `json:"type" yaml:"type"`
	Line        int        `json:"line" yaml:"line"`
	Column      int        `json:"column" yaml:"column"`
	Scope       string     `json:"scope" yaml:"scope"`
	IsInClosure bool       `json:"isInClosure" yaml:"isInClosure"`
	Expression  *string    `json:"expression,omitempty" yaml:"expression,omitempty"`
}

// DefUseEdge connects a definition of a variable to a subsequent use that
// may observe its value.
type DefUseEdge struct {
	Variable          string `json:"variable" yaml:"variable"`
	Def               VarRef `json:"def" yaml:"def"`
	Use               VarRef `json:"use" yaml:"use"`
	IsMayReach        bool   `json:"isMayReach" yaml:"isMayReach"`
	HasInterveningDef bool   `json:"hasInterveningDef" yaml:"hasInterveningDef"`
}

// DFGInfo is the L4 record for one function body.
type DFGInfo struct {
	FunctionName string                `json:"functionName" yaml:"functionName"`
	FilePath     string                `json:"filePath" yaml:"filePath"`
	Refs         []VarRef              `json:"refs" yaml:"refs"`
	Edges        []DefUseEdge          `json:"edges" yaml:"edges"`
	Variables    []string              `json:"variables" yaml:"variables"`
	Parameters   []string              `json:"parameters" yaml:"parameters"`
	Returns      []string              `json:"returns" yaml:"returns"`
	ReachingDefs map[string][]VarRef   `json:"reachingDefs" yaml:"reachingDefs"`
	LiveVars     map[int][]string      `json:"liveVars" yaml:"liveVars"`
}
