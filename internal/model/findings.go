package model

// Panic issue kinds.
const (
	IssuePanic  = "panic"
	IssueUnwrap = "unwrap"
	IssueExpect = "expect"
)

type PanicIssue struct {
	FunctionName string `json:"function_name"`
	IssueType    string `json:"issue_type"`
	Location     string `json:"location"`
	Line         int    `json:"line"`
}

type ArithmeticIssue struct {
	FunctionName string `json:"function_name"`
	Operation    string `json:"operation"`
	Suggestion   string `json:"suggestion"`
	Location     string `json:"location"`
	Line         int    `json:"line"`
}

// AuthGap is the detailed form of an authorization gap; the facade also exposes the
// plain function-name list.
type AuthGap struct {
	FunctionName string `json:"function_name"`
	Line         int    `json:"line"`
}

type SizeWarningLevel string

const (
	ApproachingLimit SizeWarningLevel = "ApproachingLimit"
	ExceedsLimit     SizeWarningLevel = "ExceedsLimit"
)

type SizeWarning struct {
	StructName    string           `json:"struct_name"`
	EstimatedSize int              `json:"estimated_size"`
	Limit         int              `json:"limit"`
	Level         SizeWarningLevel `json:"level"`
	Line          int              `json:"line"`
	// Location is file:struct:line, filled in when reports are merged.
	Location      string           `json:"location,omitempty"`
}

// Storage key sources.
const (
	KeyConst       = "const"
	KeySymbolNew   = "symbol_new"
	KeySymbolShort = "symbol_short_macro"
)

type StorageCollisionIssue struct {
	KeyValue string `json:"key_value"`
	KeyType  string `json:"key_type"`
	Location string `json:"location"`
	Message  string `json:"message"`
	Line     int    `json:"line"`
}

type GasEstimationReport struct {
	FunctionName          string `json:"function_name"`
	EstimatedInstructions int    `json:"estimated_instructions"`
	EstimatedMemoryBytes  int    `json:"estimated_memory_bytes"`
}

type FunctionMetrics struct {
	Name                 string   `json:"name"`
	CyclomaticComplexity int      `json:"cyclomatic_complexity"`
	ParamCount           int      `json:"param_count"`
	MaxNestingDepth      int      `json:"max_nesting_depth"`
	LOC                  int      `json:"loc"`
	Warnings             []string `json:"warnings"`
	Line                 int      `json:"line"`
}

type ContractMetrics struct {
	ContractPath    string            `json:"contract_path"`
	DependencyCount int               `json:"dependency_count"`
	Functions       []FunctionMetrics `json:"functions"`
}

type PatternType string

const (
	PatternPanic  PatternType = "Panic"
	PatternUnwrap PatternType = "Unwrap"
	PatternExpect PatternType = "Expect"
)

type UnsafePattern struct {
	PatternType PatternType `json:"pattern_type"`
	Line        int         `json:"line"`
	Snippet     string      `json:"snippet"`
}

type FindingCategory string

const (
	CategoryAdminControl  FindingCategory = "AdminControl"
	CategoryInitPattern   FindingCategory = "InitPattern"
	CategoryStorageLayout FindingCategory = "StorageLayout"
	CategoryGovernance    FindingCategory = "Governance"
)

type UpgradeFinding struct {
	Category     FindingCategory `json:"category"`
	FunctionName string          `json:"function_name,omitempty"`
	Location     string          `json:"location"`
	Message      string          `json:"message"`
	Suggestion   string          `json:"suggestion"`
	Line         int             `json:"line"`
}

type UpgradeReport struct {
	Findings          []UpgradeFinding `json:"findings"`
	UpgradeMechanisms []string         `json:"upgrade_mechanisms"`
	InitFunctions     []string         `json:"init_functions"`
	StorageTypes      []string         `json:"storage_types"`
	Suggestions       []string         `json:"suggestions"`
}

// Event issue kinds.
const (
	EventInconsistentSchema = "inconsistent_schema"
	EventGasOptimization    = "gas_optimization"
)

type EventIssue struct {
	FunctionName string `json:"function_name"`
	EventName    string `json:"event_name"`
	IssueType    string `json:"issue_type"`
	Message      string `json:"message"`
	Location     string `json:"location"`
	Line         int    `json:"line"`
}

type CustomRuleMatch struct {
	RuleName string `json:"rule_name"`
	Line     int    `json:"line"`
	Snippet  string `json:"snippet"`
}
