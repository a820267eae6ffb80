package game

// Operation names a protocol entry point.
type Operation string

const (
	OpStart         Operation = "start"
	OpSubmitMove    Operation = "submit_move"
	OpPollHumanMove Operation = "poll_human_move"
	OpFinish        Operation = "finish"
)

// NextAction tells the agent which tool to call next.
type NextAction struct {
	Tool   Operation `json:"tool" jsonschema:"tool the agent should call next"`
	Reason string    `json:"reason,omitempty" jsonschema:"why this tool is next"`
}

// ToolResult is the envelope every protocol operation returns.
type ToolResult struct {
	Operation    Operation    `json:"operation"`
	SessionID    string       `json:"session_id"`
	CurrentState *State       `json:"current_state,omitempty"`
	LastMove     *AppliedMove `json:"last_move,omitempty"`
	NextAction   *NextAction  `json:"next_action,omitempty"`
	HumanText    string       `json:"human_text"`
	ErrorCode    string       `json:"error_code,omitempty"`
}
