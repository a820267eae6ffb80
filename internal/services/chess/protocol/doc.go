// Package protocol sequences the agent-facing turn protocol.
//
// Service implements the four agent operations (start, submit_move,
// poll_human_move, finish) on top of a session store, a rules engine, the human
// move mailbox and a viewer broadcaster. Every operation returns a
// game.ToolResult whose NextAction names the only call the agent should make
// next. Illegal moves and moves against finished games are reported in the
// result instead of failing the call, so the agent can correct itself without
// restarting.
//
// Gateway is the human-facing side: realtime viewers submit moves through it
// into the mailbox and read session state for rendering.
package protocol
