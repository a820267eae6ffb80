// Package domain defines the chess MCP tool and resource surface.
//
// Each tool has a schema constructor (StartTool, SubmitMoveTool, ...) and a
// handler factory bound to the turn protocol. Every tool returns the protocol
// envelope as structured content plus its human text as the text content.
package domain
