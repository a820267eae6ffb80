// Package service builds the chess MCP server and serves it over stdio or
// streamable HTTP. Tool semantics live in the domain package.
package service
