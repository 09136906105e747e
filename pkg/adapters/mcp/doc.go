// Package mcp serves one dialogue session over the Model Context Protocol.
//
// The tools view, choose and reset drive the session; the parley://graph
// resource returns its mermaid chart.
package mcp
