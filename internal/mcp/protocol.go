package mcp

// InitializeResult is the result of the initialize method.
type InitializeResult struct {
	ProtocolVersion string       `json:"protocolVersion"`
	Capabilities    Capabilities `json:"capabilities"`
	ServerInfo      ServerInfo   `json:"serverInfo"`
}

// ServerInfo identifies this server to the client.
type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Capabilities describes what the server supports. This gateway only
// exposes tools.
type Capabilities struct {
	Tools ToolsCapability `json:"tools"`
}

// ToolsCapability marks tools support.
type ToolsCapability struct{}

// ToolDefinition describes one tool for client discovery.
type ToolDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

// ToolsListResult is the result of tools/list.
type ToolsListResult struct {
	Tools []ToolDefinition `json:"tools"`
}

// ToolsCallParams are the parameters of tools/call.
type ToolsCallParams struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments,omitempty"`
}

// ToolsCallResult is the result of tools/call.
type ToolsCallResult struct {
	Content []Content `json:"content"`
}

// Content is one block of tool output.
type Content struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// toolCatalog is the static tool list served by tools/list. Exactly
// these two tools exist; the catalog never changes at runtime.
func toolCatalog() []ToolDefinition {
	return []ToolDefinition{
		{
			Name:        ToolDeepview,
			Description: "Analyze codebase content with AI",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"question": map[string]any{
						"type":        "string",
						"description": "Question about the codebase",
					},
					"codebase_file": map[string]any{
						"type":        "string",
						"description": "Optional codebase file path",
					},
				},
				"required": []string{"question"},
			},
		},
		{
			Name:        ToolListCodebaseFiles,
			Description: "List available codebase files",
			InputSchema: map[string]any{
				"type":       "object",
				"properties": map[string]any{},
			},
		},
	}
}
