package assistant

import (
	"google.golang.org/adk/tool"
	"google.golang.org/adk/tool/functiontool"
)

const webSearchToolName = "web_search"

// WebSearchInput is the argument schema of the web_search tool.
type WebSearchInput struct {
	Query string `json:"query"` // Search engine query
}

// WebSearchOutput is what the model sees after a search.
type WebSearchOutput struct {
	Results []SearchResult `json:"results"`
	Message string         `json:"message,omitempty"`
}

func buildWebSearchTool(searcher Searcher) (tool.Tool, error) {
	return functiontool.New(functiontool.Config{
		Name:        webSearchToolName,
		Description: "Searches the web. Useful for answering questions about current events, local news or facts about a neighborhood.",
	}, func(ctx tool.Context, input WebSearchInput) (WebSearchOutput, error) {
		results, err := searcher.Search(ctx, input.Query)
		if err != nil {
			// The model gets a readable failure instead of an aborted run.
			return WebSearchOutput{Message: "search failed: " + err.Error()}, nil
		}
		if len(results) == 0 {
			return WebSearchOutput{Results: []SearchResult{}, Message: "no results"}, nil
		}
		return WebSearchOutput{Results: results}, nil
	})
}
