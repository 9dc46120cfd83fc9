package backend

import (
	"context"
	"net/http"
)

// ChatRequest is the body for POST /api/chat. The thread id is only sent
// when a previous turn established one.
type ChatRequest struct {
	Query    string `json:"query"`
	ThreadID string `json:"thread_id,omitempty"`
}

// ChatResponse is the AI agent reply.
type ChatResponse struct {
	Response string `json:"response"`
	ThreadID string `json:"thread_id"`
}

// Chat sends one conversation turn to the AI answering endpoint.
func (c *Client) Chat(ctx context.Context, token, query, threadID string) (*ChatResponse, error) {
	req := ChatRequest{Query: query, ThreadID: threadID}
	var resp ChatResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/chat", token, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
