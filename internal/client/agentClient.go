package client

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"outfit-agent-demo/internal/apperr"
	"outfit-agent-demo/internal/config"
)

// AgentClient opens tool-scoped sessions against the external agent
// runtime. A run streams messages back in arrival order; tool permission
// requests are answered out-of-band against the same run.
type AgentClient interface {
	Run(ctx context.Context, req *AgentRunRequest) (AgentStream, error)
}

type AgentRunRequest struct {
	// Prompt is the full instruction block for the run.
	Prompt string `json:"prompt"`
	// MCPServers names the remote tool namespaces the session is
	// configured with.
	MCPServers []string `json:"mcp_servers"`
	// AllowedTools lists tool name patterns the runtime should expose,
	// e.g. "mcp__locus__*" plus read/list resource primitives.
	AllowedTools []string `json:"allowed_tools"`
}

// AgentStream yields the run's messages strictly in arrival order. Next
// returns io.EOF when the stream ends.
type AgentStream interface {
	Next() (*AgentMessage, error)
	// Respond answers a permission request. A denied request's input is
	// never forwarded to the tool; the refusal is fed back into the
	// agent's reasoning loop.
	Respond(requestID string, allow bool, reason string) error
	Close() error
}

type AgentMessage struct {
	Type    string `json:"type"`    // system | assistant | permission_request | result
	Subtype string `json:"subtype"` // init for system, success for result

	// system/init
	MCPServers []MCPServerStatus `json:"mcp_servers,omitempty"`

	// assistant
	Text string `json:"text,omitempty"`

	// permission_request
	RequestID string          `json:"request_id,omitempty"`
	ToolName  string          `json:"tool_name,omitempty"`
	ToolInput json.RawMessage `json:"input,omitempty"`

	// result
	Result string `json:"result,omitempty"`
}

type MCPServerStatus struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

type agentClientImpl struct {
	httpClient *http.Client
	baseApiURL string
	apiKey     string
}

func NewAgentClient(agentCfg *config.Agent) (AgentClient, error) {
	if agentCfg.BaseApiURL == "" || agentCfg.APIKey == "" {
		return nil, apperr.Configurationf("agent runtime url or api key is empty")
	}
	return &agentClientImpl{
		httpClient: &http.Client{
			// Runs are long-lived; the body streams until the terminal
			// message. Deadlines are the caller's job via ctx.
			Timeout: 0,
		},
		baseApiURL: strings.TrimSuffix(agentCfg.BaseApiURL, "/"),
		apiKey:     agentCfg.APIKey,
	}, nil
}

func (c *agentClientImpl) Run(ctx context.Context, runReq *AgentRunRequest) (AgentStream, error) {
	body, err := json.Marshal(runReq)
	if err != nil {
		return nil, fmt.Errorf("marshal run request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseApiURL+"/v1/runs", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/x-ndjson")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperr.ExternalCallf(err, "open agent run")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, apperr.ExternalCallf(
			fmt.Errorf("agent runtime error %d: %s", resp.StatusCode, string(b)),
			"open agent run",
		)
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)

	return &agentStreamImpl{
		client:  c,
		body:    resp.Body,
		scanner: scanner,
		runID:   resp.Header.Get("X-Run-Id"),
	}, nil
}

type agentStreamImpl struct {
	client  *agentClientImpl
	body    io.ReadCloser
	scanner *bufio.Scanner
	runID   string
}

func (s *agentStreamImpl) Next() (*AgentMessage, error) {
	for s.scanner.Scan() {
		line := strings.TrimSpace(s.scanner.Text())
		if line == "" {
			continue
		}
		var msg AgentMessage
		if err := json.Unmarshal([]byte(line), &msg); err != nil {
			return nil, apperr.ExternalCallf(err, "decode agent message")
		}
		return &msg, nil
	}
	if err := s.scanner.Err(); err != nil {
		return nil, apperr.ExternalCallf(err, "read agent stream")
	}
	return nil, io.EOF
}

func (s *agentStreamImpl) Respond(requestID string, allow bool, reason string) error {
	payload := map[string]interface{}{
		"request_id": requestID,
		"allow":      allow,
		"reason":     reason,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal permission decision: %w", err)
	}

	url := fmt.Sprintf("%s/v1/runs/%s/permissions", s.client.baseApiURL, s.runID)
	req, err := http.NewRequest("POST", url, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.client.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.httpClient.Do(req)
	if err != nil {
		return apperr.ExternalCallf(err, "send permission decision")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return apperr.ExternalCallf(
			fmt.Errorf("agent runtime error %d: %s", resp.StatusCode, string(b)),
			"send permission decision",
		)
	}
	return nil
}

func (s *agentStreamImpl) Close() error {
	return s.body.Close()
}
