package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"outfit-agent-demo/internal/apperr"
	"outfit-agent-demo/internal/client"
	"outfit-agent-demo/internal/dto"
	"outfit-agent-demo/internal/obs"
	"outfit-agent-demo/internal/wardrobe"
)

// ToolGate is the system's only hard security boundary: an explicit
// allow-list of tool namespaces, checked on every tool invocation the
// agent requests. Tool names look like <namespace>__<action>; the
// namespace prefix is the sole authorization key.
type ToolGate struct {
	namespaces []string
}

func NewToolGate(namespaces []string) *ToolGate {
	return &ToolGate{namespaces: namespaces}
}

// Allow reports whether the tool name belongs to an approved namespace.
func (g *ToolGate) Allow(toolName string) bool {
	for _, ns := range g.namespaces {
		if strings.HasPrefix(toolName, ns+"__") {
			return true
		}
	}
	return false
}

// DenialReason is the refusal fed back into the agent's reasoning loop.
func (g *ToolGate) DenialReason() string {
	return fmt.Sprintf("only %s tools are allowed", strings.Join(g.namespaces, ", "))
}

// AgentService drives one capability-restricted agent run that settles a
// purchase order over the payment network's tools.
type AgentService interface {
	// Execute renders the order into an instruction block, opens a
	// tool-scoped session and consumes its message stream until a
	// terminal success. A stream that ends without one is an incomplete
	// run, never a confirmed purchase.
	Execute(ctx context.Context, order []dto.PurchaseOrderItem) (string, error)
}

type agentServiceImpl struct {
	agentClient client.AgentClient
	gate        *ToolGate
}

func NewAgentService(agentClient client.AgentClient, gate *ToolGate) AgentService {
	return &agentServiceImpl{
		agentClient: agentClient,
		gate:        gate,
	}
}

func (s *agentServiceImpl) Execute(ctx context.Context, order []dto.PurchaseOrderItem) (string, error) {
	if len(order) == 0 {
		return "", apperr.Validationf("purchase order is empty")
	}

	allowedTools := make([]string, 0, len(s.gate.namespaces)+2)
	for _, ns := range s.gate.namespaces {
		allowedTools = append(allowedTools, ns+"__*")
	}
	allowedTools = append(allowedTools, "read_resource", "list_resources")

	stream, err := s.agentClient.Run(ctx, &client.AgentRunRequest{
		Prompt:       renderInstruction(order),
		MCPServers:   s.gate.namespaces,
		AllowedTools: allowedTools,
	})
	if err != nil {
		obs.Logger.Error("agent session setup failed",
			"error", err,
			"hint", "check AGENT_API_KEY, AGENT_BASE_API_URL reachability and the payment network credentials")
		return "", err
	}
	defer stream.Close()

	var result string
	var gotResult bool
	for {
		msg, err := stream.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			obs.Logger.Error("agent stream failed",
				"error", err,
				"hint", "check network connectivity and the payment tool server's key")
			return "", err
		}

		switch msg.Type {
		case "system":
			if msg.Subtype == "init" {
				for _, srv := range msg.MCPServers {
					if srv.Status != "connected" {
						// The runtime decides whether to proceed; we only
						// surface the degraded start.
						obs.Logger.Warn("payment tool server not connected",
							"server", srv.Name, "status", srv.Status)
					}
				}
			}
		case "assistant":
			if msg.Text != "" {
				obs.Logger.Debug("agent message", "text", msg.Text)
			}
		case "permission_request":
			if s.gate.Allow(msg.ToolName) {
				if err := stream.Respond(msg.RequestID, true, ""); err != nil {
					return "", err
				}
				obs.Logger.Info("tool allowed", "tool", msg.ToolName)
			} else {
				// Denied requests never reach the execution layer; the
				// refusal goes back into the loop and the run continues.
				if err := stream.Respond(msg.RequestID, false, s.gate.DenialReason()); err != nil {
					return "", err
				}
				obs.Logger.Warn("tool denied", "tool", msg.ToolName)
			}
		case "result":
			if msg.Subtype == "success" {
				result = msg.Result
				gotResult = true
			}
		}
	}

	if !gotResult {
		return "", apperr.New(apperr.KindAgentIncomplete, "agent stream ended without a terminal success message")
	}
	return result, nil
}

// renderInstruction writes the settlement narrative the agent executes.
// Recipient addresses are fixed and pre-approved; the agent must not look
// up or substitute them.
func renderInstruction(order []dto.PurchaseOrderItem) string {
	var b strings.Builder
	b.WriteString("Execute payment for the following outfit items, one transfer per item, in the exact order listed.\n")
	b.WriteString("All recipient addresses are pre-approved. Do not look up, verify or substitute any address.\n\n")
	for i, it := range order {
		label := wardrobe.SlotID(it.SlotID).DisplayLabel()
		fmt.Fprintf(&b, "%d. %s — product %s (%s) from %s\n", i+1, label, it.Name, it.ID, it.Source)
		fmt.Fprintf(&b, "   listed price: %.2f %s\n", it.Price, it.Currency)
		fmt.Fprintf(&b, "   send exactly %s to address %s\n", it.SendAmount, it.RecipientAddress)
	}
	b.WriteString("\nAfter all transfers, report each transaction id.")
	return b.String()
}
