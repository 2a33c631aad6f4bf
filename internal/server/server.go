package server

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"github.com/ironsheep/floorplan-tools-mcp/internal/config"
	"github.com/ironsheep/floorplan-tools-mcp/internal/detection"
	"github.com/ironsheep/floorplan-tools-mcp/internal/floorplan"
	"github.com/ironsheep/floorplan-tools-mcp/internal/imaging"
	"github.com/ironsheep/floorplan-tools-mcp/internal/scene"
)

// Server handles MCP protocol communication
type Server struct {
	cache  *imaging.ImageCache
	scene  *scene.Service
	runner *detection.Runner
	cfg    *config.Config

	// mu guards the latest analysis and the scene revision counter. The
	// analysis is written by the runner's completion goroutine.
	mu         sync.Mutex
	analysis   *detection.Analysis
	detections []*floorplan.DetectedObject
	revision   int
	notified   int

	// pending tracks analyses whose result has not been recorded yet.
	pending sync.WaitGroup
}

// MCPRequest represents an incoming JSON-RPC request
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// MCPResponse represents an outgoing JSON-RPC response
type MCPResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *MCPError   `json:"error,omitempty"`
}

// MCPError represents a JSON-RPC error
type MCPError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// MCPNotification represents an outgoing notification (no ID)
type MCPNotification struct {
	JSONRPC string      `json:"jsonrpc"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params,omitempty"`
}

// SceneChangedMethod is the notification sent after a tool call changed the
// scene. Clients re-read the state with scene_state.
const SceneChangedMethod = "notifications/scene/changed"

// New creates a new MCP server instance. A nil cfg uses the defaults.
func New(cfg *config.Config) *Server {
	if cfg == nil {
		cfg = &config.Config{Detection: detection.DefaultConfig()}
	}

	dcfg := cfg.Detection
	if cfg.Debug() && dcfg.Logger == nil {
		dcfg.Logger = log.Default()
	}

	cache := imaging.NewImageCache()
	s := &Server{
		cache:  cache,
		scene:  scene.NewService(),
		runner: detection.NewRunner(cache, dcfg),
		cfg:    cfg,
	}
	s.scene.Subscribe(s.sceneChanged)
	return s
}

// sceneChanged is the scene observer. It only counts revisions; the request
// loop turns a new revision into one notification.
func (s *Server) sceneChanged() {
	s.mu.Lock()
	s.revision++
	s.mu.Unlock()
}

// pendingNotification returns a scene-changed notification when the scene
// changed since the last one was sent.
func (s *Server) pendingNotification() *MCPNotification {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.revision == s.notified {
		return nil
	}
	s.notified = s.revision
	return &MCPNotification{
		JSONRPC: "2.0",
		Method:  SceneChangedMethod,
		Params:  map[string]interface{}{"revision": s.revision},
	}
}

// Run starts the MCP server, reading from stdin and writing to stdout
func (s *Server) Run() error {
	return s.Serve(os.Stdin, os.Stdout)
}

// Serve processes newline-delimited JSON-RPC requests from r until EOF and
// writes responses to w.
func (s *Server) Serve(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	// Increase buffer size for large requests
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	encoder := json.NewEncoder(w)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req MCPRequest
		if err := json.Unmarshal(line, &req); err != nil {
			log.Printf("Failed to parse request: %v", err)
			continue
		}

		resp := s.handleRequest(&req)
		if resp != nil {
			if err := encoder.Encode(resp); err != nil {
				log.Printf("Failed to encode response: %v", err)
			}
		}

		if n := s.pendingNotification(); n != nil {
			if err := encoder.Encode(n); err != nil {
				log.Printf("Failed to encode notification: %v", err)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanner error: %w", err)
	}

	s.pending.Wait()
	return nil
}

// handleRequest routes requests to appropriate handlers
func (s *Server) handleRequest(req *MCPRequest) *MCPResponse {
	if s.cfg.Debug() {
		log.Printf("Request %v: %s", req.ID, req.Method)
	}

	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "notifications/initialized":
		// Client acknowledgment, no response needed
		return nil
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(req)
	case "ping":
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result:  map[string]interface{}{},
		}
	default:
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error: &MCPError{
				Code:    -32601,
				Message: fmt.Sprintf("Method not found: %s", req.Method),
			},
		}
	}
}

// handleInitialize responds to the initialize request
func (s *Server) handleInitialize(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"protocolVersion": "2024-11-05",
			"capabilities": map[string]interface{}{
				"tools": map[string]interface{}{},
			},
			"serverInfo": map[string]interface{}{
				"name":    "floorplan-tools-mcp",
				"version": "0.1.0",
			},
		},
	}
}
