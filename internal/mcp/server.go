// Package mcp exposes the morphospace engine, taxonomy and prompt tools as
// an MCP tool server.
package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"patina/internal/catalog"
	"patina/internal/config"
	"patina/internal/intent"
	"patina/internal/logging"
	"patina/internal/metrics"
	"patina/internal/morphospace"
	"patina/internal/prompt"

	"github.com/google/uuid"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Options configures a Server. Zero fields take defaults: the embedded
// catalog, a fresh metrics registry and the default server identity.
type Options struct {
	Name    string
	Version string
	Content *catalog.Content
	Metrics *metrics.Metrics
}

// Server wraps the MCP SDK server with the patina tools.
type Server struct {
	MCPServer *sdkmcp.Server

	name       string
	version    string
	content    *catalog.Content
	assembler  *prompt.Assembler
	classifier *intent.Classifier
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

// NewServer creates an MCP server with every patina tool registered.
func NewServer(opts Options) (*Server, error) {
	def := config.DefaultConfig()
	if opts.Name == "" {
		opts.Name = def.Server.Name
	}
	if opts.Version == "" {
		opts.Version = def.Server.Version
	}
	if opts.Content == nil {
		c, err := catalog.Default()
		if err != nil {
			return nil, err
		}
		opts.Content = c
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.New()
	}

	s := &Server{
		name:       opts.Name,
		version:    opts.Version,
		content:    opts.Content,
		assembler:  prompt.New(opts.Content),
		classifier: intent.New(opts.Content),
		metrics:    opts.Metrics,
		logger:     logging.New("mcp"),
	}
	s.MCPServer = sdkmcp.NewServer(
		&sdkmcp.Implementation{Name: opts.Name, Version: opts.Version},
		nil,
	)
	s.registerTaxonomyTools()
	s.registerSpaceTools()
	s.registerPromptTools()
	return s, nil
}

// Metrics returns the instruments the server records into.
func (s *Server) Metrics() *metrics.Metrics { return s.metrics }

// Run serves over stdio until ctx is canceled or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("serving MCP over stdio", slog.String("name", s.name), slog.String("version", s.version))
	return s.MCPServer.Run(ctx, &sdkmcp.StdioTransport{})
}

// addTool registers h under name, wrapped so that every call is logged
// with a call id and recorded in the tool metrics.
func addTool[In, Out any](s *Server, name, description string, h func(context.Context, In) (Out, error)) {
	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        name,
		Description: description,
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in In) (*sdkmcp.CallToolResult, Out, error) {
		log := logging.ForCall(s.logger, name, uuid.NewString())
		start := time.Now()
		out, err := invoke(ctx, log, h, in)
		elapsed := time.Since(start)

		status := callStatus(err)
		s.metrics.ObserveCall(name, status, elapsed)
		if err != nil {
			log.Warn("tool call failed", slog.String("status", status), slog.Duration("elapsed", elapsed), slog.String("error", err.Error()))
			var zero Out
			return nil, zero, err
		}
		log.Debug("tool call done", slog.Duration("elapsed", elapsed))
		return nil, out, nil
	})
}

// invoke runs h and reports a panic in it as an error.
func invoke[In, Out any](ctx context.Context, log *slog.Logger, h func(context.Context, In) (Out, error), in In) (out Out, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("tool handler panicked", slog.Any("panic", r), slog.String("stack", string(debug.Stack())))
			var zero Out
			out, err = zero, fmt.Errorf("internal error: %v", r)
		}
	}()
	return h(ctx, in)
}

func callStatus(err error) string {
	if err == nil {
		return metrics.StatusOK
	}
	kind, ok := morphospace.KindOf(err)
	if !ok {
		return metrics.StatusError
	}
	switch kind {
	case morphospace.KindValidation:
		return metrics.StatusInvalid
	case morphospace.KindNotFound:
		return metrics.StatusNotFound
	}
	return metrics.StatusError
}

// --- shared output helpers ---

const places = 4

func r4(v float64) float64 { return morphospace.Round(v, places) }

func coord(c morphospace.Coordinate) map[string]float64 { return c.Round(places).Map() }

func parseOptionalCoordinate(m map[string]float64) (*morphospace.Coordinate, error) {
	if m == nil {
		return nil, nil
	}
	c, err := morphospace.ParseCoordinate(m)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func intOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

func nonNil(ss []string) []string {
	if ss == nil {
		return []string{}
	}
	return ss
}

// categoryVocabulary is one category of a vocabulary selection.
type categoryVocabulary struct {
	Category string   `json:"category"`
	Terms    []string `json:"terms"`
}

// vocabularyEntries lists sel in category order.
func vocabularyEntries(sel morphospace.Selection) []categoryVocabulary {
	out := make([]categoryVocabulary, 0, len(sel))
	for _, ct := range sel {
		out = append(out, categoryVocabulary{Category: ct.Category.String(), Terms: nonNil(ct.Terms)})
	}
	return out
}

func periodsOf(c *catalog.Content) []int {
	p := c.Periods()
	if p == nil {
		return []int{}
	}
	return p
}
