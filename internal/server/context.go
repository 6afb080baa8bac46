package server

import (
	"context"

	"ticktick-cli/internal/instrumentation"
	"ticktick-cli/internal/ticktick"
)

// ServerContext holds the shared state for the MCP server: the unified
// TickTick client and the instrumentation provider. Each serve process
// holds exactly one client; multi-account sessions are out of scope.
type ServerContext struct {
	ctx      context.Context
	cancel   context.CancelFunc
	client   *ticktick.Client
	provider *instrumentation.Provider
}

// NewServerContext creates a new server context wrapping the given client.
// provider may be nil, in which case a disabled no-op provider is used.
func NewServerContext(ctx context.Context, client *ticktick.Client, provider *instrumentation.Provider) (*ServerContext, error) {
	if client == nil {
		return nil, ticktick.ErrNoCredentials
	}

	if provider == nil {
		var err error
		provider, err = instrumentation.NewProvider(ctx, instrumentation.Config{Enabled: false})
		if err != nil {
			return nil, err
		}
	}

	shutdownCtx, cancel := context.WithCancel(ctx)
	return &ServerContext{
		ctx:      shutdownCtx,
		cancel:   cancel,
		client:   client,
		provider: provider,
	}, nil
}

// Context returns the server context
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// Client returns the unified TickTick client
func (sc *ServerContext) Client() *ticktick.Client {
	return sc.client
}

// Metrics returns the metrics recorder (no-op when instrumentation is off)
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	return sc.provider.Metrics()
}

// Shutdown cancels the server context
func (sc *ServerContext) Shutdown() {
	sc.cancel()
}
