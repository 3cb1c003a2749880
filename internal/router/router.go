package router

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/frigatebird-studio/tonx-go/internal/jsonrpc"
	"github.com/frigatebird-studio/tonx-go/internal/metrics"
	"github.com/frigatebird-studio/tonx-go/pkg/errors"
)

// Handler defines a JSON-RPC method handler interface.
//
// Implementations of this interface can be registered with the Router
// to handle specific JSON-RPC methods.
type Handler interface {
	// Handle processes a JSON-RPC request.
	//
	// Parameters:
	//   - ctx: Context for request (supports cancellation and timeout)
	//   - request: The JSON-RPC request to handle
	//
	// Returns:
	//   - *jsonrpc.Response: The response to return to client
	//   - error: An error if handling fails
	Handle(ctx context.Context, request *jsonrpc.Request) (*jsonrpc.Response, error)

	// Method returns the JSON-RPC method name this handler supports.
	//
	// Returns:
	//   - string: The method name (e.g., "getMasterchainInfo")
	Method() string
}

const (
	// DefaultMaxRequestSize is the default request body limit (10MB).
	DefaultMaxRequestSize int64 = 10 * 1024 * 1024

	// MaxBatchSize defines the maximum number of requests allowed in a batch
	MaxBatchSize = 100

	// DefaultBatchWorkerCount defines the default number of workers for batch request processing
	DefaultBatchWorkerCount = 16

	// unknownMethodLabel replaces unregistered method names in metric labels
	unknownMethodLabel = "unknown"
)

var requestTooLargeBody = []byte(`{"jsonrpc":"2.0","error":{"code":-32600,"message":"Request entity too large"},"id":null}`)

// Router routes JSON-RPC requests to appropriate handlers.
//
// This router supports:
//   - Method-based handler registration
//   - Default handler for unregistered methods
//   - Concurrent batch routing with ordered responses
//   - Request size limiting
type Router struct {
	handlers       map[string]Handler
	defaultHandler Handler // 默认处理器，处理未注册的方法
	mu             sync.RWMutex
	logger         *logrus.Logger
	metrics        *metrics.Metrics
	maxRequestSize int64 // 最大请求体大小（字节）
}

// NewRouter creates a new JSON-RPC router with the default max request size.
func NewRouter(logger *logrus.Logger) *Router {
	return NewRouterWithMaxSize(logger, DefaultMaxRequestSize)
}

// NewRouterWithMaxSize creates a new JSON-RPC router with custom max request size.
//
// Parameters:
//   - logger: The logger to use for request logging
//   - maxRequestSize: Maximum allowed request body size in bytes
//
// Returns:
//   - *Router: A new router instance
func NewRouterWithMaxSize(logger *logrus.Logger, maxRequestSize int64) *Router {
	if maxRequestSize <= 0 {
		maxRequestSize = DefaultMaxRequestSize
	}
	return &Router{
		handlers:       make(map[string]Handler),
		logger:         logger,
		maxRequestSize: maxRequestSize,
	}
}

// SetMetrics enables request metrics. A nil value disables them.
func (r *Router) SetMetrics(m *metrics.Metrics) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.metrics = m
}

// SetDefaultHandler sets the default handler for unregistered methods.
func (r *Router) SetDefaultHandler(handler Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.defaultHandler = handler
	r.logger.Debug("Default handler set")
}

// Register registers a JSON-RPC method handler.
//
// The handler's Method() return value is used as the registration key.
//
// Returns:
//   - error: An error if handler method is empty or already registered
func (r *Router) Register(handler Handler) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	method := handler.Method()
	if method == "" {
		return fmt.Errorf("handler method name cannot be empty")
	}

	if _, exists := r.handlers[method]; exists {
		return fmt.Errorf("handler for method %s already registered", method)
	}

	r.handlers[method] = handler
	r.logger.WithField("method", method).Debug("Registered JSON-RPC handler")
	return nil
}

// Unregister removes a handler for the specified method.
func (r *Router) Unregister(method string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.handlers, method)
	r.logger.WithField("method", method).Debug("Unregistered JSON-RPC handler")
}

// routeRequest handles routing logic for a single request: handler lookup,
// execution, error conversion and metrics.
func (r *Router) routeRequest(ctx context.Context, request *jsonrpc.Request, logger *logrus.Entry) *jsonrpc.Response {
	if request == nil {
		return jsonrpc.NewErrorResponse(nil, jsonrpc.InvalidRequestError)
	}

	logger.Debug("Routing request")

	label := request.Method
	handler, found := r.getHandler(request.Method)
	if !found {
		label = unknownMethodLabel
		r.mu.RLock()
		handler = r.defaultHandler
		r.mu.RUnlock()
		if handler == nil {
			logger.Warn("Method not found")
			r.observe(label, jsonrpc.CodeMethodNotFound)
			return jsonrpc.NewErrorResponse(request.ID, errors.MethodNotImplemented(request.Method).ToJSONRPCError())
		}
		logger.Debug("Using default handler")
	}

	response, err := handler.Handle(ctx, request)
	if err != nil {
		logger.WithError(err).Error("Handler execution failed")
		jsonErr := errors.ConvertToJSONRPC(err)
		r.observe(label, jsonErr.Code)
		return jsonrpc.NewErrorResponse(request.ID, jsonErr)
	}

	if response == nil {
		logger.Error("Handler returned nil response")
		r.observe(label, jsonrpc.CodeInternalError)
		return jsonrpc.NewErrorResponse(request.ID, jsonrpc.InternalError)
	}

	response.ID = request.ID
	response.JSONRPC = jsonrpc.JSONRPCVersion

	code := 0
	if response.Error != nil {
		code = response.Error.Code
	}
	r.observe(label, code)
	return response
}

func (r *Router) observe(method string, code int) {
	r.mu.RLock()
	m := r.metrics
	r.mu.RUnlock()

	status := "ok"
	if code != 0 {
		status = fmt.Sprintf("%d", code)
	}
	m.ObserveRequest(method, status)
}

// RouteWithContext routes a single request using the provided logger entry.
//
// This is useful for maintaining log context across request lifecycle.
func (r *Router) RouteWithContext(ctx context.Context, request *jsonrpc.Request, logger *logrus.Entry) *jsonrpc.Response {
	if request == nil {
		return jsonrpc.NewErrorResponse(nil, jsonrpc.InvalidRequestError)
	}
	return r.routeRequest(ctx, request, logger.WithFields(logrus.Fields{
		"method": request.Method,
		"id":     request.ID,
	}))
}

// Route routes a single JSON-RPC request to the appropriate handler.
func (r *Router) Route(ctx context.Context, request *jsonrpc.Request) *jsonrpc.Response {
	if request == nil {
		r.logger.Warn("Received nil JSON-RPC request")
		return jsonrpc.NewErrorResponse(nil, jsonrpc.InvalidRequestError)
	}
	return r.RouteWithContext(ctx, request, r.requestLogger(ctx))
}

// RouteBatch routes a batch of JSON-RPC requests.
//
// Each request in the batch is routed independently using a worker pool.
//
// Returns:
//   - []*jsonrpc.Response: Ordered responses matching request order
func (r *Router) RouteBatch(ctx context.Context, requests []jsonrpc.Request) []*jsonrpc.Response {
	if len(requests) == 0 {
		return []*jsonrpc.Response{
			jsonrpc.NewErrorResponse(nil, jsonrpc.InvalidRequestError),
		}
	}

	if len(requests) > MaxBatchSize {
		r.logger.WithField("count", len(requests)).Warn("Batch size exceeds limit")
		return []*jsonrpc.Response{batchTooLarge()}
	}

	logger := r.requestLogger(ctx)
	logger.WithField("count", len(requests)).Debug("Routing batch requests")

	responses := make([]*jsonrpc.Response, len(requests))

	taskCount := len(requests)
	taskCh := make(chan int, taskCount)
	for i := 0; i < taskCount; i++ {
		taskCh <- i
	}
	close(taskCh)

	workerCount := DefaultBatchWorkerCount
	if taskCount < workerCount {
		workerCount = taskCount
	}

	var wg sync.WaitGroup
	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()

			for idx := range taskCh {
				func() {
					defer func() {
						if p := recover(); p != nil {
							logger.WithField("worker_id", workerID).WithField("panic", p).Error("Worker panic recovered")
							responses[idx] = jsonrpc.NewErrorResponse(requests[idx].ID, jsonrpc.InternalError)
						}
					}()

					if ctx.Err() != nil {
						responses[idx] = jsonrpc.NewErrorResponse(requests[idx].ID, errors.ConvertToJSONRPC(ctx.Err()))
						return
					}
					responses[idx] = r.RouteWithContext(ctx, &requests[idx], logger)
				}()
			}
		}(i)
	}

	wg.Wait()

	logger.WithField("count", taskCount).Debug("Batch routing completed")
	return responses
}

// getHandler retrieves a registered handler for the given method name.
func (r *Router) getHandler(method string) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	handler, found := r.handlers[method]
	return handler, found
}

// GetRegisteredMethods returns all registered method names in sorted order.
func (r *Router) GetRegisteredMethods() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	methods := make([]string, 0, len(r.handlers))
	for method := range r.handlers {
		methods = append(methods, method)
	}
	sort.Strings(methods)
	return methods
}

// HasHandler checks if a handler is registered for the given method.
func (r *Router) HasHandler(method string) bool {
	_, found := r.getHandler(method)
	return found
}

// HandleHTTPRequest reads a size-limited JSON-RPC body, routes it and writes
// the response. Notifications (requests without id) get no response entry;
// a request made only of notifications is answered with 204.
func (r *Router) HandleHTTPRequest(w http.ResponseWriter, req *http.Request) {
	ctx, _ := errors.EnsureRequestID(req.Context())
	logger := r.requestLogger(ctx)

	r.mu.RLock()
	done := r.metrics.TrackInFlight()
	r.mu.RUnlock()
	defer done()

	body, err := io.ReadAll(http.MaxBytesReader(w, req.Body, r.maxRequestSize))
	if err != nil {
		logger.WithError(err).WithField("max_size_bytes", r.maxRequestSize).Warn("Request body too large")
		writeJSON(w, http.StatusRequestEntityTooLarge, requestTooLargeBody, logger)
		return
	}

	requests, batch, err := jsonrpc.ParseRequest(body)
	if err != nil {
		logger.WithError(err).Warn("Failed to parse JSON-RPC request")
		r.writeResponses(w, []*jsonrpc.Response{jsonrpc.NewErrorResponse(nil, parseFailure(body, err))}, false, logger)
		return
	}

	var responses []*jsonrpc.Response
	if batch {
		responses = r.RouteBatch(ctx, requests)
	} else {
		responses = []*jsonrpc.Response{r.RouteWithContext(ctx, &requests[0], logger)}
	}

	if len(responses) == len(requests) {
		kept := responses[:0]
		for i, resp := range responses {
			if !requests[i].IsNotification() {
				kept = append(kept, resp)
			}
		}
		responses = kept
	}
	if len(responses) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	r.writeResponses(w, responses, batch, logger)
}

func (r *Router) writeResponses(w http.ResponseWriter, responses []*jsonrpc.Response, batch bool, logger *logrus.Entry) {
	data, err := jsonrpc.MarshalResponses(responses, batch)
	if err != nil {
		logger.WithError(err).Error("Failed to marshal JSON-RPC responses")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, data, logger)
}

func (r *Router) requestLogger(ctx context.Context) *logrus.Entry {
	entry := logrus.NewEntry(r.logger)
	if requestID := errors.GetRequestID(ctx); requestID != "" {
		entry = entry.WithField("request_id", requestID)
	}
	return entry
}

func writeJSON(w http.ResponseWriter, status int, data []byte, logger *logrus.Entry) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logger.WithError(err).Error("Failed to write response")
	}
}

// parseFailure distinguishes malformed JSON from a well-formed but invalid request.
func parseFailure(body []byte, err error) *jsonrpc.Error {
	if json.Valid(body) {
		return jsonrpc.Errorf(jsonrpc.CodeInvalidRequest, "Invalid request: %v", err)
	}
	return jsonrpc.ParseError
}

func batchTooLarge() *jsonrpc.Response {
	return jsonrpc.NewErrorResponse(nil, jsonrpc.Errorf(jsonrpc.CodeInvalidRequest,
		"Batch size exceeds maximum limit of %d", MaxBatchSize))
}
