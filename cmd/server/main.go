package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/baditaflorin/go_absorbing_walk/pkg/absorption"
	"github.com/baditaflorin/go_absorbing_walk/pkg/comparison"
	"github.com/baditaflorin/go_absorbing_walk/pkg/theory"
	"github.com/baditaflorin/go_absorbing_walk/pkg/walk"
	"github.com/baditaflorin/l"
	"github.com/valyala/fasthttp"
)

// Default configuration
const (
	DefaultPort           = 8080
	DefaultReadTimeout    = 30 * time.Second
	DefaultWriteTimeout   = 30 * time.Second
	DefaultMaxRequestSize = 1024 * 1024 // 1MB
	DefaultConcurrency    = 0           // 0 means use GOMAXPROCS
	DefaultRequestTimeout = 60 * time.Second
)

var (
	// Theoretical predictor, shared across requests
	predictor *theory.Predictor

	// Worker count applied to estimation requests
	estimateWorkers int

	// Logger instance
	logger l.Logger
)

// WalkRequest describes a single trajectory request.
type WalkRequest struct {
	Start int     `json:"start"`
	Lower int     `json:"lower"`
	Upper int     `json:"upper"`
	Bias  float64 `json:"bias"`
	Seed  int64   `json:"seed"`
}

// WalkResponse carries the absorbing position of one trajectory.
type WalkResponse struct {
	Position       int    `json:"position"`
	ProcessingTime string `json:"processing_time,omitempty"`
}

// EstimateRequest describes a Monte Carlo estimation request.
type EstimateRequest struct {
	Start int     `json:"start"`
	Lower int     `json:"lower"`
	Upper int     `json:"upper"`
	Bias  float64 `json:"bias"`
	Walks int     `json:"walks"`
}

// EstimateResponse carries the empirical absorption probability.
type EstimateResponse struct {
	Probability    float64                `json:"probability"`
	Start          int                    `json:"start"`
	Lower          int                    `json:"lower"`
	Upper          int                    `json:"upper"`
	Bias           float64                `json:"bias"`
	Walks          int                    `json:"walks"`
	AbsorbedLower  int                    `json:"absorbed_lower"`
	AbsorbedUpper  int                    `json:"absorbed_upper"`
	ProcessingTime string                 `json:"processing_time,omitempty"`
	Details        map[string]interface{} `json:"details,omitempty"`
}

// DistributionRequest describes a per-site distribution request.
type DistributionRequest struct {
	Lower int     `json:"lower"`
	Upper int     `json:"upper"`
	Bias  float64 `json:"bias"`
	Walks int     `json:"walks"`
}

// TheoryRequest describes a closed-form prediction request for sites 1..N.
type TheoryRequest struct {
	Bias  float64 `json:"bias,omitempty"`
	Sites int     `json:"sites"`
}

// ProbabilitiesResponse carries an ordered probability array.
type ProbabilitiesResponse struct {
	Probabilities  []float64 `json:"probabilities"`
	ProcessingTime string    `json:"processing_time,omitempty"`
}

// ComparisonRequest describes a simulation-versus-theory run.
type ComparisonRequest struct {
	Bias  float64 `json:"bias"`
	Sites int     `json:"sites"`
	Walks int     `json:"walks"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

func main() {
	// Parse command-line flags
	port := flag.Int("port", DefaultPort, "HTTP server port")
	readTimeout := flag.Duration("read-timeout", DefaultReadTimeout, "HTTP read timeout")
	writeTimeout := flag.Duration("write-timeout", DefaultWriteTimeout, "HTTP write timeout")
	maxRequestSize := flag.Int("max-request-size", DefaultMaxRequestSize, "Maximum request size in bytes")
	concurrency := flag.Int("concurrency", DefaultConcurrency, "Maximum number of concurrent requests (0 = GOMAXPROCS)")
	workers := flag.Int("workers", runtime.NumCPU(), "Trajectory workers per estimation request")
	warmUp := flag.Bool("warm-up", true, "Perform system warm-up on startup")
	logFile := flag.String("log-file", "", "Log file path (empty = stdout)")
	flag.Parse()

	// Set up logger
	var err error
	logger, err = createLogger(*logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	logger.Info("Starting random walk HTTP server",
		"port", *port,
		"read_timeout", *readTimeout,
		"write_timeout", *writeTimeout,
		"max_request_size", *maxRequestSize,
		"concurrency", *concurrency,
		"workers", *workers,
	)

	estimateWorkers = *workers
	initPredictor(*warmUp)

	// Create HTTP server with fasthttp
	server := &fasthttp.Server{
		Handler:               requestHandler,
		ReadTimeout:           *readTimeout,
		WriteTimeout:          *writeTimeout,
		MaxRequestBodySize:    *maxRequestSize,
		Concurrency:           *concurrency,
		DisableKeepalive:      false,
		TCPKeepalive:          true,
		TCPKeepalivePeriod:    3 * time.Minute,
		MaxConnsPerIP:         0, // unlimited
		MaxRequestsPerConn:    0, // unlimited
		MaxIdleWorkerDuration: 10 * time.Second,
		Logger:                nil, // we'll handle logging ourselves
	}

	// Set up graceful shutdown
	idleConnsClosed := make(chan struct{})
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		logger.Info("Shutting down server...")
		if err := server.Shutdown(); err != nil {
			logger.Error("Error during server shutdown", "error", err)
		}
		close(idleConnsClosed)
	}()

	// Start server
	logger.Info("Server listening", "address", fmt.Sprintf(":%d", *port))
	if err := server.ListenAndServe(fmt.Sprintf(":%d", *port)); err != nil {
		logger.Error("Server error", "error", err)
	}

	<-idleConnsClosed
	logger.Info("Server stopped")
}

// initPredictor initializes the shared theoretical predictor and optionally
// pre-warms the estimation path.
func initPredictor(warmUp bool) {
	var err error
	predictor, err = theory.New(theory.WithLogger(logger))
	if err != nil {
		logger.Error("Failed to initialize theoretical predictor", "error", err)
		os.Exit(1)
	}

	if warmUp {
		_, err = absorption.New(
			absorption.WithLogger(logger),
			absorption.WithWorkers(estimateWorkers),
			absorption.WithWarmUp(true),
		)
		if err != nil {
			logger.Error("Failed to warm up estimation path", "error", err)
			os.Exit(1)
		}
	}

	logger.Info("Components initialized successfully",
		"warm_up", warmUp,
		"cpus", runtime.NumCPU(),
	)
}

// requestHandler is the main fasthttp request handler
func requestHandler(ctx *fasthttp.RequestCtx) {
	startTime := time.Now()

	// Set common headers
	ctx.Response.Header.Set("Content-Type", "application/json")
	ctx.Response.Header.Set("Server", "RandomWalkServer")

	// Route based on path
	switch string(ctx.Path()) {
	case "/health":
		handleHealthCheck(ctx)
	case "/walk":
		handleWalk(ctx)
	case "/estimate":
		handleEstimate(ctx)
	case "/distribution":
		handleDistribution(ctx)
	case "/theory/asymmetric":
		handleTheory(ctx, func(req TheoryRequest) ([]float64, error) {
			return predictor.Asymmetric(req.Bias, req.Sites)
		})
	case "/theory/symmetric":
		handleTheory(ctx, func(req TheoryRequest) ([]float64, error) {
			return predictor.Symmetric(req.Sites)
		})
	case "/theory/limit":
		handleTheory(ctx, func(req TheoryRequest) ([]float64, error) {
			return predictor.ThermodynamicLimit(req.Bias, req.Sites)
		})
	case "/comparison":
		handleComparison(ctx)
	default:
		ctx.SetStatusCode(fasthttp.StatusNotFound)
		writeJSONError(ctx, "Not found")
	}

	// Log request
	duration := time.Since(startTime)
	logger.Info("Request processed",
		"method", string(ctx.Method()),
		"path", string(ctx.Path()),
		"status", ctx.Response.StatusCode(),
		"ip", ctx.RemoteIP().String(),
		"duration", duration,
	)
}

// handleHealthCheck responds to health check requests
func handleHealthCheck(ctx *fasthttp.RequestCtx) {
	ctx.SetStatusCode(fasthttp.StatusOK)
	response := map[string]interface{}{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	}
	writeJSONResponse(ctx, response)
}

// handleWalk runs a single seeded trajectory.
func handleWalk(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		writeJSONError(ctx, "Method not allowed")
		return
	}

	startTime := time.Now()

	var req WalkRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, "Invalid request: "+err.Error())
		return
	}

	walker, err := walk.New(
		walk.WithStart(req.Start),
		walk.WithBounds(req.Lower, req.Upper),
		walk.WithBias(req.Bias),
		walk.WithLogger(logger),
	)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, err.Error())
		return
	}

	c, cancel := context.WithTimeout(context.Background(), DefaultRequestTimeout)
	defer cancel()

	position, err := walker.Walk(c, req.Seed)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, err.Error())
		return
	}

	ctx.SetStatusCode(fasthttp.StatusOK)
	writeJSONResponse(ctx, WalkResponse{
		Position:       position,
		ProcessingTime: time.Since(startTime).String(),
	})
}

// handleEstimate runs a Monte Carlo absorption estimate.
func handleEstimate(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		writeJSONError(ctx, "Method not allowed")
		return
	}

	startTime := time.Now()

	var req EstimateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, "Invalid request: "+err.Error())
		return
	}

	estimator, err := newEstimator(req.Lower, req.Upper, req.Bias, req.Walks)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, err.Error())
		return
	}

	c, cancel := context.WithTimeout(context.Background(), DefaultRequestTimeout)
	defer cancel()

	result, err := estimator.Estimate(c, req.Start)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, err.Error())
		return
	}

	ctx.SetStatusCode(fasthttp.StatusOK)
	writeJSONResponse(ctx, EstimateResponse{
		Probability:    result.Probability,
		Start:          result.Start,
		Lower:          result.LowerBound,
		Upper:          result.UpperBound,
		Bias:           result.Bias,
		Walks:          result.Walks,
		AbsorbedLower:  result.Tally.Lower,
		AbsorbedUpper:  result.Tally.Upper,
		ProcessingTime: time.Since(startTime).String(),
		Details:        result.Details,
	})
}

// handleDistribution runs one estimate per starting site.
func handleDistribution(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		writeJSONError(ctx, "Method not allowed")
		return
	}

	startTime := time.Now()

	var req DistributionRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, "Invalid request: "+err.Error())
		return
	}

	estimator, err := newEstimator(req.Lower, req.Upper, req.Bias, req.Walks)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, err.Error())
		return
	}

	c, cancel := context.WithTimeout(context.Background(), DefaultRequestTimeout)
	defer cancel()

	probabilities, err := estimator.Distribution(c)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, err.Error())
		return
	}

	ctx.SetStatusCode(fasthttp.StatusOK)
	writeJSONResponse(ctx, ProbabilitiesResponse{
		Probabilities:  probabilities,
		ProcessingTime: time.Since(startTime).String(),
	})
}

// handleTheory evaluates one of the closed-form prediction formulas.
func handleTheory(ctx *fasthttp.RequestCtx, predict func(TheoryRequest) ([]float64, error)) {
	if !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		writeJSONError(ctx, "Method not allowed")
		return
	}

	startTime := time.Now()

	var req TheoryRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, "Invalid request: "+err.Error())
		return
	}

	probabilities, err := predict(req)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, err.Error())
		return
	}

	ctx.SetStatusCode(fasthttp.StatusOK)
	writeJSONResponse(ctx, ProbabilitiesResponse{
		Probabilities:  probabilities,
		ProcessingTime: time.Since(startTime).String(),
	})
}

// handleComparison runs simulation and theory side by side.
func handleComparison(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		writeJSONError(ctx, "Method not allowed")
		return
	}

	var req ComparisonRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, "Invalid request: "+err.Error())
		return
	}

	comparer, err := comparison.New(
		comparison.WithSites(req.Sites),
		comparison.WithBias(req.Bias),
		comparison.WithWalks(req.Walks),
		comparison.WithWorkers(estimateWorkers),
		comparison.WithLogger(logger),
	)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, err.Error())
		return
	}

	c, cancel := context.WithTimeout(context.Background(), DefaultRequestTimeout)
	defer cancel()

	result, err := comparer.Compare(c)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, err.Error())
		return
	}

	ctx.SetStatusCode(fasthttp.StatusOK)
	writeJSONResponse(ctx, result)
}

func newEstimator(lower, upper int, bias float64, walks int) (*absorption.Estimator, error) {
	opts := []absorption.EstimatorOption{
		absorption.WithBounds(lower, upper),
		absorption.WithBias(bias),
		absorption.WithWorkers(estimateWorkers),
		absorption.WithLogger(logger),
	}
	if walks > 0 {
		opts = append(opts, absorption.WithWalks(walks))
	}
	return absorption.New(opts...)
}

// writeJSONResponse marshals v and writes it as the response body.
func writeJSONResponse(ctx *fasthttp.RequestCtx, v interface{}) {
	response, err := json.Marshal(v)
	if err != nil {
		logger.Error("Error marshaling JSON response", "error", err)
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		ctx.SetBodyString(`{"error":"Internal server error"}`)
		return
	}

	ctx.SetBody(response)
}

// writeJSONError writes an error response body.
func writeJSONError(ctx *fasthttp.RequestCtx, msg string) {
	response, err := json.Marshal(ErrorResponse{Error: msg})
	if err != nil {
		logger.Error("Error marshaling JSON error response", "error", err)
		ctx.SetBodyString(`{"error":"Internal server error"}`)
		return
	}

	ctx.SetBody(response)
}

// createLogger creates and configures a logger
func createLogger(logFile string) (l.Logger, error) {
	// Create a logger factory
	factory := l.NewStandardFactory()

	// Configure the logger
	var output io.Writer = os.Stdout
	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		output = file
	}

	// Create the logger
	logger, err := factory.CreateLogger(l.Config{
		Output:      output,
		JsonFormat:  true,
		AsyncWrite:  true,
		BufferSize:  1024 * 1024,       // 1MB
		MaxFileSize: 100 * 1024 * 1024, // 100MB
		MaxBackups:  5,
		AddSource:   true,
		Metrics:     true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return logger, nil
}
