// Package api is an optional HTTP adapter over the boolean and vector
// query engines, grounded on the teacher's api package and
// cmd/search_engine/main.go (route layout, timeout configuration,
// graceful shutdown). It is not part of the tested core contract; it
// exists to give a human a browser-friendly way to issue the same
// queries the CLI does.
package api

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/florimondmanca/cs-ir/boolean"
	"github.com/florimondmanca/cs-ir/collection"
	"github.com/florimondmanca/cs-ir/index"
	"github.com/florimondmanca/cs-ir/vector"
)

// API holds the single shared Index the server queries against. The
// index itself is immutable once built; the mutex here exists only
// because an HTTP server is inherently concurrent, matching the
// teacher's InvertedIndex RWMutex discipline rather than any mutation
// this adapter actually performs.
type API struct {
	mu        sync.RWMutex
	ix        *index.Index
	stopWords collection.StopWords
}

// NewAPI creates an API bound to ix, tokenizing query strings against
// stopWords the same way the indexed collection was tokenized.
func NewAPI(ix *index.Index, stopWords collection.StopWords) *API {
	return &API{ix: ix, stopWords: stopWords}
}

// maxRequestBodyBytes bounds request bodies accepted by the adapter.
// The routes below are all GET with no body, but the limit still guards
// against a future POST route being added without one, matching the
// teacher's blanket application of this middleware ahead of routing.
const maxRequestBodyBytes = 1 << 20

// SetupRoutes registers the health, boolean, and vector query routes.
func SetupRoutes(router *gin.Engine, a *API) {
	router.Use(CORSMiddleware(), RequestSizeLimitMiddleware(maxRequestBodyBytes))

	router.GET("/health", a.HealthCheckHandler)
	router.GET("/boolean", a.BooleanSearchHandler)
	router.GET("/vector", a.VectorSearchHandler)
}

func (a *API) index() *index.Index {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.ix
}

func (a *API) tokenize(text string) []string {
	return collection.Tokenize(text, a.stopWords)
}

// HealthCheckHandler reports the number of documents currently indexed.
func (a *API) HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"documents": a.index().NumDocuments(),
	})
}

// BooleanSearchHandler evaluates a boolean query string against the
// shared index. Request: GET /boolean?q=<query>.
func (a *API) BooleanSearchHandler(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidQuery, "missing required query parameter: q")
		return
	}

	query, err := boolean.Parse(q)
	if err != nil {
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidQuery, "invalid boolean query: "+err.Error())
		return
	}

	docIDs := boolean.Evaluate(query, a.index())
	c.JSON(http.StatusOK, gin.H{
		"query":   q,
		"matches": docIDs,
		"count":   len(docIDs),
	})
}

// VectorSearchHandler ranks documents by vector-space similarity to a
// free-text query. Request: GET /vector?q=<query>&k=<int>&scheme=<name>.
func (a *API) VectorSearchHandler(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidQuery, "missing required query parameter: q")
		return
	}

	scheme := c.DefaultQuery("scheme", vector.DefaultScheme)

	k := vector.DefaultK
	if kParam := c.Query("k"); kParam != "" {
		parsed, err := strconv.Atoi(kParam)
		if err != nil {
			SendError(c, http.StatusBadRequest, ErrorCodeInvalidQuery, "k must be an integer")
			return
		}
		k = parsed
	}

	results, err := vector.Search(a.index(), q, k, scheme, a.tokenize)
	if err != nil {
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidScheme, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"query":   q,
		"scheme":  scheme,
		"results": results,
	})
}

// NewServer wraps router with the teacher's timeout configuration for
// long-lived, potentially slow-client connections.
func NewServer(addr string, router http.Handler) *http.Server {
	return &http.Server{
		Addr:           addr,
		Handler:        router,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   60 * time.Second,
		IdleTimeout:    120 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}
}
