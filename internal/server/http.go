package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/phuslu/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/backbone81/walkv/internal/encoding"
	"github.com/backbone81/walkv/internal/store"
)

// valueResponse is the JSON representation of a key and its value.
type valueResponse struct {
	Key      string `json:"key"`
	Encoding string `json:"encoding"`
	Value    string `json:"value"`
}

// putRequest is the JSON body of a PUT request. An empty encoding means string.
type putRequest struct {
	Encoding string `json:"encoding"`
	Value    string `json:"value"`
}

// HTTPHandler serves the store over HTTP.
type HTTPHandler struct {
	kv     KV
	logger *log.Logger
}

// NewHTTPHandler returns the gin engine serving the key-value API, the health check and the metrics of the gatherer.
func NewHTTPHandler(kv KV, gatherer prometheus.Gatherer, logger *log.Logger) *gin.Engine {
	handler := &HTTPHandler{
		kv:     kv,
		logger: logger,
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), handler.logRequest)
	engine.GET("/health", handler.Health)
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	kvGroup := engine.Group("/v1/kv")
	kvGroup.GET("", handler.List)
	kvGroup.GET("/*key", handler.Get)
	kvGroup.PUT("/*key", handler.Put)
	kvGroup.DELETE("/*key", handler.Delete)
	return engine
}

func (h *HTTPHandler) logRequest(c *gin.Context) {
	start := time.Now()
	c.Next()
	h.logger.Debug().
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Int("status", c.Writer.Status()).
		Dur("duration", time.Since(start)).
		Msg("handled request")
}

// Health reports that the server is up.
// GET /health
func (h *HTTPHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"keys":   h.kv.Len(),
	})
}

// List returns all keys in ascending order.
// GET /v1/kv
func (h *HTTPHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"keys": h.kv.Keys(),
	})
}

// Get returns the value of a key.
// GET /v1/kv/*key
func (h *HTTPHandler) Get(c *gin.Context) {
	key := keyParam(c)
	value, err := h.kv.Get(key)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, valueResponse{
		Key:      key,
		Encoding: value.Encoding.String(),
		Value:    value.String(),
	})
}

// Put sets the value of a key.
// PUT /v1/kv/*key
func (h *HTTPHandler) Put(c *gin.Context) {
	var request putRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "invalid request: " + err.Error(),
		})
		return
	}
	if request.Encoding == "" {
		request.Encoding = encoding.EncodingString.String()
	}

	valueEncoding, err := encoding.ParseEncoding(request.Encoding)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}
	value, err := encoding.ParseValue(valueEncoding, request.Value)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	key := keyParam(c)
	if err := h.kv.Set(key, value); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, valueResponse{
		Key:      key,
		Encoding: value.Encoding.String(),
		Value:    value.String(),
	})
}

// Delete removes a key. Removing a key which is not present succeeds.
// DELETE /v1/kv/*key
func (h *HTTPHandler) Delete(c *gin.Context) {
	if err := h.kv.Delete(keyParam(c)); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// keyParam returns the key of the request path. Keys may contain slashes.
func keyParam(c *gin.Context) string {
	return strings.TrimPrefix(c.Param("key"), "/")
}

func (h *HTTPHandler) writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, store.ErrEncoding), errors.Is(err, store.ErrFrameTooLarge), errors.Is(err, store.ErrInvalidKey):
		status = http.StatusBadRequest
	default:
		h.logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("store operation failed")
	}
	c.JSON(status, gin.H{
		"error": err.Error(),
	})
}
