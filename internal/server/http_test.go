package server_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/backbone81/walkv/internal/encoding"
	"github.com/backbone81/walkv/internal/server"
	"github.com/backbone81/walkv/internal/store"
)

var _ = Describe("HTTPHandler", func() {
	var guarded *server.Guarded
	var cleanup func()
	var engine *gin.Engine

	BeforeEach(func() {
		guarded, cleanup = openGuarded()
		registry := prometheus.NewRegistry()
		Expect(store.RegisterMetrics(registry)).To(Succeed())
		engine = server.NewHTTPHandler(guarded, registry, quietLogger)
	})

	AfterEach(func() {
		cleanup()
	})

	serve := func(method string, target string, body string) *httptest.ResponseRecorder {
		request := httptest.NewRequest(method, target, strings.NewReader(body))
		if body != "" {
			request.Header.Set("Content-Type", "application/json")
		}
		recorder := httptest.NewRecorder()
		engine.ServeHTTP(recorder, request)
		return recorder
	}

	decode := func(recorder *httptest.ResponseRecorder) map[string]any {
		var result map[string]any
		Expect(json.Unmarshal(recorder.Body.Bytes(), &result)).To(Succeed())
		return result
	}

	It("should report being healthy", func() {
		recorder := serve(http.MethodGet, "/health", "")
		Expect(recorder.Code).To(Equal(http.StatusOK))
		Expect(decode(recorder)).To(HaveKeyWithValue("status", "ok"))
	})

	It("should set and get values of every encoding", func() {
		recorder := serve(http.MethodPut, "/v1/kv/greeting", `{"value":"hello"}`)
		Expect(recorder.Code).To(Equal(http.StatusOK))

		recorder = serve(http.MethodPut, "/v1/kv/answer", `{"encoding":"integer","value":"42"}`)
		Expect(recorder.Code).To(Equal(http.StatusOK))

		recorder = serve(http.MethodPut, "/v1/kv/pi", `{"encoding":"float","value":"3.5"}`)
		Expect(recorder.Code).To(Equal(http.StatusOK))

		recorder = serve(http.MethodGet, "/v1/kv/answer", "")
		Expect(recorder.Code).To(Equal(http.StatusOK))
		Expect(decode(recorder)).To(Equal(map[string]any{
			"key":      "answer",
			"encoding": "integer",
			"value":    "42",
		}))

		value, err := guarded.Get("pi")
		Expect(err).ToNot(HaveOccurred())
		Expect(value.Float()).To(Equal(3.5))

		recorder = serve(http.MethodGet, "/v1/kv", "")
		Expect(recorder.Code).To(Equal(http.StatusOK))
		Expect(decode(recorder)).To(HaveKeyWithValue("keys", ConsistOf("answer", "greeting", "pi")))
	})

	It("should report missing keys", func() {
		recorder := serve(http.MethodGet, "/v1/kv/missing", "")
		Expect(recorder.Code).To(Equal(http.StatusNotFound))
		Expect(decode(recorder)).To(HaveKey("error"))
	})

	It("should delete keys even when they are absent", func() {
		Expect(guarded.Set("k", encoding.StringValue("v"))).To(Succeed())

		Expect(serve(http.MethodDelete, "/v1/kv/k", "").Code).To(Equal(http.StatusNoContent))
		Expect(serve(http.MethodDelete, "/v1/kv/k", "").Code).To(Equal(http.StatusNoContent))
		Expect(serve(http.MethodGet, "/v1/kv/k", "").Code).To(Equal(http.StatusNotFound))
	})

	DescribeTable("Refusing bad requests",
		func(body string) {
			recorder := serve(http.MethodPut, "/v1/kv/k", body)
			Expect(recorder.Code).To(Equal(http.StatusBadRequest))
			Expect(guarded.Len()).To(BeZero())
		},
		Entry("When the body is no JSON", `value=1`),
		Entry("When the encoding is unknown", `{"encoding":"binary","value":"1"}`),
		Entry("When the integer is malformed", `{"encoding":"integer","value":"forty-two"}`),
		Entry("When the float is malformed", `{"encoding":"float","value":"pi"}`),
	)

	It("should refuse keys which are not valid UTF-8", func() {
		recorder := serve(http.MethodPut, "/v1/kv/%FF%FE", `{"value":"v"}`)
		Expect(recorder.Code).To(Equal(http.StatusBadRequest))
		Expect(decode(recorder)).To(HaveKey("error"))
		Expect(guarded.Len()).To(BeZero())
	})

	It("should handle keys containing slashes", func() {
		recorder := serve(http.MethodPut, "/v1/kv/dir/name", `{"value":"v"}`)
		Expect(recorder.Code).To(Equal(http.StatusOK))

		recorder = serve(http.MethodGet, "/v1/kv/dir/name", "")
		Expect(recorder.Code).To(Equal(http.StatusOK))
		Expect(decode(recorder)).To(HaveKeyWithValue("key", "dir/name"))

		recorder = serve(http.MethodGet, "/v1/kv", "")
		Expect(decode(recorder)).To(HaveKeyWithValue("keys", ConsistOf("dir/name")))

		Expect(serve(http.MethodDelete, "/v1/kv/dir/name", "").Code).To(Equal(http.StatusNoContent))
		Expect(guarded.Len()).To(BeZero())
	})

	It("should expose metrics", func() {
		Expect(guarded.Set("k", encoding.StringValue("v"))).To(Succeed())

		recorder := serve(http.MethodGet, "/metrics", "")
		Expect(recorder.Code).To(Equal(http.StatusOK))
		Expect(recorder.Body.String()).To(ContainSubstring("kv_store_operations_total"))
	})
})
