package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"repo-pulse/internal/middleware"
	"repo-pulse/internal/model"
	"repo-pulse/internal/webhook"
	webhookHTTP "repo-pulse/internal/webhook/delivery/http"
	"repo-pulse/internal/webhook/normalizer"
	"repo-pulse/internal/webhook/repository/memory"
	"repo-pulse/internal/webhook/usecase"
	"repo-pulse/pkg/log"
	"repo-pulse/pkg/response"
	"repo-pulse/pkg/signature"
)

const (
	secret     = "It's a Secret to Everybody"
	adminToken = "admin-token"
)

const issuesPayload = `{"action":"opened","issue":{"number":12,"title":"Crash on start","state":"open","user":{"login":"octocat"}},` +
	`"repository":{"full_name":"octo/app","clone_url":"https://github.com/octo/app.git"},"sender":{"login":"octocat"}}`

type options struct {
	secret          string
	maxPayloadBytes int64
}

func newRouter(opt options) *gin.Engine {
	gin.SetMode(gin.TestMode)
	l := log.NewNop()

	uc := usecase.New(memory.New(l, memory.DefaultCapacity), normalizer.New(), l, webhook.Config{
		Security:         webhook.SecurityConfig{Secret: opt.secret},
		DedupeDeliveries: true,
	})

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.NoMethod(response.MethodNotAllowed)
	webhookHTTP.RegisterRoutes(router.Group("/api"), webhookHTTP.New(l, uc, opt.maxPayloadBytes), middleware.New(l, adminToken))
	return router
}

func deliver(router *gin.Engine, eventType, delivery, body, sig string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/webhook", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if eventType != "" {
		req.Header.Set(webhookHTTP.HeaderEvent, eventType)
	}
	if delivery != "" {
		req.Header.Set(webhookHTTP.HeaderDelivery, delivery)
	}
	if sig != "" {
		req.Header.Set(webhookHTTP.HeaderSignature, sig)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func deliverSigned(router *gin.Engine, eventType, delivery, body string) *httptest.ResponseRecorder {
	return deliver(router, eventType, delivery, body, signature.Sign([]byte(body), secret))
}

func listEvents(router *gin.Engine, query string) []model.Event {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/webhooks"+query, nil))
	Expect(w.Code).To(Equal(http.StatusOK))

	var events []model.Event
	Expect(json.Unmarshal(w.Body.Bytes(), &events)).To(Succeed())
	return events
}

func decode(w *httptest.ResponseRecorder) map[string]any {
	var body map[string]any
	Expect(json.Unmarshal(w.Body.Bytes(), &body)).To(Succeed())
	return body
}

var _ = Describe("Webhook ingestion", func() {
	var router *gin.Engine

	BeforeEach(func() {
		router = newRouter(options{secret: secret})
	})

	It("stores a signed issues delivery and acknowledges it", func() {
		w := deliverSigned(router, "issues", "d-1", issuesPayload)

		Expect(w.Code).To(Equal(http.StatusOK))
		ack := decode(w)
		Expect(ack["message"]).To(Equal("Webhook received successfully"))
		Expect(ack["event_type"]).To(Equal("issues"))
		Expect(ack["event_id"]).NotTo(BeEmpty())
		Expect(ack["timestamp"]).NotTo(BeEmpty())
		Expect(ack).NotTo(HaveKey("duplicate"))

		events := listEvents(router, "")
		Expect(events).To(HaveLen(1))
		Expect(events[0].ID).To(Equal(ack["event_id"]))
		Expect(events[0].Type).To(Equal("issues"))
		Expect(events[0].Repository).To(Equal("octo/app"))
		Expect(events[0].Sender).To(Equal("octocat"))
		Expect(events[0].DeliveryID).To(Equal("d-1"))
		Expect(events[0].Verified).To(BeTrue())
		Expect(events[0].Payload["repository"]).NotTo(HaveKey("clone_url"))
		Expect(events[0].Payload["summary"]).To(HaveKeyWithValue("title", "Crash on start"))
	})

	It("rejects sha256=deadbeef with 401 and stores nothing", func() {
		Expect(deliverSigned(router, "issues", "d-1", issuesPayload).Code).To(Equal(http.StatusOK))

		w := deliver(router, "issues", "d-2", issuesPayload, "sha256=deadbeef")

		Expect(w.Code).To(Equal(http.StatusUnauthorized))
		Expect(decode(w)["message"]).To(Equal("Invalid signature"))
		Expect(listEvents(router, "")).To(HaveLen(1))
	})

	It("accepts an unsigned delivery as unverified", func() {
		w := deliver(router, "push", "d-1", `{"ref":"refs/heads/main"}`, "")

		Expect(w.Code).To(Equal(http.StatusOK))
		events := listEvents(router, "")
		Expect(events).To(HaveLen(1))
		Expect(events[0].Verified).To(BeFalse())
		Expect(events[0].Repository).To(Equal(model.Unknown))
	})

	It("answers 500 when no secret is configured", func() {
		router = newRouter(options{})
		w := deliverSigned(router, "issues", "d-1", issuesPayload)

		Expect(w.Code).To(Equal(http.StatusInternalServerError))
		Expect(decode(w)["message"]).To(Equal("Webhook secret not configured"))
		Expect(listEvents(router, "")).To(BeEmpty())
	})

	It("rejects a body that is not a JSON object", func() {
		w := deliverSigned(router, "push", "d-1", `[1,2,3]`)
		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(listEvents(router, "")).To(BeEmpty())
	})

	It("rejects a delivery without an event type", func() {
		w := deliverSigned(router, "", "d-1", issuesPayload)
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("rejects a body over the size limit", func() {
		router = newRouter(options{secret: secret, maxPayloadBytes: 64})
		w := deliverSigned(router, "issues", "d-1", issuesPayload)

		Expect(w.Code).To(Equal(http.StatusRequestEntityTooLarge))
		Expect(listEvents(router, "")).To(BeEmpty())
	})

	It("acknowledges a redelivery with the original event id", func() {
		first := decode(deliverSigned(router, "issues", "d-1", issuesPayload))
		again := deliverSigned(router, "issues", "d-1", issuesPayload)

		Expect(again.Code).To(Equal(http.StatusOK))
		ack := decode(again)
		Expect(ack["event_id"]).To(Equal(first["event_id"]))
		Expect(ack["duplicate"]).To(BeTrue())
		Expect(listEvents(router, "")).To(HaveLen(1))
	})

	It("keeps only the newest 200 of 250 deliveries", func() {
		ids := make([]string, 0, 250)
		for i := 0; i < 250; i++ {
			w := deliverSigned(router, "issues", fmt.Sprintf("d-%d", i), issuesPayload)
			Expect(w.Code).To(Equal(http.StatusOK))
			ids = append(ids, decode(w)["event_id"].(string))
		}

		events := listEvents(router, "")
		Expect(events).To(HaveLen(200))
		Expect(events[0].ID).To(Equal(ids[249]))
		Expect(events[199].ID).To(Equal(ids[50]))

		stored := make([]string, 0, len(events))
		for _, e := range events {
			stored = append(stored, e.ID)
		}
		for _, id := range ids[:50] {
			Expect(stored).NotTo(ContainElement(id))
		}
	})

	It("describes itself on GET", func() {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/webhook", nil))

		Expect(w.Code).To(Equal(http.StatusOK))
		body := decode(w)
		Expect(body["message"]).To(HavePrefix("GitHub Webhook endpoint is ready : http://"))
		Expect(body["message"]).To(HaveSuffix("/api/webhook"))
		Expect(body["methods"]).To(ConsistOf("GET", "POST"))
	})

	DescribeTable("answers 405 for other methods",
		func(method string) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(method, "/api/webhook", nil))

			Expect(w.Code).To(Equal(http.StatusMethodNotAllowed))
			Expect(decode(w)["message"]).To(Equal("Method not allowed : " + method))
		},
		Entry("PUT", http.MethodPut),
		Entry("DELETE", http.MethodDelete),
		Entry("PATCH", http.MethodPatch),
	)
})

var _ = Describe("Webhook queries", func() {
	var router *gin.Engine

	BeforeEach(func() {
		router = newRouter(options{secret: secret})
		Expect(deliverSigned(router, "issues", "d-1", issuesPayload).Code).To(Equal(http.StatusOK))
		Expect(deliverSigned(router, "push", "d-2", `{"ref":"refs/heads/main","repository":{"full_name":"octo/lib"}}`).Code).To(Equal(http.StatusOK))
		Expect(deliverSigned(router, "push", "d-3", `{"ref":"refs/heads/dev","repository":{"full_name":"octo/app"}}`).Code).To(Equal(http.StatusOK))
	})

	It("lists newest first with a total count header", func() {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/webhooks", nil))

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Header().Get("X-Total-Count")).To(Equal("3"))

		var events []model.Event
		Expect(json.Unmarshal(w.Body.Bytes(), &events)).To(Succeed())
		Expect(events).To(HaveLen(3))
		Expect(events[0].DeliveryID).To(Equal("d-3"))
		Expect(events[2].DeliveryID).To(Equal("d-1"))
	})

	It("filters by type, repository and limit", func() {
		Expect(listEvents(router, "?type=push")).To(HaveLen(2))
		Expect(listEvents(router, "?repository=octo/app")).To(HaveLen(2))
		Expect(listEvents(router, "?type=push&repository=octo/app")).To(HaveLen(1))

		limited := listEvents(router, "?limit=1")
		Expect(limited).To(HaveLen(1))
		Expect(limited[0].DeliveryID).To(Equal("d-3"))
	})

	DescribeTable("rejects a bad limit",
		func(query string) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/webhooks"+query, nil))
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		},
		Entry("negative", "?limit=-1"),
		Entry("not a number", "?limit=ten"),
	)

	It("reports stats", func() {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/webhooks/stats", nil))

		Expect(w.Code).To(Equal(http.StatusOK))
		body := decode(w)
		Expect(body["count"]).To(BeEquivalentTo(3))
		Expect(body["capacity"]).To(BeEquivalentTo(200))
		Expect(body["by_type"]).To(Equal(map[string]any{"issues": float64(1), "push": float64(2)}))
	})

	Describe("clearing", func() {
		clearEvents := func(token string) *httptest.ResponseRecorder {
			req := httptest.NewRequest(http.MethodDelete, "/api/webhooks", nil)
			if token != "" {
				req.Header.Set("Authorization", "Bearer "+token)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			return w
		}

		It("requires the admin token", func() {
			Expect(clearEvents("").Code).To(Equal(http.StatusUnauthorized))
			Expect(clearEvents("wrong").Code).To(Equal(http.StatusUnauthorized))
			Expect(listEvents(router, "")).To(HaveLen(3))
		})

		It("empties the store and is idempotent", func() {
			for i := 0; i < 2; i++ {
				w := clearEvents(adminToken)
				Expect(w.Code).To(Equal(http.StatusOK))
				Expect(strings.TrimSpace(w.Body.String())).To(Equal(`{"message":"All events cleared"}`))
			}

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/webhooks", nil))
			Expect(strings.TrimSpace(w.Body.String())).To(Equal("[]"))
		})
	})
})
