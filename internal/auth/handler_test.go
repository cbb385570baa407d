package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"

	"github.com/frahmantamala/employee-management/internal"
	"github.com/frahmantamala/employee-management/internal/transport"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

var _ = ginkgo.Describe("Auth Handler", func() {
	var (
		handler  *Handler
		tokenGen *JWTTokenGenerator
	)

	post := func(h http.HandlerFunc, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/token/", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		h(w, req)
		return w
	}

	ginkgo.BeforeEach(func() {
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		tokenGen = NewJWTTokenGenerator(testSecurityConfig())
		service := NewService(newMockUserRepository(), tokenGen, logger)
		handler = NewHandler(transport.NewBaseHandler(logger), service)
	})

	ginkgo.Describe("ObtainToken", func() {
		ginkgo.It("should return access and refresh", func() {
			// When
			w := post(handler.ObtainToken, `{"email":"user@example.com","password":"correct_password"}`)

			// Then
			gomega.Expect(w.Code).To(gomega.Equal(http.StatusOK))
			var body map[string]string
			gomega.Expect(json.NewDecoder(w.Body).Decode(&body)).To(gomega.Succeed())
			gomega.Expect(body).To(gomega.HaveKey("access"))
			gomega.Expect(body).To(gomega.HaveKey("refresh"))
		})

		ginkgo.It("should return 401 for bad credentials", func() {
			w := post(handler.ObtainToken, `{"email":"user@example.com","password":"nope"}`)
			gomega.Expect(w.Code).To(gomega.Equal(http.StatusUnauthorized))
		})

		ginkgo.It("should return 400 for missing fields", func() {
			w := post(handler.ObtainToken, `{"email":"user@example.com"}`)
			gomega.Expect(w.Code).To(gomega.Equal(http.StatusBadRequest))
		})

		ginkgo.It("should return 400 for a malformed body", func() {
			w := post(handler.ObtainToken, `not json`)
			gomega.Expect(w.Code).To(gomega.Equal(http.StatusBadRequest))
		})
	})

	ginkgo.Describe("RefreshToken", func() {
		ginkgo.It("should return only a new access token", func() {
			// Given
			refresh, err := tokenGen.GenerateRefreshToken(1, "user@example.com")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			// When
			w := post(handler.RefreshToken, `{"refresh":"`+refresh+`"}`)

			// Then
			gomega.Expect(w.Code).To(gomega.Equal(http.StatusOK))
			var body map[string]string
			gomega.Expect(json.NewDecoder(w.Body).Decode(&body)).To(gomega.Succeed())
			gomega.Expect(body).To(gomega.HaveKey("access"))
			gomega.Expect(body).ToNot(gomega.HaveKey("refresh"))
		})

		ginkgo.It("should return 401 for an invalid refresh token", func() {
			w := post(handler.RefreshToken, `{"refresh":"garbage"}`)
			gomega.Expect(w.Code).To(gomega.Equal(http.StatusUnauthorized))
		})
	})

	ginkgo.Describe("AuthMiddleware", func() {
		var (
			reached  bool
			identity *internal.Identity
			guarded  http.Handler
		)

		call := func(authorization string) *httptest.ResponseRecorder {
			req := httptest.NewRequest(http.MethodGet, "/employees/", nil)
			if authorization != "" {
				req.Header.Set("Authorization", authorization)
			}
			w := httptest.NewRecorder()
			guarded.ServeHTTP(w, req)
			return w
		}

		ginkgo.BeforeEach(func() {
			reached = false
			identity = nil
			guarded = handler.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				reached = true
				identity, _ = internal.IdentityFromContext(r.Context())
				w.WriteHeader(http.StatusNoContent)
			}))
		})

		ginkgo.It("should pass a valid access token through with the caller identity", func() {
			// Given
			access, err := tokenGen.GenerateAccessToken(2, "admin@example.com")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			// When
			w := call("Bearer " + access)

			// Then
			gomega.Expect(w.Code).To(gomega.Equal(http.StatusNoContent))
			gomega.Expect(reached).To(gomega.BeTrue())
			gomega.Expect(identity.UserID).To(gomega.Equal(int64(2)))
		})

		ginkgo.DescribeTable("should stop unauthenticated requests before the handler",
			func(authorization func() string, code internal.ErrorCode) {
				// When
				w := call(authorization())

				// Then
				gomega.Expect(w.Code).To(gomega.Equal(http.StatusUnauthorized))
				gomega.Expect(reached).To(gomega.BeFalse())
				var body struct {
					Error struct {
						Code string `json:"code"`
					} `json:"error"`
				}
				gomega.Expect(json.NewDecoder(w.Body).Decode(&body)).To(gomega.Succeed())
				gomega.Expect(body.Error.Code).To(gomega.Equal(string(code)))
			},
			ginkgo.Entry("no header", func() string { return "" }, internal.ErrCodeMissingToken),
			ginkgo.Entry("wrong scheme", func() string { return "Token abc" }, internal.ErrCodeMissingToken),
			ginkgo.Entry("bad token", func() string { return "Bearer abc.def.ghi" }, internal.ErrCodeInvalidToken),
			ginkgo.Entry("refresh token", func() string {
				refresh, _ := tokenGen.GenerateRefreshToken(1, "user@example.com")
				return "Bearer " + refresh
			}, internal.ErrCodeInvalidToken),
			ginkgo.Entry("inactive account", func() string {
				access, _ := tokenGen.GenerateAccessToken(3, "inactive@example.com")
				return "Bearer " + access
			}, internal.ErrCodeUserInactive),
		)
	})
})
