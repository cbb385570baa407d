package employee_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"

	"github.com/frahmantamala/employee-management/internal"
	"github.com/frahmantamala/employee-management/internal/core/common/pagination"
	employeeDatamodel "github.com/frahmantamala/employee-management/internal/core/datamodel/employee"
	"github.com/frahmantamala/employee-management/internal/employee"
	employeePostgres "github.com/frahmantamala/employee-management/internal/employee/postgres"
	"github.com/frahmantamala/employee-management/internal/transport"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type errorBody struct {
	Error struct {
		Type    string `json:"type"`
		Code    string `json:"code"`
		Message string `json:"message"`
		Details struct {
			Errors []internal.ValidationError `json:"errors"`
		} `json:"details"`
	} `json:"error"`
}

func withIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := internal.ContextWithIdentity(r.Context(), &internal.Identity{UserID: 1, Email: "admin@example.com"})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func mountEmployeeRoutes(r chi.Router, h *employee.Handler) {
	r.Get("/employees/", h.ListEmployees)
	r.Post("/employees/create/", h.CreateEmployee)
	r.Get("/employees/filter/", h.FilterEmployees)
	r.Get("/employees/{id}/", h.GetEmployee)
	r.Put("/employees/{id}/update/", h.UpdateEmployee)
	r.Patch("/employees/{id}/update/", h.PatchEmployee)
	r.Delete("/employees/{id}/delete/", h.DeleteEmployee)
}

var _ = Describe("Employee Handler Integration", func() {
	var (
		db      *gorm.DB
		repo    employee.RepositoryAPI
		router  chi.Router
		handler *employee.Handler
		slogger *slog.Logger
	)

	do := func(method, target, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, target, bytes.NewReader([]byte(body)))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	decodeError := func(w *httptest.ResponseRecorder) errorBody {
		var body errorBody
		Expect(json.NewDecoder(w.Body).Decode(&body)).To(Succeed())
		return body
	}

	create := func(name, email, department string) employee.EmployeeResponse {
		payload := map[string]interface{}{"name": name, "email": email}
		if department != "" {
			payload["department"] = department
		}
		raw, _ := json.Marshal(payload)
		w := do(http.MethodPost, "/employees/create/", string(raw))
		Expect(w.Code).To(Equal(http.StatusCreated))
		var resp employee.EmployeeResponse
		Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
		return resp
	}

	BeforeEach(func() {
		var err error
		slogger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger:         logger.Default.LogMode(logger.Silent),
			TranslateError: true,
		})
		Expect(err).NotTo(HaveOccurred())
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		sqlDB.SetMaxOpenConns(1)

		Expect(db.AutoMigrate(&employeeDatamodel.Employee{})).To(Succeed())

		repo = employeePostgres.NewEmployeeRepository(db)
		service := employee.NewService(repo, slogger)
		baseHandler := &transport.BaseHandler{Logger: slogger}
		handler = employee.NewHandler(baseHandler, service, pagination.NewPaginator(10, 100))

		r := chi.NewRouter()
		r.Group(func(r chi.Router) {
			r.Use(withIdentity)
			mountEmployeeRoutes(r, handler)
		})
		r.Route("/anonymous", func(r chi.Router) {
			mountEmployeeRoutes(r, handler)
		})
		router = r
	})

	It("creates an employee and returns 201", func() {
		resp := create("Alice", "alice@example.com", "Engineering")

		Expect(resp.ID).To(BeNumerically(">", 0))
		Expect(resp.Name).To(Equal("Alice"))
		Expect(*resp.Department).To(Equal("Engineering"))
		Expect(resp.Role).To(BeNil())
		Expect(resp.DateJoined).To(MatchRegexp(`^\d{4}-\d{2}-\d{2}$`))
	})

	It("ignores read-only fields in the payload", func() {
		w := do(http.MethodPost, "/employees/create/", `{"id":500,"name":"Bob","email":"bob@example.com","date_joined":"1999-01-01"}`)
		Expect(w.Code).To(Equal(http.StatusCreated))

		var resp employee.EmployeeResponse
		Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
		Expect(resp.ID).NotTo(Equal(int64(500)))
		Expect(resp.DateJoined).NotTo(Equal("1999-01-01"))
	})

	It("returns field errors for an invalid create", func() {
		w := do(http.MethodPost, "/employees/create/", `{"name":"  ","email":"not-an-email"}`)
		Expect(w.Code).To(Equal(http.StatusBadRequest))

		body := decodeError(w)
		Expect(body.Error.Type).To(Equal("VALIDATION_ERROR"))
		Expect(body.Error.Details.Errors).To(ContainElements(
			internal.ValidationError{Field: "name", Message: employee.MsgNameBlank, Code: "BLANK"},
			internal.ValidationError{Field: "email", Message: "Enter a valid email address.", Code: "INVALID_EMAIL"},
		))
	})

	It("returns 400 for a duplicate email", func() {
		create("Alice", "alice@example.com", "")

		w := do(http.MethodPost, "/employees/create/", `{"name":"Other","email":"alice@example.com"}`)
		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(decodeError(w).Error.Details.Errors[0].Message).To(Equal(employee.MsgEmailDuplicate))
	})

	It("returns 400 for a malformed body", func() {
		w := do(http.MethodPost, "/employees/create/", `{"name":`)
		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(decodeError(w).Error.Code).To(Equal("INVALID_BODY"))
	})

	It("retrieves an employee by id", func() {
		created := create("Alice", "alice@example.com", "")

		w := do(http.MethodGet, "/employees/"+itoa(created.ID)+"/", "")
		Expect(w.Code).To(Equal(http.StatusOK))

		var resp employee.EmployeeResponse
		Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
		Expect(resp).To(Equal(created))
	})

	It("returns 404 for unknown and non-integer ids", func() {
		w := do(http.MethodGet, "/employees/999/", "")
		Expect(w.Code).To(Equal(http.StatusNotFound))
		Expect(decodeError(w).Error.Message).To(Equal("Employee not found."))

		w = do(http.MethodGet, "/employees/abc/", "")
		Expect(w.Code).To(Equal(http.StatusNotFound))
	})

	It("applies a full update with PUT", func() {
		created := create("Alice", "alice@example.com", "Engineering")

		w := do(http.MethodPut, "/employees/"+itoa(created.ID)+"/update/", `{"name":"Alice Smith","email":"alice@example.com","role":"Lead"}`)
		Expect(w.Code).To(Equal(http.StatusOK))

		var resp employee.EmployeeResponse
		Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
		Expect(resp.Name).To(Equal("Alice Smith"))
		Expect(resp.Department).To(BeNil())
		Expect(*resp.Role).To(Equal("Lead"))
		Expect(resp.DateJoined).To(Equal(created.DateJoined))
	})

	It("requires name and email on PUT", func() {
		created := create("Alice", "alice@example.com", "")

		w := do(http.MethodPut, "/employees/"+itoa(created.ID)+"/update/", `{"role":"Lead"}`)
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("applies a partial update with PATCH", func() {
		created := create("Alice", "alice@example.com", "Engineering")

		w := do(http.MethodPatch, "/employees/"+itoa(created.ID)+"/update/", `{"role":"Lead"}`)
		Expect(w.Code).To(Equal(http.StatusOK))

		var resp employee.EmployeeResponse
		Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
		Expect(resp.Name).To(Equal("Alice"))
		Expect(*resp.Department).To(Equal("Engineering"))
		Expect(*resp.Role).To(Equal("Lead"))
	})

	It("deletes an employee and then reports it missing", func() {
		created := create("Alice", "alice@example.com", "")

		w := do(http.MethodDelete, "/employees/"+itoa(created.ID)+"/delete/", "")
		Expect(w.Code).To(Equal(http.StatusOK))
		var msg employee.MessageResponse
		Expect(json.NewDecoder(w.Body).Decode(&msg)).To(Succeed())
		Expect(msg.Message).To(Equal("Employee deleted successfully."))

		Expect(do(http.MethodDelete, "/employees/"+itoa(created.ID)+"/delete/", "").Code).To(Equal(http.StatusNotFound))
		Expect(do(http.MethodGet, "/employees/"+itoa(created.ID)+"/", "").Code).To(Equal(http.StatusNotFound))
	})

	Describe("listing", func() {
		BeforeEach(func() {
			for i := 0; i < 12; i++ {
				dept := "Engineering"
				if i >= 10 {
					dept = "Sales"
				}
				create("E", "e"+itoa(int64(i))+"@example.com", dept)
			}
		})

		It("returns the first page with absolute links", func() {
			w := do(http.MethodGet, "/employees/", "")
			Expect(w.Code).To(Equal(http.StatusOK))

			var env pagination.Envelope[employee.EmployeeResponse]
			Expect(json.NewDecoder(w.Body).Decode(&env)).To(Succeed())
			Expect(env.Count).To(Equal(int64(12)))
			Expect(env.Results).To(HaveLen(10))
			Expect(env.Previous).To(BeNil())
			Expect(*env.Next).To(Equal("http://example.com/employees/?page=2"))
		})

		It("keeps other query parameters in links", func() {
			w := do(http.MethodGet, "/employees/?page=2&page_size=5", "")
			Expect(w.Code).To(Equal(http.StatusOK))

			var env pagination.Envelope[employee.EmployeeResponse]
			Expect(json.NewDecoder(w.Body).Decode(&env)).To(Succeed())
			Expect(env.Results).To(HaveLen(5))
			Expect(*env.Previous).To(Equal("http://example.com/employees/?page_size=5"))
			Expect(*env.Next).To(Equal("http://example.com/employees/?page=3&page_size=5"))
		})

		It("returns 404 for a page past the end", func() {
			w := do(http.MethodGet, "/employees/?page=3", "")
			Expect(w.Code).To(Equal(http.StatusNotFound))
			Expect(decodeError(w).Error.Message).To(Equal("Invalid page."))
		})

		It("returns an empty page for an unknown department", func() {
			w := do(http.MethodGet, "/employees/?department=Nowhere", "")
			Expect(w.Code).To(Equal(http.StatusOK))

			var env pagination.Envelope[employee.EmployeeResponse]
			Expect(json.NewDecoder(w.Body).Decode(&env)).To(Succeed())
			Expect(env.Count).To(BeZero())
			Expect(env.Results).To(BeEmpty())
			Expect(env.Next).To(BeNil())
		})

		It("filters strictly on the filter endpoint", func() {
			w := do(http.MethodGet, "/employees/filter/?department=Sales", "")
			Expect(w.Code).To(Equal(http.StatusOK))
			var list []employee.EmployeeResponse
			Expect(json.NewDecoder(w.Body).Decode(&list)).To(Succeed())
			Expect(list).To(HaveLen(2))

			w = do(http.MethodGet, "/employees/filter/?department=Nowhere", "")
			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(decodeError(w).Error.Message).To(Equal("No department found."))

			w = do(http.MethodGet, "/employees/filter/?role=CEO", "")
			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(decodeError(w).Error.Message).To(Equal("Invalid role."))
		})
	})

	It("rejects requests without an identity", func() {
		w := do(http.MethodGet, "/anonymous/employees/", "")
		Expect(w.Code).To(Equal(http.StatusUnauthorized))
		Expect(decodeError(w).Error.Code).To(Equal("MISSING_TOKEN"))
	})
})

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
