package employee_test

import (
	"encoding/json"
	"net/url"

	"github.com/frahmantamala/employee-management/internal/employee"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("EmployeeInput", func() {
	It("distinguishes omitted, null and supplied fields", func() {
		var in employee.EmployeeInput
		err := json.Unmarshal([]byte(`{"name":"Alice","department":null,"id":99,"date_joined":"1999-01-01"}`), &in)
		Expect(err).NotTo(HaveOccurred())

		Expect(in.Name).To(Equal(employee.Some("Alice")))
		Expect(in.Department).To(Equal(employee.Null()))
		Expect(in.Email.Set).To(BeFalse())
		Expect(in.Role.Set).To(BeFalse())
	})

	It("rejects non-string values", func() {
		var in employee.EmployeeInput
		err := json.Unmarshal([]byte(`{"name":12}`), &in)
		Expect(err).To(HaveOccurred())
	})

	It("gives nil pointers for null and absent values", func() {
		Expect(employee.Null().Ptr()).To(BeNil())
		Expect(employee.OptionalString{}.Ptr()).To(BeNil())
		Expect(*employee.Some("").Ptr()).To(Equal(""))
	})
})

var _ = Describe("Filter", func() {
	It("reads department and role from the query string", func() {
		q, err := url.ParseQuery("department=Engineering&role=Developer&page=2")
		Expect(err).NotTo(HaveOccurred())

		f := employee.FilterFromQuery(q)
		Expect(f).To(Equal(employee.Filter{Department: "Engineering", Role: "Developer"}))
		Expect(f.IsEmpty()).To(BeFalse())
	})

	It("treats empty parameters as not supplied", func() {
		q, _ := url.ParseQuery("department=&role=")
		Expect(employee.FilterFromQuery(q).IsEmpty()).To(BeTrue())
	})
})
