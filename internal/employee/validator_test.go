package employee_test

import (
	"context"
	"errors"
	"strings"

	"github.com/frahmantamala/employee-management/internal"
	"github.com/frahmantamala/employee-management/internal/employee"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Validator", func() {
	var (
		mockRepo  *MockRepository
		validator *employee.Validator
		ctx       context.Context
	)

	BeforeEach(func() {
		mockRepo = NewMockRepository()
		validator = employee.NewValidator(mockRepo)
		ctx = context.Background()
	})

	valid := func() employee.EmployeeInput {
		return employee.EmployeeInput{
			Name:  employee.Some("Alice"),
			Email: employee.Some("alice@example.com"),
		}
	}

	It("accepts a valid record", func() {
		Expect(validator.Validate(ctx, valid(), nil, false)).To(Succeed())
	})

	DescribeTable("email syntax",
		func(email string, ok bool) {
			in := valid()
			in.Email = employee.Some(email)
			err := validator.Validate(ctx, in, nil, false)
			if ok {
				Expect(err).NotTo(HaveOccurred())
				return
			}
			appErr := expectAppError(err, 400, internal.ErrCodeValidationFailed)
			Expect(fieldMessages(appErr)).To(HaveKeyWithValue("email", "Enter a valid email address."))
		},
		Entry("plain address", "bob@example.com", true),
		Entry("subdomain and plus tag", "bob+hr@mail.example.co", true),
		Entry("missing at sign", "bob.example.com", false),
		Entry("missing local part", "@example.com", false),
		Entry("display name form", "Bob <bob@example.com>", false),
		Entry("two at signs", "bob@@example.com", false),
	)

	It("rejects over-long values", func() {
		in := valid()
		in.Name = employee.Some(strings.Repeat("n", employee.NameMaxLength+1))
		in.Department = employee.Some(strings.Repeat("d", employee.DepartmentMaxLength+1))

		appErr := expectAppError(validator.Validate(ctx, in, nil, false), 400, internal.ErrCodeValidationFailed)
		messages := fieldMessages(appErr)
		Expect(messages).To(HaveKeyWithValue("name", "Ensure this field has no more than 255 characters."))
		Expect(messages).To(HaveKeyWithValue("department", "Ensure this field has no more than 100 characters."))
	})

	It("counts characters rather than bytes", func() {
		in := valid()
		in.Role = employee.Some(strings.Repeat("é", employee.RoleMaxLength))
		Expect(validator.Validate(ctx, in, nil, false)).To(Succeed())
	})

	It("treats a missing name as required", func() {
		in := valid()
		in.Name = employee.OptionalString{}

		appErr := expectAppError(validator.Validate(ctx, in, nil, false), 400, internal.ErrCodeValidationFailed)
		Expect(fieldMessages(appErr)).To(HaveKeyWithValue("name", "This field is required."))
	})

	It("skips absent fields on a partial check", func() {
		in := employee.EmployeeInput{Role: employee.Some("Lead")}
		Expect(validator.Validate(ctx, in, nil, true)).To(Succeed())
	})

	It("excludes the record being updated from the uniqueness check", func() {
		id := mockRepo.AddEmployee("Alice", "alice@example.com", nil, nil)

		Expect(validator.Validate(ctx, valid(), &id, false)).To(Succeed())

		appErr := expectAppError(validator.Validate(ctx, valid(), nil, false), 400, internal.ErrCodeValidationFailed)
		Expect(fieldMessages(appErr)).To(HaveKeyWithValue("email", employee.MsgEmailDuplicate))
	})

	It("matches emails exactly", func() {
		mockRepo.AddEmployee("Alice", "alice@example.com", nil, nil)

		in := valid()
		in.Email = employee.Some("Alice@example.com")
		Expect(validator.Validate(ctx, in, nil, false)).To(Succeed())
	})

	It("returns store failures as plain errors", func() {
		mockRepo.SetShouldFail(errors.New("db down"))

		err := validator.Validate(ctx, valid(), nil, false)
		Expect(err).To(MatchError(ContainSubstring("db down")))
		_, isAppErr := internal.IsAppError(err)
		Expect(isAppErr).To(BeFalse())
	})
})
