// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package types

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("vetting states", func() {

	It("renders states in clear text", func() {
		Expect(Unchecked.String()).To(Equal("unchecked"))
		Expect(Checking.String()).To(Equal("checking"))
		Expect(Invalid.String()).To(Equal("invalid"))
		Expect(Valid.String()).To(Equal("valid"))
		Expect(Status(42).String()).To(Equal("Status(42)"))
	})

	It("tells pending states from final verdicts", func() {
		Expect(Unchecked.IsPending()).To(BeTrue())
		Expect(Checking.IsPending()).To(BeTrue())
		Expect(Invalid.IsPending()).To(BeFalse())
		Expect(Valid.IsPending()).To(BeFalse())
	})

	It("updates vetted endpoints into new values", func() {
		vetted := &VettedValue{
			Address: New("10.0.0.5", 5000),
			State:   Checking,
		}
		failure := errors.New("no such host")
		updated := vetted.WithStatus(Invalid, failure)
		Expect(updated.Status()).To(Equal(Invalid))
		Expect(updated.Err()).To(Equal(failure))
		Expect(updated.Endpoint()).To(Equal(vetted.Address))
		Expect(vetted.State).To(Equal(Checking), "original must not mutate")
		Expect(vetted.Err()).To(BeNil())
	})

	It("hands out copies of the vetted information", func() {
		vetted := &VettedValue{
			Address: New("10.0.0.5", 5000),
			State:   Valid,
		}
		vv := vetted.VV()
		vv.State = Invalid
		Expect(vetted.State).To(Equal(Valid))
	})

})
