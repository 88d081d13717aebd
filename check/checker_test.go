// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package check

import (
	"context"
	"time"

	"github.com/meshkit/hostport/types"

	"github.com/miekg/dns"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	. "github.com/onsi/gomega/gleak"
	. "github.com/thediveo/success"
)

var _ = Describe("vetting endpoint streams", func() {

	BeforeEach(func() {
		goodgos := Goroutines()
		DeferCleanup(func() {
			Eventually(Goroutines).WithTimeout(3 * time.Second).WithPolling(250 * time.Millisecond).
				ShouldNot(HaveLeaked(goodgos))
		})
	})

	It("vets IP literal endpoints without bothering the resolver", NodeTimeout(30*time.Second), func(ctx context.Context) {
		dnsclnt := dns.Client{}
		// Endpoints with IP literal hosts short-circuit inside the lookup
		// pool, so the "resolver" here never sees a single query.
		checker, news := Successful2R(New(ctx, 2, &dnsclnt, "127.0.0.1:53"))

		in := make(chan types.Address, 2)
		in <- types.New("192.0.2.7", 80)
		in <- types.New("192.0.2.7", 81)
		close(in)
		go func() {
			defer GinkgoRecover()
			checker.Check(ctx, in)
		}()

		vetted := NewVettedMap()
		Expect(vetted.Track(ctx, news)).To(Succeed())
		Expect(vetted.Get()).To(ConsistOf(
			And(
				HaveField("Address", types.New("192.0.2.7", 80)),
				HaveField("State", types.Valid)),
			And(
				HaveField("Address", types.New("192.0.2.7", 81)),
				HaveField("State", types.Valid)),
		))
	})

	It("invalidates endpoints whose hosts do not resolve", NodeTimeout(30*time.Second), func(ctx context.Context) {
		dnsclnt := dns.Client{Net: "udp"}
		checker, news := Successful2R(New(ctx, 1, &dnsclnt, "127.0.0.1:1"))

		in := make(chan types.Address, 1)
		in <- types.New("tld.rottennet", 1234)
		close(in)
		go func() {
			defer GinkgoRecover()
			checker.Check(ctx, in)
		}()

		vetted := NewVettedMap()
		Expect(vetted.Track(ctx, news)).To(Succeed())
		Expect(vetted.Get()).To(ConsistOf(
			And(
				HaveField("Address", types.New("tld.rottennet", 1234)),
				HaveField("State", types.Invalid)),
		))
	})

	It("winds down when cancelled", NodeTimeout(30*time.Second), func(specctx context.Context) {
		ctx, cancel := context.WithCancel(specctx)
		defer cancel()
		dnsclnt := dns.Client{}
		checker, news := Successful2R(New(ctx, 1, &dnsclnt, "127.0.0.1:53"))

		in := make(chan types.Address) // intentionally never fed, never closed.
		done := make(chan struct{})
		go func() {
			defer GinkgoRecover()
			checker.Check(ctx, in)
			close(done)
		}()

		cancel()
		Eventually(done).Within(5 * time.Second).Should(BeClosed())
		Eventually(news).Should(BeClosed())
		// ...and let the goroutine leak detector do its work!
	})

})
