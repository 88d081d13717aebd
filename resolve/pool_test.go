// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package resolve

import (
	"context"
	"sync"
	"time"

	"github.com/miekg/dns"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	. "github.com/onsi/gomega/gleak"
	. "github.com/thediveo/success"
)

var _ = Describe("DNS lookup pool", func() {

	BeforeEach(func() {
		goodgos := Goroutines()
		DeferCleanup(func() {
			Eventually(Goroutines).WithTimeout(3 * time.Second).WithPolling(250 * time.Millisecond).
				ShouldNot(HaveLeaked(goodgos))
		})
	})

	It("runs a goroutine-limited set of lookup tasks", NodeTimeout(30*time.Second), func(ctx context.Context) {
		const poolsize = 3

		dnsclnt := dns.Client{}
		// We're never going to contact this DNS "server", we just need just
		// some address so we can allocate some connections.
		pool := Successful(New(ctx, poolsize, &dnsclnt, "127.0.0.1:53"))

		dnsconns := map[*dns.Conn]int{}
		var mu sync.Mutex
		taskfn := func(conn *dns.Conn) {
			mu.Lock()
			defer mu.Unlock()
			count := dnsconns[conn]
			dnsconns[conn] = count + 1
			time.Sleep(time.Second)
		}

		numtasks := poolsize * 2
		for i := 0; i < numtasks; i++ {
			pool.Submit(taskfn)
		}

		pool.StopWait()

		total := 0
		for _, count := range dnsconns {
			total += count
		}
		Expect(total).To(Equal(numtasks), "number of submitted and executed tasks mismatch")
	})

	It("short-circuits IP literal hosts", NodeTimeout(30*time.Second), func(ctx context.Context) {
		dnsclnt := dns.Client{}
		// The resolver must never be contacted for a literal, so any old
		// address will do here.
		pool := Successful(New(ctx, 1, &dnsclnt, "127.0.0.1:53"))

		var addrs []string
		var err error
		pool.ResolveHost(ctx, "192.0.2.1", func(a []string, e error) {
			addrs, err = a, e
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(addrs).To(ConsistOf("192.0.2.1"))
		pool.StopWait()
	})

	It("reports resolution failures", NodeTimeout(30*time.Second), func(ctx context.Context) {
		dnsclnt := dns.Client{Net: "udp"}
		pool := Successful(New(ctx, 1, &dnsclnt, "127.0.0.1:1"))
		ch := make(chan []string)

		pool.ResolveHost(ctx,
			"tld.rottennet.",
			func(addrs []string, err error) {
				defer GinkgoRecover()
				Expect(err).To(HaveOccurred())
				close(ch)
			})
		Eventually(ch).Should(BeClosed())
		pool.StopWait()
	})

	It("cancels scheduled lookups", NodeTimeout(30*time.Second), func(specctx context.Context) {
		ctx, cancel := context.WithCancel(specctx)
		dnsclnt := dns.Client{Net: "udp"}
		pool := Successful(New(specctx, 1, &dnsclnt, "127.0.0.1:1"))
		cancel()

		ch := make(chan []string)
		pool.ResolveHost(ctx,
			"tld.rottennet.",
			func(addrs []string, err error) {
				defer GinkgoRecover()
				Expect(err).To(MatchError(context.Canceled))
				close(ch)
			})
		Eventually(ch).Should(BeClosed())
		pool.StopWait()
	})

})
