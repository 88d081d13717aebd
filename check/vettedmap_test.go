// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package check

import (
	"context"
	"errors"

	"github.com/meshkit/hostport/types"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("tracking vetted endpoints", func() {

	It("updates endpoint states forward only", func() {
		vetted := NewVettedMap()
		endpoint := types.New("10.0.0.5", 5000)

		vetted.Update(&types.VettedValue{Address: endpoint, State: types.Checking})
		vetted.Update(&types.VettedValue{Address: endpoint, State: types.Unchecked}) // stale
		Expect(vetted.Get()).To(ConsistOf(HaveField("State", types.Checking)))

		vetted.Update((&types.VettedValue{Address: endpoint}).WithStatus(types.Valid, nil))
		Expect(vetted.Get()).To(ConsistOf(HaveField("State", types.Valid)))

		vetted.Update(nil)
		Expect(vetted.Get()).To(HaveLen(1))
	})

	It("keeps endpoints apart that differ only in port", func() {
		vetted := NewVettedMap()
		vetted.Update(&types.VettedValue{Address: types.New("10.0.0.5", 5000), State: types.Valid})
		vetted.Update(&types.VettedValue{Address: types.New("10.0.0.5", 5001), State: types.Invalid})
		Expect(vetted.Get()).To(HaveLen(2))
	})

	It("tracks an update stream until it is closed", func(ctx context.Context) {
		news := make(chan types.Vetted, 2)
		news <- &types.VettedValue{Address: types.New("10.0.0.5", 5000), State: types.Valid}
		news <- (&types.VettedValue{Address: types.New("10.0.0.6", 5000)}).
			WithStatus(types.Invalid, errors.New("no such host"))
		close(news)

		vetted := NewVettedMap()
		Expect(vetted.Track(ctx, news)).To(Succeed())
		Expect(vetted.Get()).To(ConsistOf(
			HaveField("State", types.Valid),
			HaveField("State", types.Invalid),
		))
	})

	It("aborts tracking when the context is done", func(specctx context.Context) {
		ctx, cancel := context.WithCancel(specctx)
		cancel()
		news := make(chan types.Vetted)
		Expect(NewVettedMap().Track(ctx, news)).To(MatchError(context.Canceled))
	})

})
