// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/meshkit/hostport/check"
	"github.com/meshkit/hostport/types"

	"github.com/gosuri/uilive"
	"github.com/miekg/dns"
)

// badArg is a command line argument that failed endpoint parsing, together
// with the reason why.
type badArg struct {
	arg string
	err error
}

// VetAndReport parses and normalizes the given host:port arguments and
// renders the resulting endpoints to the terminal. With --check it
// additionally vets the endpoint hosts against a DNS resolver, rendering
// live progress while the verdicts trickle in.
//
// It returns an error when any argument was malformed or any endpoint
// failed vetting, so the process exit code tells scripts the whole list was
// fine.
func VetAndReport(ctx context.Context, args []string) error {
	endpoints := make([]types.Address, 0, len(args))
	bad := []badArg{}
	for _, arg := range args {
		endpoint, err := types.Parse(arg)
		if err != nil {
			bad = append(bad, badArg{arg: arg, err: err})
			continue
		}
		endpoints = append(endpoints, endpoint)
	}

	if !*checking {
		return report(endpoints, bad)
	}

	resolver, err := resolverAddress()
	if err != nil {
		return err
	}
	checker, news, err := check.New(ctx, int(*workerNumber), &dns.Client{}, resolver)
	if err != nil {
		return fmt.Errorf("cannot vet endpoints: %w", err)
	}

	// Create an empty (concurrency-safe) result map with the vetted
	// endpoints and immediately fire off the rendering goroutine. The
	// rendering will only stop after tracking has finished because the news
	// channel has been closed. We then render a final update and end
	// rendering, signalling the end of our activities via renderingDone.
	vetted := check.NewVettedMap()
	trackingDone := make(chan struct{})
	renderingDone := make(chan struct{})

	go func() {
		// We avoid uilive's background updating mode using Start(), as it
		// may trigger anytime with the rendering into the buffer not yet
		// complete; instead an explicit flush follows each completed
		// rendering.
		term := uilive.New()
		renderer := newRenderer(term)
		renderer.Indentation = int(*indentation)
		defer func() {
			renderData(term, renderer, vetted, bad)
			renderer.Stop()
			close(renderingDone)
		}()
		renderData(term, renderer, vetted, bad)
		ticker := time.NewTicker(20 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				renderData(term, renderer, vetted, bad)
			case <-trackingDone:
				return
			}
		}
	}()

	go func() {
		_ = vetted.Track(ctx, news)
		close(trackingDone)
	}()

	// Finally feed the endpoints into the Checker, so they can be processed
	// and move through the vetting stages. Then close the input stream and
	// wait for all the data to pass the stages and finally get rendered a
	// last time.
	in := make(chan types.Address, len(endpoints))
	for _, endpoint := range endpoints {
		in <- endpoint
	}
	close(in)
	go checker.Check(ctx, in)
	<-renderingDone

	failed := len(bad)
	for _, v := range vetted.Get() {
		if v.State == types.Invalid {
			failed++
		}
	}
	if failed != 0 {
		return fmt.Errorf("%d endpoint(s) failed vetting", failed)
	}
	return nil
}

// report renders the parsed endpoints once, without any vetting.
func report(endpoints []types.Address, bad []badArg) error {
	term := uilive.New()
	renderer := newRenderer(term)
	renderer.Indentation = int(*indentation)
	vetted := make([]types.VettedValue, 0, len(endpoints))
	for _, endpoint := range endpoints {
		vetted = append(vetted, types.VettedValue{Address: endpoint, State: types.Unchecked})
	}
	renderer.Render(vetted, bad)
	renderer.Stop()
	term.Flush()
	if len(bad) != 0 {
		return fmt.Errorf("%d malformed endpoint argument(s)", len(bad))
	}
	return nil
}

// renderData gets the current vetted endpoint data and then renders (and
// flushes) it to the terminal.
func renderData(term *uilive.Writer, r *renderer, data *check.VettedMap, bad []badArg) {
	r.Render(data.Get(), bad)
	term.Flush()
}

// resolverAddress returns the DNS resolver address to vet against: the one
// explicitly given on the command line, or otherwise the first nameserver
// configured in /etc/resolv.conf.
func resolverAddress() (string, error) {
	if *dnsServer != "" {
		return *dnsServer, nil
	}
	clientcfg, err := dns.ClientConfigFromFile("/etc/resolv.conf")
	if err != nil {
		return "", fmt.Errorf("cannot determine the system resolver: %w", err)
	}
	if len(clientcfg.Servers) == 0 {
		return "", fmt.Errorf("no nameservers configured in /etc/resolv.conf")
	}
	return net.JoinHostPort(clientcfg.Servers[0], clientcfg.Port), nil
}
