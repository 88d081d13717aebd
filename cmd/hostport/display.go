// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"fmt"
	"io"
	"net"
	"sort"

	"github.com/meshkit/hostport/types"
)

// renderer renders the terminal display, based on the vetted endpoint
// information passed to its Render method.
type renderer struct {
	Indentation int
	w           io.Writer
	spinner     *spinner
}

// newRenderer returns a renderer object rendering to the specified
// io.Writer.
func newRenderer(w io.Writer) *renderer {
	sp := newSpinner()
	sp.Start(*spinnerInterval)
	return &renderer{
		w:       w,
		spinner: sp,
	}
}

// Stop the renderer's background ticker.
func (r *renderer) Stop() {
	r.spinner.Stop()
}

// Render the given vetted endpoints, followed by the arguments that never
// made it into an endpoint.
func (r *renderer) Render(vetted []types.VettedValue, bad []badArg) {
	// If nothing has passed parsing yet, show a proxy message.
	if len(vetted) == 0 && len(bad) == 0 {
		fmt.Fprintln(r.w, "parsing and vetting endpoints...")
		return
	}
	sortVetted(vetted)
	// For neat display, determine the length of the longest endpoint
	// rendering in the data to display, so that the verdict details column
	// doesn't zig-zag around.
	maxlen := 0
	for _, v := range vetted {
		if l := len(v.Address.String()); l > maxlen {
			maxlen = l
		}
	}
	fmt.Fprintf(r.w, "%d endpoint(s):\n", len(vetted)+len(bad))
	for _, v := range vetted {
		r.renderEndpoint(maxlen, v)
	}
	for _, b := range bad {
		fmt.Fprintf(r.w, "%-*s%s %v\n", r.Indentation, "",
			invalidEndpointStyle.Styled("× "+b.arg), b.err)
	}
}

// renderEndpoint renders a single endpoint line with its verdict mark.
func (r *renderer) renderEndpoint(labelwidth int, v types.VettedValue) {
	endpoint := endpointStyle.Styled(fmt.Sprintf("%-*s", labelwidth, v.Address))
	fmt.Fprintf(r.w, "%-*s", r.Indentation, "")
	switch v.State {
	case types.Unchecked:
		fmt.Fprintf(r.w, "? %s\n", endpoint)
	case types.Checking:
		fmt.Fprintf(r.w, "%s%s\n", checkingEndpointStyle.Styled(r.spinner.Spinner()), endpoint)
	case types.Valid:
		fmt.Fprintf(r.w, "%s %s\n", validEndpointStyle.Styled("✔"), endpoint)
	case types.Invalid:
		fmt.Fprintf(r.w, "%s %s", invalidEndpointStyle.Styled("×"), endpoint)
		if err := v.Err(); err != nil {
			fmt.Fprintf(r.w, " %v", err)
		}
		fmt.Fprintln(r.w)
	}
}

// sortVetted sorts a slice of vetted endpoints in place:
//   - IP-literal hosts in address order before name hosts in lexicographic
//     order (IPv4 first, IPv6 ... (embarrassed silence) ... second),
//   - ports breaking the ties.
func sortVetted(vetted []types.VettedValue) {
	sort.Slice(vetted, func(a, b int) bool {
		hostA, hostB := vetted[a].Address.Host(), vetted[b].Address.Host()
		if hostA == hostB {
			return vetted[a].Address.Port() < vetted[b].Address.Port()
		}
		ipA := net.ParseIP(hostA)
		ipB := net.ParseIP(hostB)
		switch {
		case ipA != nil && ipB != nil:
			return bytes.Compare(ipA, ipB) < 0
		case ipA != nil:
			return true
		case ipB != nil:
			return false
		}
		return hostA < hostB
	})
}
