// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package main

import "github.com/muesli/termenv"

var (
	checkingEndpointStyle = termenv.Style{}.Foreground(termenv.ANSIYellow)
	validEndpointStyle    = termenv.Style{}.Foreground(termenv.ANSIGreen)
	invalidEndpointStyle  = termenv.Style{}.Foreground(termenv.ANSIRed)
)

var endpointStyle = termenv.Style{}.Bold()
