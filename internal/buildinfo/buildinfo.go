// Package buildinfo holds values injected at link time.
//
// Build example:
//
//	go build -ldflags "\
//	  -X github.com/dmitrijs2005/appgallery/internal/buildinfo.Version=v1.2.0 \
//	  -X github.com/dmitrijs2005/appgallery/internal/buildinfo.EndpointURL=https://script.google.com/macros/s/XXX/exec \
//	  -X github.com/dmitrijs2005/appgallery/internal/buildinfo.CreationPassword=changeme" ./cmd/cli
package buildinfo

import (
	"fmt"
	"io"
)

var (
	Version   = "N/A"
	BuildDate = "N/A"
	Commit    = "N/A"

	// EndpointURL is the default Remote Action Endpoint address.
	EndpointURL = ""

	// CreationPassword is the shared secret that unlocks registration of new entries.
	CreationPassword = ""
)

// PrintBuildData writes version information to w.
func PrintBuildData(w io.Writer) {
	fmt.Fprintf(w, "Build version: %s\n", Version)
	fmt.Fprintf(w, "Build date: %s\n", BuildDate)
	fmt.Fprintf(w, "Build commit: %s\n", Commit)
}
