package service

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// Version is set at build time with -ldflags "-X hackblog/service.Version=...".
var Version = "1.0.0"

var errNoDataDir = errors.New("--data-dir is required, the in-memory store cannot be used here")

// confirm asks question on out and reads a y/N answer from in.
func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N] ", question)
	var response string
	fmt.Fscanln(in, &response)
	response = strings.TrimSpace(response)
	return response == "y" || response == "Y"
}
