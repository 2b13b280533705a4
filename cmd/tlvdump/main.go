package main

import (
	"context"
	"os"

	elog "github.com/eluv-io/log-go"
)

var log = elog.Get("/eluvio/tlvdump")

func main() {
	if err := newRootCmd(os.Stdin, os.Stdout).ExecuteContext(context.Background()); err != nil {
		log.Error("tlvdump failed", "error", err)
		os.Exit(1)
	}
}
