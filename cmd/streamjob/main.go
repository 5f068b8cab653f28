// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command streamjob runs streaming jobs from the command line.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"code.hybscloud.com/stream/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := cli.New().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
