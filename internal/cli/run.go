// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"code.hybscloud.com/stream"
)

// defaultInputName names stdin lines and inputs given without "name=".
const defaultInputName = "value"

type runFlags struct {
	opts   []string
	inputs []string
	stdin  bool
}

func (a *app) runCmd() *cobra.Command {
	var f runFlags
	cmd := &cobra.Command{
		Use:   "run <job>",
		Short: "Run one job and print its events",
		Long: `Run starts the named job with its configured options, overridden by --opt,
then sends every --input in order, followed by stdin lines when --stdin is set.
Inputs are "name=payload" or a bare payload sent as "value".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, args[0], f)
		},
	}
	fs := cmd.Flags()
	fs.StringArrayVarP(&f.opts, "opt", "o", nil, "job option key=value (repeatable)")
	fs.StringArrayVarP(&f.inputs, "input", "i", nil, "input name=payload (repeatable)")
	fs.BoolVar(&f.stdin, "stdin", false, "send stdin lines as inputs")
	fs.Duration("timeout", 0, "give up after this long (0 = never)")
	fs.Duration("close-after", 0, "request close after this long (0 = never)")
	return cmd
}

func (a *app) run(cmd *cobra.Command, job string, f runFlags) error {
	cfg, err := a.settings.jobConfig(job, f.opts)
	if err != nil {
		return err
	}
	h, err := a.registry.Start(job, cfg)
	if err != nil {
		return err
	}
	log := a.sessionLog(job, h)
	log.WithField("options", len(cfg)).Debug("session started")

	out := newPrinter(cmd.OutOrStdout())
	out.attach(h)

	for _, in := range f.inputs {
		name, payload := splitInput(in)
		h.Send(name, payload)
	}
	if f.stdin {
		go a.feed(h, cmd.InOrStdin(), job)
	}
	if d := a.settings.Run.CloseAfter; d > 0 {
		t := time.AfterFunc(d, func() {
			log.Debug("close requested")
			h.Close()
		})
		defer t.Stop()
	}

	ctx := cmd.Context()
	if d := a.settings.Run.Timeout; d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}
	err = h.Run(ctx)
	if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
		h.Close()
		log.WithError(err).Warn("session abandoned")
		return fmt.Errorf("run %s: %w", job, err)
	}
	if out.err != nil {
		return out.err
	}
	if err != nil {
		log.WithError(err).Error("session failed")
		return fmt.Errorf("run %s: %w", job, err)
	}
	log.Info("session completed")
	return nil
}

// feed sends every line of r as an input.
func (a *app) feed(h *stream.Handle, r io.Reader, job string) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if !h.Send(splitInput(line)) {
			return
		}
	}
	if err := sc.Err(); err != nil {
		a.sessionLog(job, h).WithError(err).Warn("read stdin")
	}
}

// splitInput parses "name=payload"; a bare payload is named "value".
func splitInput(s string) (name, payload string) {
	if name, payload, ok := strings.Cut(s, "="); ok && name != "" {
		return name, payload
	}
	return defaultInputName, s
}
