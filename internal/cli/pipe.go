// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"code.hybscloud.com/stream"
	"code.hybscloud.com/stream/jobs"
)

// endOfInput is the sentinel that ends an accumulate session.
const endOfInput = "-1"

func (a *app) pipeCmd() *cobra.Command {
	var max int
	var event string
	cmd := &cobra.Command{
		Use:   "pipe",
		Short: "Pipe even_odd into accumulate and print the sum",
		Long: `Pipe runs even_odd up to --max and forwards its events into an accumulate
session that sums the events named --event. The events of both sessions
are printed, the sum last.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if max < 0 {
				return fmt.Errorf("pipe: --max must not be negative, got %d", max)
			}
			return a.pipe(cmd, max, event)
		},
	}
	cmd.Flags().IntVar(&max, "max", 10, "count from 0 up to this value")
	cmd.Flags().StringVar(&event, "event", "even_event", "event name to sum")
	return cmd
}

func (a *app) pipe(cmd *cobra.Command, max int, event string) error {
	srcCfg, err := a.settings.jobConfig(jobs.NameEvenOdd, nil)
	if err != nil {
		return err
	}
	src, err := a.registry.Start(jobs.NameEvenOdd, srcCfg)
	if err != nil {
		return err
	}
	dst, err := a.registry.Start(jobs.NameAccumulate, stream.Config{"filter": event})
	if err != nil {
		return err
	}
	a.sessionLog(jobs.NameEvenOdd, src).WithField("to", dst.Serial().String()).Debug("pipe started")

	out := newPrinter(cmd.OutOrStdout())
	src.OnDefault(func(m stream.Message) { out.print(Event{Event: m.Name, Payload: m.Payload}) })
	stream.Pipe(src, func(d *stream.Handle) { d.Send("end", endOfInput) }, dst)
	out.attach(dst)

	src.Send("max", strconv.Itoa(max))
	src.Send("max", endOfInput)

	ctx := cmd.Context()
	srcErr := src.Run(ctx)
	dstErr := dst.Run(ctx)
	if out.err != nil {
		return out.err
	}
	if err := errors.Join(srcErr, dstErr); err != nil {
		a.log.WithError(err).Error("pipe failed")
		return fmt.Errorf("pipe: %w", err)
	}
	return nil
}
