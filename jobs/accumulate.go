// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package jobs

import (
	"fmt"
	"strconv"
	"strings"

	"code.hybscloud.com/kont"
	"code.hybscloud.com/stream"
)

type sumStep = kont.Either[int64, struct{}]

// Accumulate sums the integers it receives. A negative value ends the input:
// the job emits ("sum", total) and completes. With option filter set, only
// messages of that name are summed; the end-of-input value is honoured
// whatever its name, so a sentinel sent under another name still ends it.
func Accumulate(cfg stream.Config) (stream.Job, error) {
	filter := cfg.String("filter", "")
	body := stream.Loop(int64(0), func(sum int64) kont.Eff[sumStep] {
		return stream.ReceiveBind(func(m stream.Message) kont.Eff[sumStep] {
			v, err := strconv.ParseInt(strings.TrimSpace(m.Payload), 10, 64)
			if err != nil {
				return stream.Throw[sumStep](fmt.Sprintf("accumulate: bad value %q", m.Payload))
			}
			if v < 0 {
				return stream.EmitThen("sum", strconv.FormatInt(sum, 10),
					stream.Break[int64, struct{}](struct{}{}))
			}
			if filter != "" && m.Name != filter {
				return stream.Continue[int64, struct{}](sum)
			}
			return stream.Continue[int64, struct{}](sum + v)
		})
	})
	return stream.Program(body), nil
}
