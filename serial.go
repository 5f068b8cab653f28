// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stream

import (
	"strconv"

	"code.hybscloud.com/atomix"
)

// Serial identifies a session within the process. Serials are assigned
// in start order, beginning at 1, including sessions whose configuration
// was rejected.
type Serial uint32

// String returns the serial as "s<n>", the form used in logs.
func (s Serial) String() string {
	return "s" + strconv.FormatUint(uint64(s), 10)
}

// sessions counts every session ever created.
var sessions atomix.Uint32

func nextSerial() Serial {
	return Serial(sessions.Add(1))
}
