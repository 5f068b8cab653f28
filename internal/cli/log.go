// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"code.hybscloud.com/stream"
)

// configureLogger applies s to log, writing to w.
func configureLogger(log *logrus.Logger, s LogSettings, w io.Writer) error {
	level, err := logrus.ParseLevel(s.Level)
	if err != nil {
		return err
	}
	log.SetLevel(level)
	log.SetOutput(w)
	switch s.Format {
	case "text", "":
		log.SetFormatter(&logrus.TextFormatter{TimestampFormat: time.RFC3339Nano})
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	default:
		return fmt.Errorf("unknown log format %q", s.Format)
	}
	return nil
}

// sessionLog returns an entry tagged with the job name and session serial.
func (a *app) sessionLog(job string, h *stream.Handle) *logrus.Entry {
	return a.log.WithFields(logrus.Fields{
		"job":    job,
		"serial": h.Serial().String(),
	})
}
