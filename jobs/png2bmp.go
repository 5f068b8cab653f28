// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package jobs

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/png"

	"golang.org/x/image/bmp"

	"code.hybscloud.com/kont"
	"code.hybscloud.com/stream"
)

type convertStep = kont.Either[struct{}, struct{}]

// PNGToBMP converts images. Each inbound ("png", base64 PNG) yields an
// outbound ("bmp", base64 BMP). An "end" message ends the job, as does
// close while it waits for input; other message names are ignored. An
// undecodable image fails the session.
func PNGToBMP(stream.Config) (stream.Job, error) {
	body := stream.Loop(struct{}{}, func(struct{}) kont.Eff[convertStep] {
		return stream.ReceiveBind(func(m stream.Message) kont.Eff[convertStep] {
			switch m.Name {
			case "end":
				return stream.Break[struct{}, struct{}](struct{}{})
			case "png":
				out, err := ConvertPNGToBMP(m.Payload)
				if err != nil {
					return stream.Throw[convertStep](err.Error())
				}
				return stream.EmitThen("bmp", out, stream.Continue[struct{}, struct{}](struct{}{}))
			}
			return stream.Continue[struct{}, struct{}](struct{}{})
		})
	})
	return stream.Interruptible(body), nil
}

// ConvertPNGToBMP decodes a base64 PNG and returns it as a base64 BMP.
func ConvertPNGToBMP(b64 string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return "", fmt.Errorf("png2bmp: %w", err)
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("png2bmp: %w", err)
	}
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("png2bmp: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
