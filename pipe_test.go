// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stream_test

import (
	"errors"
	"reflect"
	"strconv"
	"testing"

	"code.hybscloud.com/stream"
)

// summer adds "n" payloads until it sees "end".
var summer = stream.JobFunc(func(w *stream.Worker) error {
	sum := 0
	for {
		m := w.Receive()
		if m.Name == "end" {
			w.Emit("sum", strconv.Itoa(sum))
			return nil
		}
		v, err := strconv.Atoi(m.Payload)
		if err != nil {
			return err
		}
		sum += v
	}
})

func TestPipeForwardsAndEnds(t *testing.T) {
	skipRace(t)
	src := stream.StartJob(stream.JobFunc(func(w *stream.Worker) error {
		for i := 1; i <= 4; i++ {
			w.Emit("n", strconv.Itoa(i))
		}
		return nil
	}))
	a := stream.StartJob(summer)
	b := stream.StartJob(summer)
	stream.Pipe(src, func(dst *stream.Handle) { dst.Send("end", "") }, a, b)

	if err := drive(t, src); err != nil {
		t.Fatalf("src Run: %v", err)
	}
	for _, dst := range []*stream.Handle{a, b} {
		r := record(dst)
		if err := drive(t, dst); err != nil {
			t.Fatalf("dst Run: %v", err)
		}
		if !reflect.DeepEqual(r.events, []string{"sum=10", "close"}) {
			t.Fatalf("events got %v", r.events)
		}
	}
}

func TestPipeEndsOnSourceFailure(t *testing.T) {
	skipRace(t)
	src := stream.StartJob(stream.JobFunc(func(w *stream.Worker) error {
		w.Emit("n", "5")
		return errors.New("source broke")
	}))
	dst := stream.StartJob(summer)
	stream.Pipe(src, func(d *stream.Handle) { d.Send("end", "") }, dst)
	if err := drive(t, src); err == nil {
		t.Fatal("src Run reported success")
	}
	r := record(dst)
	if err := drive(t, dst); err != nil {
		t.Fatalf("dst Run: %v", err)
	}
	if !reflect.DeepEqual(r.events, []string{"sum=5", "close"}) {
		t.Fatalf("events got %v", r.events)
	}
}

func TestPipeNamedHandlersNotForwarded(t *testing.T) {
	skipRace(t)
	src := stream.StartJob(stream.JobFunc(func(w *stream.Worker) error {
		w.Emit("log", "ignored")
		w.Emit("n", "2")
		return nil
	}))
	src.On("log", func(stream.Message) {})
	dst := stream.StartJob(summer)
	stream.Pipe(src, func(d *stream.Handle) { d.Send("end", "") }, dst)
	drive(t, src)
	r := record(dst)
	if err := drive(t, dst); err != nil {
		t.Fatalf("dst Run: %v", err)
	}
	if !reflect.DeepEqual(r.events, []string{"sum=2", "close"}) {
		t.Fatalf("events got %v", r.events)
	}
}
