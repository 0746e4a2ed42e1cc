package bundle

import (
	"testing"
	"testing/fstest"
)

func TestRegisterLifecycle(t *testing.T) {
	if Active() {
		t.Fatalf("bundle should start inactive")
	}
	if _, ok := FS(); ok {
		t.Fatalf("FS should report no bundle before Register")
	}

	Register(nil)
	if Active() {
		t.Fatalf("nil registration should be ignored")
	}

	first := fstest.MapFS{"scripts/app.go": &fstest.MapFile{Data: []byte("package main")}}
	Register(first)
	if !Active() {
		t.Fatalf("bundle should be active after Register")
	}

	second := fstest.MapFS{}
	Register(second)
	got, ok := FS()
	if !ok {
		t.Fatalf("FS should return the registered bundle")
	}
	if _, err := got.Open("scripts/app.go"); err != nil {
		t.Fatalf("first registration should win: %v", err)
	}
}
