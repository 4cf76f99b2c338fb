package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"badgelife/src/sample"
)

func TestOpenSource(t *testing.T) {
	src, closer, err := openSource(&TiltOptions{samples: 3})
	if err != nil {
		t.Fatal(err)
	}
	if closer != nil {
		t.Error("simulation has a closer")
	}
	if _, ok := src.(*sample.Sim); !ok {
		t.Fatalf("got %T, want *sample.Sim", src)
	}

	if _, _, err := openSource(&TiltOptions{file: filepath.Join(t.TempDir(), "missing")}); err == nil {
		t.Error("missing file opened")
	}
}

func TestRunTilt_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "samples.txt")
	if err := os.WriteFile(path, []byte("3\n3\n3\n0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	to := &TiltOptions{deadzone: 2, friction: 2, axis: "x", file: path}
	if err := runTilt(context.Background(), &EnvOptions{noColor: true}, to); err != nil {
		t.Fatal(err)
	}

	to.axis = "w"
	if err := runTilt(context.Background(), &EnvOptions{noColor: true}, to); err == nil {
		t.Fatal("unknown axis accepted")
	}
}

func TestRunTilt_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "samples.txt")
	if err := os.WriteFile(path, []byte("1 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	to := &TiltOptions{deadzone: 2, friction: 2, axis: "x", file: path}
	if err := runTilt(context.Background(), &EnvOptions{noColor: true}, to); err == nil {
		t.Fatal("malformed samples accepted")
	}
}
