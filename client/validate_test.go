package client

import "testing"

func TestIsUUID(t *testing.T) {
	if !IsUUID("0a53f405-51a1-4b8e-a59b-6ab4ff44b0c2") {
		t.Error("canonical UUID rejected")
	}
	if IsUUID("my-collection") {
		t.Error("name accepted as UUID")
	}
	if IsUUID("") {
		t.Error("empty string accepted as UUID")
	}
}

func TestValidAuthority(t *testing.T) {
	if _, ok := validAuthority(nil); ok {
		t.Error("nil authority should be absent")
	}
	for _, bad := range []float64{-0.1, 1.01, 42} {
		v := bad
		if _, ok := validAuthority(&v); ok {
			t.Errorf("authority %v accepted", bad)
		}
	}
	for _, good := range []float64{0, 0.5, 1} {
		v := good
		got, ok := validAuthority(&v)
		if !ok || got != good {
			t.Errorf("authority %v rejected", good)
		}
	}
}
