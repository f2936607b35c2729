package main

import (
	"testing"

	"github.com/taigrr/flatraster/pkg/render"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    render.Color
		wantErr bool
	}{
		{"120,120,120", render.RGB(120, 120, 120), false},
		{" 0, 255 ,7", render.RGB(0, 255, 7), false},
		{"1,2", render.Color{}, true},
		{"1,2,256", render.Color{}, true},
		{"1,2,-1", render.Color{}, true},
		{"1,2,3.5", render.Color{}, true},
		{"a,b,c", render.Color{}, true},
	}

	for _, tc := range tests {
		got, err := parseColor(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("parseColor(%q) err = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if got != tc.want {
			t.Errorf("parseColor(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseViewport(t *testing.T) {
	got, err := parseViewport("-3,-1.5,3,1.5")
	if err != nil {
		t.Fatal(err)
	}
	want := render.Viewport{XMin: -3, YMin: -1.5, XMax: 3, YMax: 1.5}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}

	for _, bad := range []string{"", "1,2,3", "1,2,3,4,5", "1,x,3,4"} {
		if _, err := parseViewport(bad); err == nil {
			t.Errorf("parseViewport(%q) accepted", bad)
		}
	}
}

func TestLoadSceneDefaultsToCube(t *testing.T) {
	obj, err := loadScene("")
	if err != nil {
		t.Fatal(err)
	}
	if obj.Name != "cube" || obj.TriangleCount() != 12 {
		t.Errorf("got %q with %d triangles", obj.Name, obj.TriangleCount())
	}
}

func TestLoadSceneMissingFile(t *testing.T) {
	if _, err := loadScene("does-not-exist.glb"); err == nil {
		t.Error("expected error for missing model")
	}
}
