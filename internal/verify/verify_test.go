package verify

import (
	"errors"
	"reflect"
	"testing"

	"github.com/jacoelho/hoverpath/internal/pathing"
	"github.com/jacoelho/hoverpath/internal/resolve"
)

func TestContainer(t *testing.T) {
	t.Parallel()

	text := `{"level2": {"odd key": [10, {"it's": "x"}], "n": null}}`

	tests := []struct {
		name string
		path pathing.Path
		want any
	}{
		{
			name: "scalar in array",
			path: pathing.Path{pathing.Key("level2"), pathing.Key("odd key"), pathing.Index(0)},
			want: float64(10),
		},
		{
			name: "quoted key",
			path: pathing.Path{pathing.Key("level2"), pathing.Key("odd key"), pathing.Index(1), pathing.Key("it's")},
			want: "x",
		},
		{
			name: "null value",
			path: pathing.Path{pathing.Key("level2"), pathing.Key("n")},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Container(text, tt.path)
			if err != nil {
				t.Fatalf("Container(%s) error = %v", tt.path.JSONPath(), err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Container(%s) = %#v, want %#v", tt.path.JSONPath(), got, tt.want)
			}
		})
	}
}

func TestContainerRoot(t *testing.T) {
	t.Parallel()

	got, err := Container(`[1, 2]`, nil)
	if err != nil {
		t.Fatalf("Container() error = %v", err)
	}
	if !reflect.DeepEqual(got, []any{float64(1), float64(2)}) {
		t.Fatalf("Container() = %#v", got)
	}
}

func TestContainerErrors(t *testing.T) {
	t.Parallel()

	if _, err := Container(`{a: 1}`, pathing.Path{pathing.Key("a")}); !errors.Is(err, ErrNotJSON) {
		t.Fatalf("expected ErrNotJSON, got %v", err)
	}

	_, err := Container(`{"a": [1]}`, pathing.Path{pathing.Key("a"), pathing.Index(3)})
	if !errors.Is(err, ErrNotFound) || !IsNotFound(err) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if _, err := Container(`{"a": 1}`, pathing.Path{pathing.Key("b")}); !IsNotFound(err) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestResolvedPathsSelectOneNode(t *testing.T) {
	t.Parallel()

	text := "{\n  \"a b\": [1, {\"c\": [true, \"\\u00e9\"]}],\n  \"\": {\"x.y\": -2.5e3},\n  \"e\": null\n}"

	for offset := range len(text) {
		path, ok := resolve.Resolve(text, offset, resolve.ModeJSON)
		if !ok {
			continue
		}
		if _, err := Container(text, path); err != nil {
			t.Fatalf("offset %d: Container(%s) error = %v", offset, path.JSONPath(), err)
		}
	}
}
