package core

import (
	"testing"
)

func TestExtractField(t *testing.T) {
	data := map[string]interface{}{
		"top": "value",
		"usedvehicles": map[string]interface{}{
			"usedvehicles": []interface{}{
				map[string]interface{}{"uvc": "ABC123"},
			},
			"count": float64(1),
		},
	}

	t.Run("SimpleKey", func(t *testing.T) {
		v, ok := ExtractField(data, "top")
		if !ok || v != "value" {
			t.Errorf("Expected 'value', got %v (ok=%v)", v, ok)
		}
	})

	t.Run("DottedPath", func(t *testing.T) {
		v, ok := ExtractField(data, "usedvehicles.count")
		if !ok || v != float64(1) {
			t.Errorf("Expected 1, got %v (ok=%v)", v, ok)
		}
	})

	t.Run("NestedSubtree", func(t *testing.T) {
		v, ok := ExtractField(data, "usedvehicles.usedvehicles")
		if !ok {
			t.Fatal("Expected subtree at path")
		}
		arr, isArr := v.([]interface{})
		if !isArr || len(arr) != 1 {
			t.Errorf("Expected 1-element array, got %v", v)
		}
	})

	t.Run("MissingKey", func(t *testing.T) {
		if _, ok := ExtractField(data, "usedvehicles.missing"); ok {
			t.Error("Expected missing path to report not found")
		}
	})

	t.Run("PathThroughNonMap", func(t *testing.T) {
		if _, ok := ExtractField(data, "top.deeper"); ok {
			t.Error("Expected traversal through a scalar to fail")
		}
	})

	t.Run("EmptyPath", func(t *testing.T) {
		if _, ok := ExtractField(data, ""); ok {
			t.Error("Expected empty path to report not found")
		}
	})
}
