package daemon

import (
	"encoding/json"
	"os"
	"reflect"
	"testing"
)

func TestDeepMerge_NestedRecursion(t *testing.T) {
	base := map[string]any{
		"camera": map[string]any{
			"rgb_fps":       float64(30),
			"depth_enabled": true,
		},
		"ai": map[string]any{"model_enabled": false},
	}
	update := map[string]any{
		"camera": map[string]any{"rgb_fps": float64(25)},
	}

	got := DeepMerge(base, update)

	camera := got["camera"].(map[string]any)
	if camera["rgb_fps"] != float64(25) {
		t.Errorf("camera.rgb_fps = %v, want 25", camera["rgb_fps"])
	}
	if camera["depth_enabled"] != true {
		t.Error("sibling key camera.depth_enabled was not preserved")
	}
	if !reflect.DeepEqual(got["ai"], base["ai"]) {
		t.Error("unrelated section ai changed")
	}

	// Inputs must not be mutated.
	if base["camera"].(map[string]any)["rgb_fps"] != float64(30) {
		t.Error("DeepMerge mutated its base argument")
	}
}

func TestDeepMerge_ScalarReplacesObject(t *testing.T) {
	base := map[string]any{"output": map[string]any{"max_files": float64(1000)}}
	update := map[string]any{"output": "disabled"}

	got := DeepMerge(base, update)
	if got["output"] != "disabled" {
		t.Errorf("output = %v, want wholesale replacement by scalar", got["output"])
	}
}

func TestDeepMerge_ArrayReplacesWholesale(t *testing.T) {
	base := map[string]any{"camera": map[string]any{"rgb_resolution": []any{float64(1920), float64(1080)}}}
	update := map[string]any{"camera": map[string]any{"rgb_resolution": []any{float64(1280), float64(720)}}}

	got := DeepMerge(base, update)
	res := got["camera"].(map[string]any)["rgb_resolution"].([]any)
	if !reflect.DeepEqual(res, []any{float64(1280), float64(720)}) {
		t.Errorf("rgb_resolution = %v, want replaced array", res)
	}
}

func TestUpdateConfig_PreservesUnrelatedSections(t *testing.T) {
	s, _ := newTestStore(t, nil)
	doc := `{
		"camera": {"rgb_fps": 30, "depth_enabled": true, "imu_enabled": true},
		"ai": {"model_enabled": false, "confidence_threshold": 0.5},
		"output": {"save_frames": true, "output_directory": "/tmp/depthai-frames", "max_files": 1000},
		"service": {"health_check_interval": 30, "log_level": "INFO"}
	}`
	if err := os.WriteFile(s.ConfigPath, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	ok := s.UpdateConfig(map[string]any{
		"camera": map[string]any{"rgb_fps": float64(25)},
	})
	if !ok {
		t.Fatal("UpdateConfig returned false")
	}

	b, err := os.ReadFile(s.ConfigPath)
	if err != nil {
		t.Fatal(err)
	}
	var got map[string]any
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("rewritten config is not valid JSON: %v", err)
	}

	camera := got["camera"].(map[string]any)
	if camera["rgb_fps"] != float64(25) {
		t.Errorf("camera.rgb_fps = %v, want 25", camera["rgb_fps"])
	}
	if camera["depth_enabled"] != true || camera["imu_enabled"] != true {
		t.Error("camera siblings changed")
	}
	for _, section := range []string{"ai", "output", "service"} {
		if _, ok := got[section]; !ok {
			t.Errorf("section %s dropped by update", section)
		}
	}
	if got["service"].(map[string]any)["health_check_interval"] != float64(30) {
		t.Error("service.health_check_interval changed")
	}
}

func TestUpdateConfig_FailsClosedWhenUnreadable(t *testing.T) {
	s, _ := newTestStore(t, nil)
	// No config file on disk at all.
	if ok := s.UpdateConfig(map[string]any{"camera": map[string]any{"rgb_fps": float64(15)}}); ok {
		t.Fatal("UpdateConfig succeeded with no current document")
	}
	if _, err := os.Stat(s.ConfigPath); !os.IsNotExist(err) {
		t.Error("UpdateConfig wrote a file despite failing closed")
	}
}
