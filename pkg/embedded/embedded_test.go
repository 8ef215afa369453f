package embedded

import (
	"testing"
	"testing/fstest"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"assets/config/effects.yaml": {Data: []byte("palette: []\n")},
		"assets/config/extra.yaml":   {Data: []byte("x: 1\n")},
	}
}

// TestIsInitialized 测试初始化状态检测
func TestIsInitialized(t *testing.T) {
	Init(nil)
	if IsInitialized() {
		t.Error("Expected IsInitialized() to return false for nil FS")
	}

	Init(testFS())
	if !IsInitialized() {
		t.Error("Expected IsInitialized() to return true after Init()")
	}

	Init(nil)
}

// TestReadFileNotInitialized 测试未初始化时调用 ReadFile
func TestReadFileNotInitialized(t *testing.T) {
	Init(nil)

	_, err := ReadFile("assets/config/effects.yaml")
	if err == nil {
		t.Fatal("Expected error when calling ReadFile() before Init()")
	}
	if err.Error() != "embedded package not initialized, call Init() first" {
		t.Errorf("Unexpected error message: %v", err)
	}
}

func TestReadFile(t *testing.T) {
	Init(testFS())
	defer Init(nil)

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"Plain path", "assets/config/effects.yaml", false},
		{"Dot prefix", "./assets/config/effects.yaml", false},
		{"Missing file", "assets/config/missing.yaml", true},
		{"Unknown prefix", "data/effects.yaml", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadFile(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ReadFile(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestExistsAndGlob(t *testing.T) {
	Init(testFS())
	defer Init(nil)

	if !Exists("assets/config/effects.yaml") {
		t.Error("effects.yaml should exist")
	}
	if Exists("assets/config/nope.yaml") {
		t.Error("nope.yaml should not exist")
	}

	matches, err := Glob("assets/config/*.yaml")
	if err != nil {
		t.Fatalf("Glob failed: %v", err)
	}
	if len(matches) != 2 {
		t.Errorf("Expected 2 matches, got %v", matches)
	}
}
