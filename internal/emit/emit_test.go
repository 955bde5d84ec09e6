package emit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"manifold/internal/manifest"
)

func uintPtr(v uint64) *uint64 { return &v }

func walletManifest() manifest.FileInfo {
	return manifest.FileInfo{
		Name:    "wallet",
		Imports: []manifest.ImportInfo{{Path: []string{"TrustWalletCore", "TWBase.h"}}},
		Structs: []manifest.StructInfo{
			{Name: "Wallet", IsPublic: true, Fields: []manifest.FieldInfo{}, Tags: []string{}},
		},
		Enums: []manifest.EnumInfo{
			{
				Name:     "TWCoinType",
				IsPublic: true,
				Variants: []manifest.VariantInfo{
					{Name: "A", Value: uintPtr(0)},
					{Name: "B"},
					{Name: "C", Value: uintPtr(5)},
				},
				Tags: []string{},
			},
		},
		Functions: []manifest.MethodInfo{
			{
				Name:     "TWWalletIsValid",
				IsPublic: true,
				IsStatic: true,
				Params: []manifest.ParamInfo{
					{Name: "wallet", Type: manifest.TypeInfo{
						Variant:   manifest.VariantStruct,
						Ref:       "Wallet",
						IsPointer: true,
					}},
				},
				ReturnType: manifest.TypeInfo{Variant: manifest.VariantBool},
				Comments:   []string{"Determines whether the wallet is valid."},
			},
		},
		Properties: []manifest.PropertyInfo{},
	}
}

func TestEncodeEmptyManifestGolden(t *testing.T) {
	info := manifest.FileInfo{
		Name:       "wallet",
		Imports:    []manifest.ImportInfo{},
		Structs:    []manifest.StructInfo{},
		Enums:      []manifest.EnumInfo{},
		Functions:  []manifest.MethodInfo{},
		Properties: []manifest.PropertyInfo{},
	}
	data, err := Encode(info, FormatJSON)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	want := `{
  "name": "wallet",
  "imports": [],
  "structs": [],
  "enums": [],
  "functions": [],
  "properties": []
}
`
	if string(data) != want {
		t.Errorf("Artifact bytes changed.\nExpected:\n%s\nGot:\n%s", want, data)
	}
}

func TestEncodeJSONShape(t *testing.T) {
	data, err := Encode(walletManifest(), FormatJSON)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	text := string(data)

	// Пустой дискриминант кодируется как null, явные — числом.
	for _, fragment := range []string{
		`"variant": "bool"`,
		`"variant": "struct"`,
		`"ref": "Wallet"`,
		`"is_static": true`,
		`"value": 0`,
		`"value": null`,
		`"value": 5`,
	} {
		if !strings.Contains(text, fragment) {
			t.Errorf("Expected artifact to contain %s, got:\n%s", fragment, text)
		}
	}
	// ref опускается у скаляров.
	if strings.Count(text, `"ref"`) != 1 {
		t.Errorf("Expected exactly one ref key, got:\n%s", text)
	}
}

func TestEncodeDeterministic(t *testing.T) {
	first, err := Encode(walletManifest(), FormatJSON)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	second, err := Encode(walletManifest(), FormatJSON)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if string(first) != string(second) {
		t.Error("Expected byte-identical artifacts for identical manifests")
	}
}

func TestEncodeYAML(t *testing.T) {
	data, err := Encode(walletManifest(), FormatYAML)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	text := string(data)
	for _, fragment := range []string{
		"name: wallet",
		"variant: bool",
		"ref: Wallet",
		"value: null",
		"value: 5",
	} {
		if !strings.Contains(text, fragment) {
			t.Errorf("Expected YAML artifact to contain %q, got:\n%s", fragment, text)
		}
	}
}

func TestWriterRoundTrip(t *testing.T) {
	dir := t.TempDir()
	w := Writer{Dir: filepath.Join(dir, "out"), Format: FormatJSON}

	path, err := w.Write(walletManifest())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if filepath.Base(path) != "wallet.json" {
		t.Errorf("Expected wallet.json, got %q", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	var back manifest.FileInfo
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Artifact does not parse back: %v", err)
	}
	if back.Name != "wallet" || len(back.Functions) != 1 {
		t.Errorf("Round-trip lost data: %+v", back)
	}
	if back.Functions[0].ReturnType.Variant != manifest.VariantBool {
		t.Errorf("Expected bool return after round-trip, got %s", back.Functions[0].ReturnType.Variant)
	}

	// Повторная запись перезаписывает артефакт без мусора рядом.
	if _, err := w.Write(walletManifest()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	entries, err := os.ReadDir(w.Dir)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("Expected a single artifact, got %d entries", len(entries))
	}
}

func TestWriterYAMLExtension(t *testing.T) {
	w := Writer{Dir: t.TempDir(), Format: FormatYAML}
	path, err := w.Write(walletManifest())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if filepath.Ext(path) != ".yaml" {
		t.Errorf("Expected .yaml artifact, got %q", path)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{"", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"yml", FormatYAML, false},
		{"toml", FormatJSON, true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("Expected an error for %q", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("Unexpected error for %q: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Expected %s for %q, got %s", tt.want, tt.in, got)
		}
	}
}

func TestArtifactSchemaMarshals(t *testing.T) {
	schema := ArtifactSchema()

	data, err := json.Marshal(schema)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	text := string(data)
	for _, fragment := range []string{
		`"$defs"`,
		`"typeInfo"`,
		`"#/$defs/typeInfo"`,
		`"return_type"`,
		`"is_constant"`,
	} {
		if !strings.Contains(text, fragment) {
			t.Errorf("Expected schema to mention %s", fragment)
		}
	}

	if len(schema.Required) != 6 {
		t.Errorf("Expected 6 required manifest keys, got %d", len(schema.Required))
	}
}
