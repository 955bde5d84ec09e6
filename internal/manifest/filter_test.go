package manifest

import (
	"testing"

	"manifold/internal/grammar"
)

func funcItem(name string, markers ...grammar.Marker) grammar.Item {
	return grammar.Item{
		Kind: grammar.ItemFunctionDecl,
		Func: &grammar.FunctionDecl{
			Name:    name,
			Markers: markers,
			Return:  grammar.Mutable(grammar.NewScalar(grammar.ScalarVoid)),
		},
	}
}

func TestClassifyLifecycleExclusion(t *testing.T) {
	// Паттерн имени исключает функцию независимо от маркеров.
	names := []string{
		"TWWalletCreateWithData",
		"TWWalletCreateWithMnemonic",
		"TWWalletDelete",
		"TWStringDeleteAll",
	}
	for _, name := range names {
		item := funcItem(name, grammar.MarkerExportStaticMethod)
		if got := Classify(item); got != Skip {
			t.Errorf("Expected %s to be skipped, got %s", name, got)
		}
	}
}

func TestClassifyExportGating(t *testing.T) {
	tests := []struct {
		name string
		item grammar.Item
		want Disposition
	}{
		{"plain marker", funcItem("TWWalletSign", grammar.MarkerExportMethod), KeepMethod},
		{"static marker", funcItem("TWWalletIsValid", grammar.MarkerExportStaticMethod), KeepMethod},
		{"property marker", funcItem("TWWalletAddress", grammar.MarkerExportProperty), KeepProperty},
		{"static property marker", funcItem("TWWalletDefault", grammar.MarkerExportStaticProperty), KeepProperty},
		{"no marker", funcItem("TWWalletInternal"), Skip},
		// Маркер метода сильнее маркера свойства.
		{"both kinds", funcItem("TWWalletBoth", grammar.MarkerExportProperty, grammar.MarkerExportMethod), KeepMethod},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.item); got != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestClassifyNonFunctions(t *testing.T) {
	tests := []struct {
		name string
		item grammar.Item
		want Disposition
	}{
		{"include", grammar.Item{Kind: grammar.ItemInclude, Include: "TWBase.h"}, KeepImport},
		{"indicator", grammar.Item{Kind: grammar.ItemStructIndicator, Name: "TWWallet"}, KeepIndicator},
		{"struct", grammar.Item{Kind: grammar.ItemStructDecl, Struct: &grammar.StructDecl{Name: "TWAccount"}}, KeepStruct},
		{"enum", grammar.Item{Kind: grammar.ItemEnumDecl, Enum: &grammar.EnumDecl{Name: "TWCoinType"}}, KeepEnum},
		{"other", grammar.Item{Kind: grammar.ItemOther, Raw: "#pragma once"}, Skip},
		{"nil function", grammar.Item{Kind: grammar.ItemFunctionDecl}, Skip},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.item); got != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
		})
	}
}
