package manifest

import (
	"errors"
	"testing"

	"manifold/internal/grammar"
)

func uintPtr(v uint64) *uint64 { return &v }

func TestConvertImport(t *testing.T) {
	conv := Converter{File: "wallet"}

	imp, err := conv.Import("TrustWalletCore/TWString.h")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	want := []string{"TrustWalletCore", "TWString.h"}
	if len(imp.Path) != len(want) {
		t.Fatalf("Expected %d segments, got %d", len(want), len(imp.Path))
	}
	for i, seg := range want {
		if imp.Path[i] != seg {
			t.Errorf("segment %d: expected %q, got %q", i, seg, imp.Path[i])
		}
	}

	if _, err := conv.Import(""); !errors.Is(err, ErrBadImport) {
		t.Errorf("Expected ErrBadImport for an empty path, got %v", err)
	}
	if _, err := conv.Import("a//b.h"); !errors.Is(err, ErrBadImport) {
		t.Errorf("Expected ErrBadImport for an empty segment, got %v", err)
	}
}

func TestConvertStruct(t *testing.T) {
	conv := Converter{File: "wallet"}
	decl := &grammar.StructDecl{
		Name: "TWAccount",
		Fields: []grammar.Field{
			{Name: "balance", Type: grammar.Mutable(grammar.NewScalar(grammar.ScalarUint64))},
			{Name: "owner", Type: grammar.Mutable(grammar.NewPointer(grammar.NewStructRef("TWWallet")))},
		},
		Tags: []string{"TW_EXPORT_STRUCT"},
	}

	info, err := conv.Struct(decl)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !info.IsPublic {
		t.Error("Expected struct definitions to be public")
	}
	if len(info.Fields) != 2 || info.Fields[0].Name != "balance" || info.Fields[1].Name != "owner" {
		t.Errorf("Field order must follow declaration order, got %+v", info.Fields)
	}
	if len(info.Tags) != 1 || info.Tags[0] != "TW_EXPORT_STRUCT" {
		t.Errorf("Expected tags copied verbatim, got %v", info.Tags)
	}

	// Поломанное поле валит всю структуру с BadObject.
	decl.Fields = append(decl.Fields, grammar.Field{
		Name: "broken",
		Type: grammar.Mutable(grammar.Category{Kind: grammar.CatPointer}),
	})
	if _, err := conv.Struct(decl); !errors.Is(err, ErrBadObject) {
		t.Errorf("Expected ErrBadObject, got %v", err)
	}
}

func TestConvertEnumDiscriminantsRoundTrip(t *testing.T) {
	conv := Converter{File: "coin"}
	decl := &grammar.EnumDecl{
		Name: "TWCoinType",
		Variants: []grammar.Variant{
			{Name: "A", Value: uintPtr(0)},
			{Name: "B"},
			{Name: "C", Value: uintPtr(5)},
		},
	}

	info, err := conv.Enum(decl)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(info.Variants) != 3 {
		t.Fatalf("Expected 3 variants, got %d", len(info.Variants))
	}
	// Три состояния дискриминанта: явный 0, отсутствие, явный 5.
	if info.Variants[0].Value == nil || *info.Variants[0].Value != 0 {
		t.Errorf("Expected A=0, got %v", info.Variants[0].Value)
	}
	if info.Variants[1].Value != nil {
		t.Errorf("Expected B without a value, got %d", *info.Variants[1].Value)
	}
	if info.Variants[2].Value == nil || *info.Variants[2].Value != 5 {
		t.Errorf("Expected C=5, got %v", info.Variants[2].Value)
	}

	decl.Variants = append(decl.Variants, grammar.Variant{})
	if _, err := conv.Enum(decl); !errors.Is(err, ErrBadObject) {
		t.Errorf("Expected ErrBadObject for an unnamed variant, got %v", err)
	}
}

func TestConvertMethodMarkers(t *testing.T) {
	conv := Converter{File: "wallet"}
	boolRet := grammar.Mutable(grammar.NewScalar(grammar.ScalarBool))

	static := &grammar.FunctionDecl{
		Name:    "TWWalletIsValid",
		Markers: []grammar.Marker{grammar.MarkerExportStaticMethod},
		Params: []grammar.Param{
			{Name: "wallet", Type: grammar.Mutable(grammar.NewPointer(grammar.NewStructRef("TWWallet")))},
		},
		Return:   boolRet,
		Comments: []string{"Determines whether the wallet is valid."},
	}
	info, err := conv.Method(static)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !info.IsStatic || !info.IsPublic {
		t.Errorf("Expected a public static method, got %+v", info)
	}
	if len(info.Params) != 1 || info.Params[0].Name != "wallet" {
		t.Errorf("Unexpected params: %+v", info.Params)
	}
	if len(info.Comments) != 1 {
		t.Errorf("Expected doc lines preserved, got %v", info.Comments)
	}

	instance := &grammar.FunctionDecl{
		Name:    "TWWalletSign",
		Markers: []grammar.Marker{grammar.MarkerExportMethod},
		Return:  boolRet,
	}
	info, err = conv.Method(instance)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if info.IsStatic {
		t.Error("Expected is_static=false for the plain export marker")
	}

	unmarked := &grammar.FunctionDecl{Name: "TWWalletInternal", Return: boolRet}
	if _, err := conv.Method(unmarked); !errors.Is(err, ErrBadProperty) {
		t.Errorf("Expected ErrBadProperty for an unmarked function, got %v", err)
	}
}

func TestConvertMethodBadReturn(t *testing.T) {
	conv := Converter{File: "wallet"}
	decl := &grammar.FunctionDecl{
		Name:    "TWWalletBroken",
		Markers: []grammar.Marker{grammar.MarkerExportMethod},
		Return:  grammar.Mutable(grammar.Category{Kind: grammar.CatNullable}),
	}
	if _, err := conv.Method(decl); !errors.Is(err, ErrBadProperty) {
		t.Errorf("Expected ErrBadProperty, got %v", err)
	}
}

func TestConvertProperty(t *testing.T) {
	conv := Converter{File: "wallet"}
	strRet := grammar.Mutable(grammar.NewPointer(grammar.NewUnrecognized("TWString")))
	self := grammar.Param{Name: "wallet", Type: grammar.Mutable(grammar.NewPointer(grammar.NewStructRef("TWWallet")))}

	decl := &grammar.FunctionDecl{
		Name:    "TWWalletAddress",
		Markers: []grammar.Marker{grammar.MarkerExportProperty},
		Params:  []grammar.Param{self},
		Return:  strRet,
	}
	info, err := conv.Property(decl)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !info.IsPublic || info.IsStatic {
		t.Errorf("Expected a public instance property, got %+v", info)
	}
	if info.ReturnType.Ref != "TWString" {
		t.Errorf("Expected TWString return reference, got %+v", info.ReturnType)
	}

	// Аксессор принимает максимум приёмник.
	decl.Params = []grammar.Param{self, self}
	if _, err := conv.Property(decl); !errors.Is(err, ErrBadProperty) {
		t.Errorf("Expected ErrBadProperty for a two-parameter accessor, got %v", err)
	}

	static := &grammar.FunctionDecl{
		Name:    "TWWalletDefaultDerivation",
		Markers: []grammar.Marker{grammar.MarkerExportStaticProperty},
		Return:  strRet,
	}
	info, err = conv.Property(static)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !info.IsStatic {
		t.Error("Expected is_static=true for the static property marker")
	}
}
