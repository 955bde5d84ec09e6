package emit

import (
	"github.com/google/jsonschema-go/jsonschema"

	"manifold/internal/manifest"
)

// ArtifactSchema describes the JSON artifact layout so external tooling can
// validate manifests without importing this module.
func ArtifactSchema() *jsonschema.Schema {
	variants := manifest.VariantNames()
	variantEnum := make([]any, len(variants))
	for i, name := range variants {
		variantEnum[i] = name
	}

	typeInfo := &jsonschema.Schema{
		Type:        "object",
		Description: "Canonical description of one type occurrence.",
		Properties: map[string]*jsonschema.Schema{
			"variant":     {Type: "string", Enum: variantEnum},
			"ref":         {Type: "string", Description: "Referenced struct or enum name; present only for named variants."},
			"is_constant": {Type: "boolean"},
			"is_nullable": {Type: "boolean"},
			"is_pointer":  {Type: "boolean"},
		},
		Required: []string{"variant", "is_constant", "is_nullable", "is_pointer"},
	}

	typeRef := func() *jsonschema.Schema { return &jsonschema.Schema{Ref: "#/$defs/typeInfo"} }

	structInfo := &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"name":      {Type: "string"},
			"is_public": {Type: "boolean"},
			"fields": {Type: "array", Items: &jsonschema.Schema{
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"name": {Type: "string"},
					"type": typeRef(),
				},
				Required: []string{"name", "type"},
			}},
			"tags": {Type: "array", Items: &jsonschema.Schema{Type: "string"}},
		},
		Required: []string{"name", "is_public", "fields", "tags"},
	}

	enumInfo := &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"name":      {Type: "string"},
			"is_public": {Type: "boolean"},
			"variants": {Type: "array", Items: &jsonschema.Schema{
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"name": {Type: "string"},
					"value": {
						Description: "Explicit discriminant; null when the source left it implicit.",
					},
				},
				Required: []string{"name", "value"},
			}},
			"tags": {Type: "array", Items: &jsonschema.Schema{Type: "string"}},
		},
		Required: []string{"name", "is_public", "variants", "tags"},
	}

	methodInfo := &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"name":      {Type: "string"},
			"is_public": {Type: "boolean"},
			"is_static": {Type: "boolean"},
			"params": {Type: "array", Items: &jsonschema.Schema{
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"name": {Type: "string"},
					"type": typeRef(),
				},
				Required: []string{"name", "type"},
			}},
			"return_type": typeRef(),
			"comments":    {Type: "array", Items: &jsonschema.Schema{Type: "string"}},
		},
		Required: []string{"name", "is_public", "is_static", "params", "return_type", "comments"},
	}

	propertyInfo := &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"name":        {Type: "string"},
			"is_public":   {Type: "boolean"},
			"is_static":   {Type: "boolean"},
			"return_type": typeRef(),
			"comments":    {Type: "array", Items: &jsonschema.Schema{Type: "string"}},
		},
		Required: []string{"name", "is_public", "is_static", "return_type", "comments"},
	}

	return &jsonschema.Schema{
		Title:       "manifold header manifest",
		Description: "Normalized public surface of one C header.",
		Type:        "object",
		Properties: map[string]*jsonschema.Schema{
			"name": {Type: "string", Description: "Header base identifier, extension stripped."},
			"imports": {Type: "array", Items: &jsonschema.Schema{
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"path": {Type: "array", Items: &jsonschema.Schema{Type: "string"}},
				},
				Required: []string{"path"},
			}},
			"structs":    {Type: "array", Items: &jsonschema.Schema{Ref: "#/$defs/structInfo"}},
			"enums":      {Type: "array", Items: &jsonschema.Schema{Ref: "#/$defs/enumInfo"}},
			"functions":  {Type: "array", Items: &jsonschema.Schema{Ref: "#/$defs/methodInfo"}},
			"properties": {Type: "array", Items: &jsonschema.Schema{Ref: "#/$defs/propertyInfo"}},
		},
		Required: []string{"name", "imports", "structs", "enums", "functions", "properties"},
		Defs: map[string]*jsonschema.Schema{
			"typeInfo":     typeInfo,
			"structInfo":   structInfo,
			"enumInfo":     enumInfo,
			"methodInfo":   methodInfo,
			"propertyInfo": propertyInfo,
		},
	}
}
