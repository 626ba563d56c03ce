package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"

	"scraploot/internal/prototype"
)

func main() {
	var outPath string
	flag.StringVar(&outPath, "out", "", "path to write the JSON schema")
	flag.Parse()

	if outPath == "" {
		fmt.Fprintln(os.Stderr, "--out is required")
		os.Exit(1)
	}

	schema := buildSchema()

	if err := writeSchema(outPath, schema); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write schema: %v\n", err)
		os.Exit(1)
	}
}

func buildSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: true,
	}

	recordSchema := reflector.Reflect(new(prototype.Record))
	recordSchema.Version = ""
	recordSchema.Title = "Prototype Record"
	recordSchema.Description = "A single prototype definition; fields beyond the derivation surface are host-owned and pass through untouched."

	categorySchema := &jsonschema.Schema{
		Type:                 "object",
		Title:                "Prototype Category",
		Description:          "Records of one category, keyed by prototype name.",
		AdditionalProperties: recordSchema,
	}

	root := &jsonschema.Schema{
		Version:              jsonschema.Version,
		Type:                 "object",
		Title:                "Prototype Snapshot",
		Description:          "Snapshot document consumed by lootgen: categories of records, keyed by category name.",
		AdditionalProperties: categorySchema,
	}
	return root
}

func writeSchema(outPath string, schema *jsonschema.Schema) error {
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create schema directory: %w", err)
	}

	tmpPath := outPath + ".tmp"
	if err := os.WriteFile(tmpPath, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write temp schema: %w", err)
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		return fmt.Errorf("replace schema: %w", err)
	}

	return nil
}
