package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"manifold/internal/emit"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the manifest artifact JSON schema",
	Long:  `Schema prints the JSON schema that every emitted manifest artifact conforms to`,
	Args:  cobra.NoArgs,
	RunE:  runSchema,
}

func runSchema(cmd *cobra.Command, _ []string) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(emit.ArtifactSchema()); err != nil {
		return fmt.Errorf("failed to encode schema: %w", err)
	}
	return nil
}
