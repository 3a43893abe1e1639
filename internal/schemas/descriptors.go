package schemas

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/jonathan/ats-probe/internal/types"
)

// DescriptorSchemaPath is the target descriptor schema, relative to the repo root.
const DescriptorSchemaPath = "schemas/target_descriptor.schema.json"

// LoadDescriptors reads every *.json file in dir as a target descriptor,
// validating each against the descriptor schema and the struct rules
// before returning. Descriptors are returned sorted by file name so suite
// ordering is stable.
func LoadDescriptors(dir, schemaPath string) ([]types.TargetDescriptor, error) {
	schemaContent, err := os.ReadFile(schemaPath)
	if err != nil {
		return nil, &SchemaLoadError{
			Path:    schemaPath,
			Message: "failed to read descriptor schema",
			Cause:   err,
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read targets directory %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	descriptors := make([]types.TargetDescriptor, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read descriptor %s: %w", path, err)
		}

		if err := ValidateJSONString(string(schemaContent), string(data)); err != nil {
			return nil, fmt.Errorf("descriptor %s: %w", name, err)
		}

		var descriptor types.TargetDescriptor
		if err := json.Unmarshal(data, &descriptor); err != nil {
			return nil, fmt.Errorf("failed to parse descriptor %s: %w", name, err)
		}
		if err := descriptor.Validate(); err != nil {
			return nil, fmt.Errorf("descriptor %s: %w", name, err)
		}

		descriptors = append(descriptors, descriptor)
	}

	if len(descriptors) == 0 {
		return nil, fmt.Errorf("no target descriptors found in %s", dir)
	}

	return descriptors, nil
}
