package svgexport

import (
	"encoding/json"
	"os"

	"github.com/dshills/svgraph/pkg/scene"
)

// ExportJSON serializes the assembled scene tree to indented JSON, for
// the CLI's "-format json" debugging output. Grounded on the teacher's
// pkg/export/json.go (ExportJSON/SaveJSONToFile pair), retargeted from
// dungeon.Artifact to the generic scene.Node tree.
func ExportJSON(root *scene.Node) ([]byte, error) {
	return json.MarshalIndent(root, "", "  ")
}

// SaveJSONToFile writes the scene tree to path as indented JSON, with
// 0644 permissions, mirroring the teacher's SaveJSONToFile convention.
func SaveJSONToFile(root *scene.Node, path string) error {
	data, err := ExportJSON(root)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
