package testsupport

import (
	"encoding/json"
	"os"
)

// LoadFixture reads a markdown or problem fixture from disk.
func LoadFixture(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// LoadGolden decodes a JSON golden file, such as an expected conversion
// report, into v.
func LoadGolden(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
