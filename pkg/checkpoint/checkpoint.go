package checkpoint

import (
	"encoding/json"
	"os"
)

// SaveState marshals the hosts still waiting to be probed to a JSON file.
func SaveState(hosts []string, filePath string) error {
	data, err := json.MarshalIndent(hosts, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, data, 0644)
}

// LoadState unmarshals remaining hosts from a JSON checkpoint file.
func LoadState(filePath string) ([]string, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	var hosts []string
	return hosts, json.Unmarshal(data, &hosts)
}
