package util

import (
	"encoding/json"
	"os"
	"path/filepath"
)

func SaveJson(path string, data interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	bs, err := json.Marshal(data)
	if err != nil {
		return err
	}

	_, err = file.Write(bs)
	return err
}

func LoadJson(path string, data interface{}) error {
	bs, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(bs, data)
}
