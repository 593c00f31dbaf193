package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/zjrosen/retrolex/internal/log"
)

// SaveExtensions replaces the extensions section of the config file.
// Comments and formatting in other sections are preserved.
func SaveExtensions(configPath string, exts map[string]string) error {
	if err := ValidateExtensions(exts); err != nil {
		return err
	}
	return setTopLevelKey(configPath, "extensions", buildStringMapNode(NormalizeExtensions(exts)))
}

// SetExtension maps one extension to a mode and saves.
func SetExtension(configPath string, current map[string]string, ext, mode string) error {
	updated := make(map[string]string, len(current)+1)
	for k, v := range current {
		updated[k] = v
	}
	updated[NormalizeExtension(ext)] = mode
	return SaveExtensions(configPath, updated)
}

// SavePlatform replaces the platform key of the config file.
func SavePlatform(configPath, platform string) error {
	if err := ValidatePlatform(platform); err != nil {
		return err
	}
	return setTopLevelKey(configPath, "platform", &yaml.Node{Kind: yaml.ScalarNode, Value: platform})
}

// setTopLevelKey replaces or appends key in the root mapping of the file.
func setTopLevelKey(configPath, key string, value *yaml.Node) error {
	data, err := os.ReadFile(configPath) //nolint:gosec // G304: config path chosen by the user
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading config: %w", err)
	}

	// Parse into yaml.Node to preserve comments
	var doc yaml.Node
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parsing config: %w", err)
		}
	}

	if doc.Kind == 0 || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		// Empty file, comment-only file or a scalar document
		doc = yaml.Node{
			Kind: yaml.DocumentNode,
			Content: []*yaml.Node{{
				Kind:        yaml.MappingNode,
				HeadComment: doc.HeadComment,
			}},
		}
	}

	root := doc.Content[0]
	found := false
	for i := 0; i < len(root.Content)-1; i += 2 {
		if root.Content[i].Value == key {
			root.Content[i+1] = value
			found = true
			break
		}
	}
	if !found {
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: key},
			value,
		)
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&doc); err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	_ = encoder.Close()

	if err := writeAtomic(configPath, buf.Bytes()); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to save config", err, "path", configPath, "key", key)
		return err
	}
	log.Debug(log.CatConfig, "Saved config key", "path", configPath, "key", key)
	return nil
}

// writeAtomic writes to a temp file in the same directory, then renames.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	temp, err := os.CreateTemp(dir, ".retrolex.yaml.tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := temp.Name()

	if _, err := temp.Write(data); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// buildStringMapNode creates a mapping node with keys in sorted order.
func buildStringMapNode(m map[string]string) *yaml.Node {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	node := &yaml.Node{Kind: yaml.MappingNode, Content: make([]*yaml.Node, 0, 2*len(keys))}
	for _, k := range keys {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: k},
			&yaml.Node{Kind: yaml.ScalarNode, Value: m[k]},
		)
	}
	return node
}
