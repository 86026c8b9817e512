package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/zjrosen/rainbow/internal/log"
)

// SavePalette writes preset and colors into the config file, leaving every
// other key (and its comments) untouched. An empty colors slice removes the
// explicit palette so the preset applies again.
func SavePalette(configPath, preset string, colors []string) error {
	doc, err := readDocument(configPath)
	if err != nil {
		return err
	}

	root := rootMapping(doc)
	setKey(root, "preset", &yaml.Node{Kind: yaml.ScalarNode, Value: preset})
	if len(colors) == 0 {
		deleteKey(root, "colors")
	} else {
		setKey(root, "colors", buildColorsNode(colors))
	}

	if err := writeDocument(configPath, doc); err != nil {
		return err
	}
	log.Info(log.CatConfig, "Saved palette", "path", configPath, "preset", preset, "colors", len(colors))
	return nil
}

// SavePairs replaces the pairs section of the config file.
func SavePairs(configPath string, pairs []PairConfig) error {
	if err := ValidatePairs(pairs); err != nil {
		return err
	}

	doc, err := readDocument(configPath)
	if err != nil {
		return err
	}

	setKey(rootMapping(doc), "pairs", buildPairsNode(pairs))
	return writeDocument(configPath, doc)
}

// readDocument parses configPath into a yaml.Node so comments survive a
// rewrite. A missing file yields an empty document.
func readDocument(configPath string) (*yaml.Node, error) {
	data, err := os.ReadFile(configPath)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var doc yaml.Node
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}
	return &doc, nil
}

// rootMapping returns the top-level mapping, creating the document structure
// when the file was empty.
func rootMapping(doc *yaml.Node) *yaml.Node {
	if doc.Kind == 0 || len(doc.Content) == 0 {
		doc.Kind = yaml.DocumentNode
		doc.Content = []*yaml.Node{{Kind: yaml.MappingNode}}
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		*root = yaml.Node{Kind: yaml.MappingNode}
	}
	return root
}

func setKey(mapping *yaml.Node, key string, value *yaml.Node) {
	for i := 0; i < len(mapping.Content)-1; i += 2 {
		if mapping.Content[i].Value == key {
			mapping.Content[i+1] = value
			return
		}
	}
	mapping.Content = append(mapping.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key},
		value,
	)
}

func deleteKey(mapping *yaml.Node, key string) {
	for i := 0; i < len(mapping.Content)-1; i += 2 {
		if mapping.Content[i].Value == key {
			mapping.Content = append(mapping.Content[:i], mapping.Content[i+2:]...)
			return
		}
	}
}

func buildColorsNode(colors []string) *yaml.Node {
	node := &yaml.Node{Kind: yaml.SequenceNode, Content: make([]*yaml.Node, 0, len(colors))}
	for _, c := range colors {
		node.Content = append(node.Content, &yaml.Node{
			Kind:  yaml.ScalarNode,
			Style: yaml.DoubleQuotedStyle,
			Value: c,
		})
	}
	return node
}

func buildPairsNode(pairs []PairConfig) *yaml.Node {
	node := &yaml.Node{Kind: yaml.SequenceNode, Content: make([]*yaml.Node, 0, len(pairs))}
	for _, p := range pairs {
		node.Content = append(node.Content, &yaml.Node{
			Kind: yaml.MappingNode,
			Content: []*yaml.Node{
				{Kind: yaml.ScalarNode, Value: "kind"},
				{Kind: yaml.ScalarNode, Value: p.Kind},
				{Kind: yaml.ScalarNode, Value: "open"},
				{Kind: yaml.ScalarNode, Style: yaml.DoubleQuotedStyle, Value: p.Open},
				{Kind: yaml.ScalarNode, Value: "close"},
				{Kind: yaml.ScalarNode, Style: yaml.DoubleQuotedStyle, Value: p.Close},
			},
		})
	}
	return node
}

// writeDocument encodes doc and replaces configPath atomically (temp file +
// rename).
func writeDocument(configPath string, doc *yaml.Node) error {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	_ = encoder.Close()

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	temp, err := os.CreateTemp(dir, ".rainbow.yaml.tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := temp.Name()

	if _, err := temp.Write(buf.Bytes()); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tempPath, configPath); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
