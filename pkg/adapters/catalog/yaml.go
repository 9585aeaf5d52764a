package catalog

import (
	"encoding/json"
	"fmt"
	"io"

	"sigs.k8s.io/yaml"

	"github.com/renjie/prism-units/pkg/core/domain"
)

// DecodeYAML 解码 YAML 或 JSON 文档中的单位记录
// root 为点号路径，指向记录数组所在的节点 (为空表示文档本身就是数组)
func DecodeYAML(data []byte, root string) ([]Record, error) {
	var records []Record
	if err := decodeSection(data, root, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// ReadYAML 从调用方提供的 reader 读取并解码
func ReadYAML(r io.Reader, root string) ([]Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return DecodeYAML(data, root)
}

// EncodeYAML 将记录编码为 YAML
func EncodeYAML(records []Record) ([]byte, error) {
	return yaml.Marshal(records)
}

// DecodeRules 解码批量换算的检查规则配置 (YAML 或 JSON)
// root 的含义与 DecodeYAML 相同
func DecodeRules(data []byte, root string) ([]domain.CheckRule, error) {
	var rules []domain.CheckRule
	if err := decodeSection(data, root, &rules); err != nil {
		return nil, err
	}
	return rules, nil
}

func decodeSection(data []byte, root string, out any) error {
	var tree any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return fmt.Errorf("failed to parse document: %w", err)
	}
	if tree == nil {
		return nil
	}

	section, ok := Lookup(tree, root)
	if !ok {
		return fmt.Errorf("path %q not found", root)
	}
	if _, isList := section.([]any); !isList {
		return fmt.Errorf("path %q is not a list", root)
	}

	// sigs.k8s.io/yaml 基于 json tag，子树重新编码后按目标类型解码
	raw, err := json.Marshal(section)
	if err != nil {
		return fmt.Errorf("failed to re-encode section %q: %w", root, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode section %q: %w", root, err)
	}
	return nil
}
