package catalog

import (
	"strconv"
	"strings"
)

// Lookup 按点号路径读取嵌套结构 (map[string]any / []any)
// 例如 Lookup(tree, "catalog.units.0.symbol")；空路径返回 tree 本身
// 纯函数，不依赖任何全局状态
func Lookup(tree any, path string) (any, bool) {
	if path == "" {
		return tree, true
	}

	cur := tree
	for _, seg := range strings.Split(path, ".") {
		switch node := cur.(type) {
		case map[string]any:
			v, ok := node[seg]
			if !ok {
				return nil, false
			}
			cur = v
		case []any:
			idx, err := strconv.Atoi(seg)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil, false
			}
			cur = node[idx]
		default:
			return nil, false
		}
	}
	return cur, true
}
