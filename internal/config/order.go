package config

import (
	"github.com/pelletier/go-toml/v2/unstable"
)

// enumsKey is the name of the table that holds the enum definitions.
const enumsKey = "enums"

// declarationOrder returns the enum names in the order they first appear in
// data. Decoding into a map loses that order, so the document is walked a
// second time with the low-level parser.
func declarationOrder(data []byte) ([]string, error) {
	var (
		p     unstable.Parser
		table []string
		order []string
		seen  = make(map[string]bool)
	)

	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			order = append(order, name)
		}
	}

	p.Reset(data)
	for p.NextExpression() {
		expr := p.Expression()
		switch expr.Kind {
		case unstable.Table, unstable.ArrayTable:
			table = keyParts(expr)
			if len(table) >= 2 && table[0] == enumsKey {
				add(table[1])
			}
		case unstable.KeyValue:
			full := append(append([]string(nil), table...), keyParts(expr)...)
			switch {
			case len(full) >= 2 && full[0] == enumsKey:
				add(full[1])
			case len(full) == 1 && full[0] == enumsKey && expr.Value().Kind == unstable.InlineTable:
				it := expr.Value().Children()
				for it.Next() {
					if kv := it.Node(); kv.Kind == unstable.KeyValue {
						if parts := keyParts(kv); len(parts) > 0 {
							add(parts[0])
						}
					}
				}
			}
		}
	}

	if err := p.Error(); err != nil {
		return nil, err
	}

	return order, nil
}

func keyParts(n *unstable.Node) []string {
	var parts []string
	it := n.Key()
	for it.Next() {
		parts = append(parts, string(it.Node().Data))
	}
	return parts
}
