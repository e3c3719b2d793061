package parser

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"
)

// FprintJSON writes the tree as indented JSON. Every node becomes an object
// with a "type" key.
func FprintJSON(w io.Writer, node Node) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toMap(node))
}

// FprintYAML writes the same document as FprintJSON in YAML.
func FprintYAML(w io.Writer, node Node) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(toMap(node)); err != nil {
		return err
	}
	return enc.Close()
}

func toMap(node Node) interface{} {
	switch n := node.(type) {
	case *Program:
		fns := make([]interface{}, len(n.Functions))
		for i, f := range n.Functions {
			fns[i] = toMap(f)
		}
		return map[string]interface{}{
			"type":      "Program",
			"functions": fns,
		}

	case *Function:
		vars := make([]interface{}, len(n.Variables))
		for i, v := range n.Variables {
			vars[i] = toMap(v)
		}
		m := map[string]interface{}{
			"type":        "Function",
			"return_type": n.ReturnType.String(),
			"name":        n.Name,
			"parameter":   nil,
			"variables":   vars,
			"statements":  stmtMaps(n.Statements),
		}
		if n.Parameter != nil {
			m["parameter"] = toMap(n.Parameter)
		}
		return m

	case *Parameter:
		return map[string]interface{}{"type": "Parameter", "kind": n.Type.String(), "name": n.Name}

	case *Variable:
		return map[string]interface{}{"type": "Variable", "kind": n.Type.String(), "name": n.Name}

	case *Assignment:
		return map[string]interface{}{"type": "Assignment", "name": n.Name, "value": toMap(n.Value)}

	case *If:
		m := map[string]interface{}{
			"type":      "If",
			"condition": toMap(n.Cond),
			"then":      toMap(n.Then),
			"else":      nil,
		}
		if n.Else != nil {
			m["else"] = toMap(n.Else)
		}
		return m

	case *Return:
		return map[string]interface{}{"type": "Return", "value": toMap(n.Value)}

	case *Compound:
		return map[string]interface{}{"type": "Compound", "statements": stmtMaps(n.Stmts)}

	case *RelExpr:
		return map[string]interface{}{
			"type":     "RelExpr",
			"left":     toMap(n.Left),
			"operator": n.Op.String(),
			"right":    toMap(n.Right),
		}

	case *IntNum:
		return map[string]interface{}{"type": "IntNum", "value": n.Value}

	case *UintNum:
		return map[string]interface{}{"type": "UintNum", "value": n.Value}

	case *Ident:
		return map[string]interface{}{"type": "Identifier", "name": n.Name}

	case *Call:
		m := map[string]interface{}{"type": "FunctionCall", "name": n.Name, "arg": nil}
		if n.Arg != nil {
			m["arg"] = toMap(n.Arg)
		}
		return m

	case *Binary:
		return map[string]interface{}{
			"type":     "Binary",
			"left":     toMap(n.X),
			"operator": n.Op.String(),
			"right":    toMap(n.Y),
		}
	}
	return nil
}

func stmtMaps(list []Stmt) []interface{} {
	out := make([]interface{}, len(list))
	for i, s := range list {
		out[i] = toMap(s)
	}
	return out
}
