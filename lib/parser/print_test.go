package parser

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

const sampleProgram = "unsigned f(int x) { int y; y = x + 1; if (x > 0) return y; else return 0u; }"

func TestFprint(t *testing.T) {
	prog := parseProgram(t, sampleProgram)

	var buf bytes.Buffer
	if err := Fprint(&buf, prog); err != nil {
		t.Fatal(err)
	}
	want := `Program
  Function f
    ReturnType: unsigned
    Parameter: int x
    Variables:
      Variable int y
    Statements:
      Assignment y = (x + 1)
      If
        Cond: x > 0
        Then:
          Return y
        Else:
          Return 0u
`
	if got := buf.String(); got != want {
		t.Errorf("Fprint mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestFprintNoParameter(t *testing.T) {
	prog := parseProgram(t, "int main() { { } }")
	var buf bytes.Buffer
	if err := Fprint(&buf, prog); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, line := range []string{"Parameter: none", "Compound"} {
		if !strings.Contains(out, line) {
			t.Errorf("output lacks %q:\n%s", line, out)
		}
	}
	if strings.Contains(out, "Variables:") {
		t.Errorf("empty variable list printed:\n%s", out)
	}
}

func TestFprintJSON(t *testing.T) {
	prog := parseProgram(t, sampleProgram)

	var buf bytes.Buffer
	if err := FprintJSON(&buf, prog); err != nil {
		t.Fatal(err)
	}
	var doc map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if doc["type"] != "Program" {
		t.Errorf("type = %v", doc["type"])
	}
	fns := doc["functions"].([]interface{})
	if len(fns) != 1 {
		t.Fatalf("got %d functions", len(fns))
	}
	fn := fns[0].(map[string]interface{})
	if fn["name"] != "f" || fn["return_type"] != "unsigned" {
		t.Errorf("function = %v", fn)
	}
	param := fn["parameter"].(map[string]interface{})
	if param["kind"] != "int" || param["name"] != "x" {
		t.Errorf("parameter = %v", param)
	}
	stmts := fn["statements"].([]interface{})
	cond := stmts[1].(map[string]interface{})["condition"].(map[string]interface{})
	if cond["operator"] != ">" {
		t.Errorf("condition = %v", cond)
	}
}

func TestFprintYAML(t *testing.T) {
	prog := parseProgram(t, "int main() { return f(); }")

	var buf bytes.Buffer
	if err := FprintYAML(&buf, prog); err != nil {
		t.Fatal(err)
	}
	var doc map[string]interface{}
	if err := yaml.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid YAML: %v\n%s", err, buf.String())
	}
	fn := doc["functions"].([]interface{})[0].(map[string]interface{})
	if fn["parameter"] != nil {
		t.Errorf("parameter = %v, want null", fn["parameter"])
	}
	ret := fn["statements"].([]interface{})[0].(map[string]interface{})
	call := ret["value"].(map[string]interface{})
	if call["type"] != "FunctionCall" || call["arg"] != nil {
		t.Errorf("call = %v", call)
	}
}

func TestWalk(t *testing.T) {
	prog := parseProgram(t, "int main() { return 0; }")
	if n := Count(prog); n != 4 {
		t.Errorf("Count = %d, want 4", n)
	}

	prog = parseProgram(t, sampleProgram)
	var idents []string
	Walk(prog, func(n Node) bool {
		if id, ok := n.(*Ident); ok {
			idents = append(idents, id.Name)
		}
		return true
	})
	if strings.Join(idents, ",") != "x,x,y" {
		t.Errorf("identifiers = %v", idents)
	}

	// Pruning at functions visits only the program and its functions.
	visited := 0
	Walk(prog, func(n Node) bool {
		visited++
		_, isFunc := n.(*Function)
		return !isFunc
	})
	if visited != 2 {
		t.Errorf("visited %d nodes, want 2", visited)
	}
}
