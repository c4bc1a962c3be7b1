package stepwise

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ============================================================
// MCP Tool Interface
// ============================================================

type ToolRequest struct {
	Tool   string                 `json:"tool"`
	Params map[string]interface{} `json:"params"`
}

type ToolResponse struct {
	Result   interface{} `json:"result,omitempty"`
	LaTeX    string      `json:"latex,omitempty"`
	String   string      `json:"string,omitempty"`
	Steps    []string    `json:"steps,omitempty"`
	Outcome  string      `json:"outcome,omitempty"`
	Terminal bool        `json:"terminal,omitempty"`
	Error    string      `json:"error,omitempty"`
	// Kind is the sentinel class of Error ("wrong_argument", …).
	Kind string `json:"error_kind,omitempty"`
}

// ToolHandler answers tool calls. Render and Solve are the defaults that
// request params override.
type ToolHandler struct {
	Render RenderOptions
	Solve  SolveOptions
}

// HandleToolCall answers req with default options.
func HandleToolCall(req ToolRequest) ToolResponse {
	return (&ToolHandler{}).Handle(req)
}

func (h *ToolHandler) Handle(req ToolRequest) ToolResponse {
	params := req.Params
	getExpr := func(key string) (Expr, error) {
		v, ok := params[key]
		if !ok {
			return nil, wrongArgument("missing param: %s", key)
		}
		m, ok := asObject(v)
		if !ok {
			return nil, wrongArgument("invalid type for param %s", key)
		}
		return FromJSON(m)
	}
	getString := func(key string) (string, error) {
		s, ok := params[key].(string)
		if !ok || s == "" {
			return "", wrongArgument("param %s must be a non-empty string", key)
		}
		return s, nil
	}
	getInt := func(key string) (int64, error) {
		n, err := toInt(params[key])
		if err != nil {
			return 0, fmt.Errorf("param %s: %w", key, err)
		}
		return int64(n), nil
	}
	fail := func(err error) ToolResponse {
		return ToolResponse{Error: err.Error(), Kind: errorKind(err)}
	}
	opts := h.renderOptions(params)
	latexOpts := opts
	latexOpts.Format = FormatLaTeX

	switch req.Tool {
	case "reduce":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		forms, err := Reduce(e)
		if err != nil {
			return fail(err)
		}
		last := forms[len(forms)-1]
		lines, err := Steps(e, opts)
		if err != nil {
			return fail(err)
		}
		return ToolResponse{Result: last.toJSON(), String: last.Render(opts), LaTeX: last.Render(latexOpts), Steps: lines}

	case "step":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		next, ok := e.Step()
		if !ok {
			return ToolResponse{Result: e.toJSON(), String: e.Render(opts), LaTeX: e.Render(latexOpts), Terminal: true}
		}
		return ToolResponse{Result: next.toJSON(), String: next.Render(opts), LaTeX: next.Render(latexOpts)}

	case "evaluate":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		var env Env
		if raw, ok := params["substitutions"]; ok {
			if env, err = EnvFromJSON(raw); err != nil {
				return fail(err)
			}
		}
		v, err := e.Evaluate(env)
		if err != nil {
			return fail(err)
		}
		return ToolResponse{Result: v.String(), String: v.String(), LaTeX: ValueExpr(v).LaTeX()}

	case "solve":
		m, ok := asObject(params["equation"])
		if !ok {
			return fail(wrongArgument("param equation must be an object"))
		}
		eq, err := EquationFromJSON(m)
		if err != nil {
			return fail(err)
		}
		return h.resolve(eq, params, opts)

	case "pythagorean":
		names := make([]string, 3)
		for i, key := range []string{"hypotenuse", "leg1", "leg2"} {
			s, err := getString(key)
			if err != nil {
				return fail(err)
			}
			names[i] = s
		}
		known, err := EnvFromJSON(params["known"])
		if err != nil {
			return fail(err)
		}
		eq, err := NewPythagoreanEquation(names[0], names[1], names[2], known)
		if err != nil {
			return fail(err)
		}
		return h.resolve(eq, params, opts)

	case "pupil_gcd":
		a, err := getInt("a")
		if err != nil {
			return fail(err)
		}
		b, err := getInt("b")
		if err != nil {
			return fail(err)
		}
		g, err := PupilGCD(a, b)
		if err != nil {
			return fail(err)
		}
		return ToolResponse{Result: g, String: fmt.Sprint(g)}

	case "to_latex":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		opts.Format = FormatLaTeX
		return ToolResponse{LaTeX: e.Render(opts), String: e.String()}

	case "mcp_spec":
		return ToolResponse{Result: MCPToolSpec()}
	}
	return ToolResponse{Error: "unknown tool: " + req.Tool, Kind: "wrong_argument"}
}

func (h *ToolHandler) resolve(eq *Equation, params map[string]interface{}, opts RenderOptions) ToolResponse {
	so := h.Solve
	if b, ok := params["decimal_result"].(bool); ok {
		so.DecimalResult = b
	}
	if n, err := toInt(params["precision"]); err == nil {
		so.Precision = int32(n)
	}
	if b, ok := params["pythagorean"].(bool); ok {
		so.Pythagorean = b
	}
	if b, ok := params["length"].(bool); ok {
		so.Length = b
	}
	if s, ok := params["variable"].(string); ok {
		so.Variable = s
	}
	res, err := eq.AutoResolution(so)
	if err != nil {
		return ToolResponse{Error: err.Error(), Kind: errorKind(err)}
	}
	solutions := make([]string, len(res.Solutions))
	for i, v := range res.Solutions {
		solutions[i] = v.String()
	}
	lines := res.Render(opts)
	latex := opts
	latex.Format = FormatLaTeX
	return ToolResponse{
		Result:  solutions,
		String:  lines[len(lines)-1],
		LaTeX:   res.Last().Render(latex),
		Steps:   lines,
		Outcome: res.Outcome.String(),
	}
}

func (h *ToolHandler) renderOptions(params map[string]interface{}) RenderOptions {
	opts := h.Render
	if f, ok := params["format"].(string); ok && strings.EqualFold(f, "latex") {
		opts.Format = FormatLaTeX
	}
	if b, ok := params["decimal_result"].(bool); ok {
		opts.DecimalResult = b
	}
	if b, ok := params["explicit_products"].(bool); ok {
		opts.ExplicitProducts = b
	}
	if s, ok := params["display_unit"].(string); ok {
		opts.DisplayUnit = s
	}
	if n, err := toInt(params["precision"]); err == nil {
		opts.Precision = int32(n)
	}
	return opts
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, ErrWrongArgument):
		return "wrong_argument"
	case errors.Is(err, ErrUncompatibleType):
		return "uncompatible_type"
	case errors.Is(err, ErrOutOfRangeArgument):
		return "out_of_range_argument"
	case errors.Is(err, ErrImpossibleAction):
		return "impossible_action"
	case errors.Is(err, ErrNonEvaluable):
		return "non_evaluable"
	}
	return "internal"
}

// ============================================================
// MCP spec
// ============================================================

func MCPToolSpec() string {
	expr := map[string]string{"expr": "object", "format": "string", "explicit_products": "boolean", "decimal_result": "boolean"}
	solve := map[string]string{"equation": "object", "decimal_result": "boolean", "precision": "integer", "pythagorean": "boolean", "length": "boolean", "variable": "string"}
	tools := []map[string]interface{}{
		ts("reduce", "Reduce an expression to its fixpoint, returning every worked line", []string{"expr"}, expr),
		ts("step", "Apply the single next simplification step", []string{"expr"}, expr),
		ts("evaluate", "Evaluate exactly. Optional substitutions {name: value}", []string{"expr"}, map[string]string{"expr": "object", "substitutions": "object"}),
		ts("solve", "Auto-resolve equation={left,right,substitutions}", []string{"equation"}, solve),
		ts("pythagorean", "Solve a right triangle side from two known sides", []string{"hypotenuse", "leg1", "leg2", "known"}, map[string]string{"hypotenuse": "string", "leg1": "string", "leg2": "string", "known": "object", "decimal_result": "boolean", "precision": "integer"}),
		ts("pupil_gcd", "Common divisor a pupil would find", []string{"a", "b"}, map[string]string{"a": "integer", "b": "integer"}),
		ts("to_latex", "Convert to LaTeX", []string{"expr"}, map[string]string{"expr": "object"}),
		ts("mcp_spec", "Return this tool schema", []string{}, map[string]string{}),
	}
	spec := map[string]interface{}{"tools": tools}
	b, _ := json.MarshalIndent(spec, "", "  ")
	return string(b)
}

func ts(name, description string, required []string, props map[string]string) map[string]interface{} {
	properties := map[string]interface{}{}
	for k, typ := range props {
		properties[k] = map[string]interface{}{"type": typ}
	}
	return map[string]interface{}{
		"name":        name,
		"description": description,
		"inputSchema": map[string]interface{}{
			"type":       "object",
			"properties": properties,
			"required":   required,
		},
	}
}
