package stepwise_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/stepwise"
)

const fracJSON = `{"type":"fraction","numerator":{"type":"item","value":"26"},"denominator":{"type":"item","value":"10"}}`

func call(t *testing.T, tool, params string) stepwise.ToolResponse {
	t.Helper()
	return stepwise.HandleToolCall(stepwise.ToolRequest{Tool: tool, Params: decode(t, params)})
}

func TestHandleToolCall_Reduce(t *testing.T) {
	resp := call(t, "reduce", `{"expr":`+fracJSON+`}`)
	require.Empty(t, resp.Error)
	assert.Equal(t, "13/5", resp.String)
	assert.Equal(t, `\frac{13}{5}`, resp.LaTeX)
	assert.Equal(t, []string{"26/10", "(13×~2~)/(5×~2~)", "13/5"}, resp.Steps)
}

func TestHandleToolCall_ReduceDecimal(t *testing.T) {
	resp := call(t, "reduce", `{"expr":`+fracJSON+`,"decimal_result":true}`)
	require.Empty(t, resp.Error)
	assert.Equal(t, "2.6", resp.String)
	assert.Equal(t, "2.6", resp.LaTeX)

	resp = call(t, "step", `{"expr":{"type":"fraction","numerator":{"type":"item","value":"13"},"denominator":{"type":"item","value":"5"}},"decimal_result":true}`)
	assert.True(t, resp.Terminal)
	assert.Equal(t, "2.6", resp.LaTeX)
}

func TestHandleToolCall_Step(t *testing.T) {
	resp := call(t, "step", `{"expr":`+fracJSON+`}`)
	require.Empty(t, resp.Error)
	assert.Equal(t, "(13×~2~)/(5×~2~)", resp.String)
	assert.False(t, resp.Terminal)

	resp = call(t, "step", `{"expr":{"type":"item","value":"7"}}`)
	assert.True(t, resp.Terminal)
	assert.Equal(t, "7", resp.String)
}

func TestHandleToolCall_Evaluate(t *testing.T) {
	resp := call(t, "evaluate", `{"expr":{"type":"monomial","coefficient":{"type":"item","value":"3"},"variable":"x","degree":2},"substitutions":{"x":"1/2"}}`)
	require.Empty(t, resp.Error)
	assert.Equal(t, "0.75", resp.String)

	resp = call(t, "evaluate", `{"expr":{"type":"item","value":"x"}}`)
	assert.Equal(t, "non_evaluable", resp.Kind)
}

func TestHandleToolCall_Solve(t *testing.T) {
	resp := call(t, "solve", `{"equation":{
		"left":{"type":"sum","terms":[{"type":"monomial","coefficient":{"type":"item","value":"2"},"variable":"x","degree":1},{"type":"item","value":"3"}]},
		"right":{"type":"item","value":"8"}}}`)
	require.Empty(t, resp.Error)
	assert.Equal(t, "solved", resp.Outcome)
	assert.Equal(t, []string{"2x + 3 = 8", "2x = 8 - 3", "2x = 5", "x = 5/2"}, resp.Steps)
	assert.Equal(t, []string{"2.5"}, resp.Result)
	assert.Equal(t, `x = \frac{5}{2}`, resp.LaTeX)
}

func TestHandleToolCall_Pythagorean(t *testing.T) {
	resp := call(t, "pythagorean", `{"hypotenuse":"BC","leg1":"AB","leg2":"AC","known":{"AB":3,"AC":4}}`)
	require.Empty(t, resp.Error)
	assert.Equal(t, "BC = 5 (because BC is positive)", resp.String)
	assert.Equal(t, []string{"5"}, resp.Result)

	resp = call(t, "pythagorean", `{"hypotenuse":"BC","leg1":"AB","leg2":"AC","known":{"AB":3}}`)
	assert.Equal(t, "impossible_action", resp.Kind)
}

func TestHandleToolCall_PupilGCD(t *testing.T) {
	resp := call(t, "pupil_gcd", `{"a":84,"b":36}`)
	require.Empty(t, resp.Error)
	assert.Equal(t, "6", resp.String)

	resp = call(t, "pupil_gcd", `{"a":84,"b":0}`)
	assert.Equal(t, "out_of_range_argument", resp.Kind)

	resp = call(t, "pupil_gcd", `{"a":8.5,"b":2}`)
	assert.Equal(t, "wrong_argument", resp.Kind)
}

func TestHandleToolCall_ToLaTeX(t *testing.T) {
	resp := call(t, "to_latex", `{"expr":`+fracJSON+`}`)
	assert.Equal(t, `\frac{26}{10}`, resp.LaTeX)
	assert.Equal(t, "26/10", resp.String)
}

func TestHandleToolCall_Errors(t *testing.T) {
	resp := call(t, "reduce", `{}`)
	assert.Equal(t, "wrong_argument", resp.Kind)

	resp = call(t, "frobnicate", `{}`)
	assert.True(t, strings.HasPrefix(resp.Error, "unknown tool"))
	assert.Equal(t, "wrong_argument", resp.Kind)
}

func TestToolHandler_Defaults(t *testing.T) {
	h := &stepwise.ToolHandler{Render: stepwise.RenderOptions{Format: stepwise.FormatLaTeX}}
	resp := h.Handle(stepwise.ToolRequest{Tool: "reduce", Params: decode(t, `{"expr":`+fracJSON+`}`)})
	assert.Equal(t, `\frac{13}{5}`, resp.String)
}

func TestMCPToolSpec(t *testing.T) {
	var spec struct {
		Tools []struct {
			Name string `json:"name"`
		} `json:"tools"`
	}
	require.NoError(t, json.Unmarshal([]byte(stepwise.MCPToolSpec()), &spec))
	names := make([]string, len(spec.Tools))
	for i, tool := range spec.Tools {
		names[i] = tool.Name
	}
	assert.ElementsMatch(t, []string{"reduce", "step", "evaluate", "solve", "pythagorean", "pupil_gcd", "to_latex", "mcp_spec"}, names)
}
