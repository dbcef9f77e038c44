package mcptools

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/mark3labs/mcp-go/mcp"
)

// bindArguments decodes the tool call arguments into target using its json tags.
// Clients often send every value as a string, including numbers and JSON arrays,
// so those are coerced to the field type.
func bindArguments[T any](request mcp.CallToolRequest, target *T) error {
	raw, ok := request.GetRawArguments().(map[string]interface{})
	if !ok {
		return fmt.Errorf("invalid arguments format")
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			jsonStringHook,
			mapstructure.StringToSliceHookFunc(","),
		),
		Result:  target,
		TagName: "json",
	})
	if err != nil {
		return err
	}

	return decoder.Decode(raw)
}

// jsonStringHook turns a JSON encoded array or number string into its value.
func jsonStringHook(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
	if f.Kind() != reflect.String {
		return data, nil
	}

	s := strings.TrimSpace(data.(string))
	if s == "" {
		return data, nil
	}

	switch {
	case t.Kind() == reflect.Slice && strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]"):
		slicePtr := reflect.New(t)
		if err := json.Unmarshal([]byte(s), slicePtr.Interface()); err == nil {
			return slicePtr.Elem().Interface(), nil
		}
	case t.Kind() >= reflect.Int && t.Kind() <= reflect.Float64:
		var n json.Number
		if err := json.Unmarshal([]byte(s), &n); err == nil {
			return n, nil
		}
	}

	return data, nil
}

// marshalToolResponse returns response as a JSON text result.
func marshalToolResponse(response interface{}) (*mcp.CallToolResult, error) {
	jsonData, err := json.Marshal(response)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}
