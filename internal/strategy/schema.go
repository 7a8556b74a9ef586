package strategy

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// ToJSONSchema converts a params struct to a JSON schema string. Used to
// publish the configurable surface of each strategy.
func ToJSONSchema[T any](t T) (string, error) {
	r := new(jsonschema.Reflector)
	r.DoNotReference = true
	schema := r.Reflect(t)

	jsonSchemaBytes, err := json.Marshal(schema)
	if err != nil {
		return "", err
	}

	return string(jsonSchemaBytes), nil
}

// ParamsSchemas returns the JSON schema for every built-in strategy's
// params, keyed by strategy name.
func ParamsSchemas() (map[string]string, error) {
	schemas := make(map[string]string)

	for name, params := range DefaultParamsTable() {
		schema, err := ToJSONSchema(params)
		if err != nil {
			return nil, err
		}

		schemas[name] = schema
	}

	return schemas, nil
}
