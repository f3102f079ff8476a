// Package mapstructureutil contains decode hooks for txfactory config types.
package mapstructureutil

import (
	"fmt"
	"math"
	"reflect"

	"github.com/mitchellh/mapstructure"

	"github.com/spacemeshos/go-txfactory/common/types"
	"github.com/spacemeshos/go-txfactory/factory"
)

// StepDecodeFunc decodes a factory.Step from its name or its number.
func StepDecodeFunc() mapstructure.DecodeHookFuncType {
	return func(f, t reflect.Type, data any) (any, error) {
		if t != reflect.TypeOf(factory.Step(0)) {
			return data, nil
		}
		switch v := reflect.ValueOf(data); f.Kind() {
		case reflect.String:
			return factory.ParseStep(v.String())
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			if v.Int() < 0 || v.Int() > math.MaxUint8 || !factory.Step(v.Int()).Valid() {
				return nil, fmt.Errorf("%w: %d", factory.ErrUnsupportedStep, v.Int())
			}
			return factory.Step(v.Int()), nil
		default:
			return data, nil
		}
	}
}

// Hash256DecodeFunc decodes a hex string into types.Hash256.
func Hash256DecodeFunc() mapstructure.DecodeHookFuncType {
	return func(f, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String || t != reflect.TypeOf(types.Hash256{}) {
			return data, nil
		}
		h, err := types.HexToHash256(data.(string))
		if err != nil {
			return nil, fmt.Errorf("decode hash %q: %w", data, err)
		}
		return h, nil
	}
}
