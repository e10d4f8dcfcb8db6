package controllers

import (
	"github.com/bytedance/sonic"
	"github.com/road-estimator/road-estimator-api/models"
	"github.com/road-estimator/road-estimator-api/utils"
	"gorm.io/datatypes"
)

// fieldSetter assigns one decoded JSON request value to a model field.
type fieldSetter func(v any) error

// field binds a request body key to its setter.
type field struct {
	key string
	set fieldSetter
}

func stringField(name string, dst *string) fieldSetter {
	return func(v any) error {
		s, err := utils.ToString(name, v)
		if err != nil {
			return err
		}
		*dst = s
		return nil
	}
}

// nullableStringField stores null as a nil pointer.
func nullableStringField(name string, dst **string) fieldSetter {
	return func(v any) error {
		if v == nil {
			*dst = nil
			return nil
		}
		s, err := utils.ToString(name, v)
		if err != nil {
			return err
		}
		*dst = &s
		return nil
	}
}

func numberField(name string, dst *float64) fieldSetter {
	return func(v any) error {
		n, err := utils.ToNumber(name, v)
		if err != nil {
			return err
		}
		*dst = n
		return nil
	}
}

func nullableNumberField(name string, dst **float64) fieldSetter {
	return func(v any) error {
		if v == nil {
			*dst = nil
			return nil
		}
		n, err := utils.ToNumber(name, v)
		if err != nil {
			return err
		}
		*dst = &n
		return nil
	}
}

func statusField(name string, dst *models.Status) fieldSetter {
	return func(v any) error {
		s, err := utils.ToString(name, v)
		if err != nil {
			return err
		}
		*dst = models.Status(s)
		return nil
	}
}

// payloadField stores any JSON value as-is.
func payloadField(dst *any) fieldSetter {
	return func(v any) error {
		*dst = v
		return nil
	}
}

// jsonField re-encodes any JSON value into a JSON column; null clears it.
func jsonField(name string, dst *datatypes.JSON) fieldSetter {
	return func(v any) error {
		if v == nil {
			*dst = nil
			return nil
		}
		raw, err := sonic.Marshal(v)
		if err != nil {
			return &utils.ValueError{Field: name, Value: v, Kind: "json"}
		}
		*dst = datatypes.JSON(raw)
		return nil
	}
}

// applyNonNull sets every field whose key is present with a non-null value.
// Used on create, where null means "not supplied".
func applyNonNull(body map[string]any, fields []field) error {
	return applyWhen(body, fields, func(v any) bool { return v != nil })
}

// applyWhen sets every present field whose value satisfies keep.
func applyWhen(body map[string]any, fields []field, keep func(v any) bool) error {
	for _, f := range fields {
		v, ok := body[f.key]
		if !ok || !keep(v) {
			continue
		}
		if err := f.set(v); err != nil {
			return err
		}
	}
	return nil
}

// requireKeys fails with a ValidationError for the first key that is absent
// or null in body.
func requireKeys(body map[string]any, model string, keys ...string) error {
	for _, key := range keys {
		if v, ok := body[key]; !ok || v == nil {
			return models.MissingField(model, key)
		}
	}
	return nil
}
