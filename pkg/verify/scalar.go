package verify

import (
	"github.com/buger/jsonparser"
	"github.com/pkg/errors"
)

func scalar(doc []byte, want jsonparser.ValueType) ([]byte, error) {
	if err := Check(doc); err != nil {
		return nil, err
	}
	value, dataType, _, err := jsonparser.Get(doc)
	if err != nil {
		return nil, errors.Wrap(ErrInvalid, err.Error())
	}
	if dataType != want {
		return nil, errors.Wrapf(ErrInvalid, "got %s, want %s", dataType, want)
	}
	return value, nil
}

// String decodes a document holding a single JSON string.
func String(doc []byte) (string, error) {
	value, err := scalar(doc, jsonparser.String)
	if err != nil {
		return "", err
	}
	return jsonparser.ParseString(value)
}

// Float decodes a document holding a single JSON number.
func Float(doc []byte) (float64, error) {
	value, err := scalar(doc, jsonparser.Number)
	if err != nil {
		return 0, err
	}
	return jsonparser.ParseFloat(value)
}

// Int decodes a document holding a single JSON integer.
func Int(doc []byte) (int64, error) {
	value, err := scalar(doc, jsonparser.Number)
	if err != nil {
		return 0, err
	}
	return jsonparser.ParseInt(value)
}

// IsNull reports whether doc is the literal null.
func IsNull(doc []byte) bool {
	_, err := scalar(doc, jsonparser.Null)
	return err == nil
}
