package parser

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	stderrors "errors"

	"github.com/mcncl/json2struct/internal/errors"
	"github.com/mcncl/json2struct/internal/logger"
	"github.com/mcncl/json2struct/internal/models"
	"github.com/spf13/afero"
)

// Parse converts JSON data from an io.Reader into an IntermediateRepresentation
func Parse(reader io.Reader) (models.IntermediateRepresentation, error) {
	decoder := json.NewDecoder(reader)
	decoder.UseNumber() // integer/float split happens on the literal text

	var rootValue models.JSONValue
	if err := decoder.Decode(&rootValue); err != nil {
		if stderrors.Is(err, io.EOF) {
			return models.IntermediateRepresentation{}, errors.NewParsingError("input is empty or contains only whitespace", errors.ErrEmptyInput)
		}
		var syntaxError *json.SyntaxError
		if stderrors.As(err, &syntaxError) {
			return models.IntermediateRepresentation{}, errors.NewParsingError(
				fmt.Sprintf("JSON syntax error at offset %d", syntaxError.Offset),
				errors.ErrInvalidJSON,
			)
		}
		if stderrors.Is(err, io.ErrUnexpectedEOF) {
			return models.IntermediateRepresentation{}, errors.NewParsingError("unexpected end of JSON input", errors.ErrInvalidJSON)
		}
		return models.IntermediateRepresentation{}, errors.NewParsingError("failed to decode JSON", err)
	}

	// Only whitespace may follow the first value. More() reports false for a
	// stray closing delimiter, so the next token is read unconditionally.
	if err := checkTrailing(decoder); err != nil {
		return models.IntermediateRepresentation{}, err
	}

	rootValue = normalizeJSONValue(rootValue)
	ir := models.IntermediateRepresentation{
		Root: rootValue,
	}
	_, ir.RootIsArray = rootValue.(models.JSONArray)

	return ir, nil
}

// checkTrailing succeeds only when the decoder is at end of input.
func checkTrailing(decoder *json.Decoder) error {
	tok, err := decoder.Token()
	if stderrors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return errors.NewParsingError("invalid trailing data after first JSON value", errors.ErrInvalidJSON)
	}
	if delim, ok := tok.(json.Delim); ok && (delim == '}' || delim == ']') {
		return errors.NewParsingError(fmt.Sprintf("unexpected '%s' after first JSON value", delim), errors.ErrInvalidJSON)
	}
	return errors.NewParsingError("multiple JSON values found at the root", errors.ErrMultipleJSON)
}

// normalizeJSONValue converts raw JSON types into our model types
func normalizeJSONValue(val models.JSONValue) models.JSONValue {
	switch v := val.(type) {
	case map[string]interface{}:
		obj := make(models.JSONObject, len(v))
		for key, value := range v {
			obj[key] = normalizeJSONValue(value)
		}
		return obj
	case []interface{}:
		arr := make(models.JSONArray, len(v))
		for i, value := range v {
			arr[i] = normalizeJSONValue(value)
		}
		return arr
	default:
		return v // Primitives (string, json.Number, bool, nil) are returned as is
	}
}

// ParseString parses JSON from a string
func ParseString(jsonString string) (models.IntermediateRepresentation, error) {
	if strings.TrimSpace(jsonString) == "" {
		return models.IntermediateRepresentation{}, errors.NewInputError("input string is empty", errors.ErrEmptyInput)
	}
	return Parse(strings.NewReader(jsonString))
}

// ParseFile parses the JSON document at filePath on fs.
func ParseFile(fs afero.Fs, filePath string) (models.IntermediateRepresentation, error) {
	if strings.TrimSpace(filePath) == "" {
		return models.IntermediateRepresentation{}, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	file, err := fs.Open(filePath)
	if err != nil {
		if stderrors.Is(err, afero.ErrFileNotFound) {
			return models.IntermediateRepresentation{}, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return models.IntermediateRepresentation{}, errors.NewInputError(
			fmt.Sprintf("failed to open file '%s'", filePath),
			err,
		)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.Warn("failed to close input file", "path", filePath, "error", err)
		}
	}()

	stat, err := file.Stat()
	if err != nil {
		return models.IntermediateRepresentation{}, errors.NewInputError(
			fmt.Sprintf("failed to get file stats for '%s'", filePath),
			err,
		)
	}
	if stat.IsDir() {
		return models.IntermediateRepresentation{}, errors.NewInputError(
			fmt.Sprintf("'%s' is a directory", filePath),
			errors.ErrInvalidFilePath,
		)
	}
	if stat.Size() == 0 {
		return models.IntermediateRepresentation{}, errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}

	ir, err := Parse(file)
	if err != nil {
		var appErr *errors.AppError
		if stderrors.As(err, &appErr) {
			appErr.Message = fmt.Sprintf("%s: %s", filePath, appErr.Message)
		}
		return models.IntermediateRepresentation{}, err
	}
	return ir, nil
}
