package tiles

import (
	"encoding/json"
	"fmt"

	"github.com/perimeterx/marshmallow"
)

// FileFormat is the encoding of a stored HiPS tile.
type FileFormat string

const (
	FormatFits FileFormat = "fits"
	FormatJpg  FileFormat = "jpg"
	FormatPng  FileFormat = "png"
)

// ContentType returns the content-type for serving a tile in this format.
func (f FileFormat) ContentType() string {
	switch f {
	case FormatFits:
		return "application/fits"
	case FormatJpg:
		return "image/jpeg"
	case FormatPng:
		return "image/png"
	default:
		return ""
	}
}

func (f *FileFormat) UnmarshalJSON(data []byte) error {
	return UnmarshalJSONMapUsingUnmarshalJSONFromMap(f, data)
}

func (f *FileFormat) UnmarshalJSONFromMap(data interface{}) error {
	dataString, ok := data.(string)
	if !ok {
		return fmt.Errorf(`FileFormat data is not a string but a %T`, data)
	}
	switch dataString {
	case string(FormatFits):
		*f = FormatFits
	case string(FormatJpg):
		*f = FormatJpg
	case string(FormatPng):
		*f = FormatPng
	default:
		return fmt.Errorf(`unknown FileFormat: %v`, data)
	}
	return nil
}

func UnmarshalJSONMapUsingUnmarshalJSONFromMap(target marshmallow.UnmarshalerFromJSONMap, data []byte) error {
	var dataMap interface{}
	err := json.Unmarshal(data, &dataMap)
	if err != nil {
		return err
	}
	return target.UnmarshalJSONFromMap(dataMap)
}
