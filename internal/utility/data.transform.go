package utility

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TransformConfig chứa cấu hình được parse từ tag transform
type TransformConfig struct {
	Type     string // Loại transform: str_objectid, str_objectid_ptr, str_time, str_int64
	Format   string // Format cho time converter
	Default  string // Giá trị mặc định
	Optional bool   // Nếu không có giá trị thì bỏ qua
	Required bool   // Bắt buộc phải có giá trị
	MapTo    string // Map sang field khác trong Model (ví dụ: map=CampaignID)
}

// ParseTransformTag parse tag transform thành config.
// Format: "[type][,format=<value>][,default=<value>][,map=<field>][,optional|required]"
// Ví dụ:
//   - transform:"str_objectid"               - string → primitive.ObjectID
//   - transform:"str_objectid_ptr,optional"  - string → *primitive.ObjectID, bỏ qua nếu rỗng
//   - transform:"str_time,format=2006-01-02" - string → int64 timestamp (ms)
func ParseTransformTag(tag string) (*TransformConfig, error) {
	config := &TransformConfig{
		Format: "2006-01-02T15:04:05",
	}

	if tag == "" {
		return config, nil
	}

	parts := strings.Split(tag, ",")
	config.Type = strings.TrimSpace(parts[0])

	for _, part := range parts[1:] {
		part = strings.TrimSpace(part)
		switch {
		case part == "":
			continue
		case part == "optional":
			config.Optional = true
		case part == "required":
			config.Required = true
		case strings.Contains(part, "="):
			kv := strings.SplitN(part, "=", 2)
			key := strings.TrimSpace(kv[0])
			value := strings.TrimSpace(kv[1])
			switch key {
			case "format":
				config.Format = value
			case "default":
				config.Default = value
			case "map":
				config.MapTo = value
			}
		}
	}

	return config, nil
}

// TransformFieldValue transform giá trị từ DTO field sang Model field theo config
func TransformFieldValue(value interface{}, config *TransformConfig, targetFieldType reflect.Type) (interface{}, error) {
	// Giá trị nil hoặc string rỗng: áp dụng default/optional/required
	isEmpty := value == nil
	if strValue, ok := value.(string); ok && strValue == "" {
		isEmpty = true
	}
	if isEmpty {
		if config.Default != "" {
			return applyTransform(config.Default, config)
		}
		if config.Required {
			return nil, fmt.Errorf("field là required nhưng không có giá trị")
		}
		return nil, nil
	}

	return applyTransform(value, config)
}

// applyTransform áp dụng transform type cho value
func applyTransform(value interface{}, config *TransformConfig) (interface{}, error) {
	switch config.Type {
	case "str_objectid":
		return transformToObjectID(value)
	case "str_objectid_ptr":
		return transformToObjectIDPtr(value)
	case "str_time":
		return transformToTime(value, config.Format)
	case "str_int64":
		return transformToInt64(value)
	default:
		// Không transform, trả về giá trị gốc
		return value, nil
	}
}

// transformToObjectID convert string → primitive.ObjectID
func transformToObjectID(value interface{}) (primitive.ObjectID, error) {
	strValue, ok := value.(string)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("giá trị không phải là string: %T", value)
	}
	if strValue == "" {
		return primitive.NilObjectID, nil
	}

	objID, err := primitive.ObjectIDFromHex(strValue)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("không thể convert string '%s' sang ObjectID: %w", strValue, err)
	}
	return objID, nil
}

// transformToObjectIDPtr convert string → *primitive.ObjectID
func transformToObjectIDPtr(value interface{}) (*primitive.ObjectID, error) {
	strValue, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("giá trị không phải là string: %T", value)
	}
	if strValue == "" {
		return nil, nil
	}

	objID, err := primitive.ObjectIDFromHex(strValue)
	if err != nil {
		return nil, fmt.Errorf("không thể convert string '%s' sang ObjectID: %w", strValue, err)
	}
	return &objID, nil
}

// transformToTime convert string → int64 timestamp (milliseconds)
func transformToTime(value interface{}, format string) (int64, error) {
	strValue, ok := value.(string)
	if !ok {
		return 0, fmt.Errorf("giá trị không phải là string: %T", value)
	}
	if strValue == "" {
		return 0, nil
	}

	t, err := time.Parse(format, strValue)
	if err != nil {
		return 0, fmt.Errorf("không thể parse time '%s' với format '%s': %w", strValue, format, err)
	}
	return t.UnixMilli(), nil
}

// transformToInt64 convert → int64
func transformToInt64(value interface{}) (int64, error) {
	switch v := value.(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case float64:
		return int64(v), nil
	case string:
		return strconv.ParseInt(v, 10, 64)
	default:
		return 0, fmt.Errorf("không thể convert %T sang int64", value)
	}
}
