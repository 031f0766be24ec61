package core

import (
	"fmt"
	"net/url"
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// MediaTypeJSON тип тела по умолчанию.
const MediaTypeJSON = "application/json"

// Descriptor декларативное описание одной HTTP-операции.
type Descriptor struct {
	// Operation имя операции для логов и метрик, например "getDishes".
	Operation string
	Method    string
	// URL шаблон пути с параметрами в фигурных скобках: "/dishes/{id}".
	URL   string
	Path  map[string]any
	Query map[string]any
	Body  any
	// MediaType тип тела; для непустого Body по умолчанию MediaTypeJSON.
	MediaType string
	// Errors сообщения для ожидаемых статусов ошибок.
	Errors map[int]string
}

var pathToken = regexp.MustCompile(`\{([^{}]+)\}`)

// BuildPath подставляет параметры пути в шаблон. Значения должны быть целыми
// числами или строками только из цифр, без знака; отсутствующий или нечисловой
// параметр даёт ErrInvalidRequest.
func BuildPath(template string, params map[string]any) (string, error) {
	const op = "core.BuildPath"

	var firstErr error
	path := pathToken.ReplaceAllStringFunc(template, func(token string) string {
		name := token[1 : len(token)-1]
		value, ok := params[name]
		if !ok || value == nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("%s: %w: missing path parameter %q", op, ErrInvalidRequest, name)
			}
			return token
		}
		s, err := pathValue(value)
		if err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("%s: %w: path parameter %q: %v", op, ErrInvalidRequest, name, err)
			}
			return token
		}
		return url.PathEscape(s)
	})
	if firstErr != nil {
		return "", firstErr
	}
	return path, nil
}

func pathValue(value any) (string, error) {
	switch v := value.(type) {
	case string:
		if v == "" {
			return "", fmt.Errorf("empty value")
		}
		if _, err := strconv.ParseUint(v, 10, 64); err != nil {
			return "", fmt.Errorf("not numeric: %q", v)
		}
		return v, nil
	case int, int8, int16, int32, int64:
		return strconv.FormatInt(reflect.ValueOf(v).Int(), 10), nil
	case uint, uint8, uint16, uint32, uint64:
		return strconv.FormatUint(reflect.ValueOf(v).Uint(), 10), nil
	default:
		return "", fmt.Errorf("unsupported type %T", value)
	}
}

// BuildQuery кодирует параметры запроса. nil пропускается, срезы повторяют ключ.
func BuildQuery(params map[string]any) string {
	if len(params) == 0 {
		return ""
	}
	values := url.Values{}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v := params[k]
		if v == nil {
			continue
		}
		rv := reflect.ValueOf(v)
		if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() != reflect.Uint8 {
			for i := 0; i < rv.Len(); i++ {
				values.Add(k, fmt.Sprint(rv.Index(i).Interface()))
			}
			continue
		}
		values.Add(k, fmt.Sprint(v))
	}
	return values.Encode()
}

// buildURL собирает полный адрес запроса.
func (c *Config) buildURL(d Descriptor) (string, error) {
	path, err := BuildPath(d.URL, d.Path)
	if err != nil {
		return "", err
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	full := c.baseURL + path
	if q := BuildQuery(d.Query); q != "" {
		full += "?" + q
	}
	return full, nil
}
