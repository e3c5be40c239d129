package categorizer

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/kaptinlin/jsonrepair"
	"github.com/klokku/meeting-fatigue/pkg/meeting"
	log "github.com/sirupsen/logrus"
)

var (
	ErrNoJSONObject      = errors.New("no JSON object in oracle response")
	ErrMalformedResponse = errors.New("malformed oracle response")
)

var (
	leadingFence  = regexp.MustCompile("(?i)^```(?:json)?[ \t]*\n?")
	trailingFence = regexp.MustCompile("\n?```$")
)

// StripCodeFences removes a markdown code fence wrapping the whole response.
func StripCodeFences(text string) string {
	text = strings.TrimSpace(text)
	text = leadingFence.ReplaceAllString(text, "")
	text = trailingFence.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// ExtractJSONObject returns the first balanced {...} region of text. Braces inside
// JSON strings are ignored.
func ExtractJSONObject(text string) (string, error) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", ErrNoJSONObject
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		ch := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], nil
			}
		}
	}
	return "", fmt.Errorf("unbalanced braces: %w", ErrNoJSONObject)
}

// ParseCategories turns an oracle response into an id -> category mapping. Values
// outside the closed category set become meeting.Other.
func ParseCategories(response string) (map[string]meeting.Category, error) {
	cleaned := StripCodeFences(response)
	region, err := ExtractJSONObject(cleaned)
	if err != nil {
		idx := strings.IndexByte(cleaned, '{')
		if idx < 0 {
			return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
		// truncated output, leave it to the repair step
		region = cleaned[idx:]
	}

	raw, err := decodeObject(region)
	if err != nil {
		repaired, repairErr := jsonrepair.JSONRepair(region)
		if repairErr != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
		log.Debugf("oracle response repaired before parsing")
		raw, err = decodeObject(repaired)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
	}

	categories := make(map[string]meeting.Category, len(raw))
	for id, value := range raw {
		tag, _ := value.(string)
		categories[id] = meeting.ParseCategory(tag)
	}
	return categories, nil
}

func decodeObject(text string) (map[string]any, error) {
	var raw map[string]any
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, errors.New("response is not a JSON object")
	}
	return raw, nil
}
