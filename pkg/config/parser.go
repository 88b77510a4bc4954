package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Parser converts between nested JSON config files and flat dotted keys.
//
// Example file:
//
//	{
//	  "core": {
//	    "objectstore": "badger",
//	    "compression": "6"
//	  },
//	  "history": {
//	    "maxdepth": "5000"
//	  }
//	}
//
// yields the keys core.objectstore, core.compression and history.maxdepth.
type Parser struct{}

// Parse flattens content into entries tagged with source and level. Empty
// content is an empty configuration.
func (p *Parser) Parse(content []byte, source ConfigSource, level ConfigLevel) (map[string]*ConfigEntry, error) {
	result := make(map[string]*ConfigEntry)
	if len(bytes.TrimSpace(content)) == 0 {
		return result, nil
	}

	var root map[string]any
	dec := json.NewDecoder(bytes.NewReader(content))
	dec.UseNumber()
	if err := dec.Decode(&root); err != nil {
		return nil, NewInvalidFormatError("parse", source.String(), fmt.Errorf("configuration must be a JSON object: %w", err))
	}

	if err := p.flatten("", root, func(key, value string) {
		result[key] = NewEntry(key, value, level, source)
	}); err != nil {
		return nil, NewInvalidFormatError("parse", source.String(), err)
	}
	return result, nil
}

func (p *Parser) flatten(prefix string, section map[string]any, emit func(key, value string)) error {
	for name, value := range section {
		key := name
		if prefix != "" {
			key = prefix + "." + name
		}

		switch v := value.(type) {
		case map[string]any:
			if err := p.flatten(key, v, emit); err != nil {
				return err
			}
		case string:
			emit(key, v)
		case json.Number, bool:
			emit(key, fmt.Sprint(v))
		case nil:
			// null clears nothing; skip it
		default:
			return fmt.Errorf("unsupported value for %s: %T", key, value)
		}
	}
	return nil
}

// Serialize nests entries back into indented JSON. Keys are written in
// sorted order so saved files are stable.
func (p *Parser) Serialize(entries map[string]*ConfigEntry) ([]byte, error) {
	keys := make([]string, 0, len(entries))
	for key := range entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	root := make(map[string]any)
	for _, key := range keys {
		segments := strings.Split(key, ".")
		node := root
		for _, seg := range segments[:len(segments)-1] {
			child, ok := node[seg].(map[string]any)
			if !ok {
				if _, taken := node[seg]; taken {
					return nil, NewInvalidValueError(key, fmt.Errorf("%s is both a value and a section", seg))
				}
				child = make(map[string]any)
				node[seg] = child
			}
			node = child
		}

		last := segments[len(segments)-1]
		if _, isSection := node[last].(map[string]any); isSection {
			return nil, NewInvalidValueError(key, fmt.Errorf("%s is both a value and a section", last))
		}
		node[last] = entries[key].Value
	}

	data, err := json.MarshalIndent(root, "", "  ")
	if err != nil {
		return nil, NewInvalidFormatError("serialize", "", err)
	}
	return append(data, '\n'), nil
}
