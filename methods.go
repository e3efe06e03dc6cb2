// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the erc20 codec library.

package erc20

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/ethereum/go-ethereum/common"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownMethod    = errors.New("unknown method")
	ErrUnknownEvent     = errors.New("unknown event")
	ErrSelectorMismatch = errors.New("selector mismatch")
)

//go:embed erc20.yaml
var erc20Table []byte

// Method describes the fixed-width inputs and outputs of a contract method.
type Method struct {
	Name     string   `yaml:"-"`
	Selector Selector `yaml:"selector"`
	Inputs   Layout   `yaml:"inputs"`
	Outputs  Layout   `yaml:"outputs"`
}

// Event describes a log: Topic is the first log topic, Indexed the layout of
// the remaining topics and Data the layout of the log data.
type Event struct {
	Name    string      `yaml:"-"`
	Topic   common.Hash `yaml:"topic"`
	Indexed Layout      `yaml:"indexed"`
	Data    Layout      `yaml:"data"`
}

// LayoutSet is a table of methods and events keyed by name.
type LayoutSet struct {
	Methods map[string]*Method `yaml:"methods"`
	Events  map[string]*Event  `yaml:"events"`
}

func (l *Layout) UnmarshalYAML(value *yaml.Node) error {
	var spec string
	if err := value.Decode(&spec); err != nil {
		return err
	}
	layout, err := ParseLayout(spec)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*l = layout
	return nil
}

func (l Layout) MarshalYAML() (any, error) {
	return l.String(), nil
}

// LoadLayouts reads a method and event table from YAML:
//
//	methods:
//	  transfer:
//	    selector: "0xa9059cbb"
//	    inputs: "to:address,value:uint256"
//	    outputs: "success:uint256"
//	events:
//	  Transfer:
//	    topic: "0xddf252ad..."
//	    indexed: "from:address,to:address"
//	    data: "value:uint256"
func LoadLayouts(r io.Reader) (*LayoutSet, error) {
	set := &LayoutSet{}
	if err := yaml.NewDecoder(r).Decode(set); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty layout table", ErrInvalidLayout)
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidLayout, err)
	}
	if set.Methods == nil {
		set.Methods = map[string]*Method{}
	}
	if set.Events == nil {
		set.Events = map[string]*Event{}
	}

	selectors := map[Selector]string{}
	for name, method := range set.Methods {
		if method == nil {
			return nil, fmt.Errorf("%w: method %q has no definition", ErrInvalidLayout, name)
		}
		if other, ok := selectors[method.Selector]; ok {
			return nil, fmt.Errorf("%w: methods %q and %q share selector %s", ErrInvalidLayout, other, name, method.Selector)
		}
		selectors[method.Selector] = name
		method.Name = name
	}
	topics := map[common.Hash]string{}
	for name, event := range set.Events {
		if event == nil {
			return nil, fmt.Errorf("%w: event %q has no definition", ErrInvalidLayout, name)
		}
		if other, ok := topics[event.Topic]; ok {
			return nil, fmt.Errorf("%w: events %q and %q share topic %s", ErrInvalidLayout, other, name, event.Topic.Hex())
		}
		topics[event.Topic] = name
		for _, f := range event.Indexed {
			if f.ByteSize() != WordSize {
				return nil, fmt.Errorf("%w: indexed field %s of event %q is not word sized", ErrInvalidLayout, f, name)
			}
		}
		event.Name = name
	}
	return set, nil
}

// DefaultLayouts returns the built-in ERC-20 table. Each call returns a fresh
// copy the caller may modify.
func DefaultLayouts() *LayoutSet {
	set, err := LoadLayouts(bytes.NewReader(erc20Table))
	if err != nil {
		panic(fmt.Sprintf("embedded erc20 table: %v", err))
	}
	return set
}

func (s *LayoutSet) Method(name string) (*Method, error) {
	method, ok := s.Methods[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMethod, name)
	}
	return method, nil
}

func (s *LayoutSet) MethodBySelector(sel Selector) (*Method, error) {
	for _, method := range s.Methods {
		if method.Selector == sel {
			return method, nil
		}
	}
	return nil, fmt.Errorf("%w: selector %s", ErrUnknownMethod, sel)
}

func (s *LayoutSet) Event(name string) (*Event, error) {
	event, ok := s.Events[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, name)
	}
	return event, nil
}

func (s *LayoutSet) EventByTopic(topic common.Hash) (*Event, error) {
	for _, event := range s.Events {
		if event.Topic == topic {
			return event, nil
		}
	}
	return nil, fmt.Errorf("%w: topic %s", ErrUnknownEvent, topic.Hex())
}

// MethodNames returns the method names in sorted order.
func (s *LayoutSet) MethodNames() []string {
	names := make([]string, 0, len(s.Methods))
	for name := range s.Methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// EncodeCall builds the call data for m.
func (m *Method) EncodeCall(args ...any) ([]byte, error) {
	data, err := EncodeCall(m.Selector, m.Inputs, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", m.Name, err)
	}
	return data, nil
}

// DecodeCall decodes call data for m. The selector must match.
func (m *Method) DecodeCall(data []byte, opts ...Option) ([]any, error) {
	sel, dec, err := SplitCallData(data, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", m.Name, err)
	}
	if sel != m.Selector {
		return nil, fmt.Errorf("%s: %w: expected %s, got %s", m.Name, ErrSelectorMismatch, m.Selector, sel)
	}
	values, err := m.Inputs.Decode(dec)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", m.Name, err)
	}
	return values, nil
}

// DecodeOutput decodes the return data of a call to m.
func (m *Method) DecodeOutput(data []byte, opts ...Option) ([]any, error) {
	values, err := m.Outputs.DecodeBytes(data, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", m.Name, err)
	}
	return values, nil
}

// DecodeLog decodes the indexed topics followed by the data fields of a log
// emitted as e.
func (e *Event) DecodeLog(topics []common.Hash, data []byte, opts ...Option) ([]any, error) {
	if len(topics) == 0 || topics[0] != e.Topic {
		return nil, fmt.Errorf("%s: %w: topic mismatch", e.Name, ErrSelectorMismatch)
	}
	if len(topics)-1 != len(e.Indexed) {
		return nil, fmt.Errorf("%s: %w: expected %d indexed topics, got %d", e.Name, ErrInvalidValue, len(e.Indexed), len(topics)-1)
	}

	enc := NewEncoder()
	for _, topic := range topics[1:] {
		enc.PushHash(topic)
	}
	indexed, err := e.Indexed.DecodeBytes(enc.Bytes(), opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: topics: %w", e.Name, err)
	}
	values, err := e.Data.DecodeBytes(data, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: data: %w", e.Name, err)
	}
	return append(indexed, values...), nil
}
