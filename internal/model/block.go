// Package model is the in-memory program tree: a Block is
// {id, opcode, params[], statement-bodies[]}, a Script is an ordered
// sequence of top-level Blocks whose first block is an event trigger.
package model

import (
	"encoding/json"
	"fmt"
)

// Param is a single positional argument to a block: a literal Value
// or a nested reporter Block. nil literals decode to a (*Param)(nil)
// entry and MUST be filtered out by the caller before positional
// indexing, per §6 — several opcodes depend on compact indices.
type Param struct {
	Literal any    // string | float64 | bool | nil, mutually exclusive with Block
	Block   *Block // nested reporter block, mutually exclusive with Literal
}

func (p *Param) IsBlock() bool { return p != nil && p.Block != nil }

// Block is one node of the program tree.
type Block struct {
	ID         string   `json:"id"`
	Opcode     string   `json:"type"`
	Params     []*Param `json:"-"`
	Statements [][]*Block `json:"-"`
}

// Script is a top-level block sequence dispatched as a unit; Blocks[0]
// is the event-trigger block that determines when it runs.
type Script struct {
	Blocks []*Block
}

// rawBlock mirrors the wire shape so we can hand-decode the
// heterogeneous params array.
type rawBlock struct {
	ID         string            `json:"id"`
	Type       string            `json:"type"`
	Params     []json.RawMessage `json:"params"`
	Statements []json.RawMessage `json:"statements"`
}

// UnmarshalJSON decodes a block, recursively decoding nested reporter
// blocks inside params and nested statement bodies.
func (b *Block) UnmarshalJSON(data []byte) error {
	var raw rawBlock
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode block: %w", err)
	}
	b.ID = raw.ID
	b.Opcode = raw.Type

	b.Params = make([]*Param, 0, len(raw.Params))
	for _, rp := range raw.Params {
		p, err := decodeParam(rp)
		if err != nil {
			return fmt.Errorf("block %s param: %w", b.ID, err)
		}
		b.Params = append(b.Params, p)
	}

	for _, rs := range raw.Statements {
		var body []*Block
		if len(rs) > 0 {
			if err := json.Unmarshal(rs, &body); err != nil {
				return fmt.Errorf("block %s statement body: %w", b.ID, err)
			}
		}
		b.Statements = append(b.Statements, body)
	}
	return nil
}

func decodeParam(raw json.RawMessage) (*Param, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	// Try nested block first: object with an "id"/"type" pair.
	var probe struct {
		ID   *string `json:"id"`
		Type *string `json:"type"`
	}
	if err := json.Unmarshal(raw, &probe); err == nil && probe.Type != nil {
		var nested Block
		if err := json.Unmarshal(raw, &nested); err != nil {
			return nil, err
		}
		return &Param{Block: &nested}, nil
	}
	var lit any
	if err := json.Unmarshal(raw, &lit); err != nil {
		return nil, err
	}
	return &Param{Literal: lit}, nil
}

// CompactParams filters out nil entries, returning the params the
// opcode dispatcher should index positionally.
func (b *Block) CompactParams() []*Param {
	out := make([]*Param, 0, len(b.Params))
	for _, p := range b.Params {
		if p != nil {
			out = append(out, p)
		}
	}
	return out
}

// Param returns the i-th compacted param, or nil if out of range.
func (b *Block) Param(i int) *Param {
	cp := b.CompactParams()
	if i < 0 || i >= len(cp) {
		return nil
	}
	return cp[i]
}

// Body returns the i-th statement body (nested block sequence), or
// nil if out of range — used by if/if-else/repeat/etc.
func (b *Block) Body(i int) []*Block {
	if i < 0 || i >= len(b.Statements) {
		return nil
	}
	return b.Statements[i]
}
